// Package address holds the Colombian street-address catalog and renders
// structured addresses into their display form.
package address

import "strings"

// Address is the structured form captured by the intake form.
type Address struct {
	Department      string
	City            string
	ViaType         string
	ViaNumber       string
	ViaLetter       string
	Bis             bool
	BisLetter       string
	Quadrant1       string
	GeneratorNumber string
	GeneratorLetter string
	Quadrant2       string
	PlaqueNumber    string
	Complement      string
}

// Normalize renders a as one display line, for example
// "Calle 80 A Bis B Sur # 15 C Este - 20 (Apto 301) BOGOTA D.C., BOGOTA".
// Absent parts leave no separator behind.
func Normalize(a Address) string {
	var parts []string
	add := func(s ...string) {
		parts = append(parts, s...)
	}

	add(a.ViaType, a.ViaNumber, a.ViaLetter)
	if a.Bis {
		add("Bis", a.BisLetter)
	}
	add(a.Quadrant1)

	if present(a.GeneratorNumber, a.GeneratorLetter, a.Quadrant2, a.PlaqueNumber) {
		add("#")
	}
	add(a.GeneratorNumber, a.GeneratorLetter, a.Quadrant2)
	if strings.TrimSpace(a.PlaqueNumber) != "" {
		add("-", a.PlaqueNumber)
	}

	if c := strings.TrimSpace(a.Complement); c != "" {
		add("(" + c + ")")
	}

	var place []string
	for _, s := range []string{a.City, a.Department} {
		if s = strings.TrimSpace(s); s != "" {
			place = append(place, s)
		}
	}
	add(strings.Join(place, ", "))

	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

func present(fields ...string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return true
		}
	}
	return false
}
