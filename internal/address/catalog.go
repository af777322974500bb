package address

import (
	"regexp"
	"strings"
)

var viaTypes = []string{
	"Autopista",
	"Avenida",
	"Bulevar",
	"Calle",
	"Carrera",
	"Carretera",
	"Circular",
	"Circunvalar",
	"Corregimiento",
	"Diagonal",
	"Kilometro",
	"Transversal",
	"Troncal",
	"Variante",
	"Vereda",
	"Via",
}

var quadrants = []string{"Este", "Norte", "Oeste", "Sur"}

// letterBase spans the single letters used in street names; the strict
// letter set is every member plus every two-letter pairing of them.
const letterBase = "ABCDEFGH"

var (
	strictLetters = buildStrictLetters()
	looseLetter   = regexp.MustCompile(`^[A-Za-z]{1,2}$`)
)

func buildStrictLetters() map[string]struct{} {
	set := make(map[string]struct{}, len(letterBase)*(len(letterBase)+1))
	for _, a := range letterBase {
		set[string(a)] = struct{}{}
		for _, b := range letterBase {
			set[string(a)+string(b)] = struct{}{}
		}
	}
	return set
}

// LetterMode selects how street-letter suffixes are checked.
type LetterMode string

const (
	LetterModeLoose  LetterMode = "loose"
	LetterModeStrict LetterMode = "strict"
)

func (m LetterMode) Valid() bool {
	return m == LetterModeLoose || m == LetterModeStrict
}

// ValidLetter reports whether s is an acceptable street letter under mode.
func ValidLetter(mode LetterMode, s string) bool {
	if mode == LetterModeStrict {
		_, ok := strictLetters[s]
		return ok
	}
	return looseLetter.MatchString(s)
}

func ViaTypes() []string { return append([]string(nil), viaTypes...) }
func Quadrants() []string { return append([]string(nil), quadrants...) }

func Departments() []string { return append([]string(nil), departments...) }

// Cities returns the municipalities of department, or nil if unknown.
func Cities(department string) []string {
	return append([]string(nil), citiesByDepartment[strings.ToUpper(department)]...)
}

func ValidViaType(s string) bool { return contains(viaTypes, s) }
func ValidQuadrant(s string) bool { return contains(quadrants, s) }

func ValidDepartment(s string) bool {
	_, ok := CanonicalDepartment(s)
	return ok
}

// ValidCity reports whether city belongs to department.
func ValidCity(department, city string) bool {
	_, ok := CanonicalCity(department, city)
	return ok
}

// CanonicalDepartment matches s against the department list ignoring case
// and returns the listed spelling.
func CanonicalDepartment(s string) (string, bool) {
	key := strings.ToUpper(s)
	if _, ok := citiesByDepartment[key]; !ok {
		return "", false
	}
	return key, true
}

// CanonicalCity returns the listed spelling of city within department.
func CanonicalCity(department, city string) (string, bool) {
	for _, c := range citiesByDepartment[strings.ToUpper(department)] {
		if strings.EqualFold(c, city) {
			return c, true
		}
	}
	return "", false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
