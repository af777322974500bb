package pickup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labfetch/labfetch-api/internal/address"
	"github.com/labfetch/labfetch-api/internal/model"
)

var bogota = time.FixedZone("COT", -5*60*60)

func newTestValidator(mode address.LetterMode) *Validator {
	v := NewValidator(mode, bogota)
	v.now = func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, bogota) }
	return v
}

func validPayload() map[string]interface{} {
	return map[string]interface{}{
		"nombreMascota":  "Juan",
		"tipoMuestra":    "3001234567",
		"departamento":   "BOGOTA",
		"ciudad":         "BOGOTA D.C.",
		"tipoVia":        "Calle",
		"numViaP1":       "80",
		"numVia2":        "15",
		"num3":           "20",
		"fechaPreferida": nil,
		"turnoPreferido": nil,
	}
}

func with(p map[string]interface{}, kv ...interface{}) map[string]interface{} {
	for i := 0; i < len(kv); i += 2 {
		p[kv[i].(string)] = kv[i+1]
	}
	return p
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestValidateAcceptsValidPayload(t *testing.T) {
	sub, errs := newTestValidator(address.LetterModeLoose).Validate(validPayload())
	require.Empty(t, errs)
	assert.Equal(t, "Juan", sub.PetName)
	assert.Equal(t, "Calle 80 # 15 - 20 BOGOTA D.C., BOGOTA", address.Normalize(sub.Address()))
}

func TestValidateReportsExactlyMissingRequiredFields(t *testing.T) {
	required := []string{"nombreMascota", "tipoMuestra", "departamento", "ciudad", "tipoVia", "numViaP1", "numVia2", "num3"}
	v := newTestValidator(address.LetterModeLoose)

	for _, field := range required {
		for _, blank := range []interface{}{nil, "", "   "} {
			_, errs := v.Validate(with(validPayload(), field, blank))
			assert.Equal(t, []string{field}, keys(errs), "field %s blank %q", field, blank)
		}
	}

	_, errs := v.Validate(map[string]interface{}{})
	assert.ElementsMatch(t, required, keys(errs))
}

func TestValidateEnumerations(t *testing.T) {
	v := newTestValidator(address.LetterModeLoose)

	tests := []struct {
		name  string
		kv    []interface{}
		field string
	}{
		{"unknown via type", []interface{}{"tipoVia", "Callejon"}, "tipoVia"},
		{"via type is case sensitive", []interface{}{"tipoVia", "calle"}, "tipoVia"},
		{"bad quadrant 1", []interface{}{"sufijoCardinal1", "Noreste"}, "sufijoCardinal1"},
		{"bad quadrant 2", []interface{}{"sufijoCardinal2", "sur"}, "sufijoCardinal2"},
		{"letter too long", []interface{}{"letraVia", "ABC"}, "letraVia"},
		{"generator letter digit", []interface{}{"letraVia2", "1"}, "letraVia2"},
		{"bis letter checked when bis", []interface{}{"bis", true, "letraBis", "XYZ"}, "letraBis"},
		{"unknown department", []interface{}{"departamento", "ATLANTIS"}, "departamento"},
		{"city outside department", []interface{}{"ciudad", "MEDELLIN"}, "ciudad"},
		{"non numeric plaque", []interface{}{"num3", "20A"}, "num3"},
		{"bis not a boolean", []interface{}{"bis", "maybe"}, "bis"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := v.Validate(with(validPayload(), tt.kv...))
			assert.Equal(t, []string{tt.field}, keys(errs))
		})
	}
}

func TestValidateAcceptsOptionalAddressParts(t *testing.T) {
	v := newTestValidator(address.LetterModeLoose)
	sub, errs := v.Validate(with(validPayload(),
		"letraVia", "a", "bis", "true", "letraBis", "B", "sufijoCardinal1", "Sur",
		"letraVia2", "C", "sufijoCardinal2", "Este", "complemento", "Apto 301",
	))
	require.Empty(t, errs)
	assert.True(t, sub.Bis)

	_, errs = v.Validate(with(validPayload(), "letraBis", "XYZ"))
	assert.Empty(t, errs, "bis letter is ignored without bis")
}

func TestValidateWeakTyping(t *testing.T) {
	sub, errs := newTestValidator(address.LetterModeLoose).Validate(with(validPayload(),
		"numViaP1", float64(80), "numVia2", 15, "bis", 1,
	))
	require.Empty(t, errs)
	assert.Equal(t, "80", sub.ViaNumber)
	assert.Equal(t, "15", sub.GeneratorNumber)
	assert.True(t, sub.Bis)
}

func TestValidateStoresCatalogSpelling(t *testing.T) {
	sub, errs := newTestValidator(address.LetterModeLoose).Validate(with(validPayload(),
		"departamento", "bogota", "ciudad", "bogota d.c.",
	))
	require.Empty(t, errs)
	assert.Equal(t, "BOGOTA", sub.Department)
	assert.Equal(t, "BOGOTA D.C.", sub.City)
	full := address.Normalize(sub.Address())
	assert.Equal(t, "Calle 80 # 15 - 20 BOGOTA D.C., BOGOTA", full)

	p := sub.Pickup(full)
	assert.Equal(t, "BOGOTA", p.Department)
	assert.Equal(t, "BOGOTA D.C.", p.City)
}

func TestValidateKeysAreCaseSensitive(t *testing.T) {
	p := validPayload()
	delete(p, "nombreMascota")
	p["NOMBREMASCOTA"] = "X"

	sub, errs := newTestValidator(address.LetterModeLoose).Validate(p)
	assert.Equal(t, []string{"nombreMascota"}, keys(errs))
	assert.Equal(t, "Nombre de mascota requerido.", errs["nombreMascota"])
	assert.Empty(t, sub.PetName)
}

func TestValidateLetterModes(t *testing.T) {
	loose := newTestValidator(address.LetterModeLoose)
	strict := newTestValidator(address.LetterModeStrict)

	_, errs := loose.Validate(with(validPayload(), "letraVia", "Z"))
	assert.Empty(t, errs)

	_, errs = strict.Validate(with(validPayload(), "letraVia", "Z"))
	assert.Contains(t, errs, "letraVia")

	_, errs = strict.Validate(with(validPayload(), "letraVia", "HA", "letraVia2", "B"))
	assert.Empty(t, errs)
}

func TestValidateScheduleCoupling(t *testing.T) {
	v := newTestValidator(address.LetterModeLoose)
	coupling := func(errs map[string]string) int {
		n := 0
		for _, k := range []string{"fechaPreferida", "turnoPreferido"} {
			if _, ok := errs[k]; ok {
				n++
			}
		}
		return n
	}

	_, errs := v.Validate(with(validPayload(), "fechaPreferida", nil, "turnoPreferido", "manana"))
	assert.Equal(t, 1, coupling(errs))
	assert.Contains(t, errs, "fechaPreferida")

	_, errs = v.Validate(with(validPayload(), "fechaPreferida", "2099-01-01", "turnoPreferido", nil))
	assert.Equal(t, 1, coupling(errs))
	assert.Contains(t, errs, "turnoPreferido")

	_, errs = v.Validate(with(validPayload(), "fechaPreferida", nil, "turnoPreferido", nil))
	assert.Equal(t, 0, coupling(errs))

	sub, errs := v.Validate(with(validPayload(), "fechaPreferida", "2099-01-01", "turnoPreferido", "tarde"))
	assert.Empty(t, errs)
	require.NotNil(t, sub.date)
	require.NotNil(t, sub.shift)
	assert.Equal(t, "2099-01-01", sub.date.String())
	assert.Equal(t, model.ShiftAfternoon, *sub.shift)
}

func TestValidateDates(t *testing.T) {
	v := newTestValidator(address.LetterModeLoose)

	for _, shift := range []interface{}{nil, "manana", "tarde", "noche"} {
		_, errs := v.Validate(with(validPayload(), "fechaPreferida", "2026-03-09", "turnoPreferido", shift))
		assert.Contains(t, errs, "fechaPreferida", "past date with shift %v", shift)
	}

	_, errs := v.Validate(with(validPayload(), "fechaPreferida", "2026-03-10", "turnoPreferido", "manana"))
	assert.Empty(t, errs, "today is allowed")

	_, errs = v.Validate(with(validPayload(), "fechaPreferida", "2026-02-30", "turnoPreferido", "manana"))
	assert.Equal(t, "Formato de fecha inválido.", errs["fechaPreferida"])

	_, errs = v.Validate(with(validPayload(), "fechaPreferida", "2026-04-01", "turnoPreferido", "noche"))
	assert.Equal(t, "Turno inválido.", errs["turnoPreferido"])

	sub, errs := v.Validate(with(validPayload(), "fechaPreferida", "2026-04-01T05:00:00.000Z", "turnoPreferido", "manana"))
	assert.Empty(t, errs)
	assert.Equal(t, "2026-04-01", sub.date.String())
}

func TestSubmissionPickup(t *testing.T) {
	sub, errs := newTestValidator(address.LetterModeLoose).Validate(with(validPayload(),
		"letraBis", "B", "complemento", "  ",
	))
	require.Empty(t, errs)

	p := sub.Pickup("Calle 80 # 15 - 20 BOGOTA D.C., BOGOTA")
	assert.Equal(t, model.PickupStatusPending, p.Status)
	assert.Nil(t, p.BisLetter)
	assert.Nil(t, p.Complement)
	assert.Nil(t, p.DriverID)
	assert.Nil(t, p.PreferredDate)
	assert.Equal(t, "Calle 80 # 15 - 20 BOGOTA D.C., BOGOTA", p.FullAddress)
}
