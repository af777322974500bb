package pickup

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"

	"github.com/labfetch/labfetch-api/internal/address"
	"github.com/labfetch/labfetch-api/internal/model"
)

// Submission is the public intake payload after decoding.
type Submission struct {
	PetName         string `mapstructure:"nombreMascota" validate:"required"`
	Contact         string `mapstructure:"tipoMuestra" validate:"required"`
	Department      string `mapstructure:"departamento" validate:"required,department"`
	City            string `mapstructure:"ciudad" validate:"required"`
	ViaType         string `mapstructure:"tipoVia" validate:"required,via_type"`
	ViaNumber       string `mapstructure:"numViaP1" validate:"required,number"`
	ViaLetter       string `mapstructure:"letraVia" validate:"omitempty,address_letter"`
	Bis             bool   `mapstructure:"bis"`
	BisLetter       string `mapstructure:"letraBis"`
	Quadrant1       string `mapstructure:"sufijoCardinal1" validate:"omitempty,quadrant"`
	GeneratorNumber string `mapstructure:"numVia2" validate:"required,number"`
	GeneratorLetter string `mapstructure:"letraVia2" validate:"omitempty,address_letter"`
	Quadrant2       string `mapstructure:"sufijoCardinal2" validate:"omitempty,quadrant"`
	PlaqueNumber    string `mapstructure:"num3" validate:"required,number"`
	Complement      string `mapstructure:"complemento"`
	PreferredDate   string `mapstructure:"fechaPreferida"`
	PreferredShift  string `mapstructure:"turnoPreferido"`

	date  *model.Date
	shift *model.Shift
}

// Address returns the structured address fields.
func (s *Submission) Address() address.Address {
	return address.Address{
		Department:      s.Department,
		City:            s.City,
		ViaType:         s.ViaType,
		ViaNumber:       s.ViaNumber,
		ViaLetter:       s.ViaLetter,
		Bis:             s.Bis,
		BisLetter:       s.BisLetter,
		Quadrant1:       s.Quadrant1,
		GeneratorNumber: s.GeneratorNumber,
		GeneratorLetter: s.GeneratorLetter,
		Quadrant2:       s.Quadrant2,
		PlaqueNumber:    s.PlaqueNumber,
		Complement:      s.Complement,
	}
}

// Pickup builds the record to persist; fullAddress is the normalized line.
func (s *Submission) Pickup(fullAddress string) *model.Pickup {
	p := &model.Pickup{
		PetName:         s.PetName,
		Contact:         s.Contact,
		Department:      s.Department,
		City:            s.City,
		ViaType:         s.ViaType,
		ViaNumber:       s.ViaNumber,
		ViaLetter:       optional(s.ViaLetter),
		Bis:             s.Bis,
		Quadrant1:       optional(s.Quadrant1),
		GeneratorNumber: s.GeneratorNumber,
		GeneratorLetter: optional(s.GeneratorLetter),
		Quadrant2:       optional(s.Quadrant2),
		PlaqueNumber:    s.PlaqueNumber,
		Complement:      optional(s.Complement),
		FullAddress:     fullAddress,
		PreferredDate:   s.date,
		PreferredShift:  s.shift,
		Status:          model.DefaultPickupStatus,
	}
	if s.Bis {
		p.BisLetter = optional(s.BisLetter)
	}
	return p
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

const (
	fieldDate    = "fechaPreferida"
	fieldShift   = "turnoPreferido"
	fieldPayload = "payload"
)

var fieldMessages = map[string]map[string]string{
	"nombreMascota":   {"required": "Nombre de mascota requerido."},
	"tipoMuestra":     {"required": "Tipo de muestra requerido."},
	"departamento":    {"required": "Departamento requerido.", "department": "Departamento inválido."},
	"ciudad":          {"required": "Ciudad requerida.", "city": "Ciudad inválida para el departamento seleccionado."},
	"tipoVia":         {"required": "Tipo de vía requerido.", "via_type": "Tipo de vía inválido."},
	"numViaP1":        {"required": "Número de vía principal requerido."},
	"numVia2":         {"required": "Número de vía generadora requerido."},
	"num3":            {"required": "Número de placa requerido."},
	"letraVia":        {"address_letter": "Letra de vía inválida."},
	"letraBis":        {"address_letter": "Letra de Bis inválida."},
	"letraVia2":       {"address_letter": "Letra de vía 2 inválida."},
	"sufijoCardinal1": {"quadrant": "Sufijo cardinal 1 inválido."},
	"sufijoCardinal2": {"quadrant": "Sufijo cardinal 2 inválido."},
}

var tagMessages = map[string]string{
	"required": "Campo requerido.",
	"number":   "Debe contener solo dígitos.",
}

// Validator checks public pickup submissions. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
	loc      *time.Location
	now      func() time.Time
}

// NewValidator builds a validator whose "today" is evaluated in loc.
func NewValidator(mode address.LetterMode, loc *time.Location) *Validator {
	if !mode.Valid() {
		mode = address.LetterModeLoose
	}
	if loc == nil {
		loc = time.UTC
	}

	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("mapstructure")
	})
	_ = v.RegisterValidation("via_type", func(fl validator.FieldLevel) bool {
		return address.ValidViaType(fl.Field().String())
	})
	_ = v.RegisterValidation("quadrant", func(fl validator.FieldLevel) bool {
		return address.ValidQuadrant(fl.Field().String())
	})
	_ = v.RegisterValidation("department", func(fl validator.FieldLevel) bool {
		return address.ValidDepartment(fl.Field().String())
	})
	_ = v.RegisterValidation("address_letter", func(fl validator.FieldLevel) bool {
		return address.ValidLetter(mode, fl.Field().String())
	})
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		s := sl.Current().Interface().(Submission)
		if s.Bis && s.BisLetter != "" && !address.ValidLetter(mode, s.BisLetter) {
			sl.ReportError(s.BisLetter, "letraBis", "BisLetter", "address_letter", "")
		}
		if s.City != "" && address.ValidDepartment(s.Department) && !address.ValidCity(s.Department, s.City) {
			sl.ReportError(s.City, "ciudad", "City", "city", "")
		}
	}, Submission{})

	return &Validator{validate: v, loc: loc, now: time.Now}
}

// Validate decodes payload and returns every field problem at once. An
// empty map means the submission is valid.
func (v *Validator) Validate(payload map[string]interface{}) (*Submission, map[string]string) {
	errs := make(map[string]string)
	sub := &Submission{}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		// Keys must match the field names exactly.
		MatchName: func(mapKey, fieldName string) bool { return mapKey == fieldName },
		Result:    sub,
	})
	if err != nil {
		errs[fieldPayload] = err.Error()
		return sub, errs
	}
	if err := dec.Decode(payload); err != nil {
		for _, field := range decodeErrorFields(err) {
			errs[field] = "Valor inválido."
		}
	}
	sub.trim()

	var verrs validator.ValidationErrors
	if err := v.validate.Struct(sub); errors.As(err, &verrs) {
		for _, fe := range verrs {
			if _, seen := errs[fe.Field()]; !seen {
				errs[fe.Field()] = message(fe.Field(), fe.Tag())
			}
		}
	}

	sub.canonicalize()
	v.validateSchedule(sub, errs)
	return sub, errs
}

// canonicalize replaces department and city with their listed spelling.
func (s *Submission) canonicalize() {
	dep, ok := address.CanonicalDepartment(s.Department)
	if !ok {
		return
	}
	s.Department = dep
	if city, ok := address.CanonicalCity(dep, s.City); ok {
		s.City = city
	}
}

// validateSchedule enforces that date and shift are given together and
// that the date is not before today.
func (v *Validator) validateSchedule(sub *Submission, errs map[string]string) {
	if _, bad := errs[fieldDate]; bad {
		return
	}

	if sub.PreferredDate == "" {
		if sub.PreferredShift != "" {
			errs[fieldDate] = "Seleccione una fecha para el turno elegido."
		}
		return
	}

	date, err := model.ParseDate(sub.PreferredDate)
	if err != nil {
		errs[fieldDate] = "Formato de fecha inválido."
	} else if date.Before(model.DateOf(v.now().In(v.loc))) {
		errs[fieldDate] = "La fecha preferida no puede ser anterior a hoy."
	} else {
		sub.date = &date
	}

	if _, bad := errs[fieldShift]; bad {
		return
	}
	shift := model.Shift(sub.PreferredShift)
	switch {
	case sub.PreferredShift == "":
		errs[fieldShift] = "Seleccione un turno para la fecha elegida."
	case !shift.Valid():
		errs[fieldShift] = "Turno inválido."
	default:
		sub.shift = &shift
	}
}

func (s *Submission) trim() {
	for _, f := range []*string{
		&s.PetName, &s.Contact, &s.Department, &s.City, &s.ViaType, &s.ViaNumber,
		&s.ViaLetter, &s.BisLetter, &s.Quadrant1, &s.GeneratorNumber, &s.GeneratorLetter,
		&s.Quadrant2, &s.PlaqueNumber, &s.Complement, &s.PreferredDate, &s.PreferredShift,
	} {
		*f = strings.TrimSpace(*f)
	}
}

func message(field, tag string) string {
	if msg, ok := fieldMessages[field][tag]; ok {
		return msg
	}
	if msg, ok := tagMessages[tag]; ok {
		return msg
	}
	return "Valor inválido."
}

var decodeField = regexp.MustCompile(`'([^']+)'`)

// decodeErrorFields extracts the offending keys from a mapstructure error.
func decodeErrorFields(err error) []string {
	var merr *mapstructure.Error
	if !errors.As(err, &merr) {
		return []string{fieldPayload}
	}
	fields := make([]string, 0, len(merr.Errors))
	for _, e := range merr.Errors {
		if m := decodeField.FindStringSubmatch(e); m != nil {
			fields = append(fields, m[1])
		}
	}
	if len(fields) == 0 {
		return []string{fieldPayload}
	}
	return fields
}
