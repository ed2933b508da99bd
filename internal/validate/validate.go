package validate

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/dshills/userform/internal/record"
)

// Result classifies a raw field value.
type Result int

const (
	Valid Result = iota
	Missing
	Malformed
)

func (r Result) String() string {
	switch r {
	case Valid:
		return "valid"
	case Missing:
		return "missing"
	case Malformed:
		return "malformed"
	}
	return "unknown"
}

var (
	datePattern  = regexp.MustCompile(`^(0[1-9]|[1-2][0-9]|3[0-1])/(0[1-9]|1[0-2])/\d{4}$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,4}$`)
)

// rules maps each field to its validator tag list. "required" failing means
// Missing; any later tag failing means Malformed.
var rules = map[record.Field]string{
	record.FieldFullName:   "required",
	record.FieldBirthDate:  "required,ddmmyyyy",
	record.FieldEmail:      "required,simpleemail",
	record.FieldDepartment: "required",
	record.FieldTerms:      "required",
}

var engine = newEngine()

func newEngine() *validator.Validate {
	v := validator.New()
	mustRegister(v, "ddmmyyyy", datePattern)
	mustRegister(v, "simpleemail", emailPattern)
	return v
}

func mustRegister(v *validator.Validate, tag string, re *regexp.Regexp) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
}

// Field validates the raw value of f. Text fields and the department take a
// string; the terms field takes a bool and is Missing unless it is true.
// A value of the wrong type is Malformed.
func Field(f record.Field, raw any) Result {
	tag, ok := rules[f]
	if !ok {
		return Malformed
	}
	switch raw.(type) {
	case string:
		if f == record.FieldTerms {
			return Malformed
		}
	case bool:
		if f != record.FieldTerms {
			return Malformed
		}
	default:
		return Malformed
	}

	err := engine.Var(raw, tag)
	if err == nil {
		return Valid
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() == "required" {
		return Missing
	}
	return Malformed
}

// Record validates every field of r.
func Record(r record.FormRecord) map[record.Field]Result {
	out := make(map[record.Field]Result, len(rules))
	for _, f := range record.Fields() {
		out[f] = Field(f, r.Value(f))
	}
	return out
}

// Submittable reports whether every field of r is Valid.
func Submittable(r record.FormRecord) bool {
	for _, res := range Record(r) {
		if res != Valid {
			return false
		}
	}
	return true
}

// Message returns the inline error text for a result, or "" when valid.
func Message(f record.Field, res Result) string {
	switch res {
	case Missing:
		return "This field is required"
	case Malformed:
		switch f {
		case record.FieldBirthDate:
			return "Wrong date pattern"
		case record.FieldEmail:
			return "Wrong email address"
		}
		return "Invalid value"
	}
	return ""
}
