package record

import (
	"fmt"
	"strconv"
	"strings"
)

// Field names a form input. The name is also the JSON key the store expects,
// so it must not change.
type Field string

const (
	FieldFullName   Field = "fullName"
	FieldBirthDate  Field = "birthDate"
	FieldEmail      Field = "email"
	FieldDepartment Field = "userDepartment"
	FieldTerms      Field = "formTerms"
)

// Fields lists every form field in display order.
func Fields() []Field {
	return []Field{FieldFullName, FieldBirthDate, FieldEmail, FieldDepartment, FieldTerms}
}

// IsValidField reports whether f is one of the five form fields.
func IsValidField(f Field) bool {
	switch f {
	case FieldFullName, FieldBirthDate, FieldEmail, FieldDepartment, FieldTerms:
		return true
	}
	return false
}

var aliases = map[string]Field{
	"fullname":       FieldFullName,
	"name":           FieldFullName,
	"birthdate":      FieldBirthDate,
	"birth":          FieldBirthDate,
	"email":          FieldEmail,
	"userdepartment": FieldDepartment,
	"department":     FieldDepartment,
	"dept":           FieldDepartment,
	"formterms":      FieldTerms,
	"terms":          FieldTerms,
}

// ParseField resolves a field from its wire name or a short alias, ignoring case.
func ParseField(s string) (Field, error) {
	if f, ok := aliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return "", fmt.Errorf("unknown field %q: valid fields are fullName, birthDate, email, userDepartment, formTerms", s)
}

// IsText reports whether f is a free-text input validated on blur.
func IsText(f Field) bool {
	switch f {
	case FieldFullName, FieldBirthDate, FieldEmail:
		return true
	}
	return false
}

// Label returns the human-readable label for a field.
func Label(f Field) string {
	switch f {
	case FieldFullName:
		return "Full name"
	case FieldBirthDate:
		return "Birth date"
	case FieldEmail:
		return "Email"
	case FieldDepartment:
		return "Department"
	case FieldTerms:
		return "I accept the terms"
	}
	return string(f)
}

// Placeholder returns the input hint shown for empty text fields.
func Placeholder(f Field) string {
	switch f {
	case FieldFullName:
		return "Full name"
	case FieldBirthDate:
		return "DD/MM/YYYY"
	case FieldEmail:
		return "user@example.com"
	}
	return ""
}

// DefaultDepartmentID is the department selected before the user picks one.
const DefaultDepartmentID = "1"

// FormRecord is the data collected by the form and sent to the store.
type FormRecord struct {
	FullName      string
	BirthDate     string
	Email         string
	DepartmentID  string
	AcceptedTerms bool
}

var defaultRecord = FormRecord{DepartmentID: DefaultDepartmentID}

// Default returns the record a fresh form starts from and resets to.
func Default() FormRecord { return defaultRecord }

// Value returns the raw value held for f: a string for every field except
// FieldTerms, which yields a bool.
func (r FormRecord) Value(f Field) any {
	switch f {
	case FieldFullName:
		return r.FullName
	case FieldBirthDate:
		return r.BirthDate
	case FieldEmail:
		return r.Email
	case FieldDepartment:
		return r.DepartmentID
	case FieldTerms:
		return r.AcceptedTerms
	}
	return nil
}

// With returns a copy of r with the text value of f replaced. FieldTerms
// accepts "true"/"false" via strconv.ParseBool; unparsable input leaves it unchanged.
func (r FormRecord) With(f Field, value string) FormRecord {
	switch f {
	case FieldFullName:
		r.FullName = value
	case FieldBirthDate:
		r.BirthDate = value
	case FieldEmail:
		r.Email = value
	case FieldDepartment:
		r.DepartmentID = value
	case FieldTerms:
		if b, err := strconv.ParseBool(value); err == nil {
			r.AcceptedTerms = b
		}
	}
	return r
}

// Payload converts the record to its wire form.
func (r FormRecord) Payload() Payload {
	return Payload{
		FullName:       r.FullName,
		BirthDate:      r.BirthDate,
		Email:          r.Email,
		UserDepartment: r.DepartmentID,
		FormTerms:      r.AcceptedTerms,
	}
}

// Payload is the JSON body posted to the users endpoint. The keys are the
// ones the existing store already holds.
type Payload struct {
	FullName       string `json:"fullName"`
	BirthDate      string `json:"birthDate"`
	Email          string `json:"email"`
	UserDepartment string `json:"userDepartment"`
	FormTerms      bool   `json:"formTerms"`
}

// Department is one selectable option from the department directory.
type Department struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// OptionValue is the value a department contributes to the department field.
func (d Department) OptionValue() string {
	return strconv.FormatInt(d.ID, 10)
}
