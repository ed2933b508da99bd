// Package form holds the state of one form instance: the raw field values,
// the per-field validation state and the submission phase.
package form

import (
	"errors"
	"fmt"

	"github.com/dshills/userform/internal/record"
	"github.com/dshills/userform/internal/validate"
)

// State is the validation state of a single field.
type State int

const (
	Pristine State = iota
	TouchedValid
	TouchedInvalid
)

func (s State) String() string {
	switch s {
	case Pristine:
		return "pristine"
	case TouchedValid:
		return "touched-valid"
	case TouchedInvalid:
		return "touched-invalid"
	}
	return "unknown"
}

// Phase is the submission phase of the whole form.
type Phase int

const (
	Editable Phase = iota
	Submitting
	Submitted
)

func (p Phase) String() string {
	switch p {
	case Editable:
		return "editable"
	case Submitting:
		return "submitting"
	case Submitted:
		return "submitted"
	}
	return "unknown"
}

var (
	ErrNotSubmittable = errors.New("form is not submittable")
	ErrNotSubmitting  = errors.New("no submission in progress")
	ErrUnknownField   = errors.New("unknown field")
	ErrNotText        = errors.New("field is not a text input")
)

// FieldState is the validation view of one field.
type FieldState struct {
	Field  record.Field
	State  State
	Result validate.Result
	Dirty  bool
}

// Machine is not safe for concurrent use; the view serializes access.
type Machine struct {
	values  record.FormRecord
	fields  map[record.Field]FieldState
	settled map[record.Field]bool
	phase   Phase
}

// New returns a machine holding the default record with every field pristine.
func New() *Machine {
	m := &Machine{settled: make(map[record.Field]bool)}
	m.reset()
	return m
}

func (m *Machine) reset() {
	m.values = record.Default()
	m.fields = make(map[record.Field]FieldState, len(record.Fields()))
	for _, f := range record.Fields() {
		m.fields[f] = FieldState{
			Field:  f,
			State:  Pristine,
			Result: validate.Field(f, m.values.Value(f)),
		}
	}
	m.phase = Editable
	for f := range m.settled {
		m.validate(f)
	}
}

// Edit stores the raw value of a text input without validating it. The
// department and terms fields change only through Select and SetTerms.
func (m *Machine) Edit(f record.Field, value string) error {
	if !record.IsValidField(f) {
		return ErrUnknownField
	}
	if !record.IsText(f) {
		return fmt.Errorf("%w: %s", ErrNotText, f)
	}
	m.values = m.values.With(f, value)
	m.markDirty(f)
	m.reopen()
	return nil
}

// Blur validates f as the user leaves its input.
func (m *Machine) Blur(f record.Field) error {
	if !record.IsValidField(f) {
		return ErrUnknownField
	}
	m.validate(f)
	m.reopen()
	return nil
}

// Select sets the department and validates it at once.
func (m *Machine) Select(departmentID string) {
	m.values.DepartmentID = departmentID
	m.markDirty(record.FieldDepartment)
	m.validate(record.FieldDepartment)
	m.reopen()
}

// ToggleTerms flips the terms flag and validates it at once.
func (m *Machine) ToggleTerms() {
	m.SetTerms(!m.values.AcceptedTerms)
}

// SetTerms sets the terms flag and validates it at once.
func (m *Machine) SetTerms(accepted bool) {
	m.values.AcceptedTerms = accepted
	m.markDirty(record.FieldTerms)
	m.validate(record.FieldTerms)
	m.reopen()
}

// Settle validates f without user interaction and keeps doing so after
// every reset. The department is settled once its options are known,
// because a default selection always exists.
func (m *Machine) Settle(f record.Field) error {
	if !record.IsValidField(f) {
		return ErrUnknownField
	}
	m.settled[f] = true
	m.validate(f)
	return nil
}

func (m *Machine) validate(f record.Field) {
	fs := m.fields[f]
	fs.Result = validate.Field(f, m.values.Value(f))
	if fs.Result == validate.Valid {
		fs.State = TouchedValid
	} else {
		fs.State = TouchedInvalid
	}
	m.fields[f] = fs
}

// reopen leaves the Submitted phase once the user starts a new entry.
func (m *Machine) reopen() {
	if m.phase == Submitted {
		m.phase = Editable
	}
}

func (m *Machine) markDirty(f record.Field) {
	fs := m.fields[f]
	fs.Dirty = m.values.Value(f) != record.Default().Value(f)
	m.fields[f] = fs
}

// Valid reports whether every field has been validated and passed, and
// still passes with its current value. Edits made since the last blur
// disable submission at once; their inline message waits for the blur.
func (m *Machine) Valid() bool {
	for f, fs := range m.fields {
		if fs.State != TouchedValid {
			return false
		}
		if validate.Field(f, m.values.Value(f)) != validate.Valid {
			return false
		}
	}
	return true
}

// CanSubmit reports whether the submit control is enabled.
func (m *Machine) CanSubmit() bool {
	return m.phase != Submitting && m.Valid()
}

// BeginSubmit validates every field against its current value, then
// snapshots the record and enters Submitting. Values edited since their
// last blur are therefore checked before anything is sent.
func (m *Machine) BeginSubmit() (record.FormRecord, error) {
	if !m.CanSubmit() {
		return record.FormRecord{}, ErrNotSubmittable
	}
	for _, f := range record.Fields() {
		m.validate(f)
	}
	if !m.Valid() {
		return record.FormRecord{}, ErrNotSubmittable
	}
	m.phase = Submitting
	return m.values, nil
}

// Accept completes a pending submission and resets the form to its defaults.
// The phase stays Submitted until the next user interaction.
func (m *Machine) Accept() error {
	if m.phase != Submitting {
		return ErrNotSubmitting
	}
	m.reset()
	m.phase = Submitted
	return nil
}

// Reject returns a pending submission to Editable with the values intact.
func (m *Machine) Reject() error {
	if m.phase != Submitting {
		return ErrNotSubmitting
	}
	m.phase = Editable
	return nil
}

// Phase returns the submission phase.
func (m *Machine) Phase() Phase { return m.phase }

// Values returns a copy of the current raw values.
func (m *Machine) Values() record.FormRecord { return m.values }

// Field returns the state of f.
func (m *Machine) Field(f record.Field) FieldState { return m.fields[f] }

// Dirty reports whether any field differs from its default.
func (m *Machine) Dirty() bool {
	for _, fs := range m.fields {
		if fs.Dirty {
			return true
		}
	}
	return false
}

// Message returns the inline message for f, derived from the field's stored
// result. Inputs show it once the field has been touched and failed; the
// terms message shows whenever the terms are not accepted.
func (m *Machine) Message(f record.Field) string {
	fs, ok := m.fields[f]
	if !ok {
		return ""
	}
	if f == record.FieldTerms || fs.State == TouchedInvalid {
		return validate.Message(f, fs.Result)
	}
	return ""
}
