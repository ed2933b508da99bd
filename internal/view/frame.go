package view

import (
	"strconv"

	"github.com/dshills/userform/internal/record"
)

// Frame is a render-ready snapshot of the view.
type Frame struct {
	Fields        []FieldFrame `json:"fields"`
	Departments   []Option     `json:"departments"`
	Loading       bool         `json:"loading"`
	Phase         string       `json:"phase"`
	SubmitEnabled bool         `json:"submit_enabled"`
	Dirty         bool         `json:"dirty"`
}

// FieldFrame describes one input.
type FieldFrame struct {
	Field       record.Field `json:"field"`
	Label       string       `json:"label"`
	Placeholder string       `json:"placeholder,omitempty"`
	Value       string       `json:"value"`
	State       string       `json:"state"`
	Message     string       `json:"message,omitempty"`
	Dirty       bool         `json:"dirty"`
}

// Option is one entry of the department dropdown.
type Option struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// Frame captures the current state for rendering.
func (v *View) Frame() Frame {
	v.mu.Lock()
	defer v.mu.Unlock()

	values := v.machine.Values()
	fr := Frame{
		Loading:       v.loading,
		Phase:         v.machine.Phase().String(),
		SubmitEnabled: v.machine.CanSubmit(),
		Dirty:         v.machine.Dirty(),
		Departments:   make([]Option, 0, len(v.departments)),
	}
	for _, f := range record.Fields() {
		fs := v.machine.Field(f)
		fr.Fields = append(fr.Fields, FieldFrame{
			Field:       f,
			Label:       record.Label(f),
			Placeholder: record.Placeholder(f),
			Value:       display(values.Value(f)),
			State:       fs.State.String(),
			Message:     v.machine.Message(f),
			Dirty:       fs.Dirty,
		})
	}
	for _, d := range v.departments {
		fr.Departments = append(fr.Departments, Option{
			Value:    d.OptionValue(),
			Label:    d.Name,
			Selected: d.OptionValue() == values.DepartmentID,
		})
	}
	return fr
}

func display(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	}
	return ""
}
