package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/dshills/userform/internal/record"
	"github.com/dshills/userform/internal/view"
)

func sampleFrame() view.Frame {
	return view.Frame{
		Fields: []view.FieldFrame{
			{Field: record.FieldFullName, Label: "Full name", Placeholder: "Full name", Value: "Jane Doe", State: "touched-valid"},
			{Field: record.FieldBirthDate, Label: "Birth date", Placeholder: "DD/MM/YYYY", Value: "2020/02/31", State: "touched-invalid", Message: "Wrong date pattern"},
			{Field: record.FieldEmail, Label: "Email", Placeholder: "user@example.com", State: "pristine"},
			{Field: record.FieldDepartment, Label: "Department", Value: "2", State: "touched-valid"},
			{Field: record.FieldTerms, Label: "I accept the terms", Value: "false", State: "pristine", Message: "This field is required"},
		},
		Departments: []view.Option{
			{Value: "1", Label: "CS"},
			{Value: "2", Label: "Math", Selected: true},
		},
		Phase: "editable",
	}
}

func TestNewRenderer_Text(t *testing.T) {
	r, err := NewRenderer("text")
	if err != nil {
		t.Fatalf("NewRenderer text: %v", err)
	}
	out, err := r.Render(sampleFrame())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	s := string(out)
	for _, want := range []string{
		"Full name: Jane Doe",
		"  ! Wrong date pattern",
		"Email: <user@example.com>",
		"    1) CS",
		"  > 2) Math",
		"[ ] I accept the terms",
		"  ! This field is required",
		"[ Save ] (disabled)",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("text output missing %q:\n%s", want, s)
		}
	}
	if strings.Index(s, "1) CS") > strings.Index(s, "2) Math") {
		t.Errorf("options out of order:\n%s", s)
	}
}

func TestNewRenderer_TextEnabledAndChecked(t *testing.T) {
	fr := sampleFrame()
	fr.SubmitEnabled = true
	fr.Fields[4].Value = "true"
	fr.Fields[4].Message = ""

	r, _ := NewRenderer("")
	out, err := r.Render(fr)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	s := string(out)
	if strings.Contains(s, "(disabled)") {
		t.Errorf("submit should be enabled:\n%s", s)
	}
	if !strings.Contains(s, "[x] I accept the terms") {
		t.Errorf("terms should be checked:\n%s", s)
	}
}

func TestNewRenderer_TextLoading(t *testing.T) {
	fr := sampleFrame()
	fr.Loading = true
	fr.Departments = nil

	r, _ := NewRenderer("text")
	out, _ := r.Render(fr)
	if !strings.Contains(string(out), "(loading departments...)") {
		t.Errorf("missing loading hint:\n%s", out)
	}
}

func TestNewRenderer_JSON(t *testing.T) {
	r, err := NewRenderer("json")
	if err != nil {
		t.Fatalf("NewRenderer json: %v", err)
	}
	out, err := r.Render(sampleFrame())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Count(string(out), "\n") != 1 {
		t.Errorf("json frame should be a single line: %q", out)
	}
	var decoded view.Frame
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\noutput: %s", err, out)
	}
	if len(decoded.Departments) != 2 || !decoded.Departments[1].Selected {
		t.Errorf("departments mismatch: %+v", decoded.Departments)
	}
}

func TestNewRenderer_UnknownFormat(t *testing.T) {
	_, err := NewRenderer("xml")
	if err == nil {
		t.Error("expected error for unknown format, got nil")
	}
}
