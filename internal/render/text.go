package render

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/dshills/userform/internal/record"
	"github.com/dshills/userform/internal/view"
)

type textRenderer struct{}

var funcs = template.FuncMap{
	"isText":  func(f record.Field) bool { return record.IsText(f) },
	"isTerms": func(f record.Field) bool { return f == record.FieldTerms },
	"check": func(v string) string {
		if v == "true" {
			return "[x]"
		}
		return "[ ]"
	},
}

var textTemplate = template.Must(template.New("form").Funcs(funcs).Parse(`== User form ==
{{ range .Fields }}{{ if isText .Field }}
{{ .Label }}: {{ if .Value }}{{ .Value }}{{ else }}<{{ .Placeholder }}>{{ end }}
{{ if .Message }}  ! {{ .Message }}
{{ end }}{{ else if isTerms .Field }}
{{ check .Value }} {{ .Label }}
{{ if .Message }}  ! {{ .Message }}
{{ end }}{{ else }}
{{ .Label }}: {{ .Value }}
{{ if $.Loading }}  (loading departments...)
{{ end }}{{ range $.Departments }}  {{ if .Selected }}>{{ else }} {{ end }} {{ .Value }}) {{ .Label }}
{{ end }}{{ if .Message }}  ! {{ .Message }}
{{ end }}{{ end }}{{ end }}
[ Save ]{{ if not .SubmitEnabled }} (disabled){{ end }}{{ if eq .Phase "submitting" }} sending...{{ end }}
`))

func (r *textRenderer) Render(frame view.Frame) ([]byte, error) {
	var buf bytes.Buffer
	if err := textTemplate.Execute(&buf, frame); err != nil {
		return nil, fmt.Errorf("rendering text: %w", err)
	}
	return buf.Bytes(), nil
}
