package changes

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/dshills/userform/internal/record"
)

// Lines renders r as one "Label: value" line per field.
func Lines(r record.FormRecord) string {
	var sb strings.Builder
	for _, f := range record.Fields() {
		sb.WriteString(fmt.Sprintf("%s: %v\n", record.Label(f), r.Value(f)))
	}
	return sb.String()
}

// Describe returns a line diff from one record to another, removed lines
// prefixed "- " and added lines "+ ". It returns "" when the records render
// identically.
func Describe(from, to record.FormRecord) string {
	a, b := Lines(from), Lines(to)
	if a == b {
		return ""
	}

	dmp := diffmatchpatch.New()
	charsA, charsB, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(charsA, charsB, false), lines)

	var out strings.Builder
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(prefix)
			out.WriteString(line)
		}
	}
	return out.String()
}
