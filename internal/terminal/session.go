// Package terminal drives a form view from line-oriented input.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dshills/userform/internal/changes"
	"github.com/dshills/userform/internal/record"
	"github.com/dshills/userform/internal/render"
	"github.com/dshills/userform/internal/view"
)

const helpText = `Commands:
  show                  redraw the form
  set <field> <value>   enter a value (fields: name, birth, email)
  dept <id>             select a department
  terms                 toggle the terms checkbox
  diff                  show changes from the defaults
  submit                send the form
  help                  show this help
  quit                  leave without sending
`

// Session runs one form in a terminal.
type Session struct {
	view     *view.View
	renderer render.Renderer
	prompt   *Prompter
	out      io.Writer
}

// NewSession returns a session for v. The prompter should be the same one
// passed to the view as its Notifier, so acknowledgments read the same input.
func NewSession(v *view.View, r render.Renderer, p *Prompter, out io.Writer) *Session {
	return &Session{view: v, renderer: r, prompt: p, out: out}
}

// Run mounts the view, walks the user through every field once, then
// accepts commands until quit or end of input. Leaving discards the form.
func (s *Session) Run(ctx context.Context) error {
	if err := s.view.Mount(ctx); err != nil && !errors.Is(err, view.ErrUnmounted) {
		return err
	}
	defer s.view.Unmount()

	if err := s.render(); err != nil {
		return err
	}
	if !s.guided() {
		return nil
	}
	if err := s.render(); err != nil {
		return err
	}
	fmt.Fprintln(s.out, `Type "submit" to send, "help" for commands.`)
	return s.loop(ctx)
}

func (s *Session) render() error {
	out, err := s.renderer.Render(s.view.Frame())
	if err != nil {
		return err
	}
	_, err = s.out.Write(out)
	return err
}

// guided prompts for every field in order. It returns false at end of input.
func (s *Session) guided() bool {
	for _, f := range record.Fields() {
		if !record.IsText(f) {
			continue
		}
		for {
			line, ok := s.prompt.Ask(fmt.Sprintf("%s (%s): ", record.Label(f), record.Placeholder(f)))
			if !ok {
				return false
			}
			s.setText(f, line)
			if s.view.Message(f) == "" {
				break
			}
		}
	}

	if deps := s.view.Departments(); len(deps) > 0 {
		for _, d := range deps {
			fmt.Fprintf(s.out, "  %s) %s\n", d.OptionValue(), d.Name)
		}
		for {
			line, ok := s.prompt.Ask(fmt.Sprintf("%s [%s]: ", record.Label(record.FieldDepartment), s.view.Values().DepartmentID))
			if !ok {
				return false
			}
			if line == "" || s.selectDepartment(line) {
				break
			}
		}
	}

	yes, ok := s.prompt.Confirm("Accept the terms? [y/N]: ", false)
	if !ok {
		return false
	}
	if yes != s.view.Values().AcceptedTerms {
		s.view.ToggleTerms()
	}
	s.printMessage(record.FieldTerms)
	return true
}

func (s *Session) loop(ctx context.Context) error {
	for {
		line, ok := s.prompt.Ask("> ")
		if !ok {
			return nil
		}
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch strings.ToLower(cmd) {
		case "":
		case "show":
			if err := s.render(); err != nil {
				return err
			}
		case "set":
			name, value, _ := strings.Cut(arg, " ")
			f, err := record.ParseField(name)
			if err != nil || !record.IsText(f) {
				fmt.Fprintln(s.out, "  usage: set <name|birth|email> <value>")
				continue
			}
			s.setText(f, strings.TrimSpace(value))
		case "dept", "department":
			s.selectDepartment(arg)
		case "terms":
			s.view.ToggleTerms()
			s.printMessage(record.FieldTerms)
		case "diff":
			if d := changes.Describe(record.Default(), s.view.Values()); d != "" {
				fmt.Fprint(s.out, d)
			} else {
				fmt.Fprintln(s.out, "  (no changes)")
			}
		case "submit":
			if err := s.submit(ctx); err != nil {
				return err
			}
		case "help":
			fmt.Fprint(s.out, helpText)
		case "quit", "exit":
			return nil
		default:
			fmt.Fprintf(s.out, "  unknown command %q, type help\n", cmd)
		}
	}
}

// setText is one edit of a text input followed by leaving it.
func (s *Session) setText(f record.Field, value string) {
	if err := s.view.Change(f, value); err != nil {
		fmt.Fprintf(s.out, "  %s\n", err)
		return
	}
	if err := s.view.Blur(f); err != nil {
		fmt.Fprintf(s.out, "  %s\n", err)
		return
	}
	s.printMessage(f)
}

func (s *Session) selectDepartment(id string) bool {
	if err := s.view.Select(id); err != nil {
		fmt.Fprintf(s.out, "  ! no department %q\n", id)
		return false
	}
	return true
}

func (s *Session) printMessage(f record.Field) {
	if msg := s.view.Message(f); msg != "" {
		fmt.Fprintf(s.out, "  ! %s\n", msg)
	}
}

// submit sends the form. Rejections are not reported: the form simply stays
// as it was and can be sent again.
func (s *Session) submit(ctx context.Context) error {
	if !s.view.CanSubmit() {
		fmt.Fprintln(s.out, "  Save is disabled until every field is valid.")
		return s.render()
	}
	_, err := s.view.Submit(ctx)
	if errors.Is(err, view.ErrSubmitDisabled) {
		fmt.Fprintln(s.out, "  Save is disabled until every field is valid.")
	}
	return s.render()
}
