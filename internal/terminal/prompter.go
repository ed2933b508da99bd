package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Prompter reads answers line by line and doubles as the view's Notifier.
type Prompter struct {
	sc  *bufio.Scanner
	out io.Writer
}

// NewPrompter reads from in and writes prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{sc: bufio.NewScanner(in), out: out}
}

// Ask writes prompt and returns the next trimmed input line. ok is false at
// end of input.
func (p *Prompter) Ask(prompt string) (line string, ok bool) {
	if prompt != "" {
		fmt.Fprint(p.out, prompt)
	}
	if !p.sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(p.sc.Text()), true
}

// Confirm asks a yes/no question; an empty answer takes def.
func (p *Prompter) Confirm(prompt string, def bool) (yes bool, ok bool) {
	line, ok := p.Ask(prompt)
	if !ok {
		return false, false
	}
	switch strings.ToLower(line) {
	case "":
		return def, true
	case "y", "yes":
		return true, true
	}
	return false, true
}

// Acknowledge shows message and blocks until the user presses Enter.
func (p *Prompter) Acknowledge(_ context.Context, message string) {
	fmt.Fprintf(p.out, "\n*** %s ***\n", message)
	p.Ask("Press Enter to continue.")
	fmt.Fprintln(p.out)
}
