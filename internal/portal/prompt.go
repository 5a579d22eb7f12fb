package portal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter reads user input for forms, confirmations and the login screen.
type Prompter struct {
	in  *bufio.Reader
	raw io.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), raw: in, out: out}
}

// Line prompts for one line of input and trims it.
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// LineDefault prompts with a default that applies on empty input.
func (p *Prompter) LineDefault(label, def string) (string, error) {
	line, err := p.Line(fmt.Sprintf("%s [%s]: ", label, def))
	if err != nil {
		return "", err
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

// Password reads without echo when stdin is a terminal, falling back to a
// plain line read otherwise (pipes, tests).
func (p *Prompter) Password(label string) (string, error) {
	fmt.Fprint(p.out, label)
	if f, ok := p.raw.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		data, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(p.out)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(data)), nil
	}
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question; only an explicit yes counts.
func (p *Prompter) Confirm(label string) bool {
	answer, err := p.Line(label + " (y/N): ")
	if err != nil {
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	}
	return false
}
