package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// prompter wraps interactive input for the score command.
type prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// ask prints a prompt and reads one line of input.
func (p *prompter) ask(prompt string) string {
	fmt.Fprintf(p.out, "%s ", prompt)
	if p.scanner.Scan() {
		return strings.TrimSpace(p.scanner.Text())
	}
	return ""
}

// askDefault prints a prompt with a default value shown in brackets.
func (p *prompter) askDefault(prompt, defaultVal string) string {
	answer := p.ask(fmt.Sprintf("%s [%s]:", prompt, defaultVal))
	if answer == "" {
		return defaultVal
	}
	return answer
}
