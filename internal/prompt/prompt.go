package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// UserPrompt is the user-interaction capability handed to code that needs
// to report failures or ask before a destructive change. It is passed
// explicitly; nothing reaches for ambient globals.
type UserPrompt interface {
	// Notify shows a blocking message to the user.
	Notify(message string)
	// Confirm asks a yes/no question and returns the answer.
	Confirm(message string) bool
}

// Terminal implements UserPrompt over an input/output stream pair.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminal creates a terminal prompt, typically over stdin/stdout.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Notify prints the message.
func (t *Terminal) Notify(message string) {
	fmt.Fprintln(t.out, message)
}

// Confirm asks the question and reads one line; only "y"/"yes" counts as
// agreement. A read failure counts as refusal.
func (t *Terminal) Confirm(message string) bool {
	fmt.Fprintf(t.out, "%s [y/N]: ", message)

	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
