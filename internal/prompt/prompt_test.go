package prompt

import (
	"bytes"
	"strings"
	"testing"
)

func TestNotify(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader(""), &out)

	term.Notify("update calendar day failed: day already fully booked")

	if got := out.String(); got != "update calendar day failed: day already fully booked\n" {
		t.Errorf("Notify() wrote %q", got)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"yes", "y\n", true},
		{"yes word", "yes\n", true},
		{"uppercase yes", "YES\n", true},
		{"no", "n\n", false},
		{"empty line defaults to no", "\n", false},
		{"closed input defaults to no", "", false},
		{"garbage defaults to no", "sure\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			term := NewTerminal(strings.NewReader(tt.input), &out)

			got := term.Confirm("Close this day?")
			if got != tt.want {
				t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
			}

			if !strings.Contains(out.String(), "[y/N]") {
				t.Errorf("prompt missing [y/N] marker: %q", out.String())
			}
		})
	}
}
