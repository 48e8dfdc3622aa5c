package normalize

import (
	"regexp"
	"testing"
)

var footnoteRefs = regexp.MustCompile(`\s*\[\*[a-z0-9\-]+\]`)

func TestString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		opts     Options
		expected string
	}{
		{
			name:     "plain text unchanged",
			input:    "one line\nanother line",
			expected: "one line\nanother line",
		},
		{
			name:     "strips inline markers",
			input:    "the soul [*1-1] endures",
			opts:     Options{Strip: []*regexp.Regexp{footnoteRefs}},
			expected: "the soul endures",
		},
		{
			name:     "normalizes line endings",
			input:    "first\r\nsecond\rthird",
			expected: "first\nsecond\nthird",
		},
		{
			name:     "collapses blank line runs",
			input:    "para one\n\n\n\n\npara two",
			expected: "para one\n\npara two",
		},
		{
			name:     "collapses horizontal whitespace",
			input:    "spaced   out\ttext",
			expected: "spaced out text",
		},
		{
			name:     "trims lines and result",
			input:    "  indented  \n\n  more  \n\n",
			expected: "indented\n\nmore",
		},
		{
			name:     "empty after cleaning",
			input:    "   \n\n \t \n",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := String(tt.input, tt.opts)
			if got != tt.expected {
				t.Errorf("String(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestStringReflow(t *testing.T) {
	input := "You will see\nthat this is so.\n\nA second\nparagraph here."
	expected := "You will see that this is so.\n\nA second paragraph here."

	got := String(input, Options{Reflow: true})
	if got != expected {
		t.Errorf("reflow = %q, want %q", got, expected)
	}
}

func TestLines(t *testing.T) {
	lines := []string{"first part", "", "", "", "second part"}
	got := Lines(lines, Options{})
	expected := "first part\n\nsecond part"
	if got != expected {
		t.Errorf("Lines = %q, want %q", got, expected)
	}
}

// Normalization must be a fixed point: running it again on its own output
// changes nothing.
func TestIdempotence(t *testing.T) {
	inputs := []string{
		"word [12] and  more\n\n\n\nnext   para\r\nlast",
		"  leading\nmiddle  \n\n\ntrailing  ",
		"reflowed\ntext over\nlines\n\nnext one",
	}
	marker := regexp.MustCompile(`\[\d+\]`)

	for _, opts := range []Options{
		{Strip: []*regexp.Regexp{marker}},
		{Strip: []*regexp.Regexp{marker}, Reflow: true},
	} {
		for _, in := range inputs {
			once := String(in, opts)
			twice := String(once, opts)
			if once != twice {
				t.Errorf("not idempotent with reflow=%v:\nonce:  %q\ntwice: %q", opts.Reflow, once, twice)
			}
		}
	}
}
