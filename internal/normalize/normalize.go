// Package normalize turns a section's accumulated raw lines into clean prose.
//
// The pipeline order matters: inline annotation markers are stripped first
// (so a marker split across adjacent whitespace cannot survive collapsing),
// then line endings are unified, runs of blank lines are reduced to a single
// paragraph break, horizontal whitespace is collapsed without touching line
// breaks, and finally every line and the whole result are trimmed. The
// pipeline is idempotent: normalizing already-normalized text is a no-op.
package normalize

import (
	"regexp"
	"strings"
)

var (
	blankRuns  = regexp.MustCompile(`\n{3,}`)
	horizontal = regexp.MustCompile(`[^\S\n]+`)
)

// Options selects the document-specific parts of normalization.
type Options struct {
	// Strip lists inline annotation marker patterns (bracketed footnote
	// references, page markers) removed from the text.
	Strip []*regexp.Regexp
	// Reflow joins the lines of each paragraph with single spaces instead
	// of preserving the transcription's line breaks.
	Reflow bool
}

// Lines normalizes a section's raw lines into a single string.
func Lines(lines []string, opts Options) string {
	return String(strings.Join(lines, "\n"), opts)
}

// String normalizes a block of text.
func String(text string, opts Options) string {
	for _, re := range opts.Strip {
		text = re.ReplaceAllString(text, "")
	}

	// unify line endings before any newline-sensitive step
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	if opts.Reflow {
		return reflow(text)
	}

	text = blankRuns.ReplaceAllString(text, "\n\n")
	text = horizontal.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// reflow groups consecutive non-blank lines into paragraphs, joins each
// paragraph's lines with single spaces, and separates paragraphs with one
// blank line.
func reflow(text string) string {
	var paragraphs []string
	var current []string

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(horizontal.ReplaceAllString(line, " "))
		if line == "" {
			if len(current) > 0 {
				paragraphs = append(paragraphs, strings.Join(current, " "))
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		paragraphs = append(paragraphs, strings.Join(current, " "))
	}

	return strings.Join(paragraphs, "\n\n")
}
