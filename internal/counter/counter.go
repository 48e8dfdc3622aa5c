// Package counter provides the text counting strategies used across the
// converter: whitespace-delimited word counting (the authority for every
// section's word_count field), rune counting, and tiktoken-based token
// counting reported in validation summaries for retrieval budgeting.
package counter

import (
	"strings"
	"unicode/utf8"
)

// Counter is a single text counting strategy.
type Counter interface {
	// Count returns the number of units (words, characters, or tokens) in text.
	Count(text string) int

	// Name returns a human-readable name for this counting method.
	Name() string
}

// Method selects a counting strategy.
type Method int

const (
	// Words counts whitespace-delimited tokens.
	Words Method = iota
	// Characters counts UTF-8 runes, whitespace included.
	Characters
	// Tokens counts tiktoken cl100k_base tokens.
	Tokens
)

// String returns the string representation of the counting method.
func (m Method) String() string {
	switch m {
	case Words:
		return "words"
	case Characters:
		return "characters"
	case Tokens:
		return "tokens"
	default:
		return "unknown"
	}
}

// New creates a Counter for the given method. Token counting can fail if the
// encoding cannot be initialized; the other strategies never error.
func New(method Method) (Counter, error) {
	switch method {
	case Characters:
		return charCounter{}, nil
	case Tokens:
		return NewTokenCounter()
	default:
		return wordCounter{}, nil
	}
}

// wordCounter counts words by splitting on runs of Unicode whitespace.
// This must agree with a naive strings.Fields split; the validator compares
// section word counts against exactly that quantity.
type wordCounter struct{}

func (wordCounter) Count(text string) int {
	return len(strings.Fields(text))
}

func (wordCounter) Name() string { return "words" }

// charCounter counts UTF-8 runes, not bytes.
type charCounter struct{}

func (charCounter) Count(text string) int {
	return utf8.RuneCountInString(text)
}

func (charCounter) Name() string { return "characters" }
