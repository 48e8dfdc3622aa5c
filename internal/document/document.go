// Package document defines the normalized output model shared by all four
// converters and the builder that turns raw segmented sections into final,
// immutable records.
//
// The section schema is the superset of the fields any one work needs; each
// converter populates its applicable subset and leaves the rest null, so all
// outputs share one schema.
package document

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ecrawley/stoa/internal/counter"
	"github.com/ecrawley/stoa/internal/normalize"
	"github.com/ecrawley/stoa/internal/segment"
)

// Section is one output record: a chapter, letter, fragment, or numbered
// maxim. Sections are immutable once built.
type Section struct {
	ID           string  `json:"id"`
	Book         *int    `json:"book"`
	BookTitle    *string `json:"book_title"`
	Chapter      *int    `json:"chapter"`
	ChapterTitle *string `json:"chapter_title"`
	Sect         *int    `json:"section"`
	LetterNumber *int    `json:"letter_number"`
	LetterTitle  *string `json:"letter_title"`
	Text         string  `json:"text"`
	WordCount    int     `json:"word_count"`
	SourceRef    string  `json:"source_reference"`

	// Key is carried for validation (uniqueness, expected-count checks)
	// and is not part of the serialized record.
	Key segment.Key `json:"-"`
}

// Metadata is the bibliographic block attached to every output document.
type Metadata struct {
	Work       string `json:"work"`
	Author     string `json:"author"`
	Translator string `json:"translator"`
	Source     string `json:"source"`
	ParsedDate string `json:"parsed_date"`
}

// Document is the complete output: metadata plus sections in document order.
type Document struct {
	Metadata Metadata  `json:"metadata"`
	Sections []Section `json:"sections"`
}

// Int returns a pointer to n, for the nullable numeric fields.
func Int(n int) *int { return &n }

// Str returns a pointer to s, for the nullable string fields. An empty
// string maps to null.
func Str(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Skeleton fills a section's identity fields (id, numbering, titles, source
// reference) from its raw form. Text and word count are filled by Build.
type Skeleton func(raw segment.RawSection) Section

// Build normalizes each raw section and assembles the final records.
// Sections whose text is empty after normalization are dropped with a
// warning; this is expected when a header is followed only by suppressed
// material.
func Build(raws []segment.RawSection, opts normalize.Options, skeleton Skeleton) []Section {
	words, _ := counter.New(counter.Words)

	sections := make([]Section, 0, len(raws))
	for _, raw := range raws {
		text := normalize.Lines(raw.Lines, opts)
		s := skeleton(raw)
		if text == "" {
			slog.Warn("section empty after cleaning, dropping", "section", s.SourceRef)
			continue
		}
		s.Text = text
		s.WordCount = words.Count(text)
		s.Key = raw.Key
		sections = append(sections, s)
	}

	return sections
}

// NewMetadata stamps the bibliographic block with today's date.
func NewMetadata(work, author, translator, source string) Metadata {
	return Metadata{
		Work:       work,
		Author:     author,
		Translator: translator,
		Source:     source,
		ParsedDate: time.Now().Format("2006-01-02"),
	}
}

// WriteFile serializes the document as indented JSON. Non-ASCII text is
// written as-is, matching the transcriptions' punctuation and Greek.
func (d *Document) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// ReadFile loads a previously written document, for the search command.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", path, err)
	}
	return &d, nil
}
