package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ecrawley/stoa/internal/document"
)

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
		want string
	}{
		{
			name: "short text unchanged",
			text: "a brief line",
			max:  50,
			want: "a brief line",
		},
		{
			name: "newlines flattened",
			text: "first line\nsecond line",
			max:  50,
			want: "first line second line",
		},
		{
			name: "long text truncated with ellipsis",
			text: strings.Repeat("word ", 100),
			max:  20,
			want: "word word word word …",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := excerpt(tt.text, tt.max)
			if got != tt.want {
				t.Errorf("excerpt() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunSearchOnWrittenDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")

	doc := &document.Document{
		Metadata: document.NewMetadata("Test Work", "Author", "Translator", "source"),
		Sections: []document.Section{
			{ID: "a", Text: "The obstacle on the path becomes the way.", WordCount: 8, SourceRef: "Section A"},
			{ID: "b", Text: "Waste no more time arguing what a good person should be.", WordCount: 11, SourceRef: "Section B"},
		},
	}
	if err := doc.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	out, err := RunSearch(context.Background(), SearchConfig{
		Input:  path,
		Query:  "obstacle becomes the way",
		Top:    1,
		Ranker: "tfidf",
		Quiet:  true,
	})
	if err != nil {
		t.Fatalf("RunSearch: %v", err)
	}
	if !strings.Contains(out, "Section A") {
		t.Errorf("expected Section A in results, got:\n%s", out)
	}
}

func TestRunSearchMissingFile(t *testing.T) {
	_, err := RunSearch(context.Background(), SearchConfig{
		Input:  filepath.Join(t.TempDir(), "missing.json"),
		Query:  "anything",
		Ranker: "bm25",
		Quiet:  true,
	})
	if err == nil {
		t.Error("expected error for missing input file")
	}
}

func TestRunParseUnknownWork(t *testing.T) {
	src := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(src, []byte("some unrecognizable text\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := RunParse(context.Background(), ParseConfig{
		Source: src,
		Work:   "epigrams",
		Quiet:  true,
	})
	if err == nil {
		t.Error("expected error for unknown work name")
	}
}

func TestRunParseUndetectableSource(t *testing.T) {
	src := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(src, []byte("nothing here resembles an anchor\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := RunParse(context.Background(), ParseConfig{
		Source: src,
		Quiet:  true,
	})
	if err == nil || !strings.Contains(err.Error(), "identify") {
		t.Errorf("expected detection error, got %v", err)
	}
}

func TestRunParseMeditationsEndToEnd(t *testing.T) {
	var b strings.Builder
	b.WriteString("The Meditations of Marcus Aurelius\n\n")
	b.WriteString("BOOK ONE\n\n")
	b.WriteString("From my grandfather Verus I learned good morals and the government of my temper, and from him also I gained much else besides.\n\n")
	b.WriteString("From the reputation and remembrance of my father, modesty and a manly character, which carried me through many difficulties in life.\n\n")
	b.WriteString("BOOK TWO\n\n")
	b.WriteString("Begin the morning by saying to thyself, I shall meet with the busy-body, the ungrateful, arrogant, deceitful, envious, unsocial.\n\n")
	b.WriteString("THE END\n")

	dir := t.TempDir()
	src := filepath.Join(dir, "meditations.txt")
	out := filepath.Join(dir, "out.json")
	if err := os.WriteFile(src, []byte(b.String()), 0o644); err != nil {
		t.Fatal(err)
	}

	err := RunParse(context.Background(), ParseConfig{
		Source: src,
		Output: out,
		Quiet:  true,
	})
	if err != nil {
		t.Fatalf("RunParse: %v", err)
	}

	doc, err := document.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(doc.Sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(doc.Sections))
	}
	if doc.Sections[0].ID != "meditations_b1_s1" {
		t.Errorf("unexpected first id %s", doc.Sections[0].ID)
	}
	if doc.Sections[2].Book == nil || *doc.Sections[2].Book != 2 {
		t.Errorf("expected third section in book 2")
	}
}

func TestRunParseDryRunWritesNothing(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "meditations.txt")
	out := filepath.Join(dir, "out.json")

	text := "BOOK ONE\n\nFrom my grandfather Verus I learned good morals and the government of my temper.\n\nTHE END\n"
	if err := os.WriteFile(src, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}

	err := RunParse(context.Background(), ParseConfig{
		Source: src,
		Output: out,
		DryRun: true,
		Quiet:  true,
	})
	if err != nil {
		t.Fatalf("RunParse: %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("dry run must not write the output file")
	}
}
