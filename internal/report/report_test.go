package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ecrawley/stoa/internal/document"
	"github.com/ecrawley/stoa/internal/segment"
	"github.com/ecrawley/stoa/internal/work"
)

func testSections() []document.Section {
	long := strings.Repeat("steady words of honest prose flowing onward ", 5)
	return []document.Section{
		{
			ID:        "x_ch01",
			Key:       segment.Key{Part: "chapter", Chapter: 1},
			Text:      long,
			WordCount: len(strings.Fields(long)),
			SourceRef: "Chapter 1",
		},
		{
			ID:        "x_ch02",
			Key:       segment.Key{Part: "chapter", Chapter: 2},
			Text:      "too short",
			WordCount: 2,
			SourceRef: "Chapter 2",
		},
	}
}

func TestValidateCountMismatch(t *testing.T) {
	var buf bytes.Buffer
	checks := work.Checks{
		Counts: []work.CountCheck{{Part: "chapter", Label: "Chapters", Want: 3}},
	}
	Validate(&buf, testSections(), nil, checks)

	out := buf.String()
	if !strings.Contains(out, "Chapters: 2") || !strings.Contains(out, "expected 3") {
		t.Errorf("count mismatch not reported:\n%s", out)
	}
}

func TestValidateMissingRange(t *testing.T) {
	var buf bytes.Buffer
	checks := work.Checks{
		Ranges: []work.RangeCheck{{
			Part: "chapter", Label: "chapter", Min: 1, Max: 3,
			Value: func(k segment.Key) int { return k.Chapter },
		}},
	}
	Validate(&buf, testSections(), nil, checks)

	if !strings.Contains(buf.String(), "missing chapter values: [3]") {
		t.Errorf("missing range value not reported:\n%s", buf.String())
	}
}

func TestValidateDuplicateKeys(t *testing.T) {
	sections := testSections()
	sections[1].Key = sections[0].Key

	var buf bytes.Buffer
	Validate(&buf, sections, nil, work.Checks{})

	if !strings.Contains(buf.String(), "duplicate hierarchy keys") {
		t.Errorf("duplicate keys not reported:\n%s", buf.String())
	}
}

func TestValidateShortSections(t *testing.T) {
	var buf bytes.Buffer
	Validate(&buf, testSections(), nil, work.Checks{MinWords: 20})

	out := buf.String()
	if !strings.Contains(out, "fewer than 20 words (1)") {
		t.Errorf("short section not reported:\n%s", out)
	}
	if !strings.Contains(out, "Chapter 2") {
		t.Errorf("short section not identified:\n%s", out)
	}
}

func TestValidateResidualMarkers(t *testing.T) {
	sections := testSections()
	sections[0].Text += " leftover[12] marker"

	var buf bytes.Buffer
	Validate(&buf, sections, nil, work.Checks{})

	if !strings.Contains(buf.String(), "residual annotation markers") {
		t.Errorf("residual marker not reported:\n%s", buf.String())
	}
}

func TestValidateWordCountMismatch(t *testing.T) {
	sections := testSections()
	sections[0].WordCount = 1

	var buf bytes.Buffer
	Validate(&buf, sections, nil, work.Checks{})

	if !strings.Contains(buf.String(), "word_count 1 does not match") {
		t.Errorf("word count mismatch not reported:\n%s", buf.String())
	}
}

func TestValidateUnmatchedHeaders(t *testing.T) {
	lines := []string{"CHAPTER 1", "text", "CHAPTER 7", "more text"}
	checks := work.Checks{
		Probe: func(line string) (segment.Key, bool) {
			if strings.HasPrefix(line, "CHAPTER ") {
				n := int(line[len("CHAPTER ")] - '0')
				return segment.Key{Part: "chapter", Chapter: n}, true
			}
			return segment.Key{}, false
		},
	}

	var buf bytes.Buffer
	Validate(&buf, testSections(), lines, checks)

	out := buf.String()
	if !strings.Contains(out, "no matching section (1)") {
		t.Errorf("unmatched header not reported:\n%s", out)
	}
	if !strings.Contains(out, `line 3: "CHAPTER 7"`) {
		t.Errorf("unmatched header not located:\n%s", out)
	}
}

func TestAnyMatchesWildcard(t *testing.T) {
	sections := []document.Section{
		{Key: segment.Key{Part: "chapter", Book: 2, Chapter: 5}},
	}

	// zero-valued book is a wildcard: a probe without book context still
	// matches a section that carries one
	if !anyMatches(sections, segment.Key{Part: "chapter", Chapter: 5}) {
		t.Error("wildcard book should match")
	}
	if anyMatches(sections, segment.Key{Part: "chapter", Chapter: 6}) {
		t.Error("different chapter must not match")
	}
	if anyMatches(sections, segment.Key{Part: "letter", Chapter: 5}) {
		t.Error("different part must not match")
	}
}

func TestDryRun(t *testing.T) {
	var buf bytes.Buffer
	DryRun(&buf, testSections())

	out := buf.String()
	if !strings.Contains(out, "Total: 2 sections") {
		t.Errorf("dry run total missing:\n%s", out)
	}
	if !strings.Contains(out, "Chapter 1:") {
		t.Errorf("dry run rows missing:\n%s", out)
	}
}

func TestSample(t *testing.T) {
	var buf bytes.Buffer
	Sample(&buf, testSections(), 5)

	// n larger than the corpus clamps to every section
	out := buf.String()
	if !strings.Contains(out, "Sample Sections (2 random)") {
		t.Errorf("sample header wrong:\n%s", out)
	}
}

func TestPreview(t *testing.T) {
	if got := preview("short", 10); got != "short" {
		t.Errorf("preview(short) = %q", got)
	}
	if got := preview("a very long line of text", 6); got != "a very..." {
		t.Errorf("preview truncation = %q", got)
	}
	// rune-safe truncation
	if got := preview("ἐφ' ἡμῖν and more", 4); got != "ἐφ' ..." {
		t.Errorf("preview on multibyte text = %q", got)
	}
}
