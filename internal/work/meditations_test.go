package work

import (
	"strings"
	"testing"

	"github.com/ecrawley/stoa/internal/document"
)

func meditationsFixture() []string {
	return []string{
		"The Internet Classics Archive",
		"The Meditations by Marcus Aurelius, translated by George Long",
		"",
		"BOOK ONE",
		"",
		"From my grandfather Verus I learned good morals and the government of",
		"my temper.",
		"",
		"From the reputation and remembrance of my father, modesty and a manly",
		"character.",
		"",
		"Among the Quadi at the Granua.",
		"",
		"----------------------------------------------------------------------",
		"",
		"BOOK TWO",
		"",
		"Begin the morning by saying to thyself, I shall meet with the",
		"busy-body, the ungrateful, arrogant, deceitful, envious, unsocial.",
		"",
		"This in Carnuntum.",
		"",
		"BOOK THREE",
		"",
		"We ought to consider not only that our life is daily wasting away and",
		"a smaller part of it is left.",
		"",
		"THE END",
		"",
		"Copyright statement follows and must be ignored.",
	}
}

func TestMeditationsSegmentation(t *testing.T) {
	p := newMeditations()
	raws, err := p.Segment(meditationsFixture())
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	sections := document.Build(raws, p.Normalize, p.Skeleton)

	if len(sections) != 4 {
		t.Fatalf("expected 4 sections, got %d: %v", len(sections), ids(sections))
	}

	if sections[0].ID != "meditations_b1_s1" || sections[1].ID != "meditations_b1_s2" {
		t.Errorf("unexpected book 1 ids: %v", ids(sections))
	}

	// the Granua colophon closes Book 1 and belongs to its final section
	b1last := sections[1]
	if !strings.Contains(b1last.Text, "Among the Quadi at the Granua.") {
		t.Errorf("book 1 colophon not merged: %q", b1last.Text)
	}

	b2 := sections[2]
	if b2.ID != "meditations_b2_s1" {
		t.Errorf("unexpected book 2 id %s", b2.ID)
	}
	if !strings.Contains(b2.Text, "This in Carnuntum.") {
		t.Errorf("book 2 colophon not merged: %q", b2.Text)
	}

	b3 := sections[3]
	if b3.ID != "meditations_b3_s1" {
		t.Errorf("unexpected book 3 id %s", b3.ID)
	}
	if *b3.BookTitle != "Book Three" {
		t.Errorf("book title = %q", *b3.BookTitle)
	}

	for _, s := range sections {
		if strings.Contains(s.Text, "Copyright") {
			t.Errorf("back matter leaked into %s", s.ID)
		}
		if strings.Contains(s.Text, "---") {
			t.Errorf("dash separator leaked into %s", s.ID)
		}
	}
}

func TestMeditationsParagraphJoin(t *testing.T) {
	p := newMeditations()
	raws, err := p.Segment(meditationsFixture())
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	sections := document.Build(raws, p.Normalize, p.Skeleton)

	// wrapped source lines stay separate lines; no reflow for this work
	if !strings.Contains(sections[0].Text, "government of\nmy temper.") {
		t.Errorf("line wrapping not preserved: %q", sections[0].Text)
	}
}

func TestMeditationsMissingAnchors(t *testing.T) {
	p := newMeditations()
	if _, err := p.Segment([]string{"no book header", "THE END"}); err == nil {
		t.Error("expected error for missing BOOK ONE")
	}

	p = newMeditations()
	if _, err := p.Segment([]string{"BOOK ONE", "some text"}); err == nil {
		t.Error("expected error for missing THE END")
	}
}
