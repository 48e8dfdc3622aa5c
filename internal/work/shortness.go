package work

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/ecrawley/stoa/internal/document"
	"github.com/ecrawley/stoa/internal/normalize"
	"github.com/ecrawley/stoa/internal/segment"
)

// Structural patterns of the Wikisource transcription of Basore's De
// Brevitate Vitae: twenty chapters opened by an Arabic number and period at
// line start with the chapter's first words on the same line (chapter 4
// lacks the space after the period), a "Footnotes" block with "↑" lines
// after every chapter, and a header block plus table of contents before
// chapter 1.
var (
	reShortnessChapter = regexp.MustCompile(`^(\d+)\.\s*(.*)`)
	reFootnotesHead    = regexp.MustCompile(`^Footnotes\s*$`)
	reShortnessArrow   = regexp.MustCompile(`^↑`)
)

func newShortness() *Profile {
	return &Profile{
		Kind: Shortness,
		Metadata: document.NewMetadata(
			"On the Shortness of Life (De Brevitate Vitae)",
			"Seneca",
			"John W. Basore (1932)",
			"Wikisource",
		),
		OutputName: "on_the_shortness_of_life.json",
		Regions:    shortnessRegions,
		Normalize: normalize.Options{
			Strip:  []*regexp.Regexp{reFootnoteMark},
			Reflow: true,
		},
		Skeleton: shortnessSkeleton,
		Checks: Checks{
			Counts: []CountCheck{
				{Part: partChapter, Label: "Chapters", Want: 20},
			},
			Ranges: []RangeCheck{
				{Part: partChapter, Label: "chapter", Min: 1, Max: 20, Value: func(k segment.Key) int { return k.Chapter }},
			},
			MinWords: 20,
			Probe: func(line string) (segment.Key, bool) {
				if m := reShortnessChapter.FindStringSubmatch(line); m != nil {
					if n := atoi(m[1]); n >= 1 && n <= 20 {
						return segment.Key{Part: partChapter, Chapter: n}, true
					}
				}
				return segment.Key{}, false
			},
		},
	}
}

// shortnessRegions starts the single content region at the header of
// chapter 1, skipping the title block and table of contents; that anchor is
// required.
func shortnessRegions(lines []string) ([]segment.Region, error) {
	start := -1
	for i, raw := range lines {
		if m := reShortnessChapter.FindStringSubmatch(strings.TrimSpace(raw)); m != nil && atoi(m[1]) == 1 {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, fmt.Errorf("could not find the start of chapter 1")
	}
	slog.Info("located shortness content", "start", start+1)

	return []segment.Region{{
		Name:  "chapters",
		Start: start,
		End:   len(lines),
		Rules: shortnessRules(),
	}}, nil
}

func shortnessRules() []segment.Rule {
	return []segment.Rule{
		{
			// The chapter's first words sit on the header line itself and
			// become the section's opening content.
			Name:            "chapter-header",
			ExitsSuppressed: true,
			Apply: func(line string, _ *segment.State) (segment.Match, bool) {
				m := reShortnessChapter.FindStringSubmatch(line)
				if m == nil {
					return segment.Match{}, false
				}
				n := atoi(m[1])
				if n < 1 || n > 20 {
					return segment.Match{}, false
				}
				return segment.Match{
					Action: segment.Open,
					Key:    segment.Key{Part: partChapter, Chapter: n},
					Rest:   strings.TrimSpace(m[2]),
				}, true
			},
		},
		{
			Name:  "footnotes-header",
			Apply: suppressMatch(reFootnotesHead),
		},
		{
			// Safety net for stray footnote lines outside a Footnotes block.
			Name:  "footnote-line",
			Apply: suppressMatch(reShortnessArrow),
		},
	}
}

func shortnessSkeleton(raw segment.RawSection) document.Section {
	n := raw.Key.Chapter
	return document.Section{
		ID:        fmt.Sprintf("shortness_ch%02d", n),
		Chapter:   document.Int(n),
		SourceRef: fmt.Sprintf("Chapter %d", n),
	}
}
