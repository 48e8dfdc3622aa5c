package work

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/ecrawley/stoa/internal/document"
	"github.com/ecrawley/stoa/internal/normalize"
	"github.com/ecrawley/stoa/internal/numeral"
	"github.com/ecrawley/stoa/internal/segment"
)

// Structural patterns of the sacred-texts.com transcription of Matheson's
// Discourses: 4 books of Roman-numeral chapters with titles on the following
// line, Arrian's preface before Book I, the Fragments and the Manual
// (Enchiridion) after Book IV, per-book Notes sections, page markers, and a
// Subject Index at the end.
var (
	reBookHeader     = regexp.MustCompile(`^BOOK ([IVX]+)$`)
	reChapterHeader  = regexp.MustCompile(`^CHAPTER ([IVXLC]+)$`)
	rePageMarker     = regexp.MustCompile(`^\[p\.\s*\d+\]$`)
	reSiteHeader     = regexp.MustCompile(`^The Discourses of Epictetus, tr\. by P\.E\.? Matheson`)
	reNoteLine       = regexp.MustCompile(`^\^[a-z0-9]+-\d+`)
	reNotesHeader    = regexp.MustCompile(`^Book [IVX]+\.?\s*Notes\.?$`)
	reDiscoursesSep  = regexp.MustCompile(`^The Discourses\.$`)
	rePreface        = regexp.MustCompile(`^PREFACE$`)
	rePrefaceSub     = regexp.MustCompile(`^ARRIANUS TO LUCIUS GELLIUS GREETING$`)
	reFragmentsHead  = regexp.MustCompile(`^FRAGMENTS\s*(\[\*[a-z0-9\-]+\])?\s*$`)
	reFragmentNumber = regexp.MustCompile(`^(\d+[a-z]?)\s*(?:\[\*[a-z0-9\-]+\])?\s*$`)
	reFragmentTitle  = regexp.MustCompile(`^(FROM |RUFUS:)`)
	reManualHeader   = regexp.MustCompile(`^THE MANUAL \[ENCHIRIDION\] OF EPICTETUS\s*(\[\*[a-z0-9\-]+\])?\s*$`)
	reManualNumber   = regexp.MustCompile(`^(\d+)\s*(?:\[\*[a-z0-9\-]+\])?\s*$`)
	reIndexHeader    = regexp.MustCompile(`^SUBJECT INDEX TO THE DISCOURSES`)
	reFootnoteRef    = regexp.MustCompile(`\s*\[\*[a-z0-9\-]+\]`)
	reInlinePage     = regexp.MustCompile(`\[p\.\s*\d+\]`)
)

const (
	partPreface  = "preface"
	partChapter  = "chapter"
	partFragment = "fragment"
	partManual   = "manual"
)

var discoursesBookTitles = map[int]string{
	1: "Book I", 2: "Book II", 3: "Book III", 4: "Book IV",
}

func newDiscourses() *Profile {
	return &Profile{
		Kind: Discourses,
		Metadata: document.NewMetadata(
			"The Discourses of Epictetus, with the Enchiridion and Fragments",
			"Epictetus (recorded by Arrian)",
			"P.E. Matheson (1916)",
			"sacred-texts.com",
		),
		OutputName: "discourses.json",
		Noise:      discoursesNoise,
		Regions:    discoursesRegions,
		Normalize: normalize.Options{
			Strip: []*regexp.Regexp{reFootnoteRef, reInlinePage},
		},
		Skeleton: discoursesSkeleton,
		Checks: Checks{
			Counts: []CountCheck{
				{Part: partPreface, Label: "Preface", Want: 1},
				{Part: partChapter, Label: "Discourse chapters", Want: 95},
				{Part: partFragment, Label: "Fragments", Want: 37},
				{Part: partManual, Label: "Enchiridion sections", Want: 53},
			},
			PerBook:  map[int]int{1: 30, 2: 26, 3: 26, 4: 13},
			MinWords: 20,
			Probe: func(line string) (segment.Key, bool) {
				if m := reChapterHeader.FindStringSubmatch(line); m != nil {
					return segment.Key{Part: partChapter, Chapter: numeral.FromRoman(m[1])}, true
				}
				return segment.Key{}, false
			},
		},
	}
}

func discoursesNoise(line string) bool {
	return rePageMarker.MatchString(line) || reSiteHeader.MatchString(line)
}

// discoursesRegions locates the four content regions: preface, the chapter
// body (Book I through the Book IV notes), fragments, and the Manual. The
// preface and Book I anchors are required; the fragments and Manual sections
// are skipped with a warning when their anchors are absent.
func discoursesRegions(lines []string) ([]segment.Region, error) {
	prefaceStart, book1Start, contentEnd := -1, -1, -1

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if prefaceStart < 0 && rePreface.MatchString(line) {
			prefaceStart = i
		}
		if book1Start < 0 && line == "BOOK I" {
			book1Start = i
		}
		if reNotesHeader.MatchString(line) && strings.Contains(line, "IV") {
			contentEnd = i
			break
		}
		// "The Discourses." immediately followed by the Book IV notes
		// header also marks the end of the chapter body.
		if reDiscoursesSep.MatchString(line) {
			for j := i + 1; j < len(lines) && j < i+5; j++ {
				next := strings.TrimSpace(lines[j])
				if reNotesHeader.MatchString(next) && strings.Contains(next, "IV") {
					contentEnd = i
					break
				}
			}
			if contentEnd >= 0 {
				break
			}
		}
	}

	if prefaceStart < 0 {
		return nil, fmt.Errorf("could not find PREFACE")
	}
	if book1Start < 0 {
		return nil, fmt.Errorf("could not find BOOK I")
	}
	if contentEnd < 0 {
		slog.Warn("could not find Book IV notes marker, using end of file")
		contentEnd = len(lines)
	}
	slog.Info("located discourses body", "preface", prefaceStart+1, "book1", book1Start+1, "end", contentEnd)

	prefaceKey := segment.Key{Part: partPreface}
	regions := []segment.Region{
		{
			Name:  "preface",
			Start: prefaceStart,
			End:   book1Start,
			Open:  &prefaceKey,
			Rules: []segment.Rule{
				dropRule("preface-heading", rePreface),
				dropRule("preface-subtitle", rePrefaceSub),
			},
		},
		{
			Name:  "body",
			Start: book1Start,
			End:   contentEnd,
			Rules: discoursesBodyRules(),
		},
	}

	if r, ok := fragmentsRegion(lines); ok {
		regions = append(regions, r)
	}
	if r, ok := manualRegion(lines); ok {
		regions = append(regions, r)
	}

	return regions, nil
}

// discoursesBodyRules builds the chapter-body rule table. The book number is
// carried in a closure shared by the book and chapter rules; a book header
// closes the open chapter and exits any notes region.
func discoursesBodyRules() []segment.Rule {
	currentBook := 0

	return []segment.Rule{
		{
			Name: "notes-header",
			Apply: func(line string, _ *segment.State) (segment.Match, bool) {
				if reNotesHeader.MatchString(line) || reDiscoursesSep.MatchString(line) {
					return segment.Match{Action: segment.Suppress}, true
				}
				return segment.Match{}, false
			},
		},
		{
			Name:  "note-line",
			Apply: suppressMatch(reNoteLine),
		},
		{
			Name:            "book-header",
			ExitsSuppressed: true,
			Apply: func(line string, _ *segment.State) (segment.Match, bool) {
				m := reBookHeader.FindStringSubmatch(line)
				if m == nil {
					return segment.Match{}, false
				}
				currentBook = numeral.FromRoman(m[1])
				return segment.Match{Action: segment.Close}, true
			},
		},
		{
			Name: "chapter-header",
			Apply: func(line string, _ *segment.State) (segment.Match, bool) {
				m := reChapterHeader.FindStringSubmatch(line)
				if m == nil || currentBook == 0 {
					return segment.Match{}, false
				}
				return segment.Match{
					Action:     segment.Open,
					Key:        segment.Key{Part: partChapter, Book: currentBook, Chapter: numeral.FromRoman(m[1])},
					AwaitTitle: true,
				}, true
			},
		},
	}
}

// fragmentsRegion locates the Fragments section, ending at the fragment
// notes ("^f-...") or the Manual header.
func fragmentsRegion(lines []string) (segment.Region, bool) {
	start, end := -1, -1
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if start < 0 && reFragmentsHead.MatchString(line) {
			start = i + 1
			continue
		}
		if start >= 0 && reNoteLine.MatchString(line) && strings.HasPrefix(line, "^f-") {
			end = i
			break
		}
		if start >= 0 && reManualHeader.MatchString(line) {
			end = i
			break
		}
	}
	if start < 0 {
		slog.Warn("could not find FRAGMENTS section")
		return segment.Region{}, false
	}
	if end < 0 {
		end = len(lines)
	}
	slog.Info("located fragments", "start", start+1, "end", end)

	opened := false
	return segment.Region{
		Name:  "fragments",
		Start: start,
		End:   end,
		Rules: []segment.Rule{
			{
				// Fragment 1 alone is numbered with the Roman "I".
				Name: "fragment-one-roman",
				Apply: func(line string, _ *segment.State) (segment.Match, bool) {
					if opened || line != "I" {
						return segment.Match{}, false
					}
					opened = true
					return fragmentOpen("1"), true
				},
			},
			{
				Name: "fragment-number",
				Apply: func(line string, _ *segment.State) (segment.Match, bool) {
					m := reFragmentNumber.FindStringSubmatch(line)
					if m == nil {
						return segment.Match{}, false
					}
					opened = true
					return fragmentOpen(m[1]), true
				},
			},
		},
	}, true
}

func fragmentOpen(num string) segment.Match {
	return segment.Match{
		Action:     segment.Open,
		Key:        segment.Key{Part: partFragment, Fragment: num},
		AwaitTitle: true,
		TitleWhen: func(line string) bool {
			return reFragmentTitle.MatchString(line) || allUpper(line)
		},
	}
}

// manualRegion locates the Manual (Enchiridion), ending at the manual notes
// ("^m-...") or the Subject Index.
func manualRegion(lines []string) (segment.Region, bool) {
	start, end := -1, -1
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if start < 0 && reManualHeader.MatchString(line) {
			start = i + 1
			continue
		}
		if start >= 0 && reNoteLine.MatchString(line) && strings.HasPrefix(line, "^m-") {
			end = i
			break
		}
		if start >= 0 && reIndexHeader.MatchString(line) {
			end = i
			break
		}
	}
	if start < 0 {
		slog.Warn("could not find THE MANUAL section")
		return segment.Region{}, false
	}
	if end < 0 {
		end = len(lines)
	}
	slog.Info("located manual", "start", start+1, "end", end)

	// A bare number opens a section only when it is a plausible successor
	// of the last accepted one; numbers appearing inside running text stay
	// content. Best effort: legitimately repeated numbering would be missed.
	lastNum := 0
	return segment.Region{
		Name:  "manual",
		Start: start,
		End:   end,
		Rules: []segment.Rule{
			{
				Name: "manual-number",
				Apply: func(line string, _ *segment.State) (segment.Match, bool) {
					m := reManualNumber.FindStringSubmatch(line)
					if m == nil {
						return segment.Match{}, false
					}
					num := atoi(m[1])
					if num < 1 || num > 53 || num <= lastNum {
						return segment.Match{}, false
					}
					lastNum = num
					return segment.Match{
						Action: segment.Open,
						Key:    segment.Key{Part: partManual, Section: num},
					}, true
				},
			},
		},
	}, true
}

func discoursesSkeleton(raw segment.RawSection) document.Section {
	switch raw.Key.Part {
	case partPreface:
		return document.Section{
			ID:           "discourses_preface",
			BookTitle:    document.Str("Preface"),
			ChapterTitle: document.Str("Arrianus to Lucius Gellius Greeting"),
			SourceRef:    "Preface",
		}
	case partChapter:
		b, c := raw.Key.Book, raw.Key.Chapter
		return document.Section{
			ID:           fmt.Sprintf("discourses_b%d_c%d", b, c),
			Book:         document.Int(b),
			BookTitle:    document.Str(discoursesBookTitles[b]),
			Chapter:      document.Int(c),
			ChapterTitle: document.Str(raw.Title),
			SourceRef:    fmt.Sprintf("Book %s, Chapter %s", numeral.ToRoman(b), numeral.ToRoman(c)),
		}
	case partFragment:
		return document.Section{
			ID:           fmt.Sprintf("discourses_frag_%s", raw.Key.Fragment),
			BookTitle:    document.Str("Fragments"),
			ChapterTitle: document.Str(raw.Title),
			SourceRef:    fmt.Sprintf("Fragment %s", raw.Key.Fragment),
		}
	default: // partManual
		n := raw.Key.Section
		return document.Section{
			ID:        fmt.Sprintf("enchiridion_s%d", n),
			BookTitle: document.Str("The Manual (Enchiridion)"),
			Chapter:   document.Int(n),
			SourceRef: fmt.Sprintf("Enchiridion, Section %d", n),
		}
	}
}

// dropRule discards lines matching re.
func dropRule(name string, re *regexp.Regexp) segment.Rule {
	return segment.Rule{Name: name, Apply: dropMatch(re)}
}
