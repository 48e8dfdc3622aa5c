package work

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/ecrawley/stoa/internal/document"
	"github.com/ecrawley/stoa/internal/numeral"
	"github.com/ecrawley/stoa/internal/segment"
)

// Structural patterns of the Internet Classics Archive transcription of
// Long's Meditations: twelve books headed by spelled-out ordinals ("BOOK
// ONE"), sections delimited by blank lines, dash separators between books,
// location colophons closing Books 1 and 2, and a "THE END" terminator
// before the copyright block.
var (
	reMeditationsBook = regexp.MustCompile(`^BOOK\s+(ONE|TWO|THREE|FOUR|FIVE|SIX|SEVEN|EIGHT|NINE|TEN|ELEVEN|TWELVE)$`)
	reDashSeparator   = regexp.MustCompile(`^-{10,}$`)
	reTheEnd          = regexp.MustCompile(`^THE END$`)
	reColophonBook1   = regexp.MustCompile(`^Among the Quadi at the Granua\.\s*$`)
	reColophonBook2   = regexp.MustCompile(`^This in Carnuntum\.\s*$`)
)

const partSection = "section"

var meditationsBookTitles = map[int]string{
	1: "Book One", 2: "Book Two", 3: "Book Three", 4: "Book Four",
	5: "Book Five", 6: "Book Six", 7: "Book Seven", 8: "Book Eight",
	9: "Book Nine", 10: "Book Ten", 11: "Book Eleven", 12: "Book Twelve",
}

func newMeditations() *Profile {
	return &Profile{
		Kind: Meditations,
		Metadata: document.NewMetadata(
			"The Meditations",
			"Marcus Aurelius",
			"George Long",
			"The Internet Classics Archive",
		),
		OutputName: "meditations.json",
		Regions:    meditationsRegions,
		Post:       attachColophons,
		Skeleton:   meditationsSkeleton,
		Checks: Checks{
			Ranges: []RangeCheck{
				{Part: partSection, Label: "book", Min: 1, Max: 12, Value: func(k segment.Key) int { return k.Book }},
			},
			MinWords: 20,
			Probe: func(line string) (segment.Key, bool) {
				if m := reMeditationsBook.FindStringSubmatch(line); m != nil {
					n, _ := numeral.FromOrdinalWord(m[1])
					return segment.Key{Part: partSection, Book: n}, true
				}
				return segment.Key{}, false
			},
		},
	}
}

// meditationsRegions bounds the content between "BOOK ONE" and "THE END";
// both anchors are required.
func meditationsRegions(lines []string) ([]segment.Region, error) {
	start, end := -1, -1

	for i, raw := range lines {
		if strings.TrimSpace(raw) == "BOOK ONE" {
			start = i
			break
		}
	}
	for i := len(lines) - 1; i >= 0; i-- {
		if reTheEnd.MatchString(strings.TrimSpace(lines[i])) {
			end = i
			break
		}
	}

	if start < 0 {
		return nil, fmt.Errorf("could not find BOOK ONE, unable to locate content start")
	}
	if end < 0 {
		return nil, fmt.Errorf("could not find THE END, unable to locate content end")
	}
	slog.Info("located meditations body", "start", start+1, "end", end, "header_lines", start, "footer_lines", len(lines)-end)

	return []segment.Region{{
		Name:  "books",
		Start: start,
		End:   end,
		Rules: meditationsRules(),
	}}, nil
}

// meditationsRules numbers sections within each book as blank-line-delimited
// runs of text. The book and running section number are carried in closures
// shared by the two opening rules.
func meditationsRules() []segment.Rule {
	book, sect := 0, 0

	return []segment.Rule{
		{
			Name: "book-header",
			Apply: func(line string, _ *segment.State) (segment.Match, bool) {
				m := reMeditationsBook.FindStringSubmatch(line)
				if m == nil {
					return segment.Match{}, false
				}
				book, _ = numeral.FromOrdinalWord(m[1])
				sect = 1
				return segment.Match{
					Action: segment.Open,
					Key:    segment.Key{Part: partSection, Book: book, Section: sect},
				}, true
			},
		},
		{
			Name:  "separator",
			Apply: dropMatch(reDashSeparator),
		},
		{
			// A blank line after accumulated content closes the section
			// and opens its successor. Blank lines before any content are
			// plain spacing and fall through.
			Name: "section-break",
			Apply: func(line string, st *segment.State) (segment.Match, bool) {
				if line != "" || st.Current == nil || !hasContent(st.Current) {
					return segment.Match{}, false
				}
				sect++
				return segment.Match{
					Action: segment.Open,
					Key:    segment.Key{Part: partSection, Book: book, Section: sect},
				}, true
			},
		},
	}
}

func hasContent(s *segment.RawSection) bool {
	for _, l := range s.Lines {
		if l != "" {
			return true
		}
	}
	return false
}

// attachColophons merges the location colophons that close Books 1 and 2
// ("Among the Quadi at the Granua.", "This in Carnuntum.") into the final
// section of their book instead of emitting them as standalone sections.
func attachColophons(raws []segment.RawSection) []segment.RawSection {
	colophons := map[int]*regexp.Regexp{1: reColophonBook1, 2: reColophonBook2}

	out := raws[:0]
	for _, raw := range raws {
		re := colophons[raw.Key.Book]
		if re != nil && len(out) > 0 && isColophon(raw, re) {
			prev := &out[len(out)-1]
			if prev.Key.Book == raw.Key.Book {
				prev.Lines = append(prev.Lines, "")
				prev.Lines = append(prev.Lines, raw.Lines...)
				slog.Info("attached colophon to last section", "book", raw.Key.Book)
				continue
			}
		}
		out = append(out, raw)
	}
	return out
}

// isColophon reports whether a section consists of nothing but a single
// colophon line.
func isColophon(raw segment.RawSection, re *regexp.Regexp) bool {
	seen := false
	for _, l := range raw.Lines {
		if l == "" {
			continue
		}
		if seen || !re.MatchString(l) {
			return false
		}
		seen = true
	}
	return seen
}

func meditationsSkeleton(raw segment.RawSection) document.Section {
	b, s := raw.Key.Book, raw.Key.Section
	return document.Section{
		ID:        fmt.Sprintf("meditations_b%d_s%d", b, s),
		Book:      document.Int(b),
		BookTitle: document.Str(meditationsBookTitles[b]),
		Sect:      document.Int(s),
		SourceRef: fmt.Sprintf("Book %d, Section %d", b, s),
	}
}
