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

// Structural patterns of the Wikisource transcription of Gummere's Moral
// Letters: 124 letters across three volume regions, headers of the form
// "XVII. ON PHILOSOPHY AND RICHES", "* * *" separators between letters,
// footnote tails introduced by "↑" lines, and front/back matter (contents,
// indexes, appendices, textual apparatus) that must not be mistaken for
// letters.
var (
	// Titles may contain the ASCII apostrophe and the Unicode single
	// quotation marks, with an optional trailing footnote marker.
	reLetterHeader = regexp.MustCompile(`^([IVXLC]+)\.\s+([A-Z][A-Z\s,'\x{2018}\x{2019}\-\.\(\)]+?)(\[\d+\])?\s*$`)
	// Letter XCI is missing its Roman numeral prefix in the source.
	reLetter91Header = regexp.MustCompile(`^ON THE LESSON TO BE DRAWN FROM THE BURNING OF LYONS(\[\d+\])?\s*$`)
	reFootnoteMark   = regexp.MustCompile(`\[\d+\]`)
	reFootnoteLine   = regexp.MustCompile(`^↑`)
	reStarSeparator  = regexp.MustCompile(`^\*\s+\*\s+\*$`)
	reVolumeHeader   = regexp.MustCompile(`^THE EPISTLES OF SENECA$`)
	reVolumeMarker   = regexp.MustCompile(`^Volume [IVX]+\.$`)
	// TOC entries look like headers but carry a trailing page number;
	// apparatus entries have a second period+number ("VIII. 7. differetur Q.").
	reTOCEntry       = regexp.MustCompile(`^[IVXLC]+\.\s+[A-Z].*\s+\d+\s*$`)
	reApparatusEntry = regexp.MustCompile(`^[IVXLC]+\.\s+\d+\.`)
	reContentsHead   = regexp.MustCompile(`^CONTENTS OF VOLUME`)
	reLettersIndex   = regexp.MustCompile(`^(INDEX OF PROPER NAMES|SUBJECT INDEX)`)
	reAppendixHead   = regexp.MustCompile(`^APPENDIX`)
	rePrinterMark    = regexp.MustCompile(`^Printed in Great Britain`)
	reDigitalEdition = regexp.MustCompile(`^About this digital edition$`)
)

const partLetter = "letter"

func newLetters() *Profile {
	return &Profile{
		Kind: Letters,
		Metadata: document.NewMetadata(
			"Moral Letters to Lucilius (Epistulae Morales ad Lucilium)",
			"Seneca",
			"Richard M. Gummere (1917–1925)",
			"Wikisource",
		),
		OutputName: "moral_letters.json",
		Regions:    lettersRegions,
		Normalize: normalize.Options{
			Strip: []*regexp.Regexp{reFootnoteMark},
		},
		Skeleton: lettersSkeleton,
		Checks: Checks{
			Counts: []CountCheck{
				{Part: partLetter, Label: "Letters", Want: 124},
			},
			Ranges: []RangeCheck{
				{Part: partLetter, Label: "letter", Min: 1, Max: 124, Value: func(k segment.Key) int { return k.Letter }},
			},
			MinWords: 20,
			Probe: func(line string) (segment.Key, bool) {
				if num, _, ok := letterHeader(line); ok {
					return segment.Key{Part: partLetter, Letter: num}, true
				}
				return segment.Key{}, false
			},
		},
	}
}

// letterHeader recognizes a letter header and captures its number and title,
// rejecting TOC and textual-apparatus look-alikes.
func letterHeader(line string) (int, string, bool) {
	if line == "" || reTOCEntry.MatchString(line) || reApparatusEntry.MatchString(line) {
		return 0, "", false
	}

	if reLetter91Header.MatchString(line) {
		title := strings.TrimSpace(reFootnoteMark.ReplaceAllString(line, ""))
		return 91, title, true
	}

	m := reLetterHeader.FindStringSubmatch(line)
	if m == nil {
		return 0, "", false
	}
	num := numeral.FromRoman(m[1])
	if num < 1 || num > 124 {
		return 0, "", false
	}
	title := strings.TrimRight(strings.TrimSpace(m[2]), ".")
	return num, title, true
}

// lettersRegions finds the three letter-content regions, one per volume.
// Each begins after a "THE EPISTLES OF SENECA" heading and runs until the
// next volume boundary, index, appendix, or back-matter marker. At least one
// region must exist.
func lettersRegions(lines []string) ([]segment.Region, error) {
	var regions []segment.Region

	i := 0
	for i < len(lines) {
		if !reVolumeHeader.MatchString(strings.TrimSpace(lines[i])) {
			i++
			continue
		}
		start := i + 1
		j := start
		for j < len(lines) {
			s := strings.TrimSpace(lines[j])
			if reVolumeMarker.MatchString(s) || reLettersIndex.MatchString(s) ||
				reAppendixHead.MatchString(s) || rePrinterMark.MatchString(s) ||
				reDigitalEdition.MatchString(s) || reContentsHead.MatchString(s) {
				break
			}
			if j > start && reVolumeHeader.MatchString(s) {
				break
			}
			j++
		}
		regions = append(regions, segment.Region{
			Name:  fmt.Sprintf("volume-%d", len(regions)+1),
			Start: start,
			End:   j,
			Rules: lettersRules(),
		})
		slog.Info("located letter region", "region", len(regions), "start", start+1, "end", j)
		i = j
	}

	if len(regions) == 0 {
		return nil, fmt.Errorf("could not find THE EPISTLES OF SENECA")
	}
	return regions, nil
}

func lettersRules() []segment.Rule {
	return []segment.Rule{
		{
			Name:            "letter-header",
			ExitsSuppressed: true,
			Apply: func(line string, _ *segment.State) (segment.Match, bool) {
				num, title, ok := letterHeader(line)
				if !ok {
					return segment.Match{}, false
				}
				return segment.Match{
					Action: segment.Open,
					Key:    segment.Key{Part: partLetter, Letter: num},
					Title:  title,
				}, true
			},
		},
		{
			Name:  "separator",
			Apply: dropMatch(reStarSeparator),
		},
		{
			// Footnote tails run from the first "↑" line to the next
			// letter header; quoted Latin continuations without the
			// arrow stay suppressed too.
			Name:  "footnote-start",
			Apply: suppressMatch(reFootnoteLine),
		},
	}
}

func lettersSkeleton(raw segment.RawSection) document.Section {
	n := raw.Key.Letter
	return document.Section{
		ID:           fmt.Sprintf("letters_%03d", n),
		LetterNumber: document.Int(n),
		LetterTitle:  document.Str(raw.Title),
		SourceRef:    fmt.Sprintf("Letter %s (%d)", numeral.ToRoman(n), n),
	}
}

// dropMatch builds a rule body that discards lines matching re.
func dropMatch(re *regexp.Regexp) func(string, *segment.State) (segment.Match, bool) {
	return func(line string, _ *segment.State) (segment.Match, bool) {
		if re.MatchString(line) {
			return segment.Match{Action: segment.Drop}, true
		}
		return segment.Match{}, false
	}
}

// suppressMatch builds a rule body that enters a suppressed region on lines
// matching re.
func suppressMatch(re *regexp.Regexp) func(string, *segment.State) (segment.Match, bool) {
	return func(line string, _ *segment.State) (segment.Match, bool) {
		if re.MatchString(line) {
			return segment.Match{Action: segment.Suppress}, true
		}
		return segment.Match{}, false
	}
}
