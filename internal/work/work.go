// Package work defines the four supported transcription profiles. A profile
// bundles everything document-specific: noise predicates, classifier rule
// tables, region discovery against the file's anchor markers, normalizer
// options, section identity (ids, titles, source references), bibliographic
// metadata, and the structural expectations the validator checks.
//
// The segmentation engine in internal/segment is generic; adding a fifth
// work means adding a profile here, not new control flow.
package work

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/ecrawley/stoa/internal/document"
	"github.com/ecrawley/stoa/internal/normalize"
	"github.com/ecrawley/stoa/internal/segment"
)

// Kind names a supported work.
type Kind string

const (
	Discourses  Kind = "discourses"
	Letters     Kind = "letters"
	Meditations Kind = "meditations"
	Shortness   Kind = "shortness"
)

// Kinds lists the supported works in a stable order.
var Kinds = []Kind{Discourses, Letters, Meditations, Shortness}

// CountCheck is an expected section count for one part of a work.
type CountCheck struct {
	Part  string
	Label string
	Want  int
}

// RangeCheck asserts that every key in an inclusive numeric range is present
// for one part of a work.
type RangeCheck struct {
	Part     string
	Label    string
	Min, Max int
	// Value extracts the checked coordinate from a key.
	Value func(k segment.Key) int
}

// Checks describes the structural invariants the validator verifies for a
// work. All checks are advisory; violations are reported, never fatal.
type Checks struct {
	Counts  []CountCheck
	Ranges  []RangeCheck
	PerBook map[int]int // expected chapter counts keyed by book, if fixed
	// MinWords flags sections below this word count as suspicious.
	MinWords int
	// Probe recognizes header-shaped lines in the original document; the
	// validator cross-scans for probes that never matched an emitted
	// section. Zero-valued numeric fields in the returned key are
	// wildcards.
	Probe func(line string) (segment.Key, bool)
}

// Profile is one work's complete parsing configuration. Constructors return
// a fresh profile per run; rule tables hold closures over run-local state,
// so profiles must not be shared between runs.
type Profile struct {
	Kind       Kind
	Metadata   document.Metadata
	OutputName string

	Noise     func(line string) bool
	Regions   func(lines []string) ([]segment.Region, error)
	Post      func(raws []segment.RawSection) []segment.RawSection
	Normalize normalize.Options
	Skeleton  document.Skeleton
	Checks    Checks
}

// New constructs a fresh profile for the named work.
func New(kind Kind) (*Profile, error) {
	switch kind {
	case Discourses:
		return newDiscourses(), nil
	case Letters:
		return newLetters(), nil
	case Meditations:
		return newMeditations(), nil
	case Shortness:
		return newShortness(), nil
	default:
		return nil, fmt.Errorf("unknown work %q (supported: discourses, letters, meditations, shortness)", kind)
	}
}

// Segment runs the full segmentation for this profile: region discovery,
// the engine pass, and any document-specific post pass.
func (p *Profile) Segment(lines []string) ([]segment.RawSection, error) {
	regions, err := p.Regions(lines)
	if err != nil {
		return nil, err
	}
	raws := segment.Run(lines, p.Noise, regions)
	if p.Post != nil {
		raws = p.Post(raws)
	}
	return raws, nil
}

// Detect identifies the work from its anchor signatures. It scans the whole
// line stream; the first signature found wins, with the more specific
// signatures checked first.
func Detect(lines []string) (Kind, error) {
	for _, line := range lines {
		s := strings.TrimSpace(line)
		switch {
		case s == "THE EPISTLES OF SENECA":
			return Letters, nil
		case s == "BOOK ONE":
			return Meditations, nil
		case strings.HasPrefix(s, "The Discourses of Epictetus"):
			return Discourses, nil
		case strings.HasPrefix(s, "ON THE SHORTNESS OF LIFE"):
			return Shortness, nil
		}
	}
	return "", fmt.Errorf("could not identify the work from its anchor markers; pass --work explicitly")
}

// atoi parses digits already vetted by a classifier regex; malformed input
// yields 0, which every range guard rejects.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// allUpper reports whether s contains at least one letter and no lower-case
// letters, the shape of the all-caps title lines used by the transcriptions.
func allUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasLetter = true
		}
	}
	return hasLetter
}
