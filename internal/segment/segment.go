// Package segment implements the line-driven segmentation engine shared by
// all supported works. A document is scanned once, left to right, as a
// sequence of regions; within a region an ordered rule table classifies each
// line and drives a small state machine that accumulates raw sections.
//
// Document-specific behavior (header shapes, suppressed regions, numbering
// anomalies) lives entirely in the rule tables supplied by callers; the
// engine itself knows nothing about any particular work.
package segment

// Key locates a section within its work. Part discriminates the subdivision
// of the work (chapter, fragment, letter, ...); the remaining fields form the
// numeric coordinates relevant to that part. Keys are comparable and must be
// unique across one run's output.
type Key struct {
	Part     string
	Book     int
	Chapter  int
	Section  int
	Letter   int
	Fragment string
}

// IsZero reports whether k carries no identifying information.
func (k Key) IsZero() bool {
	return k == Key{}
}

// RawSection is a section as accumulated by the engine: its key, any title
// captured during segmentation, and the content lines in document order.
// Lines are stripped of surrounding whitespace but otherwise untouched;
// embedded blank lines mark paragraph breaks for the normalizer.
type RawSection struct {
	Key   Key
	Title string
	Lines []string
	Start int // 0-based index of the line that opened the section
}

// Action tells the engine what to do with a matched line.
type Action int

const (
	// Drop discards the line without touching the open section.
	Drop Action = iota
	// Open closes the current section and starts a new one from Match.Key.
	Open
	// Close closes the current section without opening a new one
	// (higher-level boundaries such as book headers).
	Close
	// Suppress discards the line and enters a suppressed region; subsequent
	// lines are discarded until a rule marked ExitsSuppressed matches.
	Suppress
)

// Match is the classification a rule produces for a line it recognizes.
type Match struct {
	Action Action
	Key    Key    // section key, for Open
	Title  string // title captured on the header line itself
	Rest   string // content captured from the tail of the header line

	// AwaitTitle marks that the new section's title is expected on a
	// following line. TitleWhen, if non-nil, decides whether a candidate
	// line is that title; when it declines, the line is ordinary content.
	AwaitTitle bool
	TitleWhen  func(line string) bool
}

// State is the engine context visible to rules, for the few classifications
// that depend on where the scan currently is.
type State struct {
	// Current is the open section, or nil.
	Current *RawSection
	// Suppressed reports whether the scan is inside a suppressed region.
	Suppressed bool
}

// Rule pairs a name (for diagnostics) with a classification function.
// Rules are tried in table order; the first match wins.
type Rule struct {
	Name string
	// ExitsSuppressed marks rules still consulted inside a suppressed
	// region. All other rules are skipped there.
	ExitsSuppressed bool
	Apply           func(line string, st *State) (Match, bool)
}

// Region is a contiguous span of lines with its own rule table. Regions are
// discovered by anchor scanning before segmentation begins; a region may open
// a section implicitly for content that precedes any header (e.g. a preface).
type Region struct {
	Name       string
	Start, End int // half-open line index range
	Rules      []Rule
	Open       *Key   // section opened at region start, if any
	OpenTitle  string // title for the implicitly opened section
}
