// Package classify flags sections whose text looks like transcription
// scaffolding rather than prose: front matter, indexes, publisher notices,
// or site boilerplate that slipped past segmentation.
//
// Detection is stopword analysis over stemmed tokens with a position-aware
// threshold: sections at the very beginning or end of a document (where
// front and back matter live) are held to a stricter standard than sections
// in the middle.
package classify

import (
	"math"
	"regexp"
	"strings"

	"github.com/kljensen/snowball"
)

// boilerplateStems holds stemmed words characteristic of transcription
// scaffolding rather than the works' own prose.
var boilerplateStems = map[string]struct{}{
	// publishing and document structure
	"appendix":  {},
	"archiv":    {},
	"contain":   {},
	"content":   {}, // from "table of contents"
	"copyright": {},
	"digit":     {}, // from "digital edition"
	"edit":      {}, // from "edition"
	"ebook":     {},
	"footnot":   {},
	"gutenberg": {},
	"index":     {},
	"page":      {},
	"print":     {},
	"project":   {},
	"publish":   {},
	"text":      {},
	"translat":  {},
	"volum":     {},

	// site and legal boilerplate
	"http":      {},
	"https":     {},
	"permiss":   {},
	"reproduc":  {},
	"reserv":    {},
	"right":     {},
	"sacr":      {}, // from "sacred-texts"
	"statement": {},
	"wikisourc": {},
}

// Classifier scores section text against the boilerplate stopword set.
type Classifier struct {
	tokenRegex *regexp.Regexp
}

// New creates a Classifier.
func New() *Classifier {
	return &Classifier{
		tokenRegex: regexp.MustCompile(`\b[a-zA-Z]+\b`),
	}
}

// IsBoilerplate reports whether the section at index (of total sections in
// document order) reads like scaffolding. Empty text is boilerplate by
// definition; invalid positions are never flagged.
func (c *Classifier) IsBoilerplate(text string, index, total int) bool {
	if total <= 0 || index < 0 || index >= total {
		return false
	}

	tokens := c.tokenRegex.FindAllString(strings.ToLower(text), -1)
	if len(tokens) == 0 {
		return true
	}

	hits := 0
	for _, token := range tokens {
		stemmed, err := snowball.Stem(token, "english", true)
		if err != nil {
			stemmed = token
		}
		if _, ok := boilerplateStems[stemmed]; ok {
			hits++
		}
	}

	ratio := float64(hits) / float64(len(tokens))
	return ratio > c.threshold(index, total)
}

// threshold is position-adjusted: low near the document's edges, where front
// and back matter concentrate, and higher in the middle where classical
// prose legitimately mentions books, pages, and writing.
func (c *Classifier) threshold(index, total int) float64 {
	if total <= 3 {
		// too few sections to trust position; be conservative
		return 0.5
	}

	position := float64(index) / float64(total-1)
	edgeness := 1.0 - math.Abs(2.0*position-1.0)

	const (
		minThreshold = 0.12
		maxThreshold = 0.35
	)
	return minThreshold + (maxThreshold-minThreshold)*edgeness
}
