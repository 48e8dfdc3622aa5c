package search

import (
	"math"
	"regexp"
	"strings"
)

var tokenRe = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// tfidfCorpus pre-computes term and document frequencies so each query term
// is scored as tf * log(N/df).
type tfidfCorpus struct {
	termFreqs []map[string]float64
	docFreqs  map[string]int
	total     int
}

func newTFIDFCorpus(texts []string) *tfidfCorpus {
	c := &tfidfCorpus{
		termFreqs: make([]map[string]float64, len(texts)),
		docFreqs:  make(map[string]int),
		total:     len(texts),
	}

	for i, text := range texts {
		tokens := tokenize(text)
		c.termFreqs[i] = termFrequency(tokens)

		seen := make(map[string]bool)
		for _, tok := range tokens {
			seen[tok] = true
		}
		for term := range seen {
			c.docFreqs[term]++
		}
	}

	return c
}

func (c *tfidfCorpus) score(query string, idx int) float64 {
	if idx < 0 || idx >= len(c.termFreqs) {
		return 0
	}

	tf := c.termFreqs[idx]
	var total float64
	for _, term := range tokenize(query) {
		f := tf[term]
		if f == 0 {
			continue
		}
		df := c.docFreqs[term]
		if df == 0 {
			continue
		}
		total += f * math.Log(float64(c.total)/float64(df))
	}
	return total
}

// tokenize lowercases, splits on non-alphanumerics, and drops words shorter
// than three characters.
func tokenize(text string) []string {
	if text == "" {
		return nil
	}
	var out []string
	for _, tok := range tokenRe.Split(strings.ToLower(text), -1) {
		if len(tok) >= 3 {
			out = append(out, tok)
		}
	}
	return out
}

func termFrequency(tokens []string) map[string]float64 {
	if len(tokens) == 0 {
		return map[string]float64{}
	}
	counts := make(map[string]int)
	for _, tok := range tokens {
		counts[tok]++
	}
	freqs := make(map[string]float64, len(counts))
	n := float64(len(tokens))
	for term, count := range counts {
		freqs[term] = float64(count) / n
	}
	return freqs
}
