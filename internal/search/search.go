// Package search provides lexical search over converted documents.
//
// Two rankers are available: BM25 (the default, field-aware via bm25md) and
// classical TF-IDF. Both operate over section texts loaded from a converted
// JSON document, so queries can target individual chapters, letters, or
// sections rather than the whole work.
package search

import (
	"fmt"
	"sort"

	"github.com/chriscorrea/bm25md"

	"github.com/ecrawley/stoa/internal/document"
)

// Ranker selects the scoring algorithm used for a query.
type Ranker string

const (
	RankerBM25  Ranker = "bm25"
	RankerTFIDF Ranker = "tfidf"
)

// Result pairs a section with its relevance score for a query.
type Result struct {
	Section document.Section
	Score   float64
	Index   int
}

// Index holds sections prepared for repeated querying.
type Index struct {
	sections []document.Section
	ranker   Ranker

	bm25  *bm25md.Corpus
	tfidf *tfidfCorpus
}

// NewIndex builds a search index over the given sections using the chosen
// ranker. Building the index performs the one-time corpus analysis, so
// subsequent queries are cheap.
func NewIndex(sections []document.Section, ranker Ranker) (*Index, error) {
	idx := &Index{sections: sections, ranker: ranker}

	switch ranker {
	case RankerBM25:
		corpus := bm25md.NewCorpus()
		parser := bm25md.NewMarkdownFieldParser()
		for i, sec := range sections {
			text := searchableText(sec)
			doc := bm25md.Document{
				ID:       i,
				Fields:   parser.ParseDocument(text),
				Original: text,
			}
			corpus.AddDocument(doc)
		}
		idx.bm25 = corpus
	case RankerTFIDF:
		texts := make([]string, len(sections))
		for i, sec := range sections {
			texts[i] = searchableText(sec)
		}
		idx.tfidf = newTFIDFCorpus(texts)
	default:
		return nil, fmt.Errorf("unknown ranker %q (expected bm25 or tfidf)", ranker)
	}

	return idx, nil
}

// Query scores every section against the query and returns the top n results
// ordered by descending score. Sections that score zero are omitted.
func (idx *Index) Query(query string, n int) []Result {
	var results []Result
	for i, sec := range idx.sections {
		var score float64
		switch idx.ranker {
		case RankerBM25:
			score = idx.bm25.Score(query, i)
		case RankerTFIDF:
			score = idx.tfidf.score(query, i)
		}
		if score > 0 {
			results = append(results, Result{Section: sec, Score: score, Index: i})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Index < results[j].Index
	})

	if n > 0 && len(results) > n {
		results = results[:n]
	}
	return results
}

// searchableText combines a section's titles with its body so that queries
// matching a chapter heading rank that chapter even when the body phrasing
// differs.
func searchableText(sec document.Section) string {
	text := sec.Text
	if sec.ChapterTitle != nil && *sec.ChapterTitle != "" {
		text = *sec.ChapterTitle + "\n\n" + text
	}
	if sec.LetterTitle != nil && *sec.LetterTitle != "" {
		text = *sec.LetterTitle + "\n\n" + text
	}
	return text
}
