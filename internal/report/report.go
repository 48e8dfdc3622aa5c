// Package report implements the validation report and the human-readable
// summaries printed after (or instead of, in dry-run mode) a conversion.
//
// All checks are advisory: they cross-check the output against the work's
// known structure and surface anomalies for manual review, but never stop a
// run or alter the output.
package report

import (
	"fmt"
	"io"
	"math/rand"
	"regexp"
	"strings"

	"github.com/jdkato/prose/v2"

	"github.com/ecrawley/stoa/internal/classify"
	"github.com/ecrawley/stoa/internal/counter"
	"github.com/ecrawley/stoa/internal/document"
	"github.com/ecrawley/stoa/internal/segment"
	"github.com/ecrawley/stoa/internal/work"
)

// residual marker shapes that must never survive normalization
var (
	reResidualFootnote = regexp.MustCompile(`\[\d+\]`)
	reResidualBracket  = regexp.MustCompile(`\[\*[a-z0-9\-]+\]|\[p\.\s*\d+\]`)
)

// Validate runs every check against the final sections and the original
// line stream, writing the report to w.
func Validate(w io.Writer, sections []document.Section, lines []string, checks work.Checks) {
	fmt.Fprintf(w, "\n=== Validation Report ===\n")
	fmt.Fprintf(w, "Total sections parsed: %d\n", len(sections))

	totalWords := 0
	for _, s := range sections {
		totalWords += s.WordCount
	}
	fmt.Fprintf(w, "Total word count: %d\n", totalWords)

	reportCounts(w, sections, checks)
	reportPerBook(w, sections, checks)
	reportRanges(w, sections, checks)
	reportDuplicates(w, sections)
	reportShort(w, sections, checks)
	reportResiduals(w, sections)
	reportWordCounts(w, sections)
	reportUnmatchedHeaders(w, sections, lines, checks)
	reportBoilerplate(w, sections)
	reportDistribution(w, sections)
	reportCorpusStats(w, sections)
}

func reportCounts(w io.Writer, sections []document.Section, checks work.Checks) {
	if len(checks.Counts) == 0 {
		return
	}
	fmt.Fprintln(w)
	for _, c := range checks.Counts {
		got := 0
		for _, s := range sections {
			if s.Key.Part == c.Part {
				got++
			}
		}
		if got == c.Want {
			fmt.Fprintf(w, "  %s: %d (all found)\n", c.Label, got)
		} else {
			fmt.Fprintf(w, "  %s: %d — WARNING: expected %d\n", c.Label, got, c.Want)
		}
	}
}

func reportPerBook(w io.Writer, sections []document.Section, checks work.Checks) {
	if len(checks.PerBook) == 0 {
		return
	}
	fmt.Fprintf(w, "\nChapters per book:\n")
	for book := 1; book <= len(checks.PerBook); book++ {
		want := checks.PerBook[book]
		got := 0
		for _, s := range sections {
			if s.Key.Part == "chapter" && s.Key.Book == book {
				got++
			}
		}
		if got == want {
			fmt.Fprintf(w, "  Book %d: %d chapters\n", book, got)
		} else {
			fmt.Fprintf(w, "  Book %d: %d chapters — WARNING: expected %d\n", book, got, want)
		}
	}
}

func reportRanges(w io.Writer, sections []document.Section, checks work.Checks) {
	for _, r := range checks.Ranges {
		present := map[int]bool{}
		for _, s := range sections {
			if s.Key.Part == r.Part {
				present[r.Value(s.Key)] = true
			}
		}
		var missing []int
		for n := r.Min; n <= r.Max; n++ {
			if !present[n] {
				missing = append(missing, n)
			}
		}
		if len(missing) > 0 {
			fmt.Fprintf(w, "\nWARNING: missing %s values: %v\n", r.Label, missing)
		} else {
			fmt.Fprintf(w, "\nAll %s values %d–%d present.\n", r.Label, r.Min, r.Max)
		}
	}
}

// reportDuplicates flags hierarchy keys shared by more than one section.
// Duplicate headers open new sections rather than merging; uniqueness is a
// hard invariant of the output.
func reportDuplicates(w io.Writer, sections []document.Section) {
	seen := map[segment.Key]int{}
	for _, s := range sections {
		seen[s.Key]++
	}
	var dups []string
	for _, s := range sections {
		if seen[s.Key] > 1 {
			dups = append(dups, s.SourceRef)
			seen[s.Key] = 1 // report each key once
		}
	}
	if len(dups) > 0 {
		fmt.Fprintf(w, "\nWARNING: duplicate hierarchy keys: %s\n", strings.Join(dups, ", "))
	} else {
		fmt.Fprintf(w, "No duplicate hierarchy keys.\n")
	}
}

func reportShort(w io.Writer, sections []document.Section, checks work.Checks) {
	min := checks.MinWords
	if min <= 0 {
		return
	}
	var short []document.Section
	for _, s := range sections {
		if s.WordCount < min {
			short = append(short, s)
		}
	}
	if len(short) == 0 {
		fmt.Fprintf(w, "\nNo sections with fewer than %d words.\n", min)
		return
	}
	fmt.Fprintf(w, "\nSections with fewer than %d words (%d):\n", min, len(short))
	for _, s := range short {
		fmt.Fprintf(w, "  %s: %d words — %q\n", s.SourceRef, s.WordCount, preview(s.Text, 80))
	}
}

// reportResiduals scans output text for marker shapes the normalizer should
// have removed.
func reportResiduals(w io.Writer, sections []document.Section) {
	var tainted []string
	for _, s := range sections {
		if reResidualFootnote.MatchString(s.Text) || reResidualBracket.MatchString(s.Text) || strings.Contains(s.Text, "↑") {
			tainted = append(tainted, s.SourceRef)
		}
	}
	if len(tainted) > 0 {
		fmt.Fprintf(w, "\nWARNING: residual annotation markers in %d sections: %s\n", len(tainted), strings.Join(tainted, ", "))
	} else {
		fmt.Fprintf(w, "No residual annotation markers in output text.\n")
	}
}

// reportWordCounts re-verifies that every section's word_count equals a
// naive whitespace split of its own text.
func reportWordCounts(w io.Writer, sections []document.Section) {
	for _, s := range sections {
		if s.WordCount != len(strings.Fields(s.Text)) {
			fmt.Fprintf(w, "WARNING: %s: word_count %d does not match text (%d words)\n",
				s.SourceRef, s.WordCount, len(strings.Fields(s.Text)))
		}
	}
}

// reportUnmatchedHeaders cross-scans the original lines for header-shaped
// patterns that never produced a section (under-segmentation).
func reportUnmatchedHeaders(w io.Writer, sections []document.Section, lines []string, checks work.Checks) {
	if checks.Probe == nil {
		return
	}
	var unmatched []string
	for i, raw := range lines {
		probe, ok := checks.Probe(strings.TrimSpace(raw))
		if !ok {
			continue
		}
		if !anyMatches(sections, probe) {
			unmatched = append(unmatched, fmt.Sprintf("line %d: %q", i+1, strings.TrimSpace(raw)))
		}
	}
	if len(unmatched) > 0 {
		fmt.Fprintf(w, "\nHeader-shaped lines with no matching section (%d):\n", len(unmatched))
		for _, u := range unmatched {
			fmt.Fprintf(w, "  %s\n", u)
		}
	} else {
		fmt.Fprintf(w, "No unmatched header-shaped lines.\n")
	}
}

// anyMatches reports whether some section's key covers the probe key.
// Zero-valued numeric fields of the probe are wildcards.
func anyMatches(sections []document.Section, probe segment.Key) bool {
	for _, s := range sections {
		k := s.Key
		if k.Part != probe.Part {
			continue
		}
		if probe.Book != 0 && k.Book != probe.Book {
			continue
		}
		if probe.Chapter != 0 && k.Chapter != probe.Chapter {
			continue
		}
		if probe.Section != 0 && k.Section != probe.Section {
			continue
		}
		if probe.Letter != 0 && k.Letter != probe.Letter {
			continue
		}
		if probe.Fragment != "" && k.Fragment != probe.Fragment {
			continue
		}
		return true
	}
	return false
}

// reportBoilerplate flags sections whose prose reads like transcription
// scaffolding that slipped past segmentation.
func reportBoilerplate(w io.Writer, sections []document.Section) {
	c := classify.New()
	var flagged []string
	for i, s := range sections {
		if c.IsBoilerplate(s.Text, i, len(sections)) {
			flagged = append(flagged, s.SourceRef)
		}
	}
	if len(flagged) > 0 {
		fmt.Fprintf(w, "\nSections that read like transcription boilerplate (%d): %s\n",
			len(flagged), strings.Join(flagged, ", "))
	}
}

func reportDistribution(w io.Writer, sections []document.Section) {
	if len(sections) == 0 {
		return
	}
	min, max, sum := sections[0].WordCount, sections[0].WordCount, 0
	for _, s := range sections {
		if s.WordCount < min {
			min = s.WordCount
		}
		if s.WordCount > max {
			max = s.WordCount
		}
		sum += s.WordCount
	}
	fmt.Fprintf(w, "\nWord count range: %d–%d\n", min, max)
	fmt.Fprintf(w, "Average words per section: %d\n", sum/len(sections))
}

// reportCorpusStats adds token and sentence totals, the quantities that
// matter when budgeting the output for downstream indexing or retrieval.
func reportCorpusStats(w io.Writer, sections []document.Section) {
	if tokens, err := counter.New(counter.Tokens); err == nil {
		total := 0
		for _, s := range sections {
			total += tokens.Count(s.Text)
		}
		fmt.Fprintf(w, "Total tokens (cl100k_base): %d\n", total)
	}

	totalSentences := 0
	for _, s := range sections {
		doc, err := prose.NewDocument(s.Text, prose.WithTagging(false), prose.WithExtraction(false))
		if err != nil {
			continue
		}
		totalSentences += len(doc.Sentences())
	}
	fmt.Fprintf(w, "Total sentences: %d\n", totalSentences)
}

// Sample prints n randomly selected sections for manual verification.
func Sample(w io.Writer, sections []document.Section, n int) {
	if len(sections) == 0 {
		return
	}
	if n > len(sections) {
		n = len(sections)
	}
	fmt.Fprintf(w, "\n=== Sample Sections (%d random) ===\n", n)
	for _, idx := range rand.Perm(len(sections))[:n] {
		s := sections[idx]
		title := deref(s.ChapterTitle)
		if title == "" {
			title = deref(s.LetterTitle)
		}
		fmt.Fprintf(w, "\n--- %s — %s (id=%s, words=%d) ---\n", s.SourceRef, title, s.ID, s.WordCount)
		fmt.Fprintln(w, preview(s.Text, 500))
	}
}

// DryRun prints the structural summary used by --dry-run: one line per
// section with its reference, word count, and title.
func DryRun(w io.Writer, sections []document.Section) {
	fmt.Fprintf(w, "\n=== Dry Run: Structural Analysis ===\n")
	for _, s := range sections {
		title := deref(s.ChapterTitle)
		if title == "" {
			title = deref(s.LetterTitle)
		}
		if title == "" {
			title = preview(strings.ReplaceAll(s.Text, "\n", " "), 60)
		}
		fmt.Fprintf(w, "  %-28s %6d words — %s\n", s.SourceRef+":", s.WordCount, title)
	}
	fmt.Fprintf(w, "\nTotal: %d sections\n", len(sections))
}

func preview(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
