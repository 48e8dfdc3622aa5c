// Package app contains the core conversion and search logic for the stoa
// CLI, separated from flag handling and other CLI concerns.
package app

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/ecrawley/stoa/internal/document"
	"github.com/ecrawley/stoa/internal/extract"
	"github.com/ecrawley/stoa/internal/fetch"
	"github.com/ecrawley/stoa/internal/report"
	"github.com/ecrawley/stoa/internal/search"
	"github.com/ecrawley/stoa/internal/spinner"
	"github.com/ecrawley/stoa/internal/work"
)

// ParseConfig holds the options for a conversion run.
type ParseConfig struct {
	Source string // URL, file path, or "-" for stdin
	Work   string // work name; empty means detect from the text
	Output string // output path; empty means the work's default name
	DryRun bool   // report only, write nothing
	Sample int    // print n random sections for spot-checking
	Quiet  bool   // suppress the validation report
}

// RunParse executes the full conversion pipeline: fetch the transcription,
// identify the work, segment it into sections, build the normalized records,
// validate, and write the JSON document.
//
// Structural failures (missing anchor markers, no sections produced) return
// an error and write nothing. Validation findings are advisory and go to
// stderr.
func RunParse(ctx context.Context, cfg ParseConfig) error {
	if fetch.IsURL(cfg.Source) && !cfg.Quiet {
		sp := spinner.New(ctx, os.Stderr, "Downloading transcription...")
		sp.Start()
		defer sp.Stop()
	}

	text, err := fetch.ReadText(ctx, cfg.Source)
	if err != nil {
		return err
	}
	lines := fetch.SplitLines(text)

	kind := work.Kind(cfg.Work)
	if cfg.Work == "" {
		kind, err = work.Detect(lines)
		if err != nil {
			return err
		}
	}

	profile, err := work.New(kind)
	if err != nil {
		return err
	}

	raws, err := profile.Segment(lines)
	if err != nil {
		return err
	}

	sections := document.Build(raws, profile.Normalize, profile.Skeleton)
	if len(sections) == 0 {
		return fmt.Errorf("no sections produced from %q; is this the right transcription?", cfg.Source)
	}

	if !cfg.Quiet {
		report.Validate(os.Stderr, sections, lines, profile.Checks)
	}
	if cfg.Sample > 0 {
		report.Sample(os.Stderr, sections, cfg.Sample)
	}

	if cfg.DryRun {
		report.DryRun(os.Stdout, sections)
		return nil
	}

	doc := &document.Document{Metadata: profile.Metadata, Sections: sections}

	out := cfg.Output
	if out == "" {
		out = profile.OutputName
	}
	if err := doc.WriteFile(out); err != nil {
		return err
	}

	if !cfg.Quiet {
		fmt.Fprintf(os.Stderr, "Wrote %d sections to %s\n", len(sections), out)
	}
	return nil
}

// SearchConfig holds the options for querying a converted document.
type SearchConfig struct {
	Input  string // path to a converted JSON document
	Query  string
	Top    int // max results to return
	Ranker search.Ranker
	Quiet  bool
}

// RunSearch loads a converted document, scores its sections against the
// query, and returns the formatted top results.
func RunSearch(ctx context.Context, cfg SearchConfig) (string, error) {
	doc, err := document.ReadFile(cfg.Input)
	if err != nil {
		return "", err
	}

	if !cfg.Quiet {
		sp := spinner.New(ctx, os.Stderr, "Searching sections...")
		sp.Start()
		defer sp.Stop()
	}

	idx, err := search.NewIndex(doc.Sections, cfg.Ranker)
	if err != nil {
		return "", err
	}

	results := idx.Query(cfg.Query, cfg.Top)
	if len(results) == 0 {
		return fmt.Sprintf("No sections matched %q.\n", cfg.Query), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s — %d result(s) for %q\n\n", doc.Metadata.Work, len(results), cfg.Query)
	for rank, r := range results {
		fmt.Fprintf(&b, "%d. %s (score %.3f)\n", rank+1, r.Section.SourceRef, r.Score)
		fmt.Fprintf(&b, "   %s\n\n", excerpt(r.Section.Text, 240))
	}
	return b.String(), nil
}

// FetchConfig holds the options for the fetch helper, which pulls a web page
// and reduces it to plain text suitable for later conversion.
type FetchConfig struct {
	Source   string
	Selector string // optional CSS selector for the content region
	Output   string // output path; empty means stdout
	Quiet    bool
}

// RunFetch retrieves the source, extracts its readable text, and writes it
// to the output path or returns it for stdout.
func RunFetch(ctx context.Context, cfg FetchConfig) (string, error) {
	if fetch.IsURL(cfg.Source) && !cfg.Quiet {
		sp := spinner.New(ctx, os.Stderr, "Fetching content...")
		sp.Start()
		defer sp.Stop()
	}

	content, err := fetch.GetContent(ctx, cfg.Source)
	if err != nil {
		return "", err
	}
	defer content.Close()

	var base *url.URL
	if fetch.IsURL(cfg.Source) {
		base, err = url.Parse(cfg.Source)
		if err != nil {
			return "", fmt.Errorf("invalid source URL %q: %w", cfg.Source, err)
		}
	}

	text, err := extract.ToText(content, cfg.Selector, base)
	if err != nil {
		return "", err
	}

	if cfg.Output != "" {
		if err := os.WriteFile(cfg.Output, []byte(text), 0o644); err != nil {
			return "", fmt.Errorf("failed to write %q: %w", cfg.Output, err)
		}
		if !cfg.Quiet {
			fmt.Fprintf(os.Stderr, "Wrote %s\n", cfg.Output)
		}
		return "", nil
	}
	return text, nil
}

// excerpt returns the first max runes of text with newlines flattened, for
// one-line search result previews.
func excerpt(text string, max int) string {
	flat := strings.Join(strings.Fields(text), " ")
	runes := []rune(flat)
	if len(runes) <= max {
		return flat
	}
	return string(runes[:max]) + "…"
}
