package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ecrawley/stoa/internal/app"
	"github.com/ecrawley/stoa/internal/search"
)

// setupLogger configures the default slog logger based on debug mode
func setupLogger(debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

var rootCmd = &cobra.Command{
	Use:   "stoa",
	Short: "Convert plain-text Stoic transcriptions into structured JSON",
	Long: `Stoa converts plain-text transcriptions of classical Stoic works into
normalized, hierarchical JSON. It recognizes the Discourses of Epictetus
(with the Fragments and the Enchiridion), Seneca's Moral Letters, the
Meditations of Marcus Aurelius, and Seneca's On the Shortness of Life.

Examples:
  stoa parse discourses.txt
  stoa parse https://example.org/meditations.txt --work meditations -o out.json
  stoa search meditations.json "the obstacle becomes the way"
  stoa fetch https://example.org/letters --selector ".prose" -o letters.txt`,
}

var parseCmd = &cobra.Command{
	Use:   "parse <source>",
	Short: "Convert a transcription into a structured JSON document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		workName, _ := cmd.Flags().GetString("work")
		output, _ := cmd.Flags().GetString("output")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		sample, _ := cmd.Flags().GetInt("sample")
		quiet, _ := cmd.Flags().GetBool("quiet")
		debug, _ := cmd.Flags().GetBool("debug")

		setupLogger(debug)

		ctx, stop := signalContext()
		defer stop()

		cfg := app.ParseConfig{
			Source: args[0],
			Work:   workName,
			Output: output,
			DryRun: dryRun,
			Sample: sample,
			Quiet:  quiet,
		}
		if err := app.RunParse(ctx, cfg); err != nil {
			return fmt.Errorf("parse failed: %w", err)
		}
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <document.json> <query...>",
	Short: "Search the sections of a converted document",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		top, _ := cmd.Flags().GetInt("top")
		ranker, _ := cmd.Flags().GetString("ranker")
		quiet, _ := cmd.Flags().GetBool("quiet")
		debug, _ := cmd.Flags().GetBool("debug")

		setupLogger(debug)

		ctx, stop := signalContext()
		defer stop()

		cfg := app.SearchConfig{
			Input:  args[0],
			Query:  strings.Join(args[1:], " "),
			Top:    top,
			Ranker: search.Ranker(ranker),
			Quiet:  quiet,
		}
		result, err := app.RunSearch(ctx, cfg)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		fmt.Print(result)
		return nil
	},
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <source>",
	Short: "Fetch a page and reduce it to plain text for later conversion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		selector, _ := cmd.Flags().GetString("selector")
		output, _ := cmd.Flags().GetString("output")
		quiet, _ := cmd.Flags().GetBool("quiet")
		debug, _ := cmd.Flags().GetBool("debug")

		setupLogger(debug)

		ctx, stop := signalContext()
		defer stop()

		cfg := app.FetchConfig{
			Source:   args[0],
			Selector: selector,
			Output:   output,
			Quiet:    quiet,
		}
		result, err := app.RunFetch(ctx, cfg)
		if err != nil {
			return fmt.Errorf("fetch failed: %w", err)
		}
		fmt.Print(result)
		return nil
	},
}

func init() {
	parseCmd.Flags().StringP("work", "w", "", "Work to parse (discourses, letters, meditations, shortness); detected from the text when omitted")
	parseCmd.Flags().StringP("output", "o", "", "Output path (defaults to the work's standard filename)")
	parseCmd.Flags().Bool("dry-run", false, "Report the would-be output without writing it")
	parseCmd.Flags().Int("sample", 0, "Print n random sections for spot-checking")

	searchCmd.Flags().IntP("top", "n", 5, "Maximum number of results")
	searchCmd.Flags().String("ranker", "bm25", "Ranking algorithm (bm25 or tfidf)")

	fetchCmd.Flags().StringP("selector", "s", "", "CSS selector for the content region")
	fetchCmd.Flags().StringP("output", "o", "", "Output path (defaults to stdout)")

	for _, c := range []*cobra.Command{parseCmd, searchCmd, fetchCmd} {
		c.Flags().BoolP("quiet", "q", false, "Suppress progress and validation messages")
		c.Flags().BoolP("debug", "D", false, "Enable debug logging")
		_ = c.Flags().MarkHidden("debug")
	}

	rootCmd.AddCommand(parseCmd, searchCmd, fetchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
