package segment

import (
	"log/slog"
	"strings"
)

// Run scans lines through the given regions and returns the accumulated raw
// sections in document order. noise is consulted first for every line and
// discards unconditionally, regardless of state; a nil noise keeps all lines.
//
// The scan is single-pass with no backtracking. A section still open when its
// region ends is closed there; sections never span regions.
func Run(lines []string, noise func(string) bool, regions []Region) []RawSection {
	var out []RawSection

	for _, region := range regions {
		out = runRegion(lines, noise, region, out)
	}

	return out
}

func runRegion(lines []string, noise func(string) bool, region Region, out []RawSection) []RawSection {
	st := State{}
	awaiting := false
	var titleWhen func(string) bool

	flush := func() {
		if st.Current != nil {
			out = append(out, *st.Current)
			st.Current = nil
		}
		awaiting = false
		titleWhen = nil
	}

	if region.Open != nil {
		st.Current = &RawSection{Key: *region.Open, Title: region.OpenTitle, Start: region.Start}
	}

	end := region.End
	if end > len(lines) {
		end = len(lines)
	}

	for i := region.Start; i < end; i++ {
		line := strings.TrimSpace(lines[i])

		if noise != nil && noise(line) {
			continue
		}

		if m, rule, ok := match(region.Rules, line, &st); ok {
			switch m.Action {
			case Drop:
				// line consumed, nothing else to do
			case Close:
				flush()
				st.Suppressed = false
			case Suppress:
				st.Suppressed = true
			case Open:
				flush()
				st.Suppressed = false
				st.Current = &RawSection{Key: m.Key, Title: m.Title, Start: i}
				if m.Rest != "" {
					st.Current.Lines = append(st.Current.Lines, m.Rest)
				}
				awaiting = m.AwaitTitle
				titleWhen = m.TitleWhen
			}
			slog.Debug("rule matched", "region", region.Name, "rule", rule, "line", i+1)
			continue
		}

		if st.Suppressed {
			continue
		}

		if awaiting {
			if line == "" {
				continue
			}
			if titleWhen == nil || titleWhen(line) {
				st.Current.Title = line
				awaiting = false
				continue
			}
			// not a title; treat as the first content line
			awaiting = false
		}

		if st.Current != nil {
			st.Current.Lines = append(st.Current.Lines, line)
		}
	}

	flush()
	return out
}

// match tries the rule table in order, skipping rules that do not apply
// inside a suppressed region, and returns the first hit.
func match(rules []Rule, line string, st *State) (Match, string, bool) {
	for _, r := range rules {
		if st.Suppressed && !r.ExitsSuppressed {
			continue
		}
		if m, ok := r.Apply(line, st); ok {
			return m, r.Name, true
		}
	}
	return Match{}, "", false
}
