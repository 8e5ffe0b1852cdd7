package chrono

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"

	"chronolist/internal/document"
	"chronolist/internal/match"
)

const (
	title          = "# Chronological View"
	generationNote = "*Reordered by addition date, newest first*"
	footer         = "*This file was automatically generated from git history.*"
)

type monthKey struct {
	year  int
	month time.Month
}

// Render serializes matched items grouped by calendar month (newest
// first) and, within a month, by section. Header items are structural
// and never emitted. An empty input produces a minimal valid document.
func Render(results []match.Result) string {
	var sb strings.Builder
	sb.WriteString(title + "\n\n")
	sb.WriteString(generationNote + "\n")

	buckets := make(map[monthKey][]match.Result)
	for _, r := range results {
		if r.Item.Type == document.Header {
			continue
		}
		k := monthKey{r.Date.Year(), r.Date.Month()}
		buckets[k] = append(buckets[k], r)
	}

	months := make([]monthKey, 0, len(buckets))
	for k := range buckets {
		months = append(months, k)
	}
	sort.Slice(months, func(i, j int) bool {
		if months[i].year != months[j].year {
			return months[i].year > months[j].year
		}
		return months[i].month > months[j].month
	})

	for _, mk := range months {
		fmt.Fprintf(&sb, "\n## %s %d\n", mk.month, mk.year)
		for _, section := range sectionOrder(buckets[mk]) {
			fmt.Fprintf(&sb, "\n### From '%s'\n\n", section)
			for _, r := range sectionItems(buckets[mk], section) {
				sb.WriteString(r.Item.Content + "\n")
			}
		}
	}

	sb.WriteString("\n---\n\n" + footer + "\n")
	return sb.String()
}

// sectionOrder lists the sections of one month bucket, newest item
// first, ties broken by name.
func sectionOrder(results []match.Result) []string {
	newest := make(map[string]time.Time)
	for _, r := range results {
		if cur, ok := newest[r.Item.Section]; !ok || r.Date.After(cur) {
			newest[r.Item.Section] = r.Date
		}
	}

	sections := make([]string, 0, len(newest))
	for s := range newest {
		sections = append(sections, s)
	}
	sort.Slice(sections, func(i, j int) bool {
		a, b := newest[sections[i]], newest[sections[j]]
		if !a.Equal(b) {
			return a.After(b)
		}
		return sections[i] < sections[j]
	})
	return sections
}

// sectionItems returns one section's items, newest first; equal dates
// keep document order.
func sectionItems(results []match.Result, section string) []match.Result {
	var out []match.Result
	for _, r := range results {
		if r.Item.Section == section {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].Item.Position < out[j].Item.Position
	})
	return out
}

// FilterSections keeps only the results whose section name fuzzy-matches
// one of the queries. An empty query list keeps everything.
func FilterSections(results []match.Result, queries []string) []match.Result {
	if len(queries) == 0 {
		return results
	}

	var names []string
	seen := make(map[string]bool)
	for _, r := range results {
		if !seen[r.Item.Section] {
			seen[r.Item.Section] = true
			names = append(names, r.Item.Section)
		}
	}

	keep := make(map[string]bool)
	for _, q := range queries {
		matches := fuzzy.Find(q, names)
		for _, m := range matches {
			keep[m.Str] = true
		}
	}

	var out []match.Result
	for _, r := range results {
		if keep[r.Item.Section] {
			out = append(out, r)
		}
	}
	return out
}
