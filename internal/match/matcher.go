package match

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"chronolist/internal/document"
)

const (
	// fuzzyThreshold is strict: a similarity of exactly 0.7 is rejected.
	fuzzyThreshold = 0.7
	// urlBoost is the similarity floor applied when an item URL and a
	// history key share a substring relationship.
	urlBoost = 0.8
	// contextRange bounds how many items away an inferred date may come from.
	contextRange = 3
)

// Result is a content item enriched with its addition date. Inferred is
// true when the date came from a neighboring item rather than history.
type Result struct {
	Item     document.ContentItem
	Date     time.Time
	Inferred bool
}

// Stats counts the outcome of a matching run.
type Stats struct {
	Total    int
	Matched  int
	Inferred int
}

// Rate returns the match rate as a percentage (0 when there were no items).
func (s Stats) Rate() float64 {
	if s.Total == 0 {
		return 0
	}
	return 100 * float64(s.Matched) / float64(s.Total)
}

var whitespaceRuns = regexp.MustCompile(`\s+`)

func normalize(s string) string {
	return strings.TrimSpace(whitespaceRuns.ReplaceAllString(s, " "))
}

// key is one history record prepared for repeated matching.
type key struct {
	text string
	norm string
	urls []string
	date time.Time
}

var linkPattern = regexp.MustCompile(`\[[^\]]*\]\(([^)]+)\)`)

func keyURLs(text string) []string {
	var urls []string
	for _, m := range linkPattern.FindAllStringSubmatch(text, -1) {
		urls = append(urls, m[1])
	}
	return urls
}

// Match resolves a date for as many items as possible, trying strategies
// in a fixed order: exact, normalized, fuzzy similarity, then contextual
// inference from neighboring items. Unresolved items are dropped.
func Match(items []document.ContentItem, records map[string]time.Time) ([]Result, Stats) {
	keys := make([]key, 0, len(records))
	for text, date := range records {
		keys = append(keys, key{
			text: text,
			norm: normalize(text),
			urls: keyURLs(text),
			date: date,
		})
	}
	// Deterministic scan order regardless of map iteration.
	sort.Slice(keys, func(i, j int) bool { return keys[i].text < keys[j].text })

	// Normalized lookup: on collisions the earliest date wins, then the
	// lexically smallest original key.
	normIndex := make(map[string]key, len(keys))
	for _, k := range keys {
		prev, seen := normIndex[k.norm]
		if !seen || k.date.Before(prev.date) {
			normIndex[k.norm] = k
		}
	}

	// Pass 1: direct strategies.
	dates := make([]*time.Time, len(items))
	for i, item := range items {
		if d, ok := records[item.Content]; ok {
			dates[i] = &d
			continue
		}
		if k, ok := normIndex[normalize(item.Content)]; ok {
			d := k.date
			dates[i] = &d
			continue
		}
		if d, ok := fuzzyMatch(item, keys); ok {
			dates[i] = &d
		}
	}

	// Pass 2: contextual inference. Only directly matched neighbors
	// donate dates, so the outcome is independent of visit order.
	inferred := make([]*time.Time, len(items))
	for i := range items {
		if dates[i] != nil {
			continue
		}
		if d, ok := inferFromNeighbors(i, dates); ok {
			inferred[i] = &d
		}
	}

	var results []Result
	stats := Stats{Total: len(items)}
	for i, item := range items {
		switch {
		case dates[i] != nil:
			results = append(results, Result{Item: item, Date: *dates[i]})
			stats.Matched++
		case inferred[i] != nil:
			results = append(results, Result{Item: item, Date: *inferred[i], Inferred: true})
			stats.Matched++
			stats.Inferred++
		}
	}

	return results, stats
}

// fuzzyMatch scores the item against every history key and accepts the
// best candidate when its similarity strictly exceeds the threshold.
// Ties favor the shorter key, then the lexically smaller one (the keys
// arrive sorted, so the first best candidate wins both tie-breaks on
// equal length).
func fuzzyMatch(item document.ContentItem, keys []key) (time.Time, bool) {
	norm := normalize(item.Content)
	if norm == "" {
		return time.Time{}, false
	}

	var best key
	bestSim := 0.0
	found := false

	for _, k := range keys {
		sim := Similarity(norm, k.norm)
		if sim < urlBoost && urlOverlap(item, k) {
			sim = urlBoost
		}
		if !found || sim > bestSim || (sim == bestSim && len(k.text) < len(best.text)) {
			best = k
			bestSim = sim
			found = true
		}
	}

	if !found || bestSim <= fuzzyThreshold {
		return time.Time{}, false
	}
	return best.date, true
}

// urlOverlap reports whether any of the item's link URLs appears inside
// the candidate key, or shares a substring relationship with one of the
// candidate's own URLs.
func urlOverlap(item document.ContentItem, k key) bool {
	for _, link := range item.Links {
		if link.URL == "" {
			continue
		}
		if strings.Contains(k.text, link.URL) {
			return true
		}
		for _, u := range k.urls {
			if strings.Contains(u, link.URL) || strings.Contains(link.URL, u) {
				return true
			}
		}
	}
	return false
}

// inferFromNeighbors looks up to contextRange items before and after the
// unmatched item for a directly resolved date. The nearest dated item on
// each side is considered; when both sides have one, the older date wins
// as a conservative lower bound.
func inferFromNeighbors(i int, dates []*time.Time) (time.Time, bool) {
	var before, after *time.Time

	for d := 1; d <= contextRange; d++ {
		if j := i - d; j >= 0 && dates[j] != nil {
			before = dates[j]
			break
		}
	}
	for d := 1; d <= contextRange; d++ {
		if j := i + d; j < len(dates) && dates[j] != nil {
			after = dates[j]
			break
		}
	}

	switch {
	case before != nil && after != nil:
		if before.Before(*after) {
			return *before, true
		}
		return *after, true
	case before != nil:
		return *before, true
	case after != nil:
		return *after, true
	}
	return time.Time{}, false
}
