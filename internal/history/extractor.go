package history

import (
	"bufio"
	"regexp"
	"strings"
	"time"
)

// The two date formats accepted on a commit's Date: line, tried in
// order. Anything else marks the commit as dateless.
const (
	dateLayoutOffset = "Mon Jan _2 15:04:05 2006 -0700"
	dateLayoutLocal  = "Mon Jan _2 15:04:05 2006"
)

var datePattern = regexp.MustCompile(`^Date:\s+(.+)$`)

// Extract parses a diff-annotated revision log (newest commit first) and
// returns every distinct added line mapped to its earliest addition date.
// Re-added lines keep the oldest date across all commits. Malformed or
// empty input yields an empty map.
func Extract(rawLog string) map[string]time.Time {
	earliest := make(map[string]time.Time)

	for _, block := range splitCommits(rawLog) {
		date, ok := commitDate(block)
		if !ok {
			// Dateless commit: its additions contribute nothing.
			continue
		}
		for _, line := range addedLines(block) {
			if prev, seen := earliest[line]; !seen || date.Before(prev) {
				earliest[line] = date
			}
		}
	}

	return earliest
}

// splitCommits cuts the log into per-commit blocks at lines starting
// with the "commit " boundary marker.
func splitCommits(rawLog string) []string {
	var blocks []string
	var current []string

	scanner := bufio.NewScanner(strings.NewReader(rawLog))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "commit ") {
			if len(current) > 0 {
				blocks = append(blocks, strings.Join(current, "\n"))
			}
			current = []string{line}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, strings.Join(current, "\n"))
	}

	return blocks
}

// commitDate returns the timestamp from the first Date: line of a block.
func commitDate(block string) (time.Time, bool) {
	for _, line := range strings.Split(block, "\n") {
		m := datePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		raw := strings.TrimSpace(m[1])
		if t, err := time.Parse(dateLayoutOffset, raw); err == nil {
			return t, true
		}
		if t, err := time.Parse(dateLayoutLocal, raw); err == nil {
			return t, true
		}
		return time.Time{}, false
	}
	return time.Time{}, false
}

// addedLines returns the trimmed text of every addition in a block:
// lines starting with a single '+' (a second '+' is file-header noise).
func addedLines(block string) []string {
	var added []string
	for _, line := range strings.Split(block, "\n") {
		if !strings.HasPrefix(line, "+") || strings.HasPrefix(line, "++") {
			continue
		}
		text := strings.TrimSpace(line[1:])
		if text == "" {
			continue
		}
		added = append(added, text)
	}
	return added
}
