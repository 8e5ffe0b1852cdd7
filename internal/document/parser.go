package document

import (
	"bufio"
	"regexp"
	"strings"
)

// ItemType classifies a non-blank document line.
type ItemType int

const (
	Header ItemType = iota
	ListItem
	Text
)

func (t ItemType) String() string {
	switch t {
	case Header:
		return "header"
	case ListItem:
		return "list-item"
	default:
		return "text"
	}
}

// Link is a markdown inline link found on a line.
type Link struct {
	Text string
	URL  string
}

// ContentItem is one classified, non-blank line of the document.
// Content is the exact trimmed line and doubles as the matching key.
type ContentItem struct {
	Content    string
	Section    string
	Subsection string
	Type       ItemType
	Level      int
	Position   int
	Links      []Link
}

const defaultSection = "General"

var listMarkerPattern = regexp.MustCompile(`^([-*+]|\d+\.)(\s+|$)`)

// Parse scans the document top to bottom and classifies every non-blank
// line, carrying the section/subsection context as of that line. The
// result is deterministic: identical input yields identical items.
func Parse(content string) []ContentItem {
	var items []ContentItem

	section := defaultSection
	subsection := ""

	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	position := -1
	for scanner.Scan() {
		position++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "#"):
			depth := headerDepth(trimmed)
			title := strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
			if depth == 1 {
				if title != "" {
					section = title
				}
				subsection = ""
			} else {
				subsection = title
			}
			items = append(items, ContentItem{
				Content:    trimmed,
				Section:    section,
				Subsection: subsection,
				Type:       Header,
				Level:      depth,
				Position:   position,
				Links:      ExtractLinks(trimmed),
			})

		case listMarkerPattern.MatchString(trimmed):
			items = append(items, ContentItem{
				Content:    trimmed,
				Section:    section,
				Subsection: subsection,
				Type:       ListItem,
				Level:      indentLevel(line),
				Position:   position,
				Links:      ExtractLinks(trimmed),
			})

		default:
			items = append(items, ContentItem{
				Content:    trimmed,
				Section:    section,
				Subsection: subsection,
				Type:       Text,
				Position:   position,
				Links:      ExtractLinks(trimmed),
			})
		}
	}

	return items
}

func headerDepth(trimmed string) int {
	depth := 0
	for _, r := range trimmed {
		if r != '#' {
			break
		}
		depth++
	}
	return depth
}

// indentLevel derives list nesting from leading whitespace.
// Spaces count 1, tabs count 2; two columns per level.
func indentLevel(line string) int {
	width := 0
	for _, r := range line {
		switch r {
		case ' ':
			width++
		case '\t':
			width += 2
		default:
			return width / 2
		}
	}
	return width / 2
}
