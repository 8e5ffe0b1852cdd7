package document

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var md = goldmark.New()

// ExtractLinks returns the markdown inline links on a single line,
// in document order.
func ExtractLinks(line string) []Link {
	src := []byte(line)
	doc := md.Parser().Parse(text.NewReader(src))

	var links []Link
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if link, ok := n.(*ast.Link); ok {
			links = append(links, Link{
				Text: nodeText(link, src),
				URL:  string(link.Destination),
			})
		}
		return ast.WalkContinue, nil
	})
	return links
}

// nodeText collects the raw text content beneath a node.
func nodeText(n ast.Node, src []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch child := c.(type) {
		case *ast.Text:
			sb.Write(child.Segment.Value(src))
		case *ast.String:
			sb.Write(child.Value)
		default:
			sb.WriteString(nodeText(c, src))
		}
	}
	return sb.String()
}
