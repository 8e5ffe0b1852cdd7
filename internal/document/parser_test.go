package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `# Tools

Intro paragraph.

- [Foo](http://foo.com) - a tool
  - [Nested](http://nested.io)

## Editors

* [Bar](http://bar.com)

# Models

1. [Baz](http://baz.org)
`

func TestParse_Classification(t *testing.T) {
	items := Parse(sampleDoc)
	require.Len(t, items, 8)

	assert.Equal(t, Header, items[0].Type)
	assert.Equal(t, 1, items[0].Level)
	assert.Equal(t, Text, items[1].Type)
	assert.Equal(t, ListItem, items[2].Type)
	assert.Equal(t, ListItem, items[3].Type)
	assert.Equal(t, Header, items[4].Type)
	assert.Equal(t, 2, items[4].Level)
	assert.Equal(t, ListItem, items[5].Type)
	assert.Equal(t, Header, items[6].Type)
	assert.Equal(t, ListItem, items[7].Type)
}

func TestParse_SectionContext(t *testing.T) {
	items := Parse(sampleDoc)

	// Everything up to "# Models" belongs to Tools
	assert.Equal(t, "Tools", items[1].Section)
	assert.Equal(t, "", items[1].Subsection)
	assert.Equal(t, "Tools", items[2].Section)

	// "* [Bar]" sits under the Editors subsection
	assert.Equal(t, "Tools", items[5].Section)
	assert.Equal(t, "Editors", items[5].Subsection)

	// A new top-level section resets the subsection
	assert.Equal(t, "Models", items[7].Section)
	assert.Equal(t, "", items[7].Subsection)
}

func TestParse_DefaultSection(t *testing.T) {
	items := Parse("- [Foo](http://foo.com)\n")
	require.Len(t, items, 1)
	assert.Equal(t, "General", items[0].Section)
}

func TestParse_Positions(t *testing.T) {
	items := Parse(sampleDoc)

	// Positions are line indexes, so blank lines leave gaps
	assert.Equal(t, 0, items[0].Position)
	assert.Equal(t, 2, items[1].Position)
	assert.Equal(t, 4, items[2].Position)
	assert.Equal(t, 5, items[3].Position)
}

func TestParse_ContentTrimmed(t *testing.T) {
	items := Parse("  - [Foo](http://foo.com)  \n")
	require.Len(t, items, 1)
	assert.Equal(t, "- [Foo](http://foo.com)", items[0].Content)
}

func TestParse_IndentLevels(t *testing.T) {
	items := Parse("- top\n  - one deep\n    - two deep\n\t- tab\n")
	require.Len(t, items, 4)
	assert.Equal(t, 0, items[0].Level)
	assert.Equal(t, 1, items[1].Level)
	assert.Equal(t, 2, items[2].Level)
	assert.Equal(t, 1, items[3].Level)
}

func TestParse_NumericOrdinalMarker(t *testing.T) {
	items := Parse("12. twelfth entry\n")
	require.Len(t, items, 1)
	assert.Equal(t, ListItem, items[0].Type)
}

func TestParse_PlusMarker(t *testing.T) {
	items := Parse("+ plus entry\n")
	require.Len(t, items, 1)
	assert.Equal(t, ListItem, items[0].Type)
}

func TestParse_Idempotent(t *testing.T) {
	first := Parse(sampleDoc)
	second := Parse(sampleDoc)
	assert.Equal(t, first, second)
}

func TestParse_SkipsBlankLines(t *testing.T) {
	items := Parse("\n\n   \n- entry\n\n")
	require.Len(t, items, 1)
	assert.Equal(t, "- entry", items[0].Content)
}

func TestExtractLinks(t *testing.T) {
	links := ExtractLinks("- [Foo](http://foo.com) and [Bar](http://bar.com/page)")
	require.Len(t, links, 2)
	assert.Equal(t, "Foo", links[0].Text)
	assert.Equal(t, "http://foo.com", links[0].URL)
	assert.Equal(t, "Bar", links[1].Text)
	assert.Equal(t, "http://bar.com/page", links[1].URL)
}

func TestExtractLinks_None(t *testing.T) {
	assert.Empty(t, ExtractLinks("plain text without links"))
}
