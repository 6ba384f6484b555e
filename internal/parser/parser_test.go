package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plain(s string) []Span { return []Span{{Kind: SpanText, Text: s}} }

func kinds(blocks []Block) []BlockKind {
	out := make([]BlockKind, len(blocks))
	for i, b := range blocks {
		out[i] = b.Kind
	}
	return out
}

func TestRenderFenceVerbatim(t *testing.T) {
	blocks := Render("```js\n# not a heading\n```")

	require.Len(t, blocks, 1)
	assert.Equal(t, Block{Kind: BlockCode, Lang: "js", Code: "# not a heading\n"}, blocks[0])
}

func TestRenderFenceSuppressesFormatting(t *testing.T) {
	body := "```\n**bold** `code`\n- item\n| a | b |\n|---|---|\n```\nafter"
	blocks := Render(body)

	require.Len(t, blocks, 2)
	assert.Equal(t, BlockCode, blocks[0].Kind)
	assert.Equal(t, "", blocks[0].Lang)
	assert.Equal(t, "**bold** `code`\n- item\n| a | b |\n|---|---|\n", blocks[0].Code)
	assert.Equal(t, Block{Kind: BlockParagraph, Spans: plain("after")}, blocks[1])
}

func TestRenderUnterminatedFenceFlushed(t *testing.T) {
	blocks := Render("intro\n```go\nfunc main() {}\n")

	require.Len(t, blocks, 2)
	assert.Equal(t, Block{Kind: BlockCode, Lang: "go", Code: "func main() {}\n\n"}, blocks[1])
}

func TestRenderHeadings(t *testing.T) {
	blocks := Render("# Title\n## The **Big** Picture\n#### Deep\n##### Deeper\n# ")

	require.Len(t, blocks, 5)
	assert.Equal(t, Block{Kind: BlockHeading, Level: 1, ID: "title", Spans: plain("Title")}, blocks[0])
	assert.Equal(t, Block{
		Kind:  BlockHeading,
		Level: 2,
		ID:    "the-big-picture",
		Spans: []Span{{SpanText, "The "}, {SpanBold, "Big"}, {SpanText, " Picture"}},
	}, blocks[1])
	assert.Equal(t, 4, blocks[2].Level)
	assert.Equal(t, Block{Kind: BlockParagraph, Spans: plain("##### Deeper")}, blocks[3])
	assert.Equal(t, Block{Kind: BlockParagraph, Spans: plain("# ")}, blocks[4])
}

func TestRenderBlockquote(t *testing.T) {
	blocks := Render("> Note: use *care*\n>no space")

	require.Len(t, blocks, 2)
	assert.Equal(t, Block{
		Kind:  BlockQuote,
		Spans: []Span{{SpanText, "Note: use "}, {SpanItalic, "care"}},
	}, blocks[0])
	assert.Equal(t, BlockParagraph, blocks[1].Kind)
}

func TestRenderListGrouping(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		lists [][]string
	}{
		{
			name:  "single run",
			body:  "- a\n- b\n- c",
			lists: [][]string{{"a", "b", "c"}},
		},
		{
			name:  "interrupted",
			body:  "- a\ntext\n- b\n- c",
			lists: [][]string{{"a"}, {"b", "c"}},
		},
		{
			name:  "ordered then unordered",
			body:  "1. one\n2. two\n- bullet",
			lists: [][]string{{"one", "two"}, {"bullet"}},
		},
		{
			name:  "blank line splits",
			body:  "10. ten\n\n11. eleven",
			lists: [][]string{{"ten"}, {"eleven"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got [][]string
			for _, b := range Render(tt.body) {
				if b.Kind != BlockList {
					continue
				}
				var items []string
				for _, item := range b.Items {
					items = append(items, PlainText(item))
				}
				got = append(got, items)
			}
			assert.Equal(t, tt.lists, got)
		})
	}
}

func TestRenderListKind(t *testing.T) {
	blocks := Render("1. **first**\n2. second\n- x")

	require.Len(t, blocks, 2)
	assert.True(t, blocks[0].Ordered)
	assert.Equal(t, [][]Span{{{SpanBold, "first"}}, plain("second")}, blocks[0].Items)
	assert.False(t, blocks[1].Ordered)
}

func TestRenderTable(t *testing.T) {
	body := strings.Join([]string{
		"| Name | Value |",
		"|:-----|------:|",
		"| `port` | 8080 |",
		"| **env** | dev |",
		"after",
	}, "\n")
	blocks := Render(body)

	require.Len(t, blocks, 2)
	table := blocks[0]
	assert.Equal(t, BlockTable, table.Kind)
	assert.Equal(t, [][]Span{plain("Name"), plain("Value")}, table.Header)
	assert.Equal(t, [][][]Span{
		{{{SpanCode, "port"}}, plain("8080")},
		{{{SpanBold, "env"}}, plain("dev")},
	}, table.Rows)
	assert.Equal(t, Block{Kind: BlockParagraph, Spans: plain("after")}, blocks[1])
}

func TestRenderTableGating(t *testing.T) {
	// A table header without a separator row is dropped, not kept as text.
	blocks := Render("| a | b |\n| c | d |\nnext")

	assert.Equal(t, []BlockKind{BlockParagraph}, kinds(blocks))
	assert.Equal(t, plain("next"), blocks[0].Spans)

	assert.Empty(t, Render("| a | b |"))
}

func TestRenderMixedDocument(t *testing.T) {
	body := "# Guide\n\nIntro with `code`.\n\n> tip\n\n- a\n- b\n\n```sh\nls\n```\n\n## Next"
	blocks := Render(body)

	assert.Equal(t, []BlockKind{
		BlockHeading, BlockParagraph, BlockQuote, BlockList, BlockCode, BlockHeading,
	}, kinds(blocks))
}

func TestRenderTOCAgreement(t *testing.T) {
	bodies := []string{
		"# A\n## B\n### C, again!\n#### D",
		"# Same\n# Same\ntext\n## Same",
		"# Title\r\n## Sub **bold**\r\n",
		"## Only\n- # not heading\n> # quoted",
	}

	for _, body := range bodies {
		var tocIDs []string
		for _, item := range ExtractTOC(body) {
			tocIDs = append(tocIDs, item.ID)
		}
		assert.Equal(t, tocIDs, HeadingIDs(Render(body)), body)
	}
}

func TestRenderTotal(t *testing.T) {
	inputs := []string{"", "\n\n", "```", "|", "| ", "- ", "1. ", "> ", "\x00\xff", "**", "`"}
	for _, in := range inputs {
		assert.NotPanics(t, func() { Render(in) }, "%q", in)
	}
}

func TestBlockKindString(t *testing.T) {
	assert.Equal(t, "table", BlockTable.String())
	assert.Equal(t, "unknown", BlockKind(99).String())
}
