package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gubarz/docmd/internal/parser"
)

func TestRenderBlocksHeadingLines(t *testing.T) {
	blocks := parser.Render("# Title\n\nSome text.\n\n## Usage")

	text, headings := RenderBlocks(blocks, 60)

	require.Len(t, headings, 2)
	assert.Equal(t, HeadingPos{ID: "title", Line: 0}, headings[0])
	assert.Equal(t, HeadingPos{ID: "usage", Line: 4}, headings[1])

	lines := strings.Split(text, "\n")
	require.Greater(t, len(lines), headings[1].Line)
	assert.Contains(t, lines[headings[0].Line], "Title")
	assert.Contains(t, lines[headings[1].Line], "Usage")
}

func TestRenderBlocksContent(t *testing.T) {
	body := strings.Join([]string{
		"> quoted",
		"- first",
		"- second",
		"| Name | Value |",
		"|------|-------|",
		"| port | 8080 |",
		"```go",
		"fmt.Println(\"hi\")",
		"```",
	}, "\n")

	text, headings := RenderBlocks(parser.Render(body), 60)

	assert.Empty(t, headings)
	for _, want := range []string{"quoted", "first", "second", "Name", "port", "8080", "go", `fmt.Println("hi")`} {
		assert.Contains(t, text, want)
	}
}

func TestRenderBlocksHeadingAfterCode(t *testing.T) {
	blocks := parser.Render("```\na\nb\n```\n# After")

	text, headings := RenderBlocks(blocks, 40)

	require.Len(t, headings, 1)
	lines := strings.Split(text, "\n")
	require.Greater(t, len(lines), headings[0].Line)
	assert.Contains(t, lines[headings[0].Line], "After")
}

func TestRenderBlocksEmpty(t *testing.T) {
	text, headings := RenderBlocks(nil, 40)
	assert.Empty(t, text)
	assert.Empty(t, headings)
}

func TestRenderTableHeaderKeepsInlineStyles(t *testing.T) {
	saved := *styles
	t.Cleanup(func() { *styles = saved })
	styles.Bold = lipgloss.NewStyle().Transform(strings.ToUpper)

	text, _ := RenderBlocks(parser.Render("| **name** | value |\n|---|---|\n| **port** | 8080 |"), 60)

	assert.Contains(t, text, "NAME")
	assert.Contains(t, text, "PORT")
	assert.Contains(t, text, "value")
	assert.NotContains(t, text, "**")
}
