package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/list"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/gubarz/docmd/internal/parser"
)

// HeadingPos is where a rendered heading starts in the page
type HeadingPos struct {
	ID   string
	Line int
}

// renderedPage is a document laid out for a given width
type renderedPage struct {
	text     string
	headings []HeadingPos
	lines    int
}

// RenderBlocks lays out blocks for a terminal of the given width and returns
// the text and the line of each heading
func RenderBlocks(blocks []parser.Block, width int) (string, []HeadingPos) {
	page := renderPage(blocks, width)
	return page.text, page.headings
}

func renderPage(blocks []parser.Block, width int) renderedPage {
	width = maxInt(width, 20)

	b := getBuilder()
	defer putBuilder(b)

	var headings []HeadingPos
	line := 0
	for i, block := range blocks {
		if i > 0 {
			b.WriteString("\n\n")
			line++
		}
		if block.Kind == parser.BlockHeading {
			headings = append(headings, HeadingPos{ID: block.ID, Line: line})
		}
		rendered := renderBlock(block, width)
		b.WriteString(rendered)
		line += lipgloss.Height(rendered)
	}

	return renderedPage{text: b.String(), headings: headings, lines: line}
}

func renderBlock(block parser.Block, width int) string {
	switch block.Kind {
	case parser.BlockHeading:
		return renderHeading(block, width)
	case parser.BlockQuote:
		return styles.Quote.Width(width - 1).Render(renderSpans(block.Spans, styles.QuoteText))
	case parser.BlockList:
		return renderList(block, width)
	case parser.BlockTable:
		return renderTable(block, width)
	case parser.BlockCode:
		return renderCode(block, width)
	default:
		return wrap(renderSpans(block.Spans, styles.Paragraph), width)
	}
}

func renderHeading(block parser.Block, width int) string {
	return wrap(renderSpans(block.Spans, styles.Heading(block.Level)), width)
}

// renderSpans styles each span on top of base so emphasis keeps the
// surrounding color
func renderSpans(spans []parser.Span, base lipgloss.Style) string {
	b := getBuilder()
	defer putBuilder(b)
	for _, span := range spans {
		b.WriteString(spanStyle(span.Kind).Inherit(base).Render(span.Text))
	}
	return b.String()
}

func spanStyle(kind parser.SpanKind) lipgloss.Style {
	switch kind {
	case parser.SpanBold:
		return styles.Bold
	case parser.SpanItalic:
		return styles.Italic
	case parser.SpanCode:
		return styles.InlineCode
	default:
		return lipgloss.NewStyle()
	}
}

func wrap(text string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(text)
}

func renderList(block parser.Block, width int) string {
	items := make([]any, len(block.Items))
	for i, item := range block.Items {
		items[i] = wrap(renderSpans(item, styles.Paragraph), width-4)
	}

	l := list.New(items...).EnumeratorStyle(styles.Enumerator)
	if block.Ordered {
		l = l.Enumerator(list.Arabic)
	} else {
		l = l.Enumerator(list.Bullet)
	}
	return l.String()
}

func renderTable(block parser.Block, width int) string {
	headers := make([]string, len(block.Header))
	for i, cell := range block.Header {
		headers[i] = renderSpans(cell, styles.TableHead.UnsetPadding())
	}
	rows := make([][]string, len(block.Rows))
	for i, row := range block.Rows {
		rows[i] = make([]string, len(row))
		for j, cell := range row {
			rows[i][j] = renderSpans(cell, styles.Paragraph)
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.TableEdge).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.TableHead
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...).
		Rows(rows...)

	out := t.String()
	if lipgloss.Width(out) > width {
		out = t.Width(width).String()
	}
	return out
}

func renderCode(block parser.Block, width int) string {
	code := strings.TrimRight(block.Code, "\n")
	if code == "" {
		code = " "
	}
	box := styles.CodeBlock.Width(width - 2).Render(code)
	if block.Lang == "" {
		return box
	}
	return styles.CodeLang.Render(block.Lang) + "\n" + box
}
