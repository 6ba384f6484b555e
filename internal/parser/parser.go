package parser

import (
	"regexp"
	"strings"
)

// BlockKind tags a rendered block
type BlockKind int

const (
	BlockHeading BlockKind = iota
	BlockParagraph
	BlockQuote
	BlockList
	BlockTable
	BlockCode
)

func (k BlockKind) String() string {
	switch k {
	case BlockHeading:
		return "heading"
	case BlockParagraph:
		return "paragraph"
	case BlockQuote:
		return "blockquote"
	case BlockList:
		return "list"
	case BlockTable:
		return "table"
	case BlockCode:
		return "code"
	default:
		return "unknown"
	}
}

// Block is one rendered unit of a document. Which fields are set depends on Kind.
type Block struct {
	Kind BlockKind

	Level int    // Heading
	ID    string // Heading
	Spans []Span // Heading, Paragraph, Blockquote

	Ordered bool     // List
	Items   [][]Span // List

	Header [][]Span   // Table
	Rows   [][][]Span // Table

	Lang string // CodeBlock
	Code string // CodeBlock, verbatim with trailing newlines
}

var (
	orderedItemRe = regexp.MustCompile(`^\d+\. `)
	separatorRe   = regexp.MustCompile(`---|:-|-:`)
)

// scanState is the renderer's line state
type scanState int

const (
	stateNormal scanState = iota
	stateInFence
)

// renderer carries the scan state across lines
type renderer struct {
	state     scanState
	fenceLang string
	fenceBuf  strings.Builder
	blocks    []Block
}

// Render turns a document body into blocks in source order.
// It never fails: unrecognized lines become paragraphs.
func Render(body string) []Block {
	r := &renderer{}
	lines := splitLines(body)

	for i := 0; i < len(lines); i++ {
		i = r.step(lines, i)
	}

	// Flush an unterminated fence rather than dropping it
	if r.state == stateInFence {
		r.closeFence()
	}
	return r.blocks
}

// step handles lines[i] and returns the index of the last line it consumed
func (r *renderer) step(lines []string, i int) int {
	line := lines[i]

	if strings.HasPrefix(line, "```") {
		if r.state == stateInFence {
			r.closeFence()
		} else {
			r.state = stateInFence
			r.fenceLang = strings.TrimSpace(line[3:])
			r.fenceBuf.Reset()
		}
		return i
	}

	if r.state == stateInFence {
		r.fenceBuf.WriteString(line)
		r.fenceBuf.WriteByte('\n')
		return i
	}

	if level, text, ok := HeadingLine(line); ok {
		r.emit(Block{
			Kind:  BlockHeading,
			Level: level,
			ID:    Slug(text),
			Spans: FormatInline(text),
		})
		return i
	}

	if strings.HasPrefix(line, "> ") {
		r.emit(Block{Kind: BlockQuote, Spans: FormatInline(line[2:])})
		return i
	}

	if strings.HasPrefix(line, "| ") {
		return r.table(lines, i)
	}

	if ordered, ok := listKind(line); ok {
		return r.list(lines, i, ordered)
	}

	if strings.TrimSpace(line) == "" {
		return i
	}

	r.emit(Block{Kind: BlockParagraph, Spans: FormatInline(line)})
	return i
}

func (r *renderer) emit(b Block) {
	r.blocks = append(r.blocks, b)
}

func (r *renderer) closeFence() {
	r.emit(Block{
		Kind: BlockCode,
		Lang: r.fenceLang,
		Code: r.fenceBuf.String(),
	})
	r.state = stateNormal
	r.fenceLang = ""
	r.fenceBuf.Reset()
}

// table consumes a header, separator and body rows. A header with no
// separator row is dropped.
func (r *renderer) table(lines []string, i int) int {
	if i+1 >= len(lines) || !isSeparatorRow(lines[i+1]) {
		return i
	}

	block := Block{Kind: BlockTable, Header: splitRow(lines[i])}
	j := i + 2
	for j < len(lines) && strings.HasPrefix(lines[j], "| ") {
		block.Rows = append(block.Rows, splitRow(lines[j]))
		j++
	}
	r.emit(block)
	return j - 1
}

func isSeparatorRow(line string) bool {
	return strings.HasPrefix(line, "|") && separatorRe.MatchString(line)
}

// splitRow splits a table line on '|', drops the empty outer segments and
// formats each trimmed cell
func splitRow(line string) [][]Span {
	parts := strings.Split(line, "|")
	if len(parts) > 0 && strings.TrimSpace(parts[0]) == "" {
		parts = parts[1:]
	}
	if len(parts) > 0 && strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}

	cells := make([][]Span, len(parts))
	for k, part := range parts {
		cells[k] = FormatInline(strings.TrimSpace(part))
	}
	return cells
}

// listKind reports whether line is a list item and which kind
func listKind(line string) (ordered bool, ok bool) {
	if strings.HasPrefix(line, "- ") {
		return false, true
	}
	if orderedItemRe.MatchString(line) {
		return true, true
	}
	return false, false
}

// list collects the run of consecutive items of the same kind
func (r *renderer) list(lines []string, i int, ordered bool) int {
	block := Block{Kind: BlockList, Ordered: ordered}
	j := i
	for j < len(lines) {
		kind, ok := listKind(lines[j])
		if !ok || kind != ordered {
			break
		}
		block.Items = append(block.Items, FormatInline(itemText(lines[j], ordered)))
		j++
	}
	r.emit(block)
	return j - 1
}

func itemText(line string, ordered bool) string {
	if ordered {
		return orderedItemRe.ReplaceAllString(line, "")
	}
	return line[2:]
}

// HeadingIDs returns the ids of heading blocks in order
func HeadingIDs(blocks []Block) []string {
	var ids []string
	for _, b := range blocks {
		if b.Kind == BlockHeading {
			ids = append(ids, b.ID)
		}
	}
	return ids
}
