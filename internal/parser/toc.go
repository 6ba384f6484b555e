package parser

import "strings"

// TOCItem is one table of contents entry
type TOCItem struct {
	ID    string
	Title string
	Level int // 1-4
}

// maxHeadingLevel is the deepest heading picked up by the TOC and renderer
const maxHeadingLevel = 4

// HeadingLine reports whether line is a heading: one to four '#', a single
// space, then non-empty text.
func HeadingLine(line string) (level int, text string, ok bool) {
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > maxHeadingLevel {
		return 0, "", false
	}
	if level >= len(line) || line[level] != ' ' {
		return 0, "", false
	}
	text = line[level+1:]
	if text == "" {
		return 0, "", false
	}
	return level, text, true
}

// ExtractTOC scans body line by line for headings.
// Fences are not tracked: a '#' line inside a code block is still listed.
func ExtractTOC(body string) []TOCItem {
	var items []TOCItem
	for _, line := range splitLines(body) {
		level, title, ok := HeadingLine(line)
		if !ok {
			continue
		}
		items = append(items, TOCItem{
			ID:    Slug(title),
			Title: title,
			Level: level,
		})
	}
	return items
}

// splitLines normalizes CRLF and splits on '\n'
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(s, "\n")
}
