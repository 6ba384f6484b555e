package ui

import "github.com/gubarz/docmd/internal/parser"

// ActiveHeading returns the index of the heading currently in view: the last
// one starting at or above top+margin. Before the first heading it is the
// first one. It returns -1 when there are no headings.
func ActiveHeading(headings []HeadingPos, top, margin int) int {
	if len(headings) == 0 {
		return -1
	}
	active := 0
	for i, h := range headings {
		if h.Line > top+margin {
			break
		}
		active = i
	}
	return active
}

// alignTOC maps each TOC entry to a rendered heading by matching ids in
// order. Entries with no rendered heading, such as '#' lines inside a code
// fence, map to -1.
func alignTOC(toc []parser.TOCItem, headings []HeadingPos) []int {
	out := make([]int, len(toc))
	next := 0
	for i, item := range toc {
		out[i] = -1
		for j := next; j < len(headings); j++ {
			if headings[j].ID == item.ID {
				out[i] = j
				next = j + 1
				break
			}
		}
	}
	return out
}

// tocIndex returns the TOC entry pointing at heading, or -1
func tocIndex(aligned []int, heading int) int {
	if heading < 0 {
		return -1
	}
	for i, h := range aligned {
		if h == heading {
			return i
		}
	}
	return -1
}
