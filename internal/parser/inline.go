package parser

import (
	"regexp"
	"sort"
)

// SpanKind tags an inline span
type SpanKind int

const (
	SpanText SpanKind = iota
	SpanBold
	SpanItalic
	SpanCode
)

// Span is a run of text within one line
type Span struct {
	Kind SpanKind
	Text string
}

// inlinePattern pairs a regex with the span it produces. Group 1 is the
// styled run including its markers, group 2 the text between them.
// Order matters: earlier patterns win ties on start offset.
type inlinePattern struct {
	re   *regexp.Regexp
	kind SpanKind
}

var inlinePatterns = []inlinePattern{
	{regexp.MustCompile(`(\*\*(.+?)\*\*)`), SpanBold},
	// The leading char keeps a single '*' from pairing with half of a "**".
	{regexp.MustCompile(`(?:^|[^*])(\*([^*]+)\*)`), SpanItalic},
	{regexp.MustCompile("(`([^`]+)`)"), SpanCode},
}

type inlineMatch struct {
	start, end int // whole match, including markers
	inner      string
	kind       SpanKind
}

// appendRuns finds every run of p in line. Each search resumes where the
// previous run ended, so a closing '*' can sit right before the next
// opening one.
func (p inlinePattern) appendRuns(matches []inlineMatch, line string) []inlineMatch {
	offset := 0
	for offset < len(line) {
		loc := p.re.FindStringSubmatchIndex(line[offset:])
		if loc == nil {
			break
		}
		matches = append(matches, inlineMatch{
			start: offset + loc[2],
			end:   offset + loc[3],
			inner: line[offset+loc[4] : offset+loc[5]],
			kind:  p.kind,
		})
		offset += loc[3]
	}
	return matches
}

// FormatInline splits line into plain and styled spans.
// Overlapping matches are resolved by earliest start; a match that begins
// inside an already kept one is dropped.
func FormatInline(line string) []Span {
	if line == "" {
		return nil
	}

	var matches []inlineMatch
	for _, p := range inlinePatterns {
		matches = p.appendRuns(matches, line)
	}
	if len(matches) == 0 {
		return []Span{{Kind: SpanText, Text: line}}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].start < matches[j].start
	})

	var spans []Span
	pos := 0
	for _, m := range matches {
		if m.start < pos {
			continue
		}
		if m.start > pos {
			spans = append(spans, Span{Kind: SpanText, Text: line[pos:m.start]})
		}
		spans = append(spans, Span{Kind: m.kind, Text: m.inner})
		pos = m.end
	}
	if pos < len(line) {
		spans = append(spans, Span{Kind: SpanText, Text: line[pos:]})
	}
	return spans
}

// PlainText joins span text without markers
func PlainText(spans []Span) string {
	n := 0
	for _, s := range spans {
		n += len(s.Text)
	}
	b := make([]byte, 0, n)
	for _, s := range spans {
		b = append(b, s.Text...)
	}
	return string(b)
}
