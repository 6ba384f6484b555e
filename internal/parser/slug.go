package parser

import "strings"

// Slug maps heading text to the id used for both TOC links and rendered
// headings. Runs of characters outside [a-z0-9] collapse to a single '-'.
// Collisions are not resolved.
func Slug(text string) string {
	lower := strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(lower))
	pendingDash := false
	for i := 0; i < len(lower); i++ {
		c := lower[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteByte(c)
			continue
		}
		pendingDash = true
	}
	return b.String()
}
