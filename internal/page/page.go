// Package page holds the document view state: which section is active, the
// load in flight and the parsed result. Loads are tagged with a token so a
// late result for an earlier selection is discarded.
package page

import (
	"fmt"

	"github.com/gubarz/docmd/internal/content"
	"github.com/gubarz/docmd/internal/parser"
)

// DefaultStart is the section shown first when it exists
const DefaultStart = "getting-started"

// Document is a loaded section, parsed and rendered
type Document struct {
	Section     content.Section
	Frontmatter parser.Frontmatter
	Body        string
	Blocks      []parser.Block
	TOC         []parser.TOCItem
	Err         error // set when Body is the error placeholder
}

// Request identifies one load. Results must be reported with the same Token.
type Request struct {
	Token   uint64
	Section content.Section
}

// Controller is the page state machine
type Controller struct {
	start    string
	sections []content.Section
	active   string
	token    uint64
	loading  bool
	doc      *Document
}

// NewController creates a controller preferring start as the first section
func NewController(start string) *Controller {
	if start == "" {
		start = DefaultStart
	}
	return &Controller{start: start}
}

// SetSections installs the discovered sections and selects the start section,
// or the first one when it is missing. ok is false when there is nothing to load.
func (c *Controller) SetSections(sections []content.Section) (Request, bool) {
	c.sections = sections
	if len(sections) == 0 {
		c.active = ""
		c.doc = nil
		c.loading = false
		return Request{}, false
	}

	id := sections[0].ID
	if _, ok := c.find(c.start); ok {
		id = c.start
	}
	return c.Select(id)
}

// Select makes id the active section and starts a new load
func (c *Controller) Select(id string) (Request, bool) {
	section, ok := c.find(id)
	if !ok {
		return Request{}, false
	}
	c.active = id
	c.token++
	c.loading = true
	return Request{Token: c.token, Section: section}, true
}

// Reload starts a new load of the active section
func (c *Controller) Reload() (Request, bool) {
	if c.active == "" {
		return Request{}, false
	}
	return c.Select(c.active)
}

// Succeed applies a completed load. Stale tokens are ignored.
func (c *Controller) Succeed(token uint64, raw string) bool {
	if !c.current(token) {
		return false
	}
	section, _ := c.find(c.active)
	c.apply(section, raw, nil)
	return true
}

// Fail applies a failed load by rendering a placeholder document.
// Stale tokens are ignored.
func (c *Controller) Fail(token uint64, err error) bool {
	if !c.current(token) {
		return false
	}
	section, _ := c.find(c.active)
	c.apply(section, Placeholder(section.File), err)
	return true
}

func (c *Controller) current(token uint64) bool {
	return c.loading && token == c.token
}

func (c *Controller) apply(section content.Section, raw string, err error) {
	fm, body := parser.ParseFrontmatter(raw)
	c.doc = &Document{
		Section:     section,
		Frontmatter: fm,
		Body:        body,
		Blocks:      parser.Render(body),
		TOC:         parser.ExtractTOC(body),
		Err:         err,
	}
	c.loading = false
}

func (c *Controller) find(id string) (content.Section, bool) {
	for _, s := range c.sections {
		if s.ID == id {
			return s, true
		}
	}
	return content.Section{}, false
}

// Sections returns the installed sections
func (c *Controller) Sections() []content.Section { return c.sections }

// Active returns the active section id
func (c *Controller) Active() string { return c.active }

// Loading reports whether a load is in flight
func (c *Controller) Loading() bool { return c.loading }

// Document returns the last applied document, or nil before the first load
func (c *Controller) Document() *Document { return c.doc }

// Index returns the position of the active section
func (c *Controller) Index() int {
	for i, s := range c.sections {
		if s.ID == c.active {
			return i
		}
	}
	return -1
}

// Placeholder is the document shown when file cannot be loaded
func Placeholder(file string) string {
	return fmt.Sprintf("# Error\n\nFailed to load content: %s", file)
}
