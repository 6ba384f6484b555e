package content

import (
	"context"
	"log"
	"path"
	"sort"
	"strings"

	"github.com/gubarz/docmd/internal/parser"
)

// DefaultCategory groups sections without a category
const DefaultCategory = "General"

// Section is one navigable document
type Section struct {
	ID          string // file name without extension
	File        string // name passed to Store.Fetch
	Title       string
	Description string
	Category    string
	Order       int
	HasOrder    bool
	Size        int
	Frontmatter parser.Frontmatter
}

// NewSection builds a section from a file name and its raw text
func NewSection(file, raw string) Section {
	fm, _ := parser.ParseFrontmatter(raw)
	id := SectionID(file)

	s := Section{
		ID:          id,
		File:        file,
		Title:       fm.Title(),
		Description: fm.Description(),
		Category:    fm.Category(),
		Size:        len(raw),
		Frontmatter: fm,
	}
	s.Order, s.HasOrder = fm.Order()
	if s.Title == "" {
		s.Title = titleFromID(id)
	}
	return s
}

// SectionID strips the markdown extension from file
func SectionID(file string) string {
	ext := path.Ext(file)
	if strings.EqualFold(ext, ".md") {
		return strings.TrimSuffix(file, ext)
	}
	return file
}

// titleFromID turns "setup-firebase" into "Setup Firebase"
func titleFromID(id string) string {
	words := strings.Split(path.Base(id), "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// Discover lists the store's documents, reads their frontmatter and returns
// them sorted. Files that fail to load are skipped.
func Discover(ctx context.Context, store Store) ([]Section, error) {
	files, err := store.List(ctx)
	if err != nil {
		return nil, err
	}

	sections := make([]Section, 0, len(files))
	for _, file := range files {
		raw, err := store.Fetch(ctx, file)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("content file %s not accessible, skipping: %v", file, err)
			continue
		}
		sections = append(sections, NewSection(file, raw))
	}

	SortSections(sections)
	return sections, nil
}

// SortSections orders by frontmatter order when both sides have one,
// ordered before unordered, then by title
func SortSections(sections []Section) {
	sort.SliceStable(sections, func(i, j int) bool {
		a, b := sections[i], sections[j]
		switch {
		case a.HasOrder && b.HasOrder:
			if a.Order != b.Order {
				return a.Order < b.Order
			}
			return lessTitle(a.Title, b.Title)
		case a.HasOrder:
			return true
		case b.HasOrder:
			return false
		}
		return lessTitle(a.Title, b.Title)
	})
}

func lessTitle(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}

// Group is a category and its sections in display order
type Group struct {
	Category string
	Sections []Section
}

// GroupByCategory keeps first-seen category order
func GroupByCategory(sections []Section) []Group {
	var groups []Group
	index := make(map[string]int)
	for _, s := range sections {
		category := s.Category
		if category == "" {
			category = DefaultCategory
		}
		i, ok := index[category]
		if !ok {
			i = len(groups)
			index[category] = i
			groups = append(groups, Group{Category: category})
		}
		groups[i].Sections = append(groups[i].Sections, s)
	}
	return groups
}

// HasCategories reports whether the nav should show category headers
func HasCategories(groups []Group) bool {
	return len(groups) > 1 || (len(groups) == 1 && groups[0].Category != DefaultCategory)
}
