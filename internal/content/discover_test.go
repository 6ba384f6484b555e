package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSection(t *testing.T) {
	raw := "---\ndescription: Wire it up\norder: 3\ncategory: Backends\n---\n# Body"
	s := NewSection("setup-firebase.md", raw)

	assert.Equal(t, "setup-firebase", s.ID)
	assert.Equal(t, "setup-firebase.md", s.File)
	assert.Equal(t, "Setup Firebase", s.Title)
	assert.Equal(t, "Wire it up", s.Description)
	assert.Equal(t, "Backends", s.Category)
	assert.True(t, s.HasOrder)
	assert.Equal(t, 3, s.Order)
	assert.Equal(t, len(raw), s.Size)

	s = NewSection("guides/intro.md", "---\ntitle: Welcome\n---\n")
	assert.Equal(t, "guides/intro", s.ID)
	assert.Equal(t, "Welcome", s.Title)
	assert.False(t, s.HasOrder)
}

func TestSectionID(t *testing.T) {
	assert.Equal(t, "a", SectionID("a.md"))
	assert.Equal(t, "A", SectionID("A.MD"))
	assert.Equal(t, "notes.txt", SectionID("notes.txt"))
}

func TestSortSections(t *testing.T) {
	sections := []Section{
		{ID: "zeta", Title: "Zeta"},
		{ID: "second", Title: "Second", Order: 2, HasOrder: true},
		{ID: "alpha", Title: "alpha"},
		{ID: "first", Title: "First", Order: 1, HasOrder: true},
		{ID: "beta", Title: "Beta"},
	}
	SortSections(sections)

	var ids []string
	for _, s := range sections {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"first", "second", "alpha", "beta", "zeta"}, ids)
}

func TestDiscover(t *testing.T) {
	inner := &countingStore{docs: map[string]string{
		"getting-started.md": "---\ntitle: Getting Started\norder: 1\n---\n# Hi",
		"setup_supabase.md":  "# Supabase",
	}}

	sections, err := Discover(context.Background(), inner)
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, "getting-started", sections[0].ID)
	assert.Equal(t, "Setup_supabase", sections[1].Title)
}

func TestGroupByCategory(t *testing.T) {
	sections := []Section{
		{ID: "a"},
		{ID: "b", Category: "Backends"},
		{ID: "c"},
	}
	groups := GroupByCategory(sections)

	require.Len(t, groups, 2)
	assert.Equal(t, DefaultCategory, groups[0].Category)
	assert.Len(t, groups[0].Sections, 2)
	assert.Equal(t, "Backends", groups[1].Category)
	assert.True(t, HasCategories(groups))

	assert.False(t, HasCategories(GroupByCategory([]Section{{ID: "a"}})))
	assert.True(t, HasCategories(GroupByCategory([]Section{{ID: "a", Category: "X"}})))
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.md", "a")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed, err := Watch(ctx, dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("a2"), 0o644))

	select {
	case file := <-changed:
		assert.Equal(t, "a.md", file)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	for range changed {
	}
}
