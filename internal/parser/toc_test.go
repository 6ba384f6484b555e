package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTOC(t *testing.T) {
	body := "# Intro\ntext\n## Setup Steps\n### Step 1: Install\n#### Notes\n##### Too deep\n#no space\n# \n## Setup Steps"

	want := []TOCItem{
		{ID: "intro", Title: "Intro", Level: 1},
		{ID: "setup-steps", Title: "Setup Steps", Level: 2},
		{ID: "step-1-install", Title: "Step 1: Install", Level: 3},
		{ID: "notes", Title: "Notes", Level: 4},
		{ID: "setup-steps", Title: "Setup Steps", Level: 2},
	}
	assert.Equal(t, want, ExtractTOC(body))
}

func TestExtractTOCDoesNotTrackFences(t *testing.T) {
	// Fence state is not tracked, so the commented line is still listed.
	items := ExtractTOC("```sh\n# not a heading\n```")
	assert.Equal(t, []TOCItem{{ID: "not-a-heading", Title: "not a heading", Level: 1}}, items)
}

func TestHeadingLine(t *testing.T) {
	tests := []struct {
		line  string
		level int
		text  string
		ok    bool
	}{
		{line: "# A", level: 1, text: "A", ok: true},
		{line: "#### D", level: 4, text: "D", ok: true},
		{line: "##### E", ok: false},
		{line: "#A", ok: false},
		{line: "# ", ok: false},
		{line: "#", ok: false},
		{line: " # A", ok: false},
		{line: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			level, text, ok := HeadingLine(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.level, level)
			assert.Equal(t, tt.text, text)
		})
	}
}
