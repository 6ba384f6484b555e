package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrontmatter(t *testing.T) {
	fm, body := ParseFrontmatter("---\ntitle: Foo\norder: 2\n---\nBody")

	assert.Equal(t, Frontmatter{
		"title": StringValue("Foo"),
		"order": IntValue(2),
	}, fm)
	assert.Equal(t, "Body", body)

	order, ok := fm.Order()
	require.True(t, ok)
	assert.Equal(t, 2, order)
	assert.Equal(t, "Foo", fm.Title())
}

func TestParseFrontmatterPassthrough(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "no block", raw: "# Just a heading"},
		{name: "unterminated", raw: "---\ntitle: Foo\n# Heading\n"},
		{name: "not at start", raw: "intro\n---\ntitle: Foo\n---\nBody"},
		{name: "empty", raw: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, body := ParseFrontmatter(tt.raw)
			assert.Empty(t, fm)
			assert.Equal(t, tt.raw, body)
		})
	}
}

func TestParseFrontmatterValues(t *testing.T) {
	raw := `---
# comment
title: "Getting: Started"
description: 'Quick tour'
order: 10
draft: false
published: true
category: Guides

no colon here
version: 1.2
quoted_number: "42"
quoted_bool: 'true'
---

# Heading

Text
`
	fm, body := ParseFrontmatter(raw)

	assert.Equal(t, "# Heading\n\nText", body)
	assert.Equal(t, "Getting: Started", fm.Title())
	assert.Equal(t, "Quick tour", fm.Description())
	assert.Equal(t, "Guides", fm.Category())
	assert.Equal(t, IntValue(10), fm["order"])
	assert.Equal(t, BoolValue(false), fm["draft"])
	assert.Equal(t, BoolValue(true), fm["published"])
	assert.Equal(t, StringValue("1.2"), fm["version"])
	assert.Equal(t, IntValue(42), fm["quoted_number"])
	assert.Equal(t, BoolValue(true), fm["quoted_bool"])
	assert.NotContains(t, fm, "no colon here")
	assert.Len(t, fm, 9)

	_, ok := fm.GetInt("title")
	assert.False(t, ok)
	_, ok = fm.GetBool("missing")
	assert.False(t, ok)
}

func TestParseFrontmatterCRLF(t *testing.T) {
	fm, body := ParseFrontmatter("---\r\ntitle: Foo\r\n---\r\nBody\r\n")
	assert.Equal(t, "Foo", fm.Title())
	assert.Equal(t, "Body", body)
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "7", IntValue(7).String())
	assert.Equal(t, "true", BoolValue(true).String())
	assert.Equal(t, "x", StringValue("x").String())
}
