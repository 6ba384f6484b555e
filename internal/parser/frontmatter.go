package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// ValueKind tags a frontmatter value
type ValueKind int

const (
	KindString ValueKind = iota
	KindInt
	KindBool
)

// Value is a single frontmatter value
type Value struct {
	Kind ValueKind
	Str  string
	Int  int
	Bool bool
}

// StringValue returns a string-tagged Value
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// IntValue returns an integer-tagged Value
func IntValue(n int) Value { return Value{Kind: KindInt, Int: n} }

// BoolValue returns a boolean-tagged Value
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// String formats the value the way it would appear unquoted in the block
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.Itoa(v.Int)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	default:
		return v.Str
	}
}

// Frontmatter holds the flat key/value block at the top of a document
type Frontmatter map[string]Value

// GetString returns the value for key if it is a string
func (f Frontmatter) GetString(key string) (string, bool) {
	v, ok := f[key]
	if !ok || v.Kind != KindString {
		return "", false
	}
	return v.Str, true
}

// GetInt returns the value for key if it is an integer
func (f Frontmatter) GetInt(key string) (int, bool) {
	v, ok := f[key]
	if !ok || v.Kind != KindInt {
		return 0, false
	}
	return v.Int, true
}

// GetBool returns the value for key if it is a boolean
func (f Frontmatter) GetBool(key string) (bool, bool) {
	v, ok := f[key]
	if !ok || v.Kind != KindBool {
		return false, false
	}
	return v.Bool, true
}

func (f Frontmatter) Title() string {
	s, _ := f.GetString("title")
	return s
}

func (f Frontmatter) Description() string {
	s, _ := f.GetString("description")
	return s
}

func (f Frontmatter) Category() string {
	s, _ := f.GetString("category")
	return s
}

func (f Frontmatter) Order() (int, bool) {
	return f.GetInt("order")
}

var (
	frontmatterRe = regexp.MustCompile(`(?s)\A---[ \t]*\r?\n(.*?)\r?\n---[ \t]*(?:\r?\n(.*))?\z`)
	digitsRe      = regexp.MustCompile(`^[0-9]+$`)
)

// ParseFrontmatter splits a leading ----delimited block from raw.
// Without a complete block, the frontmatter is empty and body is raw unchanged.
func ParseFrontmatter(raw string) (Frontmatter, string) {
	matches := frontmatterRe.FindStringSubmatch(raw)
	if matches == nil {
		return Frontmatter{}, raw
	}
	return parseBlock(matches[1]), strings.TrimSpace(matches[2])
}

func parseBlock(block string) Frontmatter {
	fm := Frontmatter{}
	for _, line := range splitLines(block) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.Index(line, ":")
		if idx == -1 {
			continue
		}

		key := strings.TrimSpace(line[:idx])
		fm[key] = parseValue(strings.TrimSpace(line[idx+1:]))
	}
	return fm
}

// parseValue strips matching quotes, then types the rest as an integer,
// a boolean or a string.
func parseValue(value string) Value {
	value = unquote(value)
	if digitsRe.MatchString(value) {
		if n, err := strconv.Atoi(value); err == nil {
			return IntValue(n)
		}
	}
	switch value {
	case "true":
		return BoolValue(true)
	case "false":
		return BoolValue(false)
	}
	return StringValue(value)
}

func unquote(value string) string {
	if len(value) < 2 {
		return value
	}
	first, last := value[0], value[len(value)-1]
	if (first == '"' || first == '\'') && first == last {
		return value[1 : len(value)-1]
	}
	return value
}
