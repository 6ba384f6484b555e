package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/gubarz/docmd/internal/config"
)

// palette is the set of base colors for one theme
type palette struct {
	text       lipgloss.Color
	muted      lipgloss.Color
	accent     lipgloss.Color
	code       lipgloss.Color
	codeBg     lipgloss.Color
	border     lipgloss.Color
	selectedBg lipgloss.Color
}

var (
	darkPalette = palette{
		text:       lipgloss.Color("252"),
		muted:      lipgloss.Color("241"),
		accent:     lipgloss.Color("2"),
		code:       lipgloss.Color("6"),
		codeBg:     lipgloss.Color("235"),
		border:     lipgloss.Color("240"),
		selectedBg: lipgloss.Color("236"),
	}
	lightPalette = palette{
		text:       lipgloss.Color("235"),
		muted:      lipgloss.Color("244"),
		accent:     lipgloss.Color("28"),
		code:       lipgloss.Color("25"),
		codeBg:     lipgloss.Color("254"),
		border:     lipgloss.Color("250"),
		selectedBg: lipgloss.Color("253"),
	}
)

// StyleManager encapsulates all TUI styles and provides methods for style operations
type StyleManager struct {
	Theme string

	// Document styles
	H1         lipgloss.Style
	H2         lipgloss.Style
	H3         lipgloss.Style
	H4         lipgloss.Style
	Paragraph  lipgloss.Style
	Quote      lipgloss.Style
	QuoteText  lipgloss.Style
	CodeBlock  lipgloss.Style
	CodeLang   lipgloss.Style
	Bold       lipgloss.Style
	Italic     lipgloss.Style
	InlineCode lipgloss.Style
	TableEdge  lipgloss.Style
	TableHead  lipgloss.Style
	Enumerator lipgloss.Style

	// Navigation styles
	NavTitle    lipgloss.Style
	NavCategory lipgloss.Style
	NavItem     lipgloss.Style
	NavActive   lipgloss.Style
	NavDesc     lipgloss.Style
	TOCItem     lipgloss.Style
	TOCActive   lipgloss.Style
	Marker      lipgloss.Style

	// Chrome styles
	Selected lipgloss.Style
	Dim      lipgloss.Style
	Divider  lipgloss.Style
	Error    lipgloss.Style

	// Colors for direct access
	SelectedBg lipgloss.Color
}

// DefaultStyles returns a StyleManager for the named theme ("dark" or "light")
func DefaultStyles(theme string) *StyleManager {
	p := darkPalette
	if theme == "light" {
		p = lightPalette
	} else {
		theme = "dark"
	}
	return newStyles(theme, p)
}

func newStyles(theme string, p palette) *StyleManager {
	return &StyleManager{
		Theme: theme,

		H1:         lipgloss.NewStyle().Bold(true).Underline(true).Foreground(p.accent),
		H2:         lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		H3:         lipgloss.NewStyle().Bold(true).Foreground(p.text),
		H4:         lipgloss.NewStyle().Bold(true).Foreground(p.muted),
		Paragraph:  lipgloss.NewStyle().Foreground(p.text),
		Quote:      lipgloss.NewStyle().Border(lipgloss.ThickBorder(), false, false, false, true).BorderForeground(p.border).PaddingLeft(1),
		QuoteText:  lipgloss.NewStyle().Italic(true).Foreground(p.muted),
		CodeBlock:  lipgloss.NewStyle().Foreground(p.code).Border(lipgloss.RoundedBorder()).BorderForeground(p.border).Padding(0, 1),
		CodeLang:   lipgloss.NewStyle().Foreground(p.muted),
		Bold:       lipgloss.NewStyle().Bold(true),
		Italic:     lipgloss.NewStyle().Italic(true),
		InlineCode: lipgloss.NewStyle().Foreground(p.code).Background(p.codeBg),
		TableEdge:  lipgloss.NewStyle().Foreground(p.border),
		TableHead:  lipgloss.NewStyle().Bold(true).Foreground(p.accent).Padding(0, 1),
		Enumerator: lipgloss.NewStyle().Foreground(p.accent).MarginRight(1),

		NavTitle:    lipgloss.NewStyle().Bold(true).Foreground(p.muted),
		NavCategory: lipgloss.NewStyle().Foreground(p.muted),
		NavItem:     lipgloss.NewStyle().Foreground(p.text),
		NavActive:   lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		NavDesc:     lipgloss.NewStyle().Foreground(p.muted),
		TOCItem:     lipgloss.NewStyle().Foreground(p.muted),
		TOCActive:   lipgloss.NewStyle().Foreground(p.text).Bold(true),
		Marker:      lipgloss.NewStyle().Foreground(p.accent),

		Selected: lipgloss.NewStyle().Background(p.selectedBg),
		Dim:      lipgloss.NewStyle().Foreground(p.muted),
		Divider:  lipgloss.NewStyle().Foreground(p.border),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")),

		SelectedBg: p.selectedBg,
	}
}

// LoadFromConfig applies color overrides from configuration
func (s *StyleManager) LoadFromConfig() {
	p := darkPalette
	if s.Theme == "light" {
		p = lightPalette
	}
	if c := config.GetColorAccent(); c != "" {
		p.accent = parseANSIColor(c)
	}
	if c := config.GetColorCode(); c != "" {
		p.code = parseANSIColor(c)
	}
	if c := config.GetColorBorder(); c != "" {
		p.border = parseANSIColor(c)
	}
	if c := config.GetColorDim(); c != "" {
		p.muted = parseANSIColor(c)
	}
	*s = *newStyles(s.Theme, p)
}

// WithSelection returns a copy of the given style with the selected background applied
func (s *StyleManager) WithSelection(style lipgloss.Style) lipgloss.Style {
	return style.Background(s.SelectedBg)
}

// Heading returns the style for a heading level
func (s *StyleManager) Heading(level int) lipgloss.Style {
	switch level {
	case 1:
		return s.H1
	case 2:
		return s.H2
	case 3:
		return s.H3
	default:
		return s.H4
	}
}

// parseANSIColor converts ANSI color codes to lipgloss colors
func parseANSIColor(code string) lipgloss.Color {
	ansiToLipgloss := map[string]string{
		"30": "0", "31": "1", "32": "2", "33": "3",
		"34": "4", "35": "5", "36": "6", "37": "7",
		"90": "8", "91": "9", "92": "10", "93": "11",
		"94": "12", "95": "13", "96": "14", "97": "15",
	}
	if mapped, ok := ansiToLipgloss[code]; ok {
		return lipgloss.Color(mapped)
	}
	return lipgloss.Color(code)
}

// Global style manager instance
var styles = DefaultStyles("dark")

// RefreshStyles rebuilds the global styles for theme and applies config colors
func RefreshStyles(theme string) {
	styles = DefaultStyles(theme)
	styles.LoadFromConfig()
}
