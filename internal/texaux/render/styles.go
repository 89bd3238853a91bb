package render

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#10B981")
	colorAccent    = lipgloss.Color("#F59E0B")
	colorInfo      = lipgloss.Color("#3B82F6")
	colorMuted     = lipgloss.Color("#6B7280")
	colorFg        = lipgloss.Color("#F9FAFB")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFg).
			Padding(0, 1)

	CellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	MutedCellStyle = CellStyle.
			Foreground(colorMuted)

	BorderStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	SummaryStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)
)

// typeColors groups common LaTeX counters by colour
var typeColors = map[string]lipgloss.Color{
	"cite":        colorAccent,
	"chapter":     colorSecondary,
	"section":     colorSecondary,
	"subsection":  colorSecondary,
	"appendix":    colorSecondary,
	"theorem":     colorPrimary,
	"lemma":       colorPrimary,
	"corollary":   colorPrimary,
	"proposition": colorPrimary,
	"definition":  colorPrimary,
	"equation":    colorInfo,
	"figure":      colorInfo,
	"table":       colorInfo,
}

// TypeStyle returns the cell style for a record type, nil when untyped
func TypeStyle(typ *string) lipgloss.Style {
	if typ == nil || *typ == "" {
		return MutedCellStyle
	}
	if c, ok := typeColors[*typ]; ok {
		return CellStyle.Foreground(c)
	}
	return CellStyle
}
