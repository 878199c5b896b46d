package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/todate/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// KindColor returns the style used for a date kind badge.
func KindColor(k domain.DateKind) lipgloss.Style {
	switch k {
	case domain.KindSchool:
		return StylePurple
	case domain.KindMonth:
		return StyleBlue
	case domain.KindDay:
		return StyleGreen
	case domain.KindDatetime:
		return StyleYellow
	default:
		return StyleDim
	}
}

// KindBadge renders a short colored label for a date kind, e.g. "[school]".
func KindBadge(k domain.DateKind) string {
	return KindColor(k).Render("[" + string(k) + "]")
}

// TagStyle colors text with a tag's own hex color, falling back to gray.
func TagStyle(color string) lipgloss.Style {
	if !domain.IsHexColor(color) {
		color = domain.FallbackTagColor
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// TagChip renders "● name" in the tag's color.
func TagChip(t domain.Tag) string {
	return TagStyle(t.Color).Render("● " + t.Name)
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
