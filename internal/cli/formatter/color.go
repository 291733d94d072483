package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/rpdform/internal/cascade"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// AdvisoryStyle returns the style for an inline advisory.
func AdvisoryStyle(level cascade.AdvisoryLevel) lipgloss.Style {
	switch level {
	case cascade.AdvisoryWarning:
		return StyleYellow
	case cascade.AdvisoryInfo:
		return StyleBlue
	default:
		return StyleDim
	}
}

// BadgeStyle colors the stage-3 mandatory/optional marker.
func BadgeStyle(badge string) lipgloss.Style {
	if badge == "(Zorunlu)" {
		return StyleRed
	}
	return StyleGreen
}

// MatchLevelIndicator renders a roster match level such as "● exact".
func MatchLevelIndicator(level cascade.MatchLevel) string {
	switch level {
	case cascade.MatchExact:
		return StyleGreen.Render("● " + level.String())
	case cascade.MatchClassAndSection, cascade.MatchFolded:
		return StyleBlue.Render("● " + level.String())
	case cascade.MatchClassOnly:
		return StyleYellow.Render("● " + level.String())
	default:
		return StyleRed.Render("● " + level.String())
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

// Error renders an error line.
func Error(err error) string {
	return StyleRed.Render("Hata: " + err.Error())
}
