package formatter

import (
	"strings"

	"github.com/alexanderramin/rpdform/internal/cascade"
	"github.com/alexanderramin/rpdform/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// OptionLabel renders "label (code)" with the code dimmed.
func OptionLabel(o domain.Option) string {
	return o.Label + " " + Dim("("+o.Code+")")
}

// SystemValue renders the "Sistem değeri" line shown under a filled choice.
func SystemValue(code string) string {
	if code == "" {
		return ""
	}
	return Dim("Sistem değeri: " + code)
}

// RenderAdvisory renders an advisory with its details as bullet lines.
// The zero advisory renders as "".
func RenderAdvisory(a cascade.Advisory) string {
	if a.IsZero() {
		return ""
	}
	style := AdvisoryStyle(a.Level)

	lines := []string{style.Render(a.Message)}
	for _, d := range a.Details {
		lines = append(lines, Dim("  • "+d))
	}
	if a.Hint != "" {
		lines = append(lines, Dim(a.Hint))
	}
	return strings.Join(lines, "\n")
}

// Truncate shortens s to at most n visible runes, adding "…" when cut.
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
