package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizz/internal/ui/theme"
)

// ProgressBar displays a horizontal bar filled to Fraction (0..1).
type ProgressBar struct {
	Label    string
	Fraction float64
	Suffix   string
	Width    int
}

// NewProgressBar creates a progress bar. An empty suffix shows the percentage.
func NewProgressBar(label string, fraction float64, suffix string, width int) ProgressBar {
	return ProgressBar{
		Label:    label,
		Fraction: fraction,
		Suffix:   suffix,
		Width:    width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var left string
	if p.Label != "" {
		left = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	suffix := p.Suffix
	if suffix == "" {
		suffix = fmt.Sprintf("%d%%", int(p.Fraction*100+0.5))
	}
	right := "  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(suffix)

	barWidth := p.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Fraction)
	filled = max(0, min(filled, barWidth))

	bar := lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))

	return left + bar + right
}
