// Package layout renders the frame around every screen: a header bar with
// the app name, the screen title and a status slot, and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizz/internal/ui/theme"
)

// Smallest terminal the quiz card and its four options fit into.
const (
	MinWidth  = 60
	MinHeight = 20
)

const appName = "Quizz"

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func (h KeyHint) render() string {
	return lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key) +
		" " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
}

// IsTooSmall reports whether the terminal is below the minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	body := strings.Join([]string{
		theme.Title.Render("Window too small"),
		"",
		fmt.Sprintf("Quizz needs at least %d×%d.", MinWidth, MinHeight),
		theme.Hint.Render(fmt.Sprintf("Now: %d×%d", width, height)),
	}, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(body))
}

// bar is the bordered strip used for both header and footer.
func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// RenderHeader renders the app name on the left, title in the middle and
// status (usually the active question file) on the right.
func RenderHeader(title, status string, width int) string {
	style := bar(width)
	inner := width - style.GetHorizontalFrameSize()
	if inner < 0 {
		inner = 0
	}

	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(appName)
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)

	side := max(lipgloss.Width(name), lipgloss.Width(right))
	mid := inner - 2*side
	if mid < lipgloss.Width(title) {
		mid = lipgloss.Width(title)
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.PlaceHorizontal(side, lipgloss.Left, name),
		lipgloss.PlaceHorizontal(mid, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Text).Render(title)),
		lipgloss.PlaceHorizontal(side, lipgloss.Right, right),
	)
	return style.Render(row)
}

// RenderFooter renders as many hints as fit on one line, in order.
func RenderFooter(hints []KeyHint, width int) string {
	style := bar(width)
	inner := width - style.GetHorizontalFrameSize()

	const sep = "   "
	var line string
	for _, h := range hints {
		part := h.render()
		next := part
		if line != "" {
			next = line + sep + part
		}
		if lipgloss.Width(next) > inner {
			break
		}
		line = next
	}
	return style.Render(line)
}

// RenderFrame stacks header, content and footer, giving the content all the
// height the bars leave over.
func RenderFrame(header, content, footer string, width, height int) string {
	rest := height - lipgloss.Height(header) - lipgloss.Height(footer)
	if rest < 0 {
		rest = 0
	}
	body := lipgloss.NewStyle().
		Width(width).
		Height(rest).
		MaxHeight(rest).
		Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
