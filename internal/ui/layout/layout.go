// Package layout draws the frame around the active screen.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examgen/internal/ui/theme"
)

// Below this size the exam text wraps too tightly to read.
const (
	MinWidth  = 60
	MinHeight = 20
)

// KeyHint is one footer entry.
type KeyHint struct {
	Key         string
	Description string
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("Terminal too small: %dx%d\n\nexamgen needs at least %dx%d.",
			width, height, MinWidth, MinHeight))
}

// RenderHeader shows the app name and screen title on the left and the
// selected model on the right.
func RenderHeader(title, model string, width int) string {
	left := theme.Title.Render("examgen")
	if title != "" {
		left += theme.Hint.Render("  /  ") + theme.Body.Render(title)
	}

	var right string
	if model != "" {
		right = lipgloss.NewStyle().Foreground(theme.Accent).Render("model: " + model)
	}

	inner := max(width-4, 0)
	gap := max(inner-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return theme.Bar.Width(width).Render(" " + left + strings.Repeat(" ", gap) + right)
}

// RenderFooter lists the key hints in order.
func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = theme.Key.Render(h.Key) + " " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
	}
	return theme.Bar.Width(width).Render(" " + strings.Join(parts, "  ·  "))
}

// RenderFrame stacks header, content and footer, padding the content to
// fill the remaining height.
func RenderFrame(header, content, footer string, width, height int) string {
	body := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.NewStyle().Width(width).Height(body).Render(content),
		footer,
	)
}
