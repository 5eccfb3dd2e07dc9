package commands

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/geminichat/internal/render"
)

// Styles for one-shot output. applyTheme keeps them in step with the chat.
var (
	assistantLabelStyle  lipgloss.Style
	assistantBubbleStyle lipgloss.Style
	codeHeaderStyle      lipgloss.Style
	successStyle         lipgloss.Style
	warningStyle         lipgloss.Style
	spinnerTextStyle     lipgloss.Style
	spinnerMuteStyle     lipgloss.Style

	// spinnerColors cycle through the frames of the waiting indicator
	spinnerColors []lipgloss.Color
)

func init() { applyTheme(render.GetTUITheme()) }

func applyTheme(t render.TUITheme) {
	assistantLabelStyle = lipgloss.NewStyle().Foreground(t.Assistant).Bold(true)
	assistantBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Assistant).
		Foreground(t.Text).
		Padding(0, 1).
		MarginTop(1).
		MarginBottom(1)
	codeHeaderStyle = lipgloss.NewStyle().Foreground(t.TextDim).Italic(true)
	successStyle = lipgloss.NewStyle().Foreground(t.Success)
	warningStyle = lipgloss.NewStyle().Foreground(t.Warning)
	spinnerTextStyle = lipgloss.NewStyle().Foreground(t.Text)
	spinnerMuteStyle = lipgloss.NewStyle().Foreground(t.TextMute)

	spinnerColors = []lipgloss.Color{t.Assistant, t.Accent, t.User, t.Success}
}
