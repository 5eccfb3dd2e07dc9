// Package tui provides the terminal chat interface.
package tui

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/geminichat/internal/errors"
	"github.com/diogo/geminichat/internal/render"
)

// palette is the theme the styles below were built from
var palette render.TUITheme

// thinkingColors cycle through the waiting animation
var thinkingColors []lipgloss.Color

// Styles rebuilt by UpdateTheme
var (
	headerStyle   lipgloss.Style
	titleStyle    lipgloss.Style
	subtitleStyle lipgloss.Style
	hintStyle     lipgloss.Style

	messagesAreaStyle    lipgloss.Style
	userLabelStyle       lipgloss.Style
	userBubbleStyle      lipgloss.Style
	assistantLabelStyle  lipgloss.Style
	assistantBubbleStyle lipgloss.Style
	revealBubbleStyle    lipgloss.Style // answer still being revealed

	inputPanelStyle lipgloss.Style
	inputLabelStyle lipgloss.Style
	loadingStyle    lipgloss.Style

	statusBarStyle  lipgloss.Style
	statusKeyStyle  lipgloss.Style
	statusDescStyle lipgloss.Style
	statusOkStyle   lipgloss.Style
	statusWarnStyle lipgloss.Style

	errorStyle lipgloss.Style
	dimStyle   lipgloss.Style

	welcomeStyle      lipgloss.Style
	welcomeTitleStyle lipgloss.Style
	welcomeIconStyle  lipgloss.Style
)

func init() {
	UpdateTheme()
}

// UpdateTheme rebuilds every style from the current TUI theme.
// Call it after render.SetTUITheme.
func UpdateTheme() {
	t := render.GetTUITheme()
	palette = t
	thinkingColors = []lipgloss.Color{t.Assistant, t.Accent, t.User, t.Success, t.Warning}

	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	panel := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)
	bubble := func(border lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Foreground(t.Text).
			Padding(0, 1)
	}

	headerStyle = panel.Padding(0, 2)
	titleStyle = fg(t.Assistant).Bold(true)
	subtitleStyle = fg(t.TextDim)
	hintStyle = fg(t.TextMute).Italic(true)

	messagesAreaStyle = panel
	userLabelStyle = fg(t.User).Bold(true).MarginLeft(4)
	userBubbleStyle = bubble(t.User).MarginLeft(4)
	assistantLabelStyle = fg(t.Assistant).Bold(true)
	assistantBubbleStyle = bubble(t.Assistant).MarginRight(4)
	revealBubbleStyle = assistantBubbleStyle.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Accent)

	inputPanelStyle = panel
	inputLabelStyle = fg(t.User).Bold(true).MarginRight(1)
	loadingStyle = fg(t.Accent).Bold(true)

	statusBarStyle = fg(t.TextMute)
	statusKeyStyle = fg(t.TextDim).Bold(true)
	statusDescStyle = fg(t.TextMute)
	statusOkStyle = fg(t.Success).Bold(true)
	statusWarnStyle = fg(t.Warning)

	errorStyle = fg(t.Error).Bold(true)
	dimStyle = fg(t.TextDim)

	welcomeStyle = fg(t.TextDim).Align(lipgloss.Center)
	welcomeTitleStyle = fg(t.Assistant).Bold(true).Align(lipgloss.Center)
	welcomeIconStyle = fg(t.Accent).Align(lipgloss.Center)
}

// FormatError renders err with the HTTP status, endpoint and a hint when the
// error chain carries them.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(errorStyle.Render(fmt.Sprintf("✗ %v", err)))

	if status := errors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}
	if endpoint := errors.GetEndpoint(err); endpoint != "" {
		sb.WriteString(dimStyle.Render("\n  Endpoint: " + endpoint))
	}
	if hint := errorHint(err); hint != "" {
		sb.WriteString(dimStyle.Render("\n  Hint: " + hint))
	}
	return sb.String()
}

func errorHint(err error) string {
	switch {
	case stderrors.Is(err, errors.ErrMissingAPIKey):
		return "Export GEMINI_API_KEY (or GOOGLE_API_KEY) before starting"
	case errors.IsAuthError(err):
		return "Check that GEMINI_API_KEY holds a valid API key"
	case errors.IsRateLimitError(err):
		return "You've hit the rate limit. Try again later or use a different model"
	case errors.IsBlockedError(err):
		return "The prompt or answer was blocked by the safety filter. Try rephrasing"
	case errors.IsNetworkError(err):
		return "Check your internet connection and try again"
	default:
		return ""
	}
}

// PrintError writes FormatError(err) and a newline to w.
func PrintError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(w, FormatError(err))
}
