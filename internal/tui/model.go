package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/geminichat/internal/api"
	"github.com/diogo/geminichat/internal/conversation"
	"github.com/diogo/geminichat/internal/logging"
	"github.com/diogo/geminichat/internal/history"
	"github.com/diogo/geminichat/internal/models"
	"github.com/diogo/geminichat/internal/render"
)

const (
	// DefaultRevealDelay is the pause between two revealed characters
	DefaultRevealDelay = 20 * time.Millisecond

	// how long transient status notes such as "✓ Copied" stay visible
	statusTTL = 2 * time.Second

	// narrowest width markdown is wrapped to
	minMarkdownWidth = 20
)

// Animation tick message
type animationTickMsg time.Time

// Message types for the TUI
type (
	responseMsg struct {
		text string
	}
	errMsg struct {
		err error
	}
	// revealTickMsg advances the reveal by one unit
	revealTickMsg time.Time
	// clearStatusMsg hides the status note set under the same sequence number
	clearStatusMsg struct {
		seq int
	}
)

// Options configures the chat view
type Options struct {
	ModelName   string
	Welcome     string
	RevealDelay time.Duration
	Markdown    render.Options
	Logger      *slog.Logger
	// Clipboard writes text to the system clipboard
	Clipboard func(string) error
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		Welcome:     models.WelcomeMessage,
		RevealDelay: DefaultRevealDelay,
		Markdown:    render.DefaultOptions(),
		// the default handler writes to stderr, which would tear the alt screen
		Logger:      logging.Discard(),
		Clipboard:   clipboard.WriteAll,
	}
}

// Model represents the TUI state
type Model struct {
	client api.Generator
	conv   *conversation.Conversation
	opts   Options

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// State
	ready          bool
	animationFrame int // Frame counter for loading animation
	status         string
	statusOK       bool
	statusSeq      int

	// committed history rendered once per change
	cache *historyCache

	// Dimensions
	width  int
	height int
}

type historyCache struct {
	count   int
	width   int
	content string
}

// NewChatModel creates a new chat TUI model
func NewChatModel(client api.Generator, opts Options) Model {
	defaults := DefaultOptions()
	if opts.Logger == nil {
		opts.Logger = defaults.Logger
	}
	if opts.Clipboard == nil {
		opts.Clipboard = defaults.Clipboard
	}
	if opts.RevealDelay < 0 {
		opts.RevealDelay = 0
	}
	if opts.Markdown.Style == "" {
		opts.Markdown = defaults.Markdown
	}
	if opts.ModelName == "" && client != nil {
		opts.ModelName = client.ModelName()
	}

	// Create textarea for input
	ta := textarea.New()
	ta.Placeholder = "Type your message here..."
	ta.CharLimit = 8000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	// Enter submits; newlines need alt+enter or ctrl+j
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"))
	ta.Focus()

	// Style the textarea
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(palette.Text)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(palette.TextDim)
	ta.BlurredStyle = ta.FocusedStyle

	// Create spinner
	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	return Model{
		client:   client,
		conv:     conversation.New(opts.Welcome),
		opts:     opts,
		textarea: ta,
		spinner:  s,
		cache:    &historyCache{count: -1},
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
	)
}

// animationTick returns a command that sends animation tick messages
func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

// revealTick schedules the next reveal step
func revealTick(delay time.Duration) tea.Cmd {
	if delay <= 0 {
		return func() tea.Msg { return revealTickMsg(time.Now()) }
	}
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return revealTickMsg(t)
	})
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Calculate component heights
		headerHeight := 3 // Header panel with border
		inputHeight := 6  // Input panel with border and indicator line
		statusHeight := 1 // Status bar
		borders := 2      // Messages panel border

		vpHeight := m.height - headerHeight - inputHeight - statusHeight - borders
		if vpHeight < 5 {
			vpHeight = 5
		}

		contentWidth := m.width - 4

		// Initialize viewport on first size message
		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.viewport.KeyMap = scrollKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
		}
		m.textarea.SetWidth(contentWidth - 4)
		m.updateViewport()
		m.viewport.GotoBottom()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			// a pending call or reveal cannot be cancelled
			if m.conv.Idle() {
				return m, tea.Quit
			}
			return m, nil

		case "enter":
			return m.handleEnter()
		}

	case responseMsg:
		if err := m.conv.Resolve(msg.text); err != nil {
			m.opts.Logger.Warn("unexpected_response", "error", err, "state", m.conv.State().String())
			break
		}
		m.opts.Logger.Debug("reveal_started", "chars", len(conversation.Units(msg.text)))
		cmds = append(cmds, revealTick(m.opts.RevealDelay))

	case errMsg:
		if err := m.conv.Fail(msg.err); err != nil {
			m.opts.Logger.Warn("unexpected_error", "error", err, "state", m.conv.State().String())
			break
		}
		// failures are only logged, the view just returns to idle
		m.opts.Logger.Error("generate_response_failed",
			"error", msg.err,
			"model", m.opts.ModelName,
		)

	case revealTickMsg:
		if !m.conv.Revealing() {
			break
		}
		done := m.conv.Step()
		m.updateViewport()
		m.viewport.GotoBottom()
		if !done {
			cmds = append(cmds, revealTick(m.opts.RevealDelay))
		}

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}

	case spinner.TickMsg:
		if m.conv.Awaiting() {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case animationTickMsg:
		if m.conv.Awaiting() {
			m.animationFrame++
			cmds = append(cmds, animationTick())
		}
	}

	// Only pass KeyMsg to textarea to prevent escape sequence leaks.
	// Typing stays possible while a response is pending.
	if _, ok := msg.(tea.KeyMsg); ok {
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// scrollKeyMap keeps letter keys free for typing
func scrollKeyMap() viewport.KeyMap {
	km := viewport.DefaultKeyMap()
	km.PageDown = key.NewBinding(key.WithKeys("pgdown"))
	km.PageUp = key.NewBinding(key.WithKeys("pgup"))
	km.HalfPageDown = key.NewBinding(key.WithKeys("ctrl+d"))
	km.HalfPageUp = key.NewBinding(key.WithKeys("ctrl+u"))
	km.Down = key.NewBinding(key.WithKeys("down"))
	km.Up = key.NewBinding(key.WithKeys("up"))
	return km
}

// handleEnter runs a chat command or submits the input
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	raw := m.textarea.Value()
	input := strings.TrimSpace(raw)

	if isExitCommand(input) {
		return m, tea.Quit
	}

	if name, arg, ok := parseCommand(input); ok {
		m.textarea.Reset()
		return m.runCommand(name, arg)
	}

	prompt, ok := m.conv.Submit(raw)
	if !ok {
		// blank input is dropped, busy input stays in the box for later
		if input == "" {
			m.textarea.Reset()
		}
		return m, nil
	}

	m.textarea.Reset()
	m.animationFrame = 0
	m.updateViewport()
	m.viewport.GotoBottom()

	return m, tea.Batch(
		m.sendMessage(prompt),
		m.spinner.Tick,
		animationTick(),
	)
}

func isExitCommand(input string) bool {
	switch input {
	case "/exit", "/quit":
		return true
	}
	return false
}

// parseCommand recognizes the slash commands of the chat view
func parseCommand(input string) (name, arg string, ok bool) {
	if !strings.HasPrefix(input, "/") {
		return "", "", false
	}
	name, arg, _ = strings.Cut(input, " ")
	switch name {
	case "/copy", "/save", "/clear", "/help":
		return name, strings.TrimSpace(arg), true
	}
	return "", "", false
}

func (m Model) runCommand(name, arg string) (tea.Model, tea.Cmd) {
	switch name {
	case "/copy":
		return m.copyCodeBlock(arg)
	case "/save":
		return m.saveTranscript(arg)
	case "/clear":
		if !m.conv.Reset() {
			return m.setStatus("Wait for the answer to finish", false)
		}
		m.updateViewport()
		m.viewport.GotoTop()
		return m.setStatus("Conversation cleared", true)
	default:
		return m.setStatus("/copy [n]  /save <file>  /clear  /quit", true)
	}
}

// copyCodeBlock copies the nth language-tagged code block (1-based) of the
// latest assistant message; without n the last block is copied
func (m Model) copyCodeBlock(arg string) (tea.Model, tea.Cmd) {
	msg, ok := m.conv.LastAssistant()
	if !ok {
		return m.setStatus("Nothing to copy yet", false)
	}
	blocks := render.LabeledCodeBlocks(msg.Content)
	if len(blocks) == 0 {
		return m.setStatus("No code blocks in the last answer", false)
	}

	n := len(blocks)
	if arg != "" {
		v, err := strconv.Atoi(arg)
		if err != nil || v < 1 || v > len(blocks) {
			return m.setStatus(fmt.Sprintf("Pick a block from 1 to %d", len(blocks)), false)
		}
		n = v
	}

	if err := m.opts.Clipboard(blocks[n-1].Code); err != nil {
		m.opts.Logger.Warn("clipboard_write_failed", "error", err)
		return m.setStatus("Copy failed", false)
	}
	m.opts.Logger.Debug("code_block_copied", "block", n, "language", blocks[n-1].Language)
	return m.setStatus("✓ Copied", true)
}

func (m Model) saveTranscript(path string) (tea.Model, tea.Cmd) {
	if path == "" {
		return m.setStatus("Usage: /save <file>", false)
	}
	opts := history.DefaultExportOptions()
	opts.Model = m.opts.ModelName
	opts.Format = history.FormatFromPath(path)

	if err := history.WriteExport(path, m.conv.Messages(), opts); err != nil {
		m.opts.Logger.Warn("transcript_save_failed", "path", path, "error", err)
		return m.setStatus("Save failed", false)
	}
	m.opts.Logger.Info("transcript_saved", "path", path, "messages", m.conv.Len())
	return m.setStatus("✓ Saved to "+path, true)
}

// setStatus shows a note in the status bar for a short while
func (m Model) setStatus(text string, ok bool) (tea.Model, tea.Cmd) {
	m.statusSeq++
	m.status = text
	m.statusOK = ok
	seq := m.statusSeq
	return m, tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	var sections []string
	contentWidth := m.width - 4

	// Header
	headerContent := lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render("✦ Gemini Chat"),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(m.opts.ModelName),
	)
	sections = append(sections, headerStyle.Width(contentWidth).Render(headerContent))

	// Messages area
	var messagesContent string
	if m.conv.Len() == 0 && !m.conv.Revealing() {
		messagesContent = m.renderWelcome()
	} else {
		messagesContent = m.viewport.View()
	}
	messagesPanel := messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messagesContent)
	sections = append(sections, messagesPanel)

	// Input area
	indicator := ""
	switch m.conv.State() {
	case conversation.StateSubmitting:
		indicator = m.renderLoadingAnimation()
	case conversation.StateRevealing:
		revealed, total := m.conv.Progress()
		indicator = loadingStyle.Render(fmt.Sprintf("%s Writing… %d/%d", m.spinner.View(), revealed, total))
	}
	inputContent := lipgloss.JoinVertical(
		lipgloss.Left,
		indicator,
		inputLabelStyle.Render("You"),
		m.textarea.View(),
	)
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(inputContent))

	// Status bar
	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderWelcome renders the empty-history screen
func (m Model) renderWelcome() string {
	width := m.viewport.Width - 4
	height := m.viewport.Height

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		welcomeIconStyle.Width(width).Render("✦"),
		"",
		welcomeTitleStyle.Width(width).Render("Welcome to Gemini Chat"),
		"",
		welcomeStyle.Width(width).Render("Start a conversation by typing a message below"),
	)

	// Center vertically
	topPadding := (height - lipgloss.Height(content)) / 2
	if topPadding < 0 {
		topPadding = 0
	}
	return strings.Repeat("\n", topPadding) + content
}

// renderLoadingAnimation draws the thinking indicator: a spinning glyph,
// a sweep of theme colored blocks and the label.
func (m Model) renderLoadingAnimation() string {
	glyphs := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}
	shades := []string{"█", "▓", "▒", "░", " "}
	const sweep = 12

	frame := m.animationFrame
	spin := lipgloss.NewStyle().
		Foreground(thinkingColors[frame%len(thinkingColors)]).
		Bold(true).
		Render(glyphs[frame%len(glyphs)])

	var bar strings.Builder
	head := frame % sweep
	for i := 0; i < sweep; i++ {
		dist := (head - i + sweep) % sweep
		shade := shades[min(dist, len(shades)-1)]
		bar.WriteString(lipgloss.NewStyle().
			Foreground(thinkingColors[(i+frame)%len(thinkingColors)]).
			Render(shade))
	}

	label := lipgloss.NewStyle().Foreground(palette.Text).Render(" Thinking… ")
	return spin + " " + bar.String() + label
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Alt+Enter", "Newline"},
		{"/copy", "Code"},
		{"Esc", "Quit"},
		{"↑↓", "Scroll"},
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}
	bar := strings.Join(items, "  │  ")

	if m.status != "" {
		style := statusWarnStyle
		if m.statusOK {
			style = statusOkStyle
		}
		bar = style.Render(m.status) + "  │  " + bar
	}
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// sendMessage creates a command that calls the generator.
// The call is never cancelled once started.
func (m Model) sendMessage(prompt string) tea.Cmd {
	client := m.client
	logger := m.opts.Logger
	return func() tea.Msg {
		if client == nil {
			return errMsg{err: fmt.Errorf("no generator configured")}
		}
		start := time.Now()
		text, err := client.GenerateContent(context.Background(), prompt)
		if err != nil {
			return errMsg{err: err}
		}
		logger.Debug("generate_response_received",
			"chars", len(text),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return responseMsg{text: text}
	}
}

func (m Model) markdownWidth() int {
	w := m.viewport.Width - 10
	if w < minMarkdownWidth {
		w = minMarkdownWidth
	}
	return w
}

func (m Model) bubbleWidth() int {
	w := m.viewport.Width - 6
	if w < minMarkdownWidth+4 {
		w = minMarkdownWidth + 4
	}
	return w
}

// renderMessage renders one committed message as a labeled bubble
func (m Model) renderMessage(msg models.Message) string {
	if msg.IsUser() {
		label := userLabelStyle.Render("⬤ You")
		bubble := userBubbleStyle.Width(m.bubbleWidth()).Render(msg.Content)
		return label + "\n" + bubble
	}

	label := assistantLabelStyle.Render("✦ Gemini")
	bubble := assistantBubbleStyle.Width(m.bubbleWidth()).Render(m.renderMarkdown(msg.Content))
	return label + "\n" + bubble
}

func (m Model) renderMarkdown(content string) string {
	rendered, err := render.Markdown(content, m.opts.Markdown.WithWidth(m.markdownWidth()))
	if err != nil {
		m.opts.Logger.Debug("markdown_render_failed", "error", err)
		rendered = content
	}
	// Trim trailing newlines from glamour
	return strings.Trim(rendered, "\n")
}

// updateViewport refreshes the viewport content with styled messages.
// Committed history is re-rendered only when it or the width changes.
func (m *Model) updateViewport() {
	msgs := m.conv.Messages()
	width := m.viewport.Width

	if m.cache == nil {
		m.cache = &historyCache{count: -1}
	}
	if m.cache.count != len(msgs) || m.cache.width != width {
		var content strings.Builder
		for i, msg := range msgs {
			if i > 0 {
				content.WriteString("\n")
			}
			content.WriteString(m.renderMessage(msg))
			content.WriteString("\n")
		}
		m.cache.count = len(msgs)
		m.cache.width = width
		m.cache.content = content.String()
	}

	content := m.cache.content
	if m.conv.Revealing() {
		label := assistantLabelStyle.Render("✦ Gemini")
		body := m.renderMarkdown(m.conv.Buffer()) + loadingStyle.Render("▌")
		bubble := revealBubbleStyle.Width(m.bubbleWidth()).Render(body)
		if content != "" {
			content += "\n"
		}
		content += label + "\n" + bubble + "\n"
	}

	m.viewport.SetContent(content)
}

// Messages returns the committed conversation history
func (m Model) Messages() []models.Message {
	return m.conv.Messages()
}

// Conversation exposes the underlying state machine
func (m Model) Conversation() *conversation.Conversation {
	return m.conv
}

// RunChat starts the chat TUI
func RunChat(client api.Generator, opts Options) error {
	m := NewChatModel(client, opts)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
