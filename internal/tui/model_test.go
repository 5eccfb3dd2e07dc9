package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/diogo/geminichat/internal/api"
	"github.com/diogo/geminichat/internal/conversation"
	apierrors "github.com/diogo/geminichat/internal/errors"
)

const codeAnswer = "Two snippets:\n\n```go\nfmt.Println(1)\n```\n\n```python\nprint(2)\n```\n"

// newTestModel returns a sized model with a silent logger and a fake clipboard
func newTestModel(t *testing.T, client api.Generator) (Model, *string) {
	t.Helper()
	copied := new(string)
	m := NewChatModel(client, Options{
		ModelName:   "test-model",
		Welcome:     "hello there",
		RevealDelay: 0,
		Logger:      slog.New(slog.DiscardHandler),
		Clipboard: func(s string) error {
			*copied = s
			return nil
		},
	})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model), copied
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	typed, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", updated)
	}
	return typed, cmd
}

func enter() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func typeAndEnter(t *testing.T, m Model, text string) (Model, tea.Cmd) {
	t.Helper()
	m.textarea.SetValue(text)
	return update(t, m, enter())
}

// revealAll feeds reveal ticks until the conversation is idle again
func revealAll(t *testing.T, m Model) (Model, int) {
	t.Helper()
	ticks := 0
	for m.conv.Revealing() {
		m, _ = update(t, m, revealTickMsg(time.Now()))
		ticks++
		if ticks > 10000 {
			t.Fatal("reveal never finished")
		}
	}
	return m, ticks
}

// answer runs one full submit and reveal cycle without executing commands
func answer(t *testing.T, m Model, prompt, reply string) Model {
	t.Helper()
	m, _ = typeAndEnter(t, m, prompt)
	if !m.conv.Awaiting() {
		t.Fatalf("state after submit = %s, want submitting", m.conv.State())
	}
	m, _ = update(t, m, responseMsg{text: reply})
	m, _ = revealAll(t, m)
	return m
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestNewChatModel(t *testing.T) {
	client := &api.MockClient{Model: "gemini-2.5-flash"}
	m := NewChatModel(client, Options{Welcome: "hi"})

	if m.opts.ModelName != "gemini-2.5-flash" {
		t.Errorf("ModelName = %q, want the client's model", m.opts.ModelName)
	}
	if m.opts.Logger == nil || m.opts.Clipboard == nil {
		t.Fatal("logger and clipboard should default")
	}
	if m.opts.Logger.Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger should not write over the chat screen")
	}
	if m.conv.Len() != 1 {
		t.Errorf("history length = %d, want the welcome message only", m.conv.Len())
	}
	if !m.conv.Idle() {
		t.Error("new model should be idle")
	}
	if m.ready {
		t.Error("model should not be ready before the first size message")
	}
}

func TestNewChatModel_NegativeDelay(t *testing.T) {
	m := NewChatModel(&api.MockClient{}, Options{RevealDelay: -time.Second})
	if m.opts.RevealDelay != 0 {
		t.Errorf("RevealDelay = %v, want 0", m.opts.RevealDelay)
	}
}

func TestModel_Init(t *testing.T) {
	m := NewChatModel(&api.MockClient{}, DefaultOptions())
	if m.Init() == nil {
		t.Error("Init should return a command")
	}
}

func TestModel_Update_WindowSize(t *testing.T) {
	m, _ := newTestModel(t, &api.MockClient{})

	if !m.ready {
		t.Fatal("model should be ready after a size message")
	}
	if m.width != 100 || m.height != 40 {
		t.Errorf("size = %dx%d, want 100x40", m.width, m.height)
	}
	if m.viewport.Width != 96 {
		t.Errorf("viewport width = %d, want 96", m.viewport.Width)
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 8})
	if m.viewport.Height != 5 {
		t.Errorf("viewport height = %d, want the minimum of 5", m.viewport.Height)
	}
}

func TestModel_Submit(t *testing.T) {
	client := &api.MockClient{GenerateContentVal: "pong"}
	m, _ := newTestModel(t, client)

	m, cmd := typeAndEnter(t, m, "ping")

	if cmd == nil {
		t.Fatal("submit should return a command")
	}
	if !m.conv.Awaiting() {
		t.Errorf("state = %s, want submitting", m.conv.State())
	}
	if m.textarea.Value() != "" {
		t.Errorf("input = %q, want it cleared", m.textarea.Value())
	}
	msgs := m.conv.Messages()
	if last := msgs[len(msgs)-1]; !last.IsUser() || last.Content != "ping" {
		t.Errorf("last message = %+v, want the user prompt", last)
	}
	// the generator only runs when the command executes
	if client.Calls() != 0 {
		t.Errorf("generator called %d times before the command ran", client.Calls())
	}
}

func TestModel_SubmitBlank(t *testing.T) {
	m, _ := newTestModel(t, &api.MockClient{})
	before := m.conv.Len()

	m, cmd := typeAndEnter(t, m, "   \n  ")

	if !m.conv.Idle() {
		t.Errorf("state = %s, want idle", m.conv.State())
	}
	if m.conv.Len() != before {
		t.Error("blank input should not be recorded")
	}
	if cmd != nil && isQuit(cmd) {
		t.Error("blank input should not quit")
	}
}

func TestModel_SubmitWhileBusy(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, m Model) Model
	}{
		{
			name: "awaiting",
			setup: func(t *testing.T, m Model) Model {
				m, _ = typeAndEnter(t, m, "first")
				return m
			},
		},
		{
			name: "revealing",
			setup: func(t *testing.T, m Model) Model {
				m, _ = typeAndEnter(t, m, "first")
				m, _ = update(t, m, responseMsg{text: "a long enough answer"})
				return m
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(t, &api.MockClient{})
			m = tt.setup(t, m)
			state := m.conv.State()
			count := m.conv.Len()

			m, _ = typeAndEnter(t, m, "second")

			if m.conv.State() != state {
				t.Errorf("state = %s, want %s", m.conv.State(), state)
			}
			if m.conv.Len() != count {
				t.Errorf("history length = %d, want %d", m.conv.Len(), count)
			}
			if m.textarea.Value() != "second" {
				t.Errorf("input = %q, want the text kept", m.textarea.Value())
			}
		})
	}
}

func TestModel_TypingWhileAwaiting(t *testing.T) {
	m, _ := newTestModel(t, &api.MockClient{})
	m, _ = typeAndEnter(t, m, "first")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})

	if m.textarea.Value() != "x" {
		t.Errorf("input = %q, want typing to reach the textarea", m.textarea.Value())
	}
}

func TestModel_RevealCycle(t *testing.T) {
	m, _ := newTestModel(t, &api.MockClient{})
	m, _ = typeAndEnter(t, m, "greet me")

	reply := "héllo 👋"
	m, cmd := update(t, m, responseMsg{text: reply})
	if !m.conv.Revealing() {
		t.Fatalf("state = %s, want revealing", m.conv.State())
	}
	if cmd == nil {
		t.Fatal("response should schedule a reveal tick")
	}

	m, _ = update(t, m, revealTickMsg(time.Now()))
	if got := m.conv.Buffer(); got != "h" {
		t.Errorf("buffer after one tick = %q, want %q", got, "h")
	}

	m, ticks := revealAll(t, m)
	if want := len(conversation.Units(reply)) - 1; ticks != want {
		t.Errorf("remaining ticks = %d, want %d", ticks, want)
	}

	last, ok := m.conv.LastAssistant()
	if !ok || last.Content != reply {
		t.Errorf("last assistant = %q, want %q", last.Content, reply)
	}
	if m.conv.Buffer() != "" {
		t.Error("buffer should be empty after the reveal")
	}
}

func TestModel_RevealTickWhenIdle(t *testing.T) {
	m, _ := newTestModel(t, &api.MockClient{})
	before := m.conv.Len()

	m, cmd := update(t, m, revealTickMsg(time.Now()))

	if m.conv.Len() != before {
		t.Error("a stray tick should not change the history")
	}
	if cmd != nil {
		if _, ok := cmd().(revealTickMsg); ok {
			t.Error("a stray tick should not schedule another")
		}
	}
}

func TestModel_EmptyAnswer(t *testing.T) {
	m, _ := newTestModel(t, &api.MockClient{})
	m, _ = typeAndEnter(t, m, "say nothing")
	m, _ = update(t, m, responseMsg{text: ""})
	m, _ = revealAll(t, m)

	last, ok := m.conv.LastAssistant()
	if !ok || last.Content != "" {
		t.Errorf("last assistant = %+v, want an empty assistant message", last)
	}
	if !m.conv.Idle() {
		t.Errorf("state = %s, want idle", m.conv.State())
	}
}

func TestModel_ErrMsg(t *testing.T) {
	var logs bytes.Buffer
	m, _ := newTestModel(t, &api.MockClient{})
	m.opts.Logger = slog.New(slog.NewTextHandler(&logs, nil))

	m, _ = typeAndEnter(t, m, "fail please")
	count := m.conv.Len()

	m, _ = update(t, m, errMsg{err: apierrors.NewAPIError(500, "https://x", "boom", "INTERNAL")})

	if !m.conv.Idle() {
		t.Errorf("state = %s, want idle", m.conv.State())
	}
	if m.conv.Len() != count {
		t.Errorf("history length = %d, want %d", m.conv.Len(), count)
	}
	if !strings.Contains(logs.String(), "generate_response_failed") {
		t.Errorf("log = %q, want the failure event", logs.String())
	}
	if strings.Contains(m.View(), "boom") {
		t.Error("the failure should not be shown in the view")
	}

	// the next submission works again
	m, _ = typeAndEnter(t, m, "retry")
	if !m.conv.Awaiting() {
		t.Errorf("state after retry = %s, want submitting", m.conv.State())
	}
}

func TestModel_StrayMessages(t *testing.T) {
	m, _ := newTestModel(t, &api.MockClient{})
	before := m.conv.Len()

	m, _ = update(t, m, responseMsg{text: "late"})
	m, _ = update(t, m, errMsg{err: errors.New("late")})

	if !m.conv.Idle() || m.conv.Len() != before {
		t.Error("results arriving while idle should be ignored")
	}
}

func TestModel_Quit(t *testing.T) {
	tests := []struct {
		name string
		busy bool
		msg  tea.KeyMsg
		want bool
	}{
		{"ctrl+c idle", false, tea.KeyMsg{Type: tea.KeyCtrlC}, true},
		{"ctrl+c busy", true, tea.KeyMsg{Type: tea.KeyCtrlC}, true},
		{"esc idle", false, tea.KeyMsg{Type: tea.KeyEscape}, true},
		{"esc busy", true, tea.KeyMsg{Type: tea.KeyEscape}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(t, &api.MockClient{})
			if tt.busy {
				m, _ = typeAndEnter(t, m, "pending")
			}
			m, cmd := update(t, m, tt.msg)
			if got := isQuit(cmd); got != tt.want {
				t.Errorf("quit = %v, want %v", got, tt.want)
			}
			if tt.busy && !m.conv.Awaiting() {
				t.Error("a pending call should stay pending")
			}
		})
	}
}

func TestModel_ExitCommands(t *testing.T) {
	for _, input := range []string{"/exit", "/quit", "  /quit  "} {
		t.Run(input, func(t *testing.T) {
			m, _ := newTestModel(t, &api.MockClient{})
			before := m.conv.Len()
			m, cmd := typeAndEnter(t, m, input)
			if !isQuit(cmd) {
				t.Errorf("%q should quit", input)
			}
			if m.conv.Len() != before {
				t.Error("exit commands should not be sent")
			}
		})
	}
}

// Bare words are ordinary prompts, only the slash forms quit.
func TestModel_ExitWordsAreSent(t *testing.T) {
	for _, input := range []string{"exit", "quit", "Quit"} {
		t.Run(input, func(t *testing.T) {
			m, _ := newTestModel(t, &api.MockClient{})
			before := m.conv.Len()
			m, cmd := typeAndEnter(t, m, input)
			if cmd == nil {
				t.Fatal("expected a request to be started")
			}
			if isQuit(cmd) {
				t.Errorf("%q should not quit", input)
			}
			if m.conv.Len() != before+1 {
				t.Fatalf("Len = %d, want %d", m.conv.Len(), before+1)
			}
			if last := m.conv.Messages()[m.conv.Len()-1]; last.Content != input {
				t.Errorf("last message = %q, want %q", last.Content, input)
			}
			if !m.conv.Awaiting() {
				t.Error("expected to await the answer")
			}
		})
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input    string
		wantName string
		wantArg  string
		wantOK   bool
	}{
		{"/copy", "/copy", "", true},
		{"/copy 2", "/copy", "2", true},
		{"/save  out.md ", "/save", "out.md", true},
		{"/clear", "/clear", "", true},
		{"/help", "/help", "", true},
		{"/unknown thing", "", "", false},
		{"copy", "", "", false},
		{"", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			name, arg, ok := parseCommand(strings.TrimSpace(tt.input))
			if name != tt.wantName || arg != tt.wantArg || ok != tt.wantOK {
				t.Errorf("parseCommand(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.input, name, arg, ok, tt.wantName, tt.wantArg, tt.wantOK)
			}
		})
	}
}

func TestModel_UnknownSlashIsPrompt(t *testing.T) {
	m, _ := newTestModel(t, &api.MockClient{})
	m, _ = typeAndEnter(t, m, "/imagine a cat")
	if !m.conv.Awaiting() {
		t.Errorf("state = %s, want the text sent as a prompt", m.conv.State())
	}
}

func TestModel_CopyCommand(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantCopied string
		wantStatus string
	}{
		{"last block by default", "/copy", "print(2)", "✓ Copied"},
		{"first block", "/copy 1", "fmt.Println(1)", "✓ Copied"},
		{"out of range", "/copy 3", "", "Pick a block from 1 to 2"},
		{"not a number", "/copy x", "", "Pick a block from 1 to 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, copied := newTestModel(t, &api.MockClient{})
			m = answer(t, m, "code please", codeAnswer)

			m, cmd := typeAndEnter(t, m, tt.input)

			if *copied != tt.wantCopied {
				t.Errorf("copied = %q, want %q", *copied, tt.wantCopied)
			}
			if m.status != tt.wantStatus {
				t.Errorf("status = %q, want %q", m.status, tt.wantStatus)
			}
			if cmd == nil {
				t.Error("status should schedule its own removal")
			}
			if m.conv.Len() != 3 {
				t.Errorf("history length = %d, commands should not be recorded", m.conv.Len())
			}
		})
	}
}

func TestModel_CopyWithoutCode(t *testing.T) {
	m, copied := newTestModel(t, &api.MockClient{})
	m = answer(t, m, "hi", "no code here")

	m, _ = typeAndEnter(t, m, "/copy")

	if *copied != "" {
		t.Errorf("copied = %q, want nothing", *copied)
	}
	if m.status != "No code blocks in the last answer" {
		t.Errorf("status = %q", m.status)
	}
}

func TestModel_CopySkipsUntaggedBlocks(t *testing.T) {
	m, copied := newTestModel(t, &api.MockClient{})
	m = answer(t, m, "run it", "```go\nmain()\n```\n\nOutput:\n\n```\nok\n```\n")

	m, _ = typeAndEnter(t, m, "/copy")
	if *copied != "main()" {
		t.Errorf("copied = %q, want the tagged block", *copied)
	}

	m, _ = typeAndEnter(t, m, "/copy 2")
	if m.status != "Pick a block from 1 to 1" {
		t.Errorf("status = %q", m.status)
	}

	m = answer(t, m, "output only", "```\nplain\n```")
	m, _ = typeAndEnter(t, m, "/copy")
	if m.status != "No code blocks in the last answer" {
		t.Errorf("status = %q", m.status)
	}
}

func TestModel_CopyClipboardError(t *testing.T) {
	m, _ := newTestModel(t, &api.MockClient{})
	m.opts.Clipboard = func(string) error { return errors.New("no display") }
	m = answer(t, m, "code please", codeAnswer)

	m, _ = typeAndEnter(t, m, "/copy")

	if m.status != "Copy failed" {
		t.Errorf("status = %q, want %q", m.status, "Copy failed")
	}
}

func TestModel_StatusClears(t *testing.T) {
	m, _ := newTestModel(t, &api.MockClient{})
	m = answer(t, m, "code please", codeAnswer)
	m, _ = typeAndEnter(t, m, "/copy")
	seq := m.statusSeq

	m, _ = update(t, m, clearStatusMsg{seq: seq - 1})
	if m.status == "" {
		t.Error("an older clear should not hide a newer status")
	}

	m, _ = update(t, m, clearStatusMsg{seq: seq})
	if m.status != "" {
		t.Errorf("status = %q, want it cleared", m.status)
	}
}

func TestModel_SaveCommand(t *testing.T) {
	tests := []struct {
		name string
		file string
		want string
	}{
		{"markdown", "chat.md", "## Assistant"},
		{"json", "chat.json", `"role": "assistant"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(t, &api.MockClient{})
			m = answer(t, m, "hi", "hello back")
			path := filepath.Join(t.TempDir(), "out", tt.file)

			m, _ = typeAndEnter(t, m, "/save "+path)

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("transcript not written: %v", err)
			}
			if !strings.Contains(string(data), tt.want) {
				t.Errorf("transcript missing %q:\n%s", tt.want, data)
			}
			if !strings.Contains(string(data), "hello back") {
				t.Error("transcript missing the answer")
			}
			if !strings.HasPrefix(m.status, "✓ Saved") {
				t.Errorf("status = %q", m.status)
			}
		})
	}
}

func TestModel_SaveWithoutPath(t *testing.T) {
	m, _ := newTestModel(t, &api.MockClient{})
	m, _ = typeAndEnter(t, m, "/save")
	if m.status != "Usage: /save <file>" {
		t.Errorf("status = %q", m.status)
	}
}

func TestModel_ClearCommand(t *testing.T) {
	t.Run("idle", func(t *testing.T) {
		m, _ := newTestModel(t, &api.MockClient{})
		m = answer(t, m, "hi", "hello")

		m, _ = typeAndEnter(t, m, "/clear")

		msgs := m.conv.Messages()
		if len(msgs) != 1 || msgs[0].Content != "hello there" {
			t.Errorf("history = %+v, want only the welcome", msgs)
		}
	})

	t.Run("busy", func(t *testing.T) {
		m, _ := newTestModel(t, &api.MockClient{})
		m, _ = typeAndEnter(t, m, "pending")
		m, _ = update(t, m, responseMsg{text: "answer"})

		m, _ = typeAndEnter(t, m, "/clear")

		if !m.conv.Revealing() {
			t.Errorf("state = %s, want the reveal to continue", m.conv.State())
		}
		if m.conv.Len() != 2 {
			t.Errorf("history length = %d, want 2", m.conv.Len())
		}
	})
}

func TestModel_sendMessage(t *testing.T) {
	t.Run("success response", func(t *testing.T) {
		client := &api.MockClient{GenerateContentVal: "success response"}
		m, _ := newTestModel(t, client)

		msg := m.sendMessage("test prompt")()

		response, ok := msg.(responseMsg)
		if !ok {
			t.Fatalf("Expected responseMsg type, got %T", msg)
		}
		if response.text != "success response" {
			t.Errorf("text = %q", response.text)
		}
		if client.LastPrompt != "test prompt" {
			t.Errorf("prompt = %q, want it passed through", client.LastPrompt)
		}
	})

	t.Run("error response", func(t *testing.T) {
		client := &api.MockClient{GenerateContentErr: fmt.Errorf("%w: test", apierrors.ErrGenerationFailed)}
		m, _ := newTestModel(t, client)

		msg := m.sendMessage("test prompt")()

		e, ok := msg.(errMsg)
		if !ok {
			t.Fatalf("Expected errMsg type, got %T", msg)
		}
		if !errors.Is(e.err, apierrors.ErrGenerationFailed) {
			t.Errorf("err = %v, want ErrGenerationFailed", e.err)
		}
	})

	t.Run("call is not cancelled", func(t *testing.T) {
		var ctxErr error
		client := &api.MockClient{GenerateFunc: func(ctx context.Context, _ string) (string, error) {
			ctxErr = ctx.Err()
			return "ok", nil
		}}
		m, _ := newTestModel(t, client)

		_ = m.sendMessage("p")()

		if ctxErr != nil {
			t.Errorf("context error = %v, want none", ctxErr)
		}
	})

	t.Run("no client", func(t *testing.T) {
		m, _ := newTestModel(t, nil)
		if _, ok := m.sendMessage("p")().(errMsg); !ok {
			t.Error("a missing generator should produce errMsg")
		}
	})
}

func TestScrollKeyMap(t *testing.T) {
	km := scrollKeyMap()
	letters := []string{"j", "k", "f", "b", "u", "d", " "}
	bindings := []key.Binding{km.Down, km.Up, km.PageDown, km.PageUp, km.HalfPageDown, km.HalfPageUp}

	for _, l := range letters {
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(l)}
		for _, b := range bindings {
			if key.Matches(msg, b) {
				t.Errorf("%q should not scroll the viewport", l)
			}
		}
	}

	if !key.Matches(tea.KeyMsg{Type: tea.KeyPgDown}, km.PageDown) {
		t.Error("pgdown should page down")
	}
}

func TestUpdateViewport_Cache(t *testing.T) {
	m, _ := newTestModel(t, &api.MockClient{})
	m.updateViewport()
	first := m.cache.content
	if first == "" || m.cache.count != 1 {
		t.Fatalf("cache = %+v, want the welcome rendered", m.cache)
	}

	m = answer(t, m, "hi", "hello back")

	if m.cache.count != 3 {
		t.Errorf("cache count = %d, want 3", m.cache.count)
	}
	if !strings.Contains(m.cache.content, "hi") {
		t.Error("cache should include the new user message")
	}
}

func TestModel_View(t *testing.T) {
	t.Run("not ready", func(t *testing.T) {
		m := NewChatModel(&api.MockClient{}, DefaultOptions())
		if !strings.Contains(m.View(), "Initializing") {
			t.Error("View should show the initializing message")
		}
	})

	t.Run("header and shortcuts", func(t *testing.T) {
		m, _ := newTestModel(t, &api.MockClient{})
		view := m.View()
		for _, want := range []string{"Gemini Chat", "test-model", "Send"} {
			if !strings.Contains(view, want) {
				t.Errorf("View missing %q", want)
			}
		}
	})

	t.Run("empty history shows welcome screen", func(t *testing.T) {
		m := NewChatModel(&api.MockClient{}, Options{Logger: slog.New(slog.DiscardHandler)})
		m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
		if !strings.Contains(m.View(), "Welcome to Gemini Chat") {
			t.Error("View should show the welcome screen")
		}
	})

	t.Run("thinking while awaiting", func(t *testing.T) {
		m, _ := newTestModel(t, &api.MockClient{})
		m, _ = typeAndEnter(t, m, "ping")
		if !strings.Contains(m.View(), "Thinking") {
			t.Error("View should show the thinking indicator")
		}
	})

	t.Run("progress while revealing", func(t *testing.T) {
		m, _ := newTestModel(t, &api.MockClient{})
		m, _ = typeAndEnter(t, m, "ping")
		m, _ = update(t, m, responseMsg{text: "pong"})
		m, _ = update(t, m, revealTickMsg(time.Now()))
		if !strings.Contains(m.View(), "1/4") {
			t.Error("View should show the reveal progress")
		}
	})

	t.Run("status note", func(t *testing.T) {
		m, _ := newTestModel(t, &api.MockClient{})
		m = answer(t, m, "code", codeAnswer)
		m, _ = typeAndEnter(t, m, "/copy")
		if !strings.Contains(m.View(), "Copied") {
			t.Error("View should show the copied note")
		}
	})
}

func TestModel_AnimationTick(t *testing.T) {
	m, _ := newTestModel(t, &api.MockClient{})

	m, _ = update(t, m, animationTickMsg(time.Now()))
	if m.animationFrame != 0 {
		t.Error("idle model should not animate")
	}

	m, _ = typeAndEnter(t, m, "ping")
	m, cmd := update(t, m, animationTickMsg(time.Now()))
	if m.animationFrame != 1 {
		t.Errorf("animationFrame = %d, want 1", m.animationFrame)
	}
	if cmd == nil {
		t.Error("animation should keep ticking while awaiting")
	}
}

func TestRevealTick_ZeroDelay(t *testing.T) {
	if _, ok := revealTick(0)().(revealTickMsg); !ok {
		t.Error("a zero delay should tick immediately")
	}
}

func TestRunChat(t *testing.T) {
	// running the program needs a terminal
	_ = RunChat
}
