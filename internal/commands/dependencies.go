package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/atotto/clipboard"
	"golang.org/x/term"

	"github.com/diogo/geminichat/internal/api"
	"github.com/diogo/geminichat/internal/config"
	"github.com/diogo/geminichat/internal/logging"
	"github.com/diogo/geminichat/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(client api.Generator, opts tui.Options) error
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(client api.Generator, opts tui.Options) error {
	return tui.RunChat(client, opts)
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// TUI is the terminal user interface.
	TUI TUIInterface

	LoadConfig func() (config.Config, error)
	SaveConfig func(config.Config) error
	// InitLogging installs the process logger for the loaded config
	InitLogging func(config.Config) (*slog.Logger, error)
	APIKey      func() string
	// NewGenerator builds the adapter for the selected backend
	NewGenerator func(ctx context.Context, cfg config.Config, apiKey string, opts ...api.ClientOption) (api.Generator, error)
	Clipboard    func(string) error

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// StdinPiped reports whether stdin carries input instead of a terminal
	StdinPiped func() bool
	// StdoutTTY reports whether stdout is a terminal
	StdoutTTY func() bool
	// TermWidth returns the terminal width, or 0 when unknown
	TermWidth func() int
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		TUI:          &DefaultTUI{},
		LoadConfig:   config.LoadConfig,
		SaveConfig:   config.SaveConfig,
		InitLogging:  logging.Init,
		APIKey:       config.APIKeyFromEnv,
		NewGenerator: api.New,
		Clipboard:    clipboard.WriteAll,
		Stdin:        os.Stdin,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		StdinPiped:   isStdinPiped,
		StdoutTTY:    isStdoutTTY,
		TermWidth:    getTerminalWidth,
	}
}

// withDefaults fills unset fields so partially built deps work in tests
func (d *Dependencies) withDefaults() *Dependencies {
	if d == nil {
		return NewDependencies()
	}
	def := NewDependencies()
	out := *d
	if out.TUI == nil {
		out.TUI = def.TUI
	}
	if out.LoadConfig == nil {
		out.LoadConfig = def.LoadConfig
	}
	if out.SaveConfig == nil {
		out.SaveConfig = def.SaveConfig
	}
	if out.InitLogging == nil {
		out.InitLogging = def.InitLogging
	}
	if out.APIKey == nil {
		out.APIKey = def.APIKey
	}
	if out.NewGenerator == nil {
		out.NewGenerator = def.NewGenerator
	}
	if out.Clipboard == nil {
		out.Clipboard = def.Clipboard
	}
	if out.Stdin == nil {
		out.Stdin = def.Stdin
	}
	if out.Stdout == nil {
		out.Stdout = def.Stdout
	}
	if out.Stderr == nil {
		out.Stderr = def.Stderr
	}
	if out.StdinPiped == nil {
		out.StdinPiped = def.StdinPiped
	}
	if out.StdoutTTY == nil {
		out.StdoutTTY = def.StdoutTTY
	}
	if out.TermWidth == nil {
		out.TermWidth = def.TermWidth
	}
	return &out
}

// isStdinPiped returns true if stdin is a pipe or file rather than a terminal
func isStdinPiped() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // default width
	}
	return width
}

// isStdoutTTY returns true if stdout is connected to a terminal
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
