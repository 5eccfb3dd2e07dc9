package commands

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/diogo/geminichat/internal/api"
	"github.com/diogo/geminichat/internal/config"
	"github.com/diogo/geminichat/internal/tui"
)

// fakeTUI records chat launches instead of taking over the terminal
type fakeTUI struct {
	called bool
	client api.Generator
	opts   tui.Options
	err    error
}

func (f *fakeTUI) RunChat(client api.Generator, opts tui.Options) error {
	f.called = true
	f.client = client
	f.opts = opts
	return f.err
}

// testEnv bundles the fakes behind one Dependencies value
type testEnv struct {
	deps      *Dependencies
	client    *api.MockClient
	tui       *fakeTUI
	stdout    *bytes.Buffer
	stderr    *bytes.Buffer
	cfg       config.Config
	gotConfig config.Config
	gotKey    string
	copied    string
	saved     *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		client: &api.MockClient{Model: "gemini-2.5-flash", GenerateContentVal: "**hello** from gemini"},
		tui:    &fakeTUI{},
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		cfg:    config.DefaultConfig(),
	}
	env.deps = &Dependencies{
		TUI: env.tui,
		LoadConfig: func() (config.Config, error) {
			return env.cfg, nil
		},
		SaveConfig: func(cfg config.Config) error {
			env.saved = &cfg
			return nil
		},
		InitLogging: func(config.Config) (*slog.Logger, error) {
			return slog.New(slog.DiscardHandler), nil
		},
		APIKey: func() string { return "test-key" },
		NewGenerator: func(_ context.Context, cfg config.Config, apiKey string, _ ...api.ClientOption) (api.Generator, error) {
			env.gotConfig = cfg
			env.gotKey = apiKey
			return env.client, nil
		},
		Clipboard: func(s string) error {
			env.copied = s
			return nil
		},
		Stdin:      strings.NewReader(""),
		Stdout:     env.stdout,
		Stderr:     env.stderr,
		StdinPiped: func() bool { return false },
		StdoutTTY:  func() bool { return false },
		TermWidth:  func() int { return 100 },
	}
	return env
}

// run executes a fresh command tree with args
func (env *testEnv) run(args ...string) error {
	cmd := NewRootCmd(env.deps)
	cmd.SetArgs(args)
	cmd.SetOut(env.stdout)
	cmd.SetErr(env.stderr)
	return cmd.Execute()
}
