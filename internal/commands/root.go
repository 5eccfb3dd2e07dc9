// Package commands provides CLI commands for geminichat.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/diogo/geminichat/internal/api"
	"github.com/diogo/geminichat/internal/config"
	apierrors "github.com/diogo/geminichat/internal/errors"
	"github.com/diogo/geminichat/internal/logging"
	"github.com/diogo/geminichat/internal/render"
	"github.com/diogo/geminichat/internal/tui"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// cliFlags holds every flag value of one command tree
type cliFlags struct {
	model       string
	backend     string
	revealDelay int // milliseconds, -1 keeps the config value

	output     string
	file       string
	raw        bool
	typewriter bool
	codeOnly   bool
}

// NewRootCmd builds the geminichat command tree
func NewRootCmd(deps *Dependencies) *cobra.Command {
	deps = deps.withDefaults()
	flags := &cliFlags{revealDelay: -1}

	cmd := &cobra.Command{
		Use:   "geminichat [prompt]",
		Short: "Chat with Google Gemini from the terminal",
		Long: `geminichat is a terminal chat client for the Gemini API.
Answers are revealed character by character and rendered as markdown.

The API key is read from GEMINI_API_KEY (or GOOGLE_API_KEY).

Examples:
  geminichat                            Start interactive chat
  geminichat "What is Go?"              Send a single query
  geminichat -f prompt.md               Read prompt from file
  cat prompt.md | geminichat            Read prompt from stdin
  geminichat "Hello" -o response.md     Save response to file
  geminichat config show                Print the effective configuration`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Check for version flag
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(deps.Stdout, "geminichat %s (built %s)\n", Version, BuildTime)
				return nil
			}

			prompt, ok, err := readPrompt(deps, flags, args)
			if err != nil {
				return err
			}
			if ok {
				return runQuery(cmd.Context(), deps, flags, prompt)
			}

			// No input - start the chat
			return runChat(cmd.Context(), deps, flags)
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVarP(&flags.model, "model", "m", "", "Model to use (e.g., gemini-2.5-flash)")
	cmd.PersistentFlags().StringVar(&flags.backend, "backend", "", "Generation backend: rest or sdk")
	cmd.PersistentFlags().IntVar(&flags.revealDelay, "reveal-delay", -1, "Milliseconds between revealed characters")
	addQueryFlags(cmd, flags)
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")

	// Add subcommands
	cmd.AddCommand(newChatCmd(deps, flags))
	cmd.AddCommand(newAskCmd(deps, flags))
	cmd.AddCommand(NewConfigCmd(deps))

	return cmd
}

func addQueryFlags(cmd *cobra.Command, flags *cliFlags) {
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Save response to file")
	cmd.Flags().StringVarP(&flags.file, "file", "f", "", "Read prompt from file")
	cmd.Flags().BoolVar(&flags.raw, "raw", false, "Print the answer text without decoration")
	cmd.Flags().BoolVar(&flags.typewriter, "typewriter", false, "Reveal the answer character by character")
	cmd.Flags().BoolVar(&flags.codeOnly, "code-only", false, "Print only the fenced code blocks of the answer")
}

// rootCmd represents the base command
var rootCmd = NewRootCmd(NewDependencies())

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// one-shot failures are already printed with context
		var printed *reportedError
		if !errors.As(err, &printed) {
			tui.PrintError(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// readPrompt picks the one-shot prompt from -f, the argument, or piped stdin.
// ok is false when there is no input and the chat should start.
func readPrompt(deps *Dependencies, flags *cliFlags, args []string) (string, bool, error) {
	// Check for file input
	if flags.file != "" {
		data, err := os.ReadFile(flags.file)
		if err != nil {
			return "", false, fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), true, nil
	}

	// Check for positional argument
	if len(args) > 0 {
		return args[0], true, nil
	}

	// Check for stdin
	if deps.StdinPiped() {
		data, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return "", false, fmt.Errorf("failed to read stdin: %w", err)
		}
		if strings.TrimSpace(string(data)) != "" {
			return string(data), true, nil
		}
	}

	return "", false, nil
}

// session is what both chat and one-shot need before talking to Gemini
type session struct {
	cfg    config.Config
	client api.Generator
	logger *slog.Logger
}

// setup loads the config, applies flags, starts logging and builds the
// generator
func setup(ctx context.Context, deps *Dependencies, flags *cliFlags) (*session, error) {
	cfg, err := deps.LoadConfig()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "Warning: %v, using defaults\n", err)
	}
	applyFlags(&cfg, flags)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := deps.InitLogging(cfg)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "Warning: logging disabled: %v\n", err)
	}
	if logger == nil {
		logger = logging.Discard()
	}

	if cfg.TUITheme != "" && !render.SetTUITheme(cfg.TUITheme) {
		logger.Warn("unknown_tui_theme", "theme", cfg.TUITheme)
		fmt.Fprintf(deps.Stderr, "Warning: unknown tui_theme %q (available: %s)\n",
			cfg.TUITheme, strings.Join(render.TUIThemeNames(), ", "))
	}
	if err := render.CheckStyle(render.ConfiguredStyle(cfg)); err != nil {
		logger.Warn("unknown_markdown_style", "error", err)
		fmt.Fprintf(deps.Stderr, "Warning: %v, using %s\n", err, render.DefaultOptions().Style)
	}
	tui.UpdateTheme()
	applyTheme(render.GetTUITheme())

	apiKey := deps.APIKey()
	if apiKey == "" {
		return nil, apierrors.ErrMissingAPIKey
	}

	if ctx == nil {
		ctx = context.Background()
	}
	client, err := deps.NewGenerator(ctx, cfg, apiKey, api.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	logger.Info("session_started",
		"backend", cfg.Backend,
		"model", client.ModelName(),
		"version", Version,
	)
	return &session{cfg: cfg, client: client, logger: logger}, nil
}

// applyFlags lets command line flags win over the config file
func applyFlags(cfg *config.Config, flags *cliFlags) {
	if flags.model != "" {
		cfg.Model = flags.model
	}
	if flags.backend != "" {
		cfg.Backend = strings.ToLower(strings.TrimSpace(flags.backend))
	}
	if flags.revealDelay >= 0 {
		cfg.RevealDelayMS = flags.revealDelay
	}
}

// revealDelay returns the configured pause between revealed characters
func (s *session) revealDelay() time.Duration {
	return s.cfg.RevealDelay()
}
