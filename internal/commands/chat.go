package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/diogo/geminichat/internal/render"
	"github.com/diogo/geminichat/internal/tui"
)

func newChatCmd(deps *Dependencies, flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive chat session with Gemini.

Each answer is revealed character by character. Enter sends, Alt+Enter
inserts a newline. Inside the chat:
  /copy [n]      copy the nth code block of the last answer (default: last)
  /save <file>   save the conversation (.json or markdown)
  /clear         start over

Type /quit or press Ctrl+C to end the session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd.Context(), deps, flags)
		},
	}
}

func runChat(ctx context.Context, deps *Dependencies, flags *cliFlags) error {
	s, err := setup(ctx, deps, flags)
	if err != nil {
		return err
	}
	defer s.client.Close()

	opts := tui.Options{
		ModelName:   s.client.ModelName(),
		Welcome:     s.cfg.Welcome(),
		RevealDelay: s.revealDelay(),
		Markdown:    render.OptionsFromConfig(s.cfg),
		Logger:      s.logger,
		Clipboard:   deps.Clipboard,
	}

	// the chat theme picks matching code colors unless the config sets one
	if opts.Markdown.CodeTheme == "" {
		opts.Markdown.CodeTheme = codeTheme("")
	}

	s.logger.Debug("chat_started", "reveal_delay", opts.RevealDelay)
	if err := deps.TUI.RunChat(s.client, opts); err != nil {
		s.logger.Error("chat_failed", "error", err)
		return err
	}
	s.logger.Debug("chat_finished")
	return nil
}
