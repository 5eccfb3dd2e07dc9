package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/diogo/geminichat/internal/conversation"
	apierrors "github.com/diogo/geminichat/internal/errors"
	"github.com/diogo/geminichat/internal/render"
	"github.com/diogo/geminichat/internal/tui"
)

// reportedError marks a one-shot failure whose message is already on stderr
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func newAskCmd(deps *Dependencies, flags *cliFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask [prompt]",
		Short: "Send a single prompt and print the answer",
		Long: `Send a single prompt to Gemini and print the answer.

The prompt comes from the argument, from --file, or from stdin.
When stdout is not a terminal the raw answer text is printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt, ok, err := readPrompt(deps, flags, args)
			if err != nil {
				return err
			}
			if !ok {
				return report(deps, apierrors.ErrEmptyPrompt)
			}
			return runQuery(cmd.Context(), deps, flags, prompt)
		},
	}
	addQueryFlags(cmd, flags)
	return cmd
}

// report prints err with its context to stderr
func report(deps *Dependencies, err error) error {
	tui.PrintError(deps.Stderr, err)
	return &reportedError{err: err}
}

// runQuery executes a single query and outputs the response.
// Without a terminal on stdout only the raw response text is printed.
func runQuery(ctx context.Context, deps *Dependencies, flags *cliFlags, prompt string) error {
	if strings.TrimSpace(prompt) == "" {
		return report(deps, apierrors.ErrEmptyPrompt)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := setup(ctx, deps, flags)
	if err != nil {
		return report(deps, err)
	}
	defer s.client.Close()

	rawOutput := flags.raw || !deps.StdoutTTY()

	// Verbose: show model being used
	if s.cfg.Verbose && !rawOutput {
		fmt.Fprintf(deps.Stderr, "[verbose] Model: %s (%s backend)\n", s.client.ModelName(), s.cfg.Backend)
	}

	var spin *spinner
	if !rawOutput {
		spin = newSpinner(deps.Stderr, "Generating response")
		spin.start()
	}

	// Track request timing for verbose output
	startTime := time.Now()
	text, err := s.client.GenerateContent(ctx, prompt)
	requestDuration := time.Since(startTime)

	if err != nil {
		if spin != nil {
			spin.stopWithError()
		}
		s.logger.Error("generate_response_failed",
			"error", err,
			"model", s.client.ModelName(),
			"duration_ms", requestDuration.Milliseconds(),
		)
		return report(deps, fmt.Errorf("generation failed: %w", err))
	}
	if spin != nil {
		spin.stopWithSuccess("Done")
	}
	s.logger.Info("generate_response",
		"chars", len(text),
		"duration_ms", requestDuration.Milliseconds(),
	)

	if s.cfg.Verbose && !rawOutput {
		fmt.Fprintf(deps.Stderr, "[verbose] Request took %s\n", requestDuration.Round(time.Millisecond))
	}

	out := text
	var blocks []render.CodeBlock
	if flags.codeOnly {
		blocks = render.CodeBlocks(text)
		if len(blocks) == 0 {
			return report(deps, fmt.Errorf("the answer contains no code blocks"))
		}
		out = joinCode(blocks)
	}

	// Copy to clipboard if enabled in config
	if s.cfg.CopyToClipboard {
		if err := deps.Clipboard(out); err != nil {
			s.logger.Warn("clipboard_write_failed", "error", err)
			if !rawOutput {
				fmt.Fprintln(deps.Stderr, warningStyle.Render(fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err)))
			}
		} else if !rawOutput {
			fmt.Fprintln(deps.Stderr, successStyle.Render("✓ Copied to clipboard"))
		}
	}

	// Output to file if specified
	if flags.output != "" {
		if err := writeOutput(flags.output, out); err != nil {
			return report(deps, err)
		}
		if !rawOutput {
			fmt.Fprintln(deps.Stderr, successStyle.Render(fmt.Sprintf("✓ Response saved to %s", flags.output)))
		}
		return nil
	}

	switch {
	case flags.typewriter:
		return typewrite(ctx, deps, out, s.revealDelay())
	case rawOutput:
		fmt.Fprint(deps.Stdout, out)
		if !strings.HasSuffix(out, "\n") {
			fmt.Fprintln(deps.Stdout)
		}
		return nil
	case flags.codeOnly:
		printCodeBlocks(deps, blocks, codeTheme(s.cfg.Markdown.CodeTheme))
		return nil
	}

	printAnswer(deps, text, render.OptionsFromConfig(s.cfg))
	return nil
}

// typewrite prints text one character at a time
func typewrite(ctx context.Context, deps *Dependencies, text string, delay time.Duration) error {
	err := conversation.Reveal(ctx, text, delay, func(unit string) {
		fmt.Fprint(deps.Stdout, unit)
	})
	fmt.Fprintln(deps.Stdout)
	return err
}

// printAnswer renders markdown inside the assistant bubble
func printAnswer(deps *Dependencies, text string, opts render.Options) {
	// Get terminal width for proper formatting
	bubbleWidth := deps.TermWidth() - 4
	if bubbleWidth < 40 {
		bubbleWidth = 40
	}
	if bubbleWidth > 120 {
		bubbleWidth = 120
	}
	contentWidth := bubbleWidth - 4

	fmt.Fprintln(deps.Stderr)
	fmt.Fprintln(deps.Stdout, assistantLabelStyle.Render("✦ Gemini"))

	rendered := render.MarkdownOrPlain(text, opts.WithWidth(contentWidth))
	fmt.Fprintln(deps.Stdout, assistantBubbleStyle.Width(bubbleWidth).Render(rendered))
}

// printCodeBlocks prints each block highlighted under a language header
func printCodeBlocks(deps *Dependencies, blocks []render.CodeBlock, theme string) {
	for i, b := range blocks {
		lang := b.Language
		if lang == "" {
			lang = render.DetectLanguage(b.Code)
		}
		header := fmt.Sprintf("# %d", i+1)
		if lang != "" {
			header += " · " + lang
		}
		fmt.Fprintln(deps.Stdout, codeHeaderStyle.Render(header))
		fmt.Fprintln(deps.Stdout, strings.TrimRight(render.Highlight(b.Code, lang, theme), "\n"))
		if i < len(blocks)-1 {
			fmt.Fprintln(deps.Stdout)
		}
	}
}

func codeTheme(configured string) string {
	if configured != "" && render.ValidCodeTheme(configured) {
		return configured
	}
	if t := render.GetTUITheme().CodeTheme; render.ValidCodeTheme(t) {
		return t
	}
	return render.DefaultCodeTheme
}

// joinCode concatenates code blocks separated by a blank line
func joinCode(blocks []render.CodeBlock) string {
	parts := make([]string, len(blocks))
	for i, b := range blocks {
		parts[i] = b.Code
	}
	return strings.Join(parts, "\n\n") + "\n"
}

func writeOutput(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
