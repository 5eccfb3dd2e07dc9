package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/diogo/geminichat/internal/config"
	"github.com/diogo/geminichat/internal/render"
)

// NewConfigCmd creates a new config command
func NewConfigCmd(deps *Dependencies) *cobra.Command {
	deps = deps.withDefaults()

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
		Long: `Inspect or create the geminichat configuration file.

The file lives at ~/.geminichat/config.json. Missing keys fall back to
defaults; the API key is never stored there.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := deps.LoadConfig()
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			fmt.Fprintln(deps.Stdout, string(data))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.GetConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(deps.Stdout, path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "themes",
		Short: "List markdown styles, TUI themes and code themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printThemes(deps.Stdout)
			return nil
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.GetConfigPath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := deps.SaveConfig(config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintln(deps.Stdout, successStyle.Render("✓ Wrote "+path))
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	cmd.AddCommand(initCmd)

	return cmd
}

// printThemes lists every value accepted by markdown.style, tui_theme and
// markdown.code_theme
func printThemes(w io.Writer) {
	var names, descs []string
	for _, t := range render.AvailableThemes() {
		names, descs = append(names, t.Name), append(descs, t.Description)
	}
	split := len(names)
	for _, t := range render.AvailableTUIThemes() {
		names, descs = append(names, t.Name), append(descs, t.Description)
	}

	width := 0
	for _, n := range names {
		width = max(width, lipgloss.Width(n))
	}
	nameStyle := lipgloss.NewStyle().Width(width + 2)
	row := func(i int) {
		fmt.Fprintf(w, "  %s%s\n", nameStyle.Render(names[i]), codeHeaderStyle.Render(descs[i]))
	}

	fmt.Fprintln(w, "Markdown styles (markdown.style):")
	for i := 0; i < split; i++ {
		row(i)
	}
	fmt.Fprintln(w, "\nTUI themes (tui_theme):")
	for i := split; i < len(names); i++ {
		row(i)
	}
	fmt.Fprintln(w, "\nCode themes (markdown.code_theme):")
	fmt.Fprintln(w, "  "+strings.Join(render.CodeThemeNames(), ", "))
}
