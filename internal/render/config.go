package render

import (
	"fmt"
	"os"
	"strings"

	"github.com/diogo/geminichat/internal/config"
)

// EnvStyle overrides the markdown style of any config
const EnvStyle = "GLAMOUR_STYLE"

// ConfiguredStyle returns the markdown style asked for by GLAMOUR_STYLE or
// cfg, before any validation.
func ConfiguredStyle(cfg config.Config) string {
	if env := os.Getenv(EnvStyle); env != "" {
		return env
	}
	if cfg.Markdown.Style != "" {
		return cfg.Markdown.Style
	}
	return DefaultOptions().Style
}

// CheckStyle reports an error unless style is built in or names an existing
// glamour JSON style file.
func CheckStyle(style string) error {
	if IsBuiltinStyle(style) {
		return nil
	}
	if info, err := os.Stat(style); err == nil && !info.IsDir() {
		return nil
	}
	return fmt.Errorf("unknown markdown style %q (built in: %s, or a JSON style file)",
		style, strings.Join(ThemeNames(), ", "))
}

// OptionsFromConfig maps the markdown section of cfg onto render options.
// An unusable style falls back to the default and an unknown code theme is
// ignored so the style's own colors apply.
func OptionsFromConfig(cfg config.Config) Options {
	md := cfg.Markdown
	style := ConfiguredStyle(cfg)
	if CheckStyle(style) != nil {
		style = DefaultOptions().Style
	}
	opts := DefaultOptions().
		WithStyle(style).
		WithEmoji(md.EnableEmoji).
		WithPreserveNewLines(md.PreserveNewLines).
		WithTableWrap(md.TableWrap).
		WithInlineTableLinks(md.InlineTableLinks)
	if ValidCodeTheme(md.CodeTheme) {
		opts = opts.WithCodeTheme(md.CodeTheme)
	}
	return opts
}
