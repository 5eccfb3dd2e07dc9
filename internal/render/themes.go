package render

import (
	"sort"

	chromastyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
)

// Built-in markdown style names
const (
	ThemeDark       = "dark"
	ThemeLight      = "light"
	ThemeTokyoNight = "tokyonight"
	ThemeCatppuccin = "catppuccin"
	ThemeDracula    = "dracula"
	ThemePink       = "pink"
	ThemeNoTTY      = "notty"
	ThemeASCII      = "ascii"
)

// builtinStyle maps a style name onto a glamour base style and the chroma
// theme its code blocks use when none is configured
type builtinStyle struct {
	base      string
	codeTheme string
}

var builtinStyles = map[string]builtinStyle{
	ThemeDark:       {base: "dark"},
	ThemeLight:      {base: "light"},
	ThemeTokyoNight: {base: "tokyo-night"},
	ThemeCatppuccin: {base: "dark", codeTheme: "catppuccin-mocha"},
	ThemeDracula:    {base: "dracula"},
	ThemePink:       {base: "pink"},
	ThemeNoTTY:      {base: "notty"},
	ThemeASCII:      {base: "ascii"},
}

// IsBuiltinStyle returns true if the style is a built-in style
func IsBuiltinStyle(style string) bool {
	_, ok := builtinStyles[style]
	return ok
}

// resolveStyle returns a copy of the named built-in style with codeTheme
// applied. The second value is false for names that are not built in.
func resolveStyle(name, codeTheme string) (ansi.StyleConfig, bool) {
	builtin, ok := builtinStyles[name]
	if !ok {
		return ansi.StyleConfig{}, false
	}
	base, ok := glamourstyles.DefaultStyles[builtin.base]
	if !ok || base == nil {
		return ansi.StyleConfig{}, false
	}

	style := *base
	if codeTheme == "" {
		codeTheme = builtin.codeTheme
	}
	if codeTheme != "" && ValidCodeTheme(codeTheme) {
		// glamour only falls back to Theme when Chroma is unset
		style.CodeBlock.Theme = codeTheme
		style.CodeBlock.Chroma = nil
	}
	return style, true
}

// ValidCodeTheme reports whether name is a registered chroma style
func ValidCodeTheme(name string) bool {
	_, ok := chromastyles.Registry[name]
	return ok
}

// CodeThemeNames returns the registered chroma style names, sorted
func CodeThemeNames() []string {
	names := chromastyles.Names()
	sort.Strings(names)
	return names
}

// ThemeInfo contains information about a theme for display purposes.
type ThemeInfo struct {
	Name        string
	Description string
}

// AvailableThemes returns a list of all built-in markdown styles.
func AvailableThemes() []ThemeInfo {
	return []ThemeInfo{
		{Name: ThemeDark, Description: "Dark theme (default)"},
		{Name: ThemeTokyoNight, Description: "Tokyo Night color scheme"},
		{Name: ThemeCatppuccin, Description: "Dark theme with Catppuccin Mocha code blocks"},
		{Name: ThemeLight, Description: "Light theme for bright terminals"},
		{Name: ThemeDracula, Description: "Dracula color scheme"},
		{Name: ThemePink, Description: "Pink accents"},
		{Name: ThemeNoTTY, Description: "Plain text (no styling)"},
		{Name: ThemeASCII, Description: "ASCII-only output"},
	}
}

// ThemeNames returns just the theme names for selection.
func ThemeNames() []string {
	themes := AvailableThemes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
