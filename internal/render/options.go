// Package render turns assistant answers into terminal output: glamour
// markdown, chroma code highlighting and fenced code extraction.
package render

// MinWidth is the narrowest wrap width handed to glamour.
const MinWidth = 20

// Options configures a markdown renderer. Its fields are comparable so an
// Options value can key the renderer pool directly.
type Options struct {
	Width int
	// Style is a built-in theme name or a path to a glamour JSON style file.
	Style string
	// CodeTheme overrides the chroma theme of code blocks. Empty keeps the
	// style's own colors.
	CodeTheme string

	EnableEmoji      bool
	PreserveNewLines bool
	TableWrap        bool
	InlineTableLinks bool
}

// DefaultOptions returns the renderer settings used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Width:            80,
		Style:            "dark",
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
	}
}

// WithWidth sets the wrap width, raising it to MinWidth when narrower.
func (o Options) WithWidth(width int) Options {
	if width < MinWidth {
		width = MinWidth
	}
	o.Width = width
	return o
}

func (o Options) WithStyle(style string) Options {
	o.Style = style
	return o
}

func (o Options) WithCodeTheme(theme string) Options {
	o.CodeTheme = theme
	return o
}

func (o Options) WithEmoji(enabled bool) Options {
	o.EnableEmoji = enabled
	return o
}

func (o Options) WithPreserveNewLines(enabled bool) Options {
	o.PreserveNewLines = enabled
	return o
}

func (o Options) WithTableWrap(enabled bool) Options {
	o.TableWrap = enabled
	return o
}

func (o Options) WithInlineTableLinks(enabled bool) Options {
	o.InlineTableLinks = enabled
	return o
}
