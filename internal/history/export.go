// Package history exports the in-memory chat transcript to files.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/diogo/geminichat/internal/models"
)

// ExportFormat represents the format for exporting conversations
type ExportFormat string

const (
	ExportFormatMarkdown ExportFormat = "markdown"
	ExportFormatJSON     ExportFormat = "json"
)

// DefaultTitle heads exports that have no title of their own
const DefaultTitle = "Gemini Chat"

// ExportOptions configures how conversations are exported
type ExportOptions struct {
	Format ExportFormat
	Title  string
	Model  string
	// ExportedAt is stamped into the export; zero means now
	ExportedAt time.Time
}

// DefaultExportOptions returns sensible defaults for export
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		Format: ExportFormatMarkdown,
		Title:  DefaultTitle,
	}
}

func (o ExportOptions) title() string {
	if strings.TrimSpace(o.Title) == "" {
		return DefaultTitle
	}
	return o.Title
}

func (o ExportOptions) exportedAt() time.Time {
	if o.ExportedAt.IsZero() {
		return time.Now()
	}
	return o.ExportedAt
}

// FormatFromPath picks the export format from a file extension:
// .json gives JSON, anything else markdown.
func FormatFromPath(path string) ExportFormat {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ExportFormatJSON
	}
	return ExportFormatMarkdown
}

// ExportMarkdown renders messages as a markdown document
func ExportMarkdown(messages []models.Message, opts ExportOptions) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# ")
	sb.WriteString(opts.title())
	sb.WriteString("\n\n")

	// Metadata
	if opts.Model != "" {
		sb.WriteString("**Model:** ")
		sb.WriteString(opts.Model)
		sb.WriteString("\n")
	}
	sb.WriteString("**Exported:** ")
	sb.WriteString(opts.exportedAt().Format("2006-01-02 15:04:05"))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("**Messages:** %d", len(messages)))
	sb.WriteString("\n\n---\n\n")

	// Messages
	for i, msg := range messages {
		role := "Assistant"
		if msg.IsUser() {
			role = "User"
		}

		sb.WriteString("## ")
		sb.WriteString(role)
		sb.WriteString("\n\n")
		sb.WriteString(msg.Content)
		sb.WriteString("\n")

		// Separator between messages (except last)
		if i < len(messages)-1 {
			sb.WriteString("\n---\n\n")
		}
	}

	return sb.String()
}

type exportConversation struct {
	Title      string           `json:"title"`
	Model      string           `json:"model,omitempty"`
	ExportedAt time.Time        `json:"exported_at"`
	Messages   []models.Message `json:"messages"`
}

// ExportJSON encodes messages as an indented JSON document
func ExportJSON(messages []models.Message, opts ExportOptions) ([]byte, error) {
	export := exportConversation{
		Title:      opts.title(),
		Model:      opts.Model,
		ExportedAt: opts.exportedAt(),
		Messages:   messages,
	}
	if export.Messages == nil {
		export.Messages = []models.Message{}
	}
	return json.MarshalIndent(export, "", "  ")
}

// WriteExport writes messages to path. An empty opts.Format is chosen
// from the file extension.
func WriteExport(path string, messages []models.Message, opts ExportOptions) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("export path is empty")
	}

	format := opts.Format
	if format == "" {
		format = FormatFromPath(path)
	}

	var data []byte
	switch format {
	case ExportFormatJSON:
		encoded, err := ExportJSON(messages, opts)
		if err != nil {
			return fmt.Errorf("failed to encode export: %w", err)
		}
		data = append(encoded, '\n')
	case ExportFormatMarkdown:
		data = []byte(ExportMarkdown(messages, opts))
	default:
		return fmt.Errorf("unknown export format %q", format)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}
