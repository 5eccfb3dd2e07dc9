// Package config handles configuration and environment lookup for geminichat.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/diogo/geminichat/internal/models"
)

// Backend names accepted by the "backend" setting
const (
	BackendREST = "rest"
	BackendSDK  = "sdk"
)

// Environment variables read at startup
const (
	EnvAPIKey       = "GEMINI_API_KEY"
	EnvGoogleAPIKey = "GOOGLE_API_KEY"
	EnvModel        = "GEMINICHAT_MODEL"
)

// MarkdownConfig configures markdown rendering options
type MarkdownConfig struct {
	Style            string `json:"style"`              // glamour style name or path to JSON style
	CodeTheme        string `json:"code_theme"`         // chroma theme for code blocks, "" keeps the style's own
	EnableEmoji      bool   `json:"enable_emoji"`       // Convert :emoji: to unicode
	PreserveNewLines bool   `json:"preserve_newlines"`  // Preserve original line breaks
	TableWrap        bool   `json:"table_wrap"`         // Enable word wrap in table cells
	InlineTableLinks bool   `json:"inline_table_links"` // Render links inline in tables
}

// Config represents the user configuration
type Config struct {
	Model   string `json:"model"`
	Backend string `json:"backend"`
	// Endpoint overrides the API base URL (REST backend only).
	Endpoint string `json:"endpoint,omitempty"`
	// TimeoutSeconds bounds one generation call. 0 means no client timeout.
	TimeoutSeconds int `json:"timeout_seconds"`
	// RevealDelayMS is the pause between two revealed characters.
	RevealDelayMS  int    `json:"reveal_delay_ms"`
	WelcomeMessage string `json:"welcome_message,omitempty"`
	// CopyToClipboard copies one-shot answers to the clipboard.
	CopyToClipboard bool   `json:"copy_to_clipboard"`
	Verbose         bool   `json:"verbose"`
	TUITheme        string `json:"tui_theme,omitempty"`

	LogLevel  string `json:"log_level"`
	LogFormat string `json:"log_format"`
	LogFile   string `json:"log_file,omitempty"`

	Markdown MarkdownConfig `json:"markdown,omitempty"`
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Style:            "dark",
		CodeTheme:        "",
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
		InlineTableLinks: false,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Model:           models.DefaultModel.Name,
		Backend:         BackendREST,
		TimeoutSeconds:  0,
		RevealDelayMS:   20,
		CopyToClipboard: false,
		Verbose:         false,
		TUITheme:        "tokyonight",
		LogLevel:        "info",
		LogFormat:       "json",
		Markdown:        DefaultMarkdownConfig(),
	}
}

// RevealDelay returns the reveal delay as a duration
func (c Config) RevealDelay() time.Duration {
	if c.RevealDelayMS < 0 {
		return 0
	}
	return time.Duration(c.RevealDelayMS) * time.Millisecond
}

// Timeout returns the generation timeout as a duration (0 = none)
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Welcome returns the greeting the conversation starts with
func (c Config) Welcome() string {
	if strings.TrimSpace(c.WelcomeMessage) != "" {
		return c.WelcomeMessage
	}
	return models.WelcomeMessage
}

// Validate checks values that cannot be fixed up silently
func (c Config) Validate() error {
	switch c.Backend {
	case BackendREST, BackendSDK:
	default:
		return fmt.Errorf("unknown backend %q (want %q or %q)", c.Backend, BackendREST, BackendSDK)
	}
	if c.RevealDelayMS < 0 {
		return fmt.Errorf("reveal_delay_ms must not be negative, got %d", c.RevealDelayMS)
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must not be negative, got %d", c.TimeoutSeconds)
	}
	return nil
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".geminichat"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// GetLogPath returns the log file path from config, or the default location
func GetLogPath(cfg Config) (string, error) {
	if p := strings.TrimSpace(cfg.LogFile); p != "" {
		return p, nil
	}
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "logs", "geminichat.log"), nil
}

// LoadConfig loads the configuration from disk and applies environment overrides
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if m := strings.TrimSpace(os.Getenv(EnvModel)); m != "" {
		cfg.Model = m
	}
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// APIKeyFromEnv returns the API key from the environment, or "".
// GEMINI_API_KEY wins over GOOGLE_API_KEY.
func APIKeyFromEnv() string {
	if k := strings.TrimSpace(os.Getenv(EnvAPIKey)); k != "" {
		return k
	}
	return strings.TrimSpace(os.Getenv(EnvGoogleAPIKey))
}
