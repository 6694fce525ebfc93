// Package config handles configuration loading for webchat.
//
// Values are layered: built-in defaults, then ~/.webchat/config.toml, then
// WEBCHAT_* environment variables. Command-line flags are applied on top by
// the commands package.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	koanftoml "github.com/knadh/koanf/parsers/toml/v2"
	koanfenv "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment overrides, e.g. WEBCHAT_SERVER_URL
const EnvPrefix = "WEBCHAT_"

// ServerConfig describes the chatbot backend
type ServerConfig struct {
	URL string `koanf:"url" toml:"url"`
	// Timeout is the request timeout in seconds
	Timeout int `koanf:"timeout" toml:"timeout"`
}

// LoggingConfig configures the rotating log file
type LoggingConfig struct {
	Level      string `koanf:"level" toml:"level"`
	File       string `koanf:"file" toml:"file,omitempty"` // empty means ~/.webchat/logs/webchat.log
	MaxSize    int    `koanf:"max_size" toml:"max_size"`   // megabytes
	MaxBackups int    `koanf:"max_backups" toml:"max_backups"`
	MaxAge     int    `koanf:"max_age" toml:"max_age"` // days
	Compress   bool   `koanf:"compress" toml:"compress"`
}

// MarkdownConfig configures markdown rendering options
type MarkdownConfig struct {
	Style            string `koanf:"style" toml:"style"`                         // "dark", "light", "auto" or a glamour style name
	EnableEmoji      bool   `koanf:"enable_emoji" toml:"enable_emoji"`           // Convert :emoji: to unicode
	PreserveNewLines bool   `koanf:"preserve_newlines" toml:"preserve_newlines"` // Preserve original line breaks
	TableWrap        bool   `koanf:"table_wrap" toml:"table_wrap"`               // Enable word wrap in table cells
	InlineTableLinks bool   `koanf:"inline_table_links" toml:"inline_table_links"`
}

// Config represents the user configuration
type Config struct {
	Server   ServerConfig   `koanf:"server" toml:"server"`
	Logging  LoggingConfig  `koanf:"logging" toml:"logging"`
	Markdown MarkdownConfig `koanf:"markdown" toml:"markdown"`
	// CopyToClipboard copies every one-shot reply to the clipboard
	CopyToClipboard bool `koanf:"copy_to_clipboard" toml:"copy_to_clipboard"`
	// CodeStyle is the chroma style used for code blocks
	CodeStyle string `koanf:"code_style" toml:"code_style"`
}

// sections are the nested tables that env keys may address
var sections = []string{"server", "logging", "markdown"}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Style:            "auto",
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
		InlineTableLinks: false,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			URL:     "http://localhost:5000",
			Timeout: 300,
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		},
		Markdown:  DefaultMarkdownConfig(),
		CodeStyle: "monokai",
	}
}

// RequestTimeout returns the server timeout as a duration
func (c Config) RequestTimeout() time.Duration {
	if c.Server.Timeout <= 0 {
		return 300 * time.Second
	}
	return time.Duration(c.Server.Timeout) * time.Second
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(home, ".webchat")
	return configDir, nil
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

func pathIn(parts ...string) (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{configDir}, parts...)...), nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	return pathIn("config.toml")
}

// GetSettingsPath returns the path to the settings store
func GetSettingsPath() (string, error) {
	return pathIn("settings.json")
}

// GetLogPath returns the log file path, honoring an explicit setting
func GetLogPath(cfg Config) (string, error) {
	if cfg.Logging.File != "" {
		return cfg.Logging.File, nil
	}
	return pathIn("logs", "webchat.log")
}

// envKey maps WEBCHAT_SERVER_URL to server.url and WEBCHAT_CODE_STYLE to
// code_style. Only the first underscore after a known section is a separator.
func envKey(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	section, rest, ok := strings.Cut(key, "_")
	if !ok {
		return key
	}
	for _, s := range sections {
		if s == section {
			return section + "." + rest
		}
	}
	return key
}

// LoadConfig loads the configuration from the default path
func LoadConfig() (Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return DefaultConfig(), err
	}
	return LoadConfigFrom(configPath)
}

// LoadConfigFrom loads the configuration from path and the environment.
// A missing file yields the defaults. On a parse error the defaults are
// returned along with the error.
func LoadConfigFrom(configPath string) (Config, error) {
	k := koanf.New(".")

	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), koanftoml.Parser()); err != nil {
			return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return DefaultConfig(), fmt.Errorf("failed to read config file: %w", err)
	}

	if err := k.Load(koanfenv.Provider(".", koanfenv.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return envKey(key), value
		},
	}), nil); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := DefaultConfig()
	if err := k.Unmarshal("", &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Encode renders cfg as TOML
func Encode(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveConfig writes cfg to the default path
func SaveConfig(cfg Config) error {
	if _, err := EnsureConfigDir(); err != nil {
		return err
	}
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}
	return SaveConfigTo(configPath, cfg)
}

// SaveConfigTo writes cfg to path
func SaveConfigTo(configPath string, cfg Config) error {
	data, err := Encode(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// WriteDefault writes the default configuration to path. An existing file
// is kept unless force is set.
func WriteDefault(configPath string, force bool) error {
	if !force {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("config file already exists: %s (use --force to overwrite)", configPath)
		}
	}
	return SaveConfigTo(configPath, DefaultConfig())
}
