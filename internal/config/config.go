// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/tidecore/internal/highlighter/lang"
	"github.com/bethropolis/tidecore/internal/logger"
	"gopkg.in/yaml.v3"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger    logger.Config            `toml:"logger" yaml:"logger"` // Embed logger config under [logger] table
	Editor    EditorConfig             `toml:"editor" yaml:"editor"`
	Gutter    GutterConfig             `toml:"gutter" yaml:"gutter"`
	Search    SearchConfig             `toml:"search" yaml:"search"`
	Syntax    SyntaxConfig             `toml:"syntax" yaml:"syntax"`
	Languages map[string]lang.Override `toml:"languages" yaml:"languages"` // Keyed by language name
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	TabWidth   int    `toml:"tab_width" yaml:"tab_width"`
	ScrollOff  int    `toml:"scroll_off" yaml:"scroll_off"`
	SoftWrap   bool   `toml:"soft_wrap" yaml:"soft_wrap"`
	MaxHistory int    `toml:"max_history" yaml:"max_history"`
	Theme      string `toml:"theme" yaml:"theme"` // Path to a theme file; empty uses the built-in theme
}

// GutterConfig sizes the line number gutter, in terminal cells.
type GutterConfig struct {
	MinDigits int `toml:"min_digits" yaml:"min_digits"`
	Padding   int `toml:"padding" yaml:"padding"`
}

// SearchConfig holds find defaults.
type SearchConfig struct {
	CaseSensitive bool `toml:"case_sensitive" yaml:"case_sensitive"`
}

// SyntaxConfig selects the highlighting engine.
type SyntaxConfig struct {
	Engine string `toml:"engine" yaml:"engine"` // EngineTokenizer or EngineTreeSitter
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Editor: EditorConfig{
			TabWidth:   DefaultTabWidth,
			ScrollOff:  DefaultScrollOff,
			MaxHistory: DefaultMaxHistory,
		},
		Gutter: GutterConfig{
			MinDigits: DefaultGutterMinDigits,
			Padding:   DefaultGutterPadding,
		},
		Syntax: SyntaxConfig{Engine: EngineTokenizer},
	}
}

// DefaultPath returns the config file location under the user config dir,
// or "" when that directory is unknown.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, ConfigDirName, DefaultConfigFileName)
}

// loadFromFile decodes filePath over cfg, so keys absent from the file keep
// their current values. A missing file is not an error. Files ending in
// .yaml or .yml are YAML; anything else is TOML.
func loadFromFile(filePath string, cfg *Config) error {
	content, err := os.ReadFile(filePath)
	if errors.Is(err, os.ErrNotExist) {
		logger.Debugf("Config file not found: %s", filePath)
		return nil
	}
	if err != nil {
		return fmt.Errorf("error reading config file '%s': %w", filePath, err)
	}

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
		}
	default:
		metadata, err := toml.Decode(string(content), cfg)
		if err != nil {
			return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
		}
		if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
			logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, undecoded)
		}
	}
	logger.Infof("Loaded configuration from: %s", filePath)
	return nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.TabWidth <= 0 {
		c.Editor.TabWidth = defaults.Editor.TabWidth
	}
	if c.Editor.ScrollOff < 0 { // Allow 0
		c.Editor.ScrollOff = defaults.Editor.ScrollOff
	}
	if c.Editor.MaxHistory <= 0 {
		c.Editor.MaxHistory = defaults.Editor.MaxHistory
	}
	if c.Gutter.MinDigits <= 0 {
		c.Gutter.MinDigits = defaults.Gutter.MinDigits
	}
	if c.Gutter.Padding < 0 {
		c.Gutter.Padding = defaults.Gutter.Padding
	}

	switch strings.ToLower(c.Syntax.Engine) {
	case EngineTokenizer, EngineTreeSitter:
		c.Syntax.Engine = strings.ToLower(c.Syntax.Engine)
	default:
		logger.Warnf("Config: unknown syntax engine %q, using %s", c.Syntax.Engine, EngineTokenizer)
		c.Syntax.Engine = defaults.Syntax.Engine
	}

	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if c.Logger.Format == "" {
		c.Logger.Format = defaults.Logger.Format
	}
}

// Load builds a configuration from defaults, the file at configFilePath
// (DefaultPath() when empty) and flags, in increasing precedence. A file
// that cannot be parsed is reported, but the returned config is still
// usable.
func Load(configFilePath string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	path := configFilePath
	if path == "" {
		path = DefaultPath()
	}

	var fileErr error
	if path != "" {
		fileCfg := NewDefaultConfig()
		if fileErr = loadFromFile(path, fileCfg); fileErr == nil {
			cfg = fileCfg
		}
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()
	return cfg, fileErr
}

// LoadConfig is Load for the process-wide configuration returned by Get.
// Only the first call has any effect.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		loadedConfig, loadErr = Load(configFilePath, flags)
	})
	return loadedConfig, loadErr
}

// Get returns the loaded application configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		// This indicates a programming error - LoadConfig should be called in main.
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}

// ApplyLanguageOverrides replaces the token sets of registered languages
// with the [languages.<name>] tables. Languages must already be registered.
// It returns the names that matched no language.
func (c *Config) ApplyLanguageOverrides() []string {
	var unknown []string
	for name, o := range c.Languages {
		l := lang.GetByName(name)
		if l == nil {
			logger.Warnf("Config: no language named %q to override", name)
			unknown = append(unknown, name)
			continue
		}
		lang.Register(l.WithOverride(o))
		logger.DebugTagf("config", "Applied overrides to language %s", l.Name)
	}
	return unknown
}
