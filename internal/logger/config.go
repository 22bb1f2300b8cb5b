// Package logger provides configurable logging capabilities
package logger

import (
	"log/slog"
	"strings"
)

// Output formats understood by Init.
const (
	FormatText   = "text"   // slog text handler
	FormatPretty = "pretty" // charmbracelet/log, colored for terminals
)

// Config holds all settings for the logger.
type Config struct {
	// LogLevel specifies the minimum level to log (e.g., "debug", "info", "warn", "error").
	LogLevel string `toml:"log_level" yaml:"log_level"`

	// LogFilePath is the path to the output log file. Use empty or "-" for stderr.
	LogFilePath string `toml:"log_file" yaml:"log_file"`

	// Format is FormatText or FormatPretty.
	Format string `toml:"format" yaml:"format"`

	// EnabledTags only logs messages with these tags (if non-empty).
	EnabledTags []string `toml:"enabled_tags" yaml:"enabled_tags"`
	// DisabledTags prevents logging messages with these tags. Overrides EnabledTags.
	DisabledTags []string `toml:"disabled_tags" yaml:"disabled_tags"`

	// EnabledPackages only logs messages originating from these packages (if non-empty).
	// Package name is the immediate directory name (e.g., "core", "find", "buffer").
	EnabledPackages []string `toml:"enabled_packages" yaml:"enabled_packages"`
	// DisabledPackages prevents logging from these packages. Overrides EnabledPackages.
	DisabledPackages []string `toml:"disabled_packages" yaml:"disabled_packages"`

	// EnabledFiles only logs messages originating from these filenames (if non-empty).
	EnabledFiles []string `toml:"enabled_files" yaml:"enabled_files"`
	// DisabledFiles prevents logging from these filenames. Overrides EnabledFiles.
	DisabledFiles []string `toml:"disabled_files" yaml:"disabled_files"`

	level    slog.Level
	tags     filterSet
	packages filterSet
	files    filterSet
}

// filterSet is an allow list plus a deny list; deny wins.
type filterSet struct {
	allow map[string]struct{}
	deny  map[string]struct{}
}

// permits reports whether a record carrying key passes the set.
// An empty key only passes when no allow list is configured.
func (f filterSet) permits(key string) bool {
	key = strings.ToLower(key)
	if _, denied := f.deny[key]; denied && key != "" {
		return false
	}
	if f.allow == nil {
		return true
	}
	_, ok := f.allow[key]
	return ok
}

// NewConfig creates a new Config with default values
func NewConfig() Config {
	return Config{
		LogLevel: "info",
		Format:   FormatText,
	}
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// process parses string levels/lists into efficient internal formats.
func (c *Config) process() {
	c.level = ParseLevel(c.LogLevel)
	c.tags = filterSet{allow: sliceToSet(c.EnabledTags), deny: sliceToSet(c.DisabledTags)}
	c.packages = filterSet{allow: sliceToSet(c.EnabledPackages), deny: sliceToSet(c.DisabledPackages)}
	c.files = filterSet{allow: sliceToSet(c.EnabledFiles), deny: sliceToSet(c.DisabledFiles)}
}

// helper function to convert slice to set
func sliceToSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item != "" {
			set[strings.ToLower(item)] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil // nil map means "no list configured"
	}
	return set
}
