package config

// Base application details
const AppName = "tide"
const ConfigDirName = "tide"
const ThemesDirName = "themes"
const DefaultThemeFileName = "theme.toml"   // Active theme file
const DefaultConfigFileName = "config.toml" // Main config file
const DefaultLogFileName = "tide.log"

// Syntax engines accepted by [syntax] engine.
const (
	EngineTokenizer  = "tokenizer"
	EngineTreeSitter = "treesitter"
)

// These could be moved to NewDefaultConfig(), keeping here for now
const DefaultTabWidth = 4
const DefaultScrollOff = 3
const DefaultMaxHistory = 100
const DefaultGutterMinDigits = 1
const DefaultGutterPadding = 1
