// cmd/tide/main.go
package main

import (
	"flag"
	"fmt"
	stlog "log" // Use standard log for FATAL errors before logger is ready
	"os"
	"path/filepath"

	"github.com/bethropolis/tidecore/internal/app"
	"github.com/bethropolis/tidecore/internal/config"
	hl "github.com/bethropolis/tidecore/internal/highlighter"
	"github.com/bethropolis/tidecore/internal/logger"
)

var version = "dev"

func main() {
	// --- Argument & Flag Parsing ---
	var flags config.Flags
	files, err := flags.ParseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		os.Exit(2) // flag package already printed the problem
	}
	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, version)
		return
	}

	// --- Configuration ---
	cfg, err := config.LoadConfig(*flags.ConfigFilePath, &flags)
	if err != nil {
		// Defaults are still usable; report once the logger is up.
		defer logger.Warnf("Config: %v, using defaults", err)
	}

	// --- Logger Initialization ---
	logFile, closeLog, err := openLogOutput(cfg.Logger.LogFilePath)
	if err != nil {
		stlog.Fatalf("Failed to open log file: %v", err)
	}
	defer closeLog()
	logger.Init(cfg.Logger, logFile)
	logger.Infof("Starting %s %s", config.AppName, version)

	// --- Languages ---
	hl.EnsureRegistered()
	for _, name := range cfg.ApplyLanguageOverrides() {
		logger.Warnf("Config: ignoring overrides for unknown language %q", name)
	}

	// --- Create and Run App ---
	tideApp, err := app.NewApp(cfg, files, *flags.Find)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		closeLog()
		os.Exit(1)
	}
	if err := tideApp.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		closeLog()
		os.Exit(1)
	}
	logger.Infof("%s finished", config.AppName)
}

// openLogOutput opens the log destination. "-" is stderr; empty means
// DefaultLogFileName under the user cache dir, since the terminal belongs
// to the viewer.
func openLogOutput(path string) (*os.File, func(), error) {
	if path == "-" {
		return os.Stderr, func() {}, nil
	}
	if path == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			dir = os.TempDir()
		}
		dir = filepath.Join(dir, config.ConfigDirName)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
		path = filepath.Join(dir, config.DefaultLogFileName)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
