// Package main provides the pubsync CLI entry point.
package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/folio-tools/pubsync/internal/config"
	"github.com/folio-tools/pubsync/internal/logging"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	humanOutput bool
	rootDir     string
	configFile  string
	logLevel    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		exitWithError(ExitError, "%v", err)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pubsync",
	Short: "Keep portfolio project files in sync with a citation library",
	Long: `pubsync maintains the per-publication project files of a portfolio site.

It reads a CSL-JSON export of the citation library, classifies each journal
article and conference paper, and creates or updates one JSON file per
publication while leaving curated fields alone. All commands output JSON by
default; pass --human for text and tables.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "Site root (default: nearest directory with "+config.ConfigFile+")")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: <root>/"+config.ConfigFile+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.Version = Version
}

// mustFindRoot returns the site root, or exits with an error.
func mustFindRoot() string {
	start := rootDir
	if start == "" {
		cwd, err := os.Getwd()
		if err != nil {
			exitWithError(ExitError, "getting current directory: %v", err)
		}
		start = cwd
	} else {
		abs, err := filepath.Abs(start)
		if err != nil {
			exitWithError(ExitConfigError, "resolving root: %v", err)
		}
		return abs
	}

	root, err := config.FindRoot(start)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return root
}

// mustLoadConfig loads the configuration with every path resolved against
// the root, or exits with an error.
func mustLoadConfig() (string, config.Config) {
	root := mustFindRoot()

	var cfg *config.Config
	var err error
	if configFile != "" {
		cfg, err = config.LoadFile(config.ExpandPath(configFile))
	} else {
		cfg, err = config.Load(root)
	}
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return root, cfg.Resolved(root)
}

// mustNewLogger builds the stderr logger, or exits with an error.
func mustNewLogger(cfg config.Config) *zap.Logger {
	logger, err := logging.New(logging.Options{Level: cfg.LogLevel})
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return logger
}
