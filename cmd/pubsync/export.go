package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/folio-tools/pubsync/internal/catalog"
	"github.com/folio-tools/pubsync/internal/config"
)

var exportOutput string

func init() {
	exportCmd.Flags().StringVar(&exportOutput, "output", "", "Output file (default: publications from config)")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all project files as one publication list",
	Long: `Write every project file, curated fields included, to a single JSON array
ordered newest first. The site's publication page reads this file.

Examples:
  pubsync export
  pubsync export --output public/publications.json`,
	RunE: runExport,
}

// ExportResponse is the response for the export command.
type ExportResponse struct {
	Status string `json:"status"`
	Path   string `json:"path"`
	Count  int    `json:"count"`
}

func runExport(cmd *cobra.Command, args []string) error {
	_, cfg := mustLoadConfig()
	logger := mustNewLogger(cfg)
	defer logger.Sync() //nolint:errcheck

	path := cfg.Publications
	if exportOutput != "" {
		abs, err := filepath.Abs(config.ExpandPath(exportOutput))
		if err != nil {
			exitWithError(ExitError, "resolving output: %v", err)
		}
		path = abs
	}
	if path == "" {
		exitWithError(ExitConfigError, "no output file: set publications in %s or pass --output", config.ConfigFile)
	}

	cat := mustOpenCatalog(cfg, logger)
	defer cat.Close()

	n, err := cat.Export(path, catalog.Filter{})
	if err != nil {
		exitWithError(ExitError, "exporting publications: %v", err)
	}

	if humanOutput {
		outputHuman("Exported %d publications to %s\n", n, path)
	} else {
		outputJSON(ExportResponse{Status: "exported", Path: path, Count: n})
	}
	return nil
}
