package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/folio-tools/pubsync/internal/config"
)

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the effective configuration with every path resolved against the
site root.

Examples:
  pubsync config
  pubsync config init`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default " + config.ConfigFile + " in the site root",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

// ConfigResponse is the response for the config command.
type ConfigResponse struct {
	Root         string `json:"root"`
	ConfigFile   string `json:"config_file,omitempty"`
	Source       string `json:"source"`
	ProjectsDir  string `json:"projects_dir"`
	Publications string `json:"publications"`
	PDFDir       string `json:"pdf_dir,omitempty"`
	LogLevel     string `json:"log_level"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	root, cfg := mustLoadConfig()

	resp := ConfigResponse{
		Root:         root,
		Source:       cfg.Source,
		ProjectsDir:  cfg.ProjectsDir,
		Publications: cfg.Publications,
		PDFDir:       cfg.PDFDir,
		LogLevel:     cfg.LogLevel,
	}
	switch {
	case configFile != "":
		resp.ConfigFile = config.ExpandPath(configFile)
	case config.HasConfig(root):
		resp.ConfigFile = config.ConfigPath(root)
	}

	if humanOutput {
		file := resp.ConfigFile
		if file == "" {
			file = "(none, using defaults)"
		}
		fmt.Printf("root:         %s\n", resp.Root)
		fmt.Printf("config file:  %s\n", file)
		fmt.Printf("source:       %s\n", resp.Source)
		fmt.Printf("projects_dir: %s\n", resp.ProjectsDir)
		fmt.Printf("publications: %s\n", resp.Publications)
		if resp.PDFDir != "" {
			fmt.Printf("pdf_dir:      %s\n", resp.PDFDir)
		}
		fmt.Printf("log_level:    %s\n", resp.LogLevel)
	} else {
		outputJSON(resp)
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	root := mustFindRoot()
	if config.HasConfig(root) {
		exitWithError(ExitConfigError, "%s already exists in %s", config.ConfigFile, root)
	}

	cfg := config.Default()
	if err := cfg.Save(root); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	path := config.ConfigPath(root)
	if humanOutput {
		outputHuman("Wrote %s\n", path)
	} else {
		outputJSON(StatusResponse{Status: "created", Path: path})
	}
	return nil
}
