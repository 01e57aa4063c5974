package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/folio-tools/pubsync/internal/check"
	"github.com/folio-tools/pubsync/internal/csl"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify project files against the citation library",
	Long: `Verify that every classified citation has an up-to-date project file.

Reports missing files, stale sync-owned fields, duplicate ids and unreadable
files. Orphans (project ids not in the library) are listed but are not
problems. Exits with status 3 when problems are found.`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	_, cfg := mustLoadConfig()

	report, err := check.Verify(cfg.Source, cfg.ProjectsDir)
	if err != nil {
		if errors.Is(err, csl.ErrDataUnavailable) {
			exitWithError(ExitConfigError, "library export not found at %s", cfg.Source)
		}
		exitWithError(exitCodeFor(err), "check: %v", err)
	}

	if humanOutput {
		printCheckReport(report)
	} else {
		outputJSON(report)
	}

	if report.HasProblems() {
		os.Exit(ExitDataError)
	}
	return nil
}

func printCheckReport(r *check.Report) {
	if !r.HasProblems() {
		fmt.Printf("Project check: OK\n\n")
	} else {
		fmt.Printf("Project check: %d issues found\n\n", len(r.Issues))
	}
	for _, is := range r.Issues {
		switch is.Type {
		case check.IssueMissing:
			fmt.Printf("  [WARN] No project file for %s\n", is.ID)
			fmt.Printf("         Expected: %s\n\n", is.Path)
		case check.IssueStale:
			fmt.Printf("  [WARN] Stale project file for %s\n", is.ID)
			fmt.Printf("         Fields: %s\n\n", strings.Join(is.Fields, ", "))
		case check.IssueDuplicateID:
			fmt.Printf("  [WARN] Duplicate id %s\n", is.ID)
			fmt.Printf("         Found in: %s\n\n", strings.Join(is.Paths, ", "))
		case check.IssueUnreadable:
			fmt.Printf("  [WARN] Unreadable project file %s\n", is.Path)
			fmt.Printf("         Reason: %s\n\n", is.Reason)
		case check.IssueOrphan:
			fmt.Printf("  [INFO] %s is not in the library (%s)\n\n", is.ID, is.Path)
		}
	}
	fmt.Printf("%d citations, %d project files checked\n", r.Records, r.Projects)
}
