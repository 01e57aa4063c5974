package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/folio-tools/pubsync/internal/bibsync"
	"github.com/folio-tools/pubsync/internal/config"
	"github.com/folio-tools/pubsync/internal/publication"
)

// LockFile is created in the projects directory while sync runs.
const LockFile = ".pubsync.lock"

var (
	syncDryRun bool
	syncPDFDir string
)

func init() {
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Report what would change without writing files")
	syncCmd.Flags().StringVar(&syncPDFDir, "pdf-dir", "", "Directory of <id>.pdf files used to fill missing DOIs")
	rootCmd.AddCommand(syncCmd)
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Create or update project files from the citation library",
	Long: `Create or update one project file per journal article and conference paper
in the citation library export.

Sync-owned fields (title, year, venue, category, doi, URL, author) are
overwritten; abstract is added only when missing; every other field is kept.
Project files whose id is not in the library are left alone.

Examples:
  pubsync sync
  pubsync sync --dry-run --human
  pubsync sync --pdf-dir ~/papers`,
	RunE: runSync,
}

// SyncNotice is printed when there is nothing to sync.
type SyncNotice struct {
	Status string `json:"status"`
	Source string `json:"source"`
}

func runSync(cmd *cobra.Command, args []string) error {
	_, cfg := mustLoadConfig()
	logger := mustNewLogger(cfg)
	defer logger.Sync() //nolint:errcheck

	if syncPDFDir != "" {
		abs, err := filepath.Abs(config.ExpandPath(syncPDFDir))
		if err != nil {
			exitWithError(ExitError, "resolving pdf dir: %v", err)
		}
		cfg.PDFDir = abs
	}

	if _, err := os.Stat(cfg.Source); errors.Is(err, fs.ErrNotExist) {
		outputSourceMissing(cfg.Source)
		return nil
	}

	if !syncDryRun {
		unlock := mustLockProjects(cfg.ProjectsDir, logger)
		defer unlock()
	}

	report, err := bibsync.Sync(bibsync.Options{
		SourcePath:  cfg.Source,
		ProjectsDir: cfg.ProjectsDir,
		PDFDir:      cfg.PDFDir,
		DryRun:      syncDryRun,
		Logger:      logger,
	})
	if err != nil {
		code := exitCodeFor(err)
		if code == ExitSuccess {
			outputSourceMissing(cfg.Source)
			return nil
		}
		logger.Sync() //nolint:errcheck
		exitWithError(code, "sync: %v", err)
	}

	if humanOutput {
		printSyncReport(report)
	} else {
		outputJSON(report)
	}
	return nil
}

func outputSourceMissing(source string) {
	if humanOutput {
		outputHuman("Library export not found at %s; nothing to sync\n", source)
		return
	}
	outputJSON(SyncNotice{Status: "source_missing", Source: source})
}

// mustLockProjects takes the advisory sync lock, or exits when another sync
// holds it. The returned function releases the lock.
func mustLockProjects(dir string, logger *zap.Logger) func() {
	if err := os.MkdirAll(dir, 0755); err != nil {
		exitWithError(ExitError, "creating projects directory: %v", err)
	}

	lockPath := filepath.Join(dir, LockFile)
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		exitWithError(ExitError, "acquire lock: %v", err)
	}
	if !ok {
		exitWithError(ExitError, "another sync is running (lock held: %s)", lockPath)
	}

	return func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release sync lock", zap.Error(err))
		}
	}
}

func printSyncReport(r *bibsync.Report) {
	if len(r.Changes) > 0 {
		t := tableSpec{headers: []string{"Action", "ID", "Category", "Title"}}
		if r.DryRun {
			t.title = "Dry run: no files written"
		}
		for _, c := range r.Changes {
			t.rows = append(t.rows, []string{
				string(c.Action),
				c.ID,
				string(c.Category),
				truncateString(c.Title, ChangeTitleMaxLen),
			})
		}
		fmt.Println(t.render())
	} else if r.DryRun {
		fmt.Println("Dry run: no files written")
	}
	if len(r.Skipped) > 0 || len(r.Excluded) > 0 {
		t := tableSpec{
			title:   "Not synced",
			headers: []string{"Reason", "Count"},
			right:   map[int]bool{1: true},
		}
		t.rows = append(skipCounts(r.Skipped),
			[]string{"unreadable project file", strconv.Itoa(len(r.Excluded))},
			[]string{"duplicate project id", strconv.Itoa(len(r.Duplicates))},
		)
		fmt.Println(t.render())
	}
	fmt.Printf("Created: %d, Updated: %d\n", r.Created, r.Updated)
}

// skipCounts groups skipped citations by reason, in first-seen order.
func skipCounts(skips []bibsync.Skip) [][]string {
	counts := make(map[publication.SkipReason]int)
	var order []publication.SkipReason
	for _, s := range skips {
		if counts[s.Reason] == 0 {
			order = append(order, s.Reason)
		}
		counts[s.Reason]++
	}
	rows := make([][]string, 0, len(order))
	for _, reason := range order {
		rows = append(rows, []string{string(reason), strconv.Itoa(counts[reason])})
	}
	return rows
}
