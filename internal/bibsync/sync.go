package bibsync

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/folio-tools/pubsync/internal/pdf"
	"github.com/folio-tools/pubsync/internal/projectstore"
	"github.com/folio-tools/pubsync/internal/publication"
)

// Options configures a sync run.
type Options struct {
	SourcePath  string // CSL-JSON export
	ProjectsDir string // directory of project files
	PDFDir      string // optional; <id>.pdf files used to fill a missing DOI
	DryRun      bool

	Logger  *zap.Logger
	FindDOI func(path string) (string, error) // defaults to pdf.ExtractDOI
}

// Action is what sync did with one record.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
)

// Change describes one written (or, in a dry run, planned) project file.
type Change struct {
	ID       string               `json:"id"`
	Action   Action               `json:"action"`
	Path     string               `json:"path"`
	Category publication.Category `json:"category"`
	Title    string               `json:"title"`
}

// Skip describes a source item that produced no project file.
type Skip struct {
	ID     string                 `json:"id,omitempty"`
	Type   string                 `json:"type,omitempty"`
	Reason publication.SkipReason `json:"reason"`
}

// Report summarizes a sync run.
type Report struct {
	Created    int                      `json:"created"`
	Updated    int                      `json:"updated"`
	DryRun     bool                     `json:"dry_run,omitempty"`
	Changes    []Change                 `json:"changes"`
	Skipped    []Skip                   `json:"skipped"`
	Excluded   []projectstore.Excluded  `json:"excluded"`
	Duplicates []projectstore.Duplicate `json:"duplicates"`
}

// Sync merges the export at opts.SourcePath into opts.ProjectsDir.
//
// Every classified record ends up in exactly one project file: an existing
// file with the same id is updated in place, otherwise a new file named
// after the id is created. Files whose id is not in the export are never
// touched, and nothing is ever deleted. A record whose file name is already
// held by a readable file of another id is skipped with SkipNameCollision.
func Sync(opts Options) (*Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	findDOI := opts.FindDOI
	if findDOI == nil {
		findDOI = pdf.ExtractDOI
	}

	plan, err := Prepare(opts.SourcePath, opts.ProjectsDir)
	if err != nil {
		return nil, err
	}

	report := &Report{
		DryRun:     opts.DryRun,
		Changes:    []Change{},
		Skipped:    []Skip{},
		Excluded:   plan.Excluded,
		Duplicates: plan.Index.Duplicates(),
	}
	if report.Excluded == nil {
		report.Excluded = []projectstore.Excluded{}
	}

	unreadable := make(map[string]bool, len(plan.Excluded))
	for _, ex := range plan.Excluded {
		unreadable[ex.Path] = true
		logger.Warn("project file excluded from index",
			zap.String("path", ex.Path),
			zap.String("id", ex.ID),
			zap.String("reason", ex.Reason))
	}
	for _, d := range report.Duplicates {
		logger.Warn("project id found in several files",
			zap.String("id", d.ID),
			zap.Strings("paths", d.Paths),
			zap.String("using", d.Paths[0]))
	}

	docs := make(map[string]projectstore.Document, len(plan.Entries))
	owners := make(map[string]string, len(plan.Entries))
	for _, e := range plan.Entries {
		docs[e.Path] = e.Doc
		owners[e.Path] = e.ID
	}
	ix := plan.Index

	for _, res := range plan.Results {
		if !res.IsClassified() {
			report.Skipped = append(report.Skipped, Skip{
				ID:     res.SourceID(),
				Type:   res.SourceType(),
				Reason: res.Reason(),
			})
			logger.Debug("citation skipped",
				zap.String("id", res.SourceID()),
				zap.String("type", res.SourceType()),
				zap.String("reason", string(res.Reason())))
			continue
		}

		rec := res.Record
		if rec.DOI == "" && opts.PDFDir != "" {
			rec.DOI = doiFromPDF(opts.PDFDir, rec.ID, findDOI, logger)
		}

		change := Change{ID: rec.ID, Category: rec.Category, Title: rec.Title}
		var doc projectstore.Document

		if path, ok := ix.Lookup(rec.ID); ok {
			doc = projectstore.Merge(docs[path], rec)
			change.Action = ActionUpdate
			change.Path = path
			report.Updated++
		} else {
			path := filepath.Join(opts.ProjectsDir, projectstore.FileName(rec.ID))
			if owner := owners[path]; owner != "" {
				// Another id already lives under this name.
				report.Skipped = append(report.Skipped, Skip{
					ID:     rec.ID,
					Type:   res.SourceType(),
					Reason: publication.SkipNameCollision,
				})
				logger.Warn("project file name taken by another id",
					zap.String("path", path),
					zap.String("id", rec.ID),
					zap.String("owner_id", owner))
				continue
			}
			if unreadable[path] {
				logger.Warn("overwriting unreadable project file", zap.String("path", path), zap.String("id", rec.ID))
			}
			doc = projectstore.New(rec)
			ix.Add(rec.ID, path)
			owners[path] = rec.ID
			change.Action = ActionCreate
			change.Path = path
			report.Created++
		}

		docs[change.Path] = doc
		if !opts.DryRun {
			if err := projectstore.Write(change.Path, doc); err != nil {
				return report, err
			}
		}
		report.Changes = append(report.Changes, change)
		logger.Debug("project file synced",
			zap.String("id", rec.ID),
			zap.String("action", string(change.Action)),
			zap.String("path", change.Path))
	}

	return report, nil
}

// doiFromPDF looks for <dir>/<id>.pdf and returns the DOI printed in it.
func doiFromPDF(dir, id string, find func(string) (string, error), logger *zap.Logger) string {
	name := strings.TrimSuffix(projectstore.FileName(id), projectstore.Ext) + ".pdf"
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("cannot stat pdf", zap.String("path", path), zap.Error(err))
		}
		return ""
	}

	doi, err := find(path)
	if err != nil {
		logger.Warn("doi extraction failed", zap.String("path", path), zap.Error(err))
		return ""
	}
	if doi != "" {
		logger.Debug("doi filled from pdf", zap.String("id", id), zap.String("doi", doi))
	}
	return doi
}
