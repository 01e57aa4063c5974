// Package check verifies that the project files agree with the citation
// library they were synced from.
package check

import (
	"path/filepath"
	"sort"

	"github.com/folio-tools/pubsync/internal/bibsync"
	"github.com/folio-tools/pubsync/internal/projectstore"
)

// Issue types.
const (
	IssueMissing     = "missing"      // classified id without a project file
	IssueDuplicateID = "duplicate_id" // id held by several files
	IssueUnreadable  = "unreadable"   // file excluded from the index
	IssueStale       = "stale"        // sync-owned fields differ from the library
	IssueOrphan      = "orphan"       // project id absent from the library
)

// Issue is one finding.
type Issue struct {
	Type   string   `json:"type"`
	ID     string   `json:"id,omitempty"`
	Path   string   `json:"path,omitempty"`
	Paths  []string `json:"paths,omitempty"`
	Fields []string `json:"fields,omitempty"`
	Reason string   `json:"reason,omitempty"`
}

// Report is the result of Verify.
type Report struct {
	Status   string  `json:"status"`
	Records  int     `json:"records"`
	Projects int     `json:"projects"`
	Issues   []Issue `json:"issues"`
}

// HasProblems reports whether any issue other than an orphan was found.
// Orphans are expected: sync never deletes.
func (r *Report) HasProblems() bool {
	for _, is := range r.Issues {
		if is.Type != IssueOrphan {
			return true
		}
	}
	return false
}

// Verify compares the library at sourcePath with the project files in
// projectsDir without writing anything.
func Verify(sourcePath, projectsDir string) (*Report, error) {
	plan, err := bibsync.Prepare(sourcePath, projectsDir)
	if err != nil {
		return nil, err
	}

	docs := make(map[string]projectstore.Document, len(plan.Entries))
	for _, e := range plan.Entries {
		docs[e.Path] = e.Doc
	}

	var issues []Issue
	for _, d := range plan.Index.Duplicates() {
		issues = append(issues, Issue{Type: IssueDuplicateID, ID: d.ID, Paths: d.Paths})
	}
	for _, ex := range plan.Excluded {
		issues = append(issues, Issue{Type: IssueUnreadable, ID: ex.ID, Path: ex.Path, Reason: ex.Reason})
	}

	records := plan.Classified()
	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		seen[rec.ID] = true
		path, ok := plan.Index.Lookup(rec.ID)
		if !ok {
			issues = append(issues, Issue{
				Type: IssueMissing,
				ID:   rec.ID,
				Path: filepath.Join(projectsDir, projectstore.FileName(rec.ID)),
			})
			continue
		}
		existing := docs[path]
		merged := projectstore.Merge(existing, rec)
		if fields := changedFields(existing, merged); len(fields) > 0 {
			issues = append(issues, Issue{Type: IssueStale, ID: rec.ID, Path: path, Fields: fields})
		}
	}

	for _, e := range plan.Entries {
		if !seen[e.ID] {
			issues = append(issues, Issue{Type: IssueOrphan, ID: e.ID, Path: e.Path})
		}
	}

	report := &Report{
		Status:   "ok",
		Records:  len(records),
		Projects: len(plan.Entries),
		Issues:   issues,
	}
	if report.Issues == nil {
		report.Issues = []Issue{}
	}
	if report.HasProblems() {
		report.Status = "issues"
	}
	return report, nil
}

// changedFields lists keys added, removed or changed between two documents.
func changedFields(before, after projectstore.Document) []string {
	var fields []string
	for k, v := range after {
		old, ok := before[k]
		if !ok || !projectstore.Equal(projectstore.Document{k: old}, projectstore.Document{k: v}) {
			fields = append(fields, k)
		}
	}
	for k := range before {
		if _, ok := after[k]; !ok {
			fields = append(fields, k)
		}
	}
	sort.Strings(fields)
	return fields
}
