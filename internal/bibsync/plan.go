// Package bibsync merges a citation-library export into the portfolio's
// project files.
package bibsync

import (
	"fmt"

	"github.com/folio-tools/pubsync/internal/csl"
	"github.com/folio-tools/pubsync/internal/projectstore"
	"github.com/folio-tools/pubsync/internal/publication"
)

// Plan is the loaded state a sync or check works from.
type Plan struct {
	Results  []publication.Result
	Entries  []projectstore.Entry
	Excluded []projectstore.Excluded
	Index    *projectstore.Index
}

// Prepare loads the export, normalizes every item, and scans the project
// directory. Errors from loading the export wrap csl.ErrDataUnavailable or
// csl.ErrMalformedInput.
func Prepare(sourcePath, projectsDir string) (*Plan, error) {
	items, err := csl.Load(sourcePath)
	if err != nil {
		return nil, err
	}

	entries, excluded, err := projectstore.Scan(projectsDir)
	if err != nil {
		return nil, fmt.Errorf("scanning project files: %w", err)
	}

	results := make([]publication.Result, len(items))
	for i, it := range items {
		results[i] = publication.Normalize(it)
	}

	return &Plan{
		Results:  results,
		Entries:  entries,
		Excluded: excluded,
		Index:    projectstore.NewIndex(entries),
	}, nil
}

// Classified returns the records of the plan, in source order.
func (p *Plan) Classified() []publication.Record {
	var recs []publication.Record
	for _, r := range p.Results {
		if r.IsClassified() {
			recs = append(recs, r.Record)
		}
	}
	return recs
}
