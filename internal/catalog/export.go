package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/folio-tools/pubsync/internal/projectstore"
)

// Export writes the full documents of every publication matching f to path
// as one JSON array, newest first. This is the list the site's publications
// page reads, so documents outside the publication categories are never
// written. Returns the number of documents written.
func (c *Catalog) Export(path string, f Filter) (int, error) {
	f.PublicationsOnly = true
	pubs, err := c.List(f)
	if err != nil {
		return 0, err
	}

	docs := make([]json.RawMessage, len(pubs))
	for i, p := range pubs {
		docs[i] = p.Doc
	}

	data, err := projectstore.Encode(docs)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, fmt.Errorf("creating export directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return 0, fmt.Errorf("writing export: %w", err)
	}
	return len(docs), nil
}
