package projectstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Entry is a readable project file.
type Entry struct {
	Path string
	ID   string
	Doc  Document
}

// Excluded is a project file left out of the index. ID is set when an id
// could be read before the file turned out to be malformed.
type Excluded struct {
	Path   string `json:"path"`
	ID     string `json:"id,omitempty"`
	Reason string `json:"reason"`
}

// Scan reads every project file directly under dir, in name order.
// Unreadable files and files without an id are returned as Excluded rather
// than failing the scan. A missing directory is an empty store.
func Scan(dir string) ([]Entry, []Excluded, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	var entries []Entry
	var excluded []Excluded
	for _, de := range dirEntries {
		if de.IsDir() || !strings.EqualFold(filepath.Ext(de.Name()), Ext) {
			continue
		}
		path := filepath.Join(dir, de.Name())

		data, err := os.ReadFile(path)
		if err != nil {
			excluded = append(excluded, Excluded{Path: path, Reason: err.Error()})
			continue
		}
		doc, err := Decode(data)
		if err != nil {
			excluded = append(excluded, Excluded{Path: path, ID: peekID(data), Reason: err.Error()})
			continue
		}
		id, ok := doc.ID()
		if !ok {
			excluded = append(excluded, Excluded{Path: path, Reason: "missing id field"})
			continue
		}
		entries = append(entries, Entry{Path: path, ID: id, Doc: doc})
	}
	return entries, excluded, nil
}

// Duplicate lists the files sharing one id. The first path is the one
// the index uses.
type Duplicate struct {
	ID    string   `json:"id"`
	Paths []string `json:"paths"`
}

// Index maps ids to project file paths.
type Index struct {
	paths map[string]string
	dups  map[string][]string
	order []string
}

// NewIndex builds an index from scanned entries. When several files share
// an id the first one wins and the rest are reported by Duplicates.
func NewIndex(entries []Entry) *Index {
	ix := &Index{
		paths: make(map[string]string, len(entries)),
		dups:  make(map[string][]string),
	}
	for _, e := range entries {
		if first, ok := ix.paths[e.ID]; ok {
			if len(ix.dups[e.ID]) == 0 {
				ix.dups[e.ID] = []string{first}
				ix.order = append(ix.order, e.ID)
			}
			ix.dups[e.ID] = append(ix.dups[e.ID], e.Path)
			continue
		}
		ix.paths[e.ID] = e.Path
	}
	return ix
}

// Lookup returns the path of the project file holding id.
func (ix *Index) Lookup(id string) (string, bool) {
	p, ok := ix.paths[id]
	return p, ok
}

// Add records a newly created file.
func (ix *Index) Add(id, path string) {
	ix.paths[id] = path
}

// Len returns the number of indexed ids.
func (ix *Index) Len() int {
	return len(ix.paths)
}

// IDs returns every indexed id.
func (ix *Index) IDs() []string {
	ids := make([]string, 0, len(ix.paths))
	for id := range ix.paths {
		ids = append(ids, id)
	}
	return ids
}

// Duplicates returns ids held by more than one file, in scan order.
func (ix *Index) Duplicates() []Duplicate {
	out := make([]Duplicate, 0, len(ix.order))
	for _, id := range ix.order {
		out = append(out, Duplicate{ID: id, Paths: ix.dups[id]})
	}
	return out
}

// peekID reads a top-level "id" from the start of possibly truncated or
// malformed JSON. It stops at the first error.
func peekID(data []byte) string {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return ""
	}
	for dec.More() {
		key, err := dec.Token()
		if err != nil {
			return ""
		}
		if key != "id" {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return ""
			}
			continue
		}
		tok, err := dec.Token()
		if err != nil {
			return ""
		}
		switch v := tok.(type) {
		case string:
			return v
		case json.Number:
			return v.String()
		default:
			return ""
		}
	}
	return ""
}
