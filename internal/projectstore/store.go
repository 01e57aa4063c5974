// Package projectstore reads and writes the per-item project files the
// portfolio site renders. Each file is one JSON object with an "id" field.
package projectstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Ext is the extension of project files.
const Ext = ".json"

// Document is the decoded content of a project file. Numbers are kept as
// json.Number so curated values round-trip unchanged.
type Document map[string]any

// ID returns the document's id field.
func (d Document) ID() (string, bool) {
	switch v := d["id"].(type) {
	case string:
		return v, v != ""
	case json.Number:
		return v.String(), true
	default:
		return "", false
	}
}

// Clone returns a shallow copy of the document.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

var idReplacer = strings.NewReplacer("/", "_", `\`, "_")

// FileName returns the file name for an id: path separators become
// underscores and nothing else is escaped.
func FileName(id string) string {
	return idReplacer.Replace(id) + Ext
}

// Read loads a project file. The file must hold a JSON object.
func Read(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project file: %w", err)
	}
	return Decode(data)
}

// Decode parses project file content.
func Decode(data []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing project file: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("parsing project file: not a JSON object")
	}
	if dec.More() {
		return nil, fmt.Errorf("parsing project file: trailing data after object")
	}
	return doc, nil
}

// Encode renders a document the way project files are stored: four-space
// indent, sorted keys, unescaped non-ASCII and HTML characters, trailing newline.
// The same document always encodes to the same bytes.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encoding project file: %w", err)
	}
	return buf.Bytes(), nil
}

// Write stores a document, creating the parent directory if needed.
// The write is not atomic.
func Write(path string, doc Document) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating project directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing project file: %w", err)
	}
	return nil
}
