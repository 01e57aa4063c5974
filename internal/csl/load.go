package csl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

var (
	// ErrDataUnavailable means the export file does not exist. Callers skip the
	// run rather than fail.
	ErrDataUnavailable = errors.New("source data unavailable")

	// ErrMalformedInput means the export exists but is not a JSON array of records.
	ErrMalformedInput = errors.New("malformed source data")
)

// Load reads and parses a CSL-JSON export file.
func Load(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDataUnavailable, path)
		}
		return nil, fmt.Errorf("reading source: %w", err)
	}
	return Parse(data)
}

// Parse decodes the contents of a CSL-JSON export.
func Parse(data []byte) ([]Item, error) {
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return items, nil
}
