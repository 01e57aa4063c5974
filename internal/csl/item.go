// Package csl reads citation-library exports in CSL-JSON form.
package csl

import (
	"encoding/json"
	"fmt"
)

// Item is one record of a CSL-JSON export. Only the fields the portfolio
// uses are kept; everything else in the export is ignored.
type Item struct {
	ID             string
	Type           string
	Title          string
	ContainerTitle string
	EventTitle     string
	Publisher      string
	DOI            string
	URL            string
	Abstract       string
	HasPublisher   bool
	Author         Authors
	Issued         Issued
}

// Issued holds the raw "issued" date of an item. DateParts is kept
// undecoded because exports disagree on its shape.
type Issued struct {
	DateParts json.RawMessage
}

// UnmarshalJSON decodes an item leniently: scalar fields accept strings or
// numbers and anything else is treated as absent. Only a non-object value
// is an error.
func (it *Item) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("citation record is not an object: %w", err)
	}
	if fields == nil {
		return fmt.Errorf("citation record is null")
	}

	*it = Item{}
	it.ID, _ = text(fields["id"])
	it.Type, _ = text(fields["type"])
	it.Title, _ = text(fields["title"])
	it.ContainerTitle, _ = text(fields["container-title"])
	it.EventTitle, _ = text(fields["event-title"])
	it.Publisher, it.HasPublisher = text(fields["publisher"])
	it.DOI, _ = text(fields["DOI"])
	it.URL, _ = text(fields["URL"])
	it.Abstract, _ = text(fields["abstract"])

	if raw, ok := fields["author"]; ok {
		// A malformed author value degrades to "no authors".
		_ = json.Unmarshal(raw, &it.Author)
	}

	if raw, ok := fields["issued"]; ok {
		var issued map[string]json.RawMessage
		if err := json.Unmarshal(raw, &issued); err == nil {
			it.Issued.DateParts = issued["date-parts"]
		}
	}

	return nil
}

// Authors is the "author" field, which exports give either as a single
// preformatted string or as a list of names.
type Authors struct {
	Text   *string
	People []Name
}

// IsText reports whether the source gave the authors as one string.
func (a Authors) IsText() bool {
	return a.Text != nil
}

func (a *Authors) UnmarshalJSON(data []byte) error {
	*a = Authors{}
	if string(data) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		a.Text = &s
		return nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil
	}
	a.People = make([]Name, 0, len(entries))
	for _, raw := range entries {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
			a.People = append(a.People, Name{})
			continue
		}
		a.People = append(a.People, Name{
			Literal: optional(fields["literal"]),
			Family:  optional(fields["family"]),
			Given:   optional(fields["given"]),
		})
	}
	return nil
}

// Name is one person entry. A nil field means the key was absent.
type Name struct {
	Literal *string
	Family  *string
	Given   *string
}

func optional(raw json.RawMessage) *string {
	s, ok := text(raw)
	if !ok {
		return nil
	}
	return &s
}
