package projectstore

import (
	"bytes"

	"github.com/folio-tools/pubsync/internal/publication"
)

// Merge applies a record to an existing document and returns the result.
// Sync-owned fields follow the record: values it carries overwrite the
// document and optional ones it lacks (doi, URL) are removed. Abstract is
// added only when the document has none, and every other field is kept as
// is. The input document is not modified.
func Merge(existing Document, rec publication.Record) Document {
	out := existing.Clone()
	fields := rec.Fields()

	for _, key := range publication.SyncOwnedFields {
		if v, ok := fields[key]; ok {
			out[key] = v
		} else {
			delete(out, key)
		}
	}

	if abstract, ok := fields[publication.FieldAbstract]; ok && !hasAbstract(existing) {
		out[publication.FieldAbstract] = abstract
	}
	return out
}

// New returns the document for a record seen for the first time.
func New(rec publication.Record) Document {
	return Document(rec.Fields())
}

func hasAbstract(doc Document) bool {
	switch v := doc[publication.FieldAbstract].(type) {
	case nil:
		return false
	case string:
		return v != ""
	default:
		return true
	}
}

// Equal reports whether two documents encode to the same bytes.
func Equal(a, b Document) bool {
	ea, errA := Encode(a)
	eb, errB := Encode(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(ea, eb)
}
