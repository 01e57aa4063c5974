package publication

// SkipReason explains why an item produced no record.
type SkipReason string

const (
	// SkipTypeUnrecognized covers book chapters, theses, and every other type
	// the site does not list. It is expected and frequent.
	SkipTypeUnrecognized SkipReason = "type_unrecognized"
	SkipMissingID        SkipReason = "missing_id"
	// SkipNameCollision is set by sync when the file name derived from the
	// id belongs to a project file of a different id.
	SkipNameCollision SkipReason = "name_collision"
)

// Result is either a classified record or a skip with its reason.
type Result struct {
	Record Record

	skipped    bool
	reason     SkipReason
	sourceID   string
	sourceType string
}

// Classified wraps a normalized record.
func Classified(r Record) Result {
	return Result{Record: r, sourceID: r.ID}
}

// Skipped records that the item with the given id and type was dropped.
func Skipped(id, itemType string, reason SkipReason) Result {
	return Result{skipped: true, reason: reason, sourceID: id, sourceType: itemType}
}

// IsClassified reports whether the result carries a record.
func (r Result) IsClassified() bool { return !r.skipped }

// Reason is empty for classified results.
func (r Result) Reason() SkipReason { return r.reason }

// SourceID is the id of the source item.
func (r Result) SourceID() string { return r.sourceID }

// SourceType is the citation type of a skipped item.
func (r Result) SourceType() string { return r.sourceType }
