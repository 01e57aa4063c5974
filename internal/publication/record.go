// Package publication derives the portfolio's publication records from
// citation-library items.
package publication

// Kind is the publication type the site distinguishes.
type Kind string

const (
	Journal    Kind = "journal"
	Conference Kind = "conference"
)

// Region separates in-country venues from international ones.
type Region string

const (
	Domestic      Region = "domestic"
	International Region = "international"
)

// Category is "{region}-{kind}". It is always derived, never read from input.
type Category string

const (
	DomesticJournal         Category = "domestic-journal"
	DomesticConference      Category = "domestic-conference"
	InternationalJournal    Category = "international-journal"
	InternationalConference Category = "international-conference"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	DomesticJournal,
	DomesticConference,
	InternationalJournal,
	InternationalConference,
}

// NewCategory combines a region and a kind.
func NewCategory(r Region, k Kind) Category {
	return Category(string(r) + "-" + string(k))
}

// Valid reports whether c is one of the four known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// JSON field names of a project file.
const (
	FieldID       = "id"
	FieldCategory = "category"
	FieldTitle    = "title"
	FieldYear     = "year"
	FieldVenue    = "venue"
	FieldAuthor   = "author"
	FieldDOI      = "doi"
	FieldURL      = "URL"
	FieldAbstract = "abstract"
)

// SyncOwnedFields are overwritten from the source on every sync.
// Every other field of an existing project file belongs to manual curation,
// except abstract, which sync fills in once when it is missing.
var SyncOwnedFields = []string{
	FieldTitle,
	FieldYear,
	FieldVenue,
	FieldCategory,
	FieldDOI,
	FieldURL,
	FieldAuthor,
}

// Record is the normalized form of one publication.
type Record struct {
	ID       string
	Category Category
	Title    string
	Year     int
	Venue    string
	Author   string
	DOI      string // optional
	URL      string // optional
	Abstract string // optional
}

// Fields returns the record as a project file document. Optional fields are
// included only when set.
func (r Record) Fields() map[string]any {
	doc := map[string]any{
		FieldID:       r.ID,
		FieldCategory: string(r.Category),
		FieldTitle:    r.Title,
		FieldYear:     r.Year,
		FieldVenue:    r.Venue,
		FieldAuthor:   r.Author,
	}
	if r.DOI != "" {
		doc[FieldDOI] = r.DOI
	}
	if r.URL != "" {
		doc[FieldURL] = r.URL
	}
	if r.Abstract != "" {
		doc[FieldAbstract] = r.Abstract
	}
	return doc
}
