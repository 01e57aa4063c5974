// Package catalog provides an ephemeral SQLite view over project files for
// listing and exporting publications.
package catalog

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"github.com/folio-tools/pubsync/internal/projectstore"
	"github.com/folio-tools/pubsync/internal/publication"
)

// Catalog wraps an in-memory SQLite database.
type Catalog struct {
	db *sql.DB
}

// Publication is one catalog row.
type Publication struct {
	ID       string          `json:"id"`
	Path     string          `json:"path"`
	Category string          `json:"category"`
	Year     int             `json:"year"`
	Title    string          `json:"title"`
	Venue    string          `json:"venue"`
	Author   string          `json:"author"`
	DOI      string          `json:"doi,omitempty"`
	Doc      json.RawMessage `json:"-"`
}

// Filter narrows List results. Zero values match everything.
type Filter struct {
	Category string
	Year     int
	Query    string // substring of title, venue, or author
	Limit    int

	// PublicationsOnly drops documents outside the publication categories,
	// such as engineering projects kept in the same directory.
	PublicationsOnly bool
}

var selectFields = []string{"id", "path", "category", "year", "title", "venue", "author", "doi", "doc_json"}

// Open creates an empty in-memory catalog.
func Open() (*Catalog, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}

	// Each connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Catalog{db: db}, nil
}

// Close closes the database connection.
func (c *Catalog) Close() error {
	return c.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS publications (
			id TEXT PRIMARY KEY,
			path TEXT NOT NULL,
			category TEXT NOT NULL,
			year INTEGER NOT NULL,
			title TEXT NOT NULL,
			venue TEXT NOT NULL,
			author TEXT NOT NULL,
			doi TEXT NOT NULL,
			doc_json TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_publications_category ON publications(category);
		CREATE INDEX IF NOT EXISTS idx_publications_year ON publications(year);
	`
	_, err := db.Exec(schema)
	return err
}

// Load inserts scanned project files. When several files share an id the
// first one is kept, matching the sync index. Returns the number of rows.
func (c *Catalog) Load(entries []projectstore.Entry) (int, error) {
	tx, err := c.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO publications (` + strings.Join(selectFields, ", ") + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	n := 0
	for _, e := range entries {
		docJSON, err := projectstore.Encode(e.Doc)
		if err != nil {
			return 0, fmt.Errorf("encoding %s: %w", e.ID, err)
		}
		res, err := stmt.Exec(
			e.ID, e.Path,
			stringField(e.Doc, publication.FieldCategory),
			yearField(e.Doc),
			stringField(e.Doc, publication.FieldTitle),
			stringField(e.Doc, publication.FieldVenue),
			stringField(e.Doc, publication.FieldAuthor),
			stringField(e.Doc, publication.FieldDOI),
			string(docJSON),
		)
		if err != nil {
			return 0, fmt.Errorf("inserting %s: %w", e.ID, err)
		}
		if affected, _ := res.RowsAffected(); affected > 0 {
			n++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing: %w", err)
	}
	return n, nil
}

// List returns publications matching f, newest first, then by id.
func (c *Catalog) List(f Filter) ([]Publication, error) {
	q := sq.Select(selectFields...).From("publications")
	if f.Category != "" {
		q = q.Where(sq.Eq{"category": f.Category})
	}
	if f.Year > 0 {
		q = q.Where(sq.Eq{"year": f.Year})
	}
	if f.PublicationsOnly {
		q = q.Where(sq.Eq{"category": publicationCategories()})
	}
	if f.Query != "" {
		like := "%" + f.Query + "%"
		q = q.Where(sq.Or{
			sq.Like{"title": like},
			sq.Like{"venue": like},
			sq.Like{"author": like},
		})
	}
	q = q.OrderBy("year DESC", "id")
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}

	rows, err := q.RunWith(c.db).Query()
	if err != nil {
		return nil, fmt.Errorf("querying publications: %w", err)
	}
	defer rows.Close()

	pubs := []Publication{}
	for rows.Next() {
		var p Publication
		var doc string
		if err := rows.Scan(&p.ID, &p.Path, &p.Category, &p.Year, &p.Title, &p.Venue, &p.Author, &p.DOI, &doc); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		p.Doc = json.RawMessage(doc)
		pubs = append(pubs, p)
	}
	return pubs, rows.Err()
}

// CategoryCount is the number of publications in one category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// CountByCategory returns per-category totals ordered by category.
func (c *Catalog) CountByCategory() ([]CategoryCount, error) {
	rows, err := sq.Select("category", "COUNT(*)").
		From("publications").
		GroupBy("category").
		OrderBy("category").
		RunWith(c.db).
		Query()
	if err != nil {
		return nil, fmt.Errorf("counting publications: %w", err)
	}
	defer rows.Close()

	counts := []CategoryCount{}
	for rows.Next() {
		var cc CategoryCount
		if err := rows.Scan(&cc.Category, &cc.Count); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		counts = append(counts, cc)
	}
	return counts, rows.Err()
}

func publicationCategories() []string {
	out := make([]string, len(publication.Categories))
	for i, c := range publication.Categories {
		out[i] = string(c)
	}
	return out
}

func stringField(doc projectstore.Document, key string) string {
	switch v := doc[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

func yearField(doc projectstore.Document) int {
	switch v := doc[publication.FieldYear].(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i)
		}
		if f, err := v.Float64(); err == nil {
			return int(f)
		}
	case string:
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}
