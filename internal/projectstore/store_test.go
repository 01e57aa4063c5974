package projectstore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/folio-tools/pubsync/internal/publication"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFileName(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"X1", "X1.json"},
		{"a/b", "a_b.json"},
		{`a\b/c`, "a_b_c.json"},
		{"doi:10.1/x y", "doi:10.1_x y.json"},
	}

	for _, tt := range tests {
		if got := FileName(tt.id); got != tt.want {
			t.Errorf("FileName(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestEncode_Stable(t *testing.T) {
	doc := Document{
		"title": "A <b> & 국내",
		"id":    "X1",
		"year":  2024,
	}
	got, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	want := "{\n    \"id\": \"X1\",\n    \"title\": \"A <b> & 국내\",\n    \"year\": 2024\n}\n"
	if string(got) != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}
}

func TestReadWrite_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "projects")
	path := filepath.Join(dir, "X1.json")
	original := `{"id": "X1", "year": 2024, "rating": 4.50, "media": {"video": "a.webm"}}`

	doc, err := Decode([]byte(original))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if err := Write(path, doc); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	back, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if !Equal(doc, back) {
		t.Errorf("Read() after Write() = %v, want %v", back, doc)
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), `"rating": 4.50`) {
		t.Errorf("written file lost number formatting: %s", data)
	}
}

func TestDecode_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"array", `[{"id": "X1"}]`},
		{"null", `null`},
		{"truncated", `{"id": "X1", "title": "Tr`},
		{"trailing", `{"id": "X1"} {"id": "X2"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode([]byte(tt.data)); err == nil {
				t.Errorf("Decode(%s) expected error", tt.data)
			}
		})
	}
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "MS_SeeGround.json", `{"id": "jeon2026enhancing", "title": "SeeGround"}`)
	writeFile(t, dir, "broken.json", `{"id": "broken"`)
	writeFile(t, dir, "no_id.json", `{"title": "Orphan curation"}`)
	writeFile(t, dir, "notes.txt", `not a project`)
	if err := os.Mkdir(filepath.Join(dir, "nested.json"), 0755); err != nil {
		t.Fatal(err)
	}

	entries, excluded, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Scan() entries = %d, want 1", len(entries))
	}
	if entries[0].ID != "jeon2026enhancing" {
		t.Errorf("entries[0].ID = %v, want jeon2026enhancing", entries[0].ID)
	}
	if len(excluded) != 2 {
		t.Fatalf("Scan() excluded = %+v, want 2 files", excluded)
	}
	if filepath.Base(excluded[0].Path) != "broken.json" || filepath.Base(excluded[1].Path) != "no_id.json" {
		t.Errorf("excluded = %+v, want broken.json then no_id.json", excluded)
	}
	if excluded[0].ID != "broken" || excluded[1].ID != "" {
		t.Errorf("excluded ids = %q, %q, want broken and none", excluded[0].ID, excluded[1].ID)
	}
}

func TestPeekID(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"truncated after id", `{"id": "X9", "title": `, "X9"},
		{"id after other keys", `{"title": {"a": [1, 2]}, "id": "X2", "year": }`, "X2"},
		{"numeric id", `{"id": 42,`, "42"},
		{"id is object", `{"id": {"x": 1}`, ""},
		{"broken before id", `{"title": tru, "id": "X3"}`, ""},
		{"not an object", `["X1"]`, ""},
		{"empty", ``, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := peekID([]byte(tt.data)); got != tt.want {
				t.Errorf("peekID(%q) = %q, want %q", tt.data, got, tt.want)
			}
		})
	}
}

func TestScan_MissingDir(t *testing.T) {
	entries, excluded, err := Scan(filepath.Join(t.TempDir(), "absent"))
	if err != nil || entries != nil || excluded != nil {
		t.Errorf("Scan(missing) = (%v, %v, %v), want empty", entries, excluded, err)
	}
}

func TestIndex_Duplicates(t *testing.T) {
	ix := NewIndex([]Entry{
		{Path: "a.json", ID: "X1"},
		{Path: "b.json", ID: "X2"},
		{Path: "c.json", ID: "X1"},
	})

	if p, ok := ix.Lookup("X1"); !ok || p != "a.json" {
		t.Errorf("Lookup(X1) = (%v, %v), want a.json", p, ok)
	}
	if ix.Len() != 2 {
		t.Errorf("Len() = %d, want 2", ix.Len())
	}
	dups := ix.Duplicates()
	if len(dups) != 1 || dups[0].ID != "X1" || len(dups[0].Paths) != 2 {
		t.Errorf("Duplicates() = %+v, want X1 in a.json and c.json", dups)
	}

	ix.Add("X3", "X3.json")
	if _, ok := ix.Lookup("X3"); !ok {
		t.Error("Lookup(X3) after Add() not found")
	}
}

func TestMerge(t *testing.T) {
	existing, err := Decode([]byte(`{"id": "X1", "title": "Old", "notes": "keep me", "doi": "10.1/old", "year": 2020}`))
	if err != nil {
		t.Fatal(err)
	}
	rec := publication.Record{
		ID:       "X1",
		Category: publication.DomesticJournal,
		Title:    "New",
		Year:     2021,
		Venue:    "국내 학술지",
		Author:   "전현식",
	}

	merged := Merge(existing, rec)

	if merged["title"] != "New" {
		t.Errorf("title = %v, want New", merged["title"])
	}
	if merged["notes"] != "keep me" {
		t.Errorf("notes = %v, want keep me", merged["notes"])
	}
	if _, ok := merged["doi"]; ok {
		t.Errorf("doi = %v, want removed when source has none", merged["doi"])
	}
	if merged["category"] != "domestic-journal" {
		t.Errorf("category = %v, want domestic-journal", merged["category"])
	}
	if _, ok := merged["abstract"]; ok {
		t.Error("abstract added although the record has none")
	}
	if existing["title"] != "Old" || existing["doi"] != "10.1/old" {
		t.Error("Merge() modified its input")
	}
}

func TestMerge_AbstractOnce(t *testing.T) {
	rec := publication.Record{ID: "X1", Category: publication.InternationalJournal, Abstract: "From source"}

	tests := []struct {
		name     string
		existing string
		want     string
	}{
		{"kept when present", `{"id": "X1", "abstract": "Curated"}`, "Curated"},
		{"added when absent", `{"id": "X1"}`, "From source"},
		{"added when empty", `{"id": "X1", "abstract": ""}`, "From source"},
		{"added when null", `{"id": "X1", "abstract": null}`, "From source"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Decode([]byte(tt.existing))
			if err != nil {
				t.Fatal(err)
			}
			if got := Merge(doc, rec)["abstract"]; got != tt.want {
				t.Errorf("abstract = %v, want %v", got, tt.want)
			}
		})
	}
}
