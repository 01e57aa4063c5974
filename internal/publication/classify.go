package publication

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/folio-tools/pubsync/internal/csl"
)

// Normalize classifies a citation item and derives its record. Items of a
// type the site does not list, or without an id, come back skipped.
func Normalize(it csl.Item) Result {
	kind, ok := KindOf(it.Type)
	if !ok {
		return Skipped(it.ID, it.Type, SkipTypeUnrecognized)
	}
	if it.ID == "" {
		return Skipped(it.ID, it.Type, SkipMissingID)
	}

	region := RegionOf(it.Title, it.ContainerTitle, it.EventTitle)

	return Classified(Record{
		ID:       it.ID,
		Category: NewCategory(region, kind),
		Title:    it.Title,
		Year:     YearOf(it.Issued.DateParts),
		Venue:    venueOf(it),
		Author:   FormatAuthors(it.Author),
		DOI:      it.DOI,
		URL:      it.URL,
		Abstract: it.Abstract,
	})
}

// KindOf maps a CSL type to a publication kind.
func KindOf(itemType string) (Kind, bool) {
	switch itemType {
	case "article-journal", "article":
		return Journal, true
	case "paper-conference", "conference":
		return Conference, true
	default:
		return "", false
	}
}

// RegionOf decides whether a venue is domestic or international.
//
// Explicit markers in the container or event title win. Otherwise any Hangul
// in the title, container title, or event title means domestic. Venues
// written in other non-Latin scripts fall through to international.
func RegionOf(title, containerTitle, eventTitle string) Region {
	switch {
	case containsMarker(domesticMarker, containerTitle, eventTitle):
		return Domestic
	case containsMarker(internationalMarker, containerTitle, eventTitle):
		return International
	}
	for _, t := range []string{title, containerTitle, eventTitle} {
		if HasHangul(t) {
			return Domestic
		}
	}
	return International
}

// YearOf reads date-parts[0][0] as a year. Anything unexpected yields 0.
func YearOf(dateParts json.RawMessage) int {
	if len(dateParts) == 0 {
		return 0
	}

	var parts []json.RawMessage
	if err := json.Unmarshal(dateParts, &parts); err != nil || len(parts) == 0 {
		return 0
	}
	var first []json.RawMessage
	if err := json.Unmarshal(parts[0], &first); err != nil || len(first) == 0 {
		return 0
	}
	return coerceYear(first[0])
}

func coerceYear(raw json.RawMessage) int {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		i, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0
		}
		return clampYear(float64(i))
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil || n == "" {
		return 0
	}
	if i, err := n.Int64(); err == nil {
		return clampYear(float64(i))
	}
	if f, err := n.Float64(); err == nil {
		return clampYear(math.Trunc(f))
	}
	return 0
}

func clampYear(v float64) int {
	if v < 0 || v > math.MaxInt32 {
		return 0
	}
	return int(v)
}

func venueOf(it csl.Item) string {
	switch {
	case it.ContainerTitle != "":
		return it.ContainerTitle
	case it.EventTitle != "":
		return it.EventTitle
	case it.HasPublisher:
		return it.Publisher
	default:
		return ""
	}
}
