package publication

import (
	"strings"

	"github.com/folio-tools/pubsync/internal/csl"
)

// FormatAuthors renders the author field as one string.
//
// A string value passes through unchanged. For a list, each person becomes
// their literal name if present, otherwise family and given name: Korean
// names are written family+given with no separator, other names as
// "Family, Given". People without any name part are left out.
func FormatAuthors(a csl.Authors) string {
	if a.IsText() {
		return *a.Text
	}

	var names []string
	for _, p := range a.People {
		if name, ok := formatName(p); ok {
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}

func formatName(p csl.Name) (string, bool) {
	if p.Literal != nil {
		return *p.Literal, true
	}
	if p.Family == nil && p.Given == nil {
		return "", false
	}

	family := deref(p.Family)
	given := deref(p.Given)
	if HasHangul(family) || HasHangul(given) {
		return strings.TrimSpace(family + given), true
	}

	var parts []string
	if family != "" {
		parts = append(parts, family)
	}
	if given != "" {
		parts = append(parts, given)
	}
	return strings.Join(parts, ", "), true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
