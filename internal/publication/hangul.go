package publication

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Region markers used by Korean venue names.
const (
	domesticMarker      = "국내"
	internationalMarker = "국제"
)

// HasHangul reports whether s contains a precomposed Hangul syllable
// (U+AC00 through U+D7A3). Input is NFC-normalized first, so exports that
// store names as decomposed jamo still match.
func HasHangul(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range norm.NFC.String(s) {
		if r >= 0xAC00 && r <= 0xD7A3 {
			return true
		}
	}
	return false
}

func containsMarker(marker string, texts ...string) bool {
	for _, t := range texts {
		if strings.Contains(norm.NFC.String(t), marker) {
			return true
		}
	}
	return false
}
