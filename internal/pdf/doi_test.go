package pdf

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindDOI(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain", "DOI: 10.1109/ICCAS.2023.10316785 Received", "10.1109/ICCAS.2023.10316785"},
		{"trailing punctuation", "see (doi 10.23919/ICCAS52745.2021.9649.).", "10.23919/ICCAS52745.2021.9649"},
		{"url form", "https://doi.org/10.5626/KTCP.2022.28.1", "10.5626/KTCP.2022.28.1"},
		{"first of several", "10.1000/first and 10.1000/second", "10.1000/first"},
		{"too few registrant digits", "10.12/abc", ""},
		{"none", "Proceedings of the Korean Society", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindDOI(tt.text); got != tt.want {
				t.Errorf("FindDOI(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractDOI_NotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paper.pdf")
	if err := os.WriteFile(path, []byte("plain text"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ExtractDOI(path); err == nil {
		t.Error("ExtractDOI() expected error for a non-PDF file")
	}
}
