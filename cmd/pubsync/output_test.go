package main

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/folio-tools/pubsync/internal/bibsync"
	"github.com/folio-tools/pubsync/internal/csl"
	"github.com/folio-tools/pubsync/internal/publication"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"source missing", fmt.Errorf("loading: %w", csl.ErrDataUnavailable), ExitSuccess},
		{"malformed", fmt.Errorf("%w: unexpected EOF", csl.ErrMalformedInput), ExitDataError},
		{"write failure", errors.New("permission denied"), ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"a longer title here", 10, "a longe..."},
		{"자율주행 차량의 차선 검출", 8, "자율주행 ..."},
	}

	for _, tt := range tests {
		if got := truncateString(tt.input, tt.maxLen); got != tt.want {
			t.Errorf("truncateString(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}

func TestTableSpecRender(t *testing.T) {
	out := tableSpec{
		title:   "Dry run: no files written",
		headers: []string{"Action", "ID"},
		rows:    [][]string{{"create", "X1"}, {"update", "국내-1"}},
		right:   map[int]bool{1: true},
	}.render()
	for _, want := range []string{"Dry run: no files written", "create", "X1", "국내-1"} {
		if !strings.Contains(out, want) {
			t.Errorf("render() missing %q:\n%s", want, out)
		}
	}
	if got := (tableSpec{}).render(); got != "" {
		t.Errorf("render(no headers) = %q, want empty", got)
	}
}

func TestSkipCounts(t *testing.T) {
	rows := skipCounts([]bibsync.Skip{
		{ID: "B1", Reason: publication.SkipTypeUnrecognized},
		{ID: "a_b", Reason: publication.SkipNameCollision},
		{ID: "T1", Reason: publication.SkipTypeUnrecognized},
	})
	want := [][]string{{"type_unrecognized", "2"}, {"name_collision", "1"}}
	if len(rows) != len(want) {
		t.Fatalf("skipCounts() = %v, want %v", rows, want)
	}
	for i := range want {
		if rows[i][0] != want[i][0] || rows[i][1] != want[i][1] {
			t.Errorf("rows[%d] = %v, want %v", i, rows[i], want[i])
		}
	}
}
