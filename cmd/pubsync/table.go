package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// tableSpec describes one table of --human output.
type tableSpec struct {
	title   string
	headers []string
	rows    [][]string
	right   map[int]bool // zero-based columns aligned right, e.g. counts
}

// render draws the table with rounded borders. Wide (Hangul) characters
// are measured by go-pretty, so columns stay aligned.
func (s tableSpec) render() string {
	if len(s.headers) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Title.Align = text.AlignLeft
	if s.title != "" {
		tw.SetTitle(s.title)
	}

	tw.AppendHeader(toRow(s.headers))
	for _, r := range s.rows {
		tw.AppendRow(toRow(r))
	}

	configs := make([]table.ColumnConfig, 0, len(s.headers))
	for i := range s.headers {
		align := text.AlignLeft
		if s.right[i] {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func toRow(cells []string) table.Row {
	r := make(table.Row, len(cells))
	for i, c := range cells {
		r[i] = c
	}
	return r
}
