package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
)

// renderTable renders rows under header as a light box table, or as a
// GitHub flavoured Markdown table.
func renderTable(header []string, rows [][]string, markdown bool) string {
	w := table.NewWriter()
	if !markdown {
		w.SetStyle(table.StyleLight)
	}

	head := make(table.Row, len(header))
	for i, col := range header {
		head[i] = col
	}
	w.AppendHeader(head)

	for _, values := range rows {
		row := make(table.Row, len(values))
		for i, value := range values {
			row[i] = value
		}
		w.AppendRow(row)
	}

	if markdown {
		return w.RenderMarkdown()
	}
	return w.Render()
}
