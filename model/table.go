package model

import (
	"bytes"

	"github.com/olekukonko/tablewriter"
)

// Table is the structured form of every report the assistant produces.
// Column names and order are part of the contract with downstream
// consumers; Markdown() is the rendering handed to LLM tool calls.
type Table struct {
	Columns []string
	Rows    [][]string
}

func (t *Table) Append(row ...string) {
	t.Rows = append(t.Rows, row)
}

// Markdown renders the table as a GitHub-style pipe table.
func (t *Table) Markdown() string {
	var buf bytes.Buffer

	w := tablewriter.NewWriter(&buf)
	w.SetHeader(t.Columns)
	w.SetAutoFormatHeaders(false)
	w.SetAutoWrapText(false)
	w.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	w.SetAlignment(tablewriter.ALIGN_LEFT)
	w.SetCenterSeparator("|")
	w.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	w.AppendBulk(t.Rows)
	w.Render()

	return buf.String()
}
