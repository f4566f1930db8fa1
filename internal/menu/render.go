package menu

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leengari/studentdb/internal/domain/record"
	"github.com/leengari/studentdb/internal/domain/schema"
)

// renderRecords prints all records as a table, ID first and then the
// schema's columns in order.
func renderRecords(w io.Writer, path string, sch *schema.Schema, records []*record.Record) {
	if len(records) == 0 {
		fmt.Fprintf(w, "No student data found in file: %s\n", path)
		return
	}

	fmt.Fprintf(w, "Student Data from file: %s\n", path)
	fmt.Fprintf(w, "Total students: %d\n", len(records))

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := table.Row{schema.IDColumn}
	for _, name := range sch.Names() {
		header = append(header, name)
	}
	t.AppendHeader(header)

	for _, rec := range records {
		row := table.Row{rec.ID}
		for _, name := range sch.Names() {
			if value, ok := rec.Fields[name]; ok {
				row = append(row, value)
			} else {
				row = append(row, "")
			}
		}
		t.AppendRow(row)
	}

	t.Render()
}
