// Package export derives the tabular shape handed to CSV/XLSX
// exporters. Encoding a concrete file format is the caller's concern;
// this package only fixes the headers and row maps.
package export

import (
	"github.com/ekklesia-app/consolida/internal/consolidate"
	"github.com/ekklesia-app/consolida/internal/schema"
)

// Table is the exporter boundary shape: ordered headers plus one map
// per row keyed by header.
type Table struct {
	Headers []string         `json:"headers"`
	Rows    []map[string]any `json:"rows"`
}

// Column headers that do not come from field labels.
const (
	headerCount  = "Reportes"
	absentSuffix = " (ausentes)"
)

// Build flattens a consolidated result into a Table. The first column
// is the grouping dimension under dimensionLabel, followed by the row
// count, one column per numeric field (attendance fields add an
// absentee column), and one per boolean field. Totals are appended as
// the final row.
func Build(dimensionLabel string, res consolidate.Result) Table {
	headers := []string{dimensionLabel, headerCount}
	type column struct {
		header  string
		fieldID string
	}
	var columns []column

	for _, f := range res.NumericFields {
		columns = append(columns, column{f.DisplayLabel(), f.ID})
		if schema.AggregateKindOf(f.Type) == schema.AggregateAttendance {
			columns = append(columns, column{f.DisplayLabel() + absentSuffix, f.ID + consolidate.AbsentSuffix})
		}
	}
	for _, f := range res.BooleanFields {
		columns = append(columns, column{f.DisplayLabel(), f.ID})
	}
	for _, c := range columns {
		headers = append(headers, c.header)
	}

	rows := make([]map[string]any, 0, len(res.Groups)+1)
	appendRow := func(g consolidate.Group) {
		r := map[string]any{
			dimensionLabel: g.Label,
			headerCount:    g.Count,
		}
		for _, c := range columns {
			r[c.header] = g.Values[c.fieldID]
		}
		rows = append(rows, r)
	}

	for _, g := range res.Groups {
		appendRow(g)
	}
	appendRow(res.Totals)

	return Table{Headers: headers, Rows: rows}
}
