package consolidate

import (
	"github.com/ekklesia-app/consolida/internal/report"
	"github.com/ekklesia-app/consolida/internal/schema"
)

const (
	// UnassignedKey is the bucket key for rows missing a value for the
	// grouping dimension. Such rows are kept, never dropped.
	UnassignedKey = ""

	// UnassignedLabel is the display label of the unassigned bucket.
	UnassignedLabel = "Sin asignar"

	// TotalsKey identifies the grand-total pseudo-group.
	TotalsKey = "total"

	// TotalsLabel is the display label of the grand-total pseudo-group.
	TotalsLabel = "TOTAL GENERAL"

	// AbsentSuffix is appended to an attendance field id to key its
	// derived absent-count metric.
	AbsentSuffix = "_absent"
)

// Group is one aggregation bucket.
type Group struct {
	Key    string             `json:"key"`
	Label  string             `json:"label"`
	Count  int                `json:"count"`
	Values map[string]float64 `json:"values"`
}

// Result is the consolidated output for one grouping of one row set.
type Result struct {
	Groups        []Group                  `json:"groups"`
	Totals        Group                    `json:"totals"`
	NumericFields []schema.FieldDefinition `json:"numeric_fields"`
	BooleanFields []schema.FieldDefinition `json:"boolean_fields"`
}

// Consolidate buckets rows by the grouping dimension and aggregates
// per the field schema: row counts, numeric sums, attendance
// present/absent pairs, and boolean true-tallies.
//
// Missing and non-numeric raw values contribute zero, never NaN.
// Rows with an empty grouping value land in the unassigned bucket.
func Consolidate(rows []report.Row, fields []schema.FieldDefinition, groupBy string) Result {
	numeric := make([]schema.FieldDefinition, 0)
	boolean := make([]schema.FieldDefinition, 0)
	for _, f := range fields {
		switch schema.AggregateKindOf(f.Type) {
		case schema.AggregateSum, schema.AggregateAttendance:
			numeric = append(numeric, f)
		case schema.AggregateBoolCount:
			boolean = append(boolean, f)
		}
	}

	groups := make([]Group, 0)
	index := make(map[string]int)

	for _, row := range rows {
		key := row.DimensionValue(groupBy)
		i, ok := index[key]
		if !ok {
			label := key
			if key == UnassignedKey {
				label = UnassignedLabel
			}
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{
				Key:    key,
				Label:  label,
				Values: make(map[string]float64),
			})
		}
		accumulate(&groups[i], row, numeric, boolean)
	}

	for i := range groups {
		deriveAbsent(&groups[i], numeric)
	}

	return Result{
		Groups:        groups,
		Totals:        sumGroups(groups, numeric, boolean),
		NumericFields: numeric,
		BooleanFields: boolean,
	}
}

func accumulate(g *Group, row report.Row, numeric, boolean []schema.FieldDefinition) {
	g.Count++
	for _, f := range numeric {
		if v, ok := row.NumberAt(f.ID); ok {
			g.Values[f.ID] += v
		} else if _, seen := g.Values[f.ID]; !seen {
			g.Values[f.ID] = 0
		}
	}
	for _, f := range boolean {
		if b, ok := row.BoolAt(f.ID); ok && b {
			g.Values[f.ID]++
		} else if _, seen := g.Values[f.ID]; !seen {
			g.Values[f.ID] = 0
		}
	}
}

// deriveAbsent fills the absent metric of attendance fields: expected
// attendees minus present sum, floored at zero. The configured roster
// size is the expected count; when unknown it falls back to the
// group's row count.
func deriveAbsent(g *Group, numeric []schema.FieldDefinition) {
	for _, f := range numeric {
		if schema.AggregateKindOf(f.Type) != schema.AggregateAttendance {
			continue
		}
		expected := float64(f.RosterSize)
		if f.RosterSize <= 0 {
			expected = float64(g.Count)
		}
		absent := expected - g.Values[f.ID]
		if absent < 0 {
			absent = 0
		}
		g.Values[f.ID+AbsentSuffix] = absent
	}
}

// sumGroups builds the TOTAL GENERAL pseudo-group by summing the
// already-aggregated groups metric by metric. Summing groups (rather
// than re-scanning rows) makes total conservation hold by
// construction, including for derived absent metrics.
func sumGroups(groups []Group, numeric, boolean []schema.FieldDefinition) Group {
	totals := Group{
		Key:    TotalsKey,
		Label:  TotalsLabel,
		Values: make(map[string]float64),
	}
	for _, f := range numeric {
		totals.Values[f.ID] = 0
		if schema.AggregateKindOf(f.Type) == schema.AggregateAttendance {
			totals.Values[f.ID+AbsentSuffix] = 0
		}
	}
	for _, f := range boolean {
		totals.Values[f.ID] = 0
	}

	for _, g := range groups {
		totals.Count += g.Count
		for k, v := range g.Values {
			totals.Values[k] += v
		}
	}
	return totals
}
