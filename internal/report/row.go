package report

import (
	"strings"
	"time"
)

// DimensionEntidad is the grouping key naming the reporting entity
// itself (the cell or group that submitted the row).
const DimensionEntidad = "entidad"

// Row is one submitted report entry.
//
// Display and Raw are parallel maps keyed by field id: Display holds
// the formatted string shown to users, Raw holds the typed value the
// engine filters and aggregates on.
type Row struct {
	ID        string            `json:"id"`
	CreatedAt time.Time         `json:"created_at"`
	Entidad   string            `json:"entidad"`
	Dimension map[string]string `json:"dimensions,omitempty"`
	Display   map[string]string `json:"display,omitempty"`
	Raw       map[string]Value  `json:"-"`
}

// DimensionValue returns the row's value for a grouping dimension.
// The entidad dimension is a first-class row attribute; every other
// dimension (supervisor, lider, celula, sector, zona, ...) lives in
// the Dimension map. Missing dimensions return the empty string so
// such rows land in the unassigned bucket.
func (r Row) DimensionValue(key string) string {
	if key == DimensionEntidad {
		return r.Entidad
	}
	return r.Dimension[key]
}

// NumberAt returns the raw numeric value of a field. Missing keys and
// non-numeric raw values report ok=false; the caller substitutes zero.
func (r Row) NumberAt(fieldID string) (float64, bool) {
	n, ok := r.Raw[fieldID].(Number)
	if !ok {
		return 0, false
	}
	return float64(n), true
}

// BoolAt returns the raw boolean value of a field.
func (r Row) BoolAt(fieldID string) (bool, bool) {
	b, ok := r.Raw[fieldID].(Bool)
	if !ok {
		return false, false
	}
	return bool(b), true
}

// DateAt returns the raw date value of a field at day granularity.
// String values that parse as local dates also qualify, since raw maps
// decoded from storage carry dates as plain strings.
func (r Row) DateAt(fieldID string) (time.Time, bool) {
	switch v := r.Raw[fieldID].(type) {
	case Date:
		return v.Time()
	case String:
		return ParseLocalDate(string(v))
	default:
		return time.Time{}, false
	}
}

// StringAt returns the raw textual value of a field. Numbers and
// booleans report ok=false: substring filters only apply to text-like
// raw values.
func (r Row) StringAt(fieldID string) (string, bool) {
	switch v := r.Raw[fieldID].(type) {
	case String:
		return string(v), true
	case Date:
		return string(v), true
	default:
		return "", false
	}
}

// CreatedDay returns the creation timestamp truncated to local day
// granularity, for inclusive date-range comparison.
func (r Row) CreatedDay() time.Time {
	return DayOf(r.CreatedAt)
}

// DayOf truncates a timestamp to its local calendar day.
func DayOf(t time.Time) time.Time {
	y, m, d := t.In(time.Local).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// MatchesEntidad reports whether the row's entidad contains the needle
// case-insensitively. An empty needle matches every row.
func (r Row) MatchesEntidad(needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Entidad), strings.ToLower(needle))
}
