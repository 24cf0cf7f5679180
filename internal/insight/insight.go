// Package insight derives max/min highlight callouts from consolidated
// groups.
//
// An insight configuration declares which metrics to scan and in which
// direction. Config is allowed to be stale: entries referencing fields
// no longer in the report schema are skipped silently. Derivation is a
// pure function of its inputs; ties resolve to the first group in the
// current group order, consistently across calls.
package insight

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/ekklesia-app/consolida/internal/consolidate"
	"github.com/ekklesia-app/consolida/internal/schema"
)

// CountField is the pseudo field id for the per-group row count.
const CountField = "count"

// EntryType selects the scan direction of a config entry.
type EntryType string

const (
	Max EntryType = "max"
	Min EntryType = "min"
)

// Entry is one insight configuration item.
type Entry struct {
	FieldID string    `json:"field_id" yaml:"field"`
	Type    EntryType `json:"type" yaml:"type"`
	Enabled bool      `json:"enabled" yaml:"enabled"`
}

// Insight is one derived highlight statement.
type Insight struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Type     string `json:"type"`                // "success" | "warning" | "info"
	IconType string `json:"icon_type,omitempty"` // presentation category, e.g. "prayer"
}

// Semantic categories recognized in field keys and labels. Matching is
// accent-insensitive so "oración" and "oracion" categorize alike.
var iconKeywords = []struct {
	keyword string
	icon    string
}{
	{"oracion", "prayer"},
	{"ayuno", "fasting"},
	{"capitulos", "bible"},
	{"ofrenda", "offering"},
}

// Derive scans the groups for every enabled config entry and emits one
// insight per matched entry. Entries whose field id is neither in
// fields nor CountField are skipped.
func Derive(groups []consolidate.Group, fields []schema.FieldDefinition, cfg []Entry) []Insight {
	insights := make([]Insight, 0, len(cfg))
	if len(groups) == 0 {
		return insights
	}

	for _, entry := range cfg {
		if !entry.Enabled {
			continue
		}

		var field schema.FieldDefinition
		if entry.FieldID != CountField {
			var ok bool
			field, ok = schema.FieldByID(fields, entry.FieldID)
			if !ok {
				continue // stale config
			}
		}

		best := 0
		bestVal := metricValue(groups[0], entry.FieldID)
		for i := 1; i < len(groups); i++ {
			v := metricValue(groups[i], entry.FieldID)
			// Strict comparison keeps the first group on ties.
			if (entry.Type == Min && v < bestVal) || (entry.Type != Min && v > bestVal) {
				best, bestVal = i, v
			}
		}

		insights = append(insights, build(entry, field, groups[best], bestVal))
	}
	return insights
}

func metricValue(g consolidate.Group, fieldID string) float64 {
	if fieldID == CountField {
		return float64(g.Count)
	}
	return g.Values[fieldID]
}

func build(entry Entry, field schema.FieldDefinition, g consolidate.Group, v float64) Insight {
	label := "Reportes"
	icon := ""
	if entry.FieldID != CountField {
		label = field.DisplayLabel()
		icon = iconFor(field)
	}

	amount := strconv.FormatFloat(v, 'f', -1, 64)
	if entry.Type == Min {
		return Insight{
			Title:    fmt.Sprintf("Mínimo en %s", label),
			Message:  fmt.Sprintf("%s registra el valor más bajo de %s (%s).", g.Label, label, amount),
			Type:     "warning",
			IconType: icon,
		}
	}
	return Insight{
		Title:    fmt.Sprintf("Máximo en %s", label),
		Message:  fmt.Sprintf("%s registra el valor más alto de %s (%s).", g.Label, label, amount),
		Type:     "success",
		IconType: icon,
	}
}

// iconFor maps a field to its presentation category by keyword match
// on key and label.
func iconFor(field schema.FieldDefinition) string {
	haystack := foldAccents(strings.ToLower(field.Key + " " + field.Label))
	for _, kw := range iconKeywords {
		if strings.Contains(haystack, kw.keyword) {
			return kw.icon
		}
	}
	return ""
}

// foldAccents strips combining marks after NFD decomposition, so
// accented and unaccented spellings compare equal.
func foldAccents(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
