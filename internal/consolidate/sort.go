package consolidate

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Direction orders a sort ascending or descending.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// SortKeyLabel sorts groups by display label; SortKeyCount by row
// count. Any other key sorts by that metric in Group.Values.
const (
	SortKeyLabel = "label"
	SortKeyCount = "count"
)

// Sort returns a new slice of groups ordered by the given key and
// direction. Ties keep their relative input order and the input slice
// is never mutated.
//
// Label order is natural and locale-aware: the collator is built for
// Spanish with numeric collation, so embedded numbers compare by
// magnitude and accented labels sort where users expect them.
func Sort(groups []Group, key string, dir Direction) []Group {
	out := make([]Group, len(groups))
	copy(out, groups)

	var less func(a, b Group) bool
	if key == SortKeyLabel {
		// Collators are not safe for concurrent use; build one per call.
		c := collate.New(language.Spanish, collate.Numeric)
		less = func(a, b Group) bool {
			return c.CompareString(a.Label, b.Label) < 0
		}
	} else {
		metric := metricOf(key)
		less = func(a, b Group) bool {
			return metric(a) < metric(b)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if dir == Descending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// metricOf returns the numeric value a sort key reads from a group.
// Missing metrics are zero.
func metricOf(key string) func(Group) float64 {
	if key == SortKeyCount {
		return func(g Group) float64 { return float64(g.Count) }
	}
	return func(g Group) float64 { return g.Values[key] }
}
