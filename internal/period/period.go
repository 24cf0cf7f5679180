// Package period resolves reporting periods to inclusive local date
// ranges, and re-derives the period selection from a stored range.
package period

import (
	"time"

	"github.com/ekklesia-app/consolida/internal/report"
)

// Type identifies the granularity of a reporting period.
type Type string

const (
	// Year covers the full calendar year.
	Year Type = "year"
	// Cuatrimestre covers a four-month tertile (three per year).
	Cuatrimestre Type = "cuatrimestre"
	// Trimestre covers a three-month quarter.
	Trimestre Type = "trimestre"
	// Month covers a single calendar month.
	Month Type = "month"
)

// None marks the period index as not yet chosen by the caller.
const None = -1

// Range is an inclusive local date range at day granularity.
type Range struct {
	From time.Time
	To   time.Time
}

// FromString returns the lower bound as a local YYYY-MM-DD string.
func (r Range) FromString() string { return r.From.Format("2006-01-02") }

// ToString returns the upper bound as a local YYYY-MM-DD string.
func (r Range) ToString() string { return r.To.Format("2006-01-02") }

// Selection is a fully-specified period choice.
type Selection struct {
	Year   int
	Type   Type
	Period int
}

// Resolve maps a period selection to its inclusive date range.
//
// Period indices: cuatrimestre 1-3, trimestre 1-4, month 0-11 (January
// is 0). Year ignores the period index. Returns ok=false when the type
// requires an index that is None or out of range; callers must then
// leave any existing bounds untouched.
func Resolve(year int, pt Type, period int) (Range, bool) {
	var first, last int // month indices, 0-based inclusive

	switch pt {
	case Year:
		first, last = 0, 11
	case Cuatrimestre:
		if period < 1 || period > 3 {
			return Range{}, false
		}
		first = (period - 1) * 4
		last = first + 3
	case Trimestre:
		if period < 1 || period > 4 {
			return Range{}, false
		}
		first = (period - 1) * 3
		last = first + 2
	case Month:
		if period < 0 || period > 11 {
			return Range{}, false
		}
		first, last = period, period
	default:
		return Range{}, false
	}

	from := time.Date(year, time.Month(first+1), 1, 0, 0, 0, 0, time.Local)
	// Day 0 of the following month is the last day of the range's final
	// month, which handles 28/29/30/31-day months uniformly.
	to := time.Date(year, time.Month(last+2), 0, 0, 0, 0, 0, time.Local)
	return Range{From: from, To: to}, true
}

// Detect reconstructs the period selection whose canonical range
// exactly matches [from, to]. Bounds are local YYYY-MM-DD strings as
// stored in filter state. A range that matches no canonical period
// (or fails to parse) reports ok=false; it is simply not re-derived.
func Detect(from, to string) (Selection, bool) {
	lo, ok := report.ParseLocalDate(from)
	if !ok {
		return Selection{}, false
	}
	hi, ok := report.ParseLocalDate(to)
	if !ok {
		return Selection{}, false
	}

	year := lo.Year()
	candidates := []Selection{{Year: year, Type: Year, Period: None}}
	for p := 1; p <= 3; p++ {
		candidates = append(candidates, Selection{Year: year, Type: Cuatrimestre, Period: p})
	}
	for p := 1; p <= 4; p++ {
		candidates = append(candidates, Selection{Year: year, Type: Trimestre, Period: p})
	}
	for p := 0; p <= 11; p++ {
		candidates = append(candidates, Selection{Year: year, Type: Month, Period: p})
	}

	for _, sel := range candidates {
		r, ok := Resolve(sel.Year, sel.Type, sel.Period)
		if ok && r.From.Equal(lo) && r.To.Equal(hi) {
			return sel, true
		}
	}
	return Selection{}, false
}
