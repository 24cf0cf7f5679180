package filter

import (
	"strconv"
	"strings"
	"time"

	"github.com/ekklesia-app/consolida/internal/report"
	"github.com/ekklesia-app/consolida/internal/schema"
)

// Static filter keys.
const (
	KeyEntidad     = "entidad"
	KeyCreatedFrom = "createdAt_from"
	KeyCreatedTo   = "createdAt_to"
	suffixMin      = "_min"
	suffixMax      = "_max"
	suffixFrom     = "_from"
	suffixTo       = "_to"
)

// Set maps filter keys to their string values. Empty values mean "no
// constraint"; Get never returns them.
type Set map[string]string

// Get returns the value for a key, reporting ok=false for absent or
// empty values.
func (s Set) Get(key string) (string, bool) {
	v, ok := s[key]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Clone returns a copy of the set. Used by callers that layer a period
// range on top of stored filters without mutating them.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Apply returns the rows matching every active criterion, in input
// order. The result is always non-nil.
func Apply(rows []report.Row, fields []schema.FieldDefinition, set Set) []report.Row {
	p := newPredicate(fields, set)

	out := make([]report.Row, 0, len(rows))
	for _, row := range rows {
		if p.matches(row) {
			out = append(out, row)
		}
	}
	return out
}

// predicate precompiles the active filter set so per-row evaluation
// does no parsing.
type predicate struct {
	entidad     string
	createdFrom time.Time
	createdTo   time.Time
	hasFrom     bool
	hasTo       bool
	fieldChecks []fieldCheck
}

type fieldCheck func(report.Row) bool

func newPredicate(fields []schema.FieldDefinition, set Set) predicate {
	p := predicate{}
	p.entidad, _ = set.Get(KeyEntidad)

	// A createdAt bound that fails to parse is treated as absent,
	// never as "exclude everything".
	if v, ok := set.Get(KeyCreatedFrom); ok {
		if t, ok := report.ParseLocalDate(v); ok {
			p.createdFrom, p.hasFrom = t, true
		}
	}
	if v, ok := set.Get(KeyCreatedTo); ok {
		if t, ok := report.ParseLocalDate(v); ok {
			p.createdTo, p.hasTo = t, true
		}
	}

	for _, f := range fields {
		if check := compileFieldCheck(f, set); check != nil {
			p.fieldChecks = append(p.fieldChecks, check)
		}
	}
	return p
}

func (p predicate) matches(row report.Row) bool {
	if !row.MatchesEntidad(p.entidad) {
		return false
	}
	if p.hasFrom || p.hasTo {
		day := row.CreatedDay()
		if p.hasFrom && day.Before(p.createdFrom) {
			return false
		}
		if p.hasTo && day.After(p.createdTo) {
			return false
		}
	}
	for _, check := range p.fieldChecks {
		if !check(row) {
			return false
		}
	}
	return true
}

// compileFieldCheck builds the per-row check for one field, or nil
// when the field has no active constraint.
func compileFieldCheck(f schema.FieldDefinition, set Set) fieldCheck {
	switch schema.FilterKindOf(f.Type) {
	case schema.FilterSubstring:
		return compileSubstring(f, set)
	case schema.FilterNumericRange:
		return compileNumericRange(f, set)
	case schema.FilterBoolean:
		return compileBoolean(f, set)
	case schema.FilterDateRange:
		return compileDateRange(f, set)
	case schema.FilterExact:
		return compileExact(f, set)
	default:
		return nil
	}
}

func compileSubstring(f schema.FieldDefinition, set Set) fieldCheck {
	needle, ok := set.Get(f.ID)
	if !ok {
		return nil
	}
	lower := strings.ToLower(needle)
	return func(row report.Row) bool {
		s, ok := row.StringAt(f.ID)
		if !ok {
			return false
		}
		return strings.Contains(strings.ToLower(s), lower)
	}
}

func compileNumericRange(f schema.FieldDefinition, set Set) fieldCheck {
	min, hasMin := parseBound(set, f.ID+suffixMin)
	max, hasMax := parseBound(set, f.ID+suffixMax)
	if !hasMin && !hasMax {
		return nil
	}
	return func(row report.Row) bool {
		v, ok := row.NumberAt(f.ID)
		if !ok {
			// Rows without a raw value are never excluded by bounds.
			return true
		}
		if hasMin && v < min {
			return false
		}
		if hasMax && v > max {
			return false
		}
		return true
	}
}

// parseBound reads a numeric bound, treating unparseable values as
// absent.
func parseBound(set Set, key string) (float64, bool) {
	v, ok := set.Get(key)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func compileBoolean(f schema.FieldDefinition, set Set) fieldCheck {
	v, ok := set.Get(f.ID)
	if !ok {
		return nil
	}
	want := v == "true"
	return func(row report.Row) bool {
		b, _ := row.BoolAt(f.ID) // missing raw value coerces to false
		return b == want
	}
}

func compileDateRange(f schema.FieldDefinition, set Set) fieldCheck {
	from, hasFrom := parseDateBound(set, f.ID+suffixFrom)
	to, hasTo := parseDateBound(set, f.ID+suffixTo)
	if !hasFrom && !hasTo {
		return nil
	}
	return func(row report.Row) bool {
		d, ok := row.DateAt(f.ID)
		if !ok {
			// Unlike numeric bounds, an active date range excludes rows
			// without a raw date.
			return false
		}
		day := report.DayOf(d)
		if hasFrom && day.Before(from) {
			return false
		}
		if hasTo && day.After(to) {
			return false
		}
		return true
	}
}

func parseDateBound(set Set, key string) (time.Time, bool) {
	v, ok := set.Get(key)
	if !ok {
		return time.Time{}, false
	}
	return report.ParseLocalDate(v)
}

func compileExact(f schema.FieldDefinition, set Set) fieldCheck {
	want, ok := set.Get(f.ID)
	if !ok {
		return nil
	}
	return func(row report.Row) bool {
		s, ok := row.StringAt(f.ID)
		return ok && s == want
	}
}
