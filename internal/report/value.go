package report

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Value is a sealed interface over the raw value types a row field can
// hold. Only String, Number, Bool, and Date implement it.
type Value interface {
	rawValue() // sealed - only these types implement it
}

// String is a raw text value.
type String string

func (String) rawValue() {}

// Number is a raw numeric value. Plain numbers, currency amounts, and
// attendance present-counts are all Numbers.
type Number float64

func (Number) rawValue() {}

// Bool is a raw yes/no value.
type Bool bool

func (Bool) rawValue() {}

// Date is a raw calendar date in local YYYY-MM-DD form.
type Date string

func (Date) rawValue() {}

// Time parses the date at day granularity in local time.
func (d Date) Time() (time.Time, bool) {
	return ParseLocalDate(string(d))
}

// ParseLocalDate parses a YYYY-MM-DD string as a local calendar date.
// Parsing in the local location (not UTC) keeps day-granularity
// comparisons free of off-by-one shifts around midnight.
func ParseLocalDate(s string) (time.Time, bool) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FromAny converts a dynamically-typed value (YAML or JSON decoding
// output) into a raw Value. Returns false for values with no raw
// representation; callers treat those as absent.
func FromAny(v any) (Value, bool) {
	switch val := v.(type) {
	case nil:
		return nil, false
	case bool:
		return Bool(val), true
	case int:
		return Number(val), true
	case int64:
		return Number(val), true
	case float64:
		return Number(val), true
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return nil, false
		}
		return Number(f), true
	case string:
		if _, ok := ParseLocalDate(val); ok {
			return Date(val), true
		}
		return String(val), true
	case time.Time:
		return Date(val.Format("2006-01-02")), true
	default:
		return nil, false
	}
}

// MarshalValue serializes a raw Value to its plain JSON scalar form.
func MarshalValue(v Value) ([]byte, error) {
	switch val := v.(type) {
	case String:
		return json.Marshal(string(val))
	case Number:
		return json.Marshal(float64(val))
	case Bool:
		return json.Marshal(bool(val))
	case Date:
		return json.Marshal(string(val))
	default:
		return nil, fmt.Errorf("unknown raw value type: %T", v)
	}
}

// MarshalValues serializes a raw value map as a JSON object.
func MarshalValues(m map[string]Value) ([]byte, error) {
	plain := make(map[string]json.RawMessage, len(m))
	for k, v := range m {
		b, err := MarshalValue(v)
		if err != nil {
			return nil, fmt.Errorf("marshal raw value %q: %w", k, err)
		}
		plain[k] = b
	}
	return json.Marshal(plain)
}

// UnmarshalValues decodes a JSON object of plain scalars into a raw
// value map. Values with no raw representation (nulls, nested objects)
// are dropped, matching the absent-value tolerance of the engine.
func UnmarshalValues(data []byte) (map[string]Value, error) {
	var plain map[string]json.RawMessage
	if err := json.Unmarshal(data, &plain); err != nil {
		return nil, fmt.Errorf("unmarshal raw values: %w", err)
	}

	m := make(map[string]Value, len(plain))
	for k, raw := range plain {
		if len(raw) == 0 {
			continue
		}
		switch raw[0] {
		case '"':
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				return nil, fmt.Errorf("raw value %q: %w", k, err)
			}
			if _, ok := ParseLocalDate(s); ok {
				m[k] = Date(s)
			} else {
				m[k] = String(s)
			}
		case 't', 'f':
			var b bool
			if err := json.Unmarshal(raw, &b); err != nil {
				return nil, fmt.Errorf("raw value %q: %w", k, err)
			}
			m[k] = Bool(b)
		case 'n', '[', '{':
			// null and structured values have no raw representation
		default:
			f, err := strconv.ParseFloat(string(raw), 64)
			if err != nil {
				return nil, fmt.Errorf("raw value %q: %w", k, err)
			}
			m[k] = Number(f)
		}
	}
	return m, nil
}
