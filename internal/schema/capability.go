package schema

// FilterKind selects the filter predicate a field type answers to.
type FilterKind int

const (
	// FilterNone means the field is never constrained by a filter.
	FilterNone FilterKind = iota

	// FilterSubstring matches case-insensitive substrings of the raw
	// string value.
	FilterSubstring

	// FilterNumericRange applies independent optional min/max bounds.
	FilterNumericRange

	// FilterBoolean compares against a "true"/"false" filter value.
	FilterBoolean

	// FilterDateRange applies inclusive from/to date bounds.
	FilterDateRange

	// FilterExact matches the raw value exactly.
	FilterExact
)

// AggregateKind selects how a field contributes to consolidation.
type AggregateKind int

const (
	// AggregateNone means the field produces no consolidated metric.
	AggregateNone AggregateKind = iota

	// AggregateSum sums raw numeric values per group.
	AggregateSum

	// AggregateBoolCount counts rows whose raw value is strictly true.
	AggregateBoolCount

	// AggregateAttendance sums present counts and derives an absent
	// metric from the expected roster size.
	AggregateAttendance
)

// filterKinds maps every member of the closed field type set to its
// filter predicate. A type missing here filters as FilterNone.
var filterKinds = map[FieldType]FilterKind{
	FieldText:               FilterSubstring,
	FieldCycleWeek:          FilterSubstring,
	FieldNumber:             FilterNumericRange,
	FieldCurrency:           FilterNumericRange,
	FieldBoolean:            FilterBoolean,
	FieldDate:               FilterDateRange,
	FieldSelect:             FilterExact,
	FieldMemberAttendance:   FilterNone,
	FieldMemberSelect:       FilterNone,
	FieldFriendRegistration: FilterNone,
}

// aggregateKinds maps every member of the closed field type set to its
// aggregation behavior.
var aggregateKinds = map[FieldType]AggregateKind{
	FieldText:               AggregateNone,
	FieldCycleWeek:          AggregateNone,
	FieldNumber:             AggregateSum,
	FieldCurrency:           AggregateSum,
	FieldBoolean:            AggregateBoolCount,
	FieldDate:               AggregateNone,
	FieldSelect:             AggregateNone,
	FieldMemberAttendance:   AggregateAttendance,
	FieldMemberSelect:       AggregateNone,
	FieldFriendRegistration: AggregateNone,
}

// FilterKindOf returns the filter predicate for a field type.
// Unknown types are unconstrained rather than rejected: historical rows
// may reference types newer than this binary.
func FilterKindOf(t FieldType) FilterKind {
	return filterKinds[t]
}

// AggregateKindOf returns the aggregation behavior for a field type.
func AggregateKindOf(t FieldType) AggregateKind {
	return aggregateKinds[t]
}

// InsightEligible reports whether a field type can drive a max/min
// insight. Only fields that yield a numeric metric qualify.
func InsightEligible(t FieldType) bool {
	switch aggregateKinds[t] {
	case AggregateSum, AggregateAttendance, AggregateBoolCount:
		return true
	}
	return false
}

// ValidType reports whether t is a member of the closed field type set.
func ValidType(t FieldType) bool {
	_, ok := filterKinds[t]
	return ok
}

// AllTypes returns the closed field type set in declaration order.
// Used by definition validation to report the allowed values.
func AllTypes() []FieldType {
	return []FieldType{
		FieldText,
		FieldNumber,
		FieldCurrency,
		FieldBoolean,
		FieldDate,
		FieldSelect,
		FieldCycleWeek,
		FieldMemberAttendance,
		FieldMemberSelect,
		FieldFriendRegistration,
	}
}
