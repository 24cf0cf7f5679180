// Package filter applies an active filter set to a row collection.
//
// A filter set is a flat map from filter key to string value, exactly
// as UI state stores it: static keys for entidad and the createdAt
// range, and per-field keys whose suffix depends on the field type
// ("_min"/"_max" for numeric ranges, "_from"/"_to" for date ranges).
// Absent and empty values never constrain. The row predicate is a
// logical AND across all active criteria, and filtering preserves the
// input order (the result is a stable subsequence).
package filter
