// Package schema models the dynamic field definitions of a report.
//
// A report is configured externally as an ordered list of field
// definitions. Each definition carries a closed field type that decides
// how the rest of the engine treats the field: which filter predicate
// applies, how values aggregate, and whether the field can drive an
// insight. The per-concern behavior is dispatched through capability
// tables keyed by the field type, so the closed type set is listed in
// exactly one place.
//
// Definitions are immutable for the duration of a view session. All
// other internal packages import schema; schema imports nothing
// internal.
package schema
