// Package report defines the in-memory row model the engine consumes.
//
// A row carries two parallel representations of every dynamic field:
// a display string (already formatted for rendering) and a raw value
// (the underlying typed value used for filtering and aggregation).
// Raw values are a sealed union - only String, Number, Bool, and Date
// implement Value - so the engine never type-asserts against open
// interfaces.
//
// Rows are immutable inputs: the engine reads them and never mutates.
// Missing or wrongly-typed raw values degrade to zero/false/absent
// rather than failing, since report schemas evolve and historical rows
// may predate newer fields.
package report
