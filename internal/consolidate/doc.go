// Package consolidate groups filtered report rows by a chosen
// dimension and computes per-group and grand-total aggregates.
//
// Grouping is deterministic: group order is the insertion order of
// each key's first occurrence in the input. Totals are conserved by
// construction - the TOTAL GENERAL pseudo-group's count and every one
// of its metrics equal the sum over the groups.
//
// The package also provides the sort comparator for consolidated
// groups: label sorts are natural and locale-aware (numeric substrings
// compare by magnitude, "Célula 2" before "Célula 10"), metric sorts
// are numeric with missing metrics treated as zero. Sorting is stable
// and never mutates its input.
package consolidate
