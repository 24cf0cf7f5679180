// Package store provides durable storage for report entries.
//
// The consolidation engine never touches storage - it consumes rows
// already materialized in memory. This package is the collaborator
// that materializes them: a SQLite database holding reports and their
// submitted entries, read back in a deterministic order so the
// engine's insertion-order grouping is reproducible run to run.
package store
