package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ekklesia-app/consolida/internal/report"
)

// SaveReport upserts a report's id and display name.
func (s *Store) SaveReport(ctx context.Context, id, name string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reports (id, name)
		VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name
	`, id, name)
	if err != nil {
		return fmt.Errorf("save report %s: %w", id, err)
	}
	return nil
}

// SaveEntries inserts rows for a report in one transaction. Rows
// without an ID get a generated UUID. Duplicate IDs are silently
// ignored (ON CONFLICT DO NOTHING) so re-importing a fixture is
// idempotent.
func (s *Store) SaveEntries(ctx context.Context, reportID string, rows []report.Row) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save entries: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entries
		(id, report_id, created_at, entidad, dimensions, display, raw)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("prepare save entries: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		id := row.ID
		if id == "" {
			id = uuid.NewString()
		}

		dims, err := marshalStringMap(row.Dimension)
		if err != nil {
			return fmt.Errorf("entry %s dimensions: %w", id, err)
		}
		display, err := marshalStringMap(row.Display)
		if err != nil {
			return fmt.Errorf("entry %s display: %w", id, err)
		}
		raw, err := report.MarshalValues(row.Raw)
		if err != nil {
			return fmt.Errorf("entry %s raw values: %w", id, err)
		}

		if _, err := stmt.ExecContext(ctx,
			id,
			reportID,
			row.CreatedAt.Format(time.RFC3339),
			row.Entidad,
			dims,
			display,
			raw,
		); err != nil {
			return fmt.Errorf("insert entry %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save entries: %w", err)
	}
	return nil
}

func marshalStringMap(m map[string]string) ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}
