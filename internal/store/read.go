package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ekklesia-app/consolida/internal/report"
)

// LoadEntries returns every entry of a report. Results are ordered
// deterministically (created_at ASC, id ASC) so downstream
// insertion-order grouping is stable across runs.
//
// Returns an empty slice (not nil) when the report has no entries.
func (s *Store) LoadEntries(ctx context.Context, reportID string) ([]report.Row, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, entidad, dimensions, display, raw
		FROM entries
		WHERE report_id = ?
		ORDER BY created_at ASC, id COLLATE BINARY ASC
	`, reportID)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	out := make([]report.Row, 0)
	for rows.Next() {
		row, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return out, nil
}

// ReportName returns the display name of a report.
// Returns sql.ErrNoRows if the report does not exist.
func (s *Store) ReportName(ctx context.Context, reportID string) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx, `
		SELECT name FROM reports WHERE id = ?
	`, reportID).Scan(&name)
	if err != nil {
		return "", fmt.Errorf("read report %s: %w", reportID, err)
	}
	return name, nil
}

func scanEntry(rows *sql.Rows) (report.Row, error) {
	var (
		row       report.Row
		createdAt string
		dims      []byte
		display   []byte
		raw       []byte
	)
	if err := rows.Scan(&row.ID, &createdAt, &row.Entidad, &dims, &display, &raw); err != nil {
		return report.Row{}, fmt.Errorf("scan entry: %w", err)
	}

	ts, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return report.Row{}, fmt.Errorf("entry %s created_at: %w", row.ID, err)
	}
	row.CreatedAt = ts.In(time.Local)

	if err := json.Unmarshal(dims, &row.Dimension); err != nil {
		return report.Row{}, fmt.Errorf("entry %s dimensions: %w", row.ID, err)
	}
	if err := json.Unmarshal(display, &row.Display); err != nil {
		return report.Row{}, fmt.Errorf("entry %s display: %w", row.ID, err)
	}
	row.Raw, err = report.UnmarshalValues(raw)
	if err != nil {
		return report.Row{}, fmt.Errorf("entry %s: %w", row.ID, err)
	}
	return row, nil
}
