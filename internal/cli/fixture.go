package cli

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ekklesia-app/consolida/internal/filter"
	"github.com/ekklesia-app/consolida/internal/report"
)

// rowFixture is the YAML shape of one report entry in a fixture file.
type rowFixture struct {
	ID         string            `yaml:"id"`
	CreatedAt  string            `yaml:"created_at"`
	Entidad    string            `yaml:"entidad"`
	Dimensions map[string]string `yaml:"dimensions"`
	Display    map[string]string `yaml:"display"`
	Values     map[string]any    `yaml:"values"`
}

type fixtureFile struct {
	Rows []rowFixture `yaml:"rows"`
}

// LoadRowsFixture reads report entries from a YAML fixture file.
// Raw values with no typed representation are dropped, matching the
// engine's absent-value tolerance.
func LoadRowsFixture(path string) ([]report.Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}

	var fixture fixtureFile
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}

	rows := make([]report.Row, 0, len(fixture.Rows))
	for i, rf := range fixture.Rows {
		row := report.Row{
			ID:        rf.ID,
			Entidad:   rf.Entidad,
			Dimension: rf.Dimensions,
			Display:   rf.Display,
			Raw:       make(map[string]report.Value, len(rf.Values)),
		}

		if rf.CreatedAt != "" {
			ts, err := parseFixtureTime(rf.CreatedAt)
			if err != nil {
				return nil, fmt.Errorf("fixture row %d: %w", i, err)
			}
			row.CreatedAt = ts
		}

		for k, v := range rf.Values {
			if val, ok := report.FromAny(v); ok {
				row.Raw[k] = val
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parseFixtureTime accepts either a full RFC 3339 timestamp or a bare
// local date.
func parseFixtureTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts.In(time.Local), nil
	}
	if ts, ok := report.ParseLocalDate(s); ok {
		return ts, nil
	}
	return time.Time{}, fmt.Errorf("unparseable created_at %q", s)
}

// filterFile is the YAML shape of a stored filter set.
type filterFile struct {
	Filters map[string]string `yaml:"filters"`
}

// LoadFilterSet reads an active filter set from a YAML file.
func LoadFilterSet(path string) (filter.Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read filters: %w", err)
	}

	var ff filterFile
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("parse filters %s: %w", path, err)
	}
	if ff.Filters == nil {
		return filter.Set{}, nil
	}
	return filter.Set(ff.Filters), nil
}
