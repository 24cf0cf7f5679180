package insight

import "github.com/ekklesia-app/consolida/internal/schema"

// DefaultConfig seeds the insight configuration for a report schema:
// one max entry per insight-eligible field whose key or label matches
// a recognized keyword, plus an always-present max entry for the row
// count. Seeding happens once per report; users may edit the result.
func DefaultConfig(fields []schema.FieldDefinition) []Entry {
	cfg := []Entry{{FieldID: CountField, Type: Max, Enabled: true}}
	for _, f := range fields {
		if !schema.InsightEligible(f.Type) {
			continue
		}
		if iconFor(f) == "" {
			continue
		}
		cfg = append(cfg, Entry{FieldID: f.ID, Type: Max, Enabled: true})
	}
	return cfg
}
