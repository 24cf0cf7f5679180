package schema

// FieldType identifies one of the closed set of dynamic field types a
// report definition may use. The set is closed: the capability tables
// in capability.go enumerate every member, and unknown values are
// rejected at definition-load time, never at aggregation time.
type FieldType string

const (
	// FieldText is a free-form text field.
	FieldText FieldType = "TEXT"

	// FieldNumber is a plain numeric field, summed on consolidation.
	FieldNumber FieldType = "NUMBER"

	// FieldCurrency is a monetary numeric field. Aggregates like
	// FieldNumber; the distinction only matters for display formatting.
	FieldCurrency FieldType = "CURRENCY"

	// FieldBoolean is a yes/no field, tallied as a count of true values.
	FieldBoolean FieldType = "BOOLEAN"

	// FieldDate is a calendar date field, filtered by inclusive range.
	FieldDate FieldType = "DATE"

	// FieldSelect is a single-choice field over a configured option list.
	FieldSelect FieldType = "SELECT"

	// FieldCycleWeek marks which week of the meeting cycle a report
	// covers. Filters like text; options default when not configured.
	FieldCycleWeek FieldType = "CYCLE_WEEK_INDICATOR"

	// FieldMemberAttendance counts members present at a meeting. It
	// aggregates as a present sum plus a derived absent metric.
	FieldMemberAttendance FieldType = "MEMBER_ATTENDANCE"

	// FieldMemberSelect references a member of the cell roster.
	FieldMemberSelect FieldType = "MEMBER_SELECT"

	// FieldFriendRegistration records a visiting friend.
	FieldFriendRegistration FieldType = "FRIEND_REGISTRATION"
)

// defaultCycleWeeks is the option list used for cycle-week fields that
// do not configure their own.
var defaultCycleWeeks = []string{"Semana 1", "Semana 2", "Semana 3", "Semana 4"}

// FieldDefinition describes one dynamic report field.
//
// Definitions come from report configuration (see internal/reportdef)
// and are read-only inputs to the engine.
type FieldDefinition struct {
	// ID is the stable unique identifier of the field. Row raw values
	// are keyed by it.
	ID string `json:"id"`

	// Key is the machine name and the fallback label source.
	Key string `json:"key"`

	// Label is the optional human-readable name.
	Label string `json:"label,omitempty"`

	// Type decides filter semantics and aggregation behavior.
	Type FieldType `json:"type"`

	// Options is the ordered list of allowed values for SELECT and
	// CYCLE_WEEK_INDICATOR fields.
	Options []string `json:"options,omitempty"`

	// RosterSize is the configured expected attendee count for
	// MEMBER_ATTENDANCE fields. Zero means unknown; the consolidation
	// engine then falls back to the group's row count when deriving
	// absentees.
	RosterSize int `json:"roster_size,omitempty"`
}

// DisplayLabel returns the human-readable name of the field, falling
// back to the machine key when no label is configured.
func (f FieldDefinition) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Key
}

// EffectiveOptions returns the configured option list, or the default
// cycle-week options for a cycle-week field without its own.
func (f FieldDefinition) EffectiveOptions() []string {
	if len(f.Options) > 0 {
		return f.Options
	}
	if f.Type == FieldCycleWeek {
		return defaultCycleWeeks
	}
	return nil
}

// FieldByID returns the definition with the given id, if present.
func FieldByID(fields []FieldDefinition, id string) (FieldDefinition, bool) {
	for _, f := range fields {
		if f.ID == id {
			return f, true
		}
	}
	return FieldDefinition{}, false
}
