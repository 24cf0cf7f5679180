package reportdef

import (
	"fmt"

	"cuelang.org/go/cue"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/ekklesia-app/consolida/internal/insight"
	"github.com/ekklesia-app/consolida/internal/schema"
)

// Definition is one compiled report definition.
type Definition struct {
	// ID is the definition's label in the CUE file.
	ID string

	// Name is the human-readable report name.
	Name string

	// Fields are the dynamic field definitions, in declaration order.
	Fields []schema.FieldDefinition

	// Insights is the report's insight configuration. When the file
	// declares none, the keyword-seeded default applies.
	Insights []insight.Entry
}

// CompileReport parses a CUE value into a Definition. The value should
// be one report struct, e.g. the result of looking up "report.celulas".
func CompileReport(v cue.Value) (*Definition, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	def := &Definition{}

	// The definition id is the struct label (last path selector).
	if sel := v.Path().Selectors(); len(sel) > 0 {
		def.ID = sel[len(sel)-1].String()
	}

	nameVal := v.LookupPath(cue.ParsePath("name"))
	if !nameVal.Exists() {
		return nil, &CompileError{
			Field:   "name",
			Message: "report name is required",
			Pos:     v.Pos(),
		}
	}
	name, err := nameVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	def.Name = name

	def.Fields, err = parseFields(v)
	if err != nil {
		return nil, err
	}
	if len(def.Fields) == 0 {
		return nil, &CompileError{
			Field:   "field",
			Message: "at least one field is required",
			Pos:     v.Pos(),
		}
	}

	def.Insights, err = parseInsights(v, def.Fields)
	if err != nil {
		return nil, err
	}

	return def, nil
}

// parseFields extracts the field definitions in declaration order.
func parseFields(v cue.Value) ([]schema.FieldDefinition, error) {
	var fields []schema.FieldDefinition

	fieldVal := v.LookupPath(cue.ParsePath("field"))
	if !fieldVal.Exists() {
		return fields, nil
	}

	iter, err := fieldVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	for iter.Next() {
		f, err := parseField(iter.Label(), iter.Value())
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func parseField(id string, v cue.Value) (schema.FieldDefinition, error) {
	f := schema.FieldDefinition{ID: id, Key: id}

	if keyVal := v.LookupPath(cue.ParsePath("key")); keyVal.Exists() {
		key, err := keyVal.String()
		if err != nil {
			return f, formatCUEError(err)
		}
		f.Key = key
	}

	if labelVal := v.LookupPath(cue.ParsePath("label")); labelVal.Exists() {
		label, err := labelVal.String()
		if err != nil {
			return f, formatCUEError(err)
		}
		f.Label = label
	}

	typeVal := v.LookupPath(cue.ParsePath("type"))
	if !typeVal.Exists() {
		return f, &CompileError{
			Field:   fmt.Sprintf("field.%s.type", id),
			Message: "field type is required",
			Pos:     v.Pos(),
		}
	}
	typeStr, err := typeVal.String()
	if err != nil {
		return f, formatCUEError(err)
	}
	f.Type = schema.FieldType(typeStr)
	if !schema.ValidType(f.Type) {
		return f, &CompileError{
			Field:   fmt.Sprintf("field.%s.type", id),
			Message: fmt.Sprintf("unknown field type %q (allowed: %v)", typeStr, schema.AllTypes()),
			Pos:     typeVal.Pos(),
		}
	}

	if optVal := v.LookupPath(cue.ParsePath("options")); optVal.Exists() {
		optIter, err := optVal.List()
		if err != nil {
			return f, formatCUEError(err)
		}
		for optIter.Next() {
			opt, err := optIter.Value().String()
			if err != nil {
				return f, formatCUEError(err)
			}
			f.Options = append(f.Options, opt)
		}
	}
	if f.Type == schema.FieldSelect && len(f.Options) == 0 {
		return f, &CompileError{
			Field:   fmt.Sprintf("field.%s.options", id),
			Message: "SELECT fields require an options list",
			Pos:     v.Pos(),
		}
	}

	if rosterVal := v.LookupPath(cue.ParsePath("roster")); rosterVal.Exists() {
		roster, err := rosterVal.Int64()
		if err != nil {
			return f, formatCUEError(err)
		}
		if roster < 0 {
			return f, &CompileError{
				Field:   fmt.Sprintf("field.%s.roster", id),
				Message: "roster size cannot be negative",
				Pos:     rosterVal.Pos(),
			}
		}
		f.RosterSize = int(roster)
	}

	return f, nil
}

// parseInsights extracts the insight list, defaulting to the
// keyword-seeded configuration when the file declares none.
func parseInsights(v cue.Value, fields []schema.FieldDefinition) ([]insight.Entry, error) {
	insightVal := v.LookupPath(cue.ParsePath("insight"))
	if !insightVal.Exists() {
		return insight.DefaultConfig(fields), nil
	}

	var entries []insight.Entry
	iter, err := insightVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	for iter.Next() {
		ev := iter.Value()

		fieldID, err := ev.LookupPath(cue.ParsePath("field")).String()
		if err != nil {
			return nil, formatCUEError(err)
		}

		typeStr, err := ev.LookupPath(cue.ParsePath("type")).String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		entryType := insight.EntryType(typeStr)
		if entryType != insight.Max && entryType != insight.Min {
			return nil, &CompileError{
				Field:   "insight.type",
				Message: fmt.Sprintf("insight type must be %q or %q, got %q", insight.Max, insight.Min, typeStr),
				Pos:     ev.Pos(),
			}
		}

		enabled := true
		if enVal := ev.LookupPath(cue.ParsePath("enabled")); enVal.Exists() {
			enabled, err = enVal.Bool()
			if err != nil {
				return nil, formatCUEError(err)
			}
		}

		entries = append(entries, insight.Entry{FieldID: fieldID, Type: entryType, Enabled: enabled})
	}
	return entries, nil
}

// CompileError represents a definition compile error with source
// position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
		}
	}
	return err
}
