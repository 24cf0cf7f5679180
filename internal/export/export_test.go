package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekklesia-app/consolida/internal/consolidate"
	"github.com/ekklesia-app/consolida/internal/report"
	"github.com/ekklesia-app/consolida/internal/schema"
)

func TestBuild(t *testing.T) {
	fields := []schema.FieldDefinition{
		{ID: "asistencia", Key: "asistencia", Label: "Asistencia", Type: schema.FieldMemberAttendance, RosterSize: 10},
		{ID: "ofrenda", Key: "ofrenda", Type: schema.FieldCurrency},
		{ID: "ayuno", Key: "ayuno", Type: schema.FieldBoolean},
	}
	rows := []report.Row{
		{Entidad: "Betania", Raw: map[string]report.Value{
			"asistencia": report.Number(7),
			"ofrenda":    report.Number(120),
			"ayuno":      report.Bool(true),
		}},
		{Entidad: "Emaús", Raw: map[string]report.Value{
			"asistencia": report.Number(9),
			"ofrenda":    report.Number(50),
			"ayuno":      report.Bool(false),
		}},
	}

	res := consolidate.Consolidate(rows, fields, "entidad")
	table := Build("Entidad", res)

	assert.Equal(t, []string{
		"Entidad", "Reportes",
		"Asistencia", "Asistencia (ausentes)",
		"ofrenda", "ayuno",
	}, table.Headers)

	require.Len(t, table.Rows, 3, "two groups plus totals")

	first := table.Rows[0]
	assert.Equal(t, "Betania", first["Entidad"])
	assert.Equal(t, 1, first["Reportes"])
	assert.Equal(t, 7.0, first["Asistencia"])
	assert.Equal(t, 3.0, first["Asistencia (ausentes)"])
	assert.Equal(t, 120.0, first["ofrenda"])
	assert.Equal(t, 1.0, first["ayuno"])

	last := table.Rows[2]
	assert.Equal(t, consolidate.TotalsLabel, last["Entidad"])
	assert.Equal(t, 2, last["Reportes"])
	assert.Equal(t, 16.0, last["Asistencia"])
}

func TestBuild_EmptyResultStillHasTotals(t *testing.T) {
	res := consolidate.Consolidate(nil, nil, "entidad")
	table := Build("Entidad", res)

	assert.Equal(t, []string{"Entidad", "Reportes"}, table.Headers)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, 0, table.Rows[0]["Reportes"])
}
