package consolidate

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/ekklesia-app/consolida/internal/report"
)

// TestConsolidate_Golden pins the full consolidated shape for a small
// report. Regenerate with:
//
//	go test ./internal/consolidate -update
func TestConsolidate_Golden(t *testing.T) {
	rows := []report.Row{
		row("Betania", map[string]report.Value{"asistencia": report.Number(8), "ofrenda": report.Number(120.5), "ayuno": report.Bool(true)}),
		row("Betania", map[string]report.Value{"asistencia": report.Number(7), "ofrenda": report.Number(80), "ayuno": report.Bool(false)}),
		row("Emaús", map[string]report.Value{"asistencia": report.Number(10), "ofrenda": report.Number(200), "ayuno": report.Bool(true)}),
	}

	res := Consolidate(rows, testFields, "entidad")

	data, err := json.MarshalIndent(res, "", "  ")
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "consolidate", data)
}
