package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekklesia-app/consolida/internal/export"
)

const testDefs = `
report: celulas: {
	name: "Reporte de Células"
	field: asistencia: {
		key:    "asistencia"
		label:  "Asistencia"
		type:   "MEMBER_ATTENDANCE"
		roster: 20
	}
	field: ofrenda: {
		key:   "ofrenda"
		label: "Ofrenda"
		type:  "CURRENCY"
	}
	field: ayuno: {
		key:   "ayuno"
		label: "Ayuno"
		type:  "BOOLEAN"
	}
}
`

const testRows = `
rows:
  - created_at: 2024-05-12T10:00:00Z
    entidad: Betania
    dimensions:
      entidad: betania
    display:
      entidad: Betania
    values:
      asistencia: 15
      ofrenda: 200.5
      ayuno: true
  - created_at: 2024-06-02T10:00:00Z
    entidad: Betania
    dimensions:
      entidad: betania
    display:
      entidad: Betania
    values:
      asistencia: 12
      ayuno: false
  - created_at: 2024-09-01T10:00:00Z
    entidad: Emaús
    dimensions:
      entidad: emaus
    display:
      entidad: Emaús
    values:
      asistencia: 10
      ofrenda: 50
      ayuno: true
`

func writeTestInputs(t *testing.T) (defsDir, rowsPath string) {
	t.Helper()
	dir := t.TempDir()
	defsDir = filepath.Join(dir, "defs")
	require.NoError(t, writeDir(defsDir))
	writeFile(t, defsDir, "celulas.cue", testDefs)
	rowsPath = writeFile(t, dir, "rows.yaml", testRows)
	return defsDir, rowsPath
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func decodeTable(t *testing.T, out string) export.Table {
	t.Helper()
	var resp struct {
		Status string       `json:"status"`
		Data   export.Table `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Equal(t, "ok", resp.Status)
	return resp.Data
}

func TestConsolidateCommand_JSON(t *testing.T) {
	defsDir, rowsPath := writeTestInputs(t)

	out, err := execute(t, "--format", "json", "consolidate", "celulas",
		"--defs", defsDir, "--rows", rowsPath)
	require.NoError(t, err)

	table := decodeTable(t, out)
	require.Equal(t, []string{
		"Entidad", "Reportes",
		"Asistencia", "Asistencia (ausentes)", "Ofrenda", "Ayuno",
	}, table.Headers)
	require.Len(t, table.Rows, 3) // two groups plus totals

	betania := table.Rows[0]
	assert.Equal(t, "Betania", betania["Entidad"])
	assert.Equal(t, 2.0, betania["Reportes"])
	assert.Equal(t, 27.0, betania["Asistencia"])
	assert.Equal(t, 13.0, betania["Asistencia (ausentes)"])
	assert.Equal(t, 200.5, betania["Ofrenda"])
	assert.Equal(t, 1.0, betania["Ayuno"])

	totals := table.Rows[2]
	assert.Equal(t, "TOTAL GENERAL", totals["Entidad"])
	assert.Equal(t, 3.0, totals["Reportes"])
	assert.Equal(t, 37.0, totals["Asistencia"])
	assert.Equal(t, 250.5, totals["Ofrenda"])
}

func TestConsolidateCommand_PeriodFilter(t *testing.T) {
	defsDir, rowsPath := writeTestInputs(t)

	out, err := execute(t, "--format", "json", "consolidate", "celulas",
		"--defs", defsDir, "--rows", rowsPath,
		"--year", "2024", "--period-type", "cuatrimestre", "--period", "2")
	require.NoError(t, err)

	// Only the May and June entries fall in cuatrimestre 2.
	table := decodeTable(t, out)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Betania", table.Rows[0]["Entidad"])
	assert.Equal(t, 2.0, table.Rows[0]["Reportes"])
}

func TestConsolidateCommand_Sort(t *testing.T) {
	defsDir, rowsPath := writeTestInputs(t)

	out, err := execute(t, "--format", "json", "consolidate", "celulas",
		"--defs", defsDir, "--rows", rowsPath, "--sort", "count:asc")
	require.NoError(t, err)

	table := decodeTable(t, out)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, "Emaús", table.Rows[0]["Entidad"])
	assert.Equal(t, "Betania", table.Rows[1]["Entidad"])
}

func TestConsolidateCommand_FilterFile(t *testing.T) {
	defsDir, rowsPath := writeTestInputs(t)
	filterPath := writeFile(t, t.TempDir(), "filters.yaml", "filters:\n  entidad: betania\n")

	out, err := execute(t, "--format", "json", "consolidate", "celulas",
		"--defs", defsDir, "--rows", rowsPath, "--filter", filterPath)
	require.NoError(t, err)

	table := decodeTable(t, out)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Betania", table.Rows[0]["Entidad"])
}

func TestConsolidateCommand_Text(t *testing.T) {
	defsDir, rowsPath := writeTestInputs(t)

	out, err := execute(t, "consolidate", "celulas",
		"--defs", defsDir, "--rows", rowsPath)
	require.NoError(t, err)

	assert.Contains(t, out, "Entidad")
	assert.Contains(t, out, "Betania")
	assert.Contains(t, out, "TOTAL GENERAL")
	assert.Contains(t, out, "200.50")
	assert.Contains(t, out, "27") // whole attendance prints without decimals
}

func TestConsolidateCommand_UnknownReport(t *testing.T) {
	defsDir, rowsPath := writeTestInputs(t)

	_, err := execute(t, "consolidate", "bautizos",
		"--defs", defsDir, "--rows", rowsPath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "bautizos")
}

func TestConsolidateCommand_NoSource(t *testing.T) {
	defsDir, _ := writeTestInputs(t)

	_, err := execute(t, "consolidate", "celulas", "--defs", defsDir)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestConsolidateCommand_BadSortSpec(t *testing.T) {
	defsDir, rowsPath := writeTestInputs(t)

	_, err := execute(t, "consolidate", "celulas",
		"--defs", defsDir, "--rows", rowsPath, "--sort", "count:sideways")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestParseSortSpec(t *testing.T) {
	key, dir, err := parseSortSpec("label:desc")
	require.NoError(t, err)
	assert.Equal(t, "label", key)
	assert.Equal(t, "desc", string(dir))

	key, dir, err = parseSortSpec("ofrenda")
	require.NoError(t, err)
	assert.Equal(t, "ofrenda", key)
	assert.Equal(t, "asc", string(dir))

	_, _, err = parseSortSpec(":asc")
	require.Error(t, err)
}
