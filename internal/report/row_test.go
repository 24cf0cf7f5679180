package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDimensionValue(t *testing.T) {
	row := Row{
		Entidad:   "Célula 7",
		Dimension: map[string]string{"supervisor": "Ana", "sector": "Norte"},
	}

	assert.Equal(t, "Célula 7", row.DimensionValue("entidad"))
	assert.Equal(t, "Ana", row.DimensionValue("supervisor"))
	assert.Equal(t, "", row.DimensionValue("zona"), "missing dimension is empty")
}

func TestTypedAccessors_MissingAndWrongType(t *testing.T) {
	row := Row{Raw: map[string]Value{
		"n": Number(4),
		"b": Bool(true),
		"s": String("texto"),
		"d": Date("2024-03-10"),
	}}

	n, ok := row.NumberAt("n")
	require.True(t, ok)
	assert.Equal(t, 4.0, n)

	_, ok = row.NumberAt("missing")
	assert.False(t, ok)
	_, ok = row.NumberAt("s")
	assert.False(t, ok, "string raw value is not a number")

	b, ok := row.BoolAt("b")
	require.True(t, ok)
	assert.True(t, b)
	_, ok = row.BoolAt("n")
	assert.False(t, ok)

	d, ok := row.DateAt("d")
	require.True(t, ok)
	assert.Equal(t, 10, d.Day())
	_, ok = row.DateAt("b")
	assert.False(t, ok)

	s, ok := row.StringAt("s")
	require.True(t, ok)
	assert.Equal(t, "texto", s)
	_, ok = row.StringAt("n")
	assert.False(t, ok)
}

func TestDateAt_StringValueParsesAsDate(t *testing.T) {
	row := Row{Raw: map[string]Value{"d": String("2024-12-01")}}
	d, ok := row.DateAt("d")
	require.True(t, ok)
	assert.Equal(t, time.December, d.Month())
}

func TestCreatedDay_TruncatesTimeOfDay(t *testing.T) {
	row := Row{CreatedAt: time.Date(2024, 5, 4, 23, 59, 58, 0, time.Local)}
	day := row.CreatedDay()
	assert.Equal(t, 0, day.Hour())
	assert.Equal(t, 4, day.Day())
}

func TestMatchesEntidad(t *testing.T) {
	row := Row{Entidad: "Célula Emaús"}
	assert.True(t, row.MatchesEntidad(""))
	assert.True(t, row.MatchesEntidad("emaús"))
	assert.True(t, row.MatchesEntidad("CÉLULA"))
	assert.False(t, row.MatchesEntidad("betania"))
}
