package consolidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labels(groups []Group) []string {
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.Label
	}
	return out
}

func TestSort_LabelNaturalOrder(t *testing.T) {
	groups := []Group{
		{Key: "Célula 1", Label: "Célula 1"},
		{Key: "Célula 10", Label: "Célula 10"},
		{Key: "Célula 2", Label: "Célula 2"},
	}

	got := Sort(groups, SortKeyLabel, Ascending)
	assert.Equal(t, []string{"Célula 1", "Célula 2", "Célula 10"}, labels(got))

	got = Sort(groups, SortKeyLabel, Descending)
	assert.Equal(t, []string{"Célula 10", "Célula 2", "Célula 1"}, labels(got))
}

func TestSort_ByCount(t *testing.T) {
	groups := []Group{
		{Label: "A", Count: 2},
		{Label: "B", Count: 5},
		{Label: "C", Count: 1},
	}

	got := Sort(groups, SortKeyCount, Descending)
	assert.Equal(t, []string{"B", "A", "C"}, labels(got))
}

func TestSort_ByMetricMissingIsZero(t *testing.T) {
	groups := []Group{
		{Label: "A", Values: map[string]float64{"ofrenda": 100}},
		{Label: "B", Values: map[string]float64{}},
		{Label: "C", Values: map[string]float64{"ofrenda": 50}},
	}

	got := Sort(groups, "ofrenda", Ascending)
	assert.Equal(t, []string{"B", "C", "A"}, labels(got))
}

func TestSort_StableTies(t *testing.T) {
	groups := []Group{
		{Label: "A", Count: 3},
		{Label: "B", Count: 3},
		{Label: "C", Count: 3},
	}

	got := Sort(groups, SortKeyCount, Ascending)
	assert.Equal(t, []string{"A", "B", "C"}, labels(got))

	got = Sort(groups, SortKeyCount, Descending)
	assert.Equal(t, []string{"A", "B", "C"}, labels(got), "ties keep input order in both directions")
}

func TestSort_Idempotent(t *testing.T) {
	groups := []Group{
		{Label: "Célula 3", Count: 1},
		{Label: "Célula 1", Count: 2},
		{Label: "Célula 20", Count: 3},
	}

	once := Sort(groups, SortKeyLabel, Ascending)
	twice := Sort(once, SortKeyLabel, Ascending)
	assert.Equal(t, once, twice)
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	groups := []Group{
		{Label: "B", Count: 2},
		{Label: "A", Count: 1},
	}

	got := Sort(groups, SortKeyLabel, Ascending)
	require.Equal(t, []string{"A", "B"}, labels(got))
	assert.Equal(t, []string{"B", "A"}, labels(groups), "input order unchanged")
}
