package results

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nmoreaux/sqlab/internal/database"
)

func TestBuildCSV(t *testing.T) {
	columns := []string{"c1", "c2"}
	rows := [][]database.Value{
		{database.Text("a,b"), database.Null()},
		{database.Text(`x"y`), database.Number(3)},
	}

	got := buildCSV(columns, rows, identityOrder(len(rows)))

	require.Equal(t, "c1,c2\n\"a,b\",\n\"x\"\"y\",3", got)
}

func TestBuildCSVUsesDisplayOrder(t *testing.T) {
	columns := []string{"n"}
	rows := [][]database.Value{
		{database.Number(2)},
		{database.Number(1)},
	}

	got := buildCSV(columns, rows, []int{1, 0})

	require.Equal(t, "n\n1\n2", got)
}

func TestBuildCSVRoundTrip(t *testing.T) {
	columns := []string{"name", "note"}
	rows := [][]database.Value{
		{database.Text("a,b"), database.Text("plain")},
		{database.Text(`quote "inside"`), database.Text("multi\nline")},
		{database.Text(""), database.Text("empty neighbor")},
	}

	doc := buildCSV(columns, rows, identityOrder(len(rows)))

	records, err := csv.NewReader(strings.NewReader(doc)).ReadAll()
	require.NoError(t, err)

	require.Equal(t, columns, records[0])
	for i, row := range rows {
		for j, v := range row {
			require.Equal(t, v.Text(), records[i+1][j])
		}
	}
}

func TestBuildCSVStructuredValues(t *testing.T) {
	columns := []string{"payload"}
	rows := [][]database.Value{
		{database.Structured(`{"a":1}`)},
	}

	got := buildCSV(columns, rows, identityOrder(len(rows)))

	require.Equal(t, "payload\n\"{\"\"a\"\":1}\"", got)
}
