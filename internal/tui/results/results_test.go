package results

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nmoreaux/sqlab/internal/database"
)

func TestViewStatsLine(t *testing.T) {
	m := New(nil)
	m.SetSize(80, 20)
	m.SetResult(&database.QueryResult{
		Columns:  []string{"id"},
		Rows:     [][]database.Value{{database.Number(1)}, {database.Number(2)}},
		RowCount: 2,
		Duration: 1500 * time.Microsecond,
		Limited:  true,
	})

	view := m.View()
	require.Contains(t, view, "2 row(s)")
	require.Contains(t, view, "1.5ms")
	require.Contains(t, view, "capped")
}
