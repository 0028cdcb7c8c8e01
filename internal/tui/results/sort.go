package results

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/nmoreaux/sqlab/internal/database"
)

// collator provides locale-aware string ordering for non-numeric
// cells. The TUI is single-threaded, so sharing one is fine.
var collator = collate.New(language.Und)

// sortedOrder returns the display order of rows sorted by column col.
// Nulls always land after real values, in both directions; numeric
// pairs compare numerically; everything else compares as collated
// strings.
func sortedOrder(rows [][]database.Value, col int, asc bool) []int {
	order := identityOrder(len(rows))

	sort.SliceStable(order, func(i, j int) bool {
		a := rows[order[i]][col]
		b := rows[order[j]][col]

		switch {
		case a.IsNull() && b.IsNull():
			return false
		case a.IsNull():
			return false
		case b.IsNull():
			return true
		}

		c := compareValues(a, b)
		if asc {
			return c < 0
		}
		return c > 0
	})

	return order
}

func identityOrder(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}

func compareValues(a, b database.Value) int {
	if a.Kind() == database.KindNumber && b.Kind() == database.KindNumber {
		switch {
		case a.Number() < b.Number():
			return -1
		case a.Number() > b.Number():
			return 1
		default:
			return 0
		}
	}
	return collator.CompareString(a.Text(), b.Text())
}
