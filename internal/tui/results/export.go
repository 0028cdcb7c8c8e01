package results

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nmoreaux/sqlab/internal/database"
)

// buildCSV renders columns and rows (in the given display order) as a
// CSV document. Text and structured cells are double-quoted with
// embedded quotes doubled; numbers are written plain; nulls become an
// empty unquoted field.
func buildCSV(columns []string, rows [][]database.Value, order []int) string {
	var b strings.Builder
	b.WriteString(strings.Join(columns, ","))

	for _, idx := range order {
		b.WriteByte('\n')
		for i, v := range rows[idx] {
			if i > 0 {
				b.WriteByte(',')
			}
			switch v.Kind() {
			case database.KindNull:
				// empty field
			case database.KindNumber:
				b.WriteString(v.Text())
			default:
				b.WriteByte('"')
				b.WriteString(strings.ReplaceAll(v.Text(), `"`, `""`))
				b.WriteByte('"')
			}
		}
	}

	return b.String()
}

// copyCSVCmd writes the currently displayed rows to the system
// clipboard as CSV. A failed clipboard write is logged and otherwise
// swallowed; it never surfaces as a user-facing error.
func (m Model) copyCSVCmd() tea.Cmd {
	if m.result == nil {
		return nil
	}

	columns := m.result.Columns
	rows := m.result.Rows
	order := m.order
	log := m.log

	return func() tea.Msg {
		doc := buildCSV(columns, rows, order)
		if err := clipboard.WriteAll(doc); err != nil {
			log.Warn("clipboard write failed", zap.Error(err))
			return nil
		}
		return StatusNotifyMsg{
			Message: fmt.Sprintf("Copied %d row(s) as CSV", len(order)),
		}
	}
}

// copyCellCmd writes the cell at the top visible row and the selected
// column to the clipboard.
func (m Model) copyCellCmd() tea.Cmd {
	if m.result == nil || m.scrollY >= len(m.order) {
		return nil
	}

	row := m.result.Rows[m.order[m.scrollY]]
	if m.cursorX >= len(row) {
		return nil
	}
	val := row[m.cursorX].Display()
	log := m.log

	return func() tea.Msg {
		if err := clipboard.WriteAll(val); err != nil {
			log.Warn("clipboard write failed", zap.Error(err))
			return nil
		}
		return StatusNotifyMsg{Message: "Copied: " + truncateStatus(val, 40)}
	}
}

func truncateStatus(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
