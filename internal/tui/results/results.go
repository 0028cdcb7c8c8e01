package results

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/nmoreaux/sqlab/internal/database"
	"github.com/nmoreaux/sqlab/internal/tui/theme"
)

// Model is the query results component: a sortable view over one
// QueryResult (or one error message), independent of how the result
// was obtained.
type Model struct {
	result *database.QueryResult
	errMsg string

	// order maps display position to row index. Sorting rewrites it;
	// the result itself is never reordered.
	order   []int
	sortCol int
	sortAsc bool

	cursorX   int
	scrollY   int
	width     int
	height    int
	focused   bool
	loading   bool
	colWidths []int

	log *zap.Logger
}

// New creates a new results model.
func New(log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	return Model{sortCol: -1, log: log}
}

// SetSize updates the component dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetFocused sets the focus state.
func (m *Model) SetFocused(f bool) {
	m.focused = f
}

// Focused returns whether the results pane has focus.
func (m Model) Focused() bool {
	return m.focused
}

// SetLoading sets the loading state.
func (m *Model) SetLoading(l bool) {
	m.loading = l
}

// SetResult sets the query result to display.
func (m *Model) SetResult(r *database.QueryResult) {
	m.result = r
	m.errMsg = ""
	m.loading = false
	m.scrollY = 0
	m.cursorX = 0
	m.ResetSort()
	m.calculateColumnWidths()
}

// SetError sets an error message to display. The table is suppressed
// until the next successful query.
func (m *Model) SetError(msg string) {
	m.errMsg = msg
	m.result = nil
	m.order = nil
	m.scrollY = 0
	m.loading = false
}

// ResetSort clears the sort state, restoring execution order. The app
// coordinator calls this when a new query starts.
func (m *Model) ResetSort() {
	m.sortCol = -1
	m.sortAsc = true
	if m.result != nil {
		m.order = identityOrder(len(m.result.Rows))
	} else {
		m.order = nil
	}
}

// sortBy sorts the full result set by column col. Selecting the
// current sort column flips direction; a new column starts ascending.
func (m *Model) sortBy(col int) {
	if m.result == nil || col < 0 || col >= len(m.result.Columns) {
		return
	}
	if col == m.sortCol {
		m.sortAsc = !m.sortAsc
	} else {
		m.sortCol = col
		m.sortAsc = true
	}
	m.order = sortedOrder(m.result.Rows, m.sortCol, m.sortAsc)
	m.scrollY = 0
}

func (m *Model) calculateColumnWidths() {
	if m.result == nil || len(m.result.Columns) == 0 {
		m.colWidths = nil
		return
	}

	m.colWidths = make([]int, len(m.result.Columns))

	// Display width, not byte length; headers get +2 for the sort
	// indicator.
	for i, col := range m.result.Columns {
		m.colWidths[i] = lipgloss.Width(col) + 2
	}

	for _, row := range m.result.Rows {
		for i, cell := range row {
			w := lipgloss.Width(cell.Display())
			if i < len(m.colWidths) && w > m.colWidths[i] {
				m.colWidths[i] = w
			}
		}
	}

	for i := range m.colWidths {
		if m.colWidths[i] < 1 {
			m.colWidths[i] = 1
		}
		if m.colWidths[i] > 40 {
			m.colWidths[i] = 40
		}
	}
}

// Init returns the initial command (none).
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the results pane.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.scrollY > 0 {
				m.scrollY--
			}
		case "down", "j":
			if m.result != nil && m.scrollY < len(m.order)-1 {
				m.scrollY++
			}
		case "pgup":
			m.scrollY -= m.height / 2
			if m.scrollY < 0 {
				m.scrollY = 0
			}
		case "pgdown":
			if m.result != nil {
				m.scrollY += m.height / 2
				if maxScroll := len(m.order) - 1; m.scrollY > maxScroll {
					m.scrollY = maxScroll
				}
				if m.scrollY < 0 {
					m.scrollY = 0
				}
			}
		case "left", "h":
			if m.cursorX > 0 {
				m.cursorX--
			}
		case "right", "l":
			if m.result != nil && m.cursorX < len(m.result.Columns)-1 {
				m.cursorX++
			}
		case "s", "enter":
			m.sortBy(m.cursorX)
		case "y":
			return m, m.copyCSVCmd()
		case "c":
			return m, m.copyCellCmd()
		}
	}

	return m, nil
}

// View renders the results pane.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(theme.ColorPrimary).
		Bold(true).
		Padding(0, 1)

	title := titleStyle.Render("Results")

	if m.loading {
		return title + "\n" + theme.StyleMuted.Render("  Executing query...")
	}

	if m.errMsg != "" {
		return title + "\n" + theme.StyleError.Render("  Error: "+m.errMsg)
	}

	if m.result == nil {
		return title + "\n" + theme.StyleMuted.Render("  Execute a query to see results")
	}

	stats := fmt.Sprintf("%d row(s) | %s", m.result.RowCount, m.result.Duration.Round(time.Microsecond).String())
	if m.result.Limited {
		stats += " | capped"
	}
	header := title + "  " + theme.StyleMuted.Render(stats)

	if len(m.result.Columns) == 0 {
		return header + "\n" + theme.StyleSuccess.Render("  Query executed successfully")
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(m.renderHeaderRow())
	b.WriteString("\n")
	b.WriteString(m.renderSeparator())
	b.WriteString("\n")

	visibleRows := m.height - 4
	if visibleRows < 1 {
		visibleRows = 1
	}

	for i := m.scrollY; i < len(m.order) && i < m.scrollY+visibleRows; i++ {
		b.WriteString(m.renderDataRow(m.result.Rows[m.order[i]]))
		if i < m.scrollY+visibleRows-1 && i < len(m.order)-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (m Model) renderHeaderRow() string {
	parts := make([]string, len(m.result.Columns))
	for i, col := range m.result.Columns {
		label := col
		if i == m.sortCol {
			if m.sortAsc {
				label += " ▲"
			} else {
				label += " ▼"
			}
		}

		style := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorPrimary)
		if m.focused && i == m.cursorX {
			style = style.Foreground(theme.ColorHighlight)
		}
		parts[i] = style.Render(fitCell(label, m.columnWidth(i)))
	}
	return "  " + strings.Join(parts, " │ ")
}

func (m Model) renderDataRow(row []database.Value) string {
	parts := make([]string, len(row))
	for i, cell := range row {
		display := fitCell(cell.Display(), m.columnWidth(i))
		if cell.IsNull() {
			display = theme.StyleNull.Render(display)
		}
		parts[i] = display
	}
	return "  " + strings.Join(parts, " │ ")
}

func (m Model) columnWidth(i int) int {
	if i < len(m.colWidths) && m.colWidths[i] > 0 {
		return m.colWidths[i]
	}
	return 10
}

// fitCell truncates or pads a cell to the column width.
func fitCell(display string, width int) string {
	displayWidth := lipgloss.Width(display)

	if displayWidth > width {
		runes := []rune(display)
		if width > 1 && len(runes) > 0 {
			trimmed := runes
			for lipgloss.Width(string(trimmed)) >= width && len(trimmed) > 0 {
				trimmed = trimmed[:len(trimmed)-1]
			}
			display = string(trimmed) + "…"
		} else {
			display = "…"
		}
		displayWidth = lipgloss.Width(display)
	}

	if pad := width - displayWidth; pad > 0 {
		display += strings.Repeat(" ", pad)
	}
	return display
}

func (m Model) renderSeparator() string {
	parts := make([]string, len(m.colWidths))
	for i, w := range m.colWidths {
		if w < 1 {
			w = 1
		}
		parts[i] = strings.Repeat("─", w)
	}
	return "  " + lipgloss.NewStyle().Foreground(theme.ColorBorder).Render(strings.Join(parts, "─┼─"))
}
