package explorer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nmoreaux/sqlab/internal/database"
	"github.com/nmoreaux/sqlab/internal/tui/theme"
)

// QuickQueryMsg asks the app to run a query built from the explorer.
type QuickQueryMsg struct {
	Query string
}

// flatItem is one visible line: a table header or a column under an
// expanded table.
type flatItem struct {
	table    string
	column   database.Column
	isColumn bool
}

// Model is the schema explorer component: a two-level tree of user
// tables and their columns, rebuilt from introspection results.
type Model struct {
	schemas  []database.TableSchema
	expanded map[string]bool
	items    []flatItem
	cursor   int
	width    int
	height   int
	focused  bool
	loading  bool
}

// New creates a new explorer model.
func New() Model {
	return Model{expanded: make(map[string]bool)}
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

// Focused returns whether the explorer has focus.
func (m Model) Focused() bool {
	return m.focused
}

// SetLoading sets the loading state.
func (m *Model) SetLoading(l bool) {
	m.loading = l
}

// SetSchemas replaces the displayed schema with fresh introspection
// results. Expansion state survives across refreshes.
func (m *Model) SetSchemas(schemas []database.TableSchema) {
	m.schemas = schemas
	m.loading = false
	m.flatten()
}

// TableNames returns the names of all listed tables.
func (m Model) TableNames() []string {
	names := make([]string, 0, len(m.schemas))
	for _, s := range m.schemas {
		names = append(names, s.Name)
	}
	return names
}

// SelectedTable returns the table under the cursor, if any.
func (m Model) SelectedTable() (string, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return "", false
	}
	return m.items[m.cursor].table, true
}

func (m *Model) flatten() {
	m.items = nil
	for _, s := range m.schemas {
		m.items = append(m.items, flatItem{table: s.Name})
		if m.expanded[s.Name] {
			for _, col := range s.Columns {
				m.items = append(m.items, flatItem{
					table:    s.Name,
					column:   col,
					isColumn: true,
				})
			}
		}
	}
	if m.cursor >= len(m.items) {
		m.cursor = max(0, len(m.items)-1)
	}
}

// Init returns the initial command (none).
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the explorer.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "enter", "right", "l":
			m.toggle(true)
		case "left", "h":
			m.toggle(false)
		case "s":
			if table, ok := m.SelectedTable(); ok {
				query := fmt.Sprintf("SELECT * FROM %s LIMIT 100", table)
				return m, func() tea.Msg {
					return QuickQueryMsg{Query: query}
				}
			}
		}
	}

	return m, nil
}

func (m *Model) toggle(expand bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return
	}
	item := m.items[m.cursor]
	if item.isColumn {
		return
	}
	if expand && !m.expanded[item.table] {
		m.expanded[item.table] = true
	} else {
		delete(m.expanded, item.table)
	}
	m.flatten()
}

// View renders the explorer.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(theme.ColorPrimary).
		Bold(true).
		Padding(0, 1)

	title := titleStyle.Render("Tables")

	if m.loading {
		return title + "\n" + theme.StyleMuted.Render("  Loading...")
	}

	if len(m.items) == 0 {
		return title + "\n" + theme.StyleMuted.Render("  No tables")
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")

	visibleHeight := m.height - 2
	if visibleHeight < 1 {
		visibleHeight = 1
	}

	scrollOffset := 0
	if m.cursor >= visibleHeight {
		scrollOffset = m.cursor - visibleHeight + 1
	}

	for i := scrollOffset; i < len(m.items) && i < scrollOffset+visibleHeight; i++ {
		b.WriteString(m.renderItem(m.items[i], i == m.cursor))
		if i < scrollOffset+visibleHeight-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (m Model) renderItem(item flatItem, selected bool) string {
	var line string
	if item.isColumn {
		meta := item.column.DeclType
		var marks []string
		if item.column.PrimaryKey {
			marks = append(marks, "PK")
		}
		if item.column.NotNull {
			marks = append(marks, "NN")
		}
		if len(marks) > 0 {
			meta += " " + strings.Join(marks, ",")
		}
		line = "    " + item.column.Name + " " +
			lipgloss.NewStyle().Foreground(theme.ColorMuted).Render(meta)
	} else {
		icon := "▶ "
		if m.expanded[item.table] {
			icon = "▼ "
		}
		line = icon + item.table
	}

	if m.width > 0 && lipgloss.Width(line) > m.width-2 {
		line = line[:m.width-4] + ".."
	}

	if selected {
		return lipgloss.NewStyle().
			Foreground(theme.ColorHighlight).
			Bold(true).
			Render(line)
	}
	return line
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
