package component

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/leverage-calc/internal/ui/style"
)

// TableColumn represents a column configuration
type TableColumn struct {
	Header string
	Width  int
	Align  lipgloss.Position
}

// TableRow represents a row of data
type TableRow struct {
	Data  []string
	Style lipgloss.Style
}

// Table represents a data table component
type Table struct {
	columns     []TableColumn
	rows        []TableRow
	width       int
	selectedRow int

	headerStyle      lipgloss.Style
	rowStyle         lipgloss.Style
	selectedRowStyle lipgloss.Style
	borderStyle      lipgloss.Style

	showBorder bool
	selectable bool
	zebra      bool
}

// NewTable creates a new table component
func NewTable() *Table {
	palette := style.DefaultPalette()

	return &Table{
		columns: make([]TableColumn, 0),
		rows:    make([]TableRow, 0),

		headerStyle: lipgloss.NewStyle().
			Foreground(palette.Secondary).
			Bold(true).
			Padding(0, 1),

		rowStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Padding(0, 1),

		selectedRowStyle: lipgloss.NewStyle().
			Foreground(palette.Background).
			Background(palette.Primary).
			Padding(0, 1),

		borderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.TextMuted),

		showBorder: true,
		selectable: true,
	}
}

// AddColumn adds a column to the table. A zero width shares the space left
// over after fixed columns.
func (t *Table) AddColumn(header string, width int, align lipgloss.Position) *Table {
	t.columns = append(t.columns, TableColumn{
		Header: header,
		Width:  width,
		Align:  align,
	})
	return t
}

// SetRows replaces all table rows
func (t *Table) SetRows(rows [][]string) *Table {
	t.rows = make([]TableRow, len(rows))
	for i, rowData := range rows {
		t.rows[i] = TableRow{Data: rowData, Style: t.rowStyle}
	}
	if t.selectedRow >= len(t.rows) {
		t.selectedRow = 0
	}
	return t
}

// SetRowStyle sets a custom style for a specific row
func (t *Table) SetRowStyle(rowIndex int, style lipgloss.Style) *Table {
	if rowIndex >= 0 && rowIndex < len(t.rows) {
		t.rows[rowIndex].Style = style
	}
	return t
}

// SetWidth sets the width used to size auto-width columns.
func (t *Table) SetWidth(width int) *Table {
	t.width = width
	return t
}

// GetSelectedRow returns the currently selected row index
func (t *Table) GetSelectedRow() int {
	return t.selectedRow
}

// MoveUp moves selection up
func (t *Table) MoveUp() *Table {
	if t.selectable && t.selectedRow > 0 {
		t.selectedRow--
	}
	return t
}

// MoveDown moves selection down
func (t *Table) MoveDown() *Table {
	if t.selectable && t.selectedRow < len(t.rows)-1 {
		t.selectedRow++
	}
	return t
}

// SetSelectable enables/disables row selection
func (t *Table) SetSelectable(selectable bool) *Table {
	t.selectable = selectable
	return t
}

// SetShowBorder enables/disables table border
func (t *Table) SetShowBorder(show bool) *Table {
	t.showBorder = show
	return t
}

// SetZebra enables/disables alternating row colors
func (t *Table) SetZebra(zebra bool) *Table {
	t.zebra = zebra
	return t
}

// View renders the table
func (t *Table) View() string {
	if len(t.columns) == 0 {
		return "No columns defined"
	}

	widths := t.columnWidths()
	var content strings.Builder

	header := make([]string, len(t.columns))
	separator := make([]string, len(t.columns))
	for i, col := range t.columns {
		header[i] = renderCell(col.Header, widths[i], col.Align, t.headerStyle)
		separator[i] = strings.Repeat("─", widths[i])
	}
	content.WriteString(strings.Join(header, "│"))
	content.WriteString("\n")
	content.WriteString(strings.Join(separator, "┼"))

	for rowIndex, row := range t.rows {
		rowStyle := row.Style
		if t.selectable && rowIndex == t.selectedRow {
			rowStyle = t.selectedRowStyle
		} else if t.zebra && rowIndex%2 == 1 {
			rowStyle = rowStyle.Background(style.DefaultPalette().BackgroundAlt)
		}

		cells := make([]string, len(t.columns))
		for i, col := range t.columns {
			cellData := ""
			if i < len(row.Data) {
				cellData = row.Data[i]
			}
			cells[i] = renderCell(cellData, widths[i], col.Align, rowStyle)
		}
		content.WriteString("\n")
		content.WriteString(strings.Join(cells, "│"))
	}

	result := content.String()
	if t.showBorder {
		result = t.borderStyle.Render(result)
	}
	return result
}

// renderCell truncates content to width and aligns it.
func renderCell(content string, width int, align lipgloss.Position, cellStyle lipgloss.Style) string {
	// Padding(0, 1) on every cell style
	inner := width - 2
	runes := []rune(content)
	if inner > 0 && len(runes) > inner {
		if inner > 3 {
			content = string(runes[:inner-3]) + "..."
		} else {
			content = string(runes[:inner])
		}
	}
	return cellStyle.Width(width).Align(align).Render(content)
}

// columnWidths resolves zero-width columns against the table width.
func (t *Table) columnWidths() []int {
	widths := make([]int, len(t.columns))
	fixed, auto := 0, 0
	for i, col := range t.columns {
		widths[i] = col.Width
		if col.Width > 0 {
			fixed += col.Width
		} else {
			auto++
		}
	}
	if auto == 0 {
		return widths
	}

	share := 12
	if available := t.width - fixed - (len(t.columns) - 1); t.width > 0 && available/auto > share {
		share = available / auto
	}
	for i := range widths {
		if widths[i] <= 0 {
			widths[i] = share
		}
	}
	return widths
}

// GetRowCount returns the number of rows
func (t *Table) GetRowCount() int {
	return len(t.rows)
}

// GetSelectedRowData returns the data of the currently selected row
func (t *Table) GetSelectedRowData() []string {
	if t.selectedRow >= 0 && t.selectedRow < len(t.rows) {
		return t.rows[t.selectedRow].Data
	}
	return nil
}
