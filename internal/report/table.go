package report

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Cell is a table cell. Style, when set, is applied to the padded cell so backgrounds fill the
// whole column.
type Cell struct {
	Text  string
	Style *lipgloss.Style
}

// Table represents a simple table formatter with dynamic column widths.
type Table struct {
	title     string
	headers   []string
	rows      [][]Cell
	padding   int
	maxWidths map[int]int // Maximum width per column index (0 = no limit)
}

// NewTable creates a new table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers:   headers,
		rows:      make([][]Cell, 0),
		padding:   2, // 2 spaces between columns
		maxWidths: make(map[int]int),
	}
}

// SetTitle sets a line printed above the header.
func (t *Table) SetTitle(title string) {
	t.title = title
}

// SetPadding sets the number of spaces between columns.
func (t *Table) SetPadding(padding int) {
	t.padding = padding
}

// SetColumnMaxWidth sets a maximum width for a specific column.
// Text longer than this will be wrapped to multiple lines.
func (t *Table) SetColumnMaxWidth(colIndex int, maxWidth int) {
	t.maxWidths[colIndex] = maxWidth
}

// AddRow adds a row of unstyled cells.
func (t *Table) AddRow(row []string) {
	cells := make([]Cell, len(row))
	for i, text := range row {
		cells[i] = Cell{Text: text}
	}
	t.AddCells(cells)
}

// AddCells adds a row of cells, padding or truncating it to the header count.
func (t *Table) AddCells(row []Cell) {
	if len(row) != len(t.headers) {
		newRow := make([]Cell, len(t.headers))
		copy(newRow, row)
		row = newRow
	}
	t.rows = append(t.rows, row)
}

// Render formats and returns the table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	// Wrap cells that exceed max width.
	wrappedRows := make([][][]string, len(t.rows))
	for rowIdx, row := range t.rows {
		wrappedRows[rowIdx] = make([][]string, len(row))
		for colIdx, cell := range row {
			if maxWidth, hasLimit := t.maxWidths[colIdx]; hasLimit && maxWidth > 0 {
				wrappedRows[rowIdx][colIdx] = wrapText(cell.Text, maxWidth)
			} else {
				wrappedRows[rowIdx][colIdx] = []string{cell.Text}
			}
		}
	}

	// Calculate column widths (respecting max widths).
	colWidths := make([]int, len(t.headers))
	for i, h := range t.headers {
		colWidths[i] = runewidth.StringWidth(h)
	}
	for _, wrappedRow := range wrappedRows {
		for i, wrappedCell := range wrappedRow {
			for _, line := range wrappedCell {
				if w := runewidth.StringWidth(line); w > colWidths[i] {
					if maxWidth, hasLimit := t.maxWidths[i]; hasLimit && maxWidth > 0 {
						colWidths[i] = max(colWidths[i], maxWidth)
					} else {
						colWidths[i] = w
					}
				}
			}
		}
	}

	gap := strings.Repeat(" ", t.padding)
	var result strings.Builder

	if t.title != "" {
		result.WriteString(t.title)
		result.WriteString("\n")
	}

	// Format header.
	headerParts := make([]string, len(t.headers))
	for i, h := range t.headers {
		headerParts[i] = padRight(h, colWidths[i])
	}
	result.WriteString(strings.Join(headerParts, gap))
	result.WriteString("\n")

	// Format separator.
	sepParts := make([]string, len(t.headers))
	for i, w := range colWidths {
		sepParts[i] = strings.Repeat("-", w)
	}
	result.WriteString(strings.Join(sepParts, gap))
	result.WriteString("\n")

	// Format data rows (with wrapping support).
	for rowIdx, wrappedRow := range wrappedRows {
		maxLines := 1
		for _, wrappedCell := range wrappedRow {
			maxLines = max(maxLines, len(wrappedCell))
		}

		for lineIdx := range maxLines {
			rowParts := make([]string, len(t.headers))
			for colIdx := range t.headers {
				text := ""
				if lineIdx < len(wrappedRow[colIdx]) {
					text = wrappedRow[colIdx][lineIdx]
				}
				text = padRight(text, colWidths[colIdx])
				if style := t.rows[rowIdx][colIdx].Style; style != nil {
					text = style.Render(text)
				}
				rowParts[colIdx] = text
			}
			result.WriteString(strings.Join(rowParts, gap))
			result.WriteString("\n")
		}
	}

	return result.String()
}

// padRight pads a string with spaces on the right to reach the desired display width.
// If the string is already as wide or wider, it is returned unchanged.
func padRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// wrapText wraps text to fit within the specified width, breaking at word boundaries.
func wrapText(text string, width int) []string {
	if width <= 0 || runewidth.StringWidth(text) <= width {
		return []string{text}
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	var lines []string
	currentLine := ""
	for _, word := range words {
		// If the word itself is longer than width, break it.
		if runewidth.StringWidth(word) > width {
			if currentLine != "" {
				lines = append(lines, currentLine)
				currentLine = ""
			}
			for runewidth.StringWidth(word) > width {
				head := runewidth.Truncate(word, width, "")
				if head == "" {
					_, size := utf8.DecodeRuneInString(word)
					head = word[:size]
				}
				lines = append(lines, head)
				word = word[len(head):]
			}
			currentLine = word
			continue
		}

		testLine := currentLine
		if testLine != "" {
			testLine += " "
		}
		testLine += word

		if runewidth.StringWidth(testLine) <= width {
			currentLine = testLine
		} else {
			if currentLine != "" {
				lines = append(lines, currentLine)
			}
			currentLine = word
		}
	}

	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return lines
}
