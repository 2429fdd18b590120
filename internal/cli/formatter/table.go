package formatter

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
)

var (
	tableHeader = color.New(color.Bold, color.Underline)
	tableFaint  = color.New(color.Faint)
)

// PrintTable writes an aligned table to w. The header row is bold and
// underlined; cells in faintCols are dimmed.
func PrintTable(w io.Writer, headers []string, rows [][]string, faintCols ...int) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 40

	head := make([]any, len(headers))
	for i, h := range headers {
		head[i] = tableHeader.Sprint(h)
	}
	tbl.AddRow(head...)

	faint := make(map[int]bool, len(faintCols))
	for _, c := range faintCols {
		faint[c] = true
	}
	for _, row := range rows {
		cells := make([]any, len(row))
		for i, cell := range row {
			if faint[i] {
				cells[i] = tableFaint.Sprint(cell)
				continue
			}
			cells[i] = cell
		}
		tbl.AddRow(cells...)
	}
	_, _ = fmt.Fprintln(w, tbl)
}
