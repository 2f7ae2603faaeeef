// Package format renders result tables as aligned text grids.
//
//	 Id | Name  | Age
//	----+-------+-----
//	 0  | "Neo" | 37
//
// Column widths are measured in terminal cells, so wide (East Asian)
// characters keep the grid aligned.
package format

import (
	"io"

	"github.com/leapstack-labs/nail/pkg/core"
)

// Grid is a rectangular table of values with named columns.
type Grid interface {
	ColumnNames() []string
	NumRows() int
	Value(row, col int) core.Value
}

// Table writes g to w as a text grid.
func Table(w io.Writer, g Grid) error {
	p := newPrinter(g)
	_, err := io.WriteString(w, p.String())
	return err
}

// TableString renders g as a text grid.
func TableString(g Grid) string {
	return newPrinter(g).String()
}

// Cell returns the text shown for v in a grid cell.
func Cell(v core.Value) string {
	return v.String()
}
