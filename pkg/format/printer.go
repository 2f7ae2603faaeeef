package format

import (
	"bytes"
	"strings"

	"golang.org/x/text/width"
)

// printer lays out one grid.
type printer struct {
	headers []string
	cells   [][]string // row-major cell text
	widths  []int      // display width per column
	output  *bytes.Buffer
}

func newPrinter(g Grid) *printer {
	headers := g.ColumnNames()
	p := &printer{
		headers: headers,
		cells:   make([][]string, g.NumRows()),
		widths:  make([]int, len(headers)),
		output:  &bytes.Buffer{},
	}

	for c, h := range headers {
		p.widths[c] = DisplayWidth(h)
	}
	for r := range p.cells {
		row := make([]string, len(headers))
		for c := range headers {
			row[c] = Cell(g.Value(r, c))
			p.widths[c] = max(p.widths[c], DisplayWidth(row[c]))
		}
		p.cells[r] = row
	}
	return p
}

// String renders the grid: header, separator, then one line per row.
func (p *printer) String() string {
	p.output.Reset()
	p.writeRow(p.headers)
	p.writeSeparator()
	for _, row := range p.cells {
		p.writeRow(row)
	}
	return p.output.String()
}

func (p *printer) writeRow(row []string) {
	padded := make([]string, len(row))
	for c, text := range row {
		padded[c] = " " + text + strings.Repeat(" ", p.widths[c]-DisplayWidth(text)) + " "
	}
	p.output.WriteString(strings.Join(padded, "|"))
	p.output.WriteByte('\n')
}

func (p *printer) writeSeparator() {
	runs := make([]string, len(p.widths))
	for c, w := range p.widths {
		runs[c] = strings.Repeat("-", w+2)
	}
	p.output.WriteString(strings.Join(runs, "+"))
	p.output.WriteByte('\n')
}

// DisplayWidth returns the number of terminal cells s occupies. Wide and
// fullwidth runes count as two.
func DisplayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}
