package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/nail/internal/engine"
	"github.com/leapstack-labs/nail/pkg/core"
	"github.com/leapstack-labs/nail/pkg/format"
)

// Document is the machine-readable form of a command result.
type Document struct {
	Kind    string   `json:"kind" yaml:"kind"`
	Table   string   `json:"table" yaml:"table"`
	Count   int      `json:"count" yaml:"count"`
	Columns []string `json:"columns,omitempty" yaml:"columns,omitempty"`
	Rows    [][]any  `json:"rows,omitempty" yaml:"rows,omitempty"`
	Errors  []string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// NewDocument converts an engine output into a Document.
func NewDocument(out engine.Output) Document {
	switch o := out.(type) {
	case *engine.TableCreated:
		return Document{Kind: "created", Table: o.Table}
	case *engine.RowsInserted:
		doc := Document{Kind: "inserted", Table: o.Table, Count: o.Count}
		for _, e := range o.Errors {
			doc.Errors = append(doc.Errors, e.Error())
		}
		return doc
	case *engine.Selection:
		doc := Document{
			Kind:    "selected",
			Table:   o.Table.Name,
			Count:   o.Table.Len(),
			Columns: o.Table.ColumnNames(),
		}
		for i := range o.Table.Len() {
			values := o.Table.Row(i)
			row := make([]any, len(values))
			for j, v := range values {
				row[j] = nativeValue(v)
			}
			doc.Rows = append(doc.Rows, row)
		}
		return doc
	case *engine.Removed:
		return Document{Kind: "removed", Table: o.Table, Count: o.Count}
	default:
		panic(fmt.Sprintf("output: unexpected result %T", out))
	}
}

// nativeValue maps a value onto the Go type encoders understand.
func nativeValue(v core.Value) any {
	switch v := v.(type) {
	case core.Str:
		return string(v)
	case core.Int:
		return int32(v)
	case core.Float:
		return float32(v)
	case core.Bool:
		return bool(v)
	default:
		return nil
	}
}

// RenderOutput writes one command result in the effective mode.
func (r *Renderer) RenderOutput(out engine.Output) error {
	mode := r.EffectiveMode()
	switch mode {
	case ModeJSON:
		return r.JSON(NewDocument(out))
	case ModeYAML:
		return r.YAML(NewDocument(out))
	}

	sel, ok := out.(*engine.Selection)
	if !ok {
		r.renderSummary(out, mode)
		return nil
	}

	switch mode {
	case ModeTable:
		return renderTable(r.out, sel.Table)
	case ModeCSV:
		return renderCSV(r.out, sel.Table)
	case ModeMarkdown:
		return renderMarkdown(r.out, sel.Table)
	default:
		return format.Table(r.out, sel.Table)
	}
}

// renderSummary prints the one-line report of a non-selection result.
// CSV output keeps summaries off the data stream.
func (r *Renderer) renderSummary(out engine.Output, mode Mode) {
	lines := strings.Split(out.String(), "\n")
	if mode == ModeCSV {
		for _, line := range lines {
			_, _ = fmt.Fprintln(r.errOut, line)
		}
		return
	}

	r.Success(lines[0])
	for _, line := range lines[1:] {
		r.Warning(line)
	}
}

// YAML writes v as a YAML document.
func (r *Renderer) YAML(v any) error {
	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func renderTable(w io.Writer, g format.Grid) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	cols := g.ColumnNames()
	headerRow := make(table.Row, len(cols))
	for i, col := range cols {
		headerRow[i] = col
	}
	t.AppendHeader(headerRow)

	for i := range g.NumRows() {
		row := make(table.Row, len(cols))
		for j := range cols {
			row[j] = format.Cell(g.Value(i, j))
		}
		t.AppendRow(row)
	}

	t.Render()
	_, err := fmt.Fprintf(w, "(%d rows)\n", g.NumRows())
	return err
}

func renderCSV(w io.Writer, g format.Grid) error {
	cw := csv.NewWriter(w)
	cols := g.ColumnNames()
	if err := cw.Write(cols); err != nil {
		return err
	}
	record := make([]string, len(cols))
	for i := range g.NumRows() {
		for j := range cols {
			record[j] = csvCell(g.Value(i, j))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// csvCell writes strings unquoted and nil as an empty field.
func csvCell(v core.Value) string {
	switch v := v.(type) {
	case core.Str:
		return string(v)
	case core.Nil:
		return ""
	default:
		return v.String()
	}
}

func renderMarkdown(w io.Writer, g format.Grid) error {
	cols := g.ColumnNames()
	var sb strings.Builder
	sb.WriteString("| " + strings.Join(cols, " | ") + " |\n")

	seps := make([]string, len(cols))
	for i := range seps {
		seps[i] = "---"
	}
	sb.WriteString("| " + strings.Join(seps, " | ") + " |\n")

	values := make([]string, len(cols))
	for i := range g.NumRows() {
		for j := range cols {
			values[j] = strings.ReplaceAll(format.Cell(g.Value(i, j)), "|", `\|`)
		}
		sb.WriteString("| " + strings.Join(values, " | ") + " |\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
