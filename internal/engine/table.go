package engine

import (
	"slices"

	"github.com/leapstack-labs/nail/pkg/core"
)

// Column is a named, typed sequence of values, one per table row.
type Column struct {
	Name     string
	Ty       core.Ty
	Optional bool

	values []core.Value
}

// Len returns the number of values in the column.
func (c *Column) Len() int {
	return len(c.values)
}

// Value returns the value at row i.
func (c *Column) Value(i int) core.Value {
	return c.values[i]
}

// Values returns a copy of the column's values in row order.
func (c *Column) Values() []core.Value {
	return slices.Clone(c.values)
}

// project returns a copy of the column restricted to rows, renamed to name.
func (c *Column) project(name string, rows []int) *Column {
	out := &Column{
		Name:     name,
		Ty:       c.Ty,
		Optional: c.Optional,
		values:   make([]core.Value, len(rows)),
	}
	for i, row := range rows {
		out.values[i] = c.values[row]
	}
	return out
}

// Table is an ordered set of equal-length columns.
//
// Tables owned by a Database always start with the Id column. Tables
// produced by a get hold whatever the selections asked for, and may repeat
// a column name.
type Table struct {
	Name string

	columns []*Column
	nextID  int32 // Id of the next inserted row; never decreases
}

// newTable creates an empty table with the Id column followed by defs.
func newTable(name string, defs []core.ColumnDefinition) *Table {
	t := &Table{Name: name}
	t.columns = append(t.columns, &Column{Name: core.IDColumn, Ty: core.TyInt})
	for _, def := range defs {
		t.columns = append(t.columns, &Column{
			Name:     def.Name,
			Ty:       def.Ty,
			Optional: def.Optional,
		})
	}
	return t
}

// Columns returns the table's columns in order.
func (t *Table) Columns() []*Column {
	return slices.Clone(t.columns)
}

// Column returns the first column called name.
func (t *Table) Column(name string) (*Column, bool) {
	i := t.columnIndex(name)
	if i < 0 {
		return nil, false
	}
	return t.columns[i], true
}

func (t *Table) columnIndex(name string) int {
	return slices.IndexFunc(t.columns, func(c *Column) bool { return c.Name == name })
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if len(t.columns) == 0 {
		return 0
	}
	return t.columns[0].Len()
}

// ColumnNames returns the column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	return t.Len()
}

// Value returns the value at the given row and column position.
func (t *Table) Value(row, col int) core.Value {
	return t.columns[col].values[row]
}

// Row returns the values of row i in column order.
func (t *Table) Row(i int) []core.Value {
	out := make([]core.Value, len(t.columns))
	for j, c := range t.columns {
		out[j] = c.values[i]
	}
	return out
}

// appendRow stores values (one per column, Id slot ignored) under the next
// Id.
func (t *Table) appendRow(values []core.Value) {
	values[0] = core.Int(t.nextID)
	t.nextID++
	for i, c := range t.columns {
		c.values = append(c.values, values[i])
	}
}

// deleteRow removes row i from every column.
func (t *Table) deleteRow(i int) {
	for _, c := range t.columns {
		c.values = slices.Delete(c.values, i, i+1)
	}
}

// row is the view of one table row that expressions are evaluated against.
type row struct {
	table *Table
	index int
}

func (r row) lookup(name string) (core.Value, bool) {
	c, ok := r.table.Column(name)
	if !ok {
		return nil, false
	}
	return c.values[r.index], true
}

// emptyRow resolves no names. Insert expressions are evaluated against it.
type emptyRow struct{}

func (emptyRow) lookup(string) (core.Value, bool) {
	return nil, false
}

// matching returns, in ascending order, the rows for which filter holds.
// A nil filter matches every row.
func (t *Table) matching(filter core.Expr) ([]int, Error) {
	n := t.Len()
	rows := make([]int, 0, n)
	for i := range n {
		if filter == nil {
			rows = append(rows, i)
			continue
		}
		v, err := eval(filter, row{table: t, index: i})
		if err != nil {
			return nil, err
		}
		b, ok := v.(core.Bool)
		if !ok {
			return nil, &ExpectedBoolError{Found: v.Ty()}
		}
		if b {
			rows = append(rows, i)
		}
	}
	return rows, nil
}
