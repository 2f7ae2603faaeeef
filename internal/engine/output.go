package engine

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/nail/pkg/format"
)

// Output is the result of a successful command. The set of
// implementations is closed: TableCreated, RowsInserted, Selection and
// Removed.
type Output interface {
	// String renders a short human-readable summary (the grid for a
	// Selection).
	String() string
	outputNode()
}

// TableCreated reports a new (or replaced) table.
type TableCreated struct {
	Table string
}

// RowsInserted reports an insertion. Count rows were stored; Errors lists
// the rejected records in record order.
type RowsInserted struct {
	Table  string
	Count  int
	Errors []RowError
}

// Selection holds the table produced by a get.
type Selection struct {
	Table *Table
}

// Removed reports how many rows a remove deleted.
type Removed struct {
	Table string
	Count int
}

func (*TableCreated) outputNode() {}
func (*RowsInserted) outputNode() {}
func (*Selection) outputNode()    {}
func (*Removed) outputNode()      {}

func (o *TableCreated) String() string {
	return fmt.Sprintf("created table %q", o.Table)
}

func (o *RowsInserted) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "inserted %s into %q", plural(o.Count, "row"), o.Table)
	if len(o.Errors) > 0 {
		fmt.Fprintf(&sb, ", rejected %d", len(o.Errors))
		for _, e := range o.Errors {
			sb.WriteString("\n  ")
			sb.WriteString(e.Error())
		}
	}
	return sb.String()
}

func (o *Selection) String() string {
	return format.TableString(o.Table)
}

func (o *Removed) String() string {
	return fmt.Sprintf("removed %s from %q", plural(o.Count, "row"), o.Table)
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
