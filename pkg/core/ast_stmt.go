package core

// ---------- Command Types ----------

// New creates (or replaces) a table.
//
//	new table <name> <column>: <ty>[?], ...
type New struct {
	NodeInfo
	Table       string
	Definitions []ColumnDefinition
}

func (*New) commandNode() {}

// ColumnDefinition declares one user column of a table.
type ColumnDefinition struct {
	Name     string
	Ty       Ty
	Optional bool
}

// Insert appends one or more rows to a table. Each record is validated and
// committed on its own.
//
//	insert <name> <column>: <expr>, ...
//	insert <name> { <column>: <expr>, ...; ... }
type Insert struct {
	NodeInfo
	Table   string
	Records []Record
}

func (*Insert) commandNode() {}

// Record is one row of an insertion, in source order.
type Record []Assignment

// Lookup returns the expression assigned to column, if any.
func (r Record) Lookup(column string) (Expr, bool) {
	for _, a := range r {
		if a.Column == column {
			return a.Expr, true
		}
	}
	return nil, false
}

// Assignment binds a column of a record to an expression.
type Assignment struct {
	Column string
	Expr   Expr
}

// Get projects and filters the rows of a table.
//
//	get <name> [select <selection>, ...] [where <expr>]
type Get struct {
	NodeInfo
	Table      string
	Selections []Selection // empty means every stored column
	Filter     Expr        // nil means every row
}

func (*Get) commandNode() {}

// Remove deletes every row of a table matching a predicate.
//
//	remove <name> where <expr>
type Remove struct {
	NodeInfo
	Table  string
	Filter Expr
}

func (*Remove) commandNode() {}

// ---------- Selections ----------

// Selection is one projection item of a get command.
type Selection interface {
	selectionNode()
}

// ColumnSelection selects a stored column, optionally renamed.
type ColumnSelection struct {
	Column string
	Alias  string // empty when not renamed
}

func (*ColumnSelection) selectionNode() {}

// AllSelection (*) selects every stored column in declaration order.
type AllSelection struct{}

func (*AllSelection) selectionNode() {}

// AttributeSelection (@attr) selects a synthesized per-row value.
type AttributeSelection struct {
	Attribute RowAttribute
	Alias     string // empty when not renamed
}

func (*AttributeSelection) selectionNode() {}

// RowAttribute is a per-row value that is not a user column.
type RowAttribute int

// RowAttribute constants.
const (
	AttrID RowAttribute = iota
)

// IDColumn is the name of the implicit row identifier column.
const IDColumn = "Id"

// LookupRowAttribute resolves the name written after @.
func LookupRowAttribute(name string) (RowAttribute, bool) {
	switch name {
	case "id":
		return AttrID, true
	default:
		return 0, false
	}
}

func (a RowAttribute) String() string {
	switch a {
	case AttrID:
		return "id"
	default:
		return "?"
	}
}

// DefaultName is the output column name used when the selection is not
// renamed.
func (a RowAttribute) DefaultName() string {
	switch a {
	case AttrID:
		return IDColumn
	default:
		return a.String()
	}
}
