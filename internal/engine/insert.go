package engine

import (
	"github.com/leapstack-labs/nail/pkg/core"
)

// insert validates and stores each record independently. Rejected records
// are reported in order and do not affect the others.
func (db *Database) insert(cmd *core.Insert) (*RowsInserted, Error) {
	t, err := db.lookup(cmd.Table)
	if err != nil {
		return nil, err
	}

	out := &RowsInserted{Table: cmd.Table}
	for i, record := range cmd.Records {
		values, err := t.prepareRow(record)
		if err != nil {
			out.Errors = append(out.Errors, RowError{Row: i, Err: err})
			continue
		}
		t.appendRow(values)
		out.Count++
	}

	db.logger.Debug("rows inserted",
		"table", cmd.Table,
		"inserted", out.Count,
		"rejected", len(out.Errors))
	return out, nil
}

// prepareRow evaluates a record into one value per column. The Id slot is
// left empty for appendRow; omitted optional columns hold Nil.
func (t *Table) prepareRow(record core.Record) ([]core.Value, Error) {
	if _, ok := record.Lookup(core.IDColumn); ok {
		return nil, &IdInsertError{}
	}

	values := make([]core.Value, len(t.columns))
	for _, a := range record {
		v, err := eval(a.Expr, emptyRow{})
		if err != nil {
			return nil, err
		}

		i := t.columnIndex(a.Column)
		if i < 0 {
			return nil, &NoSuchColumnError{Column: a.Column}
		}
		col := t.columns[i]

		if core.IsNil(v) {
			if !col.Optional {
				return nil, &IncorrectTyError{Column: col.Name, Expected: col.Ty, Found: core.TyNil}
			}
		} else if v.Ty() != col.Ty {
			return nil, &IncorrectTyError{Column: col.Name, Expected: col.Ty, Found: v.Ty()}
		}
		values[i] = v
	}

	for i, col := range t.columns[1:] {
		if values[i+1] != nil {
			continue
		}
		if !col.Optional {
			return nil, &NonOptionalColumnError{Column: col.Name}
		}
		values[i+1] = core.Nil{}
	}
	return values, nil
}
