package engine

import (
	"github.com/leapstack-labs/nail/pkg/core"
)

// projection is one resolved output column of a get.
type projection struct {
	source *Column
	name   string
}

// get filters and projects a table into a fresh result table.
func (db *Database) get(cmd *core.Get) (*Selection, Error) {
	t, err := db.lookup(cmd.Table)
	if err != nil {
		return nil, err
	}

	projections, err := t.resolve(cmd.Selections)
	if err != nil {
		return nil, err
	}

	rows, err := t.matching(cmd.Filter)
	if err != nil {
		return nil, err
	}

	result := &Table{Name: cmd.Table}
	for _, p := range projections {
		result.columns = append(result.columns, p.source.project(p.name, rows))
	}

	db.logger.Debug("rows selected",
		"table", cmd.Table,
		"rows", len(rows),
		"columns", len(result.columns))
	return &Selection{Table: result}, nil
}

// resolve maps selections to source columns. No selections means every
// stored column.
func (t *Table) resolve(selections []core.Selection) ([]projection, Error) {
	if len(selections) == 0 {
		selections = []core.Selection{&core.AllSelection{}}
	}

	var out []projection
	for _, sel := range selections {
		switch s := sel.(type) {
		case *core.ColumnSelection:
			c, ok := t.Column(s.Column)
			if !ok {
				return nil, &NoSuchColumnError{Column: s.Column}
			}
			out = append(out, projection{source: c, name: aliasOr(s.Alias, s.Column)})

		case *core.AllSelection:
			for _, c := range t.columns {
				out = append(out, projection{source: c, name: c.Name})
			}

		case *core.AttributeSelection:
			switch s.Attribute {
			case core.AttrID:
				out = append(out, projection{source: t.columns[0], name: aliasOr(s.Alias, s.Attribute.DefaultName())})
			default:
				return nil, &NoSuchColumnError{Column: "@" + s.Attribute.String()}
			}
		}
	}
	return out, nil
}

func aliasOr(alias, name string) string {
	if alias != "" {
		return alias
	}
	return name
}
