package engine

import (
	"github.com/leapstack-labs/nail/pkg/core"
)

// remove deletes every row matching the filter. The filter is evaluated
// against all rows before anything is deleted.
func (db *Database) remove(cmd *core.Remove) (*Removed, Error) {
	t, err := db.lookup(cmd.Table)
	if err != nil {
		return nil, err
	}

	rows, err := t.matching(cmd.Filter)
	if err != nil {
		return nil, err
	}

	// rows is ascending; each deletion shifts the later rows down by one.
	for k, i := range rows {
		t.deleteRow(i - k)
	}

	db.logger.Debug("rows removed", "table", cmd.Table, "removed", len(rows))
	return &Removed{Table: cmd.Table, Count: len(rows)}, nil
}
