// Package engine executes parsed commands against an in-memory database.
//
// A Database is not safe for concurrent use; callers that share one must
// serialize access.
package engine

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/leapstack-labs/nail/pkg/core"
)

// Database holds named tables for the lifetime of the value.
type Database struct {
	tables map[string]*Table
	logger *slog.Logger
}

// Config holds database configuration.
type Config struct {
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// New creates an empty database.
func New(cfg Config) *Database {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Database{
		tables: make(map[string]*Table),
		logger: logger,
	}
}

// Run executes one command. A non-nil error always implements Error.
func (db *Database) Run(cmd core.Command) (Output, error) {
	var (
		out Output
		err Error
	)
	switch c := cmd.(type) {
	case *core.New:
		out = db.create(c)
	case *core.Insert:
		out, err = db.insert(c)
	case *core.Get:
		out, err = db.get(c)
	case *core.Remove:
		out, err = db.remove(c)
	default:
		panic(fmt.Sprintf("engine: unexpected command %T", cmd))
	}

	if err != nil {
		db.logger.Debug("command failed", "command", commandName(cmd), "error", err.Error())
		return nil, err
	}
	return out, nil
}

// Tables returns the names of all tables, sorted.
func (db *Database) Tables() []string {
	names := make([]string, 0, len(db.tables))
	for name := range db.tables {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Table returns the named table.
func (db *Database) Table(name string) (*Table, bool) {
	t, ok := db.tables[name]
	return t, ok
}

// lookup returns the named table or a NoSuchTableError.
func (db *Database) lookup(name string) (*Table, Error) {
	t, ok := db.tables[name]
	if !ok {
		return nil, &NoSuchTableError{Table: name}
	}
	return t, nil
}

// create defines (or replaces) a table.
func (db *Database) create(cmd *core.New) *TableCreated {
	_, replaced := db.tables[cmd.Table]
	db.tables[cmd.Table] = newTable(cmd.Table, cmd.Definitions)

	db.logger.Debug("table created",
		"table", cmd.Table,
		"columns", len(cmd.Definitions),
		"replaced", replaced)
	return &TableCreated{Table: cmd.Table}
}

func commandName(cmd core.Command) string {
	switch cmd.(type) {
	case *core.New:
		return "new"
	case *core.Insert:
		return "insert"
	case *core.Get:
		return "get"
	case *core.Remove:
		return "remove"
	default:
		return fmt.Sprintf("%T", cmd)
	}
}
