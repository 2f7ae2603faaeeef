package engine

import (
	"fmt"

	"github.com/leapstack-labs/nail/pkg/core"
)

// Error is implemented by every error Database.Run returns. The set of
// implementations is closed; match them with errors.As or a type switch.
type Error interface {
	error
	engineError()
}

// EvalError is the subset of Error produced while evaluating an
// expression. It converts to Error (and error) without loss.
type EvalError interface {
	Error
	evalError()
}

// NoSuchTableError is returned when a command names an unknown table.
type NoSuchTableError struct {
	Table string
}

func (e *NoSuchTableError) Error() string {
	return fmt.Sprintf("no such table %q", e.Table)
}

// NoSuchColumnError is returned when a column name does not resolve.
type NoSuchColumnError struct {
	Column string
}

func (e *NoSuchColumnError) Error() string {
	return fmt.Sprintf("no such column %q", e.Column)
}

// IncorrectTyError is returned when an inserted value does not match its
// column's declared type, including nil for a non-optional column.
type IncorrectTyError struct {
	Column   string
	Expected core.Ty
	Found    core.Ty
}

func (e *IncorrectTyError) Error() string {
	return fmt.Sprintf("incorrect type for column %q: expected %s, found %s", e.Column, e.Expected, e.Found)
}

// NonOptionalColumnError is returned when a record omits a required column.
type NonOptionalColumnError struct {
	Column string
}

func (e *NonOptionalColumnError) Error() string {
	return fmt.Sprintf("missing value for non-optional column %q", e.Column)
}

// IdInsertError is returned when a record assigns the Id column.
type IdInsertError struct{}

func (e *IdInsertError) Error() string {
	return fmt.Sprintf("column %q is assigned automatically and cannot be inserted", core.IDColumn)
}

// ExpectedBoolError is returned when a filter does not evaluate to a bool.
type ExpectedBoolError struct {
	Found core.Ty
}

func (e *ExpectedBoolError) Error() string {
	return fmt.Sprintf("filter must evaluate to bool, found %s", e.Found)
}

// CannotEvaluateError is returned when an operator is applied to operand
// types it does not support.
type CannotEvaluateError struct {
	Op    core.Operator
	Left  core.Ty
	Right core.Ty
}

func (e *CannotEvaluateError) Error() string {
	return fmt.Sprintf("cannot evaluate %s %s %s", e.Left, e.Op, e.Right)
}

// DivisionByZeroError is returned for int or float division by zero.
type DivisionByZeroError struct {
	Ty core.Ty
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("%s division by zero", e.Ty)
}

// OverflowError is returned when int arithmetic leaves the 32-bit range.
type OverflowError struct {
	Op    core.Operator
	Left  core.Int
	Right core.Int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("int overflow evaluating %s %s %s", e.Left, e.Op, e.Right)
}

func (*NoSuchTableError) engineError()       {}
func (*NoSuchColumnError) engineError()      {}
func (*IncorrectTyError) engineError()       {}
func (*NonOptionalColumnError) engineError() {}
func (*IdInsertError) engineError()          {}
func (*ExpectedBoolError) engineError()      {}
func (*CannotEvaluateError) engineError()    {}
func (*DivisionByZeroError) engineError()    {}
func (*OverflowError) engineError()          {}

func (*NoSuchColumnError) evalError()   {}
func (*CannotEvaluateError) evalError() {}
func (*DivisionByZeroError) evalError() {}
func (*OverflowError) evalError()       {}

// RowError reports why one record of an insertion was rejected.
type RowError struct {
	Row int // index of the record in the insert command
	Err Error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Err)
}

// Unwrap returns the underlying engine error.
func (e RowError) Unwrap() error {
	return e.Err
}
