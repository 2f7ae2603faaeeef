package engine

import (
	"fmt"
	"math"

	"github.com/leapstack-labs/nail/pkg/core"
)

// rowLookup resolves identifiers during evaluation.
type rowLookup interface {
	lookup(name string) (core.Value, bool)
}

// eval evaluates expr against r. There is no implicit coercion: every
// operator requires the operand pairs listed in apply. Both operands of
// && and || are always evaluated.
func eval(expr core.Expr, r rowLookup) (core.Value, EvalError) {
	switch e := expr.(type) {
	case *core.Literal:
		return e.Value, nil

	case *core.Identifier:
		v, ok := r.lookup(e.Name)
		if !ok {
			return nil, &NoSuchColumnError{Column: e.Name}
		}
		return v, nil

	case *core.Enclosed:
		return eval(e.Expr, r)

	case *core.BinaryExpr:
		left, err := eval(e.Left, r)
		if err != nil {
			return nil, err
		}
		right, err := eval(e.Right, r)
		if err != nil {
			return nil, err
		}
		return apply(e.Op, left, right)

	default:
		panic(fmt.Sprintf("engine: unexpected expression %T", expr))
	}
}

// apply evaluates a binary operator on two values.
func apply(op core.Operator, left, right core.Value) (core.Value, EvalError) {
	switch l := left.(type) {
	case core.Int:
		if r, ok := right.(core.Int); ok {
			return applyInt(op, l, r)
		}
	case core.Float:
		if r, ok := right.(core.Float); ok {
			return applyFloat(op, l, r)
		}
	case core.Str:
		if r, ok := right.(core.Str); ok && op == core.OpEq {
			return core.Bool(l == r), nil
		}
	case core.Bool:
		if r, ok := right.(core.Bool); ok {
			switch op {
			case core.OpAnd:
				return l && r, nil
			case core.OpOr:
				return l || r, nil
			}
		}
	}
	return nil, &CannotEvaluateError{Op: op, Left: left.Ty(), Right: right.Ty()}
}

func applyInt(op core.Operator, l, r core.Int) (core.Value, EvalError) {
	var wide int64
	switch op {
	case core.OpAdd:
		wide = int64(l) + int64(r)
	case core.OpSub:
		wide = int64(l) - int64(r)
	case core.OpMul:
		wide = int64(l) * int64(r)
	case core.OpDiv:
		if r == 0 {
			return nil, &DivisionByZeroError{Ty: core.TyInt}
		}
		wide = int64(l) / int64(r)
	case core.OpEq:
		return core.Bool(l == r), nil
	case core.OpLess:
		return core.Bool(l < r), nil
	case core.OpLessEq:
		return core.Bool(l <= r), nil
	case core.OpMore:
		return core.Bool(l > r), nil
	case core.OpMoreEq:
		return core.Bool(l >= r), nil
	default:
		return nil, &CannotEvaluateError{Op: op, Left: core.TyInt, Right: core.TyInt}
	}

	if wide < math.MinInt32 || wide > math.MaxInt32 {
		return nil, &OverflowError{Op: op, Left: l, Right: r}
	}
	return core.Int(wide), nil
}

func applyFloat(op core.Operator, l, r core.Float) (core.Value, EvalError) {
	switch op {
	case core.OpAdd:
		return l + r, nil
	case core.OpSub:
		return l - r, nil
	case core.OpMul:
		return l * r, nil
	case core.OpDiv:
		if r == 0 {
			return nil, &DivisionByZeroError{Ty: core.TyFloat}
		}
		return l / r, nil
	case core.OpEq:
		return core.Bool(l == r), nil
	case core.OpLess:
		return core.Bool(l < r), nil
	case core.OpLessEq:
		return core.Bool(l <= r), nil
	case core.OpMore:
		return core.Bool(l > r), nil
	case core.OpMoreEq:
		return core.Bool(l >= r), nil
	default:
		return nil, &CannotEvaluateError{Op: op, Left: core.TyFloat, Right: core.TyFloat}
	}
}
