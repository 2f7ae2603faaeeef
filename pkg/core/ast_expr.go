package core

import "fmt"

// ---------- Expression Types ----------

// Literal is a constant value written in source.
type Literal struct {
	Value Value
}

func (*Literal) exprNode() {}

func (l *Literal) String() string { return l.Value.String() }

// Identifier names a column of the row an expression is evaluated against.
type Identifier struct {
	Name string
}

func (*Identifier) exprNode() {}

func (i *Identifier) String() string { return i.Name }

// Enclosed is a parenthesized expression. Operator precedence never
// reaches inside it.
type Enclosed struct {
	Expr Expr
}

func (*Enclosed) exprNode() {}

func (e *Enclosed) String() string { return "(" + e.Expr.String() + ")" }

// BinaryExpr represents a binary expression.
type BinaryExpr struct {
	Left  Expr
	Op    Operator
	Right Expr
}

func (*BinaryExpr) exprNode() {}

// String renders the expression with every nested binary operand
// parenthesized, so the tree shape is visible.
func (b *BinaryExpr) String() string {
	return operandString(b.Left) + " " + b.Op.String() + " " + operandString(b.Right)
}

func operandString(e Expr) string {
	if _, ok := e.(*BinaryExpr); ok {
		return "(" + e.String() + ")"
	}
	return e.String()
}

// ---------- Operators ----------

// Operator is a binary operator.
type Operator int

// Operator constants.
const (
	OpAnd Operator = iota
	OpOr
	OpEq
	OpLess
	OpLessEq
	OpMore
	OpMoreEq
	OpAdd
	OpSub
	OpMul
	OpDiv
)

var operatorSymbols = [...]string{
	OpAnd:    "&&",
	OpOr:     "||",
	OpEq:     "==",
	OpLess:   "<",
	OpLessEq: "<=",
	OpMore:   ">",
	OpMoreEq: ">=",
	OpAdd:    "+",
	OpSub:    "-",
	OpMul:    "*",
	OpDiv:    "/",
}

func (o Operator) String() string {
	if o >= 0 && int(o) < len(operatorSymbols) {
		return operatorSymbols[o]
	}
	return fmt.Sprintf("Operator(%d)", int(o))
}

// Precedence returns the binding strength of the operator; higher binds
// tighter.
//
//	0: && ||
//	1: == < <= > >=
//	2: + -
//	3: * /
func (o Operator) Precedence() int {
	switch o {
	case OpAnd, OpOr:
		return 0
	case OpEq, OpLess, OpLessEq, OpMore, OpMoreEq:
		return 1
	case OpAdd, OpSub:
		return 2
	case OpMul, OpDiv:
		return 3
	default:
		return -1
	}
}

// Extend appends "op right" to an already parsed expression, respecting
// precedence: if e is a binary operation whose operator binds looser than
// op, the new operation is pushed down into its right operand; otherwise
// e becomes the left operand of the new operation. Applying Extend left to
// right over a flat operand/operator sequence yields a tree that is
// left-associative within a precedence tier.
func Extend(e Expr, op Operator, right Expr) Expr {
	if bin, ok := e.(*BinaryExpr); ok && op.Precedence() > bin.Op.Precedence() {
		return &BinaryExpr{Left: bin.Left, Op: bin.Op, Right: Extend(bin.Right, op, right)}
	}
	return &BinaryExpr{Left: e, Op: op, Right: right}
}
