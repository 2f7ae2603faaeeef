package parser

import (
	"strconv"

	"github.com/leapstack-labs/nail/pkg/core"
	"github.com/leapstack-labs/nail/pkg/token"
)

// Expression parsing using precedence climbing.
//
// Grammar:
//
//	expr    → atom (binop atom)*
//	atom    → INT | FLOAT | STRING | TRUE | FALSE | NIL | IDENT | "(" expr ")"
//	binop   → "&&" | "||" | "==" | "<" | "<=" | ">" | ">=" | "+" | "-" | "*" | "/"
//
// Operands are folded left to right with core.Extend, which places each new
// operator according to core.Operator.Precedence. Equal precedence
// associates to the left.

// binaryOps maps operator tokens to their AST operator.
var binaryOps = map[TokenType]core.Operator{
	token.AND:   core.OpAnd,
	token.OR:    core.OpOr,
	token.EQ:    core.OpEq,
	token.LT:    core.OpLess,
	token.LE:    core.OpLessEq,
	token.GT:    core.OpMore,
	token.GE:    core.OpMoreEq,
	token.PLUS:  core.OpAdd,
	token.MINUS: core.OpSub,
	token.STAR:  core.OpMul,
	token.SLASH: core.OpDiv,
}

// parseExpression parses an expression.
func (p *Parser) parseExpression() (core.Expr, error) {
	expr, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := binaryOps[p.peekType()]
		if !ok {
			return expr, nil
		}
		p.advance() //nolint:errcheck // operator already checked

		right, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		expr = core.Extend(expr, op, right)
	}
}

// parseAtom parses a literal, a column reference or a parenthesized
// expression.
func (p *Parser) parseAtom() (core.Expr, error) {
	switch p.peekType() {
	case token.INT:
		tok, _ := p.advance()
		n, err := strconv.ParseInt(tok.Literal, 10, 32)
		if err != nil {
			return nil, &ParseError{Span: tok.Span, Cause: &LexError{Kind: InvalidIntLiteral, Span: tok.Span}}
		}
		return &core.Literal{Value: core.Int(n)}, nil

	case token.FLOAT:
		tok, _ := p.advance()
		f, err := strconv.ParseFloat(tok.Literal, 32)
		if err != nil {
			return nil, &ParseError{Span: tok.Span, Cause: &LexError{Kind: InvalidFloatLiteral, Span: tok.Span}}
		}
		return &core.Literal{Value: core.Float(f)}, nil

	case token.STRING:
		tok, _ := p.advance()
		return &core.Literal{Value: core.Str(tok.Literal)}, nil

	case token.TRUE:
		p.advance() //nolint:errcheck // TRUE already checked
		return &core.Literal{Value: core.Bool(true)}, nil

	case token.FALSE:
		p.advance() //nolint:errcheck // FALSE already checked
		return &core.Literal{Value: core.Bool(false)}, nil

	case token.NIL:
		p.advance() //nolint:errcheck // NIL already checked
		return &core.Literal{Value: core.Nil{}}, nil

	case token.IDENT:
		tok, _ := p.advance()
		return &core.Identifier{Name: tok.Literal}, nil

	case token.LPAREN:
		p.advance() //nolint:errcheck // LPAREN already checked
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, "')'"); err != nil {
			return nil, err
		}
		return &core.Enclosed{Expr: inner}, nil

	default:
		return nil, p.errorf("expression")
	}
}
