package parser

import (
	"fmt"

	"github.com/leapstack-labs/nail/pkg/core"
	"github.com/leapstack-labs/nail/pkg/token"
)

// Statement parsing: new, insert, get, remove.
//
// Grammar:
//
//	new        → NEW TABLE name [definition ("," definition)*]
//	definition → name ":" (STR | INT | FLOAT | BOOL) ["?"]
//	insert     → INSERT name (record | "{" (record ";")* [record] "}")
//	record     → [assignment ("," assignment)*]
//	assignment → name ":" expr
//	get        → GET name [SELECT selection ("," selection)*] [WHERE expr]
//	selection  → (name | "*" | "@" IDENT) [AS name]
//	remove     → REMOVE name WHERE expr
//
// Inside braces every record must be non-empty and the last ";" is
// optional.

// parseCommand parses one statement including its terminating ';'.
func (p *Parser) parseCommand() (core.Command, error) {
	start, _ := p.peek()

	var (
		cmd interface {
			core.Command
			SetSpan(token.Span)
		}
		err error
	)
	switch p.peekType() {
	case token.NEW:
		cmd, err = p.parseNew()
	case token.INSERT:
		cmd, err = p.parseInsert()
	case token.GET:
		cmd, err = p.parseGet()
	case token.REMOVE:
		cmd, err = p.parseRemove()
	default:
		return nil, p.errorf("command (new / insert / get / remove)")
	}
	if err != nil {
		return nil, err
	}

	end, err := p.expect(token.SEMICOLON, "';'")
	if err != nil {
		return nil, err
	}
	cmd.SetSpan(token.Span{Start: start.Span.Start, End: end.Span.End})
	return cmd, nil
}

// parseNew parses a table definition.
func (p *Parser) parseNew() (*core.New, error) {
	p.advance() //nolint:errcheck // NEW already checked

	if _, err := p.expect(token.TABLE, "'table'"); err != nil {
		return nil, err
	}
	name, _, err := p.expectName("table name")
	if err != nil {
		return nil, err
	}

	stmt := &core.New{Table: name}
	if !p.checkName() {
		return stmt, nil
	}

	seen := make(map[string]bool)
	for {
		def, span, err := p.parseDefinition()
		if err != nil {
			return nil, err
		}
		if def.Name == core.IDColumn {
			return nil, &ParseError{
				Expected: "column name other than " + core.IDColumn,
				Found:    fmt.Sprintf("%q", def.Name),
				Span:     span,
			}
		}
		if seen[def.Name] {
			return nil, duplicateColumn(def.Name, span)
		}
		seen[def.Name] = true
		stmt.Definitions = append(stmt.Definitions, def)

		if !p.match(token.COMMA) {
			break
		}
	}
	return stmt, nil
}

// parseDefinition parses one column definition and returns the span of its
// name.
func (p *Parser) parseDefinition() (core.ColumnDefinition, token.Span, error) {
	var def core.ColumnDefinition

	name, span, err := p.expectName("column name")
	if err != nil {
		return def, span, err
	}
	def.Name = name

	if _, err := p.expect(token.COLON, "':'"); err != nil {
		return def, span, err
	}

	switch p.peekType() {
	case token.STR:
		def.Ty = core.TyStr
	case token.INT_TYPE:
		def.Ty = core.TyInt
	case token.FLOAT_TYPE:
		def.Ty = core.TyFloat
	case token.BOOL:
		def.Ty = core.TyBool
	default:
		return def, span, p.errorf("column type (str / int / float / bool)")
	}
	p.advance() //nolint:errcheck // type keyword already checked

	def.Optional = p.match(token.QUESTION)
	return def, span, nil
}

// parseInsert parses a single-record or brace-delimited insertion.
func (p *Parser) parseInsert() (*core.Insert, error) {
	p.advance() //nolint:errcheck // INSERT already checked

	name, _, err := p.expectName("table name")
	if err != nil {
		return nil, err
	}
	stmt := &core.Insert{Table: name}

	if !p.match(token.LBRACE) {
		record := core.Record{}
		if p.checkName() {
			if record, err = p.parseRecord(); err != nil {
				return nil, err
			}
		}
		stmt.Records = []core.Record{record}
		return stmt, nil
	}

	p.inBlock = true
	stmt.Records = []core.Record{}
	for !p.match(token.RBRACE) {
		record, err := p.parseRecord()
		if err != nil {
			return nil, err
		}
		stmt.Records = append(stmt.Records, record)

		if p.match(token.SEMICOLON) {
			continue
		}
		if _, err := p.expect(token.RBRACE, "';' or '}'"); err != nil {
			return nil, err
		}
		break
	}
	p.inBlock = false
	return stmt, nil
}

// parseRecord parses one or more comma separated assignments.
func (p *Parser) parseRecord() (core.Record, error) {
	var record core.Record
	seen := make(map[string]bool)

	for {
		column, span, err := p.expectName("column name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON, "':'"); err != nil {
			return nil, err
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		if seen[column] {
			return nil, duplicateColumn(column, span)
		}
		seen[column] = true
		record = append(record, core.Assignment{Column: column, Expr: expr})

		if !p.match(token.COMMA) {
			break
		}
	}
	return record, nil
}

// parseGet parses a projection with an optional filter.
func (p *Parser) parseGet() (*core.Get, error) {
	p.advance() //nolint:errcheck // GET already checked

	name, _, err := p.expectName("table name")
	if err != nil {
		return nil, err
	}
	stmt := &core.Get{Table: name}

	if p.match(token.SELECT) {
		for {
			sel, err := p.parseSelection()
			if err != nil {
				return nil, err
			}
			stmt.Selections = append(stmt.Selections, sel)

			if !p.match(token.COMMA) {
				break
			}
		}
	}

	if p.match(token.WHERE) {
		if stmt.Filter, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

// parseSelection parses one item of a select list.
func (p *Parser) parseSelection() (core.Selection, error) {
	switch p.peekType() {
	case token.STAR:
		p.advance() //nolint:errcheck // STAR already checked
		return &core.AllSelection{}, nil

	case token.AT:
		p.advance() //nolint:errcheck // AT already checked
		if !p.check(token.IDENT) {
			return nil, p.errorf("row attribute")
		}
		tok, _ := p.advance()
		attr, ok := core.LookupRowAttribute(tok.Literal)
		if !ok {
			return nil, &ParseError{Expected: "row attribute", Found: describe(tok), Span: tok.Span}
		}
		alias, err := p.parseAlias()
		if err != nil {
			return nil, err
		}
		return &core.AttributeSelection{Attribute: attr, Alias: alias}, nil

	case token.IDENT, token.STRING:
		column, _, _ := p.expectName("column name")
		alias, err := p.parseAlias()
		if err != nil {
			return nil, err
		}
		return &core.ColumnSelection{Column: column, Alias: alias}, nil

	default:
		return nil, p.errorf("selection (column name, '*' or '@' attribute)")
	}
}

// parseAlias parses an optional "as name" suffix.
func (p *Parser) parseAlias() (string, error) {
	if !p.match(token.AS) {
		return "", nil
	}
	alias, _, err := p.expectName("alias")
	return alias, err
}

// parseRemove parses a predicate deletion.
func (p *Parser) parseRemove() (*core.Remove, error) {
	p.advance() //nolint:errcheck // REMOVE already checked

	name, _, err := p.expectName("table name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.WHERE, "'where'"); err != nil {
		return nil, err
	}
	filter, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &core.Remove{Table: name, Filter: filter}, nil
}

func duplicateColumn(name string, span token.Span) *ParseError {
	return &ParseError{
		Expected: "distinct column names",
		Found:    fmt.Sprintf("duplicate %q", name),
		Span:     span,
	}
}
