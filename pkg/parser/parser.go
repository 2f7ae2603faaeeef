// Package parser turns nail source text into commands.
//
// # Usage
//
//	cmds, errs := parser.Parse(src)
//
// or, to process commands as they are parsed:
//
//	p := parser.NewParser(src)
//	for cmd, err := range p.Commands() {
//	    // handle cmd or err
//	}
//
// # Grammar Overview
//
//	command → new | insert | get | remove ";"
//	new     → NEW TABLE name [def ("," def)*]
//	insert  → INSERT name (record | "{" (record ";")* [record] "}")
//	get     → GET name [SELECT sel ("," sel)*] [WHERE expr]
//	remove  → REMOVE name WHERE expr
//	name    → IDENT | STRING
//
// See each file for detailed grammar rules for that section.
//
// After a syntax error the parser skips to the next ";" outside braces, so
// one bad statement does not hide errors in the statements after it.
package parser

import (
	"fmt"
	"io"
	"iter"

	"github.com/leapstack-labs/nail/pkg/core"
	"github.com/leapstack-labs/nail/pkg/token"
)

// Parser parses nail source into commands, one statement at a time.
type Parser struct {
	lexer *Lexer

	// one-token lookahead; err holds a lexical error in place of a token
	peeked  bool
	peekTok Token
	peekErr error

	inBlock    bool // inside the braces of an insert block
}

// NewParser creates a parser over src.
func NewParser(src []byte) *Parser {
	return &Parser{lexer: NewLexer(src)}
}

// Parse parses every statement in src. Commands and errors are each
// returned in source order.
func Parse(src []byte) ([]core.Command, []error) {
	var (
		cmds []core.Command
		errs []error
	)
	for cmd, err := range NewParser(src).Commands() {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		cmds = append(cmds, cmd)
	}
	return cmds, errs
}

// Next parses the next statement. It returns io.EOF once the input is
// exhausted. Any other error is a *ParseError; the parser has already
// skipped past the failed statement and Next may be called again.
func (p *Parser) Next() (core.Command, error) {
	if p.peekType() == token.EOF {
		return nil, io.EOF
	}

	cmd, err := p.parseCommand()
	if err != nil {
		p.synchronize()
		return nil, err
	}
	return cmd, nil
}

// Commands returns the remaining statements as a sequence. Each element
// holds either a command or the error of a failed statement.
func (p *Parser) Commands() iter.Seq2[core.Command, error] {
	return func(yield func(core.Command, error) bool) {
		for {
			cmd, err := p.Next()
			if err == io.EOF {
				return
			}
			if !yield(cmd, err) {
				return
			}
		}
	}
}

// Comments returns the comments seen so far.
func (p *Parser) Comments() []*token.Comment {
	return p.lexer.Comments
}

// ---------- Token Helpers ----------

// peek fills the lookahead slot if needed and returns it.
func (p *Parser) peek() (Token, error) {
	if !p.peeked {
		p.peekTok, p.peekErr = p.lexer.NextToken()
		p.peeked = true
	}
	return p.peekTok, p.peekErr
}

// peekType returns the lookahead token type, or tokenError if the lookahead
// is a lexical error.
func (p *Parser) peekType() TokenType {
	tok, err := p.peek()
	if err != nil {
		return tokenError
	}
	return tok.Type
}

// advance consumes the lookahead.
func (p *Parser) advance() (Token, error) {
	tok, err := p.peek()
	p.peeked = false
	return tok, err
}

// check returns true if the lookahead is of the given type.
func (p *Parser) check(t TokenType) bool {
	return p.peekType() == t
}

// checkName returns true if the lookahead can be used as a name.
func (p *Parser) checkName() bool {
	t := p.peekType()
	return t == token.IDENT || t == token.STRING
}

// match consumes the lookahead if it matches and returns true.
func (p *Parser) match(t TokenType) bool {
	if p.check(t) {
		p.advance() //nolint:errcheck // check guarantees a token
		return true
	}
	return false
}

// expect consumes the lookahead if it is of type t. Otherwise it returns an
// error naming what was expected and leaves the lookahead in place.
func (p *Parser) expect(t TokenType, what string) (Token, error) {
	if !p.check(t) {
		return Token{}, p.errorf(what)
	}
	return p.advance()
}

// expectName consumes an identifier or string literal and returns its text.
func (p *Parser) expectName(what string) (string, token.Span, error) {
	if !p.checkName() {
		return "", token.Span{}, p.errorf(what)
	}
	tok, _ := p.advance()
	return tok.Literal, tok.Span, nil
}

// errorf builds the error for an unexpected lookahead.
func (p *Parser) errorf(expected string) *ParseError {
	tok, err := p.peek()
	if lexErr, ok := err.(*LexError); ok {
		return &ParseError{Span: lexErr.Span, Cause: lexErr}
	}
	return &ParseError{
		Expected: expected,
		Found:    describe(tok),
		Span:     tok.Span,
	}
}

// synchronize skips to just after the next ';' outside an insert block, or
// to end of input. Braces only matter when an insert block is open; a stray
// '{' elsewhere does not hide the statements that follow.
func (p *Parser) synchronize() {
	for {
		tok, err := p.advance()
		if err != nil {
			continue
		}
		if tok.Type == token.EOF {
			break
		}
		if tok.Type == token.RBRACE && p.inBlock {
			p.inBlock = false
			continue
		}
		if tok.Type == token.SEMICOLON && !p.inBlock {
			break
		}
	}
	p.inBlock = false
}

// describe renders a token for error messages.
func describe(tok Token) string {
	switch tok.Type {
	case token.EOF:
		return tok.Type.String()
	case token.IDENT, token.STRING, token.INT, token.FLOAT:
		return fmt.Sprintf("%s %q", tok.Type, tok.Literal)
	default:
		return fmt.Sprintf("'%s'", tok.Type)
	}
}
