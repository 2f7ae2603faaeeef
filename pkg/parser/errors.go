package parser

import (
	"fmt"

	"github.com/leapstack-labs/nail/pkg/token"
)

// LexErrorKind classifies a lexical error.
type LexErrorKind int

// Lexical error kinds.
const (
	NonTerminatedStr LexErrorKind = iota + 1
	NonUTF8
	UnexpectedCharacter
	InvalidIntLiteral
	InvalidFloatLiteral
)

func (k LexErrorKind) String() string {
	switch k {
	case NonTerminatedStr:
		return ErrNonTerminatedStr
	case NonUTF8:
		return ErrNonUTF8
	case UnexpectedCharacter:
		return ErrUnexpectedCharacter
	case InvalidIntLiteral:
		return ErrInvalidIntLiteral
	case InvalidFloatLiteral:
		return ErrInvalidFloatLiteral
	default:
		return fmt.Sprintf("LexErrorKind(%d)", int(k))
	}
}

// LexError represents a lexical analysis error.
type LexError struct {
	Kind LexErrorKind
	Span token.Span
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexer error at line %d, column %d: %s", e.Span.Start.Line, e.Span.Start.Column, e.Kind)
}

// ParseError represents a parsing error with position information.
// When a statement fails because of a lexical error, Cause holds the
// *LexError and Expected is empty.
type ParseError struct {
	Expected string
	Found    string
	Span     token.Span
	Cause    error
}

func (e *ParseError) Error() string {
	pos := e.Span.Start
	return fmt.Sprintf("parse error at line %d, column %d: %s", pos.Line, pos.Column, e.Message())
}

// Message describes the error without its position.
func (e *ParseError) Message() string {
	if lexErr, ok := e.Cause.(*LexError); ok {
		return lexErr.Kind.String()
	}
	if e.Found != "" {
		return fmt.Sprintf("expected %s, found %s", e.Expected, e.Found)
	}
	return "expected " + e.Expected
}

// Unwrap returns the underlying lexical error, if any.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Common error messages
const (
	ErrNonTerminatedStr    = "unterminated string literal"
	ErrNonUTF8             = "invalid UTF-8 in literal or identifier"
	ErrUnexpectedCharacter = "unexpected character"
	ErrInvalidIntLiteral   = "invalid int literal"
	ErrInvalidFloatLiteral = "invalid float literal"
)
