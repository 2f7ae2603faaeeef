// Package token defines the token types for the nail query language.
package token

import "fmt"

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

const (
	// Special tokens
	EOF TokenType = iota

	// Literals
	IDENT  // identifier
	STRING // "hello"
	INT    // 123
	FLOAT  // 45.67

	// Punctuation and operators
	COMMA     // ,
	COLON     // :
	SEMICOLON // ;
	AT        // @
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	QUESTION  // ?
	PLUS      // +
	MINUS     // -
	STAR      // *
	SLASH     // /
	EQ        // ==
	LT        // <
	LE        // <=
	GT        // >
	GE        // >=
	AND       // &&
	OR        // ||

	// Keywords (alphabetical)
	AS
	BOOL
	FALSE
	FLOAT_TYPE
	GET
	INSERT
	INT_TYPE
	NEW
	NIL
	REMOVE
	SELECT
	STR
	TABLE
	TRUE
	WHERE
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// tokenNames maps token types to their string representations.
var tokenNames = map[TokenType]string{
	EOF: "end of input",

	IDENT:  "identifier",
	STRING: "string literal",
	INT:    "int literal",
	FLOAT:  "float literal",

	COMMA:     ",",
	COLON:     ":",
	SEMICOLON: ";",
	AT:        "@",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACE:    "{",
	RBRACE:    "}",
	QUESTION:  "?",
	PLUS:      "+",
	MINUS:     "-",
	STAR:      "*",
	SLASH:     "/",
	EQ:        "==",
	LT:        "<",
	LE:        "<=",
	GT:        ">",
	GE:        ">=",
	AND:       "&&",
	OR:        "||",

	AS:         "as",
	BOOL:       "bool",
	FALSE:      "false",
	FLOAT_TYPE: "float",
	GET:        "get",
	INSERT:     "insert",
	INT_TYPE:   "int",
	NEW:        "new",
	NIL:        "nil",
	REMOVE:     "remove",
	SELECT:     "select",
	STR:        "str",
	TABLE:      "table",
	TRUE:       "true",
	WHERE:      "where",
}

// keywords maps reserved words to their token types. Matching is exact:
// keywords are lowercase only.
var keywords = map[string]TokenType{
	"as":     AS,
	"bool":   BOOL,
	"false":  FALSE,
	"float":  FLOAT_TYPE,
	"get":    GET,
	"insert": INSERT,
	"int":    INT_TYPE,
	"new":    NEW,
	"nil":    NIL,
	"remove": REMOVE,
	"select": SELECT,
	"str":    STR,
	"table":  TABLE,
	"true":   TRUE,
	"where":  WHERE,
}

// LookupIdent returns the token type for the given identifier.
// If the identifier is a keyword, the keyword token type is returned.
// Otherwise, IDENT is returned.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// Keywords returns every reserved word, in no particular order.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for k := range keywords {
		out = append(out, k)
	}
	return out
}

// IsKeyword returns true if the token type is a keyword.
func IsKeyword(t TokenType) bool {
	return t >= AS && t <= WHERE
}

// IsOperator returns true if the token type is a binary operator.
func IsOperator(t TokenType) bool {
	return t >= PLUS && t <= OR
}

// Token represents a lexical token with position information.
//
// Literal holds the source text for identifiers and numbers and the
// unquoted contents for strings.
type Token struct {
	Type    TokenType
	Literal string
	Span    Span
}
