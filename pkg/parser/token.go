package parser

import "github.com/leapstack-labs/nail/pkg/token"

// TokenType is an alias for token.TokenType.
type TokenType = token.TokenType

// Token is an alias for token.Token.
type Token = token.Token

// tokenError is reported by peekType when the lookahead slot holds a
// lexical error instead of a token.
const tokenError TokenType = -1
