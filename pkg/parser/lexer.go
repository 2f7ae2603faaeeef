package parser

import (
	"iter"
	"strconv"
	"unicode/utf8"

	"github.com/leapstack-labs/nail/pkg/token"
)

// Lexer tokenizes nail source.
//
// A Lexer only moves forward; to tokenize the same input again create a
// new Lexer over it.
type Lexer struct {
	input []byte
	pos   int // offset of the next unread byte
	line  int // line of the next unread byte (1-based)
	col   int // column of the next unread byte (1-based)

	// span of the most recently produced token or error
	last token.Span

	// Comments collected during lexing
	Comments []*token.Comment
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input []byte) *Lexer {
	return &Lexer{
		input: input,
		line:  1,
		col:   1,
	}
}

// Span returns the source range of the most recently produced token.
func (l *Lexer) Span() token.Span {
	return l.last
}

// peekByte returns the next unread byte, or 0 at end of input.
func (l *Lexer) peekByte() byte {
	return l.peekAt(0)
}

// peekAt returns the byte n positions after the next unread byte.
func (l *Lexer) peekAt(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// readByte consumes one byte.
func (l *Lexer) readByte() byte {
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch
}

// currentPos returns the position of the next unread byte.
func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

// NextToken returns the next token. At end of input it returns an EOF
// token (repeatedly). A non-nil error is always a *LexError; the bytes it
// covers have been consumed, so lexing may continue after it.
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespaceAndComments()

	start := l.currentPos()
	if l.atEOF() {
		l.last = token.Span{Start: start, End: start}
		return Token{Type: token.EOF, Span: l.last}, nil
	}

	tok, kind := l.readToken()
	l.last = token.Span{Start: start, End: l.currentPos()}
	if kind != 0 {
		return Token{}, &LexError{Kind: kind, Span: l.last}
	}
	tok.Span = l.last
	return tok, nil
}

// Tokens returns the remaining tokens as a sequence, stopping before EOF.
// Lexical errors are yielded in place and lexing continues after them.
func (l *Lexer) Tokens() iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		for {
			tok, err := l.NextToken()
			if err == nil && tok.Type == token.EOF {
				return
			}
			if !yield(tok, err) {
				return
			}
		}
	}
}

// readToken consumes one token starting at the current byte. A non-zero
// kind reports a lexical error.
func (l *Lexer) readToken() (Token, LexErrorKind) {
	ch := l.peekByte()

	switch {
	case ch == '"':
		return l.readString()
	case isDigit(ch):
		return l.readNumber()
	case isIdentStart(ch):
		return l.readIdentifier()
	case ch >= utf8.RuneSelf:
		_, size := utf8.DecodeRune(l.input[l.pos:])
		for range size {
			l.readByte()
		}
		return Token{}, UnexpectedCharacter
	}

	l.readByte()
	switch ch {
	case ',':
		return Token{Type: token.COMMA, Literal: ","}, 0
	case ':':
		return Token{Type: token.COLON, Literal: ":"}, 0
	case ';':
		return Token{Type: token.SEMICOLON, Literal: ";"}, 0
	case '@':
		return Token{Type: token.AT, Literal: "@"}, 0
	case '(':
		return Token{Type: token.LPAREN, Literal: "("}, 0
	case ')':
		return Token{Type: token.RPAREN, Literal: ")"}, 0
	case '{':
		return Token{Type: token.LBRACE, Literal: "{"}, 0
	case '}':
		return Token{Type: token.RBRACE, Literal: "}"}, 0
	case '?':
		return Token{Type: token.QUESTION, Literal: "?"}, 0
	case '+':
		return Token{Type: token.PLUS, Literal: "+"}, 0
	case '-':
		return Token{Type: token.MINUS, Literal: "-"}, 0
	case '*':
		return Token{Type: token.STAR, Literal: "*"}, 0
	case '/':
		return Token{Type: token.SLASH, Literal: "/"}, 0
	case '=':
		if l.peekByte() == '=' {
			l.readByte()
			return Token{Type: token.EQ, Literal: "=="}, 0
		}
	case '<':
		if l.peekByte() == '=' {
			l.readByte()
			return Token{Type: token.LE, Literal: "<="}, 0
		}
		return Token{Type: token.LT, Literal: "<"}, 0
	case '>':
		if l.peekByte() == '=' {
			l.readByte()
			return Token{Type: token.GE, Literal: ">="}, 0
		}
		return Token{Type: token.GT, Literal: ">"}, 0
	case '&':
		if l.peekByte() == '&' {
			l.readByte()
			return Token{Type: token.AND, Literal: "&&"}, 0
		}
	case '|':
		if l.peekByte() == '|' {
			l.readByte()
			return Token{Type: token.OR, Literal: "||"}, 0
		}
	}
	return Token{}, UnexpectedCharacter
}

// skipWhitespaceAndComments skips whitespace and collects comments.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for isWhitespace(l.peekByte()) && !l.atEOF() {
			l.readByte()
		}

		if l.peekByte() != '#' || l.atEOF() {
			return
		}

		if l.peekAt(1) == '!' {
			l.collectBlockComment()
		} else {
			l.collectLineComment()
		}
	}
}

// collectLineComment collects a # comment up to (not including) the newline.
func (l *Lexer) collectLineComment() {
	startPos := l.currentPos()

	for !l.atEOF() && l.peekByte() != '\n' {
		l.readByte()
	}

	l.Comments = append(l.Comments, &token.Comment{
		Kind: token.LineComment,
		Text: string(l.input[startPos.Offset:l.pos]),
		Span: token.Span{Start: startPos, End: l.currentPos()},
	})
}

// collectBlockComment collects a #! ... !# comment. An unterminated block
// comment runs to end of input.
func (l *Lexer) collectBlockComment() {
	startPos := l.currentPos()

	l.readByte() // skip '#'
	l.readByte() // skip '!'

	for !l.atEOF() {
		if l.peekByte() == '!' && l.peekAt(1) == '#' {
			l.readByte() // skip '!'
			l.readByte() // skip '#'
			break
		}
		l.readByte()
	}

	l.Comments = append(l.Comments, &token.Comment{
		Kind: token.BlockComment,
		Text: string(l.input[startPos.Offset:l.pos]),
		Span: token.Span{Start: startPos, End: l.currentPos()},
	})
}

// readString reads a double-quoted string literal. There are no escape
// sequences: the literal ends at the next '"'.
func (l *Lexer) readString() (Token, LexErrorKind) {
	l.readByte() // skip opening quote

	start := l.pos
	for !l.atEOF() {
		if l.peekByte() == '"' {
			body := l.input[start:l.pos]
			l.readByte() // skip closing quote
			if !utf8.Valid(body) {
				return Token{}, NonUTF8
			}
			return Token{Type: token.STRING, Literal: string(body)}, 0
		}
		l.readByte()
	}
	return Token{}, NonTerminatedStr
}

// readIdentifier reads an identifier or keyword.
func (l *Lexer) readIdentifier() (Token, LexErrorKind) {
	start := l.pos
	for !l.atEOF() && isIdentContinue(l.peekByte()) {
		l.readByte()
	}

	raw := l.input[start:l.pos]
	if !utf8.Valid(raw) {
		return Token{}, NonUTF8
	}

	ident := string(raw)
	return Token{Type: token.LookupIdent(ident), Literal: ident}, 0
}

// readNumber reads an int or float literal: a run of digits containing at
// most one '.'. A second '.' ends the literal and is left unread.
func (l *Lexer) readNumber() (Token, LexErrorKind) {
	start := l.pos
	dot := false
	for !l.atEOF() {
		ch := l.peekByte()
		if ch == '.' {
			if dot {
				break
			}
			dot = true
		} else if !isDigit(ch) {
			break
		}
		l.readByte()
	}

	text := string(l.input[start:l.pos])
	if dot {
		if _, err := strconv.ParseFloat(text, 32); err != nil {
			return Token{}, InvalidFloatLiteral
		}
		return Token{Type: token.FLOAT, Literal: text}, 0
	}
	if _, err := strconv.ParseInt(text, 10, 32); err != nil {
		return Token{}, InvalidIntLiteral
	}
	return Token{Type: token.INT, Literal: text}, 0
}

// isWhitespace reports ASCII whitespace.
func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f'
}

// isDigit returns true if ch is a digit.
func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isASCIILetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// isIdentStart accepts ASCII letters and '_'.
func isIdentStart(ch byte) bool {
	return isASCIILetter(ch) || ch == '_'
}

// isIdentContinue also accepts digits and any non-ASCII byte; the complete
// identifier is checked for valid UTF-8 afterwards.
func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch) || ch >= utf8.RuneSelf
}

// Tokenize returns all tokens from the input, excluding EOF, stopping at
// the first lexical error.
func Tokenize(input []byte) ([]Token, error) {
	var tokens []Token
	for tok, err := range NewLexer(input).Tokens() {
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}
