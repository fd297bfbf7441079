package kicadsexp

import (
	"fmt"
	"strings"
)

// TokenType represents the type of a token
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenLeftParen
	TokenRightParen
	TokenSymbol
	TokenString
)

// Token represents a lexical token
type Token struct {
	Type  TokenType
	Value string
	Pos   int
}

// SyntaxError reports malformed record text.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("sexp: offset %d: %s", e.Pos, e.Msg)
}

// Lexer tokenizes record text held in memory.
type Lexer struct {
	src string
	pos int
}

// NewLexer creates a new lexer
func NewLexer(src string) *Lexer {
	return &Lexer{src: src}
}

// NextToken reads the next token from the input
func (l *Lexer) NextToken() (Token, error) {
	for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
		l.pos++
	}
	if l.pos >= len(l.src) {
		return Token{Type: TokenEOF, Pos: l.pos}, nil
	}

	start := l.pos
	switch l.src[l.pos] {
	case '(':
		l.pos++
		return Token{Type: TokenLeftParen, Value: "(", Pos: start}, nil
	case ')':
		l.pos++
		return Token{Type: TokenRightParen, Value: ")", Pos: start}, nil
	case '"':
		return l.readString()
	default:
		return l.readSymbol()
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

// readString reads a quoted string
func (l *Lexer) readString() (Token, error) {
	start := l.pos
	l.pos++

	var b strings.Builder
	for l.pos < len(l.src) {
		ch := l.src[l.pos]
		l.pos++

		switch ch {
		case '"':
			return Token{Type: TokenString, Value: b.String(), Pos: start}, nil
		case '\\':
			if l.pos >= len(l.src) {
				return Token{}, &SyntaxError{Pos: l.pos, Msg: "unexpected end after backslash"}
			}
			next := l.src[l.pos]
			l.pos++
			switch next {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteByte(next)
			}
		default:
			b.WriteByte(ch)
		}
	}
	return Token{}, &SyntaxError{Pos: start, Msg: "unterminated string"}
}

// readSymbol reads an unquoted symbol (identifier, number, etc.)
func (l *Lexer) readSymbol() (Token, error) {
	start := l.pos
	for l.pos < len(l.src) {
		ch := l.src[l.pos]
		if isSpace(ch) || ch == '(' || ch == ')' || ch == '"' {
			break
		}
		l.pos++
	}
	return Token{Type: TokenSymbol, Value: l.src[start:l.pos], Pos: start}, nil
}
