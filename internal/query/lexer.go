package query

import (
	"strconv"
	"unicode"
)

// TokenType represents the type of a lexer token.
type TokenType int

const (
	TokenEOF    TokenType = iota
	TokenIdent            // keywords and term names: select, where, subject, attr
	TokenString           // "double quoted" or 'single quoted'
	TokenNumber           // 12, -1, 3.5
	TokenLParen           // (
	TokenRParen           // )
	TokenEq               // ==
	TokenNeq              // !=
	TokenLt               // <
	TokenLte              // <=
	TokenGt               // >
	TokenGte              // >=
	TokenAnd              // &&
	TokenOr               // ||
	TokenBang             // !
	TokenError            // error token
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "end of query"
	case TokenIdent:
		return "identifier"
	case TokenString:
		return "string"
	case TokenNumber:
		return "number"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	case TokenEq:
		return "'=='"
	case TokenNeq:
		return "'!='"
	case TokenLt:
		return "'<'"
	case TokenLte:
		return "'<='"
	case TokenGt:
		return "'>'"
	case TokenGte:
		return "'>='"
	case TokenAnd:
		return "'&&'"
	case TokenOr:
		return "'||'"
	case TokenBang:
		return "'!'"
	default:
		return "invalid token"
	}
}

// Token represents a lexer token.
type Token struct {
	Type  TokenType
	Value string // unquoted value for strings
	Pos   int
}

// Lexer tokenizes a query string.
type Lexer struct {
	input string
	pos   int
	start int
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF, Pos: l.pos}
	}

	l.start = l.pos
	ch := l.input[l.pos]

	switch ch {
	case '(':
		l.pos++
		return Token{Type: TokenLParen, Value: "(", Pos: l.start}
	case ')':
		l.pos++
		return Token{Type: TokenRParen, Value: ")", Pos: l.start}
	case '=':
		return l.scanPair('=', TokenEq, TokenError)
	case '!':
		return l.scanPair('=', TokenNeq, TokenBang)
	case '<':
		return l.scanPair('=', TokenLte, TokenLt)
	case '>':
		return l.scanPair('=', TokenGte, TokenGt)
	case '&':
		return l.scanPair('&', TokenAnd, TokenError)
	case '|':
		return l.scanPair('|', TokenOr, TokenError)
	case '"', '\'':
		return l.scanString(ch)
	case '-':
		if l.pos+1 < len(l.input) && isDigit(l.input[l.pos+1]) {
			return l.scanNumber()
		}
	default:
		if isDigit(ch) {
			return l.scanNumber()
		}
		if isIdentStart(ch) {
			return l.scanIdent()
		}
	}
	l.pos++
	return Token{Type: TokenError, Value: string(ch), Pos: l.start}
}

// scanPair scans a one or two character operator. If the next character is
// second the token is pair, otherwise single.
func (l *Lexer) scanPair(second byte, pair, single TokenType) Token {
	if l.pos+1 < len(l.input) && l.input[l.pos+1] == second {
		l.pos += 2
		return Token{Type: pair, Value: l.input[l.start:l.pos], Pos: l.start}
	}
	l.pos++
	return Token{Type: single, Value: l.input[l.start:l.pos], Pos: l.start}
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) && unicode.IsSpace(rune(l.input[l.pos])) {
		l.pos++
	}
}

func (l *Lexer) scanIdent() Token {
	start := l.pos
	for l.pos < len(l.input) && isIdentChar(l.input[l.pos]) {
		l.pos++
	}
	return Token{Type: TokenIdent, Value: l.input[start:l.pos], Pos: start}
}

func (l *Lexer) scanNumber() Token {
	start := l.pos
	if l.input[l.pos] == '-' {
		l.pos++
	}
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.pos++
	}
	if l.pos+1 < len(l.input) && l.input[l.pos] == '.' && isDigit(l.input[l.pos+1]) {
		l.pos++
		for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
			l.pos++
		}
	}
	return Token{Type: TokenNumber, Value: l.input[start:l.pos], Pos: start}
}

// scanString scans a quoted string. Double-quoted strings accept Go escape
// sequences; single-quoted strings are taken verbatim.
func (l *Lexer) scanString(quote byte) Token {
	start := l.pos
	l.pos++
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch == '\\' && quote == '"' {
			l.pos += 2
			continue
		}
		l.pos++
		if ch == quote {
			raw := l.input[start:l.pos]
			if quote == '\'' {
				return Token{Type: TokenString, Value: raw[1 : len(raw)-1], Pos: start}
			}
			value, err := strconv.Unquote(raw)
			if err != nil {
				return Token{Type: TokenError, Value: raw, Pos: start}
			}
			return Token{Type: TokenString, Value: value, Pos: start}
		}
	}
	// unterminated
	return Token{Type: TokenError, Value: l.input[start:], Pos: start}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		ch == '_'
}

func isIdentChar(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
