package query

import (
	"testing"
)

func TestLexerTokens(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		tokens []Token
	}{
		{
			name:  "comparison operators",
			input: "== != < <= > >=",
			tokens: []Token{
				{Type: TokenEq, Value: "=="},
				{Type: TokenNeq, Value: "!="},
				{Type: TokenLt, Value: "<"},
				{Type: TokenLte, Value: "<="},
				{Type: TokenGt, Value: ">"},
				{Type: TokenGte, Value: ">="},
				{Type: TokenEOF},
			},
		},
		{
			name:  "boolean operators",
			input: "!(a && b || c)",
			tokens: []Token{
				{Type: TokenBang, Value: "!"},
				{Type: TokenLParen, Value: "("},
				{Type: TokenIdent, Value: "a"},
				{Type: TokenAnd, Value: "&&"},
				{Type: TokenIdent, Value: "b"},
				{Type: TokenOr, Value: "||"},
				{Type: TokenIdent, Value: "c"},
				{Type: TokenRParen, Value: ")"},
				{Type: TokenEOF},
			},
		},
		{
			name:  "double quoted string with escapes",
			input: `"my:wife" "a\"b"`,
			tokens: []Token{
				{Type: TokenString, Value: "my:wife"},
				{Type: TokenString, Value: `a"b`},
				{Type: TokenEOF},
			},
		},
		{
			name:  "single quoted string is verbatim",
			input: `'a\nb'`,
			tokens: []Token{
				{Type: TokenString, Value: `a\nb`},
				{Type: TokenEOF},
			},
		},
		{
			name:  "numbers",
			input: "12 -1 3.5 7.",
			tokens: []Token{
				{Type: TokenNumber, Value: "12"},
				{Type: TokenNumber, Value: "-1"},
				{Type: TokenNumber, Value: "3.5"},
				{Type: TokenNumber, Value: "7"},
				{Type: TokenError, Value: "."},
				{Type: TokenEOF},
			},
		},
		{
			name:  "identifiers",
			input: "select statementId attr_2",
			tokens: []Token{
				{Type: TokenIdent, Value: "select"},
				{Type: TokenIdent, Value: "statementId"},
				{Type: TokenIdent, Value: "attr_2"},
				{Type: TokenEOF},
			},
		},
		{
			name:  "single equals is an error",
			input: "a = b",
			tokens: []Token{
				{Type: TokenIdent, Value: "a"},
				{Type: TokenError, Value: "="},
				{Type: TokenIdent, Value: "b"},
				{Type: TokenEOF},
			},
		},
		{
			name:  "unterminated string",
			input: `"abc`,
			tokens: []Token{
				{Type: TokenError, Value: `"abc`},
				{Type: TokenEOF},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLexer(tt.input)
			for i, want := range tt.tokens {
				got := l.NextToken()
				if got.Type != want.Type {
					t.Fatalf("token %d: type = %s, want %s (value %q)", i, got.Type, want.Type, got.Value)
				}
				if want.Type != TokenEOF && got.Value != want.Value {
					t.Errorf("token %d: value = %q, want %q", i, got.Value, want.Value)
				}
			}
		})
	}
}

func TestLexerPositions(t *testing.T) {
	l := NewLexer(`subject  == "x"`)
	want := []int{0, 9, 12, 15}
	for i, pos := range want {
		tok := l.NextToken()
		if tok.Pos != pos {
			t.Errorf("token %d (%s): pos = %d, want %d", i, tok.Type, tok.Pos, pos)
		}
	}
}
