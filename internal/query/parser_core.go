package query

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Parser parses query strings into Query ASTs.
type Parser struct {
	lexer *Lexer
	curr  Token
	peek  Token
}

// Parse parses a query string and returns a validated Query AST.
//
//	select object where predicate == "my:designer" && id == (select ref(subject) where attr("my:evaluation") == "true")
func Parse(input string) (*Query, error) {
	p := &Parser{lexer: NewLexer(input)}
	p.advance()
	p.advance()

	q, err := p.parseQuery()
	if err != nil {
		return nil, err
	}
	if p.curr.Type != TokenEOF {
		return nil, p.unexpected("end of query")
	}
	if err := Validate(q); err != nil {
		return nil, err
	}
	return q, nil
}

// ParseExpr parses a bare boolean expression, without the select clause.
func ParseExpr(input string) (Expr, error) {
	p := &Parser{lexer: NewLexer(input)}
	p.advance()
	p.advance()

	e, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.curr.Type != TokenEOF {
		return nil, p.unexpected("end of expression")
	}
	if err := validateExpr(e); err != nil {
		return nil, err
	}
	return e, nil
}

func (p *Parser) advance() {
	p.curr = p.peek
	p.peek = p.lexer.NextToken()
}

func (p *Parser) expect(t TokenType) error {
	if p.curr.Type != t {
		return p.unexpected(t.String())
	}
	p.advance()
	return nil
}

func (p *Parser) unexpected(want string) error {
	got := p.curr.Type.String()
	if p.curr.Type != TokenEOF && p.curr.Value != "" {
		got = "'" + p.curr.Value + "'"
	}
	return errors.Newf("expected %s, got %s at position %d", errors.Safe(want), got, p.curr.Pos)
}

// isKeyword reports whether the current token is the given identifier,
// ignoring case.
func (p *Parser) isKeyword(kw string) bool {
	return p.curr.Type == TokenIdent && strings.EqualFold(p.curr.Value, kw)
}

// parseQuery parses: select [term] [where expr]
func (p *Parser) parseQuery() (*Query, error) {
	if !p.isKeyword("select") {
		return nil, errors.WithHint(p.unexpected("'select'"),
			`queries look like: select object where predicate == "my:designer"`)
	}
	p.advance()

	q := &Query{}
	if p.curr.Type != TokenEOF && p.curr.Type != TokenRParen && !p.isKeyword("where") {
		term, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		q.Projection = term
	}

	if p.isKeyword("where") {
		p.advance()
		where, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		q.Where = where
	}
	return q, nil
}

// parseOr parses OR expressions (lowest precedence).
func (p *Parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.curr.Type == TokenOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &OrExpr{Left: left, Right: right}
	}
	return left, nil
}

// parseAnd parses AND expressions.
func (p *Parser) parseAnd() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.curr.Type == TokenAnd {
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &AndExpr{Left: left, Right: right}
	}
	return left, nil
}

// parseUnary parses negation, parenthesized groups and comparisons.
func (p *Parser) parseUnary() (Expr, error) {
	switch p.curr.Type {
	case TokenBang:
		p.advance()
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &NotExpr{Expr: e}, nil
	case TokenLParen:
		p.advance()
		e, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return e, nil
	}
	return p.parseComparison()
}

func (p *Parser) parseComparison() (Expr, error) {
	if p.curr.Type != TokenIdent {
		err := p.unexpected("a term")
		if p.curr.Type == TokenString || p.curr.Type == TokenNumber {
			err = errors.WithHint(err, "put the term on the left: subject == \"x\", not \"x\" == subject")
		}
		return nil, err
	}
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	op, ok := compareOps[p.curr.Type]
	if !ok {
		return nil, p.unexpected("a comparison operator")
	}
	p.advance()

	c := &Comparison{Left: left, Op: op}
	if p.curr.Type == TokenLParen {
		sub, err := p.parseSubquery()
		if err != nil {
			return nil, err
		}
		c.Sub = sub
		return c, nil
	}
	right, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	c.Right = right
	return c, nil
}

var compareOps = map[TokenType]CompareOp{
	TokenEq:  CompareEq,
	TokenNeq: CompareNeq,
	TokenLt:  CompareLt,
	TokenLte: CompareLte,
	TokenGt:  CompareGt,
	TokenGte: CompareGte,
}
