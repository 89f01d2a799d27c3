package query

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/aidanlsb/resdb/internal/model"
)

// termNames maps the plain term keywords (lowercase) to constructors.
var termNames = map[string]func() Term{
	"subject":      Subject,
	"predicate":    Predicate,
	"object":       Object,
	"id":           StatementID,
	"statementid":  StatementID,
	"kind":         ResourceKind,
	"type":         ResourceKind,
	"resourcetype": ResourceKind,
}

// wrapperNames maps the conversion keywords to constructors.
var wrapperNames = map[string]func(Term) Term{
	"int":             ToInt,
	"toint":           ToInt,
	"float":           ToFloat,
	"tofloat":         ToFloat,
	"ref":             ResourceIDToInt,
	"resourceidtoint": ResourceIDToInt,
}

// kindNames maps kind constants to their values.
var kindNames = map[string]model.Kind{
	"literal":  model.KindLiteral,
	"resource": model.KindResource,
	"invalid":  model.KindInvalid,
}

// parseTerm parses a term: a plain term name, attr("name"), or a
// conversion wrapper such as int(object).
func (p *Parser) parseTerm() (Term, error) {
	if p.curr.Type != TokenIdent {
		return nil, p.unexpected("a term")
	}
	name := strings.ToLower(p.curr.Value)

	if ctor, ok := termNames[name]; ok {
		p.advance()
		return ctor(), nil
	}

	if name == "attr" || name == "attribute" {
		p.advance()
		if err := p.expect(TokenLParen); err != nil {
			return nil, err
		}
		if p.curr.Type != TokenString {
			return nil, errors.WithHint(p.unexpected("a quoted predicate name"), `write attr("my:wife")`)
		}
		attr := p.curr.Value
		p.advance()
		if err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return Attribute(attr), nil
	}

	if wrap, ok := wrapperNames[name]; ok {
		p.advance()
		if err := p.expect(TokenLParen); err != nil {
			return nil, err
		}
		inner, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return wrap(inner), nil
	}

	return nil, errors.WithHint(
		errors.Newf("unknown term %q at position %d", p.curr.Value, p.curr.Pos),
		"terms are subject, predicate, object, id, kind, attr(\"name\"), int(t), float(t), ref(t)")
}

// parseOperand parses the right-hand side of a comparison: a term or a
// constant.
func (p *Parser) parseOperand() (Term, error) {
	switch p.curr.Type {
	case TokenString:
		v := p.curr.Value
		p.advance()
		return Const(v), nil
	case TokenNumber:
		return p.parseNumber()
	case TokenIdent:
		if k, ok := kindNames[strings.ToLower(p.curr.Value)]; ok {
			p.advance()
			return Const(k), nil
		}
		return p.parseTerm()
	}
	return nil, p.unexpected("a term, string, number or subquery")
}

func (p *Parser) parseNumber() (Term, error) {
	text := p.curr.Value
	pos := p.curr.Pos
	p.advance()

	if strings.Contains(text, ".") {
		f, ok := ParseFloat(text)
		if !ok {
			return nil, errors.Newf("invalid number %q at position %d", text, pos)
		}
		return Const(f), nil
	}
	n, ok := ParseInt(text)
	if !ok {
		return nil, errors.Newf("invalid number %q at position %d", text, pos)
	}
	return Const(n), nil
}
