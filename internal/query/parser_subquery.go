package query

// parseSubquery parses a parenthesized subquery: ( select term where expr )
func (p *Parser) parseSubquery() (*Query, error) {
	if err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	q, err := p.parseQuery()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	return q, nil
}
