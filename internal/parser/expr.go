package parser

import (
	"github.com/stjude-rust-labs/wdlcore/internal/cst"
	"github.com/stjude-rust-labs/wdlcore/internal/diagnostics"
	"github.com/stjude-rust-labs/wdlcore/internal/token"
)

// ParseExpr parses one standalone expression (e.g. for a tool or test
// that wants to type-check a single expression without a surrounding
// document). Unlike the expressions nested inside declarations and
// statements, its result is never attached to a builder-tracked parent.
func (p *Parser) ParseExpr() *cst.Node {
	return p.parseBinary(1)
}

// binaryPrec is the operator table, tiers 1-7 (tier 8 is unary,
// handled separately; 9-11 are the postfix chain in parsePostfix).
func binaryPrec(k token.Kind) (int, bool) {
	switch k {
	case token.PipePipe:
		return 1, true
	case token.AmpAmp:
		return 2, true
	case token.EqualEqual, token.BangEqual:
		return 3, true
	case token.Less, token.LessEqual, token.Greater, token.GreaterEqual:
		return 4, true
	case token.Plus, token.Minus:
		return 5, true
	case token.Star, token.Slash, token.Percent:
		return 6, true
	case token.StarStar:
		return 7, true
	default:
		return 0, false
	}
}

// parseBinary implements precedence climbing: parse a unary/postfix
// operand, then repeatedly fold in binary operators whose precedence is
// at least minPrec (all operators are left-associative here, so the
// recursive call uses prec+1).
func (p *Parser) parseBinary(minPrec int) *cst.Node {
	left := p.parseUnary()
	for {
		prec, ok := binaryPrec(p.Peek())
		if !ok || prec < minPrec {
			return left
		}
		opTok := p.bumpRaw()
		right := p.parseBinary(prec + 1)
		left = &cst.Node{
			Kind:     cst.BinaryExpr,
			Children: []cst.Element{left, cst.Token{opTok}, right},
		}
	}
}

// parseUnary handles prefix `!`/`-` (tier 8, right-associative) before
// falling through to the postfix chain.
func (p *Parser) parseUnary() *cst.Node {
	if p.Peek() == token.Bang || p.Peek() == token.Minus {
		opTok := p.bumpRaw()
		operand := p.parseUnary()
		return &cst.Node{Kind: cst.UnaryExpr, Children: []cst.Element{cst.Token{opTok}, operand}}
	}
	return p.parsePostfix()
}

// parsePostfix folds in call `(...)`, index `[...]`, and member `.ident`
// suffixes (tiers 9-11), left-associatively.
func (p *Parser) parsePostfix() *cst.Node {
	expr := p.parseAtom()
	for {
		switch p.Peek() {
		case token.LParen:
			lparen := p.bumpRaw()
			var children []cst.Element
			children = append(children, expr, cst.Token{lparen})
			for p.Peek() != token.RParen && p.Peek() != token.EOF {
				arg := p.parseBinary(1)
				children = append(children, arg)
				if p.Peek() == token.Comma {
					children = append(children, cst.Token{p.bumpRaw()})
				} else {
					break
				}
			}
			if p.Peek() == token.RParen {
				children = append(children, cst.Token{p.bumpRaw()})
			} else {
				p.Diags.Add(diagnostics.New("P002", p.PeekTok().Span, "unterminated call argument list"))
			}
			expr = &cst.Node{Kind: cst.CallExpr, Children: children}
		case token.LBracket:
			lb := p.bumpRaw()
			index := p.parseBinary(1)
			var close cst.Element
			if p.Peek() == token.RBracket {
				close = cst.Token{p.bumpRaw()}
			} else {
				p.Diags.Add(diagnostics.New("P003", p.PeekTok().Span, "expected ']'"))
			}
			children := []cst.Element{expr, cst.Token{lb}, index}
			if close != nil {
				children = append(children, close)
			}
			expr = &cst.Node{Kind: cst.IndexExpr, Children: children}
		case token.Dot:
			dot := p.bumpRaw()
			name := p.bumpRaw()
			expr = &cst.Node{Kind: cst.AccessExpr, Children: []cst.Element{expr, cst.Token{dot}, cst.Token{name}}}
		default:
			return expr
		}
	}
}

// parseAtom parses a single primary expression: literals, `None`, a
// parenthesized-or-pair expression, an array/map literal, `if-then-else`,
// or a name reference / struct literal (disambiguated by one token of
// lookahead past the identifier).
func (p *Parser) parseAtom() *cst.Node {
	switch p.Peek() {
	case token.IntLiteral, token.FloatLiteral, token.BooleanLiteral, token.KwNone:
		tok := p.bumpRaw()
		return &cst.Node{Kind: cst.LiteralExpr, Children: []cst.Element{cst.Token{tok}}}
	case token.StringText:
		return p.parseInterpolatedString()
	case token.HeredocOpen:
		return p.parseHeredocString()
	case token.LParen:
		return p.parseParenOrPair()
	case token.LBracket:
		return p.parseArrayLiteral()
	case token.LBrace:
		return p.parseMapLiteral()
	case token.KwIf:
		return p.parseIfExpr()
	case token.Ident, token.KwObject:
		return p.parseNameOrStructLiteral()
	default:
		tok := p.bumpRaw()
		p.Diags.Add(diagnostics.Newf("P004", tok.Span, "expected expression, found %s", tok.Kind))
		return &cst.Node{Kind: cst.Error, Children: []cst.Element{cst.Token{tok}}}
	}
}

func (p *Parser) parseParenOrPair() *cst.Node {
	lparen := p.bumpRaw()
	first := p.parseBinary(1)
	if p.Peek() == token.Comma {
		comma := p.bumpRaw()
		second := p.parseBinary(1)
		var rparen cst.Element
		if p.Peek() == token.RParen {
			rparen = cst.Token{p.bumpRaw()}
		}
		children := []cst.Element{cst.Token{lparen}, first, cst.Token{comma}, second}
		if rparen != nil {
			children = append(children, rparen)
		}
		return &cst.Node{Kind: cst.PairLiteralExpr, Children: children}
	}
	children := []cst.Element{cst.Token{lparen}, first}
	if p.Peek() == token.RParen {
		children = append(children, cst.Token{p.bumpRaw()})
	} else {
		p.Diags.Add(diagnostics.New("P005", p.PeekTok().Span, "expected ')'"))
	}
	return &cst.Node{Kind: cst.ParenExpr, Children: children}
}

func (p *Parser) parseArrayLiteral() *cst.Node {
	lb := p.bumpRaw()
	children := []cst.Element{cst.Token{lb}}
	for p.Peek() != token.RBracket && p.Peek() != token.EOF {
		children = append(children, p.parseBinary(1))
		if p.Peek() == token.Comma {
			children = append(children, cst.Token{p.bumpRaw()})
		} else {
			break
		}
	}
	if p.Peek() == token.RBracket {
		children = append(children, cst.Token{p.bumpRaw()})
	} else {
		p.Diags.Add(diagnostics.New("P006", p.PeekTok().Span, "expected ']'"))
	}
	return &cst.Node{Kind: cst.ArrayLiteralExpr, Children: children}
}

func (p *Parser) parseMapLiteral() *cst.Node {
	lb := p.bumpRaw()
	children := []cst.Element{cst.Token{lb}}
	for p.Peek() != token.RBrace && p.Peek() != token.EOF {
		key := p.parseBinary(1)
		children = append(children, key)
		if p.Peek() == token.Colon {
			children = append(children, cst.Token{p.bumpRaw()})
		} else {
			p.Diags.Add(diagnostics.New("P007", p.PeekTok().Span, "expected ':'"))
		}
		value := p.parseBinary(1)
		children = append(children, value)
		if p.Peek() == token.Comma {
			children = append(children, cst.Token{p.bumpRaw()})
		} else {
			break
		}
	}
	if p.Peek() == token.RBrace {
		children = append(children, cst.Token{p.bumpRaw()})
	} else {
		p.Diags.Add(diagnostics.New("P008", p.PeekTok().Span, "expected '}'"))
	}
	return &cst.Node{Kind: cst.MapLiteralExpr, Children: children}
}

func (p *Parser) parseIfExpr() *cst.Node {
	ifTok := p.bumpRaw()
	cond := p.parseBinary(1)
	children := []cst.Element{cst.Token{ifTok}, cond}
	if p.Peek() == token.KwThen {
		children = append(children, cst.Token{p.bumpRaw()})
	} else {
		p.Diags.Add(diagnostics.New("P009", p.PeekTok().Span, "expected 'then'"))
	}
	thenExpr := p.parseBinary(1)
	children = append(children, thenExpr)
	if p.Peek() == token.KwElse {
		children = append(children, cst.Token{p.bumpRaw()})
	} else {
		p.Diags.Add(diagnostics.New("P010", p.PeekTok().Span, "expected 'else'"))
	}
	elseExpr := p.parseBinary(1)
	children = append(children, elseExpr)
	return &cst.Node{Kind: cst.IfExpr, Children: children}
}

// parseNameOrStructLiteral implements the disambiguation: an
// identifier followed immediately by `{` starts a struct literal,
// otherwise it is a bare name reference.
func (p *Parser) parseNameOrStructLiteral() *cst.Node {
	name := p.bumpRaw()
	if p.Peek() != token.LBrace {
		return &cst.Node{Kind: cst.NameRefExpr, Children: []cst.Element{cst.Token{name}}}
	}
	lb := p.bumpRaw()
	children := []cst.Element{cst.Token{name}, cst.Token{lb}}
	for p.Peek() != token.RBrace && p.Peek() != token.EOF {
		key := p.bumpRaw()
		children = append(children, cst.Token{key})
		if p.Peek() == token.Colon {
			children = append(children, cst.Token{p.bumpRaw()})
		} else {
			p.Diags.Add(diagnostics.New("P011", p.PeekTok().Span, "expected ':'"))
		}
		value := p.parseBinary(1)
		children = append(children, value)
		if p.Peek() == token.Comma {
			children = append(children, cst.Token{p.bumpRaw()})
		} else {
			break
		}
	}
	if p.Peek() == token.RBrace {
		children = append(children, cst.Token{p.bumpRaw()})
	} else {
		p.Diags.Add(diagnostics.New("P012", p.PeekTok().Span, "expected '}'"))
	}
	return &cst.Node{Kind: cst.StructLiteralExpr, Children: children}
}
