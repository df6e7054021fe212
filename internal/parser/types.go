package parser

import (
	"github.com/stjude-rust-labs/wdlcore/internal/cst"
	"github.com/stjude-rust-labs/wdlcore/internal/diagnostics"
	"github.com/stjude-rust-labs/wdlcore/internal/token"
)

var primitiveTypeKeywords = map[token.Kind]bool{
	token.KwBoolean: true, token.KwInt: true, token.KwFloat: true,
	token.KwString: true, token.KwFile: true, token.KwDirectory: true,
}

// ParseType parses a type expression: a primitive keyword, Array/Map/Pair
// with its bracketed parameters, or a bare identifier naming a struct (or
// Object). Any of these may be suffixed with `?` (optional) and, for
// Array only, `+` (non-empty) may precede the `?`.
func (p *Parser) ParseType() *cst.Node {
	var n *cst.Node
	switch {
	case primitiveTypeKeywords[p.Peek()]:
		tok := p.bumpRaw()
		n = &cst.Node{Kind: cst.PrimitiveType, Children: []cst.Element{cst.Token{tok}}}
	case p.Peek() == token.KwArray:
		n = p.parseArrayType()
	case p.Peek() == token.KwMap:
		n = p.parseMapType()
	case p.Peek() == token.KwPair:
		n = p.parsePairType()
	case p.Peek() == token.Ident || p.Peek() == token.KwObject:
		tok := p.bumpRaw()
		n = &cst.Node{Kind: cst.TypeRef, Children: []cst.Element{cst.Token{tok}}}
	default:
		tok := p.bumpRaw()
		p.Diags.Add(diagnostics.Newf("P040", tok.Span, "expected type, found %s", tok.Kind))
		return &cst.Node{Kind: cst.Error, Children: []cst.Element{cst.Token{tok}}}
	}
	if p.Peek() == token.Question {
		n.Children = append(n.Children, cst.Token{p.bumpRaw()})
	}
	return n
}

func (p *Parser) parseArrayType() *cst.Node {
	kw := p.bumpRaw()
	children := []cst.Element{cst.Token{kw}}
	if p.Peek() == token.LBracket {
		children = append(children, cst.Token{p.bumpRaw()})
		children = append(children, p.ParseType())
		if p.Peek() == token.RBracket {
			children = append(children, cst.Token{p.bumpRaw()})
		} else {
			p.Diags.Add(diagnostics.New("P041", p.PeekTok().Span, "expected ']'"))
		}
	} else {
		p.Diags.Add(diagnostics.New("P042", p.PeekTok().Span, "expected '['"))
	}
	if p.Peek() == token.Plus {
		children = append(children, cst.Token{p.bumpRaw()})
	}
	return &cst.Node{Kind: cst.ArrayType, Children: children}
}

func (p *Parser) parseMapType() *cst.Node {
	kw := p.bumpRaw()
	children := []cst.Element{cst.Token{kw}}
	if p.Peek() == token.LBracket {
		children = append(children, cst.Token{p.bumpRaw()})
		children = append(children, p.ParseType())
		if p.Peek() == token.Comma {
			children = append(children, cst.Token{p.bumpRaw()})
		} else {
			p.Diags.Add(diagnostics.New("P043", p.PeekTok().Span, "expected ','"))
		}
		children = append(children, p.ParseType())
		if p.Peek() == token.RBracket {
			children = append(children, cst.Token{p.bumpRaw()})
		} else {
			p.Diags.Add(diagnostics.New("P044", p.PeekTok().Span, "expected ']'"))
		}
	} else {
		p.Diags.Add(diagnostics.New("P045", p.PeekTok().Span, "expected '['"))
	}
	return &cst.Node{Kind: cst.MapType, Children: children}
}

func (p *Parser) parsePairType() *cst.Node {
	kw := p.bumpRaw()
	children := []cst.Element{cst.Token{kw}}
	if p.Peek() == token.LBracket {
		children = append(children, cst.Token{p.bumpRaw()})
		children = append(children, p.ParseType())
		if p.Peek() == token.Comma {
			children = append(children, cst.Token{p.bumpRaw()})
		} else {
			p.Diags.Add(diagnostics.New("P046", p.PeekTok().Span, "expected ','"))
		}
		children = append(children, p.ParseType())
		if p.Peek() == token.RBracket {
			children = append(children, cst.Token{p.bumpRaw()})
		} else {
			p.Diags.Add(diagnostics.New("P047", p.PeekTok().Span, "expected ']'"))
		}
	} else {
		p.Diags.Add(diagnostics.New("P048", p.PeekTok().Span, "expected '['"))
	}
	return &cst.Node{Kind: cst.PairType, Children: children}
}
