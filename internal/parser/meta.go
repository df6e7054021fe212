package parser

import (
	"github.com/stjude-rust-labs/wdlcore/internal/cst"
	"github.com/stjude-rust-labs/wdlcore/internal/diagnostics"
	"github.com/stjude-rust-labs/wdlcore/internal/token"
)

// parseMetaSection parses meta/parameter_meta/hints, which share one
// grammar (a brace-delimited object of key: value pairs, keys bare
// identifiers) but differ in what node Kind they produce, since the
// nested-inputs policy keys off which section a `{allow_nested_inputs:
// ...}`-shaped value sits in.
func (p *Parser) parseMetaSection(kind cst.Kind) {
	p.b.StartNode(kind)
	p.Bump()
	if _, ok := p.Expect(token.LBrace); ok {
		p.PushRecovery(token.RBrace)
		p.parseMetaEntries()
		p.PopRecovery()
		p.Expect(token.RBrace)
	}
	p.b.FinishNode()
}

// parseMetaEntries parses zero or more `key: value` pairs, optionally
// comma-separated (WDL tolerates both newline- and comma-delimited meta
// bodies), stopping at the closing brace.
func (p *Parser) parseMetaEntries() {
	for p.At(token.Ident) || isKeywordAsKey(p.Peek()) {
		p.Bump()
		p.Expect(token.Colon)
		p.b.AttachNode(p.parseMetaValue())
		if p.At(token.Comma) {
			p.Bump()
		}
	}
}

// isKeywordAsKey allows a handful of WDL keywords to double as meta-map
// keys (e.g. `meta { output: {...} }`), since meta bodies are not
// expressions and don't reserve the keyword namespace the way the rest of
// the grammar does.
func isKeywordAsKey(k token.Kind) bool {
	switch k {
	case token.KwInput, token.KwOutput, token.KwVersion, token.KwAs:
		return true
	default:
		return false
	}
}

// parseMetaValue parses one JSON-like meta value: a string, number,
// boolean, None, nested object, or array. Unlike ordinary expressions,
// meta values never reference declarations or call the standard
// library, so it is built bottom-up the same way expr.go builds
// expressions rather than through the section-level builder calls.
func (p *Parser) parseMetaValue() *cst.Node {
	switch p.Peek() {
	case token.StringText:
		return p.parseInterpolatedString()
	case token.IntLiteral, token.FloatLiteral, token.BooleanLiteral, token.KwNone:
		tok := p.bumpRaw()
		return &cst.Node{Kind: cst.LiteralExpr, Children: []cst.Element{cst.Token{tok}}}
	case token.LBracket:
		lb := p.bumpRaw()
		children := []cst.Element{cst.Token{lb}}
		for p.Peek() != token.RBracket && p.Peek() != token.EOF {
			children = append(children, p.parseMetaValue())
			if p.Peek() == token.Comma {
				children = append(children, cst.Token{p.bumpRaw()})
			} else {
				break
			}
		}
		if p.Peek() == token.RBracket {
			children = append(children, cst.Token{p.bumpRaw()})
		} else {
			p.Diags.Add(diagnostics.New("P062", p.PeekTok().Span, "expected ']'"))
		}
		return &cst.Node{Kind: cst.ArrayLiteralExpr, Children: children}
	case token.LBrace:
		lb := p.bumpRaw()
		children := []cst.Element{cst.Token{lb}}
		for p.Peek() == token.Ident || isKeywordAsKey(p.Peek()) {
			key := p.bumpRaw()
			children = append(children, cst.Token{key})
			if p.Peek() == token.Colon {
				children = append(children, cst.Token{p.bumpRaw()})
			} else {
				p.Diags.Add(diagnostics.New("P061", p.PeekTok().Span, "expected ':'"))
			}
			children = append(children, p.parseMetaValue())
			if p.Peek() == token.Comma {
				children = append(children, cst.Token{p.bumpRaw()})
			} else {
				break
			}
		}
		if p.Peek() == token.RBrace {
			children = append(children, cst.Token{p.bumpRaw()})
		} else {
			p.Diags.Add(diagnostics.New("P063", p.PeekTok().Span, "expected '}'"))
		}
		return &cst.Node{Kind: cst.ObjectLiteralExpr, Children: children}
	default:
		tok := p.bumpRaw()
		p.Diags.Add(diagnostics.Newf("P064", tok.Span, "expected meta value, found %s", tok.Kind))
		return &cst.Node{Kind: cst.Error, Children: []cst.Element{cst.Token{tok}}}
	}
}
