package parser

import (
	"github.com/stjude-rust-labs/wdlcore/internal/cst"
	"github.com/stjude-rust-labs/wdlcore/internal/token"
)

// parseDecl parses one `Type name` or `Type name = expr` declaration,
// used inside input sections, output sections, struct bodies, and bare
// in task/workflow bodies. Whether '=' follows decides Bound vs Unbound,
// which isn't known until after the type and name are already parsed, so
// the node opens as Unbound and is retagged if an initializer shows up.
func (p *Parser) parseDecl() {
	m := p.b.StartNode(cst.UnboundDeclaration)
	p.b.AttachNode(p.ParseType())
	p.Expect(token.Ident)
	if p.At(token.Equal) {
		p.b.SetKind(m, cst.BoundDeclaration)
		p.Bump()
		p.b.AttachNode(p.parseBinary(1))
	}
	p.b.FinishNode()
}

// atDeclStart reports whether the next token can begin a declaration's
// type, so a declaration list knows where to stop without needing a
// terminator in the grammar.
func (p *Parser) atDeclStart() bool {
	switch p.Peek() {
	case token.KwArray, token.KwMap, token.KwPair, token.KwBoolean, token.KwInt,
		token.KwFloat, token.KwString, token.KwFile, token.KwDirectory,
		token.Ident, token.KwObject:
		return true
	default:
		return false
	}
}

func (p *Parser) parseInputSection() {
	p.b.StartNode(cst.InputSection)
	p.Bump()
	if _, ok := p.Expect(token.LBrace); ok {
		p.PushRecovery(token.RBrace)
		for p.atDeclStart() {
			p.parseDecl()
		}
		p.PopRecovery()
		p.Expect(token.RBrace)
	}
	p.b.FinishNode()
}

func (p *Parser) parseOutputSection() {
	p.b.StartNode(cst.OutputSection)
	p.Bump()
	if _, ok := p.Expect(token.LBrace); ok {
		p.PushRecovery(token.RBrace)
		for p.atDeclStart() {
			p.parseDecl()
		}
		p.PopRecovery()
		p.Expect(token.RBrace)
	}
	p.b.FinishNode()
}

func (p *Parser) parseRuntimeSection() {
	p.b.StartNode(cst.RuntimeSection)
	p.Bump()
	if _, ok := p.Expect(token.LBrace); ok {
		p.PushRecovery(token.RBrace)
		for p.At(token.Ident) || p.At(token.KwMeta) || p.At(token.KwRuntime) {
			p.Bump()
			p.Expect(token.Colon)
			p.b.AttachNode(p.parseBinary(1))
		}
		p.PopRecovery()
		p.Expect(token.RBrace)
	}
	p.b.FinishNode()
}
