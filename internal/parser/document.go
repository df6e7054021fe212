package parser

import (
	"github.com/stjude-rust-labs/wdlcore/internal/cst"
	"github.com/stjude-rust-labs/wdlcore/internal/diagnostics"
	"github.com/stjude-rust-labs/wdlcore/internal/token"
)

// ParseDocument parses a full WDL document and returns its CST root.
func (p *Parser) ParseDocument() *cst.Node {
	p.b.StartNode(cst.Document)
	if p.At(token.KwVersion) {
		p.parseVersionStatement()
	} else {
		p.Diags.Add(diagnostics.New("P080", p.PeekTok().Span, "document must start with a version statement"))
	}
	for !p.At(token.EOF) {
		switch p.Peek() {
		case token.KwImport:
			p.parseImportStatement()
		case token.KwStruct:
			p.parseStructDefinition()
		case token.KwTask:
			p.parseTaskDefinition()
		case token.KwWorkflow:
			p.parseWorkflowDefinition()
		default:
			tok := p.Bump()
			p.Diags.Add(diagnostics.Newf("P081", tok.Span, "unexpected token %s at document level", tok.Kind))
		}
	}
	p.b.FinishNode()
	return p.b.Build()
}

func (p *Parser) parseVersionStatement() {
	p.b.StartNode(cst.VersionStatement)
	p.Bump()
	if p.At(token.Ident) || p.At(token.FloatLiteral) || p.At(token.IntLiteral) {
		p.Bump()
	} else {
		p.Diags.Add(diagnostics.New("P082", p.PeekTok().Span, "expected version identifier"))
	}
	p.b.FinishNode()
}

// parseImportStatement parses `import "uri" as alias (alias A as B)*`.
func (p *Parser) parseImportStatement() {
	p.b.StartNode(cst.ImportStatement)
	p.Bump()
	if p.At(token.StringText) {
		p.b.AttachNode(p.parseInterpolatedString())
	} else {
		p.Diags.Add(diagnostics.New("P083", p.PeekTok().Span, "expected import URI string"))
	}
	if p.At(token.KwAs) {
		p.Bump()
		p.Expect(token.Ident)
	}
	for p.At(token.KwAlias) {
		p.Bump()
		p.Expect(token.Ident)
		p.Expect(token.KwAs)
		p.Expect(token.Ident)
	}
	p.b.FinishNode()
}

func (p *Parser) parseStructDefinition() {
	p.b.StartNode(cst.StructDefinition)
	p.Bump()
	p.Expect(token.Ident)
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

func (p *Parser) parseTaskDefinition() {
	p.b.StartNode(cst.TaskDefinition)
	p.Bump()
	p.Expect(token.Ident)
	if _, ok := p.Expect(token.LBrace); ok {
		p.PushRecovery(token.RBrace)
		p.parseTaskBodyItems()
		p.PopRecovery()
		p.Expect(token.RBrace)
	}
	p.b.FinishNode()
}

func (p *Parser) parseTaskBodyItems() {
	for {
		switch p.Peek() {
		case token.RBrace, token.EOF:
			return
		case token.KwInput:
			p.parseInputSection()
		case token.KwOutput:
			p.parseOutputSection()
		case token.KwCommand:
			p.parseCommandSection()
		case token.KwRuntime:
			p.parseRuntimeSection()
		case token.KwMeta:
			p.parseMetaSection(cst.MetaSection)
		case token.KwParameterMeta:
			p.parseMetaSection(cst.ParameterMetaSection)
		case token.KwHints:
			p.parseMetaSection(cst.HintsSection)
		default:
			if !p.atDeclStart() {
				if p.At(token.EOF) {
					return
				}
				tok := p.Bump()
				p.Diags.Add(diagnostics.Newf("P090", tok.Span, "unexpected token %s in task body", tok.Kind))
				continue
			}
			p.parseDecl()
		}
	}
}

func (p *Parser) parseWorkflowDefinition() {
	p.b.StartNode(cst.WorkflowDefinition)
	p.Bump()
	p.Expect(token.Ident)
	if _, ok := p.Expect(token.LBrace); ok {
		p.PushRecovery(token.RBrace)
		p.parseWorkflowBodyItems()
		p.PopRecovery()
		p.Expect(token.RBrace)
	}
	p.b.FinishNode()
}
