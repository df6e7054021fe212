package parser

import (
	"github.com/stjude-rust-labs/wdlcore/internal/cst"
	"github.com/stjude-rust-labs/wdlcore/internal/diagnostics"
	"github.com/stjude-rust-labs/wdlcore/internal/token"
)

// parseWorkflowBodyItems parses the body of a workflow or of a
// scatter/conditional nested inside one: a mix of declarations, call
// statements, scatter/conditional statements, and the input/output/meta
// sections (only legal at the workflow's own top level, but accepted
// here too and left for the analyzer to reject where out of place, the
// same permissive-parse/strict-analyze split the rest of the grammar
// follows).
func (p *Parser) parseWorkflowBodyItems() {
	for {
		switch p.Peek() {
		case token.RBrace, token.EOF:
			return
		case token.KwInput:
			p.parseInputSection()
		case token.KwOutput:
			p.parseOutputSection()
		case token.KwMeta:
			p.parseMetaSection(cst.MetaSection)
		case token.KwParameterMeta:
			p.parseMetaSection(cst.ParameterMetaSection)
		case token.KwHints:
			p.parseMetaSection(cst.HintsSection)
		case token.KwCall:
			p.parseCallStatement()
		case token.KwScatter:
			p.parseScatterStatement()
		case token.KwIf:
			p.parseConditionalStatement()
		default:
			if !p.atDeclStart() {
				if p.At(token.EOF) {
					return
				}
				tok := p.Bump()
				p.Diags.Add(diagnostics.Newf("P070", tok.Span, "unexpected token %s in workflow body", tok.Kind))
				continue
			}
			p.parseDecl()
		}
	}
}

func (p *Parser) parseScatterStatement() {
	p.b.StartNode(cst.ScatterStatement)
	p.Bump()
	p.Expect(token.LParen)
	p.Expect(token.Ident)
	p.Expect(token.KwIn)
	p.b.AttachNode(p.parseBinary(1))
	p.Expect(token.RParen)
	if _, ok := p.Expect(token.LBrace); ok {
		p.PushRecovery(token.RBrace)
		p.parseWorkflowBodyItems()
		p.PopRecovery()
		p.Expect(token.RBrace)
	}
	p.b.FinishNode()
}

func (p *Parser) parseConditionalStatement() {
	p.b.StartNode(cst.ConditionalStatement)
	p.Bump()
	p.Expect(token.LParen)
	p.b.AttachNode(p.parseBinary(1))
	p.Expect(token.RParen)
	if _, ok := p.Expect(token.LBrace); ok {
		p.PushRecovery(token.RBrace)
		p.parseWorkflowBodyItems()
		p.PopRecovery()
		p.Expect(token.RBrace)
	}
	p.b.FinishNode()
}

// parseCallStatement parses `call ns.task_name as alias after a after b {
// input: k1 = e1, k2 }`. The callee name is a dot-qualified path, not a
// general expression (it names an importable task/workflow, never a
// value), so it's gathered bottom-up as a flat run of Ident/Dot tokens,
// the same way expr.go builds postfix chains, and attached as one unit.
func (p *Parser) parseCallStatement() {
	p.b.StartNode(cst.CallStatement)
	p.Bump()

	target := &cst.Node{Kind: cst.NameRefExpr, Children: []cst.Element{cst.Token{p.bumpRaw()}}}
	for p.Peek() == token.Dot {
		target.Children = append(target.Children, cst.Token{p.bumpRaw()}, cst.Token{p.bumpRaw()})
	}
	p.b.AttachNode(target)

	if p.At(token.KwAs) {
		p.Bump()
		p.Expect(token.Ident)
	}
	for p.At(token.KwAfter) {
		p.Bump()
		p.Expect(token.Ident)
	}
	if p.At(token.LBrace) {
		p.Bump()
		if p.At(token.KwInput) {
			p.Bump()
			if p.At(token.Colon) {
				p.Bump()
			}
			for p.At(token.Ident) {
				p.parseCallInput()
				if p.At(token.Comma) {
					p.Bump()
				} else {
					break
				}
			}
		}
		p.Expect(token.RBrace)
	}
	p.b.FinishNode()
}

// parseCallInput parses one `name` (shorthand for `name = name`) or
// `name = expr` entry of a call's input block.
func (p *Parser) parseCallInput() {
	p.b.StartNode(cst.CallInput)
	p.Bump()
	if p.At(token.Equal) {
		p.Bump()
		p.b.AttachNode(p.parseBinary(1))
	}
	p.b.FinishNode()
}
