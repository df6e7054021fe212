package ast

import (
	"github.com/stjude-rust-labs/wdlcore/internal/cst"
	"github.com/stjude-rust-labs/wdlcore/internal/token"
)

// Statement is a workflow-body item: a declaration, a call, or a
// scatter/conditional nesting more statements. The analyzer switches on
// Kind() to recover the concrete view.
type Statement struct{ N *cst.Node }

func (s Statement) Kind() cst.Kind { return s.N.Kind }

func (s Statement) AsDeclaration() Declaration        { return Declaration{s.N} }
func (s Statement) AsCall() CallStatement              { return CallStatement{s.N} }
func (s Statement) AsScatter() ScatterStatement        { return ScatterStatement{s.N} }
func (s Statement) AsConditional() ConditionalStatement { return ConditionalStatement{s.N} }

func bodyStatements(n *cst.Node) []Statement {
	var out []Statement
	for _, c := range n.Children {
		cn, ok := c.(*cst.Node)
		if !ok {
			continue
		}
		switch cn.Kind {
		case cst.BoundDeclaration, cst.UnboundDeclaration, cst.CallStatement,
			cst.ScatterStatement, cst.ConditionalStatement:
			out = append(out, Statement{cn})
		}
	}
	return out
}

// ScatterStatement views `scatter (x in expr) { ... }`.
type ScatterStatement struct{ N *cst.Node }

func (s ScatterStatement) Variable() string { return firstIdent(s.N) }

// Collection returns the `in` expression.
func (s ScatterStatement) Collection() Expr {
	var sawIdent bool
	for _, c := range s.N.Children {
		switch v := c.(type) {
		case cst.Token:
			if v.Kind == token.Ident {
				sawIdent = true
			}
		case *cst.Node:
			if sawIdent {
				return Expr{v}
			}
		}
	}
	return Expr{}
}

func (s ScatterStatement) Body() []Statement { return bodyStatements(s.N) }

// ConditionalStatement views `if (expr) { ... }`.
type ConditionalStatement struct{ N *cst.Node }

func (c ConditionalStatement) Condition() Expr {
	for _, child := range c.N.Children {
		if n, ok := child.(*cst.Node); ok {
			return Expr{n}
		}
	}
	return Expr{}
}

func (c ConditionalStatement) Body() []Statement { return bodyStatements(c.N) }

// CallStatement views `call ns.task as alias after x { input: k = v }`.
type CallStatement struct{ N *cst.Node }

// Target returns the dot-qualified callee name, e.g. "lib.greet" or
// "greet".
func (c CallStatement) Target() string {
	for _, child := range c.N.Children {
		n, ok := child.(*cst.Node)
		if !ok || n.Kind != cst.NameRefExpr {
			continue
		}
		var out string
		for _, tc := range n.Children {
			if tok, ok := tc.(cst.Token); ok {
				out += tok.Text
			}
		}
		return out
	}
	return ""
}

// CalleeName is the last dotted component of Target (the actual
// task/workflow name, stripped of any import namespace prefix).
func (c CallStatement) CalleeName() string {
	for _, child := range c.N.Children {
		n, ok := child.(*cst.Node)
		if !ok || n.Kind != cst.NameRefExpr {
			continue
		}
		var last string
		for _, tc := range n.Children {
			if tok, ok := tc.(cst.Token); ok && tok.Kind == token.Ident {
				last = tok.Text
			}
		}
		return last
	}
	return ""
}

func (c CallStatement) Alias() (string, bool) {
	idents := identsAfterKeyword(c.N, token.KwAs)
	if len(idents) == 0 {
		return "", false
	}
	return idents[0], true
}

// EffectiveName is the call's binding name in the workflow scope: the
// alias if one was given, otherwise the callee name.
func (c CallStatement) EffectiveName() string {
	if alias, ok := c.Alias(); ok {
		return alias
	}
	return c.CalleeName()
}

func (c CallStatement) After() []string {
	return identsAfterKeyword(c.N, token.KwAfter)
}

func (c CallStatement) Inputs() []CallInput {
	var out []CallInput
	for _, child := range c.N.ChildNodes(cst.CallInput) {
		out = append(out, CallInput{child})
	}
	return out
}

// CallInput views one `name` or `name = expr` entry of a call's input
// block.
type CallInput struct{ N *cst.Node }

func (c CallInput) Name() string { return firstIdent(c.N) }

// Expr returns the bound expression, or the zero Expr if this is the
// `name` shorthand for `name = name`.
func (c CallInput) Expr() (Expr, bool) {
	for _, child := range c.N.Children {
		if n, ok := child.(*cst.Node); ok {
			return Expr{n}, true
		}
	}
	return Expr{}, false
}
