// Package ast gives the analyzer typed, named access to a parsed
// document without duplicating it: every view here is a thin wrapper
// around a *cst.Node (or cst.Token), carrying no state of its own beyond
// that pointer. Views are constructed on demand and discarded once read;
// there is exactly one tree, the CST, and this package only teaches the
// analyzer how to read it.
package ast

import (
	"github.com/stjude-rust-labs/wdlcore/internal/cst"
	"github.com/stjude-rust-labs/wdlcore/internal/token"
)

// Document is the root view: a version statement plus any number of
// imports, struct definitions, tasks, and workflows. Neither this view
// nor the analyzer checks how many workflows there are; only the first
// one is read (see Workflow).
type Document struct{ N *cst.Node }

func NewDocument(n *cst.Node) Document { return Document{N: n} }

func (d Document) Version() (VersionStatement, bool) {
	n, ok := d.N.FirstChildNode(cst.VersionStatement)
	return VersionStatement{n}, ok
}

func (d Document) Imports() []ImportStatement {
	var out []ImportStatement
	for _, n := range d.N.ChildNodes(cst.ImportStatement) {
		out = append(out, ImportStatement{n})
	}
	return out
}

func (d Document) Structs() []StructDefinition {
	var out []StructDefinition
	for _, n := range d.N.ChildNodes(cst.StructDefinition) {
		out = append(out, StructDefinition{n})
	}
	return out
}

func (d Document) Tasks() []TaskDefinition {
	var out []TaskDefinition
	for _, n := range d.N.ChildNodes(cst.TaskDefinition) {
		out = append(out, TaskDefinition{n})
	}
	return out
}

// Workflow returns the document's first workflow, if it has one. A
// second workflow definition parses without a diagnostic, and the
// analyzer reports none for it either.
func (d Document) Workflow() (WorkflowDefinition, bool) {
	n, ok := d.N.FirstChildNode(cst.WorkflowDefinition)
	return WorkflowDefinition{n}, ok
}

// VersionStatement views `version X.Y`.
type VersionStatement struct{ N *cst.Node }

func (v VersionStatement) Text() string {
	if tok, ok := v.N.FirstToken(token.Ident); ok {
		return tok.Text
	}
	if tok, ok := v.N.FirstToken(token.FloatLiteral); ok {
		return tok.Text
	}
	if tok, ok := v.N.FirstToken(token.IntLiteral); ok {
		return tok.Text
	}
	return ""
}

// ImportStatement views `import "uri" as alias (alias A as B)*`.
type ImportStatement struct{ N *cst.Node }

func (i ImportStatement) URI() (Expr, bool) {
	for _, c := range i.N.Children {
		if n, ok := c.(*cst.Node); ok && n.Kind == cst.StringLiteralExpr {
			return Expr{n}, true
		}
	}
	return Expr{}, false
}

// Alias returns the `as alias` name, if present.
func (i ImportStatement) Alias() (string, bool) {
	idents := identsAfterKeyword(i.N, token.KwAs)
	if len(idents) == 0 {
		return "", false
	}
	return idents[0], true
}

// StructAliases returns each `alias From as To` pair, in order.
func (i ImportStatement) StructAliases() [][2]string {
	var out [][2]string
	children := i.N.Children
	for idx := 0; idx < len(children); idx++ {
		tok, ok := children[idx].(cst.Token)
		if !ok || tok.Kind != token.KwAlias {
			continue
		}
		if idx+3 < len(children) {
			from, ok1 := children[idx+1].(cst.Token)
			as, ok2 := children[idx+2].(cst.Token)
			to, ok3 := children[idx+3].(cst.Token)
			if ok1 && ok2 && ok3 && as.Kind == token.KwAs {
				out = append(out, [2]string{from.Text, to.Text})
			}
		}
	}
	return out
}

// identsAfterKeyword returns the Ident token immediately following each
// occurrence of kw among n's direct children.
func identsAfterKeyword(n *cst.Node, kw token.Kind) []string {
	var out []string
	for idx, c := range n.Children {
		tok, ok := c.(cst.Token)
		if !ok || tok.Kind != kw {
			continue
		}
		if idx+1 < len(n.Children) {
			if next, ok := n.Children[idx+1].(cst.Token); ok && next.Kind == token.Ident {
				out = append(out, next.Text)
			}
		}
	}
	return out
}

// StructDefinition views `struct Name { Type field ... }`.
type StructDefinition struct{ N *cst.Node }

func (s StructDefinition) Name() string { return firstIdent(s.N) }

func (s StructDefinition) Members() []Declaration {
	return declarations(s.N)
}

// TaskDefinition views `task name { ... }`.
type TaskDefinition struct{ N *cst.Node }

func (t TaskDefinition) Name() string { return firstIdent(t.N) }

func (t TaskDefinition) Input() (InputSection, bool) {
	n, ok := t.N.FirstChildNode(cst.InputSection)
	return InputSection{n}, ok
}

func (t TaskDefinition) Output() (OutputSection, bool) {
	n, ok := t.N.FirstChildNode(cst.OutputSection)
	return OutputSection{n}, ok
}

func (t TaskDefinition) Command() (CommandSection, bool) {
	n, ok := t.N.FirstChildNode(cst.CommandSection)
	return CommandSection{n}, ok
}

func (t TaskDefinition) Runtime() (RuntimeSection, bool) {
	n, ok := t.N.FirstChildNode(cst.RuntimeSection)
	return RuntimeSection{n}, ok
}

func (t TaskDefinition) Meta() (MetaSection, bool) {
	n, ok := t.N.FirstChildNode(cst.MetaSection)
	return MetaSection{n}, ok
}

func (t TaskDefinition) ParameterMeta() (MetaSection, bool) {
	n, ok := t.N.FirstChildNode(cst.ParameterMetaSection)
	return MetaSection{n}, ok
}

func (t TaskDefinition) Hints() (MetaSection, bool) {
	n, ok := t.N.FirstChildNode(cst.HintsSection)
	return MetaSection{n}, ok
}

// Declarations returns private (non-input/output) declarations directly
// in the task body.
func (t TaskDefinition) Declarations() []Declaration {
	return declarations(t.N)
}

// WorkflowDefinition views `workflow name { ... }`.
type WorkflowDefinition struct{ N *cst.Node }

func (w WorkflowDefinition) Name() string { return firstIdent(w.N) }

func (w WorkflowDefinition) Input() (InputSection, bool) {
	n, ok := w.N.FirstChildNode(cst.InputSection)
	return InputSection{n}, ok
}

func (w WorkflowDefinition) Output() (OutputSection, bool) {
	n, ok := w.N.FirstChildNode(cst.OutputSection)
	return OutputSection{n}, ok
}

func (w WorkflowDefinition) Meta() (MetaSection, bool) {
	n, ok := w.N.FirstChildNode(cst.MetaSection)
	return MetaSection{n}, ok
}

func (w WorkflowDefinition) ParameterMeta() (MetaSection, bool) {
	n, ok := w.N.FirstChildNode(cst.ParameterMetaSection)
	return MetaSection{n}, ok
}

func (w WorkflowDefinition) Hints() (MetaSection, bool) {
	n, ok := w.N.FirstChildNode(cst.HintsSection)
	return MetaSection{n}, ok
}

// Body returns the workflow's top-level statements (declarations, call
// statements, scatter/conditional statements) in document order, input
// and output sections and meta-family sections excluded.
func (w WorkflowDefinition) Body() []Statement {
	return bodyStatements(w.N)
}

// InputSection/OutputSection view a `{ Type name [= expr] ... }` block.
type InputSection struct{ N *cst.Node }

func (s InputSection) Declarations() []Declaration { return declarations(s.N) }

type OutputSection struct{ N *cst.Node }

func (s OutputSection) Declarations() []Declaration { return declarations(s.N) }

// Declaration views one `Type name` or `Type name = expr` binding.
type Declaration struct{ N *cst.Node }

func (d Declaration) Bound() bool { return d.N.Kind == cst.BoundDeclaration }

func (d Declaration) Type() TypeExpr {
	for _, c := range d.N.Children {
		if n, ok := c.(*cst.Node); ok && isTypeKind(n.Kind) {
			return TypeExpr{n}
		}
	}
	return TypeExpr{}
}

func (d Declaration) Name() string { return firstIdent(d.N) }

// Expr returns the initializer expression, valid only if Bound().
func (d Declaration) Expr() Expr {
	ty := d.Type()
	for _, c := range d.N.Children {
		n, ok := c.(*cst.Node)
		if !ok || n == ty.N || isTypeKind(n.Kind) {
			continue
		}
		return Expr{n}
	}
	return Expr{}
}

func isTypeKind(k cst.Kind) bool {
	switch k {
	case cst.PrimitiveType, cst.ArrayType, cst.MapType, cst.PairType, cst.OptionalType, cst.TypeRef:
		return true
	default:
		return false
	}
}

func declarations(n *cst.Node) []Declaration {
	var out []Declaration
	for _, c := range n.Children {
		if cn, ok := c.(*cst.Node); ok && (cn.Kind == cst.BoundDeclaration || cn.Kind == cst.UnboundDeclaration) {
			out = append(out, Declaration{cn})
		}
	}
	return out
}

func firstIdent(n *cst.Node) string {
	if tok, ok := n.FirstToken(token.Ident); ok {
		return tok.Text
	}
	return ""
}

// CommandSection views a command body: an ordered mix of literal text
// runs and `~{...}`/`${...}` placeholders.
type CommandSection struct{ N *cst.Node }

// Parts returns the command body as literal-text/placeholder elements in
// source order.
func (c CommandSection) Parts() []cst.Element {
	if c.N == nil {
		return nil
	}
	var out []cst.Element
	for _, child := range c.N.Children {
		switch v := child.(type) {
		case cst.Token:
			if v.Kind == token.StringText {
				out = append(out, v)
			}
		case *cst.Node:
			if v.Kind == cst.PlaceholderExpr {
				out = append(out, v)
			}
		}
	}
	return out
}

// Placeholders returns just the `~{...}`/`${...}` expressions embedded
// in the command, in source order.
func (c CommandSection) Placeholders() []Placeholder {
	var out []Placeholder
	for _, part := range c.Parts() {
		if n, ok := part.(*cst.Node); ok {
			out = append(out, Placeholder{n})
		}
	}
	return out
}

// RuntimeSection views `runtime { name: expr ... }`.
type RuntimeSection struct{ N *cst.Node }

func (r RuntimeSection) Entries() map[string]Expr {
	out := map[string]Expr{}
	children := r.N.Children
	for idx := 0; idx < len(children); idx++ {
		tok, ok := children[idx].(cst.Token)
		if !ok || tok.Kind != token.Ident {
			continue
		}
		for j := idx + 1; j < len(children); j++ {
			if n, ok := children[j].(*cst.Node); ok {
				out[tok.Text] = Expr{n}
				break
			}
		}
	}
	return out
}

// MetaSection views meta/parameter_meta/hints (a JSON-like key/value
// map); the Kind distinguishes which.
type MetaSection struct{ N *cst.Node }

func (m MetaSection) Entries() map[string]MetaValue {
	return metaEntries(m.N)
}

func metaEntries(n *cst.Node) map[string]MetaValue {
	out := map[string]MetaValue{}
	children := n.Children
	for idx := 0; idx < len(children); idx++ {
		tok, ok := children[idx].(cst.Token)
		if !ok || (tok.Kind != token.Ident && !isKeywordLike(tok.Kind)) {
			continue
		}
		for j := idx + 1; j < len(children); j++ {
			if v, ok := children[j].(*cst.Node); ok {
				out[tok.Text] = MetaValue{v}
				break
			}
			if _, ok := children[j].(cst.Token); ok {
				continue
			}
		}
	}
	return out
}

func isKeywordLike(k token.Kind) bool {
	switch k {
	case token.KwInput, token.KwOutput, token.KwVersion, token.KwAs:
		return true
	default:
		return false
	}
}

// MetaValue views one meta-map value: a literal, string, nested object,
// or array.
type MetaValue struct{ N *cst.Node }

func (v MetaValue) Kind() cst.Kind { return v.N.Kind }

func (v MetaValue) AsObject() map[string]MetaValue {
	if v.N.Kind != cst.ObjectLiteralExpr {
		return nil
	}
	return metaEntries(v.N)
}

func (v MetaValue) AsBoolText() (string, bool) {
	if v.N.Kind != cst.LiteralExpr {
		return "", false
	}
	if tok, ok := v.N.FirstToken(token.BooleanLiteral); ok {
		return tok.Text, true
	}
	return "", false
}
