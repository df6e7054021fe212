package ast

import (
	"github.com/stjude-rust-labs/wdlcore/internal/cst"
	"github.com/stjude-rust-labs/wdlcore/internal/token"
)

// Expr is a thin view over any expression-kinded CST node. The analyzer
// switches on N.Kind to decide which accessors are valid, the same way
// it switches on cst.Kind for statements — there is deliberately no
// separate sealed interface hierarchy per expression kind, since that
// would just be the duplicate-tree problem one layer down.
type Expr struct{ N *cst.Node }

func (e Expr) Kind() cst.Kind { return e.N.Kind }
func (e Expr) Valid() bool    { return e.N != nil }

// Literal-kind accessors (LiteralExpr: Int/Float/Boolean/None literals).
func (e Expr) LiteralToken() (token.Token, bool) {
	for _, c := range e.N.Children {
		if t, ok := c.(cst.Token); ok {
			return t.Token, true
		}
	}
	return token.Token{}, false
}

// NameRefExpr accessor.
func (e Expr) Name() string {
	if tok, ok := e.N.FirstToken(token.Ident); ok {
		return tok.Text
	}
	return ""
}

// BinaryExpr accessors.
func (e Expr) BinaryOp() token.Kind {
	for _, c := range e.N.Children {
		if t, ok := c.(cst.Token); ok {
			return t.Kind
		}
	}
	return token.Error
}

func (e Expr) BinaryOperands() (Expr, Expr) {
	var nodes []*cst.Node
	for _, c := range e.N.Children {
		if n, ok := c.(*cst.Node); ok {
			nodes = append(nodes, n)
		}
	}
	if len(nodes) != 2 {
		return Expr{}, Expr{}
	}
	return Expr{nodes[0]}, Expr{nodes[1]}
}

// UnaryExpr accessors.
func (e Expr) UnaryOp() token.Kind {
	for _, c := range e.N.Children {
		if t, ok := c.(cst.Token); ok {
			return t.Kind
		}
	}
	return token.Error
}

func (e Expr) UnaryOperand() Expr {
	for _, c := range e.N.Children {
		if n, ok := c.(*cst.Node); ok {
			return Expr{n}
		}
	}
	return Expr{}
}

// IfExpr accessors: condition, then-branch, else-branch, in order.
func (e Expr) IfParts() (cond, then, els Expr) {
	var nodes []*cst.Node
	for _, c := range e.N.Children {
		if n, ok := c.(*cst.Node); ok {
			nodes = append(nodes, n)
		}
	}
	if len(nodes) != 3 {
		return
	}
	return Expr{nodes[0]}, Expr{nodes[1]}, Expr{nodes[2]}
}

// IndexExpr accessors.
func (e Expr) IndexTarget() Expr {
	if len(e.N.Children) == 0 {
		return Expr{}
	}
	if n, ok := e.N.Children[0].(*cst.Node); ok {
		return Expr{n}
	}
	return Expr{}
}

func (e Expr) IndexValue() Expr {
	var nodes []*cst.Node
	for _, c := range e.N.Children {
		if n, ok := c.(*cst.Node); ok {
			nodes = append(nodes, n)
		}
	}
	if len(nodes) < 2 {
		return Expr{}
	}
	return Expr{nodes[1]}
}

// AccessExpr accessors: `target.member`.
func (e Expr) AccessTarget() Expr {
	if len(e.N.Children) == 0 {
		return Expr{}
	}
	if n, ok := e.N.Children[0].(*cst.Node); ok {
		return Expr{n}
	}
	return Expr{}
}

func (e Expr) AccessMember() string {
	toks := e.N.Tokens(token.Ident)
	if len(toks) == 0 {
		return ""
	}
	return toks[len(toks)-1].Text
}

// CallExpr accessors: a standard-library function call (struct literals
// and call statements use their own node kinds instead).
func (e Expr) CallTarget() Expr {
	if len(e.N.Children) == 0 {
		return Expr{}
	}
	if n, ok := e.N.Children[0].(*cst.Node); ok {
		return Expr{n}
	}
	return Expr{}
}

func (e Expr) CallArgs() []Expr {
	var out []Expr
	skippedTarget := false
	for _, c := range e.N.Children {
		n, ok := c.(*cst.Node)
		if !ok {
			continue
		}
		if !skippedTarget {
			skippedTarget = true
			continue
		}
		out = append(out, Expr{n})
	}
	return out
}

// ArrayLiteralExpr / ObjectLiteralExpr (as a bare array of values)
// accessor: every direct expression child, in order.
func (e Expr) Elements() []Expr {
	var out []Expr
	for _, c := range e.N.Children {
		if n, ok := c.(*cst.Node); ok {
			out = append(out, Expr{n})
		}
	}
	return out
}

// MapLiteralExpr accessor: alternating key/value pairs.
func (e Expr) MapEntries() [][2]Expr {
	var nodes []*cst.Node
	for _, c := range e.N.Children {
		if n, ok := c.(*cst.Node); ok {
			nodes = append(nodes, n)
		}
	}
	var out [][2]Expr
	for i := 0; i+1 < len(nodes); i += 2 {
		out = append(out, [2]Expr{{nodes[i]}, {nodes[i+1]}})
	}
	return out
}

// PairLiteralExpr accessor.
func (e Expr) PairParts() (Expr, Expr) {
	var nodes []*cst.Node
	for _, c := range e.N.Children {
		if n, ok := c.(*cst.Node); ok {
			nodes = append(nodes, n)
		}
	}
	if len(nodes) != 2 {
		return Expr{}, Expr{}
	}
	return Expr{nodes[0]}, Expr{nodes[1]}
}

// StructLiteralExpr accessor: the struct name token (if any — object
// literals share this node shape but have no leading name) plus its
// field name/value pairs.
func (e Expr) StructName() (string, bool) {
	if len(e.N.Children) == 0 {
		return "", false
	}
	if tok, ok := e.N.Children[0].(cst.Token); ok && tok.Kind == token.Ident {
		return tok.Text, true
	}
	return "", false
}

func (e Expr) StructFields() map[string]Expr {
	out := map[string]Expr{}
	children := e.N.Children
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

// ParenExpr accessor.
func (e Expr) Inner() Expr {
	for _, c := range e.N.Children {
		if n, ok := c.(*cst.Node); ok {
			return Expr{n}
		}
	}
	return Expr{}
}

// StringLiteralExpr accessor: the literal/placeholder parts in order.
func (e Expr) StringParts() []cst.Element {
	var out []cst.Element
	for _, c := range e.N.Children {
		switch v := c.(type) {
		case cst.Token:
			out = append(out, v)
		case *cst.Node:
			if v.Kind == cst.PlaceholderExpr {
				out = append(out, v)
			}
		}
	}
	return out
}

// Placeholder views a `~{[sep=expr|default=expr|true=s|false=s] expr}`.
type Placeholder struct{ N *cst.Node }

// Option returns the value token bound to the named option ("sep",
// "default", "true", "false"), if present.
func (p Placeholder) Option(name string) (string, bool) {
	children := p.N.Children
	for idx := 0; idx+1 < len(children); idx += 2 {
		nameTok, ok1 := children[idx].(cst.Token)
		valTok, ok2 := children[idx+1].(cst.Token)
		if ok1 && ok2 && nameTok.Text == name {
			return valTok.Text, true
		}
		if _, isNode := children[idx].(*cst.Node); isNode {
			break
		}
	}
	return "", false
}

func (p Placeholder) Expr() Expr {
	for _, c := range p.N.Children {
		if n, ok := c.(*cst.Node); ok {
			return Expr{n}
		}
	}
	return Expr{}
}

// TypeExpr is a thin view over a type-kinded CST node.
type TypeExpr struct{ N *cst.Node }

func (t TypeExpr) Valid() bool { return t.N != nil }
func (t TypeExpr) Kind() cst.Kind {
	if t.N == nil {
		return cst.Error
	}
	return t.N.Kind
}

func (t TypeExpr) Optional() bool {
	_, ok := t.N.FirstToken(token.Question)
	return ok
}

func (t TypeExpr) NonEmpty() bool {
	_, ok := t.N.FirstToken(token.Plus)
	return ok
}

// Name returns the primitive keyword, `object`, or struct-name
// identifier text.
func (t TypeExpr) Name() string {
	for _, c := range t.N.Children {
		if tok, ok := c.(cst.Token); ok && (tok.Kind == token.Ident || tok.Kind == token.KwObject || isPrimitiveKeyword(tok.Kind)) {
			return tok.Text
		}
	}
	return ""
}

func isPrimitiveKeyword(k token.Kind) bool {
	switch k {
	case token.KwBoolean, token.KwInt, token.KwFloat, token.KwString, token.KwFile, token.KwDirectory:
		return true
	default:
		return false
	}
}

// Params returns the bracketed type parameters of an Array/Map/Pair
// type, in order.
func (t TypeExpr) Params() []TypeExpr {
	var out []TypeExpr
	for _, c := range t.N.Children {
		if n, ok := c.(*cst.Node); ok {
			out = append(out, TypeExpr{n})
		}
	}
	return out
}
