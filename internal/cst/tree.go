// Package cst is the Concrete Syntax Tree: trivia (whitespace,
// comments) are ordinary Token leaves interleaved with syntactic ones,
// and every element knows its exact byte span in the original source,
// so consumers can always recover verbatim text through Span/Text. (The
// expression parser drops interior trivia between expression tokens;
// see the parser's cursor for that documented trade-off.) AST views
// (internal/ast) are thin, typed accessors over this tree; they own no
// text or spans of their own.
package cst

import (
	"github.com/stjude-rust-labs/wdlcore/internal/span"
	"github.com/stjude-rust-labs/wdlcore/internal/token"
)

// Element is either a Node or a Token; Span lets callers navigate the
// tree without caring which.
type Element interface {
	Span() span.Span
	isElement()
}

// Token wraps a lexed terminal as a tree leaf.
type Token struct {
	token.Token
}

func (t Token) Span() span.Span { return t.Token.Span }
func (Token) isElement()        {}

// Node is an interior tree element: a Kind plus an ordered list of child
// elements (tokens and/or nested nodes), covering the span from its
// first to its last child.
type Node struct {
	Kind     Kind
	Children []Element
}

func (Node) isElement() {}

func (n *Node) Span() span.Span {
	if len(n.Children) == 0 {
		return span.Span{}
	}
	return n.Children[0].Span().Join(n.Children[len(n.Children)-1].Span())
}

// ChildNodes returns every direct child that is a *Node with the given
// kind, in document order.
func (n *Node) ChildNodes(kind Kind) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if cn, ok := c.(*Node); ok && cn.Kind == kind {
			out = append(out, cn)
		}
	}
	return out
}

// FirstChildNode returns the first direct *Node child of the given kind.
func (n *Node) FirstChildNode(kind Kind) (*Node, bool) {
	for _, c := range n.Children {
		if cn, ok := c.(*Node); ok && cn.Kind == kind {
			return cn, true
		}
	}
	return nil, false
}

// AllNodes returns every direct child that is a *Node, regardless of
// kind, in document order (used where a section holds a heterogeneous
// list, e.g. a workflow body's statements).
func (n *Node) AllNodes() []*Node {
	var out []*Node
	for _, c := range n.Children {
		if cn, ok := c.(*Node); ok {
			out = append(out, cn)
		}
	}
	return out
}

// Tokens returns every direct Token child with the given kind.
func (n *Node) Tokens(kind token.Kind) []Token {
	var out []Token
	for _, c := range n.Children {
		if t, ok := c.(Token); ok && t.Kind == kind {
			out = append(out, t)
		}
	}
	return out
}

// FirstToken returns the first direct Token child of the given kind.
func (n *Node) FirstToken(kind token.Kind) (Token, bool) {
	for _, c := range n.Children {
		if t, ok := c.(Token); ok && t.Kind == kind {
			return t, true
		}
	}
	return Token{}, false
}

// Text reconstructs the node's exact source slice from src, proving
// losslessness: joining every leaf token's text back together reproduces
// the original bytes for that span.
func (n *Node) Text(src string) string { return n.Span().Text(src) }
