package cst

import "github.com/stjude-rust-labs/wdlcore/internal/token"

// Builder accumulates a flat event stream during parsing and turns it
// into a Node tree on Build. This mirrors how lossless-tree parsers
// typically decouple "what shape did we see" (events, emitted in a single
// left-to-right pass, including backtracking-friendly Abandon) from
// "build the tree" (a second, allocation-heavy pass) — the parser never
// holds a *Node while still deciding where it nests.
type Builder struct {
	events []event
}

type eventKind int

const (
	evStart eventKind = iota
	evToken
	evFinish
	evAbandon
	evAttach
)

type event struct {
	kind     eventKind
	node     Kind
	tok      token.Token
	attached *Node
}

// Marker references a StartNode call so the parser can retroactively
// Abandon it (if, after some lookahead, the node turns out not to exist)
// instead of finishing it.
type Marker int

// StartNode opens a new node of the given kind and returns a Marker that
// must eventually be resolved by either FinishNode or Abandon.
func (b *Builder) StartNode(kind Kind) Marker {
	b.events = append(b.events, event{kind: evStart, node: kind})
	return Marker(len(b.events) - 1)
}

// Token appends a leaf token to the node currently open.
func (b *Builder) Token(tok token.Token) {
	b.events = append(b.events, event{kind: evToken, tok: tok})
}

// FinishNode closes the most recently opened (and not yet closed) node.
func (b *Builder) FinishNode() {
	b.events = append(b.events, event{kind: evFinish})
}

// AttachNode appends an already-completed subtree as a child of the node
// currently open. The Pratt expression parser builds its precedence-
// climbed tree bottom-up as plain *Node values (wrapping an already-built
// child in a new binary/postfix parent is natural recursion there, unlike
// the mostly-flat statement grammar) and reattaches the result here, so
// the final tree is indistinguishable from one built purely through
// StartNode/FinishNode.
func (b *Builder) AttachNode(n *Node) {
	b.events = append(b.events, event{kind: evAttach, attached: n})
}

// SetKind changes the Kind of the node opened at m. Some grammar rules
// only learn which node they're building partway through: a declaration
// is Bound or Unbound depending on whether '=' follows the name, and
// that position is already well past the StartNode call that opened it.
func (b *Builder) SetKind(m Marker, kind Kind) {
	b.events[m].node = kind
}

// Abandon discards the node opened at m: m must be the innermost
// currently-open marker with no other marker opened after it still
// pending (i.e. called immediately, before any nested StartNode). Any
// tokens already consumed under the abandoned marker are re-parented to
// its enclosing node during Build.
func (b *Builder) Abandon(m Marker) {
	b.events[m] = event{kind: evAbandon}
}

// Build replays the event stream into a Node tree and returns the root.
// Build panics if the stream is unbalanced (more Finish than Start, or a
// dangling Start) — a parser bug, never a condition WDL source can
// trigger.
func (b *Builder) Build() *Node {
	type frame struct {
		kind     Kind
		children []Element
	}
	var stack []*frame
	for _, e := range b.events {
		switch e.kind {
		case evStart:
			stack = append(stack, &frame{kind: e.node})
		case evAbandon:
			// An abandoned marker opens no frame, so the events that
			// follow it land in the enclosing node.
		case evToken:
			if len(stack) == 0 {
				panic("cst: Token event with no open node")
			}
			top := stack[len(stack)-1]
			top.children = append(top.children, Token{e.tok})
		case evAttach:
			if len(stack) == 0 {
				panic("cst: AttachNode with no open node")
			}
			top := stack[len(stack)-1]
			top.children = append(top.children, e.attached)
		case evFinish:
			if len(stack) == 0 {
				panic("cst: FinishNode with no open node")
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			node := &Node{Kind: top.kind, Children: top.children}
			if len(stack) == 0 {
				return node
			}
			stack[len(stack)-1].children = append(stack[len(stack)-1].children, node)
		}
	}
	panic("cst: unbalanced event stream, no root produced")
}
