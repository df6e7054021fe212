// Package parser implements a recursive-descent, event-stream parser:
// statements and sections are built through cst.Builder's marker API
// (StartNode/Token/FinishNode/Abandon);
// expressions are built bottom-up as plain *cst.Node values (natural for
// precedence climbing and postfix chains) and reattached via
// cst.Builder.AttachNode.
package parser

import (
	"github.com/stjude-rust-labs/wdlcore/internal/config"
	"github.com/stjude-rust-labs/wdlcore/internal/cst"
	"github.com/stjude-rust-labs/wdlcore/internal/diagnostics"
	"github.com/stjude-rust-labs/wdlcore/internal/lexer"
	"github.com/stjude-rust-labs/wdlcore/internal/token"
)

// Parser holds the token cursor, the in-progress tree builder, the
// diagnostic sink, and a stack of recovery sets.
type Parser struct {
	toks     []token.Token
	pos      int
	b        *cst.Builder
	Diags    *diagnostics.Bag
	recovery [][]token.Kind
	Version  config.Version
	src      string // full document source; used only by command-body scanning
}

// New lexes src in full and returns a Parser ready to parse a document.
func New(src string, version config.Version) *Parser {
	p := newFromTokens(lexer.Tokenize(src), version)
	p.src = src
	return p
}

// newFromTokens builds a Parser directly from a pre-lexed token stream,
// used by the placeholder sub-parser so interpolated expressions can be
// parsed independently while keeping absolute, document-wide spans.
func newFromTokens(toks []token.Token, version config.Version) *Parser {
	return &Parser{
		toks:    toks,
		b:       &cst.Builder{},
		Diags:   &diagnostics.Bag{},
		Version: version,
	}
}

// --- low-level cursor -------------------------------------------------

func (p *Parser) significantIndex() int {
	i := p.pos
	for i < len(p.toks) && p.toks[i].IsTrivia() {
		i++
	}
	return i
}

// Peek returns the next significant (non-trivia) token's kind without
// consuming anything.
func (p *Parser) Peek() token.Kind {
	i := p.significantIndex()
	if i >= len(p.toks) {
		return token.EOF
	}
	return p.toks[i].Kind
}

// PeekTok returns the next significant token itself.
func (p *Parser) PeekTok() token.Token {
	i := p.significantIndex()
	if i >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[i]
}

// At reports whether the next significant token has kind k.
func (p *Parser) At(k token.Kind) bool { return p.Peek() == k }

// skipTriviaInto forwards any pending trivia tokens as children of the
// node currently open on the builder.
func (p *Parser) skipTriviaInto() {
	for p.pos < len(p.toks) && p.toks[p.pos].IsTrivia() {
		p.b.Token(p.toks[p.pos])
		p.pos++
	}
}

// Bump consumes (and attaches to the builder) the next significant token,
// along with any trivia preceding it.
func (p *Parser) Bump() token.Token {
	p.skipTriviaInto()
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	tok := p.toks[p.pos]
	p.b.Token(tok)
	p.pos++
	return tok
}

// Expect consumes the next token if it matches k; otherwise it emits an
// expected/found diagnostic and triggers recovery, leaving the stream
// positioned at the recovery boundary.
func (p *Parser) Expect(k token.Kind) (token.Token, bool) {
	if p.At(k) {
		return p.Bump(), true
	}
	found := p.PeekTok()
	p.Diags.Add(diagnostics.Newf("P001", found.Span, "expected %s, found %s", k, found.Kind))
	p.recover()
	return found, false
}

// PushRecovery installs a new recovery set on top of the stack.
func (p *Parser) PushRecovery(kinds ...token.Kind) {
	p.recovery = append(p.recovery, kinds)
}

// PopRecovery removes the most recently installed recovery set.
func (p *Parser) PopRecovery() {
	if len(p.recovery) > 0 {
		p.recovery = p.recovery[:len(p.recovery)-1]
	}
}

func (p *Parser) inRecoverySet(k token.Kind) bool {
	if len(p.recovery) == 0 {
		return k == token.EOF
	}
	top := p.recovery[len(p.recovery)-1]
	for _, want := range top {
		if want == k {
			return true
		}
	}
	return k == token.EOF
}

// recover skips tokens, wrapping them as an Error node, until a member of
// the current recovery set is seen.
func (p *Parser) recover() {
	if p.At(token.EOF) || p.inRecoverySet(p.Peek()) {
		return
	}
	p.b.StartNode(cst.Error)
	for !p.At(token.EOF) && !p.inRecoverySet(p.Peek()) {
		p.Bump()
	}
	p.b.FinishNode()
}

// bumpRaw consumes the next significant token without attaching it to
// the builder, for use by the expression parser, which builds its nodes
// bottom-up as plain *cst.Node values and only reattaches the finished
// subtree via AttachNode. Interior trivia between expression tokens is
// dropped rather than preserved: the analyzer only ever consumes typed
// values out of expression subtrees, never their raw text, so losslessness
// at that level buys nothing and isn't worth the bookkeeping (documented
// deviation from full losslessness).
func (p *Parser) bumpRaw() token.Token {
	i := p.significantIndex()
	if i >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	tok := p.toks[i]
	p.pos = i + 1
	return tok
}

// Build finalizes the tree built so far.
func (p *Parser) Build() *cst.Node { return p.b.Build() }
