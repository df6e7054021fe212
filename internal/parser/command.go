package parser

import (
	"strings"

	"github.com/stjude-rust-labs/wdlcore/internal/cst"
	"github.com/stjude-rust-labs/wdlcore/internal/diagnostics"
	"github.com/stjude-rust-labs/wdlcore/internal/token"
)

// parseCommandSection parses both command forms:
//
//	command { ... }
//	command <<< ... >>>
//
// In both forms the body is raw shell text, not WDL, so it cannot be
// handed to the ordinary token cursor: the lexer already tokenized it
// (generically, with no idea it was inside a command), and those tokens
// are useless except for their byte spans. This parser instead scans
// p.src directly from the byte right after the opening delimiter, splits
// the raw slice into literal/placeholder runs with the same logic used
// for interpolated strings, and then fast-forwards the ordinary token
// cursor past everything it just consumed by hand before resuming normal
// builder-based parsing for the closing delimiter.
func (p *Parser) parseCommandSection() {
	p.b.StartNode(cst.CommandSection)
	p.Bump() // 'command'

	switch p.Peek() {
	case token.HeredocOpen:
		open := p.Bump()
		start := open.Span.End
		close := strings.Index(p.src[start:], ">>>")
		if close < 0 {
			p.Diags.Add(diagnostics.New("P030", open.Span, "unterminated heredoc command"))
			p.resyncTo(len(p.src))
			p.b.FinishNode()
			return
		}
		bodyEnd := start + close
		for _, el := range p.splitInterpolated(p.src[start:bodyEnd], start, true) {
			p.attachRaw(el)
		}
		p.resyncTo(bodyEnd)
		p.Expect(token.HeredocClose)
	case token.LBrace:
		open := p.Bump()
		start := open.Span.End
		bodyEnd, ok := scanBraceBody(p.src, start)
		if !ok {
			p.Diags.Add(diagnostics.New("P032", open.Span, "unterminated command"))
			p.resyncTo(len(p.src))
			p.b.FinishNode()
			return
		}
		// Brace commands recognize `~{` only; a literal `${` passes through
		// to the shell.
		for _, el := range p.splitInterpolated(p.src[start:bodyEnd], start, false) {
			p.attachRaw(el)
		}
		p.resyncTo(bodyEnd)
		p.Expect(token.RBrace)
	default:
		tok := p.PeekTok()
		p.Diags.Add(diagnostics.Newf("P034", tok.Span, "expected '{' or '<<<', found %s", tok.Kind))
	}
	p.b.FinishNode()
}

// scanBraceBody finds the byte offset of the `}` that closes a
// brace-delimited command whose body starts at start, treating every `{`
// (whether a placeholder open or a literal brace in the shell text) as
// increasing nesting depth and every `}` as decreasing it. This mirrors
// why WDL offers the heredoc form at all: a brace command cannot contain
// an unbalanced literal brace.
func scanBraceBody(src string, start int) (int, bool) {
	depth := 1
	for i := start; i < len(src); i++ {
		switch src[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// attachRaw appends an already-built literal-run token or placeholder
// node directly to the node currently open on the builder, bypassing the
// ordinary token cursor entirely.
func (p *Parser) attachRaw(el cst.Element) {
	switch v := el.(type) {
	case cst.Token:
		p.b.Token(v.Token)
	case *cst.Node:
		p.b.AttachNode(v)
	}
}

// resyncTo discards (without attaching) every pre-lexed token whose span
// starts before bytePos, landing the cursor on the first token that
// starts at or after it. Used after scanning a raw region by hand so the
// ordinary token cursor picks back up right where that scan left off.
func (p *Parser) resyncTo(bytePos int) {
	for p.pos < len(p.toks) && p.toks[p.pos].Span.Start < bytePos {
		p.pos++
	}
}
