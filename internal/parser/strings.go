package parser

import (
	"strings"

	"github.com/stjude-rust-labs/wdlcore/internal/config"
	"github.com/stjude-rust-labs/wdlcore/internal/cst"
	"github.com/stjude-rust-labs/wdlcore/internal/diagnostics"
	"github.com/stjude-rust-labs/wdlcore/internal/lexer"
	"github.com/stjude-rust-labs/wdlcore/internal/span"
	"github.com/stjude-rust-labs/wdlcore/internal/token"
)

// parseInterpolatedString splits the raw StringText token (already
// scanned whole by the lexer, quotes included) into alternating literal
// runs and placeholders, recursing a fresh sub-parser into each
// `~{...}`/`${...}` placeholder body. Brace depth is tracked so
// a nested map/struct literal inside a placeholder doesn't prematurely
// close it.
func (p *Parser) parseInterpolatedString() *cst.Node {
	tok := p.bumpRaw()
	// `${` placeholders are only recognized in double-quoted (and heredoc)
	// contexts; inside single quotes the two bytes are literal text.
	allowDollar := len(tok.Text) > 0 && tok.Text[0] == '"'
	children := p.splitInterpolated(tok.Text, tok.Span.Start, allowDollar)
	return &cst.Node{Kind: cst.StringLiteralExpr, Children: children}
}

// splitInterpolated splits text (the literal source slice starting at byte
// offset base in the document) into alternating literal runs and
// placeholders, recursing a fresh sub-parser into each `~{...}`/`${...}`
// placeholder body. Brace depth is tracked so a nested map/struct literal
// inside a placeholder doesn't prematurely close it. Shared by quoted
// string literals and command sections, which interpolate the same way.
// allowDollar selects the context's placeholder vocabulary: `~{` opens a
// placeholder everywhere, `${` only in double-quoted strings, heredoc
// strings, and heredoc commands.
func (p *Parser) splitInterpolated(text string, base int, allowDollar bool) []cst.Element {
	var children []cst.Element
	runStart := 0
	i := 0
	for i < len(text) {
		if i+1 < len(text) && text[i+1] == '{' && (text[i] == '~' || (text[i] == '$' && allowDollar)) {
			if i > runStart {
				children = append(children, literalRun(text, runStart, i, base))
			}
			markerLen := 2 // "~{" or "${"
			depth := 1
			j := i + markerLen
			for j < len(text) && depth > 0 {
				switch text[j] {
				case '{':
					depth++
				case '}':
					depth--
				}
				j++
			}
			bodyStart, bodyEnd := i+markerLen, j-1
			children = append(children, p.parsePlaceholderBody(text[bodyStart:bodyEnd], base+bodyStart))
			runStart = j
			i = j
			continue
		}
		i++
	}
	if runStart < len(text) {
		children = append(children, literalRun(text, runStart, len(text), base))
	}
	return children
}

func literalRun(text string, start, end, base int) cst.Element {
	return cst.Token{token.Token{
		Kind: token.StringText,
		Span: span.New(base+start, base+end),
		Text: text[start:end],
	}}
}

// parseHeredocString parses `<<< ... >>>` used as a string literal,
// supported at WDL >= 1.2. Like command bodies, the content is raw text
// scanned straight out of p.src, with the heredoc placeholder vocabulary
// (both `~{` and `${`).
func (p *Parser) parseHeredocString() *cst.Node {
	open := p.bumpRaw()
	if p.Version.Less(config.V1_2) {
		p.Diags.Add(diagnostics.Newf("V020", open.Span, "heredoc strings require WDL version 1.2 (document is %s)", p.Version))
	}
	children := []cst.Element{cst.Token{open}}
	start := open.Span.End
	if p.src == "" || start > len(p.src) {
		// No raw source to scan (placeholder sub-parsers parse a detached
		// token slice); a heredoc cannot appear there.
		p.Diags.Add(diagnostics.New("P021", open.Span, "heredoc string is not allowed here"))
		return &cst.Node{Kind: cst.StringLiteralExpr, Children: children}
	}
	close := strings.Index(p.src[start:], ">>>")
	if close < 0 {
		p.Diags.Add(diagnostics.New("P022", open.Span, "unterminated heredoc string"))
		p.resyncTo(len(p.src))
		return &cst.Node{Kind: cst.StringLiteralExpr, Children: children}
	}
	bodyEnd := start + close
	children = append(children, p.splitInterpolated(p.src[start:bodyEnd], start, true)...)
	p.resyncTo(bodyEnd)
	if p.Peek() == token.HeredocClose {
		children = append(children, cst.Token{p.bumpRaw()})
	}
	return &cst.Node{Kind: cst.StringLiteralExpr, Children: children}
}

// placeholderOption is one of `sep = "s"`, `default = "s"`, `true = "t"`,
// `false = "f"`, which may precede a placeholder's expression in either
// order.
var placeholderOptionNames = map[string]bool{"sep": true, "default": true, "true": true, "false": true}

// parsePlaceholderBody parses `body` (the text strictly between the
// opening marker and the closing brace) as zero or more options followed
// by one expression, and wraps the result in a PlaceholderExpr node.
func (p *Parser) parsePlaceholderBody(body string, base int) *cst.Node {
	sub := newFromTokens(lexer.TokenizeAt(body, base), p.Version)

	var children []cst.Element
	for sub.Peek() == token.Ident || sub.Peek() == token.BooleanLiteral {
		name := sub.PeekTok()
		if !placeholderOptionNames[name.Text] {
			break
		}
		// Lookahead for `ident =`; anything else means this identifier is
		// actually the start of the expression itself (e.g. a variable
		// coincidentally named the same as an option keyword used without
		// `=` is not valid WDL, so `=` lookahead is an unambiguous test).
		save := sub.pos
		sub.bumpRaw()
		if sub.Peek() != token.Equal {
			sub.pos = save
			break
		}
		sub.bumpRaw()
		valueTok := sub.bumpRaw()
		children = append(children, cst.Token{name}, cst.Token{valueTok})
	}

	if sub.Peek() != token.EOF {
		expr := sub.parseBinary(1)
		children = append(children, expr)
	} else {
		sub.Diags.Add(diagnostics.New("P020", span.New(base, base), "empty placeholder"))
	}

	for _, d := range sub.Diags.All() {
		p.Diags.Add(d)
	}
	return &cst.Node{Kind: cst.PlaceholderExpr, Children: children}
}
