// Package lexer turns WDL source text into a flat token stream. Per the
// core's scope, byte-level tokenization rules are not a hard
// specification surface — this lexer is a straightforward, line-oblivious
// scanner producing byte Spans, good enough to drive the parser and its
// tests; it does not need to be bug-for-bug compatible with any other
// implementation.
package lexer

import (
	"unicode/utf8"

	"github.com/stjude-rust-labs/wdlcore/internal/span"
	"github.com/stjude-rust-labs/wdlcore/internal/token"
)

// Lexer scans one document's source text into tokens on demand.
type Lexer struct {
	input string
	pos   int // current byte offset
}

// New returns a Lexer positioned at the start of input.
func New(input string) *Lexer {
	return &Lexer{input: input}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekAt(offset int) byte {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

// NextToken returns the next token, including trivia (Whitespace/Comment)
// so the CST stays lossless; the parser is responsible for skipping it.
func (l *Lexer) NextToken() token.Token {
	start := l.pos
	if l.pos >= len(l.input) {
		return token.Token{Kind: token.EOF, Span: span.New(start, start)}
	}

	ch := l.peek()
	switch {
	case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
		return l.lexWhitespace(start)
	case ch == '#':
		return l.lexComment(start)
	case isIdentStart(ch):
		return l.lexIdentOrKeyword(start)
	case isDigit(ch):
		return l.lexNumber(start)
	case ch == '"' || ch == '\'':
		return l.lexSimpleString(start, ch)
	}

	// Multi-byte punctuation, longest match first.
	three := l.input[l.pos:min(l.pos+3, len(l.input))]
	switch three {
	case "<<<":
		l.pos += 3
		return token.Token{Kind: token.HeredocOpen, Span: span.New(start, l.pos), Text: "<<<"}
	case ">>>":
		l.pos += 3
		return token.Token{Kind: token.HeredocClose, Span: span.New(start, l.pos), Text: ">>>"}
	}

	two := l.input[l.pos:min(l.pos+2, len(l.input))]
	switch two {
	case "==":
		l.pos += 2
		return token.Token{Kind: token.EqualEqual, Span: span.New(start, l.pos), Text: "=="}
	case "!=":
		l.pos += 2
		return token.Token{Kind: token.BangEqual, Span: span.New(start, l.pos), Text: "!="}
	case "<=":
		l.pos += 2
		return token.Token{Kind: token.LessEqual, Span: span.New(start, l.pos), Text: "<="}
	case ">=":
		l.pos += 2
		return token.Token{Kind: token.GreaterEqual, Span: span.New(start, l.pos), Text: ">="}
	case "&&":
		l.pos += 2
		return token.Token{Kind: token.AmpAmp, Span: span.New(start, l.pos), Text: "&&"}
	case "||":
		l.pos += 2
		return token.Token{Kind: token.PipePipe, Span: span.New(start, l.pos), Text: "||"}
	case "**":
		l.pos += 2
		return token.Token{Kind: token.StarStar, Span: span.New(start, l.pos), Text: "**"}
	}

	kind, ok := singleCharKinds[ch]
	l.pos++
	if !ok {
		return token.Token{Kind: token.Error, Span: span.New(start, l.pos), Text: string(ch)}
	}
	return token.Token{Kind: kind, Span: span.New(start, l.pos), Text: string(ch)}
}

var singleCharKinds = map[byte]token.Kind{
	'(': token.LParen, ')': token.RParen,
	'{': token.LBrace, '}': token.RBrace,
	'[': token.LBracket, ']': token.RBracket,
	',': token.Comma, ':': token.Colon, '.': token.Dot, '?': token.Question,
	'+': token.Plus, '-': token.Minus, '*': token.Star, '/': token.Slash, '%': token.Percent,
	'=': token.Equal, '!': token.Bang,
	'<': token.Less, '>': token.Greater,
}

func (l *Lexer) lexWhitespace(start int) token.Token {
	for l.pos < len(l.input) {
		switch l.peek() {
		case ' ', '\t', '\r', '\n':
			l.pos++
		default:
			return token.Token{Kind: token.Whitespace, Span: span.New(start, l.pos), Text: l.input[start:l.pos]}
		}
	}
	return token.Token{Kind: token.Whitespace, Span: span.New(start, l.pos), Text: l.input[start:l.pos]}
}

func (l *Lexer) lexComment(start int) token.Token {
	for l.pos < len(l.input) && l.peek() != '\n' {
		l.pos++
	}
	return token.Token{Kind: token.Comment, Span: span.New(start, l.pos), Text: l.input[start:l.pos]}
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch >= utf8.RuneSelf
}

func isIdentCont(ch byte) bool { return isIdentStart(ch) || isDigit(ch) }

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func (l *Lexer) lexIdentOrKeyword(start int) token.Token {
	for l.pos < len(l.input) && isIdentCont(l.peek()) {
		l.pos++
	}
	text := l.input[start:l.pos]
	if kind, ok := token.Keywords[text]; ok {
		return token.Token{Kind: kind, Span: span.New(start, l.pos), Text: text}
	}
	return token.Token{Kind: token.Ident, Span: span.New(start, l.pos), Text: text}
}

func (l *Lexer) lexNumber(start int) token.Token {
	for l.pos < len(l.input) && isDigit(l.peek()) {
		l.pos++
	}
	isFloat := false
	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		isFloat = true
		l.pos++
		for l.pos < len(l.input) && isDigit(l.peek()) {
			l.pos++
		}
	}
	if l.peek() == 'e' || l.peek() == 'E' {
		isFloat = true
		l.pos++
		if l.peek() == '+' || l.peek() == '-' {
			l.pos++
		}
		for l.pos < len(l.input) && isDigit(l.peek()) {
			l.pos++
		}
	}
	kind := token.IntLiteral
	if isFloat {
		kind = token.FloatLiteral
	}
	return token.Token{Kind: kind, Span: span.New(start, l.pos), Text: l.input[start:l.pos]}
}

// lexSimpleString scans a `'...'`/`"..."` literal as a single StringText
// token, with escape sequences left unprocessed (the parser's
// interpolation sub-lexer re-scans the text for `~{`/`${` placeholders;
// see internal/parser's string-interpolation handling). This lexer does
// not itself split out placeholders — that is the parser's job, since it
// must balance nested braces against expression syntax.
func (l *Lexer) lexSimpleString(start int, quote byte) token.Token {
	l.pos++ // opening quote
	for l.pos < len(l.input) {
		ch := l.peek()
		if ch == '\\' && l.pos+1 < len(l.input) {
			l.pos += 2
			continue
		}
		if ch == quote {
			l.pos++
			break
		}
		l.pos++
	}
	return token.Token{Kind: token.StringText, Span: span.New(start, l.pos), Text: l.input[start:l.pos]}
}

// Tokenize runs the lexer to completion, trivia included, and returns
// the resulting token slice terminated by an EOF token. Used by the
// parser's entry points and by tests that don't need incremental lexing.
func Tokenize(src string) []token.Token {
	l := New(src)
	var toks []token.Token
	for {
		t := l.NextToken()
		if t.Kind == token.EOF {
			toks = append(toks, t)
			break
		}
		toks = append(toks, t)
	}
	return toks
}

// TokenizeAt tokenizes src as if it began at byte offset base in some
// larger document, so the resulting spans are already absolute. Used by
// the parser's placeholder sub-lexer, which re-lexes the text
// inside a `~{...}`/`${...}` interpolation as an independent token
// stream but needs its spans to land on the right bytes of the original
// source.
func TokenizeAt(src string, base int) []token.Token {
	toks := Tokenize(src)
	for i := range toks {
		toks[i].Span = span.New(toks[i].Span.Start+base, toks[i].Span.End+base)
	}
	return toks
}

// StripTrivia filters whitespace/comment tokens out of a token slice.
func StripTrivia(toks []token.Token) []token.Token {
	out := make([]token.Token, 0, len(toks))
	for _, t := range toks {
		if !t.IsTrivia() {
			out = append(out, t)
		}
	}
	return out
}

