// Package diagnostics is the single currency returned by the lexer,
// parser, and analyzer: every reportable condition becomes exactly one
// Diagnostic, never a Go error returned up the call stack and never
// a panic over recoverable input.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/stjude-rust-labs/wdlcore/internal/span"
)

// Severity classifies a Diagnostic.
type Severity int

const (
	Error Severity = iota
	Warning
	Note
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	default:
		return "unknown"
	}
}

// Label attaches a message to a specific span within a Diagnostic, e.g.
// "expected" vs. "found" in an expected/found mismatch.
type Label struct {
	Span    span.Span
	Message string
}

// Diagnostic carries a severity, a primary message, one or more labeled
// spans, and a stable subsystem-prefixed code. Codes are grouped by
// subsystem: L (lexer), P (parser), T (type), V (version), S
// (structural/call).
type Diagnostic struct {
	Code     string
	Severity Severity
	Message  string
	Labels   []Label
}

// New builds an Error-severity diagnostic anchored at a single span.
func New(code string, primary span.Span, message string) *Diagnostic {
	return &Diagnostic{
		Code:     code,
		Severity: Error,
		Message:  message,
		Labels:   []Label{{Span: primary, Message: ""}},
	}
}

// Newf is New with a formatted message.
func Newf(code string, primary span.Span, format string, args ...any) *Diagnostic {
	return New(code, primary, fmt.Sprintf(format, args...))
}

// WithLabel appends an additional labeled span (e.g. the "expected" span
// in an expected/found diagnostic) and returns the receiver for chaining.
func (d *Diagnostic) WithLabel(sp span.Span, message string) *Diagnostic {
	d.Labels = append(d.Labels, Label{Span: sp, Message: message})
	return d
}

// WithSeverity overrides the default Error severity.
func (d *Diagnostic) WithSeverity(sev Severity) *Diagnostic {
	d.Severity = sev
	return d
}

// PrimarySpan returns the span of the first label, or the zero Span if
// the diagnostic has none (which never happens for diagnostics built via
// New/Newf).
func (d *Diagnostic) PrimarySpan() span.Span {
	if len(d.Labels) == 0 {
		return span.Span{}
	}
	return d.Labels[0].Span
}

func (d *Diagnostic) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s[%s]: %s", d.Severity, d.Code, d.Message)
	for _, l := range d.Labels {
		fmt.Fprintf(&b, "\n  at %s", l.Span)
		if l.Message != "" {
			fmt.Fprintf(&b, ": %s", l.Message)
		}
	}
	return b.String()
}

// Bag collects diagnostics in emission order. It is the shared sink
// threaded through the parser and analyzer, which append to it rather
// than returning errors individually from every parse/check function.
type Bag struct {
	diags []*Diagnostic
}

func (b *Bag) Add(d *Diagnostic) {
	if d != nil {
		b.diags = append(b.diags, d)
	}
}

func (b *Bag) All() []*Diagnostic { return b.diags }

func (b *Bag) HasErrors() bool {
	for _, d := range b.diags {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int { return len(b.diags) }
