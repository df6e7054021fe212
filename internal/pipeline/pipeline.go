// Package pipeline threads a single document's source, version, and
// diagnostics through the lex -> parse -> analyze stages: each stage
// reads and amends a shared *Context rather than returning its own
// bespoke result type.
package pipeline

import (
	"github.com/stjude-rust-labs/wdlcore/internal/analysis"
	"github.com/stjude-rust-labs/wdlcore/internal/config"
	"github.com/stjude-rust-labs/wdlcore/internal/cst"
	"github.com/stjude-rust-labs/wdlcore/internal/diagnostics"
)

// Context is passed from stage to stage. Each Processor reads what it
// needs off ctx and writes its own results back onto it; diagnostics
// accumulate rather than being reset between stages, so both parse and
// analysis diagnostics are available after the full pipeline runs.
type Context struct {
	URI        string
	SourceCode string
	Version    config.Version
	Tree       *cst.Node
	Analysis   *analysis.Result
	Diags      *diagnostics.Bag
}

// NewContext starts a fresh pipeline context for one document.
func NewContext(uri, source string) *Context {
	return &Context{URI: uri, SourceCode: source, Diags: &diagnostics.Bag{}}
}

// Processor is one pipeline stage.
type Processor interface {
	Process(ctx *Context) *Context
}

// ProcessorFunc adapts a plain function to Processor.
type ProcessorFunc func(ctx *Context) *Context

func (f ProcessorFunc) Process(ctx *Context) *Context { return f(ctx) }

// Pipeline runs a fixed sequence of stages over one Context.
type Pipeline struct {
	stages []Processor
}

// New builds a Pipeline from an ordered stage list.
func New(stages ...Processor) *Pipeline {
	return &Pipeline{stages: stages}
}

// Run executes every stage in order, continuing even after a stage
// records diagnostics: a later stage (e.g. analysis) may still produce
// useful partial results, and its own diagnostics are additive.
func (p *Pipeline) Run(ctx *Context) *Context {
	for _, stage := range p.stages {
		ctx = stage.Process(ctx)
	}
	return ctx
}
