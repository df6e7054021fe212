package pipeline

import (
	"strconv"
	"strings"

	"github.com/stjude-rust-labs/wdlcore/internal/analysis"
	"github.com/stjude-rust-labs/wdlcore/internal/config"
	"github.com/stjude-rust-labs/wdlcore/internal/lexer"
	"github.com/stjude-rust-labs/wdlcore/internal/parser"
	"github.com/stjude-rust-labs/wdlcore/internal/token"
)

// DetectVersion is the pipeline's first stage: the grammar the parser
// uses depends on the document's declared version, so the version
// statement has to be found before a real Parser (which takes a
// config.Version up front) can be built. It scans the raw token stream
// for a leading `version` keyword rather than running the full parser,
// since the full parser isn't constructed yet.
var DetectVersion Processor = ProcessorFunc(func(ctx *Context) *Context {
	ctx.Version = config.V1_0
	toks := lexer.StripTrivia(lexer.Tokenize(ctx.SourceCode))
	for i, t := range toks {
		if t.Kind != token.KwVersion {
			continue
		}
		if i+1 < len(toks) {
			if v, ok := parseVersionText(toks[i+1].Text); ok {
				ctx.Version = v
			}
		}
		break
	}
	return ctx
})

func parseVersionText(text string) (config.Version, bool) {
	major, minor, found := text, "0", false
	if i := strings.IndexByte(text, '.'); i >= 0 {
		major, minor, found = text[:i], text[i+1:], true
	}
	m, err1 := strconv.Atoi(major)
	if err1 != nil {
		return config.Version{}, false
	}
	n := 0
	if found {
		var err2 error
		n, err2 = strconv.Atoi(minor)
		if err2 != nil {
			return config.Version{}, false
		}
	}
	return config.Version{Major: m, Minor: n}, true
}

// Parse runs the recursive-descent parser over the context's source,
// using the version DetectVersion already resolved, and folds the
// parser's diagnostics into the shared Bag.
var Parse Processor = ProcessorFunc(func(ctx *Context) *Context {
	p := parser.New(ctx.SourceCode, ctx.Version)
	ctx.Tree = p.ParseDocument()
	for _, d := range p.Diags.All() {
		ctx.Diags.Add(d)
	}
	return ctx
})

// Analyze runs the document analyzer over the parsed tree and attaches
// its Result to the context, folding its diagnostics into the shared
// Bag. importer resolves any `import` statements; pass
// analysis.NoImports{} for a single self-contained document.
func Analyze(importer analysis.Importer) Processor {
	return ProcessorFunc(func(ctx *Context) *Context {
		if ctx.Tree == nil {
			return ctx
		}
		res := analysis.Analyze(ctx.URI, ctx.Tree, ctx.Version, importer)
		ctx.Analysis = res
		for _, d := range res.Diags.All() {
			ctx.Diags.Add(d)
		}
		return ctx
	})
}

// Standard builds the default single-document pipeline: version
// detection, parse, analyze (with no import resolution).
func Standard() *Pipeline {
	return New(DetectVersion, Parse, Analyze(analysis.NoImports{}))
}
