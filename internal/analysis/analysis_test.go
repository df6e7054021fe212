package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stjude-rust-labs/wdlcore/internal/ast"
	"github.com/stjude-rust-labs/wdlcore/internal/config"
	"github.com/stjude-rust-labs/wdlcore/internal/parser"
)

// analyzeSrc parses src at the given version and runs the document
// analyzer over it, returning both the result and the parsed document
// view (so a test can navigate to a specific declaration's expression
// node and look up its inferred type).
func analyzeSrc(t *testing.T, version config.Version, src string) (*Result, ast.Document) {
	t.Helper()
	p := parser.New(src, version)
	tree := p.ParseDocument()
	require.Empty(t, p.Diags.All(), "unexpected parse diagnostics")
	res := Analyze("test://doc.wdl", tree, version, NoImports{})
	return res, ast.NewDocument(tree)
}

func outputExpr(t *testing.T, w ast.WorkflowDefinition, name string) ast.Expr {
	t.Helper()
	sec, ok := w.Output()
	require.True(t, ok, "workflow has no output section")
	for _, decl := range sec.Declarations() {
		if decl.Name() == name {
			return decl.Expr()
		}
	}
	t.Fatalf("no output declaration named %q", name)
	return ast.Expr{}
}

// A declaration made inside a scatter is promoted to Array[T] on
// scope exit, so a reference to it from the enclosing output section
// sees the array type and the declared Array[String] output coerces
// cleanly.
func TestAnalyzeScatterPromotion(t *testing.T) {
	res, doc := analyzeSrc(t, config.V1_2, `version 1.2

workflow w {
  input {
    Array[String] xs
  }
  scatter (x in xs) {
    String y = x
  }
  output {
    Array[String] ys = y
  }
}
`)
	assert.Empty(t, res.Diags.All())
	wf, ok := doc.Workflow()
	require.True(t, ok)
	expr := outputExpr(t, wf, "ys")
	assert.Equal(t, "Array[String]", res.TypeOf(expr.N).String())
}

// A declaration made inside a conditional is promoted to T? on
// scope exit.
func TestAnalyzeConditionalPromotion(t *testing.T) {
	res, doc := analyzeSrc(t, config.V1_2, `version 1.2

workflow w {
  input {
    Boolean c
  }
  if (c) {
    String y = "hi"
  }
  output {
    String? ys = y
  }
}
`)
	assert.Empty(t, res.Diags.All())
	wf, ok := doc.Workflow()
	require.True(t, ok)
	expr := outputExpr(t, wf, "ys")
	assert.Equal(t, "String?", res.TypeOf(expr.N).String())
}

// A WDL 1.1 workflow without `allowNestedInputs` metadata rejects a
// call that leaves another required input unspecified.
func TestAnalyzeNestedInputsRejectedWithoutMeta(t *testing.T) {
	res, _ := analyzeSrc(t, config.V1_1, `version 1.1

task t {
  input {
    String a
    String b
  }
  command {
    echo ~{a} ~{b}
  }
}

workflow w {
  call t { input: a = "x" }
}
`)
	var codes []string
	for _, d := range res.Diags.All() {
		codes = append(codes, d.Code)
	}
	assert.Contains(t, codes, "T133")
}

// The same workflow with `meta { allowNestedInputs: true }` accepts
// the call despite the missing required input.
func TestAnalyzeNestedInputsAcceptedWithMeta(t *testing.T) {
	res, _ := analyzeSrc(t, config.V1_1, `version 1.1

task t {
  input {
    String a
    String b
  }
  command {
    echo ~{a} ~{b}
  }
}

workflow w {
  meta {
    allowNestedInputs: true
  }
  call t { input: a = "x" }
}
`)
	for _, d := range res.Diags.All() {
		assert.NotEqual(t, "T133", d.Code)
	}
}

// At WDL 1.2 the hints section (snake_case or camelCase
// key) governs nested inputs instead of meta, falling back to the 1.1
// meta rule when hints says nothing.
func TestAnalyzeNestedInputsHintsAtV1_2(t *testing.T) {
	res, _ := analyzeSrc(t, config.V1_2, `version 1.2

task t {
  input {
    String a
    String b
  }
  command <<< echo ~{a} ~{b} >>>
}

workflow w {
  hints {
    allow_nested_inputs: true
  }
  call t { input: a = "x" }
}
`)
	for _, d := range res.Diags.All() {
		assert.NotEqual(t, "T133", d.Code)
	}
}

// A declaration whose initializer fails to resolve (an
// undefined name) still binds at its declared type rather than
// cascading a second diagnostic to every later reference.
func TestAnalyzeDiagnosticsSubstituteUnionOnFailure(t *testing.T) {
	res, doc := analyzeSrc(t, config.V1_2, `version 1.2

workflow w {
  String bad = undefined_name
  output {
    String echoed = bad
  }
}
`)
	var codes []string
	for _, d := range res.Diags.All() {
		codes = append(codes, d.Code)
	}
	assert.Contains(t, codes, "T010")
	// Exactly one diagnostic: the later reference to `bad` does not
	// cascade a second error, since `bad` is bound at its declared type
	// (String) once the initializer's failure is substituted with Union.
	assert.Len(t, res.Diags.All(), 1)

	wf, ok := doc.Workflow()
	require.True(t, ok)
	expr := outputExpr(t, wf, "echoed")
	assert.Equal(t, "String", res.TypeOf(expr.N).String())
}

// A call expression to an unresolvable stdlib function produces a single
// diagnostic and an indeterminate (Union) type, matching the
// failure-substitution policy for expressions more generally.
func TestAnalyzeUnknownFunctionSubstitutesUnion(t *testing.T) {
	res, doc := analyzeSrc(t, config.V1_2, `version 1.2

workflow w {
  output {
    Int n = not_a_real_function(1)
  }
}
`)
	var codes []string
	for _, d := range res.Diags.All() {
		codes = append(codes, d.Code)
	}
	assert.Contains(t, codes, "T070")

	wf, ok := doc.Workflow()
	require.True(t, ok)
	expr := outputExpr(t, wf, "n")
	// The call itself types as Union; the outer declaration's target type
	// (Int) still binds `n` for anything downstream, since Union coerces
	// to anything.
	assert.True(t, res.TypeOf(expr.N).IsCoercibleTo(intT))
}
