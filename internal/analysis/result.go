// Package analysis implements the document analyzer (scope construction,
// name resolution, declaration/expression type inference, and diagnostic
// emission) that drives the type system, generic type system, and
// standard-library catalog packages over one document's AST views.
package analysis

import (
	"github.com/google/uuid"

	"github.com/stjude-rust-labs/wdlcore/internal/cst"
	"github.com/stjude-rust-labs/wdlcore/internal/diagnostics"
	"github.com/stjude-rust-labs/wdlcore/internal/types"
)

// TaskSymbol is the publicly-visible shape of one analyzed task: its
// declared inputs and outputs, enough for a call-statement in another
// document to bind against it.
type TaskSymbol struct {
	Name    string
	Inputs  *types.OrderedMap[types.CallInput]
	Outputs *types.OrderedMap[types.CallOutput]
}

// WorkflowSymbol is the publicly-visible shape of a document's (at most
// one) workflow.
type WorkflowSymbol struct {
	Name                string
	Inputs              *types.OrderedMap[types.CallInput]
	Outputs             *types.OrderedMap[types.CallOutput]
	AllowsNestedInputs  bool
}

// ImportSymbol binds an import's namespace alias to the analyzed
// document it resolved to.
type ImportSymbol struct {
	URI       string
	Namespace string
	Document  *Result
}

// SymbolTable is a document's public surface: its imports, locally
// defined structs, tasks, and (at most one) workflow.
type SymbolTable struct {
	Imports  map[string]*ImportSymbol
	Structs  map[string]types.Struct
	Tasks    map[string]*TaskSymbol
	Workflow *WorkflowSymbol
}

func newSymbolTable() *SymbolTable {
	return &SymbolTable{
		Imports: map[string]*ImportSymbol{},
		Structs: map[string]types.Struct{},
		Tasks:   map[string]*TaskSymbol{},
	}
}

// Result is the per-document analysis output: the CST it was
// computed over, a type index keyed by CST node, the diagnostics
// collected while analyzing it, and its public symbol table. ID lets a
// surrounding document-graph cache or correlate
// results across re-analysis without relying on document identity.
type Result struct {
	ID      uuid.UUID
	URI     string
	Tree    *cst.Node
	Types   map[*cst.Node]types.Type
	Diags   *diagnostics.Bag
	Symbols *SymbolTable
}

// TypeOf returns the type inferred for n, or Union if n was never
// visited (e.g. it sits inside a section the analyzer doesn't type,
// such as a meta block).
func (r *Result) TypeOf(n *cst.Node) types.Type {
	if t, ok := r.Types[n]; ok {
		return t
	}
	return types.Union
}

// Importer is the import-resolution oracle: it supplies already-analyzed
// documents keyed by the URI string an import statement names. Document
// graph construction and import resolution live outside this package.
type Importer interface {
	Resolve(uri string) (*Result, bool)
}

// NoImports is an Importer that never resolves anything, for analyzing a
// single self-contained document.
type NoImports struct{}

func (NoImports) Resolve(string) (*Result, bool) { return nil, false }
