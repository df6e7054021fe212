package analysis

import (
	"github.com/google/uuid"

	"github.com/stjude-rust-labs/wdlcore/internal/ast"
	"github.com/stjude-rust-labs/wdlcore/internal/config"
	"github.com/stjude-rust-labs/wdlcore/internal/cst"
	"github.com/stjude-rust-labs/wdlcore/internal/diagnostics"
	"github.com/stjude-rust-labs/wdlcore/internal/types"
)

// analyzer holds everything one document's analysis pass threads
// through: the resolved WDL version, the import oracle, the document's
// struct table (seeded from imports, overridden by local definitions),
// and the result being built up.
type analyzer struct {
	version config.Version
	imports Importer
	structs map[string]types.Struct
	diags   *diagnostics.Bag
	result  *Result
	// curWorkflowNested tracks the enclosing workflow's nested-inputs
	// policy while walking its call statements, so a missing
	// required call input is only flagged when an external input file
	// has no other way to supply it.
	curWorkflowNested bool
}

// Analyze runs the document analyzer over tree, returning the
// per-document AnalysisResult. version is the document's parsed
// version directive; importer supplies already-analyzed documents for
// any `import` statements.
func Analyze(uri string, tree *cst.Node, version config.Version, importer Importer) *Result {
	if importer == nil {
		importer = NoImports{}
	}
	diags := &diagnostics.Bag{}
	res := &Result{
		ID:      uuid.New(),
		URI:     uri,
		Tree:    tree,
		Types:   map[*cst.Node]types.Type{},
		Diags:   diags,
		Symbols: newSymbolTable(),
	}
	a := &analyzer{
		version: version,
		imports: importer,
		structs: map[string]types.Struct{},
		diags:   diags,
		result:  res,
	}
	a.analyzeDocument(ast.NewDocument(tree))
	return res
}

func (a *analyzer) setType(n *cst.Node, t types.Type) types.Type {
	if n != nil {
		a.result.Types[n] = t
	}
	return t
}

func (a *analyzer) lookupStruct(name string) (types.Struct, bool) {
	st, ok := a.structs[name]
	return st, ok
}

// analyzeDocument runs two passes: first collect
// every struct/task/workflow *signature* (so forward references and
// mutually-referencing structs resolve), then analyze every body.
func (a *analyzer) analyzeDocument(doc ast.Document) {
	a.resolveImports(doc)
	a.collectStructs(doc)

	for _, task := range doc.Tasks() {
		a.result.Symbols.Tasks[task.Name()] = a.taskSignature(task)
	}
	if wf, ok := doc.Workflow(); ok {
		a.result.Symbols.Workflow = a.workflowSignature(wf)
	}

	for _, task := range doc.Tasks() {
		a.analyzeTask(task)
	}
	if wf, ok := doc.Workflow(); ok {
		a.analyzeWorkflow(wf)
	}
}

// resolveImports consults the Importer oracle for each import statement,
// seeding both the symbol table's Imports map and the document-wide
// struct table with the imported document's (possibly aliased) structs.
func (a *analyzer) resolveImports(doc ast.Document) {
	for _, imp := range doc.Imports() {
		uriExpr, ok := imp.URI()
		if !ok {
			continue
		}
		uri := literalStringText(uriExpr)
		resolved, found := a.imports.Resolve(uri)
		if !found {
			a.diags.Add(diagnostics.Newf("S001", imp.N.Span(), "could not resolve import `%s`", uri))
			continue
		}
		namespace, hasAlias := imp.Alias()
		if !hasAlias {
			namespace = defaultNamespace(uri)
		}
		a.result.Symbols.Imports[namespace] = &ImportSymbol{URI: uri, Namespace: namespace, Document: resolved}

		renames := map[string]string{}
		for _, pair := range imp.StructAliases() {
			renames[pair[0]] = pair[1]
		}
		for name, st := range resolved.Symbols.Structs {
			exposedName := name
			if renamed, ok := renames[name]; ok {
				exposedName = renamed
			}
			if _, taken := a.structs[exposedName]; !taken {
				a.structs[exposedName] = st
			}
		}
	}
}

// literalStringText extracts the bare text of a non-interpolated string
// literal (import URIs never contain placeholders).
func literalStringText(e ast.Expr) string {
	var out string
	for _, part := range e.StringParts() {
		if tok, ok := part.(cst.Token); ok {
			out += tok.Text
		}
	}
	return out
}

func defaultNamespace(uri string) string {
	start := 0
	for i := len(uri) - 1; i >= 0; i-- {
		if uri[i] == '/' {
			start = i + 1
			break
		}
	}
	name := uri[start:]
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[:i]
		}
	}
	return name
}

// collectStructs builds each local struct's StructDef upfront (so
// mutually-referencing struct members resolve regardless of declaration
// order), then fills in member types in a second sub-pass.
func (a *analyzer) collectStructs(doc ast.Document) {
	defs := make([]*types.StructDef, len(doc.Structs()))
	for i, sd := range doc.Structs() {
		def := &types.StructDef{Name: sd.Name(), Members: types.NewOrderedMap[types.Type]()}
		defs[i] = def
		a.structs[sd.Name()] = types.Struct{Def: def}
		a.result.Symbols.Structs[sd.Name()] = types.Struct{Def: def}
	}
	for i, sd := range doc.Structs() {
		for _, member := range sd.Members() {
			defs[i].Members.Set(member.Name(), a.resolveType(member.Type()))
		}
	}
}

func (a *analyzer) taskSignature(t ast.TaskDefinition) *TaskSymbol {
	inputs := types.NewOrderedMap[types.CallInput]()
	if sec, ok := t.Input(); ok {
		for _, decl := range sec.Declarations() {
			ty := a.resolveType(decl.Type())
			inputs.Set(decl.Name(), types.CallInput{Type: ty, Required: !decl.Bound() && !ty.IsOptional()})
		}
	}
	outputs := types.NewOrderedMap[types.CallOutput]()
	if sec, ok := t.Output(); ok {
		for _, decl := range sec.Declarations() {
			outputs.Set(decl.Name(), types.CallOutput{Type: a.resolveType(decl.Type())})
		}
	}
	return &TaskSymbol{Name: t.Name(), Inputs: inputs, Outputs: outputs}
}

func (a *analyzer) workflowSignature(w ast.WorkflowDefinition) *WorkflowSymbol {
	inputs := types.NewOrderedMap[types.CallInput]()
	if sec, ok := w.Input(); ok {
		for _, decl := range sec.Declarations() {
			ty := a.resolveType(decl.Type())
			inputs.Set(decl.Name(), types.CallInput{Type: ty, Required: !decl.Bound() && !ty.IsOptional()})
		}
	}
	outputs := types.NewOrderedMap[types.CallOutput]()
	if sec, ok := w.Output(); ok {
		for _, decl := range sec.Declarations() {
			outputs.Set(decl.Name(), types.CallOutput{Type: a.resolveType(decl.Type())})
		}
	}
	return &WorkflowSymbol{
		Name:               w.Name(),
		Inputs:             inputs,
		Outputs:            outputs,
		AllowsNestedInputs: a.allowsNestedInputs(w),
	}
}
