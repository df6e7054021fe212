package analysis

import (
	"github.com/stjude-rust-labs/wdlcore/internal/ast"
	"github.com/stjude-rust-labs/wdlcore/internal/config"
	"github.com/stjude-rust-labs/wdlcore/internal/types"
)

// analyzeTask builds a task's own scope (seeded with its inputs and
// private declarations), then types its command placeholders, runtime
// entries, and output section against it. The `task` singleton is only
// visible to the command and output sections, and only from WDL 1.2
// onward.
func (a *analyzer) analyzeTask(t ast.TaskDefinition) {
	sc := newScope(nil)
	if sec, ok := t.Input(); ok {
		for _, decl := range sec.Declarations() {
			a.analyzeDecl(decl, sc)
		}
	}
	for _, decl := range t.Declarations() {
		a.analyzeDecl(decl, sc)
	}

	bodyScope := sc
	if a.version.AtLeast(config.V1_2) {
		bodyScope = newScope(sc)
		bodyScope.bindLocal("task", types.Task)
	}

	if cmd, ok := t.Command(); ok {
		for _, ph := range cmd.Placeholders() {
			a.analyzePlaceholder(ph, bodyScope)
		}
	}

	if sec, ok := t.Output(); ok {
		for _, decl := range sec.Declarations() {
			a.analyzeDecl(decl, bodyScope)
		}
	}

	a.analyzeRuntime(t, sc)
	a.analyzeMetaCoverage(t)
}

// analyzeDecl types decl's initializer (if bound) against its declared
// type and binds the name into sc regardless of whether the initializer
// matched — a failed coercion still leaves the name resolvable for the
// rest of the scope.
func (a *analyzer) analyzeDecl(decl ast.Declaration, sc *scope) {
	declared := a.resolveType(decl.Type())
	if decl.Bound() {
		exprType := a.inferExpr(decl.Expr(), sc)
		a.requireCoercible(exprType, declared, decl.N.Span(), "T110", "declaration `"+decl.Name()+"`")
	}
	sc.bind(decl.Name(), declared)
}

func (a *analyzer) analyzeRuntime(t ast.TaskDefinition, sc *scope) {
	sec, ok := t.Runtime()
	if !ok {
		return
	}
	for _, expr := range sec.Entries() {
		a.inferExpr(expr, sc)
	}
}

// analyzeMetaCoverage walks meta/parameter_meta/hints values, descending
// into nested objects. It types nothing and records nothing in the type
// index: these sections place no static constraints on the values they
// hold.
func (a *analyzer) analyzeMetaCoverage(t ast.TaskDefinition) {
	if sec, ok := t.Meta(); ok {
		a.walkMetaValues(sec.Entries())
	}
	if sec, ok := t.ParameterMeta(); ok {
		a.walkMetaValues(sec.Entries())
	}
	if sec, ok := t.Hints(); ok {
		a.walkMetaValues(sec.Entries())
	}
}

func (a *analyzer) walkMetaValues(entries map[string]ast.MetaValue) {
	for _, v := range entries {
		if obj := v.AsObject(); obj != nil {
			a.walkMetaValues(obj)
		}
	}
}
