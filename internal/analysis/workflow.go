package analysis

import (
	"strings"

	"github.com/stjude-rust-labs/wdlcore/internal/ast"
	"github.com/stjude-rust-labs/wdlcore/internal/config"
	"github.com/stjude-rust-labs/wdlcore/internal/cst"
	"github.com/stjude-rust-labs/wdlcore/internal/diagnostics"
	"github.com/stjude-rust-labs/wdlcore/internal/types"
)

// allowsNestedInputs implements the version-dependent policy governing
// whether an external input file may set a nested `call.input` value
// that wasn't specified in this workflow's call blocks.
func (a *analyzer) allowsNestedInputs(w ast.WorkflowDefinition) bool {
	switch {
	case a.version.AtLeast(config.V1_3):
		return false
	case a.version.AtLeast(config.V1_2):
		if sec, ok := w.Hints(); ok {
			entries := sec.Entries()
			if v, ok := entries["allow_nested_inputs"]; ok {
				if text, ok := v.AsBoolText(); ok {
					return text == "true"
				}
			}
			if v, ok := entries["allowNestedInputs"]; ok {
				if text, ok := v.AsBoolText(); ok {
					return text == "true"
				}
			}
		}
		return a.metaAllowsNestedInputs(w)
	case a.version.AtLeast(config.V1_1):
		return a.metaAllowsNestedInputs(w)
	default:
		return true
	}
}

func (a *analyzer) metaAllowsNestedInputs(w ast.WorkflowDefinition) bool {
	sec, ok := w.Meta()
	if !ok {
		return false
	}
	v, ok := sec.Entries()["allowNestedInputs"]
	if !ok {
		return false
	}
	text, ok := v.AsBoolText()
	return ok && text == "true"
}

// analyzeWorkflow builds the workflow's own scope (seeded with its
// inputs), walks its body statements, and types its output section.
func (a *analyzer) analyzeWorkflow(w ast.WorkflowDefinition) {
	prevNested := a.curWorkflowNested
	a.curWorkflowNested = a.allowsNestedInputs(w)
	defer func() { a.curWorkflowNested = prevNested }()

	sc := newScope(nil)
	if sec, ok := w.Input(); ok {
		for _, decl := range sec.Declarations() {
			a.analyzeDecl(decl, sc)
		}
	}
	a.analyzeStatements(w.Body(), sc)
	if sec, ok := w.Output(); ok {
		for _, decl := range sec.Declarations() {
			a.analyzeDecl(decl, sc)
		}
	}
	a.analyzeWorkflowMetaCoverage(w)
}

func (a *analyzer) analyzeStatements(stmts []ast.Statement, sc *scope) {
	for _, s := range stmts {
		switch s.Kind() {
		case cst.BoundDeclaration, cst.UnboundDeclaration:
			a.analyzeDecl(s.AsDeclaration(), sc)
		case cst.CallStatement:
			a.analyzeCall(s.AsCall(), sc)
		case cst.ScatterStatement:
			a.analyzeScatter(s.AsScatter(), sc)
		case cst.ConditionalStatement:
			a.analyzeConditional(s.AsConditional(), sc)
		}
	}
}

func (a *analyzer) analyzeScatter(s ast.ScatterStatement, parent *scope) {
	coll := s.Collection()
	collT := a.inferExpr(coll, parent)
	elem := types.Type(types.Union)
	if arr, ok := collT.(types.Array); ok {
		elem = arr.Element
	} else if !types.IsUnion(collT) {
		a.diags.Add(diagnostics.Newf("T120", coll.N.Span(), "`scatter` requires an Array, found type `%s`", collT.String()))
	}
	child := newScope(parent)
	child.bindLocal(s.Variable(), elem)
	a.analyzeStatements(s.Body(), child)
	child.promoteInto(parent, types.Scatter)
}

func (a *analyzer) analyzeConditional(c ast.ConditionalStatement, parent *scope) {
	cond := c.Condition()
	condT := a.inferExpr(cond, parent)
	a.requireCoercible(condT, boolT, cond.N.Span(), "T121", "if condition")
	child := newScope(parent)
	a.analyzeStatements(c.Body(), child)
	child.promoteInto(parent, types.Conditional)
}

// analyzeCall resolves a call statement's target task/workflow (locally
// or through an import namespace), checks each provided input against
// the target's declared inputs, flags required inputs left unspecified
// when nested input overrides aren't available, and binds the call's
// effective name to a fresh CallType.
func (a *analyzer) analyzeCall(c ast.CallStatement, sc *scope) {
	namespace := splitNamespace(c.Target(), c.CalleeName())
	kind, inputs, outputs, ok := a.resolveCallee(c, namespace)
	if !ok {
		sc.bind(c.EffectiveName(), types.Union)
		return
	}

	specified := map[string]struct{}{}
	for _, in := range c.Inputs() {
		name := in.Name()
		specified[name] = struct{}{}
		valExpr, explicit := in.Expr()
		var valType types.Type
		if explicit {
			valType = a.inferExpr(valExpr, sc)
		} else if t, ok := sc.lookup(name); ok {
			valType = t
		} else {
			a.diags.Add(diagnostics.Newf("T130", in.N.Span(), "undefined name `%s`", name))
			valType = types.Union
		}
		decl, ok := inputs.Get(name)
		if !ok {
			a.diags.Add(diagnostics.Newf("T131", in.N.Span(), "call input `%s` does not exist on `%s`", name, c.Target()))
			continue
		}
		a.requireCoercible(valType, decl.Type, in.N.Span(), "T132", "call input `"+name+"`")
	}

	if !a.curWorkflowNested {
		for _, key := range inputs.Keys() {
			decl, _ := inputs.Get(key)
			if !decl.Required {
				continue
			}
			if _, given := specified[key]; !given {
				a.diags.Add(diagnostics.Newf("T133", c.N.Span(), "call to `%s` is missing required input `%s`", c.Target(), key))
			}
		}
	}

	call := types.NewCallType(kind, namespace, c.CalleeName(), specified, inputs, outputs)
	sc.bind(c.EffectiveName(), call)
}

func (a *analyzer) resolveCallee(c ast.CallStatement, namespace string) (types.CallKind, *types.OrderedMap[types.CallInput], *types.OrderedMap[types.CallOutput], bool) {
	if namespace == "" {
		if task, ok := a.result.Symbols.Tasks[c.CalleeName()]; ok {
			return types.TaskCall, task.Inputs, task.Outputs, true
		}
		a.diags.Add(diagnostics.Newf("T134", c.N.Span(), "call to undefined task `%s`", c.CalleeName()))
		return 0, nil, nil, false
	}
	imp, ok := a.result.Symbols.Imports[namespace]
	if !ok || imp.Document == nil {
		a.diags.Add(diagnostics.Newf("T135", c.N.Span(), "unknown import namespace `%s`", namespace))
		return 0, nil, nil, false
	}
	if task, ok := imp.Document.Symbols.Tasks[c.CalleeName()]; ok {
		return types.TaskCall, task.Inputs, task.Outputs, true
	}
	if wf := imp.Document.Symbols.Workflow; wf != nil && wf.Name == c.CalleeName() {
		return types.WorkflowCall, wf.Inputs, wf.Outputs, true
	}
	a.diags.Add(diagnostics.Newf("T136", c.N.Span(), "namespace `%s` has no task or workflow named `%s`", namespace, c.CalleeName()))
	return 0, nil, nil, false
}

func splitNamespace(target, callee string) string {
	suffix := "." + callee
	if strings.HasSuffix(target, suffix) {
		return strings.TrimSuffix(target, suffix)
	}
	return ""
}

func (a *analyzer) analyzeWorkflowMetaCoverage(w ast.WorkflowDefinition) {
	if sec, ok := w.Meta(); ok {
		a.walkMetaValues(sec.Entries())
	}
	if sec, ok := w.ParameterMeta(); ok {
		a.walkMetaValues(sec.Entries())
	}
	if sec, ok := w.Hints(); ok {
		a.walkMetaValues(sec.Entries())
	}
}
