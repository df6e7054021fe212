package gentype

import "github.com/stjude-rust-labs/wdlcore/internal/types"

// Infer attempts to bind the type parameters referenced by g against the
// concrete argument type a. Only non-optional compound arguments
// participate in recursion: an optional outer wrapper blocks inference
// beneath it.
func Infer(env *Environment, g GFType, a types.Type) {
	switch gt := g.(type) {
	case Concrete:
		// No parameters to infer from a concrete position.
		return
	case Generic:
		inferGeneric(env, gt.Type, a)
	}
}

func inferGeneric(env *Environment, g GType, a types.Type) {
	switch gv := g.(type) {
	case Parameter:
		tryInfer(env, gv.Name, a)
	case UnqualifiedParameter:
		tryInfer(env, gv.Name, a)
	case GArray:
		av, ok := a.(types.Array)
		if !ok || av.Opt {
			return
		}
		Infer(env, gv.Element, av.Element)
	case GPair:
		av, ok := a.(types.Pair)
		if !ok || av.Opt {
			return
		}
		Infer(env, gv.First, av.Left)
		Infer(env, gv.Second, av.Right)
	case GMap:
		av, ok := a.(types.Map)
		if !ok || av.Opt {
			return
		}
		Infer(env, gv.Key, av.Key)
		Infer(env, gv.Value, av.Value)
	}
}

func tryInfer(env *Environment, name string, a types.Type) {
	param, _, ok := env.Get(name)
	if !ok {
		return
	}
	if param.Constraint != nil && !param.Constraint.Satisfies(a) {
		return
	}
	env.SetInferred(name, a)
}

// Realize converts a generic shape plus the current environment into a
// concrete types.Type. ok is false if an uninferred parameter
// was needed (the containing realization fails and the caller should
// treat this as a bind failure, not substitute Union silently — that
// substitution happens one level up, at the analyzer's diagnostic
// boundary, not here).
func Realize(env *Environment, g GFType) (types.Type, bool) {
	switch gt := g.(type) {
	case Concrete:
		return gt.Type, true
	case Generic:
		return realizeGeneric(env, gt.Type)
	default:
		return nil, false
	}
}

func realizeGeneric(env *Environment, g GType) (types.Type, bool) {
	switch gv := g.(type) {
	case Parameter:
		t, ok := env.Inferred(gv.Name)
		return t, ok
	case UnqualifiedParameter:
		t, ok := env.Inferred(gv.Name)
		if !ok {
			return nil, false
		}
		return t.Require(), true
	case GArray:
		elem, ok := Realize(env, gv.Element)
		if !ok {
			return nil, false
		}
		return types.Array{Element: elem, NonEmpty: gv.NonEmpty}, true
	case GPair:
		first, ok := Realize(env, gv.First)
		if !ok {
			return nil, false
		}
		second, ok := Realize(env, gv.Second)
		if !ok {
			return nil, false
		}
		return types.Pair{Left: first, Right: second}, true
	case GMap:
		key, ok := Realize(env, gv.Key)
		if !ok {
			return nil, false
		}
		value, ok := Realize(env, gv.Value)
		if !ok {
			return nil, false
		}
		return types.Map{Key: key, Value: value}, true
	default:
		return nil, false
	}
}
