package gentype

import "strings"

// ParamDisplay renders a single uninferred constrained type parameter's
// clause for an ArgumentTypeMismatch message, e.g.
// "`X`: any optional type". Parameters without a constraint render with
// no trailing clause content beyond the backticked name, though in
// practice every stdlib parameter used in error messages carries one.
func ParamDisplay(p TypeParameter) string {
	if p.Constraint == nil {
		return "`" + p.Name + "`"
	}
	return "`" + p.Name + "`: " + p.Constraint.Description()
}

// Partial substitutes every type-parameter position in g that the
// environment has already inferred with its concrete type, leaving
// still-uninferred positions as bare generic names. This is how a
// partially-bound overload renders in an ArgumentTypeMismatch message:
// e.g. `values(Map[K, Boolean])` once `V` has inferred to `Boolean` but
// `K` has not.
func Partial(env *Environment, g GFType) GFType {
	switch v := g.(type) {
	case Concrete:
		return v
	case Generic:
		return partialGType(env, v.Type)
	default:
		return g
	}
}

func partialGType(env *Environment, g GType) GFType {
	switch v := g.(type) {
	case Parameter:
		if t, ok := env.Inferred(v.Name); ok {
			return Concrete{Type: t}
		}
		return Generic{Type: v}
	case UnqualifiedParameter:
		if t, ok := env.Inferred(v.Name); ok {
			return Concrete{Type: t.Require()}
		}
		return Generic{Type: v}
	case GArray:
		return Generic{Type: GArray{Element: Partial(env, v.Element), NonEmpty: v.NonEmpty}}
	case GPair:
		return Generic{Type: GPair{First: Partial(env, v.First), Second: Partial(env, v.Second)}}
	case GMap:
		return Generic{Type: GMap{Key: Partial(env, v.Key), Value: Partial(env, v.Value)}}
	default:
		return Generic{Type: g}
	}
}

// WhereClause joins one or more uninferred-parameter clauses with the
// `where` keyword, as used by worked examples:
//
//	select_first(Array[X]+) -> X where `X`: any optional type
func WhereClause(params []TypeParameter) string {
	if len(params) == 0 {
		return ""
	}
	clauses := make([]string, len(params))
	for i, p := range params {
		clauses[i] = ParamDisplay(p)
	}
	return "where " + strings.Join(clauses, ", ")
}
