// Package gentype implements the generic type vocabulary used only by
// standard-library signatures: type parameters, bounded constraints, the
// inference environment, and realization of a generic shape into a
// concrete types.Type.
package gentype

import (
	"github.com/stjude-rust-labs/wdlcore/internal/types"
)

// Constraint is one of the named predicates over types.Type.
type Constraint interface {
	// Satisfies reports whether t meets the constraint.
	Satisfies(t types.Type) bool
	// Description is the human-readable clause used in diagnostics, e.g.
	// "any required primitive type".
	Description() string
}

type anyPrimitive struct{}

func (anyPrimitive) Satisfies(t types.Type) bool {
	switch t.(type) {
	case types.Primitive:
		return true
	default:
		return false
	}
}
func (anyPrimitive) Description() string { return "any primitive type" }

type requiredPrimitive struct{}

func (requiredPrimitive) Satisfies(t types.Type) bool {
	p, ok := t.(types.Primitive)
	return ok && !p.Opt
}
func (requiredPrimitive) Description() string { return "any required primitive type" }

type optionalConstraint struct{}

func (optionalConstraint) Satisfies(t types.Type) bool { return t.IsOptional() }
func (optionalConstraint) Description() string         { return "any optional type" }

type sizeable struct{}

func (sizeable) Satisfies(t types.Type) bool { return containsFileOrDirectory(t) }
func (sizeable) Description() string {
	return "any compound type that recursively contains a `File` or `Directory`"
}

func containsFileOrDirectory(t types.Type) bool {
	switch v := t.(type) {
	case types.Primitive:
		return v.Kind == types.File || v.Kind == types.Directory
	case types.Array:
		return containsFileOrDirectory(v.Element)
	case types.Pair:
		return containsFileOrDirectory(v.Left) || containsFileOrDirectory(v.Right)
	case types.Map:
		return containsFileOrDirectory(v.Key) || containsFileOrDirectory(v.Value)
	case types.Struct:
		found := false
		v.Def.Members.Each(func(_ string, member types.Type) {
			if containsFileOrDirectory(member) {
				found = true
			}
		})
		return found
	default:
		return false
	}
}

type jsonSerializable struct{}

// Satisfies mirrors WDL's JSON mapping: every type except Call and the
// context singletons (task/hints/input/output) can be serialized.
func (j jsonSerializable) Satisfies(t types.Type) bool {
	switch v := t.(type) {
	case *types.CallType:
		return false
	case types.Array:
		return j.Satisfies(v.Element)
	case types.Pair:
		return j.Satisfies(v.Left) && j.Satisfies(v.Right)
	case types.Map:
		// JSON object keys must be strings (or string-coercible).
		return v.Key.IsCoercibleTo(types.Primitive{Kind: types.String}) && j.Satisfies(v.Value)
	case types.Struct:
		ok := true
		v.Def.Members.Each(func(_ string, member types.Type) {
			if !j.Satisfies(member) {
				ok = false
			}
		})
		return ok
	default:
		if v.Equal(types.Task) || v.Equal(types.Hints) || v.Equal(types.Input) || v.Equal(types.Output) {
			return false
		}
		return true
	}
}
func (jsonSerializable) Description() string { return "any JSON-serializable type" }

type structConstraint struct{}

func (structConstraint) Satisfies(t types.Type) bool {
	_, ok := t.(types.Struct)
	return ok
}
func (structConstraint) Description() string { return "any struct type" }

// Exported singleton constraints, one per row.
var (
	AnyPrimitive      Constraint = anyPrimitive{}
	RequiredPrimitive Constraint = requiredPrimitive{}
	Optional          Constraint = optionalConstraint{}
	Sizeable          Constraint = sizeable{}
	JSONSerializable  Constraint = jsonSerializable{}
	StructConstraint  Constraint = structConstraint{}
)
