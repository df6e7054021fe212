package types

import (
	"fmt"
	"strings"
)

// Type is the interface implemented by every WDL type variant.
// Concrete variants are distinct Go types rather than a single tagged
// struct so that each variant's rules (coercibility, display,
// optionality) live next to its definition.
type Type interface {
	String() string
	// Equal reports structural equality, except for *Call which compares
	// by pointer identity.
	Equal(Type) bool
	IsOptional() bool
	// Optional returns the type made optional; a no-op for types that are
	// already (or always) optional.
	Optional() Type
	// Require returns the type made required. Union.Require() == Union;
	// None.Require() == Union.
	Require() Type
	IsCoercibleTo(Type) bool
}

// ---- Primitive -------------------------------------------------------

// Primitive is one of Boolean, Int, Float, String, File, Directory, with
// an independent optional bit.
type Primitive struct {
	Kind PrimitiveKind
	Opt  bool
}

func NewPrimitive(k PrimitiveKind) Primitive { return Primitive{Kind: k} }

func (t Primitive) String() string {
	if t.Opt {
		return t.Kind.String() + "?"
	}
	return t.Kind.String()
}

func (t Primitive) Equal(other Type) bool {
	o, ok := other.(Primitive)
	return ok && o.Kind == t.Kind && o.Opt == t.Opt
}

func (t Primitive) IsOptional() bool { return t.Opt }
func (t Primitive) Optional() Type   { return Primitive{Kind: t.Kind, Opt: true} }
func (t Primitive) Require() Type    { return Primitive{Kind: t.Kind, Opt: false} }

// primitiveCoercion is the exhaustive forward-coercion table,
// supplemented with the reverse File/Directory->String directions.
var primitiveCoercion = map[[2]PrimitiveKind]bool{
	{String, File}:      true,
	{File, String}:      true,
	{String, Directory}: true,
	{Directory, String}: true,
	{Int, Float}:        true,
}

func (t Primitive) IsCoercibleTo(target Type) bool {
	if IsUnion(target) {
		return true
	}
	o, ok := target.(Primitive)
	if !ok {
		return false
	}
	if t.Kind == o.Kind && t.Opt == o.Opt {
		return true
	}
	// Optional source cannot coerce into a required target.
	if t.Opt && !o.Opt {
		return false
	}
	if t.Kind == o.Kind {
		return true
	}
	return primitiveCoercion[[2]PrimitiveKind{t.Kind, o.Kind}]
}

// ---- Array ------------------------------------------------------------

// Array is `Array[Element]`, optionally `Array[Element]+` (non-empty).
// The non-empty qualifier is a runtime check only and never affects
// static coercion.
type Array struct {
	Element  Type
	NonEmpty bool
	Opt      bool
}

func (t Array) String() string {
	s := "Array[" + t.Element.String() + "]"
	if t.NonEmpty {
		s += "+"
	}
	if t.Opt {
		s += "?"
	}
	return s
}

func (t Array) Equal(other Type) bool {
	o, ok := other.(Array)
	return ok && o.Opt == t.Opt && o.NonEmpty == t.NonEmpty && o.Element.Equal(t.Element)
}

func (t Array) IsOptional() bool { return t.Opt }
func (t Array) Optional() Type   { t.Opt = true; return t }
func (t Array) Require() Type    { t.Opt = false; return t }

func (t Array) IsCoercibleTo(target Type) bool {
	if IsUnion(target) {
		return true
	}
	o, ok := target.(Array)
	if !ok {
		return false
	}
	if t.Opt && !o.Opt {
		return false
	}
	return t.Element.IsCoercibleTo(o.Element)
}

// ---- Pair ---------------------------------------------------------------

// Pair is `Pair[Left, Right]`, covariant in both parameters.
type Pair struct {
	Left  Type
	Right Type
	Opt   bool
}

func (t Pair) String() string {
	s := "Pair[" + t.Left.String() + ", " + t.Right.String() + "]"
	if t.Opt {
		s += "?"
	}
	return s
}

func (t Pair) Equal(other Type) bool {
	o, ok := other.(Pair)
	return ok && o.Opt == t.Opt && o.Left.Equal(t.Left) && o.Right.Equal(t.Right)
}

func (t Pair) IsOptional() bool { return t.Opt }
func (t Pair) Optional() Type   { t.Opt = true; return t }
func (t Pair) Require() Type    { t.Opt = false; return t }

func (t Pair) IsCoercibleTo(target Type) bool {
	if IsUnion(target) {
		return true
	}
	o, ok := target.(Pair)
	if !ok {
		return false
	}
	if t.Opt && !o.Opt {
		return false
	}
	return t.Left.IsCoercibleTo(o.Left) && t.Right.IsCoercibleTo(o.Right)
}

// ---- Map ----------------------------------------------------------------

// Map is `Map[Key, Value]`, covariant in both parameters.
type Map struct {
	Key   Type
	Value Type
	Opt   bool
}

func (t Map) String() string {
	s := "Map[" + t.Key.String() + ", " + t.Value.String() + "]"
	if t.Opt {
		s += "?"
	}
	return s
}

func (t Map) Equal(other Type) bool {
	o, ok := other.(Map)
	return ok && o.Opt == t.Opt && o.Key.Equal(t.Key) && o.Value.Equal(t.Value)
}

func (t Map) IsOptional() bool { return t.Opt }
func (t Map) Optional() Type   { t.Opt = true; return t }
func (t Map) Require() Type    { t.Opt = false; return t }

func (t Map) IsCoercibleTo(target Type) bool {
	if IsUnion(target) {
		return true
	}
	switch o := target.(type) {
	case Map:
		if t.Opt && !o.Opt {
			return false
		}
		return t.Key.IsCoercibleTo(o.Key) && t.Value.IsCoercibleTo(o.Value)
	case Struct:
		// Map[K,V] -> Struct iff K->String and every member type is a
		// supertype of V.
		if t.Opt && !o.Opt {
			return false
		}
		if !t.Key.IsCoercibleTo(Primitive{Kind: String}) {
			return false
		}
		ok := true
		o.Def.Members.Each(func(_ string, member Type) {
			if !t.Value.IsCoercibleTo(member) {
				ok = false
			}
		})
		return ok
	case object:
		if t.Opt && !o.opt {
			return false
		}
		return t.Key.IsCoercibleTo(Primitive{Kind: String})
	default:
		return false
	}
}

// ---- Struct ---------------------------------------------------------------

// StructDef is the shared, read-only definition of a struct type: its
// name and its ordered member table. Multiple Struct Type values (e.g.
// the required and optional views) may point at the same StructDef.
type StructDef struct {
	Name    string
	Members *OrderedMap[Type]
}

// Struct is a named struct type, e.g. `Foo`. Equality is structural
// (same member names and pairwise-equal member types), unlike CallType
// which is identity-only.
type Struct struct {
	Def *StructDef
	Opt bool
}

func NewStruct(name string, members *OrderedMap[Type]) Struct {
	return Struct{Def: &StructDef{Name: name, Members: members}}
}

func (t Struct) String() string {
	if t.Opt {
		return t.Def.Name + "?"
	}
	return t.Def.Name
}

func (t Struct) Equal(other Type) bool {
	o, ok := other.(Struct)
	if !ok || o.Opt != t.Opt {
		return false
	}
	if t.Def == o.Def {
		return true
	}
	if t.Def.Name != o.Def.Name || t.Def.Members.Len() != o.Def.Members.Len() {
		return false
	}
	for _, k := range t.Def.Members.Keys() {
		a, _ := t.Def.Members.Get(k)
		b, ok := o.Def.Members.Get(k)
		if !ok || !a.Equal(b) {
			return false
		}
	}
	return true
}

func (t Struct) IsOptional() bool { return t.Opt }
func (t Struct) Optional() Type   { t.Opt = true; return t }
func (t Struct) Require() Type    { t.Opt = false; return t }

func (t Struct) IsCoercibleTo(target Type) bool {
	if IsUnion(target) {
		return true
	}
	switch o := target.(type) {
	case Struct:
		if t.Opt && !o.Opt {
			return false
		}
		if t.Def.Members.Len() != o.Def.Members.Len() {
			return false
		}
		for _, k := range t.Def.Members.Keys() {
			a, _ := t.Def.Members.Get(k)
			b, ok := o.Def.Members.Get(k)
			if !ok || !a.IsCoercibleTo(b) {
				return false
			}
		}
		return true
	case Map:
		// Struct -> Map[K,V] iff String->K and every member type is a
		// subtype (coercible to) V.
		if t.Opt && !o.Opt {
			return false
		}
		stringPrim := Primitive{Kind: String}
		if !stringPrim.IsCoercibleTo(o.Key) {
			return false
		}
		ok := true
		t.Def.Members.Each(func(_ string, member Type) {
			if !member.IsCoercibleTo(o.Value) {
				ok = false
			}
		})
		return ok
	case object:
		// Struct -> Object is unconditional: Object has no static member
		// types to check against (supplemented from original_source).
		return !t.Opt || o.opt
	default:
		return false
	}
}

// ---- Object -----------------------------------------------------------

// object implements both Object and Object? via a single Opt bit; it is
// unexported because the public API is the Object/OptionalObject values
// below, matching how Union/None are exposed as singletons.
type object struct{ opt bool }

var Object Type = object{opt: false}
var OptionalObject Type = object{opt: true}

func (t object) String() string {
	if t.opt {
		return "Object?"
	}
	return "Object"
}

func (t object) Equal(other Type) bool {
	o, ok := other.(object)
	return ok && o.opt == t.opt
}

func (t object) IsOptional() bool { return t.opt }
func (t object) Optional() Type   { return object{opt: true} }
func (t object) Require() Type    { return object{opt: false} }

func (t object) IsCoercibleTo(target Type) bool {
	if IsUnion(target) {
		return true
	}
	switch o := target.(type) {
	case object:
		// Object -> Object, Object -> Object?, Object? -> Object?.
		return !t.opt || o.opt
	case Map:
		if t.opt && !o.Opt {
			return false
		}
		return Primitive{Kind: String}.IsCoercibleTo(o.Key)
	case Struct:
		if t.opt && !o.Opt {
			return false
		}
		// Object -> Struct: keys/values are a runtime constraint only.
		return true
	default:
		return false
	}
}

// ---- Union / None -------------------------------------------------------

type unionType struct{}

// Union is the indeterminate/bottom type: it coerces both to and from
// every other type.
var Union Type = unionType{}

func (unionType) String() string          { return "Union" }
func (unionType) Equal(other Type) bool   { _, ok := other.(unionType); return ok }
func (unionType) IsOptional() bool        { return false }
func (unionType) Optional() Type          { return noneType{} }
func (unionType) Require() Type           { return unionType{} }
func (unionType) IsCoercibleTo(Type) bool { return true }

type noneType struct{}

// None is the static type of the null-optional literal `None`.
var None Type = noneType{}

func (noneType) String() string        { return "None" }
func (noneType) Equal(other Type) bool  { _, ok := other.(noneType); return ok }
func (noneType) IsOptional() bool       { return true }
func (noneType) Optional() Type         { return noneType{} }
func (noneType) Require() Type          { return unionType{} }
func (noneType) IsCoercibleTo(t Type) bool {
	if IsUnion(t) {
		return true
	}
	if _, ok := t.(noneType); ok {
		return true
	}
	return t.IsOptional()
}

// ---- Context-scoped singletons -----------------------------------------

type contextSingleton struct{ name string }

func (c contextSingleton) String() string        { return c.name }
func (c contextSingleton) Equal(o Type) bool      { oc, ok := o.(contextSingleton); return ok && oc.name == c.name }
func (c contextSingleton) IsOptional() bool       { return false }
func (c contextSingleton) Optional() Type         { return c }
func (c contextSingleton) Require() Type          { return c }
func (c contextSingleton) IsCoercibleTo(t Type) bool { return IsUnion(t) }

var (
	Task   Type = contextSingleton{"task"}
	Hints  Type = contextSingleton{"hints"}
	Input  Type = contextSingleton{"input"}
	Output Type = contextSingleton{"output"}
)

// ---- helpers --------------------------------------------------------

// IsUnion/IsNone let callers outside this package test for the special
// types without a type assertion on unexported concrete types.
func IsUnion(t Type) bool { _, ok := t.(unionType); return ok }
func IsNone(t Type) bool  { _, ok := t.(noneType); return ok }

// DisplayTypes renders a slice of types for diagnostic text:
// "type `A`", "type `A` or type `B`", "type `A`, type `B`, or type `C`".
func DisplayTypes(ts []Type) string {
	var parts []string
	for _, t := range ts {
		parts = append(parts, fmt.Sprintf("type `%s`", t.String()))
	}
	return joinAlternatives(parts)
}

// joinAlternatives implements the punctuation rule used both by
// DisplayTypes and by overload-resolution's "expected" string union:
// two items join with a bare space before "or"; three or more join
// with commas and a final ", or".
func joinAlternatives(parts []string) string {
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	case 2:
		return parts[0] + " or " + parts[1]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + ", or " + parts[len(parts)-1]
	}
}

// JoinAlternatives is the exported form used by the binding package to
// join "expected" strings (which are bare, unbracketed by "type `...`").
func JoinAlternatives(parts []string) string { return joinAlternatives(parts) }
