package gentype

import "github.com/stjude-rust-labs/wdlcore/internal/types"

// GType is the generic type vocabulary used only inside standard-library
// signatures. It mirrors types.Type's compound shapes but allows
// a position to be an unbound Parameter instead of a concrete type.
type GType interface {
	gtype()
	String() string
}

// Parameter is a bound type-parameter position, e.g. `X` in
// `select_first(Array[X]+) -> X`.
type Parameter struct{ Name string }

func (Parameter) gtype()        {}
func (p Parameter) String() string { return p.Name }

// UnqualifiedParameter behaves like Parameter during inference, but
// Realize strips the outer `?` from the inferred type. Used by
// select_first/select_all, which infer an optional element type but
// return/produce the required form.
type UnqualifiedParameter struct{ Name string }

func (UnqualifiedParameter) gtype()        {}
func (p UnqualifiedParameter) String() string { return p.Name }

// GArray/GPair/GMap mirror types.Array/Pair/Map but hold GFType
// positions, since a compound position in a generic signature may
// itself reference a type parameter.
type GArray struct {
	Element  GFType
	NonEmpty bool
}

func (GArray) gtype() {}
func (g GArray) String() string {
	s := "Array[" + g.Element.String() + "]"
	if g.NonEmpty {
		s += "+"
	}
	return s
}

type GPair struct{ First, Second GFType }

func (GPair) gtype() {}
func (g GPair) String() string {
	return "Pair[" + g.First.String() + ", " + g.Second.String() + "]"
}

type GMap struct{ Key, Value GFType }

func (GMap) gtype() {}
func (g GMap) String() string {
	return "Map[" + g.Key.String() + ", " + g.Value.String() + "]"
}

// GFType is either a Concrete, fully-resolved types.Type, or a Generic
// shape that still references type parameters.
type GFType interface {
	gftype()
	String() string
	// IsGeneric reports whether this position (or something nested in
	// it) references a type parameter.
	IsGeneric() bool
}

// Concrete wraps a plain types.Type with no type-parameter references.
type Concrete struct{ Type types.Type }

func (Concrete) gftype()          {}
func (c Concrete) String() string { return c.Type.String() }
func (Concrete) IsGeneric() bool  { return false }

// Generic wraps a GType shape.
type Generic struct{ Type GType }

func (Generic) gftype()          {}
func (g Generic) String() string { return g.Type.String() }
func (Generic) IsGeneric() bool  { return true }

// C is a short constructor for Concrete, used heavily by the stdlib
// catalog builder to keep signatures readable.
func C(t types.Type) GFType { return Concrete{Type: t} }

// G is a short constructor for Generic.
func G(t GType) GFType { return Generic{Type: t} }
