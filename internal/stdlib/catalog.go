package stdlib

import (
	"sync"

	"github.com/stjude-rust-labs/wdlcore/internal/config"
	"github.com/stjude-rust-labs/wdlcore/internal/gentype"
	"github.com/stjude-rust-labs/wdlcore/internal/types"
)

// Concrete primitive shorthands used throughout the catalog below.
var (
	boolean   = types.Primitive{Kind: types.Boolean}
	integer   = types.Primitive{Kind: types.Int}
	float     = types.Primitive{Kind: types.Float}
	str       = types.Primitive{Kind: types.String}
	file      = types.Primitive{Kind: types.File}
	directory = types.Primitive{Kind: types.Directory}
)

// Shorthand aliases into the gentype package so catalog entries read
// close to a WDL declaration.
var (
	G = gentype.G
	C = gentype.C
)

func arr(e gentype.GFType) gentype.GArray  { return gentype.GArray{Element: e} }
func narr(e gentype.GFType) gentype.GArray { return gentype.GArray{Element: e, NonEmpty: true} }
func pr(name string) gentype.GType         { return gentype.Parameter{Name: name} }
func uq(name string) gentype.GType         { return gentype.UnqualifiedParameter{Name: name} }

// registry builds the frozen, name-keyed stdlib function table on first
// use. Construction runs the SigBuilder validation for every entry, so
// the first Lookup in a process is where a malformed catalog would
// surface; after that the table is read-only and freely shared.
var registry = sync.OnceValue(buildRegistry)

func buildRegistry() map[string]Function {
	return map[string]Function{
		"floor": NewMonomorphic(config.V1_0, NewSig().
			Params(C(float)).
			Returns(C(integer)).
			Build()),
		"ceil": NewMonomorphic(config.V1_0, NewSig().
			Params(C(float)).
			Returns(C(integer)).
			Build()),
		"round": NewMonomorphic(config.V1_0, NewSig().
			Params(C(float)).
			Returns(C(integer)).
			Build()),
		"sqrt": NewMonomorphic(config.V1_0, NewSig().
			Params(C(float)).
			Returns(C(float)).
			Build()),

		// select_first(Array[X]+) -> X
		// select_first(Array[X], <X>) -> X
		// where `X`: any optional type. The array element stays the bound
		// parameter so Array[String?] binds as-is; the fallback parameter
		// and the return are UnqualifiedParameter so their outer `?` is
		// stripped on realization and in "expected" diagnostics.
		"select_first": NewPolymorphic(config.V1_0,
			NewSig().
				TypeParam("X", gentype.Optional).
				Params(G(narr(G(pr("X"))))).
				Returns(G(uq("X"))).
				Build(),
			NewSig().
				TypeParam("X", gentype.Optional).
				Params(G(arr(G(pr("X"))))).
				Optional(G(uq("X"))).
				Returns(G(uq("X"))).
				Build(),
		),

		// select_all(Array[X]) -> Array[X] where `X`: any optional type.
		"select_all": NewMonomorphic(config.V1_0, NewSig().
			TypeParam("X", gentype.Optional).
			Params(G(arr(G(pr("X"))))).
			Returns(G(arr(G(uq("X"))))).
			Build()),

		// values(Map[K, V]) -> Array[V] where `K`: any required primitive
		// type.
		"values": NewMonomorphic(config.V1_1, NewSig().
			TypeParam("K", gentype.RequiredPrimitive).
			TypeParam("V", nil).
			Params(G(gentype.GMap{Key: G(pr("K")), Value: G(pr("V"))})).
			Returns(G(arr(G(pr("V"))))).
			Build()),

		// keys(Map[K, V]) -> Array[K] where `K`: any required primitive type.
		"keys": NewMonomorphic(config.V1_0, NewSig().
			TypeParam("K", gentype.RequiredPrimitive).
			TypeParam("V", nil).
			Params(G(gentype.GMap{Key: G(pr("K")), Value: G(pr("V"))})).
			Returns(G(arr(G(pr("K"))))).
			Build()),

		// as_pairs(Map[K, V]) -> Array[Pair[K, V]] where `K`: any required
		// primitive type; as_map is its inverse, and collect_by_key folds
		// duplicate keys into Array-valued entries instead of dropping them.
		"as_pairs": NewMonomorphic(config.V1_1, NewSig().
			TypeParam("K", gentype.RequiredPrimitive).
			TypeParam("V", nil).
			Params(G(gentype.GMap{Key: G(pr("K")), Value: G(pr("V"))})).
			Returns(G(arr(G(gentype.GPair{First: G(pr("K")), Second: G(pr("V"))})))).
			Build()),
		"as_map": NewMonomorphic(config.V1_1, NewSig().
			TypeParam("K", gentype.RequiredPrimitive).
			TypeParam("V", nil).
			Params(G(arr(G(gentype.GPair{First: G(pr("K")), Second: G(pr("V"))})))).
			Returns(G(gentype.GMap{Key: G(pr("K")), Value: G(pr("V"))})).
			Build()),
		"collect_by_key": NewMonomorphic(config.V1_1, NewSig().
			TypeParam("K", gentype.RequiredPrimitive).
			TypeParam("V", nil).
			Params(G(arr(G(gentype.GPair{First: G(pr("K")), Second: G(pr("V"))})))).
			Returns(G(gentype.GMap{Key: G(pr("K")), Value: G(arr(G(pr("V"))))})).
			Build()),

		// contains_key(Map[K, V], K) -> Boolean where `K`: any required
		// primitive type.
		"contains_key": NewMonomorphic(config.V1_2, NewSig().
			TypeParam("K", gentype.RequiredPrimitive).
			TypeParam("V", nil).
			Params(G(gentype.GMap{Key: G(pr("K")), Value: G(pr("V"))}), G(pr("K"))).
			Returns(C(boolean)).
			Build()),

		// length(Array[X]) -> Int.
		"length": NewMonomorphic(config.V1_0, NewSig().
			TypeParam("X", nil).
			Params(G(arr(G(pr("X"))))).
			Returns(C(integer)).
			Build()),

		// size(X, <String>) -> Float where `X`: any compound type that
		// recursively contains a `File` or `Directory` (or is itself one).
		"size": NewMonomorphic(config.V1_0, NewSig().
			TypeParam("X", gentype.Sizeable).
			Params(G(pr("X"))).
			Optional(C(str)).
			Returns(C(float)).
			Build()),

		// defined(X) -> Boolean.
		"defined": NewMonomorphic(config.V1_0, NewSig().
			TypeParam("X", nil).
			Params(G(pr("X"))).
			Returns(C(boolean)).
			Build()),

		// max/min: four non-generic overloads over the Int/Float lattice.
		// Kept monomorphic-per-signature (no type parameters) since
		// the overload set is closed and small.
		"max": NewPolymorphic(config.V1_1,
			NewSig().Params(C(integer), C(integer)).Returns(C(integer)).Build(),
			NewSig().Params(C(integer), C(float)).Returns(C(float)).Build(),
			NewSig().Params(C(float), C(integer)).Returns(C(float)).Build(),
			NewSig().Params(C(float), C(float)).Returns(C(float)).Build(),
		),
		"min": NewPolymorphic(config.V1_1,
			NewSig().Params(C(integer), C(integer)).Returns(C(integer)).Build(),
			NewSig().Params(C(integer), C(float)).Returns(C(float)).Build(),
			NewSig().Params(C(float), C(integer)).Returns(C(float)).Build(),
			NewSig().Params(C(float), C(float)).Returns(C(float)).Build(),
		),

		"basename": NewMonomorphic(config.V1_0, NewSig().
			Params(C(file)).
			Optional(C(str)).
			Returns(C(str)).
			Build()),

		"sub": NewMonomorphic(config.V1_0, NewSig().
			Params(C(str), C(str), C(str)).
			Returns(C(str)).
			Build()),

		// find returns the first regex match, or None when nothing matches,
		// hence the optional String return.
		"find": NewMonomorphic(config.V1_2, NewSig().
			Params(C(str), C(str)).
			Returns(C(types.Primitive{Kind: types.String, Opt: true})).
			Build()),
		"matches": NewMonomorphic(config.V1_2, NewSig().
			Params(C(str), C(str)).
			Returns(C(boolean)).
			Build()),

		// join_paths(File, String) -> File
		// join_paths(File, Array[String]+) -> File
		// join_paths(Array[String]+) -> File
		"join_paths": NewPolymorphic(config.V1_2,
			NewSig().Params(C(file), C(str)).Returns(C(file)).Build(),
			NewSig().Params(C(file), C(types.Array{Element: str, NonEmpty: true})).Returns(C(file)).Build(),
			NewSig().Params(C(types.Array{Element: str, NonEmpty: true})).Returns(C(file)).Build(),
		),

		"range": NewMonomorphic(config.V1_0, NewSig().
			Params(C(integer)).
			Returns(C(types.Array{Element: integer})).
			Build()),

		// transpose(Array[Array[X]]) -> Array[Array[X]]
		"transpose": NewMonomorphic(config.V1_0, NewSig().
			TypeParam("X", nil).
			Params(G(arr(G(arr(G(pr("X"))))))).
			Returns(G(arr(G(arr(G(pr("X"))))))).
			Build()),

		// cross(Array[X], Array[Y]) -> Array[Pair[X, Y]]
		"cross": NewMonomorphic(config.V1_0, NewSig().
			TypeParam("X", nil).
			TypeParam("Y", nil).
			Params(G(arr(G(pr("X")))), G(arr(G(pr("Y"))))).
			Returns(G(arr(G(gentype.GPair{First: G(pr("X")), Second: G(pr("Y"))})))).
			Build()),

		// zip(Array[X], Array[Y]) -> Array[Pair[X, Y]]
		"zip": NewMonomorphic(config.V1_0, NewSig().
			TypeParam("X", nil).
			TypeParam("Y", nil).
			Params(G(arr(G(pr("X")))), G(arr(G(pr("Y"))))).
			Returns(G(arr(G(gentype.GPair{First: G(pr("X")), Second: G(pr("Y"))})))).
			Build()),

		// unzip(Array[Pair[X, Y]]) -> Pair[Array[X], Array[Y]]
		"unzip": NewMonomorphic(config.V1_1, NewSig().
			TypeParam("X", nil).
			TypeParam("Y", nil).
			Params(G(arr(G(gentype.GPair{First: G(pr("X")), Second: G(pr("Y"))})))).
			Returns(G(gentype.GPair{First: G(arr(G(pr("X")))), Second: G(arr(G(pr("Y"))))})).
			Build()),

		// flatten(Array[Array[X]]) -> Array[X]
		"flatten": NewMonomorphic(config.V1_0, NewSig().
			TypeParam("X", nil).
			Params(G(arr(G(arr(G(pr("X"))))))).
			Returns(G(arr(G(pr("X"))))).
			Build()),

		"prefix": NewMonomorphic(config.V1_0, NewSig().
			TypeParam("X", gentype.AnyPrimitive).
			Params(C(str), G(arr(G(pr("X"))))).
			Returns(C(types.Array{Element: str})).
			Build()),

		"suffix": NewMonomorphic(config.V1_2, NewSig().
			TypeParam("X", gentype.AnyPrimitive).
			Params(C(str), G(arr(G(pr("X"))))).
			Returns(C(types.Array{Element: str})).
			Build()),

		"quote": NewMonomorphic(config.V1_1, NewSig().
			TypeParam("X", gentype.AnyPrimitive).
			Params(G(arr(G(pr("X"))))).
			Returns(C(types.Array{Element: str})).
			Build()),

		"squote": NewMonomorphic(config.V1_1, NewSig().
			TypeParam("X", gentype.AnyPrimitive).
			Params(G(arr(G(pr("X"))))).
			Returns(C(types.Array{Element: str})).
			Build()),

		"sep": NewMonomorphic(config.V1_1, NewSig().
			TypeParam("X", gentype.AnyPrimitive).
			Params(C(str), G(arr(G(pr("X"))))).
			Returns(C(str)).
			Build()),

		"glob": NewMonomorphic(config.V1_0, NewSig().
			Params(C(str)).
			Returns(C(types.Array{Element: file})).
			Build()),

		"stdout": NewMonomorphic(config.V1_0, NewSig().
			Returns(C(file)).
			Build()),

		"stderr": NewMonomorphic(config.V1_0, NewSig().
			Returns(C(file)).
			Build()),

		"read_string":  NewMonomorphic(config.V1_0, NewSig().Params(C(file)).Returns(C(str)).Build()),
		"read_int":     NewMonomorphic(config.V1_0, NewSig().Params(C(file)).Returns(C(integer)).Build()),
		"read_float":   NewMonomorphic(config.V1_0, NewSig().Params(C(file)).Returns(C(float)).Build()),
		"read_boolean": NewMonomorphic(config.V1_0, NewSig().Params(C(file)).Returns(C(boolean)).Build()),
		"read_lines":   NewMonomorphic(config.V1_0, NewSig().Params(C(file)).Returns(C(types.Array{Element: str})).Build()),
		"read_tsv": NewMonomorphic(config.V1_0, NewSig().
			Params(C(file)).
			Returns(C(types.Array{Element: types.Array{Element: str}})).
			Build()),
		"read_map": NewMonomorphic(config.V1_0, NewSig().
			Params(C(file)).
			Returns(C(types.Map{Key: str, Value: str})).
			Build()),
		"read_object": NewMonomorphic(config.V1_0, NewSig().
			Params(C(file)).
			Returns(C(types.Object)).
			Build()),
		"read_objects": NewMonomorphic(config.V1_0, NewSig().
			Params(C(file)).
			Returns(C(types.Array{Element: types.Object})).
			Build()),
		// read_json's static type depends on the file's contents, which are
		// not known at analysis time; Union coerces to (and from) anything,
		// matching a caller binding the result to any declared type.
		"read_json": NewMonomorphic(config.V1_0, NewSig().
			Params(C(file)).
			Returns(C(types.Union)).
			Build()),

		"write_lines": NewMonomorphic(config.V1_0, NewSig().
			Params(C(types.Array{Element: str})).
			Returns(C(file)).
			Build()),
		"write_tsv": NewMonomorphic(config.V1_0, NewSig().
			Params(C(types.Array{Element: types.Array{Element: str}})).
			Returns(C(file)).
			Build()),
		"write_map": NewMonomorphic(config.V1_0, NewSig().
			Params(C(types.Map{Key: str, Value: str})).
			Returns(C(file)).
			Build()),
		"write_object": NewMonomorphic(config.V1_0, NewSig().
			Params(C(types.Object)).
			Returns(C(file)).
			Build()),
		"write_objects": NewMonomorphic(config.V1_0, NewSig().
			Params(C(types.Array{Element: types.Object})).
			Returns(C(file)).
			Build()),
		"write_json": NewMonomorphic(config.V1_1, NewSig().
			TypeParam("X", gentype.JSONSerializable).
			Params(G(pr("X"))).
			Returns(C(file)).
			Build()),
	}
}

// Lookup returns the named stdlib function, or ok=false if the catalog
// has no such entry (the analyzer reports an unresolved-call diagnostic
// in that case, not a panic).
func Lookup(name string) (Function, bool) {
	f, ok := registry()[name]
	return f, ok
}
