package stdlib

import (
	"github.com/stjude-rust-labs/wdlcore/internal/config"
	"github.com/stjude-rust-labs/wdlcore/internal/gentype"
)

// SigBuilder is a small fluent EDSL for writing catalog entries so a
// signature reads close to its WDL declaration, e.g.:
//
//	NewSig().
//		TypeParam("X", gentype.Optional).
//		Params(G(GArray{Element: G(UnqualifiedParameter{Name: "X"})})).
//		Returns(G(UnqualifiedParameter{Name: "X"})).
//		Build()
type SigBuilder struct {
	typeParams []gentype.TypeParameter
	required   []gentype.GFType
	optional   []gentype.GFType
	variadic   bool
	ret        gentype.GFType
}

// NewSig starts a new signature builder.
func NewSig() *SigBuilder {
	return &SigBuilder{}
}

// TypeParam declares a type parameter, in the order it should appear in
// a `where` clause. constraint may be nil for an unconstrained parameter.
func (b *SigBuilder) TypeParam(name string, constraint gentype.Constraint) *SigBuilder {
	b.typeParams = append(b.typeParams, gentype.TypeParameter{Name: name, Constraint: constraint})
	return b
}

// Params declares the required, leading parameters.
func (b *SigBuilder) Params(ps ...gentype.GFType) *SigBuilder {
	b.required = append(b.required, ps...)
	return b
}

// Optional declares trailing optional parameters (`<...>` notation).
func (b *SigBuilder) Optional(ps ...gentype.GFType) *SigBuilder {
	b.optional = append(b.optional, ps...)
	return b
}

// Variadic marks the final declared parameter as repeatable. No entry in
// the catalog calls it; every stdlib function there is fixed-arity apart
// from its `<...>` optional parameters.
func (b *SigBuilder) Variadic() *SigBuilder {
	b.variadic = true
	return b
}

// Returns sets the signature's return type.
func (b *SigBuilder) Returns(r gentype.GFType) *SigBuilder {
	b.ret = r
	return b
}

// Build validates and returns the finished Signature:
//   - at most config.MaxTypeParameters type parameters
//   - every type-parameter name referenced by a parameter or the return
//     must be declared via TypeParam
//   - Returns must have been called
//
// Build panics on violation, since these are catalog-construction-time
// programmer errors, never something a WDL author's input can trigger.
func (b *SigBuilder) Build() Signature {
	if len(b.typeParams) > config.MaxTypeParameters {
		panic("stdlib: signature declares too many type parameters")
	}
	if b.ret == nil {
		panic("stdlib: signature has no return type")
	}
	declared := make(map[string]bool, len(b.typeParams))
	for _, p := range b.typeParams {
		declared[p.Name] = true
	}
	all := append(append([]gentype.GFType{}, b.required...), b.optional...)
	all = append(all, b.ret)
	for _, p := range all {
		for _, name := range referencedNames(p) {
			if !declared[name] {
				panic("stdlib: signature references undeclared type parameter " + name)
			}
		}
	}
	params := append([]gentype.GFType{}, b.required...)
	params = append(params, b.optional...)
	return Signature{
		TypeParams: b.typeParams,
		Required:   len(b.required),
		Params:     params,
		Return:     b.ret,
		Variadic:   b.variadic,
	}
}

func referencedNames(g gentype.GFType) []string {
	switch v := g.(type) {
	case gentype.Concrete:
		return nil
	case gentype.Generic:
		return referencedGType(v.Type)
	default:
		return nil
	}
}

func referencedGType(g gentype.GType) []string {
	switch v := g.(type) {
	case gentype.Parameter:
		return []string{v.Name}
	case gentype.UnqualifiedParameter:
		return []string{v.Name}
	case gentype.GArray:
		return referencedNames(v.Element)
	case gentype.GPair:
		return append(referencedNames(v.First), referencedNames(v.Second)...)
	case gentype.GMap:
		return append(referencedNames(v.Key), referencedNames(v.Value)...)
	default:
		return nil
	}
}

// NewPolymorphic validates the "at least two signatures" rule before
// returning a Polymorphic function.
func NewPolymorphic(min config.Version, sigs ...Signature) Polymorphic {
	if len(sigs) < 2 {
		panic("stdlib: Polymorphic function needs at least two signatures")
	}
	return Polymorphic{Min: min, Sigs: sigs}
}

// NewMonomorphic is the Monomorphic equivalent, kept for symmetry with
// NewPolymorphic in catalog entries.
func NewMonomorphic(min config.Version, sig Signature) Monomorphic {
	return Monomorphic{Min: min, Sig: sig}
}
