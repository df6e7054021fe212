// Package stdlib is the static, lazily-initialized catalog of WDL
// standard-library function signatures. Every entry is
// declarative, built with the SigBuilder EDSL so a call like
// `NewSig().Params(C(Float)).Returns(C(Int))` reads like the signature it
// describes: `(Float) -> Int`.
package stdlib

import (
	"strings"

	"github.com/stjude-rust-labs/wdlcore/internal/config"
	"github.com/stjude-rust-labs/wdlcore/internal/gentype"
)

// Signature is one callable shape. A Function groups one or more
// Signatures; only Polymorphic functions have more than one.
type Signature struct {
	TypeParams []gentype.TypeParameter
	// Required is the number of leading parameters that must be
	// supplied; len(Params)-Required trailing parameters are optional
	// (rendered with `<...>`).
	Required int
	Params   []gentype.GFType
	Return   gentype.GFType
	Variadic bool
}

// IsGeneric reports whether any parameter or the return type references
// a type parameter.
func (s Signature) IsGeneric() bool {
	if s.Return.IsGeneric() {
		return true
	}
	for _, p := range s.Params {
		if p.IsGeneric() {
			return true
		}
	}
	return false
}

// Environment builds a fresh gentype.Environment scoped to this
// signature's declared type parameters, for one binding attempt.
func (s Signature) Environment() *gentype.Environment {
	return gentype.NewEnvironment(s.TypeParams)
}

// Display renders the signature in its canonical form: comma-separated
// parameters inside `(...)`, optional parameters wrapped in `<...>`, the
// return type after `->`, and (if name != "") the function name prefix.
func (s Signature) Display(name string) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	for i, p := range s.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		text := p.String()
		if s.Variadic && i == len(s.Params)-1 {
			text = "..." + text
		} else if i >= s.Required {
			text = "<" + text + ">"
		}
		b.WriteString(text)
	}
	b.WriteString(") -> ")
	b.WriteString(s.Return.String())
	var constrained []gentype.TypeParameter
	for _, p := range s.TypeParams {
		if p.Constraint != nil {
			constrained = append(constrained, p)
		}
	}
	if where := gentype.WhereClause(constrained); where != "" {
		b.WriteByte(' ')
		b.WriteString(where)
	}
	return b.String()
}

// Function is one catalog entry: either a single signature (Monomorphic)
// or two-or-more overloads (Polymorphic), pinned to the WDL version that
// introduced it.
type Function interface {
	// MinVersion is the minimum WDL version this function is available
	// in (checked against the call site's document version before binding).
	MinVersion() config.Version
	// Signatures returns every Signature this function may bind against,
	// in declaration order.
	Signatures() []Signature
	// IsPolymorphic reports whether this function has more than one
	// signature (distinguishes single-signature binding from
	// overload resolution).
	IsPolymorphic() bool
}

// Monomorphic is a Function with exactly one signature.
type Monomorphic struct {
	Min config.Version
	Sig Signature
}

func (m Monomorphic) MinVersion() config.Version  { return m.Min }
func (m Monomorphic) Signatures() []Signature      { return []Signature{m.Sig} }
func (m Monomorphic) IsPolymorphic() bool          { return false }

// Polymorphic is a Function with two or more overloaded signatures,
// disambiguated at a call site via precedence-tiered resolution.
type Polymorphic struct {
	Min  config.Version
	Sigs []Signature
}

func (p Polymorphic) MinVersion() config.Version { return p.Min }
func (p Polymorphic) Signatures() []Signature     { return p.Sigs }
func (p Polymorphic) IsPolymorphic() bool         { return true }
