// Package binding implements call-site signature binding: matching
// a concrete argument-type list against one Signature (bind) or against
// every Signature of a Function (Resolve), in both cases classifying the
// outcome and building the diagnostic-ready "expected" text on failure.
package binding

import (
	"github.com/stjude-rust-labs/wdlcore/internal/gentype"
	"github.com/stjude-rust-labs/wdlcore/internal/stdlib"
	"github.com/stjude-rust-labs/wdlcore/internal/types"
)

// Outcome classifies how a single Signature bound against a call's
// argument types.
type Outcome int

const (
	// Equivalence: every argument's type was Equal to its parameter's
	// realized type; no coercion occurred anywhere.
	Equivalence Outcome = iota
	// Coercion: every argument bound, but at least one required coercion
	// (not Equal) to match its parameter.
	Coercion
	// TooFewArguments: fewer arguments than the signature's minimum arity.
	TooFewArguments
	// TooManyArguments: more arguments than the signature declares (and
	// the signature is not Variadic).
	TooManyArguments
	// ArgumentTypeMismatch: an argument at Index could not bind (neither
	// Equal nor coercible) to its parameter's realized (or partially
	// realized) type.
	ArgumentTypeMismatch
)

// Result is the outcome of binding one Signature against one argument
// list.
type Result struct {
	Outcome Outcome
	// Return is the realized return type, set only when Outcome is
	// Equivalence or Coercion.
	Return types.Type
	// Index is the offending argument position, set only when Outcome is
	// ArgumentTypeMismatch.
	Index int
	// MinArity/MaxArity report the violated bound, set only when Outcome
	// is TooFewArguments/TooManyArguments respectively.
	MinArity, MaxArity int
	// Expected is the rendered "expected" type text for the mismatch at
	// Index, set only when Outcome is ArgumentTypeMismatch.
	Expected string
	// FirstSig/SecondSig are the two colliding signatures' display forms,
	// set only when Outcome is Ambiguous (Resolve only; Bind never
	// produces Ambiguous).
	FirstSig, SecondSig string
}

// Bind attempts to bind sig against args in two passes. The first pass
// infers every argument against its parameter position, left to right,
// building up sig's Environment; the second realizes each position and
// checks its argument for compatibility against it. Once any argument
// has required coercion, every subsequent argument is checked only for
// coercibility (not re-classified as Equivalence), and the whole result
// is reported as Coercion — matching the rule that a single signature's
// outcome is either fully Equivalence or (if anything coerced) Coercion.
func Bind(sig stdlib.Signature, args []types.Type) Result {
	min := sig.Required
	max := len(sig.Params)
	if len(args) < min {
		return Result{Outcome: TooFewArguments, MinArity: min}
	}
	if len(args) > max && !sig.Variadic {
		return Result{Outcome: TooManyArguments, MaxArity: max}
	}

	env := sig.Environment()

	// First pass: infer every type parameter from every argument,
	// left-to-right, before any compatibility check. This matches the
	// generic type system's rule that inference is independent of bind
	// order (first-write-wins is the only ordering sensitivity, and it is
	// already resolved left-to-right here).
	for i, arg := range args {
		param := paramAt(sig, i)
		gentype.Infer(env, param, arg)
	}

	coerced := false
	for i, arg := range args {
		param := paramAt(sig, i)
		realized, ok := gentype.Realize(env, param)
		if !ok {
			if types.IsUnion(arg) {
				// An indeterminate argument can stand in for any
				// unrealized parameter; accept and move on (step
				// 3).
				continue
			}
			return mismatch(env, param, i)
		}
		if arg.Equal(realized) {
			continue
		}
		if arg.IsCoercibleTo(realized) {
			coerced = true
			continue
		}
		return mismatch(env, param, i)
	}

	ret, ok := gentype.Realize(env, sig.Return)
	if !ok {
		// The return type references a parameter no argument pinned down;
		// the call's result type is indeterminate.
		ret = types.Union
	}

	outcome := Equivalence
	if coerced {
		outcome = Coercion
	}
	return Result{Outcome: outcome, Return: ret}
}

func paramAt(sig stdlib.Signature, i int) gentype.GFType {
	if sig.Variadic && i >= len(sig.Params) {
		return sig.Params[len(sig.Params)-1]
	}
	return sig.Params[i]
}

// mismatch builds the "expected" text: the backticked,
// partially-realized parameter type, plus a `where` clause for any
// type parameter that was referenced during this bind but never
// inferred (e.g. a constraint violation).
func mismatch(env *gentype.Environment, param gentype.GFType, index int) Result {
	expected := "`" + gentype.Partial(env, param).String() + "`"
	if where := gentype.WhereClause(env.UninferredReferenced()); where != "" {
		expected += " " + where
	}
	return Result{
		Outcome:  ArgumentTypeMismatch,
		Index:    index,
		Expected: expected,
	}
}
