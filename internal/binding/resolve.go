package binding

import (
	"github.com/stjude-rust-labs/wdlcore/internal/stdlib"
	"github.com/stjude-rust-labs/wdlcore/internal/types"
)

// Ambiguous is returned by Resolve when two or more signatures in the
// same precedence tier bind equally well. It is only ever produced by
// Resolve, never by Bind, hence its separate numbering from Outcome's
// other constants.
const Ambiguous Outcome = 100

type tierBind struct {
	sig    stdlib.Signature
	result Result
}

// Resolve implements polymorphic overload resolution: a global arity
// pre-check, then four precedence tiers in order (non-generic bound by
// Equivalence, non-generic bound by Coercion, generic bound by
// Equivalence, generic bound by Coercion), and finally a single
// aggregated ArgumentTypeMismatch if nothing bound in any tier.
func Resolve(fn stdlib.Function, args []types.Type) Result {
	sigs := fn.Signatures()
	minArity, maxArity := arityRange(sigs)
	if len(args) < minArity {
		return Result{Outcome: TooFewArguments, MinArity: minArity}
	}
	if len(args) > maxArity {
		return Result{Outcome: TooManyArguments, MaxArity: maxArity}
	}

	var mismatches []tierBind

	for _, generic := range []bool{false, true} {
		var equivalences []tierBind
		var coercions []tierBind
		for _, sig := range sigs {
			if sig.IsGeneric() != generic {
				continue
			}
			if len(args) < sig.Required || (len(args) > len(sig.Params) && !sig.Variadic) {
				// This particular overload's arity doesn't apply; it
				// simply isn't a candidate, not a mismatch to report.
				continue
			}
			r := Bind(sig, args)
			switch r.Outcome {
			case Equivalence:
				equivalences = append(equivalences, tierBind{sig, r})
			case Coercion:
				coercions = append(coercions, tierBind{sig, r})
			case ArgumentTypeMismatch:
				mismatches = append(mismatches, tierBind{sig, r})
			}
		}

		if len(equivalences) > 1 {
			return Result{Outcome: Ambiguous, FirstSig: equivalences[0].sig.Display(""), SecondSig: equivalences[1].sig.Display("")}
		}
		if len(equivalences) == 1 {
			return equivalences[0].result
		}
		if len(coercions) > 1 {
			return Result{Outcome: Ambiguous, FirstSig: coercions[0].sig.Display(""), SecondSig: coercions[1].sig.Display("")}
		}
		if len(coercions) == 1 {
			return coercions[0].result
		}
	}

	return aggregateMismatch(mismatches)
}

// aggregateMismatch reports the largest mismatched argument index, with
// `expected` the union of every mismatch's expected text at that index.
func aggregateMismatch(mismatches []tierBind) Result {
	if len(mismatches) == 0 {
		return Result{Outcome: ArgumentTypeMismatch, Index: 0, Expected: ""}
	}
	largest := mismatches[0].result.Index
	for _, m := range mismatches {
		if m.result.Index > largest {
			largest = m.result.Index
		}
	}
	var expected []string
	seen := map[string]bool{}
	for _, m := range mismatches {
		if m.result.Index != largest {
			continue
		}
		if seen[m.result.Expected] {
			continue
		}
		seen[m.result.Expected] = true
		expected = append(expected, m.result.Expected)
	}
	return Result{
		Outcome:  ArgumentTypeMismatch,
		Index:    largest,
		Expected: types.JoinAlternatives(expected),
	}
}

func arityRange(sigs []stdlib.Signature) (min, max int) {
	min = sigs[0].Required
	for _, s := range sigs {
		if s.Required < min {
			min = s.Required
		}
		n := len(s.Params)
		if s.Variadic {
			n = 1 << 30
		}
		if n > max {
			max = n
		}
	}
	return min, max
}
