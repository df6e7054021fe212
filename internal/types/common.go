package types

// CommonType computes the common type of a and b, returning
// (type, true) on success or (nil, false) if no common type exists.
//
//   - If either side is Union, the other side wins.
//   - If either side is None, the other side's optional form wins.
//   - If a coerces to b, b wins (and symmetrically).
//   - If both are compound of the same outer kind, recurse into the
//     element/key/value positions and reconstruct.
func CommonType(a, b Type) (Type, bool) {
	if IsUnion(b) {
		return a, true
	}
	if IsUnion(a) {
		return b, true
	}
	if IsNone(b) {
		return a.Optional(), true
	}
	if IsNone(a) {
		return b.Optional(), true
	}
	if b.IsCoercibleTo(a) {
		return a, true
	}
	if a.IsCoercibleTo(b) {
		return b, true
	}
	if ty, ok := commonCompound(a, b); ok {
		return ty, true
	}
	return nil, false
}

// commonCompound reconstructs the outer shape if both sides share one
// and their positions have a common type.
func commonCompound(a, b Type) (Type, bool) {
	switch av := a.(type) {
	case Array:
		bv, ok := b.(Array)
		if !ok {
			return nil, false
		}
		elem, ok := CommonType(av.Element, bv.Element)
		if !ok {
			return nil, false
		}
		return Array{Element: elem, NonEmpty: av.NonEmpty && bv.NonEmpty, Opt: av.Opt}, true
	case Pair:
		bv, ok := b.(Pair)
		if !ok {
			return nil, false
		}
		left, ok := CommonType(av.Left, bv.Left)
		if !ok {
			return nil, false
		}
		right, ok := CommonType(av.Right, bv.Right)
		if !ok {
			return nil, false
		}
		return Pair{Left: left, Right: right, Opt: av.Opt}, true
	case Map:
		bv, ok := b.(Map)
		if !ok {
			return nil, false
		}
		key, ok := CommonType(av.Key, bv.Key)
		if !ok {
			return nil, false
		}
		val, ok := CommonType(av.Value, bv.Value)
		if !ok {
			return nil, false
		}
		return Map{Key: key, Value: val, Opt: av.Opt}, true
	default:
		return nil, false
	}
}

// Promote applies scope-exit promotion to a type:
//
//	promote(T, Scatter)     = Array[T] (non_empty=false)
//	promote(T, Conditional) = T.optional()
//
// Call types are promoted at the CallType level (see CallType.Promote),
// which promotes each output individually rather than the call type
// itself; this function handles the plain-Type case used for ordinary
// declarations.
func Promote(t Type, kind PromotionKind) Type {
	switch kind {
	case Scatter:
		return Array{Element: t, NonEmpty: false}
	case Conditional:
		return t.Optional()
	default:
		return t
	}
}
