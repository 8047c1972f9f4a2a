package types

// IsCompatible implements C's type compatibility (spec.md §4.A): identical
// basic types, pointers with compatible pointees, arrays with identical
// element types and matching known sizes, function types with matching
// return/parameter types where an unprototyped function is compatible with
// any argument list of the right count.
func IsCompatible(t1, t2 Type) bool {
	if t1.kind != t2.kind {
		return false
	}
	switch t1.kind {
	case KVoid:
		return true
	case KBasic:
		return t1.basic == t2.basic
	case KPointer:
		return IsCompatible(t1.Elem(), t2.Elem())
	case KArray:
		if !IsCompatible(t1.Elem(), t2.Elem()) {
			return false
		}
		n1, ok1 := t1.ArrayLen()
		n2, ok2 := t2.ArrayLen()
		if ok1 && ok2 {
			return n1 == n2
		}
		return true // one or both incomplete: compatible per spec.md §3(d)
	case KFunction:
		if !IsCompatible(t1.Return(), t2.Return()) {
			return false
		}
		p1, v1, ok1 := t1.Params()
		p2, v2, ok2 := t2.Params()
		if !ok1 || !ok2 {
			return true // an unprototyped side is compatible with any arglist
		}
		if v1 != v2 || len(p1) != len(p2) {
			return false
		}
		for i := range p1 {
			if !IsCompatible(p1[i], p2[i]) {
				return false
			}
		}
		return true
	case KStruct, KUnion:
		return t1.tag == t2.tag
	default:
		return false
	}
}

// CanAssign implements the assignment-conversion rules of spec.md §4.A:
// arithmetic→arithmetic always allowed; pointer→Bool; pointer→pointer if
// pointees are compatible; struct/union if identical tag.
func CanAssign(src, dst Type) bool {
	switch {
	case dst.IsArithmetic() && src.IsArithmetic():
		return true
	case dst.kind == KBasic && dst.basic == Bool && src.kind == KPointer:
		return true
	case dst.kind == KPointer && src.kind == KPointer:
		return IsCompatible(dst.Elem(), src.Elem()) || dst.Elem().IsVoid() || src.Elem().IsVoid()
	case dst.kind == KPointer && src.kind == KArray:
		return IsCompatible(dst.Elem(), src.Elem()) || dst.Elem().IsVoid()
	case (dst.kind == KStruct || dst.kind == KUnion) && dst.kind == src.kind:
		return dst.tag == src.tag
	default:
		return false
	}
}

// CanCast implements spec.md §4.A's can_cast: a superset of CanAssign that
// additionally allows integer↔pointer and function-pointer↔function-pointer
// conversions.
func CanCast(src, dst Type) bool {
	if CanAssign(src, dst) {
		return true
	}
	switch {
	case dst.IsInteger() && src.kind == KPointer:
		return true
	case dst.kind == KPointer && src.IsInteger():
		return true
	case dst.kind == KPointer && src.kind == KPointer:
		// Any pointer may be cast to any other pointer, including function
		// pointers, via an explicit cast (unlike the implicit CanAssign rule).
		return true
	default:
		return false
	}
}

// IntegerPromotions implements spec.md §4.A: any integer of rank < Int
// becomes Int if Int can represent all its values, otherwise UInt; larger
// ranks and floats are unchanged.
func IntegerPromotions(t Type) Basic {
	if t.IsFloat() {
		return t.BasicKind()
	}
	b := t.BasicKind()
	if Rank(b) >= Rank(Int) {
		return b
	}
	if fitsInInt(b) {
		return Int
	}
	return UInt
}

// fitsInInt reports whether every value representable by b also fits in a
// (signed) Int, i.e. whether promotion should target Int rather than UInt.
// The only sub-Int rank that doesn't fit is a hypothetical unsigned type as
// wide as Int itself; with the widths modeled here (char=8, short=16,
// int=32) every sub-Int rank always fits, but the check is kept general to
// honor spec.md invariant (b)'s "integer promotion always targets at least
// Int/UInt".
func fitsInInt(b Basic) bool {
	return BitWidth(b) < BitWidth(Int) || (BitWidth(b) == BitWidth(Int) && !IsUnsigned(b))
}

// UsualArithmeticConversions implements spec.md §4.A's six-case rule for
// two arithmetic types: long double beats double beats float; otherwise,
// after integer promotion, same-signedness picks the higher rank;
// different-signedness picks the unsigned type if its rank is >= the
// signed type's rank, else the signed type if it can represent every
// unsigned value, else the unsigned counterpart of the signed type.
func UsualArithmeticConversions(t1, t2 Type) Basic {
	if t1.IsFloat() || t2.IsFloat() {
		return dominantFloat(t1, t2)
	}
	b1 := IntegerPromotions(t1)
	b2 := IntegerPromotions(t2)
	if b1 == b2 {
		return b1
	}
	u1, u2 := IsUnsigned(b1), IsUnsigned(b2)
	if u1 == u2 {
		if Rank(b1) >= Rank(b2) {
			return b1
		}
		return b2
	}
	signed, unsigned := b1, b2
	if u1 {
		signed, unsigned = b2, b1
	}
	if Rank(unsigned) >= Rank(signed) {
		return unsigned
	}
	if BitWidth(signed) > BitWidth(unsigned) {
		return signed
	}
	return ToUnsigned(signed)
}

// dominantFloat picks the common float type per spec.md's "if either is
// long double, both become long double; else double; else float" rule. At
// least one of t1/t2 is a float type; an integer operand doesn't raise the
// result beyond Float.
func dominantFloat(t1, t2 Type) Basic {
	best := Float
	if t1.IsFloat() && t1.BasicKind() > best {
		best = t1.BasicKind()
	}
	if t2.IsFloat() && t2.BasicKind() > best {
		best = t2.BasicKind()
	}
	return best
}

// CanRepresent reports whether the integer Basic type target can hold value
// without truncation, used for constant-narrowing checks (case labels,
// initializers). target must be an integer type; passing a float target is
// a programming error per spec.md §4.A.
func CanRepresent(target Basic, value int64) bool {
	if target >= Float {
		panic("types: CanRepresent called with non-integer target")
	}
	w := BitWidth(target)
	if IsUnsigned(target) {
		if value < 0 {
			return false
		}
		if w >= 64 {
			return true
		}
		return uint64(value) < uint64(1)<<uint(w)
	}
	if w >= 64 {
		return true
	}
	lo := -(int64(1) << uint(w-1))
	hi := int64(1)<<uint(w-1) - 1
	return value >= lo && value <= hi
}

// CanRepresentFloat reports whether target can hold every value source can,
// used when widening float constants (e.g. float -> double is always safe;
// double -> float may lose precision and is flagged by callers that care).
func CanRepresentFloat(target, source Basic) bool {
	return target >= source
}
