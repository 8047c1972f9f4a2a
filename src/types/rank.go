package types

// rank gives the integer conversion rank used by usual_arithmetic_conversions
// and integer_promotions (spec.md §4.A). Signed/unsigned pairs of the same
// width share a rank; Bool has the lowest rank.
var rank = [...]int{
	Bool:   0,
	Char:   1,
	SChar:  1,
	UChar:  1,
	Short:  2,
	UShort: 2,
	Int:    3,
	UInt:   3,
	Long:   4,
	ULong:  4,
	LLong:  5,
	ULLong: 5,
}

// bitWidth gives the width in bits of every Basic integer type. Used by
// can_represent; size/align use basicSize in layout.go.
var bitWidth = [...]int{
	Bool:   8,
	Char:   8,
	SChar:  8,
	UChar:  8,
	Short:  16,
	UShort: 16,
	Int:    32,
	UInt:   32,
	Long:   64,
	ULong:  64,
	LLong:  64,
	ULLong: 64,
}

// unsignedCounterpart maps a signed integer Basic to its unsigned
// counterpart of the same width, used by the usual arithmetic conversions'
// "different signedness" cases.
var unsignedCounterpart = map[Basic]Basic{
	Char:  UChar,
	SChar: UChar,
	Short: UShort,
	Int:   UInt,
	Long:  ULong,
	LLong: ULLong,
}

// signedCounterpart is the inverse of unsignedCounterpart, used by ToSigned.
var signedCounterpart = map[Basic]Basic{
	UChar:  SChar,
	UShort: Short,
	UInt:   Int,
	ULong:  Long,
	ULLong: LLong,
}

// Rank returns the integer conversion rank of an integer Basic type.
func Rank(b Basic) int { return rank[b] }

// BitWidth returns the width in bits of an integer Basic type.
func BitWidth(b Basic) int { return bitWidth[b] }

// IsUnsigned reports whether an integer Basic type is unsigned.
func IsUnsigned(b Basic) bool {
	switch b {
	case UChar, UShort, UInt, ULong, ULLong, Bool:
		return true
	default:
		return false
	}
}

// ToUnsigned returns the unsigned counterpart of a signed integer Basic
// type of the same width; b itself if it is already unsigned.
func ToUnsigned(b Basic) Basic {
	if u, ok := unsignedCounterpart[b]; ok {
		return u
	}
	return b
}

// ToSigned returns the signed counterpart of an unsigned integer Basic type
// of the same width; b itself if it is already signed.
func ToSigned(b Basic) Basic {
	if s, ok := signedCounterpart[b]; ok {
		return s
	}
	return b
}

// PromoteOneRank bumps b to the next integer rank up, matching
// original_source's promote_one_rank helper. UsualArithmeticConversions
// does not call it; nothing in this module does.
func PromoteOneRank(b Basic) Basic {
	switch b {
	case Bool, Char, SChar, UChar:
		return Int
	case Short, UShort:
		return Int
	default:
		return b
	}
}
