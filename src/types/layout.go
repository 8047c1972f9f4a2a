package types

// pointerSize/pointerAlign implement spec.md §3 invariant (c): "pointer
// types are 8 bytes and 8-aligned".
const pointerSize = 8
const pointerAlign = 8

var basicSize = [...]int{
	Char: 1, SChar: 1, UChar: 1, Bool: 1,
	Short: 2, UShort: 2,
	Int: 4, UInt: 4,
	Long: 8, ULong: 8,
	LLong: 8, ULLong: 8,
	Float: 4, Double: 8, LongDouble: 8, // no native 80/128-bit float IR type (DESIGN.md decision 3)
}

// Size returns the size in bytes of t. Struct layout follows natural
// alignment with trailing padding to the largest member alignment; union
// size is the max member size rounded up to the union's alignment.
func (r *Registry) Size(t Type) int {
	switch t.Kind() {
	case KVoid:
		return 0
	case KBasic:
		return basicSize[t.BasicKind()]
	case KPointer:
		return pointerSize
	case KArray:
		n, ok := t.ArrayLen()
		if !ok {
			return 0
		}
		return n * r.Size(t.Elem())
	case KFunction:
		panic("types: Size called on function type")
	case KStruct, KUnion:
		a := r.Lookup(t.Tag())
		if a == nil || !a.Complete {
			panic("types: Size called on incomplete aggregate " + t.Tag())
		}
		if a.IsUnion {
			max := 0
			for _, m := range a.Members {
				if s := r.Size(m.Type); s > max {
					max = s
				}
			}
			return alignUp(max, r.Align(t))
		}
		off := 0
		for _, m := range a.Members {
			off = alignUp(off, r.Align(m.Type))
			off += r.Size(m.Type)
		}
		return alignUp(off, r.Align(t))
	default:
		return 0
	}
}

// Align returns the required alignment in bytes of t.
func (r *Registry) Align(t Type) int {
	switch t.Kind() {
	case KVoid:
		return 1
	case KBasic:
		return basicSize[t.BasicKind()]
	case KPointer:
		return pointerAlign
	case KArray:
		return r.Align(t.Elem())
	case KStruct, KUnion:
		a := r.Lookup(t.Tag())
		if a == nil {
			panic("types: Align called on undeclared aggregate " + t.Tag())
		}
		max := 1
		for _, m := range a.Members {
			if al := r.Align(m.Type); al > max {
				max = al
			}
		}
		return max
	default:
		return 1
	}
}

func alignUp(off, align int) int {
	if align <= 1 {
		return off
	}
	rem := off % align
	if rem == 0 {
		return off
	}
	return off + (align - rem)
}
