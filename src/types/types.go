// Package types implements the C type system: representation, compatibility,
// conversion and size/alignment rules, and textual IR type names.
package types

import "fmt"

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Kind differentiates the variants of the Type tagged sum.
type Kind int

const (
	KVoid Kind = iota
	KBasic
	KPointer
	KArray
	KFunction
	KStruct
	KUnion
)

// Basic further tags arithmetic types: integer ranks and float ranks.
type Basic int

const (
	Char Basic = iota
	SChar
	UChar
	Short
	UShort
	Int
	UInt
	Long
	ULong
	LLong
	ULLong
	Bool
	Float
	Double
	LongDouble
)

// Type is a tagged sum over the C type variants named in spec.md §3. It is
// value-semantic: copying a Type is cheap. Go's == does not apply to it
// because Function carries a slice and Pointer/Array/Function carry
// pointers; compatibility between types is decided by Compatible.
type Type struct {
	kind    Kind
	basic   Basic       // valid when kind == KBasic
	elem    *Type       // pointee (KPointer) or element type (KArray)
	arrLen  *int        // array size, nil => incomplete
	ret     *Type       // function return type (KFunction)
	params  []Type      // function parameter types (KFunction); meaningful only when hasProto
	variadic bool       // KFunction: trailing ...
	hasProto bool       // KFunction: true if params/variadic are meaningful
	tag     string      // KStruct/KUnion tag identity
}

// ---------------------------------
// ----- Constructors (public) -----
// ---------------------------------

// Void is the C void type.
var Void = Type{kind: KVoid}

// NewBasic constructs a Type wrapping a Basic arithmetic kind.
func NewBasic(b Basic) Type { return Type{kind: KBasic, basic: b} }

// NewPointer constructs a pointer-to-t type.
func NewPointer(t Type) Type { return Type{kind: KPointer, elem: &t} }

// NewArray constructs an array-of-t type. A nil size denotes an incomplete
// array type per spec.md §3.
func NewArray(t Type, size *int) Type { return Type{kind: KArray, elem: &t, arrLen: size} }

// NewFunction constructs a function type. If hasProto is false the function
// is old-style/unprototyped and params/variadic are ignored.
func NewFunction(ret Type, params []Type, variadic bool, hasProto bool) Type {
	f := Type{kind: KFunction, ret: &ret, hasProto: hasProto}
	if hasProto {
		f.params = params
		f.variadic = variadic
	}
	return f
}

// NewStruct constructs a reference to the struct named by tag. The member
// layout lives in the Registry, not in the Type value itself.
func NewStruct(tag string) Type { return Type{kind: KStruct, tag: tag} }

// NewUnion constructs a reference to the union named by tag.
func NewUnion(tag string) Type { return Type{kind: KUnion, tag: tag} }

// -----------------------
// ----- Introspection ----
// -----------------------

func (t Type) Kind() Kind { return t.kind }
func (t Type) IsVoid() bool { return t.kind == KVoid }
func (t Type) IsBasic() bool { return t.kind == KBasic }
func (t Type) IsPointer() bool { return t.kind == KPointer }
func (t Type) IsArray() bool { return t.kind == KArray }
func (t Type) IsFunction() bool { return t.kind == KFunction }
func (t Type) IsStruct() bool { return t.kind == KStruct }
func (t Type) IsUnion() bool { return t.kind == KUnion }
func (t Type) IsAggregate() bool { return t.kind == KStruct || t.kind == KUnion }

// BasicKind returns the Basic tag of a KBasic type. Calling it on any other kind
// is a programming error and panics, matching spec.md §4.A's "programming
// error" policy for domain misuse.
func (t Type) BasicKind() Basic {
	if t.kind != KBasic {
		panic(fmt.Sprintf("types: BasicKind called on non-basic type %s", t))
	}
	return t.basic
}

// Elem returns the pointee/element type of a pointer or array type.
func (t Type) Elem() Type {
	if t.kind != KPointer && t.kind != KArray {
		panic(fmt.Sprintf("types: Elem called on %s", t))
	}
	return *t.elem
}

// ArrayLen returns the array length and whether it is known (complete).
func (t Type) ArrayLen() (int, bool) {
	if t.kind != KArray {
		panic(fmt.Sprintf("types: ArrayLen called on %s", t))
	}
	if t.arrLen == nil {
		return 0, false
	}
	return *t.arrLen, true
}

// Return returns a function type's return type.
func (t Type) Return() Type {
	if t.kind != KFunction {
		panic(fmt.Sprintf("types: Return called on %s", t))
	}
	return *t.ret
}

// Params returns a function type's parameter types and variadic flag. ok is
// false for an old-style/unprototyped function.
func (t Type) Params() (params []Type, variadic bool, ok bool) {
	if t.kind != KFunction {
		panic(fmt.Sprintf("types: Params called on %s", t))
	}
	return t.params, t.variadic, t.hasProto
}

// Tag returns a struct/union type's tag identifier.
func (t Type) Tag() string {
	if t.kind != KStruct && t.kind != KUnion {
		panic(fmt.Sprintf("types: Tag called on %s", t))
	}
	return t.tag
}

// IsInteger reports whether t is one of the integer Basic variants.
func (t Type) IsInteger() bool {
	return t.kind == KBasic && t.basic <= Bool
}

// IsFloat reports whether t is one of the floating Basic variants.
func (t Type) IsFloat() bool {
	return t.kind == KBasic && t.basic >= Float
}

// IsArithmetic reports whether t is an integer or float Basic type.
func (t Type) IsArithmetic() bool { return t.kind == KBasic }

// IsScalar reports whether t is arithmetic or a pointer, i.e. usable in a
// boolean/condition context.
func (t Type) IsScalar() bool { return t.IsArithmetic() || t.kind == KPointer }

// IsSigned reports whether an integer Basic type is signed.
func (t Type) IsSigned() bool {
	switch t.BasicKind() {
	case Char, SChar, Short, Int, Long, LLong:
		return true
	default:
		return false
	}
}

// String renders t the way a diagnostic would name it; not the IR name (see
// IRType for that).
func (t Type) String() string {
	switch t.kind {
	case KVoid:
		return "void"
	case KBasic:
		return basicNames[t.basic]
	case KPointer:
		return t.Elem().String() + "*"
	case KArray:
		if n, ok := t.ArrayLen(); ok {
			return fmt.Sprintf("%s[%d]", t.Elem().String(), n)
		}
		return t.Elem().String() + "[]"
	case KFunction:
		return t.Return().String() + "(...)"
	case KStruct:
		return "struct " + t.tag
	case KUnion:
		return "union " + t.tag
	default:
		return "<invalid type>"
	}
}

var basicNames = [...]string{
	Char:       "char",
	SChar:      "signed char",
	UChar:      "unsigned char",
	Short:      "short",
	UShort:     "unsigned short",
	Int:        "int",
	UInt:       "unsigned int",
	Long:       "long",
	ULong:      "unsigned long",
	LLong:      "long long",
	ULLong:     "unsigned long long",
	Bool:       "_Bool",
	Float:      "float",
	Double:     "double",
	LongDouble: "long double",
}
