package types

import "fmt"

// irBasicName maps every Basic arithmetic variant to its textual IR type
// name (spec.md §4.A's ir_type): i1 for Bool, iN for integers of width N,
// float/double for floats (long double shares double's IR type, see
// DESIGN.md decision 3).
var irBasicName = [...]string{
	Bool:   "i1",
	Char:   "i8",
	SChar:  "i8",
	UChar:  "i8",
	Short:  "i16",
	UShort: "i16",
	Int:    "i32",
	UInt:   "i32",
	Long:   "i64",
	ULong:  "i64",
	LLong:  "i64",
	ULLong: "i64",
	Float:      "float",
	Double:     "double",
	LongDouble: "double",
}

// IRType returns the textual IR type name of t, per spec.md §4.A/§6's
// naming conventions: i1/i8/i16/i32/i64, float/double, <pointee>*,
// [<n> x <el>], or %tag for a completed aggregate.
func (r *Registry) IRType(t Type) string {
	switch t.Kind() {
	case KVoid:
		return "void"
	case KBasic:
		return irBasicName[t.BasicKind()]
	case KPointer:
		return r.IRType(t.Elem()) + "*"
	case KArray:
		n, ok := t.ArrayLen()
		if !ok {
			n = 0
		}
		return fmt.Sprintf("[%d x %s]", n, r.IRType(t.Elem()))
	case KStruct, KUnion:
		return "%" + t.Tag()
	case KFunction:
		panic("types: IRType called on function type; functions have no object IR type (invariant (e))")
	default:
		return "<invalid>"
	}
}

// IRTypeDecl renders the full `%tag = type { ... }` declaration for a
// completed struct/union, emitted once per tag at module start (spec.md
// §6). Returns "" if the tag is undeclared or incomplete.
func (r *Registry) IRTypeDecl(tag string) string {
	a := r.Lookup(tag)
	if a == nil || !a.Complete {
		return ""
	}
	if a.IsUnion {
		// A union is represented as a byte array sized to the largest
		// member, since LLVM has no native union type.
		size := r.Size(NewUnion(tag))
		return fmt.Sprintf("%%%s = type { [%d x i8] }", tag, size)
	}
	s := "%" + tag + " = type { "
	for i, m := range a.Members {
		if i > 0 {
			s += ", "
		}
		s += r.IRType(m.Type)
	}
	s += " }"
	return s
}
