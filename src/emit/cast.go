package emit

import (
	"fmt"

	"cc2ir/src/types"
	"cc2ir/src/value"
)

// Cast emits one of LLVM's conversion opcodes (sext, zext, trunc, sitofp,
// uitofp, fptosi, fptoui, fpext, fptrunc, bitcast, ptrtoint, inttoptr) and
// returns the converted result. mnemonic is chosen by the code generator
// from the source/target type pair per spec.md §4.A's conversion table;
// Cast itself only renders the instruction and allocates the result name.
func (f *Function) Cast(mnemonic string, dst types.Type, src value.Value) value.Value {
	if !f.open {
		return f.deadResult(dst)
	}
	srcIR := f.Module.Types.IRType(src.Type)
	dstIR := f.Module.Types.IRType(dst)
	res := f.Values.NewTemp(dst)
	f.Emit(fmt.Sprintf("%s = %s %s %s to %s", res.Name, mnemonic, srcIR, src.Name, dstIR))
	return res
}

// ConvMnemonic selects the LLVM conversion opcode for converting a value of
// type from to type to, per spec.md §4.A's conversion rules. Returns ""
// when from and to denote the same IR representation and no instruction is
// needed.
func ConvMnemonic(reg *types.Registry, from, to types.Type) string {
	if reg.IRType(from) == reg.IRType(to) {
		return ""
	}
	switch {
	case from.IsInteger() && to.IsInteger():
		if types.BitWidth(to.BasicKind()) > types.BitWidth(from.BasicKind()) {
			if from.IsSigned() {
				return "sext"
			}
			return "zext"
		}
		return "trunc"
	case from.IsInteger() && to.IsFloat():
		if from.IsSigned() {
			return "sitofp"
		}
		return "uitofp"
	case from.IsFloat() && to.IsInteger():
		if to.IsSigned() {
			return "fptosi"
		}
		return "fptoui"
	case from.IsFloat() && to.IsFloat():
		if to.BasicKind() > from.BasicKind() {
			return "fpext"
		}
		return "fptrunc"
	case from.IsPointer() && to.IsPointer():
		return "bitcast"
	case from.IsPointer() && to.IsInteger():
		return "ptrtoint"
	case from.IsInteger() && to.IsPointer():
		return "inttoptr"
	default:
		return "bitcast"
	}
}
