package emit

import (
	"fmt"

	"cc2ir/src/types"
	"cc2ir/src/value"
)

// BinOp emits `%N = op irtype a, b` and returns the fresh result temporary.
// resultType is the arithmetic type of a and b after usual arithmetic
// conversions (spec.md §4.A); op is the textual mnemonic the code generator
// selects (e.g. "add", "fadd", "sdiv", "urem").
func (f *Function) BinOp(op string, resultType types.Type, a, b value.Value) value.Value {
	if !f.open {
		return f.deadResult(resultType)
	}
	irT := f.Module.Types.IRType(resultType)
	res := f.Values.NewTemp(resultType)
	f.Emit(fmt.Sprintf("%s = %s %s %s, %s", res.Name, op, irT, a.Name, b.Name))
	return res
}

// ICmp emits an integer or floating comparison (`icmp`/`fcmp`) and returns
// an i1-typed result temporary.
func (f *Function) ICmp(mnemonic, pred string, operandType types.Type, a, b value.Value) value.Value {
	if !f.open {
		return f.deadResult(types.NewBasic(types.Bool))
	}
	irT := f.Module.Types.IRType(operandType)
	res := f.Values.NewTemp(types.NewBasic(types.Bool))
	f.Emit(fmt.Sprintf("%s = %s %s %s %s, %s", res.Name, mnemonic, pred, irT, a.Name, b.Name))
	return res
}

// UnaryMinus emits the negation of a, implemented as `sub 0, a` or
// `fsub -0.0, a` per the teacher's codegen convention (LLVM has no unary
// negate opcode).
func (f *Function) UnaryMinus(t types.Type, a value.Value) value.Value {
	if !f.open {
		return f.deadResult(t)
	}
	irT := f.Module.Types.IRType(t)
	res := f.Values.NewTemp(t)
	if t.IsFloat() {
		f.Emit(fmt.Sprintf("%s = fsub %s -0.0, %s", res.Name, irT, a.Name))
	} else {
		f.Emit(fmt.Sprintf("%s = sub %s 0, %s", res.Name, irT, a.Name))
	}
	return res
}

// BitwiseNot emits the one's-complement of a as `xor a, -1`.
func (f *Function) BitwiseNot(t types.Type, a value.Value) value.Value {
	if !f.open {
		return f.deadResult(t)
	}
	irT := f.Module.Types.IRType(t)
	res := f.Values.NewTemp(t)
	f.Emit(fmt.Sprintf("%s = xor %s %s, -1", res.Name, irT, a.Name))
	return res
}
