package emit

import (
	"fmt"

	"cc2ir/src/types"
	"cc2ir/src/value"
)

// Alloca registers and emits a stack slot for an automatic variable named
// name, returning its StackSlot Value (a pointer to t).
func (f *Function) Alloca(name string, t types.Type) value.Value {
	if !f.open {
		return f.Values.DeadLocal(name, t)
	}
	slot := f.Values.AddLocal(name, t)
	f.Emit(fmt.Sprintf("%s = alloca %s", slot.Name, f.Module.Types.IRType(t)))
	return slot
}

// Load emits a load from addr (which must be Loadable) and returns the
// loaded value.
func (f *Function) Load(elemType types.Type, addr value.Value) value.Value {
	if !f.open {
		return f.deadResult(elemType)
	}
	res := f.Values.NewTemp(elemType)
	irT := f.Module.Types.IRType(elemType)
	f.Emit(fmt.Sprintf("%s = load %s, %s %s", res.Name, irT, irT+"*", addr.Name))
	return res
}

// Store emits a store of val into addr (which must be Storable).
func (f *Function) Store(val, addr value.Value) {
	irT := f.Module.Types.IRType(val.Type)
	f.Emit(fmt.Sprintf("store %s %s, %s* %s", irT, val.Name, irT, addr.Name))
}

// GEP emits a getelementptr computing the address of an array element or
// struct member, returning a pointer Value to elemType.
func (f *Function) GEP(elemType types.Type, base value.Value, indices ...string) value.Value {
	if !f.open {
		return f.deadResult(types.NewPointer(elemType))
	}
	res := f.Values.NewTemp(types.NewPointer(elemType))
	baseElemT := f.Module.Types.IRType(elemType)
	sb := fmt.Sprintf("%s = getelementptr %s, %s %s", res.Name, baseElemT, f.Module.Types.IRType(base.Type), base.Name)
	for _, idx := range indices {
		sb += ", i32 " + idx
	}
	f.Emit(sb)
	return res
}

// Call emits a call instruction to callee with args, returning the result
// Value (void-typed if retType is void).
func (f *Function) Call(retType types.Type, callee string, args []value.Value) value.Value {
	if !f.open {
		return f.deadResult(retType)
	}
	irRet := f.Module.Types.IRType(retType)
	argList := ""
	for i, a := range args {
		if i > 0 {
			argList += ", "
		}
		argList += f.Module.Types.IRType(a.Type) + " " + a.Name
	}
	if retType.IsVoid() {
		f.Emit(fmt.Sprintf("call %s @%s(%s)", irRet, callee, argList))
		return value.Value{}
	}
	res := f.Values.NewTemp(retType)
	f.Emit(fmt.Sprintf("%s = call %s @%s(%s)", res.Name, irRet, callee, argList))
	return res
}
