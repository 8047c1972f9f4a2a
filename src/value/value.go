// Package value implements the Value/Temporary Registry of spec.md §4.B: IR
// values with attached types, and the monotonic per-function naming
// discipline that SSA temporaries require.
package value

import (
	"fmt"

	"cc2ir/src/types"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Class classifies the storage of a Value.
type Class int

const (
	Immediate Class = iota // an SSA temporary result, e.g. %7
	StackSlot               // address of an automatic variable, an alloca
	Global                  // address of a module-level variable or function
	Function                // a callable function value
	Literal                 // a compile-time constant, not loadable/storable
)

// Value bundles a textual IR name, its Type, and its storage classification,
// per spec.md §3's "Values" data model.
type Value struct {
	Name  string
	Type  types.Type
	Class Class
}

// Loadable reports whether v denotes an address that can be the operand of
// a load instruction (StackSlot or Global).
func (v Value) Loadable() bool {
	return v.Class == StackSlot || v.Class == Global
}

// Storable reports whether v denotes an address that can be the destination
// of a store instruction (StackSlot or Global).
func (v Value) Storable() bool {
	return v.Class == StackSlot || v.Class == Global
}

// String renders the textual IR operand, e.g. "%7", "@foo", "42".
func (v Value) String() string {
	return v.Name
}

// IRRef renders the fully-typed operand form LLVM-style instructions use,
// e.g. "i32 %7".
func (v Value) IRRef(r *types.Registry) string {
	return fmt.Sprintf("%s %s", r.IRType(v.Type), v.Name)
}
