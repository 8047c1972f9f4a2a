package emit

import (
	"fmt"
	"strings"

	"cc2ir/src/types"
	"cc2ir/src/value"
)

// entryBlockSuffix is the fixed suffix spec.md §4.F names: "every function
// begins with an implicit entry block whose label equals the function name
// plus a fixed suffix."
const entryBlockSuffix = ".entry"

// Param is one function parameter as carried by the emitted IR signature.
type Param struct {
	Name string
	Type types.Type
}

// Function is the basic-block emitter's per-function state: the current
// block (or "closed", when Function.open is false and any further plain
// instruction is silently dropped), the ordered list of emitted blocks, and
// the Value Registry used to allocate %N names. Per Design Note 9, an
// *emit.Function handle is passed explicitly to every code-generating
// function rather than kept in package-level/thread-local state.
type Function struct {
	Module     *Module
	Name       string
	ReturnType types.Type
	Params     []Param
	Variadic   bool

	Values *value.Registry

	// ParamValues holds the raw incoming-argument Values, in declaration
	// order: named registers the LLVM call convention supplies directly,
	// each consuming a %N from the same monotonic sequence as every other
	// unnamed value the function defines. Code generation is responsible
	// for spilling each one to its parameter's stack slot.
	ParamValues []value.Value

	blocks []*Block
	cur    *Block
	open   bool
}

// NewFunction creates a function with the given signature, allocates the
// incoming parameter registers, and opens the implicit entry block.
func NewFunction(m *Module, name string, ret types.Type, params []Param, variadic bool) *Function {
	f := &Function{
		Module:     m,
		Name:       name,
		ReturnType: ret,
		Params:     params,
		Variadic:   variadic,
		Values:     m.Values,
	}
	f.Values.EnterFunction()
	f.ParamValues = make([]value.Value, len(params))
	for i, p := range params {
		f.ParamValues[i] = f.Values.NewTemp(p.Type)
	}
	f.OpenBlock(name + entryBlockSuffix)
	return f
}

// OpenBlock starts a new current block labeled label. A label introduction
// always reopens, regardless of whether the previous block was terminated
// (spec.md §4.F).
func (f *Function) OpenBlock(label string) *Block {
	b := &Block{Label: label}
	f.blocks = append(f.blocks, b)
	f.cur = b
	f.open = true
	return b
}

// Terminate installs instr as the current block's terminator (br, cond-br,
// ret, or switch) and closes the block. A second call before the next
// OpenBlock is a no-op, since a block may have only one terminator.
func (f *Function) Terminate(instr string) {
	if !f.open {
		return
	}
	f.cur.Instrs = append(f.cur.Instrs, instr)
	f.cur.Terminated = true
	f.open = false
}

// ChangeBlock installs terminator (if non-empty) on the current block, then
// opens label as the new current block — spec.md §4.F's combined
// change_block operation, convenient for the common "branch straight into
// the next block" case.
func (f *Function) ChangeBlock(label, terminator string) *Block {
	if terminator != "" {
		f.Terminate(terminator)
	}
	return f.OpenBlock(label)
}

// Emit appends a non-terminating instruction to the current block. If the
// current block is closed (following an unconditional terminator with no
// intervening label), the instruction is dead code and is silently
// dropped, per spec.md §4.F.
func (f *Function) Emit(instr string) {
	if !f.open {
		return
	}
	f.cur.Instrs = append(f.cur.Instrs, instr)
}

// IsOpen reports whether the current block can still receive instructions.
func (f *Function) IsOpen() bool { return f.open }

// deadResult returns a placeholder Value of type t without touching the
// Value Registry. Every name-allocating builder in this package calls it
// instead of Values.NewTemp when the current block is closed, so that name
// allocation and instruction emission happen atomically in both directions:
// dead code burns no %N, matching spec.md §8's dense-numbering property.
func (f *Function) deadResult(t types.Type) value.Value {
	return value.Value{Type: t}
}

// NewLabel allocates a fresh, function-unique label of the form
// "<category>.<n>", e.g. "iftrue.7", matching spec.md §4.B's new_local_name.
func (f *Function) NewLabel(category string) string {
	return fmt.Sprintf("%s.%d", category, f.Values.NewLocalName())
}

// Finish synthesizes a terminating `ret` if the last block is still open
// (spec.md §4.F: "Function exit synthesizes a terminating ret if the last
// block is still open; for the main function the synthesized return value
// is 0."). It returns nothing; String renders the function.
func (f *Function) Finish() {
	if f.open {
		if f.Name == "main" {
			f.Terminate(fmt.Sprintf("ret %s 0", f.Module.Types.IRType(f.ReturnType)))
		} else if f.ReturnType.IsVoid() {
			f.Terminate("ret void")
		} else {
			f.Terminate(fmt.Sprintf("ret %s undef", f.Module.Types.IRType(f.ReturnType)))
		}
	}
}

// String renders the full `define ...` for this function.
func (f *Function) String() string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("define %s @%s(", f.Module.Types.IRType(f.ReturnType), f.Name))
	for i, p := range f.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(f.Module.Types.IRType(p.Type))
		sb.WriteRune(' ')
		sb.WriteString(f.ParamValues[i].Name)
	}
	if f.Variadic {
		if len(f.Params) > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("...")
	}
	sb.WriteString(") {\n")
	for _, b := range f.blocks {
		sb.WriteString(b.String())
	}
	sb.WriteString("}\n")
	return sb.String()
}
