// Package emit implements the Basic-Block Emitter of spec.md §4.F: a
// Module/Function/Block abstraction tracking the current block, inserting
// terminators, generating labels, and rendering textual IR. Structurally
// grounded on the teacher's src/ir/lir package (Create*-method-returns-
// Value builder shape, Module/Function/Block struct layout); the
// instruction set and textual syntax are retargeted from the teacher's
// custom assembly-oriented LIR to the LLVM-style textual conventions
// spec.md §6 names.
package emit

import (
	"fmt"
	"strings"
)

// Block is a basic block: a maximal instruction sequence with a single
// entry and, once closed, a single terminator (spec.md's Basic block
// glossary entry).
type Block struct {
	Label       string
	Instrs      []string
	Terminated  bool
}

// String renders the block's label and instructions as they appear in the
// module's textual IR.
func (b *Block) String() string {
	sb := strings.Builder{}
	sb.WriteString(b.Label)
	sb.WriteString(":\n")
	for _, in := range b.Instrs {
		sb.WriteString("  ")
		sb.WriteString(in)
		sb.WriteRune('\n')
	}
	if !b.Terminated {
		sb.WriteString(fmt.Sprintf("  ; error: block %s has no terminator\n", b.Label))
	}
	return sb.String()
}
