// Package llverify implements the optional IR verifier (SPEC_FULL §4.K):
// a round-trip of the emitter's textual output through LLVM's own IR parser
// and module verifier, catching a malformed emission the hand-written
// emitter's own invariants didn't.
//
// The teacher links tinygo.org/x/go-llvm to generate IR directly from its
// own syntax tree (src/ir/llvm/transform.go); this package repurposes the
// same binding the other direction, parsing and verifying IR our emitter
// already produced as text rather than building it through the C API.
package llverify

import (
	"fmt"

	"tinygo.org/x/go-llvm"
)

// Verify parses irText as an LLVM IR module and runs LLVM's verifier over
// it, returning the first error encountered from either step.
func Verify(irText string) error {
	ctx := llvm.NewContext()
	defer ctx.Dispose()

	buf := llvm.NewMemoryBufferFromString(irText)
	mod, err := ctx.ParseIR(buf)
	if err != nil {
		return fmt.Errorf("llverify: parse error: %w", err)
	}
	defer mod.Dispose()

	if err := llvm.VerifyModule(mod, llvm.ReturnStatusAction); err != nil {
		return fmt.Errorf("llverify: module verification failed: %w", err)
	}
	return nil
}
