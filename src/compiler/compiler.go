// Package compiler sequences the compilation phases spec.md §1 names: read
// source, lex/parse, analyze, generate IR, and optionally verify it. It is
// the library counterpart of cmd/cc2ir's CLI driver, grounded on the
// teacher's top-level run() function in its former src/main.go (lex/parse
// -> optimise -> codegen, with errors collected and reported per phase).
package compiler

import (
	"fmt"

	"cc2ir/src/ast"
	"cc2ir/src/codegen"
	"cc2ir/src/diag"
	"cc2ir/src/emit"
	"cc2ir/src/frontend"
	"cc2ir/src/llverify"
	"cc2ir/src/sema"
	"cc2ir/src/types"
)

// Options controls one compilation run.
type Options struct {
	Triple string // target triple; "" emits no `target triple` directive
	Verify bool   // round-trip the emitted IR through llverify
}

// Result is a successful compilation's output.
type Result struct {
	IR string
}

// Compile runs every phase over src in sequence, stopping at the first
// phase that reports a diagnostic (spec.md §7: "compilation aborts at the
// end of the phase" that produced errors).
func Compile(src string, opt Options) (*Result, []diag.Error, error) {
	tags := types.NewRegistry()
	diags := diag.NewBag()

	tu, err := frontend.Parse(src, tags)
	if err != nil {
		pos := ast.Pos{}
		msg := err.Error()
		if pe, ok := err.(*frontend.ParseError); ok {
			pos = ast.Pos{Line: pe.Line, Col: pe.Col}
			msg = pe.Msg
		}
		diags.Add(diag.Parse, pos, "%s", msg)
		return nil, diags.Errors(), fmt.Errorf("parsing failed")
	}

	sema.Analyze(tu, tags, diags)
	if diags.HasErrors() {
		return nil, diags.Errors(), fmt.Errorf("semantic analysis failed")
	}

	mod, err := generate(tu, tags, opt.Triple)
	if err != nil {
		return nil, nil, err
	}
	ir := mod.String()

	if opt.Verify {
		if err := llverify.Verify(ir); err != nil {
			return nil, nil, err
		}
	}

	return &Result{IR: ir}, nil, nil
}

// generate runs codegen.Generate with a recover, per SPEC_FULL.md §7:
// codegen panics on a contract violation (it is a programming-error
// signal, not a diagnosable source error) and that panic is recovered here
// into a fatal "compiler bug" error instead of crashing the CLI with a raw
// Go stack trace.
func generate(tu *ast.TranslationUnit, tags *types.Registry, triple string) (mod *emit.Module, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("compiler bug: %v", r)
		}
	}()
	mod = codegen.Generate(tu, tags, triple)
	return mod, nil
}
