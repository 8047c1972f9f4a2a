// Package codegen implements the Code Generator of spec.md §4.G: a single
// pass over the semantically-analyzed AST that drives src/emit, consulting
// the conversion annotations src/sema recorded and the Type System for IR
// type names and size/align queries. Per spec.md §5 the pass is strictly
// single-threaded; per Design Note 9, emitter state lives on an explicit
// *emit.Function handle threaded through every method rather than in
// package-level or thread-local state.
package codegen

import (
	"cc2ir/src/ast"
	"cc2ir/src/emit"
	"cc2ir/src/symtab"
	"cc2ir/src/types"
)

// Generator holds the state threaded through one translation unit's code
// generation: the tag registry (shared with src/sema so IR type names
// agree with the analyzed types), the module under construction, and the
// per-function break/continue target stack.
type Generator struct {
	Tags    *types.Registry
	Module  *emit.Module
	fn      *emit.Function
	targets *symtab.TargetStack
	switches []*switchFrame
}

// Generate lowers an analyzed translation unit to a textual IR module.
// Calling it on a tu whose Analyzed flag is false is a programming error
// per spec.md §4.G: "codegen assumes analysis succeeded."
func Generate(tu *ast.TranslationUnit, tags *types.Registry, triple string) *emit.Module {
	if !tu.Analyzed {
		panic("codegen: Generate called on a translation unit that failed semantic analysis")
	}
	g := &Generator{Tags: tags, Module: emit.NewModule(tags, triple)}
	for _, d := range tu.Decls {
		g.topDecl(d)
	}
	return g.Module
}

func (g *Generator) irType(t types.Type) string { return g.Tags.IRType(t) }
