// Package sema implements the Semantic Analyzer of spec.md §4.E: a
// bottom-up expression-typing pass and a top-down statement/declaration
// walk over the AST, annotating it (result types, per-operand conversion
// targets) and validating the control-flow and scoping discipline spec.md
// §4.C names. Errors are collected in a diag.Bag rather than returned
// individually, so that analysis can continue past the first error within
// a declaration (spec.md §7: "analysis errors are collected until a
// statement boundary").
package sema

import (
	"cc2ir/src/ast"
	"cc2ir/src/diag"
	"cc2ir/src/symtab"
	"cc2ir/src/types"
)

// Analyzer holds the state threaded through one translation unit's
// analysis: the scope tree (which also tracks the enclosing loops and
// switches), the struct/union tag registry, and the diagnostic sink.
type Analyzer struct {
	Syms  *symtab.Table
	Tags  *types.Registry
	Diags *diag.Bag
}

// NewAnalyzer returns an analyzer sharing the given tag registry and
// diagnostic bag (both typically owned by the caller, which also hands
// them to src/emit and src/codegen).
func NewAnalyzer(tags *types.Registry, diags *diag.Bag) *Analyzer {
	return &Analyzer{Syms: symtab.NewTable(), Tags: tags, Diags: diags}
}

// Analyze runs the full pass over tu, setting tu.Analyzed when no errors
// were collected (spec.md §3's "analyzed flag marks the invariant that
// code generation requires").
func Analyze(tu *ast.TranslationUnit, tags *types.Registry, diags *diag.Bag) *Analyzer {
	a := NewAnalyzer(tags, diags)
	for _, d := range tu.Decls {
		a.topDecl(d)
	}
	tu.Analyzed = !diags.HasErrors()
	return a
}

func (a *Analyzer) errorf(pos ast.Pos, format string, args ...interface{}) {
	a.Diags.Add(diag.Sema, pos, format, args...)
}
