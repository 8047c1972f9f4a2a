// Package ast implements the typed AST of spec.md §3/§4.D: a tree of
// declarations, statements, and expressions, each carrying post-analysis
// annotations (result type, per-operand conversion targets) the code
// generator consumes.
//
// Per Design Note 9, the tree is a closed tagged sum — three marker
// interfaces (Expr, Stmt, Decl), each implemented by a fixed set of node
// structs — rather than a single polymorphic node type. This gives
// exhaustiveness at every switch over node kind and needs no dynamic-cast
// idiom to recover, say, a *VarRef from an assignment's LHS Expr.
package ast

import (
	"fmt"

	"cc2ir/src/types"
)

// Pos is a source location, threaded from the frontend for diagnostics.
type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Col) }

// Expr is implemented by every node that produces a value. After a
// successful semantic analysis pass, Type() returns the node's annotated
// result type.
type Expr interface {
	exprNode()
	Pos() Pos
	Type() types.Type
	SetType(types.Type)
}

// exprBase is embedded by every Expr implementation; it carries the source
// position and the post-analysis result type annotation spec.md §3 names.
type exprBase struct {
	P          Pos
	resultType types.Type
}

func (e *exprBase) exprNode()            {}
func (e *exprBase) Pos() Pos             { return e.P }
func (e *exprBase) Type() types.Type     { return e.resultType }
func (e *exprBase) SetType(t types.Type) { e.resultType = t }

// Stmt is implemented by every statement node.
type Stmt interface {
	stmtNode()
	Pos() Pos
}

type stmtBase struct {
	P Pos
}

func (s *stmtBase) stmtNode() {}
func (s *stmtBase) Pos() Pos  { return s.P }

// Decl is implemented by every declaration node (top-level or local).
type Decl interface {
	declNode()
	Pos() Pos
}

type declBase struct {
	P Pos
}

func (d *declBase) declNode() {}
func (d *declBase) Pos() Pos  { return d.P }

// TranslationUnit is the root of the tree: an ordered list of top-level
// declarations (functions and global variables). Analyzed is set once a
// full semantic-analysis pass has succeeded; code generation requires it
// (spec.md §3's "analyzed flag marks the invariant that code generation
// requires").
type TranslationUnit struct {
	Decls    []Decl
	Analyzed bool
}
