package sema

import (
	"cc2ir/src/ast"
	"cc2ir/src/types"
)

// block analyzes a BlockStmt. ownScope is false only for a function's
// outermost body block, which reuses the Function scope symtab.EnterFunction
// already pushed rather than nesting an extra Block scope inside it.
func (a *Analyzer) block(b *ast.BlockStmt, ownScope bool) {
	if ownScope {
		a.Syms.EnterScope()
		defer a.Syms.ExitScope()
	}
	for _, s := range b.Stmts {
		a.stmt(s)
	}
}

func (a *Analyzer) stmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.BlockStmt:
		a.block(n, true)
	case *ast.DeclStmt:
		a.localDecl(n.Decl)
	case *ast.ExprStmt:
		a.expr(n.Expr)
	case *ast.NullStmt:
	case *ast.IfStmt:
		a.expr(n.Cond)
		a.requireScalar(n.Cond)
		a.stmt(n.Then)
		if n.Else != nil {
			a.stmt(n.Else)
		}
	case *ast.WhileStmt:
		a.expr(n.Cond)
		a.requireScalar(n.Cond)
		a.Syms.EnterLoop()
		a.stmt(n.Body)
		a.Syms.ExitLoop()
	case *ast.DoStmt:
		a.Syms.EnterLoop()
		a.stmt(n.Body)
		a.Syms.ExitLoop()
		a.expr(n.Cond)
		a.requireScalar(n.Cond)
	case *ast.ForStmt:
		a.Syms.EnterScope()
		if n.Init != nil {
			a.stmt(n.Init)
		}
		if n.Cond != nil {
			a.expr(n.Cond)
			a.requireScalar(n.Cond)
		}
		if n.Post != nil {
			a.expr(n.Post)
		}
		a.Syms.EnterLoop()
		a.stmt(n.Body)
		a.Syms.ExitLoop()
		a.Syms.ExitScope()
	case *ast.ReturnStmt:
		a.returnStmt(n)
	case *ast.BreakStmt:
		if !a.Syms.InLoop() && !a.Syms.InSwitch() {
			a.errorf(n.Pos(), "'break' statement not in a loop or switch")
		}
	case *ast.ContinueStmt:
		if !a.Syms.InLoop() {
			a.errorf(n.Pos(), "'continue' statement not in a loop")
		}
	case *ast.SwitchStmt:
		a.switchStmt(n)
	case *ast.CaseStmt:
		a.caseStmt(n)
	case *ast.DefaultStmt:
		if !a.Syms.InSwitch() {
			a.errorf(n.Pos(), "'default' label not within a switch statement")
		} else if err := a.Syms.AddCase(nil); err != nil {
			a.errorf(n.Pos(), "%s", err)
		}
		a.stmt(n.Stmt)
	case *ast.LabeledStmt:
		a.Syms.AddLabel(n.Name)
		a.stmt(n.Stmt)
	case *ast.GotoStmt:
		a.Syms.RequireLabel(n.Name)
	default:
		a.errorf(s.Pos(), "unsupported statement %T", s)
	}
}

func (a *Analyzer) requireScalar(e ast.Expr) {
	if !e.Type().IsScalar() {
		a.errorf(e.Pos(), "used %s where a scalar value was expected", e.Type())
	}
}

func (a *Analyzer) returnStmt(n *ast.ReturnStmt) {
	ret := a.Syms.ReturnType()
	if n.Value == nil {
		if !ret.IsVoid() {
			a.errorf(n.Pos(), "non-void function should return a value")
		}
		return
	}
	a.expr(n.Value)
	if ret.IsVoid() {
		a.errorf(n.Pos(), "void function should not return a value")
		return
	}
	if !types.CanAssign(n.Value.Type(), ret) {
		a.errorf(n.Pos(), "cannot return value of type %s from function returning %s", n.Value.Type(), ret)
	}
}

func (a *Analyzer) switchStmt(n *ast.SwitchStmt) {
	a.expr(n.Tag)
	if !n.Tag.Type().IsInteger() {
		a.errorf(n.Tag.Pos(), "switch quantity not an integer")
	}
	a.Syms.PushSwitch()
	a.stmt(n.Body)
	a.Syms.PopSwitch()
}

func (a *Analyzer) caseStmt(n *ast.CaseStmt) {
	if !a.Syms.InSwitch() {
		a.errorf(n.Pos(), "'case' label not within a switch statement")
		a.stmt(n.Stmt)
		return
	}
	v, ok := FoldConst(n.Value)
	if !ok {
		a.errorf(n.Value.Pos(), "case label does not reduce to an integer constant")
	} else {
		n.ConstValue = v
		if err := a.Syms.AddCase(&v); err != nil {
			a.errorf(n.Pos(), "%s", err)
		}
	}
	a.stmt(n.Stmt)
}
