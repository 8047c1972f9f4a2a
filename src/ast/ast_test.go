package ast

import (
	"testing"

	"cc2ir/src/types"
)

// TestExprAnnotation checks that the Type()/SetType() annotation round-
// trips, since code generation depends on the analyzer having set it.
func TestExprAnnotation(t *testing.T) {
	v := &VarRef{Name: "x"}
	var e Expr = v
	e.SetType(types.NewBasic(types.Int))
	if e.Type().Kind() != types.KBasic {
		t.Errorf("Type() after SetType = %v, want KBasic", e.Type().Kind())
	}
}

// TestClosedSumExhaustive is a compile-time-flavored smoke test: every node
// kind must satisfy its marker interface without any dynamic casting.
func TestClosedSumExhaustive(t *testing.T) {
	exprs := []Expr{
		&IntLiteral{}, &FloatLiteral{}, &StringLiteral{}, &VarRef{},
		&BinaryExpr{}, &LogicalExpr{}, &UnaryExpr{}, &PostfixExpr{},
		&IndexExpr{}, &MemberExpr{}, &CallExpr{}, &CastExpr{},
		&AssignExpr{}, &CondExpr{}, &CommaExpr{}, &SizeofExpr{},
		&InitializerList{},
	}
	for _, e := range exprs {
		_ = e.Pos()
	}

	stmts := []Stmt{
		&BlockStmt{}, &DeclStmt{}, &ExprStmt{}, &NullStmt{}, &IfStmt{},
		&WhileStmt{}, &DoStmt{}, &ForStmt{}, &ReturnStmt{}, &BreakStmt{},
		&ContinueStmt{}, &SwitchStmt{}, &CaseStmt{}, &DefaultStmt{},
		&LabeledStmt{}, &GotoStmt{},
	}
	for _, s := range stmts {
		_ = s.Pos()
	}

	decls := []Decl{&VarDecl{}, &FuncDecl{}, &TagDecl{}}
	for _, d := range decls {
		_ = d.Pos()
	}
}

func TestBinOpForCompound(t *testing.T) {
	if BinOpForCompound(AddAssign) != Add {
		t.Error("AddAssign should map to Add")
	}
	if BinOpForCompound(OrAssign) != BitOr {
		t.Error("OrAssign should map to BitOr")
	}
}
