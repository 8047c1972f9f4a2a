package sema

import (
	"testing"

	"cc2ir/src/ast"
	"cc2ir/src/diag"
	"cc2ir/src/types"
)

func newTU(decls ...ast.Decl) *ast.TranslationUnit {
	return &ast.TranslationUnit{Decls: decls}
}

func intT() types.Type { return types.NewBasic(types.Int) }

func TestReturnLiteralAnalyzes(t *testing.T) {
	ret := &ast.ReturnStmt{Value: &ast.IntLiteral{Value: 2}}
	body := &ast.BlockStmt{Stmts: []ast.Stmt{ret}}
	fn := &ast.FuncDecl{Name: "main", ReturnType: intT(), Body: body}
	tu := newTU(fn)

	diags := diag.NewBag()
	Analyze(tu, types.NewRegistry(), diags)

	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags.Errors())
	}
	if !tu.Analyzed {
		t.Fatal("expected tu.Analyzed to be true")
	}
	if ret.Value.Type().BasicKind() != types.Int {
		t.Errorf("expected literal 2 to type as Int, got %s", ret.Value.Type())
	}
}

func TestUndeclaredIdentifierIsError(t *testing.T) {
	ret := &ast.ReturnStmt{Value: &ast.VarRef{Name: "missing"}}
	fn := &ast.FuncDecl{Name: "main", ReturnType: intT(), Body: &ast.BlockStmt{Stmts: []ast.Stmt{ret}}}
	tu := newTU(fn)

	diags := diag.NewBag()
	Analyze(tu, types.NewRegistry(), diags)

	if !diags.HasErrors() {
		t.Fatal("expected an undeclared-identifier error")
	}
	if tu.Analyzed {
		t.Fatal("expected tu.Analyzed to be false after an error")
	}
}

func TestBreakOutsideLoopIsError(t *testing.T) {
	fn := &ast.FuncDecl{
		Name: "main", ReturnType: intT(),
		Body: &ast.BlockStmt{Stmts: []ast.Stmt{&ast.BreakStmt{}}},
	}
	tu := newTU(fn)

	diags := diag.NewBag()
	Analyze(tu, types.NewRegistry(), diags)
	if !diags.HasErrors() {
		t.Fatal("expected break-outside-loop to be an error")
	}
}

func TestDuplicateCaseIsError(t *testing.T) {
	sw := &ast.SwitchStmt{
		Tag: &ast.VarRef{Name: "x"},
		Body: &ast.BlockStmt{Stmts: []ast.Stmt{
			&ast.CaseStmt{Value: &ast.IntLiteral{Value: 1}, Stmt: &ast.NullStmt{}},
			&ast.CaseStmt{Value: &ast.IntLiteral{Value: 1}, Stmt: &ast.NullStmt{}},
		}},
	}
	fn := &ast.FuncDecl{
		Name: "main", ReturnType: intT(),
		Params: []ast.Param{{Name: "x", Type: intT()}},
		Body:   &ast.BlockStmt{Stmts: []ast.Stmt{sw}},
	}
	tu := newTU(fn)

	diags := diag.NewBag()
	Analyze(tu, types.NewRegistry(), diags)
	if !diags.HasErrors() {
		t.Fatal("expected duplicate case value to be an error")
	}
}

func TestUsualArithmeticConversionsAnnotated(t *testing.T) {
	bin := &ast.BinaryExpr{
		Op:    ast.Add,
		Left:  &ast.VarRef{Name: "a"},
		Right: &ast.FloatLiteral{Value: 1.5},
	}
	ret := &ast.ReturnStmt{Value: &ast.CastExpr{Target: types.NewBasic(types.Double), Operand: bin}}
	fn := &ast.FuncDecl{
		Name: "main", ReturnType: types.NewBasic(types.Double),
		Params: []ast.Param{{Name: "a", Type: intT()}},
		Body:   &ast.BlockStmt{Stmts: []ast.Stmt{ret}},
	}
	tu := newTU(fn)

	diags := diag.NewBag()
	Analyze(tu, types.NewRegistry(), diags)
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags.Errors())
	}
	if bin.Type().BasicKind() != types.Double {
		t.Errorf("expected int+double to type as Double, got %s", bin.Type())
	}
	if bin.LeftConvert.BasicKind() != types.Double || bin.RightConvert.BasicKind() != types.Double {
		t.Errorf("expected both operands converted to Double, got %s/%s", bin.LeftConvert, bin.RightConvert)
	}
}

func TestFoldConstArithmetic(t *testing.T) {
	e := &ast.BinaryExpr{
		Op:    ast.Mul,
		Left:  &ast.IntLiteral{Value: 3},
		Right: &ast.BinaryExpr{Op: ast.Add, Left: &ast.IntLiteral{Value: 2}, Right: &ast.IntLiteral{Value: 1}},
	}
	v, ok := FoldConst(e)
	if !ok || v != 9 {
		t.Errorf("expected 3*(2+1) == 9, got %d (ok=%v)", v, ok)
	}
}

func TestScopeRoundTripAcrossNestedBlocks(t *testing.T) {
	inner := &ast.DeclStmt{Decl: &ast.VarDecl{Name: "y", Type: intT()}}
	outer := &ast.BlockStmt{Stmts: []ast.Stmt{
		&ast.DeclStmt{Decl: &ast.VarDecl{Name: "x", Type: intT()}},
		&ast.BlockStmt{Stmts: []ast.Stmt{inner}},
		&ast.ReturnStmt{Value: &ast.VarRef{Name: "x"}},
	}}
	fn := &ast.FuncDecl{Name: "main", ReturnType: intT(), Body: outer}
	tu := newTU(fn)

	diags := diag.NewBag()
	Analyze(tu, types.NewRegistry(), diags)
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags.Errors())
	}
}
