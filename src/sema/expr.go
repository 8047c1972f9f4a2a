package sema

import (
	"cc2ir/src/ast"
	"cc2ir/src/types"
)

// expr analyzes e bottom-up: children first, then the node's own result
// type and per-operand conversion targets, per spec.md §4.D/4.E.
func (a *Analyzer) expr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.IntLiteral:
		n.SetType(types.NewBasic(intLiteralBasic(n)))
	case *ast.FloatLiteral:
		if n.IsSingle {
			n.SetType(types.NewBasic(types.Float))
		} else {
			n.SetType(types.NewBasic(types.Double))
		}
	case *ast.StringLiteral:
		size := len(n.Value) + 1
		n.SetType(types.NewArray(types.NewBasic(types.Char), &size))
	case *ast.VarRef:
		a.varRef(n)
	case *ast.BinaryExpr:
		a.binaryExpr(n)
	case *ast.LogicalExpr:
		a.expr(n.Left)
		a.expr(n.Right)
		a.requireScalar(n.Left)
		a.requireScalar(n.Right)
		n.SetType(types.NewBasic(types.Int))
	case *ast.UnaryExpr:
		a.unaryExpr(n)
	case *ast.PostfixExpr:
		a.postfixExpr(n)
	case *ast.IndexExpr:
		a.indexExpr(n)
	case *ast.MemberExpr:
		a.memberExpr(n)
	case *ast.CallExpr:
		a.callExpr(n)
	case *ast.CastExpr:
		a.expr(n.Operand)
		if !types.CanCast(n.Operand.Type(), n.Target) {
			a.errorf(n.Pos(), "invalid cast from %s to %s", n.Operand.Type(), n.Target)
		}
		n.SetType(n.Target)
	case *ast.AssignExpr:
		a.assignExpr(n)
	case *ast.CondExpr:
		a.condExpr(n)
	case *ast.CommaExpr:
		a.expr(n.Left)
		a.expr(n.Right)
		n.SetType(n.Right.Type())
	case *ast.SizeofExpr:
		a.sizeofExpr(n)
	case *ast.InitializerList:
		for _, el := range n.Elements {
			a.expr(el)
		}
	default:
		a.errorf(e.Pos(), "unsupported expression %T", e)
	}
}

func intLiteralBasic(n *ast.IntLiteral) types.Basic {
	v := int64(n.Value)
	switch {
	case n.IsUnsigned:
		if types.CanRepresent(types.UInt, v) {
			return types.UInt
		}
		if types.CanRepresent(types.ULong, v) {
			return types.ULong
		}
		return types.ULLong
	default:
		if types.CanRepresent(types.Int, v) {
			return types.Int
		}
		if types.CanRepresent(types.Long, v) {
			return types.Long
		}
		return types.LLong
	}
}

func (a *Analyzer) varRef(n *ast.VarRef) {
	t, ok := a.Syms.SymbolType(n.Name)
	if !ok {
		a.errorf(n.Pos(), "use of undeclared identifier %q", n.Name)
		n.SetType(types.NewBasic(types.Int))
		return
	}
	n.SetType(t)
}

func (a *Analyzer) binaryExpr(n *ast.BinaryExpr) {
	a.expr(n.Left)
	a.expr(n.Right)
	lt, rt := n.Left.Type(), n.Right.Type()

	if lt.IsPointer() && rt.IsInteger() && (n.Op == ast.Add || n.Op == ast.Sub) {
		n.LeftConvert, n.RightConvert = lt, rt
		n.SetType(lt)
		return
	}
	if rt.IsPointer() && lt.IsInteger() && n.Op == ast.Add {
		n.LeftConvert, n.RightConvert = lt, rt
		n.SetType(rt)
		return
	}
	if lt.IsPointer() && rt.IsPointer() && n.Op == ast.Sub {
		n.LeftConvert, n.RightConvert = lt, rt
		n.SetType(types.NewBasic(types.Long))
		return
	}
	if lt.IsPointer() && rt.IsPointer() && n.Op.IsRelational() {
		n.LeftConvert, n.RightConvert = lt, rt
		n.SetType(types.NewBasic(types.Int))
		return
	}
	if !lt.IsArithmetic() || !rt.IsArithmetic() {
		a.errorf(n.Pos(), "invalid operands to binary %s (%s and %s)", n.Op, lt, rt)
		n.SetType(types.NewBasic(types.Int))
		return
	}
	common := types.NewBasic(types.UsualArithmeticConversions(lt, rt))
	n.LeftConvert, n.RightConvert = common, common
	if n.Op.IsRelational() {
		n.SetType(types.NewBasic(types.Int))
	} else {
		n.SetType(common)
	}
}

func (a *Analyzer) unaryExpr(n *ast.UnaryExpr) {
	switch n.Op {
	case ast.AddrOf:
		a.expr(n.Operand)
		if !isLvalue(n.Operand) {
			a.errorf(n.Pos(), "cannot take the address of an rvalue")
		}
		n.SetType(types.NewPointer(n.Operand.Type()))
	case ast.Deref:
		a.expr(n.Operand)
		if !n.Operand.Type().IsPointer() {
			a.errorf(n.Pos(), "indirection requires pointer operand (%s invalid)", n.Operand.Type())
			n.SetType(types.NewBasic(types.Int))
			return
		}
		n.SetType(n.Operand.Type().Elem())
	case ast.PreInc, ast.PreDec:
		a.expr(n.Operand)
		if !isLvalue(n.Operand) {
			a.errorf(n.Pos(), "expression is not assignable")
		}
		n.SetType(n.Operand.Type())
	case ast.Not:
		a.expr(n.Operand)
		a.requireScalar(n.Operand)
		n.SetType(types.NewBasic(types.Int))
	default: // Plus, Neg, BitNot
		a.expr(n.Operand)
		if !n.Operand.Type().IsArithmetic() {
			a.errorf(n.Pos(), "invalid argument type %s to unary expression", n.Operand.Type())
			n.SetType(types.NewBasic(types.Int))
			return
		}
		promoted := types.NewBasic(types.IntegerPromotions(n.Operand.Type()))
		if n.Operand.Type().IsFloat() {
			promoted = n.Operand.Type()
		}
		n.OperandConvert = promoted
		n.SetType(promoted)
	}
}

func (a *Analyzer) postfixExpr(n *ast.PostfixExpr) {
	a.expr(n.Operand)
	if !isLvalue(n.Operand) {
		a.errorf(n.Pos(), "expression is not assignable")
	}
	n.SetType(n.Operand.Type())
}

func (a *Analyzer) indexExpr(n *ast.IndexExpr) {
	a.expr(n.Array)
	a.expr(n.Index)
	if !n.Index.Type().IsInteger() {
		a.errorf(n.Index.Pos(), "array subscript is not an integer")
	}
	arrT := n.Array.Type()
	switch {
	case arrT.IsArray():
		n.SetType(arrT.Elem())
	case arrT.IsPointer():
		n.SetType(arrT.Elem())
	default:
		a.errorf(n.Pos(), "subscripted value is not an array or pointer")
		n.SetType(types.NewBasic(types.Int))
	}
}

func (a *Analyzer) memberExpr(n *ast.MemberExpr) {
	a.expr(n.Base)
	baseT := n.Base.Type()
	if n.Arrow {
		if !baseT.IsPointer() {
			a.errorf(n.Pos(), "member reference type %s is not a pointer", baseT)
			n.SetType(types.NewBasic(types.Int))
			return
		}
		baseT = baseT.Elem()
	}
	if !baseT.IsStruct() && !baseT.IsUnion() {
		a.errorf(n.Pos(), "member reference base type %s is not a struct or union", baseT)
		n.SetType(types.NewBasic(types.Int))
		return
	}
	m, _, ok := a.Tags.Member(baseT.Tag(), n.Field)
	if !ok {
		a.errorf(n.Pos(), "no member named %q in %s", n.Field, baseT)
		n.SetType(types.NewBasic(types.Int))
		return
	}
	n.SetType(m.Type)
}

func (a *Analyzer) callExpr(n *ast.CallExpr) {
	a.expr(n.Callee)
	for _, arg := range n.Args {
		a.expr(arg)
	}
	ft := n.Callee.Type()
	if ft.IsPointer() {
		ft = ft.Elem()
	}
	if !ft.IsFunction() {
		a.errorf(n.Pos(), "called object is not a function")
		n.SetType(types.NewBasic(types.Int))
		return
	}
	params, variadic, hasProto := ft.Params()
	n.ArgConvert = make([]types.Type, len(n.Args))
	if hasProto {
		if len(n.Args) < len(params) || (!variadic && len(n.Args) > len(params)) {
			a.errorf(n.Pos(), "wrong number of arguments to function call")
		}
		for i := range n.Args {
			if i < len(params) {
				if !types.CanAssign(n.Args[i].Type(), params[i]) {
					a.errorf(n.Args[i].Pos(), "incompatible argument %d type (%s to %s)", i+1, n.Args[i].Type(), params[i])
				}
				n.ArgConvert[i] = params[i]
			}
		}
	}
	n.SetType(ft.Return())
}

func (a *Analyzer) assignExpr(n *ast.AssignExpr) {
	a.expr(n.LHS)
	a.expr(n.RHS)
	if !isLvalue(n.LHS) {
		a.errorf(n.Pos(), "expression is not assignable")
	}
	lhsT := n.LHS.Type()
	if n.Op == ast.Assign {
		if !types.CanAssign(n.RHS.Type(), lhsT) {
			a.errorf(n.Pos(), "assigning to %s from incompatible type %s", lhsT, n.RHS.Type())
		}
		n.StoreConvert = lhsT
		n.SetType(lhsT)
		return
	}
	if !lhsT.IsArithmetic() || !n.RHS.Type().IsArithmetic() {
		a.errorf(n.Pos(), "invalid operands to %s (%s and %s)", n.Op, lhsT, n.RHS.Type())
		n.StoreConvert = lhsT
		n.SetType(lhsT)
		return
	}
	n.RHSConvert = types.NewBasic(types.UsualArithmeticConversions(lhsT, n.RHS.Type()))
	n.StoreConvert = lhsT
	n.SetType(lhsT)
}

func (a *Analyzer) condExpr(n *ast.CondExpr) {
	a.expr(n.Cond)
	a.requireScalar(n.Cond)
	a.expr(n.Then)
	a.expr(n.Else)
	tt, et := n.Then.Type(), n.Else.Type()
	switch {
	case tt.IsArithmetic() && et.IsArithmetic():
		common := types.NewBasic(types.UsualArithmeticConversions(tt, et))
		n.ThenConvert, n.ElseConvert = common, common
		n.SetType(common)
	case types.IsCompatible(tt, et):
		n.ThenConvert, n.ElseConvert = tt, et
		n.SetType(tt)
	case tt.IsPointer() && et.IsPointer():
		n.ThenConvert, n.ElseConvert = tt, et
		n.SetType(tt)
	default:
		a.errorf(n.Pos(), "incompatible operand types (%s and %s)", tt, et)
		n.SetType(tt)
	}
}

func (a *Analyzer) sizeofExpr(n *ast.SizeofExpr) {
	if n.ExprArg != nil {
		a.expr(n.ExprArg)
	}
	n.SetType(types.NewBasic(types.ULong))
}

// isLvalue reports whether e denotes an addressable location: a named
// variable, an array element, a struct/union member, or a pointer
// dereference (spec.md §4.E's "validates lvalueness where required").
func isLvalue(e ast.Expr) bool {
	switch n := e.(type) {
	case *ast.VarRef, *ast.IndexExpr, *ast.MemberExpr:
		return true
	case *ast.UnaryExpr:
		return n.Op == ast.Deref
	default:
		return false
	}
}
