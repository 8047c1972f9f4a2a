package codegen

import (
	"fmt"

	"cc2ir/src/ast"
	"cc2ir/src/emit"
	"cc2ir/src/types"
	"cc2ir/src/value"
)

// expr generates code for e and returns its rvalue, per spec.md §4.G: emit
// the children, consult the recorded per-operand conversion types, insert
// the conversion instructions the annotations call for, then emit the
// operator itself.
func (g *Generator) expr(e ast.Expr) value.Value {
	switch n := e.(type) {
	case *ast.IntLiteral:
		return g.fn.Values.AddLiteral(fmt.Sprintf("%d", n.Value), n.Type())
	case *ast.FloatLiteral:
		return g.fn.Values.AddLiteral(fmt.Sprintf("%g", n.Value), n.Type())
	case *ast.StringLiteral:
		return g.fn.Values.AddLiteral(fmt.Sprintf("c%q", n.Value+"\x00"), n.Type())
	case *ast.VarRef:
		return g.load(g.addr(n), n.Type())
	case *ast.BinaryExpr:
		return g.binaryExpr(n)
	case *ast.LogicalExpr:
		return g.logicalExpr(n)
	case *ast.UnaryExpr:
		return g.unaryExpr(n)
	case *ast.PostfixExpr:
		return g.postfixExpr(n)
	case *ast.IndexExpr:
		return g.load(g.addr(n), n.Type())
	case *ast.MemberExpr:
		return g.load(g.addr(n), n.Type())
	case *ast.CallExpr:
		return g.callExpr(n)
	case *ast.CastExpr:
		v := g.expr(n.Operand)
		return g.convert(v, n.Target)
	case *ast.AssignExpr:
		return g.assignExpr(n)
	case *ast.CondExpr:
		return g.condExpr(n)
	case *ast.CommaExpr:
		g.expr(n.Left)
		return g.expr(n.Right)
	case *ast.SizeofExpr:
		return g.sizeofExpr(n)
	default:
		panic(fmt.Sprintf("codegen: unsupported expression %T", e))
	}
}

// addr generates the address of an lvalue expression, for use by load,
// store, and address-of.
func (g *Generator) addr(e ast.Expr) value.Value {
	switch n := e.(type) {
	case *ast.VarRef:
		v, ok := g.fn.Values.GetValue(n.Name)
		if !ok {
			panic("codegen: reference to undefined symbol " + n.Name + " (sema should have rejected this)")
		}
		return v
	case *ast.UnaryExpr:
		if n.Op != ast.Deref {
			panic("codegen: addr called on a non-lvalue unary expression")
		}
		return g.expr(n.Operand)
	case *ast.IndexExpr:
		return g.indexAddr(n)
	case *ast.MemberExpr:
		return g.memberAddr(n)
	default:
		panic(fmt.Sprintf("codegen: addr called on non-lvalue %T", e))
	}
}

func (g *Generator) load(addr value.Value, t types.Type) value.Value {
	return g.fn.Load(t, addr)
}

func (g *Generator) indexAddr(n *ast.IndexExpr) value.Value {
	elemT := n.Type()
	idx := g.expr(n.Index)
	arrT := n.Array.Type()
	if arrT.IsArray() {
		base := g.addr(n.Array)
		return g.fn.GEP(elemT, base, "0", idx.Name)
	}
	base := g.expr(n.Array) // pointer value, already decayed
	return g.fn.GEP(elemT, base, idx.Name)
}

func (g *Generator) memberAddr(n *ast.MemberExpr) value.Value {
	var baseAddr value.Value
	structT := n.Base.Type()
	if n.Arrow {
		baseAddr = g.expr(n.Base)
		structT = structT.Elem()
	} else {
		baseAddr = g.addr(n.Base)
	}
	_, offset, ok := g.Tags.Member(structT.Tag(), n.Field)
	if !ok {
		panic("codegen: member " + n.Field + " not found (sema should have rejected this)")
	}
	index := 0
	if agg := g.Tags.Lookup(structT.Tag()); agg != nil && !agg.IsUnion {
		for i, m := range agg.Members {
			if m.Name == n.Field {
				index = i
				break
			}
		}
		return g.fn.GEP(n.Type(), baseAddr, "0", fmt.Sprintf("%d", index))
	}
	_ = offset
	// Unions are represented as a byte array (src/types.IRTypeDecl); member
	// access bitcasts the base address to a pointer to the member type.
	return g.bitcastAddr(baseAddr, n.Type())
}

func (g *Generator) bitcastAddr(addr value.Value, target types.Type) value.Value {
	return g.fn.Cast("bitcast", types.NewPointer(target), addr)
}

func (g *Generator) binaryExpr(n *ast.BinaryExpr) value.Value {
	l := g.expr(n.Left)
	r := g.expr(n.Right)

	if n.Left.Type().IsPointer() || n.Right.Type().IsPointer() {
		return g.pointerArith(n, l, r)
	}

	l = g.convert(l, n.LeftConvert)
	r = g.convert(r, n.RightConvert)

	if n.Op.IsRelational() {
		mnemonic, pred := comparePred(n.Op, n.LeftConvert)
		cmp := g.fn.ICmp(mnemonic, pred, n.LeftConvert, l, r)
		return g.fn.Cast("zext", types.NewBasic(types.Int), cmp)
	}
	mnemonic := arithMnemonic(n.Op, n.LeftConvert)
	return g.fn.BinOp(mnemonic, n.LeftConvert, l, r)
}

func (g *Generator) pointerArith(n *ast.BinaryExpr, l, r value.Value) value.Value {
	if n.Left.Type().IsPointer() && n.Right.Type().IsPointer() {
		// p - p -> ptrtoint both sides, subtract, sdiv by element size.
		li := g.fn.Cast("ptrtoint", types.NewBasic(types.Long), l)
		ri := g.fn.Cast("ptrtoint", types.NewBasic(types.Long), r)
		return g.fn.BinOp("sub", types.NewBasic(types.Long), li, ri)
	}
	ptr, idx := l, r
	elemT := n.Left.Type().Elem()
	if n.Right.Type().IsPointer() {
		ptr, idx = r, l
		elemT = n.Right.Type().Elem()
	}
	if n.Op == ast.Sub && n.Right.Type().IsInteger() {
		neg := g.fn.UnaryMinus(idx.Type, idx)
		return g.fn.GEP(elemT, ptr, neg.Name)
	}
	return g.fn.GEP(elemT, ptr, idx.Name)
}

func comparePred(op ast.BinOp, t types.Type) (mnemonic, pred string) {
	mnemonic = "icmp"
	if t.IsFloat() {
		mnemonic = "fcmp"
	}
	switch op {
	case ast.Eq:
		pred = condName(t, "eq", "oeq")
	case ast.Ne:
		pred = condName(t, "ne", "one")
	case ast.Lt:
		pred = condName(t, signedName(t, "slt", "ult"), "olt")
	case ast.Le:
		pred = condName(t, signedName(t, "sle", "ule"), "ole")
	case ast.Gt:
		pred = condName(t, signedName(t, "sgt", "ugt"), "ogt")
	case ast.Ge:
		pred = condName(t, signedName(t, "sge", "uge"), "oge")
	}
	return
}

func condName(t types.Type, intName, floatName string) string {
	if t.IsFloat() {
		return floatName
	}
	return intName
}

func signedName(t types.Type, signed, unsigned string) string {
	if t.IsSigned() {
		return signed
	}
	return unsigned
}

func arithMnemonic(op ast.BinOp, t types.Type) string {
	isFloat := t.IsFloat()
	signed := t.IsSigned()
	switch op {
	case ast.Add:
		if isFloat {
			return "fadd"
		}
		return "add"
	case ast.Sub:
		if isFloat {
			return "fsub"
		}
		return "sub"
	case ast.Mul:
		if isFloat {
			return "fmul"
		}
		return "mul"
	case ast.Div:
		if isFloat {
			return "fdiv"
		}
		if signed {
			return "sdiv"
		}
		return "udiv"
	case ast.Mod:
		if signed {
			return "srem"
		}
		return "urem"
	case ast.Shl:
		return "shl"
	case ast.Shr:
		if signed {
			return "ashr"
		}
		return "lshr"
	case ast.BitAnd:
		return "and"
	case ast.BitOr:
		return "or"
	case ast.BitXor:
		return "xor"
	default:
		panic("codegen: arithMnemonic called with non-arithmetic op")
	}
}

// logicalExpr implements &&/||'s lazy evaluation as a three-block pattern:
// a short-circuit block that stores the lazy result without evaluating the
// right operand, a block that evaluates the right operand when reached, and
// a join block that loads the result back out of a stack slot (this
// emitter has no phi instruction, so a slot stands in for one).
func (g *Generator) logicalExpr(n *ast.LogicalExpr) value.Value {
	resultT := types.NewBasic(types.Int)
	slot := g.fn.Alloca("$logical", resultT)
	lhs := g.boolValue(n.Left)

	shortLabel := g.fn.NewLabel("logic.short")
	rhsLabel := g.fn.NewLabel("logic.rhs")
	endLabel := g.fn.NewLabel("logic.end")

	if n.Op == ast.LAnd {
		g.fn.CondBr(lhs.Name, rhsLabel, shortLabel)
	} else {
		g.fn.CondBr(lhs.Name, shortLabel, rhsLabel)
	}

	g.fn.OpenBlock(shortLabel)
	shortResult := "0"
	if n.Op == ast.LOr {
		shortResult = "1"
	}
	g.fn.Store(g.fn.Values.AddLiteral(shortResult, resultT), slot)
	g.fn.Br(endLabel)

	g.fn.OpenBlock(rhsLabel)
	rhs := g.boolValue(n.Right)
	g.fn.Store(g.fn.Cast("zext", resultT, rhs), slot)
	g.fn.Br(endLabel)

	g.fn.OpenBlock(endLabel)
	return g.fn.Load(resultT, slot)
}

// boolValue coerces e's value to an i1 by comparing against the type's
// zero value, the form every branch/loop condition needs.
func (g *Generator) boolValue(e ast.Expr) value.Value {
	v := g.expr(e)
	t := e.Type()
	switch {
	case t.IsFloat():
		zero := g.fn.Values.AddLiteral("0.0", t)
		return g.fn.ICmp("fcmp", "one", t, v, zero)
	case t.IsPointer():
		zero := g.fn.Values.AddLiteral("null", t)
		return g.fn.ICmp("icmp", "ne", t, v, zero)
	default:
		zero := g.fn.Values.AddLiteral("0", t)
		return g.fn.ICmp("icmp", "ne", t, v, zero)
	}
}

func (g *Generator) unaryExpr(n *ast.UnaryExpr) value.Value {
	switch n.Op {
	case ast.AddrOf:
		return g.addr(n.Operand)
	case ast.Deref:
		ptr := g.expr(n.Operand)
		return g.load(ptr, n.Type())
	case ast.Not:
		cond := g.boolValue(n.Operand)
		inv := g.fn.BinOp("xor", types.NewBasic(types.Bool), cond, g.fn.Values.AddLiteral("true", types.NewBasic(types.Bool)))
		return g.fn.Cast("zext", types.NewBasic(types.Int), inv)
	case ast.PreInc, ast.PreDec:
		addr := g.addr(n.Operand)
		old := g.load(addr, n.Operand.Type())
		updated := g.incDec(n.Operand.Type(), old, n.Op == ast.PreDec)
		g.fn.Store(updated, addr)
		return updated
	case ast.BitNot:
		v := g.convert(g.expr(n.Operand), n.OperandConvert)
		return g.fn.BitwiseNot(n.OperandConvert, v)
	case ast.Neg:
		v := g.convert(g.expr(n.Operand), n.OperandConvert)
		return g.fn.UnaryMinus(n.OperandConvert, v)
	default: // Plus
		return g.convert(g.expr(n.Operand), n.OperandConvert)
	}
}

func (g *Generator) postfixExpr(n *ast.PostfixExpr) value.Value {
	addr := g.addr(n.Operand)
	old := g.load(addr, n.Operand.Type())
	updated := g.incDec(n.Operand.Type(), old, n.Op == ast.PostDec)
	g.fn.Store(updated, addr)
	return old
}

// incDec computes old +/- 1, routing pointer operands through a GEP step
// of the pointee's size instead of an arithmetic instruction.
func (g *Generator) incDec(t types.Type, old value.Value, dec bool) value.Value {
	if t.IsPointer() {
		offset := "1"
		if dec {
			offset = "-1"
		}
		return g.fn.GEP(t.Elem(), old, offset)
	}
	if t.IsFloat() {
		one := g.fn.Values.AddLiteral("1.0", t)
		mnemonic := "fadd"
		if dec {
			mnemonic = "fsub"
		}
		return g.fn.BinOp(mnemonic, t, old, one)
	}
	one := g.fn.Values.AddLiteral("1", t)
	mnemonic := "add"
	if dec {
		mnemonic = "sub"
	}
	return g.fn.BinOp(mnemonic, t, old, one)
}

func (g *Generator) callExpr(n *ast.CallExpr) value.Value {
	callee, ok := n.Callee.(*ast.VarRef)
	if !ok {
		panic("codegen: calls through a function pointer expression are not supported")
	}
	args := make([]value.Value, len(n.Args))
	for i, argExpr := range n.Args {
		v := g.expr(argExpr)
		if i < len(n.ArgConvert) && !n.ArgConvert[i].IsVoid() {
			v = g.convert(v, n.ArgConvert[i])
		} else {
			v = g.defaultPromote(v, argExpr.Type())
		}
		args[i] = v
	}
	return g.fn.Call(n.Type(), callee.Name, args)
}

// defaultPromote applies C's default argument promotions to an argument
// passed where no prototype governs its type: float widens to double,
// integer ranks below int widen to int.
func (g *Generator) defaultPromote(v value.Value, t types.Type) value.Value {
	if t.IsFloat() {
		if t.BasicKind() != types.Double {
			return g.convert(v, types.NewBasic(types.Double))
		}
		return v
	}
	if t.IsInteger() {
		return g.convert(v, types.NewBasic(types.IntegerPromotions(t)))
	}
	return v
}

func (g *Generator) assignExpr(n *ast.AssignExpr) value.Value {
	addr := g.addr(n.LHS)
	if n.Op == ast.Assign {
		if list, ok := n.RHS.(*ast.InitializerList); ok {
			g.initAggregate(addr, n.StoreConvert, list)
			return g.fn.Load(n.StoreConvert, addr)
		}
		rhs := g.convert(g.expr(n.RHS), n.StoreConvert)
		g.fn.Store(rhs, addr)
		return rhs
	}
	old := g.convert(g.load(addr, n.LHS.Type()), n.RHSConvert)
	rhs := g.convert(g.expr(n.RHS), n.RHSConvert)
	mnemonic := arithMnemonic(ast.BinOpForCompound(n.Op), n.RHSConvert)
	result := g.fn.BinOp(mnemonic, n.RHSConvert, old, rhs)
	stored := g.convert(result, n.StoreConvert)
	g.fn.Store(stored, addr)
	return stored
}

// condExpr implements the ternary as a three-block pattern mirroring
// logicalExpr: both branches store into a shared slot, the join block
// loads it back out.
func (g *Generator) condExpr(n *ast.CondExpr) value.Value {
	resultT := n.Type()
	slot := g.fn.Alloca("$cond", resultT)
	cond := g.boolValue(n.Cond)

	thenLabel := g.fn.NewLabel("cond.then")
	elseLabel := g.fn.NewLabel("cond.else")
	endLabel := g.fn.NewLabel("cond.end")
	g.fn.CondBr(cond.Name, thenLabel, elseLabel)

	g.fn.OpenBlock(thenLabel)
	g.fn.Store(g.convert(g.expr(n.Then), resultT), slot)
	g.fn.Br(endLabel)

	g.fn.OpenBlock(elseLabel)
	g.fn.Store(g.convert(g.expr(n.Else), resultT), slot)
	g.fn.Br(endLabel)

	g.fn.OpenBlock(endLabel)
	return g.fn.Load(resultT, slot)
}

func (g *Generator) sizeofExpr(n *ast.SizeofExpr) value.Value {
	var t types.Type
	if n.TypeArg != nil {
		t = *n.TypeArg
	} else {
		t = n.ExprArg.Type()
	}
	return g.fn.Values.AddLiteral(fmt.Sprintf("%d", g.Tags.Size(t)), n.Type())
}

// initAggregate lowers a brace initializer into one GEP+store (or, for a
// nested brace, a recursive initAggregate) per element, per spec.md §4.G's
// aggregate-initialization lowering.
func (g *Generator) initAggregate(slot value.Value, t types.Type, list *ast.InitializerList) {
	switch {
	case t.IsArray():
		elemT := t.Elem()
		for i, el := range list.Elements {
			ptr := g.fn.GEP(elemT, slot, "0", fmt.Sprintf("%d", i))
			g.initElement(ptr, elemT, el)
		}
	case t.IsStruct():
		agg := g.Tags.Lookup(t.Tag())
		for i, el := range list.Elements {
			if i >= len(agg.Members) {
				break
			}
			memberT := agg.Members[i].Type
			ptr := g.fn.GEP(memberT, slot, "0", fmt.Sprintf("%d", i))
			g.initElement(ptr, memberT, el)
		}
	default:
		panic("codegen: brace initializer used on non-aggregate type")
	}
}

func (g *Generator) initElement(ptr value.Value, t types.Type, el ast.Expr) {
	if sub, ok := el.(*ast.InitializerList); ok {
		g.initAggregate(ptr, t, sub)
		return
	}
	g.fn.Store(g.convert(g.expr(el), t), ptr)
}

// convert inserts the conversion instruction target requires, if any, per
// spec.md §4.G's integer/float/pointer conversion rules. sema always sets a
// concrete conversion-target type on every annotated node, so target is
// never the zero Type here.
func (g *Generator) convert(v value.Value, target types.Type) value.Value {
	mnemonic := emit.ConvMnemonic(g.Tags, v.Type, target)
	if mnemonic == "" {
		return v
	}
	return g.fn.Cast(mnemonic, target, v)
}
