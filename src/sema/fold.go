package sema

import "cc2ir/src/ast"

// FoldConst evaluates e as a compile-time integer constant expression, per
// spec.md §4.E: "constant folding is performed only where the language
// requires it: case labels, array sizes, static initializers." It handles
// the subset of expressions that may legally appear in those positions:
// integer literals, unary +/-/~/!, and the non-short-circuiting
// arithmetic/bitwise/comparison operators over already-foldable operands.
// sizeof is not folded here. ok is false when e is not a compile-time
// constant.
func FoldConst(e ast.Expr) (int64, bool) {
	switch n := e.(type) {
	case *ast.IntLiteral:
		return int64(n.Value), true
	case *ast.UnaryExpr:
		v, ok := FoldConst(n.Operand)
		if !ok {
			return 0, false
		}
		switch n.Op {
		case ast.Plus:
			return v, true
		case ast.Neg:
			return -v, true
		case ast.BitNot:
			return ^v, true
		case ast.Not:
			if v == 0 {
				return 1, true
			}
			return 0, true
		default:
			return 0, false
		}
	case *ast.SizeofExpr:
		// Folding sizeof(T) would need the tag registry, which FoldConst does
		// not have, so a SizeofExpr is reported as not constant.
		return 0, false
	case *ast.BinaryExpr:
		l, lok := FoldConst(n.Left)
		r, rok := FoldConst(n.Right)
		if !lok || !rok {
			return 0, false
		}
		return foldBinOp(n.Op, l, r)
	case *ast.CondExpr:
		c, ok := FoldConst(n.Cond)
		if !ok {
			return 0, false
		}
		if c != 0 {
			return FoldConst(n.Then)
		}
		return FoldConst(n.Else)
	case *ast.CastExpr:
		// An explicit cast to an integer type doesn't change a constant's
		// foldability; truncation to the target width is a codegen concern.
		return FoldConst(n.Operand)
	default:
		return 0, false
	}
}

func foldBinOp(op ast.BinOp, l, r int64) (int64, bool) {
	switch op {
	case ast.Add:
		return l + r, true
	case ast.Sub:
		return l - r, true
	case ast.Mul:
		return l * r, true
	case ast.Div:
		if r == 0 {
			return 0, false
		}
		return l / r, true
	case ast.Mod:
		if r == 0 {
			return 0, false
		}
		return l % r, true
	case ast.Shl:
		return l << uint(r), true
	case ast.Shr:
		return l >> uint(r), true
	case ast.BitAnd:
		return l & r, true
	case ast.BitOr:
		return l | r, true
	case ast.BitXor:
		return l ^ r, true
	case ast.Eq:
		return boolInt(l == r), true
	case ast.Ne:
		return boolInt(l != r), true
	case ast.Lt:
		return boolInt(l < r), true
	case ast.Le:
		return boolInt(l <= r), true
	case ast.Gt:
		return boolInt(l > r), true
	case ast.Ge:
		return boolInt(l >= r), true
	default:
		return 0, false
	}
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
