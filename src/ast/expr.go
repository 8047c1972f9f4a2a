package ast

import "cc2ir/src/types"

// IntLiteral is a compile-time integer constant, e.g. 10 or 10u.
type IntLiteral struct {
	exprBase
	Value      uint64
	IsUnsigned bool
}

// FloatLiteral is a compile-time floating-point constant, e.g. 3.5 or 3.5f.
type FloatLiteral struct {
	exprBase
	Value    float64
	IsSingle bool // true when the source had an 'f'/'F' suffix
}

// StringLiteral is a string constant; its annotated Type is
// Array(Char, len+1).
type StringLiteral struct {
	exprBase
	Value string
}

// VarRef is a read of a named variable or function. The semantic analyzer
// resolves Name through src/symtab; spec.md testable property 4 requires
// HasSymbol(Name) hold at the point of reference.
type VarRef struct {
	exprBase
	Name string
}

// BinaryExpr is a non-short-circuiting binary operation. LeftConvert and
// RightConvert are the per-operand conversion targets the analyzer computes
// (spec.md §3's "the Type each operand must be converted to prior to the
// operation").
type BinaryExpr struct {
	exprBase
	Op                        BinOp
	Left, Right               Expr
	LeftConvert, RightConvert types.Type
}

// LogicalExpr is `&&`/`||`. Kept separate from BinaryExpr so code
// generation can give it the three-block short-circuit pattern spec.md
// §4.G describes; its operands are each converted to Bool for the
// condition test but the expression's own Type is always Int.
type LogicalExpr struct {
	exprBase
	Op          LogicalOp
	Left, Right Expr
}

// UnaryExpr is a prefix unary operation (+, -, !, ~, &, *, ++x, --x).
// OperandConvert is the conversion target for arithmetic operators (Neg,
// BitNot, Plus); it is the zero Type for &, *, and the inc/dec operators,
// which operate on the operand's own type.
type UnaryExpr struct {
	exprBase
	Op             UnaryOp
	Operand        Expr
	OperandConvert types.Type
}

// PostfixExpr is `x++`/`x--`.
type PostfixExpr struct {
	exprBase
	Op      PostfixOp
	Operand Expr
}

// IndexExpr is `a[i]`, after array-to-pointer decay where applicable.
type IndexExpr struct {
	exprBase
	Array, Index Expr
}

// MemberExpr is `s.m` (Arrow == false) or `p->m` (Arrow == true).
type MemberExpr struct {
	exprBase
	Base  Expr
	Field string
	Arrow bool
}

// CallExpr is a function call. ArgConvert[i] is the conversion target for
// Args[i] (only populated for prototyped parameters; variadic/unprototyped
// trailing arguments undergo only default argument promotions, recorded as
// the zero Type meaning "no extra conversion beyond promotion").
type CallExpr struct {
	exprBase
	Callee     Expr
	Args       []Expr
	ArgConvert []types.Type
}

// CastExpr is an explicit `(T) e`.
type CastExpr struct {
	exprBase
	Target  types.Type
	Operand Expr
}

// AssignExpr is `lhs = rhs` or a compound assignment `lhs op= rhs`. For a
// compound assignment, RHSConvert is the type the loaded LHS value and RHS
// are each promoted to before the underlying BinOp executes; StoreConvert
// is always the LHS's declared type, the conversion applied before the
// final store (spec.md §4.G).
type AssignExpr struct {
	exprBase
	Op           AssignOp
	LHS, RHS     Expr
	RHSConvert   types.Type
	StoreConvert types.Type
}

// CondExpr is the ternary `cond ? then : els`. ThenConvert/ElseConvert are
// the common-type conversion targets for each branch.
type CondExpr struct {
	exprBase
	Cond, Then, Else           Expr
	ThenConvert, ElseConvert   types.Type
}

// CommaExpr is `a, b`; its Type is always b's Type.
type CommaExpr struct {
	exprBase
	Left, Right Expr
}

// SizeofExpr is `sizeof(T)` or `sizeof expr`; its Type is always ULong.
// Exactly one of TypeArg/ExprArg is set.
type SizeofExpr struct {
	exprBase
	TypeArg *types.Type
	ExprArg Expr
}

// InitializerList is `{ e0, e1, ... }`, used to initialize arrays/structs.
type InitializerList struct {
	exprBase
	Elements []Expr
}
