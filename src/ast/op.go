package ast

// BinOp enumerates binary operators that are not short-circuiting (those
// live on LogicalExpr instead, per spec.md §4.G's note that && and ||
// need separate code-gen treatment for laziness).
type BinOp int

const (
	Add BinOp = iota
	Sub
	Mul
	Div
	Mod
	Shl
	Shr
	BitAnd
	BitXor
	BitOr
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
)

var binOpNames = [...]string{
	Add: "+", Sub: "-", Mul: "*", Div: "/", Mod: "%",
	Shl: "<<", Shr: ">>", BitAnd: "&", BitXor: "^", BitOr: "|",
	Eq: "==", Ne: "!=", Lt: "<", Le: "<=", Gt: ">", Ge: ">=",
}

func (o BinOp) String() string { return binOpNames[o] }

// IsRelational reports whether o is a comparison operator (spec.md §4.D:
// "comparison yields Int carrying a 0/1 value").
func (o BinOp) IsRelational() bool { return o >= Eq && o <= Ge }

// LogicalOp enumerates the short-circuiting binary operators.
type LogicalOp int

const (
	LAnd LogicalOp = iota
	LOr
)

func (o LogicalOp) String() string {
	if o == LAnd {
		return "&&"
	}
	return "||"
}

// UnaryOp enumerates prefix unary operators.
type UnaryOp int

const (
	Plus    UnaryOp = iota // unary +
	Neg                    // unary -
	Not                    // logical !
	BitNot                 // ~
	AddrOf                 // &
	Deref                  // *
	PreInc                 // ++x
	PreDec                 // --x
)

var unaryOpNames = [...]string{
	Plus: "+", Neg: "-", Not: "!", BitNot: "~",
	AddrOf: "&", Deref: "*", PreInc: "++", PreDec: "--",
}

func (o UnaryOp) String() string { return unaryOpNames[o] }

// PostfixOp enumerates postfix operators (spec.md design note 9(c): these
// are handled by a dedicated PostfixExpr node, not folded into UnaryExpr).
type PostfixOp int

const (
	PostInc PostfixOp = iota
	PostDec
)

func (o PostfixOp) String() string {
	if o == PostInc {
		return "++"
	}
	return "--"
}

// AssignOp enumerates `=` and the compound assignment operators.
type AssignOp int

const (
	Assign AssignOp = iota
	AddAssign
	SubAssign
	MulAssign
	DivAssign
	ModAssign
	ShlAssign
	ShrAssign
	AndAssign
	XorAssign
	OrAssign
)

var assignOpNames = [...]string{
	Assign: "=", AddAssign: "+=", SubAssign: "-=", MulAssign: "*=", DivAssign: "/=",
	ModAssign: "%=", ShlAssign: "<<=", ShrAssign: ">>=", AndAssign: "&=", XorAssign: "^=", OrAssign: "|=",
}

func (o AssignOp) String() string { return assignOpNames[o] }

// BinOpForCompound returns the underlying arithmetic BinOp a compound
// assignment performs (e.g. AddAssign -> Add), used by code generation's
// "load, promote, compute, convert back, store" sequence.
func BinOpForCompound(o AssignOp) BinOp {
	switch o {
	case AddAssign:
		return Add
	case SubAssign:
		return Sub
	case MulAssign:
		return Mul
	case DivAssign:
		return Div
	case ModAssign:
		return Mod
	case ShlAssign:
		return Shl
	case ShrAssign:
		return Shr
	case AndAssign:
		return BitAnd
	case XorAssign:
		return BitXor
	case OrAssign:
		return BitOr
	default:
		panic("ast: BinOpForCompound called with plain Assign")
	}
}
