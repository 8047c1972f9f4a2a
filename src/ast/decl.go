package ast

import "cc2ir/src/types"

// VarDecl is a variable declaration, local or global. Init is nil when
// absent. IsExtern marks an `extern` declaration (no storage allocated
// here; spec.md §6 scenario S6).
type VarDecl struct {
	declBase
	Name     string
	Type     types.Type
	Init     Expr
	IsExtern bool
	IsStatic bool
}

// Param is one function parameter.
type Param struct {
	Name string
	Type types.Type
}

// FuncDecl is a function declaration or definition. Body is nil for a
// declaration-only prototype. FuncType always builds a prototyped function
// type; an empty parameter list is not treated as unprototyped.
type FuncDecl struct {
	declBase
	Name       string
	ReturnType types.Type
	Params     []Param
	Variadic   bool
	Body       *BlockStmt // nil => declaration only
}

// IsDefinition reports whether this FuncDecl carries a body.
func (f *FuncDecl) IsDefinition() bool { return f.Body != nil }

// FuncType returns the C function type this declaration denotes.
func (f *FuncDecl) FuncType() types.Type {
	ptypes := make([]types.Type, len(f.Params))
	for i, p := range f.Params {
		ptypes[i] = p.Type
	}
	return types.NewFunction(f.ReturnType, ptypes, f.Variadic, true)
}

// TagDecl declares or defines a struct/union tag. Members is nil for a
// forward (incomplete) declaration.
type TagDecl struct {
	declBase
	Tag     string
	IsUnion bool
	Members []types.Member
}
