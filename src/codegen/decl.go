package codegen

import (
	"fmt"

	"cc2ir/src/ast"
	"cc2ir/src/emit"
	"cc2ir/src/symtab"
	"cc2ir/src/types"
)

func (g *Generator) topDecl(d ast.Decl) {
	switch n := d.(type) {
	case *ast.TagDecl:
		if n.Members != nil {
			g.Module.DeclareTag(n.Tag)
		}
	case *ast.VarDecl:
		g.globalVar(n)
	case *ast.FuncDecl:
		g.funcDecl(n)
	default:
		panic(fmt.Sprintf("codegen: unsupported top-level declaration %T", d))
	}
}

func (g *Generator) globalVar(n *ast.VarDecl) {
	if n.IsExtern {
		g.Module.Values.AddGlobal(n.Name, n.Type, false)
		g.Module.AddGlobal(emit.GlobalVar{Name: n.Name, Type: n.Type})
		return
	}
	init := "zeroinitializer"
	if n.Init != nil {
		init = g.constInit(n.Init, n.Type)
	}
	g.Module.Values.AddGlobal(n.Name, n.Type, true)
	g.Module.AddGlobal(emit.GlobalVar{Name: n.Name, Type: n.Type, Init: init})
}

// constInit renders the textual constant initializer for a global, per
// spec.md §4.E's "initializers for global declarations must fold to a
// literal."
func (g *Generator) constInit(e ast.Expr, target types.Type) string {
	switch n := e.(type) {
	case *ast.FloatLiteral:
		return fmt.Sprintf("%g", n.Value)
	case *ast.InitializerList:
		parts := make([]string, len(n.Elements))
		elemT := target
		if target.IsArray() {
			elemT = target.Elem()
		}
		for i, el := range n.Elements {
			parts[i] = g.Tags.IRType(elemT) + " " + g.constInit(el, elemT)
		}
		s := "["
		for i, p := range parts {
			if i > 0 {
				s += ", "
			}
			s += p
		}
		return s + "]"
	default:
		if v, ok := foldInt(e); ok {
			return fmt.Sprintf("%d", v)
		}
		return "0"
	}
}

// foldInt duplicates src/sema's constant-integer folding for the narrow
// set of literal shapes a global initializer may take, avoiding an import
// cycle back into src/sema (which itself depends on nothing here, but
// keeping codegen's constant evaluation self-contained matches spec.md
// §4.E's separation between analysis-time and emission-time folding).
func foldInt(e ast.Expr) (int64, bool) {
	switch n := e.(type) {
	case *ast.IntLiteral:
		return int64(n.Value), true
	case *ast.UnaryExpr:
		v, ok := foldInt(n.Operand)
		if !ok {
			return 0, false
		}
		switch n.Op {
		case ast.Neg:
			return -v, true
		case ast.BitNot:
			return ^v, true
		default:
			return v, true
		}
	default:
		return 0, false
	}
}

func (g *Generator) funcDecl(n *ast.FuncDecl) {
	ft := n.FuncType()
	if !n.IsDefinition() {
		g.Module.Values.AddGlobal(n.Name, ft, false)
		return
	}
	g.Module.Values.AddGlobal(n.Name, ft, true)

	params := make([]emit.Param, len(n.Params))
	for i, p := range n.Params {
		params[i] = emit.Param{Name: p.Name, Type: p.Type}
	}
	g.fn = emit.NewFunction(g.Module, n.Name, n.ReturnType, params, n.Variadic)
	g.targets = symtab.NewTargetStack()

	for i, p := range n.Params {
		slot := g.fn.Alloca(p.Name, p.Type)
		g.fn.Store(g.fn.ParamValues[i], slot)
	}

	g.block(n.Body, false)
	g.fn.Finish()
	g.Module.AddFunction(g.fn)
	g.fn = nil
	g.targets = nil
}
