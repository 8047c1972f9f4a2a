package sema

import (
	"cc2ir/src/ast"
	"cc2ir/src/types"
)

// topDecl analyzes one top-level declaration (global variable, function,
// or tag).
func (a *Analyzer) topDecl(d ast.Decl) {
	switch n := d.(type) {
	case *ast.VarDecl:
		a.varDecl(n, true)
	case *ast.FuncDecl:
		a.funcDecl(n)
	case *ast.TagDecl:
		a.tagDecl(n)
	default:
		a.errorf(d.Pos(), "unsupported top-level declaration %T", d)
	}
}

// localDecl analyzes a declaration appearing inside a function body.
func (a *Analyzer) localDecl(d ast.Decl) {
	switch n := d.(type) {
	case *ast.VarDecl:
		a.varDecl(n, false)
	case *ast.TagDecl:
		a.tagDecl(n)
	default:
		a.errorf(d.Pos(), "declaration not permitted here")
	}
}

func (a *Analyzer) varDecl(n *ast.VarDecl, atGlobalScope bool) {
	if n.IsExtern {
		if err := a.Syms.AddExternDecl(n.Name, n.Type); err != nil {
			a.errorf(n.Pos(), "%s", err)
		}
		if n.Init != nil {
			a.errorf(n.Pos(), "'extern' declaration of %q may not have an initializer", n.Name)
		}
		return
	}
	if err := a.Syms.AddSymbol(n.Name, n.Type, true); err != nil {
		a.errorf(n.Pos(), "%s", err)
		return
	}
	if n.Init == nil {
		if atGlobalScope && n.Type.IsArray() {
			if _, ok := n.Type.ArrayLen(); !ok {
				a.errorf(n.Pos(), "array %q has incomplete type and no initializer", n.Name)
			}
		}
		return
	}
	if init, ok := n.Init.(*ast.InitializerList); ok {
		a.initializerList(init, n.Type)
		if atGlobalScope {
			for _, e := range init.Elements {
				if _, ok := FoldConst(e); !ok && !isFloatLiteral(e) {
					a.errorf(e.Pos(), "initializer element is not a compile-time constant")
				}
			}
		}
		return
	}
	a.expr(n.Init)
	if !types.CanAssign(n.Init.Type(), n.Type) {
		a.errorf(n.Pos(), "cannot initialize %q of type %s with value of type %s", n.Name, n.Type, n.Init.Type())
	}
	if atGlobalScope {
		if _, ok := FoldConst(n.Init); !ok && !isFloatLiteral(n.Init) {
			a.errorf(n.Init.Pos(), "global initializer for %q is not a compile-time constant", n.Name)
		}
	}
}

func isFloatLiteral(e ast.Expr) bool {
	_, ok := e.(*ast.FloatLiteral)
	return ok
}

// initializerList type-checks a brace initializer against an array or
// struct target type, recursing into nested braces for multi-dimensional
// arrays or nested aggregates.
func (a *Analyzer) initializerList(n *ast.InitializerList, target types.Type) {
	switch {
	case target.IsArray():
		elemT := target.Elem()
		for _, el := range n.Elements {
			if sub, ok := el.(*ast.InitializerList); ok {
				a.initializerList(sub, elemT)
				continue
			}
			a.expr(el)
			if !types.CanAssign(el.Type(), elemT) {
				a.errorf(el.Pos(), "cannot initialize array element of type %s with value of type %s", elemT, el.Type())
			}
		}
	case target.IsStruct():
		agg := a.Tags.Lookup(target.Tag())
		if agg == nil || !agg.Complete {
			a.errorf(n.Pos(), "initializer for incomplete struct type")
			return
		}
		for i, el := range n.Elements {
			if i >= len(agg.Members) {
				a.errorf(el.Pos(), "too many initializers for struct %s", target.Tag())
				break
			}
			memberT := agg.Members[i].Type
			if sub, ok := el.(*ast.InitializerList); ok {
				a.initializerList(sub, memberT)
				continue
			}
			a.expr(el)
			if !types.CanAssign(el.Type(), memberT) {
				a.errorf(el.Pos(), "cannot initialize member %q with value of type %s", agg.Members[i].Name, el.Type())
			}
		}
	default:
		for _, el := range n.Elements {
			a.expr(el)
		}
	}
}

func (a *Analyzer) funcDecl(n *ast.FuncDecl) {
	ft := n.FuncType()
	if err := a.Syms.AddSymbol(n.Name, ft, n.IsDefinition()); err != nil {
		a.errorf(n.Pos(), "%s", err)
		if !n.IsDefinition() {
			return
		}
	}
	if !n.IsDefinition() {
		return
	}
	a.Syms.EnterFunction(n.ReturnType)
	for _, p := range n.Params {
		if p.Name == "" {
			continue
		}
		if err := a.Syms.AddSymbol(p.Name, p.Type, true); err != nil {
			a.errorf(n.Pos(), "%s", err)
		}
	}
	a.block(n.Body, false)
	if err := a.Syms.ExitFunction(); err != nil {
		a.errorf(n.Pos(), "%s", err)
	}
}

func (a *Analyzer) tagDecl(n *ast.TagDecl) {
	if n.Members == nil {
		if _, err := a.Tags.Declare(n.Tag, n.IsUnion); err != nil {
			a.errorf(n.Pos(), "%s", err)
		}
		return
	}
	if _, err := a.Tags.Define(n.Tag, n.IsUnion, n.Members); err != nil {
		a.errorf(n.Pos(), "%s", err)
	}
}
