package codegen

import (
	"fmt"

	"cc2ir/src/ast"
)

// block generates a BlockStmt's statements. ownScope is false only for a
// function's outermost body, which reuses the scope src/emit's NewFunction
// already pushed for parameters rather than nesting an extra one.
func (g *Generator) block(b *ast.BlockStmt, ownScope ...bool) {
	own := true
	if len(ownScope) > 0 {
		own = ownScope[0]
	}
	if own {
		g.fn.Values.EnterScope()
		defer g.fn.Values.ExitScope()
	}
	for _, s := range b.Stmts {
		g.stmt(s)
	}
}

func (g *Generator) stmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.BlockStmt:
		g.block(n, true)
	case *ast.DeclStmt:
		g.localDecl(n.Decl)
	case *ast.ExprStmt:
		g.expr(n.Expr)
	case *ast.NullStmt:
	case *ast.IfStmt:
		g.ifStmt(n)
	case *ast.WhileStmt:
		g.whileStmt(n)
	case *ast.DoStmt:
		g.doStmt(n)
	case *ast.ForStmt:
		g.forStmt(n)
	case *ast.ReturnStmt:
		g.returnStmt(n)
	case *ast.BreakStmt:
		g.fn.Br(g.targets.BreakTarget())
	case *ast.ContinueStmt:
		g.fn.Br(g.targets.ContinueTarget())
	case *ast.SwitchStmt:
		g.switchStmt(n)
	case *ast.CaseStmt:
		g.caseLabel(n)
		g.stmt(n.Stmt)
	case *ast.DefaultStmt:
		g.defaultLabel(n)
		g.stmt(n.Stmt)
	case *ast.LabeledStmt:
		g.userLabel(n.Name)
		g.stmt(n.Stmt)
	case *ast.GotoStmt:
		g.fn.Br(g.userLabelName(n.Name))
	default:
		panic(fmt.Sprintf("codegen: unsupported statement %T", s))
	}
}

func (g *Generator) localDecl(d ast.Decl) {
	vd, ok := d.(*ast.VarDecl)
	if !ok {
		return // a nested TagDecl; the tag is already registered by src/sema
	}
	slot := g.fn.Alloca(vd.Name, vd.Type)
	if vd.Init == nil {
		return
	}
	if list, ok := vd.Init.(*ast.InitializerList); ok {
		g.initAggregate(slot, vd.Type, list)
		return
	}
	val := g.expr(vd.Init)
	val = g.convert(val, vd.Type)
	g.fn.Store(val, slot)
}

func (g *Generator) ifStmt(n *ast.IfStmt) {
	cond := g.boolValue(n.Cond)
	thenLabel := g.fn.NewLabel("if.then")
	endLabel := g.fn.NewLabel("if.end")
	elseLabel := endLabel
	if n.Else != nil {
		elseLabel = g.fn.NewLabel("if.else")
	}
	g.fn.CondBr(cond.Name, thenLabel, elseLabel)

	g.fn.OpenBlock(thenLabel)
	g.stmt(n.Then)
	g.fn.Br(endLabel)

	if n.Else != nil {
		g.fn.OpenBlock(elseLabel)
		g.stmt(n.Else)
		g.fn.Br(endLabel)
	}
	g.fn.OpenBlock(endLabel)
}

func (g *Generator) whileStmt(n *ast.WhileStmt) {
	condLabel := g.fn.NewLabel("while.cond")
	bodyLabel := g.fn.NewLabel("while.body")
	endLabel := g.fn.NewLabel("while.end")

	g.fn.Br(condLabel)
	g.fn.OpenBlock(condLabel)
	cond := g.boolValue(n.Cond)
	g.fn.CondBr(cond.Name, bodyLabel, endLabel)

	g.targets.PushLoop(condLabel, endLabel)
	g.fn.OpenBlock(bodyLabel)
	g.stmt(n.Body)
	g.fn.Br(condLabel)
	g.targets.Pop()

	g.fn.OpenBlock(endLabel)
}

func (g *Generator) doStmt(n *ast.DoStmt) {
	bodyLabel := g.fn.NewLabel("do.body")
	condLabel := g.fn.NewLabel("do.cond")
	endLabel := g.fn.NewLabel("do.end")

	g.fn.Br(bodyLabel)
	g.targets.PushLoop(condLabel, endLabel)
	g.fn.OpenBlock(bodyLabel)
	g.stmt(n.Body)
	g.fn.Br(condLabel)
	g.targets.Pop()

	g.fn.OpenBlock(condLabel)
	cond := g.boolValue(n.Cond)
	g.fn.CondBr(cond.Name, bodyLabel, endLabel)

	g.fn.OpenBlock(endLabel)
}

// forStmt implements spec.md §4.G/§8 scenario S5: the init clause executes
// in the predecessor block (no label of its own), followed by cond/body/
// post/end labels in that order.
func (g *Generator) forStmt(n *ast.ForStmt) {
	g.fn.Values.EnterScope()
	defer g.fn.Values.ExitScope()

	if n.Init != nil {
		g.stmt(n.Init)
	}
	condLabel := g.fn.NewLabel("for.cond")
	bodyLabel := g.fn.NewLabel("for.body")
	postLabel := g.fn.NewLabel("for.post")
	endLabel := g.fn.NewLabel("for.end")

	g.fn.Br(condLabel)
	g.fn.OpenBlock(condLabel)
	if n.Cond != nil {
		cond := g.boolValue(n.Cond)
		g.fn.CondBr(cond.Name, bodyLabel, endLabel)
	} else {
		g.fn.Br(bodyLabel)
	}

	g.targets.PushLoop(postLabel, endLabel)
	g.fn.OpenBlock(bodyLabel)
	g.stmt(n.Body)
	g.fn.Br(postLabel)

	g.fn.OpenBlock(postLabel)
	if n.Post != nil {
		g.expr(n.Post)
	}
	g.fn.Br(condLabel)
	g.targets.Pop()

	g.fn.OpenBlock(endLabel)
}

func (g *Generator) returnStmt(n *ast.ReturnStmt) {
	if n.Value == nil {
		g.fn.RetVoid()
		return
	}
	val := g.expr(n.Value)
	val = g.convert(val, g.fn.ReturnType)
	g.fn.Ret(g.irType(g.fn.ReturnType), val.Name)
}

func (g *Generator) userLabel(name string) {
	label := g.userLabelName(name)
	g.fn.Br(label) // fall through from the preceding block into the label
	g.fn.OpenBlock(label)
}

// userLabelName namespaces a source-level label so it can't collide with
// the compiler-generated control-flow labels (if.then, while.cond, ...).
func (g *Generator) userLabelName(name string) string { return "L." + name }
