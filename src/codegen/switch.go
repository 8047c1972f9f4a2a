package codegen

import (
	"fmt"

	"cc2ir/src/ast"
	"cc2ir/src/emit"
)

// switchFrame is the per-switch state threaded between the label-collection
// pass and the emission pass: every CaseStmt/DefaultStmt node's
// pre-assigned jump target, plus the label used when no case matches.
type switchFrame struct {
	labels       map[ast.Stmt]string
	defaultLabel string
}

// switchStmt implements spec.md §4.G's "switch emits a jump table
// referencing one IR label per constant case plus a default label". Labels
// are assigned in a first pass over the body so the `switch` terminator can
// be emitted before the body's own instructions (case/default may appear
// nested inside if/loop bodies, e.g. Duff's device, which collectSwitchLabels
// follows but does not descend into a nested switch's own cases).
func (g *Generator) switchStmt(n *ast.SwitchStmt) {
	tagVal := g.expr(n.Tag)
	irT := g.irType(n.Tag.Type())

	endLabel := g.fn.NewLabel("sw.end")
	frame := &switchFrame{labels: make(map[ast.Stmt]string), defaultLabel: endLabel}
	var cases []emit.SwitchCase
	g.collectSwitchLabels(n.Body, frame, &cases)

	g.fn.Switch(irT, tagVal.Name, frame.defaultLabel, cases)

	g.switches = append(g.switches, frame)
	g.targets.PushSwitch(endLabel)
	g.stmt(n.Body)
	g.targets.Pop()
	g.switches = g.switches[:len(g.switches)-1]

	if g.fn.IsOpen() {
		g.fn.Br(endLabel)
	}
	g.fn.OpenBlock(endLabel)
}

func (g *Generator) collectSwitchLabels(s ast.Stmt, frame *switchFrame, cases *[]emit.SwitchCase) {
	switch n := s.(type) {
	case *ast.BlockStmt:
		for _, inner := range n.Stmts {
			g.collectSwitchLabels(inner, frame, cases)
		}
	case *ast.IfStmt:
		g.collectSwitchLabels(n.Then, frame, cases)
		if n.Else != nil {
			g.collectSwitchLabels(n.Else, frame, cases)
		}
	case *ast.WhileStmt:
		g.collectSwitchLabels(n.Body, frame, cases)
	case *ast.DoStmt:
		g.collectSwitchLabels(n.Body, frame, cases)
	case *ast.ForStmt:
		g.collectSwitchLabels(n.Body, frame, cases)
	case *ast.LabeledStmt:
		g.collectSwitchLabels(n.Stmt, frame, cases)
	case *ast.CaseStmt:
		lbl := g.fn.NewLabel("sw.case")
		frame.labels[n] = lbl
		*cases = append(*cases, emit.SwitchCase{Value: fmt.Sprintf("%d", n.ConstValue), Label: lbl})
		g.collectSwitchLabels(n.Stmt, frame, cases)
	case *ast.DefaultStmt:
		lbl := g.fn.NewLabel("sw.default")
		frame.labels[n] = lbl
		frame.defaultLabel = lbl
		g.collectSwitchLabels(n.Stmt, frame, cases)
	case *ast.SwitchStmt:
		return // a nested switch owns its own case labels
	}
}

func (g *Generator) caseLabel(n *ast.CaseStmt) {
	frame := g.switches[len(g.switches)-1]
	label := frame.labels[n]
	if g.fn.IsOpen() {
		g.fn.Br(label)
	}
	g.fn.OpenBlock(label)
}

func (g *Generator) defaultLabel(n *ast.DefaultStmt) {
	frame := g.switches[len(g.switches)-1]
	label := frame.labels[n]
	if g.fn.IsOpen() {
		g.fn.Br(label)
	}
	g.fn.OpenBlock(label)
}
