// Package symtab implements the Symbol Table of spec.md §4.C: a tree of
// nested scopes enforcing C's scoping and control-flow discipline (loops,
// switches, labels/goto).
package symtab

import (
	"fmt"

	"cc2ir/src/types"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Kind differentiates the three scope kinds of spec.md §3: Global,
// Function, and Block. Function is-a Block with extra function-scoped
// state (return type, labels, switch stack).
type Kind int

const (
	KGlobal Kind = iota
	KFunction
	KBlock
)

// Linkage is the linkage classification of a declared name.
type Linkage int

const (
	NoLinkage Linkage = iota
	External
)

// Symbol is what a name resolves to within a scope.
type Symbol struct {
	Name          string
	Type          types.Type
	HasDefinition bool
	Linkage       Linkage
}

// scope is one node of the scope tree.
type scope struct {
	kind   Kind
	parent *scope
	names  map[string]*Symbol

	// Function-scope-only state (valid when kind == KFunction; inherited
	// by nested Block scopes via funcScope).
	returnType      types.Type
	labels          map[string]bool // declared labels, visible function-wide
	requiredLabels  map[string]bool // goto targets not yet resolved
	switchStack     []*switchState
	loopDepth       int
}

// switchState tracks the constant case values (plus an optional "default"
// marker) collected during one switch body.
type switchState struct {
	cases      map[int64]bool // constant values seen so far
	hasDefault bool
}

// SwitchCases is the snapshot PopSwitch hands back to the caller: the set
// of distinct constant case values seen, and whether a `default` label was
// present.
type SwitchCases struct {
	Values     []int64
	HasDefault bool
}

// Table is the symbol table root: a stack of active scopes, rooted at a
// single Global scope, per spec.md §3/§4.C.
type Table struct {
	global  *scope
	current *scope
	funcScope *scope // nearest enclosing KFunction scope, or nil at global level
}

// NewTable returns a fresh symbol table with only the Global scope active.
func NewTable() *Table {
	g := &scope{kind: KGlobal, names: make(map[string]*Symbol, 32)}
	return &Table{global: g, current: g}
}

// ---------------------------------
// ----- scope entry/exit -----
// ---------------------------------

// EnterScope pushes a new Block scope nested in the current scope.
func (t *Table) EnterScope() {
	s := &scope{kind: KBlock, parent: t.current, names: make(map[string]*Symbol, 8), loopDepth: t.current.loopDepth}
	t.current = s
}

// ExitScope pops the current Block scope, returning to its parent. Popping
// the Global or a Function scope is a programming error; use ExitFunction
// for function scopes.
func (t *Table) ExitScope() {
	if t.current.kind != KBlock {
		panic("symtab: ExitScope called on a non-Block scope; use ExitFunction")
	}
	t.current = t.current.parent
}

// EnterFunction pushes a Function scope (itself a Block) declaring the
// given return type; parameters should be added with AddSymbol afterward.
func (t *Table) EnterFunction(returnType types.Type) {
	if t.current.kind != KGlobal {
		panic("symtab: EnterFunction called while not at Global scope; nested function definitions are not supported")
	}
	s := &scope{
		kind:           KFunction,
		parent:         t.current,
		names:          make(map[string]*Symbol, 8),
		returnType:     returnType,
		labels:         make(map[string]bool, 4),
		requiredLabels: make(map[string]bool, 4),
	}
	t.current = s
	t.funcScope = s
}

// ExitFunction pops the Function scope, validating that every goto target
// required during the function body was declared as a label somewhere in
// the function. The scope is popped whether or not validation succeeds.
// Returns an error naming an unresolved label.
func (t *Table) ExitFunction() error {
	if t.current.kind != KFunction {
		panic("symtab: ExitFunction called while not at Function scope")
	}
	fn := t.current
	t.current = fn.parent
	t.funcScope = nil
	for name := range fn.requiredLabels {
		if !fn.labels[name] {
			return fmt.Errorf("use of undeclared label %q", name)
		}
	}
	return nil
}

// ---------------------------------
// ----- declarations -----
// ---------------------------------

// AddSymbol declares name with the given type in the current scope. It
// fails if a prior declaration in the same scope is incompatible, or if
// hasDefinition would redefine an already-defined name.
func (t *Table) AddSymbol(name string, typ types.Type, hasDefinition bool) error {
	if prev, ok := t.current.names[name]; ok {
		if !types.IsCompatible(prev.Type, typ) {
			return fmt.Errorf("redeclaration of %q with incompatible type (%s vs %s)", name, prev.Type, typ)
		}
		if prev.HasDefinition && hasDefinition {
			return fmt.Errorf("redefinition of %q", name)
		}
		if hasDefinition {
			prev.HasDefinition = true
		}
		return nil
	}
	t.current.names[name] = &Symbol{Name: name, Type: typ, HasDefinition: hasDefinition}
	return nil
}

// AddExternDecl records an externally-linked declaration of name, valid
// from any scope (it is always recorded in the Global scope, matching C's
// single external-linkage namespace).
func (t *Table) AddExternDecl(name string, typ types.Type) error {
	if prev, ok := t.global.names[name]; ok {
		if !types.IsCompatible(prev.Type, typ) {
			return fmt.Errorf("extern redeclaration of %q with incompatible type (%s vs %s)", name, prev.Type, typ)
		}
		return nil
	}
	t.global.names[name] = &Symbol{Name: name, Type: typ, Linkage: External}
	return nil
}

// HasSymbol reports whether name resolves from the current scope upward to
// the root.
func (t *Table) HasSymbol(name string) bool {
	_, ok := t.lookup(name)
	return ok
}

// SymbolType returns the declared type of name, walking to the root. ok is
// false if name is undeclared.
func (t *Table) SymbolType(name string) (types.Type, bool) {
	s, ok := t.lookup(name)
	if !ok {
		return types.Type{}, false
	}
	return s.Type, true
}

func (t *Table) lookup(name string) (*Symbol, bool) {
	for s := t.current; s != nil; s = s.parent {
		if sym, ok := s.names[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// ---------------------------------
// ----- control-flow predicates -----
// ---------------------------------

// InFunction reports whether a function scope is currently active.
func (t *Table) InFunction() bool { return t.funcScope != nil }

// InLoop reports whether the current scope is nested inside a loop body.
func (t *Table) InLoop() bool { return t.current.loopDepth > 0 }

// InSwitch reports whether the current scope is nested inside a switch
// body.
func (t *Table) InSwitch() bool {
	return t.funcScope != nil && len(t.funcScope.switchStack) > 0
}

// ReturnType returns the enclosing function's declared return type. Calling
// it outside a function is a programming error.
func (t *Table) ReturnType() types.Type {
	if t.funcScope == nil {
		panic("symtab: ReturnType called outside a function")
	}
	return t.funcScope.returnType
}

// EnterLoop marks the current (and all scopes pushed until ExitLoop) as
// loop-nested, so that break/continue validate. Call before entering the
// loop body's Block scope.
func (t *Table) EnterLoop() {
	t.current.loopDepth++
}

// ExitLoop undoes EnterLoop.
func (t *Table) ExitLoop() {
	t.current.loopDepth--
}

// ---------------------------------
// ----- switch discipline -----
// ---------------------------------

// PushSwitch begins tracking case values for a new switch body.
func (t *Table) PushSwitch() {
	if t.funcScope == nil {
		panic("symtab: PushSwitch called outside a function")
	}
	t.funcScope.switchStack = append(t.funcScope.switchStack, &switchState{
		cases: make(map[int64]bool, 8),
	})
}

// AddCase records a constant case value (or nil for `default`) in the
// innermost active switch. It returns an error if the value was already
// used in this switch.
func (t *Table) AddCase(value *int64) error {
	sw := t.currentSwitch()
	if value == nil {
		if sw.hasDefault {
			return fmt.Errorf("multiple default labels in one switch")
		}
		sw.hasDefault = true
		return nil
	}
	if sw.cases[*value] {
		return fmt.Errorf("duplicate case value %d", *value)
	}
	sw.cases[*value] = true
	return nil
}

// PopSwitch ends the innermost switch, returning the set of constant case
// values (plus whether a default label was present) collected during its
// body, per spec.md §4.C.
func (t *Table) PopSwitch() SwitchCases {
	sw := t.currentSwitch()
	t.funcScope.switchStack = t.funcScope.switchStack[:len(t.funcScope.switchStack)-1]
	res := SwitchCases{HasDefault: sw.hasDefault, Values: make([]int64, 0, len(sw.cases))}
	for v := range sw.cases {
		res.Values = append(res.Values, v)
	}
	return res
}

func (t *Table) currentSwitch() *switchState {
	if t.funcScope == nil || len(t.funcScope.switchStack) == 0 {
		panic("symtab: case/switch operation with no active switch")
	}
	return t.funcScope.switchStack[len(t.funcScope.switchStack)-1]
}

// ---------------------------------
// ----- labels / goto -----
// ---------------------------------

// AddLabel declares name as a label, visible throughout the enclosing
// function (spec.md §4.C).
func (t *Table) AddLabel(name string) {
	if t.funcScope == nil {
		panic("symtab: AddLabel called outside a function")
	}
	t.funcScope.labels[name] = true
}

// RequireLabel records that a `goto name` needs name to be declared
// somewhere in the function by the time it exits; labels may appear before
// or after their goto.
func (t *Table) RequireLabel(name string) {
	if t.funcScope == nil {
		panic("symtab: RequireLabel called outside a function")
	}
	if !t.funcScope.requiredLabels[name] {
		t.funcScope.requiredLabels[name] = true
	}
}

// ---------------------------------
// ----- break/continue targets -----
// ---------------------------------

// targets is a small stack of (continue-label, break-label) pairs, pushed
// by the code generator on entry to each loop/switch and popped on exit.
// Kept in a TargetStack separate from Table and its scopes since
// break/continue targets are a per-construct resource, not scoped to name
// visibility.
type targets struct {
	kind     string // "loop" or "switch", for diagnostics only
	cont     string
	brk      string
}

// TargetStack models spec.md's "continue_target()/break_target():
// top-of-stack labels used by the code generator." It is one stack of
// (continue, break) pairs, living alongside the switch/loop discipline above
// but pushed/popped explicitly by the caller since a loop's continue target
// differs from its break target (unlike switch, which only has a break
// target).
type TargetStack struct {
	stack []targets
}

// NewTargetStack returns an empty break/continue target stack, created
// once per function by the code generator.
func NewTargetStack() *TargetStack { return &TargetStack{} }

// PushLoop registers the continue/break targets of a loop.
func (s *TargetStack) PushLoop(continueLabel, breakLabel string) {
	s.stack = append(s.stack, targets{kind: "loop", cont: continueLabel, brk: breakLabel})
}

// PushSwitch registers the break target of a switch (switch has no
// continue target of its own; ContinueTarget skips over it to the next
// enclosing loop).
func (s *TargetStack) PushSwitch(breakLabel string) {
	s.stack = append(s.stack, targets{kind: "switch", brk: breakLabel})
}

// Pop removes the innermost target frame.
func (s *TargetStack) Pop() {
	s.stack = s.stack[:len(s.stack)-1]
}

// BreakTarget returns the label `break` should jump to: the innermost
// frame, whether loop or switch.
func (s *TargetStack) BreakTarget() string {
	if len(s.stack) == 0 {
		panic("symtab: BreakTarget called with no enclosing loop or switch")
	}
	return s.stack[len(s.stack)-1].brk
}

// ContinueTarget returns the label `continue` should jump to: the
// innermost loop frame, skipping over any enclosing switch frames.
func (s *TargetStack) ContinueTarget() string {
	for i := len(s.stack) - 1; i >= 0; i-- {
		if s.stack[i].kind == "loop" {
			return s.stack[i].cont
		}
	}
	panic("symtab: ContinueTarget called with no enclosing loop")
}
