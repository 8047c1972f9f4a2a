package symtab

import (
	"testing"

	"cc2ir/src/types"
)

// TestScopeRoundTrip checks testable property 7: after enter/exit, table
// state is equivalent to what it was before.
func TestScopeRoundTrip(t *testing.T) {
	tab := NewTable()
	if err := tab.AddSymbol("x", types.NewBasic(types.Int), true); err != nil {
		t.Fatalf("AddSymbol: %v", err)
	}
	before := tab.HasSymbol("x")

	tab.EnterScope()
	tab.AddSymbol("y", types.NewBasic(types.Int), true)
	if !tab.HasSymbol("y") {
		t.Error("y should be visible inside nested scope")
	}
	tab.ExitScope()

	if tab.HasSymbol("y") {
		t.Error("y should not be visible after ExitScope")
	}
	if tab.HasSymbol("x") != before {
		t.Error("x visibility changed across scope round-trip")
	}
}

func TestRedeclarationIncompatible(t *testing.T) {
	tab := NewTable()
	if err := tab.AddSymbol("x", types.NewBasic(types.Int), false); err != nil {
		t.Fatalf("AddSymbol: %v", err)
	}
	if err := tab.AddSymbol("x", types.NewBasic(types.Double), false); err == nil {
		t.Error("expected incompatible redeclaration error")
	}
}

func TestRedefinitionError(t *testing.T) {
	tab := NewTable()
	tab.AddSymbol("f", types.NewFunction(types.NewBasic(types.Int), nil, false, true), true)
	if err := tab.AddSymbol("f", types.NewFunction(types.NewBasic(types.Int), nil, false, true), true); err == nil {
		t.Error("expected redefinition error")
	}
}

func TestLoopSwitchPredicates(t *testing.T) {
	tab := NewTable()
	tab.EnterFunction(types.NewBasic(types.Int))
	if tab.InLoop() || tab.InSwitch() {
		t.Error("should not be in loop/switch at function entry")
	}
	tab.EnterLoop()
	tab.EnterScope()
	if !tab.InLoop() {
		t.Error("should be in loop after EnterLoop")
	}
	tab.ExitScope()
	tab.ExitLoop()

	tab.PushSwitch()
	if !tab.InSwitch() {
		t.Error("should be in switch after PushSwitch")
	}
	one := int64(1)
	if err := tab.AddCase(&one); err != nil {
		t.Fatalf("AddCase: %v", err)
	}
	if err := tab.AddCase(&one); err == nil {
		t.Error("expected duplicate case error")
	}
	if err := tab.AddCase(nil); err != nil {
		t.Fatalf("AddCase(default): %v", err)
	}
	if err := tab.AddCase(nil); err == nil {
		t.Error("expected duplicate default error")
	}
	cases := tab.PopSwitch()
	if !cases.HasDefault || len(cases.Values) != 1 || cases.Values[0] != 1 {
		t.Errorf("unexpected switch cases: %+v", cases)
	}
	if err := tab.ExitFunction(); err != nil {
		t.Fatalf("ExitFunction: %v", err)
	}
}

func TestGotoDiscipline(t *testing.T) {
	tab := NewTable()
	tab.EnterFunction(types.NewBasic(types.Int))
	tab.RequireLabel("done")
	if err := tab.ExitFunction(); err == nil {
		t.Error("expected error for unresolved goto target")
	}

	tab = NewTable()
	tab.EnterFunction(types.NewBasic(types.Int))
	tab.RequireLabel("done")
	tab.AddLabel("done")
	if err := tab.ExitFunction(); err != nil {
		t.Errorf("unexpected error with resolved label: %v", err)
	}
}

func TestTargetStack(t *testing.T) {
	ts := NewTargetStack()
	ts.PushLoop("loop.cont.0", "loop.end.0")
	ts.PushSwitch("switch.end.1")
	if ts.BreakTarget() != "switch.end.1" {
		t.Errorf("BreakTarget = %q, want switch.end.1", ts.BreakTarget())
	}
	if ts.ContinueTarget() != "loop.cont.0" {
		t.Errorf("ContinueTarget = %q, want loop.cont.0 (should skip switch frame)", ts.ContinueTarget())
	}
	ts.Pop()
	if ts.BreakTarget() != "loop.end.0" {
		t.Errorf("BreakTarget after pop = %q, want loop.end.0", ts.BreakTarget())
	}
}
