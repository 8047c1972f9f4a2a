package emit

import (
	"strings"
	"testing"

	"cc2ir/src/types"
)

func newTestModule() *Module {
	return NewModule(types.NewRegistry(), "x86_64-unknown-linux-gnu")
}

// TestTempsDenseNoGaps checks spec.md testable property 1: the set of
// local temporaries a function defines is {%0, ..., %K} with no gaps,
// counting both arithmetic results and stack-slot allocas.
func TestTempsDenseNoGaps(t *testing.T) {
	m := newTestModule()
	intT := types.NewBasic(types.Int)
	f := NewFunction(m, "f", intT, nil, false)

	slot := f.Alloca("x", intT)
	a := f.Values.NewTemp(intT)
	b := f.BinOp("add", intT, a, slot)
	_ = b
	f.Ret("i32", "0")
	m.AddFunction(f)

	want := []string{"%0", "%1", "%2"}
	got := []string{slot.Name, a.Name, b.Name}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("temp %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestDeadCodeAfterTerminatorDropped(t *testing.T) {
	m := newTestModule()
	intT := types.NewBasic(types.Int)
	f := NewFunction(m, "f", intT, nil, false)
	f.Ret("i32", "0")
	// Further plain instructions are dead code and silently dropped.
	f.Emit("add i32 1, 1")
	if len(f.blocks[0].Instrs) != 1 {
		t.Fatalf("expected only the ret instruction, got %v", f.blocks[0].Instrs)
	}
}

func TestLabelAlwaysReopens(t *testing.T) {
	m := newTestModule()
	intT := types.NewBasic(types.Int)
	f := NewFunction(m, "f", intT, nil, false)
	f.Br("next")
	f.OpenBlock("next")
	if !f.IsOpen() {
		t.Fatal("expected block to reopen after label introduction")
	}
	f.Ret("i32", "0")
	m.AddFunction(f)
	rendered := f.String()
	if !strings.Contains(rendered, "next:") {
		t.Errorf("expected rendered function to contain label next:, got %s", rendered)
	}
}

func TestImplicitEntryBlockLabel(t *testing.T) {
	m := newTestModule()
	f := NewFunction(m, "main", types.NewBasic(types.Int), nil, false)
	if f.blocks[0].Label != "main.entry" {
		t.Errorf("expected entry label main.entry, got %s", f.blocks[0].Label)
	}
}

func TestFinishSynthesizesReturnForMain(t *testing.T) {
	m := newTestModule()
	f := NewFunction(m, "main", types.NewBasic(types.Int), nil, false)
	f.Finish()
	if !f.blocks[0].Terminated {
		t.Fatal("expected Finish to terminate the open block")
	}
	last := f.blocks[0].Instrs[len(f.blocks[0].Instrs)-1]
	if last != "ret i32 0" {
		t.Errorf("expected synthesized `ret i32 0` for main, got %q", last)
	}
}

func TestConvMnemonicWidening(t *testing.T) {
	reg := types.NewRegistry()
	short := types.NewBasic(types.Short)
	intT := types.NewBasic(types.Int)
	if got := ConvMnemonic(reg, short, intT); got != "sext" {
		t.Errorf("expected sext widening signed short to int, got %s", got)
	}
	uShort := types.NewBasic(types.UShort)
	if got := ConvMnemonic(reg, uShort, intT); got != "zext" {
		t.Errorf("expected zext widening unsigned short to int, got %s", got)
	}
}

func TestModuleRendersTripleAndFunctions(t *testing.T) {
	m := newTestModule()
	intT := types.NewBasic(types.Int)
	f := NewFunction(m, "main", intT, nil, false)
	f.Finish()
	m.AddFunction(f)
	out := m.String()
	if !strings.Contains(out, "target triple") {
		t.Errorf("expected target triple directive, got %s", out)
	}
	if !strings.Contains(out, "define i32 @main()") {
		t.Errorf("expected main definition, got %s", out)
	}
}

func TestSwitchRendersCasesAndDefault(t *testing.T) {
	m := newTestModule()
	intT := types.NewBasic(types.Int)
	f := NewFunction(m, "f", intT, nil, false)
	f.Switch("i32", "%0", "sw.default", []SwitchCase{
		{Value: "1", Label: "sw.case.1"},
		{Value: "2", Label: "sw.case.2"},
	})
	instr := f.blocks[0].Instrs[0]
	if !strings.Contains(instr, "sw.default") || !strings.Contains(instr, "sw.case.1") {
		t.Errorf("expected switch instruction to contain default and case labels, got %s", instr)
	}
}
