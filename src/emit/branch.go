package emit

import "fmt"

// Br terminates the current block with an unconditional branch to label.
func (f *Function) Br(label string) {
	f.Terminate(fmt.Sprintf("br label %%%s", label))
}

// CondBr terminates the current block with a conditional branch: cond must
// be an i1 Value name.
func (f *Function) CondBr(cond string, thenLabel, elseLabel string) {
	f.Terminate(fmt.Sprintf("br i1 %s, label %%%s, label %%%s", cond, thenLabel, elseLabel))
}

// Ret terminates the current block with a typed return.
func (f *Function) Ret(irType, val string) {
	f.Terminate(fmt.Sprintf("ret %s %s", irType, val))
}

// RetVoid terminates the current block with `ret void`.
func (f *Function) RetVoid() {
	f.Terminate("ret void")
}

// SwitchCase is one value/label arm of a switch terminator.
type SwitchCase struct {
	Value string
	Label string
}

// Switch terminates the current block with a switch table over cond
// (an integer Value name of type irType), jumping to defaultLabel when no
// case matches.
func (f *Function) Switch(irType, cond, defaultLabel string, cases []SwitchCase) {
	instr := fmt.Sprintf("switch %s %s, label %%%s [", irType, cond, defaultLabel)
	for _, c := range cases {
		instr += fmt.Sprintf(" %s %s, label %%%s", irType, c.Value, c.Label)
	}
	instr += " ]"
	f.Terminate(instr)
}
