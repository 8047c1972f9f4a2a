package emit

import (
	"strings"

	"cc2ir/src/types"
	"cc2ir/src/value"
)

// GlobalVar is one module-scope variable definition or declaration.
type GlobalVar struct {
	Name       string
	Type       types.Type
	Init       string // textual initializer, e.g. "0" or "zeroinitializer"; "" if extern-only
	IsConstant bool
}

// Module is the top-level emitted translation unit: the target triple
// directive, tag-type declarations, global variable definitions, function
// definitions, and the trailing `declare`s for referenced-but-undefined
// externs — rendered in that order per spec.md §6.
type Module struct {
	Types  *types.Registry
	Values *value.Registry // module-scope Value Registry, shared by every Function (spec.md §4.B)
	Triple string

	Tags    []string // tag names in declaration order, for deterministic %tag = type {...} output
	Globals []GlobalVar
	Funcs   []*Function

	// Declares holds trailing `declare` lines for functions referenced but
	// never defined (e.g. library calls such as printf).
	Declares []string
}

// NewModule returns an empty module targeting triple.
func NewModule(reg *types.Registry, triple string) *Module {
	return &Module{Types: reg, Values: value.NewRegistry(), Triple: triple}
}

// DeclareTag registers tag for later IRTypeDecl rendering, if not already
// present.
func (m *Module) DeclareTag(tag string) {
	for _, t := range m.Tags {
		if t == tag {
			return
		}
	}
	m.Tags = append(m.Tags, tag)
}

// AddGlobal appends a module-scope global variable definition/declaration.
func (m *Module) AddGlobal(g GlobalVar) {
	m.Globals = append(m.Globals, g)
}

// AddFunction appends a completed function definition.
func (m *Module) AddFunction(f *Function) {
	m.Funcs = append(m.Funcs, f)
}

// AddDeclare appends a trailing extern-function declaration line.
func (m *Module) AddDeclare(line string) {
	m.Declares = append(m.Declares, line)
}

// String renders the complete textual module.
func (m *Module) String() string {
	sb := strings.Builder{}
	if m.Triple != "" {
		sb.WriteString("target triple = \"" + m.Triple + "\"\n\n")
	}
	for _, tag := range m.Tags {
		sb.WriteString(m.Types.IRTypeDecl(tag))
		sb.WriteRune('\n')
	}
	if len(m.Tags) > 0 {
		sb.WriteRune('\n')
	}
	for _, g := range m.Globals {
		irT := m.Types.IRType(g.Type)
		if g.Init != "" {
			sb.WriteString("@" + g.Name + " = global " + irT + " " + g.Init + "\n")
		} else {
			sb.WriteString("@" + g.Name + " = external global " + irT + "\n")
		}
	}
	if len(m.Globals) > 0 {
		sb.WriteRune('\n')
	}
	for i, f := range m.Funcs {
		if i > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(f.String())
	}
	rendered := make(map[string]bool, len(m.Globals))
	for _, g := range m.Globals {
		rendered[g.Name] = true
	}
	trailing := append([]string(nil), m.Declares...)
	for _, v := range m.Values.UndefinedGlobals() {
		name := v.Name[1:] // strip the "@" prefix
		if rendered[name] {
			continue
		}
		rendered[name] = true
		if v.Type.IsFunction() {
			params, variadic, _ := v.Type.Params()
			line := "declare " + m.Types.IRType(v.Type.Return()) + " @" + name + "("
			for i, p := range params {
				if i > 0 {
					line += ", "
				}
				line += m.Types.IRType(p)
			}
			if variadic {
				if len(params) > 0 {
					line += ", "
				}
				line += "..."
			}
			trailing = append(trailing, line+")")
		} else {
			// v.Type is the pointer-to-variable type value.Registry.AddGlobal
			// stores; the `external global` directive names the pointee, not
			// the pointer, so unwrap one level here.
			trailing = append(trailing, "@"+name+" = external global "+m.Types.IRType(v.Type.Elem()))
		}
	}
	if len(trailing) > 0 {
		sb.WriteRune('\n')
		for _, d := range trailing {
			sb.WriteString(d)
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}
