package value

import (
	"fmt"

	"cc2ir/src/types"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Registry issues fresh IR names and maintains their types, per spec.md
// §4.B. Temporary numbering is monotonic per function and is reset by
// EnterFunction. src/emit's builders only call NewTemp/AddLocal when their
// current block is open, and emit the defining instruction in the same
// call, so that %N always names the (N+1)-th un-named instruction (spec.md
// §4.B's key invariant) even across dead code: a closed block allocates no
// name at all rather than allocating one whose instruction text is dropped.
type Registry struct {
	temps     int // next %N to hand out in the current function
	labels    int // next local-name integer to hand out in the current function
	globalSeq int

	literals map[string]Value   // interned by "text/C type" key
	globals  map[string]Value   // name -> Value, module scope
	defined  map[string]bool    // name -> has a definition (vs. declared-only)
	scopes   []map[string]Value // stack of block scopes for locals
}

// NewRegistry returns an empty Value Registry.
func NewRegistry() *Registry {
	return &Registry{
		literals: make(map[string]Value, 16),
		globals:  make(map[string]Value, 16),
		defined:  make(map[string]bool, 16),
		scopes:   []map[string]Value{make(map[string]Value, 8)},
	}
}

// EnterFunction resets the temporary and local-name counters and pushes a
// fresh top-level block scope for the function body, per spec.md §4.B:
// "N counts upward from 0 and is reset on entering a function."
func (r *Registry) EnterFunction() {
	r.temps = 0
	r.labels = 0
	r.scopes = []map[string]Value{make(map[string]Value, 8)}
}

// EnterScope pushes a new block scope for locals (mirrors src/symtab's
// EnterScope, called in tandem by the code generator).
func (r *Registry) EnterScope() {
	r.scopes = append(r.scopes, make(map[string]Value, 8))
}

// ExitScope pops the innermost block scope.
func (r *Registry) ExitScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// NewTemp allocates the next %N in the current function.
func (r *Registry) NewTemp(t types.Type) Value {
	v := Value{Name: fmt.Sprintf("%%%d", r.temps), Type: t, Class: Immediate}
	r.temps++
	return v
}

// NewLocalName returns a fresh integer used to form unique labels, e.g.
// "iftrue.7", "while.cond.12".
func (r *Registry) NewLocalName() int {
	n := r.labels
	r.labels++
	return n
}

// AddLiteral interns a literal constant, avoiding duplicate entries for the
// same text/type pair. The table is never reset, so interning spans every
// function that uses this Registry.
func (r *Registry) AddLiteral(text string, t types.Type) Value {
	key := text + "/" + fmt.Sprint(t)
	if v, ok := r.literals[key]; ok {
		return v
	}
	v := Value{Name: text, Type: t, Class: Literal}
	r.literals[key] = v
	return v
}

// AddLocal emits an implicit alloca value for name, returning a StackSlot.
// It is registered in the innermost active scope, shadowing any outer
// declaration of the same name. The stack slot's IR name is drawn from the
// same monotonic %N sequence as NewTemp: spec.md testable property 1 ("the
// set of local temporaries is {%0, ..., %K} with no gaps") holds over every
// unnamed value a function defines, allocas included, not just arithmetic
// results.
func (r *Registry) AddLocal(name string, t types.Type) Value {
	v := Value{Name: fmt.Sprintf("%%%d", r.temps), Type: types.NewPointer(t), Class: StackSlot}
	r.temps++
	r.scopes[len(r.scopes)-1][name] = v
	return v
}

// DeadLocal registers name in the innermost scope without consuming a
// temporary. It is used when a declaration is reached only by dead code
// (spec.md §4.F: an unreachable declaration emits no alloca at all), so
// that a later reference to name within the same unreachable region still
// resolves to a value of the right type and class instead of failing
// lookup, without burning a %N that no instruction text will ever use.
func (r *Registry) DeadLocal(name string, t types.Type) Value {
	v := Value{Name: "%dead", Type: types.NewPointer(t), Class: StackSlot}
	r.scopes[len(r.scopes)-1][name] = v
	return v
}

// AddGlobal records a global of the given name and type. defined indicates
// whether this declaration also provides a definition (vs. only an
// `extern` reference); the set of globals referenced but never defined is
// reported by UndefinedGlobals at module completion.
func (r *Registry) AddGlobal(name string, t types.Type, defined bool) Value {
	v := Value{Name: "@" + name, Type: types.NewPointer(t), Class: Global}
	if t.IsFunction() {
		v = Value{Name: "@" + name, Type: t, Class: Function}
	}
	r.globals[name] = v
	if defined {
		r.defined[name] = true
	} else if _, ok := r.defined[name]; !ok {
		r.defined[name] = false
	}
	return v
}

// MarkDefined records that a previously-declared global now has a
// definition (used when a function body or initializer is generated after
// an earlier forward declaration).
func (r *Registry) MarkDefined(name string) {
	r.defined[name] = true
}

// GetValue resolves name through the current symbol scope: innermost block
// scope outward, then module globals.
func (r *Registry) GetValue(name string) (Value, bool) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if v, ok := r.scopes[i][name]; ok {
			return v, true
		}
	}
	if v, ok := r.globals[name]; ok {
		return v, true
	}
	return Value{}, false
}

// UndefinedGlobals returns the set of globals that were referenced but
// never defined, queried at end of compilation to emit trailing `declare`s.
func (r *Registry) UndefinedGlobals() []Value {
	res := make([]Value, 0, len(r.defined))
	for name, def := range r.defined {
		if !def {
			res = append(res, r.globals[name])
		}
	}
	return res
}
