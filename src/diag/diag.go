// Package diag implements the Diagnostics component (SPEC_FULL §4.H):
// collecting lex/parse/semantic errors with source location, per spec.md
// §7's "analysis errors are collected until a statement boundary, reported
// with source location, and compilation aborts at the end of the phase".
package diag

import (
	"fmt"
	"sort"
	"sync"

	"cc2ir/src/ast"
)

// Phase identifies which compilation phase raised a diagnostic.
type Phase int

const (
	Lex Phase = iota
	Parse
	Sema
)

func (p Phase) String() string {
	switch p {
	case Lex:
		return "lex error"
	case Parse:
		return "parse error"
	case Sema:
		return "semantic error"
	default:
		return "error"
	}
}

// Error is one diagnostic: a phase, a source position, and a message.
type Error struct {
	Phase   Phase
	Pos     ast.Pos
	Message string
}

func (e Error) String() string {
	return fmt.Sprintf("%s: %s: %s", e.Pos, e.Phase, e.Message)
}

func (e Error) Error() string { return e.String() }

// Bag is an append-only diagnostic collector, grounded on the teacher's
// util/perror.go error-listener. Unlike perror it need not run on a
// goroutine: spec.md §5 requires the compiler be strictly single-threaded,
// so Bag is a plain mutex-guarded slice rather than a channel listener.
type Bag struct {
	mu   sync.Mutex
	errs []Error
}

// NewBag returns an empty diagnostic collector.
func NewBag() *Bag { return &Bag{} }

// Add appends one diagnostic.
func (b *Bag) Add(phase Phase, pos ast.Pos, format string, args ...interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.errs = append(b.errs, Error{Phase: phase, Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// Len returns the number of collected diagnostics.
func (b *Bag) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.errs)
}

// HasErrors reports whether any diagnostic was collected.
func (b *Bag) HasErrors() bool { return b.Len() > 0 }

// Errors returns a stable-ordered copy of all collected diagnostics (source
// order, then insertion order), for printing on the error stream before the
// phase aborts (spec.md §6 "Error output").
func (b *Bag) Errors() []Error {
	b.mu.Lock()
	defer b.mu.Unlock()
	res := make([]Error, len(b.errs))
	copy(res, b.errs)
	sort.SliceStable(res, func(i, j int) bool {
		if res[i].Pos.Line != res[j].Pos.Line {
			return res[i].Pos.Line < res[j].Pos.Line
		}
		return res[i].Pos.Col < res[j].Pos.Col
	})
	return res
}

// Flush empties the collector, matching the teacher's perror.Flush.
func (b *Bag) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.errs = nil
}
