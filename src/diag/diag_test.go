package diag

import (
	"testing"

	"cc2ir/src/ast"
)

func TestBagCollectsInSourceOrder(t *testing.T) {
	b := NewBag()
	b.Add(Sema, ast.Pos{Line: 5, Col: 1}, "second")
	b.Add(Sema, ast.Pos{Line: 2, Col: 1}, "first")
	if !b.HasErrors() || b.Len() != 2 {
		t.Fatalf("expected 2 errors, got %d", b.Len())
	}
	errs := b.Errors()
	if errs[0].Message != "first" || errs[1].Message != "second" {
		t.Errorf("errors not sorted by position: %+v", errs)
	}
}

func TestBagFlush(t *testing.T) {
	b := NewBag()
	b.Add(Lex, ast.Pos{}, "x")
	b.Flush()
	if b.HasErrors() {
		t.Error("expected no errors after Flush")
	}
}
