package types

import "testing"

// TestPromotionIdempotence checks testable property 5 from spec.md §8:
// integer_promotions(integer_promotions(t)) == integer_promotions(t).
func TestPromotionIdempotence(t *testing.T) {
	for b := Char; b <= Double; b++ {
		typ := NewBasic(b)
		once := IntegerPromotions(typ)
		twice := IntegerPromotions(NewBasic(once))
		if once != twice {
			t.Errorf("promotion not idempotent for %s: once=%v twice=%v", typ, once, twice)
		}
	}
}

// TestCompatibilitySymmetryAndReflexivity checks testable property 6.
func TestCompatibilitySymmetryAndReflexivity(t *testing.T) {
	cases := []Type{
		Void,
		NewBasic(Int),
		NewBasic(UChar),
		NewPointer(NewBasic(Int)),
		NewArray(NewBasic(Char), intp(10)),
		NewStruct("point"),
	}
	for _, a := range cases {
		if !IsCompatible(a, a) {
			t.Errorf("IsCompatible(%s, %s) should be reflexive", a, a)
		}
	}
	for _, a := range cases {
		for _, b := range cases {
			if IsCompatible(a, b) != IsCompatible(b, a) {
				t.Errorf("IsCompatible not symmetric for %s, %s", a, b)
			}
		}
	}
}

func TestUsualArithmeticConversions(t *testing.T) {
	tests := []struct {
		a, b Type
		want Basic
	}{
		{NewBasic(Int), NewBasic(Int), Int},
		{NewBasic(Char), NewBasic(Short), Int},
		{NewBasic(Int), NewBasic(UInt), UInt},
		{NewBasic(Long), NewBasic(UInt), Long},
		{NewBasic(Int), NewBasic(Double), Double},
		{NewBasic(Float), NewBasic(Double), Double},
	}
	for _, tc := range tests {
		got := UsualArithmeticConversions(tc.a, tc.b)
		if got != tc.want {
			t.Errorf("UsualArithmeticConversions(%s, %s) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestCanRepresent(t *testing.T) {
	if !CanRepresent(Char, 127) {
		t.Error("char should represent 127")
	}
	if CanRepresent(Char, 128) {
		t.Error("char should not represent 128")
	}
	if !CanRepresent(UChar, 255) {
		t.Error("unsigned char should represent 255")
	}
	if CanRepresent(UChar, -1) {
		t.Error("unsigned char should not represent -1")
	}
}

func TestRegistrySizeAlignStruct(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Define("point", false, []Member{
		{Name: "x", Type: NewBasic(Char)},
		{Name: "y", Type: NewBasic(Int)},
	}); err != nil {
		t.Fatalf("Define: %v", err)
	}
	st := NewStruct("point")
	// char at offset 0 (size 1), padding to 4, int at offset 4 (size 4):
	// total size rounds up to alignment 4 => 8.
	if got := r.Size(st); got != 8 {
		t.Errorf("Size(point) = %d, want 8", got)
	}
	if got := r.Align(st); got != 4 {
		t.Errorf("Align(point) = %d, want 4", got)
	}
}

func TestRegistryRedefinitionError(t *testing.T) {
	r := NewRegistry()
	members := []Member{{Name: "x", Type: NewBasic(Int)}}
	if _, err := r.Define("p", false, members); err != nil {
		t.Fatalf("first Define: %v", err)
	}
	if _, err := r.Define("p", false, members); err == nil {
		t.Error("expected redefinition error on second Define")
	}
}

func TestIRTypeNames(t *testing.T) {
	r := NewRegistry()
	if got := r.IRType(NewBasic(Int)); got != "i32" {
		t.Errorf("IRType(int) = %q, want i32", got)
	}
	if got := r.IRType(NewBasic(Bool)); got != "i1" {
		t.Errorf("IRType(bool) = %q, want i1", got)
	}
	if got := r.IRType(NewPointer(NewBasic(Char))); got != "i8*" {
		t.Errorf("IRType(char*) = %q, want i8*", got)
	}
}

func intp(i int) *int { return &i }
