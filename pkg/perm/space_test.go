package perm

import (
	"slices"
	"testing"

	"github.com/matzehuels/orbit/pkg/errors"
)

func TestNewIndexSpace(t *testing.T) {
	s, err := NewIndexSpace([]int{2, 3, 1})
	if err != nil {
		t.Fatalf("NewIndexSpace: %v", err)
	}
	if s.NumVars() != 3 {
		t.Errorf("NumVars() = %d, want 3", s.NumVars())
	}
	if s.Len() != 9 {
		t.Errorf("Len() = %d, want 9", s.Len())
	}
	if got := s.DomSumByVar(); !slices.Equal(got, []int{3, 5, 8}) {
		t.Errorf("DomSumByVar() = %v, want [3 5 8]", got)
	}
	if got := s.VarByVal(); !slices.Equal(got, []int{0, 0, 1, 1, 1, 2}) {
		t.Errorf("VarByVal() = %v", got)
	}
	if got := s.DomainSizes(); !slices.Equal(got, []int{2, 3, 1}) {
		t.Errorf("DomainSizes() = %v", got)
	}

	for v, size := range []int{2, 3, 1} {
		for x := range size {
			i := s.Index(v, x)
			if s.IsVar(i) {
				t.Errorf("Index(%d,%d) = %d is a variable index", v, x, i)
			}
			gv, gx := s.VarVal(i)
			if gv != v || gx != x {
				t.Errorf("VarVal(%d) = (%d,%d), want (%d,%d)", i, gv, gx, v, x)
			}
		}
	}
}

func TestNewIndexSpace_Empty(t *testing.T) {
	s, err := NewIndexSpace(nil)
	if err != nil {
		t.Fatalf("NewIndexSpace(nil): %v", err)
	}
	if s.Len() != 0 || s.NumVars() != 0 {
		t.Errorf("empty space has Len %d, NumVars %d", s.Len(), s.NumVars())
	}
	if !Identity(s).Identity() {
		t.Error("identity over empty space should be the identity")
	}
}

func TestNewIndexSpace_Invalid(t *testing.T) {
	if _, err := NewIndexSpace([]int{2, 0}); err == nil {
		t.Error("zero domain size should be rejected")
	}
}

func TestIndexSpaceFromTables(t *testing.T) {
	want, _ := NewIndexSpace([]int{2, 3})
	got, err := IndexSpaceFromTables(2, []int{2, 4}, []int{0, 0, 1, 1, 1})
	if err != nil {
		t.Fatalf("IndexSpaceFromTables: %v", err)
	}
	if !got.Equal(want) {
		t.Error("tables should describe the same layout as NewIndexSpace([2 3])")
	}
}

func TestIndexSpaceFromTables_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		numVars  int
		domSum   []int
		varByVal []int
	}{
		{"negative vars", -1, nil, nil},
		{"table length", 2, []int{2}, []int{0, 1}},
		{"first offset", 2, []int{3, 4}, []int{0, 0, 1}},
		{"not increasing", 2, []int{2, 2}, []int{1, 1}},
		{"empty last domain", 2, []int{2, 4}, []int{0, 0}},
		{"wrong owner", 2, []int{2, 4}, []int{0, 1, 1, 1}},
		{"values without variables", 0, nil, []int{0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := IndexSpaceFromTables(tt.numVars, tt.domSum, tt.varByVal)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidIndexSpace) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidIndexSpace)
			}
		})
	}
}

func TestIndexSpace_ValidateState(t *testing.T) {
	s, _ := NewIndexSpace([]int{2, 3})
	if err := s.ValidateState(State{1, 2}); err != nil {
		t.Errorf("ValidateState([1,2]) = %v", err)
	}
	if err := s.ValidateState(State{2, 0}); err == nil {
		t.Error("out-of-domain value should be rejected")
	}
	if err := s.ValidateState(State{0}); err == nil {
		t.Error("short state should be rejected")
	}
}
