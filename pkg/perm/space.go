package perm

import (
	"slices"

	"github.com/matzehuels/orbit/pkg/errors"
)

// IndexSpace describes the flat index space every permutation of a task acts
// on. Indices [0, NumVars) are the variables themselves; the remaining
// indices enumerate every (variable, value) pair, variable by variable.
//
// An IndexSpace is immutable after construction and may be shared by any
// number of permutations and goroutines.
type IndexSpace struct {
	numVars     int
	length      int
	domSumByVar []int // offset of each variable's first value index
	varByVal    []int // variable owning index V+i, for i in [0, L-V)
}

// NewIndexSpace lays out the index space for variables with the given
// domain sizes. Values of variable v occupy indices
// [DomSum(v), DomSum(v)+sizes[v]).
func NewIndexSpace(sizes []int) (*IndexSpace, error) {
	if err := errors.ValidateDomainSizes(sizes); err != nil {
		return nil, err
	}
	n := len(sizes)
	s := &IndexSpace{
		numVars:     n,
		domSumByVar: make([]int, n),
	}
	next := n
	for v, size := range sizes {
		s.domSumByVar[v] = next
		for range size {
			s.varByVal = append(s.varByVal, v)
		}
		next += size
	}
	s.length = next
	return s, nil
}

// IndexSpaceFromTables adopts precomputed tables, as written by an earlier
// task-compilation stage. The tables are copied and validated: domSumByVar
// must start right after the variable block and increase strictly, and
// varByVal must be the exact inverse of the partition it induces.
func IndexSpaceFromTables(numVars int, domSumByVar, varByVal []int) (*IndexSpace, error) {
	if numVars < 0 {
		return nil, errors.New(errors.ErrCodeInvalidIndexSpace, "negative variable count %d", numVars)
	}
	if len(domSumByVar) != numVars {
		return nil, errors.New(errors.ErrCodeInvalidIndexSpace,
			"dom_sum_by_var has %d entries, want %d", len(domSumByVar), numVars)
	}
	length := numVars + len(varByVal)
	for v, start := range domSumByVar {
		end := length
		if v+1 < numVars {
			end = domSumByVar[v+1]
		}
		switch {
		case v == 0 && start != numVars:
			return nil, errors.New(errors.ErrCodeInvalidIndexSpace,
				"values of variable 0 start at %d, want %d", start, numVars)
		case end <= start:
			return nil, errors.New(errors.ErrCodeInvalidIndexSpace,
				"dom_sum_by_var is not strictly increasing at variable %d", v)
		case end > length:
			return nil, errors.New(errors.ErrCodeInvalidIndexSpace,
				"domain of variable %d exceeds permutation length %d", v, length)
		}
		for i := start; i < end; i++ {
			if varByVal[i-numVars] != v {
				return nil, errors.New(errors.ErrCodeInvalidIndexSpace,
					"var_by_val[%d] = %d, want %d", i-numVars, varByVal[i-numVars], v)
			}
		}
	}
	if numVars == 0 && len(varByVal) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidIndexSpace, "values without variables")
	}
	return &IndexSpace{
		numVars:     numVars,
		length:      length,
		domSumByVar: slices.Clone(domSumByVar),
		varByVal:    slices.Clone(varByVal),
	}, nil
}

// NumVars returns V, the number of task variables.
func (s *IndexSpace) NumVars() int { return s.numVars }

// Len returns L, the permutation length.
func (s *IndexSpace) Len() int { return s.length }

// DomSum returns the index of the first value of variable v.
func (s *IndexSpace) DomSum(v int) int { return s.domSumByVar[v] }

// DomainSize returns the number of values of variable v.
func (s *IndexSpace) DomainSize(v int) int {
	if v+1 < s.numVars {
		return s.domSumByVar[v+1] - s.domSumByVar[v]
	}
	return s.length - s.domSumByVar[v]
}

// DomainSizes returns the domain size of every variable.
func (s *IndexSpace) DomainSizes() []int {
	sizes := make([]int, s.numVars)
	for v := range sizes {
		sizes[v] = s.DomainSize(v)
	}
	return sizes
}

// IsVar reports whether index denotes a variable rather than a value.
func (s *IndexSpace) IsVar(index int) bool { return index < s.numVars }

// Index returns the flat index of the fact variable = value.
func (s *IndexSpace) Index(variable, value int) int {
	return s.domSumByVar[variable] + value
}

// VarOf returns the variable owning a value index.
func (s *IndexSpace) VarOf(index int) int {
	return s.varByVal[index-s.numVars]
}

// VarVal decodes a value index into its (variable, value) pair.
func (s *IndexSpace) VarVal(index int) (variable, value int) {
	variable = s.varByVal[index-s.numVars]
	return variable, index - s.domSumByVar[variable]
}

// DomSumByVar returns a copy of the value-offset table.
func (s *IndexSpace) DomSumByVar() []int { return slices.Clone(s.domSumByVar) }

// VarByVal returns a copy of the value-owner table. Entry i describes
// index NumVars()+i.
func (s *IndexSpace) VarByVal() []int { return slices.Clone(s.varByVal) }

// Equal reports whether two spaces describe the same layout.
func (s *IndexSpace) Equal(o *IndexSpace) bool {
	if s == o {
		return true
	}
	if s == nil || o == nil {
		return false
	}
	return s.numVars == o.numVars && s.length == o.length &&
		slices.Equal(s.domSumByVar, o.domSumByVar)
}

// ValidateState checks that state assigns an in-domain value to every
// variable of the space.
func (s *IndexSpace) ValidateState(state State) error {
	return errors.ValidateState(s.DomainSizes(), state)
}
