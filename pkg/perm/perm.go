package perm

import (
	"slices"
	"sync"

	"github.com/matzehuels/orbit/pkg/errors"
)

// Seq returns a slice containing the sequence [0, 1, 2, ..., n-1].
// This is the raw form of the identity permutation of length n.
//
// For n <= 0, Seq returns an empty slice.
func Seq(n int) []int {
	result := make([]int, max(n, 0))
	for i := range result {
		result[i] = i
	}
	return result
}

// Permutation is an immutable bijection over the index space of a task.
//
// Variables are only ever mapped to variables and values only to values, and
// the values of one variable all move to the values of a single variable.
// NewPermutation rejects raw arrays that break these rules.
//
// The zero value is not usable; construct permutations with NewPermutation,
// Identity, Compose or Inverse. All methods are safe for concurrent use.
type Permutation struct {
	space    *IndexSpace
	image    []int
	preVar   []int // variable mapped onto each variable
	identity bool

	cyclesOnce sync.Once
	cycles     [][]int
	order      int
}

// NewPermutation validates raw against space and returns the permutation it
// describes. raw is copied.
//
// The returned error has code INVALID_PERMUTATION when raw has the wrong
// length, is not a bijection, mixes variable and value indices, or splits
// the values of one variable across several variables.
func NewPermutation(space *IndexSpace, raw []int) (*Permutation, error) {
	if err := validate(space, raw); err != nil {
		return nil, err
	}
	return newPermutation(space, slices.Clone(raw)), nil
}

// MustPermutation is like NewPermutation but panics on invalid input.
// It is intended for tests and statically known generators.
func MustPermutation(space *IndexSpace, raw []int) *Permutation {
	p, err := NewPermutation(space, raw)
	if err != nil {
		panic(err)
	}
	return p
}

// Identity returns the identity permutation of space.
func Identity(space *IndexSpace) *Permutation {
	return newPermutation(space, Seq(space.Len()))
}

// newPermutation takes ownership of image, which must already be valid.
func newPermutation(space *IndexSpace, image []int) *Permutation {
	preVar := make([]int, space.NumVars())
	for v := range preVar {
		preVar[image[v]] = v
	}
	return &Permutation{
		space:    space,
		image:    image,
		preVar:   preVar,
		identity: IsIdentityRaw(image),
	}
}

func validate(space *IndexSpace, raw []int) error {
	if len(raw) != space.Len() {
		return errors.New(errors.ErrCodeInvalidPermutation,
			"length %d does not match permutation length %d", len(raw), space.Len())
	}
	if !IsPermutation(raw) {
		return errors.New(errors.ErrCodeInvalidPermutation, "image is not a bijection over [0,%d)", len(raw))
	}
	n := space.NumVars()
	for i, j := range raw {
		if space.IsVar(i) != space.IsVar(j) {
			return errors.New(errors.ErrCodeInvalidPermutation,
				"index %d maps to %d across the variable/value boundary", i, j)
		}
		if i < n {
			continue
		}
		from, to := space.VarOf(i), space.VarOf(j)
		if raw[from] != to {
			return errors.New(errors.ErrCodeInvalidPermutation,
				"value index %d of variable %d maps into variable %d, but the variable maps to %d",
				i, from, to, raw[from])
		}
	}
	return nil
}

// Space returns the index space the permutation acts on.
func (p *Permutation) Space() *IndexSpace { return p.space }

// Len returns the permutation length L.
func (p *Permutation) Len() int { return len(p.image) }

// Value returns the image of a single index.
func (p *Permutation) Value(index int) int { return p.image[index] }

// Identity reports whether every index maps to itself.
func (p *Permutation) Identity() bool { return p.identity }

// Raw returns a copy of the image array.
func (p *Permutation) Raw() []int { return slices.Clone(p.image) }

// Equal reports whether p and o map every index identically.
func (p *Permutation) Equal(o *Permutation) bool {
	return p.space.Equal(o.space) && slices.Equal(p.image, o.image)
}

// Compose returns the permutation that applies p first and then other:
// the result maps i to other.Value(p.Value(i)).
//
// Compose panics if the permutations act on different index spaces; that is
// a programming error, not a runtime condition.
func (p *Permutation) Compose(other *Permutation) *Permutation {
	if !p.space.Equal(other.space) {
		panic(errors.New(errors.ErrCodeInternal,
			"compose: permutation lengths %d and %d over different index spaces", p.Len(), other.Len()))
	}
	image := make([]int, len(p.image))
	for i, j := range p.image {
		image[i] = other.image[j]
	}
	return newPermutation(p.space, image)
}

// Inverse returns the permutation q with p.Compose(q) equal to the identity.
func (p *Permutation) Inverse() *Permutation {
	image := make([]int, len(p.image))
	for i, j := range p.image {
		image[j] = i
	}
	return newPermutation(p.space, image)
}
