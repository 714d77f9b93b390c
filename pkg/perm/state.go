package perm

import (
	"slices"
	"strconv"
	"strings"
)

// State assigns a value to every task variable, indexed by variable.
type State []int

// Clone returns an independent copy of s.
func (s State) Clone() State { return slices.Clone(s) }

// Equal reports whether s and o assign the same values.
func (s State) Equal(o State) bool { return slices.Equal(s, o) }

// Compare orders states lexicographically by variable index: the first
// differing variable decides and the smaller value wins. This is the total
// order canonical representatives are minimal under.
func (s State) Compare(o State) int { return slices.Compare(s, o) }

// Less reports whether s precedes o in the order defined by Compare.
func (s State) Less(o State) bool { return slices.Compare(s, o) < 0 }

// String renders s as comma-separated values, e.g. "0,1,1".
func (s State) String() string {
	parts := make([]string, len(s))
	for i, v := range s {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// Apply returns the image of state under p as a new vector.
//
// The value x of variable v is encoded as index DomSum(v)+x, mapped through
// p, and decoded again; because p maps v's values into the values of
// p.Value(v), every variable of the image receives exactly one value.
// state must hold one value per variable of p's index space.
func (p *Permutation) Apply(state State) State {
	out := make(State, len(state))
	p.applyInto(out, state)
	return out
}

func (p *Permutation) applyInto(dst, src State) {
	if len(src) != p.space.NumVars() {
		panic("perm: state length does not match the number of variables")
	}
	for v, x := range src {
		to, val := p.space.VarVal(p.image[p.space.Index(v, x)])
		dst[to] = val
	}
}

// ReplaceIfLess overwrites state with its image under p if the image is
// strictly smaller in the order defined by State.Compare, and reports
// whether it did. Otherwise state is left untouched.
//
// The image is decoded variable by variable and compared on the way, so a
// rejected image costs no allocation.
func (p *Permutation) ReplaceIfLess(state State) bool {
	if p.identity {
		return false
	}
	if len(state) != p.space.NumVars() {
		panic("perm: state length does not match the number of variables")
	}
	for w, cur := range state {
		v := p.preVar[w]
		_, val := p.space.VarVal(p.image[p.space.Index(v, state[v])])
		if val == cur {
			continue
		}
		if val > cur {
			return false
		}
		image := make(State, len(state))
		p.applyInto(image, state)
		copy(state, image)
		return true
	}
	return false
}
