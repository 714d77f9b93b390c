package group

import (
	"github.com/matzehuels/orbit/pkg/perm"
)

// Trace lists the indices of the generators applied, in order, while
// canonicalizing a state.
type Trace []int

// CanonicalRepresentative returns the canonical form of state. state is not
// modified. Without generators the result is a copy of state.
func (g *Group) CanonicalRepresentative(state perm.State) perm.State {
	canon, _ := g.sweep(state, false)
	return canon
}

// TraceToCanonical returns the generators that CanonicalRepresentative
// applies to state, in order. The trace is empty when state is already
// canonical.
func (g *Group) TraceToCanonical(state perm.State) Trace {
	_, trace := g.sweep(state, true)
	return trace
}

// Canonicalize returns both the canonical form of state and its trace.
func (g *Group) Canonicalize(state perm.State) (perm.State, Trace) {
	return g.sweep(state, true)
}

// sweep runs over all generators, replacing the state by any smaller
// image, until a full pass changes nothing. Every replacement makes the
// state strictly smaller and the state set is finite, so it terminates.
func (g *Group) sweep(state perm.State, record bool) (perm.State, Trace) {
	canon := state.Clone()
	var trace Trace
	if record {
		trace = Trace{}
	}
	if len(g.gens) == 0 {
		return canon, trace
	}
	for changed := true; changed; {
		changed = false
		for i, p := range g.gens {
			if p.ReplaceIfLess(canon) {
				changed = true
				if record {
					trace = append(trace, i)
				}
			}
		}
	}
	return canon, trace
}

// PermutationFromTrace folds the traced generators into one permutation,
// applying them in trace order. An empty trace yields the identity.
//
// It panics if the group is unpopulated or a trace entry is not a
// generator index.
func (g *Group) PermutationFromTrace(trace Trace) *perm.Permutation {
	p := perm.Identity(g.mustSpace())
	for _, i := range trace {
		p = p.Compose(g.gens[i])
	}
	return p
}

// PermutationBetween returns a permutation that maps from onto to. Both
// states must lie in the same orbit, which holds whenever they share a
// canonical representative; otherwise the result is unspecified.
func (g *Group) PermutationBetween(from, to perm.State) *perm.Permutation {
	down := g.PermutationFromTrace(g.TraceToCanonical(from))
	up := g.PermutationFromTrace(g.TraceToCanonical(to)).Inverse()
	return down.Compose(up)
}

func (g *Group) mustSpace() *perm.IndexSpace {
	if g.space == nil {
		panic("group: query needs a populated group")
	}
	return g.space
}
