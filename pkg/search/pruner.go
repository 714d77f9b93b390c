package search

import (
	"github.com/matzehuels/orbit/pkg/errors"
	"github.com/matzehuels/orbit/pkg/group"
	"github.com/matzehuels/orbit/pkg/observability"
	"github.com/matzehuels/orbit/pkg/perm"
)

// Pruner applies a symmetry mode to the states a search generates.
// It is safe for concurrent use.
type Pruner struct {
	mode   Mode
	active bool
	group  *group.Group
}

// NewPruner validates opts and binds them to g. A pruning mode needs a
// populated group; ModeNone accepts a nil group.
//
// A group without generators makes every mode behave like ModeNone.
func NewPruner(opts Options, g *group.Group) (*Pruner, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Mode.Prunes() {
		if g == nil {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "search symmetry mode %s needs a symmetry group", opts.Mode)
		}
		if !g.Populated() {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "symmetry group must be populated before search")
		}
	}
	return &Pruner{
		mode:   opts.Mode,
		active: opts.Mode.Prunes() && g.HasSymmetries(),
		group:  g,
	}, nil
}

// Mode returns the configured mode.
func (p *Pruner) Mode() Mode { return p.mode }

// Active reports whether the pruner changes any state, that is whether a
// pruning mode is configured and the group has generators.
func (p *Pruner) Active() bool { return p.active }

// StateKey returns the key under which state is stored for duplicate
// detection. Under ModeDKS this is the canonical representative; otherwise
// it is state itself, which under ModeOSS is already canonical.
func (p *Pruner) StateKey(state perm.State) perm.State {
	if !p.active || p.mode != ModeDKS {
		return state
	}
	return p.canonical(state)
}

// Successor returns the state a search should store for a freshly
// generated successor. Under ModeOSS this is the canonical representative;
// otherwise the successor is returned unchanged.
func (p *Pruner) Successor(state perm.State) perm.State {
	if !p.active || p.mode != ModeOSS {
		return state
	}
	return p.canonical(state)
}

func (p *Pruner) canonical(state perm.State) perm.State {
	canon := p.group.CanonicalRepresentative(state)
	observability.Search().OnCanonicalize(p.mode.String(), !canon.Equal(state))
	return canon
}

// Step is one transition of a path found in canonical space: Successor
// was generated from the canonical state Parent.
type Step struct {
	Parent    perm.State
	Successor perm.State
}

// Reconstruct turns a path found under ModeOSS back into a concrete path
// starting at init. It returns the concrete states, one more than steps,
// and for each step the permutation mapping the canonical parent onto the
// concrete parent; applying it to the operator used in canonical space
// yields the concrete operator.
//
// When a step starts at the canonical form of the previous successor, the
// previous mapping is carried forward through that successor's trace.
// Greedy canonical forms are not unique within an orbit, so rebuilding the
// mapping from the concrete state alone could miss it. Other steps, and
// the first one, fall back to Group.PermutationBetween.
//
// Without an active pruner every permutation is the identity (nil when no
// group is bound). It fails with INVALID_STATE when a step's parent cannot
// be mapped onto the concrete state reached so far.
func (p *Pruner) Reconstruct(init perm.State, steps []Step) ([]perm.State, []*perm.Permutation, error) {
	states := make([]perm.State, 0, len(steps)+1)
	perms := make([]*perm.Permutation, 0, len(steps))
	states = append(states, init.Clone())

	var (
		carried *perm.Permutation // maps next onto the last concrete state
		next    perm.State        // canonical form of the previous successor
	)
	for i, st := range steps {
		cur := states[len(states)-1]
		if !p.active {
			if !st.Parent.Equal(cur) {
				return nil, nil, errors.New(errors.ErrCodeInvalidState,
					"step %d starts at %s, path is at %s", i, st.Parent, cur)
			}
			var id *perm.Permutation
			if p.group != nil && p.group.Space() != nil {
				id = perm.Identity(p.group.Space())
			}
			states = append(states, st.Successor.Clone())
			perms = append(perms, id)
			continue
		}

		sigma := carried
		if sigma == nil || !st.Parent.Equal(next) {
			sigma = p.group.PermutationBetween(st.Parent, cur)
		}
		if !sigma.Apply(st.Parent).Equal(cur) {
			return nil, nil, errors.New(errors.ErrCodeInvalidState,
				"step %d starts at %s, which cannot be mapped onto %s", i, st.Parent, cur)
		}
		states = append(states, sigma.Apply(st.Successor))
		perms = append(perms, sigma)

		var trace group.Trace
		next, trace = p.group.Canonicalize(st.Successor)
		carried = p.group.PermutationFromTrace(trace).Inverse().Compose(sigma)
	}
	return states, perms, nil
}
