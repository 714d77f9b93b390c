package group

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/orbit/pkg/perm"
)

// Group is an ordered set of symmetry generators over one index space.
//
// The zero value is not usable; create groups with New. A Group must be
// populated with ComputeSymmetries before it is queried, and the population
// must happen before any concurrent queries start.
type Group struct {
	logger *log.Logger

	mu        sync.Mutex
	populated bool

	space      *perm.IndexSpace
	gens       []*perm.Permutation
	identities int
	invalid    int
	exhausted  bool
}

// Option configures a Group.
type Option func(*Group)

// WithLogger sets the logger used while populating the group.
// A nil logger keeps the default, which discards all output.
func WithLogger(l *log.Logger) Option {
	return func(g *Group) {
		if l != nil {
			g.logger = l
		}
	}
}

// New creates an empty, unpopulated group.
func New(opts ...Option) *Group {
	g := &Group{
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Populated reports whether ComputeSymmetries has completed successfully.
func (g *Group) Populated() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.populated
}

// HasSymmetries reports whether the group holds at least one generator.
func (g *Group) HasSymmetries() bool { return len(g.gens) > 0 }

// NumGenerators returns the number of stored generators.
func (g *Group) NumGenerators() int { return len(g.gens) }

// Generator returns generator i in discovery order.
func (g *Group) Generator(i int) *perm.Permutation { return g.gens[i] }

// Generators returns the generators in discovery order. The slice is a
// copy; the permutations are shared and immutable.
func (g *Group) Generators() []*perm.Permutation {
	out := make([]*perm.Permutation, len(g.gens))
	copy(out, g.gens)
	return out
}

// Space returns the index space of the generators, or nil before
// population.
func (g *Group) Space() *perm.IndexSpace { return g.space }

// Discarded returns the number of identity generators dropped during
// population.
func (g *Group) Discarded() int { return g.identities }

// Exhausted reports whether discovery ran out of its budget, leaving the
// group without generators.
func (g *Group) Exhausted() bool { return g.exhausted }
