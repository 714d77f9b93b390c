package group

import (
	"context"
	stderrors "errors"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/orbit/pkg/errors"
	"github.com/matzehuels/orbit/pkg/perm"
	"github.com/matzehuels/orbit/pkg/task"
)

// ErrResourceExhausted is returned by a Discoverer that ran out of memory
// or another budget before finishing. The group then has no symmetries.
var ErrResourceExhausted = stderrors.New("symmetry discovery exhausted its resources")

// DiscoveryRequest is the input of a Discoverer.
type DiscoveryRequest struct {
	Task *task.Task

	// StabilizeInitialState restricts discovery to symmetries that map the
	// initial state onto itself.
	StabilizeInitialState bool

	// StabilizeGoal restricts discovery to symmetries that map the goal onto
	// itself. Search requires this; it is off only for diagnostics.
	StabilizeGoal bool
}

// RawGenerators is the output of a Discoverer. Space may be nil, in which
// case the generators are laid out over the task's own index space.
type RawGenerators struct {
	Space      *perm.IndexSpace
	Generators [][]int
}

// Discoverer finds the generators of a task's structural symmetry group.
//
// Discover must honour ctx: when ctx expires it should return
// context.DeadlineExceeded or ErrResourceExhausted promptly.
type Discoverer interface {
	Discover(ctx context.Context, req DiscoveryRequest) (*RawGenerators, error)
}

// DiscovererFunc adapts a function to the Discoverer interface.
type DiscovererFunc func(ctx context.Context, req DiscoveryRequest) (*RawGenerators, error)

// Discover calls f.
func (f DiscovererFunc) Discover(ctx context.Context, req DiscoveryRequest) (*RawGenerators, error) {
	return f(ctx, req)
}

// Source is where a group obtains its generators: either a
// DiscovererSource or a PrecomputedSource.
type Source interface {
	// Name identifies the source kind in logs and metrics.
	Name() string

	load(ctx context.Context, logger *log.Logger) (*loaded, error)
}

// loaded is the validated result of a source.
type loaded struct {
	space      *perm.IndexSpace
	gens       []*perm.Permutation
	identities int
	invalid    int
	exhausted  bool
}

// DiscoveryOptions configures a DiscovererSource.
type DiscoveryOptions struct {
	StabilizeInitialState bool
	StabilizeGoal         bool

	// TimeBound limits the discovery phase. Zero means no limit.
	TimeBound time.Duration
}

// DefaultDiscoveryOptions returns the options search uses: goal
// stabilization on, initial state free, no time bound.
func DefaultDiscoveryOptions() DiscoveryOptions {
	return DiscoveryOptions{StabilizeGoal: true}
}

// DiscovererSource populates a group by running a Discoverer on a task.
type DiscovererSource struct {
	Discoverer Discoverer
	Task       *task.Task
	Options    DiscoveryOptions
}

// Name implements Source.
func (DiscovererSource) Name() string { return "discover" }

func (s DiscovererSource) load(ctx context.Context, logger *log.Logger) (*loaded, error) {
	if s.Discoverer == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "discoverer source without a discoverer")
	}
	if s.Task == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "discoverer source without a task")
	}
	if s.Options.TimeBound < 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "negative time bound %s", s.Options.TimeBound)
	}
	if err := s.Task.Validate(); err != nil {
		return nil, err
	}
	space, err := s.Task.IndexSpace()
	if err != nil {
		return nil, err
	}

	dctx := ctx
	if s.Options.TimeBound > 0 {
		var cancel context.CancelFunc
		dctx, cancel = context.WithTimeout(ctx, s.Options.TimeBound)
		defer cancel()
	}

	raw, err := s.Discoverer.Discover(dctx, DiscoveryRequest{
		Task:                  s.Task,
		StabilizeInitialState: s.Options.StabilizeInitialState,
		StabilizeGoal:         s.Options.StabilizeGoal,
	})
	if err != nil {
		if exhausted(ctx, err) {
			logger.Warn("symmetry discovery exhausted, continuing without symmetries", "err", err)
			return &loaded{space: space, exhausted: true}, nil
		}
		return nil, fmt.Errorf("discover symmetries: %w", err)
	}
	if raw == nil {
		return &loaded{space: space}, nil
	}
	if raw.Space != nil {
		if raw.Space.NumVars() != space.NumVars() {
			return nil, errors.New(errors.ErrCodeInvalidIndexSpace,
				"discoverer returned %d variables for a task with %d", raw.Space.NumVars(), space.NumVars())
		}
		if !slices.Equal(raw.Space.DomainSizes(), space.DomainSizes()) {
			return nil, errors.New(errors.ErrCodeInvalidIndexSpace,
				"discoverer returned domain sizes %v for a task with %v", raw.Space.DomainSizes(), space.DomainSizes())
		}
		space = raw.Space
	}

	out := &loaded{space: space}
	for i, r := range raw.Generators {
		p, err := perm.NewPermutation(space, r)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPermutation, err, "generator %d", i)
		}
		if p.Identity() {
			out.identities++
			continue
		}
		out.gens = append(out.gens, p)
	}
	return out, nil
}

// exhausted reports whether err means the discoverer ran out of budget
// rather than failed. A deadline only counts when it was the discovery
// bound that expired, not the caller's context.
func exhausted(parent context.Context, err error) bool {
	if stderrors.Is(err, ErrResourceExhausted) {
		return true
	}
	return stderrors.Is(err, context.DeadlineExceeded) && parent.Err() == nil
}

// PrecomputedSource populates a group from generators computed ahead of
// time, for example by the task compiler.
type PrecomputedSource struct {
	Space      *perm.IndexSpace
	Generators [][]int

	// DropInvalid skips generators that are not valid permutations of Space
	// instead of failing, counting them as discarded.
	DropInvalid bool
}

// Name implements Source.
func (PrecomputedSource) Name() string { return "precomputed" }

func (s PrecomputedSource) load(_ context.Context, logger *log.Logger) (*loaded, error) {
	if s.Space == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "precomputed source without an index space")
	}
	if s.DropInvalid {
		res := FilterGenerators(s.Space, s.Generators)
		if res.Invalid > 0 {
			logger.Warn("dropped invalid generators", "count", res.Invalid, "total", len(s.Generators))
		}
		return &loaded{
			space:      s.Space,
			gens:       res.Generators,
			identities: res.Identities,
			invalid:    res.Invalid,
		}, nil
	}

	out := &loaded{space: s.Space}
	for i, r := range s.Generators {
		p, err := adopt(s.Space, r)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPermutation, err, "generator %d", i)
		}
		if p.Identity() {
			out.identities++
			continue
		}
		out.gens = append(out.gens, p)
	}
	return out, nil
}

// FilterResult is the outcome of FilterGenerators.
type FilterResult struct {
	Generators []*perm.Permutation
	Identities int
	Invalid    int
}

// FilterGenerators converts raw generators into permutations of space,
// completing undefined entries and dropping identities and anything that
// is not a valid permutation.
func FilterGenerators(space *perm.IndexSpace, raws [][]int) FilterResult {
	var res FilterResult
	for _, r := range raws {
		p, err := adopt(space, r)
		switch {
		case err != nil:
			res.Invalid++
		case p.Identity():
			res.Identities++
		default:
			res.Generators = append(res.Generators, p)
		}
	}
	return res
}

// adopt completes undefined entries of raw and validates it against space.
func adopt(space *perm.IndexSpace, raw []int) (*perm.Permutation, error) {
	completed, ok := perm.Complete(raw)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidPermutation, "not a bijection after completing undefined entries")
	}
	return perm.NewPermutation(space, completed)
}
