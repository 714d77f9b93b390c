// Package group stores the structural symmetries of a planning task and
// answers the two queries state-space search needs from them.
//
// # Overview
//
// A [Group] holds the generators of a symmetry group as [perm.Permutation]
// values. The group they generate is never enumerated. Instead, queries work
// directly on the generators:
//
//   - [Group.CanonicalRepresentative] maps a state to a fixed representative
//     of its orbit by repeatedly applying any generator that makes the state
//     lexicographically smaller, until no generator does.
//   - [Group.TraceToCanonical] records which generators that sweep applied,
//     and [Group.PermutationFromTrace] turns the record back into a single
//     permutation.
//   - [Group.PermutationBetween] maps one state onto another state of the
//     same orbit, which is how plans found in canonical space are turned
//     back into concrete plans.
//
// The canonical representative is a heuristic normal form: symmetric states
// usually, but not always, share it. Search only relies on it being a
// deterministic function of the state.
//
// # Population
//
// A group is filled exactly once with [Group.ComputeSymmetries] from one of
// two sources:
//
//   - [DiscovererSource] runs a [Discoverer] on a task under an optional
//     time bound. A discoverer that runs out of its budget leaves the group
//     empty rather than failing, so search continues without pruning.
//   - [PrecomputedSource] adopts raw generators produced by an earlier
//     compilation stage, together with their index space.
//
// Identity generators are dropped and counted. After population the group is
// read-only and all queries are safe for concurrent use.
//
// # Example
//
//	g := group.New(group.WithLogger(logger))
//	err := g.ComputeSymmetries(ctx, group.PrecomputedSource{
//	    Space:      space,
//	    Generators: [][]int{{1, 0, 4, 5, 2, 3}},
//	})
//	canon := g.CanonicalRepresentative(perm.State{1, 0}) // [0 1]
package group
