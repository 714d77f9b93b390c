// Package search connects a symmetry group to a state-space search.
//
// The search engine itself lives elsewhere; this package fixes the contract
// between it and a [group.Group]:
//
//   - [Options] selects a [Mode] and where the symmetries come from, and
//     rejects combinations the pruning modes cannot support.
//   - [Pruner] maps generated states to the states or keys the search
//     should store, and turns plans found in canonical space back into
//     concrete plans.
//   - [ClosedList] stores duplicate-detection keys, in memory
//     ([MemoryClosedList]) or on disk (see the store package).
//
// # Modes
//
// Under [ModeOSS] every successor is replaced by its canonical
// representative before it enters the open list, so the search explores
// one state per orbit and the resulting plan must be reconstructed with
// [Pruner.Reconstruct].
//
// Under [ModeDKS] the search keeps concrete states but closes them under
// their canonical key, so a state is pruned when a symmetric state has
// already been closed. Plans need no reconstruction.
//
// A group without generators turns both modes into [ModeNone].
package search
