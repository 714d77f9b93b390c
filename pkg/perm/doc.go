// Package perm provides permutations over the encoded state description of a
// planning task.
//
// # Overview
//
// A structural symmetry of a planning task renames variables and their
// values without changing the transition structure. This package represents
// such a symmetry as a [Permutation] over one flat [IndexSpace]:
//
//   - Indices [0, V) stand for the V task variables
//   - Indices [V, L) stand for every (variable, value) fact, variable by variable
//
// For two binary variables the layout is:
//
//	index:  0   1   2     3     4     5
//	means:  v0  v1  v0=0  v0=1  v1=0  v1=1
//
// and swapping the two variables is the raw permutation [1 0 4 5 2 3].
//
// # Applying Permutations to States
//
// A [State] holds one value per variable. [Permutation.Apply] encodes each
// value as a fact index, maps it, and decodes the result. Because a valid
// permutation sends all values of one variable to the values of a single
// variable, the image is again a complete state.
//
// [Permutation.ReplaceIfLess] is the primitive canonicalization is built on:
// it replaces a state with its image only if the image is lexicographically
// smaller (first differing variable decides, smaller value wins).
//
// # Algebra
//
// Permutations are immutable. [Permutation.Compose] applies the receiver
// first and its argument second; [Permutation.Inverse] undoes a permutation.
// Cycle structure and order are computed on first use and cached.
//
// # Raw Generators
//
// Symmetry discoverers and task compilers hand over raw []int arrays.
// [NewPermutation] validates them; [IsPermutation], [IsIdentityRaw] and
// [Complete] help filter precomputed generator sets, which may leave
// "none of those" values [Undefined].
package perm
