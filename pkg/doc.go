// Package pkg provides the libraries behind orbit, the structural-symmetry
// subsystem of a state-space planner.
//
// # Overview
//
// A structural symmetry of a planning task is a permutation of its
// variables and their values that maps the task onto itself. Symmetric
// states have symmetric futures, so a search only needs to expand one state
// per orbit. The packages are organized as:
//
//  1. [perm] - Index spaces, permutations and states
//  2. [task] - The task descriptor handed to symmetry discovery
//  3. [group] - The symmetry group: population, canonical representatives, traces
//  4. [search] - The contract a search engine uses: modes, pruner, closed lists
//  5. [store] - A BadgerDB-backed closed list for large searches
//  6. [io] - The TOML generator-set file format
//  7. [cache] - Caching of discovered generators
//
// # Architecture
//
// The typical data flow:
//
//	Generator-set file or Discoverer
//	         ↓
//	    [group] package (validate, filter identities, store generators)
//	         ↓
//	    [search] package (canonicalize states, detect duplicates)
//	         ↓
//	    Plan reconstruction (map canonical path back onto real states)
//
// # Quick Start
//
// Load a generator set and prune symmetric duplicates:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/orbit/pkg/group"
//	    "github.com/matzehuels/orbit/pkg/io"
//	    "github.com/matzehuels/orbit/pkg/search"
//	)
//
//	set, _ := io.LoadFile("gripper.toml")
//	g := group.New()
//	_ = g.ComputeSymmetries(context.Background(), group.PrecomputedSource{
//	    Space:      set.Space,
//	    Generators: set.Generators,
//	})
//
//	p, _ := search.NewPruner(search.Options{
//	    Mode:   search.ModeDKS,
//	    Source: search.SourcePrecomputed,
//	}, g)
//	closed := search.NewMemoryClosedList()
//	isNew, _ := p.CloseState(closed, set.Task.Init)
//
// # Errors
//
// Errors carry a machine-readable code from [errors]; use errors.Is with a
// code to branch on them.
//
// # Observability
//
// Hooks in [observability] report population, canonicalization and cache
// events. The [observability/prom] package implements them with Prometheus
// metrics.
package pkg
