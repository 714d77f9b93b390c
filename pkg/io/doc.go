// Package io reads and writes generator-set files.
//
// # Overview
//
// A generator-set file is a TOML document written by a task-compilation
// stage that already found the symmetries of a task. It carries the
// variable layout, the raw generators and, optionally, the initial state
// and goal so that tools can work on the task without the planner:
//
//	variables = 2
//	domain_sizes = [2, 2]
//	variable_names = ["truck1", "truck2"]
//	generators = [[1, 0, 4, 5, 2, 3]]
//	init = [0, 1]
//	goal = [[0, 1]]
//
// # Index Tables
//
// Generators are arrays over the flat index space of the task (see the
// perm package). By default the index tables are derived from
// domain_sizes. Files produced by compilers that lay values out
// differently may give the tables explicitly:
//
//	dom_sum_by_var = [2, 4]
//	var_by_val = [0, 0, 1, 1]
//
// The tables are validated and must agree with domain_sizes.
//
// # Generators
//
// Each generator is an array of length variables + sum(domain_sizes).
// Entries may be -1 for "none of those" values the compiler did not map.
// Reading does not validate generators; that is left to
// group.PrecomputedSource, which can either reject or drop invalid ones.
//
// # Goal
//
// The goal is a list of [variable, value] pairs.
//
// # Reading and Writing
//
// Use [ReadGenerators] or [LoadFile] to read, [WriteGenerators] or
// [SaveFile] to write. Files written by this package read back to an
// equal [GeneratorSet]. Unknown keys are rejected so that typos do not
// silently change a task.
package io
