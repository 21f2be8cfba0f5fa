// Package setalgebra implements the Set Algebra Engine (spec.md §4.D):
// multi-key SINTER/SUNION/SDIFF, each with an optional STORE destination.
//
// Every operation takes an ordered list of source keys resolved through
// a keyspace.Keyspace, type-checks every existing source before any
// mutation, and (for the STORE variants) applies the same
// destination-install discipline: delete any existing destination value
// first, install the result only if non-empty, and emit exactly one
// signal-modified per affected key regardless of how many keyspace calls
// that took.
//
// The intersection algorithm sorts sources by cardinality ascending
// using golang.org/x/exp/slices (already part of the teacher's
// dependency graph via internal/coordinator's health-monitor ordering
// code) before iterating the smallest set, matching spec.md §4.D's
// stated complexity goal.
package setalgebra
