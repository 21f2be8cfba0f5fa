// Package engine binds the Element Literal, Set Container, List
// Container, Set Algebra Engine, and Blocking-Key Rendezvous components
// into the single-threaded command surface spec.md §6 names, resolving
// keys through a keyspace.Keyspace and consulting a blocking.Table on
// every push per spec.md §4.E.
//
// Grounded on the teacher's internal/storage.MemoryStore for the
// lookup/mutate/signal shape and on mshaverdo-radish's core.Core
// (other_examples/9c0cacde_mshaverdo-radish__core-core.go.go) for the
// sentinel-error, one-method-per-command convention this package's
// methods follow: a command never panics on a recoverable condition, it
// returns one of the errors in this file.
package engine

import "errors"

// The error kinds of spec.md §7. Categories 1-5 are the sentinel errors
// below; category 6 (pivot not found) is not an error value but LInsert's
// -1 result. Category 7 (internal invariant violation) has no sentinel
// and nothing in this tree panics for it: the one such check, a Convert
// to an undefined encoding direction, is reported by setcol and listcol
// as their ErrBadConversion error value.
var (
	// ErrWrongType: operand exists but is not the expected container.
	ErrWrongType = errors.New("WRONGTYPE Operation against a key holding the wrong kind of value")
	// ErrNoSuchKey: for operations that distinguish missing from empty.
	ErrNoSuchKey = errors.New("no such key")
	// ErrOutOfRange: index arithmetic outside [0, length) after normalization.
	ErrOutOfRange = errors.New("index out of range")
	// ErrSyntax: malformed sub-keyword (LINSERT side other than BEFORE/AFTER, etc).
	ErrSyntax = errors.New("syntax error")
	// ErrBadTimeout: non-integer or negative timeout for a blocking command.
	ErrBadTimeout = errors.New("timeout is not an integer or out of range")
)
