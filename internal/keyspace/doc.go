// Package keyspace implements the core's only piece of shared mutable
// state: a key→value-object map with notify/delete hooks (spec.md §3,
// "Keyspace hook").
//
// A Keyspace stores an opaque Value under each string key; in practice
// the stored value is always either a *setcol.Set or a *listcol.List
// (the keyspace itself is container-type-agnostic; it never inspects a
// value's encoding). It is deliberately NOT
// thread-safe: spec.md §5 states "the keyspace, the blocking tables, and
// the dirty counter are process-wide mutable state, mutated only by the
// currently-executing command. No locks are required; no reentrant
// command execution is permitted," so this package carries none of the
// teacher's internal/storage.MemoryStore locking. Safe concurrent access
// is the responsibility of whatever owns the single-goroutine command
// loop (cmd/collectiond), not of this package.
//
// Grounded on the teacher's internal/storage.Store interface (Get/Put/
// Delete/List/Stats shape) and internal/storage.MemoryStore
// implementation, generalized from []byte values to an opaque value
// interface and stripped of its sync.RWMutex per the single-threaded
// invariant above.
package keyspace
