// Package setcol implements the Set Container (spec.md §4.B): an
// unordered, unique-element collection with two interchangeable physical
// encodings.
//
// # Encodings
//
// EncodingInt packs integer-only elements into a sorted internal/intset
// array with O(log n) membership and exactly-uniform random sampling.
// EncodingHash stores arbitrary byte-valued elements in an
// internal/hashtable open-addressed table.
//
// Promotion from INT to HASH is one-way and automatic: it happens when a
// non-integer element is added, or when the intset's cardinality would
// exceed the configured set-max-intset-entries. A Set is never demoted
// and never regresses HASH → INT (spec.md §8, "Encoding monotonicity").
//
// # Ownership
//
// A Set owns one reference (via *object.Object.IncrRef) per contained
// HASH-encoded element; INT-encoded elements are stored as bare int64 and
// own nothing. Iterators borrow from the set and are invalid after any
// mutation, including promotion. Nothing enforces this: a HASH iterator
// keeps walking the slot array it captured at creation, and an INT
// iterator reads the live intset array on every Next.
//
// # Grounding
//
// The encoding-discriminant-plus-two-implementations shape follows
// spec.md §9's own suggested re-expression; the promotion bookkeeping
// and "never demote" invariant mirror the one-way ShardState transitions
// documented in the teacher's internal/shard.Shard (Active → Migrating →
// Deleted is one-directional the same way INT → HASH is).
package setcol
