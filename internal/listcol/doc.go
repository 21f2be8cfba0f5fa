// Package listcol implements the List Container (spec.md §4.C): an
// ordered, duplicate-permitting sequence with two interchangeable
// physical encodings.
//
// # Encodings
//
// EncodingZip packs entries contiguously in an internal/ziplist, a single
// slice with O(1) indexed access, O(n) inserts and removals away from the
// tail, and minimal overhead for short lists of small values. EncodingLinked stores *object.Object nodes in an
// internal/linkedlist (container/list underneath), giving O(min(i,
// n-i)) indexed access and O(1) head/tail push and pop regardless of
// length.
//
// Promotion from ZIP to LINKED is one-way and automatic: it happens when
// a push, set, or insert would make the list longer than
// list-max-ziplist-entries, or would store a byte value longer than
// list-max-ziplist-value (integer values never trigger this check). A List is never demoted (spec.md §8, "Encoding
// monotonicity" applies here the same way it does to setcol.Set).
//
// # Ownership
//
// A LINKED-encoded List owns one reference per contained node, the same
// scoped-acquisition discipline internal/object documents. A ZIP-encoded
// List owns nothing beyond its own packed bytes/ints — internal/ziplist
// entries are never reference-counted objects, mirroring how
// setcol.Set's INT encoding holds no object references either.
//
// # Grounding
//
// The encoding-discriminant-plus-two-implementations shape and the
// never-demote promotion bookkeeping follow the same pattern
// internal/setcol establishes for the Set Container, which in turn
// grounds on the one-way ShardState transitions in the teacher's
// internal/shard.Shard.
package listcol
