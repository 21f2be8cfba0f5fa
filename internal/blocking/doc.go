// Package blocking implements the Blocking-Key Rendezvous (spec.md §4.E):
// the per-database waiter table that BLPOP/BRPOP/BRPOPLPUSH park clients
// against, and the delivery protocol a push consults before it lands in
// a list.
//
// Grounded on the teacher's internal/coordinator.ShardRegistry — a
// map behind accessor methods that return copies, never raw internals —
// generalized from shard assignments to per-key waiter queues. The
// deadline sweeper is grounded on internal/coordinator.HealthMonitor's
// ticker + context.Context Start/Stop lifecycle, ticking over blocked
// waiters instead of cluster nodes.
//
// Unlike both teacher ancestors, Table carries no mutex: spec.md §5
// states the keyspace and blocking tables are mutated only by the
// currently-executing command on a single goroutine, so the concurrency
// safety those teacher types build in has no job to do here. The single
// remaining concurrent actor is the sweep ticker, which is expected to
// run on the same command goroutine as every other mutation (see
// cmd/collectiond, whose engine loop selects on its ticker alongside the
// client command channel and calls Sweep inline rather than from a
// goroutine of its own).
package blocking
