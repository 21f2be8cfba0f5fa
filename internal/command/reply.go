// Package command implements spec.md §2's "commands/glue" 10% share: a
// thin per-command layer translating internal/engine results into the
// reply-shape conventions of spec.md §6 (integer/bulk/multi-bulk/nil/
// error) as plain Go values, since the wire codec itself stays out of
// scope.
//
// Grounded on mshaverdo-radish's core.Core
// (other_examples/9c0cacde_mshaverdo-radish__core-core.go.go): one
// exported method per command, sentinel errors instead of panics, and
// the `@command NAME` / `@modifying` doc-comment convention identifying
// each method's wire name and replication weight.
package command

import "github.com/dreamware/torua/internal/engine"

// ReplyKind tags the shape of a Reply per spec.md §6's "Reply
// conventions."
type ReplyKind int

const (
	// KindInteger: a count or boolean (0/1).
	KindInteger ReplyKind = iota
	// KindBulk: a single element.
	KindBulk
	// KindNilBulk: a miss.
	KindNilBulk
	// KindMultiBulk: a sequence of elements.
	KindMultiBulk
	// KindError: wrong-type, out-of-range, syntax, or no-such-key.
	KindError
)

// Reply is the engine-agnostic result of a command, independent of any
// wire encoding.
type Reply struct {
	Kind  ReplyKind
	Int   int64
	Bulk  []byte
	Multi [][]byte
	Err   error
}

func integerReply(n int) Reply         { return Reply{Kind: KindInteger, Int: int64(n)} }
func boolReply(b bool) Reply           { return integerReply(boolToInt(b)) }
func bulkReply(b []byte) Reply         { return Reply{Kind: KindBulk, Bulk: b} }
func nilBulkReply() Reply              { return Reply{Kind: KindNilBulk} }
func multiBulkReply(items [][]byte) Reply {
	return Reply{Kind: KindMultiBulk, Multi: items}
}
func errorReply(err error) Reply { return Reply{Kind: KindError, Err: err} }

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Result is what Dispatch returns: either a Reply ready to send back, or
// a Waiter the caller's own connection goroutine must Wait() on (its Wait
// shapes the eventual Delivery into a Reply), per spec.md §5's "blocking
// commands do not suspend a coroutine — they return immediately after
// registering the client."
type Result struct {
	Reply      Reply
	Waiter     *WaiterHandle
	Replication *engine.ReplicationRewrite
}
