package command

import (
	"github.com/dreamware/torua/internal/blocking"
	"github.com/dreamware/torua/internal/engine"
)

// Command binds an engine.Engine to the command-name surface spec.md §6
// requires. Every wire command is one method here, mirroring
// mshaverdo-radish's Core; the wire-format argument parsing and reply
// serialization stay in cmd/collectiond, the concrete stand-in spec.md
// §1 calls "the command dispatch loop, wire-protocol codec" and treats
// as an external collaborator.
type Command struct {
	eng *engine.Engine
}

// New returns a Command layer over eng.
func New(eng *engine.Engine) *Command { return &Command{eng: eng} }

// kind identifies which blocking-pop family a WaiterHandle belongs to,
// so WaiterHandle.Wait knows how to shape the eventual reply.
type kind int

const (
	kindBLPop kind = iota
	kindBRPopLPush
)

// WaiterHandle pairs a blocking.Waiter with enough context to translate
// its eventual Delivery into the right Reply shape once the caller's
// connection goroutine Wait()s on it.
type WaiterHandle struct {
	w    *blocking.Waiter
	kind kind
}

// Wait blocks until the underlying waiter is delivered to, expires, or
// is canceled, then shapes the result into a Reply.
//
// A Rejected delivery means TryDeliver skipped this waiter because its
// target key existed but was not a list (spec.md §4.E, §9 open question
// (b)); it surfaces as the same wrong-type error the waiter would have
// gotten had it raced a non-blocking RPOPLPUSH against that key instead
// of parking.
func (h *WaiterHandle) Wait() Reply {
	d := h.w.Wait()
	if d.Timeout {
		return nilBulkReply()
	}
	if d.Rejected {
		return errorReply(engine.ErrWrongType)
	}
	switch h.kind {
	case kindBLPop:
		return multiBulkReply([][]byte{[]byte(d.Key), d.Value})
	default: // kindBRPopLPush
		return bulkReply(d.Value)
	}
}

// @command SADD
func (c *Command) SAdd(key string, members [][]byte) Result {
	n, err := c.eng.SAdd(key, members)
	if err != nil {
		return Result{Reply: errorReply(err)}
	}
	return Result{Reply: integerReply(n)}
}

// @command SREM
func (c *Command) SRem(key string, members [][]byte) Result {
	n, err := c.eng.SRem(key, members)
	if err != nil {
		return Result{Reply: errorReply(err)}
	}
	return Result{Reply: integerReply(n)}
}

// @command SMOVE
func (c *Command) SMove(src, dst string, member []byte) Result {
	ok, err := c.eng.SMove(src, dst, member)
	if err != nil {
		return Result{Reply: errorReply(err)}
	}
	return Result{Reply: boolReply(ok)}
}

// @command SISMEMBER
func (c *Command) SIsMember(key string, member []byte) Result {
	ok, err := c.eng.SIsMember(key, member)
	if err != nil {
		return Result{Reply: errorReply(err)}
	}
	return Result{Reply: boolReply(ok)}
}

// @command SCARD
func (c *Command) SCard(key string) Result {
	n, err := c.eng.SCard(key)
	if err != nil {
		return Result{Reply: errorReply(err)}
	}
	return Result{Reply: integerReply(n)}
}

// @command SPOP
func (c *Command) SPop(key string) Result {
	v, ok, repl, err := c.eng.SPop(key)
	if err != nil {
		return Result{Reply: errorReply(err)}
	}
	if !ok {
		return Result{Reply: nilBulkReply()}
	}
	return Result{Reply: bulkReply(v), Replication: repl}
}

// @command SRANDMEMBER
func (c *Command) SRandMember(key string) Result {
	v, ok, err := c.eng.SRandMember(key)
	if err != nil {
		return Result{Reply: errorReply(err)}
	}
	if !ok {
		return Result{Reply: nilBulkReply()}
	}
	return Result{Reply: bulkReply(v)}
}

// @command SINTER
func (c *Command) SInter(keys []string) Result {
	lits, err := c.eng.SInter(keys)
	if err != nil {
		return Result{Reply: errorReply(err)}
	}
	return Result{Reply: multiBulkReply(lits)}
}

// @command SINTERSTORE
func (c *Command) SInterStore(dst string, keys []string) Result {
	n, err := c.eng.SInterStore(dst, keys)
	if err != nil {
		return Result{Reply: errorReply(err)}
	}
	return Result{Reply: integerReply(n)}
}

// @command SUNION
func (c *Command) SUnion(keys []string) Result {
	lits, err := c.eng.SUnion(keys)
	if err != nil {
		return Result{Reply: errorReply(err)}
	}
	return Result{Reply: multiBulkReply(lits)}
}

// @command SUNIONSTORE
func (c *Command) SUnionStore(dst string, keys []string) Result {
	n, err := c.eng.SUnionStore(dst, keys)
	if err != nil {
		return Result{Reply: errorReply(err)}
	}
	return Result{Reply: integerReply(n)}
}

// @command SDIFF
func (c *Command) SDiff(keys []string) Result {
	lits, err := c.eng.SDiff(keys)
	if err != nil {
		return Result{Reply: errorReply(err)}
	}
	return Result{Reply: multiBulkReply(lits)}
}

// @command SDIFFSTORE
func (c *Command) SDiffStore(dst string, keys []string) Result {
	n, err := c.eng.SDiffStore(dst, keys)
	if err != nil {
		return Result{Reply: errorReply(err)}
	}
	return Result{Reply: integerReply(n)}
}
