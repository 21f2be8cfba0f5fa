package command

import (
	"time"

	"github.com/dreamware/torua/internal/engine"
	"github.com/dreamware/torua/internal/listcol"
)

// @command LPUSH
func (c *Command) LPush(key string, values [][]byte) Result {
	n, err := c.eng.LPush(key, values)
	if err != nil {
		return Result{Reply: errorReply(err)}
	}
	return Result{Reply: integerReply(n)}
}

// @command RPUSH
func (c *Command) RPush(key string, values [][]byte) Result {
	n, err := c.eng.RPush(key, values)
	if err != nil {
		return Result{Reply: errorReply(err)}
	}
	return Result{Reply: integerReply(n)}
}

// @command LPUSHX
func (c *Command) LPushX(key string, value []byte) Result {
	n, err := c.eng.LPushX(key, value)
	if err != nil {
		return Result{Reply: errorReply(err)}
	}
	return Result{Reply: integerReply(n)}
}

// @command RPUSHX
func (c *Command) RPushX(key string, value []byte) Result {
	n, err := c.eng.RPushX(key, value)
	if err != nil {
		return Result{Reply: errorReply(err)}
	}
	return Result{Reply: integerReply(n)}
}

// ParseSide maps the wire-level BEFORE/AFTER keyword to listcol.Relative,
// returning engine.ErrSyntax for anything else — spec.md §7 category 4.
func ParseSide(word string) (listcol.Relative, error) {
	switch word {
	case "BEFORE":
		return listcol.Before, nil
	case "AFTER":
		return listcol.After, nil
	default:
		return 0, engine.ErrSyntax
	}
}

// @command LINSERT
func (c *Command) LInsert(key string, where listcol.Relative, pivot, value []byte) Result {
	n, err := c.eng.LInsert(key, where, pivot, value)
	if err != nil {
		return Result{Reply: errorReply(err)}
	}
	return Result{Reply: integerReply(n)}
}

// @command LLEN
func (c *Command) LLen(key string) Result {
	n, err := c.eng.LLen(key)
	if err != nil {
		return Result{Reply: errorReply(err)}
	}
	return Result{Reply: integerReply(n)}
}

// @command LINDEX
func (c *Command) LIndex(key string, index int) Result {
	v, ok, err := c.eng.LIndex(key, index)
	if err != nil {
		return Result{Reply: errorReply(err)}
	}
	if !ok {
		return Result{Reply: nilBulkReply()}
	}
	return Result{Reply: bulkReply(v)}
}

// @command LSET
func (c *Command) LSet(key string, index int, value []byte) Result {
	if err := c.eng.LSet(key, index, value); err != nil {
		return Result{Reply: errorReply(err)}
	}
	return Result{Reply: Reply{Kind: KindBulk, Bulk: []byte("OK")}}
}

// @command LPOP
func (c *Command) LPop(key string) Result {
	v, ok, err := c.eng.LPop(key)
	if err != nil {
		return Result{Reply: errorReply(err)}
	}
	if !ok {
		return Result{Reply: nilBulkReply()}
	}
	return Result{Reply: bulkReply(v)}
}

// @command RPOP
func (c *Command) RPop(key string) Result {
	v, ok, err := c.eng.RPop(key)
	if err != nil {
		return Result{Reply: errorReply(err)}
	}
	if !ok {
		return Result{Reply: nilBulkReply()}
	}
	return Result{Reply: bulkReply(v)}
}

// @command LRANGE
func (c *Command) LRange(key string, start, stop int) Result {
	items, err := c.eng.LRange(key, start, stop)
	if err != nil {
		return Result{Reply: errorReply(err)}
	}
	return Result{Reply: multiBulkReply(items)}
}

// @command LTRIM
func (c *Command) LTrim(key string, start, stop int) Result {
	if err := c.eng.LTrim(key, start, stop); err != nil {
		return Result{Reply: errorReply(err)}
	}
	return Result{Reply: Reply{Kind: KindBulk, Bulk: []byte("OK")}}
}

// @command LREM
func (c *Command) LRem(key string, count int, value []byte) Result {
	n, err := c.eng.LRem(key, count, value)
	if err != nil {
		return Result{Reply: errorReply(err)}
	}
	return Result{Reply: integerReply(n)}
}

// @command RPOPLPUSH
func (c *Command) RPopLPush(src, dst string) Result {
	v, ok, err := c.eng.RPopLPush(src, dst)
	if err != nil {
		return Result{Reply: errorReply(err)}
	}
	if !ok {
		return Result{Reply: nilBulkReply()}
	}
	return Result{Reply: bulkReply(v)}
}

func popResultToResult(pr engine.PopResult, err error, k kind) Result {
	if err != nil {
		return Result{Reply: errorReply(err)}
	}
	if pr.Waiter != nil {
		return Result{Waiter: &WaiterHandle{w: pr.Waiter, kind: k}}
	}
	if !pr.Found {
		return Result{Reply: nilBulkReply()}
	}
	if k == kindBLPop {
		return Result{Reply: multiBulkReply([][]byte{[]byte(pr.Key), pr.Value})}
	}
	return Result{Reply: bulkReply(pr.Value)}
}

// @command BLPOP
func (c *Command) BLPop(clientID string, keys []string, timeoutSeconds float64, nestedAtomic bool, now time.Time) Result {
	pr, err := c.eng.BLPop(clientID, keys, timeoutSeconds, nestedAtomic, now)
	return popResultToResult(pr, err, kindBLPop)
}

// @command BRPOP
func (c *Command) BRPop(clientID string, keys []string, timeoutSeconds float64, nestedAtomic bool, now time.Time) Result {
	pr, err := c.eng.BRPop(clientID, keys, timeoutSeconds, nestedAtomic, now)
	return popResultToResult(pr, err, kindBLPop)
}

// @command BRPOPLPUSH
func (c *Command) BRPopLPush(clientID string, src, dst string, timeoutSeconds float64, nestedAtomic bool, now time.Time) Result {
	pr, err := c.eng.BRPopLPush(clientID, src, dst, timeoutSeconds, nestedAtomic, now)
	return popResultToResult(pr, err, kindBRPopLPush)
}
