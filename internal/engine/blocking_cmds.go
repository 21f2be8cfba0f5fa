package engine

import (
	"time"

	"github.com/dreamware/torua/internal/blocking"
	"github.com/dreamware/torua/internal/listcol"
)

// PopResult is what a blocking-pop command (BLPOP/BRPOP/BRPOPLPUSH)
// returns from the single engine goroutine. Exactly one of two things
// happened: the pop was satisfied immediately (Immediate true, with Key/
// Value/Found set — Found false means a nested-atomic-batch nil per
// spec.md §4.E), or the client had to be parked and Waiter is non-nil
// for the caller to Wait() on from its own connection goroutine.
type PopResult struct {
	Immediate bool
	Found     bool
	Key       string
	Value     []byte
	Waiter    *blocking.Waiter
}

// BPop implements the pop-and-maybe-block half of BLPOP/BRPOP (spec.md
// §4.E): for each candidate key in order, a non-empty list there is
// popped immediately; otherwise, outside a nested atomic batch, the
// client blocks. now is threaded in explicitly (rather than read via
// time.Now()) so callers and tests control deadline arithmetic.
func (e *Engine) BPop(clientID string, keys []string, side listcol.Side, timeoutSeconds float64, nestedAtomic bool, now time.Time) (PopResult, error) {
	if timeoutSeconds < 0 {
		return PopResult{}, ErrBadTimeout
	}
	for _, key := range keys {
		l, exists, err := e.getList(key)
		if err != nil {
			return PopResult{}, err
		}
		if !exists || l.Len() == 0 {
			continue
		}
		lit, ok := l.Pop(side)
		if !ok {
			continue
		}
		e.deleteIfEmptyList(key, l)
		return PopResult{Immediate: true, Found: true, Key: key, Value: cloneBytes(lit.Bytes())}, nil
	}
	if nestedAtomic {
		return PopResult{Immediate: true, Found: false}, nil
	}
	w := blocking.NewWaiter(clientID, keys, computeDeadline(now, timeoutSeconds), "")
	e.blocking.Block(w)
	return PopResult{Waiter: w}, nil
}

// BLPop implements BLPOP key [key ...] timeout.
//
// @command BLPOP
func (e *Engine) BLPop(clientID string, keys []string, timeoutSeconds float64, nestedAtomic bool, now time.Time) (PopResult, error) {
	return e.BPop(clientID, keys, listcol.Head, timeoutSeconds, nestedAtomic, now)
}

// BRPop implements BRPOP key [key ...] timeout.
//
// @command BRPOP
func (e *Engine) BRPop(clientID string, keys []string, timeoutSeconds float64, nestedAtomic bool, now time.Time) (PopResult, error) {
	return e.BPop(clientID, keys, listcol.Tail, timeoutSeconds, nestedAtomic, now)
}

// BRPopLPush implements BRPOPLPUSH src dst timeout: like RPOPLPUSH, but
// blocks on src if it is empty. A waiter parked this way carries dst as
// its Target, so a subsequent push to src pushes directly onto dst per
// the on-push hook (spec.md §4.E) instead of src itself.
//
// @command BRPOPLPUSH
func (e *Engine) BRPopLPush(clientID string, src, dst string, timeoutSeconds float64, nestedAtomic bool, now time.Time) (PopResult, error) {
	if timeoutSeconds < 0 {
		return PopResult{}, ErrBadTimeout
	}
	value, ok, err := e.RPopLPush(src, dst)
	if err != nil {
		return PopResult{}, err
	}
	if ok {
		return PopResult{Immediate: true, Found: true, Key: src, Value: value}, nil
	}
	if nestedAtomic {
		return PopResult{Immediate: true, Found: false}, nil
	}
	w := blocking.NewWaiter(clientID, []string{src}, computeDeadline(now, timeoutSeconds), dst)
	e.blocking.Block(w)
	return PopResult{Waiter: w}, nil
}
