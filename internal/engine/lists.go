package engine

import (
	"github.com/dreamware/torua/internal/blocking"
	"github.com/dreamware/torua/internal/listcol"
)

// pushOne pushes a single value onto key's list (creating it if absent),
// consulting the blocking table first per spec.md §4.E: "Before any list
// push commits, the pusher calls try-deliver(key, element)." If a waiter
// accepts the element it never lands in the list at all.
func (e *Engine) pushOne(key string, side listcol.Side, value []byte) error {
	l, exists, err := e.getList(key)
	if err != nil {
		return err
	}
	if e.blocking != nil && e.blocking.TryDeliver(key, value, e.deliverToWaiter) {
		return nil
	}
	created := false
	if !exists {
		l = listcol.New()
		created = true
	}
	l.Push(e.listLimits(), side, literalFromBytes(value))
	if created {
		e.ks.Add(key, l)
	}
	e.ks.SignalModified(key)
	return nil
}

// deliverToWaiter implements the waiter half of spec.md §4.E's on-push
// hook: a target-less waiter accepts any element directly; a waiter with
// a target pushes the element onto that list's head, dropping itself
// (reporting false, tried by the caller against the next waiter) if the
// target exists and is not a list.
func (e *Engine) deliverToWaiter(w *blocking.Waiter, key string, value []byte) bool {
	if w.Target == "" {
		return true
	}
	l, exists, err := e.getList(w.Target)
	if err != nil {
		return false
	}
	created := false
	if !exists {
		l = listcol.New()
		created = true
	}
	l.Push(e.listLimits(), listcol.Head, literalFromBytes(value))
	if created {
		e.ks.Add(w.Target, l)
	}
	e.ks.SignalModified(w.Target)
	return true
}

// pushMulti applies pushOne to every value in order (LPUSH/RPUSH accept
// a variadic argument list on the wire even though spec.md §6 shows the
// single-element form) and returns the resulting length, or the
// WRONGTYPE error from the first failing push with no further values
// applied.
func (e *Engine) pushMulti(key string, side listcol.Side, values [][]byte) (int, error) {
	for _, v := range values {
		if err := e.pushOne(key, side, v); err != nil {
			return 0, err
		}
	}
	l, exists, err := e.getList(key)
	if err != nil || !exists {
		return 0, err
	}
	return l.Len(), nil
}

// LPush implements LPUSH key value [value ...].
//
// @command LPUSH
// @modifying
func (e *Engine) LPush(key string, values [][]byte) (int, error) {
	return e.pushMulti(key, listcol.Head, values)
}

// RPush implements RPUSH key value [value ...].
//
// @command RPUSH
// @modifying
func (e *Engine) RPush(key string, values [][]byte) (int, error) {
	return e.pushMulti(key, listcol.Tail, values)
}

// LPushX implements LPUSHX key value: pushes only if key already holds a
// list; returns 0 without creating the key otherwise.
//
// @command LPUSHX
// @modifying
func (e *Engine) LPushX(key string, value []byte) (int, error) {
	_, exists, err := e.getList(key)
	if err != nil || !exists {
		return 0, err
	}
	return e.pushMulti(key, listcol.Head, [][]byte{value})
}

// RPushX implements RPUSHX key value, mirroring LPushX at the tail.
//
// @command RPUSHX
// @modifying
func (e *Engine) RPushX(key string, value []byte) (int, error) {
	_, exists, err := e.getList(key)
	if err != nil || !exists {
		return 0, err
	}
	return e.pushMulti(key, listcol.Tail, [][]byte{value})
}

// LInsert implements LINSERT key BEFORE|AFTER pivot value. Returns the
// list's new length on success, 0 if key is missing, and -1 if pivot is
// not found — spec.md §7's category 6, "surfaced as -1 distinct from
// key-missing (0)."
//
// @command LINSERT
// @modifying
func (e *Engine) LInsert(key string, where listcol.Relative, pivot, value []byte) (int, error) {
	l, exists, err := e.getList(key)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, nil
	}
	if !l.InsertRelative(e.listLimits(), pivot, where, literalFromBytes(value)) {
		return -1, nil
	}
	e.ks.SignalModified(key)
	return l.Len(), nil
}

// LLen implements LLEN key.
//
// @command LLEN
func (e *Engine) LLen(key string) (int, error) {
	l, exists, err := e.getList(key)
	if err != nil || !exists {
		return 0, err
	}
	return l.Len(), nil
}

// LIndex implements LINDEX key index. ok is false for a missing key or
// an out-of-range index (spec.md §7 category 3 applies here as a miss,
// not an error, matching the source's LINDEX convention of nil-on-miss).
//
// @command LINDEX
func (e *Engine) LIndex(key string, index int) (value []byte, ok bool, err error) {
	l, exists, err := e.getList(key)
	if err != nil || !exists {
		return nil, false, err
	}
	lit, ok := l.At(index)
	if !ok {
		return nil, false, nil
	}
	return cloneBytes(lit.Bytes()), true, nil
}

// LSet implements LSET key index value.
//
// @command LSET
// @modifying
func (e *Engine) LSet(key string, index int, value []byte) error {
	l, exists, err := e.getList(key)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNoSuchKey
	}
	if !l.Set(e.listLimits(), index, literalFromBytes(value)) {
		return ErrOutOfRange
	}
	e.ks.SignalModified(key)
	return nil
}

// LPop implements LPOP key: pops and returns the head element. ok is
// false for a missing or empty key.
//
// @command LPOP
// @modifying
func (e *Engine) LPop(key string) (value []byte, ok bool, err error) {
	return e.pop(key, listcol.Head)
}

// RPop implements RPOP key, mirroring LPop at the tail.
//
// @command RPOP
// @modifying
func (e *Engine) RPop(key string) (value []byte, ok bool, err error) {
	return e.pop(key, listcol.Tail)
}

func (e *Engine) pop(key string, side listcol.Side) (value []byte, ok bool, err error) {
	l, exists, err := e.getList(key)
	if err != nil || !exists {
		return nil, false, err
	}
	lit, ok := l.Pop(side)
	if !ok {
		return nil, false, nil
	}
	e.deleteIfEmptyList(key, l)
	return cloneBytes(lit.Bytes()), true, nil
}

// LRange implements LRANGE key start stop.
//
// @command LRANGE
func (e *Engine) LRange(key string, start, stop int) ([][]byte, error) {
	l, exists, err := e.getList(key)
	if err != nil || !exists {
		return nil, err
	}
	return literalsToBytes(l.Range(start, stop)), nil
}

// LTrim implements LTRIM key start stop.
//
// @command LTRIM
// @modifying
func (e *Engine) LTrim(key string, start, stop int) error {
	l, exists, err := e.getList(key)
	if err != nil || !exists {
		return err
	}
	l.Trim(start, stop)
	e.deleteIfEmptyList(key, l)
	return nil
}

// LRem implements LREM key count value.
//
// @command LREM
// @modifying
func (e *Engine) LRem(key string, count int, value []byte) (int, error) {
	l, exists, err := e.getList(key)
	if err != nil || !exists {
		return 0, err
	}
	removed := l.Remove(value, count)
	if removed > 0 {
		e.deleteIfEmptyList(key, l)
	}
	return removed, nil
}

// RPopLPush implements RPOPLPUSH src dst: atomically pops src's tail and
// pushes it onto dst's head, returning the moved value. ok is false if
// src is missing or empty.
//
// @command RPOPLPUSH
// @modifying
func (e *Engine) RPopLPush(src, dst string) (value []byte, ok bool, err error) {
	l, exists, err := e.getList(src)
	if err != nil || !exists {
		return nil, false, err
	}
	lit, ok := l.Pop(listcol.Tail)
	if !ok {
		return nil, false, nil
	}
	e.deleteIfEmptyList(src, l)
	v := cloneBytes(lit.Bytes())
	if err := e.pushOne(dst, listcol.Head, v); err != nil {
		return nil, false, err
	}
	return v, true, nil
}
