package blocking

import "time"

// Delivery is what a parked Waiter eventually receives: a (key, value)
// pair handed off by a push, a timeout/cancellation with no value, or a
// rejection for a waiter TryDeliver skipped over (its target key exists
// but is not a list) — spec.md §4.E's "it will receive a wrong-type
// error path."
type Delivery struct {
	Key      string
	Value    []byte
	Timeout  bool
	Rejected bool
}

// Waiter is a single client registered in the blocking tables, per
// spec.md §3's "Blocking tables (E)": "each blocked client carries its
// own {keys[], deadline, target-key-or-none}."
type Waiter struct {
	ID       string
	Keys     []string
	Deadline time.Time // zero value means "no expiry" (spec.md §4.E)
	Target   string    // "" means no target: deliver directly to the waiter
	ch       chan Delivery
	done     bool
}

// NewWaiter constructs a Waiter ready to pass to Table.Block. deadline
// zero means never expire, per spec.md §4.E's "A deadline of 0 means
// 'no expiry'."
func NewWaiter(id string, keys []string, deadline time.Time, target string) *Waiter {
	return &Waiter{ID: id, Keys: keys, Deadline: deadline, Target: target, ch: make(chan Delivery, 1)}
}

// Wait blocks until the waiter is delivered to, times out, or is
// otherwise unblocked (disconnect). It is the client-connection-side
// counterpart to the core's Block/Unblock contract and is never called
// by the single-threaded command goroutine itself.
func (w *Waiter) Wait() Delivery { return <-w.ch }

func (w *Waiter) deliver(d Delivery) {
	if w.done {
		return
	}
	w.done = true
	w.ch <- d
}

// DeliverFunc decides, on the engine's behalf, what happens when a
// waiter is the next in line for a push: it returns true if the waiter
// accepted the value (direct delivery, or a successful push onto its
// target list), false if the waiter must be skipped (its target exists
// but is not a list) so TryDeliver moves on to the next waiter in FIFO
// order.
type DeliverFunc func(w *Waiter, key string, value []byte) bool

// Table is spec.md §3's per-database blocking_keys: key -> ordered list
// of client handles, plus the reverse client -> keys index Unblock needs
// to keep both sides in sync (spec.md §9, "not a cycle in data but a
// bidirectional index").
type Table struct {
	byKey map[string][]*Waiter
}

// New returns an empty Table.
func New() *Table {
	return &Table{byKey: make(map[string][]*Waiter)}
}

// Block registers w into blocking_keys[key] for every key it waits on,
// creating each per-key list on first use (spec.md §4.E).
func (t *Table) Block(w *Waiter) {
	for _, k := range w.Keys {
		t.byKey[k] = append(t.byKey[k], w)
	}
}

// Waiting reports whether any waiter is currently parked on key.
func (t *Table) Waiting(key string) bool {
	return len(t.byKey[key]) > 0
}

// Unblock removes w from every per-key list it was registered in,
// deleting any list that becomes empty, and delivers d on its channel.
// Per spec.md §4.E: "removes the client from each per-key list; deletes
// any per-key list that becomes empty ... clears BLOCKED, sets
// UNBLOCKED." Safe to call more than once for the same waiter; only the
// first call has effect.
func (t *Table) Unblock(w *Waiter, d Delivery) {
	t.remove(w)
	w.deliver(d)
}

func (t *Table) remove(w *Waiter) {
	for _, k := range w.Keys {
		list := t.byKey[k]
		for i, cand := range list {
			if cand == w {
				list = append(list[:i], list[i+1:]...)
				break
			}
		}
		if len(list) == 0 {
			delete(t.byKey, k)
		} else {
			t.byKey[k] = list
		}
	}
}

// TryDeliver is the on-push hook of spec.md §4.E: called before any list
// push commits. If no waiter is parked on key, it returns false and the
// caller pushes normally. Otherwise it walks waiters in FIFO order,
// invoking deliver for each; a waiter deliver accepts is unblocked and
// TryDeliver returns true. A waiter deliver rejects (wrong-typed target)
// is dropped — removed from the table and delivered a Rejected Delivery
// so its own Wait() returns instead of blocking forever — and the next
// waiter is tried. The round is bounded by the number of waiters
// captured at entry; waiters registered during delivery are not
// considered (spec.md §4.E, "waiters added during delivery are not
// considered this round").
func (t *Table) TryDeliver(key string, value []byte, deliver DeliverFunc) bool {
	snapshot := append([]*Waiter(nil), t.byKey[key]...)
	for _, w := range snapshot {
		accepted := deliver(w, key, value)
		t.remove(w)
		if accepted {
			w.deliver(Delivery{Key: key, Value: value})
			return true
		}
		w.deliver(Delivery{Rejected: true})
	}
	return false
}

// Sweep unblocks and returns every waiter whose non-zero deadline is at
// or before now, per spec.md §4.E's periodic deadline tick: "any whose
// deadline is non-zero and has elapsed is unblocked and receives a nil
// reply." Each returned waiter has already been delivered a Timeout
// Delivery and removed from the table.
func (t *Table) Sweep(now time.Time) []*Waiter {
	seen := make(map[*Waiter]bool)
	var expired []*Waiter
	for _, list := range t.byKey {
		for _, w := range list {
			if seen[w] {
				continue
			}
			seen[w] = true
			if !w.Deadline.IsZero() && !now.Before(w.Deadline) {
				expired = append(expired, w)
			}
		}
	}
	for _, w := range expired {
		t.Unblock(w, Delivery{Timeout: true})
	}
	return expired
}
