// Package hashtable implements the open-addressed, byte-keyed hash table
// that backs HASH-encoded sets (spec.md §3, §4.B). It is the concrete
// stand-in for the "hash-table" leaf structure spec.md §1 treats as an
// external collaborator.
//
// The hash function is FNV-1a, the same one
// internal/shard.Shard.OwnsKey uses to route keys to shards in the
// teacher; here it routes element bytes to buckets instead of keys to
// shards.
package hashtable

import (
	"hash/fnv"

	"github.com/dreamware/torua/internal/object"
)

const (
	minBuckets    = 8
	maxLoadFactor = 0.75
	growthFactor  = 2
)

type slotState uint8

const (
	slotEmpty slotState = iota
	slotFull
	slotDeleted
)

type slot struct {
	key   string // raw element bytes, used as the identity
	value *object.Object
	state slotState
}

// Table is an open-addressed (linear probing) hash table mapping distinct
// byte keys to their owned *object.Object, sized automatically as entries
// are added and removed.
type Table struct {
	slots []slot
	count int // live entries (slotFull)
	used  int // live + tombstoned, drives resize decisions
}

// New returns an empty table pre-sized for at least `hint` entries.
func New(hint int) *Table {
	n := minBuckets
	for n < hint*2 {
		n *= growthFactor
	}
	return &Table{slots: make([]slot, n)}
}

func hashKey(key string, nbuckets int) int {
	h := fnv.New64a()
	h.Write([]byte(key))
	return int(h.Sum64() % uint64(nbuckets))
}

// Len returns the number of live entries.
func (t *Table) Len() int { return t.count }

func (t *Table) find(key string) (idx int, found bool) {
	n := len(t.slots)
	if n == 0 {
		return -1, false
	}
	i := hashKey(key, n)
	firstTombstone := -1
	for probed := 0; probed < n; probed++ {
		s := &t.slots[i]
		switch s.state {
		case slotEmpty:
			if firstTombstone >= 0 {
				return firstTombstone, false
			}
			return i, false
		case slotDeleted:
			if firstTombstone < 0 {
				firstTombstone = i
			}
		case slotFull:
			if s.key == key {
				return i, true
			}
		}
		i = (i + 1) % n
	}
	if firstTombstone >= 0 {
		return firstTombstone, false
	}
	return -1, false
}

// Contains reports whether key is present.
func (t *Table) Contains(key string) bool {
	_, found := t.find(key)
	return found
}

// Get returns the object stored under key, if present.
func (t *Table) Get(key string) (*object.Object, bool) {
	i, found := t.find(key)
	if !found {
		return nil, false
	}
	return t.slots[i].value, true
}

// Add inserts obj under key, returning false if key is already present
// (the existing entry is left untouched).
func (t *Table) Add(key string, obj *object.Object) bool {
	if len(t.slots) == 0 {
		t.grow(minBuckets)
	}
	i, found := t.find(key)
	if found {
		return false
	}
	if t.slots[i].state != slotDeleted {
		t.used++
	}
	t.slots[i] = slot{key: key, value: obj, state: slotFull}
	t.count++
	if float64(t.used)/float64(len(t.slots)) > maxLoadFactor {
		t.grow(len(t.slots) * growthFactor)
	}
	return true
}

// Remove deletes key, returning true if it was present. Deletion leaves a
// tombstone behind so probe chains for other keys stay intact; tombstones
// are reclaimed on the next grow.
func (t *Table) Remove(key string) bool {
	i, found := t.find(key)
	if !found {
		return false
	}
	t.slots[i] = slot{state: slotDeleted}
	t.count--
	if len(t.slots) > minBuckets && t.count*4 < len(t.slots) {
		t.shrink()
	}
	return true
}

func (t *Table) grow(newSize int) {
	if newSize < minBuckets {
		newSize = minBuckets
	}
	old := t.slots
	t.slots = make([]slot, newSize)
	t.used = 0
	t.count = 0
	for _, s := range old {
		if s.state == slotFull {
			t.Add(s.key, s.value)
		}
	}
}

func (t *Table) shrink() {
	newSize := len(t.slots) / growthFactor
	if newSize < minBuckets {
		newSize = minBuckets
	}
	t.grow(newSize)
}

// Random returns an arbitrary live entry, sampling buckets rather than
// entries: it starts at a pseudo-random bucket and walks forward to the
// first live slot. spec.md §9 documents this as intentionally
// non-uniform when the table is sparse (many tombstones/empties between
// live entries skew toward entries with more empty neighbors ahead of
// them); tests for HASH-encoded sets must tolerate that skew.
func (t *Table) Random(startHint uint64) (key string, obj *object.Object, ok bool) {
	n := len(t.slots)
	if n == 0 || t.count == 0 {
		return "", nil, false
	}
	start := int(startHint % uint64(n))
	for probed := 0; probed < n; probed++ {
		i := (start + probed) % n
		if t.slots[i].state == slotFull {
			return t.slots[i].key, t.slots[i].value, true
		}
	}
	return "", nil, false
}

// Iterator yields every live entry exactly once. It holds a generation
// snapshot of the slots slice header; mutating the table (Add/Remove that
// trigger grow/shrink) replaces that header and invalidates the iterator,
// matching spec.md §4.B's "mutation invalidates the iterator" contract.
type Iterator struct {
	slots []slot
	pos   int
}

// Iter returns a fresh iterator over the table's current contents.
func (t *Table) Iter() *Iterator {
	return &Iterator{slots: t.slots}
}

// Next advances the iterator, returning the next live key/object pair.
func (it *Iterator) Next() (key string, obj *object.Object, ok bool) {
	for it.pos < len(it.slots) {
		s := it.slots[it.pos]
		it.pos++
		if s.state == slotFull {
			return s.key, s.value, true
		}
	}
	return "", nil, false
}
