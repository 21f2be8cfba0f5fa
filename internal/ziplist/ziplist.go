// Package ziplist implements the cache-dense packed list representation
// spec.md §3 calls ZIP: elements are either inline integers or short byte
// slices, stored contiguously so small lists stay compact. It is the
// concrete stand-in for the "compact inline-list" leaf structure spec.md
// §1 treats as an external collaborator.
package ziplist

// Entry is one packed list element: either an integer or owned bytes.
type Entry struct {
	Bytes []byte
	Int   int64
	IsInt bool
}

// ByteLen returns the entry's encoded length in bytes. For byte entries it
// is the figure listcol.List consults against list-max-ziplist-value when
// deciding whether to promote; integer entries never trigger that check.
func (e Entry) ByteLen() int {
	if e.IsInt {
		return 8
	}
	return len(e.Bytes)
}

// List is a packed, ordered sequence of Entry, stored head-to-tail in a
// single slice. Indexed access is a direct slice index; inserts and
// removals shift the entries that follow, and value searches scan
// linearly.
type List struct {
	entries []Entry
}

// New returns an empty ziplist.
func New() *List { return &List{} }

// Len returns the number of entries.
func (l *List) Len() int { return len(l.entries) }

// PushHead prepends e.
func (l *List) PushHead(e Entry) {
	l.entries = append([]Entry{e}, l.entries...)
}

// PushTail appends e.
func (l *List) PushTail(e Entry) {
	l.entries = append(l.entries, e)
}

// PopHead removes and returns the first entry.
func (l *List) PopHead() (Entry, bool) {
	if len(l.entries) == 0 {
		return Entry{}, false
	}
	e := l.entries[0]
	l.entries = l.entries[1:]
	return e, true
}

// PopTail removes and returns the last entry.
func (l *List) PopTail() (Entry, bool) {
	if len(l.entries) == 0 {
		return Entry{}, false
	}
	i := len(l.entries) - 1
	e := l.entries[i]
	l.entries = l.entries[:i]
	return e, true
}

// At returns the entry at the given non-negative, already-normalized
// index.
func (l *List) At(i int) Entry { return l.entries[i] }

// Set replaces the entry at the given non-negative, already-normalized
// index.
func (l *List) Set(i int, e Entry) { l.entries[i] = e }

// InsertAt inserts e so it becomes the element at index i (shifting
// everything from i onward to the right).
func (l *List) InsertAt(i int, e Entry) {
	l.entries = append(l.entries, Entry{})
	copy(l.entries[i+1:], l.entries[i:])
	l.entries[i] = e
}

// IndexOf returns the first index whose entry byte-equals target, or -1.
func (l *List) IndexOf(target []byte, from int) int {
	for i := from; i < len(l.entries); i++ {
		if entryEqual(l.entries[i], target) {
			return i
		}
	}
	return -1
}

func entryEqual(e Entry, target []byte) bool {
	if e.IsInt {
		return string(intToBytes(e.Int)) == string(target)
	}
	return string(e.Bytes) == string(target)
}

func intToBytes(v int64) []byte {
	// Decimal rendering; kept local to avoid importing object here and
	// creating a cycle (object has no ziplist dependency, but callers in
	// listcol already hold the conversion helpers they need).
	neg := v < 0
	if neg {
		v = -v
	}
	if v == 0 {
		return []byte("0")
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return buf[i:]
}

// RemoveAt deletes the entry at index i.
func (l *List) RemoveAt(i int) {
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
}

// RemoveRange deletes entries [from, to) (Go half-open range), used by
// Trim's head/tail deletions.
func (l *List) RemoveRange(from, to int) {
	l.entries = append(l.entries[:from], l.entries[to:]...)
}

// All returns the full backing slice. Callers must not mutate it.
func (l *List) All() []Entry { return l.entries }

// Clear empties the list.
func (l *List) Clear() { l.entries = nil }
