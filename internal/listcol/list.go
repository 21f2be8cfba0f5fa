package listcol

import (
	"errors"

	"github.com/dreamware/torua/internal/elem"
	"github.com/dreamware/torua/internal/linkedlist"
	"github.com/dreamware/torua/internal/object"
	"github.com/dreamware/torua/internal/ziplist"
)

// Encoding identifies a List's current physical representation.
type Encoding int

const (
	// EncodingZip packs entries contiguously for compactness.
	EncodingZip Encoding = iota
	// EncodingLinked stores entries as ref-counted object nodes.
	EncodingLinked
)

// Side selects which end of the list an operation targets.
type Side int

const (
	Head Side = iota
	Tail
)

// Relative selects the position of an insert relative to a pivot value.
type Relative int

const (
	Before Relative = iota
	After
)

// ErrBadConversion is returned by Convert for any target other than
// EncodingLinked from EncodingZip.
var ErrBadConversion = errors.New("listcol: only ZIP to LINKED conversion is defined")

// Limits bundles the promotion thresholds a List consults on every
// potentially-promoting mutation.
type Limits struct {
	MaxZiplistEntries int
	MaxZiplistValue   int
}

// List is spec.md §4.C's List Container: an ordered sequence backed by
// either a packed ziplist or a linkedlist of ref-counted objects.
type List struct {
	zip    *ziplist.List
	linked *linkedlist.List
	enc    Encoding
}

// New returns an empty, ZIP-encoded List.
func New() *List { return &List{enc: EncodingZip, zip: ziplist.New()} }

// Encoding returns the list's current physical encoding.
func (l *List) Encoding() Encoding { return l.enc }

// Len returns the list's length in O(1).
func (l *List) Len() int {
	if l.enc == EncodingZip {
		return l.zip.Len()
	}
	return l.linked.Len()
}

func literalToEntry(literal elem.Literal) ziplist.Entry {
	if v, ok := literal.AsInteger(); ok {
		return ziplist.Entry{IsInt: true, Int: v}
	}
	b := literal.Bytes()
	cp := make([]byte, len(b))
	copy(cp, b)
	return ziplist.Entry{Bytes: cp}
}

func entryToLiteral(e ziplist.Entry) elem.Literal {
	if e.IsInt {
		return elem.FromInteger(e.Int)
	}
	return elem.FromBytes(e.Bytes)
}

func (l *List) needsPromotion(limits Limits, entry ziplist.Entry) bool {
	if limits.MaxZiplistEntries > 0 && l.zip.Len()+1 > limits.MaxZiplistEntries {
		return true
	}
	if limits.MaxZiplistValue > 0 && !entry.IsInt && entry.ByteLen() > limits.MaxZiplistValue {
		return true
	}
	return false
}

func (l *List) promoteToLinked() {
	if l.enc == EncodingLinked {
		return
	}
	dst := linkedlist.New()
	for _, e := range l.zip.All() {
		var obj *object.Object
		if e.IsInt {
			obj = object.FromInt(e.Int)
		} else {
			obj = object.FromBytes(e.Bytes)
		}
		dst.PushTail(obj)
	}
	l.linked = dst
	l.zip = nil
	l.enc = EncodingLinked
}

// Push inserts literal at the given side, promoting to LINKED first if
// the push would exceed limits.
func (l *List) Push(limits Limits, side Side, literal elem.Literal) {
	if l.enc == EncodingZip {
		entry := literalToEntry(literal)
		if l.needsPromotion(limits, entry) {
			l.promoteToLinked()
		} else {
			if side == Head {
				l.zip.PushHead(entry)
			} else {
				l.zip.PushTail(entry)
			}
			return
		}
	}
	obj := literal.AsObject()
	obj.IncrRef()
	if side == Head {
		l.linked.PushHead(obj)
	} else {
		l.linked.PushTail(obj)
	}
}

// Pop removes and returns the element at the given side. ok is false for
// an empty list.
func (l *List) Pop(side Side) (literal elem.Literal, ok bool) {
	if l.enc == EncodingZip {
		var e ziplist.Entry
		if side == Head {
			e, ok = l.zip.PopHead()
		} else {
			e, ok = l.zip.PopTail()
		}
		if !ok {
			return elem.Literal{}, false
		}
		return entryToLiteral(e), true
	}
	var obj *object.Object
	if side == Head {
		obj, ok = l.linked.PopHead()
	} else {
		obj, ok = l.linked.PopTail()
	}
	if !ok {
		return elem.Literal{}, false
	}
	lit := elem.FromObject(obj)
	obj.DecrRef()
	return lit, true
}

func (l *List) normalize(i int) (int, bool) {
	n := l.Len()
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, false
	}
	return i, true
}

// At returns the element at index i (negative indices count from the
// tail). ok is false if i is out of range.
func (l *List) At(i int) (elem.Literal, bool) {
	idx, ok := l.normalize(i)
	if !ok {
		return elem.Literal{}, false
	}
	if l.enc == EncodingZip {
		return entryToLiteral(l.zip.At(idx)), true
	}
	return elem.FromObject(l.linked.At(idx)), true
}

// Set replaces the element at index i, promoting to LINKED first if the
// new value is a byte value over the byte-length limit. ok is false if i is out
// of range.
func (l *List) Set(limits Limits, i int, literal elem.Literal) (ok bool) {
	idx, ok := l.normalize(i)
	if !ok {
		return false
	}
	if l.enc == EncodingZip {
		entry := literalToEntry(literal)
		if limits.MaxZiplistValue > 0 && !entry.IsInt && entry.ByteLen() > limits.MaxZiplistValue {
			l.promoteToLinked()
		} else {
			l.zip.Set(idx, entry)
			return true
		}
	}
	obj := literal.AsObject()
	obj.IncrRef()
	old := l.linked.At(idx)
	l.linked.Set(idx, obj)
	old.DecrRef()
	return true
}

// IndexOf returns the first index at or after from whose element
// byte-equals target, or -1.
func (l *List) IndexOf(target []byte, from int) int {
	if l.enc == EncodingZip {
		return l.zip.IndexOf(target, from)
	}
	return l.linked.IndexOf(target, from)
}

func (l *List) lastIndexOf(target []byte) int {
	for i := l.Len() - 1; i >= 0; i-- {
		lit, _ := l.At(i)
		if string(lit.Bytes()) == string(target) {
			return i
		}
	}
	return -1
}

func (l *List) insertAt(limits Limits, idx int, literal elem.Literal) {
	if l.enc == EncodingZip {
		entry := literalToEntry(literal)
		if l.needsPromotion(limits, entry) {
			l.promoteToLinked()
		} else {
			l.zip.InsertAt(idx, entry)
			return
		}
	}
	obj := literal.AsObject()
	obj.IncrRef()
	switch {
	case idx >= l.linked.Len():
		l.linked.PushTail(obj)
	case idx == 0:
		l.linked.PushHead(obj)
	default:
		l.linked.InsertBefore(idx, obj)
	}
}

// InsertRelative inserts literal immediately before or after the first
// element byte-equal to pivot. ok is false if pivot is not found.
func (l *List) InsertRelative(limits Limits, pivot []byte, where Relative, literal elem.Literal) (ok bool) {
	idx := l.IndexOf(pivot, 0)
	if idx < 0 {
		return false
	}
	if where == After {
		idx++
	}
	l.insertAt(limits, idx, literal)
	return true
}

func clampIndex(i, n int) int {
	if i < 0 {
		i += n
	}
	return i
}

// Range returns the elements in [start, stop] inclusive, with Redis-style
// negative-index and out-of-range clamping: an empty or fully
// out-of-range window yields nil.
func (l *List) Range(start, stop int) []elem.Literal {
	n := l.Len()
	if n == 0 {
		return nil
	}
	start = clampIndex(start, n)
	stop = clampIndex(stop, n)
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	if start > stop {
		return nil
	}
	out := make([]elem.Literal, 0, stop-start+1)
	for i := start; i <= stop; i++ {
		lit, _ := l.At(i)
		out = append(out, lit)
	}
	return out
}

func (l *List) clearAll() {
	if l.enc == EncodingZip {
		l.zip.Clear()
		return
	}
	for _, obj := range l.linked.All() {
		obj.DecrRef()
	}
	l.linked.Clear()
}

// Trim keeps only the elements in [start, stop] inclusive (same
// clamping rule as Range), releasing references held by everything
// outside that window. A window with no surviving elements empties the
// list.
func (l *List) Trim(start, stop int) {
	n := l.Len()
	if n == 0 {
		return
	}
	start = clampIndex(start, n)
	stop = clampIndex(stop, n)
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	if start > stop {
		l.clearAll()
		return
	}
	if l.enc == EncodingZip {
		if stop+1 < n {
			l.zip.RemoveRange(stop+1, n)
		}
		if start > 0 {
			l.zip.RemoveRange(0, start)
		}
		return
	}
	if stop+1 < n {
		removed := l.linked.RemoveTailN(n - (stop + 1))
		for _, o := range removed {
			o.DecrRef()
		}
	}
	if start > 0 {
		removed := l.linked.RemoveHeadN(start)
		for _, o := range removed {
			o.DecrRef()
		}
	}
}

func (l *List) removeAt(idx int) {
	if l.enc == EncodingZip {
		l.zip.RemoveAt(idx)
		return
	}
	obj := l.linked.RemoveAt(idx)
	obj.DecrRef()
}

// Remove deletes occurrences of value, returning the count actually
// removed. count > 0 removes up to count occurrences starting from the
// head; count < 0 removes up to -count occurrences starting from the
// tail; count == 0 removes every occurrence.
func (l *List) Remove(value []byte, count int) int {
	removed := 0
	switch {
	case count >= 0:
		pos := 0
		for count == 0 || removed < count {
			idx := l.IndexOf(value, pos)
			if idx < 0 {
				break
			}
			l.removeAt(idx)
			removed++
			pos = idx
		}
	default:
		limit := -count
		for removed < limit {
			idx := l.lastIndexOf(value)
			if idx < 0 {
				break
			}
			l.removeAt(idx)
			removed++
		}
	}
	return removed
}

// Iterator yields every element of a List exactly once, head to tail, as
// long as the list is not mutated during iteration.
type Iterator struct {
	list *List
	pos  int
}

// Iter returns a fresh iterator over the list's current contents.
func (l *List) Iter() *Iterator { return &Iterator{list: l} }

// Next advances the iterator. ok is false once every element has been
// yielded.
func (it *Iterator) Next() (elem.Literal, bool) {
	lit, ok := it.list.At(it.pos)
	if !ok {
		return elem.Literal{}, false
	}
	it.pos++
	return lit, true
}

// Convert transforms the list's internal storage to target. Only
// EncodingZip → EncodingLinked is defined.
func (l *List) Convert(target Encoding) error {
	if target != EncodingLinked {
		return ErrBadConversion
	}
	l.promoteToLinked()
	return nil
}
