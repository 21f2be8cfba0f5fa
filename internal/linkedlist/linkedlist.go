// Package linkedlist implements the general-purpose, doubly-linked list
// representation spec.md §3 calls LINKED, built on top of the standard
// library's container/list so index traversal from either end is
// O(min(i, n-i)) as spec.md §4.C requires. It is the concrete stand-in
// for the "linked-list" leaf structure spec.md §1 treats as an external
// collaborator.
package linkedlist

import (
	"container/list"

	"github.com/dreamware/torua/internal/object"
)

// List wraps container/list.List, storing *object.Object values directly
// in each node so every element carries its own shared ownership.
type List struct {
	l *list.List
}

// New returns an empty linked list.
func New() *List { return &List{l: list.New()} }

// Len returns the number of elements.
func (l *List) Len() int { return l.l.Len() }

// PushHead prepends obj.
func (l *List) PushHead(obj *object.Object) *list.Element { return l.l.PushFront(obj) }

// PushTail appends obj.
func (l *List) PushTail(obj *object.Object) *list.Element { return l.l.PushBack(obj) }

// PopHead removes and returns the first element's object.
func (l *List) PopHead() (*object.Object, bool) {
	e := l.l.Front()
	if e == nil {
		return nil, false
	}
	l.l.Remove(e)
	return e.Value.(*object.Object), true
}

// PopTail removes and returns the last element's object.
func (l *List) PopTail() (*object.Object, bool) {
	e := l.l.Back()
	if e == nil {
		return nil, false
	}
	l.l.Remove(e)
	return e.Value.(*object.Object), true
}

// nodeAt walks from whichever end is closer to index i (already
// normalized, 0-based from the head), giving the O(min(i, n-i)) bound
// spec.md §4.C specifies.
func (l *List) nodeAt(i int) *list.Element {
	n := l.l.Len()
	if i < n-i {
		e := l.l.Front()
		for ; i > 0; i-- {
			e = e.Next()
		}
		return e
	}
	e := l.l.Back()
	for j := n - 1; j > i; j-- {
		e = e.Prev()
	}
	return e
}

// At returns the object at the given normalized index.
func (l *List) At(i int) *object.Object { return l.nodeAt(i).Value.(*object.Object) }

// Set replaces the object at the given normalized index.
func (l *List) Set(i int, obj *object.Object) { l.nodeAt(i).Value = obj }

// InsertBefore inserts obj immediately before the node currently at index
// i.
func (l *List) InsertBefore(i int, obj *object.Object) {
	l.l.InsertBefore(obj, l.nodeAt(i))
}

// InsertAfter inserts obj immediately after the node currently at index
// i.
func (l *List) InsertAfter(i int, obj *object.Object) {
	l.l.InsertAfter(obj, l.nodeAt(i))
}

// IndexOf scans from the head starting at index `from`, returning the
// first index whose object byte-equals target, or -1.
func (l *List) IndexOf(target []byte, from int) int {
	i := from
	e := l.nodeAt(from)
	for e != nil {
		if string(e.Value.(*object.Object).Bytes()) == string(target) {
			return i
		}
		e = e.Next()
		i++
	}
	return -1
}

// RemoveAt deletes the node at the given normalized index, returning its
// object so the caller can release its reference.
func (l *List) RemoveAt(i int) *object.Object {
	e := l.nodeAt(i)
	l.l.Remove(e)
	return e.Value.(*object.Object)
}

// RemoveHeadN removes and returns the first n objects (n <= Len()).
func (l *List) RemoveHeadN(n int) []*object.Object {
	out := make([]*object.Object, 0, n)
	for i := 0; i < n; i++ {
		obj, _ := l.PopHead()
		out = append(out, obj)
	}
	return out
}

// RemoveTailN removes and returns the last n objects (n <= Len()), in
// head-to-tail order of their original position.
func (l *List) RemoveTailN(n int) []*object.Object {
	out := make([]*object.Object, n)
	for i := n - 1; i >= 0; i-- {
		obj, _ := l.PopTail()
		out[i] = obj
	}
	return out
}

// All returns every object in head-to-tail order. Used by Range/iteration
// callers; allocates a fresh slice each call.
func (l *List) All() []*object.Object {
	out := make([]*object.Object, 0, l.l.Len())
	for e := l.l.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(*object.Object))
	}
	return out
}

// Clear empties the list. Callers are responsible for releasing
// references on the removed objects first (via All).
func (l *List) Clear() { l.l.Init() }
