// Package elem implements the Element Literal (spec.md §4.A): the single
// cross-encoding currency every container operation accepts and produces.
//
// A Literal carries either an integer or a byte slice, and is either
// borrowed (pointing into a container's storage, valid only until the
// container mutates) or dirty/owned (backed by a freshly materialized
// *object.Object the caller must clear). This split exists purely to avoid
// allocating an object for every integer read out of a packed encoding;
// see DESIGN.md for why this mirrors the source's tagged-view approach.
package elem

import (
	"github.com/dreamware/torua/internal/object"
)

// Literal is a tagged value used as the uniform currency between a
// container's two physical encodings. Zero value is not meaningful; use
// one of the From* constructors.
//
// Invariant (spec.md §3): a Literal never outlives the storage it
// borrows from. Callers that hold a Literal across any container mutation
// or iterator advance are violating that invariant, not this package.
type Literal struct {
	obj    *object.Object // non-nil only when dirty (materialized)
	bytes  []byte         // borrowed view, valid only for the source's lifetime
	intVal int64
	isInt  bool
	dirty  bool
}

// FromInteger builds an integer literal. Integer literals are always
// "borrowed" in the sense that they own no allocation to clear.
func FromInteger(i int64) Literal {
	return Literal{intVal: i, isInt: true}
}

// FromBytes builds a borrowed byte literal viewing b. b must remain valid
// and unmutated for as long as the literal is used.
func FromBytes(b []byte) Literal {
	return Literal{bytes: b}
}

// FromObject builds a literal borrowing from obj: an integer literal if
// obj is int-encoded, otherwise a byte literal borrowing obj's buffer.
// Neither case materializes a new allocation, so no ClearDirty call is
// required for a literal produced this way.
func FromObject(obj *object.Object) Literal {
	if v, ok := obj.Int(); ok {
		return FromInteger(v)
	}
	return FromBytes(obj.Bytes())
}

// AsInteger returns the literal's integer value, if it carries one
// directly. It does not attempt to parse byte literals as integers —
// callers that need that do it explicitly via object.TryInt, since not
// every byte-valued element is meant to be read as a number.
func (l Literal) AsInteger() (int64, bool) {
	if l.isInt {
		return l.intVal, true
	}
	return 0, false
}

// Bytes returns the literal's byte-form value, materializing a decimal
// rendering for integer literals on demand. The returned slice must be
// treated as read-only.
func (l Literal) Bytes() []byte {
	if l.isInt {
		return object.FromInt(l.intVal).Bytes()
	}
	return l.bytes
}

// AsObject materializes the literal into a fresh, owned *object.Object
// with ref count 1 and marks the literal dirty so ClearDirty can release
// it. Calling AsObject on an already-dirty literal returns the same
// object without incrementing again.
func (l *Literal) AsObject() *object.Object {
	if l.dirty {
		return l.obj
	}
	var obj *object.Object
	if l.isInt {
		obj = object.FromInt(l.intVal)
	} else {
		obj = object.FromBytes(l.bytes)
	}
	l.obj = obj
	l.dirty = true
	return obj
}

// ClearDirty releases the literal's materialized object, if any. It is a
// no-op for literals that were never materialized via AsObject. Every
// consumer that calls AsObject on a literal it does not otherwise own must
// pair it with ClearDirty on every exit path.
func (l *Literal) ClearDirty() {
	if l.dirty && l.obj != nil {
		l.obj.DecrRef()
		l.obj = nil
		l.dirty = false
	}
}

// IsDirty reports whether the literal currently holds a materialized,
// owned object pending ClearDirty.
func (l Literal) IsDirty() bool { return l.dirty }

// Equal compares two literals by semantic value: an integer literal
// equals a byte literal iff the byte literal is the integer's exact
// decimal form.
func (l Literal) Equal(other Literal) bool {
	if l.isInt && other.isInt {
		return l.intVal == other.intVal
	}
	if l.isInt {
		return string(l.Bytes()) == string(other.bytes)
	}
	if other.isInt {
		return string(l.bytes) == string(other.Bytes())
	}
	return string(l.bytes) == string(other.bytes)
}

// IsInteger reports whether the literal is integer-tagged.
func (l Literal) IsInteger() bool { return l.isInt }
