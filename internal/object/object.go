// Package object implements the generic ref-counted value cell that every
// container element is ultimately backed by.
//
// spec.md §1 treats "the generic object/string type" as an external
// collaborator and asks only for: refcount or equivalent shared ownership,
// comparable bytes, and an optional cached integer encoding. Object is that
// type, written the way a leaf data structure in this codebase looks: a
// small struct, atomic bookkeeping, no surprises.
package object

import (
	"strconv"
	"sync/atomic"
)

// Object is a shared, ref-counted value holding either raw bytes or an
// integer whose decimal form is cached in bytes form on first request.
//
// Go's garbage collector reclaims memory regardless of the refcount; ref
// is kept anyway because spec.md §5 specifies scoped-acquisition
// contracts ("every element added to a container takes one reference;
// every element removed releases one") that the rest of this package is
// tested against. A refcount that underflows zero is a programmer error
// in the caller, not in Object.
type Object struct {
	bytes  []byte
	intVal int64
	ref    int32
	isInt  bool
}

// FromBytes creates a new Object with ref count 1, copying b so the
// caller's slice can be reused or mutated freely afterward.
func FromBytes(b []byte) *Object {
	cp := make([]byte, len(b))
	copy(cp, b)
	return &Object{bytes: cp, ref: 1}
}

// FromInt creates a new integer-encoded Object with ref count 1. Bytes are
// materialized lazily by Bytes, mirroring the source's "int encoding"
// optimization of avoiding a string allocation for numeric values.
func FromInt(v int64) *Object {
	return &Object{intVal: v, isInt: true, ref: 1}
}

// IncrRef increments the reference count. Callers that hand out a shared
// Object to a second owner (a second container slot, a second literal)
// must call this first.
func (o *Object) IncrRef() { atomic.AddInt32(&o.ref, 1) }

// DecrRef decrements the reference count and returns the count after the
// decrement. It never frees memory itself (the GC does that); it exists
// so leak-detecting tests can assert every acquisition was released.
func (o *Object) DecrRef() int32 { return atomic.AddInt32(&o.ref, -1) }

// RefCount returns the current reference count.
func (o *Object) RefCount() int32 { return atomic.LoadInt32(&o.ref) }

// IsInt reports whether the object carries a cached integer encoding.
func (o *Object) IsInt() bool { return o.isInt }

// Int returns the integer value and true if the object is int-encoded.
func (o *Object) Int() (int64, bool) {
	if !o.isInt {
		return 0, false
	}
	return o.intVal, true
}

// Bytes returns the object's value as bytes, materializing the decimal
// form on demand for int-encoded objects. The returned slice must not be
// mutated by the caller; it may be shared across multiple Bytes() calls.
func (o *Object) Bytes() []byte {
	if o.isInt {
		if o.bytes == nil {
			o.bytes = strconv.AppendInt(nil, o.intVal, 10)
		}
		return o.bytes
	}
	return o.bytes
}

// Equal compares two objects by semantic value: two integers compare
// numerically, everything else compares by decimal/byte form, so an
// int-encoded 42 equals a byte-encoded "42".
func (o *Object) Equal(other *Object) bool {
	if o.isInt && other.isInt {
		return o.intVal == other.intVal
	}
	return string(o.Bytes()) == string(other.Bytes())
}

// TryInt attempts to parse b as a base-10 int64 with no leading zeros or
// surrounding whitespace, the same strict form the source's integer
// encoding check uses. It is exported because both Object construction and
// Literal conversion need the identical parsing rule.
func TryInt(b []byte) (int64, bool) {
	if len(b) == 0 {
		return 0, false
	}
	v, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return 0, false
	}
	// Reject forms that wouldn't round-trip back to the same bytes
	// (leading zeros, "+5", etc.) so encoding stays exact.
	if strconv.FormatInt(v, 10) != string(b) {
		return 0, false
	}
	return v, true
}
