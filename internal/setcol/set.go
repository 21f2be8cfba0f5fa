package setcol

import (
	"errors"
	"math/rand"

	"github.com/dreamware/torua/internal/elem"
	"github.com/dreamware/torua/internal/hashtable"
	"github.com/dreamware/torua/internal/intset"
	"github.com/dreamware/torua/internal/object"
)

// Encoding identifies a Set's current physical representation.
type Encoding int

const (
	// EncodingInt packs integer-only elements into a sorted array.
	EncodingInt Encoding = iota
	// EncodingHash stores arbitrary byte-valued elements in a hash table.
	EncodingHash
)

// ErrBadConversion is returned by Convert for any target other than
// EncodingHash from EncodingInt — spec.md §4.B calls any other direction
// a programmer error, never a recoverable one.
var ErrBadConversion = errors.New("setcol: only INT to HASH conversion is defined")

// Limits bundles the promotion thresholds a Set consults on every
// potentially-promoting mutation (spec.md §6, "read on every
// potentially-promoting mutation").
type Limits struct {
	MaxIntsetEntries int
}

// Set is spec.md §4.B's Set Container: a set of unique elements backed by
// either a sorted intset or an open-addressed hash table.
type Set struct {
	ints *intset.Set
	hash *hashtable.Table
	enc  Encoding
}

// CreateFor returns a new, empty Set encoded as EncodingInt if value is
// integer-representable, EncodingHash otherwise — spec.md §4.B's
// create-for. The literal itself is not inserted; call Add separately.
func CreateFor(value elem.Literal) *Set {
	if _, ok := value.AsInteger(); ok {
		return &Set{enc: EncodingInt, ints: intset.New()}
	}
	return &Set{enc: EncodingHash, hash: hashtable.New(1)}
}

// NewEmpty returns a new, empty INT-encoded Set. Adding a non-integer
// element promotes it to HASH on first insert, same as any other set.
func NewEmpty() *Set {
	return &Set{enc: EncodingInt, ints: intset.New()}
}

// Encoding returns the set's current physical encoding.
func (s *Set) Encoding() Encoding { return s.enc }

// Len returns the set's cardinality in O(1).
func (s *Set) Len() int {
	if s.enc == EncodingInt {
		return s.ints.Len()
	}
	return s.hash.Len()
}

// Add inserts literal, returning true if it was newly added.
//
// On EncodingInt: an integer literal is added to the packed array; if the
// resulting cardinality exceeds limits.MaxIntsetEntries the set promotes
// to HASH. A non-integer literal forces promotion first, then the
// materialized literal is inserted into the fresh hash table (guaranteed
// to succeed, since an INT-encoded set can't already contain it).
//
// On EncodingHash: the literal is materialized and inserted by byte
// identity.
func (s *Set) Add(limits Limits, literal elem.Literal) bool {
	if s.enc == EncodingInt {
		if v, ok := literal.AsInteger(); ok {
			added := s.ints.Add(v)
			if added && limits.MaxIntsetEntries > 0 && s.ints.Len() > limits.MaxIntsetEntries {
				s.promoteToHash()
			}
			return added
		}
		s.promoteToHash()
	}
	return s.addHash(literal)
}

func (s *Set) addHash(literal elem.Literal) bool {
	key := string(literal.Bytes())
	if s.hash.Contains(key) {
		return false
	}
	obj := literal.AsObject()
	obj.IncrRef()
	return s.hash.Add(key, obj)
}

func (s *Set) promoteToHash() {
	if s.enc == EncodingHash {
		return
	}
	dst := hashtable.New(s.ints.Len())
	for _, v := range s.ints.All() {
		obj := object.FromInt(v)
		obj.IncrRef()
		dst.Add(string(obj.Bytes()), obj)
	}
	s.hash = dst
	s.ints = nil
	s.enc = EncodingHash
}

// Remove deletes literal, returning true if it was present. An
// INT-encoded set can never contain a non-integer literal's match by
// definition, so Remove of a non-integer literal against an INT-encoded
// set is always a no-op (false), never a promotion trigger — removal
// never promotes.
func (s *Set) Remove(literal elem.Literal) bool {
	if s.enc == EncodingInt {
		v, ok := literal.AsInteger()
		if !ok {
			return false
		}
		return s.ints.Remove(v)
	}
	key := string(literal.Bytes())
	if !s.hash.Contains(key) {
		return false
	}
	obj, _ := s.hash.Get(key)
	s.hash.Remove(key)
	obj.DecrRef()
	return true
}

// Contains reports set membership for literal.
func (s *Set) Contains(literal elem.Literal) bool {
	if s.enc == EncodingInt {
		v, ok := literal.AsInteger()
		if !ok {
			return false
		}
		return s.ints.Contains(v)
	}
	return s.hash.Contains(string(literal.Bytes()))
}

// Random returns a uniformly-sampled element from an INT-encoded set, or
// a bucket-sampled (slightly non-uniform, per spec.md §9) element from a
// HASH-encoded one. ok is false only for an empty set.
func (s *Set) Random() (literal elem.Literal, ok bool) {
	if s.Len() == 0 {
		return elem.Literal{}, false
	}
	if s.enc == EncodingInt {
		i := rand.Intn(s.ints.Len())
		return elem.FromInteger(s.ints.At(i)), true
	}
	_, obj, found := s.hash.Random(rand.Uint64())
	if !found {
		return elem.Literal{}, false
	}
	return elem.FromObject(obj), true
}

// Iterator yields every element of a Set exactly once, in
// encoding-dependent but stable order, as long as the set is not mutated
// during iteration.
type Iterator struct {
	set    *Set
	intPos int
	hIter  *hashtable.Iterator
}

// Iter returns a fresh iterator. For a HASH-encoded set it captures the
// hash table's current slot array; for an INT-encoded set each Next reads
// the live intset array.
func (s *Set) Iter() *Iterator {
	it := &Iterator{set: s}
	if s.enc == EncodingHash {
		it.hIter = s.hash.Iter()
	}
	return it
}

// Next advances the iterator, returning the next element literal. ok is
// false once every element has been yielded.
func (it *Iterator) Next() (literal elem.Literal, ok bool) {
	if it.set.enc == EncodingInt {
		all := it.set.ints.All()
		if it.intPos >= len(all) {
			return elem.Literal{}, false
		}
		v := all[it.intPos]
		it.intPos++
		return elem.FromInteger(v), true
	}
	_, obj, found := it.hIter.Next()
	if !found {
		return elem.Literal{}, false
	}
	return elem.FromObject(obj), true
}

// Convert transforms the set's internal storage to target. Only
// EncodingInt → EncodingHash is defined: the destination is presized to
// the current cardinality, elements streamed in via an iterator, then
// storage is swapped atomically. Any other target is a programmer error.
func (s *Set) Convert(target Encoding) error {
	if target != EncodingHash {
		return ErrBadConversion
	}
	if s.enc == EncodingHash {
		return nil
	}
	s.promoteToHash()
	return nil
}
