package setalgebra

import (
	"errors"

	"golang.org/x/exp/slices"

	"github.com/dreamware/torua/internal/elem"
	"github.com/dreamware/torua/internal/keyspace"
	"github.com/dreamware/torua/internal/setcol"
)

// ErrWrongType is returned when an existing source key does not hold a
// Set — spec.md §4.D's "Every existing source must be a Set; otherwise
// the operation aborts with a wrong-type error and no side effects."
var ErrWrongType = errors.New("setalgebra: operand is not a set")

// Lookup resolves a key to its stored value, mirroring
// keyspace.Keyspace's LookupRead shape; this package type-asserts the
// value to *setcol.Set itself. LookupRead returns keyspace.Value, a
// distinct named type, so it does not satisfy this signature directly;
// internal/engine adapts it with a one-line wrapper.
type Lookup func(key string) (value interface{}, exists bool)

// resolveSets type-checks every existing source before any mutation, per
// spec.md §4.D: "Every existing source must be a Set; otherwise the
// operation aborts with a wrong-type error and no side effects." Missing
// keys are reported via the exists bit, not an error — callers decide
// what "missing" means per-operation.
func resolveSets(lookup Lookup, keys []string) (sets []*setcol.Set, exists []bool, err error) {
	sets = make([]*setcol.Set, len(keys))
	exists = make([]bool, len(keys))
	for i, k := range keys {
		v, ok := lookup(k)
		if !ok {
			continue
		}
		s, ok := v.(*setcol.Set)
		if !ok {
			return nil, nil, ErrWrongType
		}
		sets[i] = s
		exists[i] = true
	}
	return sets, exists, nil
}

// Inter computes the intersection of the sets at keys, per spec.md §4.D:
// any missing source makes the result empty (short-circuit). Sources are
// sorted by cardinality ascending before iterating the smallest one, so
// probes against the larger remaining sets bail on the first miss.
func Inter(lookup Lookup, keys []string) ([]elem.Literal, error) {
	sets, exists, err := resolveSets(lookup, keys)
	if err != nil {
		return nil, err
	}
	for _, ok := range exists {
		if !ok {
			return nil, nil
		}
	}
	order := make([]int, len(sets))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int {
		return sets[a].Len() - sets[b].Len()
	})

	smallest := sets[order[0]]
	rest := order[1:]

	var out []elem.Literal
	it := smallest.Iter()
	for {
		lit, ok := it.Next()
		if !ok {
			break
		}
		inAll := true
		for _, idx := range rest {
			if !sets[idx].Contains(lit) {
				inAll = false
				break
			}
		}
		if inAll {
			out = append(out, lit)
		}
	}
	return out, nil
}

// Union computes the union of the sets at keys, per spec.md §4.D:
// missing sources behave as empty. The accumulator starts INT-encoded
// and auto-promotes through setcol.Set's own Add, exactly as a live set
// would.
func Union(lookup Lookup, keys []string, limits setcol.Limits) ([]elem.Literal, error) {
	sets, _, err := resolveSets(lookup, keys)
	if err != nil {
		return nil, err
	}
	acc := setcol.NewEmpty()
	for _, s := range sets {
		if s == nil {
			continue
		}
		it := s.Iter()
		for {
			lit, ok := it.Next()
			if !ok {
				break
			}
			acc.Add(limits, lit)
		}
	}
	return drain(acc), nil
}

// Diff computes the set difference of the sets at keys (elements in the
// first set not present in any later one), per spec.md §4.D: the first
// source missing makes the result empty; subsequent missing sources are
// no-ops. The accumulator is seeded from the first source, then each
// later source's elements are removed from it, bailing early if the
// accumulator empties.
func Diff(lookup Lookup, keys []string, limits setcol.Limits) ([]elem.Literal, error) {
	sets, exists, err := resolveSets(lookup, keys)
	if err != nil {
		return nil, err
	}
	if len(sets) == 0 || !exists[0] {
		return nil, nil
	}
	acc := setcol.NewEmpty()
	first := sets[0]
	it := first.Iter()
	for {
		lit, ok := it.Next()
		if !ok {
			break
		}
		acc.Add(limits, lit)
	}
	for i := 1; i < len(sets); i++ {
		if acc.Len() == 0 {
			break
		}
		s := sets[i]
		if s == nil {
			continue
		}
		it := s.Iter()
		for {
			lit, ok := it.Next()
			if !ok {
				break
			}
			acc.Remove(lit)
		}
	}
	return drain(acc), nil
}

func drain(s *setcol.Set) []elem.Literal {
	out := make([]elem.Literal, 0, s.Len())
	it := s.Iter()
	for {
		lit, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, lit)
	}
	return out
}

// Store applies spec.md §4.D's destination discipline to a computed
// result: delete any existing value at dst before installing the result;
// if the result is empty, do not create the key at all. It returns the
// cardinality of the installed (or skipped) result. signalModified is
// called at most once, regardless of whether the path taken was
// delete-then-install or delete-only, matching the "one signal per
// affected key" rule.
func Store(ks *keyspace.Keyspace, dst string, result []elem.Literal, limits setcol.Limits) int {
	_, existed := ks.LookupRead(dst)
	if existed {
		ks.Delete(dst)
	}
	if len(result) == 0 {
		if existed {
			ks.SignalModified(dst)
		}
		return 0
	}
	out := setcol.NewEmpty()
	for _, lit := range result {
		out.Add(limits, lit)
	}
	ks.Add(dst, out)
	ks.SignalModified(dst)
	return out.Len()
}
