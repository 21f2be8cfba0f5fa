package engine

import (
	"time"

	"go.uber.org/zap"

	"github.com/dreamware/torua/internal/blocking"
	"github.com/dreamware/torua/internal/config"
	"github.com/dreamware/torua/internal/elem"
	"github.com/dreamware/torua/internal/keyspace"
	"github.com/dreamware/torua/internal/listcol"
	"github.com/dreamware/torua/internal/object"
	"github.com/dreamware/torua/internal/setalgebra"
	"github.com/dreamware/torua/internal/setcol"
)

// Engine is the single-threaded command core: a Keyspace, the promotion
// limits every mutation consults, and the blocking.Table every push
// checks first. It is not safe for concurrent use, per spec.md §5 — all
// of its methods are meant to run on one goroutine (see cmd/collectiond).
type Engine struct {
	ks       *keyspace.Keyspace
	blocking *blocking.Table
	cfg      config.Config
	log      *zap.Logger
}

// New returns an Engine wired to ks and blocked, configured by cfg. ks's
// modified hook is left to the caller, not this package, since spec.md
// §1 scopes persistence/replication out; cmd/collectiond installs none.
func New(ks *keyspace.Keyspace, blocked *blocking.Table, cfg config.Config, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{ks: ks, blocking: blocked, cfg: cfg, log: log.Named("engine")}
}

func (e *Engine) setLimits() setcol.Limits {
	return setcol.Limits{MaxIntsetEntries: e.cfg.SetMaxIntsetEntries}
}

func (e *Engine) listLimits() listcol.Limits {
	return listcol.Limits{
		MaxZiplistEntries: e.cfg.ListMaxZiplistEntries,
		MaxZiplistValue:   e.cfg.ListMaxZiplistValue,
	}
}

// getSet resolves key to an existing Set. exists is false if the key is
// absent; err is ErrWrongType if key holds something else.
func (e *Engine) getSet(key string) (s *setcol.Set, exists bool, err error) {
	v, ok := e.ks.LookupRead(key)
	if !ok {
		return nil, false, nil
	}
	s, ok = v.(*setcol.Set)
	if !ok {
		return nil, true, ErrWrongType
	}
	return s, true, nil
}

// getList resolves key to an existing List, same error convention as getSet.
func (e *Engine) getList(key string) (l *listcol.List, exists bool, err error) {
	v, ok := e.ks.LookupRead(key)
	if !ok {
		return nil, false, nil
	}
	l, ok = v.(*listcol.List)
	if !ok {
		return nil, true, ErrWrongType
	}
	return l, true, nil
}

// deleteIfEmptySet enforces spec.md §3/§4.B invariant (iv): "size 0 is
// valid transiently but the key is deleted from the enclosing keyspace
// whenever a mutation observes size 0."
func (e *Engine) deleteIfEmptySet(key string, s *setcol.Set) {
	if s.Len() == 0 {
		e.ks.Delete(key)
	}
	e.ks.SignalModified(key)
}

// deleteIfEmptyList enforces the List analogue of the same invariant
// (spec.md §4.C: "empty list ⇒ delete key").
func (e *Engine) deleteIfEmptyList(key string, l *listcol.List) {
	if l.Len() == 0 {
		e.ks.Delete(key)
	}
	e.ks.SignalModified(key)
}

// --- Sets ---------------------------------------------------------------

// SAdd implements SADD key member [member ...]: adds each member to the
// set at key, creating it (INT or HASH per the first member, spec.md
// §4.B's create-for) if absent. Returns the count of members actually
// added.
//
// @command SADD
// @modifying
func (e *Engine) SAdd(key string, members [][]byte) (int, error) {
	s, exists, err := e.getSet(key)
	if err != nil {
		return 0, err
	}
	added := 0
	limits := e.setLimits()
	created := false
	if !exists {
		s = setcol.CreateFor(literalFromBytes(members[0]))
		created = true
	}
	for _, m := range members {
		lit := literalFromBytes(m)
		if s.Add(limits, lit) {
			added++
		}
	}
	if created {
		e.ks.Add(key, s)
	}
	if added > 0 || created {
		e.ks.SignalModified(key)
	}
	return added, nil
}

// SRem implements SREM key member [member ...]: removes each member
// present in the set at key, deleting the key if it empties.
//
// @command SREM
// @modifying
func (e *Engine) SRem(key string, members [][]byte) (int, error) {
	s, exists, err := e.getSet(key)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, nil
	}
	removed := 0
	for _, m := range members {
		if s.Remove(literalFromBytes(m)) {
			removed++
		}
	}
	if removed > 0 {
		e.deleteIfEmptySet(key, s)
	}
	return removed, nil
}

// SMove implements SMOVE src dst member: atomically moves member from
// src to dst. Returns false if member was not a member of src. Deletes
// src if it empties; creates dst if absent.
//
// src == dst is a no-op beyond reporting membership: removing then
// re-adding the same element to the same Set would observe a transient
// size-0 and delete the key out from under itself (deleteIfEmptySet has
// no way to know the element is coming right back), permanently losing
// the key even though the element never actually left it. Real Redis's
// smoveCommand guards against exactly this with an identical
// srcset == dstset short-circuit before any mutation.
//
// @command SMOVE
// @modifying
func (e *Engine) SMove(src, dst string, member []byte) (bool, error) {
	s, exists, err := e.getSet(src)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}
	lit := literalFromBytes(member)
	if src == dst {
		return s.Contains(lit), nil
	}
	dstSet, dstExists, err := e.getSet(dst)
	if err != nil {
		return false, err
	}
	if !s.Remove(lit) {
		return false, nil
	}
	e.deleteIfEmptySet(src, s)
	if !dstExists {
		dstSet = setcol.CreateFor(lit)
		e.ks.Add(dst, dstSet)
	}
	dstSet.Add(e.setLimits(), lit)
	e.ks.SignalModified(dst)
	return true, nil
}

// SIsMember implements SISMEMBER key member.
//
// @command SISMEMBER
func (e *Engine) SIsMember(key string, member []byte) (bool, error) {
	s, exists, err := e.getSet(key)
	if err != nil || !exists {
		return false, err
	}
	return s.Contains(literalFromBytes(member)), nil
}

// SCard implements SCARD key.
//
// @command SCARD
func (e *Engine) SCard(key string) (int, error) {
	s, exists, err := e.getSet(key)
	if err != nil || !exists {
		return 0, err
	}
	return s.Len(), nil
}

// SPop implements SPOP key: removes and returns a random member. The
// second return value is the replication rewrite spec.md §6 and §9
// require ("SPOP must rewrite its in-memory command record so that
// replication/journaling observes an equivalent SREM key popped-value").
// It is threaded back as an explicit value rather than the source's
// argv-mutation hack, per spec.md §9's own suggested re-architecture.
//
// @command SPOP
// @modifying
func (e *Engine) SPop(key string) (value []byte, ok bool, repl *ReplicationRewrite, err error) {
	s, exists, err := e.getSet(key)
	if err != nil {
		return nil, false, nil, err
	}
	if !exists || s.Len() == 0 {
		return nil, false, nil, nil
	}
	lit, ok := s.Random()
	if !ok {
		return nil, false, nil, nil
	}
	value = cloneBytes(lit.Bytes())
	s.Remove(lit)
	e.deleteIfEmptySet(key, s)
	return value, true, &ReplicationRewrite{Command: "SREM", Args: []string{key, string(value)}}, nil
}

// SRandMember implements SRANDMEMBER key: returns a random member
// without removing it. ok is false for a missing or empty key.
//
// @command SRANDMEMBER
func (e *Engine) SRandMember(key string) (value []byte, ok bool, err error) {
	s, exists, err := e.getSet(key)
	if err != nil || !exists {
		return nil, false, err
	}
	lit, ok := s.Random()
	if !ok {
		return nil, false, nil
	}
	return cloneBytes(lit.Bytes()), true, nil
}

func (e *Engine) lookup(key string) (interface{}, bool) { return e.ks.LookupRead(key) }

// SInter implements SINTER key [key ...].
//
// @command SINTER
func (e *Engine) SInter(keys []string) ([][]byte, error) {
	lits, err := setalgebra.Inter(e.lookup, keys)
	if err != nil {
		return nil, ErrWrongType
	}
	return literalsToBytes(lits), nil
}

// SInterStore implements SINTERSTORE dst key [key ...], returning the
// cardinality of the stored result.
//
// @command SINTERSTORE
// @modifying
func (e *Engine) SInterStore(dst string, keys []string) (int, error) {
	lits, err := setalgebra.Inter(e.lookup, keys)
	if err != nil {
		return 0, ErrWrongType
	}
	return setalgebra.Store(e.ks, dst, lits, e.setLimits()), nil
}

// SUnion implements SUNION key [key ...].
//
// @command SUNION
func (e *Engine) SUnion(keys []string) ([][]byte, error) {
	lits, err := setalgebra.Union(e.lookup, keys, e.setLimits())
	if err != nil {
		return nil, ErrWrongType
	}
	return literalsToBytes(lits), nil
}

// SUnionStore implements SUNIONSTORE dst key [key ...].
//
// @command SUNIONSTORE
// @modifying
func (e *Engine) SUnionStore(dst string, keys []string) (int, error) {
	lits, err := setalgebra.Union(e.lookup, keys, e.setLimits())
	if err != nil {
		return 0, ErrWrongType
	}
	return setalgebra.Store(e.ks, dst, lits, e.setLimits()), nil
}

// SDiff implements SDIFF key [key ...].
//
// @command SDIFF
func (e *Engine) SDiff(keys []string) ([][]byte, error) {
	lits, err := setalgebra.Diff(e.lookup, keys, e.setLimits())
	if err != nil {
		return nil, ErrWrongType
	}
	return literalsToBytes(lits), nil
}

// SDiffStore implements SDIFFSTORE dst key [key ...].
//
// @command SDIFFSTORE
// @modifying
func (e *Engine) SDiffStore(dst string, keys []string) (int, error) {
	lits, err := setalgebra.Diff(e.lookup, keys, e.setLimits())
	if err != nil {
		return 0, ErrWrongType
	}
	return setalgebra.Store(e.ks, dst, lits, e.setLimits()), nil
}

// ReplicationRewrite carries a command a non-deterministic operation
// should be replicated/journaled as instead of the literal command the
// client issued, per spec.md §6's SPOP discussion.
type ReplicationRewrite struct {
	Command string
	Args    []string
}

// literalFromBytes builds the Literal a command argument becomes: an
// integer literal if the bytes parse as a strict decimal int64 (the same
// int-encoding test object.Object applies to stored values), a byte
// literal otherwise.
func literalFromBytes(b []byte) elem.Literal {
	if v, ok := object.TryInt(b); ok {
		return elem.FromInteger(v)
	}
	return elem.FromBytes(b)
}

func literalsToBytes(lits []elem.Literal) [][]byte {
	out := make([][]byte, len(lits))
	for i, l := range lits {
		out[i] = cloneBytes(l.Bytes())
	}
	return out
}

func cloneBytes(b []byte) []byte {
	cp := make([]byte, len(b))
	copy(cp, b)
	return cp
}

// computeDeadline converts a caller-supplied relative timeout in seconds
// into an absolute wall-clock deadline, per spec.md §4.E: "a
// caller-supplied relative timeout of 0 means 'never expire'; positive
// timeouts are added to current time." now is a parameter rather than
// time.Now() so tests can control it.
func computeDeadline(now time.Time, timeoutSeconds float64) time.Time {
	if timeoutSeconds == 0 {
		return time.Time{}
	}
	return now.Add(time.Duration(timeoutSeconds * float64(time.Second)))
}
