package engine

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamware/torua/internal/blocking"
	"github.com/dreamware/torua/internal/config"
	"github.com/dreamware/torua/internal/keyspace"
	"github.com/dreamware/torua/internal/listcol"
	"github.com/dreamware/torua/internal/setcol"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	ks := keyspace.New()
	tbl := blocking.New()
	cfg := config.Config{
		SetMaxIntsetEntries:   4,
		ListMaxZiplistEntries: 4,
		ListMaxZiplistValue:   8,
	}
	return New(ks, tbl, cfg, nil)
}

func b(s string) []byte { return []byte(s) }

func bb(ss ...string) [][]byte {
	out := make([][]byte, len(ss))
	for i, s := range ss {
		out[i] = []byte(s)
	}
	return out
}

// Scenario 1 (spec.md §8): SADD s 1 2 "x" -> HASH encoded, SCARD 3.
func TestEngine_SetScenario1(t *testing.T) {
	e := newTestEngine(t)
	n, err := e.SAdd("s", bb("1", "2", "x"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	card, err := e.SCard("s")
	require.NoError(t, err)
	assert.Equal(t, 3, card)

	ok, err := e.SIsMember("s", b("2"))
	require.NoError(t, err)
	assert.True(t, ok)

	v, _ := e.ks.LookupRead("s")
	assert.Equal(t, setcol.EncodingHash, v.(*setcol.Set).Encoding())
}

// Scenario 2: RPUSH a b c; LRANGE -> [a b c]; LTRIM 1 -1 -> [b c].
func TestEngine_ListScenario2(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.RPush("L", bb("a", "b", "c"))
	require.NoError(t, err)

	got, err := e.LRange("L", 0, -1)
	require.NoError(t, err)
	assert.Equal(t, bb("a", "b", "c"), got)

	require.NoError(t, e.LTrim("L", 1, -1))
	got, err = e.LRange("L", 0, -1)
	require.NoError(t, err)
	assert.Equal(t, bb("b", "c"), got)
}

// Scenario 3: SINTER / SINTERSTORE.
func TestEngine_SetAlgebraScenario3(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.SAdd("A", bb("1", "2", "3"))
	require.NoError(t, err)
	_, err = e.SAdd("B", bb("2", "3", "4"))
	require.NoError(t, err)

	inter, err := e.SInter([]string{"A", "B"})
	require.NoError(t, err)
	assert.ElementsMatch(t, bb("2", "3"), inter)

	n, err := e.SInterStore("D", []string{"A", "B"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	card, err := e.SCard("D")
	require.NoError(t, err)
	assert.Equal(t, 2, card)
}

// Scenario 4: BLPOP delivers directly, element never lands in the list.
func TestEngine_BlockingHandoff(t *testing.T) {
	e := newTestEngine(t)
	now := time.Now()

	pr, err := e.BLPop("c1", []string{"k"}, 0, false, now)
	require.NoError(t, err)
	require.NotNil(t, pr.Waiter)

	_, err = e.RPush("k", bb("hello"))
	require.NoError(t, err)

	d := pr.Waiter.Wait()
	assert.Equal(t, "k", d.Key)
	assert.Equal(t, b("hello"), d.Value)

	length, err := e.LLen("k")
	require.NoError(t, err)
	assert.Equal(t, 0, length)
}

// Scenario 5: LREM semantics.
func TestEngine_ListRemScenario5(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.RPush("k", bb("a", "b", "c"))
	require.NoError(t, err)

	n, err := e.LRem("k", -2, b("x"))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	got, _ := e.LRange("k", 0, -1)
	assert.Equal(t, bb("a", "b", "c"), got)

	n, err = e.LRem("k", 0, b("b"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	got, _ = e.LRange("k", 0, -1)
	assert.Equal(t, bb("a", "c"), got)
}

// Scenario 6: promotion at exactly the cardinality threshold.
func TestEngine_SetPromotionThreshold(t *testing.T) {
	e := newTestEngine(t)
	for i := 1; i <= 4; i++ {
		_, err := e.SAdd("s", bb(strconv.Itoa(i)))
		require.NoError(t, err)
	}
	v, _ := e.ks.LookupRead("s")
	assert.Equal(t, setcol.EncodingInt, v.(*setcol.Set).Encoding())

	_, err := e.SAdd("s", bb("5"))
	require.NoError(t, err)
	v, _ = e.ks.LookupRead("s")
	assert.Equal(t, setcol.EncodingHash, v.(*setcol.Set).Encoding())

	card, _ := e.SCard("s")
	assert.Equal(t, 5, card)
}

func TestEngine_EmptyContainerDeletesKey(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.SAdd("s", bb("1"))
	require.NoError(t, err)
	_, err = e.SRem("s", bb("1"))
	require.NoError(t, err)

	_, exists := e.ks.LookupRead("s")
	assert.False(t, exists)
}

func TestEngine_WrongTypeLeavesStateUnchanged(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.RPush("k", bb("a"))
	require.NoError(t, err)

	_, err = e.SAdd("k", bb("1"))
	assert.ErrorIs(t, err, ErrWrongType)

	length, err := e.LLen("k")
	require.NoError(t, err)
	assert.Equal(t, 1, length, "failed SADD must not have mutated the list")
}

func TestEngine_LInsertPivotNotFound(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.RPush("k", bb("a", "b"))
	require.NoError(t, err)

	n, err := e.LInsert("k", listcol.Before, b("zzz"), b("x"))
	require.NoError(t, err)
	assert.Equal(t, -1, n)
}

func TestEngine_LInsertMissingKey(t *testing.T) {
	e := newTestEngine(t)
	n, err := e.LInsert("nope", listcol.Before, b("a"), b("x"))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestEngine_BadTimeoutRejected(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.BLPop("c1", []string{"k"}, -1, false, time.Now())
	assert.ErrorIs(t, err, ErrBadTimeout)
}

func TestEngine_NestedAtomicNeverBlocks(t *testing.T) {
	e := newTestEngine(t)
	pr, err := e.BLPop("c1", []string{"k"}, 0, true, time.Now())
	require.NoError(t, err)
	assert.True(t, pr.Immediate)
	assert.False(t, pr.Found)
	assert.Nil(t, pr.Waiter)
}

// SMOVE with src == dst on a single-element set must not lose the key:
// removing then re-adding the same element to the same Set would
// observe a transient size-0 and delete the key, even though the
// element was never meant to leave it.
func TestEngine_SMoveSameKeySingleElement(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.SAdd("s", bb("x"))
	require.NoError(t, err)

	ok, err := e.SMove("s", "s", b("x"))
	require.NoError(t, err)
	assert.True(t, ok)

	_, exists := e.ks.LookupRead("s")
	require.True(t, exists, "SMOVE src==dst must not delete the key out from under itself")

	card, err := e.SCard("s")
	require.NoError(t, err)
	assert.Equal(t, 1, card)

	isMember, err := e.SIsMember("s", b("x"))
	require.NoError(t, err)
	assert.True(t, isMember)
}

// SMOVE with src == dst against a multi-element set is a no-op: the
// set's other members must be untouched and membership of the moved
// element reported accurately.
func TestEngine_SMoveSameKeyMultiElement(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.SAdd("s", bb("x", "y", "z"))
	require.NoError(t, err)

	ok, err := e.SMove("s", "s", b("x"))
	require.NoError(t, err)
	assert.True(t, ok)

	card, err := e.SCard("s")
	require.NoError(t, err)
	assert.Equal(t, 3, card)

	ok, err = e.SMove("s", "s", b("nope"))
	require.NoError(t, err)
	assert.False(t, ok, "SMOVE of a non-member to itself reports false")

	card, err = e.SCard("s")
	require.NoError(t, err)
	assert.Equal(t, 3, card, "no-op SMOVE must not alter cardinality")
}

// SMOVE between distinct keys still works as before: the element leaves
// src and appears in dst.
func TestEngine_SMoveDistinctKeys(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.SAdd("src", bb("x", "y"))
	require.NoError(t, err)

	ok, err := e.SMove("src", "dst", b("x"))
	require.NoError(t, err)
	assert.True(t, ok)

	srcMember, err := e.SIsMember("src", b("x"))
	require.NoError(t, err)
	assert.False(t, srcMember)

	dstMember, err := e.SIsMember("dst", b("x"))
	require.NoError(t, err)
	assert.True(t, dstMember)
}

func TestEngine_SPopReplicationRewrite(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.SAdd("s", bb("only"))
	require.NoError(t, err)

	v, ok, repl, err := e.SPop("s")
	require.NoError(t, err)
	require.True(t, ok)
	require.NotNil(t, repl)
	assert.Equal(t, "SREM", repl.Command)
	assert.Equal(t, []string{"s", string(v)}, repl.Args)
}
