package command

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamware/torua/internal/blocking"
	"github.com/dreamware/torua/internal/config"
	"github.com/dreamware/torua/internal/engine"
	"github.com/dreamware/torua/internal/keyspace"
)

func newTestCommand(t *testing.T) *Command {
	t.Helper()
	ks := keyspace.New()
	tbl := blocking.New()
	cfg := config.Config{SetMaxIntsetEntries: 512, ListMaxZiplistEntries: 128, ListMaxZiplistValue: 64}
	return New(engine.New(ks, tbl, cfg, nil))
}

func TestDispatch_SaddAndScard(t *testing.T) {
	c := newTestCommand(t)
	res, err := c.Dispatch("c1", "SADD", []string{"s", "1", "2", "3"}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, KindInteger, res.Reply.Kind)
	assert.Equal(t, int64(3), res.Reply.Int)

	res, err = c.Dispatch("c1", "SCARD", []string{"s"}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Reply.Int)
}

func TestDispatch_UnknownCommand(t *testing.T) {
	c := newTestCommand(t)
	_, err := c.Dispatch("c1", "NOPE", nil, time.Now())
	assert.Error(t, err)
}

func TestDispatch_LinsertBadSide(t *testing.T) {
	c := newTestCommand(t)
	c.Dispatch("c1", "RPUSH", []string{"k", "a", "b"}, time.Now())
	_, err := c.Dispatch("c1", "LINSERT", []string{"k", "SIDEWAYS", "a", "x"}, time.Now())
	assert.ErrorIs(t, err, engine.ErrSyntax)
}

func TestDispatch_BlockingHandoffViaWaiterHandle(t *testing.T) {
	c := newTestCommand(t)
	res, err := c.Dispatch("c1", "BLPOP", []string{"k", "0"}, time.Now())
	require.NoError(t, err)
	require.NotNil(t, res.Waiter)

	c.Dispatch("c2", "RPUSH", []string{"k", "hello"}, time.Now())

	reply := res.Waiter.Wait()
	require.Equal(t, KindMultiBulk, reply.Kind)
	assert.Equal(t, [][]byte{[]byte("k"), []byte("hello")}, reply.Multi)
}

func TestDispatch_BadTimeoutSyntax(t *testing.T) {
	c := newTestCommand(t)
	_, err := c.Dispatch("c1", "BLPOP", []string{"k", "-5"}, time.Now())
	assert.ErrorIs(t, err, engine.ErrBadTimeout)
}

func TestDispatch_SmoveSameKeyIsNoOp(t *testing.T) {
	c := newTestCommand(t)
	c.Dispatch("c1", "SADD", []string{"s", "x"}, time.Now())

	res, err := c.Dispatch("c1", "SMOVE", []string{"s", "s", "x"}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Reply.Int)

	res, err = c.Dispatch("c1", "SISMEMBER", []string{"s", "x"}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Reply.Int, "element must still be a member of s after SMOVE s s x")
}

// A BRPOPLPUSH waiter whose target key turns wrong-typed before a push
// arrives must receive a wrong-type error reply from WaiterHandle.Wait,
// not block forever (spec.md §4.E / §9 open question (b)).
func TestDispatch_BrpoplpushRejectedWaiterGetsWrongTypeError(t *testing.T) {
	c := newTestCommand(t)
	res, err := c.Dispatch("c1", "BRPOPLPUSH", []string{"src", "dst", "0"}, time.Now())
	require.NoError(t, err)
	require.NotNil(t, res.Waiter)

	c.Dispatch("c2", "SADD", []string{"dst", "notalist"}, time.Now())
	_, err = c.Dispatch("c2", "RPUSH", []string{"src", "v"}, time.Now())
	require.NoError(t, err)

	reply := res.Waiter.Wait()
	require.Equal(t, KindError, reply.Kind)
	assert.ErrorIs(t, reply.Err, engine.ErrWrongType)
}

func TestDispatch_SpopCarriesReplicationRewrite(t *testing.T) {
	c := newTestCommand(t)
	c.Dispatch("c1", "SADD", []string{"s", "only"}, time.Now())
	res, err := c.Dispatch("c1", "SPOP", []string{"s"}, time.Now())
	require.NoError(t, err)
	require.NotNil(t, res.Replication)
	assert.Equal(t, "SREM", res.Replication.Command)
}
