package listcol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamware/torua/internal/elem"
)

func bytesOf(t *testing.T, ls []elem.Literal) []string {
	t.Helper()
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = string(l.Bytes())
	}
	return out
}

func TestList_RangeAndTrim(t *testing.T) {
	l := New()
	limits := Limits{MaxZiplistEntries: 128, MaxZiplistValue: 64}

	for _, s := range []string{"a", "b", "c"} {
		l.Push(limits, Tail, elem.FromBytes([]byte(s)))
	}
	require.Equal(t, 3, l.Len())

	got := l.Range(0, -1)
	assert.Equal(t, []string{"a", "b", "c"}, bytesOf(t, got))

	l.Trim(1, -1)
	assert.Equal(t, 2, l.Len())
	got = l.Range(0, -1)
	assert.Equal(t, []string{"b", "c"}, bytesOf(t, got))
}

func TestList_LongValuePromotesToLinked(t *testing.T) {
	l := New()
	limits := Limits{MaxZiplistEntries: 128, MaxZiplistValue: 4}

	l.Push(limits, Tail, elem.FromBytes([]byte("ab")))
	assert.Equal(t, EncodingZip, l.Encoding())

	l.Push(limits, Tail, elem.FromBytes([]byte("too-long")))
	assert.Equal(t, EncodingLinked, l.Encoding())
	assert.Equal(t, 2, l.Len())
}

func TestList_EntryCountPromotesToLinked(t *testing.T) {
	l := New()
	limits := Limits{MaxZiplistEntries: 2, MaxZiplistValue: 64}

	l.Push(limits, Tail, elem.FromBytes([]byte("a")))
	l.Push(limits, Tail, elem.FromBytes([]byte("b")))
	require.Equal(t, EncodingZip, l.Encoding(), "must not promote before exceeding the threshold")

	l.Push(limits, Tail, elem.FromBytes([]byte("c")))
	assert.Equal(t, EncodingLinked, l.Encoding())
	assert.Equal(t, 3, l.Len())
}

func TestList_NeverDemotes(t *testing.T) {
	l := New()
	limits := Limits{MaxZiplistEntries: 1, MaxZiplistValue: 64}

	l.Push(limits, Tail, elem.FromBytes([]byte("a")))
	l.Push(limits, Tail, elem.FromBytes([]byte("b")))
	require.Equal(t, EncodingLinked, l.Encoding())

	l.Pop(Tail)
	l.Pop(Tail)
	require.Equal(t, 0, l.Len())
	assert.Equal(t, EncodingLinked, l.Encoding(), "draining the list must not demote")
}

func TestList_PushPopBothEnds(t *testing.T) {
	l := New()
	limits := Limits{MaxZiplistEntries: 128, MaxZiplistValue: 64}

	l.Push(limits, Head, elem.FromBytes([]byte("b")))
	l.Push(limits, Head, elem.FromBytes([]byte("a")))
	l.Push(limits, Tail, elem.FromBytes([]byte("c")))

	got := l.Range(0, -1)
	assert.Equal(t, []string{"a", "b", "c"}, bytesOf(t, got))

	head, ok := l.Pop(Head)
	require.True(t, ok)
	assert.Equal(t, "a", string(head.Bytes()))

	tail, ok := l.Pop(Tail)
	require.True(t, ok)
	assert.Equal(t, "c", string(tail.Bytes()))
}

func TestList_InsertRelative(t *testing.T) {
	l := New()
	limits := Limits{MaxZiplistEntries: 128, MaxZiplistValue: 64}
	for _, s := range []string{"a", "c"} {
		l.Push(limits, Tail, elem.FromBytes([]byte(s)))
	}

	ok := l.InsertRelative(limits, []byte("c"), Before, elem.FromBytes([]byte("b")))
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, bytesOf(t, l.Range(0, -1)))

	ok = l.InsertRelative(limits, []byte("c"), After, elem.FromBytes([]byte("d")))
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c", "d"}, bytesOf(t, l.Range(0, -1)))

	ok = l.InsertRelative(limits, []byte("missing"), Before, elem.FromBytes([]byte("x")))
	assert.False(t, ok)
}

func TestList_RemoveCountSemantics(t *testing.T) {
	limits := Limits{MaxZiplistEntries: 128, MaxZiplistValue: 64}

	l := New()
	for _, s := range []string{"a", "x", "a", "x", "a"} {
		l.Push(limits, Tail, elem.FromBytes([]byte(s)))
	}
	n := l.Remove([]byte("a"), 2)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"x", "x", "a"}, bytesOf(t, l.Range(0, -1)))

	l2 := New()
	for _, s := range []string{"a", "x", "a", "x", "a"} {
		l2.Push(limits, Tail, elem.FromBytes([]byte(s)))
	}
	n = l2.Remove([]byte("a"), -2)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"a", "x", "x"}, bytesOf(t, l2.Range(0, -1)))

	l3 := New()
	for _, s := range []string{"a", "x", "a", "x", "a"} {
		l3.Push(limits, Tail, elem.FromBytes([]byte(s)))
	}
	n = l3.Remove([]byte("a"), 0)
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"x", "x"}, bytesOf(t, l3.Range(0, -1)))
}

func TestList_SetAndAt(t *testing.T) {
	l := New()
	limits := Limits{MaxZiplistEntries: 128, MaxZiplistValue: 64}
	for _, s := range []string{"a", "b", "c"} {
		l.Push(limits, Tail, elem.FromBytes([]byte(s)))
	}

	ok := l.Set(limits, 1, elem.FromBytes([]byte("B")))
	require.True(t, ok)
	got, ok := l.At(-2)
	require.True(t, ok)
	assert.Equal(t, "B", string(got.Bytes()))

	_, ok = l.At(10)
	assert.False(t, ok)
}

func TestList_ConvertOnlyDefinedToLinked(t *testing.T) {
	l := New()
	require.NoError(t, l.Convert(EncodingLinked))
	assert.Equal(t, EncodingLinked, l.Encoding())
	assert.ErrorIs(t, l.Convert(EncodingZip), ErrBadConversion)
}

func TestList_IterVisitsEveryElementInOrder(t *testing.T) {
	l := New()
	limits := Limits{MaxZiplistEntries: 128, MaxZiplistValue: 64}
	for _, s := range []string{"a", "b", "c"} {
		l.Push(limits, Tail, elem.FromBytes([]byte(s)))
	}

	var seen []string
	it := l.Iter()
	for {
		lit, ok := it.Next()
		if !ok {
			break
		}
		seen = append(seen, string(lit.Bytes()))
	}
	assert.Equal(t, []string{"a", "b", "c"}, seen)
}
