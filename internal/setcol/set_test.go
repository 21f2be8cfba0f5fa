package setcol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamware/torua/internal/elem"
)

func TestSet_IntOnlyStaysIntEncoded(t *testing.T) {
	s := NewEmpty()
	limits := Limits{MaxIntsetEntries: 512}

	assert.True(t, s.Add(limits, elem.FromInteger(1)))
	assert.True(t, s.Add(limits, elem.FromInteger(2)))
	assert.False(t, s.Add(limits, elem.FromInteger(1)), "duplicate add must report false")

	assert.Equal(t, EncodingInt, s.Encoding())
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains(elem.FromInteger(2)))
	assert.False(t, s.Contains(elem.FromInteger(3)))
}

func TestSet_NonIntegerPromotesToHash(t *testing.T) {
	s := NewEmpty()
	limits := Limits{MaxIntsetEntries: 512}

	require.True(t, s.Add(limits, elem.FromInteger(1)))
	require.True(t, s.Add(limits, elem.FromInteger(2)))
	require.True(t, s.Add(limits, elem.FromBytes([]byte("x"))))

	assert.Equal(t, EncodingHash, s.Encoding())
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains(elem.FromInteger(2)))
	assert.True(t, s.Contains(elem.FromBytes([]byte("x"))))
}

func TestSet_PromotesAtCardinalityThreshold(t *testing.T) {
	s := NewEmpty()
	limits := Limits{MaxIntsetEntries: 4}

	for i := int64(1); i <= 4; i++ {
		require.True(t, s.Add(limits, elem.FromInteger(i)))
	}
	require.Equal(t, EncodingInt, s.Encoding(), "must not promote before exceeding the threshold")

	require.True(t, s.Add(limits, elem.FromInteger(5)))
	assert.Equal(t, EncodingHash, s.Encoding())
	assert.Equal(t, 5, s.Len())
}

func TestSet_NeverDemotes(t *testing.T) {
	s := NewEmpty()
	limits := Limits{MaxIntsetEntries: 512}

	require.True(t, s.Add(limits, elem.FromBytes([]byte("x"))))
	require.Equal(t, EncodingHash, s.Encoding())

	require.True(t, s.Remove(elem.FromBytes([]byte("x"))))
	assert.Equal(t, EncodingHash, s.Encoding(), "removing the only element must not demote")
	assert.Equal(t, 0, s.Len())
}

func TestSet_RemoveNonIntegerAgainstIntEncodingIsNoop(t *testing.T) {
	s := NewEmpty()
	limits := Limits{MaxIntsetEntries: 512}
	require.True(t, s.Add(limits, elem.FromInteger(1)))

	assert.False(t, s.Remove(elem.FromBytes([]byte("x"))))
	assert.Equal(t, EncodingInt, s.Encoding())
	assert.Equal(t, 1, s.Len())
}

func TestSet_RandomOnEmptyReturnsFalse(t *testing.T) {
	s := NewEmpty()
	_, ok := s.Random()
	assert.False(t, ok)
}

func TestSet_IterVisitsEveryElementOnce(t *testing.T) {
	s := NewEmpty()
	limits := Limits{MaxIntsetEntries: 512}
	want := map[string]bool{}
	for _, v := range []int64{1, 2, 3} {
		require.True(t, s.Add(limits, elem.FromInteger(v)))
		want[string(elem.FromInteger(v).Bytes())] = true
	}

	seen := map[string]bool{}
	it := s.Iter()
	for {
		l, ok := it.Next()
		if !ok {
			break
		}
		seen[string(l.Bytes())] = true
	}
	assert.Equal(t, want, seen)
}

func TestSet_ConvertOnlyDefinedToHash(t *testing.T) {
	s := NewEmpty()
	limits := Limits{MaxIntsetEntries: 512}
	require.True(t, s.Add(limits, elem.FromInteger(1)))

	require.NoError(t, s.Convert(EncodingHash))
	assert.Equal(t, EncodingHash, s.Encoding())

	assert.ErrorIs(t, s.Convert(EncodingInt), ErrBadConversion)
}
