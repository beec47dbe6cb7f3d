package token

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadsTimingFields(t *testing.T) {
	c := New("timing(0,120.00,4.00);")
	c.Skip(7)
	timing, err := c.ReadInt()
	require.NoError(t, err)
	bpm, err := c.ReadFloat()
	require.NoError(t, err)
	bpl, err := c.ReadFloat()
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(0, timing)
	assert.Equal(120.0, bpm)
	assert.Equal(4.0, bpl)
	assert.Equal(";", c.Remaining())
	assert.Equal(';', c.Current())
}

func TestSkipCountsRunesNotBytes(t *testing.T) {
	c := New("🎵é(12,")
	c.Skip(3)
	v, err := c.ReadInt()
	require.NoError(t, err)
	assert.Equal(t, 12, v)
}

func TestSkipStopsAtEnd(t *testing.T) {
	c := New("ab")
	c.Skip(10)
	assert.True(t, c.Done())
	assert.Equal(t, rune(0), c.Current())
}

func TestReadFailsWithoutTerminator(t *testing.T) {
	c := New("123;")
	_, err := c.ReadInt()
	assert.True(t, errors.Is(err, ErrNoTerminator))
}

func TestReadIntRejectsFraction(t *testing.T) {
	c := New("0.75)")
	_, err := c.ReadInt()
	assert.Error(t, err)
}

func TestTryReadIntDoesNotAdvanceOnFailure(t *testing.T) {
	c := New("0.75);")
	_, ok := c.TryReadInt()
	assert.False(t, ok)
	assert.Equal(t, "0.75);", c.Remaining())

	f, ok := c.TryReadFloat()
	assert.True(t, ok)
	assert.Equal(t, 0.75, f)
	assert.Equal(t, ";", c.Remaining())
}

func TestTryReadIntCommits(t *testing.T) {
	c := New("2);")
	v, ok := c.TryReadInt()
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, ";", c.Remaining())
}

func TestTryReadBool(t *testing.T) {
	c := New("TRUE,maybe,")
	v, ok := c.TryReadBool()
	assert.True(t, ok)
	assert.True(t, v)

	_, ok = c.TryReadBool()
	assert.False(t, ok)
	assert.Equal(t, "maybe,", c.Remaining())

	_, err := c.ReadBool()
	assert.Error(t, err)
}

func TestReadStringMoreReportsTerminator(t *testing.T) {
	c := New("trackhide,1.5,2)")
	s, more, err := c.ReadStringMore()
	require.NoError(t, err)
	assert.Equal(t, "trackhide", s)
	assert.True(t, more)

	_, err = c.ReadFloat()
	require.NoError(t, err)

	s, more, err = c.ReadStringMore()
	require.NoError(t, err)
	assert.Equal(t, "2", s)
	assert.False(t, more)
}

func TestReadStringAllowsEmptyToken(t *testing.T) {
	c := New("){")
	s, err := c.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "", s)
	assert.Equal(t, "{", c.Remaining())
}

func TestCopiesAreIndependent(t *testing.T) {
	a := New("1,2,")
	b := a
	_, err := a.ReadInt()
	require.NoError(t, err)

	v, err := b.ReadInt()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.Equal(t, "2,", a.Remaining())
}

func TestPeek(t *testing.T) {
	c := New("aé")
	b, err := c.Peek(1)
	require.NoError(t, err)
	assert.Equal(t, byte('a'), b)

	r, err := c.PeekRune(2)
	require.NoError(t, err)
	assert.Equal(t, 'é', r)

	_, err = c.PeekRune(3)
	assert.Error(t, err)
	_, err = c.Peek(0)
	assert.Error(t, err)
	assert.Equal(t, "aé", c.Remaining())
}

func TestFloatRejectsHexAndSeparators(t *testing.T) {
	for _, in := range []string{"0x1p2,", "1_000,", "abc,"} {
		c := New(in)
		_, err := c.ReadFloat()
		assert.Error(t, err, in)
	}
}

func TestFloatOverflowReadsAsInfinity(t *testing.T) {
	c := New("1.5e400,-1e999)")
	v, err := c.ReadFloat()
	require.NoError(t, err)
	assert.True(t, math.IsInf(v, 1))
	v, err = c.ReadFloat()
	require.NoError(t, err)
	assert.True(t, math.IsInf(v, -1))
}
