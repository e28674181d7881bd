package pcset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChroma(t *testing.T) {
	assert.Equal(t, 0, Chroma(60))
	assert.Equal(t, 0, Chroma(0))
	assert.Equal(t, 7, Chroma(67))
	assert.Equal(t, 11, Chroma(-1))
	assert.Equal(t, 0, Chroma(-12))
}

func TestFromMidi(t *testing.T) {
	s := FromMidi([]int{60, 64, 67, 72, 76})
	assert.Equal(t, []int{0, 4, 7}, s.Chromas())
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, "100010010000", s.Bits())
	assert.False(t, s.IsEmpty())

	assert.True(t, FromMidi(nil).IsEmpty())
}

func TestFromBits(t *testing.T) {
	major := FromBits("101011010101")
	assert.Equal(t, []int{0, 2, 4, 5, 7, 9, 11}, major.Chromas())
	assert.Equal(t, "101011010101", major.Bits())

	// extra characters beyond 12 are ignored
	assert.Equal(t, []int{0}, FromBits("1000000000000111").Chromas())

	assert.True(t, FromBits("").IsEmpty())
	assert.True(t, FromBits("000000000000").IsEmpty())
}

func TestNearest(t *testing.T) {
	s := FromMidi([]int{0, 5, 7})

	want := []int{0, 0, 0, 5, 5, 5, 7, 7, 7, 7, 12, 12, 12}
	for m := 0; m <= 12; m++ {
		got, ok := s.Nearest(m)
		assert.True(t, ok)
		assert.Equal(t, want[m], got, "Nearest(%d)", m)
	}

	// snapping is chroma-based, so it works in any octave
	got, ok := s.Nearest(61)
	assert.True(t, ok)
	assert.Equal(t, 60, got)

	_, ok = FromMidi(nil).Nearest(60)
	assert.False(t, ok)
}

func TestStep(t *testing.T) {
	major := FromBits("101011010101")

	tests := []struct {
		step int
		want int
	}{
		{0, 60},
		{1, 62},
		{2, 64},
		{6, 71},
		{7, 72},
		{8, 74},
		{-1, 59},
		{-2, 57},
		{-7, 48},
	}
	for _, tt := range tests {
		got, ok := major.Step(60, tt.step)
		assert.True(t, ok)
		assert.Equal(t, tt.want, got, "Step(60, %d)", tt.step)
	}

	_, ok := FromMidi(nil).Step(60, 0)
	assert.False(t, ok)
}

func TestDegree(t *testing.T) {
	major := FromBits("101011010101")

	tests := []struct {
		degree int
		want   int
	}{
		{1, 60},
		{2, 62},
		{5, 67},
		{8, 72},
		{-1, 59},
		{-8, 47},
	}
	for _, tt := range tests {
		got, ok := major.Degree(60, tt.degree)
		assert.True(t, ok)
		assert.Equal(t, tt.want, got, "Degree(60, %d)", tt.degree)
	}

	_, ok := major.Degree(60, 0)
	assert.False(t, ok)
}
