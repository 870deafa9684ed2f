package roaring64

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFastUnionEmpty(t *testing.T) {
	out := FastUnion()
	assert.True(t, out.IsEmpty())
}

func TestFastUnionSingle(t *testing.T) {
	a := buildBitmap(1, 4_000_000_000)
	out := FastUnion(a)
	assert.Equal(t, a.ToSlice(), out.ToSlice())
}

func TestFastUnionAcrossOuterKeys(t *testing.T) {
	a := buildBitmap(1, 4_000_000_000)
	b := buildBitmap(2, 8_000_000_000)
	c := buildBitmap(4_000_000_000, 12_000_000_000)

	out := FastUnion(a, b, c)
	assert.Equal(t, []uint64{1, 2, 4_000_000_000, 8_000_000_000, 12_000_000_000}, out.ToSlice())
}

// The union of 100 identical copies of [0, 10^6) is [0, 10^6).
func TestFastUnionManyIdenticalRanges(t *testing.T) {
	const n = uint64(1_000_000)
	bitmaps := make([]*Bitmap, 100)
	for i := range bitmaps {
		rb := New()
		rb.AddRange(0, n)
		bitmaps[i] = rb
	}

	out := FastUnion(bitmaps...)

	card, full := out.CardinalityNoThrow()
	require.False(t, full)
	assert.Equal(t, n, card)
	assert.True(t, out.Contains(0))
	assert.True(t, out.Contains(n-1))
	assert.False(t, out.Contains(n))
}

func TestFastUnionMatchesPairwiseOr(t *testing.T) {
	a := buildBitmap(1, 2, 4_000_000_000)
	b := buildBitmap(2, 3, 8_000_000_000)
	c := buildBitmap(3, 4, 12_000_000_000)

	fast := FastUnion(a, b, c)
	pairwise := Or(Or(a, b), c)

	assert.Equal(t, pairwise.ToSlice(), fast.ToSlice())
}
