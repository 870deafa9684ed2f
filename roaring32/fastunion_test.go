package roaring32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFastUnionEmptyInput(t *testing.T) {
	out := FastUnion()
	assert.True(t, out.IsEmpty())
}

func TestFastUnionSingleBitmap(t *testing.T) {
	a := New()
	a.Add(1)
	a.Add(70000)

	out := FastUnion(a)
	assert.Equal(t, a.ToSlice(), out.ToSlice())
}

func TestFastUnionAcrossKeys(t *testing.T) {
	a := New()
	a.Add(1)
	a.Add(70000)

	b := New()
	b.Add(2)
	b.Add(140000)

	c := New()
	c.Add(70000)
	c.Add(210000)

	out := FastUnion(a, b, c)
	assert.Equal(t, []uint32{1, 2, 70000, 140000, 210000}, out.ToSlice())
}

func TestFastUnionManyIdenticalRanges(t *testing.T) {
	bitmaps := make([]*Bitmap, 100)
	for i := range bitmaps {
		rb := New()
		rb.AddRange(0, 100000)
		bitmaps[i] = rb
	}

	out := FastUnion(bitmaps...)
	assert.Equal(t, uint64(100000), out.Cardinality())
}

func TestFastUnionMatchesPairwiseOr(t *testing.T) {
	a := New()
	a.Add(1)
	a.Add(2)
	a.Add(70000)

	b := New()
	b.Add(2)
	b.Add(3)
	b.Add(140000)

	c := New()
	c.Add(3)
	c.Add(4)
	c.Add(210000)

	fast := FastUnion(a, b, c)
	pairwise := Or(Or(a, b), c)

	assert.Equal(t, pairwise.ToSlice(), fast.ToSlice())
}
