package roaring64

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIteratorAscendingOrder(t *testing.T) {
	rb := buildBitmap(5, 1, 4_000_000_000, 2, 8_000_000_000)

	it := rb.Iterator()
	var got []uint64
	for it.HasNext() {
		got = append(got, it.Next())
	}
	assert.Equal(t, []uint64{1, 2, 5, 4_000_000_000, 8_000_000_000}, got)
}

func TestIteratorEmptyBitmap(t *testing.T) {
	rb := New()
	it := rb.Iterator()
	assert.False(t, it.HasNext())
}

func TestIteratorAfterAddRemoveInNewOuterKey(t *testing.T) {
	rb := buildBitmap(1, 4_000_000_000)
	rb.Add(8_000_000_000)
	rb.Remove(8_000_000_000) // drops the outer entry its inner bitmap emptied

	it := rb.Iterator()
	var got []uint64
	for it.HasNext() {
		got = append(got, it.Next())
	}
	assert.Equal(t, []uint64{1, 4_000_000_000}, got)
}

func TestReverseIteratorDescendingOrder(t *testing.T) {
	rb := buildBitmap(5, 1, 4_000_000_000, 2, 8_000_000_000)

	it := rb.ReverseIterator()
	var got []uint64
	for it.HasNext() {
		got = append(got, it.Next())
	}
	assert.Equal(t, []uint64{8_000_000_000, 4_000_000_000, 5, 2, 1}, got)
}

func TestIteratorMatchesToSliceAfterRunOptimize(t *testing.T) {
	rb := New()
	for v := uint64(0); v < 3000; v++ {
		rb.Add(v)
	}
	rb.Add(8_000_000_000)
	rb.RunOptimize()

	it := rb.Iterator()
	var got []uint64
	for it.HasNext() {
		got = append(got, it.Next())
	}
	assert.Equal(t, rb.ToSlice(), got)
}

func TestForwardReverseAreMirrors(t *testing.T) {
	rb := buildBitmap(1, 2, 3, 4_000_000_000, 8_000_000_000)

	fwd := rb.Iterator()
	var forward []uint64
	for fwd.HasNext() {
		forward = append(forward, fwd.Next())
	}

	rev := rb.ReverseIterator()
	var backward []uint64
	for rev.HasNext() {
		backward = append(backward, rev.Next())
	}

	for i := range backward {
		assert.Equal(t, forward[len(forward)-1-i], backward[i])
	}
}

func TestIteratorFullBackgroundSkipsRemovedValues(t *testing.T) {
	rb := New()
	rb.AddRangeClosed(0, math.MaxUint64)
	rb.Remove(0)
	rb.Remove(2)

	it := rb.Iterator()
	assert.True(t, it.HasNext())
	assert.Equal(t, uint64(1), it.Next())
	assert.Equal(t, uint64(3), it.Next())
	assert.Equal(t, uint64(4), it.Next())

	rit := rb.ReverseIterator()
	assert.True(t, rit.HasNext())
	assert.Equal(t, uint64(math.MaxUint64), rit.Next())
}
