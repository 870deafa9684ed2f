package roaring32

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIteratorAscendingOrder(t *testing.T) {
	rb := buildBitmap(5, 1, 70000, 2, 1<<30)

	var got []uint32
	it := rb.Iterator()
	for it.HasNext() {
		got = append(got, it.Next())
	}
	assert.Equal(t, []uint32{1, 2, 5, 70000, 1 << 30}, got)
}

func TestIteratorEmptyBitmap(t *testing.T) {
	rb := New()
	it := rb.Iterator()
	assert.False(t, it.HasNext())
}

func TestReverseIteratorDescendingOrder(t *testing.T) {
	rb := buildBitmap(5, 1, 70000, 2, 1<<30)

	var got []uint32
	it := rb.ReverseIterator()
	for it.HasNext() {
		got = append(got, it.Next())
	}
	assert.Equal(t, []uint32{1 << 30, 70000, 5, 2, 1}, got)
}

func TestIteratorMatchesToSlice(t *testing.T) {
	rb := New()
	for v := uint32(0); v < 5000; v += 7 {
		rb.Add(v)
	}
	rb.RunOptimize()

	var got []uint32
	it := rb.Iterator()
	for it.HasNext() {
		got = append(got, it.Next())
	}
	assert.Equal(t, rb.ToSlice(), got)
}

func TestIteratorAndReverseAreMirrors(t *testing.T) {
	rb := buildBitmap(1, 2, 3, 70000, 70001)

	var fwd []uint32
	it := rb.Iterator()
	for it.HasNext() {
		fwd = append(fwd, it.Next())
	}

	var rev []uint32
	rit := rb.ReverseIterator()
	for rit.HasNext() {
		rev = append(rev, rit.Next())
	}

	require.Equal(t, len(fwd), len(rev))
	for i := range fwd {
		assert.Equal(t, fwd[i], rev[len(rev)-1-i])
	}
}
