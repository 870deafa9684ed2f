package roaring64

import (
	"math"

	"github.com/scampagna/roaring/roaring32"
)

// This file implements a direct bidirectional cursor over the two-level
// ordered structure: rather than adapting a forward
// iterator to walk backward, the reverse iterator holds its own outer
// and inner cursors moving toward lower keys.
//
// When the Bitmap's background is full (bitmap64.go), the iterators walk
// the outer key space directly: an un-overridden outer key yields all
// 2^32 of its values from a raw counter, an overridden one defers to
// that override's own iterator. Enumerating a mostly-full domain is
// always going to be a near-2^64-step walk — inherent to what
// "enumerate everything" means, not a cost this representation could
// avoid — but the first values come out correctly even when the low
// keys carry exceptions.

// Iterator yields every value in a Bitmap in ascending order.
type Iterator struct {
	rb       *Bitmap
	outerIdx int
	inner    *roaring32.Iterator

	// full-background walk: outerKey is the outer key being emitted,
	// lowCur the next low 32-bit value when that key has no override,
	// bgInner the override's cursor when it does.
	outerKey uint64
	lowCur   uint64
	bgInner  *roaring32.Iterator
	done     bool
}

// Iterator returns a restartable forward iterator over rb.
func (rb *Bitmap) Iterator() *Iterator {
	it := &Iterator{rb: rb}
	if rb.full {
		it.startFullKey(0)
		return it
	}
	it.skipToNonEmpty()
	return it
}

// startFullKey positions the full-background walk at outer key k or the
// nearest higher key with any values, skipping overrides that are empty.
func (it *Iterator) startFullKey(k uint64) {
	for ; k < 1<<32; k++ {
		i, exists := it.rb.find(uint32(k))
		if !exists {
			it.outerKey, it.lowCur, it.bgInner = k, 0, nil
			return
		}
		inner := it.rb.containers[i].Iterator()
		if inner.HasNext() {
			it.outerKey, it.bgInner = k, inner
			return
		}
	}
	it.done = true
}

func (it *Iterator) skipToNonEmpty() {
	for it.outerIdx < len(it.rb.containers) {
		cand := it.rb.containers[it.outerIdx].Iterator()
		if cand.HasNext() {
			it.inner = cand
			return
		}
		it.outerIdx++
	}
	it.inner = nil
}

// HasNext reports whether another value is available.
func (it *Iterator) HasNext() bool {
	if it.rb.full {
		return !it.done
	}
	return it.inner != nil
}

// Next returns the next value in ascending order. It must not be called
// when HasNext is false.
func (it *Iterator) Next() uint64 {
	if it.rb.full {
		base := it.outerKey << 32
		if it.bgInner != nil {
			v := base | uint64(it.bgInner.Next())
			if !it.bgInner.HasNext() {
				it.startFullKey(it.outerKey + 1)
			}
			return v
		}
		v := base | it.lowCur
		if it.lowCur == math.MaxUint32 {
			it.startFullKey(it.outerKey + 1)
		} else {
			it.lowCur++
		}
		return v
	}
	base := uint64(it.rb.keys[it.outerIdx]) << 32
	v := it.inner.Next()
	if !it.inner.HasNext() {
		it.outerIdx++
		it.skipToNonEmpty()
	}
	return base | uint64(v)
}

// ReverseIterator yields every value in a Bitmap in descending order.
type ReverseIterator struct {
	rb       *Bitmap
	outerIdx int
	inner    *roaring32.ReverseIterator

	outerKey uint64
	lowCur   uint64
	bgInner  *roaring32.ReverseIterator
	done     bool
}

// ReverseIterator returns a restartable backward iterator over rb.
func (rb *Bitmap) ReverseIterator() *ReverseIterator {
	if rb.full {
		it := &ReverseIterator{rb: rb}
		it.startFullKey(math.MaxUint32)
		return it
	}
	it := &ReverseIterator{rb: rb, outerIdx: len(rb.containers) - 1}
	it.skipToNonEmpty()
	return it
}

// startFullKey positions the full-background walk at outer key k or the
// nearest lower key with any values, skipping overrides that are empty.
func (it *ReverseIterator) startFullKey(k int64) {
	for ; k >= 0; k-- {
		i, exists := it.rb.find(uint32(k))
		if !exists {
			it.outerKey, it.lowCur, it.bgInner = uint64(k), math.MaxUint32, nil
			return
		}
		inner := it.rb.containers[i].ReverseIterator()
		if inner.HasNext() {
			it.outerKey, it.bgInner = uint64(k), inner
			return
		}
	}
	it.done = true
}

func (it *ReverseIterator) skipToNonEmpty() {
	for it.outerIdx >= 0 {
		cand := it.rb.containers[it.outerIdx].ReverseIterator()
		if cand.HasNext() {
			it.inner = cand
			return
		}
		it.outerIdx--
	}
	it.inner = nil
}

// HasNext reports whether another value is available.
func (it *ReverseIterator) HasNext() bool {
	if it.rb.full {
		return !it.done
	}
	return it.inner != nil
}

// Next returns the next value in descending order. It must not be
// called when HasNext is false.
func (it *ReverseIterator) Next() uint64 {
	if it.rb.full {
		base := it.outerKey << 32
		if it.bgInner != nil {
			v := base | uint64(it.bgInner.Next())
			if !it.bgInner.HasNext() {
				it.startFullKey(int64(it.outerKey) - 1)
			}
			return v
		}
		v := base | it.lowCur
		if it.lowCur == 0 {
			it.startFullKey(int64(it.outerKey) - 1)
		} else {
			it.lowCur--
		}
		return v
	}
	base := uint64(it.rb.keys[it.outerIdx]) << 32
	v := it.inner.Next()
	if !it.inner.HasNext() {
		it.outerIdx--
		it.skipToNonEmpty()
	}
	return base | uint64(v)
}
