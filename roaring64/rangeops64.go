package roaring64

import "github.com/scampagna/roaring/roaring32"

// This file implements the closed-range add/remove/flip primitives one
// level above roaring32's: a range spanning a single outer key delegates
// straight to the inner Roaring; a range spanning multiple outer keys
// splits into a head partial, a run of full middle entries, and a tail
// partial, mirroring the 32-bit split one layer up.
//
// The whole-domain range [0, math.MaxUint64] is special-cased in each of
// AddRangeClosed/RemoveRangeClosed/FlipRangeClosed: routing it through
// mutateRange's middle loop below would insert on the order of 2^32
// outer entries one at a time. Fullness for that one range is instead
// recorded out-of-band via the full sentinel (bitmap64.go), in O(1).

const (
	wholeDomainLo = uint64(0)
	wholeDomainHi = ^uint64(0)
)

// AddRangeClosed inserts every value in the closed range [lo, hi].
func (rb *Bitmap) AddRangeClosed(lo, hi uint64) {
	if lo > hi {
		return
	}
	if lo == wholeDomainLo && hi == wholeDomainHi {
		rb.full = true
		rb.keys = nil
		rb.containers = nil
		return
	}
	if rb.full {
		// Work in the complement domain: adding a range to a bitmap
		// whose background is full is removing that range from its
		// sparse complement.
		rb.complementFrom(rb)
		rb.RemoveRangeClosed(lo, hi)
		rb.complementFrom(rb)
		return
	}
	rb.mutateRange(lo, hi,
		func(c *roaring32.Bitmap, a, b uint32) { c.AddRangeClosed(a, b) },
		true,
		func(existing *roaring32.Bitmap, exists bool) *roaring32.Bitmap { return newFullInner(rb.copyOnWrite) },
	)
}

// AddRange inserts every value in the half-open range [lo, hi).
func (rb *Bitmap) AddRange(lo, hi uint64) {
	if hi <= lo {
		return
	}
	rb.AddRangeClosed(lo, hi-1)
}

// RemoveRangeClosed deletes every value in the closed range [lo, hi].
func (rb *Bitmap) RemoveRangeClosed(lo, hi uint64) {
	if lo > hi {
		return
	}
	if lo == wholeDomainLo && hi == wholeDomainHi {
		rb.full = false
		rb.keys = nil
		rb.containers = nil
		return
	}
	if rb.full {
		rb.complementFrom(rb)
		rb.AddRangeClosed(lo, hi)
		rb.complementFrom(rb)
		return
	}
	rb.mutateRange(lo, hi,
		func(c *roaring32.Bitmap, a, b uint32) { c.RemoveRangeClosed(a, b) },
		false,
		func(existing *roaring32.Bitmap, exists bool) *roaring32.Bitmap { return nil },
	)
	rb.compact()
}

// RemoveRange deletes every value in the half-open range [lo, hi).
func (rb *Bitmap) RemoveRange(lo, hi uint64) {
	if hi <= lo {
		return
	}
	rb.RemoveRangeClosed(lo, hi-1)
}

// FlipRangeClosed complements membership of every value in the closed
// range [lo, hi].
func (rb *Bitmap) FlipRangeClosed(lo, hi uint64) {
	if lo > hi {
		return
	}
	if lo == wholeDomainLo && hi == wholeDomainHi {
		rb.complementFrom(rb)
		return
	}
	if rb.full {
		rb.complementFrom(rb)
		rb.FlipRangeClosed(lo, hi)
		rb.complementFrom(rb)
		return
	}
	rb.mutateRange(lo, hi,
		func(c *roaring32.Bitmap, a, b uint32) { c.FlipRangeClosed(a, b) },
		true,
		func(existing *roaring32.Bitmap, exists bool) *roaring32.Bitmap {
			if !exists {
				return newFullInner(rb.copyOnWrite)
			}
			existing.FlipRangeClosed(0, 0xFFFFFFFF)
			if existing.IsEmpty() {
				return nil
			}
			return existing
		},
	)
	rb.compact()
}

// FlipRange complements membership of every value in the half-open range
// [lo, hi).
func (rb *Bitmap) FlipRange(lo, hi uint64) {
	if hi <= lo {
		return
	}
	rb.FlipRangeClosed(lo, hi-1)
}

// newFullInner returns a 32-bit Roaring holding every value [0, 2^32).
func newFullInner(copyOnWrite bool) *roaring32.Bitmap {
	inner := newInnerBitmap(copyOnWrite)
	inner.AddRangeClosed(0, 0xFFFFFFFF)
	return inner
}

// mutateRange applies partialOp to the head and tail outer entries of a
// range (creating an empty inner Roaring first when createIfAbsent is
// true and none exists), and middleOp to every whole outer entry spanned
// by the range's middle.
func (rb *Bitmap) mutateRange(lo, hi uint64, partialOp func(*roaring32.Bitmap, uint32, uint32), createIfAbsent bool, middleOp func(existing *roaring32.Bitmap, exists bool) *roaring32.Bitmap) {
	loHi, loLo := uint32(lo>>32), uint32(lo)
	hiHi, hiLo := uint32(hi>>32), uint32(hi)

	if loHi == hiHi {
		i, exists := rb.find(loHi)
		if !exists {
			if !createIfAbsent {
				return
			}
			rb.insertAt(i, loHi, newInnerBitmap(rb.copyOnWrite))
		}
		partialOp(rb.containers[i], loLo, hiLo)
		if rb.containers[i].IsEmpty() {
			rb.removeAt(i)
		}
		return
	}

	if i, exists := rb.find(loHi); exists {
		partialOp(rb.containers[i], loLo, 0xFFFFFFFF)
		if rb.containers[i].IsEmpty() {
			rb.removeAt(i)
		}
	} else if createIfAbsent {
		rb.insertAt(i, loHi, newInnerBitmap(rb.copyOnWrite))
		partialOp(rb.containers[i], loLo, 0xFFFFFFFF)
	}

	if !createIfAbsent {
		// Every value owned by one of these outer keys is dropped
		// outright (middleOp always returns nil for a remove), so the
		// whole span collapses to slicing out whichever existing keys
		// fall in (loHi, hiHi) — no need to probe every possible key
		// value in between, which would cost O(hiHi-loHi) even when
		// rb holds nothing there.
		start, _ := rb.find(loHi + 1)
		end, _ := rb.find(hiHi)
		if end > start {
			rb.keys = append(rb.keys[:start], rb.keys[end:]...)
			rb.containers = append(rb.containers[:start], rb.containers[end:]...)
		}
	} else {
		for key := loHi + 1; key < hiHi; key++ {
			j, exists := rb.find(key)
			var existing *roaring32.Bitmap
			if exists {
				existing = rb.containers[j]
			}
			result := middleOp(existing, exists)
			switch {
			case exists && result != nil:
				rb.containers[j] = result
			case exists:
				rb.removeAt(j)
			case result != nil:
				rb.insertAt(j, key, result)
			}
		}
	}

	if j, exists := rb.find(hiHi); exists {
		partialOp(rb.containers[j], 0, hiLo)
		if rb.containers[j].IsEmpty() {
			rb.removeAt(j)
		}
	} else if createIfAbsent {
		rb.insertAt(j, hiHi, newInnerBitmap(rb.copyOnWrite))
		partialOp(rb.containers[j], 0, hiLo)
	}
}
