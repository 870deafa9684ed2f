package roaring32

// This file implements the closed-range add/remove/flip primitives: a
// range spanning a single 16-bit key runs a single container-level op;
// a range spanning multiple keys splits into a head
// partial container, a run of full middle containers, and a tail partial
// container.

// AddRangeClosed inserts every value in the closed range [lo, hi].
func (rb *Bitmap) AddRangeClosed(lo, hi uint32) {
	if lo > hi {
		return
	}
	rb.mutateRange(lo, hi,
		func(c *container, a, b uint16) { c.addRange(a, b) },
		true,
		func(existing *container, exists bool) *container { return newFullContainer() },
	)
}

// AddRange inserts every value in the half-open range [lo, hi).
func (rb *Bitmap) AddRange(lo, hi uint32) {
	if hi <= lo {
		return
	}
	rb.AddRangeClosed(lo, hi-1)
}

// RemoveRangeClosed deletes every value in the closed range [lo, hi].
func (rb *Bitmap) RemoveRangeClosed(lo, hi uint32) {
	if lo > hi {
		return
	}
	rb.mutateRange(lo, hi,
		func(c *container, a, b uint16) { c.removeRange(a, b) },
		false,
		func(existing *container, exists bool) *container { return nil },
	)
	rb.dropEmpties()
}

// RemoveRange deletes every value in the half-open range [lo, hi).
func (rb *Bitmap) RemoveRange(lo, hi uint32) {
	if hi <= lo {
		return
	}
	rb.RemoveRangeClosed(lo, hi-1)
}

// FlipRangeClosed complements membership of every value in the closed
// range [lo, hi].
func (rb *Bitmap) FlipRangeClosed(lo, hi uint32) {
	if lo > hi {
		return
	}
	rb.mutateRange(lo, hi,
		func(c *container, a, b uint16) { c.flipRange(a, b) },
		true,
		func(existing *container, exists bool) *container {
			if !exists {
				return newFullContainer()
			}
			existing.fork()
			existing.flipRange(0, 0xFFFF)
			if existing.isEmpty() {
				return nil
			}
			return existing
		},
	)
	rb.dropEmpties()
}

// FlipRange complements membership of every value in the half-open range
// [lo, hi).
func (rb *Bitmap) FlipRange(lo, hi uint32) {
	if hi <= lo {
		return
	}
	rb.FlipRangeClosed(lo, hi-1)
}

// newFullContainer returns a container holding every value [0, 65535].
func newFullContainer() *container {
	c := newRunContainer()
	c.runs = []runInterval{{start: 0, end: 65535}}
	c.card = 65536
	return c
}

// mutateRange applies partialOp to the head and tail containers of a
// range (creating an empty array container first when createIfAbsent is
// true and none exists), and middleOp to every whole container spanned
// by the range's middle. middleOp receives the existing container (nil
// if absent) and whether it existed, and returns the container that
// should occupy that key afterward, or nil to leave/make it absent.
func (rb *Bitmap) mutateRange(lo, hi uint32, partialOp func(*container, uint16, uint16), createIfAbsent bool, middleOp func(existing *container, exists bool) *container) {
	loHi, loLo := uint16(lo>>16), uint16(lo)
	hiHi, hiLo := uint16(hi>>16), uint16(hi)

	if loHi == hiHi {
		i, exists := rb.find(loHi)
		if !exists {
			if !createIfAbsent {
				return
			}
			rb.insertAt(i, loHi, newArrayContainer())
		}
		rb.containers[i].fork()
		partialOp(rb.containers[i], loLo, hiLo)
		if rb.containers[i].isEmpty() {
			rb.removeAt(i)
		}
		return
	}

	// Head: partial range within loHi, from loLo to 0xFFFF.
	if i, exists := rb.find(loHi); exists {
		rb.containers[i].fork()
		partialOp(rb.containers[i], loLo, 0xFFFF)
		if rb.containers[i].isEmpty() {
			rb.removeAt(i)
		}
	} else if createIfAbsent {
		rb.insertAt(i, loHi, newArrayContainer())
		partialOp(rb.containers[i], loLo, 0xFFFF)
	}

	// Middle: whole containers for every key strictly between loHi and hiHi.
	for key := loHi + 1; key < hiHi; key++ {
		j, exists := rb.find(key)
		var existing *container
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

	// Tail: partial range within hiHi, from 0 to hiLo.
	if j, exists := rb.find(hiHi); exists {
		rb.containers[j].fork()
		partialOp(rb.containers[j], 0, hiLo)
		if rb.containers[j].isEmpty() {
			rb.removeAt(j)
		}
	} else if createIfAbsent {
		rb.insertAt(j, hiHi, newArrayContainer())
		partialOp(rb.containers[j], 0, hiLo)
	}
}
