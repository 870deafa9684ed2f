package roaring32

// containerIter walks a single container's values in ascending order.
// Advancing past the end of one container onto the next is handled one
// layer up, by Iterator.
type containerIter struct {
	c       *container
	arrIdx  int
	runIdx  int
	runOff  int
	bmpNext uint32
}

func newContainerIter(c *container) *containerIter {
	return &containerIter{c: c}
}

// next returns the next value in the container, or (0, false) once
// exhausted.
func (it *containerIter) next() (uint16, bool) {
	switch it.c.kind {
	case kindArray:
		if it.arrIdx >= len(it.c.array) {
			return 0, false
		}
		v := it.c.array[it.arrIdx]
		it.arrIdx++
		return v, true
	case kindBitmap:
		v, ok := it.c.bmp.NextSet(it.bmpNext)
		if !ok {
			return 0, false
		}
		it.bmpNext = uint32(v) + 1
		return v, true
	case kindRun:
		for it.runIdx < len(it.c.runs) {
			r := it.c.runs[it.runIdx]
			v := int(r.start) + it.runOff
			if v > int(r.end) {
				it.runIdx++
				it.runOff = 0
				continue
			}
			it.runOff++
			return uint16(v), true
		}
		return 0, false
	}
	return 0, false
}

// containerReverseIter walks a single container's values in descending
// order, the decrement cousin of containerIter: a direct bidirectional
// cursor, rather than a reverse adaptor over the forward one, avoids
// re-walking the structure on every step back.
type containerReverseIter struct {
	c       *container
	arrIdx  int
	runIdx  int
	runOff  int
	bmpNext int64
	started bool
}

func newContainerReverseIter(c *container) *containerReverseIter {
	it := &containerReverseIter{c: c}
	switch c.kind {
	case kindArray:
		it.arrIdx = len(c.array) - 1
	case kindRun:
		it.runIdx = len(c.runs) - 1
		if it.runIdx >= 0 {
			it.runOff = c.runs[it.runIdx].length() - 1
		}
	case kindBitmap:
		it.bmpNext = 65535
	}
	return it
}

func (it *containerReverseIter) next() (uint16, bool) {
	switch it.c.kind {
	case kindArray:
		if it.arrIdx < 0 {
			return 0, false
		}
		v := it.c.array[it.arrIdx]
		it.arrIdx--
		return v, true
	case kindBitmap:
		if it.bmpNext < 0 {
			return 0, false
		}
		v, ok := it.c.bmp.PrevSet(uint32(it.bmpNext))
		if !ok {
			it.bmpNext = -1
			return 0, false
		}
		it.bmpNext = int64(v) - 1
		return v, true
	case kindRun:
		for it.runIdx >= 0 {
			r := it.c.runs[it.runIdx]
			if it.runOff < 0 {
				it.runIdx--
				if it.runIdx >= 0 {
					it.runOff = it.c.runs[it.runIdx].length() - 1
				}
				continue
			}
			v := int(r.start) + it.runOff
			it.runOff--
			return uint16(v), true
		}
		return 0, false
	}
	return 0, false
}

// Iterator yields every value in a Bitmap in ascending order. It is
// invalidated by any mutating call on the underlying Bitmap; the
// library does not detect use-after-invalidation.
type Iterator struct {
	rb       *Bitmap
	outerIdx int
	inner    *containerIter
}

// Iterator returns a restartable forward iterator over rb.
func (rb *Bitmap) Iterator() *Iterator {
	it := &Iterator{rb: rb}
	if len(rb.containers) > 0 {
		it.inner = newContainerIter(rb.containers[0])
	}
	return it
}

// HasNext reports whether another value is available.
func (it *Iterator) HasNext() bool {
	if it.inner == nil {
		return false
	}
	probe := *it.inner
	if _, ok := probe.next(); ok {
		return true
	}
	for i := it.outerIdx + 1; i < len(it.rb.containers); i++ {
		if !it.rb.containers[i].isEmpty() {
			return true
		}
	}
	return false
}

// Next returns the next value in ascending order. It must not be called
// when HasNext is false.
func (it *Iterator) Next() uint32 {
	v, ok := it.inner.next()
	for !ok {
		it.outerIdx++
		if it.outerIdx >= len(it.rb.containers) {
			it.inner = nil
			return 0
		}
		it.inner = newContainerIter(it.rb.containers[it.outerIdx])
		v, ok = it.inner.next()
	}
	return uint32(it.rb.keys[it.outerIdx])<<16 | uint32(v)
}

// ReverseIterator yields every value in a Bitmap in descending order.
type ReverseIterator struct {
	rb       *Bitmap
	outerIdx int
	inner    *containerReverseIter
}

// ReverseIterator returns a restartable backward iterator over rb.
func (rb *Bitmap) ReverseIterator() *ReverseIterator {
	it := &ReverseIterator{rb: rb, outerIdx: len(rb.containers) - 1}
	if it.outerIdx >= 0 {
		it.inner = newContainerReverseIter(rb.containers[it.outerIdx])
	}
	return it
}

// HasNext reports whether another value is available.
func (it *ReverseIterator) HasNext() bool {
	if it.inner == nil {
		return false
	}
	probe := *it.inner
	if _, ok := probe.next(); ok {
		return true
	}
	for i := it.outerIdx - 1; i >= 0; i-- {
		if !it.rb.containers[i].isEmpty() {
			return true
		}
	}
	return false
}

// Next returns the next value in descending order. It must not be
// called when HasNext is false.
func (it *ReverseIterator) Next() uint32 {
	v, ok := it.inner.next()
	for !ok {
		it.outerIdx--
		if it.outerIdx < 0 {
			it.inner = nil
			return 0
		}
		it.inner = newContainerReverseIter(it.rb.containers[it.outerIdx])
		v, ok = it.inner.next()
	}
	return uint32(it.rb.keys[it.outerIdx])<<16 | uint32(v)
}
