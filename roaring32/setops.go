package roaring32

// This file implements binary set algebra over two 32-bit Roaring
// bitmaps by linearly merging their key streams: a key
// present on both sides runs the container-level op; a key present on
// one side only is copied (union/symdiff), skipped (intersection), or
// kept (difference); empty results are dropped.

// Or performs an in-place union with other.
func (rb *Bitmap) Or(other *Bitmap) {
	if rb == other {
		return
	}
	rb.merge(other, unionContainers, true, true)
}

// And performs an in-place intersection with other.
func (rb *Bitmap) And(other *Bitmap) {
	if rb == other {
		return
	}
	rb.merge(other, intersectContainers, false, false)
}

// AndNot performs an in-place difference, removing other's members from
// rb.
func (rb *Bitmap) AndNot(other *Bitmap) {
	if rb == other {
		rb.Clear()
		return
	}
	rb.merge(other, differenceContainers, true, false)
}

// Xor performs an in-place symmetric difference with other.
func (rb *Bitmap) Xor(other *Bitmap) {
	if rb == other {
		rb.Clear()
		return
	}
	rb.merge(other, symDiffContainers, true, true)
}

// merge walks rb's and other's keys in ascending order, combining
// matching keys with op, and keeping or dropping unmatched keys
// according to keepLeftOnly / keepRightOnly.
func (rb *Bitmap) merge(other *Bitmap, op func(a, b *container) *container, keepLeftOnly, keepRightOnly bool) {
	var keys []uint16
	var containers []*container

	i, j := 0, 0
	for i < len(rb.keys) && j < len(other.keys) {
		switch {
		case rb.keys[i] < other.keys[j]:
			if keepLeftOnly {
				keys = append(keys, rb.keys[i])
				containers = append(containers, rb.containers[i])
			}
			i++
		case rb.keys[i] > other.keys[j]:
			if keepRightOnly {
				keys = append(keys, other.keys[j])
				containers = append(containers, cloneForMerge(other.containers[j]))
			}
			j++
		default:
			result := op(rb.containers[i], other.containers[j])
			if !result.isEmpty() {
				keys = append(keys, rb.keys[i])
				containers = append(containers, result)
			}
			i++
			j++
		}
	}
	if keepLeftOnly {
		keys = append(keys, rb.keys[i:]...)
		containers = append(containers, rb.containers[i:]...)
	}
	if keepRightOnly {
		for ; j < len(other.keys); j++ {
			keys = append(keys, other.keys[j])
			containers = append(containers, cloneForMerge(other.containers[j]))
		}
	}

	rb.keys = keys
	rb.containers = containers
}

// cloneForMerge returns a container suitable for splicing into rb's own
// container slice without aliasing other's storage.
func cloneForMerge(c *container) *container {
	return c.clone()
}

// Or returns a new Bitmap holding the union of a and b, without
// modifying either.
func Or(a, b *Bitmap) *Bitmap {
	return a.Clone().orCopy(b)
}

// And returns a new Bitmap holding the intersection of a and b, without
// modifying either.
func And(a, b *Bitmap) *Bitmap {
	return a.Clone().andCopy(b)
}

// AndNot returns a new Bitmap holding the values of a that are not in b,
// without modifying either.
func AndNot(a, b *Bitmap) *Bitmap {
	return a.Clone().andNotCopy(b)
}

// Xor returns a new Bitmap holding the symmetric difference of a and b,
// without modifying either.
func Xor(a, b *Bitmap) *Bitmap {
	return a.Clone().xorCopy(b)
}

func (rb *Bitmap) orCopy(other *Bitmap) *Bitmap     { rb.Or(other); return rb }
func (rb *Bitmap) andCopy(other *Bitmap) *Bitmap    { rb.And(other); return rb }
func (rb *Bitmap) andNotCopy(other *Bitmap) *Bitmap { rb.AndNot(other); return rb }
func (rb *Bitmap) xorCopy(other *Bitmap) *Bitmap    { rb.Xor(other); return rb }

// OrCardinality returns the cardinality of the union of a and b without
// materializing it.
func OrCardinality(a, b *Bitmap) uint64 {
	return cardinalityMerge(a, b, func(x, y *container) int { return orCardinality(x, y) }, true, true)
}

// AndCardinality returns the cardinality of the intersection of a and b
// without materializing it.
func AndCardinality(a, b *Bitmap) uint64 {
	return cardinalityMerge(a, b, func(x, y *container) int { return andCardinality(x, y) }, false, false)
}

// XorCardinality returns the cardinality of the symmetric difference of
// a and b without materializing it.
func XorCardinality(a, b *Bitmap) uint64 {
	return cardinalityMerge(a, b, func(x, y *container) int { return xorCardinality(x, y) }, true, true)
}

func cardinalityMerge(a, b *Bitmap, pairCard func(x, y *container) int, keepLeftOnly, keepRightOnly bool) uint64 {
	var total uint64
	i, j := 0, 0
	for i < len(a.keys) && j < len(b.keys) {
		switch {
		case a.keys[i] < b.keys[j]:
			if keepLeftOnly {
				total += uint64(a.containers[i].cardinality())
			}
			i++
		case a.keys[i] > b.keys[j]:
			if keepRightOnly {
				total += uint64(b.containers[j].cardinality())
			}
			j++
		default:
			total += uint64(pairCard(a.containers[i], b.containers[j]))
			i++
			j++
		}
	}
	if keepLeftOnly {
		for ; i < len(a.keys); i++ {
			total += uint64(a.containers[i].cardinality())
		}
	}
	if keepRightOnly {
		for ; j < len(b.keys); j++ {
			total += uint64(b.containers[j].cardinality())
		}
	}
	return total
}

// andCardinality, orCardinality, xorCardinality compute a pairwise
// result's cardinality. Bitmap x bitmap uses the word-parallel popcount
// fast path in internal/wordset; any other kind combination materializes
// the pairwise result and counts it, since array/run combinations have
// no cheaper closed form.
func andCardinality(a, b *container) int {
	if a.kind == kindBitmap && b.kind == kindBitmap {
		return a.bmp.AndCount(b.bmp)
	}
	return intersectContainers(a, b).cardinality()
}

func orCardinality(a, b *container) int {
	if a.kind == kindBitmap && b.kind == kindBitmap {
		return a.bmp.OrCount(b.bmp)
	}
	return unionContainers(a, b).cardinality()
}

func xorCardinality(a, b *container) int {
	if a.kind == kindBitmap && b.kind == kindBitmap {
		return a.bmp.XorCount(b.bmp)
	}
	return symDiffContainers(a, b).cardinality()
}
