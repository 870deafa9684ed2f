package roaring64

import "github.com/scampagna/roaring/roaring32"

// This file lifts roaring32's binary set algebra one level up: it walks
// both outer key streams in ascending order, invoking the matching
// 32-bit Roaring op at each shared key, and dropping any outer entry
// whose result becomes empty.

// Or performs an in-place union with other.
func (rb *Bitmap) Or(other *Bitmap) {
	if rb == other || rb.IsFull() {
		return
	}
	if other.IsFull() {
		rb.full = true
		rb.keys = nil
		rb.containers = nil
		return
	}
	if rb.full || other.full {
		rb.mergeBackground(other,
			func(a, b *roaring32.Bitmap) *roaring32.Bitmap { return roaring32.Or(a, b) },
			func(a, b bool) bool { return a || b })
		return
	}
	rb.merge(other, func(a, b *roaring32.Bitmap) *roaring32.Bitmap { return roaring32.Or(a, b) }, true, true)
}

// And performs an in-place intersection with other.
func (rb *Bitmap) And(other *Bitmap) {
	if rb == other || other.IsFull() {
		return
	}
	if rb.IsFull() {
		clone := other.Clone()
		rb.full = clone.full
		rb.keys = clone.keys
		rb.containers = clone.containers
		return
	}
	if rb.full || other.full {
		rb.mergeBackground(other,
			func(a, b *roaring32.Bitmap) *roaring32.Bitmap { return roaring32.And(a, b) },
			func(a, b bool) bool { return a && b })
		return
	}
	rb.merge(other, func(a, b *roaring32.Bitmap) *roaring32.Bitmap { return roaring32.And(a, b) }, false, false)
}

// AndNot performs an in-place difference, removing other's members from
// rb.
func (rb *Bitmap) AndNot(other *Bitmap) {
	if rb == other || other.IsFull() {
		rb.Clear()
		return
	}
	if rb.full || other.full {
		rb.mergeBackground(other,
			func(a, b *roaring32.Bitmap) *roaring32.Bitmap { return roaring32.AndNot(a, b) },
			func(a, b bool) bool { return a && !b })
		return
	}
	rb.merge(other, func(a, b *roaring32.Bitmap) *roaring32.Bitmap { return roaring32.AndNot(a, b) }, true, false)
}

// Xor performs an in-place symmetric difference with other.
func (rb *Bitmap) Xor(other *Bitmap) {
	if rb == other {
		rb.Clear()
		return
	}
	if rb.full || other.full {
		rb.mergeBackground(other,
			func(a, b *roaring32.Bitmap) *roaring32.Bitmap { return roaring32.Xor(a, b) },
			func(a, b bool) bool { return a != b })
		return
	}
	rb.merge(other, func(a, b *roaring32.Bitmap) *roaring32.Bitmap { return roaring32.Xor(a, b) }, true, true)
}

// mergeBackground generalizes merge to operands whose background may be
// full. The result's background is bgOp of the two operands'
// backgrounds; every outer key overridden on either side is recombined
// with op against the other side's effective content at that key (its
// own override, or a fresh copy of its background); overrides whose
// result matches the new background are dropped. Cost is proportional
// to the override counts, never to the domain.
func (rb *Bitmap) mergeBackground(other *Bitmap, op func(a, b *roaring32.Bitmap) *roaring32.Bitmap, bgOp func(a, b bool) bool) {
	newFull := bgOp(rb.full, other.full)
	var keys []uint32
	var containers []*roaring32.Bitmap

	i, j := 0, 0
	for i < len(rb.keys) || j < len(other.keys) {
		var key uint32
		var a, b *roaring32.Bitmap
		switch {
		case j >= len(other.keys) || (i < len(rb.keys) && rb.keys[i] < other.keys[j]):
			key, a = rb.keys[i], rb.containers[i]
			b = backgroundContainer(other.full, rb.copyOnWrite)
			i++
		case i >= len(rb.keys) || rb.keys[i] > other.keys[j]:
			key, b = other.keys[j], other.containers[j]
			a = backgroundContainer(rb.full, rb.copyOnWrite)
			j++
		default:
			key, a, b = rb.keys[i], rb.containers[i], other.containers[j]
			i++
			j++
		}
		result := op(a, b)
		if newFull {
			if result.IsFull() {
				continue
			}
		} else if result.IsEmpty() {
			continue
		}
		keys = append(keys, key)
		containers = append(containers, result)
	}

	rb.full = newFull
	rb.keys = keys
	rb.containers = containers
}

func (rb *Bitmap) merge(other *Bitmap, op func(a, b *roaring32.Bitmap) *roaring32.Bitmap, keepLeftOnly, keepRightOnly bool) {
	var keys []uint32
	var containers []*roaring32.Bitmap

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
				containers = append(containers, other.containers[j].Clone())
			}
			j++
		default:
			result := op(rb.containers[i], other.containers[j])
			if !result.IsEmpty() {
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
			containers = append(containers, other.containers[j].Clone())
		}
	}

	rb.keys = keys
	rb.containers = containers
}

// Or returns a new Bitmap holding the union of a and b, without
// modifying either.
func Or(a, b *Bitmap) *Bitmap {
	c := a.Clone()
	c.Or(b)
	return c
}

// And returns a new Bitmap holding the intersection of a and b, without
// modifying either.
func And(a, b *Bitmap) *Bitmap {
	c := a.Clone()
	c.And(b)
	return c
}

// AndNot returns a new Bitmap holding the values of a that are not in b,
// without modifying either.
func AndNot(a, b *Bitmap) *Bitmap {
	c := a.Clone()
	c.AndNot(b)
	return c
}

// Xor returns a new Bitmap holding the symmetric difference of a and b,
// without modifying either.
func Xor(a, b *Bitmap) *Bitmap {
	c := a.Clone()
	c.Xor(b)
	return c
}

// OrCardinality returns the cardinality of the union of a and b without
// materializing it.
func OrCardinality(a, b *Bitmap) uint64 {
	if a.full || b.full {
		n, _ := Or(a, b).CardinalityNoThrow()
		return n
	}
	return cardinalityMerge(a, b, roaring32.OrCardinality, true, true)
}

// AndCardinality returns the cardinality of the intersection of a and b
// without materializing it.
func AndCardinality(a, b *Bitmap) uint64 {
	if a.full || b.full {
		n, _ := And(a, b).CardinalityNoThrow()
		return n
	}
	return cardinalityMerge(a, b, roaring32.AndCardinality, false, false)
}

// XorCardinality returns the cardinality of the symmetric difference of
// a and b without materializing it.
func XorCardinality(a, b *Bitmap) uint64 {
	if a.full || b.full {
		n, _ := Xor(a, b).CardinalityNoThrow()
		return n
	}
	return cardinalityMerge(a, b, roaring32.XorCardinality, true, true)
}

// cardinalityMerge walks both outer key streams in parallel, summing the
// per-key inner cardinality (via pairCard for shared keys, or the lone
// side's own cardinality when keepLeftOnly/keepRightOnly applies) without
// ever building an output Bitmap.
func cardinalityMerge(a, b *Bitmap, pairCard func(x, y *roaring32.Bitmap) uint64, keepLeftOnly, keepRightOnly bool) uint64 {
	var total uint64
	i, j := 0, 0
	for i < len(a.keys) && j < len(b.keys) {
		switch {
		case a.keys[i] < b.keys[j]:
			if keepLeftOnly {
				total += a.containers[i].Cardinality()
			}
			i++
		case a.keys[i] > b.keys[j]:
			if keepRightOnly {
				total += b.containers[j].Cardinality()
			}
			j++
		default:
			total += pairCard(a.containers[i], b.containers[j])
			i++
			j++
		}
	}
	if keepLeftOnly {
		for ; i < len(a.keys); i++ {
			total += a.containers[i].Cardinality()
		}
	}
	if keepRightOnly {
		for ; j < len(b.keys); j++ {
			total += b.containers[j].Cardinality()
		}
	}
	return total
}
