/*
Package roaring64 implements a 64-bit Roaring bitmap: an ordered map from
the high 32 bits of a uint64 value to a 32-bit Roaring holding the
corresponding low 32 bits. Every operation lifts its roaring32
counterpart across the outer map, one outer key at a time.
*/
package roaring64

import (
	"errors"
	"math"
	"sort"

	"github.com/scampagna/roaring/roaring32"
)

// Bitmap is a compressed, ordered set of uint64 values.
//
// full is the background value assumed for every outer key that has no
// entry in keys/containers: false means those keys are empty (the
// ordinary sparse case), true means they are entirely present. keys and
// containers hold explicit overrides — outer keys whose content departs
// from the background — and compact() maintains the invariant that an
// override is never redundant with the background (dropped when it
// matches it exactly). This lets AddRangeClosed(0, math.MaxUint64) and
// its kin flip the background for the whole domain in O(1) without ever
// materializing 2^32 outer entries, while still supporting sparse
// exceptions against a full background (e.g. after flipping a partial
// bitmap's whole domain) in time proportional to the exceptions alone.
type Bitmap struct {
	keys        []uint32
	containers  []*roaring32.Bitmap
	copyOnWrite bool
	full        bool
}

// New returns an empty Bitmap.
func New() *Bitmap {
	return &Bitmap{}
}

// NewBitmap is an alias for New.
func NewBitmap() *Bitmap {
	return New()
}

// SetCopyOnWrite toggles the copy-on-write policy, propagating it to
// every existing inner 32-bit Roaring and to those created later.
func (rb *Bitmap) SetCopyOnWrite(enabled bool) {
	rb.copyOnWrite = enabled
	for _, c := range rb.containers {
		c.SetCopyOnWrite(enabled)
	}
}

// GetCopyOnWrite reports the current copy-on-write policy.
func (rb *Bitmap) GetCopyOnWrite() bool {
	return rb.copyOnWrite
}

func (rb *Bitmap) find(key uint32) (int, bool) {
	i := sort.Search(len(rb.keys), func(i int) bool { return rb.keys[i] >= key })
	return i, i < len(rb.keys) && rb.keys[i] == key
}

func (rb *Bitmap) insertAt(i int, key uint32, c *roaring32.Bitmap) {
	rb.keys = append(rb.keys, 0)
	copy(rb.keys[i+1:], rb.keys[i:len(rb.keys)-1])
	rb.keys[i] = key

	rb.containers = append(rb.containers, nil)
	copy(rb.containers[i+1:], rb.containers[i:len(rb.containers)-1])
	rb.containers[i] = c
}

func (rb *Bitmap) removeAt(i int) {
	copy(rb.keys[i:], rb.keys[i+1:])
	rb.keys = rb.keys[:len(rb.keys)-1]
	copy(rb.containers[i:], rb.containers[i+1:])
	rb.containers = rb.containers[:len(rb.containers)-1]
}

// compact removes any outer entry whose inner Roaring has come to match
// the background exactly (empty against a false background, entirely
// full against a true one) — such an entry is a redundant override.
// A redundant entry may exist transiently between a paired add/remove;
// every mutating call restores the invariant before returning.
func (rb *Bitmap) compact() {
	out := rb.keys[:0]
	outC := rb.containers[:0]
	for i, c := range rb.containers {
		if !rb.isBackgroundMatch(c) {
			out = append(out, rb.keys[i])
			outC = append(outC, c)
		}
	}
	rb.keys = out
	rb.containers = outC
}

// isBackgroundMatch reports whether c's content is exactly what rb's
// background already implies for any key lacking an override, making an
// override holding c redundant.
func (rb *Bitmap) isBackgroundMatch(c *roaring32.Bitmap) bool {
	if rb.full {
		return c.IsFull()
	}
	return c.IsEmpty()
}

// backgroundInner returns a fresh inner Roaring holding rb's current
// background content (entirely full or entirely empty), for seeding an
// outer key that has no override.
func (rb *Bitmap) backgroundInner() *roaring32.Bitmap {
	if rb.full {
		return newFullInner(rb.copyOnWrite)
	}
	return newInnerBitmap(rb.copyOnWrite)
}

func newInnerBitmap(copyOnWrite bool) *roaring32.Bitmap {
	inner := roaring32.New()
	inner.SetCopyOnWrite(copyOnWrite)
	return inner
}

// backgroundContainer returns a fresh inner Roaring holding the content a
// background implies for an outer key with no override: entirely full
// when full is true, empty otherwise.
func backgroundContainer(full, copyOnWrite bool) *roaring32.Bitmap {
	if full {
		return newFullInner(copyOnWrite)
	}
	return newInnerBitmap(copyOnWrite)
}

// complementFrom replaces rb's contents with the complement of src
// (which may be rb itself): the background flips, and each of src's
// outer entries is overridden by its own per-key complement. Cost is
// proportional to src's override count, never to the domain, which is
// what lets whole-domain flips and set ops against a full background
// stay sparse.
func (rb *Bitmap) complementFrom(src *Bitmap) {
	keys := append([]uint32(nil), src.keys...)
	containers := make([]*roaring32.Bitmap, len(src.containers))
	for i, c := range src.containers {
		cc := c.Clone()
		cc.FlipRangeClosed(0, math.MaxUint32)
		containers[i] = cc
	}
	rb.full = !src.full
	rb.keys = keys
	rb.containers = containers
	rb.compact()
}

// Add inserts v into the set.
func (rb *Bitmap) Add(v uint64) {
	rb.AddChecked(v)
}

// AddChecked inserts v into the set and reports whether it was newly
// added.
func (rb *Bitmap) AddChecked(v uint64) bool {
	hi, lo := uint32(v>>32), uint32(v)
	i, exists := rb.find(hi)
	if !exists {
		if rb.full {
			return false
		}
		rb.insertAt(i, hi, newInnerBitmap(rb.copyOnWrite))
	}
	added := rb.containers[i].AddChecked(lo)
	if added && rb.isBackgroundMatch(rb.containers[i]) {
		rb.removeAt(i)
	}
	return added
}

// AddMany inserts every value in vs.
func (rb *Bitmap) AddMany(vs []uint64) {
	for _, v := range vs {
		rb.Add(v)
	}
}

// Remove deletes v from the set.
func (rb *Bitmap) Remove(v uint64) {
	rb.RemoveChecked(v)
}

// RemoveChecked deletes v from the set and reports whether it was
// present.
func (rb *Bitmap) RemoveChecked(v uint64) bool {
	hi, lo := uint32(v>>32), uint32(v)
	i, exists := rb.find(hi)
	if !exists {
		if !rb.full {
			return false
		}
		inner := rb.backgroundInner()
		inner.RemoveChecked(lo)
		rb.insertAt(i, hi, inner)
		return true
	}
	removed := rb.containers[i].RemoveChecked(lo)
	if removed && rb.isBackgroundMatch(rb.containers[i]) {
		rb.removeAt(i)
	}
	return removed
}

// Contains reports whether v is a member of the set.
func (rb *Bitmap) Contains(v uint64) bool {
	hi, lo := uint32(v>>32), uint32(v)
	i, exists := rb.find(hi)
	if exists {
		return rb.containers[i].Contains(lo)
	}
	return rb.full
}

// Cardinality returns the number of values in the set, or an error if
// the set is the fully saturated 64-bit domain, which cannot be
// represented in a uint64.
func (rb *Bitmap) Cardinality() (uint64, error) {
	n, full := rb.CardinalityNoThrow()
	if full {
		return 0, ErrCardinalityOverflow
	}
	return n, nil
}

// ErrCardinalityOverflow is returned by Cardinality when the set holds
// every value in the 64-bit domain.
var ErrCardinalityOverflow = errors.New("roaring64: cardinality of a fully saturated bitmap overflows uint64")

// CardinalityNoThrow returns the number of values in the set and
// whether the set is fully saturated with no exceptions. When full is
// true, n is 0 rather than a meaningless partial count — that state has
// no exact uint64 representation. A background of full with sparse
// exceptions (e.g. after flipping a partial bitmap's whole domain) is
// not "full" in this sense and gets a real count: the background
// contributes 2^32 per un-overridden outer key (computed via uint64
// wraparound — 0 minus that many 2^32s — rather than by summing 2^32
// once per key), plus the overrides' own cardinalities.
func (rb *Bitmap) CardinalityNoThrow() (n uint64, full bool) {
	if !rb.full {
		for _, c := range rb.containers {
			n += c.Cardinality()
		}
		return n, false
	}
	if len(rb.keys) == 0 {
		return 0, true
	}
	var overrideSum uint64
	for _, c := range rb.containers {
		overrideSum += c.Cardinality()
	}
	background := uint64(0) - uint64(len(rb.keys))<<32
	return background + overrideSum, false
}

// IsEmpty reports whether the set has no members.
func (rb *Bitmap) IsEmpty() bool {
	return !rb.full && len(rb.containers) == 0
}

// IsFull reports whether the set contains every value in [0, 2^64).
func (rb *Bitmap) IsFull() bool {
	return rb.full && len(rb.keys) == 0
}

// Clear empties the set.
func (rb *Bitmap) Clear() {
	rb.full = false
	rb.keys = nil
	rb.containers = nil
}

// Minimum returns the smallest value in the set, or (0, false) if empty.
func (rb *Bitmap) Minimum() (uint64, bool) {
	if !rb.full {
		for i, c := range rb.containers {
			if lo, ok := c.Minimum(); ok {
				return uint64(rb.keys[i])<<32 | uint64(lo), true
			}
		}
		return 0, false
	}
	expect := uint32(0)
	for i, k := range rb.keys {
		if k != expect {
			return uint64(expect) << 32, true
		}
		if lo, ok := rb.containers[i].Minimum(); ok {
			return uint64(k)<<32 | uint64(lo), true
		}
		expect = k + 1
	}
	return uint64(expect) << 32, true
}

// Maximum returns the largest value in the set, or (0, false) if empty.
func (rb *Bitmap) Maximum() (uint64, bool) {
	if !rb.full {
		for i := len(rb.containers) - 1; i >= 0; i-- {
			if hi, ok := rb.containers[i].Maximum(); ok {
				return uint64(rb.keys[i])<<32 | uint64(hi), true
			}
		}
		return 0, false
	}
	expect := uint32(math.MaxUint32)
	for i := len(rb.keys) - 1; i >= 0; i-- {
		k := rb.keys[i]
		if k != expect {
			return uint64(expect)<<32 | uint64(math.MaxUint32), true
		}
		if hi, ok := rb.containers[i].Maximum(); ok {
			return uint64(k)<<32 | uint64(hi), true
		}
		expect = k - 1
	}
	return uint64(expect)<<32 | uint64(math.MaxUint32), true
}

// Rank returns the number of values in the set that are <= v.
func (rb *Bitmap) Rank(v uint64) uint64 {
	hi, lo := uint32(v>>32), uint32(v)
	if !rb.full {
		var n uint64
		for i, k := range rb.keys {
			if k < hi {
				n += rb.containers[i].Cardinality()
				continue
			}
			if k == hi {
				n += rb.containers[i].Rank(lo)
			}
			break
		}
		return n
	}
	// Every key below hi contributes 2^32 unless it's overridden, in
	// which case it contributes its own cardinality instead; key hi
	// itself contributes a partial rank, real or background.
	var overriddenSum, overriddenBelow uint64
	i := 0
	for ; i < len(rb.keys) && rb.keys[i] < hi; i++ {
		overriddenSum += rb.containers[i].Cardinality()
		overriddenBelow++
	}
	n := (uint64(hi)-overriddenBelow)<<32 + overriddenSum
	if i < len(rb.keys) && rb.keys[i] == hi {
		n += rb.containers[i].Rank(lo)
	} else {
		n += uint64(lo) + 1
	}
	return n
}

// RangeCardinality returns the number of values in the closed range
// [lo, hi], without materializing the slice: two rank queries. On a
// bitmap holding every value of the whole domain, the whole-domain
// range wraps to 0, the same convention CardinalityNoThrow uses for a
// count that does not fit in a uint64.
func (rb *Bitmap) RangeCardinality(lo, hi uint64) uint64 {
	if lo > hi {
		return 0
	}
	n := rb.Rank(hi)
	if lo > 0 {
		n -= rb.Rank(lo - 1)
	}
	return n
}

// Select returns the r-th smallest value in the set (0-indexed) and
// true, or (0, false) if r is out of range.
func (rb *Bitmap) Select(r uint64) (uint64, bool) {
	if !rb.full {
		for i, c := range rb.containers {
			card := c.Cardinality()
			if r < card {
				v, _ := c.Select(r)
				return uint64(rb.keys[i])<<32 | uint64(v), true
			}
			r -= card
		}
		return 0, false
	}
	if len(rb.keys) == 0 {
		return r, true
	}
	expect, i := uint64(0), 0
	for expect < 1<<32 {
		if i < len(rb.keys) && uint64(rb.keys[i]) == expect {
			card := rb.containers[i].Cardinality()
			if r < card {
				v, _ := rb.containers[i].Select(r)
				return expect<<32 | uint64(v), true
			}
			r -= card
			expect++
			i++
			continue
		}
		runEnd := uint64(1) << 32
		if i < len(rb.keys) {
			runEnd = uint64(rb.keys[i])
		}
		runCard := (runEnd - expect) << 32
		if r < runCard {
			return (expect << 32) + r, true
		}
		r -= runCard
		expect = runEnd
	}
	return 0, false
}

// ForEach calls fn with every value in the set in ascending order. When
// the set is fully saturated (with or without sparse exceptions) this
// necessarily visits close to 2^64 values — not a representation
// artifact, just what enumerating a near-total domain means — and is not
// expected to finish in practice.
func (rb *Bitmap) ForEach(fn func(uint64)) {
	if !rb.full {
		for i, c := range rb.containers {
			base := uint64(rb.keys[i]) << 32
			c.ForEach(func(v uint32) { fn(base | uint64(v)) })
		}
		return
	}
	if len(rb.keys) == 0 {
		for v := uint64(0); ; v++ {
			fn(v)
			if v == math.MaxUint64 {
				return
			}
		}
	}
	expect, i := uint64(0), 0
	for expect < 1<<32 {
		base := expect << 32
		if i < len(rb.keys) && uint64(rb.keys[i]) == expect {
			rb.containers[i].ForEach(func(v uint32) { fn(base | uint64(v)) })
			i++
		} else {
			for v := uint64(0); v < 1<<32; v++ {
				fn(base | v)
			}
		}
		expect++
	}
}

// ToSlice returns every value in the set, in ascending order.
func (rb *Bitmap) ToSlice() []uint64 {
	n, full := rb.CardinalityNoThrow()
	if full {
		n = 0
	}
	out := make([]uint64, 0, n)
	rb.ForEach(func(v uint64) { out = append(out, v) })
	return out
}

// Clone returns a copy of rb. If copy-on-write is enabled, the clone's
// inner Roarings share container storage with rb's until mutated.
func (rb *Bitmap) Clone() *Bitmap {
	clone := &Bitmap{
		keys:        append([]uint32(nil), rb.keys...),
		containers:  make([]*roaring32.Bitmap, len(rb.containers)),
		copyOnWrite: rb.copyOnWrite,
		full:        rb.full,
	}
	for i, c := range rb.containers {
		clone.containers[i] = c.Clone()
	}
	return clone
}

// CloneCopyOnWrite returns a copy-on-write clone of rb regardless of
// the current policy flag: each inner Roaring shares its container
// storage with rb's until one side mutates it.
func (rb *Bitmap) CloneCopyOnWrite() *Bitmap {
	clone := &Bitmap{
		keys:        append([]uint32(nil), rb.keys...),
		containers:  make([]*roaring32.Bitmap, len(rb.containers)),
		copyOnWrite: true,
		full:        rb.full,
	}
	for i, c := range rb.containers {
		clone.containers[i] = c.CloneCopyOnWrite()
	}
	return clone
}

// FreezeCopyOnWrite severs any sharing rb participates in, forking every
// still-shared container into a private copy.
func (rb *Bitmap) FreezeCopyOnWrite() {
	for _, c := range rb.containers {
		c.FreezeCopyOnWrite()
	}
}

// RunOptimize converts every inner container to a run encoding where
// doing so would shrink it, and reports whether anything changed.
func (rb *Bitmap) RunOptimize() bool {
	changed := false
	for _, c := range rb.containers {
		if c.RunOptimize() {
			changed = true
		}
	}
	return changed
}

// RemoveRunCompression converts every run container back to an array or
// bitmap encoding, and reports whether anything changed.
func (rb *Bitmap) RemoveRunCompression() bool {
	changed := false
	for _, c := range rb.containers {
		if c.RemoveRunCompression() {
			changed = true
		}
	}
	return changed
}

// ShrinkToFit compacts the outer map's capacity; see
// roaring32.Bitmap.ShrinkToFit.
func (rb *Bitmap) ShrinkToFit() uint64 {
	var n uint64
	for _, c := range rb.containers {
		n += c.ShrinkToFit()
	}
	if spare := cap(rb.keys) - len(rb.keys); spare > 0 {
		n += uint64(spare) * 4
		rb.keys = append(make([]uint32, 0, len(rb.keys)), rb.keys...)
	}
	if spare := cap(rb.containers) - len(rb.containers); spare > 0 {
		n += uint64(spare) * 8
		rb.containers = append(make([]*roaring32.Bitmap, 0, len(rb.containers)), rb.containers...)
	}
	return n
}

// Equals reports whether rb and other contain exactly the same values,
// skipping any transiently redundant override on either side (one whose
// content happens to match that side's own background).
func (rb *Bitmap) Equals(other *Bitmap) bool {
	if rb.full != other.full {
		return false
	}
	ai, bi := 0, 0
	for ai < len(rb.keys) || bi < len(other.keys) {
		for ai < len(rb.keys) && rb.isBackgroundMatch(rb.containers[ai]) {
			ai++
		}
		for bi < len(other.keys) && other.isBackgroundMatch(other.containers[bi]) {
			bi++
		}
		aDone, bDone := ai >= len(rb.keys), bi >= len(other.keys)
		if aDone != bDone {
			return false
		}
		if aDone && bDone {
			return true
		}
		if rb.keys[ai] != other.keys[bi] {
			return false
		}
		if !rb.containers[ai].Equals(other.containers[bi]) {
			return false
		}
		ai++
		bi++
	}
	return true
}

// IsSubset reports whether every value in rb is also in other.
func (rb *Bitmap) IsSubset(other *Bitmap) bool {
	if other.full && len(other.keys) == 0 {
		return true
	}
	if rb.full && !other.full {
		return false
	}
	i, j := 0, 0
	for i < len(rb.keys) || j < len(other.keys) {
		switch {
		case j >= len(other.keys) || (i < len(rb.keys) && rb.keys[i] < other.keys[j]):
			if !rb.containers[i].IsSubset(backgroundContainer(other.full, false)) {
				return false
			}
			i++
		case i >= len(rb.keys) || rb.keys[i] > other.keys[j]:
			if !backgroundContainer(rb.full, false).IsSubset(other.containers[j]) {
				return false
			}
			j++
		default:
			if !rb.containers[i].IsSubset(other.containers[j]) {
				return false
			}
			i++
			j++
		}
	}
	return true
}

// IsStrictSubset reports whether rb is a subset of other and the two
// differ somewhere.
func (rb *Bitmap) IsStrictSubset(other *Bitmap) bool {
	return rb.IsSubset(other) && !rb.Equals(other)
}

// Swap exchanges the contents of rb and other.
func (rb *Bitmap) Swap(other *Bitmap) {
	*rb, *other = *other, *rb
}
