package roaring32

import "sort"

// Bitmap is a compressed, ordered set of uint32 values: an ordered map
// from the high 16 bits of each stored value to a container holding the
// corresponding low 16 bits.
type Bitmap struct {
	keys        []uint16
	containers  []*container
	copyOnWrite bool
}

// New returns an empty Bitmap.
func New() *Bitmap {
	return &Bitmap{}
}

// NewBitmap is an alias for New, matching the constructor name some
// callers expect when importing alongside roaring64.NewBitmap.
func NewBitmap() *Bitmap {
	return New()
}

// SetCopyOnWrite toggles the copy-on-write policy. When enabled, Clone
// is O(number of keys) and containers are forked lazily on their first
// mutation after being shared.
func (rb *Bitmap) SetCopyOnWrite(enabled bool) {
	rb.copyOnWrite = enabled
}

// GetCopyOnWrite reports the current copy-on-write policy.
func (rb *Bitmap) GetCopyOnWrite() bool {
	return rb.copyOnWrite
}

// find returns the index of key in rb.keys, and whether it was found. If
// not found, index is the insertion point that keeps rb.keys sorted.
func (rb *Bitmap) find(key uint16) (int, bool) {
	i := sort.Search(len(rb.keys), func(i int) bool { return rb.keys[i] >= key })
	return i, i < len(rb.keys) && rb.keys[i] == key
}

// insertAt inserts a (key, container) pair at position i, shifting
// subsequent entries right.
func (rb *Bitmap) insertAt(i int, key uint16, c *container) {
	rb.keys = append(rb.keys, 0)
	copy(rb.keys[i+1:], rb.keys[i:len(rb.keys)-1])
	rb.keys[i] = key

	rb.containers = append(rb.containers, nil)
	copy(rb.containers[i+1:], rb.containers[i:len(rb.containers)-1])
	rb.containers[i] = c
}

// removeAt deletes the entry at position i.
func (rb *Bitmap) removeAt(i int) {
	copy(rb.keys[i:], rb.keys[i+1:])
	rb.keys = rb.keys[:len(rb.keys)-1]
	copy(rb.containers[i:], rb.containers[i+1:])
	rb.containers = rb.containers[:len(rb.containers)-1]
}

// dropEmpties removes any entry whose container has become empty,
// restoring the invariant that no key maps to an empty container.
func (rb *Bitmap) dropEmpties() {
	out := rb.keys[:0]
	outC := rb.containers[:0]
	for i, c := range rb.containers {
		if !c.isEmpty() {
			out = append(out, rb.keys[i])
			outC = append(outC, c)
		}
	}
	rb.keys = out
	rb.containers = outC
}

// Add inserts v into the set.
func (rb *Bitmap) Add(v uint32) {
	rb.AddChecked(v)
}

// AddChecked inserts v into the set and reports whether it was newly
// added.
func (rb *Bitmap) AddChecked(v uint32) bool {
	hi, lo := uint16(v>>16), uint16(v)
	i, exists := rb.find(hi)
	if !exists {
		rb.insertAt(i, hi, newArrayContainer())
	}
	return rb.containers[i].add(lo)
}

// AddMany inserts every value in vs.
func (rb *Bitmap) AddMany(vs []uint32) {
	for _, v := range vs {
		rb.Add(v)
	}
}

// Remove deletes v from the set.
func (rb *Bitmap) Remove(v uint32) {
	rb.RemoveChecked(v)
}

// RemoveChecked deletes v from the set and reports whether it was
// present.
func (rb *Bitmap) RemoveChecked(v uint32) bool {
	hi, lo := uint16(v>>16), uint16(v)
	i, exists := rb.find(hi)
	if !exists {
		return false
	}
	removed := rb.containers[i].remove(lo)
	if removed && rb.containers[i].isEmpty() {
		rb.removeAt(i)
	}
	return removed
}

// Contains reports whether v is a member of the set.
func (rb *Bitmap) Contains(v uint32) bool {
	hi, lo := uint16(v>>16), uint16(v)
	i, exists := rb.find(hi)
	return exists && rb.containers[i].contains(lo)
}

// Cardinality returns the number of values in the set.
func (rb *Bitmap) Cardinality() uint64 {
	var n uint64
	for _, c := range rb.containers {
		n += uint64(c.cardinality())
	}
	return n
}

// IsEmpty reports whether the set has no members.
func (rb *Bitmap) IsEmpty() bool {
	return len(rb.containers) == 0
}

// IsFull reports whether the set contains every value in [0, 2^32).
func (rb *Bitmap) IsFull() bool {
	return len(rb.keys) == 65536 && rb.Cardinality() == 1<<32
}

// Clear empties the set.
func (rb *Bitmap) Clear() {
	rb.keys = nil
	rb.containers = nil
}

// Minimum returns the smallest value in the set, or (0, false) if empty.
func (rb *Bitmap) Minimum() (uint32, bool) {
	if len(rb.containers) == 0 {
		return 0, false
	}
	lo, _ := rb.containers[0].min()
	return uint32(rb.keys[0])<<16 | uint32(lo), true
}

// Maximum returns the largest value in the set, or (0, false) if empty.
func (rb *Bitmap) Maximum() (uint32, bool) {
	if len(rb.containers) == 0 {
		return 0, false
	}
	last := len(rb.containers) - 1
	hi, _ := rb.containers[last].max()
	return uint32(rb.keys[last])<<16 | uint32(hi), true
}

// Rank returns the number of values in the set that are <= v.
func (rb *Bitmap) Rank(v uint32) uint64 {
	hi, lo := uint16(v>>16), uint16(v)
	var n uint64
	for i, k := range rb.keys {
		if k < hi {
			n += uint64(rb.containers[i].cardinality())
			continue
		}
		if k == hi {
			n += uint64(rb.containers[i].rank(lo))
		}
		break
	}
	return n
}

// RangeCardinality returns the number of values in the closed range
// [lo, hi], without materializing the slice: two rank queries.
func (rb *Bitmap) RangeCardinality(lo, hi uint32) uint64 {
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
func (rb *Bitmap) Select(r uint64) (uint32, bool) {
	for i, c := range rb.containers {
		card := uint64(c.cardinality())
		if r < card {
			return uint32(rb.keys[i])<<16 | uint32(c.selectAt(int(r))), true
		}
		r -= card
	}
	return 0, false
}

// ForEach calls fn with every value in the set in ascending order.
func (rb *Bitmap) ForEach(fn func(uint32)) {
	for i, c := range rb.containers {
		base := uint32(rb.keys[i]) << 16
		c.forEach(func(v uint16) { fn(base | uint32(v)) })
	}
}

// ToSlice returns every value in the set, in ascending order.
func (rb *Bitmap) ToSlice() []uint32 {
	out := make([]uint32, 0, rb.Cardinality())
	rb.ForEach(func(v uint32) { out = append(out, v) })
	return out
}

// Clone returns a copy of rb. If copy-on-write is enabled, the clone
// shares container storage with rb until one of them is mutated;
// otherwise every container is deep-copied immediately.
func (rb *Bitmap) Clone() *Bitmap {
	clone := &Bitmap{
		keys:        append([]uint16(nil), rb.keys...),
		containers:  make([]*container, len(rb.containers)),
		copyOnWrite: rb.copyOnWrite,
	}
	for i, c := range rb.containers {
		if rb.copyOnWrite {
			clone.containers[i] = c.clone()
		} else {
			cp := *c
			cp.shared = false
			switch cp.kind {
			case kindArray:
				cp.array = append([]uint16(nil), c.array...)
			case kindBitmap:
				cp.bmp = c.bmp.Clone()
			case kindRun:
				cp.runs = append([]runInterval(nil), c.runs...)
			}
			clone.containers[i] = &cp
		}
	}
	return clone
}

// CloneCopyOnWrite returns a copy-on-write clone of rb regardless of
// the current policy flag: the clone shares container storage with rb,
// and whichever side mutates a shared container first forks a private
// copy.
func (rb *Bitmap) CloneCopyOnWrite() *Bitmap {
	clone := &Bitmap{
		keys:        append([]uint16(nil), rb.keys...),
		containers:  make([]*container, len(rb.containers)),
		copyOnWrite: true,
	}
	for i, c := range rb.containers {
		clone.containers[i] = c.clone()
	}
	return clone
}

// FreezeCopyOnWrite severs any sharing rb participates in: every
// container still aliasing another bitmap's storage is forked into a
// private copy, so later mutations pay no clone-on-write cost.
func (rb *Bitmap) FreezeCopyOnWrite() {
	for _, c := range rb.containers {
		c.fork()
	}
}

// RunOptimize converts every container to a run encoding where doing so
// would shrink it, and reports whether any container's kind changed.
func (rb *Bitmap) RunOptimize() bool {
	changed := false
	for _, c := range rb.containers {
		if c.optimize() {
			changed = true
		}
	}
	return changed
}

// RemoveRunCompression converts every run container back to an array or
// bitmap encoding, and reports whether any container's kind changed.
func (rb *Bitmap) RemoveRunCompression() bool {
	changed := false
	for _, c := range rb.containers {
		if c.removeRunCompression() {
			changed = true
		}
	}
	return changed
}

// ShrinkToFit drops the spare capacity of the key slice and of every
// array and run container's backing slice, and reports the number of
// bytes reclaimed.
func (rb *Bitmap) ShrinkToFit() uint64 {
	var saved uint64
	for _, c := range rb.containers {
		if spare := cap(c.array) - len(c.array); spare > 0 {
			saved += uint64(spare) * 2
			c.array = append(make([]uint16, 0, len(c.array)), c.array...)
		}
		if spare := cap(c.runs) - len(c.runs); spare > 0 {
			saved += uint64(spare) * 4
			c.runs = append(make([]runInterval, 0, len(c.runs)), c.runs...)
		}
	}
	if spare := cap(rb.keys) - len(rb.keys); spare > 0 {
		saved += uint64(spare) * 2
		rb.keys = append(make([]uint16, 0, len(rb.keys)), rb.keys...)
	}
	return saved
}

// Equals reports whether rb and other contain exactly the same values.
func (rb *Bitmap) Equals(other *Bitmap) bool {
	if len(rb.keys) != len(other.keys) {
		return false
	}
	for i := range rb.keys {
		if rb.keys[i] != other.keys[i] {
			return false
		}
		if rb.containers[i].cardinality() != other.containers[i].cardinality() {
			return false
		}
		a, b := rb.containers[i], other.containers[i]
		equal := true
		a.forEach(func(v uint16) {
			if equal && !b.contains(v) {
				equal = false
			}
		})
		if !equal {
			return false
		}
	}
	return true
}

// IsSubset reports whether every value in rb is also in other.
func (rb *Bitmap) IsSubset(other *Bitmap) bool {
	for i, key := range rb.keys {
		j, exists := other.find(key)
		if !exists {
			if !rb.containers[i].isEmpty() {
				return false
			}
			continue
		}
		oc := other.containers[j]
		ok := true
		rb.containers[i].forEach(func(v uint16) {
			if ok && !oc.contains(v) {
				ok = false
			}
		})
		if !ok {
			return false
		}
	}
	return true
}

// IsStrictSubset reports whether rb is a subset of other and rb != other.
func (rb *Bitmap) IsStrictSubset(other *Bitmap) bool {
	return rb.IsSubset(other) && rb.Cardinality() < other.Cardinality()
}

// Swap exchanges the contents of rb and other.
func (rb *Bitmap) Swap(other *Bitmap) {
	*rb, *other = *other, *rb
}
