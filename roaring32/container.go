/*
Package roaring32 implements a 32-bit Roaring bitmap: an ordered map from
the high 16 bits of a uint32 value to a container holding the
corresponding low 16 bits, picking among three container
representations — array, bitmap, run — for whichever is most compact for
the values actually present.
*/
package roaring32

import (
	"sort"

	"github.com/scampagna/roaring/internal/wordset"
)

// kind tags which representation a container currently uses.
type kind uint8

const (
	kindArray kind = iota
	kindBitmap
	kindRun
)

// arrayMaxCardinality is the cardinality above which an array container
// converts to a bitmap container, and at or below which a bitmap
// container converts back to an array.
const arrayMaxCardinality = 4096

// runInterval is a single closed run [start, end] within a run container.
type runInterval struct {
	start, end uint16
}

// length returns the number of values covered by the run.
func (r runInterval) length() int {
	return int(r.end) - int(r.start) + 1
}

// container holds a set of 16-bit values using one of three
// representations, tagged by kind. Only the field matching kind is
// meaningful.
type container struct {
	kind   kind
	shared bool // copy-on-write: true until the first mutation forks a private copy
	card   int  // cardinality, kept authoritative for every kind

	array []uint16       // kindArray: strictly ascending, no duplicates
	bmp   *wordset.Set   // kindBitmap: fixed 65536-bit vector
	runs  []runInterval  // kindRun: ascending, disjoint, non-adjacent
}

// newArrayContainer returns an empty array container.
func newArrayContainer() *container {
	return &container{kind: kindArray, array: make([]uint16, 0, 4)}
}

// newBitmapContainer returns an empty bitmap container.
func newBitmapContainer() *container {
	return &container{kind: kindBitmap, bmp: &wordset.Set{}}
}

// newRunContainer returns an empty run container.
func newRunContainer() *container {
	return &container{kind: kindRun}
}

// fork ensures the container owns its backing storage before a mutation:
// a container logically shared by two Roaring bitmaps under
// copy-on-write must be cloned before the first write.
func (c *container) fork() {
	if !c.shared {
		return
	}
	switch c.kind {
	case kindArray:
		a := make([]uint16, len(c.array))
		copy(a, c.array)
		c.array = a
	case kindBitmap:
		c.bmp = c.bmp.Clone()
	case kindRun:
		r := make([]runInterval, len(c.runs))
		copy(r, c.runs)
		c.runs = r
	}
	c.shared = false
}

// clone returns a copy-on-write alias of c: the returned container shares
// backing storage with c until either is mutated.
func (c *container) clone() *container {
	c.shared = true
	clone := *c
	clone.shared = true
	return &clone
}

// cardinality returns the number of values held.
func (c *container) cardinality() int {
	return c.card
}

// isEmpty reports whether the container holds no values.
func (c *container) isEmpty() bool {
	return c.card == 0
}

// contains reports whether v is present.
func (c *container) contains(v uint16) bool {
	switch c.kind {
	case kindArray:
		i := sort.Search(len(c.array), func(i int) bool { return c.array[i] >= v })
		return i < len(c.array) && c.array[i] == v
	case kindBitmap:
		return c.bmp.Test(v)
	case kindRun:
		i := sort.Search(len(c.runs), func(i int) bool { return c.runs[i].end >= v })
		return i < len(c.runs) && c.runs[i].start <= v
	}
	return false
}

// add inserts v, converting to a bitmap if the array grows past
// arrayMaxCardinality and demoting a run container whose encoding stops
// being smallest. Returns whether v was newly added.
func (c *container) add(v uint16) bool {
	c.fork()
	switch c.kind {
	case kindArray:
		added := c.arrayAdd(v)
		if added && len(c.array) > arrayMaxCardinality {
			c.convertToBitmap()
		}
		return added
	case kindBitmap:
		return c.bitmapAdd(v)
	case kindRun:
		added := c.runAdd(v)
		if added {
			finalizeRun(c)
		}
		return added
	}
	return false
}

// remove deletes v, converting a bitmap back to an array if its
// cardinality falls to or below arrayMaxCardinality and demoting a run
// container whose encoding stops being smallest. Returns whether v was
// present.
func (c *container) remove(v uint16) bool {
	c.fork()
	switch c.kind {
	case kindArray:
		return c.arrayRemove(v)
	case kindBitmap:
		removed := c.bitmapRemove(v)
		if removed && c.card <= arrayMaxCardinality {
			c.convertToArray()
		}
		return removed
	case kindRun:
		removed := c.runRemove(v)
		if removed {
			finalizeRun(c)
		}
		return removed
	}
	return false
}

// addRange merges the closed range [lo, hi] into the container, then
// applies the target-kind selector.
func (c *container) addRange(lo, hi uint16) {
	if lo > hi {
		return
	}
	c.fork()
	switch c.kind {
	case kindArray:
		c.arrayAddRange(lo, hi)
		finalizeArrayOrBitmap(c)
	case kindBitmap:
		c.bitmapAddRange(lo, hi)
		finalizeArrayOrBitmap(c)
	case kindRun:
		c.runAddRange(lo, hi)
		finalizeRun(c)
	}
}

// removeRange deletes the closed range [lo, hi] from the container, then
// applies the target-kind selector.
func (c *container) removeRange(lo, hi uint16) {
	if lo > hi {
		return
	}
	c.fork()
	switch c.kind {
	case kindArray:
		c.arrayRemoveRange(lo, hi)
		finalizeArrayOrBitmap(c)
	case kindBitmap:
		c.bitmapRemoveRange(lo, hi)
		finalizeArrayOrBitmap(c)
	case kindRun:
		c.runRemoveRange(lo, hi)
		finalizeRun(c)
	}
}

// flipRange complements membership of every value in the closed range
// [lo, hi]. Array and run containers are flipped via a bitmap detour,
// since toggling is naturally word-parallel only in that representation.
func (c *container) flipRange(lo, hi uint16) {
	if lo > hi {
		return
	}
	c.fork()
	if c.kind != kindBitmap {
		c.convertToBitmap()
	}
	c.bmp.FlipRange(uint32(lo), uint32(hi))
	c.card = c.bmp.Count()
	finalizeArrayOrBitmap(c)
}

// min returns the smallest value held, or (0, false) if empty.
func (c *container) min() (uint16, bool) {
	if c.card == 0 {
		return 0, false
	}
	switch c.kind {
	case kindArray:
		return c.array[0], true
	case kindBitmap:
		return c.bmp.Min()
	case kindRun:
		return c.runs[0].start, true
	}
	return 0, false
}

// max returns the largest value held, or (0, false) if empty.
func (c *container) max() (uint16, bool) {
	if c.card == 0 {
		return 0, false
	}
	switch c.kind {
	case kindArray:
		return c.array[len(c.array)-1], true
	case kindBitmap:
		return c.bmp.Max()
	case kindRun:
		return c.runs[len(c.runs)-1].end, true
	}
	return 0, false
}

// rank returns the number of values <= v held by the container.
func (c *container) rank(v uint16) int {
	switch c.kind {
	case kindArray:
		return sort.Search(len(c.array), func(i int) bool { return c.array[i] > v })
	case kindBitmap:
		return c.bmp.Rank(v)
	case kindRun:
		n := 0
		for _, r := range c.runs {
			if r.start > v {
				break
			}
			if r.end <= v {
				n += r.length()
			} else {
				n += int(v) - int(r.start) + 1
			}
		}
		return n
	}
	return 0
}

// selectAt returns the i-th smallest value (0-indexed) held by the
// container.
func (c *container) selectAt(i int) uint16 {
	switch c.kind {
	case kindArray:
		return c.array[i]
	case kindBitmap:
		v, _ := c.bmp.Min()
		remaining := i
		for {
			if remaining == 0 {
				return v
			}
			next, ok := c.bmp.NextSet(uint32(v) + 1)
			if !ok {
				return v
			}
			v = next
			remaining--
		}
	case kindRun:
		remaining := i
		for _, r := range c.runs {
			n := r.length()
			if remaining < n {
				return r.start + uint16(remaining)
			}
			remaining -= n
		}
	}
	return 0
}

// forEach calls fn with every value in ascending order.
func (c *container) forEach(fn func(uint16)) {
	switch c.kind {
	case kindArray:
		for _, v := range c.array {
			fn(v)
		}
	case kindBitmap:
		v, ok := c.bmp.Min()
		for ok {
			fn(v)
			v, ok = c.bmp.NextSet(uint32(v) + 1)
		}
	case kindRun:
		for _, r := range c.runs {
			for v := int(r.start); v <= int(r.end); v++ {
				fn(uint16(v))
			}
		}
	}
}

// numberOfRuns returns how many maximal runs the container's current
// contents would occupy if encoded as a run container.
func (c *container) numberOfRuns() int {
	switch c.kind {
	case kindRun:
		return len(c.runs)
	case kindBitmap:
		return c.bmp.NumberOfRuns()
	case kindArray:
		if len(c.array) == 0 {
			return 0
		}
		n := 1
		for i := 1; i < len(c.array); i++ {
			if c.array[i] != c.array[i-1]+1 {
				n++
			}
		}
		return n
	}
	return 0
}

// arrayBytes returns the serialized size, in bytes, of card values
// stored in an array container.
func arrayBytes(card int) int {
	return card * 2
}

// bitmapBytesConst is the fixed serialized size of a bitmap container.
const bitmapBytesConst = wordset.Bytes

// runBytes is the target-kind selector's cost term for a run container
// holding runCount runs: runCount*4 + 4, not this container's actual
// wire size (2 bytes of run-count header ahead of 4 bytes per run — see
// containerBodySize). The extra slack keeps a 4-value, 1-run container
// an array (cost 8, not < 8) instead of flipping it to a run encoding.
func runBytes(runCount int) int {
	return runCount*4 + 4
}

// shouldUseRun applies the target-kind selector: a run
// encoding is adopted only when it is strictly smaller than both the
// array and the bitmap encodings of the same contents.
func shouldUseRun(card, runCount int) bool {
	arrBytes := arrayBytes(card)
	best := arrBytes
	if bitmapBytesConst < best {
		best = bitmapBytesConst
	}
	return runBytes(runCount) < best
}

// optimize converts c to a run container if doing so would strictly
// shrink its encoding, implementing run_optimize at the container level.
// Returns whether the container's kind changed.
func (c *container) optimize() bool {
	if c.kind == kindRun {
		return false
	}
	c.fork()
	runCount := c.numberOfRuns()
	if !shouldUseRun(c.card, runCount) {
		return false
	}
	c.convertToRun()
	return true
}

// removeRunCompression converts a run container back to whichever of
// array/bitmap the target-kind selector prefers for its cardinality.
// Returns whether the container's kind changed.
func (c *container) removeRunCompression() bool {
	if c.kind != kindRun {
		return false
	}
	c.fork()
	if c.card <= arrayMaxCardinality {
		c.convertToArray()
	} else {
		c.convertToBitmap()
	}
	return true
}

func (c *container) convertToBitmap() {
	if c.kind == kindBitmap {
		return
	}
	bmp := &wordset.Set{}
	c.forEach(func(v uint16) { bmp.Set(v) })
	c.kind = kindBitmap
	c.bmp = bmp
	c.array = nil
	c.runs = nil
}

func (c *container) convertToArray() {
	if c.kind == kindArray {
		return
	}
	arr := make([]uint16, 0, c.card)
	c.forEach(func(v uint16) { arr = append(arr, v) })
	c.kind = kindArray
	c.array = arr
	c.bmp = nil
	c.runs = nil
}

func (c *container) convertToRun() {
	if c.kind == kindRun {
		return
	}
	var runs []runInterval
	var cur *runInterval
	c.forEach(func(v uint16) {
		if cur != nil && cur.end+1 == v {
			cur.end = v
			return
		}
		if cur != nil {
			runs = append(runs, *cur)
		}
		cur = &runInterval{start: v, end: v}
	})
	if cur != nil {
		runs = append(runs, *cur)
	}
	c.kind = kindRun
	c.runs = runs
	c.array = nil
	c.bmp = nil
}
