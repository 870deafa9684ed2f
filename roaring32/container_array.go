package roaring32

import "sort"

// arrayAdd inserts v into a sorted array container. Returns whether v was
// newly added.
func (c *container) arrayAdd(v uint16) bool {
	i := sort.Search(len(c.array), func(i int) bool { return c.array[i] >= v })
	if i < len(c.array) && c.array[i] == v {
		return false
	}
	c.array = append(c.array, 0)
	copy(c.array[i+1:], c.array[i:len(c.array)-1])
	c.array[i] = v
	c.card++
	return true
}

// arrayRemove deletes v from a sorted array container. Returns whether v
// was present.
func (c *container) arrayRemove(v uint16) bool {
	i := sort.Search(len(c.array), func(i int) bool { return c.array[i] >= v })
	if i >= len(c.array) || c.array[i] != v {
		return false
	}
	copy(c.array[i:], c.array[i+1:])
	c.array = c.array[:len(c.array)-1]
	c.card--
	return true
}

// arrayAddRange inserts every value in the closed range [lo, hi] into a
// sorted array container, merging with existing values.
func (c *container) arrayAddRange(lo, hi uint16) {
	lowIdx := sort.Search(len(c.array), func(i int) bool { return c.array[i] >= lo })
	highIdx := sort.Search(len(c.array), func(i int) bool { return c.array[i] > hi })

	rangeLen := int(hi) - int(lo) + 1
	out := make([]uint16, 0, len(c.array)-(highIdx-lowIdx)+rangeLen)
	out = append(out, c.array[:lowIdx]...)
	for v := int(lo); v <= int(hi); v++ {
		out = append(out, uint16(v))
	}
	out = append(out, c.array[highIdx:]...)
	c.array = out
	c.card = len(out)
}

// arrayRemoveRange deletes every value in the closed range [lo, hi] from
// a sorted array container.
func (c *container) arrayRemoveRange(lo, hi uint16) {
	lowIdx := sort.Search(len(c.array), func(i int) bool { return c.array[i] >= lo })
	highIdx := sort.Search(len(c.array), func(i int) bool { return c.array[i] > hi })
	c.array = append(c.array[:lowIdx], c.array[highIdx:]...)
	c.card = len(c.array)
}
