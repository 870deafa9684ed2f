package roaring32

import "sort"

// findRun returns the index of the first run whose end is >= v. If that
// run's start is <= v, v falls inside it.
func (c *container) findRun(v uint16) int {
	return sort.Search(len(c.runs), func(i int) bool { return c.runs[i].end >= v })
}

// runAdd inserts v into a run container, merging adjacent runs as
// needed. Returns whether v was newly added.
func (c *container) runAdd(v uint16) bool {
	i := c.findRun(v)
	if i < len(c.runs) && c.runs[i].start <= v {
		return false // already covered
	}

	mergeLeft := i > 0 && int(c.runs[i-1].end)+1 == int(v)
	mergeRight := i < len(c.runs) && int(v)+1 == int(c.runs[i].start)

	switch {
	case mergeLeft && mergeRight:
		c.runs[i-1].end = c.runs[i].end
		c.runs = append(c.runs[:i], c.runs[i+1:]...)
	case mergeLeft:
		c.runs[i-1].end = v
	case mergeRight:
		c.runs[i].start = v
	default:
		c.runs = append(c.runs, runInterval{})
		copy(c.runs[i+1:], c.runs[i:len(c.runs)-1])
		c.runs[i] = runInterval{start: v, end: v}
	}
	c.card++
	return true
}

// runRemove deletes v from a run container, splitting a run if
// necessary. Returns whether v was present.
func (c *container) runRemove(v uint16) bool {
	i := c.findRun(v)
	if i >= len(c.runs) || c.runs[i].start > v {
		return false
	}
	r := c.runs[i]
	switch {
	case r.start == v && r.end == v:
		c.runs = append(c.runs[:i], c.runs[i+1:]...)
	case r.start == v:
		c.runs[i].start = v + 1
	case r.end == v:
		c.runs[i].end = v - 1
	default:
		left := runInterval{start: r.start, end: v - 1}
		right := runInterval{start: v + 1, end: r.end}
		c.runs = append(c.runs, runInterval{})
		copy(c.runs[i+2:], c.runs[i+1:len(c.runs)-1])
		c.runs[i] = left
		c.runs[i+1] = right
	}
	c.card--
	return true
}

// runAddRange merges the closed range [lo, hi] into a run container. All
// comparisons are done in int to avoid uint16 wraparound at the domain
// boundary (lo == 0 or hi == 65535).
func (c *container) runAddRange(lo, hi uint16) {
	var out []runInterval
	inserted := false
	newStart, newEnd := int(lo), int(hi)

	for _, r := range c.runs {
		rs, re := int(r.start), int(r.end)
		switch {
		case !inserted && re+1 < newStart:
			out = append(out, r)
		case !inserted && rs > newEnd+1:
			out = append(out, runInterval{start: uint16(newStart), end: uint16(newEnd)})
			out = append(out, r)
			inserted = true
		case !inserted:
			// overlaps or is adjacent to the new range: absorb it
			if rs < newStart {
				newStart = rs
			}
			if re > newEnd {
				newEnd = re
			}
		default:
			out = append(out, r)
		}
	}
	if !inserted {
		out = append(out, runInterval{start: uint16(newStart), end: uint16(newEnd)})
	}

	c.runs = out
	c.recomputeCardFromRuns()
}

// runRemoveRange deletes the closed range [lo, hi] from a run container.
// As in runAddRange, comparisons are done in int to avoid uint16
// wraparound at the domain boundary.
func (c *container) runRemoveRange(lo, hi uint16) {
	loI, hiI := int(lo), int(hi)
	var out []runInterval
	for _, r := range c.runs {
		rs, re := int(r.start), int(r.end)
		switch {
		case re < loI || rs > hiI:
			out = append(out, r)
		case rs < loI && re > hiI:
			out = append(out, runInterval{start: r.start, end: uint16(loI - 1)})
			out = append(out, runInterval{start: uint16(hiI + 1), end: r.end})
		case rs < loI:
			out = append(out, runInterval{start: r.start, end: uint16(loI - 1)})
		case re > hiI:
			out = append(out, runInterval{start: uint16(hiI + 1), end: r.end})
		}
		// else: run fully covered by [lo, hi], drop it
	}
	c.runs = out
	c.recomputeCardFromRuns()
}

func (c *container) recomputeCardFromRuns() {
	n := 0
	for _, r := range c.runs {
		n += r.length()
	}
	c.card = n
}
