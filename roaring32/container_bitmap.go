package roaring32

// bitmapAdd sets bit v in a bitmap container. Returns whether it was
// newly added.
func (c *container) bitmapAdd(v uint16) bool {
	if c.bmp.Test(v) {
		return false
	}
	c.bmp.Set(v)
	c.card++
	return true
}

// bitmapRemove clears bit v in a bitmap container. Returns whether it
// was present.
func (c *container) bitmapRemove(v uint16) bool {
	if !c.bmp.Test(v) {
		return false
	}
	c.bmp.Clear(v)
	c.card--
	return true
}

// bitmapAddRange sets every bit in [lo, hi] and recomputes cardinality.
func (c *container) bitmapAddRange(lo, hi uint16) {
	c.bmp.SetRange(uint32(lo), uint32(hi))
	c.card = c.bmp.Count()
}

// bitmapRemoveRange clears every bit in [lo, hi] and recomputes
// cardinality.
func (c *container) bitmapRemoveRange(lo, hi uint16) {
	c.bmp.ClearRange(uint32(lo), uint32(hi))
	c.card = c.bmp.Count()
}
