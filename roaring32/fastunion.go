package roaring32

import "container/heap"

// This file implements the many-way union over n bitmaps: a priority
// queue over each input's current key advances in lockstep,
// grouping every input whose key matches the current frontier and
// unioning their containers together before emitting that key.

type keyHeapItem struct {
	key       uint16
	bitmapIdx int
}

type keyHeap []keyHeapItem

func (h keyHeap) Len() int            { return len(h) }
func (h keyHeap) Less(i, j int) bool   { return h[i].key < h[j].key }
func (h keyHeap) Swap(i, j int)        { h[i], h[j] = h[j], h[i] }
func (h *keyHeap) Push(x interface{})  { *h = append(*h, x.(keyHeapItem)) }
func (h *keyHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// FastUnion computes the union of many bitmaps without reducing them
// pairwise: it merges every input's key stream through a priority queue,
// and at each frontier key unions together only the containers actually
// present there.
func FastUnion(bitmaps ...*Bitmap) *Bitmap {
	out := New()
	if len(bitmaps) == 0 {
		return out
	}

	positions := make([]int, len(bitmaps))
	h := &keyHeap{}
	for i, bm := range bitmaps {
		if len(bm.keys) > 0 {
			heap.Push(h, keyHeapItem{key: bm.keys[0], bitmapIdx: i})
		}
	}

	for h.Len() > 0 {
		frontier := (*h)[0].key
		var group []*container
		for h.Len() > 0 && (*h)[0].key == frontier {
			item := heap.Pop(h).(keyHeapItem)
			bm := bitmaps[item.bitmapIdx]
			pos := positions[item.bitmapIdx]
			group = append(group, bm.containers[pos])
			positions[item.bitmapIdx]++
			if positions[item.bitmapIdx] < len(bm.keys) {
				heap.Push(h, keyHeapItem{key: bm.keys[positions[item.bitmapIdx]], bitmapIdx: item.bitmapIdx})
			}
		}
		merged := unionMany(group)
		if !merged.isEmpty() {
			out.keys = append(out.keys, frontier)
			out.containers = append(out.containers, merged)
		}
	}
	return out
}

// lazyUnionPromotion is the aggregate cardinality above which a many-way
// union accumulates into a bitmap container up front, rather than
// widening an array output one pairwise union at a time.
const lazyUnionPromotion = 1024

// unionMany reduces a group of containers sharing one key into a single
// container. Small groups go through the binary dispatch matrix; once
// the aggregate cardinality can exceed lazyUnionPromotion, the values
// are poured into a bitmap container directly and the result is
// re-kinded once at the end.
func unionMany(cs []*container) *container {
	if len(cs) == 0 {
		return newArrayContainer()
	}
	if len(cs) == 1 {
		return cs[0].clone()
	}
	total := 0
	for _, c := range cs {
		total += c.cardinality()
	}
	if total > lazyUnionPromotion {
		acc := newBitmapContainer()
		for _, c := range cs {
			switch c.kind {
			case kindBitmap:
				acc.bmp.Or(c.bmp)
			case kindRun:
				for _, r := range c.runs {
					acc.bmp.SetRange(uint32(r.start), uint32(r.end))
				}
			default:
				for _, v := range c.array {
					acc.bmp.Set(v)
				}
			}
		}
		acc.card = acc.bmp.Count()
		return finalizeArrayOrBitmap(acc)
	}
	acc := cs[0].clone()
	for _, c := range cs[1:] {
		acc = unionContainers(acc, c)
	}
	return acc
}
