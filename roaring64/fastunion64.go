package roaring64

import (
	"container/heap"

	"github.com/scampagna/roaring/roaring32"
)

// This file implements the 64-bit many-way union: n parallel outer-key
// iterators advance through a priority queue; at each
// frontier, every input whose current outer key matches it contributes
// its inner 32-bit Roaring to a many-way union performed one level down
// by roaring32.FastUnion.

type outerHeapItem struct {
	key       uint32
	bitmapIdx int
}

type outerHeap []outerHeapItem

func (h outerHeap) Len() int          { return len(h) }
func (h outerHeap) Less(i, j int) bool { return h[i].key < h[j].key }
func (h outerHeap) Swap(i, j int)     { h[i], h[j] = h[j], h[i] }
func (h *outerHeap) Push(x interface{}) { *h = append(*h, x.(outerHeapItem)) }
func (h *outerHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// FastUnion computes the union of many 64-bit bitmaps without reducing
// them pairwise.
func FastUnion(bitmaps ...*Bitmap) *Bitmap {
	out := New()
	if len(bitmaps) == 0 {
		return out
	}
	// Inputs whose background is full can't join the key merge below
	// (their keys are exceptions, not content); a literally full input
	// decides the whole union, and the rest fold in afterward through
	// the background-aware pairwise union.
	var fullBackground []*Bitmap
	for _, bm := range bitmaps {
		if bm.IsFull() {
			out.full = true
			return out
		}
		if bm.full {
			fullBackground = append(fullBackground, bm)
		}
	}

	positions := make([]int, len(bitmaps))
	h := &outerHeap{}
	for i, bm := range bitmaps {
		if !bm.full && len(bm.keys) > 0 {
			heap.Push(h, outerHeapItem{key: bm.keys[0], bitmapIdx: i})
		}
	}

	for h.Len() > 0 {
		frontier := (*h)[0].key
		var group []*roaring32.Bitmap
		for h.Len() > 0 && (*h)[0].key == frontier {
			item := heap.Pop(h).(outerHeapItem)
			bm := bitmaps[item.bitmapIdx]
			pos := positions[item.bitmapIdx]
			group = append(group, bm.containers[pos])
			positions[item.bitmapIdx]++
			if positions[item.bitmapIdx] < len(bm.keys) {
				heap.Push(h, outerHeapItem{key: bm.keys[positions[item.bitmapIdx]], bitmapIdx: item.bitmapIdx})
			}
		}
		merged := roaring32.FastUnion(group...)
		if !merged.IsEmpty() {
			out.keys = append(out.keys, frontier)
			out.containers = append(out.containers, merged)
		}
	}
	for _, bm := range fullBackground {
		out.Or(bm)
	}
	return out
}
