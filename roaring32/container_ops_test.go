package roaring32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// populate fills a container of the given kind with vs via repeated add,
// so each kind combination exercises the same logical contents.
func populate(newC func() *container, vs ...uint16) *container {
	c := newC()
	for _, v := range vs {
		c.add(v)
	}
	return c
}

func valuesOf(c *container) []uint16 {
	var out []uint16
	c.forEach(func(v uint16) { out = append(out, v) })
	return out
}

var kindCtors = []func() *container{newArrayContainer, newBitmapContainer, newRunContainer}

func TestUnionContainersAllKindPairs(t *testing.T) {
	for _, an := range kindCtors {
		for _, bn := range kindCtors {
			a := populate(an, 1, 3, 5, 7)
			b := populate(bn, 3, 5, 9)
			result := unionContainers(a, b)
			assert.ElementsMatch(t, []uint16{1, 3, 5, 7, 9}, valuesOf(result))
		}
	}
}

func TestIntersectContainersAllKindPairs(t *testing.T) {
	for _, an := range kindCtors {
		for _, bn := range kindCtors {
			a := populate(an, 1, 3, 5, 7)
			b := populate(bn, 3, 5, 9)
			result := intersectContainers(a, b)
			assert.ElementsMatch(t, []uint16{3, 5}, valuesOf(result))
		}
	}
}

func TestDifferenceContainersAllKindPairs(t *testing.T) {
	for _, an := range kindCtors {
		for _, bn := range kindCtors {
			a := populate(an, 1, 3, 5, 7)
			b := populate(bn, 3, 5, 9)
			result := differenceContainers(a, b)
			assert.ElementsMatch(t, []uint16{1, 7}, valuesOf(result))
		}
	}
}

func TestSymDiffContainersAllKindPairs(t *testing.T) {
	for _, an := range kindCtors {
		for _, bn := range kindCtors {
			a := populate(an, 1, 3, 5, 7)
			b := populate(bn, 3, 5, 9)
			result := symDiffContainers(a, b)
			assert.ElementsMatch(t, []uint16{1, 7, 9}, valuesOf(result))
		}
	}
}

func TestRunUnionRunMergesAdjacent(t *testing.T) {
	a := newRunContainer()
	a.runs = []runInterval{{start: 0, end: 5}}
	a.recomputeCardFromRuns()
	b := newRunContainer()
	b.runs = []runInterval{{start: 6, end: 10}}
	b.recomputeCardFromRuns()

	result := runUnionRun(a, b)
	assert.Equal(t, kindRun, result.kind)
	assert.Equal(t, []runInterval{{start: 0, end: 10}}, result.runs)
}

func TestRunIntersectRunStaysRun(t *testing.T) {
	a := newRunContainer()
	a.runs = []runInterval{{start: 0, end: 10}}
	a.recomputeCardFromRuns()
	b := newRunContainer()
	b.runs = []runInterval{{start: 5, end: 15}}
	b.recomputeCardFromRuns()

	result := runIntersectRun(a, b)
	assert.Equal(t, kindRun, result.kind)
	assert.Equal(t, []runInterval{{start: 5, end: 10}}, result.runs)
}

func TestUnionContainersCommutative(t *testing.T) {
	for _, an := range kindCtors {
		for _, bn := range kindCtors {
			a := populate(an, 1, 3, 5, 7)
			b := populate(bn, 3, 5, 9)
			ab := unionContainers(a, b)
			ba := unionContainers(populate(bn, 3, 5, 9), populate(an, 1, 3, 5, 7))
			assert.ElementsMatch(t, valuesOf(ab), valuesOf(ba))
		}
	}
}

func TestUnionContainersDemotesOversizedRunResult(t *testing.T) {
	// Two interleaved sets of 1025 length-3 runs, each individually a
	// valid run encoding; their union has 2050 runs and cardinality
	// 6150, where a bitmap is strictly smaller than the run encoding.
	a := newRunContainer()
	b := newRunContainer()
	for i := 0; i < 1025; i++ {
		base := uint16(i * 8)
		a.runs = append(a.runs, runInterval{start: base, end: base + 2})
		b.runs = append(b.runs, runInterval{start: base + 4, end: base + 6})
	}
	a.recomputeCardFromRuns()
	b.recomputeCardFromRuns()
	assert.True(t, shouldUseRun(a.card, len(a.runs)))
	assert.True(t, shouldUseRun(b.card, len(b.runs)))

	result := unionContainers(a, b)
	assert.Equal(t, kindBitmap, result.kind)
	assert.Equal(t, 6150, result.cardinality())
}

func TestIntersectContainersDemotesSparseRunResult(t *testing.T) {
	// The overlap of each run pair is 2 values, so the intersection's
	// run encoding is larger than the plain array of its 20 values.
	a := newRunContainer()
	b := newRunContainer()
	for i := 0; i < 10; i++ {
		base := uint16(i * 8)
		a.runs = append(a.runs, runInterval{start: base, end: base + 2})
		b.runs = append(b.runs, runInterval{start: base + 1, end: base + 4})
	}
	a.recomputeCardFromRuns()
	b.recomputeCardFromRuns()

	result := intersectContainers(a, b)
	assert.Equal(t, kindArray, result.kind)
	assert.Equal(t, 20, result.cardinality())
}
