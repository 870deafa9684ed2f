package roaring64

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddRangeClosedSingleOuterKey(t *testing.T) {
	rb := New()
	rb.AddRangeClosed(5, 10)

	card, _ := rb.CardinalityNoThrow()
	assert.Equal(t, uint64(6), card)
	assert.True(t, rb.Contains(5))
	assert.True(t, rb.Contains(10))
	assert.False(t, rb.Contains(11))
}

func TestAddRangeClosedSpansOuterKeys(t *testing.T) {
	const lo = 4_000_000_000
	const hi = 8_000_000_003

	rb := New()
	rb.AddRangeClosed(lo, hi)

	assert.True(t, rb.Contains(lo))
	assert.True(t, rb.Contains(hi))
	assert.False(t, rb.Contains(lo-1))
	assert.False(t, rb.Contains(hi+1))

	card, _ := rb.CardinalityNoThrow()
	assert.Equal(t, uint64(hi-lo+1), card)
}

func TestRemoveRangeClosedDropsEmptyOuterEntries(t *testing.T) {
	rb := New()
	rb.Add(1 << 33) // outer key 2
	rb.RemoveRangeClosed(0, (1<<33)+1)

	assert.True(t, rb.IsEmpty())
	assert.Equal(t, 0, len(rb.keys))
}

func TestFlipRangeClosedSpansOuterKeysPreservesMiddlePartial(t *testing.T) {
	const midOuter = uint64(1) << 32 // first value of outer key 1

	rb := New()
	rb.Add(midOuter + 5) // a single value inside the middle outer entry

	lo := uint64(0)
	hi := (uint64(2) << 32) + 10 // spans outer keys 0, 1, 2
	rb.FlipRangeClosed(lo, hi)

	// Everything in the middle outer entry except midOuter+5 should now be
	// set, and midOuter+5 itself should have been cleared.
	assert.False(t, rb.Contains(midOuter+5))
	assert.True(t, rb.Contains(midOuter))
	assert.True(t, rb.Contains(midOuter+6))
}

func TestFlipRangeClosedEmptyMiddleBecomesFull(t *testing.T) {
	lo := uint64(0)
	hi := (uint64(2) << 32) + 10

	rb := New()
	rb.FlipRangeClosed(lo, hi)

	mid := uint64(1) << 32
	assert.True(t, rb.Contains(mid))
	assert.True(t, rb.Contains(mid+1000))
}

func TestRangeOpsNoOpWhenLoGreaterThanHi(t *testing.T) {
	rb := New()
	rb.Add(42)
	rb.AddRangeClosed(10, 5)
	rb.RemoveRangeClosed(10, 5)
	rb.FlipRangeClosed(10, 5)

	assert.True(t, rb.Contains(42))
	card, _ := rb.CardinalityNoThrow()
	assert.Equal(t, uint64(1), card)
}

func TestAddRangeHalfOpen(t *testing.T) {
	rb := New()
	rb.AddRange(5, 10)

	assert.True(t, rb.Contains(5))
	assert.True(t, rb.Contains(9))
	assert.False(t, rb.Contains(10))
}

func TestAddRangeClosedWholeDomainBecomesFull(t *testing.T) {
	rb := New()
	rb.AddRangeClosed(0, math.MaxUint64)

	assert.True(t, rb.IsFull())
	card, full := rb.CardinalityNoThrow()
	assert.Equal(t, uint64(0), card)
	assert.True(t, full)
	assert.True(t, rb.Contains(0))
	assert.True(t, rb.Contains(math.MaxUint64))
	assert.True(t, rb.Contains(1<<40))
}

func TestAddRangeClosedWholeDomainSerializeRoundTrip(t *testing.T) {
	rb := New()
	rb.AddRangeClosed(0, math.MaxUint64)

	data := rb.Write()
	assert.Equal(t, uint64(16), rb.GetSerializedSizeInBytes())

	back, err := Read(data)
	assert.NoError(t, err)
	assert.True(t, back.IsFull())

	frozen := rb.WriteFrozen()
	view, err := FrozenView(frozen)
	assert.NoError(t, err)
	assert.True(t, view.IsFull())
}

func TestRemoveRangeClosedWholeDomainRestoresEmpty(t *testing.T) {
	rb := New()
	rb.AddRangeClosed(0, math.MaxUint64)
	rb.RemoveRangeClosed(0, math.MaxUint64)

	assert.False(t, rb.IsFull())
	assert.True(t, rb.IsEmpty())
	card, full := rb.CardinalityNoThrow()
	assert.Equal(t, uint64(0), card)
	assert.False(t, full)
}

func TestFlipRangeClosedWholeDomainTogglesFull(t *testing.T) {
	rb := New()
	rb.FlipRangeClosed(0, math.MaxUint64)
	assert.True(t, rb.IsFull())

	rb.FlipRangeClosed(0, math.MaxUint64)
	assert.False(t, rb.IsFull())
	assert.True(t, rb.IsEmpty())
}

func TestRemoveRangeClosedFromFullLeavesComplement(t *testing.T) {
	rb := New()
	rb.AddRangeClosed(0, math.MaxUint64)
	rb.RemoveRangeClosed(10, 20)

	assert.False(t, rb.IsFull())
	assert.False(t, rb.Contains(10))
	assert.False(t, rb.Contains(20))
	assert.True(t, rb.Contains(9))
	assert.True(t, rb.Contains(21))
	assert.True(t, rb.Contains(1<<50))
	card, full := rb.CardinalityNoThrow()
	assert.False(t, full)
	assert.Equal(t, ^uint64(10), card)

	rb.AddRangeClosed(10, 20)
	assert.True(t, rb.IsFull())
}

func TestFlipRangeClosedOnFullPunchesHole(t *testing.T) {
	rb := New()
	rb.AddRangeClosed(0, math.MaxUint64)
	rb.FlipRangeClosed(100, 200)

	assert.False(t, rb.Contains(150))
	assert.True(t, rb.Contains(99))
	assert.True(t, rb.Contains(201))

	rb.FlipRangeClosed(100, 200)
	assert.True(t, rb.IsFull())
}
