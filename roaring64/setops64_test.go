package roaring64

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInPlaceOrAndAndNotXor(t *testing.T) {
	a := buildBitmap(1, 2, 4_000_000_000)
	b := buildBitmap(2, 3, 8_000_000_000)

	union := a.Clone()
	union.Or(b)
	assert.Equal(t, []uint64{1, 2, 3, 4_000_000_000, 8_000_000_000}, union.ToSlice())

	inter := a.Clone()
	inter.And(b)
	assert.Equal(t, []uint64{2}, inter.ToSlice())

	diff := a.Clone()
	diff.AndNot(b)
	assert.Equal(t, []uint64{1, 4_000_000_000}, diff.ToSlice())

	xor := a.Clone()
	xor.Xor(b)
	assert.Equal(t, []uint64{1, 3, 4_000_000_000, 8_000_000_000}, xor.ToSlice())

	// operands must be untouched
	assert.Equal(t, []uint64{1, 2, 4_000_000_000}, a.ToSlice())
	assert.Equal(t, []uint64{2, 3, 8_000_000_000}, b.ToSlice())
}

func TestSelfAliasShortcuts(t *testing.T) {
	a := buildBitmap(1, 2, 3)

	a.Or(a)
	assert.Equal(t, []uint64{1, 2, 3}, a.ToSlice())

	a.And(a)
	assert.Equal(t, []uint64{1, 2, 3}, a.ToSlice())

	a.AndNot(a)
	assert.True(t, a.IsEmpty())

	b := buildBitmap(1, 2, 3)
	b.Xor(b)
	assert.True(t, b.IsEmpty())
}

func TestPackageLevelOpsDoNotMutateInputs(t *testing.T) {
	a := buildBitmap(1, 4_000_000_000)
	b := buildBitmap(4_000_000_000, 8_000_000_000)

	_ = Or(a, b)
	_ = And(a, b)
	_ = AndNot(a, b)
	_ = Xor(a, b)

	assert.Equal(t, []uint64{1, 4_000_000_000}, a.ToSlice())
	assert.Equal(t, []uint64{4_000_000_000, 8_000_000_000}, b.ToSlice())
}

func TestCardinalityHelpersMatchMaterialized(t *testing.T) {
	a := buildBitmap(1, 2, 4_000_000_000)
	b := buildBitmap(2, 3, 8_000_000_000)

	assert.Equal(t, uint64(5), OrCardinality(a, b))
	assert.Equal(t, uint64(1), AndCardinality(a, b))
	assert.Equal(t, uint64(4), XorCardinality(a, b))
}

func TestInclusionExclusionLaw64(t *testing.T) {
	a := buildBitmap(1, 2, 4_000_000_000, 8_000_000_000)
	b := buildBitmap(2, 3, 8_000_000_000, 12_000_000_000)

	ac, _ := a.CardinalityNoThrow()
	bc, _ := b.CardinalityNoThrow()
	union := OrCardinality(a, b)
	inter := AndCardinality(a, b)

	assert.Equal(t, ac+bc, union+inter)
}

func TestUnionIdempotent64(t *testing.T) {
	a := buildBitmap(1, 2, 4_000_000_000)
	assert.Equal(t, a.ToSlice(), Or(a, a).ToSlice())
}
