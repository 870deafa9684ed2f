package roaring64

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatsCountsOuterEntries(t *testing.T) {
	rb := buildBitmap(1, 8_000_000_000, 16_000_000_000)

	s := rb.Stats()
	assert.Equal(t, 3, s.OuterEntries)
	assert.Equal(t, uint64(3), s.Cardinality)
	assert.False(t, s.Full)
	assert.True(t, s.Bytes > 0)
}

func TestStatsStringIsHumanReadable(t *testing.T) {
	rb := buildBitmap(1, 2, 3)

	str := rb.String()
	assert.True(t, strings.Contains(str, "outer_entries=3"))
	assert.True(t, strings.Contains(str, "cardinality=3"))
}
