package roaring64

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadRoundTrip(t *testing.T) {
	rb := buildBitmap(1, 2, 3, 4_000_000_000, 8_000_000_000)

	data := rb.Write()
	assert.Equal(t, int(rb.GetSerializedSizeInBytes()), len(data))

	back, err := Read(data)
	require.NoError(t, err)
	assert.Equal(t, rb.ToSlice(), back.ToSlice())
}

func TestWriteReadRoundTripAfterRunOptimize(t *testing.T) {
	rb := New()
	for v := uint64(0); v < 5000; v++ {
		rb.Add(v)
	}
	rb.Add(8_000_000_000)
	rb.RunOptimize()

	data := rb.Write()
	back, err := Read(data)
	require.NoError(t, err)
	assert.Equal(t, rb.ToSlice(), back.ToSlice())
}

func TestReadRejectsTruncatedBuffer(t *testing.T) {
	rb := buildBitmap(1, 4_000_000_000)
	data := rb.Write()

	_, err := Read(data[:len(data)-1])
	assert.Error(t, err)
}

func TestReadSafeEnforcesByteBudget(t *testing.T) {
	rb := buildBitmap(1, 4_000_000_000)
	data := rb.Write()

	_, err := ReadSafe(data, uint64(len(data)-1))
	assert.Error(t, err)
}

func TestWriteFrozenRoundTrip(t *testing.T) {
	rb := buildBitmap(1, 2, 3, 4_000_000_000, 8_000_000_000)

	buf := rb.WriteFrozen()
	back, err := FrozenView(buf)
	require.NoError(t, err)
	assert.Equal(t, rb.ToSlice(), back.ToSlice())
}

func TestGetFrozenSizeInBytesMatchesWriteFrozen(t *testing.T) {
	rb := buildBitmap(1, 2, 3, 4_000_000_000, 8_000_000_000)

	assert.Equal(t, int(rb.GetFrozenSizeInBytes()), len(rb.WriteFrozen()))
}

func TestWriteFrozenEmptyBitmap(t *testing.T) {
	rb := New()
	buf := rb.WriteFrozen()

	back, err := FrozenView(buf)
	require.NoError(t, err)
	assert.True(t, back.IsEmpty())
}

func TestFrozenViewRejectsShortBuffer(t *testing.T) {
	_, err := FrozenView([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestWriteReadRoundTripFullWithExceptions(t *testing.T) {
	rb := New()
	rb.AddRangeClosed(0, math.MaxUint64)
	rb.Remove(12345)
	rb.Remove(1 << 40)

	data := rb.Write()
	assert.Equal(t, int(rb.GetSerializedSizeInBytes()), len(data))

	back, err := Read(data)
	require.NoError(t, err)
	assert.True(t, rb.Equals(back))
	assert.False(t, back.Contains(12345))
	assert.True(t, back.Contains(12344))
	assert.True(t, back.Contains(1<<50))

	frozen := rb.WriteFrozen()
	view, err := FrozenView(frozen)
	require.NoError(t, err)
	assert.True(t, rb.Equals(view))
}
