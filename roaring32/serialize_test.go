package roaring32

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadPortableRoundTrip(t *testing.T) {
	rb := buildBitmap(1, 2, 70000, 1<<20)
	buf := rb.Write(true)

	assert.Equal(t, int(rb.GetSerializedSizeInBytes(true)), len(buf))

	back, err := Read(buf, true)
	require.NoError(t, err)
	assert.True(t, rb.Equals(back))
}

func TestWriteReadNonPortableRoundTrip(t *testing.T) {
	rb := buildBitmap(1, 2, 70000, 1<<20)
	buf := rb.Write(false)

	back, err := Read(buf, false)
	require.NoError(t, err)
	assert.True(t, rb.Equals(back))
}

func TestWriteReadRoundTripEveryContainerKind(t *testing.T) {
	rb := New()
	rb.Add(1) // array
	for v := uint32(70000); v < 70000+5000; v++ {
		rb.Add(v) // forces bitmap
	}
	rb.AddRangeClosed(1<<20, 1<<20+999)
	rb.RunOptimize() // pushes the dense run into a run container

	for _, portable := range []bool{true, false} {
		buf := rb.Write(portable)
		back, err := Read(buf, portable)
		require.NoError(t, err)
		assert.True(t, rb.Equals(back))
	}
}

func TestReadRejectsBadCookie(t *testing.T) {
	rb := buildBitmap(1, 2, 3)
	buf := rb.Write(true)

	_, err := Read(buf, false)
	assert.ErrorIs(t, err, ErrBadCookie)
}

func TestReadRejectsTruncatedBuffer(t *testing.T) {
	rb := buildBitmap(1, 2, 70000)
	buf := rb.Write(true)

	_, err := Read(buf[:len(buf)-1], true)
	assert.Error(t, err)
}

func TestReadSafeEnforcesByteBudget(t *testing.T) {
	rb := buildBitmap(1, 2, 70000)
	buf := rb.Write(true)

	_, err := ReadSafe(buf, true, uint64(len(buf)-1))
	assert.Error(t, err)

	back, err := ReadSafe(buf, true, uint64(len(buf)))
	require.NoError(t, err)
	assert.True(t, rb.Equals(back))
}
