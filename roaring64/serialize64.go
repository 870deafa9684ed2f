package roaring64

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/scampagna/roaring/roaring32"
)

// This file implements the 64-bit serialized format and the frozen
// layout: uint64 outer map size, then for each entry a uint32
// outer key followed by the inner 32-bit Roaring's own
// serialized body (portable format).
//
// A full background (bitmap64.go) has no per-outer-key representation to
// serialize, so it is written as a reserved leading outer-count value,
// fullSentinelOuterCount, that no real bitmap can legitimately produce
// (an actual outer count is at most 2^32), followed by the real override
// count and the override entries in the ordinary layout.

// ErrShortBuffer is returned when a buffer ends before a deserialization
// routine has consumed every field it needs.
var ErrShortBuffer = errors.New("roaring64: buffer too short")

const fullSentinelOuterCount = math.MaxUint64

// GetSerializedSizeInBytes returns the exact size, in bytes, that Write
// would produce.
func (rb *Bitmap) GetSerializedSizeInBytes() uint64 {
	n := uint64(8)
	if rb.full {
		n += 8
	}
	for _, c := range rb.containers {
		n += 4 + c.GetSerializedSizeInBytes(true)
	}
	return n
}

// Write serializes rb using the 64-bit format and returns the encoded
// bytes.
func (rb *Bitmap) Write() []byte {
	buf := make([]byte, rb.GetSerializedSizeInBytes())
	pos := 0
	if rb.full {
		binary.LittleEndian.PutUint64(buf, fullSentinelOuterCount)
		pos += 8
	}
	binary.LittleEndian.PutUint64(buf[pos:], uint64(len(rb.keys)))
	pos += 8
	for i, c := range rb.containers {
		binary.LittleEndian.PutUint32(buf[pos:], rb.keys[i])
		pos += 4
		body := c.Write(true)
		copy(buf[pos:], body)
		pos += len(body)
	}
	return buf
}

// Read deserializes a Bitmap previously produced by Write, honoring a
// byte budget: running out of data mid-parse is a hard error.
func Read(data []byte) (*Bitmap, error) {
	return ReadSafe(data, uint64(len(data)))
}

// ReadSafe deserializes a Bitmap like Read, refusing to consume more
// than maxBytes even if a length field embedded in the buffer would
// suggest otherwise.
func ReadSafe(data []byte, maxBytes uint64) (*Bitmap, error) {
	if uint64(len(data)) > maxBytes {
		data = data[:maxBytes]
	}
	if len(data) < 8 {
		return nil, ErrShortBuffer
	}
	outerCount := binary.LittleEndian.Uint64(data)
	pos := 8

	full := false
	if outerCount == fullSentinelOuterCount {
		full = true
		if len(data)-pos < 8 {
			return nil, ErrShortBuffer
		}
		outerCount = binary.LittleEndian.Uint64(data[pos:])
		pos += 8
	}

	capHint := outerCount
	if most := uint64(len(data)-pos) / 4; capHint > most {
		capHint = most
	}
	rb := &Bitmap{
		full:       full,
		keys:       make([]uint32, 0, capHint),
		containers: make([]*roaring32.Bitmap, 0, capHint),
	}
	for i := uint64(0); i < outerCount; i++ {
		if len(data)-pos < 4 {
			return nil, ErrShortBuffer
		}
		key := binary.LittleEndian.Uint32(data[pos:])
		pos += 4

		inner, err := roaring32.Read(data[pos:], true)
		if err != nil {
			return nil, err
		}
		pos += int(inner.GetSerializedSizeInBytes(true))
		rb.keys = append(rb.keys, key)
		rb.containers = append(rb.containers, inner)
	}
	return rb, nil
}

// frozenAlignment is the byte alignment the frozen view promises its
// per-entry bodies land on, so a zero-copy reader can reinterpret them
// without a realignment copy.
const frozenAlignment = 32

// WriteFrozen serializes rb into the frozen layout: uint64 outer count,
// then for each entry, padding so that (size field, key field) lands
// 32-byte aligned, followed by size, key, and the inner Roaring's
// portable body.
func (rb *Bitmap) WriteFrozen() []byte {
	header := 8
	if rb.full {
		header = 16
	}
	// First pass: compute the total size, including padding.
	pos := header
	bodies := make([][]byte, len(rb.containers))
	for i, c := range rb.containers {
		bodies[i] = c.Write(true)
		pad := padFor(pos)
		pos += pad + 4 + 4 + len(bodies[i])
	}

	buf := make([]byte, pos)
	if rb.full {
		binary.LittleEndian.PutUint64(buf, fullSentinelOuterCount)
		binary.LittleEndian.PutUint64(buf[8:], uint64(len(rb.keys)))
	} else {
		binary.LittleEndian.PutUint64(buf, uint64(len(rb.keys)))
	}
	pos = header
	for i, body := range bodies {
		pad := padFor(pos)
		pos += pad
		binary.LittleEndian.PutUint32(buf[pos:], uint32(len(body)))
		pos += 4
		binary.LittleEndian.PutUint32(buf[pos:], rb.keys[i])
		pos += 4
		copy(buf[pos:], body)
		pos += len(body)
	}
	return buf
}

// GetFrozenSizeInBytes returns the exact size, in bytes, that WriteFrozen
// would produce.
func (rb *Bitmap) GetFrozenSizeInBytes() uint64 {
	pos := 8
	if rb.full {
		pos = 16
	}
	for _, c := range rb.containers {
		pad := padFor(pos)
		pos += pad + 4 + 4 + int(c.GetSerializedSizeInBytes(true))
	}
	return uint64(pos)
}

// padFor returns the number of padding bytes needed so that pos+padding
// leaves (size field, key field) — 8 bytes — ending 32-byte aligned,
// i.e. pos+padding+8 is a multiple of frozenAlignment.
func padFor(pos int) int {
	want := (pos + 8) % frozenAlignment
	if want == 0 {
		return 0
	}
	return frozenAlignment - want
}

// FrozenView decodes a buffer previously produced by WriteFrozen. Every
// inner body is copied out of buf into a new Bitmap, so the result does
// not borrow buf and is an ordinary, mutable Bitmap.
func FrozenView(buf []byte) (*Bitmap, error) {
	if len(buf) < 8 {
		return nil, ErrShortBuffer
	}
	outerCount := binary.LittleEndian.Uint64(buf)
	pos := 8

	full := false
	if outerCount == fullSentinelOuterCount {
		full = true
		if len(buf)-pos < 8 {
			return nil, ErrShortBuffer
		}
		outerCount = binary.LittleEndian.Uint64(buf[pos:])
		pos += 8
	}

	capHint := outerCount
	if most := uint64(len(buf)-pos) / 8; capHint > most {
		capHint = most
	}
	rb := &Bitmap{
		full:       full,
		keys:       make([]uint32, 0, capHint),
		containers: make([]*roaring32.Bitmap, 0, capHint),
	}
	for i := uint64(0); i < outerCount; i++ {
		pos += padFor(pos)
		if len(buf)-pos < 8 {
			return nil, ErrShortBuffer
		}
		size := binary.LittleEndian.Uint32(buf[pos:])
		pos += 4
		key := binary.LittleEndian.Uint32(buf[pos:])
		pos += 4
		if uint32(len(buf)-pos) < size {
			return nil, ErrShortBuffer
		}
		inner, err := roaring32.Read(buf[pos:pos+int(size)], true)
		if err != nil {
			return nil, err
		}
		pos += int(size)
		rb.keys = append(rb.keys, key)
		rb.containers = append(rb.containers, inner)
	}
	return rb, nil
}
