package roaring32

import (
	"encoding/binary"
	"errors"

	"github.com/scampagna/roaring/internal/wordset"
)

// This file implements the wire formats: a portable
// format that carries a per-container cardinality field, and a tighter
// non-portable format that omits it. Both layouts, cookies included, are
// this package's own: neither is the published Roaring interchange
// format, and other Roaring implementations cannot read them.
// Deserialization is a hard error on truncated or malformed input; it
// never reads past the supplied buffer.

const (
	portableCookie    uint32 = 0x72613332 // "ra32"
	nonPortableCookie uint32 = 0x61336e70 // "a3np"
)

// ErrShortBuffer is returned when a buffer ends before a deserialization
// routine has consumed every field it needs, and, in the portable
// format, when a container's declared cardinality does not match the
// number of values its body decodes to.
var ErrShortBuffer = errors.New("roaring32: buffer too short")

// ErrBadCookie is returned when a buffer does not begin with the
// expected format cookie.
var ErrBadCookie = errors.New("roaring32: unrecognized cookie")

// GetSerializedSizeInBytes returns the exact size, in bytes, that Write
// would produce for the given format.
func (rb *Bitmap) GetSerializedSizeInBytes(portable bool) uint64 {
	var n uint64 = 4 + 4 // cookie + key count
	for _, c := range rb.containers {
		if portable {
			n += 2 + 1 + 4 // key, kind, cardinality
		} else {
			n += 2 + 1 // key, kind
		}
		n += uint64(containerBodySize(c))
	}
	return n
}

func containerBodySize(c *container) uint64 {
	switch c.kind {
	case kindArray:
		return 2 + uint64(len(c.array))*2
	case kindBitmap:
		return uint64(bitmapBytesConst)
	case kindRun:
		return 2 + uint64(len(c.runs))*4
	}
	return 0
}

// Write serializes rb and returns the encoded bytes. The portable format
// carries an explicit per-container cardinality field that the reader
// checks against the decoded container body; the non-portable
// format recomputes cardinality from the body while reading, trading
// that redundancy check for a smaller encoding.
func (rb *Bitmap) Write(portable bool) []byte {
	buf := make([]byte, rb.GetSerializedSizeInBytes(portable))
	pos := 0
	if portable {
		binary.LittleEndian.PutUint32(buf[pos:], portableCookie)
	} else {
		binary.LittleEndian.PutUint32(buf[pos:], nonPortableCookie)
	}
	pos += 4
	binary.LittleEndian.PutUint32(buf[pos:], uint32(len(rb.keys)))
	pos += 4

	for i, c := range rb.containers {
		binary.LittleEndian.PutUint16(buf[pos:], rb.keys[i])
		pos += 2
		buf[pos] = byte(c.kind)
		pos++
		if portable {
			binary.LittleEndian.PutUint32(buf[pos:], uint32(c.card))
			pos += 4
		}
		pos += writeContainerBody(buf[pos:], c)
	}
	return buf
}

func writeContainerBody(buf []byte, c *container) int {
	switch c.kind {
	case kindArray:
		binary.LittleEndian.PutUint16(buf, uint16(len(c.array)))
		for i, v := range c.array {
			binary.LittleEndian.PutUint16(buf[2+i*2:], v)
		}
		return 2 + len(c.array)*2
	case kindBitmap:
		words := c.bmp.WordsSlice()
		for i, w := range words {
			binary.LittleEndian.PutUint64(buf[i*8:], w)
		}
		return bitmapBytesConst
	case kindRun:
		binary.LittleEndian.PutUint16(buf, uint16(len(c.runs)))
		p := 2
		for _, r := range c.runs {
			binary.LittleEndian.PutUint16(buf[p:], r.start)
			binary.LittleEndian.PutUint16(buf[p+2:], uint16(r.length()-1))
			p += 4
		}
		return p
	}
	return 0
}

// Read deserializes a Bitmap previously produced by Write. portable must
// match the value passed to Write.
func Read(data []byte, portable bool) (*Bitmap, error) {
	return readMax(data, portable, uint64(len(data)))
}

// ReadSafe deserializes a Bitmap like Read, but additionally enforces
// that no more than maxBytes of data is consumed, failing rather than
// trusting a length field embedded in an untrusted buffer.
func ReadSafe(data []byte, portable bool, maxBytes uint64) (*Bitmap, error) {
	return readMax(data, portable, maxBytes)
}

func readMax(data []byte, portable bool, maxBytes uint64) (*Bitmap, error) {
	if uint64(len(data)) > maxBytes {
		data = data[:maxBytes]
	}
	if len(data) < 8 {
		return nil, ErrShortBuffer
	}
	cookie := binary.LittleEndian.Uint32(data)
	wantCookie := nonPortableCookie
	if portable {
		wantCookie = portableCookie
	}
	if cookie != wantCookie {
		return nil, ErrBadCookie
	}
	pos := 4
	keyCount := int(binary.LittleEndian.Uint32(data[pos:]))
	pos += 4

	capHint := keyCount
	if most := (len(data) - pos) / 3; capHint > most {
		capHint = most
	}
	rb := &Bitmap{
		keys:       make([]uint16, 0, capHint),
		containers: make([]*container, 0, capHint),
	}
	for i := 0; i < keyCount; i++ {
		if len(data)-pos < 3 {
			return nil, ErrShortBuffer
		}
		key := binary.LittleEndian.Uint16(data[pos:])
		pos += 2
		k := kind(data[pos])
		pos++
		var declaredCard int
		if portable {
			if len(data)-pos < 4 {
				return nil, ErrShortBuffer
			}
			declaredCard = int(binary.LittleEndian.Uint32(data[pos:]))
			pos += 4
		}

		c, n, err := readContainerBody(data[pos:], k)
		if err != nil {
			return nil, err
		}
		pos += n
		if portable && c.card != declaredCard {
			return nil, ErrShortBuffer
		}
		rb.keys = append(rb.keys, key)
		rb.containers = append(rb.containers, c)
	}
	return rb, nil
}

func readContainerBody(data []byte, k kind) (*container, int, error) {
	switch k {
	case kindArray:
		if len(data) < 2 {
			return nil, 0, ErrShortBuffer
		}
		count := int(binary.LittleEndian.Uint16(data))
		need := 2 + count*2
		if len(data) < need {
			return nil, 0, ErrShortBuffer
		}
		c := newArrayContainer()
		c.array = make([]uint16, count)
		for i := 0; i < count; i++ {
			c.array[i] = binary.LittleEndian.Uint16(data[2+i*2:])
		}
		c.card = count
		return c, need, nil
	case kindBitmap:
		if len(data) < bitmapBytesConst {
			return nil, 0, ErrShortBuffer
		}
		words := make([]uint64, wordset.Words)
		for i := range words {
			words[i] = binary.LittleEndian.Uint64(data[i*8:])
		}
		c := newBitmapContainer()
		c.bmp.FromWords(words)
		c.card = c.bmp.Count()
		return c, bitmapBytesConst, nil
	case kindRun:
		if len(data) < 2 {
			return nil, 0, ErrShortBuffer
		}
		runCount := int(binary.LittleEndian.Uint16(data))
		need := 2 + runCount*4
		if len(data) < need {
			return nil, 0, ErrShortBuffer
		}
		c := newRunContainer()
		c.runs = make([]runInterval, runCount)
		p := 2
		for i := 0; i < runCount; i++ {
			start := binary.LittleEndian.Uint16(data[p:])
			length := binary.LittleEndian.Uint16(data[p+2:])
			c.runs[i] = runInterval{start: start, end: start + length}
			p += 4
		}
		c.recomputeCardFromRuns()
		return c, need, nil
	}
	return nil, 0, ErrBadCookie
}
