package roaring32

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// Stats summarizes the container makeup of a Bitmap, for debugging and
// capacity planning.
type Stats struct {
	Containers       int
	ArrayContainers  int
	BitmapContainers int
	RunContainers    int
	Cardinality      uint64
	SerializedBytes  uint64
}

// Stats computes a snapshot of rb's current container makeup.
func (rb *Bitmap) Stats() Stats {
	var s Stats
	s.Containers = len(rb.containers)
	for _, c := range rb.containers {
		switch c.kind {
		case kindArray:
			s.ArrayContainers++
		case kindBitmap:
			s.BitmapContainers++
		case kindRun:
			s.RunContainers++
		}
		s.Cardinality += uint64(c.cardinality())
	}
	s.SerializedBytes = rb.GetSerializedSizeInBytes(true)
	return s
}

// String renders the stats with human-readable byte counts.
func (s Stats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "containers=%d (array=%d bitmap=%d run=%d) cardinality=%d size=%s",
		s.Containers, s.ArrayContainers, s.BitmapContainers, s.RunContainers,
		s.Cardinality, humanize.Bytes(s.SerializedBytes))
	return b.String()
}

// String renders rb's container makeup, for debugging and logging.
func (rb *Bitmap) String() string {
	return rb.Stats().String()
}
