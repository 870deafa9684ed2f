package roaring64

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// Stats summarizes the outer-map makeup of a Bitmap.
type Stats struct {
	OuterEntries int
	Cardinality  uint64
	Full         bool
	Bytes        uint64
}

// Stats computes a snapshot of rb's current outer-map makeup.
func (rb *Bitmap) Stats() Stats {
	card, full := rb.CardinalityNoThrow()
	return Stats{
		OuterEntries: len(rb.keys),
		Cardinality:  card,
		Full:         full,
		Bytes:        rb.GetSerializedSizeInBytes(),
	}
}

// String renders the stats with human-readable byte counts.
func (s Stats) String() string {
	var b strings.Builder
	if s.Full {
		fmt.Fprintf(&b, "outer_entries=%d cardinality=FULL size=%s", s.OuterEntries, humanize.Bytes(s.Bytes))
		return b.String()
	}
	fmt.Fprintf(&b, "outer_entries=%d cardinality=%d size=%s", s.OuterEntries, s.Cardinality, humanize.Bytes(s.Bytes))
	return b.String()
}

// String renders rb's outer-map makeup, for debugging and logging.
func (rb *Bitmap) String() string {
	return rb.Stats().String()
}
