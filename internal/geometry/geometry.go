// Package geometry computes the byte-exact layout of a page before any
// page is actually built. It holds no allocator state; Compute is a pure
// function of the sizes involved, built on the alignment arithmetic in
// internal/memutils.
package geometry

import (
	"unsafe"

	"github.com/cockroachdb/errors"

	"github.com/Hert97/CSD2181-memory-allocator/internal/memutils"
)

// PointerSize is the width, in bytes, of the next-page pointer that prefixes
// every page and of the intrusive next-free-slot pointer stored in every
// free user region.
var PointerSize = int(unsafe.Sizeof(uintptr(0)))

// Inputs is the subset of a Configuration that determines page geometry.
type Inputs struct {
	ObjectSize     int
	ObjectsPerPage int
	Alignment      uint
	LeftPadBytes   int
	HeaderBytes    int
}

// Layout is the derived, immutable-after-construction geometry of every page
// built under a given Inputs.
type Layout struct {
	// LeftAlignBytes is inserted after the page's next-pointer prefix so the
	// first slot's user region satisfies Alignment.
	LeftAlignBytes int
	// InterAlignBytes is inserted between adjacent slots so every
	// subsequent slot's user region also satisfies Alignment. It is never
	// present after the last slot on a page.
	InterAlignBytes int
	// SlotStride is the distance from the start of one slot's header to the
	// start of the next slot's header.
	SlotStride int
	// PageBytes is the total size of one page's backing byte array.
	PageBytes int
	// FirstSlotOffset is the byte offset, from the start of the page, of
	// the first slot's header.
	FirstSlotOffset int
}

// Compute derives a Layout from in, failing with a configuration-invalid
// style error if the geometry cannot be built.
func Compute(in Inputs) (Layout, error) {
	if in.ObjectSize < PointerSize {
		return Layout{}, errors.Newf(
			"geometry: object size %d is smaller than pointer size %d; a free slot must be able to hold a next-pointer",
			in.ObjectSize, PointerSize,
		)
	}
	if in.ObjectsPerPage < 1 {
		return Layout{}, errors.Newf("geometry: objects per page must be >= 1, got %d", in.ObjectsPerPage)
	}
	if in.Alignment > 1 {
		if err := memutils.CheckPow2(in.Alignment, "alignment"); err != nil {
			return Layout{}, errors.Wrap(err, "geometry")
		}
	}

	var leftAlign, interAlign int
	if in.Alignment > 1 {
		prefix := PointerSize + in.HeaderBytes + in.LeftPadBytes
		leftAlign = memutils.PaddingFor(prefix, in.Alignment)

		// A single slot per page has no "next slot" to align; interAlign
		// only has meaning when there is a gap to fill between two slots.
		if in.ObjectsPerPage > 1 {
			interPrefix := in.ObjectSize + in.HeaderBytes + 2*in.LeftPadBytes
			interAlign = memutils.PaddingFor(interPrefix, in.Alignment)
		}
	}

	slotStride := in.HeaderBytes + in.LeftPadBytes + in.ObjectSize + in.LeftPadBytes + interAlign
	pageBytes := PointerSize + leftAlign + in.ObjectsPerPage*slotStride - interAlign

	return Layout{
		LeftAlignBytes:  leftAlign,
		InterAlignBytes: interAlign,
		SlotStride:      slotStride,
		PageBytes:       pageBytes,
		FirstSlotOffset: PointerSize + leftAlign,
	}, nil
}
