// Package header implements the four per-slot header variants the pool
// allocator can be configured with. Each variant is responsible only for
// the bytes immediately in front of a slot's user region; it knows nothing
// about pages, padding, or the free list. The codec owns header layout,
// the caller owns when to invoke it.
package header

import (
	"github.com/cockroachdb/errors"
)

// Kind selects which per-slot header variant a Codec implements.
type Kind int

const (
	// KindNone stores no bookkeeping next to the slot at all.
	KindNone Kind = iota
	// KindBasic stores a 4-byte allocation counter and a 1-byte in-use flag.
	KindBasic
	// KindExtended stores caller-defined bytes, a 2-byte use counter, a
	// 4-byte allocation counter, and a 1-byte in-use flag.
	KindExtended
	// KindExternal stores a single pointer-sized slot referencing a
	// separately heap-allocated descriptor.
	KindExternal
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindBasic:
		return "basic"
	case KindExtended:
		return "extended"
	case KindExternal:
		return "external"
	default:
		return "unknown header kind"
	}
}

// Params carries the sub-parameters recognized by KindExtended. It is
// ignored by the other variants.
type Params struct {
	// UserDefinedBytes is the number of caller-opaque bytes carried at the
	// front of an extended header, ahead of the allocator's own bookkeeping.
	UserDefinedBytes int
}

// Codec reads and writes one slot's header region. slotHeader is always exactly
// Size() bytes, sliced directly out of the page's backing array by the
// caller.
type Codec interface {
	// Kind identifies which variant this Codec implements.
	Kind() Kind
	// Size returns the number of bytes this variant occupies per slot.
	Size() int
	// OnAcquire marks the slot in-use and records allocationNumber (and, for
	// KindExternal, label) in the header.
	OnAcquire(slotHeader []byte, slotUserRegion []byte, allocationNumber uint32, label string)
	// OnRelease marks the slot not-in-use and clears the allocation
	// counter. The use counter of an extended header is preserved.
	OnRelease(slotHeader []byte, slotUserRegion []byte)
	// IsInUse reports whether the slot is currently held by a caller.
	IsInUse(slotHeader []byte, slotUserRegion []byte) bool
	// AllocationNumber returns the most recent allocation counter value
	// written by OnAcquire. KindNone always returns 0.
	AllocationNumber(slotHeader []byte, slotUserRegion []byte) uint32
	// UseCount returns the cumulative use counter maintained by
	// KindExtended. Other variants always return 0.
	UseCount(slotHeader []byte, slotUserRegion []byte) uint16
}

// New constructs the Codec for kind. Only KindExtended consults params.
func New(kind Kind, params Params) (Codec, error) {
	switch kind {
	case KindNone:
		return noneCodec{}, nil
	case KindBasic:
		return &basicCodec{}, nil
	case KindExtended:
		if params.UserDefinedBytes < 0 {
			return nil, errors.Newf("header: UserDefinedBytes must be >= 0, got %d", params.UserDefinedBytes)
		}
		return &extendedCodec{userDefinedBytes: params.UserDefinedBytes}, nil
	case KindExternal:
		return newExternalCodec(), nil
	default:
		return nil, errors.Newf("header: unrecognized header kind %d", kind)
	}
}
