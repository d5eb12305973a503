package alloc

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/exp/slog"

	"github.com/Hert97/CSD2181-memory-allocator/internal/header"
	"github.com/Hert97/CSD2181-memory-allocator/internal/heap"
)

// HeaderKind selects which per-slot header variant a pool maintains.
// It mirrors internal/header.Kind one-for-one; it exists as its own type so
// callers of this package never need to import an internal package.
type HeaderKind int

const (
	HeaderNone HeaderKind = iota
	HeaderBasic
	HeaderExtended
	HeaderExternal
)

func (k HeaderKind) String() string {
	switch k {
	case HeaderNone:
		return "none"
	case HeaderBasic:
		return "basic"
	case HeaderExtended:
		return "extended"
	case HeaderExternal:
		return "external"
	default:
		return "unknown"
	}
}

func (k HeaderKind) internal() header.Kind {
	switch k {
	case HeaderBasic:
		return header.KindBasic
	case HeaderExtended:
		return header.KindExtended
	case HeaderExternal:
		return header.KindExternal
	default:
		return header.KindNone
	}
}

// Configuration is the full set of knobs a pool is built with. ObjectSize
// is supplied separately to New, since it is the one parameter every
// Configuration value shares regardless of header or padding choices.
type Configuration struct {
	// ObjectsPerPage is how many slots a freshly built page holds. Must be
	// at least 1.
	ObjectsPerPage int
	// MaxPages caps how many live pages the pool may hold at once. Zero
	// means unbounded. Ignored when UseSystemHeap is set.
	MaxPages int
	// Alignment is the byte alignment every user region's address must
	// satisfy. Zero or one means no alignment is enforced.
	Alignment uint
	// LeftPadBytes is how many pad bytes flank each user region on both
	// sides, used by debug-mode corruption checks and ValidatePadding.
	LeftPadBytes int
	// HeaderKind selects the per-slot header variant.
	HeaderKind HeaderKind
	// UserDefinedBytes sizes the free-form bytes at the front of the header,
	// ahead of its counters and flag, when HeaderKind is HeaderExtended.
	// Ignored otherwise.
	UserDefinedBytes int
	// UseSystemHeap bypasses pages, the free list, and headers entirely:
	// every Acquire and Release goes straight to Heap.
	UseSystemHeap bool
	// DebugChecks turns on the double-free, boundary, and corruption
	// checks in Release. SetDebugChecks can flip this after construction.
	DebugChecks bool
	// Heap supplies the raw byte storage pages (or, in bypass mode,
	// individual objects) are carved from. Defaults to heap.GoHeap.
	Heap heap.Heap
	// Logger receives debug-level tracing of Acquire, Release, and page
	// lifecycle events. Defaults to a discard logger.
	Logger *slog.Logger
}

// Validate reports whether c's fields are internally consistent. It
// satisfies internal/memutils.Validatable, so New runs it through
// memutils.DebugValidate rather than calling it directly.
func (c Configuration) Validate() error {
	if !c.UseSystemHeap && c.ObjectsPerPage < 1 {
		return errors.Wrapf(ErrConfigurationInvalid, "objectsPerPage must be at least 1, got %d", c.ObjectsPerPage)
	}
	if c.MaxPages < 0 {
		return errors.Wrapf(ErrConfigurationInvalid, "maxPages must not be negative, got %d", c.MaxPages)
	}
	if c.LeftPadBytes < 0 {
		return errors.Wrapf(ErrConfigurationInvalid, "leftPadBytes must not be negative, got %d", c.LeftPadBytes)
	}
	if c.HeaderKind < HeaderNone || c.HeaderKind > HeaderExternal {
		return errors.Wrapf(ErrConfigurationInvalid, "unknown header kind %d", c.HeaderKind)
	}
	return nil
}
