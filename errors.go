package alloc

import (
	"unsafe"

	"github.com/cockroachdb/errors"
)

// ErrorKind tags the family a failure belongs to, independent of the
// message text wrapped around it. Callers that need to branch on failure
// category should use errors.Is against the matching sentinel below, or
// call KindOf.
type ErrorKind int

const (
	// KindUnknown is returned by KindOf when an error does not match any
	// sentinel this package defines.
	KindUnknown ErrorKind = iota
	KindOutOfMemory
	KindNoPages
	KindMultipleFree
	KindBadBoundary
	KindCorruptedBlock
	KindConfigurationInvalid
)

func (k ErrorKind) String() string {
	switch k {
	case KindOutOfMemory:
		return "out-of-memory"
	case KindNoPages:
		return "no-pages"
	case KindMultipleFree:
		return "multiple-free"
	case KindBadBoundary:
		return "bad-boundary"
	case KindCorruptedBlock:
		return "corrupted-block"
	case KindConfigurationInvalid:
		return "configuration-invalid"
	default:
		return "unknown"
	}
}

var (
	// ErrOutOfMemory is the cause of a failed Acquire when the collaborating
	// Heap refuses to hand back bytes.
	ErrOutOfMemory = errors.New("alloc: out of memory")
	// ErrNoPages is the cause of a failed Acquire when the free list is
	// empty and the page count is already at the configured cap.
	ErrNoPages = errors.New("alloc: no pages available")
	// ErrMultipleFree is the cause of a failed Release when the argument is
	// already present on the free list.
	ErrMultipleFree = errors.New("alloc: object released more than once")
	// ErrBadBoundary is the cause of a failed Release when the argument
	// does not land on a valid slot boundary inside any live page.
	ErrBadBoundary = errors.New("alloc: object address is out of range or misaligned")
	// ErrCorruptedBlock is the cause of a failed Release when the
	// argument's pad bytes no longer hold the pad signature.
	ErrCorruptedBlock = errors.New("alloc: object padding is corrupted")
	// ErrConfigurationInvalid is the cause of a failed New when the
	// requested geometry cannot be satisfied.
	ErrConfigurationInvalid = errors.New("alloc: configuration is invalid")
)

// errorsWrapOOM tags a lower-level heap failure with ErrOutOfMemory while
// keeping the original message visible.
func errorsWrapOOM(err error) error {
	return errors.Wrapf(ErrOutOfMemory, "%v", err)
}

// errorsWrapNoPages builds the error Acquire returns when the free list is
// empty and the page count is already at maxPages.
func errorsWrapNoPages(maxPages int) error {
	return errors.Wrapf(ErrNoPages, "page cap %d reached", maxPages)
}

// errorsWrapBadBoundary builds the error Release returns when an address
// does not resolve to a valid slot.
func errorsWrapBadBoundary(reason string) error {
	return errors.Wrapf(ErrBadBoundary, "%s", reason)
}

// errorsWrapMultipleFree builds the error Release returns when addr is
// already on the free list.
func errorsWrapMultipleFree(addr unsafe.Pointer) error {
	return errors.Wrapf(ErrMultipleFree, "address %p already released", addr)
}

// errorsWrapCorrupted builds the error Release returns when addr's pad
// bytes no longer hold the pad signature.
func errorsWrapCorrupted(addr unsafe.Pointer) error {
	return errors.Wrapf(ErrCorruptedBlock, "padding around %p is corrupted", addr)
}

// KindOf classifies err against this package's sentinels. It returns
// KindUnknown for a nil error or one that does not match any of them.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrOutOfMemory):
		return KindOutOfMemory
	case errors.Is(err, ErrNoPages):
		return KindNoPages
	case errors.Is(err, ErrMultipleFree):
		return KindMultipleFree
	case errors.Is(err, ErrBadBoundary):
		return KindBadBoundary
	case errors.Is(err, ErrCorruptedBlock):
		return KindCorruptedBlock
	case errors.Is(err, ErrConfigurationInvalid):
		return KindConfigurationInvalid
	default:
		return KindUnknown
	}
}
