//go:build linux

package heap

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/sys/unix"
)

// MmapHeap backs every page with its own anonymous mmap region instead of
// Go-GC-managed memory. It is useful when the consumer wants slot bytes
// that are guaranteed not to be scanned or moved by the Go runtime, or
// wants to observe the allocator's pages directly with OS tooling.
type MmapHeap struct{}

// Acquire maps n bytes of anonymous, private memory.
func (MmapHeap) Acquire(n int) ([]byte, error) {
	b, err := unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, errors.Wrap(err, "heap: mmap failed")
	}
	return b, nil
}

// Release unmaps b. Errors are ignored, as with every other Release
// implementation: by the time this is called the memory has no further use
// to the caller.
func (MmapHeap) Release(b []byte) {
	if len(b) == 0 {
		return
	}
	_ = unix.Munmap(b)
}
