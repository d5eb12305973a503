// Package alloc implements a fixed-size object pool: a byte allocator that
// hands out and takes back objects of one constant size, backed by pages
// drawn from a pluggable heap.
package alloc

import (
	"io"
	"unsafe"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/slog"

	"github.com/Hert97/CSD2181-memory-allocator/internal/geometry"
	"github.com/Hert97/CSD2181-memory-allocator/internal/header"
	"github.com/Hert97/CSD2181-memory-allocator/internal/heap"
	"github.com/Hert97/CSD2181-memory-allocator/internal/memutils"
)

// Allocator is a fixed-size object pool for objects of one constant size,
// chosen when the pool is built and never changed afterward.
//
// An Allocator performs no synchronization and is not safe for concurrent
// use. It hands out untyped bytes of that one size only, never coalesces or
// moves slots, and runs no constructor or destructor on them. Pages go back
// to the heap only through FreeEmptyPages or Destroy.
type Allocator struct {
	objectSize int
	config     Configuration
	layout     geometry.Layout
	codec      header.Codec
	sysHeap    heap.Heap
	logger     *slog.Logger

	// firstUserOffset is the byte offset, from the start of a page, of the
	// first slot's user region. Every subsequent slot's user region sits
	// at firstUserOffset + i*layout.SlotStride.
	firstUserOffset int

	pages    *page
	freeList freeList
	stats    Statistics

	// sysAllocs tracks the byte slices handed out under
	// Configuration.UseSystemHeap, keyed by the address returned to the
	// caller, so Release can hand the exact slice back to the heap.
	sysAllocs map[unsafe.Pointer][]byte
}

// New builds a pool for objects of objectSize bytes, governed by cfg.
func New(objectSize int, cfg Configuration) (*Allocator, error) {
	if err := memutils.DebugValidate(cfg); err != nil {
		return nil, err
	}
	if cfg.Heap == nil {
		cfg.Heap = heap.GoHeap{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard))
	}

	codec, err := header.New(cfg.HeaderKind.internal(), header.Params{UserDefinedBytes: cfg.UserDefinedBytes})
	if err != nil {
		return nil, errors.Wrapf(ErrConfigurationInvalid, "%v", err)
	}

	a := &Allocator{
		objectSize: objectSize,
		config:     cfg,
		codec:      codec,
		sysHeap:    cfg.Heap,
		logger:     cfg.Logger,
	}

	if cfg.UseSystemHeap {
		a.sysAllocs = make(map[unsafe.Pointer][]byte)
		a.stats.ObjectSize = objectSize
		return a, nil
	}

	layout, err := geometry.Compute(geometry.Inputs{
		ObjectSize:     objectSize,
		ObjectsPerPage: cfg.ObjectsPerPage,
		Alignment:      cfg.Alignment,
		LeftPadBytes:   cfg.LeftPadBytes,
		HeaderBytes:    codec.Size(),
	})
	if err != nil {
		return nil, errors.Wrapf(ErrConfigurationInvalid, "%v", err)
	}
	a.layout = layout
	a.firstUserOffset = layout.FirstSlotOffset + codec.Size() + cfg.LeftPadBytes
	a.stats.ObjectSize = objectSize
	a.stats.PageSize = layout.PageBytes

	if _, err := a.buildPage(); err != nil {
		return nil, err
	}

	a.logger.Debug("Allocator::New", slog.Int("objectSize", objectSize), slog.Int("objectsPerPage", cfg.ObjectsPerPage), slog.Int("pageBytes", layout.PageBytes))
	return a, nil
}

// SetDebugChecks turns Release's double-free, boundary, and corruption
// checks on or off.
func (a *Allocator) SetDebugChecks(on bool) {
	a.config.DebugChecks = on
}

// GetConfiguration returns the Configuration the pool was built with,
// reflecting any SetDebugChecks calls made since.
func (a *Allocator) GetConfiguration() Configuration {
	return a.config
}

// GetStatistics returns a snapshot of the pool's bookkeeping counters.
func (a *Allocator) GetStatistics() Statistics {
	return a.stats
}

// GetFreeListHead returns the address of the first free slot's user
// region, or nil if the free list is empty. It is a raw observer intended
// for diagnostics and tests; nothing about its return value should be
// dereferenced by ordinary callers.
func (a *Allocator) GetFreeListHead() unsafe.Pointer {
	return a.freeList.head
}

// GetPageListHead returns the address of the first live page's backing
// bytes, or nil if no pages have been built (always nil under
// Configuration.UseSystemHeap).
func (a *Allocator) GetPageListHead() unsafe.Pointer {
	if a.pages == nil {
		return nil
	}
	return a.pages.base()
}

// Destroy releases every page (or, in bypass mode, every outstanding
// object) back to the underlying heap. The Allocator must not be used
// afterward.
func (a *Allocator) Destroy() error {
	if a.config.UseSystemHeap {
		for _, b := range a.sysAllocs {
			a.sysHeap.Release(b)
		}
		a.sysAllocs = nil
		return nil
	}
	for p := a.pages; p != nil; {
		next := p.next
		a.sysHeap.Release(p.buf)
		p = next
	}
	a.pages = nil
	a.freeList.head = nil
	return nil
}
