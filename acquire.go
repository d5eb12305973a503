package alloc

import (
	"unsafe"

	"golang.org/x/exp/slog"
)

// Acquire hands out one object's worth of memory, building a new page
// first if the free list is empty and the page cap allows it. label is
// recorded only when Configuration.HeaderKind is HeaderExternal; every
// other header variant ignores it.
func (a *Allocator) Acquire(label string) (unsafe.Pointer, error) {
	if a.config.UseSystemHeap {
		buf, err := a.sysHeap.Acquire(a.objectSize)
		if err != nil {
			return nil, errorsWrapOOM(err)
		}
		ptr := unsafe.Pointer(&buf[0])
		a.sysAllocs[ptr] = buf
		a.stats.onBypassAcquire()
		a.logger.Debug("Allocator::Acquire (bypass)", slog.Any("addr", ptr))
		return ptr, nil
	}

	if a.freeList.head == nil {
		if a.config.MaxPages != 0 && a.stats.PagesInUse >= a.config.MaxPages {
			return nil, errorsWrapNoPages(a.config.MaxPages)
		}
		if _, err := a.buildPage(); err != nil {
			return nil, err
		}
	}

	slot := a.freeList.pop()
	headerPtr := unsafe.Add(slot, -(a.codec.Size() + a.config.LeftPadBytes))
	headerBytes := unsafe.Slice((*byte)(headerPtr), a.codec.Size())
	userBytes := unsafe.Slice((*byte)(slot), a.objectSize)

	allocNum := uint32(a.stats.Allocations + 1)
	paint(userBytes, SigAllocated)
	a.codec.OnAcquire(headerBytes, userBytes, allocNum, label)
	a.stats.onAcquire()

	a.logger.Debug("Allocator::Acquire", slog.Any("addr", slot), slog.String("label", label), slog.Int("allocation", int(allocNum)))
	return slot, nil
}
