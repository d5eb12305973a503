package alloc

import (
	"unsafe"

	"golang.org/x/exp/slog"
)

// Release returns an object previously handed out by Acquire to the pool.
// A nil argument is a no-op. When Configuration.DebugChecks is set, the
// argument is validated, in order, against double-free, out-of-range,
// misalignment, and padding corruption before anything is mutated: the
// double-free check in particular must run before the user region is
// repainted, or a second release of the same address would see its own
// first FREED pattern and nothing would look wrong.
func (a *Allocator) Release(p unsafe.Pointer) error {
	if p == nil {
		return nil
	}

	if a.config.UseSystemHeap {
		buf, ok := a.sysAllocs[p]
		if !ok {
			return errorsWrapBadBoundary("address was not returned by Acquire")
		}
		delete(a.sysAllocs, p)
		a.sysHeap.Release(buf)
		a.stats.onBypassRelease()
		a.logger.Debug("Allocator::Release (bypass)", slog.Any("addr", p))
		return nil
	}

	if a.config.DebugChecks {
		if a.freeList.contains(p) {
			return errorsWrapMultipleFree(p)
		}
		pg := a.findPage(p)
		if pg == nil {
			return errorsWrapBadBoundary("address does not fall within any live page")
		}
		if err := a.checkSlotBoundary(pg, p); err != nil {
			return err
		}
		if err := a.checkPadding(p); err != nil {
			return err
		}
	}

	userBytes := unsafe.Slice((*byte)(p), a.objectSize)
	paint(userBytes, SigFreed)
	a.freeList.push(p)

	headerPtr := unsafe.Add(p, -(a.codec.Size() + a.config.LeftPadBytes))
	headerBytes := unsafe.Slice((*byte)(headerPtr), a.codec.Size())
	a.codec.OnRelease(headerBytes, userBytes)

	a.stats.onRelease()
	a.logger.Debug("Allocator::Release", slog.Any("addr", p))
	return nil
}

// checkSlotBoundary verifies that p lands exactly on a slot's user-region
// boundary within pg.
func (a *Allocator) checkSlotBoundary(pg *page, p unsafe.Pointer) error {
	base := uintptr(pg.base())
	offset := uintptr(p) - base
	firstUser := uintptr(a.firstUserOffset)
	if offset < firstUser {
		return errorsWrapBadBoundary("address falls before the first slot")
	}
	rel := offset - firstUser
	stride := uintptr(a.layout.SlotStride)
	if rel%stride != 0 {
		return errorsWrapBadBoundary("address is not aligned to a slot boundary")
	}
	if rel/stride >= uintptr(a.config.ObjectsPerPage) {
		return errorsWrapBadBoundary("implied slot index is out of range")
	}
	return nil
}

// checkPadding verifies that both pad bands flanking p's user region still
// hold the pad signature.
func (a *Allocator) checkPadding(p unsafe.Pointer) error {
	leftPad := a.config.LeftPadBytes
	if leftPad == 0 {
		return nil
	}
	before := unsafe.Slice((*byte)(unsafe.Add(p, -leftPad)), leftPad)
	after := unsafe.Slice((*byte)(unsafe.Add(p, a.objectSize)), leftPad)
	if !paintedWith(before, SigPad) || !paintedWith(after, SigPad) {
		return errorsWrapCorrupted(p)
	}
	return nil
}
