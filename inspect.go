package alloc

import "unsafe"

// DumpInUse calls fn once for every slot currently held by a caller,
// passing the slot's user-region address and its object size, and returns
// the number of calls made. Under HeaderKind HeaderNone, in-use is
// determined by absence from the free list rather than by any header bit.
func (a *Allocator) DumpInUse(fn func(addr unsafe.Pointer, size int)) int {
	if a.config.UseSystemHeap {
		count := 0
		for p := range a.sysAllocs {
			fn(p, a.objectSize)
			count++
		}
		return count
	}

	var freeSet map[unsafe.Pointer]bool
	if a.config.HeaderKind == HeaderNone {
		freeSet = a.snapshotFreeSet()
	}

	count := 0
	for p := a.pages; p != nil; p = p.next {
		for i := 0; i < a.config.ObjectsPerPage; i++ {
			userPtr := a.slotUserPointer(p, i)
			if a.isSlotInUse(userPtr, freeSet) {
				fn(userPtr, a.objectSize)
				count++
			}
		}
	}
	return count
}

// ValidatePadding calls fn once for every slot whose pad bands no longer
// hold the pad signature, and returns the number of calls made. It returns
// 0 immediately when Configuration.LeftPadBytes is 0, since there are no
// pad bands to check.
func (a *Allocator) ValidatePadding(fn func(addr unsafe.Pointer, size int)) int {
	if a.config.LeftPadBytes == 0 || a.config.UseSystemHeap {
		return 0
	}

	leftPad := a.config.LeftPadBytes
	count := 0
	for p := a.pages; p != nil; p = p.next {
		for i := 0; i < a.config.ObjectsPerPage; i++ {
			userPtr := a.slotUserPointer(p, i)
			before := unsafe.Slice((*byte)(unsafe.Add(userPtr, -leftPad)), leftPad)
			after := unsafe.Slice((*byte)(unsafe.Add(userPtr, a.objectSize)), leftPad)
			if !paintedWith(before, SigPad) || !paintedWith(after, SigPad) {
				fn(userPtr, a.objectSize)
				count++
			}
		}
	}
	return count
}

// FreeEmptyPages releases every page with no slot currently in use back to
// the heap, and returns the number of pages released. It is a no-op under
// Configuration.UseSystemHeap, since there are no pages to free.
func (a *Allocator) FreeEmptyPages() int {
	if a.config.UseSystemHeap || a.pages == nil {
		return 0
	}

	var freeSet map[unsafe.Pointer]bool
	if a.config.HeaderKind == HeaderNone {
		freeSet = a.snapshotFreeSet()
	}

	releasing := make(map[*page]bool)
	var survivors []*page
	for p := a.pages; p != nil; p = p.next {
		empty := true
		for i := 0; i < a.config.ObjectsPerPage; i++ {
			if a.isSlotInUse(a.slotUserPointer(p, i), freeSet) {
				empty = false
				break
			}
		}
		if empty {
			releasing[p] = true
		} else {
			survivors = append(survivors, p)
		}
	}
	if len(releasing) == 0 {
		return 0
	}

	var kept []unsafe.Pointer
	for n := a.freeList.head; n != nil; n = a.freeList.next(n) {
		if pg := a.findPage(n); pg == nil || !releasing[pg] {
			kept = append(kept, n)
		}
	}
	var newHead unsafe.Pointer
	for i := len(kept) - 1; i >= 0; i-- {
		a.freeList.setNext(kept[i], newHead)
		newHead = kept[i]
	}
	a.freeList.head = newHead

	a.pages = nil
	for i := len(survivors) - 1; i >= 0; i-- {
		survivors[i].next = a.pages
		a.pages = survivors[i]
	}
	for p := a.pages; p != nil; p = p.next {
		p.writeNextPointer(p.next)
	}

	released := 0
	for p := range releasing {
		a.sysHeap.Release(p.buf)
		a.stats.onPageReleased(a.config.ObjectsPerPage)
		released++
	}
	return released
}

// snapshotFreeSet materializes the free list into a set, used by
// HeaderNone's in-use determination.
func (a *Allocator) snapshotFreeSet() map[unsafe.Pointer]bool {
	set := make(map[unsafe.Pointer]bool, a.stats.FreeObjects)
	for n := a.freeList.head; n != nil; n = a.freeList.next(n) {
		set[n] = true
	}
	return set
}

// isSlotInUse reports whether the slot whose user region starts at userPtr
// is currently held by a caller. freeSet is only consulted (and may be
// nil) under HeaderKind HeaderNone.
func (a *Allocator) isSlotInUse(userPtr unsafe.Pointer, freeSet map[unsafe.Pointer]bool) bool {
	if a.config.HeaderKind == HeaderNone {
		return !freeSet[userPtr]
	}
	headerPtr := unsafe.Add(userPtr, -(a.codec.Size() + a.config.LeftPadBytes))
	headerBytes := unsafe.Slice((*byte)(headerPtr), a.codec.Size())
	userBytes := unsafe.Slice((*byte)(userPtr), a.objectSize)
	return a.codec.IsInUse(headerBytes, userBytes)
}
