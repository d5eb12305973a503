package alloc

import "unsafe"

// page is one contiguous backing allocation, sliced up into ObjectsPerPage
// fixed-size slots. The next-page pointer prefixing every page's bytes is
// written into buf for byte-level fidelity, but traversal logic always
// follows the Go-safe next field, never the raw bytes: next keeps the
// chain correct independent of whatever the bytes happen to hold.
type page struct {
	buf  []byte
	next *page
}

// base returns the address of the page's first byte.
func (p *page) base() unsafe.Pointer {
	return unsafe.Pointer(&p.buf[0])
}

// writeNextPointer paints next's base address (or nil) into this page's
// next-page pointer prefix.
func (p *page) writeNextPointer(next *page) {
	var np unsafe.Pointer
	if next != nil {
		np = next.base()
	}
	*(*unsafe.Pointer)(unsafe.Pointer(&p.buf[0])) = np
}

// headerOffset returns the byte offset, from the start of the page, of
// slot i's header (or, under HeaderNone, where a header would begin).
func (a *Allocator) headerOffset(i int) int {
	return a.layout.FirstSlotOffset + i*a.layout.SlotStride
}

// slotHeaderPointer returns the address of slot i's header region on pg.
func (a *Allocator) slotHeaderPointer(pg *page, i int) unsafe.Pointer {
	return unsafe.Pointer(&pg.buf[a.headerOffset(i)])
}

// slotUserPointer returns the address of slot i's user region on pg.
func (a *Allocator) slotUserPointer(pg *page, i int) unsafe.Pointer {
	off := a.headerOffset(i) + a.codec.Size() + a.config.LeftPadBytes
	return unsafe.Pointer(&pg.buf[off])
}

// buildPage acquires one page's worth of bytes from the heap, paints its
// signatures, threads its slots onto the free list, and links it in as the
// new page list head.
func (a *Allocator) buildPage() (*page, error) {
	buf, err := a.sysHeap.Acquire(a.layout.PageBytes)
	if err != nil {
		return nil, errorsWrapOOM(err)
	}

	paint(buf, SigUnallocated)

	headerBytes := a.codec.Size()
	leftPad := a.config.LeftPadBytes
	objectSize := a.objectSize

	for i := 0; i < a.config.ObjectsPerPage; i++ {
		off := a.headerOffset(i)
		if headerBytes > 0 {
			paint(buf[off:off+headerBytes], 0)
		}
		if leftPad > 0 {
			regionOff := off + headerBytes
			paint(buf[regionOff:regionOff+leftPad], SigPad)
			paint(buf[regionOff+leftPad+objectSize:regionOff+leftPad+objectSize+leftPad], SigPad)
		}
	}

	if a.layout.LeftAlignBytes > 0 {
		start := a.layout.FirstSlotOffset - a.layout.LeftAlignBytes
		paint(buf[start:a.layout.FirstSlotOffset], SigAlign)
	}
	if a.layout.InterAlignBytes > 0 {
		for i := 0; i < a.config.ObjectsPerPage-1; i++ {
			end := a.headerOffset(i+1)
			start := end - a.layout.InterAlignBytes
			paint(buf[start:end], SigAlign)
		}
	}

	p := &page{buf: buf}
	p.writeNextPointer(a.pages)
	p.next = a.pages
	a.pages = p

	for i := a.config.ObjectsPerPage - 1; i >= 0; i-- {
		a.freeList.push(a.slotUserPointer(p, i))
	}

	a.stats.onPageBuilt(a.config.ObjectsPerPage)
	return p, nil
}

// findPage returns the page whose backing bytes contain addr, or nil if no
// live page does.
func (a *Allocator) findPage(addr unsafe.Pointer) *page {
	target := uintptr(addr)
	for p := a.pages; p != nil; p = p.next {
		base := uintptr(p.base())
		if target >= base && target < base+uintptr(len(p.buf)) {
			return p
		}
	}
	return nil
}
