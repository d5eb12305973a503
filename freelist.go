package alloc

import "unsafe"

// freeList is an intrusive singly-linked list of free user regions. Each
// free region's own first PointerSize bytes hold the address of the next
// free region, following the same pattern as the Go runtime's fixalloc
// free list: the backing memory for every node is kept alive independently
// by the page that owns it, so writing a bare address into the node's
// bytes (invisible to the garbage collector) is safe.
type freeList struct {
	head unsafe.Pointer
}

// push makes addr the new head, chaining it in front of the previous head.
func (f *freeList) push(addr unsafe.Pointer) {
	*(*unsafe.Pointer)(addr) = f.head
	f.head = addr
}

// pop removes and returns the head, or nil if the list is empty.
func (f *freeList) pop() unsafe.Pointer {
	if f.head == nil {
		return nil
	}
	addr := f.head
	f.head = *(*unsafe.Pointer)(addr)
	return addr
}

// contains reports whether addr currently sits on the free list.
func (f *freeList) contains(addr unsafe.Pointer) bool {
	for n := f.head; n != nil; n = *(*unsafe.Pointer)(n) {
		if n == addr {
			return true
		}
	}
	return false
}

// next returns the free-list successor of a node already known to be on
// the list.
func (f *freeList) next(addr unsafe.Pointer) unsafe.Pointer {
	return *(*unsafe.Pointer)(addr)
}

// setNext overwrites addr's stored successor pointer.
func (f *freeList) setNext(addr, next unsafe.Pointer) {
	*(*unsafe.Pointer)(addr) = next
}
