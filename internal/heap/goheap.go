package heap

// GoHeap is the default Heap: every page is an ordinary Go-GC-managed byte
// slice. This is the right choice for the common case, where the consumer
// wants a pool allocator for deterministic slot latency and does not care
// whether the backing bytes ultimately come from the OS or the Go runtime's
// own heap.
type GoHeap struct{}

// Acquire returns a freshly made, zero-valued byte slice of length n.
func (GoHeap) Acquire(n int) ([]byte, error) {
	return make([]byte, n), nil
}

// Release is a no-op; the Go garbage collector reclaims b once the
// allocator drops its last reference.
func (GoHeap) Release(_ []byte) {}
