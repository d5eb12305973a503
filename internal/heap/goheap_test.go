package heap_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Hert97/CSD2181-memory-allocator/internal/heap"
)

func TestGoHeapAcquireReturnsExactLength(t *testing.T) {
	var h heap.GoHeap
	b, err := h.Acquire(128)
	require.NoError(t, err)
	require.Len(t, b, 128)
	h.Release(b)
}
