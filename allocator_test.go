package alloc

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func noFrills(objectsPerPage, maxPages int) Configuration {
	return Configuration{
		ObjectsPerPage: objectsPerPage,
		MaxPages:       maxPages,
		HeaderKind:     HeaderNone,
	}
}

// Page cap is enforced in terms of whole pages, not objects.
func TestAcquireFailsWhenPageCapReached(t *testing.T) {
	a, err := New(8, noFrills(4, 2))
	require.NoError(t, err)
	defer a.Destroy()

	for i := 0; i < 4; i++ {
		_, err := a.Acquire("")
		require.NoError(t, err)
	}
	require.Equal(t, 1, a.GetStatistics().PagesInUse)

	_, err = a.Acquire("")
	require.NoError(t, err)
	require.Equal(t, 2, a.GetStatistics().PagesInUse)

	for i := 0; i < 3; i++ {
		_, err := a.Acquire("")
		require.NoError(t, err)
	}
	require.Equal(t, 8, a.GetStatistics().ObjectsInUse)

	_, err = a.Acquire("")
	require.Error(t, err)
	require.Equal(t, KindNoPages, KindOf(err))
}

// Releasing the same address twice raises multiple-free.
func TestReleaseTwiceRaisesMultipleFree(t *testing.T) {
	cfg := noFrills(4, 2)
	cfg.DebugChecks = true
	a, err := New(8, cfg)
	require.NoError(t, err)
	defer a.Destroy()

	p, err := a.Acquire("")
	require.NoError(t, err)
	require.NoError(t, a.Release(p))

	err = a.Release(p)
	require.Error(t, err)
	require.Equal(t, KindMultipleFree, KindOf(err))
}

// Writing into a pad band corrupts the slot from release's point of view.
func TestReleaseDetectsCorruptedPadding(t *testing.T) {
	cfg := Configuration{
		ObjectsPerPage: 2,
		LeftPadBytes:   2,
		HeaderKind:     HeaderNone,
		DebugChecks:    true,
	}
	a, err := New(16, cfg)
	require.NoError(t, err)
	defer a.Destroy()

	p, err := a.Acquire("")
	require.NoError(t, err)

	before := unsafe.Slice((*byte)(unsafe.Add(p, -1)), 1)
	before[0] = 0x00

	err = a.Release(p)
	require.Error(t, err)
	require.Equal(t, KindCorruptedBlock, KindOf(err))
}

// The basic header's allocation counter tracks allocations and zeros on
// release.
func TestBasicHeaderAllocationCounterZerosOnRelease(t *testing.T) {
	cfg := Configuration{
		ObjectsPerPage: 2,
		HeaderKind:     HeaderBasic,
	}
	a, err := New(16, cfg)
	require.NoError(t, err)
	defer a.Destroy()

	p1, err := a.Acquire("")
	require.NoError(t, err)
	require.EqualValues(t, 1, a.headerAllocationNumber(p1))

	p2, err := a.Acquire("")
	require.NoError(t, err)
	require.EqualValues(t, 2, a.headerAllocationNumber(p2))

	require.NoError(t, a.Release(p1))
	require.EqualValues(t, 0, a.headerAllocationNumber(p1))
}

// Alignment keeps every returned address aligned and paints inter-slot
// filler with the align signature.
func TestAcquireRespectsAlignmentAndPaintsInterAlign(t *testing.T) {
	cfg := Configuration{
		ObjectsPerPage: 3,
		Alignment:      8,
		HeaderKind:     HeaderNone,
	}
	a, err := New(12, cfg)
	require.NoError(t, err)
	defer a.Destroy()

	var addrs []unsafe.Pointer
	for i := 0; i < 3; i++ {
		p, err := a.Acquire("")
		require.NoError(t, err)
		require.Zero(t, uintptr(p)%8)
		addrs = append(addrs, p)
	}

	interAlignStart := unsafe.Add(addrs[0], 12)
	region := unsafe.Slice((*byte)(interAlignStart), a.layout.InterAlignBytes)
	require.True(t, paintedWith(region, SigAlign))
}

// Freeing empty pages excises their slots from the free list.
func TestFreeEmptyPagesExcisesFreeListEntries(t *testing.T) {
	a, err := New(8, noFrills(4, 0))
	require.NoError(t, err)
	defer a.Destroy()

	var firstPage []unsafe.Pointer
	for i := 0; i < 4; i++ {
		p, err := a.Acquire("")
		require.NoError(t, err)
		firstPage = append(firstPage, p)
	}
	for i := 0; i < 4; i++ {
		_, err := a.Acquire("")
		require.NoError(t, err)
	}
	require.Equal(t, 2, a.GetStatistics().PagesInUse)

	for _, p := range firstPage {
		require.NoError(t, a.Release(p))
	}

	released := a.FreeEmptyPages()
	require.Equal(t, 1, released)
	require.Equal(t, 1, a.GetStatistics().PagesInUse)

	for _, p := range firstPage {
		require.False(t, a.freeList.contains(p))
	}
}

func TestUniversalInvariantAfterFullDrain(t *testing.T) {
	a, err := New(8, noFrills(4, 0))
	require.NoError(t, err)
	defer a.Destroy()

	var all []unsafe.Pointer
	for i := 0; i < 12; i++ {
		p, err := a.Acquire("")
		require.NoError(t, err)
		all = append(all, p)
	}
	for _, p := range all {
		require.NoError(t, a.Release(p))
	}

	stats := a.GetStatistics()
	require.Zero(t, stats.ObjectsInUse)
	require.Equal(t, stats.PagesInUse*a.config.ObjectsPerPage, stats.FreeObjects)
	require.GreaterOrEqual(t, stats.MostObjects, 12)
}

func TestNSuccessiveAcquiresReturnDistinctAddresses(t *testing.T) {
	a, err := New(8, noFrills(4, 0))
	require.NoError(t, err)
	defer a.Destroy()

	seen := make(map[unsafe.Pointer]bool)
	for i := 0; i < 10; i++ {
		p, err := a.Acquire("")
		require.NoError(t, err)
		require.False(t, seen[p])
		seen[p] = true
	}
}

func TestObjectsPerPageOneHasNoInterAlign(t *testing.T) {
	cfg := Configuration{
		ObjectsPerPage: 1,
		Alignment:      16,
		HeaderKind:     HeaderNone,
	}
	a, err := New(24, cfg)
	require.NoError(t, err)
	defer a.Destroy()
	require.Zero(t, a.layout.InterAlignBytes)
}

func TestReleaseOfNilIsNoOp(t *testing.T) {
	a, err := New(8, noFrills(4, 0))
	require.NoError(t, err)
	defer a.Destroy()
	require.NoError(t, a.Release(nil))
}

func TestBadBoundaryOnForeignAddress(t *testing.T) {
	cfg := noFrills(4, 0)
	cfg.DebugChecks = true
	a, err := New(8, cfg)
	require.NoError(t, err)
	defer a.Destroy()

	var x [8]byte
	err = a.Release(unsafe.Pointer(&x[0]))
	require.Error(t, err)
	require.Equal(t, KindBadBoundary, KindOf(err))
}

func TestUseSystemHeapBypassesPages(t *testing.T) {
	cfg := Configuration{UseSystemHeap: true}
	a, err := New(32, cfg)
	require.NoError(t, err)
	defer a.Destroy()

	p, err := a.Acquire("")
	require.NoError(t, err)
	require.Nil(t, a.GetPageListHead())
	require.NoError(t, a.Release(p))
	require.Equal(t, uint64(1), a.GetStatistics().Deallocations)
}

func TestExtendedHeaderUseCounterSurvivesRelease(t *testing.T) {
	cfg := Configuration{
		ObjectsPerPage:   2,
		HeaderKind:       HeaderExtended,
		UserDefinedBytes: 3,
	}
	a, err := New(16, cfg)
	require.NoError(t, err)
	defer a.Destroy()

	p, err := a.Acquire("")
	require.NoError(t, err)
	require.EqualValues(t, 1, a.headerUseCount(p))
	require.NoError(t, a.Release(p))

	p2, err := a.Acquire("")
	require.NoError(t, err)
	require.Equal(t, p, p2)
	require.EqualValues(t, 2, a.headerUseCount(p2))
}

func TestExternalHeaderCarriesLabel(t *testing.T) {
	cfg := Configuration{
		ObjectsPerPage: 2,
		HeaderKind:     HeaderExternal,
	}
	a, err := New(16, cfg)
	require.NoError(t, err)
	defer a.Destroy()

	p, err := a.Acquire("widget")
	require.NoError(t, err)
	require.True(t, a.isSlotInUse(p, nil))
	l, ok := a.codec.(interface{ Label([]byte) string })
	require.True(t, ok)
	require.Equal(t, "widget", l.Label(unsafe.Slice((*byte)(p), a.objectSize)))
	require.NoError(t, a.Release(p))
	require.False(t, a.isSlotInUse(p, nil))
}

// headerUseCount is a test-only convenience mirroring headerAllocationNumber.
func (a *Allocator) headerUseCount(slot unsafe.Pointer) uint16 {
	headerPtr := unsafe.Add(slot, -(a.codec.Size() + a.config.LeftPadBytes))
	headerBytes := unsafe.Slice((*byte)(headerPtr), a.codec.Size())
	userBytes := unsafe.Slice((*byte)(slot), a.objectSize)
	return a.codec.UseCount(headerBytes, userBytes)
}

// headerAllocationNumber is a test-only convenience wrapping the header
// codec's byte-level read the same way acquire and release do.
func (a *Allocator) headerAllocationNumber(slot unsafe.Pointer) uint32 {
	headerPtr := unsafe.Add(slot, -(a.codec.Size() + a.config.LeftPadBytes))
	headerBytes := unsafe.Slice((*byte)(headerPtr), a.codec.Size())
	userBytes := unsafe.Slice((*byte)(slot), a.objectSize)
	return a.codec.AllocationNumber(headerBytes, userBytes)
}
