package alloc

// Statistics is a point-in-time snapshot of an Allocator's bookkeeping
// counters, returned by value from GetStatistics so callers cannot mutate
// the allocator's live state through it.
type Statistics struct {
	ObjectSize     int
	PageSize       int
	PagesInUse     int
	ObjectsInUse   int
	FreeObjects    int
	MostObjects    int
	Allocations    uint64
	Deallocations  uint64
}

// onPageBuilt records a freshly built page joining the page list.
func (s *Statistics) onPageBuilt(objectsPerPage int) {
	s.PagesInUse++
	s.FreeObjects += objectsPerPage
}

// onPageReleased records a page leaving the page list by way of
// FreeEmptyPages.
func (s *Statistics) onPageReleased(objectsPerPage int) {
	s.PagesInUse--
	s.FreeObjects -= objectsPerPage
}

// onAcquire records a successful Acquire against page-backed slots.
func (s *Statistics) onAcquire() {
	s.Allocations++
	s.ObjectsInUse++
	s.FreeObjects--
	if s.ObjectsInUse > s.MostObjects {
		s.MostObjects = s.ObjectsInUse
	}
}

// onRelease records a successful Release against page-backed slots.
func (s *Statistics) onRelease() {
	s.Deallocations++
	s.ObjectsInUse--
	s.FreeObjects++
}

// onBypassAcquire records a successful Acquire made under
// Configuration.UseSystemHeap, where there is no free list to draw from.
func (s *Statistics) onBypassAcquire() {
	s.Allocations++
	s.ObjectsInUse++
	if s.ObjectsInUse > s.MostObjects {
		s.MostObjects = s.ObjectsInUse
	}
}

// onBypassRelease records a successful Release made under
// Configuration.UseSystemHeap.
func (s *Statistics) onBypassRelease() {
	s.Deallocations++
	s.ObjectsInUse--
}
