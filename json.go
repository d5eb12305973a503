package alloc

import (
	"fmt"
	"strconv"
	"unsafe"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
)

// DumpJSON renders the pool's configuration, statistics, and currently
// in-use slots as a JSON document, built as a nested object per section
// rather than by marshaling a Go struct.
func (a *Allocator) DumpJSON() ([]byte, error) {
	w := jwriter.NewWriter()
	obj := w.Object()

	obj.Name("ObjectSize").Int(a.objectSize)
	obj.Name("UseSystemHeap").String(strconv.FormatBool(a.config.UseSystemHeap))
	obj.Name("HeaderKind").String(a.config.HeaderKind.String())
	obj.Name("DebugChecks").String(strconv.FormatBool(a.config.DebugChecks))

	stats := obj.Name("Statistics").Object()
	stats.Name("PageSize").Int(a.stats.PageSize)
	stats.Name("PagesInUse").Int(a.stats.PagesInUse)
	stats.Name("ObjectsInUse").Int(a.stats.ObjectsInUse)
	stats.Name("FreeObjects").Int(a.stats.FreeObjects)
	stats.Name("MostObjects").Int(a.stats.MostObjects)
	stats.Name("Allocations").Int(int(a.stats.Allocations))
	stats.Name("Deallocations").Int(int(a.stats.Deallocations))
	stats.End()

	inUse := obj.Name("InUse").Array()
	a.DumpInUse(func(addr unsafe.Pointer, size int) {
		entry := inUse.Object()
		entry.Name("Address").String(fmt.Sprintf("%p", addr))
		entry.Name("Size").Int(size)
		entry.End()
	})
	inUse.End()

	obj.End()
	return w.Bytes(), w.Error()
}
