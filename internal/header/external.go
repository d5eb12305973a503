package header

import "unsafe"

// externalHeaderSize is the width of the in-page pointer slot: one
// platform-pointer-sized field referencing a descriptor that lives outside
// the page entirely.
var externalHeaderSize = int(unsafe.Sizeof(uintptr(0)))

// descriptor is the out-of-band bookkeeping record for one external-header
// slot: an in-use flag, an allocation counter, and an owned label.
type descriptor struct {
	InUse            bool
	AllocationNumber uint32
	Label            string
}

// externalCodec implements Codec for the "external" header variant.
//
// The in-page header slot physically holds the descriptor's address (via
// unsafe.Pointer, same as every other codec's raw byte writes), filling
// the pointer-sized header this variant reserves in every slot. But a
// []byte page buffer is invisible to the garbage collector's pointer
// scanner, so storing
// only that raw pointer would leave the descriptor collectible while still
// "in use". descriptors mirrors the pointer into ordinary Go-managed
// storage, keyed by the address of the slot's user region, so the collector
// always sees a live reference for as long as the slot is acquired.
type externalCodec struct {
	descriptors map[uintptr]*descriptor
}

func newExternalCodec() *externalCodec {
	return &externalCodec{descriptors: make(map[uintptr]*descriptor)}
}

func (c *externalCodec) Kind() Kind { return KindExternal }

func (c *externalCodec) Size() int { return externalHeaderSize }

func keyOf(slotUserRegion []byte) uintptr {
	return uintptr(unsafe.Pointer(&slotUserRegion[0]))
}

func (c *externalCodec) OnAcquire(slotHeader []byte, slotUserRegion []byte, allocationNumber uint32, label string) {
	desc := &descriptor{InUse: true, AllocationNumber: allocationNumber, Label: label}
	c.descriptors[keyOf(slotUserRegion)] = desc
	*(*unsafe.Pointer)(unsafe.Pointer(&slotHeader[0])) = unsafe.Pointer(desc)
}

func (c *externalCodec) OnRelease(slotHeader []byte, slotUserRegion []byte) {
	key := keyOf(slotUserRegion)
	delete(c.descriptors, key)
	*(*unsafe.Pointer)(unsafe.Pointer(&slotHeader[0])) = nil
}

func (c *externalCodec) IsInUse(_ []byte, slotUserRegion []byte) bool {
	desc, ok := c.descriptors[keyOf(slotUserRegion)]
	return ok && desc.InUse
}

func (c *externalCodec) AllocationNumber(_ []byte, slotUserRegion []byte) uint32 {
	desc, ok := c.descriptors[keyOf(slotUserRegion)]
	if !ok {
		return 0
	}
	return desc.AllocationNumber
}

func (c *externalCodec) UseCount(_ []byte, _ []byte) uint16 { return 0 }

// Label returns the label most recently passed to OnAcquire for the slot at
// slotUserRegion, or "" if the slot is not currently acquired.
func (c *externalCodec) Label(slotUserRegion []byte) string {
	desc, ok := c.descriptors[keyOf(slotUserRegion)]
	if !ok {
		return ""
	}
	return desc.Label
}
