package header

import "unsafe"

// basicHeaderSize is the fixed byte width of a basic header: a 4-byte
// allocation counter followed by a 1-byte in-use flag.
const basicHeaderSize = 5

// basicCodec implements Codec for the "basic" header variant.
type basicCodec struct{}

func (c *basicCodec) Kind() Kind { return KindBasic }

func (c *basicCodec) Size() int { return basicHeaderSize }

func (c *basicCodec) OnAcquire(slotHeader []byte, _ []byte, allocationNumber uint32, _ string) {
	*(*uint32)(unsafe.Pointer(&slotHeader[0])) = allocationNumber
	slotHeader[4] = 1
}

func (c *basicCodec) OnRelease(slotHeader []byte, _ []byte) {
	*(*uint32)(unsafe.Pointer(&slotHeader[0])) = 0
	slotHeader[4] = 0
}

func (c *basicCodec) IsInUse(slotHeader []byte, _ []byte) bool {
	return slotHeader[4] != 0
}

func (c *basicCodec) AllocationNumber(slotHeader []byte, _ []byte) uint32 {
	return *(*uint32)(unsafe.Pointer(&slotHeader[0]))
}

func (c *basicCodec) UseCount(_ []byte, _ []byte) uint16 { return 0 }
