package header

import "unsafe"

// extendedFixedBytes is the byte width of an extended header excluding its
// caller-defined prefix: a 2-byte use counter, a 4-byte allocation counter,
// and a 1-byte in-use flag.
const extendedFixedBytes = 7

// extendedCodec implements Codec for the "extended" header variant.
type extendedCodec struct {
	userDefinedBytes int
}

func (c *extendedCodec) Kind() Kind { return KindExtended }

func (c *extendedCodec) Size() int { return c.userDefinedBytes + extendedFixedBytes }

func (c *extendedCodec) useCountPtr(slotHeader []byte) *uint16 {
	return (*uint16)(unsafe.Pointer(&slotHeader[c.userDefinedBytes]))
}

func (c *extendedCodec) allocNumPtr(slotHeader []byte) *uint32 {
	return (*uint32)(unsafe.Pointer(&slotHeader[c.userDefinedBytes+2]))
}

func (c *extendedCodec) flagIndex() int {
	return c.userDefinedBytes + 6
}

func (c *extendedCodec) OnAcquire(slotHeader []byte, _ []byte, allocationNumber uint32, _ string) {
	*c.useCountPtr(slotHeader)++
	*c.allocNumPtr(slotHeader) = allocationNumber
	slotHeader[c.flagIndex()] = 1
}

func (c *extendedCodec) OnRelease(slotHeader []byte, _ []byte) {
	// The use counter is intentionally left untouched: it tracks how many
	// times this slot has ever been acquired, not how many times it is
	// currently in use.
	*c.allocNumPtr(slotHeader) = 0
	slotHeader[c.flagIndex()] = 0
}

func (c *extendedCodec) IsInUse(slotHeader []byte, _ []byte) bool {
	return slotHeader[c.flagIndex()] != 0
}

func (c *extendedCodec) AllocationNumber(slotHeader []byte, _ []byte) uint32 {
	return *c.allocNumPtr(slotHeader)
}

func (c *extendedCodec) UseCount(slotHeader []byte, _ []byte) uint16 {
	return *c.useCountPtr(slotHeader)
}
