package header

// noneCodec implements Codec for slots with no per-slot bookkeeping at all.
// With this variant, in-use status is tracked exclusively by free-list
// membership, so IsInUse always answers false here; callers fall back to a
// free-list scan instead.
type noneCodec struct{}

func (noneCodec) Kind() Kind { return KindNone }

func (noneCodec) Size() int { return 0 }

func (noneCodec) OnAcquire(_ []byte, _ []byte, _ uint32, _ string) {}

func (noneCodec) OnRelease(_ []byte, _ []byte) {}

func (noneCodec) IsInUse(_ []byte, _ []byte) bool { return false }

func (noneCodec) AllocationNumber(_ []byte, _ []byte) uint32 { return 0 }

func (noneCodec) UseCount(_ []byte, _ []byte) uint16 { return 0 }
