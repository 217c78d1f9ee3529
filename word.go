package wirewalk

import "encoding/binary"

// rawPointer is a pointer word as loaded from the wire: a 64-bit little-endian
// integer carrying a 2-bit type tag, a signed 30-bit word offset and a
// type-specific upper half.
type rawPointer uint64

// loadWord reads the 8 bytes at b[off:] as a little-endian word. The slice
// index path is well-defined for any byte alignment, so callers never need an
// aligned buffer.
func loadWord(b []byte, off uint32) rawPointer {
	return rawPointer(binary.LittleEndian.Uint64(b[off:]))
}

func (p rawPointer) pointerType() PtrType {
	return PtrType(p & 3)
}

// offset returns the signed 30-bit word offset from the pointer word to its
// target. The sign lives in bit 31 of the low half, so the extension is
// spelled out explicitly rather than relying on a shift of a signed carrier.
func (p rawPointer) offset() int32 {
	lo := uint32(p)
	if lo < 1<<31 {
		return int32(lo >> 2)
	}
	return int32(lo>>2) - 1<<30
}

// structDataWords is the data-section word count of a struct pointer.
func (p rawPointer) structDataWords() uint16 {
	return uint16(p >> 32)
}

// structPointers is the outgoing pointer-slot count of a struct pointer.
func (p rawPointer) structPointers() uint16 {
	return uint16(p >> 48)
}

// listElemType is the 3-bit element-type code of a list pointer.
func (p rawPointer) listElemType() ElemType {
	return ElemType(p >> 32 & 7)
}

// listLen is the 29-bit element count of a list pointer. For composite lists
// it counts payload words rather than elements.
func (p rawPointer) listLen() uint32 {
	return uint32(p >> 35)
}
