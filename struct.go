package wirewalk

// Struct is a validated view of a struct object: a run of data words followed
// by a run of outgoing pointer slots. Struct is a value; it carries the target
// area it was validated against and holds no state beyond that.
//
// A Struct produced by List.Element for a scalar element type reads its data
// from a caller-provided one-word scratch copy instead of the buffer; such
// views always report zero pointer slots.
type Struct struct {
	buf       Buffer
	area      area
	data      uint32 // word index of the data section
	scratch   []byte // non-nil for synthetic one-word views
	dataWords uint16
	pointers  uint16
}

// decodeStructPointer validates the struct pointer word at word index pptr
// against the target area and produces the descriptor for the object it
// references. Wrong type tags, null and out-of-bounds targets all collapse
// into ErrInvalidPointer.
func decodeStructPointer(buf Buffer, pptr uint32, target area) (Struct, error) {
	p := buf.word(pptr)
	if p == 0 || p.pointerType() != PtrStruct {
		return Struct{}, ErrInvalidPointer
	}

	// Every term is below 2^30, so none of this signed 32-bit arithmetic
	// can wrap.
	objStart := 1 + p.offset()
	ptrStart := objStart + int32(p.structDataWords())
	objEnd := ptrStart + int32(p.structPointers())

	if !target.contains(pptr, objStart, objEnd) {
		return Struct{}, ErrInvalidPointer
	}

	return Struct{
		buf:       buf,
		area:      target,
		data:      uint32(int32(pptr) + objStart),
		dataWords: p.structDataWords(),
		pointers:  p.structPointers(),
	}, nil
}

// Root decodes word 0 of the buffer as a struct pointer whose target area is
// the entire buffer. A null root is rejected; there is no stream framing and
// no segment table.
func Root(buf Buffer) (Struct, error) {
	if buf.words() == 0 {
		return Struct{}, ErrEmptyMessage
	}
	return decodeStructPointer(buf, 0, area{start: 0, end: buf.words()})
}

// DataWords returns the number of data words in the struct.
func (s Struct) DataWords() int {
	return int(s.dataWords)
}

// Pointers returns the number of outgoing pointer slots.
func (s Struct) Pointers() int {
	return int(s.pointers)
}

// DataWord returns data word i as a little-endian integer. i must be below
// DataWords.
func (s Struct) DataWord(i int) uint64 {
	if i < 0 || i >= int(s.dataWords) {
		panic("wirewalk: data word index out of range")
	}
	if s.scratch != nil {
		return uint64(loadWord(s.scratch, 0))
	}
	return uint64(s.buf.word(s.data + uint32(i)))
}

// ReadData copies the struct's data section into dst. A dst longer than the
// data section is zero-filled past it, and a shorter one receives a prefix,
// so readers and writers built against different revisions of an object
// layout can exchange messages.
func (s Struct) ReadData(dst []byte) {
	src := []byte{}
	if s.dataWords > 0 {
		if s.scratch != nil {
			src = s.scratch
		} else {
			src = s.buf.bytesAt(s.data*WordSize, uint32(s.dataWords)*WordSize)
		}
	}
	n := copy(dst, src)
	clear(dst[n:])
}

// FieldIsNull reports whether pointer slot i holds the all-zero word.
func (s Struct) FieldIsNull(i int) bool {
	return s.fieldWord(i) == 0
}

// FieldType returns the type tag of pointer slot i. Null is reported as
// PtrStruct, its encoded tag; use FieldIsNull to distinguish it.
func (s Struct) FieldType(i int) PtrType {
	return s.fieldWord(i).pointerType()
}

// FieldStruct validates pointer slot i as a struct pointer, inheriting the
// parent's target area.
func (s Struct) FieldStruct(i int) (Struct, error) {
	return decodeStructPointer(s.buf, s.fieldAddr(i), s.area)
}

// FieldList validates pointer slot i as a list pointer, inheriting the
// parent's target area.
func (s Struct) FieldList(i int) (List, error) {
	return decodeListPointer(s.buf, s.fieldAddr(i), s.area)
}

// fieldAddr returns the word index of pointer slot i.
func (s Struct) fieldAddr(i int) uint32 {
	if i < 0 || i >= int(s.pointers) {
		panic("wirewalk: pointer slot index out of range")
	}
	return s.data + uint32(s.dataWords) + uint32(i)
}

func (s Struct) fieldWord(i int) rawPointer {
	return s.buf.word(s.fieldAddr(i))
}

// hasData reports whether the data section is addressable. Zero-valued views
// that declare data words (possible only through manual construction) have
// none, and the printer flags them instead of reading.
func (s Struct) hasData() bool {
	return s.scratch != nil || s.buf.b != nil
}
