package wirewalk

// List is a validated view of a list object: an element-type code, an element
// count and, for composite lists, the per-element shape taken from the tag
// word that precedes the payload.
type List struct {
	buf           Buffer
	area          area
	data          uint32 // word index of the first payload word
	elems         uint32
	strideBytes   uint32 // undefined for ElemBit
	elemDataWords uint16
	elemPointers  uint16
	elemType      ElemType
}

// decodeListPointer validates the list pointer word at word index pptr against
// the target area and produces the descriptor for the list it references.
// Containment, the composite tag sub-protocol and the stride/payload
// cross-check are all enforced here; accessors may then index the list without
// further bounds proofs beyond the element count.
func decodeListPointer(buf Buffer, pptr uint32, target area) (List, error) {
	p := buf.word(pptr)
	if p.pointerType() != PtrList {
		return List{}, ErrInvalidPointer
	}

	et := p.listElemType()
	n := p.listLen()

	// Payload length in words. n is below 2^29 and strides are at most 64
	// bits, so the product fits comfortably in 64 bits.
	var totalWords uint32
	if et == ElemComposite {
		totalWords = n + 1 // tag word plus n payload words
	} else {
		totalWords = uint32((uint64(n)*uint64(elemStrideBits[et]) + 63) / 64)
	}

	dataStart := 1 + p.offset()
	dataEnd := dataStart + int32(totalWords)
	if !target.contains(pptr, dataStart, dataEnd) {
		return List{}, ErrInvalidPointer
	}

	l := List{
		buf:      buf,
		area:     target,
		data:     uint32(int32(pptr) + dataStart),
		elemType: et,
	}

	if et != ElemComposite {
		l.elems = n
		l.strideBytes = elemStrideBits[et] / 8
		if et == ElemWord {
			l.elemDataWords = 1
		}
		if et == ElemPointer {
			l.elemPointers = 1
		}
		return l, nil
	}

	// The composite tag is laid out like a struct pointer. Only a zero type
	// tag is valid; the other shapes are reserved. Its offset field is
	// reserved too and deliberately ignored, so the element count derives
	// from the payload length and the tag's stride alone.
	tag := buf.word(l.data)
	if tag.pointerType() != PtrStruct {
		return List{}, ErrInvalidPointer
	}
	l.elemDataWords = tag.structDataWords()
	l.elemPointers = tag.structPointers()

	strideWords := uint32(l.elemDataWords) + uint32(l.elemPointers)
	listWords := totalWords - 1
	if strideWords == 0 {
		if listWords != 0 {
			return List{}, ErrInvalidPointer
		}
	} else {
		if listWords%strideWords != 0 {
			return List{}, ErrInvalidPointer
		}
		l.elems = listWords / strideWords
	}

	// A tag that slipped through the modulo check must still account for
	// the payload exactly.
	if uint64(strideWords)*64*uint64(l.elems) != uint64(listWords)*64 {
		return List{}, ErrInvalidPointer
	}

	l.data++ // payload begins after the tag
	l.strideBytes = strideWords * WordSize
	return l, nil
}

// ElemType returns the list's element-type code.
func (l List) ElemType() ElemType {
	return l.elemType
}

// Len returns the number of elements.
func (l List) Len() int {
	return int(l.elems)
}

// Stride returns the distance between successive elements in bytes. It is
// zero for void lists and undefined for bit lists.
func (l List) Stride() int {
	return int(l.strideBytes)
}

// ElemDataWords returns the per-element data word count: 1 for ElemWord, the
// tag's count for composite lists, 0 otherwise.
func (l List) ElemDataWords() int {
	return int(l.elemDataWords)
}

// ElemPointers returns the per-element pointer count: 1 for ElemPointer, the
// tag's count for composite lists, 0 otherwise.
func (l List) ElemPointers() int {
	return int(l.elemPointers)
}

// Bit returns element i of a bit list. Bits pack lsb-first within each word;
// the last word may be only partially populated and the excess is never read.
func (l List) Bit(i int) bool {
	if l.elemType != ElemBit {
		panic("wirewalk: Bit on a non-bit list")
	}
	l.checkIndex(i)
	w := uint64(l.buf.word(l.data + uint32(i/64)))
	return w>>(uint(i)%64)&1 != 0
}

// Datum returns the raw bytes of element i for the sized data element types
// (void, byte, 2-byte, 4-byte and 8-byte non-pointer). The slice aliases the
// buffer and must be treated as read-only; interpreting it is the caller's
// business, and the wire order is little-endian.
func (l List) Datum(i int) []byte {
	switch l.elemType {
	case ElemVoid, ElemByte, ElemTwoByte, ElemFourByte, ElemWord:
	default:
		panic("wirewalk: Datum on a " + l.elemType.String() + " list")
	}
	l.checkIndex(i)
	return l.buf.bytesAt(l.data*WordSize+uint32(i)*l.strideBytes, l.strideBytes)
}

// Element returns a struct-shaped view of element i, so untyped traversal can
// use one surface for every element type. Composite elements view the buffer
// directly with the shape the tag declared, and pointer elements become a
// zero-data one-pointer view whose slot is the element word itself. The
// scalar types are copied into scratch, one word zero-extended (a bit element
// becomes 0 or 1 in the first byte), and the returned view reads its data from
// there; it must not outlive the caller's scratch word. Void elements report
// zero data words and zero pointers.
func (l List) Element(i int, scratch *Word) Struct {
	l.checkIndex(i)
	switch l.elemType {
	case ElemComposite:
		return Struct{
			buf:       l.buf,
			area:      l.area,
			data:      l.data + uint32(i)*uint32(l.strideBytes/WordSize),
			dataWords: l.elemDataWords,
			pointers:  l.elemPointers,
		}
	case ElemPointer:
		return Struct{
			buf:      l.buf,
			area:     l.area,
			data:     l.data + uint32(i),
			pointers: 1,
		}
	case ElemVoid:
		return Struct{}
	case ElemBit:
		*scratch = Word{}
		if l.Bit(i) {
			scratch[0] = 1
		}
		return Struct{scratch: scratch[:], dataWords: 1}
	default:
		*scratch = Word{}
		copy(scratch[:], l.Datum(i))
		return Struct{scratch: scratch[:], dataWords: 1}
	}
}

func (l List) checkIndex(i int) {
	if i < 0 || uint32(i) >= l.elems {
		panic("wirewalk: list index out of range")
	}
}
