package wirewalk

// Buffer is an immutable view of a whole wire message as a half-open range of
// words. The decoder never writes through it and never allocates from it;
// descriptors produced against a Buffer stay valid for as long as the caller
// keeps the underlying bytes alive and unmodified.
type Buffer struct {
	b []byte // length is a multiple of WordSize
}

// NewBuffer wraps b as a message buffer. The length must be a multiple of the
// word size and at most MaxWords words; anything else returns ErrInputSize.
// An empty slice is accepted here and rejected later by Root, matching the
// distinction between a malformed input and a merely empty one.
func NewBuffer(b []byte) (Buffer, error) {
	if len(b)%WordSize != 0 {
		return Buffer{}, ErrInputSize
	}
	if len(b)/WordSize > MaxWords {
		return Buffer{}, ErrInputSize
	}
	return Buffer{b: b}, nil
}

// Len returns the buffer length in words.
func (b Buffer) Len() int {
	return len(b.b) / WordSize
}

// words is Len in the uint32 carrier the validators do arithmetic in.
func (b Buffer) words() uint32 {
	return uint32(len(b.b) / WordSize)
}

// word loads the i-th word. Callers must have proven i in range.
func (b Buffer) word(i uint32) rawPointer {
	return loadWord(b.b, i*WordSize)
}

// bytesAt returns n bytes starting at byte offset off. Callers must have
// proven the range in bounds; the returned slice aliases the buffer and must
// be treated as read-only.
func (b Buffer) bytesAt(off, n uint32) []byte {
	return b.b[off : off+n : off+n]
}

// area is a half-open word range inside which a pointer's target must lie.
// Each descriptor carries the area it was validated against so sub-pointers
// can be checked without external state; children inherit their parent's area.
type area struct {
	start, end uint32
}

// contains checks that the object span [objStart, objEnd), expressed in words
// relative to the pointer word at pptr, lies inside the area. Both endpoint
// tests are unsigned comparisons of differences, which handles backward
// offsets and overflow in a single comparison per endpoint.
func (a area) contains(pptr uint32, objStart, objEnd int32) bool {
	s := int32(a.start) - int32(pptr)
	e := int32(a.end) - int32(pptr)
	span := uint32(e - s)
	return uint32(objStart-s) <= span && uint32(objEnd-s) <= span
}
