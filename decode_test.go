package wirewalk_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kungfusheep/wirewalk"
)

var _ = Describe("Root", func() {
	It("should reject an empty message", func() {
		buf, err := wirewalk.NewBuffer(nil)
		Expect(err).NotTo(HaveOccurred())

		_, err = wirewalk.Root(buf)
		Expect(err).To(MatchError(wirewalk.ErrEmptyMessage))
	})

	It("should reject an all-zero root word", func() {
		_, err := wirewalk.Root(decode(0))
		Expect(err).To(MatchError(wirewalk.ErrInvalidPointer))
	})

	It("should decode an empty struct whose data address is the buffer end", func() {
		// Offset 1 in a two-word buffer puts the empty object at word 2,
		// the buffer end, which is a valid empty span.
		root, err := wirewalk.Root(decode(structPtr(1, 0, 0), 0))
		Expect(err).NotTo(HaveOccurred())
		Expect(root.DataWords()).To(Equal(0))
		Expect(root.Pointers()).To(Equal(0))
	})

	It("should expose data words little-endian", func() {
		root, err := wirewalk.Root(decode(structPtr(0, 1, 0), 0xBEBAFECAEFBEADDE))
		Expect(err).NotTo(HaveOccurred())
		Expect(root.DataWord(0)).To(Equal(uint64(0xBEBAFECAEFBEADDE)))
	})

	It("should reject a root whose object spills past the buffer", func() {
		_, err := wirewalk.Root(decode(structPtr(0, 2, 0), 0))
		Expect(err).To(MatchError(wirewalk.ErrInvalidPointer))
	})
})

var _ = Describe("Struct fields", func() {
	It("should treat a null slot as an absent field, not an error", func() {
		root, err := wirewalk.Root(decode(structPtr(0, 0, 1), 0))
		Expect(err).NotTo(HaveOccurred())
		Expect(root.FieldIsNull(0)).To(BeTrue())

		// Decoding the null slot as an object is still invalid.
		_, err = root.FieldStruct(0)
		Expect(err).To(MatchError(wirewalk.ErrInvalidPointer))
	})

	It("should follow a backward pointer that stays in the area", func() {
		root, err := wirewalk.Root(decode(
			structPtr(1, 0, 1),
			0x99,
			structPtr(-2, 1, 0),
		))
		Expect(err).NotTo(HaveOccurred())

		child, err := root.FieldStruct(0)
		Expect(err).NotTo(HaveOccurred())
		Expect(child.DataWord(0)).To(Equal(uint64(0x99)))
	})

	It("should reject a pointer that reaches below the buffer start", func() {
		root, err := wirewalk.Root(decode(structPtr(0, 0, 1), structPtr(-4, 0, 0)))
		Expect(err).NotTo(HaveOccurred())

		_, err = root.FieldStruct(0)
		Expect(err).To(MatchError(wirewalk.ErrInvalidPointer))
	})

	It("should reject a maximal forward offset in a small buffer", func() {
		root, err := wirewalk.Root(decode(structPtr(0, 0, 1), structPtr(1<<29-1, 0, 1)))
		Expect(err).NotTo(HaveOccurred())

		_, err = root.FieldStruct(0)
		Expect(err).To(MatchError(wirewalk.ErrInvalidPointer))
	})
})

var _ = Describe("List decoding", func() {
	It("should size a byte list by rounding bits up to whole words", func() {
		root, err := wirewalk.Root(decode(
			structPtr(0, 0, 1),
			listPtr(0, wirewalk.ElemByte, 5),
			0x0504030201,
		))
		Expect(err).NotTo(HaveOccurred())

		l, err := root.FieldList(0)
		Expect(err).NotTo(HaveOccurred())
		Expect(l.Len()).To(Equal(5))
		Expect(l.Stride()).To(Equal(1))
		Expect(l.Datum(4)).To(Equal([]byte{5}))
	})

	It("should fail a list whose payload word is missing", func() {
		// The 24-byte variant of the 32-byte message: word 3 does not
		// exist, so the 5-byte list cannot be contained.
		root, err := wirewalk.Root(decode(
			structPtr(0, 1, 1),
			0xDA7A,
			listPtr(0, wirewalk.ElemByte, 5),
		))
		Expect(err).NotTo(HaveOccurred())

		_, err = root.FieldList(0)
		Expect(err).To(MatchError(wirewalk.ErrInvalidPointer))
	})

	It("should accept zero-length lists of every non-composite element type", func() {
		for et := wirewalk.ElemVoid; et <= wirewalk.ElemPointer; et++ {
			root, err := wirewalk.Root(decode(structPtr(0, 0, 1), listPtr(0, et, 0)))
			Expect(err).NotTo(HaveOccurred())

			l, err := root.FieldList(0)
			Expect(err).NotTo(HaveOccurred(), "element type %v", et)
			Expect(l.Len()).To(BeZero())
		}
	})

	It("should not read past the declared bit count", func() {
		root, err := wirewalk.Root(decode(
			structPtr(0, 0, 1),
			listPtr(0, wirewalk.ElemBit, 3),
			0b101,
		))
		Expect(err).NotTo(HaveOccurred())

		l, err := root.FieldList(0)
		Expect(err).NotTo(HaveOccurred())
		Expect(l.Bit(0)).To(BeTrue())
		Expect(l.Bit(1)).To(BeFalse())
		Expect(l.Bit(2)).To(BeTrue())
		Expect(func() { l.Bit(3) }).To(Panic())
	})
})

var _ = Describe("Composite lists", func() {
	It("should derive three elements from a (2,1) tag over 9 payload words", func() {
		root, err := wirewalk.Root(decode(
			structPtr(0, 0, 1),
			listPtr(0, wirewalk.ElemComposite, 9),
			compositeTag(2, 1),
			1, 2, 0,
			3, 4, 0,
			5, 6, 0,
		))
		Expect(err).NotTo(HaveOccurred())

		l, err := root.FieldList(0)
		Expect(err).NotTo(HaveOccurred())
		Expect(l.Len()).To(Equal(3))
		Expect(l.ElemDataWords()).To(Equal(2))
		Expect(l.ElemPointers()).To(Equal(1))
		Expect(l.Stride()).To(Equal(24))
	})

	It("should fail the same tag over 8 payload words", func() {
		root, err := wirewalk.Root(decode(
			structPtr(0, 0, 1),
			listPtr(0, wirewalk.ElemComposite, 8),
			compositeTag(2, 1),
			1, 2, 0,
			3, 4, 0,
			5, 6,
		))
		Expect(err).NotTo(HaveOccurred())

		_, err = root.FieldList(0)
		Expect(err).To(MatchError(wirewalk.ErrInvalidPointer))
	})

	It("should ignore the tag's reserved offset field", func() {
		bogus := compositeTag(1, 0) | uint64(uint32(7)<<2)
		root, err := wirewalk.Root(decode(
			structPtr(0, 0, 1),
			listPtr(0, wirewalk.ElemComposite, 2),
			bogus,
			0xAA, 0xBB,
		))
		Expect(err).NotTo(HaveOccurred())

		l, err := root.FieldList(0)
		Expect(err).NotTo(HaveOccurred())
		Expect(l.Len()).To(Equal(2))
	})

	It("should reject a tag whose type tag is not a struct", func() {
		root, err := wirewalk.Root(decode(
			structPtr(0, 0, 1),
			listPtr(0, wirewalk.ElemComposite, 1),
			compositeTag(1, 0)|2,
			0,
		))
		Expect(err).NotTo(HaveOccurred())

		_, err = root.FieldList(0)
		Expect(err).To(MatchError(wirewalk.ErrInvalidPointer))
	})

	It("should give elements direct struct views into the buffer", func() {
		root, err := wirewalk.Root(decode(
			structPtr(0, 0, 1),
			listPtr(0, wirewalk.ElemComposite, 2),
			compositeTag(1, 0),
			0xAA, 0xBB,
		))
		Expect(err).NotTo(HaveOccurred())

		l, err := root.FieldList(0)
		Expect(err).NotTo(HaveOccurred())

		var scratch wirewalk.Word
		Expect(l.Element(0, &scratch).DataWord(0)).To(Equal(uint64(0xAA)))
		Expect(l.Element(1, &scratch).DataWord(0)).To(Equal(uint64(0xBB)))
	})
})
