package wirewalk

import "errors"

// Visitor is an interface that can be implemented to walk a decoded message.
// The walker reports each object as it enters it, then descends through its
// outgoing pointers; scalar list contents are read by the visitor itself
// through the List accessors.
type Visitor interface {
	// VisitStruct is called for every struct entered, including the root
	// and struct-shaped list-element views. Returning ErrSkipVisit keeps
	// the walker out of the struct's pointer slots.
	VisitStruct(s Struct, depth int) error

	// VisitList is called for every list entered. Returning ErrSkipVisit
	// keeps the walker out of the list's elements.
	VisitList(l List, depth int) error

	// VisitNull is called for an all-zero pointer slot, which is not
	// followed.
	VisitNull(depth int) error

	// VisitFar is called for a far pointer, which is recognized but never
	// resolved.
	VisitFar(depth int) error

	// VisitOther is called for the reserved fourth type tag.
	VisitOther(depth int) error

	// VisitInvalid is called when a pointer slot fails validation as the
	// type t it declared. The walker then continues with sibling slots.
	VisitInvalid(t PtrType, depth int) error
}

// ErrSkipVisit is returned by a visitor to indicate that the walker should not
// descend into the current object.
var ErrSkipVisit = errors.New("skip visit")

// Walk walks the message in buf depth-first from the root with the default
// depth limit.
func Walk(buf Buffer, visitor Visitor) error {
	w := Walker{}
	return w.Walk(buf, visitor)
}

// Walker drives a depth-first traversal of a decoded message. The format
// permits sharing and even cycles among pointers, so the walker enforces a
// depth limit rather than assuming tree shape; exceeding it aborts the walk
// with ErrDepthLimit.
type Walker struct {
	// MaxDepth bounds the traversal depth. Zero means DefaultMaxDepth.
	MaxDepth int
}

// Walk decodes the root and walks the message. Validation failures below the
// root are reported to the visitor and do not abort the walk; a root decode
// failure, a depth-limit hit or a visitor error does.
func (w Walker) Walk(buf Buffer, visitor Visitor) error {
	root, err := Root(buf)
	if err != nil {
		return err
	}
	return w.walkStruct(root, visitor, 0)
}

func (w Walker) maxDepth() int {
	if w.MaxDepth > 0 {
		return w.MaxDepth
	}
	return DefaultMaxDepth
}

func (w Walker) walkStruct(s Struct, visitor Visitor, depth int) error {
	if depth > w.maxDepth() {
		return ErrDepthLimit
	}

	switch err := visitor.VisitStruct(s, depth); err {
	case nil:
	case ErrSkipVisit:
		return nil
	default:
		return err
	}

	for i := 0; i < s.Pointers(); i++ {
		var err error
		switch {
		case s.FieldIsNull(i):
			err = visitor.VisitNull(depth)

		case s.FieldType(i) == PtrStruct:
			child, derr := s.FieldStruct(i)
			if derr != nil {
				err = visitor.VisitInvalid(PtrStruct, depth)
				break
			}
			err = w.walkStruct(child, visitor, depth+1)

		case s.FieldType(i) == PtrList:
			child, derr := s.FieldList(i)
			if derr != nil {
				err = visitor.VisitInvalid(PtrList, depth)
				break
			}
			err = w.walkList(child, visitor, depth)

		case s.FieldType(i) == PtrFar:
			err = visitor.VisitFar(depth)

		default:
			err = visitor.VisitOther(depth)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (w Walker) walkList(l List, visitor Visitor, depth int) error {
	switch err := visitor.VisitList(l, depth); err {
	case nil:
	case ErrSkipVisit:
		return nil
	default:
		return err
	}

	// Scalar elements are the visitor's to read; only pointer-bearing
	// element types are entered.
	if l.ElemType() != ElemPointer && l.ElemType() != ElemComposite {
		return nil
	}

	var scratch Word
	for i := 0; i < l.Len(); i++ {
		if err := w.walkStruct(l.Element(i, &scratch), visitor, depth+1); err != nil {
			return err
		}
	}

	return nil
}
