package wirewalk

import (
	"fmt"
	"io"
)

// The code for the Printer is not written with the same strict performance
// concerns as the rest of the package. It exists to give tooling such as
// commandline utilities an easy way to render a decoded message.

// Printer is a Visitor that renders a walked message as an indented tree, one
// space of indentation per traversal depth. Struct data words print as
// lowercase 16-digit hex with the most significant byte first; sized list
// elements print most significant byte first too, in uppercase hex two digits
// per byte of their stride.
type Printer struct {
	w     io.Writer
	err   error
	lists []listFrame
}

// listFrame tracks a pointer or composite list currently being entered, so
// consecutive elements can be separated by a blank line.
type listFrame struct {
	depth int
	total int
	n     int
}

// NewPrinter returns a Printer writing to w. Use it directly with a Walker to
// control the depth limit; Fprint covers the common case.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Fprint decodes the message in buf and pretty-prints it to w with the default
// depth limit.
func Fprint(w io.Writer, buf Buffer) error {
	p := NewPrinter(w)
	if err := Walk(buf, p); err != nil {
		return err
	}
	return p.Err()
}

// Err returns the first write error the printer encountered.
func (p *Printer) Err() error {
	return p.err
}

func (p *Printer) printf(format string, args ...any) error {
	if p.err == nil {
		_, p.err = fmt.Fprintf(p.w, format, args...)
	}
	return nil
}

// element records a struct arriving at depth as a list element where one is
// expected, and emits the blank line that separates elements.
func (p *Printer) element(depth int) {
	if len(p.lists) == 0 {
		return
	}
	top := &p.lists[len(p.lists)-1]
	if depth != top.depth+1 || top.n >= top.total {
		return
	}
	if top.n > 0 {
		p.printf("\n")
	}
	top.n++
	if top.n == top.total {
		p.lists = p.lists[:len(p.lists)-1]
	}
}

// VisitStruct prints the struct header and its data words.
func (p *Printer) VisitStruct(s Struct, depth int) error {
	p.element(depth)
	p.printf("%*sStruct, %d data words, %d pointers:\n", depth, "",
		s.DataWords(), s.Pointers())

	if s.DataWords() > 0 && !s.hasData() {
		return p.printf("%*s[cannot display data portion]\n", depth, "")
	}
	for i := 0; i < s.DataWords(); i++ {
		p.printf("%*s0x%016x\n", depth, "", s.DataWord(i))
	}
	return nil
}

// VisitList prints the list header and, for scalar element types, the
// elements themselves. Pointer and composite lists only print their header
// here; the walker hands their elements back through VisitStruct.
func (p *Printer) VisitList(l List, depth int) error {
	switch l.ElemType() {
	case ElemVoid:
		p.printf("%*sLIST of %d void elements\n", depth, "", l.Len())

	case ElemBit:
		p.printf("%*sLIST of %d bits\n", depth, "", l.Len())
		p.printf("%*s", depth+1, "")
		if l.Len() == 0 {
			p.printf("[empty]")
		}
		for i := 0; i < l.Len(); i++ {
			if l.Bit(i) {
				p.printf("1")
			} else {
				p.printf("0")
			}
		}
		p.printf("\n")

	case ElemByte, ElemTwoByte, ElemFourByte, ElemWord:
		p.printf("%*sLIST of %d %d-byte data elements\n", depth, "",
			l.Len(), l.Stride())
		if l.Len() == 0 {
			p.printf("%*s[empty]\n", depth+1, "")
		}
		for i := 0; i < l.Len(); i++ {
			p.printf("%*s0x", depth+1, "")
			val := l.Datum(i)
			for j := len(val) - 1; j >= 0; j-- {
				p.printf("%02X", val[j])
			}
			p.printf("\n")
		}

	case ElemPointer, ElemComposite:
		kind := "pointers"
		if l.ElemType() == ElemComposite {
			kind = "structs"
		}
		p.printf("%*sLIST of %d %s, stride %d bytes\n", depth, "",
			l.Len(), kind, l.Stride())
		if l.Len() > 0 {
			p.lists = append(p.lists, listFrame{depth: depth, total: l.Len()})
		}
	}
	return nil
}

// VisitNull prints a placeholder for an absent field.
func (p *Printer) VisitNull(depth int) error {
	return p.printf("%*snullptr\n", depth, "")
}

// VisitFar prints a placeholder for an unresolved far pointer.
func (p *Printer) VisitFar(depth int) error {
	return p.printf("%*sFARPTR\n", depth, "")
}

// VisitOther prints a placeholder for the reserved type tag.
func (p *Printer) VisitOther(depth int) error {
	return p.printf("%*sOTHER\n", depth, "")
}

// VisitInvalid prints a diagnostic for a pointer that failed validation.
func (p *Printer) VisitInvalid(t PtrType, depth int) error {
	if t == PtrList {
		return p.printf("%*sbad listptr\n", depth, "")
	}
	return p.printf("%*sbad structptr\n", depth, "")
}
