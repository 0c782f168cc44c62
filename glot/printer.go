package glot

import (
	"fmt"
	"strings"
)

// Processor consumes a polyglot tree through a zipper positioned at its
// root. Apply invokes Process exactly once; how the processor walks from
// there is its own business.
type Processor interface {
	Process(z *Zipper)
}

// TreePrinter is a Processor that renders the whole forest as an indented
// outline of node kinds, descending straight through evaluate calls into
// their linked subtrees.
type TreePrinter struct {
	sb    strings.Builder
	depth int
}

// NewTreePrinter returns an empty TreePrinter.
func NewTreePrinter() *TreePrinter {
	return &TreePrinter{}
}

// Process renders the tree under z into the printer's buffer.
func (tp *TreePrinter) Process(z *Zipper) {
	tp.walk(z.Clone())
}

// Result returns everything rendered so far.
func (tp *TreePrinter) Result() string {
	return tp.sb.String()
}

func (tp *TreePrinter) walk(z *Zipper) {
	indent := strings.Repeat("  ", tp.depth)

	child := z.Clone()
	if !child.GotoFirstChild() {
		fmt.Fprintf(&tp.sb, "%s%s %q\n", indent, z.Kind(), z.Code())
		return
	}

	fmt.Fprintf(&tp.sb, "%s%s\n", indent, z.Kind())
	tp.depth++
	for {
		tp.walk(child.Clone())
		if !child.GotoNextSibling() {
			break
		}
	}
	tp.depth--
}
