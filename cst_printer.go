package cxxast

import (
	"fmt"
	"io"
	"strings"
)

// CSTPrinter renders a CST as indented lines of the form
// `<start>--<end> [Kind] name`, one per node, children indented two
// spaces under their parent (spec.md §6's dump format).
type CSTPrinter struct {
	w io.Writer
}

func NewCSTPrinter(w io.Writer) *CSTPrinter { return &CSTPrinter{w: w} }

// Print writes root and its whole subtree.
func (p *CSTPrinter) Print(root AstNode) error {
	return p.print(root, 0)
}

func (p *CSTPrinter) print(n AstNode, depth int) error {
	indent := strings.Repeat("  ", depth)
	name := ""
	if e := n.Entity(); e != nil {
		name = " " + e.Name()
	}
	if _, err := fmt.Fprintf(p.w, "%s%s [%s]%s\n", indent, n.Range().String(), n.Kind().String(), name); err != nil {
		return err
	}
	for _, c := range n.Children() {
		if err := p.print(c, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// Dump renders root's subtree to a string, the shape callers typically
// want for test assertions against a golden dump.
func Dump(root AstNode) string {
	var b strings.Builder
	_ = NewCSTPrinter(&b).Print(root)
	return b.String()
}
