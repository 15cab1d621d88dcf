package selector

import (
	"strconv"

	"github.com/xlab/treeprint"
)

// Tree renders the compiled selector as an indented tree for debugging.
func (s *Selector) Tree() string {
	tp := treeprint.New()
	tp.SetValue(strconv.Quote(s.source))
	for _, a := range s.alts {
		addSel(tp, a)
	}
	return tp.String()
}

func addSel(tp treeprint.Tree, s Sel) {
	switch s := s.(type) {
	case scope:
		tp.AddNode(":scope")
	case *Compound:
		br := tp.AddMetaBranch(s.Specificity().String(), "compound")
		for _, simple := range s.Simples {
			addSimple(br, simple)
		}
	case *Combinator:
		br := tp.AddMetaBranch(s.Specificity().String(), "combinator "+strconv.Quote(s.Kind.String()))
		addSel(br, s.Left)
		addSel(br, s.Right)
	}
}

func addSimple(tp treeprint.Tree, s Simple) {
	p, ok := s.(*PseudoClass)
	if !ok || len(p.Args) == 0 {
		tp.AddNode(s.String())
		return
	}
	br := tp.AddBranch(":" + p.Kind.String())
	for _, a := range p.Args {
		addSel(br, a)
	}
}
