package gosoup

import (
	"strings"

	"github.com/heathj/gosoup/parser/dom"
)

// Selection is an ordered set of elements of one document that can be
// narrowed down step by step.
type Selection struct {
	doc *dom.Document
	ids []dom.NodeID
}

// Find starts a Selection with the elements below root matching sel.
func Find(root dom.Node, sel string) (*Selection, error) {
	if root.IsZero() {
		return &Selection{}, nil
	}
	s := &Selection{doc: root.Document(), ids: []dom.NodeID{root.ID()}}
	return s.Find(sel)
}

// Find returns the elements below any node of s that match sel. Results stay
// in document order without duplicates.
func (s *Selection) Find(sel string) (*Selection, error) {
	c, err := compile(sel)
	if err != nil {
		return nil, err
	}
	out := &Selection{doc: s.doc}
	var last dom.NodeID
	for _, id := range s.ids {
		// A root nested in the previous one adds nothing new.
		if last != dom.NoNode && s.doc.Contains(last, id) {
			continue
		}
		last = id
		out.ids = append(out.ids, c.Select(s.doc, id)...)
	}
	return out, nil
}

// Filter keeps the nodes that match sel.
func (s *Selection) Filter(sel string) (*Selection, error) {
	c, err := compile(sel)
	if err != nil {
		return nil, err
	}
	return &Selection{doc: s.doc, ids: c.Filter(s.doc, s.ids)}, nil
}

func (s *Selection) keep(fn func(dom.NodeID) bool) *Selection {
	out := &Selection{doc: s.doc}
	for _, id := range s.ids {
		if fn(id) {
			out.ids = append(out.ids, id)
		}
	}
	return out
}

// TextContains keeps the nodes whose text content contains text.
func (s *Selection) TextContains(text string) *Selection {
	return s.keep(func(id dom.NodeID) bool {
		return strings.Contains(s.doc.TextContent(id), text)
	})
}

// AnyTextContains reports whether the text content of any node contains
// text.
func (s *Selection) AnyTextContains(text string) bool {
	return s.TextContains(text).Len() > 0
}

// AttributeLongerThan keeps the nodes whose attribute name is longer than n
// runes. With a non-empty start the value must begin with start, which is
// not counted.
func (s *Selection) AttributeLongerThan(name string, n int, start string) *Selection {
	return s.keep(func(id dom.NodeID) bool {
		v, ok := s.doc.Attr(id, name)
		if !ok {
			return false
		}
		if start != "" {
			if !strings.HasPrefix(v, start) {
				return false
			}
			v = v[len(start):]
		}
		return len([]rune(v)) > n
	})
}

// AnyAttributeLongerThan reports whether AttributeLongerThan keeps anything.
func (s *Selection) AnyAttributeLongerThan(name string, n int, start string) bool {
	return s.AttributeLongerThan(name, n, start).Len() > 0
}

// Matches reports whether any node of s matches sel.
func (s *Selection) Matches(sel string) (bool, error) {
	c, err := compile(sel)
	if err != nil {
		return false, err
	}
	for _, id := range s.ids {
		if c.Matches(s.doc, id) {
			return true, nil
		}
	}
	return false, nil
}

// Nodes returns the selected nodes.
func (s *Selection) Nodes() []dom.Node {
	if s.doc == nil {
		return nil
	}
	return s.doc.Nodes(s.ids)
}

// Len returns the number of selected nodes.
func (s *Selection) Len() int {
	return len(s.ids)
}

// First returns the first node, or the zero Node.
func (s *Selection) First() dom.Node {
	if len(s.ids) == 0 {
		return dom.Node{}
	}
	return s.doc.Node(s.ids[0])
}
