package selector

import (
	"strings"

	"github.com/heathj/gosoup/parser/dom"
)

type matcher struct {
	doc   *dom.Document
	scope dom.NodeID
}

// Select returns the elements below root that match s, in document order.
// root itself is never part of the result.
func (s *Selector) Select(doc *dom.Document, root dom.NodeID) []dom.NodeID {
	m := &matcher{doc: doc, scope: root}
	var out []dom.NodeID
	w := doc.Descendants(root)
	for w.Next() {
		id := w.Node()
		if m.any(s.alts, id, dom.NoNode) {
			out = append(out, id)
		}
	}
	return out
}

// SelectFirst returns the first element below root matching s, or
// dom.NoNode.
func (s *Selector) SelectFirst(doc *dom.Document, root dom.NodeID) dom.NodeID {
	m := &matcher{doc: doc, scope: root}
	w := doc.Descendants(root)
	for w.Next() {
		if id := w.Node(); m.any(s.alts, id, dom.NoNode) {
			return id
		}
	}
	return dom.NoNode
}

// Matches reports whether the element id matches s. :scope refers to id.
func (s *Selector) Matches(doc *dom.Document, id dom.NodeID) bool {
	m := &matcher{doc: doc, scope: id}
	return m.any(s.alts, id, dom.NoNode)
}

// MatchSpecificity returns the specificity of the most specific alternative
// matching id.
func (s *Selector) MatchSpecificity(doc *dom.Document, id dom.NodeID) (Specificity, bool) {
	m := &matcher{doc: doc, scope: id}
	var best Specificity
	found := false
	for _, a := range s.alts {
		if !m.sel(a, id, dom.NoNode) {
			continue
		}
		if sp := a.Specificity(); !found || best.Less(sp) {
			best = sp
		}
		found = true
	}
	return best, found
}

// Filter keeps the ids that match s, preserving their order.
func (s *Selector) Filter(doc *dom.Document, ids []dom.NodeID) []dom.NodeID {
	var out []dom.NodeID
	for _, id := range ids {
		if s.Matches(doc, id) {
			out = append(out, id)
		}
	}
	return out
}

func (m *matcher) any(sels []Sel, id, anchor dom.NodeID) bool {
	for _, s := range sels {
		if m.sel(s, id, anchor) {
			return true
		}
	}
	return false
}

// sel matches a complex selector right to left. anchor is the element a
// relative selector hangs off.
func (m *matcher) sel(s Sel, id, anchor dom.NodeID) bool {
	switch s := s.(type) {
	case scope:
		return id == anchor
	case *Compound:
		return m.compound(s, id, anchor)
	case *Combinator:
		if !m.compound(s.Right, id, anchor) {
			return false
		}
		d := m.doc
		switch s.Kind {
		case Descendant:
			for p := d.Parent(id); d.IsElement(p); p = d.Parent(p) {
				if m.sel(s.Left, p, anchor) {
					return true
				}
			}
		case Child:
			p := d.Parent(id)
			return d.IsElement(p) && m.sel(s.Left, p, anchor)
		case NextSibling:
			p := d.PrevElementSibling(id)
			return p != dom.NoNode && m.sel(s.Left, p, anchor)
		case SubsequentSibling:
			for p := d.PrevElementSibling(id); p != dom.NoNode; p = d.PrevElementSibling(p) {
				if m.sel(s.Left, p, anchor) {
					return true
				}
			}
		}
	}
	return false
}

func (m *matcher) compound(c *Compound, id, anchor dom.NodeID) bool {
	if !m.doc.IsElement(id) {
		return false
	}
	for _, s := range c.Simples {
		if !m.simple(s, id, anchor) {
			return false
		}
	}
	return true
}

func (m *matcher) simple(s Simple, id, anchor dom.NodeID) bool {
	d := m.doc
	switch s := s.(type) {
	case *TypeSelector:
		if s.Name == "*" {
			return true
		}
		if d.Namespace(id) == dom.Htmlns {
			return strings.EqualFold(s.Name, d.Name(id))
		}
		return s.Name == d.Name(id)
	case *IDSelector:
		v, ok := d.Attr(id, "id")
		return ok && v == s.ID
	case *ClassSelector:
		v, ok := d.Attr(id, "class")
		if !ok {
			return false
		}
		for _, c := range strings.Fields(v) {
			if c == s.Name {
				return true
			}
		}
		return false
	case *AttributeSelector:
		v, ok := d.Attr(id, s.Name)
		return ok && s.matchValue(v)
	case *PseudoClass:
		return m.pseudo(s, id, anchor)
	}
	return false
}

func (a *AttributeSelector) matchValue(v string) bool {
	want := a.Value
	if a.FoldCase {
		v, want = strings.ToLower(v), strings.ToLower(want)
	}
	switch a.Op {
	case AttrExists:
		return true
	case AttrEquals:
		return v == want
	case AttrIncludes:
		if want == "" || strings.ContainsAny(want, " \t\n\r\f") {
			return false
		}
		for _, f := range strings.Fields(v) {
			if f == want {
				return true
			}
		}
		return false
	case AttrDashMatch:
		return v == want || strings.HasPrefix(v, want+"-")
	case AttrPrefix:
		return want != "" && strings.HasPrefix(v, want)
	case AttrSuffix:
		return want != "" && strings.HasSuffix(v, want)
	case AttrSubstring:
		return want != "" && strings.Contains(v, want)
	}
	return false
}

func (m *matcher) pseudo(p *PseudoClass, id, anchor dom.NodeID) bool {
	d := m.doc
	sameType := func(o dom.NodeID) bool {
		return d.Name(o) == d.Name(id) && d.Namespace(o) == d.Namespace(id)
	}
	switch p.Kind {
	case PseudoFirstChild:
		return d.PrevElementSibling(id) == dom.NoNode
	case PseudoLastChild:
		return d.NextElementSibling(id) == dom.NoNode
	case PseudoOnlyChild:
		return d.PrevElementSibling(id) == dom.NoNode && d.NextElementSibling(id) == dom.NoNode
	case PseudoFirstOfType:
		return d.ElementIndex(id, false, sameType) == 1
	case PseudoLastOfType:
		return d.ElementIndex(id, true, sameType) == 1
	case PseudoOnlyOfType:
		return d.ElementIndex(id, false, sameType) == 1 && d.ElementIndex(id, true, sameType) == 1
	case PseudoNthChild:
		return p.Nth.Matches(d.ElementIndex(id, false, nil))
	case PseudoNthLastChild:
		return p.Nth.Matches(d.ElementIndex(id, true, nil))
	case PseudoNthOfType:
		return p.Nth.Matches(d.ElementIndex(id, false, sameType))
	case PseudoNthLastOfType:
		return p.Nth.Matches(d.ElementIndex(id, true, sameType))
	case PseudoEmpty:
		for c := d.FirstChild(id); c != dom.NoNode; c = d.NextSibling(c) {
			switch d.Type(c) {
			case dom.ElementNode:
				return false
			case dom.TextNode:
				if d.Data(c) != "" {
					return false
				}
			}
		}
		return true
	case PseudoRoot:
		return d.Parent(id) == dom.DocumentID
	case PseudoScope:
		return id == m.scope
	case PseudoNot:
		return !m.any(p.Args, id, anchor)
	case PseudoIs, PseudoWhere:
		return m.any(p.Args, id, anchor)
	case PseudoHas:
		return m.has(p.Args, id)
	case PseudoContains:
		return strings.Contains(strings.ToLower(d.TextContent(id)), strings.ToLower(p.Text))
	case PseudoContainsOwn:
		return strings.Contains(strings.ToLower(d.OwnText(id)), strings.ToLower(p.Text))
	case PseudoChecked:
		switch {
		case d.IsHTML(id, "input"):
			typ, _ := d.Attr(id, "type")
			typ = strings.ToLower(typ)
			return (typ == "checkbox" || typ == "radio") && d.HasAttr(id, "checked")
		case d.IsHTML(id, "option"):
			return d.HasAttr(id, "selected")
		}
		return false
	case PseudoDisabled:
		return isFormControl(d, id) && m.disabled(id)
	case PseudoEnabled:
		return isFormControl(d, id) && !m.disabled(id)
	case PseudoLink, PseudoAnyLink:
		return d.IsHTML(id, "a", "area", "link") && d.HasAttr(id, "href")
	}
	return false
}

func isFormControl(d *dom.Document, id dom.NodeID) bool {
	return d.IsHTML(id, "button", "input", "select", "textarea", "optgroup", "option", "fieldset")
}

func (m *matcher) disabled(id dom.NodeID) bool {
	d := m.doc
	if d.HasAttr(id, "disabled") {
		return true
	}
	if d.IsHTML(id, "option") {
		p := d.Parent(id)
		return d.IsHTML(p, "optgroup") && d.HasAttr(p, "disabled")
	}
	return false
}

// has looks for an element related to id that matches one of the relative
// selectors. Child and descendant forms search below id, sibling forms search
// the following siblings and their subtrees.
func (m *matcher) has(rel []Sel, id dom.NodeID) bool {
	d := m.doc
	for _, r := range rel {
		if leadingKind(r) == Descendant || leadingKind(r) == Child {
			w := d.Descendants(id)
			for w.Next() {
				if m.sel(r, w.Node(), id) {
					return true
				}
			}
			continue
		}
		for s := d.NextElementSibling(id); s != dom.NoNode; s = d.NextElementSibling(s) {
			w := d.Walk(s)
			for w.Next() {
				if m.sel(r, w.Node(), id) {
					return true
				}
			}
		}
	}
	return false
}

// leadingKind returns the combinator that joins a relative selector to its
// scope.
func leadingKind(s Sel) CombinatorKind {
	for {
		c, ok := s.(*Combinator)
		if !ok {
			return Descendant
		}
		if _, ok := c.Left.(scope); ok {
			return c.Kind
		}
		s = c.Left
	}
}
