package dom

import "github.com/antchfx/xpath"

// Navigator walks a Document for XPath evaluation. It implements
// xpath.NodeNavigator.
type Navigator struct {
	doc  *Document
	root NodeID
	cur  NodeID
	attr int
}

var _ xpath.NodeNavigator = (*Navigator)(nil)

// Navigator returns an XPath navigator positioned on root. root acts as the
// XPath root node.
func (d *Document) Navigator(root NodeID) *Navigator {
	return &Navigator{doc: d, root: root, cur: root, attr: -1}
}

// Current returns the node the navigator is on. On an attribute it returns
// the owning element.
func (n *Navigator) Current() NodeID { return n.cur }

func (n *Navigator) NodeType() xpath.NodeType {
	if n.attr >= 0 {
		return xpath.AttributeNode
	}
	if n.cur == n.root {
		return xpath.RootNode
	}
	switch n.doc.nodes[n.cur].typ {
	case ElementNode:
		return xpath.ElementNode
	case TextNode:
		return xpath.TextNode
	case CommentNode:
		return xpath.CommentNode
	}
	return xpath.RootNode
}

func (n *Navigator) LocalName() string {
	if n.attr >= 0 {
		return n.doc.nodes[n.cur].attrs[n.attr].Name
	}
	return n.doc.nodes[n.cur].name
}

func (n *Navigator) Prefix() string {
	if n.attr >= 0 {
		return n.doc.nodes[n.cur].attrs[n.attr].Namespace.Prefix()
	}
	return ""
}

func (n *Navigator) Value() string {
	if n.attr >= 0 {
		return n.doc.nodes[n.cur].attrs[n.attr].Value
	}
	switch n.doc.nodes[n.cur].typ {
	case TextNode, CommentNode:
		return n.doc.Data(n.cur)
	}
	return n.doc.TextContent(n.cur)
}

func (n *Navigator) Copy() xpath.NodeNavigator {
	cp := *n
	return &cp
}

func (n *Navigator) MoveToRoot() {
	n.cur, n.attr = n.root, -1
}

func (n *Navigator) MoveToParent() bool {
	if n.attr >= 0 {
		n.attr = -1
		return true
	}
	if n.cur == n.root {
		return false
	}
	p := n.doc.nodes[n.cur].parent
	if p == NoNode {
		return false
	}
	n.cur = p
	return true
}

func (n *Navigator) MoveToNextAttribute() bool {
	if n.doc.nodes[n.cur].typ != ElementNode || n.attr >= len(n.doc.nodes[n.cur].attrs)-1 {
		return false
	}
	n.attr++
	return true
}

func (n *Navigator) MoveToChild() bool {
	if n.attr >= 0 {
		return false
	}
	c := n.nextVisible(n.doc.nodes[n.cur].firstChild, true)
	if c == NoNode {
		return false
	}
	n.cur = c
	return true
}

func (n *Navigator) MoveToFirst() bool {
	if n.attr >= 0 || n.cur == n.root {
		return false
	}
	p := n.doc.nodes[n.cur].parent
	if p == NoNode {
		return false
	}
	c := n.nextVisible(n.doc.nodes[p].firstChild, true)
	if c == NoNode {
		return false
	}
	n.cur = c
	return true
}

func (n *Navigator) MoveToNext() bool {
	if n.attr >= 0 || n.cur == n.root {
		return false
	}
	s := n.nextVisible(n.doc.nodes[n.cur].nextSibling, true)
	if s == NoNode {
		return false
	}
	n.cur = s
	return true
}

func (n *Navigator) MoveToPrevious() bool {
	if n.attr >= 0 || n.cur == n.root {
		return false
	}
	s := n.nextVisible(n.doc.nodes[n.cur].prevSibling, false)
	if s == NoNode {
		return false
	}
	n.cur = s
	return true
}

func (n *Navigator) MoveTo(other xpath.NodeNavigator) bool {
	o, ok := other.(*Navigator)
	if !ok || o.doc != n.doc || o.root != n.root {
		return false
	}
	n.cur, n.attr = o.cur, o.attr
	return true
}

// nextVisible skips doctype nodes, which have no XPath equivalent.
func (n *Navigator) nextVisible(id NodeID, forward bool) NodeID {
	for id != NoNode && n.doc.nodes[id].typ == DoctypeNode {
		if forward {
			id = n.doc.nodes[id].nextSibling
		} else {
			id = n.doc.nodes[id].prevSibling
		}
	}
	return id
}
