package dom

// Walker iterates a subtree in depth-first pre-order. It reads the tree
// lazily, so it must not outlive mutations of the subtree it walks.
type Walker struct {
	doc         *Document
	root, start NodeID
	cur         NodeID
	started     bool
	skip        bool
}

// Walk returns a Walker over root and all of its descendants.
func (d *Document) Walk(root NodeID) *Walker {
	return &Walker{doc: d, root: root, start: root}
}

// Descendants returns a Walker over the descendants of root, excluding root.
func (d *Document) Descendants(root NodeID) *Walker {
	return &Walker{doc: d, root: root, start: d.FirstChild(root)}
}

// Next advances to the next node and reports whether there is one.
func (w *Walker) Next() bool {
	if !w.started {
		w.started = true
		w.cur = w.start
		if !w.doc.valid(w.cur) {
			w.cur = NoNode
		}
		return w.cur != NoNode
	}
	if w.cur == NoNode {
		return false
	}
	w.cur = w.successor(w.cur)
	return w.cur != NoNode
}

// Node returns the current node.
func (w *Walker) Node() NodeID {
	return w.cur
}

// SkipChildren makes the next call to Next skip the descendants of the
// current node.
func (w *Walker) SkipChildren() {
	w.skip = true
}

// Reset rewinds the walker to its first node.
func (w *Walker) Reset() {
	w.started = false
	w.cur = NoNode
	w.skip = false
}

func (w *Walker) successor(id NodeID) NodeID {
	d := w.doc
	skip := w.skip
	w.skip = false
	if !skip {
		if c := d.nodes[id].firstChild; c != NoNode {
			return c
		}
	}
	for n := id; n != NoNode && n != w.root; n = d.nodes[n].parent {
		if s := d.nodes[n].nextSibling; s != NoNode {
			return s
		}
	}
	return NoNode
}

// Traverse calls fn for every node below and including root in document
// order. Text nodes are only visited with includeText, and whitespace-only
// text nodes are dropped when skipEmpty is also set.
func (d *Document) Traverse(root NodeID, includeText, skipEmpty bool, fn func(NodeID) bool) {
	w := d.Walk(root)
	for w.Next() {
		id := w.Node()
		switch d.nodes[id].typ {
		case TextNode:
			if !includeText || (skipEmpty && d.IsEmptyText(id)) {
				continue
			}
		case CommentNode, DoctypeNode:
			continue
		}
		if !fn(id) {
			return
		}
	}
}

// ElementIndex returns the 1-based position of id among its element siblings,
// counting from the end when fromEnd is set. Only siblings for which same
// returns true are counted; a nil same counts every element.
func (d *Document) ElementIndex(id NodeID, fromEnd bool, same func(NodeID) bool) int {
	i := 1
	step := d.PrevElementSibling
	if fromEnd {
		step = d.NextElementSibling
	}
	for s := step(id); s != NoNode; s = step(s) {
		if same == nil || same(s) {
			i++
		}
	}
	return i
}
