package dom

func (d *Document) checkInsert(op string, parent, child, ref NodeID) error {
	if !d.valid(parent) || !d.valid(child) || (ref != NoNode && !d.valid(ref)) {
		return structural(op, child, ErrInvalidNode)
	}
	if child == DocumentID {
		return structural(op, child, ErrDocumentNode)
	}
	switch d.nodes[parent].typ {
	case DocumentNode, ElementNode:
	default:
		return structural(op, parent, ErrNotContainer)
	}
	if ref != NoNode && d.nodes[ref].parent != parent {
		return structural(op, ref, ErrNotChild)
	}
	if d.Contains(child, parent) {
		return structural(op, child, ErrCycle)
	}
	if d.nodes[child].parent != NoNode {
		return structural(op, child, ErrHasParent)
	}
	return nil
}

// link inserts a detached child before ref (or at the end when ref is NoNode).
func (d *Document) link(parent, child, ref NodeID) {
	d.flush()
	c := &d.nodes[child]
	c.parent = parent
	if ref == NoNode {
		last := d.nodes[parent].lastChild
		c.prevSibling = last
		c.nextSibling = NoNode
		if last != NoNode {
			d.nodes[last].nextSibling = child
		} else {
			d.nodes[parent].firstChild = child
		}
		d.nodes[parent].lastChild = child
		return
	}
	prev := d.nodes[ref].prevSibling
	c.prevSibling = prev
	c.nextSibling = ref
	d.nodes[ref].prevSibling = child
	if prev != NoNode {
		d.nodes[prev].nextSibling = child
	} else {
		d.nodes[parent].firstChild = child
	}
}

func (d *Document) unlink(id NodeID) {
	d.flush()
	n := &d.nodes[id]
	if n.parent == NoNode {
		return
	}
	p := &d.nodes[n.parent]
	if n.prevSibling != NoNode {
		d.nodes[n.prevSibling].nextSibling = n.nextSibling
	} else {
		p.firstChild = n.nextSibling
	}
	if n.nextSibling != NoNode {
		d.nodes[n.nextSibling].prevSibling = n.prevSibling
	} else {
		p.lastChild = n.prevSibling
	}
	n.parent, n.prevSibling, n.nextSibling = NoNode, NoNode, NoNode
}

// AppendChild attaches the detached node child as the last child of parent.
func (d *Document) AppendChild(parent, child NodeID) error {
	if err := d.checkInsert("append child", parent, child, NoNode); err != nil {
		return err
	}
	d.link(parent, child, NoNode)
	return nil
}

// InsertBefore attaches the detached node child right before ref, which must
// be a child of parent. A NoNode ref appends.
func (d *Document) InsertBefore(parent, child, ref NodeID) error {
	if err := d.checkInsert("insert before", parent, child, ref); err != nil {
		return err
	}
	d.link(parent, child, ref)
	return nil
}

// InsertAfter attaches the detached node child right after ref.
func (d *Document) InsertAfter(parent, child, ref NodeID) error {
	if err := d.checkInsert("insert after", parent, child, ref); err != nil {
		return err
	}
	d.link(parent, child, d.NextSibling(ref))
	return nil
}

// RemoveChild detaches child from parent. The node stays valid and can be
// inserted elsewhere.
func (d *Document) RemoveChild(parent, child NodeID) error {
	if !d.valid(parent) || !d.valid(child) {
		return structural("remove child", child, ErrInvalidNode)
	}
	if d.nodes[child].parent != parent {
		return structural("remove child", child, ErrNotChild)
	}
	d.unlink(child)
	return nil
}

// Detach removes id from its parent, if it has one.
func (d *Document) Detach(id NodeID) {
	if !d.valid(id) || id == DocumentID {
		return
	}
	d.unlink(id)
}

// Decompose removes id and its subtree from the tree.
func (d *Document) Decompose(id NodeID) error {
	if !d.valid(id) {
		return structural("decompose", id, ErrInvalidNode)
	}
	if id == DocumentID {
		return structural("decompose", id, ErrDocumentNode)
	}
	d.unlink(id)
	return nil
}

// ReplaceWith puts the detached node repl where id is and detaches id.
func (d *Document) ReplaceWith(id, repl NodeID) error {
	if !d.valid(id) {
		return structural("replace with", id, ErrInvalidNode)
	}
	parent := d.nodes[id].parent
	if parent == NoNode {
		return structural("replace with", id, ErrNotChild)
	}
	if err := d.checkInsert("replace with", parent, repl, id); err != nil {
		return err
	}
	d.link(parent, repl, id)
	d.unlink(id)
	return nil
}

// MoveChildren reparents every child of from to the end of to.
func (d *Document) MoveChildren(from, to NodeID) error {
	if !d.valid(from) || !d.valid(to) {
		return structural("move children", from, ErrInvalidNode)
	}
	if d.nodes[to].typ != ElementNode && d.nodes[to].typ != DocumentNode {
		return structural("move children", to, ErrNotContainer)
	}
	if d.Contains(from, to) {
		return structural("move children", to, ErrCycle)
	}
	for c := d.nodes[from].firstChild; c != NoNode; c = d.nodes[from].firstChild {
		d.unlink(c)
		d.link(to, c, NoNode)
	}
	return nil
}

// Unwrap replaces the element id with its children. Detached or non-element
// nodes are left alone.
func (d *Document) Unwrap(id NodeID) error {
	if !d.valid(id) {
		return structural("unwrap", id, ErrInvalidNode)
	}
	parent := d.nodes[id].parent
	if d.nodes[id].typ != ElementNode || parent == NoNode {
		return nil
	}
	for c := d.nodes[id].firstChild; c != NoNode; c = d.nodes[id].firstChild {
		d.unlink(c)
		d.link(parent, c, id)
	}
	d.unlink(id)
	return nil
}

// StripTags decomposes every descendant element of root whose tag is listed.
func (d *Document) StripTags(root NodeID, tags ...string) {
	for _, id := range d.matchingDescendants(root, tags) {
		d.unlink(id)
	}
}

// UnwrapTags unwraps every descendant element of root whose tag is listed.
func (d *Document) UnwrapTags(root NodeID, tags ...string) {
	for _, id := range d.matchingDescendants(root, tags) {
		_ = d.Unwrap(id)
	}
}

func (d *Document) matchingDescendants(root NodeID, tags []string) []NodeID {
	var out []NodeID
	w := d.Descendants(root)
	for w.Next() {
		id := w.Node()
		if d.nodes[id].typ != ElementNode {
			continue
		}
		for _, t := range tags {
			if d.nodes[id].name == t {
				out = append(out, id)
				break
			}
		}
	}
	return out
}

// MergeTextNodes joins adjacent text nodes below root and drops empty ones.
func (d *Document) MergeTextNodes(root NodeID) {
	d.flush()
	var parents []NodeID
	w := d.Walk(root)
	for w.Next() {
		if d.nodes[w.Node()].firstChild != NoNode {
			parents = append(parents, w.Node())
		}
	}
	for _, p := range parents {
		c := d.nodes[p].firstChild
		for c != NoNode {
			next := d.nodes[c].nextSibling
			if d.nodes[c].typ != TextNode {
				c = next
				continue
			}
			for next != NoNode && d.nodes[next].typ == TextNode {
				d.nodes[c].data += d.nodes[next].data
				after := d.nodes[next].nextSibling
				d.unlink(next)
				next = after
			}
			if d.nodes[c].data == "" {
				d.unlink(c)
			}
			c = next
		}
	}
}

// Clone copies id into a new detached node of the same document. A deep clone
// copies the whole subtree. The Document node cannot be cloned.
func (d *Document) Clone(id NodeID, deep bool) NodeID {
	return d.Import(d, id, deep)
}

// Import copies a node of src, and its subtree when deep is set, into d as a
// detached node.
func (d *Document) Import(src *Document, id NodeID, deep bool) NodeID {
	if !src.valid(id) || id == DocumentID {
		return NoNode
	}
	n := src.nodes[id]
	cp := node{
		typ:       n.typ,
		name:      n.name,
		namespace: n.namespace,
		data:      src.Data(id),
		publicID:  n.publicID,
		systemID:  n.systemID,
	}
	if len(n.attrs) > 0 {
		cp.attrs = make([]Attribute, len(n.attrs))
		copy(cp.attrs, n.attrs)
	}
	out := d.alloc(cp)
	if deep {
		for c := n.firstChild; c != NoNode; c = src.nodes[c].nextSibling {
			d.link(out, d.Import(src, c, true), NoNode)
		}
	}
	return out
}
