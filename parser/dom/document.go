package dom

import "strings"

// NodeID is a handle to a node stored in a Document. The zero value refers to
// no node.
type NodeID int32

const (
	// NoNode is the missing node.
	NoNode NodeID = 0
	// DocumentID is the handle of the Document node of every Document.
	DocumentID NodeID = 1
)

// NodeType is the kind of a node.
type NodeType uint8

const (
	DocumentNode NodeType = iota + 1
	ElementNode
	TextNode
	CommentNode
	DoctypeNode
)

func (t NodeType) String() string {
	switch t {
	case DocumentNode:
		return "document"
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case CommentNode:
		return "comment"
	case DoctypeNode:
		return "doctype"
	}
	return "invalid"
}

// QuirksMode is the document compatibility mode picked from the doctype.
type QuirksMode uint8

const (
	NoQuirks QuirksMode = iota
	LimitedQuirks
	Quirks
)

func (q QuirksMode) String() string {
	switch q {
	case Quirks:
		return "quirks"
	case LimitedQuirks:
		return "limited-quirks"
	}
	return "no-quirks"
}

type node struct {
	typ       NodeType
	name      string
	namespace Namespace
	data      string
	publicID  string
	systemID  string
	attrs     []Attribute

	parent, firstChild, lastChild, prevSibling, nextSibling NodeID
}

// pendingText accumulates character data for the text node that is currently
// growing, so appending one rune at a time stays linear.
type pendingText struct {
	id  NodeID
	buf []byte
}

// Document owns every node of one tree. Nodes refer to each other by NodeID,
// so removing or moving a node never leaves a dangling parent reference.
//
// A Document is safe for concurrent reads. Mutations need external
// synchronization.
type Document struct {
	nodes   []node
	quirks  QuirksMode
	pending pendingText
}

// NewDocument returns a Document that contains only the Document node.
func NewDocument() *Document {
	d := &Document{nodes: make([]node, 2, 64)}
	d.nodes[DocumentID] = node{typ: DocumentNode, name: "#document"}
	return d
}

// Len returns the number of nodes ever allocated in the document, attached or not.
func (d *Document) Len() int {
	return len(d.nodes) - 1
}

// Quirks returns the compatibility mode of the document.
func (d *Document) Quirks() QuirksMode {
	return d.quirks
}

// SetQuirks sets the compatibility mode of the document.
func (d *Document) SetQuirks(q QuirksMode) {
	d.quirks = q
}

func (d *Document) valid(id NodeID) bool {
	return id > NoNode && int(id) < len(d.nodes)
}

func (d *Document) alloc(n node) NodeID {
	d.nodes = append(d.nodes, n)
	return NodeID(len(d.nodes) - 1)
}

// CreateElement allocates a detached element. HTML tag names are lowercased.
func (d *Document) CreateElement(tag string, ns Namespace, attrs ...Attribute) NodeID {
	if ns == Htmlns {
		tag = strings.ToLower(tag)
	}
	var a []Attribute
	if len(attrs) > 0 {
		a = make([]Attribute, len(attrs))
		copy(a, attrs)
	}
	return d.alloc(node{typ: ElementNode, name: tag, namespace: ns, attrs: a})
}

// CreateText allocates a detached text node.
func (d *Document) CreateText(data string) NodeID {
	return d.alloc(node{typ: TextNode, name: "#text", data: data})
}

// CreateComment allocates a detached comment node.
func (d *Document) CreateComment(data string) NodeID {
	return d.alloc(node{typ: CommentNode, name: "#comment", data: data})
}

// CreateDoctype allocates a detached doctype node.
func (d *Document) CreateDoctype(name, publicID, systemID string) NodeID {
	return d.alloc(node{typ: DoctypeNode, name: name, publicID: publicID, systemID: systemID})
}

// Type returns the node type, or 0 for an invalid handle.
func (d *Document) Type(id NodeID) NodeType {
	if !d.valid(id) {
		return 0
	}
	return d.nodes[id].typ
}

// IsElement reports whether id is an element.
func (d *Document) IsElement(id NodeID) bool {
	return d.Type(id) == ElementNode
}

// Name returns the tag name of an element, the name of a doctype, or the
// DOM node name ("#text", "#comment", "#document") of other nodes.
func (d *Document) Name(id NodeID) string {
	if !d.valid(id) {
		return ""
	}
	return d.nodes[id].name
}

// Namespace returns the element namespace.
func (d *Document) Namespace(id NodeID) Namespace {
	if !d.valid(id) {
		return NoNamespace
	}
	return d.nodes[id].namespace
}

// IsHTML reports whether id is an element in the HTML namespace with one of
// the given tag names. With no names it only checks the namespace.
func (d *Document) IsHTML(id NodeID, tags ...string) bool {
	if d.Type(id) != ElementNode || d.nodes[id].namespace != Htmlns {
		return false
	}
	if len(tags) == 0 {
		return true
	}
	name := d.nodes[id].name
	for _, t := range tags {
		if name == t {
			return true
		}
	}
	return false
}

// Data returns the character data of a text or comment node.
func (d *Document) Data(id NodeID) string {
	if !d.valid(id) {
		return ""
	}
	if id == d.pending.id {
		return string(d.pending.buf)
	}
	return d.nodes[id].data
}

// SetData replaces the character data of a text or comment node.
func (d *Document) SetData(id NodeID, data string) {
	if !d.valid(id) {
		return
	}
	d.flush()
	d.nodes[id].data = data
}

// AppendData appends to the character data of a text or comment node.
func (d *Document) AppendData(id NodeID, s string) {
	if !d.valid(id) {
		return
	}
	if d.pending.id != id {
		d.flush()
		d.pending.id = id
		d.pending.buf = append(d.pending.buf[:0], d.nodes[id].data...)
	}
	d.pending.buf = append(d.pending.buf, s...)
}

// Flush materializes buffered character data. Parsers call it once the tree
// is complete; every mutation calls it implicitly.
func (d *Document) Flush() {
	d.flush()
}

func (d *Document) flush() {
	if d.pending.id == NoNode {
		return
	}
	d.nodes[d.pending.id].data = string(d.pending.buf)
	d.pending.id = NoNode
	d.pending.buf = d.pending.buf[:0]
}

// PublicID returns the public identifier of a doctype node.
func (d *Document) PublicID(id NodeID) string {
	if !d.valid(id) {
		return ""
	}
	return d.nodes[id].publicID
}

// SystemID returns the system identifier of a doctype node.
func (d *Document) SystemID(id NodeID) string {
	if !d.valid(id) {
		return ""
	}
	return d.nodes[id].systemID
}

// Attrs returns the attributes of an element in source order. The slice is
// owned by the document and must not be modified.
func (d *Document) Attrs(id NodeID) []Attribute {
	if !d.valid(id) {
		return nil
	}
	return d.nodes[id].attrs
}

// Attr looks up an attribute without a namespace. Names are matched
// case-insensitively on HTML elements.
func (d *Document) Attr(id NodeID, name string) (string, bool) {
	i := d.attrIndex(id, name)
	if i < 0 {
		return "", false
	}
	return d.nodes[id].attrs[i].Value, true
}

// HasAttr reports whether the element has the named attribute.
func (d *Document) HasAttr(id NodeID, name string) bool {
	return d.attrIndex(id, name) >= 0
}

func (d *Document) attrIndex(id NodeID, name string) int {
	if d.Type(id) != ElementNode {
		return -1
	}
	n := &d.nodes[id]
	fold := n.namespace == Htmlns
	for i, a := range n.attrs {
		if a.Namespace != NoNamespace {
			continue
		}
		if a.Name == name || (fold && strings.EqualFold(a.Name, name)) {
			return i
		}
	}
	return -1
}

// SetAttr sets or adds an attribute. New attributes are appended.
func (d *Document) SetAttr(id NodeID, name, value string) {
	if d.Type(id) != ElementNode {
		return
	}
	if i := d.attrIndex(id, name); i >= 0 {
		d.nodes[id].attrs[i].Value = value
		return
	}
	if d.nodes[id].namespace == Htmlns {
		name = strings.ToLower(name)
	}
	d.nodes[id].attrs = append(d.nodes[id].attrs, Attribute{Name: name, Value: value})
}

// RemoveAttr deletes an attribute, reporting whether it was present.
func (d *Document) RemoveAttr(id NodeID, name string) bool {
	i := d.attrIndex(id, name)
	if i < 0 {
		return false
	}
	attrs := d.nodes[id].attrs
	d.nodes[id].attrs = append(attrs[:i:i], attrs[i+1:]...)
	return true
}

// MergeAttrs adds every attribute from attrs that the element does not have
// yet, keeping existing values.
func (d *Document) MergeAttrs(id NodeID, attrs []Attribute) {
	if d.Type(id) != ElementNode {
		return
	}
	for _, a := range attrs {
		found := false
		for _, b := range d.nodes[id].attrs {
			if a.Namespace == b.Namespace && a.Name == b.Name {
				found = true
				break
			}
		}
		if !found {
			d.nodes[id].attrs = append(d.nodes[id].attrs, a)
		}
	}
}

// Parent returns the parent of id, or NoNode.
func (d *Document) Parent(id NodeID) NodeID {
	if !d.valid(id) {
		return NoNode
	}
	return d.nodes[id].parent
}

// FirstChild returns the first child of id, or NoNode.
func (d *Document) FirstChild(id NodeID) NodeID {
	if !d.valid(id) {
		return NoNode
	}
	return d.nodes[id].firstChild
}

// LastChild returns the last child of id, or NoNode.
func (d *Document) LastChild(id NodeID) NodeID {
	if !d.valid(id) {
		return NoNode
	}
	return d.nodes[id].lastChild
}

// NextSibling returns the node after id under the same parent, or NoNode.
func (d *Document) NextSibling(id NodeID) NodeID {
	if !d.valid(id) {
		return NoNode
	}
	return d.nodes[id].nextSibling
}

// PrevSibling returns the node before id under the same parent, or NoNode.
func (d *Document) PrevSibling(id NodeID) NodeID {
	if !d.valid(id) {
		return NoNode
	}
	return d.nodes[id].prevSibling
}

// NextElementSibling skips non-element siblings.
func (d *Document) NextElementSibling(id NodeID) NodeID {
	for s := d.NextSibling(id); s != NoNode; s = d.nodes[s].nextSibling {
		if d.nodes[s].typ == ElementNode {
			return s
		}
	}
	return NoNode
}

// PrevElementSibling skips non-element siblings.
func (d *Document) PrevElementSibling(id NodeID) NodeID {
	for s := d.PrevSibling(id); s != NoNode; s = d.nodes[s].prevSibling {
		if d.nodes[s].typ == ElementNode {
			return s
		}
	}
	return NoNode
}

// Children returns all child nodes of id in order.
func (d *Document) Children(id NodeID) []NodeID {
	var out []NodeID
	for c := d.FirstChild(id); c != NoNode; c = d.nodes[c].nextSibling {
		out = append(out, c)
	}
	return out
}

// ChildElements returns the element children of id in order.
func (d *Document) ChildElements(id NodeID) []NodeID {
	var out []NodeID
	for c := d.FirstChild(id); c != NoNode; c = d.nodes[c].nextSibling {
		if d.nodes[c].typ == ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// HasChildNodes reports whether id has any children.
func (d *Document) HasChildNodes(id NodeID) bool {
	return d.FirstChild(id) != NoNode
}

// Ancestors returns the ancestors of id from its parent up to the Document node.
func (d *Document) Ancestors(id NodeID) []NodeID {
	var out []NodeID
	for p := d.Parent(id); p != NoNode; p = d.nodes[p].parent {
		out = append(out, p)
	}
	return out
}

// Contains reports whether other is id or one of its descendants.
func (d *Document) Contains(id, other NodeID) bool {
	for n := other; n != NoNode; n = d.Parent(n) {
		if n == id {
			return true
		}
	}
	return false
}

// Doctype returns the doctype child of the Document node, if any.
func (d *Document) Doctype() NodeID {
	for c := d.FirstChild(DocumentID); c != NoNode; c = d.nodes[c].nextSibling {
		if d.nodes[c].typ == DoctypeNode {
			return c
		}
	}
	return NoNode
}

// RootElement returns the document element (normally <html>).
func (d *Document) RootElement() NodeID {
	for c := d.FirstChild(DocumentID); c != NoNode; c = d.nodes[c].nextSibling {
		if d.nodes[c].typ == ElementNode {
			return c
		}
	}
	return NoNode
}

// Head returns the <head> child of the root element.
func (d *Document) Head() NodeID {
	return d.childHTML(d.RootElement(), "head")
}

// Body returns the <body> (or <frameset>) child of the root element.
func (d *Document) Body() NodeID {
	if b := d.childHTML(d.RootElement(), "body"); b != NoNode {
		return b
	}
	return d.childHTML(d.RootElement(), "frameset")
}

func (d *Document) childHTML(parent NodeID, tag string) NodeID {
	for c := d.FirstChild(parent); c != NoNode; c = d.nodes[c].nextSibling {
		if d.IsHTML(c, tag) {
			return c
		}
	}
	return NoNode
}
