package dom

// Node is a lightweight reference to a node of a Document. The zero Node
// refers to nothing. A Node stays valid for as long as its Document.
type Node struct {
	doc *Document
	id  NodeID
}

// Node returns a reference to id.
func (d *Document) Node(id NodeID) Node {
	if !d.valid(id) {
		return Node{}
	}
	return Node{doc: d, id: id}
}

// Nodes wraps a list of handles.
func (d *Document) Nodes(ids []NodeID) []Node {
	out := make([]Node, 0, len(ids))
	for _, id := range ids {
		out = append(out, d.Node(id))
	}
	return out
}

func (n Node) IsZero() bool          { return n.doc == nil }
func (n Node) ID() NodeID            { return n.id }
func (n Node) Document() *Document   { return n.doc }
func (n Node) Type() NodeType        { return n.doc.Type(n.id) }
func (n Node) Namespace() Namespace  { return n.doc.Namespace(n.id) }
func (n Node) Attrs() []Attribute    { return n.doc.Attrs(n.id) }
func (n Node) HasAttr(k string) bool { return n.doc.HasAttr(n.id, k) }
func (n Node) Data() string          { return n.doc.Data(n.id) }
func (n Node) TextContent() string   { return n.doc.TextContent(n.id) }
func (n Node) OuterHTML() string     { return n.doc.OuterHTML(n.id) }
func (n Node) InnerHTML() string     { return n.doc.InnerHTML(n.id) }

// Tag returns the tag name of an element and "" for other nodes.
func (n Node) Tag() string {
	if n.IsZero() || n.Type() != ElementNode {
		return ""
	}
	return n.doc.Name(n.id)
}

// Attr returns the value of an attribute.
func (n Node) Attr(name string) (string, bool) {
	if n.IsZero() {
		return "", false
	}
	return n.doc.Attr(n.id, name)
}

// AttrOr returns the value of an attribute, or def when it is absent.
func (n Node) AttrOr(name, def string) string {
	if v, ok := n.Attr(name); ok {
		return v
	}
	return def
}

// Text collects text below the node.
func (n Node) Text(opts TextOptions) string {
	if n.IsZero() {
		return ""
	}
	return n.doc.Text(n.id, opts)
}

func (n Node) Parent() Node      { return n.ref(n.doc.Parent(n.id)) }
func (n Node) FirstChild() Node  { return n.ref(n.doc.FirstChild(n.id)) }
func (n Node) LastChild() Node   { return n.ref(n.doc.LastChild(n.id)) }
func (n Node) NextSibling() Node { return n.ref(n.doc.NextSibling(n.id)) }
func (n Node) PrevSibling() Node { return n.ref(n.doc.PrevSibling(n.id)) }

// Children returns the child elements of the node.
func (n Node) Children() []Node {
	if n.IsZero() {
		return nil
	}
	return n.doc.Nodes(n.doc.ChildElements(n.id))
}

// ChildNodes returns every child of the node, text and comments included.
func (n Node) ChildNodes() []Node {
	if n.IsZero() {
		return nil
	}
	return n.doc.Nodes(n.doc.Children(n.id))
}

// String returns the outer HTML of the node.
func (n Node) String() string {
	if n.IsZero() {
		return ""
	}
	return n.OuterHTML()
}

func (n Node) ref(id NodeID) Node {
	if n.IsZero() || id == NoNode {
		return Node{}
	}
	return Node{doc: n.doc, id: id}
}

func (n Node) same(other Node, op string) error {
	if n.IsZero() || other.IsZero() {
		return structural(op, other.id, ErrInvalidNode)
	}
	if n.doc != other.doc {
		return structural(op, other.id, ErrForeignNode)
	}
	return nil
}

// AppendChild attaches child as the last child of n. Use Import first to move
// nodes between documents.
func (n Node) AppendChild(child Node) error {
	if err := n.same(child, "append child"); err != nil {
		return err
	}
	return n.doc.AppendChild(n.id, child.id)
}

// InsertBefore attaches the detached node x right before n.
func (n Node) InsertBefore(x Node) error {
	if err := n.same(x, "insert before"); err != nil {
		return err
	}
	return n.doc.InsertBefore(n.doc.Parent(n.id), x.id, n.id)
}

// InsertAfter attaches the detached node x right after n.
func (n Node) InsertAfter(x Node) error {
	if err := n.same(x, "insert after"); err != nil {
		return err
	}
	return n.doc.InsertAfter(n.doc.Parent(n.id), x.id, n.id)
}

// ReplaceWith puts the detached node x in place of n.
func (n Node) ReplaceWith(x Node) error {
	if err := n.same(x, "replace with"); err != nil {
		return err
	}
	return n.doc.ReplaceWith(n.id, x.id)
}

// Decompose removes n from the tree.
func (n Node) Decompose() error {
	if n.IsZero() {
		return structural("decompose", NoNode, ErrInvalidNode)
	}
	return n.doc.Decompose(n.id)
}
