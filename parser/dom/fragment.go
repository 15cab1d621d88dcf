package dom

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "\u00A0", "&nbsp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "\u00A0", "&nbsp;", "\"", "&quot;")
)

// https://html.spec.whatwg.org/#escapingString
func escapeString(s string, attrVal bool) string {
	if attrVal {
		return attrEscaper.Replace(s)
	}
	return textEscaper.Replace(s)
}

// OuterHTML serializes id including its own tags.
func (d *Document) OuterHTML(id NodeID) string {
	var sb strings.Builder
	w := bufio.NewWriter(&sb)
	if id == DocumentID {
		_ = d.renderChildren(w, id)
	} else {
		_ = d.render(w, id)
	}
	_ = w.Flush()
	return sb.String()
}

// InnerHTML serializes the children of id.
func (d *Document) InnerHTML(id NodeID) string {
	var sb strings.Builder
	w := bufio.NewWriter(&sb)
	_ = d.renderChildren(w, id)
	_ = w.Flush()
	return sb.String()
}

// Render writes the HTML serialization of id to w.
func (d *Document) Render(w io.Writer, id NodeID) error {
	bw := bufio.NewWriter(w)
	var err error
	if id == DocumentID {
		err = d.renderChildren(bw, id)
	} else {
		err = d.render(bw, id)
	}
	if err != nil {
		return errors.Wrap(err, "render")
	}
	return errors.Wrap(bw.Flush(), "render")
}

// https://html.spec.whatwg.org/#serialising-html-fragments
func (d *Document) renderChildren(w *bufio.Writer, id NodeID) error {
	if d.IsHTML(id) && skipsChildren(d.nodes[id].name) {
		return nil
	}
	for c := d.FirstChild(id); c != NoNode; c = d.nodes[c].nextSibling {
		if err := d.render(w, c); err != nil {
			return err
		}
	}
	return nil
}

func skipsChildren(tag string) bool {
	switch tag {
	case "basefont", "bgsound", "frame", "keygen":
		return true
	}
	return IsVoid(tag)
}

func (d *Document) render(w *bufio.Writer, id NodeID) error {
	n := &d.nodes[id]
	switch n.typ {
	case ElementNode:
		w.WriteByte('<')
		w.WriteString(n.name)
		for _, a := range n.attrs {
			w.WriteByte(' ')
			w.WriteString(a.QualifiedName())
			w.WriteString(`="`)
			w.WriteString(escapeString(a.Value, true))
			w.WriteByte('"')
		}
		w.WriteByte('>')
		if n.namespace == Htmlns && IsVoid(n.name) {
			return nil
		}
		if n.namespace == Htmlns {
			switch n.name {
			case "pre", "textarea", "listing":
				if first := n.firstChild; first != NoNode && d.nodes[first].typ == TextNode &&
					strings.HasPrefix(d.Data(first), "\n") {
					w.WriteByte('\n')
				}
			}
		}
		if err := d.renderChildren(w, id); err != nil {
			return err
		}
		w.WriteString("</")
		w.WriteString(n.name)
		_, err := w.WriteString(">")
		return err
	case TextNode:
		if d.rawTextParent(n.parent) {
			_, err := w.WriteString(d.Data(id))
			return err
		}
		_, err := w.WriteString(escapeString(d.Data(id), false))
		return err
	case CommentNode:
		w.WriteString("<!--")
		w.WriteString(d.Data(id))
		_, err := w.WriteString("-->")
		return err
	case DoctypeNode:
		w.WriteString("<!DOCTYPE ")
		w.WriteString(n.name)
		_, err := w.WriteString(">")
		return err
	case DocumentNode:
		return d.renderChildren(w, id)
	}
	return errors.Errorf("unknown node type %d", n.typ)
}

func (d *Document) rawTextParent(p NodeID) bool {
	return d.IsHTML(p, "style", "script", "xmp", "iframe", "noembed", "noframes", "plaintext")
}
