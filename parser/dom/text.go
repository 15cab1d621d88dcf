package dom

import "strings"

// TextOptions control Text.
type TextOptions struct {
	// Deep includes text of all descendants instead of direct children only.
	Deep bool
	// Separator is placed between the pieces of text.
	Separator string
	// Strip trims surrounding whitespace from every piece.
	Strip bool
	// SkipEmpty drops pieces that are empty after stripping.
	SkipEmpty bool
}

// TextContent concatenates the data of every descendant text node of id. For
// a text or comment node it returns the node's own data.
func (d *Document) TextContent(id NodeID) string {
	return d.Text(id, TextOptions{Deep: true})
}

// Text collects text below id according to opts.
func (d *Document) Text(id NodeID, opts TextOptions) string {
	switch d.Type(id) {
	case TextNode, CommentNode:
		return piece(d.Data(id), opts.Strip)
	case 0, DoctypeNode:
		return ""
	}
	var parts []string
	add := func(t NodeID) {
		s := piece(d.Data(t), opts.Strip)
		if opts.SkipEmpty && s == "" {
			return
		}
		parts = append(parts, s)
	}
	if opts.Deep {
		w := d.Descendants(id)
		for w.Next() {
			if d.nodes[w.Node()].typ == TextNode {
				add(w.Node())
			}
		}
	} else {
		for c := d.FirstChild(id); c != NoNode; c = d.nodes[c].nextSibling {
			if d.nodes[c].typ == TextNode {
				add(c)
			}
		}
	}
	return strings.Join(parts, opts.Separator)
}

// OwnText concatenates the direct text children of id.
func (d *Document) OwnText(id NodeID) string {
	return d.Text(id, TextOptions{})
}

// IsEmptyText reports whether id is a text node holding only whitespace.
func (d *Document) IsEmptyText(id NodeID) bool {
	return d.Type(id) == TextNode && strings.TrimSpace(d.Data(id)) == ""
}

func piece(s string, strip bool) string {
	if strip {
		return strings.TrimSpace(s)
	}
	return s
}
