package dom

import (
	"sort"
	"strconv"
	"strings"

	"github.com/xlab/treeprint"
)

// Dump renders the subtree below id in the html5lib tree-construction test
// format, one node per line prefixed with "| ". The node id itself is
// included unless it is the Document node.
func (d *Document) Dump(id NodeID) string {
	var sb strings.Builder
	if id == DocumentID {
		for c := d.FirstChild(id); c != NoNode; c = d.nodes[c].nextSibling {
			d.dump(&sb, c, 0)
		}
	} else if d.valid(id) {
		d.dump(&sb, id, 0)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func indent(sb *strings.Builder, depth int) {
	sb.WriteString("| ")
	for i := 0; i < depth; i++ {
		sb.WriteString("  ")
	}
}

func (d *Document) dump(sb *strings.Builder, id NodeID, depth int) {
	indent(sb, depth)
	sb.WriteString(d.serializeNodeType(id, depth))
	sb.WriteByte('\n')
	childDepth := depth + 1
	if d.IsHTML(id, "template") {
		indent(sb, depth+1)
		sb.WriteString("content\n")
		childDepth++
	}
	for c := d.FirstChild(id); c != NoNode; c = d.nodes[c].nextSibling {
		d.dump(sb, c, childDepth)
	}
}

func (d *Document) serializeNodeType(id NodeID, depth int) string {
	n := &d.nodes[id]
	switch n.typ {
	case ElementNode:
		e := "<"
		if p := n.namespace.Prefix(); p != "" && n.namespace != Htmlns {
			e += p + " "
		}
		e += n.name + ">"
		if len(n.attrs) == 0 {
			return e
		}
		lines := make([]string, 0, len(n.attrs))
		for _, a := range n.attrs {
			name := a.Name
			if p := a.Namespace.Prefix(); p != "" {
				name = p + " " + a.Name
			}
			lines = append(lines, name+"=\""+a.Value+"\"")
		}
		sort.Strings(lines)
		var sb strings.Builder
		sb.WriteString(e)
		for _, l := range lines {
			sb.WriteByte('\n')
			indent(&sb, depth+1)
			sb.WriteString(l)
		}
		return sb.String()
	case TextNode:
		return "\"" + d.Data(id) + "\""
	case CommentNode:
		return "<!-- " + d.Data(id) + " -->"
	case DoctypeNode:
		s := "<!DOCTYPE " + n.name
		if n.publicID != "" || n.systemID != "" {
			s += " \"" + n.publicID + "\" \"" + n.systemID + "\""
		}
		return s + ">"
	case DocumentNode:
		return "#document"
	}
	return ""
}

// Tree renders the subtree below id as an indented tree for debugging.
func (d *Document) Tree(id NodeID) string {
	tp := treeprint.New()
	tp.SetValue(d.label(id))
	d.addBranches(tp, id)
	return tp.String()
}

func (d *Document) addBranches(tp treeprint.Tree, id NodeID) {
	for c := d.FirstChild(id); c != NoNode; c = d.nodes[c].nextSibling {
		if d.nodes[c].firstChild == NoNode {
			tp.AddNode(d.label(c))
			continue
		}
		d.addBranches(tp.AddBranch(d.label(c)), c)
	}
}

func (d *Document) label(id NodeID) string {
	n := &d.nodes[id]
	switch n.typ {
	case ElementNode:
		var sb strings.Builder
		sb.WriteByte('<')
		sb.WriteString(n.name)
		for _, a := range n.attrs {
			sb.WriteByte(' ')
			sb.WriteString(a.QualifiedName())
			sb.WriteByte('=')
			sb.WriteString(strconv.Quote(a.Value))
		}
		sb.WriteByte('>')
		return sb.String()
	case TextNode:
		s := d.Data(id)
		if r := []rune(s); len(r) > 40 {
			s = string(r[:40]) + "..."
		}
		return strconv.Quote(s)
	case CommentNode:
		return "<!--" + d.Data(id) + "-->"
	case DoctypeNode:
		return "<!DOCTYPE " + n.name + ">"
	}
	return n.name
}
