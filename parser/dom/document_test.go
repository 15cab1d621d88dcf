package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildSample creates
//
//	<html><head><title>t</title></head><body><div id="a" class="x y"><p>one</p>two<p>three</p></div><!--c--></body></html>
func buildSample(t *testing.T) (*Document, map[string]NodeID) {
	t.Helper()
	d := NewDocument()
	ids := map[string]NodeID{}
	add := func(parent NodeID, key string, id NodeID) NodeID {
		require.NoError(t, d.AppendChild(parent, id))
		if key != "" {
			ids[key] = id
		}
		return id
	}
	html := add(DocumentID, "html", d.CreateElement("html", Htmlns))
	head := add(html, "head", d.CreateElement("head", Htmlns))
	title := add(head, "title", d.CreateElement("title", Htmlns))
	add(title, "", d.CreateText("t"))
	body := add(html, "body", d.CreateElement("body", Htmlns))
	div := add(body, "div", d.CreateElement("DIV", Htmlns,
		Attribute{Name: "id", Value: "a"}, Attribute{Name: "class", Value: "x y"}))
	p1 := add(div, "p1", d.CreateElement("p", Htmlns))
	add(p1, "one", d.CreateText("one"))
	add(div, "two", d.CreateText("two"))
	p2 := add(div, "p2", d.CreateElement("p", Htmlns))
	add(p2, "three", d.CreateText("three"))
	add(body, "comment", d.CreateComment("c"))
	return d, ids
}

func TestDocumentAccessors(t *testing.T) {
	t.Parallel()
	d, ids := buildSample(t)

	assert.Equal(t, ids["html"], d.RootElement())
	assert.Equal(t, ids["head"], d.Head())
	assert.Equal(t, ids["body"], d.Body())
	assert.Equal(t, NoNode, d.Doctype())
	assert.Equal(t, "div", d.Name(ids["div"]))
	assert.Equal(t, ElementNode, d.Type(ids["div"]))
	assert.Equal(t, TextNode, d.Type(ids["two"]))
	assert.Equal(t, NodeType(0), d.Type(NodeID(9999)))
	assert.True(t, d.IsHTML(ids["div"], "span", "div"))
	assert.False(t, d.IsHTML(ids["two"]))

	assert.Equal(t, ids["div"], d.Parent(ids["p1"]))
	assert.Equal(t, ids["two"], d.NextSibling(ids["p1"]))
	assert.Equal(t, ids["p2"], d.NextElementSibling(ids["p1"]))
	assert.Equal(t, ids["p1"], d.PrevElementSibling(ids["p2"]))
	assert.Equal(t, []NodeID{ids["p1"], ids["two"], ids["p2"]}, d.Children(ids["div"]))
	assert.Equal(t, []NodeID{ids["p1"], ids["p2"]}, d.ChildElements(ids["div"]))
	assert.Equal(t, []NodeID{ids["p1"], ids["div"], ids["body"], ids["html"], DocumentID},
		d.Ancestors(ids["one"]))
	assert.True(t, d.Contains(ids["body"], ids["three"]))
	assert.False(t, d.Contains(ids["p1"], ids["three"]))
}

func TestAttributes(t *testing.T) {
	t.Parallel()
	d, ids := buildSample(t)
	div := ids["div"]

	v, ok := d.Attr(div, "ID")
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	_, ok = d.Attr(div, "title")
	assert.False(t, ok)

	d.SetAttr(div, "Title", "hello")
	assert.Equal(t, Attribute{Name: "title", Value: "hello"}, d.Attrs(div)[2])
	d.SetAttr(div, "id", "b")
	v, _ = d.Attr(div, "id")
	assert.Equal(t, "b", v)

	assert.True(t, d.RemoveAttr(div, "class"))
	assert.False(t, d.RemoveAttr(div, "class"))
	assert.Len(t, d.Attrs(div), 2)

	d.MergeAttrs(div, []Attribute{{Name: "id", Value: "ignored"}, {Name: "lang", Value: "en"}})
	v, _ = d.Attr(div, "id")
	assert.Equal(t, "b", v)
	assert.True(t, d.HasAttr(div, "lang"))

	// Attribute names on foreign elements keep their case.
	svg := d.CreateElement("svg", Svgns, Attribute{Name: "viewBox", Value: "0 0 1 1"})
	assert.True(t, d.HasAttr(svg, "viewBox"))
	assert.False(t, d.HasAttr(svg, "viewbox"))
}

func TestAppendData(t *testing.T) {
	t.Parallel()
	d := NewDocument()
	p := d.CreateElement("p", Htmlns)
	require.NoError(t, d.AppendChild(DocumentID, p))
	txt := d.CreateText("a")
	require.NoError(t, d.AppendChild(p, txt))

	for _, s := range []string{"b", "c", "d"} {
		d.AppendData(txt, s)
	}
	assert.Equal(t, "abcd", d.Data(txt))

	other := d.CreateText("x")
	d.AppendData(other, "y")
	assert.Equal(t, "abcd", d.Data(txt))
	assert.Equal(t, "xy", d.Data(other))

	d.Flush()
	assert.Equal(t, "abcd", d.nodes[txt].data)
	assert.Equal(t, "xy", d.nodes[other].data)
}

func TestText(t *testing.T) {
	t.Parallel()
	d, ids := buildSample(t)
	d.AppendData(ids["two"], "  ")
	empty := d.CreateText(" \n ")
	require.NoError(t, d.AppendChild(ids["div"], empty))

	tests := []struct {
		name string
		opts TextOptions
		want string
	}{
		{"own", TextOptions{}, "two   \n "},
		{"deep", TextOptions{Deep: true}, "onetwo  three \n "},
		{"separator", TextOptions{Deep: true, Separator: "|"}, "one|two  |three| \n "},
		{"strip", TextOptions{Deep: true, Separator: "|", Strip: true}, "one|two|three|"},
		{"skip empty", TextOptions{Deep: true, Separator: "|", Strip: true, SkipEmpty: true}, "one|two|three"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Text(ids["div"], tt.opts))
		})
	}
	assert.Equal(t, "c", d.TextContent(ids["comment"]))
	assert.True(t, d.IsEmptyText(empty))
	assert.False(t, d.IsEmptyText(ids["two"]))
}

func TestWalker(t *testing.T) {
	t.Parallel()
	d, ids := buildSample(t)

	var got []NodeID
	w := d.Walk(ids["div"])
	for w.Next() {
		got = append(got, w.Node())
	}
	want := []NodeID{ids["div"], ids["p1"], ids["one"], ids["two"], ids["p2"], ids["three"]}
	assert.Equal(t, want, got)

	// Restartable.
	w.Reset()
	got = got[:0]
	for w.Next() {
		got = append(got, w.Node())
		if w.Node() == ids["p1"] {
			w.SkipChildren()
		}
	}
	assert.Equal(t, []NodeID{ids["div"], ids["p1"], ids["two"], ids["p2"], ids["three"]}, got)

	got = got[:0]
	w = d.Descendants(ids["div"])
	for w.Next() {
		got = append(got, w.Node())
	}
	assert.Equal(t, want[1:], got)

	got = got[:0]
	d.Traverse(ids["body"], false, false, func(id NodeID) bool {
		got = append(got, id)
		return true
	})
	assert.Equal(t, []NodeID{ids["body"], ids["div"], ids["p1"], ids["p2"]}, got)
}

func TestElementIndex(t *testing.T) {
	t.Parallel()
	d, ids := buildSample(t)
	assert.Equal(t, 1, d.ElementIndex(ids["p1"], false, nil))
	assert.Equal(t, 2, d.ElementIndex(ids["p2"], false, nil))
	assert.Equal(t, 1, d.ElementIndex(ids["p2"], true, nil))
	assert.Equal(t, 2, d.ElementIndex(ids["p1"], true, nil))
	none := func(NodeID) bool { return false }
	assert.Equal(t, 1, d.ElementIndex(ids["p2"], false, none))
}

func TestNodeHandle(t *testing.T) {
	t.Parallel()
	d, ids := buildSample(t)
	div := d.Node(ids["div"])

	assert.Equal(t, "div", div.Tag())
	assert.Equal(t, "a", div.AttrOr("id", "z"))
	assert.Equal(t, "z", div.AttrOr("lang", "z"))
	assert.Equal(t, "body", div.Parent().Tag())
	assert.Len(t, div.Children(), 2)
	assert.Len(t, div.ChildNodes(), 3)
	assert.Equal(t, "onetwothree", div.TextContent())
	assert.Equal(t, "", div.FirstChild().FirstChild().FirstChild().Tag())
	assert.True(t, div.FirstChild().FirstChild().FirstChild().IsZero())
	assert.True(t, d.Node(NodeID(1234)).IsZero())
	assert.Equal(t, "", Node{}.String())

	other := NewDocument()
	foreign := other.Node(other.CreateElement("span", Htmlns))
	err := div.AppendChild(foreign)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrForeignNode)

	imported := d.Node(d.Import(other, foreign.ID(), true))
	require.NoError(t, div.AppendChild(imported))
	assert.Equal(t, div, imported.Parent())
}
