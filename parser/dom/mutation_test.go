package dom

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertRejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		run  func(d *Document, ids map[string]NodeID) error
		want error
	}{
		{"cycle with ancestor", func(d *Document, ids map[string]NodeID) error {
			d.Detach(ids["div"])
			return d.AppendChild(ids["p1"], ids["div"])
		}, ErrCycle},
		{"self", func(d *Document, ids map[string]NodeID) error {
			d.Detach(ids["p1"])
			return d.AppendChild(ids["p1"], ids["p1"])
		}, ErrCycle},
		{"attached child", func(d *Document, ids map[string]NodeID) error {
			return d.AppendChild(ids["head"], ids["p1"])
		}, ErrHasParent},
		{"text parent", func(d *Document, ids map[string]NodeID) error {
			return d.AppendChild(ids["two"], d.CreateElement("b", Htmlns))
		}, ErrNotContainer},
		{"foreign ref", func(d *Document, ids map[string]NodeID) error {
			return d.InsertBefore(ids["head"], d.CreateText("x"), ids["p1"])
		}, ErrNotChild},
		{"document node", func(d *Document, ids map[string]NodeID) error {
			return d.AppendChild(ids["div"], DocumentID)
		}, ErrDocumentNode},
		{"invalid handle", func(d *Document, ids map[string]NodeID) error {
			return d.AppendChild(ids["div"], NodeID(4242))
		}, ErrInvalidNode},
		{"replace with ancestor", func(d *Document, ids map[string]NodeID) error {
			return d.ReplaceWith(ids["p1"], ids["div"])
		}, ErrCycle},
		{"move into descendant", func(d *Document, ids map[string]NodeID) error {
			return d.MoveChildren(ids["div"], ids["p1"])
		}, ErrCycle},
		{"decompose document", func(d *Document, ids map[string]NodeID) error {
			return d.Decompose(DocumentID)
		}, ErrDocumentNode},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d, ids := buildSample(t)
			err := tt.run(d, ids)
			require.Error(t, err)
			assert.Equal(t, tt.want, errors.Cause(err))

			var se *StructuralError
			require.True(t, errors.As(err, &se))
			assert.Contains(t, se.Error(), tt.want.Error())
		})
	}
}

func TestRejectedMutationLeavesTree(t *testing.T) {
	t.Parallel()
	d, ids := buildSample(t)
	before := d.Dump(DocumentID)
	require.Error(t, d.AppendChild(ids["p1"], ids["div"]))
	require.Error(t, d.ReplaceWith(ids["p1"], ids["body"]))
	assert.Equal(t, before, d.Dump(DocumentID))
}

func TestInsertions(t *testing.T) {
	t.Parallel()
	d, ids := buildSample(t)
	div := ids["div"]

	a := d.CreateElement("a", Htmlns)
	require.NoError(t, d.InsertBefore(div, a, ids["p1"]))
	b := d.CreateElement("b", Htmlns)
	require.NoError(t, d.InsertAfter(div, b, ids["p2"]))
	i := d.CreateElement("i", Htmlns)
	require.NoError(t, d.InsertAfter(div, i, ids["p1"]))

	assert.Equal(t, []NodeID{a, ids["p1"], i, ids["two"], ids["p2"], b}, d.Children(div))
	assert.Equal(t, a, d.FirstChild(div))
	assert.Equal(t, b, d.LastChild(div))
	assert.Equal(t, div, d.Parent(i))

	require.NoError(t, d.RemoveChild(div, i))
	assert.Equal(t, NoNode, d.Parent(i))
	assert.Equal(t, ids["two"], d.NextSibling(ids["p1"]))
	assert.Equal(t, ids["p1"], d.PrevSibling(ids["two"]))
	require.Error(t, d.RemoveChild(div, i))

	// A removed node can be reattached.
	require.NoError(t, d.AppendChild(ids["head"], i))
	assert.Equal(t, ids["head"], d.Parent(i))
}

func TestReplaceAndUnwrap(t *testing.T) {
	t.Parallel()
	d, ids := buildSample(t)

	em := d.CreateElement("em", Htmlns)
	require.NoError(t, d.ReplaceWith(ids["p2"], em))
	assert.Equal(t, `<div id="a" class="x y"><p>one</p>two<em></em></div>`, d.OuterHTML(ids["div"]))
	assert.Equal(t, NoNode, d.Parent(ids["p2"]))

	require.NoError(t, d.Unwrap(ids["p1"]))
	assert.Equal(t, `<div id="a" class="x y">onetwo<em></em></div>`, d.OuterHTML(ids["div"]))

	require.NoError(t, d.Decompose(em))
	d.MergeTextNodes(ids["div"])
	assert.Equal(t, []NodeID{ids["one"]}, d.Children(ids["div"]))
	assert.Equal(t, "onetwo", d.Data(ids["one"]))
}

func TestStripAndUnwrapTags(t *testing.T) {
	t.Parallel()
	d, ids := buildSample(t)
	d.UnwrapTags(ids["body"], "p")
	assert.Equal(t, `<body><div id="a" class="x y">onetwothree</div><!--c--></body>`, d.OuterHTML(ids["body"]))

	d, ids = buildSample(t)
	d.StripTags(ids["body"], "p", "title")
	assert.Equal(t, `<body><div id="a" class="x y">two</div><!--c--></body>`, d.OuterHTML(ids["body"]))
	assert.Equal(t, "t", d.TextContent(ids["title"]))
}

func TestCloneAndImport(t *testing.T) {
	t.Parallel()
	d, ids := buildSample(t)

	shallow := d.Clone(ids["div"], false)
	assert.Equal(t, `<div id="a" class="x y"></div>`, d.OuterHTML(shallow))
	assert.Equal(t, NoNode, d.Parent(shallow))

	deep := d.Clone(ids["div"], true)
	assert.Equal(t, d.OuterHTML(ids["div"]), d.OuterHTML(deep))
	d.SetAttr(deep, "id", "copy")
	v, _ := d.Attr(ids["div"], "id")
	assert.Equal(t, "a", v)

	other := NewDocument()
	imp := other.Import(d, ids["div"], true)
	require.NoError(t, other.AppendChild(DocumentID, imp))
	assert.Equal(t, d.OuterHTML(ids["div"]), other.OuterHTML(DocumentID))
	assert.Equal(t, NoNode, other.Import(d, DocumentID, true))
}
