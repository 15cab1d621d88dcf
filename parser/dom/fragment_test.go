package dom

import (
	"bytes"
	"strings"
	"testing"

	"github.com/antchfx/xpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialize(t *testing.T) {
	t.Parallel()
	d := NewDocument()
	require.NoError(t, d.AppendChild(DocumentID, d.CreateDoctype("html", "", "")))
	html := d.CreateElement("html", Htmlns)
	require.NoError(t, d.AppendChild(DocumentID, html))
	body := d.CreateElement("body", Htmlns)
	require.NoError(t, d.AppendChild(html, body))

	add := func(parent, child NodeID) NodeID {
		require.NoError(t, d.AppendChild(parent, child))
		return child
	}
	a := add(body, d.CreateElement("a", Htmlns, Attribute{Name: "href", Value: `x?a=1&b="2"`}))
	add(a, d.CreateText("1 < 2 & 3\u00a0>"))
	add(body, d.CreateElement("br", Htmlns))
	pre := add(body, d.CreateElement("pre", Htmlns))
	add(pre, d.CreateText("\ncode"))
	script := add(body, d.CreateElement("script", Htmlns))
	add(script, d.CreateText("if (a < b) {}"))
	svg := add(body, d.CreateElement("svg", Svgns, Attribute{Namespace: Xlinkns, Name: "href", Value: "#i"}))
	add(svg, d.CreateElement("foreignObject", Svgns))

	want := `<!DOCTYPE html><html><body>` +
		`<a href="x?a=1&amp;b=&quot;2&quot;">1 &lt; 2 &amp; 3&nbsp;&gt;</a>` +
		`<br><pre>` + "\n\ncode" + `</pre><script>if (a < b) {}</script>` +
		`<svg xlink:href="#i"><foreignObject></foreignObject></svg></body></html>`
	assert.Equal(t, want, d.OuterHTML(DocumentID))
	assert.Equal(t, `1 &lt; 2 &amp; 3&nbsp;&gt;`, d.InnerHTML(a))

	var buf bytes.Buffer
	require.NoError(t, d.Render(&buf, DocumentID))
	assert.Equal(t, want, buf.String())
}

func TestDump(t *testing.T) {
	t.Parallel()
	d := NewDocument()
	require.NoError(t, d.AppendChild(DocumentID, d.CreateDoctype("html", "-//W3C//DTD HTML 4.01//EN", "")))
	html := d.CreateElement("html", Htmlns)
	require.NoError(t, d.AppendChild(DocumentID, html))
	body := d.CreateElement("body", Htmlns, Attribute{Name: "z", Value: "1"}, Attribute{Name: "a", Value: "2"})
	require.NoError(t, d.AppendChild(html, body))
	tmpl := d.CreateElement("template", Htmlns)
	require.NoError(t, d.AppendChild(body, tmpl))
	require.NoError(t, d.AppendChild(tmpl, d.CreateText("x")))
	math := d.CreateElement("math", Mathmlns, Attribute{Namespace: Xlinkns, Name: "href", Value: "h"})
	require.NoError(t, d.AppendChild(body, math))
	require.NoError(t, d.AppendChild(body, d.CreateComment(" c ")))

	want := strings.Join([]string{
		`| <!DOCTYPE html "-//W3C//DTD HTML 4.01//EN" "">`,
		`| <html>`,
		`|   <body>`,
		`|     a="2"`,
		`|     z="1"`,
		`|     <template>`,
		`|       content`,
		`|         "x"`,
		`|     <math math>`,
		`|       xlink href="h"`,
		`|     <!--  c  -->`,
	}, "\n")
	assert.Equal(t, want, d.Dump(DocumentID))

	tree := d.Tree(DocumentID)
	assert.Contains(t, tree, "#document")
	assert.Contains(t, tree, `<body z="1" a="2">`)
	assert.Contains(t, tree, `"x"`)
}

func TestNavigator(t *testing.T) {
	t.Parallel()
	d, ids := buildSample(t)

	tests := []struct {
		expr string
		want []NodeID
	}{
		{"//p", []NodeID{ids["p1"], ids["p2"]}},
		{"//div[@id='a']/p[2]", []NodeID{ids["p2"]}},
		{"//p[text()='three']", []NodeID{ids["p2"]}},
		{"//div/text()", []NodeID{ids["two"]}},
		{"//head/following-sibling::body", []NodeID{ids["body"]}},
		{"//p[1]/following-sibling::*", []NodeID{ids["p2"]}},
		{"//comment()", []NodeID{ids["comment"]}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.expr, func(t *testing.T) {
			expr, err := xpath.Compile(tt.expr)
			require.NoError(t, err)
			iter := expr.Select(d.Navigator(DocumentID))
			var got []NodeID
			for iter.MoveNext() {
				got = append(got, iter.Current().(*Navigator).Current())
			}
			assert.Equal(t, tt.want, got)
		})
	}

	expr := xpath.MustCompile("string(//div/@class)")
	assert.Equal(t, "x y", expr.Evaluate(d.Navigator(DocumentID)))
	expr = xpath.MustCompile("count(//p)")
	assert.Equal(t, float64(2), expr.Evaluate(d.Navigator(DocumentID)))
}
