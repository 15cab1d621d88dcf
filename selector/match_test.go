package selector

import (
	"strconv"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/heathj/gosoup/parser"
	"github.com/heathj/gosoup/parser/dom"
)

// label names a matched element by tag and text.
func label(d *dom.Document, ids []dom.NodeID) []string {
	var out []string
	for _, id := range ids {
		out = append(out, d.Name(id)+":"+d.TextContent(id))
	}
	return out
}

func TestSelect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, html, sel string
		want            []string
	}{
		{"class match", `<div class="a b"></div>`, "div.b", []string{"div:"}},
		{"class miss", `<div class="a b"></div>`, "div.c", nil},
		{"adjacent sibling", `<ul><li>x</li><li>y</li></ul>`, "li + li", []string{"li:y"}},
		{"general sibling", `<p>a</p><i>b</i><p>c</p><p>d</p>`, "i ~ p", []string{"p:c", "p:d"}},
		{"child", `<div><p>a<span>b</span></p><span>c</span></div>`, "div > span", []string{"span:c"}},
		{"descendant", `<div><p>a<span>b</span></p><span>c</span></div>`, "div span", []string{"span:b", "span:c"}},
		{"id", `<p id=x>1</p><p id=y>2</p>`, "#y", []string{"p:2"}},
		{"type case folds on html", `<p>1</p>`, "P", []string{"p:1"}},
		{"universal", `<b>1</b>`, "body *", []string{"b:1"}},
		{"list dedup in document order", `<a class=x>1</a><a>2</a>`, "a.x, a", []string{"a:1", "a:2"}},
		{"list order follows document", `<i>1</i><b>2</b>`, "b, i", []string{"i:1", "b:2"}},
		{"attr exists", `<a href>1</a><a>2</a>`, "a[href]", []string{"a:1"}},
		{"attr equals", `<p lang=en>1</p><p lang=EN>2</p>`, "[lang=en]", []string{"p:1"}},
		{"attr equals folded", `<p lang=en>1</p><p lang=EN>2</p>`, "[lang=en i]", []string{"p:1", "p:2"}},
		{"attr name folds on html", `<p data-x=1>1</p>`, "[DATA-X]", []string{"p:1"}},
		{"attr includes", `<p class="a bc">1</p><p class=abc>2</p>`, "[class~=bc]", []string{"p:1"}},
		{"attr includes empty", `<p class="">1</p>`, `[class~=""]`, nil},
		{"attr dash", `<p lang=en-US>1</p><p lang=en>2</p><p lang=enx>3</p>`, "[lang|=en]", []string{"p:1", "p:2"}},
		{"attr prefix", `<a href="http://x">1</a><a href="/y">2</a>`, "[href^=http]", []string{"a:1"}},
		{"attr prefix empty", `<a href="http://x">1</a>`, `[href^=""]`, nil},
		{"attr suffix", `<a href="f.pdf">1</a><a href="f.txt">2</a>`, `[href$=".pdf"]`, []string{"a:1"}},
		{"attr substring", `<a title="foobar">1</a><a title=bar>2</a>`, "[title*=oob]", []string{"a:1"}},
		{"first child", `<div><p>1</p><p>2</p><p>3</p></div>`, "p:first-child", []string{"p:1"}},
		{"last child", `<div><p>1</p><p>2</p><p>3</p></div>`, "p:last-child", []string{"p:3"}},
		{"only child", `<div><p>1</p></div><div><p>2</p><p>3</p></div>`, "p:only-child", []string{"p:1"}},
		{"nth child odd", `<ul><li>1</li><li>2</li><li>3</li></ul>`, "li:nth-child(odd)", []string{"li:1", "li:3"}},
		{"nth last child", `<ul><li>1</li><li>2</li><li>3</li></ul>`, "li:nth-last-child(-n+2)", []string{"li:2", "li:3"}},
		{"nth of type", `<div><p>1</p><span>s</span><p>2</p><p>3</p></div>`, "p:nth-of-type(2)", []string{"p:2"}},
		{"nth last of type", `<div><p>1</p><span>s</span><p>2</p><p>3</p></div>`, "p:nth-last-of-type(1)", []string{"p:3"}},
		{"first of type", `<div><span>s</span><p>1</p><p>2</p></div>`, "p:first-of-type", []string{"p:1"}},
		{"last of type", `<div><p>1</p><p>2</p><span>s</span></div>`, "p:last-of-type", []string{"p:2"}},
		{"only of type", `<div><p>1</p><span>s</span><p>2</p></div>`, "div :only-of-type", []string{"span:s"}},
		{"empty", `<p></p><p> </p><p><!--c--></p>`, "p:empty", []string{"p:", "p:"}},
		{"root", `<p>1</p>`, ":root", []string{"html:1"}},
		{"not", `<p class=x>1</p><p>2</p>`, "p:not(.x)", []string{"p:2"}},
		{"not list", `<p class=x>1</p><p id=y>2</p><p>3</p>`, "p:not(.x, #y)", []string{"p:3"}},
		{"is", `<h1>1</h1><h2>2</h2><h3>3</h3>`, ":is(h1, h3)", []string{"h1:1", "h3:3"}},
		{"where", `<h1>1</h1><h2>2</h2>`, ":where(h2)", []string{"h2:2"}},
		{"has descendant", `<div><p><b>1</b></p></div><div><i>2</i></div>`, "div:has(b)", []string{"div:1"}},
		{"has child", `<div><p><b>1</b></p></div><div><b>2</b></div>`, "div:has(> b)", []string{"div:2"}},
		{"has next sibling", `<i>1</i><b>2</b><i>3</i>`, "i:has(+ b)", []string{"i:1"}},
		{"has later sibling", `<i>1</i><b>2</b><i>3</i><u>4</u>`, "i:has(~ u)", []string{"i:1", "i:3"}},
		{"contains", `<p>hello <b>world</b></p><p>bye</p>`, "p:contains(WORLD)", []string{"p:hello world"}},
		{"contains own", `<p>hello <b>world</b></p>`, "p:contains-own(world)", nil},
		{"contains own match", `<p>hello <b>world</b></p>`, `p:contains-own("Hello")`, []string{"p:hello world"}},
		{"checked", `<input type=checkbox checked><input type=text checked><select><option selected>a</option><option>b</option></select>`,
			":checked", []string{"input:", "option:a"}},
		{"disabled", `<button disabled>b</button><input><select><optgroup disabled><option>o</option></optgroup></select>`,
			":disabled", []string{"button:b", "optgroup:o", "option:o"}},
		{"enabled", `<button disabled>b</button><input><select><option>o</option></select>`,
			":enabled", []string{"input:", "select:o", "option:o"}},
		{"link", `<a href=x>1</a><a>2</a><area href=y>`, ":link", []string{"a:1", "area:"}},
		{"svg names are exact", `<svg><clipPath></clipPath></svg>`, "clipPath", []string{"clipPath:"}},
		{"svg names do not fold", `<svg><clipPath></clipPath></svg>`, "clippath", nil},
		{"adoption agency tree", `<b>1<i>2</b>3</i>`, "body > i", []string{"i:3"}},
		{"foster parented text", `<table><tr><td>x</td></tr>y</table>`, "body > table ~ *", nil},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := parser.ParseString(tt.html)
			sel, err := Compile(tt.sel)
			require.NoError(t, err)
			got := sel.Select(d, dom.DocumentID)
			assert.Equal(t, tt.want, label(d, got))

			for _, id := range got {
				assert.True(t, sel.Matches(d, id), "selected node must match")
			}
			first := sel.SelectFirst(d, dom.DocumentID)
			if len(got) == 0 {
				assert.Equal(t, dom.NoNode, first)
			} else {
				assert.Equal(t, got[0], first)
			}
		})
	}
}

func TestSelectExcludesRoot(t *testing.T) {
	t.Parallel()
	d := parser.ParseString(`<div id=outer><div id=inner></div></div>`)
	outer := MustCompile("#outer").SelectFirst(d, dom.DocumentID)
	require.NotEqual(t, dom.NoNode, outer)

	got := MustCompile("div").Select(d, outer)
	require.Len(t, got, 1)
	v, _ := d.Attr(got[0], "id")
	assert.Equal(t, "inner", v)
}

func TestScope(t *testing.T) {
	t.Parallel()
	d := parser.ParseString(`<div><p>1</p><section><p>2</p></section></div>`)
	div := MustCompile("div").SelectFirst(d, dom.DocumentID)

	assert.Equal(t, []string{"p:1"}, label(d, MustCompile(":scope > p").Select(d, div)))
	assert.True(t, MustCompile(":scope").Matches(d, div))
	assert.Empty(t, MustCompile(":scope").Select(d, div))
}

func TestSelectDocumentOrder(t *testing.T) {
	t.Parallel()
	d := parser.ParseString(`<table><b>x<tr><td><i>1</td><p>2</table><p>3<b>4<p>5</b>6<ul><li>7<li>8</ul>`)

	order := map[dom.NodeID]int{}
	w := d.Walk(dom.DocumentID)
	for i := 0; w.Next(); i++ {
		order[w.Node()] = i
	}

	for _, s := range []string{"*", "p, b, i", "b, p", "li, p:first-of-type, td", ":not(p), p"} {
		s := s
		t.Run(s, func(t *testing.T) {
			t.Parallel()
			sel := MustCompile(s)
			got := sel.Select(d, dom.DocumentID)
			require.NotEmpty(t, got)
			seen := map[dom.NodeID]bool{}
			for i, id := range got {
				assert.False(t, seen[id], "duplicate node %d", id)
				seen[id] = true
				if i > 0 {
					assert.Less(t, order[got[i-1]], order[id])
				}
				assert.True(t, sel.Matches(d, id))
			}
		})
	}
}

func TestFilterAndSpecificity(t *testing.T) {
	t.Parallel()
	d := parser.ParseString(`<p id=a class=x>1</p><p>2</p><span class=x>3</span>`)
	all := MustCompile("body *").Select(d, dom.DocumentID)
	require.Len(t, all, 3)

	assert.Equal(t, []string{"p:1", "span:3"}, label(d, MustCompile(".x").Filter(d, all)))

	sel := MustCompile("p, .x, #a")
	sp, ok := sel.MatchSpecificity(d, all[0])
	require.True(t, ok)
	assert.Equal(t, Specificity{1, 0, 0}, sp)

	sp, ok = sel.MatchSpecificity(d, all[2])
	require.True(t, ok)
	assert.Equal(t, Specificity{0, 1, 0}, sp)

	_, ok = MustCompile("#nope").MatchSpecificity(d, all[1])
	assert.False(t, ok)
}

func TestSelectorReuse(t *testing.T) {
	t.Parallel()
	sel := MustCompile("li + li")
	a := parser.ParseString(`<ul><li>x</li><li>y</li></ul>`)
	b := parser.ParseString(`<ol><li>1</li><li>2</li><li>3</li></ol>`)
	assert.Equal(t, []string{"li:y"}, label(a, sel.Select(a, dom.DocumentID)))
	assert.Equal(t, []string{"li:2", "li:3"}, label(b, sel.Select(b, dom.DocumentID)))
}

const differentialDoc = `<!DOCTYPE html><html lang="en-US"><head><title>T</title></head><body>
<div class="a b" id="main"><p>hello <span>world</span></p><p class="x"></p>
<ul><li class="x">one</li><li>two</li><li class="x y">three</li><li lang="en-GB">four</li></ul>
<a href="http://example.com">ex</a><a href="/local">local</a></div>
<div class="c"><span>solo</span></div><h2 lang="en">Title</h2>
<table><tr><td>1</td><td>2</td></tr></table><b>1<i>2</b>3</i></body></html>`

// elementPath identifies an element by the 1-based element index of it and
// each of its ancestors, which is stable across tree implementations.
func elementPath(d *dom.Document, id dom.NodeID) string {
	var parts []string
	for ; d.IsElement(id); id = d.Parent(id) {
		parts = append([]string{strconv.Itoa(d.ElementIndex(id, false, nil))}, parts...)
	}
	return strings.Join(parts, "/")
}

func netElementPath(n *html.Node) string {
	var parts []string
	for ; n != nil && n.Type == html.ElementNode; n = n.Parent {
		i := 1
		for s := n.PrevSibling; s != nil; s = s.PrevSibling {
			if s.Type == html.ElementNode {
				i++
			}
		}
		parts = append([]string{strconv.Itoa(i)}, parts...)
	}
	return strings.Join(parts, "/")
}

func TestAgainstCascadia(t *testing.T) {
	t.Parallel()

	ours := parser.ParseString(differentialDoc)
	gq, err := goquery.NewDocumentFromReader(strings.NewReader(differentialDoc))
	require.NoError(t, err)
	ref, err := html.Parse(strings.NewReader(differentialDoc))
	require.NoError(t, err)

	selectors := []string{
		"p", "div.b", "li + li", "ul > li", "li ~ li", "div p span",
		"a[href^=http]", "[class~=x]", "[lang|=en]", "a[href$=local]", "[class*=a]",
		"li:nth-child(2n+1)", "li:nth-last-child(1)", "li:nth-child(-n+2)",
		"p:first-of-type", "span:only-child", "li:last-child", ":root", "td:nth-of-type(2)",
		"li:not(.x)", "div:has(span)", "p:contains(world)", "a, p", "#main > *",
		"body > i", "b i", "h2, div.c span, li.y",
	}
	for _, s := range selectors {
		s := s
		t.Run(s, func(t *testing.T) {
			t.Parallel()
			cs, err := cascadia.Compile(s)
			require.NoError(t, err)

			var want []string
			for _, n := range cs.MatchAll(ref) {
				want = append(want, netElementPath(n))
			}
			var viaGoquery []string
			for _, n := range gq.Find(s).Nodes {
				viaGoquery = append(viaGoquery, netElementPath(n))
			}
			assert.Equal(t, want, viaGoquery)

			var got []string
			for _, id := range MustCompile(s).Select(ours, dom.DocumentID) {
				got = append(got, elementPath(ours, id))
			}
			assert.Equal(t, want, got)
		})
	}
}
