package stylesheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heathj/gosoup/parser"
	"github.com/heathj/gosoup/parser/dom"
	"github.com/heathj/gosoup/selector"
)

const page = `<!DOCTYPE html><html><head>
<style>
p { color: red; margin: 0 }
.note { color: blue }
#intro { color: green }
p.note { font-weight: bold !important }
div:unknown-pseudo { color: black }
@media print { p { color: gray } }
</style></head><body>
<p id="intro" class="note">one</p>
<p class="note" style="color: purple; font-weight: normal">two</p>
<p>three</p>
<style>p { margin: 1em }</style>
</body></html>`

func find(t *testing.T, d *dom.Document, sel string) dom.NodeID {
	t.Helper()
	id := selector.MustCompile(sel).SelectFirst(d, dom.DocumentID)
	require.NotEqual(t, dom.NoNode, id, sel)
	return id
}

func TestExtract(t *testing.T) {
	t.Parallel()
	d := parser.ParseString(page)
	s, err := Extract(d)
	require.NoError(t, err)

	var sels []string
	for _, r := range s.Rules {
		sels = append(sels, r.Selector.String())
	}
	assert.Equal(t, []string{"p", ".note", "#intro", "p.note", "p", "p"}, sels)
	assert.Equal(t, "print", s.Rules[4].Media)
	assert.Equal(t, Declaration{Property: "font-weight", Value: "bold", Important: true}, s.Rules[3].Declarations[0])
}

func TestComputed(t *testing.T) {
	t.Parallel()
	d := parser.ParseString(page)
	s, err := Extract(d)
	require.NoError(t, err)

	tests := []struct {
		sel  string
		want map[string]string
	}{
		{"#intro", map[string]string{"color": "green", "margin": "1em", "font-weight": "bold"}},
		{"p:nth-of-type(2)", map[string]string{"color": "purple", "margin": "1em", "font-weight": "bold"}},
		{"p:nth-of-type(3)", map[string]string{"color": "gray", "margin": "1em"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.sel, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, s.Computed(d, find(t, d, tt.sel)))
		})
	}
}

func TestMatchOrder(t *testing.T) {
	t.Parallel()
	d := parser.ParseString(page)
	s, err := Extract(d)
	require.NoError(t, err)

	matched := s.Match(d, false)
	intro := find(t, d, "#intro")
	var colors []string
	for _, a := range matched[intro] {
		if a.Property == "color" {
			colors = append(colors, a.Value)
		}
	}
	// p, @media p, .note, #intro: by specificity, then source order.
	assert.Equal(t, []string{"red", "gray", "blue", "green"}, colors)

	last := matched[intro][len(matched[intro])-1]
	assert.True(t, last.Important)
	assert.Equal(t, selector.Specificity{0, 1, 1}, last.Specificity)

	_, ok := matched[find(t, d, "head")]
	assert.False(t, ok)
}

func TestParseDropsBadRules(t *testing.T) {
	t.Parallel()
	s, err := Parse(`p::before { color: red } b { color: blue } @font-face { font-family: x }`)
	require.NoError(t, err)
	require.Len(t, s.Rules, 1)
	assert.Equal(t, "b", s.Rules[0].Selector.String())
}

func TestParseKeepsAttributeOperators(t *testing.T) {
	t.Parallel()
	s, err := Parse(`a[href^="http"] { color: red }
[lang|=en] { quotes: none }
[class~=x], [title$=".pdf"], [title*=draft] { color: gray }`)
	require.NoError(t, err)

	var sels []string
	for _, r := range s.Rules {
		sels = append(sels, r.Selector.String())
	}
	assert.Equal(t, []string{
		`a[href^="http"]`,
		`[lang|="en"]`,
		`[class~="x"], [title$=".pdf"], [title*="draft"]`,
	}, sels)

	d := parser.ParseString(`<a href="https://x" lang="en-US" title="draft.pdf">x</a>`)
	assert.Equal(t, map[string]string{"color": "red", "quotes": "none"}, s.Computed(d, find(t, d, "a")))
}
