package selector

import (
	"testing"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileCanonical(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"div.b", "div.b"},
		{"*", "*"},
		{"#x.y", "#x.y"},
		{"ul > li", "ul > li"},
		{"ul>li", "ul > li"},
		{"li + li", "li + li"},
		{"h1 ~ p", "h1 ~ p"},
		{"a   b", "a b"},
		{" a , b ", "a, b"},
		{"a[href]", "a[href]"},
		{"a[href^='http']", `a[href^="http"]`},
		{`[lang|=en i]`, `[lang|="en" i]`},
		{`[data-x="a b"]`, `[data-x="a b"]`},
		{`[class~=c]`, `[class~="c"]`},
		{`[title$=".pdf"]`, `[title$=".pdf"]`},
		{`[title*=foo S]`, `[title*="foo"]`},
		{":nth-child(2n+1)", ":nth-child(2n+1)"},
		{":nth-child(odd)", ":nth-child(2n+1)"},
		{":nth-child(even)", ":nth-child(2n)"},
		{":nth-last-of-type( -n + 3 )", ":nth-last-of-type(-n+3)"},
		{":nth-of-type(5)", ":nth-of-type(5)"},
		{":NOT(.a, #b)", ":not(.a, #b)"},
		{"div:has(> p)", "div:has(> p)"},
		{"div:has(p, + span)", "div:has(p, + span)"},
		{":is(ul, ol) li:where(.x)", ":is(ul, ol) li:where(.x)"},
		{`p:contains("Hi there")`, `p:contains("Hi there")`},
		{`p:contains-own(hello)`, `p:contains-own("hello")`},
		{"input:checked, :disabled", "input:checked, :disabled"},
		{`[a~=b][a|=b][a^=b][a$=b][a*=b]`, `[a~="b"][a|="b"][a^="b"][a$="b"][a*="b"]`},
		{`a[ href *= "x" ]`, `a[href*="x"]`},
		{":nth-child(2n + 1)", ":nth-child(2n+1)"},
		{":nth-child(2n- 1)", ":nth-child(2n-1)"},
		{":nth-child( 3n -2 )", ":nth-child(3n-2)"},
		{"#-x", "#-x"},
		{"#_1", "#_1"},
		{"svg|rect", ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			sel, err := Compile(tt.in)
			if tt.want == "" {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, sel.String())
			assert.Equal(t, tt.in, sel.Source())

			again, err := Compile(tt.in)
			require.NoError(t, err)
			assert.Equal(t, sel.String(), again.String())
		})
	}
}

func TestCompileErrors(t *testing.T) {
	t.Parallel()

	const unchecked = -1
	tests := []struct {
		in  string
		pos int
		msg string
	}{
		{"", 0, "empty selector"},
		{"   ", 0, "empty selector"},
		{"a,", 2, "expected selector"},
		{"a, ,b", unchecked, "expected selector"},
		{"a >", 3, `expected selector after ">"`},
		{"> a", unchecked, "expected selector"},
		{"a[href", 6, "unterminated attribute selector"},
		{"a[href=", 7, "unterminated attribute selector"},
		{"a[href='x'", 10, "unterminated attribute selector"},
		{"a[", 2, "unterminated attribute selector"},
		{"a[=x]", unchecked, "expected attribute name"},
		{"[x=y q]", unchecked, "unknown attribute flag"},
		{"div.", 4, "expected class name"},
		{":unknown", unchecked, `unknown pseudo-class "unknown"`},
		{":hover", unchecked, "unknown pseudo-class"},
		{"p::before", unchecked, "pseudo-elements are not supported"},
		{":nth-child", unchecked, "needs an argument"},
		{":first-child(2)", unchecked, "takes no argument"},
		{":nth-child(x)", unchecked, "invalid an+b expression"},
		{":nth-child(2n+", 14, "expected ')'"},
		{"a:not(b", 7, "expected ')' to close not"},
		{":not()", unchecked, "expected selector"},
		{":has()", unchecked, "expected selector"},
		{":nth-child(2 n)", unchecked, "invalid an+b expression"},
		{":nth-child(- n+1)", unchecked, "invalid an+b expression"},
		{":nth-child(+ 5)", unchecked, "invalid an+b expression"},
		{":nth-child(2n 1)", unchecked, "invalid an+b expression"},
		{"#1a", 0, `invalid id selector "#1a"`},
		{"p#-2", 1, "invalid id selector"},
		{"a*", unchecked, "must come first"},
		{"a | b", unchecked, "namespace prefixes"},
		{"@media", unchecked, "unexpected"},
		{"a)", unchecked, "unexpected"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			sel, err := Compile(tt.in)
			require.Error(t, err)
			assert.Nil(t, sel)

			var se *SyntaxError
			require.True(t, errors.As(err, &se), "got %T", err)
			assert.Contains(t, se.Msg, tt.msg)
			assert.Contains(t, se.Error(), "selector syntax error")
			if tt.pos != unchecked {
				assert.Equal(t, tt.pos, se.Pos)
			}
			assert.GreaterOrEqual(t, se.Pos, 0)
			assert.LessOrEqual(t, se.Pos, utf8.RuneCountInString(tt.in))
		})
	}
}

func TestMustCompilePanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { MustCompile("a[") })
	assert.NotPanics(t, func() { MustCompile("a") })
}

func TestSpecificity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Specificity
	}{
		{"*", Specificity{0, 0, 0}},
		{"li", Specificity{0, 0, 1}},
		{"ul li", Specificity{0, 0, 2}},
		{"ul > li + li", Specificity{0, 0, 3}},
		{"#a.b c", Specificity{1, 1, 1}},
		{"a[href]:first-child", Specificity{0, 2, 1}},
		{":where(#a) p", Specificity{0, 0, 1}},
		{":is(#a, .b)", Specificity{1, 0, 0}},
		{":not(.x)", Specificity{0, 1, 0}},
		{"div:has(> #y)", Specificity{1, 0, 1}},
		{"a, #b", Specificity{1, 0, 0}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MustCompile(tt.in).Specificity())
		})
	}

	assert.True(t, Specificity{0, 9, 9}.Less(Specificity{1, 0, 0}))
	assert.False(t, Specificity{1, 0, 0}.Less(Specificity{1, 0, 0}))
	assert.Equal(t, "1,2,3", Specificity{1, 2, 3}.String())
}

func TestNth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Nth
		ok      bool
		matches []int
	}{
		{"odd", Nth{2, 1}, true, []int{1, 3, 5}},
		{"even", Nth{2, 0}, true, []int{2, 4, 6}},
		{"3", Nth{0, 3}, true, []int{3}},
		{"n", Nth{1, 0}, true, []int{1, 2, 3, 4, 5, 6}},
		{"-n+3", Nth{-1, 3}, true, []int{1, 2, 3}},
		{"3n-1", Nth{3, -1}, true, []int{2, 5}},
		{"+2n+2", Nth{2, 2}, true, []int{2, 4, 6}},
		{"-2n+5", Nth{-2, 5}, true, []int{1, 3, 5}},
		{"0n+0", Nth{0, 0}, true, nil},
		{"2n+", Nth{}, false, nil},
		{"2n+-1", Nth{}, false, nil},
		{"2n + 1", Nth{2, 1}, true, []int{1, 3, 5}},
		{"-n- 1", Nth{-1, -1}, true, nil},
		{"2 n", Nth{}, false, nil},
		{"- n", Nth{}, false, nil},
		{"1 0", Nth{}, false, nil},
		{"2n + + 1", Nth{}, false, nil},
		{"n2", Nth{}, false, nil},
		{"x", Nth{}, false, nil},
		{"", Nth{}, false, nil},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, ok := parseNth(tt.in)
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.want, got)
			var matched []int
			for i := 1; i <= 6; i++ {
				if got.Matches(i) {
					matched = append(matched, i)
				}
			}
			assert.Equal(t, tt.matches, matched)
		})
	}
}

func TestCompileEscapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Simple
	}{
		{`.a\.b`, &ClassSelector{Name: "a.b"}},
		{`.\41 x`, &ClassSelector{Name: "Ax"}},
		{`#\31 a`, &IDSelector{ID: "1a"}},
		{`[title="it\'s"]`, &AttributeSelector{Name: "title", Op: AttrEquals, Value: "it's"}},
		{`[title='a\\b']`, &AttributeSelector{Name: "title", Op: AttrEquals, Value: `a\b`}},
		{`[title="say \"hi\""]`, &AttributeSelector{Name: "title", Op: AttrEquals, Value: `say "hi"`}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			sel, err := Compile(tt.in)
			require.NoError(t, err)
			require.Len(t, sel.Alternatives(), 1)
			c, ok := sel.Alternatives()[0].(*Compound)
			require.True(t, ok)
			require.Len(t, c.Simples, 1)
			assert.Equal(t, tt.want, c.Simples[0])
		})
	}
}

func TestTree(t *testing.T) {
	t.Parallel()
	out := MustCompile("ul > li.x, p:not(.y)").Tree()
	assert.Contains(t, out, `"ul > li.x, p:not(.y)"`)
	assert.Contains(t, out, `combinator ">"`)
	assert.Contains(t, out, ".x")
	assert.Contains(t, out, ":not")
	assert.Contains(t, out, ".y")
}
