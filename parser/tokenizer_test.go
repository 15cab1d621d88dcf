package parser

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// render joins tokens into one line, merging runs of character tokens.
func render(tokens []Token) string {
	var (
		out  []string
		text strings.Builder
	)
	flush := func() {
		if text.Len() > 0 {
			out = append(out, strconv.Quote(text.String()))
			text.Reset()
		}
	}
	for i := range tokens {
		if tokens[i].TokenType == characterToken {
			text.WriteString(tokens[i].Data)
			continue
		}
		flush()
		out = append(out, tokens[i].String())
	}
	flush()
	return strings.Join(out, " ")
}

func tokenize(t *testing.T, in string) []Token {
	tokens, err := Tokenize(strings.NewReader(in))
	require.NoError(t, err)
	require.NotEmpty(t, tokens)
	require.Equal(t, endOfFileToken, tokens[len(tokens)-1].TokenType)
	return tokens
}

type tokenizerAttributeAccuracyTestcase struct {
	inHTML string            // snippet of HTML to tokenize (should only be one element)
	attrs  map[string]string // expected attributes on the first token
}

var tokenizerAttributeAccuracyTests = []tokenizerAttributeAccuracyTestcase{
	{"<head></head>", map[string]string{}},
	{"<script src='123' onload='test'></script>", map[string]string{
		"src":    "123",
		"onload": "test",
	}},
	{"<a href='https://google.com' onclick='alert(1)'>Click this</a>", map[string]string{
		"href":    "https://google.com",
		"onclick": "alert(1)",
	}},
	{"<script src='123' src='456'></script>", map[string]string{
		"src": "123",
	}},
	{"<script src=123 onload=test></script>", map[string]string{
		"src":    "123",
		"onload": "test",
	}},
	{"<script =src='123'onload='test' ></script>", map[string]string{
		"=src":   "123",
		"onload": "test",
	}},
	{"<script src></script>", map[string]string{
		"src": "",
	}},
	{"<script src test></script>", map[string]string{
		"src":  "",
		"test": "",
	}},
	{"<script 'asd></script>", map[string]string{
		"'asd": "",
	}},
	{"<script <asd></script>", map[string]string{
		"<asd": "",
	}},
	{"<script ABC=123></script>", map[string]string{
		"abc": "123",
	}},
	{"<script abc='\u0000123'></script>", map[string]string{
		"abc": "\uFFFD123",
	}},
	{"<script abc=></script>", map[string]string{
		"abc": "",
	}},
	{"<script\tabc=123></script>", map[string]string{
		"abc": "123",
	}},
	{"<a href=\"?x=1&copy=2&amp;y\">", map[string]string{
		"href": "?x=1&copy=2&y",
	}},
	{"<a title='&copy'>", map[string]string{
		"title": "©",
	}},
}

func TestTokenizerAttributeAccuracy(t *testing.T) {
	t.Parallel()
	for _, tt := range tokenizerAttributeAccuracyTests {
		tt := tt
		t.Run(tt.inHTML, func(t *testing.T) {
			t.Parallel()
			tokens := tokenize(t, tt.inHTML)
			first := tokens[0]
			require.Equal(t, startTagToken, first.TokenType)
			assert.Len(t, first.Attributes, len(tt.attrs))
			for k, v := range tt.attrs {
				got, ok := first.Attr(k)
				if assert.True(t, ok, "missing attribute %q", k) {
					assert.Equal(t, v, got)
				}
			}
		})
	}
}

func TestTokenizerAttributeOrder(t *testing.T) {
	t.Parallel()
	tokens := tokenize(t, `<div c=3 a=1 b=2 a=4>`)
	var names []string
	for _, a := range tokens[0].Attributes {
		names = append(names, a.Name+"="+a.Value)
	}
	assert.Equal(t, []string{"c=3", "a=1", "b=2"}, names)
}

type stateMachineTestCase struct {
	inRune            rune           // the rune to pass to the startingState
	startingState     tokenizerState // the state to start from
	shouldReconsume   bool           // the expectation if the next state should reconsume
	nextExpectedState tokenizerState // the next state
}

// TestStateParsers checks single transitions of the state machine. Flows that
// depend on earlier input are covered by the token tests below.
func TestStateParsers(t *testing.T) {
	t.Parallel()
	stateParserTests := []stateMachineTestCase{
		{'&', dataState, false, characterReferenceState},
		{'<', dataState, false, tagOpenState},
		{'\u0000', dataState, false, dataState},
		{'a', dataState, false, dataState},
		{'1', dataState, false, dataState},

		{'&', rcDataState, false, characterReferenceState},
		{'<', rcDataState, false, rcDataLessThanSignState},
		{'\u0000', rcDataState, false, rcDataState},
		{'#', rcDataState, false, rcDataState},

		{'<', rawTextState, false, rawTextLessThanSignState},
		{'&', rawTextState, false, rawTextState},
		{'a', rawTextState, false, rawTextState},

		{'<', scriptDataState, false, scriptDataLessThanSignState},
		{'\u0000', scriptDataState, false, scriptDataState},

		{'<', plaintextState, false, plaintextState},
		{'&', plaintextState, false, plaintextState},

		{'!', tagOpenState, false, markupDeclarationOpenState},
		{'/', tagOpenState, false, endTagOpenState},
		{'a', tagOpenState, true, tagNameState},
		{'Z', tagOpenState, true, tagNameState},
		{'?', tagOpenState, true, bogusCommentState},
		{'1', tagOpenState, true, dataState},

		{'a', endTagOpenState, true, tagNameState},
		{'B', endTagOpenState, true, tagNameState},
		{'>', endTagOpenState, false, dataState},
		{'#', endTagOpenState, true, bogusCommentState},

		{'\t', tagNameState, false, beforeAttributeNameState},
		{'\n', tagNameState, false, beforeAttributeNameState},
		{' ', tagNameState, false, beforeAttributeNameState},
		{'/', tagNameState, false, selfClosingStartTagState},
		{'>', tagNameState, false, dataState},
		{'a', tagNameState, false, tagNameState},
		{'\u0000', tagNameState, false, tagNameState},

		{'/', rcDataLessThanSignState, false, rcDataEndTagOpenState},
		{'a', rcDataLessThanSignState, true, rcDataState},

		{'a', rcDataEndTagOpenState, true, rcDataEndTagNameState},
		{'1', rcDataEndTagOpenState, true, rcDataState},

		{'A', rcDataEndTagNameState, false, rcDataEndTagNameState},
		{'z', rcDataEndTagNameState, false, rcDataEndTagNameState},
		{'1', rcDataEndTagNameState, true, rcDataState},

		{'/', rawTextLessThanSignState, false, rawTextEndTagOpenState},
		{'1', rawTextLessThanSignState, true, rawTextState},

		{'Z', rawTextEndTagOpenState, true, rawTextEndTagNameState},
		{'@', rawTextEndTagOpenState, true, rawTextState},

		{'/', scriptDataLessThanSignState, false, scriptDataEndTagOpenState},
		{'!', scriptDataLessThanSignState, false, scriptDataEscapeStartState},
		{'a', scriptDataLessThanSignState, true, scriptDataState},

		{'-', scriptDataEscapeStartState, false, scriptDataEscapeStartDashState},
		{'a', scriptDataEscapeStartState, true, scriptDataState},

		{'-', scriptDataEscapeStartDashState, false, scriptDataEscapedDashDashState},
		{'@', scriptDataEscapeStartDashState, true, scriptDataState},
	}

	for _, tc := range stateParserTests {
		tc := tc
		t.Run(tc.startingState.String()+"/"+strconv.QuoteRune(tc.inRune), func(t *testing.T) {
			t.Parallel()
			p := NewHTMLTokenizer(strings.NewReader(""), nil)
			p.tokenBuilder.curTagType = startTag
			reconsume, next := p.stateToParser(tc.startingState)(tc.inRune, false)
			assert.Equal(t, tc.shouldReconsume, reconsume)
			assert.Equal(t, tc.nextExpectedState, next, "got %s", next)
		})
	}
}

func TestTokenize(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"text", "hello", `"hello" EOF`},
		{"tags", "<p class=x>hi</p>", `<p class="x"> "hi" </p> EOF`},
		{"self closing", "<br/>", `<br /> EOF`},
		{"uppercase", "<DIV ID=A></DIV>", `<div id="A"> </div> EOF`},
		{"stray less than", "a < b", `"a < b" EOF`},
		{"empty end tag", "a</>b", `"ab" EOF`},
		{"comment", "<!-- x -->", `<!-- x --> EOF`},
		{"abrupt comment", "<!-->", `<!----> EOF`},
		{"comment with dashes", "<!--a--b-->", `<!--a--b--> EOF`},
		{"bogus comment", "<?xml?>", `<!--?xml?--> EOF`},
		{"end tag bogus comment", "</1>", `<!--1--> EOF`},
		{"cdata outside foreign content", "<![CDATA[x]]>", `<!--[CDATA[x]]--> EOF`},
		{"doctype", "<!DOCTYPE html>", `<!DOCTYPE html> EOF`},
		{"doctype identifiers", `<!doctype HTML PUBLIC "-//W3C//DTD HTML 4.01//EN" 'http://www.w3.org/TR/html4/strict.dtd'>`,
			`<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01//EN" SYSTEM "http://www.w3.org/TR/html4/strict.dtd"> EOF`},
		{"eof in tag", "<div", `EOF`},
		{"eof in attribute", `<div a="b`, `EOF`},
		{"eof after less than", "a<", `"a<" EOF`},
		{"newlines", "a\r\nb\rc", `"a\nb\nc" EOF`},
		{"named references", "&amp;&lt&notit;&notin;&bogus;", `"&<¬it;∉&bogus;" EOF`},
		{"numeric references", "&#x41;&#65;&#0;&#x80;&#xD800;&#x110000;", "\"AA\uFFFD€\uFFFD\uFFFD\" EOF"},
		{"numeric without semicolon", "&#65b", `"Ab" EOF`},
		{"numeric without digits", "&#;&#x;", `"&#;&#x;" EOF`},
		{"ampersand alone", "a & b", `"a & b" EOF`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, render(tokenize(t, tt.in)))
		})
	}
}

// tokenizeIn runs the tokenizer from state as if lastTag had just been
// emitted, the way the tree constructor drives it.
func tokenizeIn(t *testing.T, in string, state tokenizerState, lastTag string, cdata bool) string {
	p := NewHTMLTokenizer(strings.NewReader(in), nil)
	p.setLastStartTag(lastTag)
	progress := &Progress{AllowCDATA: cdata, TokenizerState: &state}
	var tokens []Token
	for p.Next() {
		tok, err := p.Token(progress)
		require.NoError(t, err)
		tokens = append(tokens, *tok)
		progress = &Progress{AllowCDATA: cdata}
	}
	return render(tokens)
}

func TestTokenizerStates(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		in      string
		state   tokenizerState
		lastTag string
		cdata   bool
		want    string
	}{
		{"rcdata", "a<b>&amp;</title>", rcDataState, "title", false, `"a<b>&" </title> EOF`},
		{"rcdata wrong end tag", "x</b></textarea>", rcDataState, "textarea", false, `"x</b>" </textarea> EOF`},
		{"rawtext", "a&amp;<b></style>", rawTextState, "style", false, `"a&amp;<b>" </style> EOF`},
		{"script escaped", "<!--<script>x</script>--></script>", scriptDataState, "script", false,
			`"<!--<script>x</script>-->" </script> EOF`},
		{"plaintext", "</plaintext>&amp;", plaintextState, "plaintext", false, `"</plaintext>&amp;" EOF`},
		{"cdata in foreign content", "<![CDATA[x<y]]>", dataState, "", true, `"x<y" EOF`},
		{"cdata brackets", "<![CDATA[a]]]>", dataState, "", true, `"a]" EOF`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tokenizeIn(t, tt.in, tt.state, tt.lastTag, tt.cdata))
		})
	}
}

func TestTokenizerDoctypeFlags(t *testing.T) {
	t.Parallel()
	tokens := tokenize(t, "<!DOCTYPE>")
	require.Equal(t, docTypeToken, tokens[0].TokenType)
	assert.True(t, tokens[0].ForceQuirks)
	assert.False(t, tokens[0].HasPublicIdentifier)

	tokens = tokenize(t, `<!DOCTYPE html SYSTEM "">`)
	require.Equal(t, docTypeToken, tokens[0].TokenType)
	assert.False(t, tokens[0].ForceQuirks)
	assert.True(t, tokens[0].HasSystemIdentifier)
	assert.Empty(t, tokens[0].SystemIdentifier)
}
