package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heathj/gosoup/selector"
)

const input = `<!DOCTYPE html><html><head><style>.a { color: red } p { margin: 0 }</style></head>
<body><p class="a">one</p><p>two <b>bold</b></p></body></html>`

func TestRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		in   string
		want string
	}{
		{"css outer html", []string{"-css", "p.a"}, input, "<p class=\"a\">one</p>\n"},
		{"css text", []string{"-css", "p", "-text"}, input, "one\ntwo bold\n"},
		{"css inner html", []string{"-css", "p:nth-of-type(2)", "-html"}, input, "two <b>bold</b>\n"},
		{"first", []string{"-css", "p", "-first", "-text"}, input, "one\n"},
		{"xpath", []string{"-xpath", "//b", "-text"}, input, "bold\n"},
		{"no match", []string{"-css", "table"}, input, ""},
		{"styles", []string{"-css", "p.a", "-text", "-styles"}, input, "one\n  color: red;\n  margin: 0;\n"},
		{"dump", []string{"-dump"}, "<p>x", "| <html>\n|   <head>\n|   <body>\n|     <p>\n|       \"x\"\n"},
		{"fragment", []string{"-fragment", "tr"}, "<td>1<td>2", "<td>1</td>\n<td>2</td>\n"},
		{"fragment query", []string{"-fragment", "div", "-css", "b", "-text"}, "<b>x</b><i><b>y</b></i>", "x\ny\n"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var out, errOut bytes.Buffer
			err := run(tt.args, strings.NewReader(tt.in), &out, &errOut)
			require.NoError(t, err, errOut.String())
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestRunSelectorTree(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	require.NoError(t, run([]string{"-css", "ul > li", "-tree"}, strings.NewReader("<ul><li>1</ul>"), &out, &out))
	assert.Contains(t, out.String(), `combinator ">"`)
	assert.Contains(t, out.String(), "<li>1</li>")
}

func TestRunFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte(input), 0o600))

	var out bytes.Buffer
	require.NoError(t, run([]string{"-css", "b", "-text", path}, strings.NewReader(""), &out, &out))
	assert.Equal(t, "bold\n", out.String())

	err := run([]string{filepath.Join(t.TempDir(), "missing.html")}, strings.NewReader(""), &out, &out)
	assert.True(t, os.IsNotExist(errors.Cause(err)))
}

func TestRunErrors(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer

	err := run([]string{"-css", "p["}, strings.NewReader(input), &out, &out)
	var se *selector.SyntaxError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 2, se.Pos)

	err = run([]string{"-css", "p", "-xpath", "//p"}, strings.NewReader(input), &out, &out)
	assert.Error(t, err)

	err = run([]string{"-xpath", "//p["}, strings.NewReader(input), &out, &out)
	assert.Error(t, err)

	err = run([]string{"-nope"}, strings.NewReader(input), &out, &out)
	assert.Error(t, err)
}
