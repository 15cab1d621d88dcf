package selector

import (
	"unicode/utf8"

	"github.com/speedata/css/scanner"
)

type tokenKind uint8

const (
	tEOF tokenKind = iota
	tIdent
	tFunction
	tHash
	tString
	tNumber
	tDimension
	tSpace
	tDelim
	tMatch
	tOther
)

type token struct {
	kind tokenKind
	val  string
	pos  int
	// ident is set on hash tokens whose name would also be a valid
	// identifier, the only ones usable as id selectors.
	ident bool
}

var matchOps = map[scanner.Type]string{
	scanner.Includes:       "~=",
	scanner.DashMatch:      "|=",
	scanner.PrefixMatch:    "^=",
	scanner.SuffixMatch:    "$=",
	scanner.SubstringMatch: "*=",
}

// identStart reports whether the runes at i begin an identifier.
func identStart(rs []rune, i int) bool {
	if i >= len(rs) {
		return false
	}
	if rs[i] == '-' {
		i++
		if i >= len(rs) {
			return false
		}
		if rs[i] == '-' {
			return true
		}
	}
	c := rs[i]
	return c == '_' || c == '\\' || c >= utf8.RuneSelf || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

// lex runs the CSS scanner over src. Comments are dropped and the result
// always ends with a tEOF token positioned at the end of the input. The
// scanner has already resolved escapes and quotes in token values.
func lex(src string) ([]token, error) {
	runes := []rune(src)
	var lineStarts []int
	lineStarts = append(lineStarts, 0)
	for i, r := range runes {
		if r == '\n' {
			lineStarts = append(lineStarts, i+1)
		}
	}
	position := func(t *scanner.Token) int {
		line := t.Line - 1
		if line < 0 {
			line = 0
		}
		if line >= len(lineStarts) {
			line = len(lineStarts) - 1
		}
		col := t.Column - 1
		if col < 0 {
			col = 0
		}
		return lineStarts[line] + col
	}

	var out []token
	s := scanner.New(src)
	for {
		t := s.Next()
		if t == nil || t.Type == scanner.EOF {
			break
		}
		tok := token{val: t.Value, pos: position(t)}
		switch t.Type {
		case scanner.Error:
			return nil, syntaxError(tok.pos, "invalid token %q", t.Value)
		case scanner.Comment:
			continue
		case scanner.Ident:
			tok.kind = tIdent
		case scanner.Function:
			tok.kind = tFunction
		case scanner.Hash:
			tok.kind = tHash
			tok.ident = identStart(runes, tok.pos+1)
		case scanner.String:
			tok.kind = tString
		case scanner.Number:
			tok.kind = tNumber
		case scanner.Dimension:
			tok.kind = tDimension
		case scanner.S:
			tok.kind = tSpace
		case scanner.Delim:
			tok.kind = tDelim
		case scanner.Includes, scanner.DashMatch, scanner.PrefixMatch, scanner.SuffixMatch, scanner.SubstringMatch:
			tok.kind, tok.val = tMatch, matchOps[t.Type]
		default:
			tok.kind = tOther
		}
		if n := len(out); tok.kind == tDelim && tok.val == "(" && n > 0 && out[n-1].kind == tIdent {
			out[n-1].kind = tFunction
			continue
		}
		out = append(out, tok)
	}
	return append(out, token{kind: tEOF, pos: utf8.RuneCountInString(src)}), nil
}
