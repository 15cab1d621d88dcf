package parser

import (
	"strings"

	"golang.org/x/net/html"
)

// longestEntityName bounds the lookahead of named character references.
const longestEntityName = 32

// legacyEntities are the named character references that are also recognized
// without a trailing semicolon.
var legacyEntities = map[string]bool{
	"AElig": true, "AMP": true, "Aacute": true, "Acirc": true, "Agrave": true,
	"Aring": true, "Atilde": true, "Auml": true, "COPY": true, "Ccedil": true,
	"ETH": true, "Eacute": true, "Ecirc": true, "Egrave": true, "Euml": true,
	"GT": true, "Iacute": true, "Icirc": true, "Igrave": true, "Iuml": true,
	"LT": true, "Ntilde": true, "Oacute": true, "Ocirc": true, "Ograve": true,
	"Oslash": true, "Otilde": true, "Ouml": true, "QUOT": true, "REG": true,
	"THORN": true, "Uacute": true, "Ucirc": true, "Ugrave": true, "Uuml": true,
	"Yacute": true, "aacute": true, "acirc": true, "acute": true, "aelig": true,
	"agrave": true, "amp": true, "aring": true, "atilde": true, "auml": true,
	"brvbar": true, "ccedil": true, "cedil": true, "cent": true, "copy": true,
	"curren": true, "deg": true, "divide": true, "eacute": true, "ecirc": true,
	"egrave": true, "eth": true, "euml": true, "frac12": true, "frac14": true,
	"frac34": true, "gt": true, "iacute": true, "icirc": true, "iexcl": true,
	"igrave": true, "iquest": true, "iuml": true, "laquo": true, "lt": true,
	"macr": true, "micro": true, "middot": true, "nbsp": true, "not": true,
	"ntilde": true, "oacute": true, "ocirc": true, "ograve": true, "ordf": true,
	"ordm": true, "oslash": true, "otilde": true, "ouml": true, "para": true,
	"plusmn": true, "pound": true, "quot": true, "raquo": true, "reg": true,
	"sect": true, "shy": true, "sup1": true, "sup2": true, "sup3": true,
	"szlig": true, "thorn": true, "times": true, "uacute": true, "ucirc": true,
	"ugrave": true, "uml": true, "uuml": true, "yacute": true, "yen": true,
	"yuml": true,
}

// lookupEntity decodes the semicolon-terminated reference "&name;".
func lookupEntity(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	v := html.UnescapeString("&" + name + ";")
	// Unknown names come back with their semicolon, possibly after a legacy
	// prefix was decoded. &semi; is the one reference that decodes to ";".
	if strings.HasSuffix(v, ";") && name != "semi" {
		return "", false
	}
	return v, true
}

// matchEntity applies the longest-match rule to an alphanumeric run that
// follows an ampersand. semicolon reports whether a ';' directly follows the
// run. It returns the number of bytes of run consumed (excluding the
// semicolon), the decoded text, and whether the match was terminated by a
// semicolon. n is 0 when nothing matched.
func matchEntity(run string, semicolon bool) (n int, decoded string, terminated bool) {
	if semicolon {
		if v, ok := lookupEntity(run); ok {
			return len(run), v, true
		}
	}
	for i := len(run); i > 1; i-- {
		if legacyEntities[run[:i]] {
			v, _ := lookupEntity(run[:i])
			return i, v, false
		}
	}
	return 0, "", false
}

func isASCIIAlphanumeric(b byte) bool {
	return 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z' || '0' <= b && b <= '9'
}
