package parser

import (
	"strings"

	"github.com/heathj/gosoup/parser/dom"
)

// svgTagNames restores the camel case of SVG element names the tokenizer
// lowercased.
var svgTagNames = map[string]string{
	"altglyph":            "altGlyph",
	"altglyphdef":         "altGlyphDef",
	"altglyphitem":        "altGlyphItem",
	"animatecolor":        "animateColor",
	"animatemotion":       "animateMotion",
	"animatetransform":    "animateTransform",
	"clippath":            "clipPath",
	"feblend":             "feBlend",
	"fecolormatrix":       "feColorMatrix",
	"fecomponenttransfer": "feComponentTransfer",
	"fecomposite":         "feComposite",
	"feconvolvematrix":    "feConvolveMatrix",
	"fediffuselighting":   "feDiffuseLighting",
	"fedisplacementmap":   "feDisplacementMap",
	"fedistantlight":      "feDistantLight",
	"fedropshadow":        "feDropShadow",
	"feflood":             "feFlood",
	"fefunca":             "feFuncA",
	"fefuncb":             "feFuncB",
	"fefuncg":             "feFuncG",
	"fefuncr":             "feFuncR",
	"fegaussianblur":      "feGaussianBlur",
	"feimage":             "feImage",
	"femerge":             "feMerge",
	"femergenode":         "feMergeNode",
	"femorphology":        "feMorphology",
	"feoffset":            "feOffset",
	"fepointlight":        "fePointLight",
	"fespecularlighting":  "feSpecularLighting",
	"fespotlight":         "feSpotLight",
	"fetile":              "feTile",
	"feturbulence":        "feTurbulence",
	"foreignobject":       "foreignObject",
	"glyphref":            "glyphRef",
	"lineargradient":      "linearGradient",
	"radialgradient":      "radialGradient",
	"textpath":            "textPath",
}

var svgAttributeNames = map[string]string{
	"attributename":       "attributeName",
	"attributetype":       "attributeType",
	"basefrequency":       "baseFrequency",
	"baseprofile":         "baseProfile",
	"calcmode":            "calcMode",
	"clippathunits":       "clipPathUnits",
	"diffuseconstant":     "diffuseConstant",
	"edgemode":            "edgeMode",
	"filterunits":         "filterUnits",
	"glyphref":            "glyphRef",
	"gradienttransform":   "gradientTransform",
	"gradientunits":       "gradientUnits",
	"kernelmatrix":        "kernelMatrix",
	"kernelunitlength":    "kernelUnitLength",
	"keypoints":           "keyPoints",
	"keysplines":          "keySplines",
	"keytimes":            "keyTimes",
	"lengthadjust":        "lengthAdjust",
	"limitingconeangle":   "limitingConeAngle",
	"markerheight":        "markerHeight",
	"markerunits":         "markerUnits",
	"markerwidth":         "markerWidth",
	"maskcontentunits":    "maskContentUnits",
	"maskunits":           "maskUnits",
	"numoctaves":          "numOctaves",
	"pathlength":          "pathLength",
	"patterncontentunits": "patternContentUnits",
	"patterntransform":    "patternTransform",
	"patternunits":        "patternUnits",
	"pointsatx":           "pointsAtX",
	"pointsaty":           "pointsAtY",
	"pointsatz":           "pointsAtZ",
	"preservealpha":       "preserveAlpha",
	"preserveaspectratio": "preserveAspectRatio",
	"primitiveunits":      "primitiveUnits",
	"refx":                "refX",
	"refy":                "refY",
	"repeatcount":         "repeatCount",
	"repeatdur":           "repeatDur",
	"requiredextensions":  "requiredExtensions",
	"requiredfeatures":    "requiredFeatures",
	"specularconstant":    "specularConstant",
	"specularexponent":    "specularExponent",
	"spreadmethod":        "spreadMethod",
	"startoffset":         "startOffset",
	"stddeviation":        "stdDeviation",
	"stitchtiles":         "stitchTiles",
	"surfacescale":        "surfaceScale",
	"systemlanguage":      "systemLanguage",
	"tablevalues":         "tableValues",
	"targetx":             "targetX",
	"targety":             "targetY",
	"textlength":          "textLength",
	"viewbox":             "viewBox",
	"viewtarget":          "viewTarget",
	"xchannelselector":    "xChannelSelector",
	"ychannelselector":    "yChannelSelector",
	"zoomandpan":          "zoomAndPan",
}

// foreignAttributes maps namespaced attribute names to their namespace and
// local name.
var foreignAttributes = map[string]dom.Attribute{
	"xlink:actuate": {Namespace: dom.Xlinkns, Name: "actuate"},
	"xlink:arcrole": {Namespace: dom.Xlinkns, Name: "arcrole"},
	"xlink:href":    {Namespace: dom.Xlinkns, Name: "href"},
	"xlink:role":    {Namespace: dom.Xlinkns, Name: "role"},
	"xlink:show":    {Namespace: dom.Xlinkns, Name: "show"},
	"xlink:title":   {Namespace: dom.Xlinkns, Name: "title"},
	"xlink:type":    {Namespace: dom.Xlinkns, Name: "type"},
	"xml:lang":      {Namespace: dom.Xmlns, Name: "lang"},
	"xml:space":     {Namespace: dom.Xmlns, Name: "space"},
	"xmlns":         {Namespace: dom.Xmlnsns, Name: "xmlns"},
	"xmlns:xlink":   {Namespace: dom.Xmlnsns, Name: "xlink"},
}

// adjustForeignAttributes returns a copy of attrs with the MathML, SVG and
// namespaced attribute adjustments for an element in ns applied.
func adjustForeignAttributes(ns dom.Namespace, attrs []dom.Attribute) []dom.Attribute {
	if len(attrs) == 0 {
		return attrs
	}
	out := make([]dom.Attribute, len(attrs))
	for i, a := range attrs {
		switch {
		case ns == dom.Mathmlns && a.Name == "definitionurl":
			a.Name = "definitionURL"
		case ns == dom.Svgns && svgAttributeNames[a.Name] != "":
			a.Name = svgAttributeNames[a.Name]
		}
		if f, ok := foreignAttributes[a.Name]; ok {
			a.Namespace, a.Name = f.Namespace, f.Name
		}
		out[i] = a
	}
	return out
}

// insertForeignToken inserts an element for t in ns with its attributes
// adjusted. Self-closing foreign elements are popped right away.
func (c *HTMLTreeConstructor) insertForeignToken(t *Token, ns dom.Namespace) {
	adjusted := *t
	adjusted.Attributes = adjustForeignAttributes(ns, t.Attributes)
	c.insertForeignElementForToken(&adjusted, ns)
	if t.SelfClosing {
		c.pop()
		c.acknowledgeSelfClosing()
	}
}

func (c *HTMLTreeConstructor) isMathMLTextIntegrationPoint(id dom.NodeID) bool {
	if c.doc.Namespace(id) != dom.Mathmlns {
		return false
	}
	switch c.doc.Name(id) {
	case "mi", "mo", "mn", "ms", "mtext":
		return true
	}
	return false
}

func (c *HTMLTreeConstructor) isHTMLIntegrationPoint(id dom.NodeID) bool {
	switch c.doc.Namespace(id) {
	case dom.Mathmlns:
		if c.doc.Name(id) != "annotation-xml" {
			return false
		}
		enc, _ := c.doc.Attr(id, "encoding")
		return strings.EqualFold(enc, "text/html") || strings.EqualFold(enc, "application/xhtml+xml")
	case dom.Svgns:
		switch c.doc.Name(id) {
		case "foreignObject", "desc", "title":
			return true
		}
	}
	return false
}

// inForeignContent reports whether t goes through the foreign content rules
// instead of the current insertion mode.
func (c *HTMLTreeConstructor) inForeignContent(t *Token) bool {
	acn := c.adjustedCurrentNode()
	if acn == dom.NoNode || c.doc.Namespace(acn) == dom.Htmlns || t.TokenType == endOfFileToken {
		return false
	}
	startTag := t.TokenType == startTagToken
	if c.isMathMLTextIntegrationPoint(acn) {
		if t.TokenType == characterToken || startTag && t.TagName != "mglyph" && t.TagName != "malignmark" {
			return false
		}
	}
	if startTag && t.TagName == "svg" && c.doc.Namespace(acn) == dom.Mathmlns && c.doc.Name(acn) == "annotation-xml" {
		return false
	}
	if c.isHTMLIntegrationPoint(acn) && (startTag || t.TokenType == characterToken) {
		return false
	}
	return true
}

func isForeignBreakout(t *Token) bool {
	switch t.TagName {
	case "b", "big", "blockquote", "body", "br", "center", "code", "dd", "div", "dl", "dt", "em", "embed",
		"h1", "h2", "h3", "h4", "h5", "h6", "head", "hr", "i", "img", "li", "listing", "menu", "meta",
		"nobr", "ol", "p", "pre", "ruby", "s", "small", "span", "strong", "strike", "sub", "sup",
		"table", "tt", "u", "ul", "var":
		return true
	case "font":
		_, color := t.Attr("color")
		_, face := t.Attr("face")
		_, size := t.Attr("size")
		return color || face || size
	}
	return false
}

// popToHTMLContent pops foreign elements until the current node is an HTML
// element or an integration point.
func (c *HTMLTreeConstructor) popToHTMLContent() {
	for {
		cur := c.currentNode()
		if cur == dom.NoNode || c.doc.Namespace(cur) == dom.Htmlns ||
			c.isMathMLTextIntegrationPoint(cur) || c.isHTMLIntegrationPoint(cur) {
			return
		}
		c.pop()
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inforeign
func (c *HTMLTreeConstructor) foreignContentHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		if t.Data == "\u0000" {
			c.insertCharacters("\uFFFD")
			return false, c.mode, unexpectedNullCharacter
		}
		c.insertCharacters(t.Data)
		if !isWhitespaceToken(t) {
			c.framesetOK = false
		}
		return false, c.mode, noError
	case commentToken:
		c.insertComment(t)
		return false, c.mode, noError
	case docTypeToken:
		return false, c.mode, unexpectedDoctype
	case startTagToken:
		if isForeignBreakout(t) {
			c.popToHTMLContent()
			reprocess, next, _ := c.useRulesFor(t, c.mode)
			return reprocess, next, unexpectedStartTag
		}
		acn := c.adjustedCurrentNode()
		ns := c.doc.Namespace(acn)
		if ns == dom.Svgns {
			if name, ok := svgTagNames[t.TagName]; ok {
				renamed := *t
				renamed.TagName = name
				t = &renamed
			}
		}
		c.insertForeignToken(t, ns)
		return false, c.mode, noError
	case endTagToken:
		if t.TagName == "br" || t.TagName == "p" {
			c.popToHTMLContent()
			reprocess, next, _ := c.useRulesFor(t, c.mode)
			return reprocess, next, unexpectedEndTag
		}
		node := c.currentNode()
		err := noError
		if strings.ToLower(c.doc.Name(node)) != t.TagName {
			err = unexpectedEndTag
		}
		for i := len(c.openElements) - 1; i > 0; i-- {
			node = c.openElements[i]
			if strings.ToLower(c.doc.Name(node)) == t.TagName && c.doc.Namespace(node) != dom.Htmlns {
				c.popUntilNode(node)
				return false, c.mode, err
			}
			if c.doc.Namespace(c.openElements[i-1]) == dom.Htmlns {
				reprocess, next, _ := c.useRulesFor(t, c.mode)
				return reprocess, next, err
			}
		}
		return false, c.mode, err
	}
	return false, c.mode, noError
}
