package parser

import (
	"strings"

	"github.com/heathj/gosoup/parser/dom"
)

var headingTags = []string{"h1", "h2", "h3", "h4", "h5", "h6"}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inbody
func (c *HTMLTreeConstructor) inBodyModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		switch {
		case t.Data == "\u0000":
			return false, c.mode, unexpectedNullCharacter
		case isWhitespaceToken(t):
			c.reconstructActiveFormattingElements()
			c.insertCharacters(t.Data)
		default:
			c.reconstructActiveFormattingElements()
			c.insertCharacters(t.Data)
			c.framesetOK = false
		}
		return false, c.mode, noError
	case commentToken:
		c.insertComment(t)
		return false, c.mode, noError
	case docTypeToken:
		return false, c.mode, unexpectedDoctype
	case startTagToken:
		return c.inBodyStartTag(t)
	case endTagToken:
		return c.inBodyEndTag(t)
	case endOfFileToken:
		if len(c.templateModes) > 0 {
			return c.useRulesFor(t, inTemplate)
		}
		return false, c.mode, noError
	}
	return false, c.mode, noError
}

func (c *HTMLTreeConstructor) inBodyStartTag(t *Token) (bool, insertionMode, parseError) {
	switch t.TagName {
	case "html":
		if !c.hasOpen("template") && len(c.openElements) > 0 {
			c.doc.MergeAttrs(c.openElements[0], t.Attributes)
		}
		return false, c.mode, unexpectedStartTag
	case "base", "basefont", "bgsound", "link", "meta", "noframes", "script", "style", "template", "title":
		return c.useRulesFor(t, inHead)
	case "body":
		if len(c.openElements) < 2 || !c.doc.IsHTML(c.openElements[1], "body") || c.hasOpen("template") {
			return false, c.mode, unexpectedStartTag
		}
		c.framesetOK = false
		c.doc.MergeAttrs(c.openElements[1], t.Attributes)
		return false, c.mode, unexpectedStartTag
	case "frameset":
		if len(c.openElements) < 2 || !c.doc.IsHTML(c.openElements[1], "body") || !c.framesetOK {
			return false, c.mode, unexpectedStartTag
		}
		c.doc.Detach(c.openElements[1])
		c.openElements = c.openElements[:1]
		c.insertHTMLElementForToken(t)
		return false, inFrameset, unexpectedStartTag
	case "address", "article", "aside", "blockquote", "center", "details", "dialog", "dir", "div", "dl", "fieldset", "figcaption", "figure", "footer", "header", "hgroup", "main", "menu", "nav", "ol", "p", "search", "section", "summary", "ul":
		c.closePIfInButtonScope()
		c.insertHTMLElementForToken(t)
	case "h1", "h2", "h3", "h4", "h5", "h6":
		c.closePIfInButtonScope()
		err := noError
		if c.currentIs(headingTags...) {
			c.pop()
			err = unexpectedStartTag
		}
		c.insertHTMLElementForToken(t)
		return false, c.mode, err
	case "pre", "listing":
		c.closePIfInButtonScope()
		c.insertHTMLElementForToken(t)
		c.skipNextLF = true
		c.framesetOK = false
	case "form":
		inTemplate := c.hasOpen("template")
		if c.formElementPointer != dom.NoNode && !inTemplate {
			return false, c.mode, unexpectedStartTag
		}
		c.closePIfInButtonScope()
		form := c.insertHTMLElementForToken(t)
		if !inTemplate {
			c.formElementPointer = form
		}
	case "li", "dd", "dt":
		c.framesetOK = false
		closes := []string{t.TagName}
		if t.TagName != "li" {
			closes = []string{"dd", "dt"}
		}
		for i := len(c.openElements) - 1; i >= 0; i-- {
			node := c.openElements[i]
			if c.doc.IsHTML(node, closes...) {
				name := c.doc.Name(node)
				c.generateImpliedEndTags(name)
				c.popUntil(name)
				break
			}
			if c.isSpecial(node) && !c.doc.IsHTML(node, "address", "div", "p") {
				break
			}
		}
		c.closePIfInButtonScope()
		c.insertHTMLElementForToken(t)
	case "plaintext":
		c.closePIfInButtonScope()
		c.insertHTMLElementForToken(t)
		c.switchTokenizer(plaintextState)
	case "button":
		err := noError
		if c.elementInScope(defaultScope, "button") {
			err = unexpectedStartTag
			c.generateImpliedEndTags("")
			c.popUntil("button")
		}
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(t)
		c.framesetOK = false
		return false, c.mode, err
	case "a":
		err := noError
		if i := c.activeFormattingElementNamed("a"); i >= 0 {
			err = unexpectedStartTag
			a := c.activeFormatting[i]
			c.adoptionAgencyAlgorithm("a")
			if j := c.indexOfActiveFormatting(a); j >= 0 {
				c.removeActiveFormattingAt(j)
			}
			c.removeOpen(a)
		}
		c.reconstructActiveFormattingElements()
		c.pushActiveFormattingElements(c.insertHTMLElementForToken(t))
		return false, c.mode, err
	case "b", "big", "code", "em", "font", "i", "s", "small", "strike", "strong", "tt", "u":
		c.reconstructActiveFormattingElements()
		c.pushActiveFormattingElements(c.insertHTMLElementForToken(t))
	case "nobr":
		err := noError
		c.reconstructActiveFormattingElements()
		if c.elementInScope(defaultScope, "nobr") {
			err = unexpectedStartTag
			c.adoptionAgencyAlgorithm("nobr")
			c.reconstructActiveFormattingElements()
		}
		c.pushActiveFormattingElements(c.insertHTMLElementForToken(t))
		return false, c.mode, err
	case "applet", "marquee", "object":
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(t)
		c.pushActiveFormattingMarker()
		c.framesetOK = false
	case "table":
		if c.doc.Quirks() != dom.Quirks {
			c.closePIfInButtonScope()
		}
		c.insertHTMLElementForToken(t)
		c.framesetOK = false
		return false, inTable, noError
	case "area", "br", "embed", "img", "keygen", "wbr":
		c.reconstructActiveFormattingElements()
		c.insertVoidElement(t)
		c.framesetOK = false
	case "input":
		c.reconstructActiveFormattingElements()
		c.insertVoidElement(t)
		if v, ok := t.Attr("type"); !ok || !strings.EqualFold(v, "hidden") {
			c.framesetOK = false
		}
	case "param", "source", "track":
		c.insertVoidElement(t)
	case "hr":
		c.closePIfInButtonScope()
		c.insertVoidElement(t)
		c.framesetOK = false
	case "image":
		t.TagName = "img"
		return true, c.mode, unexpectedStartTag
	case "textarea":
		c.insertHTMLElementForToken(t)
		c.skipNextLF = true
		c.switchTokenizer(rcDataState)
		c.originalInsertionMode = c.mode
		c.framesetOK = false
		return false, text, noError
	case "xmp":
		c.closePIfInButtonScope()
		c.reconstructActiveFormattingElements()
		c.framesetOK = false
		return c.genericTextElement(t, rawTextState)
	case "iframe":
		c.framesetOK = false
		return c.genericTextElement(t, rawTextState)
	case "noembed":
		return c.genericTextElement(t, rawTextState)
	case "noscript":
		if c.scriptingEnabled {
			return c.genericTextElement(t, rawTextState)
		}
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(t)
	case "select":
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(t)
		c.framesetOK = false
		switch c.mode {
		case inTable, inCaption, inTableBody, inRow, inCell:
			return false, inSelectInTable, noError
		}
		return false, inSelect, noError
	case "optgroup", "option":
		if c.currentIs("option") {
			c.pop()
		}
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(t)
	case "rb", "rtc":
		err := noError
		if c.elementInScope(defaultScope, "ruby") {
			c.generateImpliedEndTags("")
			if !c.currentIs("ruby") {
				err = unexpectedStartTag
			}
		}
		c.insertHTMLElementForToken(t)
		return false, c.mode, err
	case "rp", "rt":
		err := noError
		if c.elementInScope(defaultScope, "ruby") {
			c.generateImpliedEndTags("rtc")
			if !c.currentIs("rtc", "ruby") {
				err = unexpectedStartTag
			}
		}
		c.insertHTMLElementForToken(t)
		return false, c.mode, err
	case "math", "svg":
		c.reconstructActiveFormattingElements()
		ns := dom.Svgns
		if t.TagName == "math" {
			ns = dom.Mathmlns
		}
		c.insertForeignToken(t, ns)
	case "caption", "col", "colgroup", "frame", "head", "tbody", "td", "tfoot", "th", "thead", "tr":
		return false, c.mode, unexpectedStartTag
	default:
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(t)
	}
	return false, c.mode, noError
}

func (c *HTMLTreeConstructor) inBodyEndTag(t *Token) (bool, insertionMode, parseError) {
	switch t.TagName {
	case "template":
		return c.useRulesFor(t, inHead)
	case "body":
		if !c.elementInScope(defaultScope, "body") {
			return false, c.mode, unexpectedEndTag
		}
		return false, afterBody, noError
	case "html":
		if !c.elementInScope(defaultScope, "body") {
			return false, c.mode, unexpectedEndTag
		}
		return true, afterBody, noError
	case "address", "article", "aside", "blockquote", "button", "center", "details", "dialog", "dir", "div", "dl", "fieldset", "figcaption", "figure", "footer", "header", "hgroup", "listing", "main", "menu", "nav", "ol", "pre", "search", "section", "summary", "ul":
		if !c.elementInScope(defaultScope, t.TagName) {
			return false, c.mode, unexpectedEndTag
		}
		c.generateImpliedEndTags("")
		err := noError
		if !c.currentIs(t.TagName) {
			err = unexpectedEndTag
		}
		c.popUntil(t.TagName)
		return false, c.mode, err
	case "form":
		if c.hasOpen("template") {
			if !c.elementInScope(defaultScope, "form") {
				return false, c.mode, unexpectedEndTag
			}
			c.generateImpliedEndTags("")
			err := noError
			if !c.currentIs("form") {
				err = unexpectedEndTag
			}
			c.popUntil("form")
			return false, c.mode, err
		}
		node := c.formElementPointer
		c.formElementPointer = dom.NoNode
		if node == dom.NoNode || !c.nodeInScope(defaultScope, node) {
			return false, c.mode, unexpectedEndTag
		}
		c.generateImpliedEndTags("")
		err := noError
		if c.currentNode() != node {
			err = unexpectedEndTag
		}
		c.removeOpen(node)
		return false, c.mode, err
	case "p":
		err := noError
		if !c.elementInScope(buttonScope, "p") {
			err = unexpectedEndTag
			c.insertHTMLElementForToken(startTagNamed("p"))
		}
		if closeErr := c.closePElement(); err == noError {
			err = closeErr
		}
		return false, c.mode, err
	case "li", "dd", "dt":
		s := defaultScope
		if t.TagName == "li" {
			s = listItemScope
		}
		if !c.elementInScope(s, t.TagName) {
			return false, c.mode, unexpectedEndTag
		}
		c.generateImpliedEndTags(t.TagName)
		err := noError
		if !c.currentIs(t.TagName) {
			err = unexpectedEndTag
		}
		c.popUntil(t.TagName)
		return false, c.mode, err
	case "h1", "h2", "h3", "h4", "h5", "h6":
		if !c.elementInScope(defaultScope, headingTags...) {
			return false, c.mode, unexpectedEndTag
		}
		c.generateImpliedEndTags("")
		err := noError
		if !c.currentIs(t.TagName) {
			err = unexpectedEndTag
		}
		c.popUntil(headingTags...)
		return false, c.mode, err
	case "a", "b", "big", "code", "em", "font", "i", "nobr", "s", "small", "strike", "strong", "tt", "u":
		handled, err := c.adoptionAgencyAlgorithm(t.TagName)
		if handled {
			return false, c.mode, err
		}
		return false, c.mode, c.anyOtherEndTag(t)
	case "applet", "marquee", "object":
		if !c.elementInScope(defaultScope, t.TagName) {
			return false, c.mode, unexpectedEndTag
		}
		c.generateImpliedEndTags("")
		err := noError
		if !c.currentIs(t.TagName) {
			err = unexpectedEndTag
		}
		c.popUntil(t.TagName)
		c.clearActiveFormattingToLastMarker()
		return false, c.mode, err
	case "br":
		reprocess, next, _ := c.inBodyStartTag(startTagNamed("br"))
		return reprocess, next, unexpectedEndTag
	}
	return false, c.mode, c.anyOtherEndTag(t)
}

// anyOtherEndTag closes the nearest open element with the token's tag name,
// unless a special element is in the way.
func (c *HTMLTreeConstructor) anyOtherEndTag(t *Token) parseError {
	for i := len(c.openElements) - 1; i >= 0; i-- {
		node := c.openElements[i]
		if c.doc.IsHTML(node, t.TagName) {
			c.generateImpliedEndTags(t.TagName)
			err := noError
			if c.currentNode() != node {
				err = unexpectedEndTag
			}
			c.popUntilNode(node)
			return err
		}
		if c.isSpecial(node) {
			return unexpectedEndTag
		}
	}
	return noError
}
