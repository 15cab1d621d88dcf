package parser

import "github.com/heathj/gosoup/parser/dom"

// https://html.spec.whatwg.org/multipage/parsing.html#the-initial-insertion-mode
func (c *HTMLTreeConstructor) initialModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch {
	case isWhitespaceToken(t):
		return false, initial, noError
	case t.TokenType == commentToken:
		c.insertCommentIn(dom.DocumentID, t)
		return false, initial, noError
	case t.TokenType == docTypeToken:
		err := noError
		if t.TagName != "html" || t.HasPublicIdentifier ||
			(t.HasSystemIdentifier && t.SystemIdentifier != "about:legacy-compat") {
			err = nonConformingDoctype
		}
		doctype := c.doc.CreateDoctype(t.TagName, t.PublicIdentifier, t.SystemIdentifier)
		c.place(dom.DocumentID, doctype, dom.NoNode)
		c.doc.SetQuirks(quirksModeFor(t))
		return false, beforeHTML, err
	}
	c.doc.SetQuirks(dom.Quirks)
	return true, beforeHTML, missingDoctype
}

func (c *HTMLTreeConstructor) insertRootElement(t *Token) {
	elem := c.createElementForToken(t, dom.Htmlns)
	c.place(dom.DocumentID, elem, dom.NoNode)
	c.push(elem)
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-before-html-insertion-mode
func (c *HTMLTreeConstructor) beforeHTMLModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case docTypeToken:
		return false, beforeHTML, unexpectedDoctype
	case commentToken:
		c.insertCommentIn(dom.DocumentID, t)
		return false, beforeHTML, noError
	case characterToken:
		if isWhitespaceToken(t) {
			return false, beforeHTML, noError
		}
	case startTagToken:
		if t.TagName == "html" {
			c.insertRootElement(t)
			return false, beforeHead, noError
		}
	case endTagToken:
		switch t.TagName {
		case "head", "body", "html", "br":
		default:
			return false, beforeHTML, unexpectedEndTag
		}
	}
	c.insertRootElement(startTagNamed("html"))
	return true, beforeHead, noError
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-before-head-insertion-mode
func (c *HTMLTreeConstructor) beforeHeadModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		if isWhitespaceToken(t) {
			return false, beforeHead, noError
		}
	case commentToken:
		c.insertComment(t)
		return false, beforeHead, noError
	case docTypeToken:
		return false, beforeHead, unexpectedDoctype
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, inBody)
		case "head":
			c.headElementPointer = c.insertHTMLElementForToken(t)
			return false, inHead, noError
		}
	case endTagToken:
		switch t.TagName {
		case "head", "body", "html", "br":
		default:
			return false, beforeHead, unexpectedEndTag
		}
	}
	c.headElementPointer = c.insertHTMLElementForToken(startTagNamed("head"))
	return true, inHead, noError
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inhead
func (c *HTMLTreeConstructor) inHeadModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		if isWhitespaceToken(t) {
			c.insertCharacters(t.Data)
			return false, c.mode, noError
		}
	case commentToken:
		c.insertComment(t)
		return false, c.mode, noError
	case docTypeToken:
		return false, c.mode, unexpectedDoctype
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, inBody)
		case "base", "basefont", "bgsound", "link", "meta":
			c.insertVoidElement(t)
			return false, c.mode, noError
		case "title":
			return c.genericTextElement(t, rcDataState)
		case "noscript":
			if c.scriptingEnabled {
				return c.genericTextElement(t, rawTextState)
			}
			c.insertHTMLElementForToken(t)
			return false, inHeadNoScript, noError
		case "noframes", "style":
			return c.genericTextElement(t, rawTextState)
		case "script":
			return c.genericTextElement(t, scriptDataState)
		case "template":
			c.insertHTMLElementForToken(t)
			c.pushActiveFormattingMarker()
			c.framesetOK = false
			c.pushTemplateMode(inTemplate)
			return false, inTemplate, noError
		case "head":
			return false, c.mode, unexpectedStartTag
		}
	case endTagToken:
		switch t.TagName {
		case "head":
			c.pop()
			return false, afterHead, noError
		case "body", "html", "br":
		case "template":
			if !c.hasOpen("template") {
				return false, c.mode, unexpectedEndTag
			}
			err := noError
			c.generateAllImpliedEndTagsThoroughly()
			if !c.currentIs("template") {
				err = unexpectedEndTag
			}
			c.popUntil("template")
			c.clearActiveFormattingToLastMarker()
			c.popTemplateMode()
			return false, c.resetInsertionMode(), err
		default:
			return false, c.mode, unexpectedEndTag
		}
	}
	c.pop()
	return true, afterHead, noError
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inheadnoscript
func (c *HTMLTreeConstructor) inHeadNoScriptModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case docTypeToken:
		return false, inHeadNoScript, unexpectedDoctype
	case characterToken:
		if isWhitespaceToken(t) {
			return c.useRulesFor(t, inHead)
		}
	case commentToken:
		return c.useRulesFor(t, inHead)
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, inBody)
		case "basefont", "bgsound", "link", "meta", "noframes", "style":
			return c.useRulesFor(t, inHead)
		case "head", "noscript":
			return false, inHeadNoScript, unexpectedStartTag
		}
	case endTagToken:
		switch t.TagName {
		case "noscript":
			c.pop()
			return false, inHead, noError
		case "br":
		default:
			return false, inHeadNoScript, unexpectedEndTag
		}
	}
	c.pop()
	return true, inHead, generalParseError
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-after-head-insertion-mode
func (c *HTMLTreeConstructor) afterHeadModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		if isWhitespaceToken(t) {
			c.insertCharacters(t.Data)
			return false, afterHead, noError
		}
	case commentToken:
		c.insertComment(t)
		return false, afterHead, noError
	case docTypeToken:
		return false, afterHead, unexpectedDoctype
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, inBody)
		case "body":
			c.insertHTMLElementForToken(t)
			c.framesetOK = false
			return false, inBody, noError
		case "frameset":
			c.insertHTMLElementForToken(t)
			return false, inFrameset, noError
		case "base", "basefont", "bgsound", "link", "meta", "noframes", "script", "style", "template", "title":
			head := c.headElementPointer
			c.push(head)
			reprocess, next, _ := c.useRulesFor(t, inHead)
			c.removeOpen(head)
			return reprocess, next, unexpectedStartTag
		case "head":
			return false, afterHead, unexpectedStartTag
		}
	case endTagToken:
		switch t.TagName {
		case "template":
			return c.useRulesFor(t, inHead)
		case "body", "html", "br":
		default:
			return false, afterHead, unexpectedEndTag
		}
	}
	c.insertHTMLElementForToken(startTagNamed("body"))
	return true, inBody, noError
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-incdata
func (c *HTMLTreeConstructor) textModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		c.insertCharacters(t.Data)
		return false, text, noError
	case endOfFileToken:
		c.pop()
		return true, c.originalInsertionMode, unexpectedEOF
	case endTagToken:
		c.pop()
		return false, c.originalInsertionMode, noError
	}
	return false, text, noError
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-afterbody
func (c *HTMLTreeConstructor) afterBodyModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		if isWhitespaceToken(t) {
			return c.useRulesFor(t, inBody)
		}
	case commentToken:
		if len(c.openElements) > 0 {
			c.insertCommentIn(c.openElements[0], t)
		}
		return false, afterBody, noError
	case docTypeToken:
		return false, afterBody, unexpectedDoctype
	case startTagToken:
		if t.TagName == "html" {
			return c.useRulesFor(t, inBody)
		}
	case endTagToken:
		if t.TagName == "html" {
			if c.context != dom.NoNode {
				return false, afterBody, unexpectedEndTag
			}
			return false, afterAfterBody, noError
		}
	case endOfFileToken:
		return false, afterBody, noError
	}
	return true, inBody, unexpectedCharacter
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inframeset
func (c *HTMLTreeConstructor) inFramesetModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		if isWhitespaceToken(t) {
			c.insertCharacters(t.Data)
			return false, inFrameset, noError
		}
	case commentToken:
		c.insertComment(t)
		return false, inFrameset, noError
	case docTypeToken:
		return false, inFrameset, unexpectedDoctype
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, inBody)
		case "frameset":
			c.insertHTMLElementForToken(t)
			return false, inFrameset, noError
		case "frame":
			c.insertVoidElement(t)
			return false, inFrameset, noError
		case "noframes":
			return c.useRulesFor(t, inHead)
		}
	case endTagToken:
		if t.TagName == "frameset" {
			if len(c.openElements) == 1 {
				return false, inFrameset, unexpectedEndTag
			}
			c.pop()
			if c.context == dom.NoNode && !c.currentIs("frameset") {
				return false, afterFrameset, noError
			}
			return false, inFrameset, noError
		}
	case endOfFileToken:
		if len(c.openElements) > 1 {
			return false, inFrameset, unexpectedEOF
		}
		return false, inFrameset, noError
	}
	return false, inFrameset, unexpectedCharacter
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-afterframeset
func (c *HTMLTreeConstructor) afterFramesetModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		if isWhitespaceToken(t) {
			c.insertCharacters(t.Data)
			return false, afterFrameset, noError
		}
	case commentToken:
		c.insertComment(t)
		return false, afterFrameset, noError
	case docTypeToken:
		return false, afterFrameset, unexpectedDoctype
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, inBody)
		case "noframes":
			return c.useRulesFor(t, inHead)
		}
	case endTagToken:
		if t.TagName == "html" {
			return false, afterAfterFrameset, noError
		}
	case endOfFileToken:
		return false, afterFrameset, noError
	}
	return false, afterFrameset, unexpectedCharacter
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-after-after-body-insertion-mode
func (c *HTMLTreeConstructor) afterAfterBodyModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case commentToken:
		c.insertCommentIn(dom.DocumentID, t)
		return false, afterAfterBody, noError
	case docTypeToken:
		return c.useRulesFor(t, inBody)
	case characterToken:
		if isWhitespaceToken(t) {
			return c.useRulesFor(t, inBody)
		}
	case startTagToken:
		if t.TagName == "html" {
			return c.useRulesFor(t, inBody)
		}
	case endOfFileToken:
		return false, afterAfterBody, noError
	}
	return true, inBody, unexpectedCharacter
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-after-after-frameset-insertion-mode
func (c *HTMLTreeConstructor) afterAfterFramesetModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case commentToken:
		c.insertCommentIn(dom.DocumentID, t)
		return false, afterAfterFrameset, noError
	case docTypeToken:
		return c.useRulesFor(t, inBody)
	case characterToken:
		if isWhitespaceToken(t) {
			return c.useRulesFor(t, inBody)
		}
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, inBody)
		case "noframes":
			return c.useRulesFor(t, inHead)
		}
	case endOfFileToken:
		return false, afterAfterFrameset, noError
	}
	return false, afterAfterFrameset, unexpectedCharacter
}
