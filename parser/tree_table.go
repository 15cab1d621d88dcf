package parser

import (
	"strings"

	"github.com/heathj/gosoup/parser/dom"
)

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-intable
func (c *HTMLTreeConstructor) inTableModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		if c.currentIs("table", "tbody", "template", "tfoot", "thead", "tr") {
			c.pendingTableText.Reset()
			c.pendingTableNonSpace = false
			c.originalInsertionMode = c.mode
			return true, inTableText, noError
		}
	case commentToken:
		c.insertComment(t)
		return false, c.mode, noError
	case docTypeToken:
		return false, c.mode, unexpectedDoctype
	case startTagToken:
		switch t.TagName {
		case "caption":
			c.clearStackBackToTable()
			c.pushActiveFormattingMarker()
			c.insertHTMLElementForToken(t)
			return false, inCaption, noError
		case "colgroup":
			c.clearStackBackToTable()
			c.insertHTMLElementForToken(t)
			return false, inColumnGroup, noError
		case "col":
			c.clearStackBackToTable()
			c.insertHTMLElementForToken(startTagNamed("colgroup"))
			return true, inColumnGroup, noError
		case "tbody", "tfoot", "thead":
			c.clearStackBackToTable()
			c.insertHTMLElementForToken(t)
			return false, inTableBody, noError
		case "td", "th", "tr":
			c.clearStackBackToTable()
			c.insertHTMLElementForToken(startTagNamed("tbody"))
			return true, inTableBody, noError
		case "table":
			if !c.elementInScope(tableScope, "table") {
				return false, c.mode, unexpectedStartTag
			}
			c.popUntil("table")
			return true, c.resetInsertionMode(), unexpectedStartTag
		case "style", "script", "template":
			return c.useRulesFor(t, inHead)
		case "input":
			if v, ok := t.Attr("type"); ok && strings.EqualFold(v, "hidden") {
				c.insertVoidElement(t)
				return false, c.mode, unexpectedStartTag
			}
		case "form":
			if c.hasOpen("template") || c.formElementPointer != dom.NoNode {
				return false, c.mode, unexpectedStartTag
			}
			c.formElementPointer = c.insertHTMLElementForToken(t)
			c.pop()
			return false, c.mode, unexpectedStartTag
		}
	case endTagToken:
		switch t.TagName {
		case "table":
			if !c.elementInScope(tableScope, "table") {
				return false, c.mode, unexpectedEndTag
			}
			c.popUntil("table")
			return false, c.resetInsertionMode(), noError
		case "body", "caption", "col", "colgroup", "html", "tbody", "td", "tfoot", "th", "thead", "tr":
			return false, c.mode, unexpectedEndTag
		case "template":
			return c.useRulesFor(t, inHead)
		}
	case endOfFileToken:
		return c.useRulesFor(t, inBody)
	}

	c.fosterParenting = true
	reprocess, next, _ := c.useRulesFor(t, inBody)
	c.fosterParenting = false
	return reprocess, next, unexpectedCharacter
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-intabletext
func (c *HTMLTreeConstructor) inTableTextModeHandler(t *Token) (bool, insertionMode, parseError) {
	if t.TokenType == characterToken {
		if t.Data == "\u0000" {
			return false, inTableText, unexpectedNullCharacter
		}
		if !isWhitespaceToken(t) {
			c.pendingTableNonSpace = true
		}
		c.pendingTableText.WriteString(t.Data)
		return false, inTableText, noError
	}

	pending := c.pendingTableText.String()
	c.pendingTableText.Reset()
	err := noError
	if c.pendingTableNonSpace {
		// Misplaced text is foster parented like in the table "anything else"
		// case.
		err = unexpectedCharacter
		c.fosterParenting = true
		c.reconstructActiveFormattingElements()
		c.insertCharacters(pending)
		c.framesetOK = false
		c.fosterParenting = false
	} else if pending != "" {
		c.insertCharacters(pending)
	}
	c.pendingTableNonSpace = false
	return true, c.originalInsertionMode, err
}

func (c *HTMLTreeConstructor) closeCaption() parseError {
	err := noError
	c.generateImpliedEndTags("")
	if !c.currentIs("caption") {
		err = unexpectedEndTag
	}
	c.popUntil("caption")
	c.clearActiveFormattingToLastMarker()
	return err
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-incaption
func (c *HTMLTreeConstructor) inCaptionModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case startTagToken:
		switch t.TagName {
		case "caption", "col", "colgroup", "tbody", "td", "tfoot", "th", "thead", "tr":
			if !c.elementInScope(tableScope, "caption") {
				return false, c.mode, unexpectedStartTag
			}
			c.closeCaption()
			return true, inTable, unexpectedStartTag
		}
	case endTagToken:
		switch t.TagName {
		case "caption":
			if !c.elementInScope(tableScope, "caption") {
				return false, c.mode, unexpectedEndTag
			}
			return false, inTable, c.closeCaption()
		case "table":
			if !c.elementInScope(tableScope, "caption") {
				return false, c.mode, unexpectedEndTag
			}
			c.closeCaption()
			return true, inTable, unexpectedEndTag
		case "body", "col", "colgroup", "html", "tbody", "td", "tfoot", "th", "thead", "tr":
			return false, c.mode, unexpectedEndTag
		}
	}
	return c.useRulesFor(t, inBody)
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-incolgroup
func (c *HTMLTreeConstructor) inColumnGroupModeHandler(t *Token) (bool, insertionMode, parseError) {
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
		case "col":
			c.insertVoidElement(t)
			return false, c.mode, noError
		case "template":
			return c.useRulesFor(t, inHead)
		}
	case endTagToken:
		switch t.TagName {
		case "colgroup":
			if !c.currentIs("colgroup") {
				return false, c.mode, unexpectedEndTag
			}
			c.pop()
			return false, inTable, noError
		case "col":
			return false, c.mode, unexpectedEndTag
		case "template":
			return c.useRulesFor(t, inHead)
		}
	case endOfFileToken:
		return c.useRulesFor(t, inBody)
	}

	if !c.currentIs("colgroup") {
		return false, c.mode, unexpectedCharacter
	}
	c.pop()
	return true, inTable, noError
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-intbody
func (c *HTMLTreeConstructor) inTableBodyModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case startTagToken:
		switch t.TagName {
		case "tr":
			c.clearStackBackToTableBody()
			c.insertHTMLElementForToken(t)
			return false, inRow, noError
		case "th", "td":
			c.clearStackBackToTableBody()
			c.insertHTMLElementForToken(startTagNamed("tr"))
			return true, inRow, unexpectedStartTag
		case "caption", "col", "colgroup", "tbody", "tfoot", "thead":
			if !c.elementInScope(tableScope, "tbody", "thead", "tfoot") {
				return false, c.mode, unexpectedStartTag
			}
			c.clearStackBackToTableBody()
			c.pop()
			return true, inTable, noError
		}
	case endTagToken:
		switch t.TagName {
		case "tbody", "tfoot", "thead":
			if !c.elementInScope(tableScope, t.TagName) {
				return false, c.mode, unexpectedEndTag
			}
			c.clearStackBackToTableBody()
			c.pop()
			return false, inTable, noError
		case "table":
			if !c.elementInScope(tableScope, "tbody", "thead", "tfoot") {
				return false, c.mode, unexpectedEndTag
			}
			c.clearStackBackToTableBody()
			c.pop()
			return true, inTable, noError
		case "body", "caption", "col", "colgroup", "html", "td", "th", "tr":
			return false, c.mode, unexpectedEndTag
		}
	}
	return c.useRulesFor(t, inTable)
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-intr
func (c *HTMLTreeConstructor) inRowModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case startTagToken:
		switch t.TagName {
		case "th", "td":
			c.clearStackBackToTableRow()
			c.insertHTMLElementForToken(t)
			c.pushActiveFormattingMarker()
			return false, inCell, noError
		case "caption", "col", "colgroup", "tbody", "tfoot", "thead", "tr":
			if !c.elementInScope(tableScope, "tr") {
				return false, c.mode, unexpectedStartTag
			}
			c.clearStackBackToTableRow()
			c.pop()
			return true, inTableBody, noError
		}
	case endTagToken:
		switch t.TagName {
		case "tr":
			if !c.elementInScope(tableScope, "tr") {
				return false, c.mode, unexpectedEndTag
			}
			c.clearStackBackToTableRow()
			c.pop()
			return false, inTableBody, noError
		case "table":
			if !c.elementInScope(tableScope, "tr") {
				return false, c.mode, unexpectedEndTag
			}
			c.clearStackBackToTableRow()
			c.pop()
			return true, inTableBody, noError
		case "tbody", "tfoot", "thead":
			if !c.elementInScope(tableScope, t.TagName) {
				return false, c.mode, unexpectedEndTag
			}
			if !c.elementInScope(tableScope, "tr") {
				return false, c.mode, noError
			}
			c.clearStackBackToTableRow()
			c.pop()
			return true, inTableBody, noError
		case "body", "caption", "col", "colgroup", "html", "td", "th":
			return false, c.mode, unexpectedEndTag
		}
	}
	return c.useRulesFor(t, inTable)
}

func (c *HTMLTreeConstructor) closeCell() parseError {
	err := noError
	c.generateImpliedEndTags("")
	if !c.currentIs("td", "th") {
		err = unexpectedEndTag
	}
	c.popUntil("td", "th")
	c.clearActiveFormattingToLastMarker()
	return err
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-intd
func (c *HTMLTreeConstructor) inCellModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case startTagToken:
		switch t.TagName {
		case "caption", "col", "colgroup", "tbody", "td", "tfoot", "th", "thead", "tr":
			if !c.elementInScope(tableScope, "td", "th") {
				return false, c.mode, unexpectedStartTag
			}
			return true, inRow, c.closeCell()
		}
	case endTagToken:
		switch t.TagName {
		case "td", "th":
			if !c.elementInScope(tableScope, t.TagName) {
				return false, c.mode, unexpectedEndTag
			}
			err := noError
			c.generateImpliedEndTags("")
			if !c.currentIs(t.TagName) {
				err = unexpectedEndTag
			}
			c.popUntil(t.TagName)
			c.clearActiveFormattingToLastMarker()
			return false, inRow, err
		case "body", "caption", "col", "colgroup", "html":
			return false, c.mode, unexpectedEndTag
		case "table", "tbody", "tfoot", "thead", "tr":
			if !c.elementInScope(tableScope, t.TagName) {
				return false, c.mode, unexpectedEndTag
			}
			return true, inRow, c.closeCell()
		}
	}
	return c.useRulesFor(t, inBody)
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inselect
func (c *HTMLTreeConstructor) inSelectModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		if t.Data == "\u0000" {
			return false, c.mode, unexpectedNullCharacter
		}
		c.insertCharacters(t.Data)
		return false, c.mode, noError
	case commentToken:
		c.insertComment(t)
		return false, c.mode, noError
	case docTypeToken:
		return false, c.mode, unexpectedDoctype
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, inBody)
		case "option":
			if c.currentIs("option") {
				c.pop()
			}
			c.insertHTMLElementForToken(t)
			return false, c.mode, noError
		case "optgroup":
			if c.currentIs("option") {
				c.pop()
			}
			if c.currentIs("optgroup") {
				c.pop()
			}
			c.insertHTMLElementForToken(t)
			return false, c.mode, noError
		case "hr":
			if c.currentIs("option") {
				c.pop()
			}
			if c.currentIs("optgroup") {
				c.pop()
			}
			c.insertVoidElement(t)
			return false, c.mode, noError
		case "select":
			if !c.elementInScope(selectScope, "select") {
				return false, c.mode, unexpectedStartTag
			}
			c.popUntil("select")
			return false, c.resetInsertionMode(), unexpectedStartTag
		case "input", "keygen", "textarea":
			if !c.elementInScope(selectScope, "select") {
				return false, c.mode, unexpectedStartTag
			}
			c.popUntil("select")
			return true, c.resetInsertionMode(), unexpectedStartTag
		case "script", "template":
			return c.useRulesFor(t, inHead)
		}
	case endTagToken:
		switch t.TagName {
		case "optgroup":
			n := len(c.openElements)
			if c.currentIs("option") && n > 1 && c.doc.IsHTML(c.openElements[n-2], "optgroup") {
				c.pop()
			}
			if !c.currentIs("optgroup") {
				return false, c.mode, unexpectedEndTag
			}
			c.pop()
			return false, c.mode, noError
		case "option":
			if !c.currentIs("option") {
				return false, c.mode, unexpectedEndTag
			}
			c.pop()
			return false, c.mode, noError
		case "select":
			if !c.elementInScope(selectScope, "select") {
				return false, c.mode, unexpectedEndTag
			}
			c.popUntil("select")
			return false, c.resetInsertionMode(), noError
		case "template":
			return c.useRulesFor(t, inHead)
		}
	case endOfFileToken:
		return c.useRulesFor(t, inBody)
	}
	return false, c.mode, unexpectedCharacter
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inselectintable
func (c *HTMLTreeConstructor) inSelectInTableModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TagName {
	case "caption", "table", "tbody", "tfoot", "thead", "tr", "td", "th":
		switch t.TokenType {
		case startTagToken:
			c.popUntil("select")
			return true, c.resetInsertionMode(), unexpectedStartTag
		case endTagToken:
			if !c.elementInScope(tableScope, t.TagName) {
				return false, c.mode, unexpectedEndTag
			}
			c.popUntil("select")
			return true, c.resetInsertionMode(), unexpectedEndTag
		}
	}
	return c.useRulesFor(t, inSelect)
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-intemplate
func (c *HTMLTreeConstructor) inTemplateModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken, commentToken, docTypeToken:
		return c.useRulesFor(t, inBody)
	case startTagToken:
		var next insertionMode
		switch t.TagName {
		case "base", "basefont", "bgsound", "link", "meta", "noframes", "script", "style", "template", "title":
			return c.useRulesFor(t, inHead)
		case "caption", "colgroup", "tbody", "tfoot", "thead":
			next = inTable
		case "col":
			next = inColumnGroup
		case "tr":
			next = inTableBody
		case "td", "th":
			next = inRow
		default:
			next = inBody
		}
		c.popTemplateMode()
		c.pushTemplateMode(next)
		return true, next, noError
	case endTagToken:
		if t.TagName == "template" {
			return c.useRulesFor(t, inHead)
		}
		return false, c.mode, unexpectedEndTag
	case endOfFileToken:
		if !c.hasOpen("template") {
			return false, c.mode, noError
		}
		c.popUntil("template")
		c.clearActiveFormattingToLastMarker()
		c.popTemplateMode()
		return true, c.resetInsertionMode(), unexpectedEOF
	}
	return false, c.mode, noError
}
