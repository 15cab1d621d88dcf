package parser

import (
	"strings"

	"github.com/heathj/gosoup/parser/dom"
	"github.com/sirupsen/logrus"
)

type parseError string

const (
	noError                   parseError = ""
	generalParseError         parseError = "parse-error"
	unexpectedDoctype         parseError = "unexpected-doctype"
	unexpectedStartTag        parseError = "unexpected-start-tag"
	unexpectedEndTag          parseError = "unexpected-end-tag"
	unexpectedCharacter       parseError = "unexpected-character"
	unexpectedNullCharacter   parseError = "unexpected-null-character"
	unexpectedEOF             parseError = "unexpected-eof"
	misnestedTag              parseError = "misnested-tag"
	missingDoctype            parseError = "missing-doctype"
	nonConformingDoctype      parseError = "non-conforming-doctype"
	nonVoidSelfClosingElement parseError = "non-void-html-element-start-tag-with-trailing-solidus"
)

// activeFormattingMarker is the scope marker in the list of active formatting
// elements.
const activeFormattingMarker = dom.NoNode

// HTMLTreeConstructor holds the state for various state of the tree construction phase.
type HTMLTreeConstructor struct {
	doc                   *dom.Document
	log                   logrus.FieldLogger
	debug                 bool
	mode                  insertionMode
	originalInsertionMode insertionMode
	templateModes         []insertionMode
	openElements          []dom.NodeID
	activeFormatting      []dom.NodeID
	headElementPointer    dom.NodeID
	formElementPointer    dom.NodeID
	framesetOK            bool
	fosterParenting       bool
	scriptingEnabled      bool
	pendingTableText      strings.Builder
	pendingTableNonSpace  bool
	skipNextLF            bool
	selfClosingAcked      bool
	nextTokenizerState    *tokenizerState
	context               dom.NodeID
	stopped               bool
	mappings              map[insertionMode]treeConstructionModeHandler
}

type treeConstructionModeHandler func(t *Token) (bool, insertionMode, parseError)

// NewHTMLTreeConstructor creates an HTMLTreeConstructor building into a new
// document.
func NewHTMLTreeConstructor(logger logrus.FieldLogger, scripting bool) *HTMLTreeConstructor {
	if logger == nil {
		logger = discardLogger()
	}
	tr := HTMLTreeConstructor{
		doc:              dom.NewDocument(),
		log:              logger,
		debug:            levelEnabled(logger, logrus.DebugLevel),
		framesetOK:       true,
		scriptingEnabled: scripting,
	}

	tr.createMappings()
	return &tr
}

// Document returns the document being built.
func (c *HTMLTreeConstructor) Document() *dom.Document {
	return c.doc
}

func (c *HTMLTreeConstructor) createMappings() {
	c.mappings = map[insertionMode]treeConstructionModeHandler{
		initial:            c.initialModeHandler,
		beforeHTML:         c.beforeHTMLModeHandler,
		beforeHead:         c.beforeHeadModeHandler,
		inHead:             c.inHeadModeHandler,
		inHeadNoScript:     c.inHeadNoScriptModeHandler,
		afterHead:          c.afterHeadModeHandler,
		inBody:             c.inBodyModeHandler,
		text:               c.textModeHandler,
		inTable:            c.inTableModeHandler,
		inTableText:        c.inTableTextModeHandler,
		inCaption:          c.inCaptionModeHandler,
		inColumnGroup:      c.inColumnGroupModeHandler,
		inTableBody:        c.inTableBodyModeHandler,
		inRow:              c.inRowModeHandler,
		inCell:             c.inCellModeHandler,
		inSelect:           c.inSelectModeHandler,
		inSelectInTable:    c.inSelectInTableModeHandler,
		inTemplate:         c.inTemplateModeHandler,
		afterBody:          c.afterBodyModeHandler,
		inFrameset:         c.inFramesetModeHandler,
		afterFrameset:      c.afterFramesetModeHandler,
		afterAfterBody:     c.afterAfterBodyModeHandler,
		afterAfterFrameset: c.afterAfterFramesetModeHandler,
	}
}

// ProcessToken runs one token through tree construction and returns what the
// tokenizer needs to know before producing the next one.
func (c *HTMLTreeConstructor) ProcessToken(t *Token) *Progress {
	c.nextTokenizerState = nil
	if c.stopped {
		return c.progress()
	}
	if c.skipNextLF {
		c.skipNextLF = false
		if t.TokenType == characterToken && t.Data == "\n" {
			return c.progress()
		}
	}

	c.selfClosingAcked = false
	reprocess := true
	for reprocess {
		var err parseError
		if c.inForeignContent(t) {
			reprocess, c.mode, err = c.foreignContentHandler(t)
		} else {
			reprocess, c.mode, err = c.mappings[c.mode](t)
		}
		c.logError(err, t)
	}

	if t.TokenType == startTagToken && t.SelfClosing && !c.selfClosingAcked {
		c.logError(nonVoidSelfClosingElement, t)
	}
	if t.TokenType == endOfFileToken {
		c.stop()
	}
	return c.progress()
}

func (c *HTMLTreeConstructor) progress() *Progress {
	acn := c.adjustedCurrentNode()
	return &Progress{
		AllowCDATA:     acn != dom.NoNode && c.doc.Namespace(acn) != dom.Htmlns,
		TokenizerState: c.nextTokenizerState,
	}
}

func (c *HTMLTreeConstructor) stop() {
	c.stopped = true
	c.doc.Flush()
}

func (c *HTMLTreeConstructor) logError(err parseError, t *Token) {
	if err == noError || !c.debug {
		return
	}
	c.log.WithFields(logrus.Fields{
		"error": string(err),
		"mode":  c.mode,
		"token": t.String(),
	}).Debug("parse error")
}

func (c *HTMLTreeConstructor) switchTokenizer(state tokenizerState) {
	c.nextTokenizerState = &state
}

func (c *HTMLTreeConstructor) acknowledgeSelfClosing() {
	c.selfClosingAcked = true
}

// useRulesFor processes t with the rules of mode without switching to it.
// Handlers return c.mode when they leave the insertion mode alone.
func (c *HTMLTreeConstructor) useRulesFor(t *Token, mode insertionMode) (bool, insertionMode, parseError) {
	return c.mappings[mode](t)
}

func startTagNamed(name string) *Token {
	return &Token{TokenType: startTagToken, TagName: name}
}

func isWhitespaceToken(t *Token) bool {
	return t.TokenType == characterToken && len(t.Data) == 1 && isASCIIWhitespace(rune(t.Data[0]))
}

// stack of open elements

func (c *HTMLTreeConstructor) currentNode() dom.NodeID {
	if len(c.openElements) == 0 {
		return dom.NoNode
	}
	return c.openElements[len(c.openElements)-1]
}

func (c *HTMLTreeConstructor) adjustedCurrentNode() dom.NodeID {
	if c.context != dom.NoNode && len(c.openElements) == 1 {
		return c.context
	}
	return c.currentNode()
}

func (c *HTMLTreeConstructor) push(id dom.NodeID) {
	c.openElements = append(c.openElements, id)
}

func (c *HTMLTreeConstructor) pop() dom.NodeID {
	n := len(c.openElements)
	if n == 0 {
		return dom.NoNode
	}
	id := c.openElements[n-1]
	c.openElements = c.openElements[:n-1]
	return id
}

// popUntil pops elements until an HTML element with one of the names has
// been popped.
func (c *HTMLTreeConstructor) popUntil(names ...string) {
	for len(c.openElements) > 0 {
		if c.doc.IsHTML(c.pop(), names...) {
			return
		}
	}
}

func (c *HTMLTreeConstructor) popUntilNode(id dom.NodeID) {
	if i := c.indexOfOpen(id); i >= 0 {
		c.openElements = c.openElements[:i]
	}
}

func (c *HTMLTreeConstructor) indexOfOpen(id dom.NodeID) int {
	for i := len(c.openElements) - 1; i >= 0; i-- {
		if c.openElements[i] == id {
			return i
		}
	}
	return -1
}

func (c *HTMLTreeConstructor) removeOpen(id dom.NodeID) {
	if i := c.indexOfOpen(id); i >= 0 {
		c.openElements = append(c.openElements[:i], c.openElements[i+1:]...)
	}
}

func (c *HTMLTreeConstructor) insertOpenAt(i int, id dom.NodeID) {
	c.openElements = append(c.openElements, dom.NoNode)
	copy(c.openElements[i+1:], c.openElements[i:])
	c.openElements[i] = id
}

func (c *HTMLTreeConstructor) currentIs(names ...string) bool {
	return c.doc.IsHTML(c.currentNode(), names...)
}

func (c *HTMLTreeConstructor) hasOpen(name string) bool {
	for _, id := range c.openElements {
		if c.doc.IsHTML(id, name) {
			return true
		}
	}
	return false
}

// element scopes

type scope uint8

const (
	defaultScope scope = iota
	listItemScope
	buttonScope
	tableScope
	selectScope
)

func (c *HTMLTreeConstructor) isScopeBoundary(id dom.NodeID, s scope) bool {
	name := c.doc.Name(id)
	switch c.doc.Namespace(id) {
	case dom.Htmlns:
		switch s {
		case tableScope:
			return name == "html" || name == "table" || name == "template"
		case selectScope:
			return name != "optgroup" && name != "option"
		}
		switch name {
		case "applet", "caption", "html", "table", "td", "th", "marquee", "object", "template":
			return true
		case "ol", "ul":
			return s == listItemScope
		case "button":
			return s == buttonScope
		}
		return false
	case dom.Mathmlns:
		switch s {
		case tableScope:
			return false
		case selectScope:
			return true
		}
		switch name {
		case "mi", "mo", "mn", "ms", "mtext", "annotation-xml":
			return true
		}
	case dom.Svgns:
		switch s {
		case tableScope:
			return false
		case selectScope:
			return true
		}
		switch name {
		case "foreignObject", "desc", "title":
			return true
		}
	}
	return s == selectScope
}

// elementInScope reports whether an HTML element with one of the names is in
// the given scope.
func (c *HTMLTreeConstructor) elementInScope(s scope, names ...string) bool {
	for i := len(c.openElements) - 1; i >= 0; i-- {
		id := c.openElements[i]
		if c.doc.IsHTML(id, names...) {
			return true
		}
		if c.isScopeBoundary(id, s) {
			return false
		}
	}
	return false
}

func (c *HTMLTreeConstructor) nodeInScope(s scope, target dom.NodeID) bool {
	for i := len(c.openElements) - 1; i >= 0; i-- {
		id := c.openElements[i]
		if id == target {
			return true
		}
		if c.isScopeBoundary(id, s) {
			return false
		}
	}
	return false
}

var impliedEndTags = []string{"dd", "dt", "li", "optgroup", "option", "p", "rb", "rp", "rt", "rtc"}

var thoroughImpliedEndTags = append([]string{
	"caption", "colgroup", "tbody", "td", "tfoot", "th", "thead", "tr",
}, impliedEndTags...)

func (c *HTMLTreeConstructor) generateImpliedEndTags(except string) {
	for c.currentIs(impliedEndTags...) && !c.currentIs(except) {
		c.pop()
	}
}

func (c *HTMLTreeConstructor) generateAllImpliedEndTagsThoroughly() {
	for c.currentIs(thoroughImpliedEndTags...) {
		c.pop()
	}
}

func (c *HTMLTreeConstructor) closePElement() parseError {
	err := noError
	c.generateImpliedEndTags("p")
	if !c.currentIs("p") {
		err = unexpectedEndTag
	}
	c.popUntil("p")
	return err
}

func (c *HTMLTreeConstructor) closePIfInButtonScope() {
	if c.elementInScope(buttonScope, "p") {
		c.closePElement()
	}
}

func (c *HTMLTreeConstructor) clearStackBackTo(names ...string) {
	for !c.currentIs(names...) && len(c.openElements) > 1 {
		c.pop()
	}
}

func (c *HTMLTreeConstructor) clearStackBackToTable() {
	c.clearStackBackTo("table", "template", "html")
}

func (c *HTMLTreeConstructor) clearStackBackToTableBody() {
	c.clearStackBackTo("tbody", "tfoot", "thead", "template", "html")
}

func (c *HTMLTreeConstructor) clearStackBackToTableRow() {
	c.clearStackBackTo("tr", "template", "html")
}

func isSpecialName(ns dom.Namespace, name string) bool {
	switch ns {
	case dom.Htmlns:
		switch name {
		case "address", "applet", "area", "article", "aside", "base", "basefont", "bgsound", "blockquote", "body", "br", "button", "caption", "center", "col", "colgroup", "dd", "details", "dir", "div", "dl", "dt", "embed", "fieldset", "figcaption", "figure", "footer", "form", "frame", "frameset", "h1", "h2", "h3", "h4", "h5", "h6", "head", "header", "hgroup", "hr", "html", "iframe", "img", "input", "keygen", "li", "link", "listing", "main", "marquee", "menu", "meta", "nav", "noembed", "noframes", "noscript", "object", "ol", "p", "param", "plaintext", "pre", "script", "search", "section", "select", "source", "style", "summary", "table", "tbody", "td", "template", "textarea", "tfoot", "th", "thead", "title", "tr", "track", "ul", "wbr", "xmp":
			return true
		}
	case dom.Mathmlns:
		switch name {
		case "mi", "mo", "mn", "ms", "mtext", "annotation-xml":
			return true
		}
	case dom.Svgns:
		switch name {
		case "foreignObject", "desc", "title":
			return true
		}
	}
	return false
}

func (c *HTMLTreeConstructor) isSpecial(id dom.NodeID) bool {
	return isSpecialName(c.doc.Namespace(id), c.doc.Name(id))
}

// node insertion

// appropriatePlace returns where a new node goes: a parent and the child to
// insert before, NoNode meaning at the end. override replaces the current node
// as the target.
func (c *HTMLTreeConstructor) appropriatePlace(override dom.NodeID) (dom.NodeID, dom.NodeID) {
	target := override
	if target == dom.NoNode {
		target = c.currentNode()
	}
	if !c.fosterParenting || !c.doc.IsHTML(target, "table", "tbody", "tfoot", "thead", "tr") {
		return target, dom.NoNode
	}

	lastTemplate, lastTable := -1, -1
	for i := len(c.openElements) - 1; i >= 0; i-- {
		id := c.openElements[i]
		if lastTemplate < 0 && c.doc.IsHTML(id, "template") {
			lastTemplate = i
		}
		if lastTable < 0 && c.doc.IsHTML(id, "table") {
			lastTable = i
		}
	}
	if lastTemplate >= 0 && (lastTable < 0 || lastTemplate > lastTable) {
		return c.openElements[lastTemplate], dom.NoNode
	}
	if lastTable < 0 {
		return c.openElements[0], dom.NoNode
	}
	table := c.openElements[lastTable]
	if parent := c.doc.Parent(table); parent != dom.NoNode {
		return parent, table
	}
	return c.openElements[lastTable-1], dom.NoNode
}

// place moves id to the given location, detaching it first.
func (c *HTMLTreeConstructor) place(parent, id, before dom.NodeID) {
	c.doc.Detach(id)
	if err := c.doc.InsertBefore(parent, id, before); err != nil {
		c.log.WithError(err).Warn("tree construction produced an invalid insertion")
	}
}

func (c *HTMLTreeConstructor) insertCharacters(s string) {
	parent, before := c.appropriatePlace(dom.NoNode)
	if parent == dom.DocumentID {
		return
	}
	prev := c.doc.LastChild(parent)
	if before != dom.NoNode {
		prev = c.doc.PrevSibling(before)
	}
	if c.doc.Type(prev) == dom.TextNode {
		c.doc.AppendData(prev, s)
		return
	}
	c.place(parent, c.doc.CreateText(s), before)
}

func (c *HTMLTreeConstructor) insertComment(t *Token) {
	parent, before := c.appropriatePlace(dom.NoNode)
	c.place(parent, c.doc.CreateComment(t.Data), before)
}

func (c *HTMLTreeConstructor) insertCommentIn(parent dom.NodeID, t *Token) {
	c.place(parent, c.doc.CreateComment(t.Data), dom.NoNode)
}

func (c *HTMLTreeConstructor) createElementForToken(t *Token, ns dom.Namespace) dom.NodeID {
	return c.doc.CreateElement(t.TagName, ns, t.Attributes...)
}

func (c *HTMLTreeConstructor) insertForeignElementForToken(t *Token, ns dom.Namespace) dom.NodeID {
	parent, before := c.appropriatePlace(dom.NoNode)
	elem := c.createElementForToken(t, ns)
	c.place(parent, elem, before)
	c.push(elem)
	return elem
}

func (c *HTMLTreeConstructor) insertHTMLElementForToken(t *Token) dom.NodeID {
	return c.insertForeignElementForToken(t, dom.Htmlns)
}

// insertVoidElement inserts an element that is popped right away.
func (c *HTMLTreeConstructor) insertVoidElement(t *Token) {
	c.insertHTMLElementForToken(t)
	c.pop()
	c.acknowledgeSelfClosing()
}

// genericTextElement implements the generic raw text and RCDATA element
// parsing algorithms.
func (c *HTMLTreeConstructor) genericTextElement(t *Token, state tokenizerState) (bool, insertionMode, parseError) {
	c.insertHTMLElementForToken(t)
	c.switchTokenizer(state)
	c.originalInsertionMode = c.mode
	return false, text, noError
}

// list of active formatting elements

func (c *HTMLTreeConstructor) indexOfActiveFormatting(id dom.NodeID) int {
	for i := len(c.activeFormatting) - 1; i >= 0; i-- {
		if c.activeFormatting[i] == id {
			return i
		}
	}
	return -1
}

func (c *HTMLTreeConstructor) removeActiveFormattingAt(i int) {
	c.activeFormatting = append(c.activeFormatting[:i], c.activeFormatting[i+1:]...)
}

func (c *HTMLTreeConstructor) pushActiveFormattingMarker() {
	c.activeFormatting = append(c.activeFormatting, activeFormattingMarker)
}

// sameElement compares tag, namespace and attributes, ignoring attribute
// order.
func (c *HTMLTreeConstructor) sameElement(a, b dom.NodeID) bool {
	if c.doc.Name(a) != c.doc.Name(b) || c.doc.Namespace(a) != c.doc.Namespace(b) {
		return false
	}
	aa, ba := c.doc.Attrs(a), c.doc.Attrs(b)
	if len(aa) != len(ba) {
		return false
	}
	for _, x := range aa {
		found := false
		for _, y := range ba {
			if x == y {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// pushActiveFormattingElements appends elem, first dropping the earliest of
// three identical elements after the last marker.
func (c *HTMLTreeConstructor) pushActiveFormattingElements(elem dom.NodeID) {
	count, earliest := 0, -1
	for i := len(c.activeFormatting) - 1; i >= 0; i-- {
		e := c.activeFormatting[i]
		if e == activeFormattingMarker {
			break
		}
		if c.sameElement(e, elem) {
			count++
			earliest = i
		}
	}
	if count >= 3 {
		c.removeActiveFormattingAt(earliest)
	}
	c.activeFormatting = append(c.activeFormatting, elem)
}

func (c *HTMLTreeConstructor) reconstructActiveFormattingElements() {
	n := len(c.activeFormatting)
	if n == 0 {
		return
	}
	last := c.activeFormatting[n-1]
	if last == activeFormattingMarker || c.indexOfOpen(last) >= 0 {
		return
	}

	// rewind to the first entry after a marker or an open element
	i := n - 1
	for i > 0 {
		prev := c.activeFormatting[i-1]
		if prev == activeFormattingMarker || c.indexOfOpen(prev) >= 0 {
			break
		}
		i--
	}

	for ; i < n; i++ {
		clone := c.doc.Clone(c.activeFormatting[i], false)
		parent, before := c.appropriatePlace(dom.NoNode)
		c.place(parent, clone, before)
		c.push(clone)
		c.activeFormatting[i] = clone
	}
}

func (c *HTMLTreeConstructor) clearActiveFormattingToLastMarker() {
	for len(c.activeFormatting) > 0 {
		n := len(c.activeFormatting) - 1
		e := c.activeFormatting[n]
		c.activeFormatting = c.activeFormatting[:n]
		if e == activeFormattingMarker {
			return
		}
	}
}

// activeFormattingElementNamed finds the last element with the tag name
// after the last marker.
func (c *HTMLTreeConstructor) activeFormattingElementNamed(name string) int {
	for i := len(c.activeFormatting) - 1; i >= 0; i-- {
		e := c.activeFormatting[i]
		if e == activeFormattingMarker {
			return -1
		}
		if c.doc.IsHTML(e, name) {
			return i
		}
	}
	return -1
}

// adoptionAgencyAlgorithm handles end tags of formatting elements, fixing up
// misnested markup such as <b><p></b></p>. It returns false when the end tag
// has to be handled like any other end tag.
func (c *HTMLTreeConstructor) adoptionAgencyAlgorithm(subject string) (bool, parseError) {
	err := noError
	cur := c.currentNode()
	if c.doc.IsHTML(cur, subject) && c.indexOfActiveFormatting(cur) < 0 {
		c.pop()
		return true, noError
	}

	for outer := 0; outer < 8; outer++ {
		fi := c.activeFormattingElementNamed(subject)
		if fi < 0 {
			return false, err
		}
		formattingElement := c.activeFormatting[fi]

		si := c.indexOfOpen(formattingElement)
		if si < 0 {
			c.removeActiveFormattingAt(fi)
			return true, misnestedTag
		}
		if !c.nodeInScope(defaultScope, formattingElement) {
			return true, misnestedTag
		}
		if formattingElement != c.currentNode() {
			err = misnestedTag
		}

		fbi := -1
		for i := si + 1; i < len(c.openElements); i++ {
			if c.isSpecial(c.openElements[i]) {
				fbi = i
				break
			}
		}
		if fbi < 0 {
			c.openElements = c.openElements[:si]
			c.removeActiveFormattingAt(fi)
			return true, err
		}
		furthestBlock := c.openElements[fbi]
		commonAncestor := c.openElements[si-1]
		bookmark := fi

		node, lastNode := furthestBlock, furthestBlock
		ni := fbi
		for inner := 1; ; inner++ {
			ni--
			node = c.openElements[ni]
			if node == formattingElement {
				break
			}
			nafe := c.indexOfActiveFormatting(node)
			if inner > 3 && nafe >= 0 {
				c.removeActiveFormattingAt(nafe)
				if nafe < bookmark {
					bookmark--
				}
				nafe = -1
			}
			if nafe < 0 {
				c.openElements = append(c.openElements[:ni], c.openElements[ni+1:]...)
				continue
			}

			clone := c.doc.Clone(node, false)
			c.activeFormatting[nafe] = clone
			c.openElements[ni] = clone
			node = clone
			if lastNode == furthestBlock {
				bookmark = nafe + 1
			}
			c.place(node, lastNode, dom.NoNode)
			lastNode = node
		}

		parent, before := c.appropriatePlace(commonAncestor)
		c.place(parent, lastNode, before)

		clone := c.doc.Clone(formattingElement, false)
		if moveErr := c.doc.MoveChildren(furthestBlock, clone); moveErr != nil {
			c.log.WithError(moveErr).Warn("adoption agency could not move children")
		}
		c.place(furthestBlock, clone, dom.NoNode)

		if i := c.indexOfActiveFormatting(formattingElement); i >= 0 {
			c.removeActiveFormattingAt(i)
			if i < bookmark {
				bookmark--
			}
		}
		if bookmark > len(c.activeFormatting) {
			bookmark = len(c.activeFormatting)
		}
		c.activeFormatting = append(c.activeFormatting, dom.NoNode)
		copy(c.activeFormatting[bookmark+1:], c.activeFormatting[bookmark:])
		c.activeFormatting[bookmark] = clone

		c.removeOpen(formattingElement)
		c.insertOpenAt(c.indexOfOpen(furthestBlock)+1, clone)
	}
	return true, err
}

// resetInsertionMode picks the insertion mode from the stack of open
// elements, using the fragment context for the bottom entry.
func (c *HTMLTreeConstructor) resetInsertionMode() insertionMode {
	for i := len(c.openElements) - 1; i >= 0; i-- {
		node := c.openElements[i]
		last := i == 0
		if last && c.context != dom.NoNode {
			node = c.context
		}
		name := ""
		if c.doc.Namespace(node) == dom.Htmlns {
			name = c.doc.Name(node)
		}
		switch name {
		case "select":
			if !last {
				for j := i - 1; j >= 0; j-- {
					ancestor := c.openElements[j]
					if c.doc.IsHTML(ancestor, "template") {
						break
					}
					if c.doc.IsHTML(ancestor, "table") {
						return inSelectInTable
					}
				}
			}
			return inSelect
		case "td", "th":
			if !last {
				return inCell
			}
		case "tr":
			return inRow
		case "tbody", "thead", "tfoot":
			return inTableBody
		case "caption":
			return inCaption
		case "colgroup":
			return inColumnGroup
		case "table":
			return inTable
		case "template":
			if n := len(c.templateModes); n > 0 {
				return c.templateModes[n-1]
			}
		case "head":
			if !last {
				return inHead
			}
		case "body":
			return inBody
		case "frameset":
			return inFrameset
		case "html":
			if c.headElementPointer == dom.NoNode {
				return beforeHead
			}
			return afterHead
		}
		if last {
			return inBody
		}
	}
	return inBody
}

func (c *HTMLTreeConstructor) pushTemplateMode(m insertionMode) {
	c.templateModes = append(c.templateModes, m)
}

func (c *HTMLTreeConstructor) popTemplateMode() {
	if n := len(c.templateModes); n > 0 {
		c.templateModes = c.templateModes[:n-1]
	}
}

type insertionMode uint

const (
	initial insertionMode = iota
	beforeHTML
	beforeHead
	inHead
	inHeadNoScript
	afterHead
	inBody
	text
	inTable
	inTableText
	inCaption
	inColumnGroup
	inTableBody
	inRow
	inCell
	inSelect
	inSelectInTable
	inTemplate
	afterBody
	inFrameset
	afterFrameset
	afterAfterBody
	afterAfterFrameset
)

var insertionModeNames = [...]string{
	initial:            "initial",
	beforeHTML:         "before html",
	beforeHead:         "before head",
	inHead:             "in head",
	inHeadNoScript:     "in head noscript",
	afterHead:          "after head",
	inBody:             "in body",
	text:               "text",
	inTable:            "in table",
	inTableText:        "in table text",
	inCaption:          "in caption",
	inColumnGroup:      "in column group",
	inTableBody:        "in table body",
	inRow:              "in row",
	inCell:             "in cell",
	inSelect:           "in select",
	inSelectInTable:    "in select in table",
	inTemplate:         "in template",
	afterBody:          "after body",
	inFrameset:         "in frameset",
	afterFrameset:      "after frameset",
	afterAfterBody:     "after after body",
	afterAfterFrameset: "after after frameset",
}

func (m insertionMode) String() string {
	if int(m) < len(insertionModeNames) {
		return insertionModeNames[m]
	}
	return "unknown"
}
