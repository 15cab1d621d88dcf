package parser

import (
	"bufio"
	"bytes"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Progress is what the tree constructor tells the tokenizer before every
// token it asks for.
type Progress struct {
	// AllowCDATA is set when the adjusted current node is not an HTML element,
	// which makes <![CDATA[ open a CDATA section instead of a bogus comment.
	AllowCDATA bool
	// TokenizerState, when non-nil, switches the tokenizer state.
	TokenizerState *tokenizerState
}

// HTMLTokenizer holds state for the various state of the tokenizer.
type HTMLTokenizer struct {
	done                      bool
	returnState, currentState tokenizerState
	inputStream               *bufio.Reader
	allowCDATA                bool
	emittedTokens             []Token
	tokenBuilder              *TokenBuilder
	lastEmittedStartTagName   string
	log                       logrus.FieldLogger
	trace                     bool
}

// NewHTMLTokenizer creates a tokenizer reading HTML from r. Tokens are produced
// lazily as Token is called. A nil logger discards all output.
func NewHTMLTokenizer(r io.Reader, logger logrus.FieldLogger) *HTMLTokenizer {
	if logger == nil {
		logger = discardLogger()
	}
	return &HTMLTokenizer{
		inputStream:  bufio.NewReader(r),
		tokenBuilder: newTokenBuilder(),
		log:          logger,
		trace:        levelEnabled(logger, logrus.TraceLevel),
	}
}

// Tokenize runs the tokenizer over r to the end and returns every token, the
// final end-of-file token included. Without a tree constructor steering it,
// the tokenizer stays in the content states that start tags never change.
func Tokenize(r io.Reader) ([]Token, error) {
	t := NewHTMLTokenizer(r, nil)
	var out []Token
	for t.Next() {
		tok, err := t.Token(nil)
		if err != nil {
			return out, err
		}
		out = append(out, *tok)
	}
	return out, nil
}

// setLastStartTag pretends a start tag with the given name was emitted, so the
// matching end tag is appropriate. Fragment parsing uses it for the context
// element.
func (p *HTMLTokenizer) setLastStartTag(name string) {
	p.lastEmittedStartTagName = name
}

func (p *HTMLTokenizer) stateToParser(state tokenizerState) parserStateHandler {
	switch state {
	case dataState:
		return p.dataStateParser
	case rcDataState:
		return p.rcDataStateParser
	case rawTextState:
		return p.rawTextStateParser
	case scriptDataState:
		return p.scriptDataStateParser
	case plaintextState:
		return p.plaintextStateParser
	case tagOpenState:
		return p.tagOpenStateParser
	case endTagOpenState:
		return p.endTagOpenStateParser
	case tagNameState:
		return p.tagNameStateParser
	case rcDataLessThanSignState:
		return p.rcDataLessThanSignStateParser
	case rcDataEndTagOpenState:
		return p.rcDataEndTagOpenStateParser
	case rcDataEndTagNameState:
		return p.rcDataEndTagNameStateParser
	case rawTextLessThanSignState:
		return p.rawTextLessThanSignStateParser
	case rawTextEndTagOpenState:
		return p.rawTextEndTagOpenStateParser
	case rawTextEndTagNameState:
		return p.rawTextEndTagNameStateParser
	case scriptDataLessThanSignState:
		return p.scriptDataLessThanSignStateParser
	case scriptDataEndTagOpenState:
		return p.scriptDataEndTagOpenStateParser
	case scriptDataEndTagNameState:
		return p.scriptDataEndTagNameStateParser
	case scriptDataEscapeStartState:
		return p.scriptDataEscapeStartStateParser
	case scriptDataEscapeStartDashState:
		return p.scriptDataEscapeStartDashStateParser
	case scriptDataEscapedState:
		return p.scriptDataEscapedStateParser
	case scriptDataEscapedDashState:
		return p.scriptDataEscapedDashStateParser
	case scriptDataEscapedDashDashState:
		return p.scriptDataEscapedDashDashStateParser
	case scriptDataEscapedLessThanSignState:
		return p.scriptDataEscapedLessThanSignStateParser
	case scriptDataEscapedEndTagOpenState:
		return p.scriptDataEscapedEndTagOpenStateParser
	case scriptDataEscapedEndTagNameState:
		return p.scriptDataEscapedEndTagNameStateParser
	case scriptDataDoubleEscapeStartState:
		return p.scriptDataDoubleEscapeStartStateParser
	case scriptDataDoubleEscapedState:
		return p.scriptDataDoubleEscapedStateParser
	case scriptDataDoubleEscapedDashState:
		return p.scriptDataDoubleEscapedDashStateParser
	case scriptDataDoubleEscapedDashDashState:
		return p.scriptDataDoubleEscapedDashDashStateParser
	case scriptDataDoubleEscapedLessThanSignState:
		return p.scriptDataDoubleEscapedLessThanSignStateParser
	case scriptDataDoubleEscapeEndState:
		return p.scriptDataDoubleEscapeEndStateParser
	case beforeAttributeNameState:
		return p.beforeAttributeNameStateParser
	case attributeNameState:
		return p.attributeNameStateParser
	case afterAttributeNameState:
		return p.afterAttributeNameStateParser
	case beforeAttributeValueState:
		return p.beforeAttributeValueStateParser
	case attributeValueDoubleQuotedState:
		return p.attributeValueDoubleQuotedStateParser
	case attributeValueSingleQuotedState:
		return p.attributeValueSingleQuotedStateParser
	case attributeValueUnquotedState:
		return p.attributeValueUnquotedStateParser
	case afterAttributeValueQuotedState:
		return p.afterAttributeValueQuotedStateParser
	case selfClosingStartTagState:
		return p.selfClosingStartTagStateParser
	case bogusCommentState:
		return p.bogusCommentStateParser
	case markupDeclarationOpenState:
		return p.markupDeclarationOpenStateParser
	case commentStartState:
		return p.commentStartStateParser
	case commentStartDashState:
		return p.commentStartDashStateParser
	case commentState:
		return p.commentStateParser
	case commentLessThanSignState:
		return p.commentLessThanSignStateParser
	case commentLessThanSignBangState:
		return p.commentLessThanSignBangStateParser
	case commentLessThanSignBangDashState:
		return p.commentLessThanSignBangDashStateParser
	case commentLessThanSignBangDashDashState:
		return p.commentLessThanSignBangDashDashStateParser
	case commentEndDashState:
		return p.commentEndDashStateParser
	case commentEndState:
		return p.commentEndStateParser
	case commentEndBangState:
		return p.commentEndBangStateParser
	case doctypeState:
		return p.doctypeStateParser
	case beforeDoctypeNameState:
		return p.beforeDoctypeNameStateParser
	case doctypeNameState:
		return p.doctypeNameStateParser
	case afterDoctypeNameState:
		return p.afterDoctypeNameStateParser
	case afterDoctypePublicKeywordState:
		return p.afterDoctypePublicKeywordStateParser
	case beforeDoctypePublicIdentifierState:
		return p.beforeDoctypePublicIdentifierStateParser
	case doctypePublicIdentifierDoubleQuotedState:
		return p.doctypePublicIdentifierDoubleQuotedStateParser
	case doctypePublicIdentifierSingleQuotedState:
		return p.doctypePublicIdentifierSingleQuotedStateParser
	case afterDoctypePublicIdentifierState:
		return p.afterDoctypePublicIdentifierStateParser
	case betweenDoctypePublicAndSystemIdentifiersState:
		return p.betweenDoctypePublicAndSystemIdentifiersStateParser
	case afterDoctypeSystemKeywordState:
		return p.afterDoctypeSystemKeywordStateParser
	case beforeDoctypeSystemIdentifierState:
		return p.beforeDoctypeSystemIdentifierStateParser
	case doctypeSystemIdentifierDoubleQuotedState:
		return p.doctypeSystemIdentifierDoubleQuotedStateParser
	case doctypeSystemIdentifierSingleQuotedState:
		return p.doctypeSystemIdentifierSingleQuotedStateParser
	case afterDoctypeSystemIdentifierState:
		return p.afterDoctypeSystemIdentifierStateParser
	case bogusDoctypeState:
		return p.bogusDoctypeStateParser
	case cdataSectionState:
		return p.cdataSectionStateParser
	case cdataSectionBracketState:
		return p.cdataSectionBracketStateParser
	case cdataSectionEndState:
		return p.cdataSectionEndStateParser
	case characterReferenceState:
		return p.characterReferenceStateParser
	case namedCharacterReferenceState:
		return p.namedCharacterReferenceStateParser
	case ambiguousAmpersandState:
		return p.ambiguousAmpersandStateParser
	case numericCharacterReferenceState:
		return p.numericCharacterReferenceStateParser
	case hexadecimalCharacterReferenceStartState:
		return p.hexadecimalCharacterReferenceStartStateParser
	case decimalCharacterReferenceStartState:
		return p.decimalCharacterReferenceStartStateParser
	case hexadecimalCharacterReferenceState:
		return p.hexadecimalCharacterReferenceStateParser
	case decimalCharacterReferenceState:
		return p.decimalCharacterReferenceStateParser
	}

	return p.dataStateParser
}

func isNonCharacter(code int) bool {
	if code >= 0xFDD0 && code <= 0xFDEF {
		return true
	}
	return code <= 0x10FFFF && code&0xFFFE == 0xFFFE
}

func isC0Control(code int) bool {
	return code >= 0x00 && code <= 0x1F
}

func isControl(code int) bool {
	return isC0Control(code) || (code >= 0x7F && code <= 0x9F)
}

func isSurrogate(code int) bool {
	return code >= 0xD800 && code <= 0xDFFF
}

func isASCIIWhitespace(r rune) bool {
	switch r {
	case '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func isASCIIUpper(r rune) bool { return 'A' <= r && r <= 'Z' }
func isASCIILower(r rune) bool { return 'a' <= r && r <= 'z' }
func isASCIIAlpha(r rune) bool { return isASCIIUpper(r) || isASCIILower(r) }
func isASCIIDigit(r rune) bool { return '0' <= r && r <= '9' }

func toASCIILower(r rune) rune {
	if isASCIIUpper(r) {
		return r + 0x20
	}
	return r
}

func wasConsumedByAttribute(returnState tokenizerState) bool {
	switch returnState {
	case attributeValueDoubleQuotedState, attributeValueSingleQuotedState, attributeValueUnquotedState:
		return true
	}
	return false
}

func (p *HTMLTokenizer) flushCodePointsAsCharacterReference() {
	if wasConsumedByAttribute(p.returnState) {
		for _, v := range p.tokenBuilder.TempBuffer() {
			p.tokenBuilder.WriteAttributeValue(v)
		}
	} else {
		p.emit(p.tokenBuilder.TempBufferCharTokens()...)
	}
}

func (p *HTMLTokenizer) isApprEndTagToken() bool {
	return p.tokenBuilder.curTagType == endTag && p.lastEmittedStartTagName == p.tokenBuilder.name.String()
}

func (p *HTMLTokenizer) emit(tokens ...Token) {
	for _, token := range tokens {
		if token.TokenType == startTagToken {
			p.lastEmittedStartTagName = token.TagName
		}
		p.emittedTokens = append(p.emittedTokens, token)
	}
}

func (p *HTMLTokenizer) emitEOF() (bool, tokenizerState) {
	p.emit(p.tokenBuilder.EndOfFileToken())
	return false, dataState
}

func (p *HTMLTokenizer) emitChar(r rune) {
	p.emit(p.tokenBuilder.CharacterToken(r))
}

func (p *HTMLTokenizer) emitString(s string) {
	for _, r := range s {
		p.emitChar(r)
	}
}

func (p *HTMLTokenizer) dataStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.emitEOF()
	}
	switch r {
	case '&':
		p.returnState = dataState
		return false, characterReferenceState
	case '<':
		return false, tagOpenState
	default:
		// U+0000 is passed through; the tree constructor drops it.
		p.emitChar(r)
		return false, dataState
	}
}

// textStateParser covers RCDATA, RAWTEXT, script data and PLAINTEXT, which
// only differ in what '&' and '<' do.
func (p *HTMLTokenizer) textStateParser(r rune, eof bool, self, lessThan tokenizerState, refs bool) (bool, tokenizerState) {
	if eof {
		return p.emitEOF()
	}
	switch {
	case r == '&' && refs:
		p.returnState = self
		return false, characterReferenceState
	case r == '<' && lessThan != self:
		return false, lessThan
	case r == '\u0000':
		p.emitChar('\uFFFD')
		return false, self
	default:
		p.emitChar(r)
		return false, self
	}
}

func (p *HTMLTokenizer) rcDataStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.textStateParser(r, eof, rcDataState, rcDataLessThanSignState, true)
}

func (p *HTMLTokenizer) rawTextStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.textStateParser(r, eof, rawTextState, rawTextLessThanSignState, false)
}

func (p *HTMLTokenizer) scriptDataStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.textStateParser(r, eof, scriptDataState, scriptDataLessThanSignState, false)
}

func (p *HTMLTokenizer) plaintextStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.textStateParser(r, eof, plaintextState, plaintextState, false)
}

func (p *HTMLTokenizer) tagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.emitChar('<')
		return p.emitEOF()
	}
	switch {
	case r == '!':
		return false, markupDeclarationOpenState
	case r == '/':
		return false, endTagOpenState
	case isASCIIAlpha(r):
		p.tokenBuilder.Reset()
		p.tokenBuilder.curTagType = startTag
		return true, tagNameState
	case r == '?':
		p.tokenBuilder.Reset()
		return true, bogusCommentState
	default:
		p.emitChar('<')
		return true, dataState
	}
}

func (p *HTMLTokenizer) endTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.emitString("</")
		return p.emitEOF()
	}
	switch {
	case isASCIIAlpha(r):
		p.tokenBuilder.Reset()
		p.tokenBuilder.curTagType = endTag
		return true, tagNameState
	case r == '>':
		return false, dataState
	default:
		p.tokenBuilder.Reset()
		return true, bogusCommentState
	}
}

func (p *HTMLTokenizer) tagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.emitEOF()
	}
	switch {
	case isASCIIWhitespace(r):
		return false, beforeAttributeNameState
	case r == '/':
		return false, selfClosingStartTagState
	case r == '>':
		return false, p.emitCurrentTag()
	case r == '\u0000':
		p.tokenBuilder.WriteName('\uFFFD')
		return false, tagNameState
	default:
		p.tokenBuilder.WriteName(toASCIILower(r))
		return false, tagNameState
	}
}

// lessThanSignStateParser handles '<' inside RCDATA and RAWTEXT.
func (p *HTMLTokenizer) lessThanSignStateParser(r rune, eof bool, endTagOpen, text tokenizerState) (bool, tokenizerState) {
	if !eof && r == '/' {
		p.tokenBuilder.ResetTempBuffer()
		return false, endTagOpen
	}
	p.emitChar('<')
	return true, text
}

// endTagOpenStateParser handles "</" inside RCDATA, RAWTEXT and script data.
func (p *HTMLTokenizer) textEndTagOpenStateParser(r rune, eof bool, endTagName, text tokenizerState) (bool, tokenizerState) {
	if !eof && isASCIIAlpha(r) {
		p.tokenBuilder.Reset()
		p.tokenBuilder.curTagType = endTag
		return true, endTagName
	}
	p.emitString("</")
	return true, text
}

// textEndTagNameStateParser only accepts the end tag matching the last start
// tag; anything else is flushed back out as text.
func (p *HTMLTokenizer) textEndTagNameStateParser(r rune, eof bool, self, text tokenizerState) (bool, tokenizerState) {
	if !eof {
		switch {
		case isASCIIWhitespace(r) && r != '\r':
			if p.isApprEndTagToken() {
				return false, beforeAttributeNameState
			}
		case r == '/':
			if p.isApprEndTagToken() {
				return false, selfClosingStartTagState
			}
		case r == '>':
			if p.isApprEndTagToken() {
				return false, p.emitCurrentTag()
			}
		case isASCIIAlpha(r):
			p.tokenBuilder.WriteTempBuffer(r)
			p.tokenBuilder.WriteName(toASCIILower(r))
			return false, self
		}
	}
	p.emitString("</")
	p.emit(p.tokenBuilder.TempBufferCharTokens()...)
	return true, text
}

func (p *HTMLTokenizer) rcDataLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.lessThanSignStateParser(r, eof, rcDataEndTagOpenState, rcDataState)
}

func (p *HTMLTokenizer) rcDataEndTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.textEndTagOpenStateParser(r, eof, rcDataEndTagNameState, rcDataState)
}

func (p *HTMLTokenizer) rcDataEndTagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.textEndTagNameStateParser(r, eof, rcDataEndTagNameState, rcDataState)
}

func (p *HTMLTokenizer) rawTextLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.lessThanSignStateParser(r, eof, rawTextEndTagOpenState, rawTextState)
}

func (p *HTMLTokenizer) rawTextEndTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.textEndTagOpenStateParser(r, eof, rawTextEndTagNameState, rawTextState)
}

func (p *HTMLTokenizer) rawTextEndTagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.textEndTagNameStateParser(r, eof, rawTextEndTagNameState, rawTextState)
}

func (p *HTMLTokenizer) scriptDataLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.emitChar('<')
		return true, scriptDataState
	}
	switch r {
	case '/':
		p.tokenBuilder.ResetTempBuffer()
		return false, scriptDataEndTagOpenState
	case '!':
		p.emitString("<!")
		return false, scriptDataEscapeStartState
	default:
		p.emitChar('<')
		return true, scriptDataState
	}
}

func (p *HTMLTokenizer) scriptDataEndTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.textEndTagOpenStateParser(r, eof, scriptDataEndTagNameState, scriptDataState)
}

func (p *HTMLTokenizer) scriptDataEndTagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.textEndTagNameStateParser(r, eof, scriptDataEndTagNameState, scriptDataState)
}

func (p *HTMLTokenizer) scriptDataEscapeStartStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '-' {
		p.emitChar('-')
		return false, scriptDataEscapeStartDashState
	}
	return true, scriptDataState
}

func (p *HTMLTokenizer) scriptDataEscapeStartDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '-' {
		p.emitChar('-')
		return false, scriptDataEscapedDashDashState
	}
	return true, scriptDataState
}

func (p *HTMLTokenizer) scriptDataEscapedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.emitEOF()
	}
	switch r {
	case '-':
		p.emitChar('-')
		return false, scriptDataEscapedDashState
	case '<':
		return false, scriptDataEscapedLessThanSignState
	case '\u0000':
		p.emitChar('\uFFFD')
		return false, scriptDataEscapedState
	default:
		p.emitChar(r)
		return false, scriptDataEscapedState
	}
}

func (p *HTMLTokenizer) scriptDataEscapedDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.emitEOF()
	}
	switch r {
	case '-':
		p.emitChar('-')
		return false, scriptDataEscapedDashDashState
	case '<':
		return false, scriptDataEscapedLessThanSignState
	case '\u0000':
		p.emitChar('\uFFFD')
		return false, scriptDataEscapedState
	default:
		p.emitChar(r)
		return false, scriptDataEscapedState
	}
}

func (p *HTMLTokenizer) scriptDataEscapedDashDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.emitEOF()
	}
	switch r {
	case '-':
		p.emitChar('-')
		return false, scriptDataEscapedDashDashState
	case '<':
		return false, scriptDataEscapedLessThanSignState
	case '>':
		p.emitChar('>')
		return false, scriptDataState
	case '\u0000':
		p.emitChar('\uFFFD')
		return false, scriptDataEscapedState
	default:
		p.emitChar(r)
		return false, scriptDataEscapedState
	}
}

func (p *HTMLTokenizer) scriptDataEscapedLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case !eof && r == '/':
		p.tokenBuilder.ResetTempBuffer()
		return false, scriptDataEscapedEndTagOpenState
	case !eof && isASCIIAlpha(r):
		p.tokenBuilder.ResetTempBuffer()
		p.emitChar('<')
		return true, scriptDataDoubleEscapeStartState
	default:
		p.emitChar('<')
		return true, scriptDataEscapedState
	}
}

func (p *HTMLTokenizer) scriptDataEscapedEndTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.textEndTagOpenStateParser(r, eof, scriptDataEscapedEndTagNameState, scriptDataEscapedState)
}

func (p *HTMLTokenizer) scriptDataEscapedEndTagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.textEndTagNameStateParser(r, eof, scriptDataEscapedEndTagNameState, scriptDataEscapedState)
}

// doubleEscapeStateParser drives both the double escape start and end states:
// on a delimiter it compares the temp buffer with "script" and moves to
// matched or unmatched.
func (p *HTMLTokenizer) doubleEscapeStateParser(r rune, eof bool, self, matched, unmatched tokenizerState) (bool, tokenizerState) {
	if eof {
		return true, unmatched
	}
	switch {
	case isASCIIWhitespace(r) && r != '\r', r == '/', r == '>':
		p.emitChar(r)
		if p.tokenBuilder.TempBuffer() == "script" {
			return false, matched
		}
		return false, unmatched
	case isASCIIAlpha(r):
		p.emitChar(r)
		p.tokenBuilder.WriteTempBuffer(toASCIILower(r))
		return false, self
	default:
		return true, unmatched
	}
}

func (p *HTMLTokenizer) scriptDataDoubleEscapeStartStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.doubleEscapeStateParser(r, eof, scriptDataDoubleEscapeStartState, scriptDataDoubleEscapedState, scriptDataEscapedState)
}

func (p *HTMLTokenizer) scriptDataDoubleEscapedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.emitEOF()
	}
	switch r {
	case '-':
		p.emitChar('-')
		return false, scriptDataDoubleEscapedDashState
	case '<':
		p.emitChar('<')
		return false, scriptDataDoubleEscapedLessThanSignState
	case '\u0000':
		p.emitChar('\uFFFD')
		return false, scriptDataDoubleEscapedState
	default:
		p.emitChar(r)
		return false, scriptDataDoubleEscapedState
	}
}

func (p *HTMLTokenizer) scriptDataDoubleEscapedDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.emitEOF()
	}
	switch r {
	case '-':
		p.emitChar('-')
		return false, scriptDataDoubleEscapedDashDashState
	case '<':
		p.emitChar('<')
		return false, scriptDataDoubleEscapedLessThanSignState
	case '\u0000':
		p.emitChar('\uFFFD')
		return false, scriptDataDoubleEscapedState
	default:
		p.emitChar(r)
		return false, scriptDataDoubleEscapedState
	}
}

func (p *HTMLTokenizer) scriptDataDoubleEscapedDashDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.emitEOF()
	}
	switch r {
	case '-':
		p.emitChar('-')
		return false, scriptDataDoubleEscapedDashDashState
	case '<':
		p.emitChar('<')
		return false, scriptDataDoubleEscapedLessThanSignState
	case '>':
		p.emitChar('>')
		return false, scriptDataState
	case '\u0000':
		p.emitChar('\uFFFD')
		return false, scriptDataDoubleEscapedState
	default:
		p.emitChar(r)
		return false, scriptDataDoubleEscapedState
	}
}

func (p *HTMLTokenizer) scriptDataDoubleEscapedLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '/' {
		p.tokenBuilder.ResetTempBuffer()
		p.emitChar('/')
		return false, scriptDataDoubleEscapeEndState
	}
	return true, scriptDataDoubleEscapedState
}

func (p *HTMLTokenizer) scriptDataDoubleEscapeEndStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.doubleEscapeStateParser(r, eof, scriptDataDoubleEscapeEndState, scriptDataEscapedState, scriptDataDoubleEscapedState)
}

func (p *HTMLTokenizer) beforeAttributeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return true, afterAttributeNameState
	}
	switch {
	case isASCIIWhitespace(r):
		return false, beforeAttributeNameState
	case r == '/', r == '>':
		return true, afterAttributeNameState
	case r == '=':
		// unexpected-equals-sign-before-attribute-name: '=' starts the name.
		p.tokenBuilder.StartAttribute()
		p.tokenBuilder.WriteAttributeName(r)
		return false, attributeNameState
	default:
		p.tokenBuilder.StartAttribute()
		return true, attributeNameState
	}
}

func (p *HTMLTokenizer) attributeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return true, afterAttributeNameState
	}
	switch {
	case isASCIIWhitespace(r), r == '/', r == '>':
		return true, afterAttributeNameState
	case r == '=':
		return false, beforeAttributeValueState
	case r == '\u0000':
		p.tokenBuilder.WriteAttributeName('\uFFFD')
		return false, attributeNameState
	default:
		p.tokenBuilder.WriteAttributeName(toASCIILower(r))
		return false, attributeNameState
	}
}

func (p *HTMLTokenizer) afterAttributeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.emitEOF()
	}
	switch {
	case isASCIIWhitespace(r):
		return false, afterAttributeNameState
	case r == '/':
		return false, selfClosingStartTagState
	case r == '=':
		return false, beforeAttributeValueState
	case r == '>':
		return false, p.emitCurrentTag()
	default:
		p.tokenBuilder.StartAttribute()
		return true, attributeNameState
	}
}

func (p *HTMLTokenizer) beforeAttributeValueStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return true, attributeValueUnquotedState
	}
	switch {
	case isASCIIWhitespace(r):
		return false, beforeAttributeValueState
	case r == '"':
		return false, attributeValueDoubleQuotedState
	case r == '\'':
		return false, attributeValueSingleQuotedState
	case r == '>':
		return false, p.emitCurrentTag()
	default:
		return true, attributeValueUnquotedState
	}
}

func (p *HTMLTokenizer) quotedAttributeValueStateParser(r rune, eof bool, quote rune, self tokenizerState) (bool, tokenizerState) {
	if eof {
		return p.emitEOF()
	}
	switch r {
	case quote:
		return false, afterAttributeValueQuotedState
	case '&':
		p.returnState = self
		return false, characterReferenceState
	case '\u0000':
		p.tokenBuilder.WriteAttributeValue('\uFFFD')
		return false, self
	default:
		p.tokenBuilder.WriteAttributeValue(r)
		return false, self
	}
}

func (p *HTMLTokenizer) attributeValueDoubleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.quotedAttributeValueStateParser(r, eof, '"', attributeValueDoubleQuotedState)
}

func (p *HTMLTokenizer) attributeValueSingleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.quotedAttributeValueStateParser(r, eof, '\'', attributeValueSingleQuotedState)
}

func (p *HTMLTokenizer) attributeValueUnquotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.emitEOF()
	}
	switch {
	case isASCIIWhitespace(r):
		return false, beforeAttributeNameState
	case r == '&':
		p.returnState = attributeValueUnquotedState
		return false, characterReferenceState
	case r == '>':
		return false, p.emitCurrentTag()
	case r == '\u0000':
		p.tokenBuilder.WriteAttributeValue('\uFFFD')
		return false, attributeValueUnquotedState
	default:
		// '"', '\'', '<', '=' and '`' are parse errors but kept.
		p.tokenBuilder.WriteAttributeValue(r)
		return false, attributeValueUnquotedState
	}
}

func (p *HTMLTokenizer) afterAttributeValueQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.emitEOF()
	}
	switch {
	case isASCIIWhitespace(r):
		return false, beforeAttributeNameState
	case r == '/':
		return false, selfClosingStartTagState
	case r == '>':
		return false, p.emitCurrentTag()
	default:
		return true, beforeAttributeNameState
	}
}

func (p *HTMLTokenizer) selfClosingStartTagStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.emitEOF()
	}
	if r == '>' {
		p.tokenBuilder.EnableSelfClosing()
		return false, p.emitCurrentTag()
	}
	return true, beforeAttributeNameState
}

func (p *HTMLTokenizer) bogusCommentStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.emit(p.tokenBuilder.CommentToken())
		return p.emitEOF()
	}
	switch r {
	case '>':
		p.emit(p.tokenBuilder.CommentToken())
		return false, dataState
	case '\u0000':
		p.tokenBuilder.WriteData('\uFFFD')
		return false, bogusCommentState
	default:
		p.tokenBuilder.WriteData(r)
		return false, bogusCommentState
	}
}

// used below to look for peeking at what state to jump to next
var (
	doctype  = []byte("octype")
	cdata    = []byte("CDATA[")
	peekDist = 6
)

func (p *HTMLTokenizer) defaultMarkupDeclarationOpenStateParser() (bool, tokenizerState) {
	p.tokenBuilder.Reset()
	return true, bogusCommentState
}

// peekMatches reports whether the next unread bytes equal want, and consumes
// them if so.
func (p *HTMLTokenizer) peekMatches(want []byte, fold bool) bool {
	peeked, _ := p.inputStream.Peek(len(want))
	if len(peeked) < len(want) {
		return false
	}
	if (fold && !bytes.EqualFold(peeked, want)) || (!fold && !bytes.Equal(peeked, want)) {
		return false
	}
	p.inputStream.Discard(len(want))
	return true
}

func (p *HTMLTokenizer) markupDeclarationOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.defaultMarkupDeclarationOpenStateParser()
	}
	switch r {
	case '-':
		if p.peekMatches([]byte{'-'}, false) {
			p.tokenBuilder.Reset()
			return false, commentStartState
		}
	case 'D', 'd':
		if p.peekMatches(doctype[:peekDist], true) {
			return false, doctypeState
		}
	case '[':
		if p.peekMatches(cdata[:peekDist], false) {
			if p.allowCDATA {
				return false, cdataSectionState
			}
			p.tokenBuilder.Reset()
			p.tokenBuilder.WriteDataString("[CDATA[")
			return false, bogusCommentState
		}
	}
	return p.defaultMarkupDeclarationOpenStateParser()
}

func (p *HTMLTokenizer) commentStartStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return true, commentState
	}
	switch r {
	case '-':
		return false, commentStartDashState
	case '>':
		// abrupt-closing-of-empty-comment
		p.emit(p.tokenBuilder.CommentToken())
		return false, dataState
	default:
		return true, commentState
	}
}

func (p *HTMLTokenizer) commentStartDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.emit(p.tokenBuilder.CommentToken())
		return p.emitEOF()
	}
	switch r {
	case '-':
		return false, commentEndState
	case '>':
		p.emit(p.tokenBuilder.CommentToken())
		return false, dataState
	default:
		p.tokenBuilder.WriteData('-')
		return true, commentState
	}
}

func (p *HTMLTokenizer) commentStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.emit(p.tokenBuilder.CommentToken())
		return p.emitEOF()
	}
	switch r {
	case '<':
		p.tokenBuilder.WriteData(r)
		return false, commentLessThanSignState
	case '-':
		return false, commentEndDashState
	case '\u0000':
		p.tokenBuilder.WriteData('\uFFFD')
		return false, commentState
	default:
		p.tokenBuilder.WriteData(r)
		return false, commentState
	}
}

func (p *HTMLTokenizer) commentLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return true, commentState
	}
	switch r {
	case '!':
		p.tokenBuilder.WriteData(r)
		return false, commentLessThanSignBangState
	case '<':
		p.tokenBuilder.WriteData(r)
		return false, commentLessThanSignState
	default:
		return true, commentState
	}
}

func (p *HTMLTokenizer) commentLessThanSignBangStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '-' {
		return false, commentLessThanSignBangDashState
	}
	return true, commentState
}

func (p *HTMLTokenizer) commentLessThanSignBangDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '-' {
		return false, commentLessThanSignBangDashDashState
	}
	return true, commentEndDashState
}

func (p *HTMLTokenizer) commentLessThanSignBangDashDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	// Anything but '>' or EOF is a nested-comment parse error; all reconsume.
	return true, commentEndState
}

func (p *HTMLTokenizer) commentEndDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.emit(p.tokenBuilder.CommentToken())
		return p.emitEOF()
	}
	if r == '-' {
		return false, commentEndState
	}
	p.tokenBuilder.WriteData('-')
	return true, commentState
}

func (p *HTMLTokenizer) commentEndStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.emit(p.tokenBuilder.CommentToken())
		return p.emitEOF()
	}
	switch r {
	case '>':
		p.emit(p.tokenBuilder.CommentToken())
		return false, dataState
	case '!':
		return false, commentEndBangState
	case '-':
		p.tokenBuilder.WriteData('-')
		return false, commentEndState
	default:
		p.tokenBuilder.WriteDataString("--")
		return true, commentState
	}
}

func (p *HTMLTokenizer) commentEndBangStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.emit(p.tokenBuilder.CommentToken())
		return p.emitEOF()
	}
	switch r {
	case '-':
		p.tokenBuilder.WriteDataString("--!")
		return false, commentEndDashState
	case '>':
		p.emit(p.tokenBuilder.CommentToken())
		return false, dataState
	default:
		p.tokenBuilder.WriteDataString("--!")
		return true, commentState
	}
}

// emitQuirkyDoctype emits the current doctype with force-quirks set, followed
// by EOF when the input ended.
func (p *HTMLTokenizer) emitQuirkyDoctype(eof bool) (bool, tokenizerState) {
	p.tokenBuilder.EnableForceQuirks()
	p.emit(p.tokenBuilder.DocTypeToken())
	if eof {
		return p.emitEOF()
	}
	return false, dataState
}

func (p *HTMLTokenizer) doctypeStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.tokenBuilder.Reset()
		return p.emitQuirkyDoctype(true)
	}
	if isASCIIWhitespace(r) {
		return false, beforeDoctypeNameState
	}
	return true, beforeDoctypeNameState
}

func (p *HTMLTokenizer) beforeDoctypeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.tokenBuilder.Reset()
		return p.emitQuirkyDoctype(true)
	}
	switch {
	case isASCIIWhitespace(r):
		return false, beforeDoctypeNameState
	case r == '\u0000':
		p.tokenBuilder.Reset()
		p.tokenBuilder.WriteName('\uFFFD')
		return false, doctypeNameState
	case r == '>':
		p.tokenBuilder.Reset()
		return p.emitQuirkyDoctype(false)
	default:
		p.tokenBuilder.Reset()
		p.tokenBuilder.WriteName(toASCIILower(r))
		return false, doctypeNameState
	}
}

func (p *HTMLTokenizer) doctypeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.emitQuirkyDoctype(true)
	}
	switch {
	case isASCIIWhitespace(r):
		return false, afterDoctypeNameState
	case r == '>':
		p.emit(p.tokenBuilder.DocTypeToken())
		return false, dataState
	case r == '\u0000':
		p.tokenBuilder.WriteName('\uFFFD')
		return false, doctypeNameState
	default:
		p.tokenBuilder.WriteName(toASCIILower(r))
		return false, doctypeNameState
	}
}

var (
	public = []byte("UBLIC")
	system = []byte("YSTEM")
)

func (p *HTMLTokenizer) afterDoctypeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.emitQuirkyDoctype(true)
	}
	switch {
	case isASCIIWhitespace(r):
		return false, afterDoctypeNameState
	case r == '>':
		p.emit(p.tokenBuilder.DocTypeToken())
		return false, dataState
	case (r == 'P' || r == 'p') && p.peekMatches(public, true):
		return false, afterDoctypePublicKeywordState
	case (r == 'S' || r == 's') && p.peekMatches(system, true):
		return false, afterDoctypeSystemKeywordState
	default:
		p.tokenBuilder.EnableForceQuirks()
		return true, bogusDoctypeState
	}
}

// doctypeKeywordStateParser covers the states after the PUBLIC or SYSTEM
// keyword and before the identifier. The quotes open the identifier.
func (p *HTMLTokenizer) doctypeKeywordStateParser(r rune, eof bool, self, before tokenizerState, isPublic bool) (bool, tokenizerState) {
	if eof {
		return p.emitQuirkyDoctype(true)
	}
	switch {
	case isASCIIWhitespace(r):
		return false, before
	case r == '"', r == '\'':
		if isPublic {
			p.tokenBuilder.WritePublicIdentifierEmpty()
			if r == '"' {
				return false, doctypePublicIdentifierDoubleQuotedState
			}
			return false, doctypePublicIdentifierSingleQuotedState
		}
		p.tokenBuilder.WriteSystemIdentifierEmpty()
		if r == '"' {
			return false, doctypeSystemIdentifierDoubleQuotedState
		}
		return false, doctypeSystemIdentifierSingleQuotedState
	case r == '>':
		return p.emitQuirkyDoctype(false)
	default:
		p.tokenBuilder.EnableForceQuirks()
		return true, bogusDoctypeState
	}
}

func (p *HTMLTokenizer) afterDoctypePublicKeywordStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.doctypeKeywordStateParser(r, eof, afterDoctypePublicKeywordState, beforeDoctypePublicIdentifierState, true)
}

func (p *HTMLTokenizer) beforeDoctypePublicIdentifierStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.doctypeKeywordStateParser(r, eof, beforeDoctypePublicIdentifierState, beforeDoctypePublicIdentifierState, true)
}

func (p *HTMLTokenizer) afterDoctypeSystemKeywordStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.doctypeKeywordStateParser(r, eof, afterDoctypeSystemKeywordState, beforeDoctypeSystemIdentifierState, false)
}

func (p *HTMLTokenizer) beforeDoctypeSystemIdentifierStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.doctypeKeywordStateParser(r, eof, beforeDoctypeSystemIdentifierState, beforeDoctypeSystemIdentifierState, false)
}

func (p *HTMLTokenizer) doctypeIdentifierStateParser(r rune, eof bool, quote rune, self, after tokenizerState, isPublic bool) (bool, tokenizerState) {
	if eof {
		return p.emitQuirkyDoctype(true)
	}
	switch r {
	case quote:
		return false, after
	case '>':
		return p.emitQuirkyDoctype(false)
	case '\u0000':
		r = '\uFFFD'
	}
	if isPublic {
		p.tokenBuilder.WritePublicIdentifier(r)
	} else {
		p.tokenBuilder.WriteSystemIdentifier(r)
	}
	return false, self
}

func (p *HTMLTokenizer) doctypePublicIdentifierDoubleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.doctypeIdentifierStateParser(r, eof, '"', doctypePublicIdentifierDoubleQuotedState, afterDoctypePublicIdentifierState, true)
}

func (p *HTMLTokenizer) doctypePublicIdentifierSingleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.doctypeIdentifierStateParser(r, eof, '\'', doctypePublicIdentifierSingleQuotedState, afterDoctypePublicIdentifierState, true)
}

func (p *HTMLTokenizer) doctypeSystemIdentifierDoubleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.doctypeIdentifierStateParser(r, eof, '"', doctypeSystemIdentifierDoubleQuotedState, afterDoctypeSystemIdentifierState, false)
}

func (p *HTMLTokenizer) doctypeSystemIdentifierSingleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.doctypeIdentifierStateParser(r, eof, '\'', doctypeSystemIdentifierSingleQuotedState, afterDoctypeSystemIdentifierState, false)
}

func (p *HTMLTokenizer) afterDoctypePublicIdentifierStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && isASCIIWhitespace(r) {
		return false, betweenDoctypePublicAndSystemIdentifiersState
	}
	return p.betweenDoctypePublicAndSystemIdentifiersStateParser(r, eof)
}

func (p *HTMLTokenizer) betweenDoctypePublicAndSystemIdentifiersStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.emitQuirkyDoctype(true)
	}
	switch {
	case isASCIIWhitespace(r):
		return false, betweenDoctypePublicAndSystemIdentifiersState
	case r == '>':
		p.emit(p.tokenBuilder.DocTypeToken())
		return false, dataState
	case r == '"':
		p.tokenBuilder.WriteSystemIdentifierEmpty()
		return false, doctypeSystemIdentifierDoubleQuotedState
	case r == '\'':
		p.tokenBuilder.WriteSystemIdentifierEmpty()
		return false, doctypeSystemIdentifierSingleQuotedState
	default:
		p.tokenBuilder.EnableForceQuirks()
		return true, bogusDoctypeState
	}
}

func (p *HTMLTokenizer) afterDoctypeSystemIdentifierStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.emitQuirkyDoctype(true)
	}
	switch {
	case isASCIIWhitespace(r):
		return false, afterDoctypeSystemIdentifierState
	case r == '>':
		p.emit(p.tokenBuilder.DocTypeToken())
		return false, dataState
	default:
		// unexpected-character-after-doctype-system-identifier does not set
		// force-quirks.
		return true, bogusDoctypeState
	}
}

func (p *HTMLTokenizer) bogusDoctypeStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.emit(p.tokenBuilder.DocTypeToken())
		return p.emitEOF()
	}
	if r == '>' {
		p.emit(p.tokenBuilder.DocTypeToken())
		return false, dataState
	}
	return false, bogusDoctypeState
}

func (p *HTMLTokenizer) cdataSectionStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.emitEOF()
	}
	if r == ']' {
		return false, cdataSectionBracketState
	}
	p.emitChar(r)
	return false, cdataSectionState
}

func (p *HTMLTokenizer) cdataSectionBracketStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == ']' {
		return false, cdataSectionEndState
	}
	p.emitChar(']')
	return true, cdataSectionState
}

func (p *HTMLTokenizer) cdataSectionEndStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case !eof && r == ']':
		p.emitChar(']')
		return false, cdataSectionEndState
	case !eof && r == '>':
		return false, dataState
	default:
		p.emitString("]]")
		return true, cdataSectionState
	}
}

func (p *HTMLTokenizer) characterReferenceStateParser(r rune, eof bool) (bool, tokenizerState) {
	p.tokenBuilder.ResetTempBuffer()
	p.tokenBuilder.WriteTempBuffer('&')

	switch {
	case !eof && (isASCIIAlpha(r) || isASCIIDigit(r)):
		return true, namedCharacterReferenceState
	case !eof && r == '#':
		p.tokenBuilder.WriteTempBuffer(r)
		return false, numericCharacterReferenceState
	default:
		p.flushCodePointsAsCharacterReference()
		return true, p.returnState
	}
}

// namedCharacterReferenceStateParser is entered with the first alphanumeric
// of the name in r. The rest of the name is peeked so only the characters that
// form the match are consumed.
func (p *HTMLTokenizer) namedCharacterReferenceStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.flushCodePointsAsCharacterReference()
		return true, p.returnState
	}
	peeked, _ := p.inputStream.Peek(longestEntityName)
	run := make([]byte, 1, longestEntityName+1)
	run[0] = byte(r)
	i := 0
	for i < len(peeked) && len(run) < longestEntityName && isASCIIAlphanumeric(peeked[i]) {
		run = append(run, peeked[i])
		i++
	}
	semicolon := i < len(peeked) && peeked[i] == ';'

	n, decoded, terminated := matchEntity(string(run), semicolon)
	if n == 0 {
		p.flushCodePointsAsCharacterReference()
		return true, ambiguousAmpersandState
	}

	consumed := n - 1
	if terminated {
		consumed++
	}
	p.inputStream.Discard(consumed)

	if !terminated && wasConsumedByAttribute(p.returnState) {
		var next byte
		if n < len(run) {
			next = run[n]
		} else if i < len(peeked) {
			next = peeked[i]
		}
		if next == '=' || isASCIIAlphanumeric(next) {
			p.tokenBuilder.WriteTempBufferString(string(run[:n]))
			p.flushCodePointsAsCharacterReference()
			return false, p.returnState
		}
	}

	p.tokenBuilder.ResetTempBuffer()
	p.tokenBuilder.WriteTempBufferString(decoded)
	p.flushCodePointsAsCharacterReference()
	return false, p.returnState
}

func (p *HTMLTokenizer) ambiguousAmpersandStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && (isASCIIAlpha(r) || isASCIIDigit(r)) {
		if wasConsumedByAttribute(p.returnState) {
			p.tokenBuilder.WriteAttributeValue(r)
		} else {
			p.emitChar(r)
		}
		return false, ambiguousAmpersandState
	}
	// A ';' here is an unknown-named-character-reference parse error.
	return true, p.returnState
}

func (p *HTMLTokenizer) numericCharacterReferenceStateParser(r rune, eof bool) (bool, tokenizerState) {
	p.tokenBuilder.SetCharRef(0)
	if !eof && (r == 'x' || r == 'X') {
		p.tokenBuilder.WriteTempBuffer(r)
		return false, hexadecimalCharacterReferenceStartState
	}
	return true, decimalCharacterReferenceStartState
}

func hexValue(r rune) (int, bool) {
	switch {
	case isASCIIDigit(r):
		return int(r - '0'), true
	case 'a' <= r && r <= 'f':
		return int(r-'a') + 10, true
	case 'A' <= r && r <= 'F':
		return int(r-'A') + 10, true
	}
	return 0, false
}

func (p *HTMLTokenizer) hexadecimalCharacterReferenceStartStateParser(r rune, eof bool) (bool, tokenizerState) {
	if _, ok := hexValue(r); ok && !eof {
		return true, hexadecimalCharacterReferenceState
	}
	// absence-of-digits-in-numeric-character-reference
	p.flushCodePointsAsCharacterReference()
	return true, p.returnState
}

func (p *HTMLTokenizer) decimalCharacterReferenceStartStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && isASCIIDigit(r) {
		return true, decimalCharacterReferenceState
	}
	p.flushCodePointsAsCharacterReference()
	return true, p.returnState
}

func (p *HTMLTokenizer) hexadecimalCharacterReferenceStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		if v, ok := hexValue(r); ok {
			p.tokenBuilder.AccumulateCharRef(16, v)
			return false, hexadecimalCharacterReferenceState
		}
		if r == ';' {
			p.flushNumericCharacterReference()
			return false, p.returnState
		}
	}
	// missing-semicolon-after-character-reference
	p.flushNumericCharacterReference()
	return true, p.returnState
}

func (p *HTMLTokenizer) decimalCharacterReferenceStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		if isASCIIDigit(r) {
			p.tokenBuilder.AccumulateCharRef(10, int(r-'0'))
			return false, decimalCharacterReferenceState
		}
		if r == ';' {
			p.flushNumericCharacterReference()
			return false, p.returnState
		}
	}
	p.flushNumericCharacterReference()
	return true, p.returnState
}

// flushNumericCharacterReference runs the numeric character reference end
// state: it maps the accumulated code to the character it stands for and
// flushes it.
func (p *HTMLTokenizer) flushNumericCharacterReference() {
	code := p.tokenBuilder.GetCharRef()
	switch {
	case code == 0, code > 0x10FFFF, isSurrogate(code):
		code = 0xFFFD
	case isNonCharacter(code):
		// noncharacter-character-reference, kept as is
	case code == 0x0D || (isControl(code) && !isASCIIWhitespace(rune(code))):
		if r, ok := numericCharacterReferenceEndStateTable[code]; ok {
			code = int(r)
		}
	}

	p.tokenBuilder.ResetTempBuffer()
	p.tokenBuilder.WriteTempBuffer(rune(code))
	p.flushCodePointsAsCharacterReference()
}

var numericCharacterReferenceEndStateTable = map[int]rune{
	0x80: 0x20AC,
	0x82: 0x201A,
	0x83: 0x0192,
	0x84: 0x201E,
	0x85: 0x2026,
	0x86: 0x2020,
	0x87: 0x2021,
	0x88: 0x02C6,
	0x89: 0x2030,
	0x8A: 0x0160,
	0x8B: 0x2039,
	0x8C: 0x0152,
	0x8E: 0x017D,
	0x91: 0x2018,
	0x92: 0x2019,
	0x93: 0x201C,
	0x94: 0x201D,
	0x95: 0x2022,
	0x96: 0x2013,
	0x97: 0x2014,
	0x98: 0x02DC,
	0x99: 0x2122,
	0x9A: 0x0161,
	0x9B: 0x203A,
	0x9C: 0x0153,
	0x9E: 0x017E,
	0x9F: 0x0178,
}

func (p *HTMLTokenizer) emitCurrentTag() tokenizerState {
	p.tokenBuilder.CommitAttribute()
	switch p.tokenBuilder.curTagType {
	case startTag:
		p.emit(p.tokenBuilder.StartTagToken())
	case endTag:
		p.emit(p.tokenBuilder.EndTagToken())
	}

	return dataState
}

// a stateHandler is a func that takes in a rune and a bool representing the endoffile
// and returns whether to reconsume the rune and the next state to transition to.
type parserStateHandler func(in rune, eof bool) (bool, tokenizerState)

func (p *HTMLTokenizer) normalizeNewlines(r rune) rune {
	if r == '\r' {
		b, err := p.inputStream.Peek(1)
		if err == nil && len(b) > 0 && b[0] == '\n' {
			p.inputStream.Discard(1)
		}
		return '\n'
	}
	return r
}

func (p *HTMLTokenizer) takeLastEmittedToken() *Token {
	if len(p.emittedTokens) > 0 {
		ret := p.emittedTokens[0]
		p.emittedTokens = p.emittedTokens[1:]
		if ret.TokenType == endOfFileToken {
			p.done = true
		}
		return &ret
	}
	return nil
}

// Next reports whether the end-of-file token has not been handed out yet.
func (p *HTMLTokenizer) Next() bool {
	return !p.done
}

// Token returns the next token. progress lets the tree constructor switch
// the tokenizer state and allow CDATA sections; it may be nil.
func (p *HTMLTokenizer) Token(progress *Progress) (*Token, error) {
	if progress != nil {
		p.allowCDATA = progress.AllowCDATA
		if progress.TokenizerState != nil {
			p.currentState = *progress.TokenizerState
		}
	}

	// some states emit more than 1 token at a time and sometimes no tokens.
	// loop until at least 1 token is emitted and then take them.
	for {
		if token := p.takeLastEmittedToken(); token != nil {
			return token, nil
		}

		r, _, err := p.inputStream.ReadRune()
		if err != nil && err != io.EOF {
			return nil, errors.Wrap(err, "reading html input")
		}

		p.processRune(p.normalizeNewlines(r), err == io.EOF)
	}
}

func (p *HTMLTokenizer) processRune(r rune, eof bool) {
	reconsume := true
	for reconsume {
		reconsume, p.currentState = p.stateToParser(p.currentState)(r, eof)
		if p.trace {
			p.log.WithFields(logrus.Fields{
				"rune":  string(r),
				"eof":   eof,
				"state": p.currentState,
			}).Trace("tokenizer transition")
		}
	}
}
