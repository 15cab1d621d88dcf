package parser

import (
	"strconv"
	"strings"

	"github.com/heathj/gosoup/parser/dom"
)

type tokenType uint

const (
	characterToken tokenType = iota
	startTagToken
	endTagToken
	endOfFileToken
	commentToken
	docTypeToken
)

func (t tokenType) String() string {
	switch t {
	case characterToken:
		return "character"
	case startTagToken:
		return "start tag"
	case endTagToken:
		return "end tag"
	case endOfFileToken:
		return "eof"
	case commentToken:
		return "comment"
	case docTypeToken:
		return "doctype"
	}
	return "unknown"
}

type tagType uint

const (
	startTag tagType = iota
	endTag
)

// Token is a concrete token that is ready to be emitted.
type Token struct {
	TokenType  tokenType
	TagName    string
	Attributes []dom.Attribute
	// PublicIdentifier and SystemIdentifier are only meaningful when the
	// matching Has flag is set; a missing identifier differs from an empty one.
	PublicIdentifier    string
	SystemIdentifier    string
	HasPublicIdentifier bool
	HasSystemIdentifier bool
	ForceQuirks         bool
	SelfClosing         bool
	Data                string
}

// Attr returns the value of the named attribute.
func (t *Token) Attr(name string) (string, bool) {
	for _, a := range t.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

func (t *Token) String() string {
	var sb strings.Builder
	switch t.TokenType {
	case characterToken:
		sb.WriteString(strconv.Quote(t.Data))
	case startTagToken, endTagToken:
		sb.WriteByte('<')
		if t.TokenType == endTagToken {
			sb.WriteByte('/')
		}
		sb.WriteString(t.TagName)
		for _, a := range t.Attributes {
			sb.WriteByte(' ')
			sb.WriteString(a.Name)
			sb.WriteByte('=')
			sb.WriteString(strconv.Quote(a.Value))
		}
		if t.SelfClosing {
			sb.WriteString(" /")
		}
		sb.WriteByte('>')
	case commentToken:
		sb.WriteString("<!--")
		sb.WriteString(t.Data)
		sb.WriteString("-->")
	case docTypeToken:
		sb.WriteString("<!DOCTYPE ")
		sb.WriteString(t.TagName)
		if t.HasPublicIdentifier {
			sb.WriteString(" PUBLIC ")
			sb.WriteString(strconv.Quote(t.PublicIdentifier))
		}
		if t.HasSystemIdentifier {
			sb.WriteString(" SYSTEM ")
			sb.WriteString(strconv.Quote(t.SystemIdentifier))
		}
		sb.WriteByte('>')
	case endOfFileToken:
		sb.WriteString("EOF")
	}
	return sb.String()
}

// TokenBuilder builds various tokens up during the tokenization
// phase.
type TokenBuilder struct {
	attributes             []dom.Attribute
	attributeKey           strings.Builder
	attributeValue         strings.Builder
	name                   strings.Builder
	data                   strings.Builder
	tempBuffer             strings.Builder
	publicID               strings.Builder
	systemID               strings.Builder
	hasPublicID            bool
	hasSystemID            bool
	selfClosing            bool
	forceQuirks            bool
	removeNextAttr         bool
	curTagType             tagType
	characterReferenceCode int
}

func newTokenBuilder() *TokenBuilder {
	return &TokenBuilder{}
}

// Reset clears all the builders and attributes. The temp buffer is left
// alone since character references started inside a tag still need it.
func (t *TokenBuilder) Reset() {
	t.attributes = nil
	t.attributeKey.Reset()
	t.attributeValue.Reset()
	t.publicID.Reset()
	t.systemID.Reset()
	t.hasPublicID = false
	t.hasSystemID = false
	t.data.Reset()
	t.name.Reset()
	t.selfClosing = false
	t.forceQuirks = false
	t.removeNextAttr = false
}

// EnableSelfClosing changes to the self-closing flag to "set".
func (t *TokenBuilder) EnableSelfClosing() {
	t.selfClosing = true
}

// EnableForceQuirks changes to the force-quirks flag to "set".
func (t *TokenBuilder) EnableForceQuirks() {
	t.forceQuirks = true
}

// WritePublicIdentifierEmpty marks the public identifier as present but empty.
func (t *TokenBuilder) WritePublicIdentifierEmpty() {
	t.publicID.Reset()
	t.hasPublicID = true
}

// WriteSystemIdentifierEmpty marks the system identifier as present but empty.
func (t *TokenBuilder) WriteSystemIdentifierEmpty() {
	t.systemID.Reset()
	t.hasSystemID = true
}

// WritePublicIdentifier appends a rune to the public identifier buffer.
func (t *TokenBuilder) WritePublicIdentifier(r rune) {
	t.publicID.WriteRune(r)
}

// WriteSystemIdentifier appends a rune to the system identifier buffer.
func (t *TokenBuilder) WriteSystemIdentifier(r rune) {
	t.systemID.WriteRune(r)
}

// WriteAttributeName appends a character to the current
// attribute's name.
func (t *TokenBuilder) WriteAttributeName(r rune) {
	t.attributeKey.WriteRune(r)
}

// WriteData appends a character to the current data section.
func (t *TokenBuilder) WriteData(r rune) {
	t.data.WriteRune(r)
}

// WriteDataString appends a string to the current data section.
func (t *TokenBuilder) WriteDataString(s string) {
	t.data.WriteString(s)
}

// WriteAttributeValue appends a character to the current
// attribute's value.
func (t *TokenBuilder) WriteAttributeValue(r rune) {
	t.attributeValue.WriteRune(r)
}

// RemoveDuplicateAttributeName checks if the current name is already
// in the list of committed attributes. If so, the attribute is dropped when
// it is committed, so the first occurrence wins.
func (t *TokenBuilder) RemoveDuplicateAttributeName() bool {
	k := t.attributeKey.String()
	for _, a := range t.attributes {
		if a.Name == k {
			t.removeNextAttr = true
			return true
		}
	}
	return false
}

// WriteName appends a character to the current name value.
func (t *TokenBuilder) WriteName(r rune) {
	t.name.WriteRune(r)
}

// StartAttribute commits the attribute under construction and starts a new
// one.
func (t *TokenBuilder) StartAttribute() {
	t.CommitAttribute()
}

// CommitAttribute ends the creation of a key/value
// pair by copying the name and value fields into the
// attribute field and clearing the name and value fields.
func (t *TokenBuilder) CommitAttribute() {
	if t.attributeKey.Len() > 0 {
		t.RemoveDuplicateAttributeName()
		if !t.removeNextAttr {
			t.attributes = append(t.attributes, dom.Attribute{
				Name:  t.attributeKey.String(),
				Value: t.attributeValue.String(),
			})
		}
	}
	t.attributeKey.Reset()
	t.attributeValue.Reset()
	t.removeNextAttr = false
}

// WriteTempBuffer appends a character to the temporary buffer of the current
// state.
func (t *TokenBuilder) WriteTempBuffer(r rune) {
	t.tempBuffer.WriteRune(r)
}

// WriteTempBufferString appends a string to the temporary buffer.
func (t *TokenBuilder) WriteTempBufferString(s string) {
	t.tempBuffer.WriteString(s)
}

// ResetTempBuffer clears the temporary buffer to be used by some other state.
func (t *TokenBuilder) ResetTempBuffer() {
	t.tempBuffer.Reset()
}

// TempBuffer just returns the string version of the current buffer contents.
func (t *TokenBuilder) TempBuffer() string {
	return t.tempBuffer.String()
}

// TempBufferCharTokens returns one character token per rune of the temp buffer.
func (t *TokenBuilder) TempBufferCharTokens() []Token {
	s := t.tempBuffer.String()
	out := make([]Token, 0, len(s))
	for _, r := range s {
		out = append(out, t.CharacterToken(r))
	}
	return out
}

// SetCharRef sets the character reference code.
func (t *TokenBuilder) SetCharRef(i int) {
	t.characterReferenceCode = i
}

// GetCharRef returns the character reference code.
func (t *TokenBuilder) GetCharRef() int {
	return t.characterReferenceCode
}

// AccumulateCharRef shifts the character reference code by base and adds
// digit. The code saturates above the Unicode range.
func (t *TokenBuilder) AccumulateCharRef(base, digit int) {
	if t.characterReferenceCode > 0x10FFFF {
		return
	}
	t.characterReferenceCode = t.characterReferenceCode*base + digit
}

// StartTagToken creates a start tag token from the builder
// contents.
func (t *TokenBuilder) StartTagToken() Token {
	return Token{
		TokenType:   startTagToken,
		TagName:     t.name.String(),
		Attributes:  t.attributes,
		SelfClosing: t.selfClosing,
	}
}

// EndTagToken creates an end tag token from the builder
// contents. End tags never carry attributes or the self-closing flag.
func (t *TokenBuilder) EndTagToken() Token {
	return Token{
		TokenType: endTagToken,
		TagName:   t.name.String(),
	}
}

// CharacterToken creates a character token.
func (t *TokenBuilder) CharacterToken(r rune) Token {
	return Token{
		TokenType: characterToken,
		Data:      string(r),
	}
}

// EndOfFileToken create an end of file token.
func (t *TokenBuilder) EndOfFileToken() Token {
	return Token{
		TokenType: endOfFileToken,
	}
}

// CommentToken creates a comment token from the builder contents.
func (t *TokenBuilder) CommentToken() Token {
	return Token{
		TokenType: commentToken,
		Data:      t.data.String(),
	}
}

// DocTypeToken creates a doc type token from the builder contents.
func (t *TokenBuilder) DocTypeToken() Token {
	return Token{
		TokenType:           docTypeToken,
		TagName:             t.name.String(),
		ForceQuirks:         t.forceQuirks,
		PublicIdentifier:    t.publicID.String(),
		SystemIdentifier:    t.systemID.String(),
		HasPublicIdentifier: t.hasPublicID,
		HasSystemIdentifier: t.hasSystemID,
	}
}
