package parser

import (
	"io"
	"strings"

	"github.com/heathj/gosoup/parser/dom"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Parser drives a tokenizer and a tree constructor over one input.
type Parser struct {
	Tokenizer       *HTMLTokenizer
	TreeConstructor *HTMLTreeConstructor
	config          config
}

type config struct {
	logger     logrus.FieldLogger
	scripting  bool
	contextTag string
	contextDoc *dom.Document
	contextID  dom.NodeID
}

// Option configures a Parser.
type Option func(*config)

// WithLogger sets the logger parse errors and tokenizer traces go to.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *config) { c.logger = logger }
}

// WithScripting sets the scripting flag, which decides whether noscript
// content is parsed as raw text.
func WithScripting(enabled bool) Option {
	return func(c *config) { c.scripting = enabled }
}

// WithContext makes ParseFragment parse as if the input were the inner HTML
// of an HTML element with the given tag name.
func WithContext(tag string) Option {
	return func(c *config) {
		c.contextTag = strings.ToLower(tag)
		c.contextDoc = nil
	}
}

// WithContextElement makes ParseFragment use an existing element as the
// context. Its namespace, attributes, and enclosing form are honored.
func WithContextElement(doc *dom.Document, id dom.NodeID) Option {
	return func(c *config) {
		c.contextDoc, c.contextID = doc, id
		c.contextTag = ""
	}
}

// NewParser creates a parser reading HTML from r.
func NewParser(r io.Reader, opts ...Option) *Parser {
	cfg := config{logger: Logger}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Parser{
		Tokenizer:       NewHTMLTokenizer(r, cfg.logger),
		TreeConstructor: NewHTMLTreeConstructor(cfg.logger, cfg.scripting),
		config:          cfg,
	}
}

// Start parses the whole input as a document.
func (p *Parser) Start() (*dom.Document, error) {
	start := dataState
	if err := p.startAt(&Progress{TokenizerState: &start}); err != nil {
		return nil, err
	}
	return p.TreeConstructor.Document(), nil
}

func (p *Parser) startAt(progress *Progress) error {
	for p.Tokenizer.Next() {
		t, err := p.Tokenizer.Token(progress)
		if err != nil {
			return err
		}
		progress = p.TreeConstructor.ProcessToken(t)
	}
	return nil
}

// Parse parses a complete HTML document. Malformed markup never fails; the
// only errors come from reading r.
func Parse(r io.Reader, opts ...Option) (*dom.Document, error) {
	doc, err := NewParser(r, opts...).Start()
	if err != nil {
		return nil, errors.Wrap(err, "parsing html")
	}
	return doc, nil
}

// ParseString parses an HTML document held in a string.
func ParseString(s string, opts ...Option) *dom.Document {
	// Reading a strings.Reader cannot fail.
	doc, _ := Parse(strings.NewReader(s), opts...)
	return doc
}

// ParseFragment parses r as the inner HTML of a context element, body when
// none is given. It returns the document holding the result and the top
// level nodes of the fragment, which are children of the document's html
// element.
func ParseFragment(r io.Reader, opts ...Option) (*dom.Document, []dom.NodeID, error) {
	p := NewParser(r, opts...)
	start, err := p.startFragment()
	if err != nil {
		return nil, nil, err
	}
	if err := p.startAt(start); err != nil {
		return nil, nil, errors.Wrap(err, "parsing html fragment")
	}
	doc := p.TreeConstructor.Document()
	return doc, doc.Children(doc.RootElement()), nil
}

// startFragment prepares the tree constructor for the fragment parsing
// algorithm and returns the initial tokenizer progress.
func (p *Parser) startFragment() (*Progress, error) {
	c := p.TreeConstructor
	doc := c.Document()

	var context dom.NodeID
	switch {
	case p.config.contextDoc != nil:
		src := p.config.contextDoc
		if !src.IsElement(p.config.contextID) {
			return nil, errors.Errorf("fragment context %d is not an element", p.config.contextID)
		}
		context = doc.Import(src, p.config.contextID, false)
		doc.SetQuirks(src.Quirks())
		for _, a := range src.Ancestors(p.config.contextID) {
			if src.IsHTML(a, "form") {
				c.formElementPointer = doc.Import(src, a, false)
				break
			}
		}
	default:
		tag := p.config.contextTag
		if tag == "" {
			tag = "body"
		}
		context = doc.CreateElement(tag, dom.Htmlns)
	}
	if doc.IsHTML(context, "form") {
		c.formElementPointer = context
	}

	state := dataState
	if doc.Namespace(context) == dom.Htmlns {
		switch doc.Name(context) {
		case "title", "textarea":
			state = rcDataState
		case "style", "xmp", "iframe", "noembed", "noframes":
			state = rawTextState
		case "script":
			state = scriptDataState
		case "noscript":
			if c.scriptingEnabled {
				state = rawTextState
			}
		case "plaintext":
			state = plaintextState
		}
	}

	c.context = context
	c.insertRootElement(startTagNamed("html"))
	if doc.IsHTML(context, "template") {
		c.pushTemplateMode(inTemplate)
	}
	p.Tokenizer.setLastStartTag(doc.Name(context))
	c.mode = c.resetInsertionMode()
	c.framesetOK = true
	return &Progress{
		AllowCDATA:     doc.Namespace(context) != dom.Htmlns,
		TokenizerState: &state,
	}, nil
}

// SetInnerHTML replaces the children of the element id with the result of
// parsing html in its context.
func SetInnerHTML(doc *dom.Document, id dom.NodeID, html string, opts ...Option) error {
	opts = append(opts, WithContextElement(doc, id))
	frag, nodes, err := ParseFragment(strings.NewReader(html), opts...)
	if err != nil {
		return err
	}
	for _, child := range doc.Children(id) {
		if err := doc.RemoveChild(id, child); err != nil {
			return err
		}
	}
	for _, n := range nodes {
		if err := doc.AppendChild(id, doc.Import(frag, n, true)); err != nil {
			return err
		}
	}
	return nil
}
