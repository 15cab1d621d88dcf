// Package gosoup parses HTML into an arena DOM and queries it with CSS
// selectors and XPath expressions.
package gosoup

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/heathj/gosoup/parser"
	"github.com/heathj/gosoup/parser/dom"
	"github.com/heathj/gosoup/selector"
)

// ErrMultipleMatches is returned by a strict CSSFirst when the selector
// matches more than one element.
var ErrMultipleMatches = errors.New("selector matched more than one element")

// Config holds query settings.
type Config struct {
	// Strict makes CSSFirst fail with ErrMultipleMatches instead of returning
	// the first of several matches.
	Strict bool
	// Logger receives debug output. It defaults to parser.Logger.
	Logger logrus.FieldLogger
}

func (c Config) logger() logrus.FieldLogger {
	if c.Logger == nil {
		return parser.Logger
	}
	return c.Logger
}

// Parse reads a complete HTML document. Only read errors are returned;
// malformed markup always produces a tree.
func Parse(r io.Reader, opts ...parser.Option) (*dom.Document, error) {
	d, err := parser.Parse(r, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "gosoup: parse")
	}
	return d, nil
}

// ParseString parses an HTML document held in memory.
func ParseString(s string, opts ...parser.Option) *dom.Document {
	return parser.ParseString(s, opts...)
}

func compile(sel string) (*selector.Selector, error) {
	s, err := selector.Compile(sel)
	if err != nil {
		return nil, errors.Wrapf(err, "gosoup: compile %q", sel)
	}
	return s, nil
}

// Select returns the elements below root that match sel, in document order.
func Select(root dom.Node, sel string) ([]dom.Node, error) {
	if root.IsZero() {
		return nil, nil
	}
	s, err := compile(sel)
	if err != nil {
		return nil, err
	}
	d := root.Document()
	return d.Nodes(s.Select(d, root.ID())), nil
}

// SelectOne returns the first element below root matching sel, or the zero
// Node.
func SelectOne(root dom.Node, sel string) (dom.Node, error) {
	if root.IsZero() {
		return dom.Node{}, nil
	}
	s, err := compile(sel)
	if err != nil {
		return dom.Node{}, err
	}
	d := root.Document()
	return d.Node(s.SelectFirst(d, root.ID())), nil
}

// Matches reports whether the element n matches sel.
func Matches(n dom.Node, sel string) (bool, error) {
	if n.IsZero() {
		return false, nil
	}
	s, err := compile(sel)
	if err != nil {
		return false, err
	}
	return s.Matches(n.Document(), n.ID()), nil
}

// CSSFirst returns the first match of sel below root, or def when nothing
// matches. With strict set, more than one match is an error.
func CSSFirst(root dom.Node, sel string, def dom.Node, strict bool) (dom.Node, error) {
	return Config{Strict: strict}.CSSFirst(root, sel, def)
}

// CSSFirst is like the package level CSSFirst with strictness taken from c.
func (c Config) CSSFirst(root dom.Node, sel string, def dom.Node) (dom.Node, error) {
	if root.IsZero() {
		return def, nil
	}
	s, err := compile(sel)
	if err != nil {
		return def, err
	}
	d := root.Document()
	if !c.Strict {
		if id := s.SelectFirst(d, root.ID()); id != dom.NoNode {
			return d.Node(id), nil
		}
		return def, nil
	}
	ids := s.Select(d, root.ID())
	switch len(ids) {
	case 0:
		return def, nil
	case 1:
		return d.Node(ids[0]), nil
	}
	c.logger().WithFields(logrus.Fields{
		"selector": sel,
		"matches":  len(ids),
	}).Debug("strict CSSFirst matched several elements")
	return def, errors.Wrapf(ErrMultipleMatches, "%q matched %d elements", sel, len(ids))
}

// Text returns the text content of every node joined by sep.
func Text(nodes []dom.Node, sep string) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.TextContent()
	}
	return strings.Join(parts, sep)
}
