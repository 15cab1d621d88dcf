// Package stylesheet reads the embedded style sheets of a document and
// matches their rules against its elements.
package stylesheet

import (
	"sort"
	"strings"

	"github.com/aymerick/douceur/css"
	cssparser "github.com/aymerick/douceur/parser"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/heathj/gosoup/parser"
	"github.com/heathj/gosoup/parser/dom"
	"github.com/heathj/gosoup/selector"
)

// Declaration is one property assignment.
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// Rule is a style rule with a compiled selector. Media holds the prelude of
// the enclosing @media rule, if any.
type Rule struct {
	Selector     *selector.Selector
	Declarations []Declaration
	Media        string
}

// Sheet is an ordered list of style rules.
type Sheet struct {
	Rules []Rule
	log   logrus.FieldLogger
}

// Option configures parsing.
type Option func(*Sheet)

// WithLogger sets the logger that reports dropped rules.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Sheet) {
		s.log = logger
	}
}

func newSheet(opts []Option) *Sheet {
	s := &Sheet{log: parser.Logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Parse reads a style sheet. Rules whose selectors do not compile are
// dropped, as browsers do.
func Parse(text string, opts ...Option) (*Sheet, error) {
	s := newSheet(opts)
	if err := s.add(text); err != nil {
		return nil, err
	}
	return s, nil
}

// Extract collects the rules of every <style> element of doc in document
// order.
func Extract(doc *dom.Document, opts ...Option) (*Sheet, error) {
	s := newSheet(opts)
	w := doc.Walk(dom.DocumentID)
	for w.Next() {
		id := w.Node()
		if !doc.IsHTML(id, "style") {
			continue
		}
		if err := s.add(doc.TextContent(id)); err != nil {
			return nil, errors.Wrapf(err, "style element %d", id)
		}
	}
	return s, nil
}

func (s *Sheet) add(text string) error {
	parsed, err := cssparser.Parse(text)
	if err != nil {
		return errors.Wrap(err, "parsing style sheet")
	}
	s.addRules(parsed.Rules, "")
	return nil
}

func (s *Sheet) addRules(rules []*css.Rule, media string) {
	for _, r := range rules {
		if r.Kind == css.AtRule {
			if strings.EqualFold(r.Name, "@media") {
				s.addRules(r.Rules, r.Prelude)
			} else {
				s.log.WithField("rule", r.Name).Debug("skipping at-rule")
			}
			continue
		}
		sel, err := selector.Compile(r.Prelude)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"selector": r.Prelude,
				"error":    err,
			}).Debug("dropping rule")
			continue
		}
		s.Rules = append(s.Rules, Rule{
			Selector:     sel,
			Declarations: convert(r.Declarations),
			Media:        media,
		})
	}
}

func convert(decls []*css.Declaration) []Declaration {
	out := make([]Declaration, 0, len(decls))
	for _, d := range decls {
		out = append(out, Declaration{
			Property:  strings.ToLower(d.Property),
			Value:     d.Value,
			Important: d.Important,
		})
	}
	return out
}

// Applied is a declaration that applies to an element, with the precedence
// it was applied with.
type Applied struct {
	Declaration
	Specificity selector.Specificity
	Inline      bool
	order       int
}

// tier orders the cascade: normal rules, inline style, important rules and
// important inline style.
func (a Applied) tier() int {
	t := 0
	if a.Inline {
		t = 1
	}
	if a.Important {
		t += 2
	}
	return t
}

func less(a, b Applied) bool {
	if a.tier() != b.tier() {
		return a.tier() < b.tier()
	}
	if a.Specificity != b.Specificity {
		return a.Specificity.Less(b.Specificity)
	}
	return a.order < b.order
}

// Match returns, for every element some rule applies to, its declarations in
// cascade order: the last declaration of a property wins. Inline style
// attributes take part when inline is set.
func (s *Sheet) Match(doc *dom.Document, inline bool) map[dom.NodeID][]Applied {
	out := map[dom.NodeID][]Applied{}
	w := doc.Walk(dom.DocumentID)
	for w.Next() {
		id := w.Node()
		if !doc.IsElement(id) {
			continue
		}
		if applied := s.apply(doc, id, inline); len(applied) > 0 {
			out[id] = applied
		}
	}
	return out
}

func (s *Sheet) apply(doc *dom.Document, id dom.NodeID, inline bool) []Applied {
	var applied []Applied
	n := 0
	for _, r := range s.Rules {
		sp, ok := r.Selector.MatchSpecificity(doc, id)
		if !ok {
			continue
		}
		for _, d := range r.Declarations {
			applied = append(applied, Applied{Declaration: d, Specificity: sp, order: n})
			n++
		}
	}
	if style, ok := doc.Attr(id, "style"); ok && inline {
		decls, err := cssparser.ParseDeclarations(style)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"style": style,
				"error": err,
			}).Debug("ignoring inline style")
		}
		for _, d := range convert(decls) {
			applied = append(applied, Applied{Declaration: d, Inline: true, order: n})
			n++
		}
	}
	sort.SliceStable(applied, func(i, j int) bool { return less(applied[i], applied[j]) })
	return applied
}

// Computed returns the winning value of every property set on id.
func (s *Sheet) Computed(doc *dom.Document, id dom.NodeID) map[string]string {
	props := map[string]string{}
	for _, a := range s.apply(doc, id, true) {
		props[a.Property] = a.Value
	}
	return props
}
