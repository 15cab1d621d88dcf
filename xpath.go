package gosoup

import (
	"github.com/antchfx/xpath"
	"github.com/pkg/errors"

	"github.com/heathj/gosoup/parser/dom"
)

// XPath evaluates a node-set expression with root as the XPath root node.
// Selected attributes are reported as their owning element.
func XPath(root dom.Node, expr string) ([]dom.Node, error) {
	if root.IsZero() {
		return nil, nil
	}
	e, err := xpath.Compile(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "gosoup: compile xpath %q", expr)
	}
	d := root.Document()
	var out []dom.Node
	seen := map[dom.NodeID]bool{}
	iter := e.Select(d.Navigator(root.ID()))
	for iter.MoveNext() {
		id := iter.Current().(*dom.Navigator).Current()
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, d.Node(id))
	}
	return out, nil
}

// XPathValue evaluates expr and returns its value: a float64, string, bool
// or, for node sets, the matched nodes.
func XPathValue(root dom.Node, expr string) (interface{}, error) {
	e, err := xpath.Compile(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "gosoup: compile xpath %q", expr)
	}
	if root.IsZero() {
		return nil, nil
	}
	d := root.Document()
	switch v := e.Evaluate(d.Navigator(root.ID())).(type) {
	case *xpath.NodeIterator:
		var out []dom.Node
		for v.MoveNext() {
			out = append(out, d.Node(v.Current().(*dom.Navigator).Current()))
		}
		return out, nil
	default:
		return v, nil
	}
}
