package selector

import (
	"strconv"
	"strings"
)

// Sel is a node of a compiled complex selector: a *Compound, a *Combinator,
// or the scope placeholder used by relative selectors.
type Sel interface {
	sel()
	String() string
	Specificity() Specificity
}

// Simple is one simple selector inside a compound.
type Simple interface {
	simple()
	String() string
	Specificity() Specificity
}

// CombinatorKind relates the two sides of a Combinator.
type CombinatorKind uint8

const (
	Descendant CombinatorKind = iota
	Child
	NextSibling
	SubsequentSibling
)

func (k CombinatorKind) String() string {
	switch k {
	case Child:
		return ">"
	case NextSibling:
		return "+"
	case SubsequentSibling:
		return "~"
	}
	return " "
}

// Compound is a run of simple selectors that all apply to one element.
type Compound struct {
	Simples []Simple
}

// Combinator matches Right against an element and Left against a related
// element.
type Combinator struct {
	Kind  CombinatorKind
	Left  Sel
	Right *Compound
}

// scope stands for the element a relative selector is anchored at.
type scope struct{}

func (*Compound) sel()   {}
func (*Combinator) sel() {}
func (scope) sel()       {}

func (c *Compound) String() string {
	if len(c.Simples) == 0 {
		return "*"
	}
	var sb strings.Builder
	for _, s := range c.Simples {
		sb.WriteString(s.String())
	}
	return sb.String()
}

func (c *Combinator) String() string {
	left := c.Left.String()
	switch {
	case left == "" && c.Kind == Descendant:
		return c.Right.String()
	case left == "":
		return c.Kind.String() + " " + c.Right.String()
	case c.Kind == Descendant:
		return left + " " + c.Right.String()
	}
	return left + " " + c.Kind.String() + " " + c.Right.String()
}

func (scope) String() string { return "" }

func (c *Compound) Specificity() Specificity {
	var s Specificity
	for _, simple := range c.Simples {
		s = s.Add(simple.Specificity())
	}
	return s
}

func (c *Combinator) Specificity() Specificity {
	return c.Left.Specificity().Add(c.Right.Specificity())
}

func (scope) Specificity() Specificity { return Specificity{} }

// TypeSelector matches elements by tag name. The universal selector has the
// name "*".
type TypeSelector struct {
	Name string
}

// ClassSelector matches elements whose class list contains Name.
type ClassSelector struct {
	Name string
}

// IDSelector matches elements whose id is ID.
type IDSelector struct {
	ID string
}

// AttrOp is the operator of an attribute selector.
type AttrOp uint8

const (
	AttrExists    AttrOp = iota // [name]
	AttrEquals                  // [name=value]
	AttrIncludes                // [name~=value]
	AttrDashMatch               // [name|=value]
	AttrPrefix                  // [name^=value]
	AttrSuffix                  // [name$=value]
	AttrSubstring               // [name*=value]
)

var attrOpStrings = [...]string{"", "=", "~=", "|=", "^=", "$=", "*="}

func (op AttrOp) String() string { return attrOpStrings[op] }

// AttributeSelector tests an attribute. Values compare case-sensitively unless
// the selector carries the i flag.
type AttributeSelector struct {
	Op       AttrOp
	Name     string
	Value    string
	FoldCase bool
}

// PseudoKind names a supported pseudo-class.
type PseudoKind uint8

const (
	PseudoFirstChild PseudoKind = iota
	PseudoLastChild
	PseudoOnlyChild
	PseudoFirstOfType
	PseudoLastOfType
	PseudoOnlyOfType
	PseudoNthChild
	PseudoNthLastChild
	PseudoNthOfType
	PseudoNthLastOfType
	PseudoEmpty
	PseudoRoot
	PseudoScope
	PseudoNot
	PseudoIs
	PseudoWhere
	PseudoHas
	PseudoContains
	PseudoContainsOwn
	PseudoChecked
	PseudoDisabled
	PseudoEnabled
	PseudoLink
	PseudoAnyLink
)

var pseudoNames = map[string]PseudoKind{
	"first-child":      PseudoFirstChild,
	"last-child":       PseudoLastChild,
	"only-child":       PseudoOnlyChild,
	"first-of-type":    PseudoFirstOfType,
	"last-of-type":     PseudoLastOfType,
	"only-of-type":     PseudoOnlyOfType,
	"nth-child":        PseudoNthChild,
	"nth-last-child":   PseudoNthLastChild,
	"nth-of-type":      PseudoNthOfType,
	"nth-last-of-type": PseudoNthLastOfType,
	"empty":            PseudoEmpty,
	"root":             PseudoRoot,
	"scope":            PseudoScope,
	"not":              PseudoNot,
	"is":               PseudoIs,
	"where":            PseudoWhere,
	"has":              PseudoHas,
	"contains":         PseudoContains,
	"contains-own":     PseudoContainsOwn,
	"checked":          PseudoChecked,
	"disabled":         PseudoDisabled,
	"enabled":          PseudoEnabled,
	"link":             PseudoLink,
	"any-link":         PseudoAnyLink,
}

var pseudoKindNames = func() map[PseudoKind]string {
	m := make(map[PseudoKind]string, len(pseudoNames))
	for name, kind := range pseudoNames {
		m[kind] = name
	}
	return m
}()

func (k PseudoKind) String() string { return pseudoKindNames[k] }

// functional reports whether the pseudo-class takes an argument list.
func (k PseudoKind) functional() bool {
	switch k {
	case PseudoNthChild, PseudoNthLastChild, PseudoNthOfType, PseudoNthLastOfType,
		PseudoNot, PseudoIs, PseudoWhere, PseudoHas, PseudoContains, PseudoContainsOwn:
		return true
	}
	return false
}

// PseudoClass is a pseudo-class with its arguments. Nth is set for the nth-*
// family, Args for the selector taking ones and Text for :contains.
type PseudoClass struct {
	Kind PseudoKind
	Nth  Nth
	Args []Sel
	Text string
}

func (*TypeSelector) simple()      {}
func (*ClassSelector) simple()     {}
func (*IDSelector) simple()        {}
func (*AttributeSelector) simple() {}
func (*PseudoClass) simple()       {}

func (t *TypeSelector) String() string      { return t.Name }
func (c *ClassSelector) String() string     { return "." + c.Name }
func (i *IDSelector) String() string        { return "#" + i.ID }
func (a *AttributeSelector) String() string {
	if a.Op == AttrExists {
		return "[" + a.Name + "]"
	}
	s := "[" + a.Name + a.Op.String() + strconv.Quote(a.Value)
	if a.FoldCase {
		s += " i"
	}
	return s + "]"
}

func (p *PseudoClass) String() string {
	name := ":" + p.Kind.String()
	switch p.Kind {
	case PseudoNthChild, PseudoNthLastChild, PseudoNthOfType, PseudoNthLastOfType:
		return name + "(" + p.Nth.String() + ")"
	case PseudoContains, PseudoContainsOwn:
		return name + "(" + strconv.Quote(p.Text) + ")"
	case PseudoNot, PseudoIs, PseudoWhere, PseudoHas:
		args := make([]string, len(p.Args))
		for i, a := range p.Args {
			args[i] = a.String()
		}
		return name + "(" + strings.Join(args, ", ") + ")"
	}
	return name
}

func (t *TypeSelector) Specificity() Specificity {
	if t.Name == "*" {
		return Specificity{}
	}
	return Specificity{0, 0, 1}
}

func (*ClassSelector) Specificity() Specificity     { return Specificity{0, 1, 0} }
func (*IDSelector) Specificity() Specificity        { return Specificity{1, 0, 0} }
func (*AttributeSelector) Specificity() Specificity { return Specificity{0, 1, 0} }

// Specificity of :is, :not and :has is that of their most specific argument;
// :where counts for nothing.
func (p *PseudoClass) Specificity() Specificity {
	switch p.Kind {
	case PseudoWhere:
		return Specificity{}
	case PseudoNot, PseudoIs, PseudoHas:
		var max Specificity
		for _, a := range p.Args {
			if s := a.Specificity(); max.Less(s) {
				max = s
			}
		}
		return max
	}
	return Specificity{0, 1, 0}
}

// Specificity counts ids, classes and types, compared in that order.
type Specificity [3]int

// Less reports whether s is less specific than o.
func (s Specificity) Less(o Specificity) bool {
	for i := range s {
		if s[i] != o[i] {
			return s[i] < o[i]
		}
	}
	return false
}

// Add sums two specificities.
func (s Specificity) Add(o Specificity) Specificity {
	return Specificity{s[0] + o[0], s[1] + o[1], s[2] + o[2]}
}

func (s Specificity) String() string {
	return strconv.Itoa(s[0]) + "," + strconv.Itoa(s[1]) + "," + strconv.Itoa(s[2])
}
