package selector

import (
	"strconv"
	"strings"
)

// Selector is a compiled selector list. It is immutable and safe for
// concurrent use.
type Selector struct {
	source string
	alts   []Sel
}

// Compile parses a selector list. Malformed input fails with a *SyntaxError.
func Compile(s string) (*Selector, error) {
	if strings.TrimSpace(s) == "" {
		return nil, syntaxError(0, "empty selector")
	}
	toks, err := lex(s)
	if err != nil {
		return nil, err
	}
	p := &compiler{toks: toks}
	alts, err := p.list(false)
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tEOF {
		return nil, syntaxError(t.pos, "unexpected %s", describe(t))
	}
	return &Selector{source: s, alts: alts}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(s string) *Selector {
	sel, err := Compile(s)
	if err != nil {
		panic(err)
	}
	return sel
}

// Source returns the text the selector was compiled from.
func (s *Selector) Source() string { return s.source }

// Alternatives returns the comma separated parts of the list.
func (s *Selector) Alternatives() []Sel { return s.alts }

// String returns the selector in canonical form.
func (s *Selector) String() string {
	parts := make([]string, len(s.alts))
	for i, a := range s.alts {
		parts[i] = a.String()
	}
	return strings.Join(parts, ", ")
}

// Specificity is the highest specificity among the alternatives.
func (s *Selector) Specificity() Specificity {
	var max Specificity
	for _, a := range s.alts {
		if sp := a.Specificity(); max.Less(sp) {
			max = sp
		}
	}
	return max
}

type compiler struct {
	toks []token
	i    int
}

func (p *compiler) peek() token {
	return p.toks[p.i]
}

func (p *compiler) next() token {
	t := p.toks[p.i]
	if t.kind != tEOF {
		p.i++
	}
	return t
}

func (p *compiler) skipSpace() bool {
	skipped := false
	for p.peek().kind == tSpace {
		p.i++
		skipped = true
	}
	return skipped
}

func (p *compiler) isDelim(v string) bool {
	t := p.peek()
	return t.kind == tDelim && t.val == v
}

func describe(t token) string {
	if t.kind == tEOF {
		return "end of input"
	}
	return strconv.Quote(t.val)
}

// list reads comma separated complex selectors. Relative lists start each
// selector at an implicit scope element.
func (p *compiler) list(relative bool) ([]Sel, error) {
	var alts []Sel
	for {
		p.skipSpace()
		sel, err := p.complex(relative)
		if err != nil {
			return nil, err
		}
		alts = append(alts, sel)
		p.skipSpace()
		if !p.isDelim(",") {
			return alts, nil
		}
		p.next()
	}
}

func (p *compiler) combinator() (CombinatorKind, bool) {
	t := p.peek()
	if t.kind != tDelim {
		return Descendant, false
	}
	switch t.val {
	case ">":
		return Child, true
	case "+":
		return NextSibling, true
	case "~":
		return SubsequentSibling, true
	}
	return Descendant, false
}

func (p *compiler) complex(relative bool) (Sel, error) {
	var left Sel
	if relative {
		kind, ok := p.combinator()
		if ok {
			p.next()
			p.skipSpace()
		}
		right, err := p.requireCompound()
		if err != nil {
			return nil, err
		}
		left = &Combinator{Kind: kind, Left: scope{}, Right: right}
	} else {
		c, err := p.requireCompound()
		if err != nil {
			return nil, err
		}
		left = c
	}

	for {
		spaced := p.skipSpace()
		kind, explicit := p.combinator()
		if explicit {
			p.next()
			p.skipSpace()
		} else if !spaced {
			return left, nil
		}
		at := p.peek()
		right, err := p.compound()
		if err != nil {
			return nil, err
		}
		if right == nil {
			if explicit {
				return nil, syntaxError(at.pos, "expected selector after %q, found %s", kind.String(), describe(at))
			}
			return left, nil
		}
		left = &Combinator{Kind: kind, Left: left, Right: right}
	}
}

func (p *compiler) requireCompound() (*Compound, error) {
	at := p.peek()
	c, err := p.compound()
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, syntaxError(at.pos, "expected selector, found %s", describe(at))
	}
	return c, nil
}

// compound returns nil without consuming anything when the next token cannot
// start a compound selector.
func (p *compiler) compound() (*Compound, error) {
	var c Compound
	switch t := p.peek(); {
	case t.kind == tIdent:
		p.next()
		c.Simples = append(c.Simples, &TypeSelector{Name: t.val})
	case t.kind == tDelim && t.val == "*":
		p.next()
		c.Simples = append(c.Simples, &TypeSelector{Name: "*"})
	}
	for {
		t := p.peek()
		switch {
		case t.kind == tHash:
			p.next()
			if t.val == "" {
				return nil, syntaxError(t.pos, "expected id after '#'")
			}
			if !t.ident {
				return nil, syntaxError(t.pos, "invalid id selector %q", "#"+t.val)
			}
			c.Simples = append(c.Simples, &IDSelector{ID: t.val})
		case t.kind == tDelim && t.val == ".":
			p.next()
			name := p.next()
			if name.kind != tIdent {
				return nil, syntaxError(name.pos, "expected class name, found %s", describe(name))
			}
			c.Simples = append(c.Simples, &ClassSelector{Name: name.val})
		case t.kind == tDelim && t.val == "[":
			p.next()
			a, err := p.attribute(t)
			if err != nil {
				return nil, err
			}
			c.Simples = append(c.Simples, a)
		case t.kind == tDelim && t.val == ":":
			p.next()
			pc, err := p.pseudo()
			if err != nil {
				return nil, err
			}
			c.Simples = append(c.Simples, pc)
		case t.kind == tIdent || t.kind == tDelim && t.val == "*":
			return nil, syntaxError(t.pos, "type selector %s must come first in a compound", describe(t))
		case t.kind == tDelim && t.val == "|":
			return nil, syntaxError(t.pos, "namespace prefixes are not supported")
		case t.kind == tOther || t.kind == tFunction:
			return nil, syntaxError(t.pos, "unexpected %s", describe(t))
		default:
			if len(c.Simples) == 0 {
				return nil, nil
			}
			return &c, nil
		}
	}
}

// attribute reads the rest of an attribute selector after open.
func (p *compiler) attribute(open token) (*AttributeSelector, error) {
	p.skipSpace()
	name := p.next()
	if name.kind != tIdent {
		if name.kind == tEOF {
			return nil, syntaxError(name.pos, "unterminated attribute selector")
		}
		return nil, syntaxError(name.pos, "expected attribute name, found %s", describe(name))
	}
	a := &AttributeSelector{Name: name.val}
	p.skipSpace()
	if p.isDelim("]") {
		p.next()
		return a, nil
	}

	op := p.next()
	switch {
	case op.kind == tDelim && op.val == "=":
		a.Op = AttrEquals
	case op.kind == tMatch:
		a.Op = map[string]AttrOp{
			"~=": AttrIncludes,
			"|=": AttrDashMatch,
			"^=": AttrPrefix,
			"$=": AttrSuffix,
			"*=": AttrSubstring,
		}[op.val]
	case op.kind == tEOF:
		return nil, syntaxError(op.pos, "unterminated attribute selector")
	default:
		return nil, syntaxError(op.pos, "expected attribute operator, found %s", describe(op))
	}

	p.skipSpace()
	switch v := p.next(); v.kind {
	case tIdent, tString, tNumber, tDimension:
		a.Value = v.val
	case tEOF:
		return nil, syntaxError(v.pos, "unterminated attribute selector")
	default:
		return nil, syntaxError(v.pos, "expected attribute value, found %s", describe(v))
	}

	p.skipSpace()
	if t := p.peek(); t.kind == tIdent {
		switch strings.ToLower(t.val) {
		case "i":
			a.FoldCase = true
		case "s":
		default:
			return nil, syntaxError(t.pos, "unknown attribute flag %q", t.val)
		}
		p.next()
		p.skipSpace()
	}
	if end := p.next(); end.kind != tDelim || end.val != "]" {
		if end.kind == tEOF {
			return nil, syntaxError(end.pos, "unterminated attribute selector opened at %d", open.pos)
		}
		return nil, syntaxError(end.pos, "expected ']', found %s", describe(end))
	}
	return a, nil
}

// pseudo reads a pseudo-class after its colon.
func (p *compiler) pseudo() (*PseudoClass, error) {
	t := p.next()
	switch t.kind {
	case tDelim:
		if t.val == ":" {
			return nil, syntaxError(t.pos, "pseudo-elements are not supported")
		}
	case tIdent:
		kind, ok := pseudoNames[strings.ToLower(t.val)]
		if !ok {
			return nil, syntaxError(t.pos, "unknown pseudo-class %q", t.val)
		}
		if kind.functional() {
			return nil, syntaxError(t.pos, "pseudo-class %q needs an argument", t.val)
		}
		return &PseudoClass{Kind: kind}, nil
	case tFunction:
		kind, ok := pseudoNames[strings.ToLower(t.val)]
		if !ok {
			return nil, syntaxError(t.pos, "unknown pseudo-class %q", t.val)
		}
		if !kind.functional() {
			return nil, syntaxError(t.pos, "pseudo-class %q takes no argument", t.val)
		}
		return p.pseudoArgs(kind, t)
	}
	return nil, syntaxError(t.pos, "expected pseudo-class name, found %s", describe(t))
}

func (p *compiler) pseudoArgs(kind PseudoKind, fn token) (*PseudoClass, error) {
	pc := &PseudoClass{Kind: kind}
	p.skipSpace()
	switch kind {
	case PseudoNthChild, PseudoNthLastChild, PseudoNthOfType, PseudoNthLastOfType:
		start := p.peek()
		var sb strings.Builder
		for !p.isDelim(")") {
			t := p.next()
			switch t.kind {
			case tEOF:
				return nil, syntaxError(t.pos, "expected ')' to close %s", fn.val)
			case tSpace:
				sb.WriteByte(' ')
			case tIdent, tNumber, tDimension, tDelim:
				sb.WriteString(t.val)
			default:
				return nil, syntaxError(t.pos, "unexpected %s in %s", describe(t), fn.val)
			}
		}
		text := strings.TrimSpace(sb.String())
		nth, ok := parseNth(text)
		if !ok {
			return nil, syntaxError(start.pos, "invalid an+b expression %q", text)
		}
		pc.Nth = nth
	case PseudoContains, PseudoContainsOwn:
		t := p.next()
		if t.kind != tString && t.kind != tIdent {
			return nil, syntaxError(t.pos, "expected text argument, found %s", describe(t))
		}
		pc.Text = t.val
		p.skipSpace()
	default:
		args, err := p.list(kind == PseudoHas)
		if err != nil {
			return nil, err
		}
		pc.Args = args
	}
	if end := p.next(); end.kind != tDelim || end.val != ")" {
		return nil, syntaxError(end.pos, "expected ')' to close %s, found %s", fn.val, describe(end))
	}
	return pc, nil
}
