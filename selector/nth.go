package selector

import (
	"strconv"
	"strings"
)

// Nth is the an+b argument of the nth-* pseudo-classes.
type Nth struct {
	A, B int
}

// Matches reports whether the 1-based index i is a+b for some n >= 0.
func (n Nth) Matches(i int) bool {
	if n.A == 0 {
		return i == n.B
	}
	d := i - n.B
	return d%n.A == 0 && d/n.A >= 0
}

func (n Nth) String() string {
	if n.A == 0 {
		return strconv.Itoa(n.B)
	}
	var a string
	switch n.A {
	case 1:
		a = "n"
	case -1:
		a = "-n"
	default:
		a = strconv.Itoa(n.A) + "n"
	}
	switch {
	case n.B > 0:
		return a + "+" + strconv.Itoa(n.B)
	case n.B < 0:
		return a + strconv.Itoa(n.B)
	}
	return a
}

// parseNth reads an+b notation. Whitespace may only follow the n, around
// the sign of b.
func parseNth(text string) (Nth, bool) {
	text = strings.ToLower(strings.TrimSpace(text))
	switch text {
	case "odd":
		return Nth{2, 1}, true
	case "even":
		return Nth{2, 0}, true
	case "":
		return Nth{}, false
	}
	i := strings.IndexByte(text, 'n')
	if i < 0 {
		if strings.ContainsAny(text, " \t\n\f") {
			return Nth{}, false
		}
		b, err := strconv.Atoi(text)
		return Nth{B: b}, err == nil
	}
	if strings.ContainsAny(text[:i], " \t\n\f") {
		return Nth{}, false
	}
	switch tail := strings.Fields(text[i+1:]); len(tail) {
	case 0, 1:
		text = text[:i+1] + strings.Join(tail, "")
	case 2:
		if tail[0] != "+" && tail[0] != "-" {
			return Nth{}, false
		}
		text = text[:i+1] + tail[0] + tail[1]
	default:
		return Nth{}, false
	}
	var n Nth
	switch a := text[:i]; a {
	case "", "+":
		n.A = 1
	case "-":
		n.A = -1
	default:
		v, err := strconv.Atoi(a)
		if err != nil {
			return Nth{}, false
		}
		n.A = v
	}
	rest := text[i+1:]
	if rest == "" {
		return n, true
	}
	if rest[0] != '+' && rest[0] != '-' || len(rest) == 1 || rest[1] == '+' || rest[1] == '-' {
		return Nth{}, false
	}
	b, err := strconv.Atoi(rest)
	if err != nil {
		return Nth{}, false
	}
	n.B = b
	return n, true
}
