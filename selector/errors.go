package selector

import "fmt"

// SyntaxError reports malformed selector text. Pos is the offset in runes
// into the selector where the problem was found.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("selector syntax error at %d: %s", e.Pos, e.Msg)
}

func syntaxError(pos int, format string, args ...interface{}) error {
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
