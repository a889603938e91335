package quill

import "fmt"

// Location is a position in a source text. Offset is in bytes from the start
// of the input; Line and Column start at 1 and Column counts runes.
type Location struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (l *Location) String() string {
	if l == nil {
		return "<unknown>"
	}

	if l.Filename == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Column)
	}

	return fmt.Sprintf("%s:%d:%d", l.Filename, l.Line, l.Column)
}

// LexError reports the first character the lexer could not accept.
type LexError struct {
	Loc  *Location
	Char rune
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s: %s", e.Loc, e.Msg)
}

// ParseError reports a token that does not fit the grammar where it was found.
type ParseError struct {
	Loc      *Location
	Expected string
	Found    Token
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: expected %s, found %s", e.Loc, e.Expected, e.Found)
}
