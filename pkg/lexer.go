package quill

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type TokenType uint64
type stateFunc func(l *Lexer) stateFunc

const (
	EOF rune = -1

	TokenEOF TokenType = iota
	TokenIdentifier
	TokenNumber
	TokenString
	TokenBoolean

	TokenFunc
	TokenPrint
	TokenIf
	TokenElse

	TokenOpenParentheses
	TokenCloseParentheses
	TokenOpenCurly
	TokenCloseCurly
	TokenOpenBracket
	TokenCloseBracket
	TokenComma
	TokenDot

	TokenAssign
	TokenEqual
	TokenNotEqual
	TokenLess
	TokenLessEqual
	TokenGreater
	TokenGreaterEqual
	TokenPlus
	TokenMinus
	TokenMulti
	TokenDiv
)

var keywordTable = map[string]TokenType{
	"fn":    TokenFunc,
	"print": TokenPrint,
	"if":    TokenIf,
	"else":  TokenElse,
	"true":  TokenBoolean,
	"false": TokenBoolean,
}

var operatorTable = map[string]TokenType{
	"(":  TokenOpenParentheses,
	")":  TokenCloseParentheses,
	"{":  TokenOpenCurly,
	"}":  TokenCloseCurly,
	"[":  TokenOpenBracket,
	"]":  TokenCloseBracket,
	",":  TokenComma,
	".":  TokenDot,
	"=":  TokenAssign,
	"==": TokenEqual,
	"!=": TokenNotEqual,
	"<":  TokenLess,
	"<=": TokenLessEqual,
	">":  TokenGreater,
	">=": TokenGreaterEqual,
	"+":  TokenPlus,
	"-":  TokenMinus,
	"*":  TokenMulti,
	"/":  TokenDiv,
}

var tokenNames = map[TokenType]string{
	TokenEOF:              "end of input",
	TokenIdentifier:       "identifier",
	TokenNumber:           "number",
	TokenString:           "string",
	TokenBoolean:          "boolean",
	TokenFunc:             "'fn'",
	TokenPrint:            "'print'",
	TokenIf:               "'if'",
	TokenElse:             "'else'",
	TokenOpenParentheses:  "'('",
	TokenCloseParentheses: "')'",
	TokenOpenCurly:        "'{'",
	TokenCloseCurly:       "'}'",
	TokenOpenBracket:      "'['",
	TokenCloseBracket:     "']'",
	TokenComma:            "','",
	TokenDot:              "'.'",
	TokenAssign:           "'='",
	TokenEqual:            "'=='",
	TokenNotEqual:         "'!='",
	TokenLess:             "'<'",
	TokenLessEqual:        "'<='",
	TokenGreater:          "'>'",
	TokenGreaterEqual:     "'>='",
	TokenPlus:             "'+'",
	TokenMinus:            "'-'",
	TokenMulti:            "'*'",
	TokenDiv:              "'/'",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}

	return fmt.Sprintf("TokenType(%d)", uint64(t))
}

type Token struct {
	Typ   TokenType
	Value string
	Loc   *Location
}

// String describes the token for diagnostics, e.g. `identifier "x"`.
func (t Token) String() string {
	switch t.Typ {
	case TokenIdentifier, TokenString:
		return fmt.Sprintf("%s %q", t.Typ, t.Value)
	case TokenNumber, TokenBoolean:
		return fmt.Sprintf("%s %s", t.Typ, t.Value)
	default:
		return t.Typ.String()
	}
}

// Text returns the token as it would appear in source.
func (t Token) Text() string {
	switch t.Typ {
	case TokenEOF:
		return ""
	case TokenString:
		return `"` + t.Value + `"`
	default:
		return t.Value
	}
}

// Int returns the value of a number token. It is zero for any other token.
func (t Token) Int() int64 {
	if t.Typ != TokenNumber {
		return 0
	}

	n, _ := strconv.ParseInt(t.Value, 10, 64)
	return n
}

// Bool returns the value of a boolean token.
func (t Token) Bool() bool {
	return t.Typ == TokenBoolean && t.Value == "true"
}

// Lexer scans a whole source text into tokens. A Lexer is single use.
type Lexer struct {
	filename string
	input    string

	pos  int // byte offset of the next rune
	line int
	col  int

	start  Location // where the token being scanned begins
	tokens []Token
	err    error
}

func NewLexer(filename, input string) *Lexer {
	return &Lexer{
		filename: filename,
		input:    input,
		line:     1,
		col:      1,
	}
}

// Tokenize scans source and returns its tokens, terminated by a single
// TokenEOF.
func Tokenize(source string) ([]Token, error) {
	return NewLexer("", source).Run()
}

func (l *Lexer) Run() ([]Token, error) {
	for state := defaultState; state != nil; {
		state = state(l)
	}

	if l.err != nil {
		return nil, l.err
	}

	return l.tokens, nil
}

func defaultState(l *Lexer) stateFunc {
	for {
		switch r := l.peek(); {
		case r == EOF:
			l.mark()
			l.emit(TokenEOF, "")
			return nil
		case unicode.IsSpace(r):
			l.next()
			continue
		case isDigit(r):
			return numberState
		case r == '"':
			return stringState
		case isIdentStart(r):
			return identifierState
		default:
			return operatorState
		}
	}
}

func numberState(l *Lexer) stateFunc {
	l.mark()

	var num strings.Builder
	for r := l.peek(); isDigit(r); r = l.peek() {
		num.WriteRune(l.next())
	}

	if _, err := strconv.ParseInt(num.String(), 10, 64); err != nil {
		return l.errorf(rune(num.String()[0]), "integer literal %s out of range", num.String())
	}

	return l.emit(TokenNumber, num.String())
}

func stringState(l *Lexer) stateFunc {
	l.mark()
	l.next() // Skip the leading double-quote

	for r := l.next(); r != '"'; r = l.next() {
		if r == EOF {
			return l.errorf('"', "unterminated string literal")
		}
	}

	// Sliced rather than rebuilt so invalid UTF-8 is kept byte for byte
	return l.emit(TokenString, l.input[l.start.Offset+1:l.pos-1])
}

func identifierState(l *Lexer) stateFunc {
	l.mark()

	var id strings.Builder
	for r := l.peek(); isIdentContinue(r); r = l.peek() {
		id.WriteRune(l.next())
	}

	if t, ok := keywordTable[id.String()]; ok {
		return l.emit(t, id.String())
	}

	return l.emit(TokenIdentifier, id.String())
}

func operatorState(l *Lexer) stateFunc {
	l.mark()

	r := l.next()
	if r == utf8.RuneError && l.pos-l.start.Offset == 1 {
		return l.errorf(r, "invalid UTF-8 byte '\\x%02x'", l.input[l.start.Offset])
	}

	if r == '=' || r == '!' || r == '<' || r == '>' { // Some operators can be two runes
		if l.peek() == '=' {
			l.next()
			op := string(r) + "="
			return l.emit(operatorTable[op], op)
		}
	}

	if r == '!' {
		return l.errorf(r, "expected '=' after '!'")
	}

	if tok, ok := operatorTable[string(r)]; ok {
		return l.emit(tok, string(r))
	}

	return l.errorf(r, "unexpected character %q", r)
}

func (l *Lexer) errorf(r rune, format string, args ...interface{}) stateFunc {
	loc := l.start
	l.err = &LexError{
		Loc:  &loc,
		Char: r,
		Msg:  fmt.Sprintf(format, args...),
	}

	return nil
}

func (l *Lexer) emit(t TokenType, val string) stateFunc {
	loc := l.start
	l.tokens = append(l.tokens, Token{
		Typ:   t,
		Value: val,
		Loc:   &loc,
	})

	return defaultState
}

// mark records the current position as the start of the next token.
func (l *Lexer) mark() {
	l.start = Location{
		Filename: l.filename,
		Offset:   l.pos,
		Line:     l.line,
		Column:   l.col,
	}
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.input) {
		return EOF
	}

	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return r
}

func (l *Lexer) next() rune {
	if l.pos >= len(l.input) {
		return EOF
	}

	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += size

	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}

	return r
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

func isIdentContinue(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}
