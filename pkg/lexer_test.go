package quill

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.quill.dev/internal/test"
)

// stripLocations drops locations so token streams can be compared by type
// and value only.
func stripLocations(toks []Token) []Token {
	if toks == nil {
		return nil
	}

	out := make([]Token, len(toks))
	for i, t := range toks {
		out[i] = Token{Typ: t.Typ, Value: t.Value}
	}

	return out
}

func TestLexer(t *testing.T) {
	cases := []struct {
		data   string
		fail   bool
		expect []Token
	}{
		{
			"fn main () {}",
			false,
			[]Token{
				{TokenFunc, "fn", nil},
				{TokenIdentifier, "main", nil},
				{TokenOpenParentheses, "(", nil},
				{TokenCloseParentheses, ")", nil},
				{TokenOpenCurly, "{", nil},
				{TokenCloseCurly, "}", nil},
				{TokenEOF, "", nil},
			},
		},
		{
			"\"hello\"",
			false,
			[]Token{
				{TokenString, "hello", nil},
				{TokenEOF, "", nil},
			},
		},
		{
			"\"\"",
			false,
			[]Token{
				{TokenString, "", nil},
				{TokenEOF, "", nil},
			},
		},
		{
			"\"spans\nlines and keeps  spaces\"",
			false,
			[]Token{
				{TokenString, "spans\nlines and keeps  spaces", nil},
				{TokenEOF, "", nil},
			},
		},
		{
			"\"a\xffb \u00fc\"",
			false,
			[]Token{
				{TokenString, "a\xffb \u00fc", nil},
				{TokenEOF, "", nil},
			},
		},
		{
			"x1 = 42",
			false,
			[]Token{
				{TokenIdentifier, "x1", nil},
				{TokenAssign, "=", nil},
				{TokenNumber, "42", nil},
				{TokenEOF, "", nil},
			},
		},
		{
			"_under_score9 print fn if else",
			false,
			[]Token{
				{TokenIdentifier, "_under_score9", nil},
				{TokenPrint, "print", nil},
				{TokenFunc, "fn", nil},
				{TokenIf, "if", nil},
				{TokenElse, "else", nil},
				{TokenEOF, "", nil},
			},
		},
		{
			"true false truex",
			false,
			[]Token{
				{TokenBoolean, "true", nil},
				{TokenBoolean, "false", nil},
				{TokenIdentifier, "truex", nil},
				{TokenEOF, "", nil},
			},
		},
		{
			"== != <= >= < > = + - * /",
			false,
			[]Token{
				{TokenEqual, "==", nil},
				{TokenNotEqual, "!=", nil},
				{TokenLessEqual, "<=", nil},
				{TokenGreaterEqual, ">=", nil},
				{TokenLess, "<", nil},
				{TokenGreater, ">", nil},
				{TokenAssign, "=", nil},
				{TokenPlus, "+", nil},
				{TokenMinus, "-", nil},
				{TokenMulti, "*", nil},
				{TokenDiv, "/", nil},
				{TokenEOF, "", nil},
			},
		},
		{
			"a<=b==c",
			false,
			[]Token{
				{TokenIdentifier, "a", nil},
				{TokenLessEqual, "<=", nil},
				{TokenIdentifier, "b", nil},
				{TokenEqual, "==", nil},
				{TokenIdentifier, "c", nil},
				{TokenEOF, "", nil},
			},
		},
		{
			"-5",
			false,
			[]Token{
				{TokenMinus, "-", nil},
				{TokenNumber, "5", nil},
				{TokenEOF, "", nil},
			},
		},
		{
			"[a, b].length()",
			false,
			[]Token{
				{TokenOpenBracket, "[", nil},
				{TokenIdentifier, "a", nil},
				{TokenComma, ",", nil},
				{TokenIdentifier, "b", nil},
				{TokenCloseBracket, "]", nil},
				{TokenDot, ".", nil},
				{TokenIdentifier, "length", nil},
				{TokenOpenParentheses, "(", nil},
				{TokenCloseParentheses, ")", nil},
				{TokenEOF, "", nil},
			},
		},
		{
			"",
			false,
			[]Token{
				{TokenEOF, "", nil},
			},
		},
		{
			" \t\r\n  ",
			false,
			[]Token{
				{TokenEOF, "", nil},
			},
		},
		{
			"\"abc",
			true,
			nil,
		},
		{
			"!",
			true,
			nil,
		},
		{
			"a ! b",
			true,
			nil,
		},
		{
			"@",
			true,
			nil,
		},
		{
			"únicode",
			true,
			nil,
		},
		{
			"99999999999999999999",
			true,
			nil,
		},
		{
			"x \xff",
			true,
			nil,
		},
	}

	for _, c := range cases {
		toks, err := Tokenize(c.data)
		if c.fail {
			assert.Error(t, err, c.data)

			var lexErr *LexError
			assert.True(t, errors.As(err, &lexErr), c.data)
		} else {
			assert.NoError(t, err, c.data)
		}

		assert.Equal(t, c.expect, stripLocations(toks), c.data)
	}
}

func TestLexerErrors(t *testing.T) {
	cases := []struct {
		data   string
		char   rune
		line   int
		column int
		offset int
		msg    string
	}{
		{"x = \"abc", '"', 1, 5, 4, "unterminated string literal"},
		{"a\n  @", '@', 2, 3, 4, "unexpected character '@'"},
		{"a != b\n!c", '!', 2, 1, 7, "expected '=' after '!'"},
		{"é", 'é', 1, 1, 0, "unexpected character 'é'"},
		{"x;", ';', 1, 2, 1, "unexpected character ';'"},
		{"x \xff", utf8.RuneError, 1, 3, 2, "invalid UTF-8 byte '\\xff'"},
		{"\"\xff\" \xfe", utf8.RuneError, 1, 5, 4, "invalid UTF-8 byte '\\xfe'"},
	}

	for _, c := range cases {
		toks, err := NewLexer("main.ql", c.data).Run()
		require.Error(t, err, c.data)
		assert.Nil(t, toks)

		var lexErr *LexError
		require.True(t, errors.As(err, &lexErr), c.data)
		assert.Equal(t, c.char, lexErr.Char, c.data)
		assert.Equal(t, c.msg, lexErr.Msg, c.data)
		assert.Equal(t, &Location{Filename: "main.ql", Offset: c.offset, Line: c.line, Column: c.column}, lexErr.Loc, c.data)
		assert.True(t, strings.HasPrefix(err.Error(), "main.ql:"), err.Error())
	}
}

func TestLexerLocations(t *testing.T) {
	toks, err := NewLexer("loc.ql", "fn f() {\n\tprint \"ü\" + x\n}").Run()
	require.NoError(t, err)

	expect := []Location{
		{"loc.ql", 0, 1, 1},   // fn
		{"loc.ql", 3, 1, 4},   // f
		{"loc.ql", 4, 1, 5},   // (
		{"loc.ql", 5, 1, 6},   // )
		{"loc.ql", 7, 1, 8},   // {
		{"loc.ql", 10, 2, 2},  // print
		{"loc.ql", 16, 2, 8},  // "ü"
		{"loc.ql", 21, 2, 12}, // +
		{"loc.ql", 23, 2, 14}, // x
		{"loc.ql", 25, 3, 1},  // }
		{"loc.ql", 26, 3, 2},  // EOF
	}

	require.Len(t, toks, len(expect))
	for i, tok := range toks {
		require.NotNil(t, tok.Loc, tok.String())
		assert.Equal(t, expect[i], *tok.Loc, tok.String())
	}
}

func TestLexerSingleEOF(t *testing.T) {
	for _, src := range []string{"", "x", "print \"a\"\n\n", test.GetRandomTokens(50)} {
		toks, err := Tokenize(src)
		require.NoError(t, err, src)
		require.NotEmpty(t, toks)

		eofs := 0
		for _, tok := range toks {
			if tok.Typ == TokenEOF {
				eofs++
			}
		}

		assert.Equal(t, 1, eofs, src)
		assert.Equal(t, TokenEOF, toks[len(toks)-1].Typ, src)
	}
}

func TestTokenValues(t *testing.T) {
	toks, err := Tokenize("9223372036854775807 007 true false")
	require.NoError(t, err)

	assert.Equal(t, int64(9223372036854775807), toks[0].Int())
	assert.Equal(t, int64(7), toks[1].Int())
	assert.True(t, toks[2].Bool())
	assert.False(t, toks[3].Bool())
	assert.Equal(t, int64(0), toks[2].Int())
}

func TestTokenString(t *testing.T) {
	assert.Equal(t, `identifier "x"`, Token{Typ: TokenIdentifier, Value: "x"}.String())
	assert.Equal(t, `string "hi"`, Token{Typ: TokenString, Value: "hi"}.String())
	assert.Equal(t, "number 12", Token{Typ: TokenNumber, Value: "12"}.String())
	assert.Equal(t, "'=='", Token{Typ: TokenEqual, Value: "=="}.String())
	assert.Equal(t, "end of input", Token{Typ: TokenEOF}.String())
	assert.Equal(t, "TokenType(999)", TokenType(999).String())
}

func TestFormatTokensRoundTrip(t *testing.T) {
	sources := []string{
		"fn add(a, b) { print a + b }",
		"x=1+2*3",
		"print \"a b  c\" != \"\"",
		"a<=b>=c<d>e==f!=g",
		"[1, 2].length().length()",
		"print \"a\xffb\"",
		test.GetRandomTokens(200),
	}

	for _, src := range sources {
		toks, err := Tokenize(src)
		require.NoError(t, err, src)

		again, err := Tokenize(FormatTokens(toks))
		require.NoError(t, err, src)
		assert.Equal(t, stripLocations(toks), stripLocations(again), src)
	}
}

func FuzzTokenizeRoundTrip(f *testing.F) {
	f.Add("fn add(a, b) { print a + b }")
	f.Add("x = \"str\" == y")
	f.Add("if a >= 1 { b = c.length() } else { print 0 }")
	f.Add(test.GetRandomTokens(20))

	f.Fuzz(func(t *testing.T, src string) {
		toks, err := Tokenize(src)
		if err != nil {
			return
		}

		again, err := Tokenize(FormatTokens(toks))
		require.NoError(t, err)
		assert.Equal(t, stripLocations(toks), stripLocations(again))
	})
}

// Use a package-level variable to avoid compiler optimisation
var benchResult []Token

func benchmarkLexer(size int, b *testing.B) {
	for n := 0; n < b.N; n++ {
		// Setup
		b.StopTimer()
		data := test.GetRandomTokens(size)

		var err error
		b.StartTimer()

		benchResult, err = Tokenize(data)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLexer100(b *testing.B) {
	benchmarkLexer(100, b)
}

func BenchmarkLexer1000(b *testing.B) {
	benchmarkLexer(1000, b)
}

func BenchmarkLexer10000(b *testing.B) {
	benchmarkLexer(10000, b)
}

func BenchmarkLexer100000(b *testing.B) {
	benchmarkLexer(100000, b)
}
