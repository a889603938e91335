package quill

import "strings"

// FormatTokens renders tokens back to source text, one space between tokens.
// Lexing the result yields the same token types and values.
func FormatTokens(tokens []Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		if tok.Typ == TokenEOF {
			continue
		}

		if b.Len() > 0 {
			b.WriteByte(' ')
		}

		b.WriteString(tok.Text())
	}

	return b.String()
}
