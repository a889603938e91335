package test

import (
	"math/rand"
	"strings"
)

const validTokens = "fn;main;print;if;else;true;false;length;x_1;_tmp;(;);{;};[;];,;.;=;==;!=;<;<=;>;>=;+;-;*;/;\"this is a string\";\"this is a longer string containing a bunch of text: Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua.\";\"multi\nline\";\"\";0;123;9223372036854775807;\n;\t"

const validPrograms = `fn add(a, b) {
	print a + b
}
;x = 1 + 2 * 3
;if x >= 10 {
	print "big"
} else {
	print "small"
}
;print add(x, 2).length()
;total = (a - b) / (c * d)
;fn noop() {}
;if a == b { log("eq", a) }
;name = "quill"
`

// GetRandomTokens returns size lexically valid tokens separated by spaces.
// The result need not parse.
func GetRandomTokens(size int) string {
	return GetRandomTokensWithSep(size, " ")
}

func GetRandomTokensWithSep(size int, sep string) string {
	valid := strings.Split(validTokens, ";")

	var toks []string
	for len(toks) < size {
		toks = append(toks, valid[rand.Intn(len(valid))])
	}

	return strings.Join(toks, sep)
}

// GetRandomProgram returns a source text of size top-level items, each of
// which parses.
func GetRandomProgram(size int) string {
	valid := strings.Split(validPrograms, ";")

	var items []string
	for len(items) < size {
		items = append(items, valid[rand.Intn(len(valid))])
	}

	return strings.Join(items, "\n")
}
