package quill

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// Frontend runs the tokenize-then-parse pipeline over files, readers and
// strings. Lex and parse failures are returned as *LexError and *ParseError.
type Frontend struct{}

func NewFrontend() *Frontend {
	return &Frontend{}
}

func (f *Frontend) ParseFile(filename string) (*Program, error) {
	src, err := readFile(filename)
	if err != nil {
		return nil, err
	}

	return f.ParseString(filename, src)
}

func (f *Frontend) ParseReader(name string, reader io.Reader) (*Program, error) {
	src, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", name)
	}

	return f.ParseString(name, string(src))
}

func (f *Frontend) ParseString(name, src string) (*Program, error) {
	tokens, err := NewLexer(name, src).Run()
	if err != nil {
		return nil, err
	}

	return NewParser(tokens).Run()
}

func (f *Frontend) TokenizeFile(filename string) ([]Token, error) {
	src, err := readFile(filename)
	if err != nil {
		return nil, err
	}

	return NewLexer(filename, src).Run()
}

func (f *Frontend) TokenizeReader(name string, reader io.Reader) ([]Token, error) {
	src, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", name)
	}

	return NewLexer(name, string(src)).Run()
}

func readFile(filename string) (string, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return "", errors.Wrapf(err, "reading source file %s", filename)
	}

	return string(src), nil
}
