package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"go.quill.dev/internal/dump"
	"go.quill.dev/pkg"
)

// A FILE argument of "-" reads the script from standard input.
const (
	stdinArg  = "-"
	stdinName = "<stdin>"
)

func (a *app) tokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens FILE|-",
		Short: "Print the tokens of a script, one per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTokens(args[0])
		},
	}
}

func (a *app) parseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse FILE|-",
		Short: "Parse a script and print its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runParse(args[0])
		},
	}

	a.addFormatFlag(cmd)
	return cmd
}

func (a *app) addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&a.format, "format", "f", "pretty", "output format: pretty, yaml or sexpr")
}

func (a *app) runTokens(filename string) error {
	toks, err := a.tokenize(filename)
	if err != nil {
		return err
	}

	a.log.Debug("tokenized", zap.String("file", filename), zap.Int("tokens", len(toks)))

	w := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	for _, tok := range toks {
		fmt.Fprintf(w, "%d:%d\t%s\t%s\n", tok.Loc.Line, tok.Loc.Column, tok.Typ, tok.Text())
	}

	return w.Flush()
}

func (a *app) runParse(filename string) error {
	prog, err := a.parse(filename)
	if err != nil {
		return err
	}

	a.log.Debug("parsed",
		zap.String("file", filename),
		zap.Int("functions", len(prog.Functions)),
		zap.Int("statements", len(prog.Statements)),
		zap.Stringer("nodes", dump.Count(prog)),
	)

	return dump.Write(a.stdout, prog, a.outputFormat())
}

func (a *app) tokenize(filename string) ([]quill.Token, error) {
	if filename == stdinArg {
		return a.frontend.TokenizeReader(stdinName, a.stdin)
	}

	return a.frontend.TokenizeFile(filename)
}

func (a *app) parse(filename string) (*quill.Program, error) {
	if filename == stdinArg {
		return a.frontend.ParseReader(stdinName, a.stdin)
	}

	return a.frontend.ParseFile(filename)
}
