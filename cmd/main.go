package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"go.quill.dev/internal/config"
	"go.quill.dev/internal/dump"
	"go.quill.dev/pkg"
)

// app carries what every command needs once flags and config are resolved.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	cfgFile string
	verbose bool
	noColor bool
	format  string

	cfg      *config.Config
	log      *zap.Logger
	frontend *quill.Frontend
}

func main() {
	a := &app{
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		frontend: quill.NewFrontend(),
	}

	if err := a.rootCmd().Execute(); err != nil {
		a.printError(err)
		os.Exit(1)
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "quill",
		Short:         "Tokenize and parse quill scripts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "TOML config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable coloured diagnostics")

	root.AddCommand(a.tokensCmd(), a.parseCmd(), a.watchCmd())
	return root
}

// setup loads the config and applies flag overrides.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("format") {
		cfg.Output.Format = a.format
	}

	if a.verbose {
		cfg.Log.Level = "debug"
	}

	if a.noColor {
		cfg.Output.Color = false
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cfg.Log.Level, a.stderr)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logger
	return nil
}

func (a *app) printError(err error) {
	c := color.New(color.FgRed, color.Bold)
	if a.colorErrors() {
		c.EnableColor()
	} else {
		c.DisableColor()
	}

	var (
		lexErr   *quill.LexError
		parseErr *quill.ParseError
	)

	switch {
	case errors.As(err, &lexErr):
		fmt.Fprintf(a.stderr, "%s %s\n", c.Sprint("syntax error:"), lexErr)
	case errors.As(err, &parseErr):
		fmt.Fprintf(a.stderr, "%s %s\n", c.Sprint("parse error:"), parseErr)
	default:
		fmt.Fprintf(a.stderr, "%s %s\n", c.Sprint("error:"), err)
	}
}

// colorErrors reports whether diagnostics may carry ANSI colours: the config
// allows it and stderr is a terminal.
func (a *app) colorErrors() bool {
	if a.noColor || (a.cfg != nil && !a.cfg.Output.Color) {
		return false
	}

	f, ok := a.stderr.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (a *app) outputFormat() dump.Format {
	f, err := dump.ParseFormat(a.cfg.Output.Format)
	if err != nil {
		// Validate has already accepted the format
		panic(err)
	}

	return f
}
