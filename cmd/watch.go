package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Parse a script again every time it is written",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return a.runWatch(ctx, args[0])
		},
	}

	a.addFormatFlag(cmd)
	return cmd
}

// runWatch parses filename once, then again after each burst of writes,
// until ctx is done. Parse failures are reported and watching continues.
func (a *app) runWatch(ctx context.Context, filename string) error {
	if filename == stdinArg {
		return errors.New("cannot watch standard input")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating watcher")
	}
	defer w.Close()

	// Watch the directory so editors that replace the file are followed
	if err := w.Add(filepath.Dir(filename)); err != nil {
		return errors.Wrapf(err, "watching %s", filename)
	}

	a.reparse(filename)

	target := filepath.Clean(filename)
	debounce := a.cfg.Watch.Debounce.Duration

	var timer <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			a.log.Info("stopped watching", zap.String("file", filename))
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(ev.Name) != target || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}

			a.log.Debug("change", zap.String("file", ev.Name), zap.Stringer("op", ev.Op))
			timer = time.After(debounce)
		case <-timer:
			timer = nil
			a.reparse(filename)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}

			a.log.Warn("watch error", zap.Error(err))
		}
	}
}

func (a *app) reparse(filename string) {
	if err := a.runParse(filename); err != nil {
		a.printError(err)
		return
	}

	a.log.Info("parsed", zap.String("file", filename))
}
