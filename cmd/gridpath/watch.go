package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

func newWatchCmd(a *app) *cobra.Command {
	var flags findFlags
	cmd := &cobra.Command{
		Use:   "watch <scenario.yaml>",
		Short: "Rerun find whenever the scenario file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.watch(cmd.Context(), cmd.OutOrStdout(), args[0], flags)
		},
	}
	flags.register(cmd)
	return cmd
}

// watch runs find once, then again each time path settles after a write.
// It returns when ctx is cancelled.
func (a *app) watch(ctx context.Context, out io.Writer, path string, flags findFlags) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Editors often replace the file, so watch its directory.
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	run := func() {
		if err := a.find(ctx, out, path, flags); err != nil {
			a.logger.Warn("scenario run failed",
				slog.String("path", path),
				slog.String("error", err.Error()),
			)
		}
	}
	run()

	debounce := time.NewTimer(time.Hour)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			a.logger.Debug("scenario changed", slog.String("path", event.Name), slog.String("op", event.Op.String()))
			debounce.Reset(a.cfg.Debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn("scenario watcher error", slog.String("error", err.Error()))
		case <-debounce.C:
			fmt.Fprintf(out, "\n%s\n", time.Now().Format(time.TimeOnly))
			run()
		}
	}
}
