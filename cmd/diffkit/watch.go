package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [flags] ORIGINAL FINAL",
		Short: "Show the differences between two files whenever one of them changes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.watch(cmd.Context(), args[0], args[1])
		},
	}
}

// watch renders the diff between x and y and renders it again after every change to one of the
// files until ctx is done or the user presses Ctrl-C.
func (a *app) watch(ctx context.Context, x, y string) error {
	update := func() {
		out, _, err := a.diffFiles(x, y)
		if err != nil {
			a.log.Error("failed to compare files", "err", err)
			return
		}
		fmt.Fprint(a.stdout, out)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %v", err)
	}
	defer watcher.Close()

	files := make(map[string]bool)
	for _, name := range []string{x, y} {
		abs, err := filepath.Abs(name)
		if err != nil {
			return fmt.Errorf("resolving %s: %v", name, err)
		}
		files[abs] = true
		// Watch the directory, editors often replace a file instead of writing to it.
		dir := filepath.Dir(abs)
		if slices.Contains(watcher.WatchList(), dir) {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %v", dir, err)
		}
	}

	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, os.Interrupt)
	defer signal.Stop(sigint)

	update()
	a.log.Info("Watching for changes, press Ctrl-C to stop", "files", []string{x, y})
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Chmod) || !files[filepath.Clean(event.Name)] {
				continue
			}
			start := time.Now()
			update()
			a.log.Debug("diff updated", "file", event.Name, "op", event.Op, "duration", time.Since(start))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watching files: %v", err)
		case <-sigint:
			fmt.Fprint(a.stderr, "\r")
			a.log.Info("Received Ctrl-C, shutting down")
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}
