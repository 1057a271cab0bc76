package main

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settle is how long a burst of events for one save is collected.
const settle = 50 * time.Millisecond

// watchFiles calls onChange with the changed paths until ctx is done.
// Directories are watched rather than the files themselves so that
// editors replacing a file by rename are seen.
func watchFiles(ctx context.Context, paths []string, onChange func([]string)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer w.Close()

	byName := map[string]string{}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		byName[abs] = p
		dir := filepath.Dir(abs)
		if slices.Contains(w.WatchList(), dir) {
			continue
		}
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %q: %w", dir, err)
		}
	}

	changes := make(chan string)
	go func() {
		for {
			select {
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				p, ok := byName[filepath.Clean(event.Name)]
				if !ok {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				select {
				case changes <- p:
				case <-ctx.Done():
					return
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				theLog.Error("watch", "error", err)
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case p := <-changes:
			changed := []string{p}
			timer := time.NewTimer(settle)
		collect:
			for {
				select {
				case p := <-changes:
					if !slices.Contains(changed, p) {
						changed = append(changed, p)
					}
				case <-timer.C:
					break collect
				case <-ctx.Done():
					timer.Stop()
					return nil
				}
			}
			onChange(changed)
		}
	}
}
