package batch

import (
	"context"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
)

// SourceExt is the file extension the watcher reacts to.
const SourceExt = ".pkt"

// debounceWindow coalesces bursts of filesystem events, e.g. an editor
// writing and renaming on save, into one recompilation.
const debounceWindow = 200 * time.Millisecond

// Watch recompiles sources in dir whenever they change, sending one
// Result per recompiled file. It blocks until ctx is canceled or the
// watcher fails. Results order within a burst is by path.
func (r *Runner) Watch(ctx context.Context, dir string, results chan<- Result) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return err
	}

	pending := make(map[string]struct{})
	timer := time.NewTimer(debounceWindow)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if filepath.Ext(ev.Name) != SourceExt {
				continue
			}
			pending[ev.Name] = struct{}{}
			timer.Reset(debounceWindow)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return err
		case <-timer.C:
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			clear(pending)
			for _, p := range paths {
				select {
				case results <- r.compile(p):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
	}
}
