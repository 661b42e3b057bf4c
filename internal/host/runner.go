package host

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/phobologic/iconsheet/internal/console"
)

// DefaultDebounce is how long the watcher waits for a path to go quiet.
const DefaultDebounce = 100 * time.Millisecond

// Runner is a minimal standalone host: it resolves the config, starts the
// build, and optionally turns filesystem notifications into plugin events.
type Runner struct {
	Plugins  []Plugin
	Config   *Config
	Log      *console.Logger
	Debounce time.Duration

	wg sync.WaitGroup
}

// Start delivers ConfigResolved to every plugin, then runs BuildStart for
// each in order. Every plugin runs even if an earlier one fails.
func (r *Runner) Start(ctx context.Context) error {
	if r.Config == nil {
		r.Config = &Config{}
	}
	for _, p := range r.Plugins {
		p.ConfigResolved(r.Config)
	}

	var errs []error
	for _, p := range r.Plugins {
		if err := p.BuildStart(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Dispatch delivers one file event: WatchChange to every plugin, and
// HandleHotUpdate as well when the file was modified in place.
func (r *Runner) Dispatch(ctx context.Context, path string, ev Event) {
	for _, p := range r.Plugins {
		if err := p.WatchChange(ctx, path, ev); err != nil {
			r.Log.Error("%s: %v", p.Name(), err)
		}
		if ev != Update {
			continue
		}
		if err := p.HandleHotUpdate(ctx, path); err != nil {
			r.Log.Error("%s: %v", p.Name(), err)
		}
	}
}

// Watch watches Config.Root recursively until ctx is done. Each path is
// dispatched once it has been quiet for the debounce interval. Directories
// moved into or out of the tree are reported as events for the files they
// hold.
func (r *Runner) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	root := "."
	if r.Config != nil && r.Config.Root != "" {
		root = r.Config.Root
	}
	root, err = filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolving watch root: %w", err)
	}

	t := newTree(w)
	if _, err := t.add(root); err != nil {
		return err
	}

	debounce := r.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	d := newDebouncer(ctx, debounce)

	defer r.wg.Wait()
	for {
		select {
		case <-ctx.Done():
			return nil

		case e, ok := <-w.Events:
			if !ok {
				return nil
			}
			ev, ok := translate(e.Op)
			if !ok {
				continue
			}
			changes, err := t.apply(e.Name, ev)
			if err != nil {
				r.Log.Warn("watching %s: %v", e.Name, err)
			}
			for _, c := range changes {
				d.queue(c.path, c.ev)
			}

		case key := <-d.ready:
			ev, ok := d.take(key)
			if !ok {
				continue
			}
			r.wg.Add(1)
			go func() {
				defer r.wg.Done()
				r.Log.Debug("%s %s", ev, key.path)
				r.Dispatch(ctx, key.path, ev)
			}()

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			r.Log.Warn("watcher: %v", err)
		}
	}
}

func translate(op fsnotify.Op) (Event, bool) {
	switch {
	case op.Has(fsnotify.Remove), op.Has(fsnotify.Rename):
		return Delete, true
	case op.Has(fsnotify.Create):
		return Create, true
	case op.Has(fsnotify.Write):
		return Update, true
	}
	return "", false
}

// merge folds a new event into the one already pending for a path. A file
// created and then written within the window is still a creation.
func merge(prev, next Event) Event {
	if prev == Create && next == Update {
		return Create
	}
	return next
}
