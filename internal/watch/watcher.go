package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bornholm/solite-docs/pkg/log"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

type ChangeFunc func(ctx context.Context) error

// Watcher calls a function once the watched paths stop changing.
type Watcher struct {
	paths    []string
	debounce time.Duration
	onChange ChangeFunc

	// Directories watched for all their entries, and files watched through their parent directory.
	dirs  map[string]struct{}
	files map[string]struct{}
}

// Watch blocks until ctx is canceled. Errors returned by the change function are logged.
func (w *Watcher) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.WithStack(err)
	}

	defer func() {
		if err := watcher.Close(); err != nil {
			slog.ErrorContext(ctx, "could not close watcher", log.Error(errors.WithStack(err)))
		}
	}()

	w.dirs = make(map[string]struct{})
	w.files = make(map[string]struct{})

	for _, p := range w.paths {
		if err := w.add(watcher, p); err != nil {
			return errors.Wrapf(err, "could not watch '%s'", p)
		}
	}

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}

			if isHidden(event.Name) || !w.watches(event.Name) {
				continue
			}

			slog.DebugContext(ctx, "change detected", slog.String("path", event.Name), slog.String("op", event.Op.String()))

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.add(watcher, event.Name); err != nil {
						slog.ErrorContext(ctx, "could not watch new directory", slog.String("path", event.Name), log.Error(errors.WithStack(err)))
					}
				}
			}

			timer.Reset(w.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			slog.ErrorContext(ctx, "watcher error", log.Error(errors.WithStack(err)))

		case <-timer.C:
			if err := w.onChange(ctx); err != nil {
				slog.ErrorContext(ctx, "could not handle change", log.Error(errors.WithStack(err)))
			}
		}
	}
}

// add watches p, and every directory below it when p is a directory.
func (w *Watcher) add(watcher *fsnotify.Watcher, p string) error {
	info, err := os.Stat(p)
	if err != nil {
		return errors.WithStack(err)
	}

	// A watch on the file itself is lost when a new file is renamed over it.
	if !info.IsDir() {
		w.files[filepath.Clean(p)] = struct{}{}
		return errors.WithStack(watcher.Add(filepath.Dir(p)))
	}

	err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.WithStack(err)
		}

		if !d.IsDir() {
			return nil
		}

		if path != p && isHidden(path) {
			return filepath.SkipDir
		}

		w.dirs[filepath.Clean(path)] = struct{}{}

		return errors.WithStack(watcher.Add(path))
	})

	return errors.WithStack(err)
}

// watches reports whether an event on name concerns one of the watched paths.
func (w *Watcher) watches(name string) bool {
	name = filepath.Clean(name)

	if _, exists := w.files[name]; exists {
		return true
	}

	if _, exists := w.dirs[filepath.Dir(name)]; exists {
		return true
	}

	_, exists := w.dirs[name]

	return exists
}

func isHidden(path string) bool {
	name := filepath.Base(path)
	return len(name) > 1 && strings.HasPrefix(name, ".")
}

type Options struct {
	Debounce time.Duration
}

type OptionFunc func(opts *Options)

func WithDebounce(debounce time.Duration) OptionFunc {
	return func(opts *Options) {
		opts.Debounce = debounce
	}
}

func NewWatcher(paths []string, onChange ChangeFunc, funcs ...OptionFunc) *Watcher {
	opts := &Options{
		Debounce: 300 * time.Millisecond,
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return &Watcher{
		paths:    paths,
		debounce: opts.Debounce,
		onChange: onChange,
	}
}
