package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestWatcher(t *testing.T) {
	dir := t.TempDir()

	var changes atomic.Int32
	notified := make(chan struct{}, 10)

	watcher := NewWatcher([]string{dir}, func(ctx context.Context) error {
		changes.Add(1)
		notified <- struct{}{}
		return nil
	}, WithDebounce(100*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- watcher.Watch(ctx)
	}()

	// Give the watcher time to register its paths.
	time.Sleep(100 * time.Millisecond)

	for i := range 3 {
		name := filepath.Join(dir, "page.md")
		if err := os.WriteFile(name, []byte{byte('a' + i)}, 0o644); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}
	}

	select {
	case <-notified:
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for change notification")
	}

	if e, g := int32(1), changes.Load(); e != g {
		t.Errorf("changes: expected '%v', got '%v'", e, g)
	}

	subdir := filepath.Join(dir, "cli")
	if err := os.Mkdir(subdir, 0o755); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	select {
	case <-notified:
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for directory notification")
	}

	if err := os.WriteFile(filepath.Join(subdir, "run.md"), []byte("# run"), 0o644); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	select {
	case <-notified:
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for nested change notification")
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for watcher to stop")
	}
}

func TestWatcherFileRenamedOver(t *testing.T) {
	dir := t.TempDir()
	siteFile := filepath.Join(dir, "site.yml")

	if err := os.WriteFile(siteFile, []byte("title: Solite\n"), 0o644); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	notified := make(chan struct{}, 10)

	watcher := NewWatcher([]string{siteFile}, func(ctx context.Context) error {
		notified <- struct{}{}
		return nil
	}, WithDebounce(100*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := watcher.Watch(ctx); err != nil {
			t.Errorf("%+v", errors.WithStack(err))
		}
	}()

	time.Sleep(100 * time.Millisecond)

	save := func(content string) {
		tmp := filepath.Join(dir, ".site.yml.tmp")

		if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		if err := os.Rename(tmp, siteFile); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}
	}

	for idx, content := range []string{"title: Solite 1\n", "title: Solite 2\n"} {
		save(content)

		select {
		case <-notified:
		case <-time.After(5 * time.Second):
			t.Fatalf("timeout waiting for save #%d notification", idx+1)
		}
	}

	// Other files of the directory are ignored
	if err := os.WriteFile(filepath.Join(dir, "notes.md"), []byte("# Notes"), 0o644); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	select {
	case <-notified:
		t.Errorf("unexpected notification for an unwatched file")
	case <-time.After(500 * time.Millisecond):
	}
}
