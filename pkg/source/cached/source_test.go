package cached

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bornholm/solite-docs/pkg/source/local"
	"github.com/bornholm/solite-docs/pkg/source/testsuite"
	"github.com/pkg/errors"
)

func TestSource(t *testing.T) {
	testsuite.TestSource(t, Type, map[string]any{
		"ttl": "1m",
		"backend": map[string]any{
			"type": local.Type,
			"options": map[string]any{
				"dir": t.TempDir(),
			},
		},
	})
}

func TestSourceExpiration(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	src := NewSource(local.NewSource(dir), time.Minute)

	now := time.Now()
	src.now = func() time.Time { return now }

	if _, err := src.Stat(ctx, "late.md"); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got '%v'", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "late.md"), []byte("# Late\n"), 0o644); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if _, err := src.Stat(ctx, "late.md"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected cached fs.ErrNotExist, got '%v'", err)
	}

	now = now.Add(2 * time.Minute)

	if _, err := src.Stat(ctx, "late.md"); err != nil {
		t.Errorf("expected expired entry to be refreshed, got '%+v'", err)
	}
}
