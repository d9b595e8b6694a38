// Package source abstracts the documentation source tree the site links point into.
package source

import (
	"context"
	"io/fs"
	"path"
	"strings"

	"github.com/pkg/errors"
)

var ErrReadOnly = errors.New("source is read-only")

// Source gives read access to documentation files. Names are slash-separated
// and relative to the documentation root ("guide/intro.md").
type Source interface {
	Stat(ctx context.Context, name string) (fs.FileInfo, error)
	ReadFile(ctx context.Context, name string) ([]byte, error)
	Walk(ctx context.Context, fn WalkFunc) error
}

// WalkFunc is called for every regular file of a source.
type WalkFunc func(name string, info fs.FileInfo) error

// Writable is implemented by sources that can create files.
type Writable interface {
	WriteFile(ctx context.Context, name string, data []byte) error
}

// Clean normalizes a file name to the form used by sources.
func Clean(name string) string {
	name = path.Clean("/" + strings.ReplaceAll(name, "\\", "/"))
	return strings.TrimPrefix(name, "/")
}
