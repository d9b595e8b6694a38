package local

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bornholm/solite-docs/pkg/source"
	"github.com/pkg/errors"
)

type Source struct {
	dir string
}

// Stat implements source.Source.
func (s *Source) Stat(ctx context.Context, name string) (fs.FileInfo, error) {
	info, err := os.Stat(s.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fs.ErrNotExist
		}

		return nil, errors.WithStack(err)
	}

	return info, nil
}

// ReadFile implements source.Source.
func (s *Source) ReadFile(ctx context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fs.ErrNotExist
		}

		return nil, errors.WithStack(err)
	}

	return data, nil
}

// Walk implements source.Source.
func (s *Source) Walk(ctx context.Context, fn source.WalkFunc) error {
	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if path != s.dir && isHidden(d.Name()) {
				return filepath.SkipDir
			}

			return nil
		}

		if isHidden(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(s.dir, path)
		if err != nil {
			return err
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		return fn(filepath.ToSlash(rel), info)
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// WriteFile implements source.Writable.
func (s *Source) WriteFile(ctx context.Context, name string, data []byte) error {
	path := s.path(name)

	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return errors.WithStack(err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fs.ErrExist
		}

		return errors.WithStack(err)
	}

	defer file.Close()

	if _, err := file.Write(data); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (s *Source) Dir() string {
	return s.dir
}

func (s *Source) path(name string) string {
	return filepath.Join(s.dir, filepath.FromSlash(source.Clean(name)))
}

func isHidden(name string) bool {
	return len(name) > 1 && name[0] == '.'
}

func NewSource(dir string) *Source {
	return &Source{dir: dir}
}

var (
	_ source.Source   = &Source{}
	_ source.Writable = &Source{}
)
