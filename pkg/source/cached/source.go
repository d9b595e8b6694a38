package cached

import (
	"context"
	"io/fs"
	"sync"
	"time"

	"github.com/bornholm/solite-docs/pkg/source"
	"github.com/pkg/errors"
)

// Source is a read-through cache in front of a slower source.
// Missing files are cached too, until the entry expires.
type Source struct {
	backend source.Source
	ttl     time.Duration

	stats sync.Map // map[string]*entry[fs.FileInfo]
	files sync.Map // map[string]*entry[[]byte]

	now func() time.Time
}

type entry[T any] struct {
	value     T
	err       error
	expiresAt time.Time
}

// Stat implements source.Source.
func (s *Source) Stat(ctx context.Context, name string) (fs.FileInfo, error) {
	name = source.Clean(name)

	return load(s, &s.stats, name, func() (fs.FileInfo, error) {
		return s.backend.Stat(ctx, name)
	})
}

// ReadFile implements source.Source.
func (s *Source) ReadFile(ctx context.Context, name string) ([]byte, error) {
	name = source.Clean(name)

	return load(s, &s.files, name, func() ([]byte, error) {
		return s.backend.ReadFile(ctx, name)
	})
}

// Walk implements source.Source.
func (s *Source) Walk(ctx context.Context, fn source.WalkFunc) error {
	return errors.WithStack(s.backend.Walk(ctx, fn))
}

// WriteFile implements source.Writable.
func (s *Source) WriteFile(ctx context.Context, name string, data []byte) error {
	writable, ok := s.backend.(source.Writable)
	if !ok {
		return errors.Wrapf(source.ErrReadOnly, "backend source '%T' is not writable", s.backend)
	}

	name = source.Clean(name)

	if err := writable.WriteFile(ctx, name, data); err != nil {
		return err
	}

	s.Invalidate(name)

	return nil
}

func (s *Source) Backend() source.Source {
	return s.backend
}

// Invalidate drops the cached entries of the given names, or every entry when none is given.
func (s *Source) Invalidate(names ...string) {
	if len(names) == 0 {
		s.stats.Clear()
		s.files.Clear()
		return
	}

	for _, n := range names {
		n = source.Clean(n)
		s.stats.Delete(n)
		s.files.Delete(n)
	}
}

func load[T any](s *Source, cache *sync.Map, name string, fetch func() (T, error)) (T, error) {
	now := s.now()

	if raw, exists := cache.Load(name); exists {
		e := raw.(*entry[T])
		if now.Before(e.expiresAt) {
			return e.value, e.err
		}
	}

	value, err := fetch()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		// Transient failures are not cached
		return value, err
	}

	if errors.Is(err, fs.ErrNotExist) {
		err = fs.ErrNotExist
	}

	cache.Store(name, &entry[T]{
		value:     value,
		err:       err,
		expiresAt: now.Add(s.ttl),
	})

	return value, err
}

func NewSource(backend source.Source, ttl time.Duration) *Source {
	return &Source{
		backend: backend,
		ttl:     ttl,
		now:     time.Now,
	}
}

var (
	_ source.Source   = &Source{}
	_ source.Writable = &Source{}
)
