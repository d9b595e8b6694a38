package page

import (
	"context"
	"sync"

	"github.com/bornholm/solite-docs/pkg/source"
	"github.com/pkg/errors"
)

// Loader memoizes pages resolved from links so that each file is read once.
type Loader struct {
	src      source.Source
	basePath string

	mu    sync.Mutex
	pages map[string]*loadResult
}

type loadResult struct {
	once sync.Once
	page *Page
	err  error
}

func (l *Loader) Source() source.Source {
	return l.src
}

func (l *Loader) BasePath() string {
	return l.basePath
}

// Resolve finds and loads the page an internal link points to.
func (l *Loader) Resolve(ctx context.Context, link string) (*Page, error) {
	name, err := Find(ctx, l.src, l.basePath, link)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return l.Load(ctx, name)
}

func (l *Loader) Load(ctx context.Context, name string) (*Page, error) {
	name = source.Clean(name)

	l.mu.Lock()
	result, exists := l.pages[name]
	if !exists {
		result = &loadResult{}
		l.pages[name] = result
	}
	l.mu.Unlock()

	result.once.Do(func() {
		result.page, result.err = Load(ctx, l.src, name)
	})

	if result.err != nil {
		return nil, errors.WithStack(result.err)
	}

	return result.page, nil
}

func NewLoader(src source.Source, basePath string) *Loader {
	return &Loader{
		src:      src,
		basePath: basePath,
		pages:    make(map[string]*loadResult),
	}
}
