package source

import (
	"slices"
	"sync"

	"github.com/pkg/errors"
)

type Type string

type Factory func(options any) (Source, error)

var ErrNotRegistered = errors.New("source type not registered")

var (
	registryMutex sync.RWMutex
	registry      = map[Type]Factory{}
)

func Register(sourceType Type, factory Factory) {
	registryMutex.Lock()
	defer registryMutex.Unlock()

	registry[sourceType] = factory
}

func Registered() []Type {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	types := make([]Type, 0, len(registry))
	for t := range registry {
		types = append(types, t)
	}

	slices.Sort(types)

	return types
}

func New(sourceType Type, options any) (Source, error) {
	registryMutex.RLock()
	factory, exists := registry[sourceType]
	registryMutex.RUnlock()

	if !exists {
		return nil, errors.Wrapf(ErrNotRegistered, "could not find source type '%s'", sourceType)
	}

	src, err := factory(options)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return src, nil
}
