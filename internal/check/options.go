package check

import (
	"context"

	"github.com/bornholm/solite-docs/pkg/source"
)

// RemoteResult is the outcome of fetching an external URL.
type RemoteResult struct {
	Status int
	Error  string
}

func (r RemoteResult) OK() bool {
	return r.Error == "" && r.Status > 0 && r.Status < 400
}

// Remote checks external URLs.
type Remote interface {
	CheckURL(ctx context.Context, url string) (RemoteResult, error)
}

// RecordFunc persists a finished report.
type RecordFunc func(ctx context.Context, report *Report) error

type Options struct {
	Source        source.Source
	BasePath      string
	Anchors       bool
	Orphans       bool
	FailOnWarning bool
	Remote        Remote
	Concurrency   int
	Rules         []Rule
	Record        RecordFunc
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		BasePath:    "/",
		Anchors:     true,
		Concurrency: 4,
		Rules:       []Rule{},
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

// WithSource enables page and anchor checks against the given documentation source.
func WithSource(src source.Source, basePath string) OptionFunc {
	return func(opts *Options) {
		opts.Source = src
		if basePath != "" {
			opts.BasePath = basePath
		}
	}
}

func WithAnchors(enabled bool) OptionFunc {
	return func(opts *Options) {
		opts.Anchors = enabled
	}
}

// WithOrphans reports source pages that no link of the site resolves to.
func WithOrphans(enabled bool) OptionFunc {
	return func(opts *Options) {
		opts.Orphans = enabled
	}
}

func WithFailOnWarning(enabled bool) OptionFunc {
	return func(opts *Options) {
		opts.FailOnWarning = enabled
	}
}

func WithRemote(remote Remote, concurrency int) OptionFunc {
	return func(opts *Options) {
		opts.Remote = remote
		if concurrency > 0 {
			opts.Concurrency = concurrency
		}
	}
}

func WithRules(rules ...Rule) OptionFunc {
	return func(opts *Options) {
		opts.Rules = rules
	}
}

func WithRecord(fn RecordFunc) OptionFunc {
	return func(opts *Options) {
		opts.Record = fn
	}
}
