package remote

import (
	"context"
	"expvar"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/bornholm/solite-docs/internal/check"
	"github.com/bornholm/solite-docs/internal/ratelimit"
	"github.com/bornholm/solite-docs/internal/store"
	"github.com/bornholm/solite-docs/pkg/log"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// Stats counts cache hits, outgoing requests and transport failures of every checker.
// It is published as the "remote" expvar.
var Stats = expvar.NewMap("remote")

// Cache stores remote check results between runs.
type Cache interface {
	GetLinkResult(ctx context.Context, url string, maxAge time.Duration) (*store.LinkResult, error)
	SaveLinkResult(ctx context.Context, result *store.LinkResult) error
}

type Options struct {
	Client     *http.Client
	Timeout    time.Duration
	Rate       rate.Limit
	Burst      int
	UserAgent  string
	Cache      Cache
	TTL        time.Duration
	// FailureTTL bounds how long a transport error is reused from the cache.
	FailureTTL time.Duration
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Client:     http.DefaultClient,
		Timeout:    10 * time.Second,
		Rate:       1,
		Burst:      2,
		UserAgent:  "solite-docs",
		TTL:        24 * time.Hour,
		FailureTTL: 5 * time.Minute,
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

func WithClient(client *http.Client) OptionFunc {
	return func(opts *Options) {
		opts.Client = client
	}
}

func WithTimeout(timeout time.Duration) OptionFunc {
	return func(opts *Options) {
		opts.Timeout = timeout
	}
}

// WithRateLimit limits the requests sent to each host.
func WithRateLimit(r rate.Limit, burst int) OptionFunc {
	return func(opts *Options) {
		opts.Rate = r
		opts.Burst = burst
	}
}

func WithUserAgent(userAgent string) OptionFunc {
	return func(opts *Options) {
		opts.UserAgent = userAgent
	}
}

func WithCache(cache Cache, ttl time.Duration) OptionFunc {
	return func(opts *Options) {
		opts.Cache = cache
		opts.TTL = ttl
	}
}

func WithFailureTTL(ttl time.Duration) OptionFunc {
	return func(opts *Options) {
		opts.FailureTTL = ttl
	}
}

type Checker struct {
	opts    *Options
	limiter *ratelimit.RateLimiter
}

// CheckURL implements check.Remote.
func (c *Checker) CheckURL(ctx context.Context, rawURL string) (check.RemoteResult, error) {
	ctx = log.WithAttrs(ctx, log.ScrubbedURL("url", rawURL))

	if c.opts.Cache != nil {
		cached, err := c.opts.Cache.GetLinkResult(ctx, rawURL, c.opts.TTL)
		if err != nil {
			return check.RemoteResult{}, errors.WithStack(err)
		}

		if cached != nil && cached.Error != "" && time.Since(cached.CheckedAt) > c.opts.FailureTTL {
			cached = nil
		}

		if cached != nil {
			Stats.Add("cacheHits", 1)
			slog.DebugContext(ctx, "using cached link result", slog.Int("status", cached.Status))
			return check.RemoteResult{Status: cached.Status, Error: cached.Error}, nil
		}
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return check.RemoteResult{Error: err.Error()}, nil
	}

	if err := c.limiter.Wait(ctx, u.Host); err != nil {
		return check.RemoteResult{}, errors.WithStack(err)
	}

	result, err := c.fetch(ctx, u)
	if err != nil {
		return check.RemoteResult{}, errors.WithStack(err)
	}

	Stats.Add("requests", 1)
	if result.Error != "" {
		Stats.Add("failures", 1)
	}

	slog.DebugContext(ctx, "link checked", slog.Int("status", result.Status), slog.String("error", result.Error))

	if c.opts.Cache != nil {
		err := c.opts.Cache.SaveLinkResult(ctx, &store.LinkResult{
			URL:       rawURL,
			Status:    result.Status,
			Error:     result.Error,
			CheckedAt: time.Now().UTC(),
		})
		if err != nil {
			return check.RemoteResult{}, errors.WithStack(err)
		}
	}

	return result, nil
}

func (c *Checker) fetch(ctx context.Context, u *url.URL) (check.RemoteResult, error) {
	status, err := c.do(ctx, http.MethodHead, u)
	if err != nil {
		return c.failure(ctx, err)
	}

	if status != http.StatusMethodNotAllowed && status != http.StatusNotImplemented {
		return check.RemoteResult{Status: status}, nil
	}

	status, err = c.do(ctx, http.MethodGet, u)
	if err != nil {
		return c.failure(ctx, err)
	}

	return check.RemoteResult{Status: status}, nil
}

// failure turns a transport error into a result unless the run itself was canceled.
func (c *Checker) failure(ctx context.Context, err error) (check.RemoteResult, error) {
	if ctx.Err() != nil {
		return check.RemoteResult{}, errors.WithStack(ctx.Err())
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}

	return check.RemoteResult{Error: err.Error()}, nil
}

func (c *Checker) do(ctx context.Context, method string, u *url.URL) (int, error) {
	if c.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return 0, errors.WithStack(err)
	}

	req.Header.Set("User-Agent", c.opts.UserAgent)

	res, err := c.opts.Client.Do(req)
	if err != nil {
		return 0, errors.WithStack(err)
	}

	defer res.Body.Close()

	if _, err := io.Copy(io.Discard, io.LimitReader(res.Body, 64*1024)); err != nil {
		slog.DebugContext(ctx, "could not drain response body", log.Error(errors.WithStack(err)))
	}

	return res.StatusCode, nil
}

func New(funcs ...OptionFunc) *Checker {
	opts := NewOptions(funcs...)

	return &Checker{
		opts:    opts,
		limiter: ratelimit.New(opts.Rate, opts.Burst),
	}
}

var _ check.Remote = &Checker{}
