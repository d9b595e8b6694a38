package setup

import (
	"context"
	"net/http"

	"github.com/bornholm/solite-docs/internal/check"
	"github.com/bornholm/solite-docs/internal/check/expr"
	"github.com/bornholm/solite-docs/internal/check/remote"
	"github.com/bornholm/solite-docs/internal/config"
	"github.com/bornholm/solite-docs/internal/store"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

var NewCheckerFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*check.Checker, error) {
	src, err := NewSourceFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	rules, err := NewRulesFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	st, err := NewStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	options := []check.OptionFunc{
		check.WithSource(src, string(conf.Site.BasePath)),
		check.WithAnchors(bool(conf.Check.Anchors)),
		check.WithOrphans(bool(conf.Check.Orphans)),
		check.WithFailOnWarning(bool(conf.Check.FailOnWarning)),
		check.WithRules(rules...),
		check.WithRecord(func(ctx context.Context, report *check.Report) error {
			run := &store.Run{
				ID:         report.ID,
				Site:       report.Site,
				StartedAt:  report.StartedAt,
				FinishedAt: report.FinishedAt,
				Links:      report.Links,
				Errors:     report.Errors(),
				Warnings:   report.Warnings(),
			}

			return errors.WithStack(st.SaveRun(ctx, run))
		}),
	}

	if conf.Check.Remote.Enabled {
		remoteConf := conf.Check.Remote

		checker := remote.New(
			remote.WithClient(&http.Client{}),
			remote.WithTimeout(remoteConf.Timeout.Duration()),
			remote.WithRateLimit(rate.Limit(remoteConf.Rate), int(remoteConf.Burst)),
			remote.WithUserAgent(string(remoteConf.UserAgent)),
			remote.WithCache(st, remoteConf.TTL.Duration()),
			remote.WithFailureTTL(remoteConf.FailureTTL.Duration()),
		)

		options = append(options, check.WithRemote(checker, int(remoteConf.Concurrency)))
	}

	return check.New(options...), nil
})

func NewRulesFromConfig(ctx context.Context, conf *config.Config) ([]check.Rule, error) {
	rules := make([]check.Rule, 0, len(conf.Check.Rules))

	for idx, r := range conf.Check.Rules {
		severity, ok := check.ParseSeverity(string(r.Severity))
		if !ok {
			return nil, errors.Errorf("rule #%d: unknown severity '%s'", idx, r.Severity)
		}

		name := string(r.Name)
		if name == "" {
			return nil, errors.Errorf("rule #%d: missing name", idx)
		}

		message := string(r.Message)
		if message == "" {
			message = name
		}

		rule := expr.NewRule(name, string(r.When), severity, message)

		if err := rule.Compile(); err != nil {
			return nil, errors.WithStack(err)
		}

		rules = append(rules, rule)
	}

	return rules, nil
}
