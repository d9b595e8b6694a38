package check

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/bornholm/solite-docs/internal/page"
	"github.com/bornholm/solite-docs/pkg/log"
	"github.com/bornholm/solite-docs/pkg/site"
	"github.com/bornholm/solite-docs/pkg/source"
	"github.com/pkg/errors"
	"github.com/rs/xid"
	"golang.org/x/sync/errgroup"
)

type Checker struct {
	opts *Options
}

// run holds the state of a single Check invocation.
type run struct {
	report    *Report
	positions map[string]int
	loader    *page.Loader
	linked    map[string]struct{}
}

func (r *run) add(issue Issue) {
	position, exists := r.positions[issue.Location]
	if !exists {
		position = len(r.positions)
	}

	issue.position = position
	r.report.Issues = append(r.report.Issues, issue)
}

func (r *run) addRef(ref site.LinkRef, check string, severity Severity, format string, args ...any) {
	r.add(Issue{
		Severity: severity,
		Check:    check,
		Location: ref.Location,
		Text:     ref.Text,
		Link:     ref.Link,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (c *Checker) Check(ctx context.Context, s *site.Site) (*Report, error) {
	r := &run{
		report: &Report{
			ID:            xid.New().String(),
			Site:          s.Title,
			StartedAt:     time.Now().UTC(),
			FailOnWarning: c.opts.FailOnWarning,
			Issues:        make([]Issue, 0),
		},
		positions: positions(s),
		linked:    make(map[string]struct{}),
	}

	if c.opts.Source != nil {
		r.loader = page.NewLoader(c.opts.Source, c.opts.BasePath)
	}

	ctx = log.WithAttrs(ctx, slog.String("run", r.report.ID))

	refs := slices.Collect(s.Links())
	r.report.Links = len(refs)

	slog.DebugContext(ctx, "checking site", slog.String("site", s.Title), slog.Int("links", len(refs)))

	c.checkStructure(r, s)

	internal := c.checkSyntax(r, refs)

	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	if err := c.checkPages(ctx, r, internal); err != nil {
		return nil, errors.WithStack(err)
	}

	if err := c.checkOrphans(ctx, r); err != nil {
		return nil, errors.WithStack(err)
	}

	if err := c.checkRemote(ctx, r, refs); err != nil {
		return nil, errors.WithStack(err)
	}

	if err := c.checkRules(ctx, r, refs); err != nil {
		return nil, errors.WithStack(err)
	}

	slices.SortStableFunc(r.report.Issues, func(a, b Issue) int {
		return a.position - b.position
	})

	r.report.FinishedAt = time.Now().UTC()

	slog.DebugContext(ctx, "site checked",
		slog.Int("errors", r.report.Errors()),
		slog.Int("warnings", r.report.Warnings()),
		slog.Duration("duration", r.report.Duration()),
	)

	if c.opts.Record != nil {
		if err := c.opts.Record(ctx, r.report); err != nil {
			return nil, errors.Wrap(err, "could not record run")
		}
	}

	return r.report, nil
}

func (c *Checker) checkStructure(r *run, s *site.Site) {
	if strings.TrimSpace(s.Title) == "" {
		r.add(Issue{Severity: SeverityError, Check: CheckStructure, Location: "$.title", Message: "site title is empty"})
	}

	if strings.TrimSpace(s.Description) == "" {
		r.add(Issue{Severity: SeverityWarning, Check: CheckStructure, Location: "$.description", Message: "site description is empty"})
	}

	for idx, item := range s.ThemeConfig.Nav {
		if strings.TrimSpace(item.Text) == "" {
			r.add(Issue{
				Severity: SeverityError,
				Check:    CheckStructure,
				Location: fmt.Sprintf("$.themeConfig.nav[%d]", idx),
				Link:     item.Link,
				Message:  "nav entry has no text",
			})
		}
	}

	seen := make(map[string]string)

	for sectionIdx, section := range s.ThemeConfig.Sidebar {
		location := fmt.Sprintf("$.themeConfig.sidebar[%d]", sectionIdx)

		if strings.TrimSpace(section.Text) == "" {
			r.add(Issue{Severity: SeverityError, Check: CheckStructure, Location: location, Message: "sidebar section has no text"})
		}

		if len(section.Items) == 0 {
			r.add(Issue{Severity: SeverityError, Check: CheckStructure, Location: location, Text: section.Text, Message: "sidebar section has no items"})
		}

		for idx, item := range section.Items {
			itemLocation := fmt.Sprintf("%s.items[%d]", location, idx)

			if strings.TrimSpace(item.Text) == "" {
				r.add(Issue{Severity: SeverityError, Check: CheckStructure, Location: itemLocation, Link: item.Link, Message: "sidebar item has no text"})
			}

			if item.Link == "" {
				continue
			}

			if first, exists := seen[item.Link]; exists {
				r.add(Issue{
					Severity: SeverityWarning,
					Check:    CheckStructure,
					Location: itemLocation,
					Text:     item.Text,
					Link:     item.Link,
					Message:  fmt.Sprintf("duplicate sidebar link, already used at %s", first),
				})
				continue
			}

			seen[item.Link] = itemLocation
		}
	}

	for idx, social := range s.ThemeConfig.SocialLinks {
		if strings.TrimSpace(social.Icon) == "" {
			r.add(Issue{
				Severity: SeverityError,
				Check:    CheckStructure,
				Location: fmt.Sprintf("$.themeConfig.socialLinks[%d]", idx),
				Link:     social.Link,
				Message:  "social link has no icon",
			})
		}
	}
}

// checkSyntax classifies every link and returns the internal ones.
func (c *Checker) checkSyntax(r *run, refs []site.LinkRef) []site.LinkRef {
	internal := make([]site.LinkRef, 0, len(refs))

	for _, ref := range refs {
		kind := site.Classify(ref.Link)

		if kind == site.LinkInvalid {
			r.addRef(ref, CheckSyntax, SeverityError, "invalid link %q", ref.Link)
			continue
		}

		if ref.Kind == site.RefSocial {
			if kind != site.LinkExternal {
				r.addRef(ref, CheckSyntax, SeverityError, "social link must be an absolute http(s) URL")
			}
			continue
		}

		switch kind {
		case site.LinkAnchor:
			r.addRef(ref, CheckSyntax, SeverityWarning, "anchor-only link has no target page")
		case site.LinkInternal:
			if !strings.HasPrefix(ref.Link, "/") {
				r.addRef(ref, CheckSyntax, SeverityWarning, "relative link is resolved from the site root")
			}
			internal = append(internal, ref)
		}
	}

	return internal
}

func (c *Checker) checkPages(ctx context.Context, r *run, refs []site.LinkRef) error {
	if r.loader == nil {
		return nil
	}

	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return errors.WithStack(err)
		}

		p, err := r.loader.Resolve(ctx, ref.Link)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return errors.WithStack(err)
			}

			if errors.Is(err, fs.ErrNotExist) {
				candidates := page.Candidates(r.loader.BasePath(), ref.Link)
				r.addRef(ref, CheckPage, SeverityError, "page not found (tried %s)", strings.Join(candidates, ", "))
				continue
			}

			r.addRef(ref, CheckPage, SeverityError, "could not load page: %s", err.Error())
			continue
		}

		r.linked[p.Name] = struct{}{}

		if !c.opts.Anchors {
			continue
		}

		_, fragment := site.SplitFragment(ref.Link)
		if fragment == "" {
			continue
		}

		if !p.HasAnchor(fragment) {
			r.addRef(ref, CheckAnchor, SeverityWarning, "anchor not found in %s", p.Name)
		}
	}

	return nil
}

// checkOrphans reports the pages of the source that no nav or sidebar link resolves to.
func (c *Checker) checkOrphans(ctx context.Context, r *run) error {
	if r.loader == nil || !c.opts.Orphans {
		return nil
	}

	err := r.loader.Source().Walk(ctx, func(name string, info fs.FileInfo) error {
		name = source.Clean(name)

		if path.Ext(name) != ".md" || name == "index.md" {
			return nil
		}

		if _, exists := r.linked[name]; exists {
			return nil
		}

		r.add(Issue{
			Severity: SeverityWarning,
			Check:    CheckOrphan,
			Location: name,
			Link:     page.Route(name),
			Message:  "page is not linked from nav or sidebar",
		})

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "could not walk source")
	}

	return nil
}

func (c *Checker) checkRemote(ctx context.Context, r *run, refs []site.LinkRef) error {
	if c.opts.Remote == nil {
		return nil
	}

	urls := make([]string, 0)
	for _, ref := range refs {
		if site.Classify(ref.Link) != site.LinkExternal {
			continue
		}
		if slices.Contains(urls, ref.Link) {
			continue
		}
		urls = append(urls, ref.Link)
	}

	results := make([]RemoteResult, len(urls))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(c.opts.Concurrency)

	for idx, url := range urls {
		group.Go(func() error {
			result, err := c.opts.Remote.CheckURL(groupCtx, url)
			if err != nil {
				return errors.Wrapf(err, "could not check url '%s'", url)
			}

			results[idx] = result

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return errors.WithStack(err)
	}

	for _, ref := range refs {
		idx := slices.Index(urls, ref.Link)
		if idx == -1 {
			continue
		}

		result := results[idx]
		if result.OK() {
			continue
		}

		if result.Error != "" {
			r.addRef(ref, CheckRemote, SeverityError, "unreachable: %s", result.Error)
			continue
		}

		r.addRef(ref, CheckRemote, SeverityError, "unexpected status %d", result.Status)
	}

	return nil
}

func (c *Checker) checkRules(ctx context.Context, r *run, refs []site.LinkRef) error {
	if len(c.opts.Rules) == 0 {
		return nil
	}

	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return errors.WithStack(err)
		}

		env := NewRuleEnv(ref)

		for _, rule := range c.opts.Rules {
			matched, err := rule.Match(env)
			if err != nil {
				return errors.Wrapf(err, "could not evaluate rule '%s'", rule.Name())
			}

			if !matched {
				continue
			}

			r.add(Issue{
				Severity: rule.Severity(),
				Check:    CheckRule,
				Rule:     rule.Name(),
				Location: ref.Location,
				Text:     ref.Text,
				Link:     ref.Link,
				Message:  rule.Message(),
			})
		}
	}

	return nil
}

// positions maps each location of the site object to its rank in document order.
func positions(s *site.Site) map[string]int {
	ranks := make(map[string]int)

	next := func(location string) {
		ranks[location] = len(ranks)
	}

	next("$.title")
	next("$.description")

	for idx := range s.ThemeConfig.Nav {
		next(fmt.Sprintf("$.themeConfig.nav[%d]", idx))
	}

	for sectionIdx, section := range s.ThemeConfig.Sidebar {
		next(fmt.Sprintf("$.themeConfig.sidebar[%d]", sectionIdx))
		for idx := range section.Items {
			next(fmt.Sprintf("$.themeConfig.sidebar[%d].items[%d]", sectionIdx, idx))
		}
	}

	for idx := range s.ThemeConfig.SocialLinks {
		next(fmt.Sprintf("$.themeConfig.socialLinks[%d]", idx))
	}

	return ranks
}

func New(funcs ...OptionFunc) *Checker {
	return &Checker{
		opts: NewOptions(funcs...),
	}
}
