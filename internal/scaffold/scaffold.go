// Package scaffold creates stub pages for site links that do not resolve yet.
package scaffold

import (
	"bytes"
	"context"
	"io/fs"
	"log/slog"

	"github.com/bornholm/solite-docs/internal/page"
	"github.com/bornholm/solite-docs/pkg/site"
	"github.com/bornholm/solite-docs/pkg/source"
	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

var ErrReadOnly = source.ErrReadOnly

// Stub is a page to create for an unresolved link.
type Stub struct {
	Name     string
	Title    string
	Link     string
	Location string
}

// Plan lists the stubs needed for every internal link of s that does not
// resolve to a page. Each file appears once, titled after the first link to it.
func Plan(ctx context.Context, src source.Source, basePath string, s *site.Site) ([]Stub, error) {
	stubs := make([]Stub, 0)
	planned := make(map[string]struct{})

	for ref := range s.Links() {
		if site.Classify(ref.Link) != site.LinkInternal {
			continue
		}

		_, err := page.Find(ctx, src, basePath, ref.Link)
		if err == nil {
			continue
		}

		if !errors.Is(err, fs.ErrNotExist) {
			return nil, errors.WithStack(err)
		}

		candidates := page.Candidates(basePath, ref.Link)
		if len(candidates) == 0 {
			continue
		}

		name := candidates[0]
		if _, exists := planned[name]; exists {
			continue
		}

		planned[name] = struct{}{}

		stubs = append(stubs, Stub{
			Name:     name,
			Title:    ref.Text,
			Link:     ref.Link,
			Location: ref.Location,
		})
	}

	return stubs, nil
}

// Apply writes the stubs and returns the names of the created files.
// Existing files are left untouched.
func Apply(ctx context.Context, src source.Source, stubs []Stub) ([]string, error) {
	writable, ok := src.(source.Writable)
	if !ok {
		return nil, errors.WithStack(ErrReadOnly)
	}

	created := make([]string, 0, len(stubs))

	for _, stub := range stubs {
		data, err := Content(stub.Title)
		if err != nil {
			return created, errors.WithStack(err)
		}

		if err := writable.WriteFile(ctx, stub.Name, data); err != nil {
			if errors.Is(err, fs.ErrExist) {
				slog.DebugContext(ctx, "page already exists", slog.String("name", stub.Name))
				continue
			}

			return created, errors.Wrapf(err, "could not create '%s'", stub.Name)
		}

		slog.InfoContext(ctx, "page created", slog.String("name", stub.Name), slog.String("link", stub.Link))

		created = append(created, stub.Name)
	}

	return created, nil
}

type frontmatter struct {
	Title string `yaml:"title"`
}

// Content returns the markdown of a stub page titled title.
func Content(title string) ([]byte, error) {
	header, err := yaml.Marshal(frontmatter{Title: title})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var buff bytes.Buffer

	buff.WriteString("---\n")
	buff.Write(header)
	buff.WriteString("---\n\n# ")
	buff.WriteString(title)
	buff.WriteString("\n")

	return buff.Bytes(), nil
}
