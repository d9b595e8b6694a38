package page

import (
	"context"
	"io/fs"
	"net/url"
	"path"
	"strings"

	"github.com/bornholm/solite-docs/pkg/site"
	"github.com/bornholm/solite-docs/pkg/source"
	"github.com/pkg/errors"
)

// Candidates lists the markdown files an internal link may point to, in lookup order.
// basePath is the prefix the site is deployed under; it is stripped from the link.
func Candidates(basePath string, link string) []string {
	p, _ := site.SplitFragment(link)

	if unescaped, err := url.PathUnescape(p); err == nil {
		p = unescaped
	}

	p = stripBasePath(basePath, p)

	trailingSlash := strings.HasSuffix(p, "/")
	name := source.Clean(p)

	switch {
	case name == "":
		return []string{"index.md"}
	case trailingSlash:
		return []string{name + "/index.md"}
	}

	switch path.Ext(name) {
	case ".md":
		return []string{name}
	case ".html":
		return []string{strings.TrimSuffix(name, ".html") + ".md"}
	default:
		return []string{name + ".md", name + "/index.md"}
	}
}

// Route returns the link that resolves to the page name, the inverse of Candidates.
func Route(name string) string {
	name = source.Clean(name)

	if path.Base(name) == "index.md" {
		return "/" + strings.TrimSuffix(name, "index.md")
	}

	return "/" + strings.TrimSuffix(name, ".md")
}

func stripBasePath(basePath string, p string) string {
	basePath = strings.Trim(basePath, "/")
	if basePath == "" {
		return p
	}

	prefix := "/" + basePath

	switch {
	case p == prefix:
		return "/"
	case strings.HasPrefix(p, prefix+"/"):
		return strings.TrimPrefix(p, prefix)
	default:
		return p
	}
}

// Find returns the name of the first existing candidate for link.
// It returns fs.ErrNotExist when none resolves to a file.
func Find(ctx context.Context, src source.Source, basePath string, link string) (string, error) {
	for _, candidate := range Candidates(basePath, link) {
		info, err := src.Stat(ctx, candidate)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}

			return "", errors.WithStack(err)
		}

		if info.IsDir() {
			continue
		}

		return candidate, nil
	}

	return "", fs.ErrNotExist
}
