// Package page loads markdown documentation pages: frontmatter, rendered body and anchors.
package page

import (
	"bytes"
	"context"
	"html/template"
	"io"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/bornholm/solite-docs/pkg/source"
	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Page struct {
	Name        string
	Title       string
	Frontmatter map[string]any
	HTML        template.HTML
	Anchors     []string
	ModTime     time.Time
	Size        int64
}

func (p *Page) HasAnchor(id string) bool {
	_, found := slices.BinarySearch(p.Anchors, id)
	return found
}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
)

var titleCaser = cases.Title(language.English)

// Load reads and renders the page called name from src.
func Load(ctx context.Context, src source.Source, name string) (*Page, error) {
	name = source.Clean(name)

	info, err := src.Stat(ctx, name)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	data, err := src.ReadFile(ctx, name)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	page, err := Parse(name, data)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	page.ModTime = info.ModTime()
	page.Size = info.Size()

	return page, nil
}

// Parse builds a page from raw markdown with optional YAML frontmatter.
func Parse(name string, data []byte) (*Page, error) {
	matter := map[string]any{}

	body, err := frontmatter.Parse(bytes.NewReader(data), &matter)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse frontmatter of '%s'", name)
	}

	var rendered bytes.Buffer
	if err := markdown.Convert(body, &rendered); err != nil {
		return nil, errors.Wrapf(err, "could not render '%s'", name)
	}

	anchors, heading, err := inspect(rendered.Bytes())
	if err != nil {
		return nil, errors.Wrapf(err, "could not inspect rendered '%s'", name)
	}

	title := ""
	if fmTitle, ok := matter["title"].(string); ok {
		title = strings.TrimSpace(fmTitle)
	}
	if title == "" {
		title = heading
	}
	if title == "" {
		title = TitleFromName(name)
	}

	return &Page{
		Name:        name,
		Title:       title,
		Frontmatter: matter,
		HTML:        template.HTML(rendered.String()),
		Anchors:     anchors,
	}, nil
}

// TitleFromName derives a readable title from a file name ("cli/getting-started.md" → "Getting Started").
func TitleFromName(name string) string {
	base := strings.TrimSuffix(path.Base(name), path.Ext(name))
	if base == "index" {
		dir := path.Dir(name)
		if dir == "." || dir == "/" {
			return "Home"
		}
		base = path.Base(dir)
	}

	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)

	return titleCaser.String(base)
}

// inspect collects the sorted element ids of an HTML fragment and the text of its first h1.
func inspect(fragment []byte) ([]string, string, error) {
	tokenizer := html.NewTokenizer(bytes.NewReader(fragment))

	anchors := make([]string, 0)
	var (
		heading   strings.Builder
		inHeading bool
		seenH1    bool
	)

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			if err := tokenizer.Err(); err != io.EOF {
				return nil, "", errors.WithStack(err)
			}

			slices.Sort(anchors)
			anchors = slices.Compact(anchors)

			return anchors, strings.TrimSpace(heading.String()), nil

		case html.StartTagToken, html.SelfClosingTagToken:
			token := tokenizer.Token()

			for _, attr := range token.Attr {
				if attr.Key == "id" && attr.Val != "" {
					anchors = append(anchors, attr.Val)
				}
			}

			if token.DataAtom == atom.H1 && !seenH1 {
				inHeading = true
			}

		case html.EndTagToken:
			token := tokenizer.Token()
			if token.DataAtom == atom.H1 && inHeading {
				inHeading = false
				seenH1 = true
			}

		case html.TextToken:
			if inHeading {
				heading.Write(tokenizer.Text())
			}
		}
	}
}
