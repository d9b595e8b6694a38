package page

import (
	"context"
	"fmt"
	"io/fs"
	"slices"
	"testing"

	"github.com/bornholm/solite-docs/pkg/source/local"
	"github.com/pkg/errors"
)

func TestCandidates(t *testing.T) {
	type testCase struct {
		BasePath string
		Link     string
		Expected []string
	}

	testCases := []testCase{
		{BasePath: "/", Link: "/", Expected: []string{"index.md"}},
		{BasePath: "/", Link: "/getting-started", Expected: []string{"getting-started.md", "getting-started/index.md"}},
		{BasePath: "/", Link: "/guide/", Expected: []string{"guide/index.md"}},
		{BasePath: "/", Link: "/cli/run.html", Expected: []string{"cli/run.md"}},
		{BasePath: "/", Link: "/cli/run.md#parameters", Expected: []string{"cli/run.md"}},
		{BasePath: "/", Link: "cli/run", Expected: []string{"cli/run.md", "cli/run/index.md"}},
		{BasePath: "/solite/", Link: "/solite/cli/run", Expected: []string{"cli/run.md", "cli/run/index.md"}},
		{BasePath: "/solite/", Link: "/solite", Expected: []string{"index.md"}},
		{BasePath: "/solite/", Link: "/soliteish", Expected: []string{"soliteish.md", "soliteish/index.md"}},
		{BasePath: "/", Link: "/my%20page", Expected: []string{"my page.md", "my page/index.md"}},
		{BasePath: "/", Link: "/../../etc/passwd", Expected: []string{"etc/passwd.md", "etc/passwd/index.md"}},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			if e, g := tc.Expected, Candidates(tc.BasePath, tc.Link); !slices.Equal(e, g) {
				t.Errorf("Candidates(%q, %q): expected '%v', got '%v'", tc.BasePath, tc.Link, e, g)
			}
		})
	}
}

func TestRoute(t *testing.T) {
	testCases := map[string]string{
		"index.md":           "/",
		"getting-started.md": "/getting-started",
		"guide/index.md":     "/guide/",
		"cli/run.md":         "/cli/run",
	}

	for name, expected := range testCases {
		route := Route(name)
		if e, g := expected, route; e != g {
			t.Errorf("Route(%q): expected '%v', got '%v'", name, e, g)
		}

		if e, g := name, Candidates("/", route)[0]; e != g {
			t.Errorf("Candidates(%q)[0]: expected '%v', got '%v'", route, e, g)
		}
	}
}

func TestLoaderResolve(t *testing.T) {
	type testCase struct {
		Link   string
		Assert func(t *testing.T, page *Page, err error)
	}

	testCases := []testCase{
		{
			Link: "/",
			Assert: func(t *testing.T, page *Page, err error) {
				if err != nil {
					t.Fatalf("%+v", errors.WithStack(err))
				}

				if e, g := "Solite", page.Title; e != g {
					t.Errorf("page.Title: expected '%v', got '%v'", e, g)
				}
			},
		},
		{
			Link: "/getting-started#install",
			Assert: func(t *testing.T, page *Page, err error) {
				if err != nil {
					t.Fatalf("%+v", errors.WithStack(err))
				}

				if e, g := "Getting Started", page.Title; e != g {
					t.Errorf("page.Title: expected '%v', got '%v'", e, g)
				}

				for _, anchor := range []string{"quickstart", "install", "first-query"} {
					if !page.HasAnchor(anchor) {
						t.Errorf("page.Anchors: expected '%s', got '%v'", anchor, page.Anchors)
					}
				}

				if page.HasAnchor("missing") {
					t.Error("page.HasAnchor(\"missing\"): expected false")
				}
			},
		},
		{
			Link: "/cli/run",
			Assert: func(t *testing.T, page *Page, err error) {
				if err != nil {
					t.Fatalf("%+v", errors.WithStack(err))
				}

				if e, g := "solite run", page.Title; e != g {
					t.Errorf("page.Title: expected '%v', got '%v'", e, g)
				}

				if e, g := "cli/run.md", page.Name; e != g {
					t.Errorf("page.Name: expected '%v', got '%v'", e, g)
				}
			},
		},
		{
			Link: "/guide",
			Assert: func(t *testing.T, page *Page, err error) {
				if err != nil {
					t.Fatalf("%+v", errors.WithStack(err))
				}

				if e, g := "Guide", page.Title; e != g {
					t.Errorf("page.Title: expected '%v', got '%v'", e, g)
				}
			},
		},
		{
			Link: "/cli",
			Assert: func(t *testing.T, page *Page, err error) {
				if !errors.Is(err, fs.ErrNotExist) {
					t.Errorf("err: expected fs.ErrNotExist, got '%v'", err)
				}
			},
		},
	}

	loader := NewLoader(local.NewSource("testdata/docs"), "/")

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			page, err := loader.Resolve(context.Background(), tc.Link)
			tc.Assert(t, page, err)
		})
	}
}

func TestTitleFromName(t *testing.T) {
	testCases := map[string]string{
		"index.md":              "Home",
		"cli/index.md":          "Cli",
		"getting-started.md":    "Getting Started",
		"guide/dot_commands.md": "Dot Commands",
	}

	for name, expected := range testCases {
		if g := TitleFromName(name); expected != g {
			t.Errorf("TitleFromName(%q): expected '%v', got '%v'", name, expected, g)
		}
	}
}
