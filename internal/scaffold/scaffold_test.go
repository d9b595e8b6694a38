package scaffold

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bornholm/solite-docs/internal/page"
	"github.com/bornholm/solite-docs/pkg/site"
	"github.com/bornholm/solite-docs/pkg/source"
	"github.com/bornholm/solite-docs/pkg/source/cached"
	"github.com/bornholm/solite-docs/pkg/source/local"
	"github.com/pkg/errors"
)

func TestScaffold(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "index.md"), []byte("# Home\n"), 0o644); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	s := &site.Site{
		Title: "Solite",
		ThemeConfig: site.ThemeConfig{
			Nav: []site.NavItem{
				{Text: "Home", Link: "/"},
				{Text: "Guide", Link: "/getting-started"},
			},
			Sidebar: []site.SidebarSection{
				{
					Text: "CLI",
					Items: []site.NavItem{
						{Text: "solite run", Link: "/cli/run#usage"},
						{Text: "Run", Link: "/cli/run"},
						{Text: "Reference", Link: "/reference/"},
						{Text: "Repository", Link: "https://github.com/asg017/solite"},
					},
				},
			},
		},
	}

	src := local.NewSource(dir)

	stubs, err := Plan(ctx, src, "/", s)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	expected := []string{"getting-started.md", "cli/run.md", "reference/index.md"}

	if e, g := len(expected), len(stubs); e != g {
		t.Fatalf("len(stubs): expected '%v', got '%v' (%v)", e, g, stubs)
	}

	for idx, e := range expected {
		if g := stubs[idx].Name; e != g {
			t.Errorf("stubs[%d].Name: expected '%v', got '%v'", idx, e, g)
		}
	}

	// Simulate a page created between planning and writing
	if err := os.WriteFile(filepath.Join(dir, "getting-started.md"), []byte("# Mine\n"), 0o644); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	created, err := Apply(ctx, src, stubs)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 2, len(created); e != g {
		t.Fatalf("len(created): expected '%v', got '%v'", e, g)
	}

	data, err := os.ReadFile(filepath.Join(dir, "getting-started.md"))
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "# Mine\n", string(data); e != g {
		t.Errorf("getting-started.md: expected '%v', got '%v'", e, g)
	}

	p, err := page.Load(ctx, src, "cli/run.md")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "solite run", p.Title; e != g {
		t.Errorf("p.Title: expected '%v', got '%v'", e, g)
	}

	stubs, err = Plan(ctx, src, "/", s)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 0, len(stubs); e != g {
		t.Errorf("len(stubs): expected '%v', got '%v'", e, g)
	}
}

func TestContent(t *testing.T) {
	data, err := Content("Getting: started")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	p, err := page.Parse("getting-started.md", data)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "Getting: started", p.Title; e != g {
		t.Errorf("p.Title: expected '%v', got '%v'", e, g)
	}
}

type readOnlySource struct {
	source.Source
}

func TestApplyWritable(t *testing.T) {
	ctx := context.Background()

	stubs := []Stub{{Name: "getting-started.md", Title: "Getting started"}}

	type testCase struct {
		Name   string
		Source func(dir string) source.Source
		Err    error
	}

	testCases := []testCase{
		{
			Name:   "Local",
			Source: func(dir string) source.Source { return local.NewSource(dir) },
		},
		{
			Name:   "Cached local",
			Source: func(dir string) source.Source { return cached.NewSource(local.NewSource(dir), time.Minute) },
		},
		{
			Name:   "Read-only",
			Source: func(dir string) source.Source { return readOnlySource{local.NewSource(dir)} },
			Err:    ErrReadOnly,
		},
		{
			Name:   "Cached read-only",
			Source: func(dir string) source.Source { return cached.NewSource(readOnlySource{local.NewSource(dir)}, time.Minute) },
			Err:    ErrReadOnly,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			dir := t.TempDir()

			_, err := Apply(ctx, tc.Source(dir), stubs)

			if tc.Err != nil {
				if !errors.Is(err, tc.Err) {
					t.Fatalf("err: expected '%v', got '%v'", tc.Err, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if _, err := os.Stat(filepath.Join(dir, "getting-started.md")); err != nil {
				t.Errorf("%+v", errors.WithStack(err))
			}
		})
	}
}
