package preview

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bornholm/solite-docs/internal/check"
	"github.com/bornholm/solite-docs/internal/page"
	"github.com/bornholm/solite-docs/pkg/site"
	"github.com/bornholm/solite-docs/pkg/source/local"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

func testSite() *site.Site {
	return &site.Site{
		Title:       "Solite",
		Description: "A SQLite runtime, CLI, and Jupyter kernel",
		ThemeConfig: site.ThemeConfig{
			Nav: []site.NavItem{
				{Text: "Home", Link: "/"},
				{Text: "Guide", Link: "/getting-started"},
			},
			Sidebar: []site.SidebarSection{
				{
					Text: "CLI",
					Items: []site.NavItem{
						{Text: "run", Link: "/cli/run"},
						{Text: "repl", Link: "/cli/repl"},
					},
				},
			},
			SocialLinks: []site.SocialLink{
				{Icon: "github", Link: "https://github.com/asg017/solite"},
			},
		},
	}
}

func TestHandler(t *testing.T) {
	type testCase struct {
		Name           string
		Path           string
		ExpectedStatus int
		Assert         func(t *testing.T, body string)
	}

	loader := page.NewLoader(local.NewSource("testdata/docs"), "/")

	report := &check.Report{
		ID: "test",
		Issues: []check.Issue{
			{Severity: check.SeverityError, Check: check.CheckPage, Location: "$.themeConfig.sidebar[0].items[1]", Link: "/cli/repl", Message: "page not found"},
		},
	}

	handler := NewHandler(testSite(), loader, report)

	testCases := []testCase{
		{
			Name:           "Index page",
			Path:           "/",
			ExpectedStatus: http.StatusOK,
			Assert: func(t *testing.T, body string) {
				if !strings.Contains(body, "<title>Solite | Solite</title>") {
					t.Errorf("expected page title in body")
				}
				if !strings.Contains(body, "1 error(s), 0 warning(s)") {
					t.Errorf("expected report status in body")
				}
			},
		},
		{
			Name:           "Sidebar page",
			Path:           "/cli/run",
			ExpectedStatus: http.StatusOK,
			Assert: func(t *testing.T, body string) {
				if !strings.Contains(body, `<a href="/cli/run" class="is-active">run</a>`) {
					t.Errorf("expected active sidebar item in body: %s", body)
				}
				if !strings.Contains(body, `id="parameters"`) {
					t.Errorf("expected rendered heading in body")
				}
			},
		},
		{
			Name:           "Html suffix",
			Path:           "/getting-started.html",
			ExpectedStatus: http.StatusOK,
			Assert: func(t *testing.T, body string) {
				if !strings.Contains(body, "<title>Getting started | Solite</title>") {
					t.Errorf("expected frontmatter title in body")
				}
			},
		},
		{
			Name:           "Missing page",
			Path:           "/cli/repl",
			ExpectedStatus: http.StatusNotFound,
			Assert: func(t *testing.T, body string) {
				if !strings.Contains(body, "<code>/cli/repl</code>") {
					t.Errorf("expected missing path in body")
				}
			},
		},
		{
			Name:           "Report",
			Path:           "/_report",
			ExpectedStatus: http.StatusOK,
			Assert: func(t *testing.T, body string) {
				if !strings.Contains(body, "page not found") {
					t.Errorf("expected issue message in body")
				}
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.Path, nil)
			res := httptest.NewRecorder()

			handler.ServeHTTP(res, req)

			if e, g := tc.ExpectedStatus, res.Code; e != g {
				t.Fatalf("res.Code: expected '%v', got '%v'", e, g)
			}

			body, err := io.ReadAll(res.Body)
			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			tc.Assert(t, string(body))
		})
	}
}

func TestHandlerSwap(t *testing.T) {
	loader := page.NewLoader(local.NewSource("testdata/docs"), "/")
	handler := NewHandler(testSite(), loader, nil)

	updated := testSite()
	updated.Title = "Solite docs"

	handler.Swap(updated, loader, nil)

	req := httptest.NewRequest(http.MethodGet, "/_site.json", nil)
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	if e, g := http.StatusOK, res.Code; e != g {
		t.Fatalf("res.Code: expected '%v', got '%v'", e, g)
	}

	var decoded site.Site
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "Solite docs", decoded.Title; e != g {
		t.Errorf("decoded.Title: expected '%v', got '%v'", e, g)
	}

	if e, g := 2, len(decoded.ThemeConfig.Nav); e != g {
		t.Errorf("len(decoded.ThemeConfig.Nav): expected '%v', got '%v'", e, g)
	}
}
