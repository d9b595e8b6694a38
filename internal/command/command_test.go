package command

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bornholm/solite-docs/pkg/site"
	"github.com/pkg/errors"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	t.Setenv("SOLITE_DOCS_STORE_PATH", filepath.Join(t.TempDir(), "store.db"))
	t.Setenv("SOLITE_DOCS_SOURCE_DIR", "testdata/docs")
	t.Setenv("SOLITE_DOCS_LOG_FORMAT", "text")

	var out bytes.Buffer

	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()

	return out.String(), err
}

func TestExport(t *testing.T) {
	type testCase struct {
		Name   string
		Args   []string
		Assert func(t *testing.T, out string)
	}

	testCases := []testCase{
		{
			Name: "Built-in site as json",
			Args: []string{"export"},
			Assert: func(t *testing.T, out string) {
				var s site.Site
				if err := site.Decode(strings.NewReader(out), site.FormatJSON, &s); err != nil {
					t.Fatalf("%+v", errors.WithStack(err))
				}

				if e, g := site.Default().Title, s.Title; e != g {
					t.Errorf("s.Title: expected '%v', got '%v'", e, g)
				}
			},
		},
		{
			Name: "Site file as vitepress module",
			Args: []string{"export", "--site", "testdata/site.yml", "--format", "vitepress"},
			Assert: func(t *testing.T, out string) {
				if !strings.HasPrefix(out, "import { defineConfig } from 'vitepress'") {
					t.Errorf("expected vitepress import, got '%s'", out)
				}

				if !strings.Contains(out, `"/cli/run"`) {
					t.Errorf("expected site file links, got '%s'", out)
				}
			},
		},
		{
			Name: "Default configuration",
			Args: []string{"config", "dump"},
			Assert: func(t *testing.T, out string) {
				if !strings.Contains(out, "${SOLITE_DOCS_SOURCE_DIR:-./docs}") {
					t.Errorf("expected raw environment reference, got '%s'", out)
				}
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			out, err := execute(t, tc.Args...)
			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			tc.Assert(t, out)
		})
	}
}

func TestExportUnknownFormat(t *testing.T) {
	_, err := execute(t, "export", "--format", "toml")
	if !errors.Is(err, site.ErrUnsupportedFormat) {
		t.Errorf("err: expected site.ErrUnsupportedFormat, got '%v'", err)
	}
}

func TestValidate(t *testing.T) {
	out, err := execute(t, "validate", "--site", "testdata/site.yml")
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("err: expected ErrValidationFailed, got '%+v'", err)
	}

	if !strings.Contains(out, "page not found (tried cli/run.md, cli/run/index.md)") {
		t.Errorf("expected missing page in report, got '%s'", out)
	}

	if !strings.Contains(out, "failed: 4 link(s) checked, 1 error(s), 0 warning(s)") {
		t.Errorf("expected report summary, got '%s'", out)
	}
}

func TestExportOutputKeptOnError(t *testing.T) {
	output := filepath.Join(t.TempDir(), "config.mts")

	if err := os.WriteFile(output, []byte("PREVIOUS EXPORT"), 0o644); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	_, err := execute(t, "export", "--format", "toml", "--output", output)
	if !errors.Is(err, site.ErrUnsupportedFormat) {
		t.Fatalf("err: expected site.ErrUnsupportedFormat, got '%v'", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "PREVIOUS EXPORT", string(data); e != g {
		t.Errorf("output: expected '%v', got '%v'", e, g)
	}

	if _, err := execute(t, "export", "--format", "vitepress", "--output", output); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	data, err = os.ReadFile(output)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if !strings.HasPrefix(string(data), "import { defineConfig } from 'vitepress'") {
		t.Errorf("expected vitepress module in output, got '%s'", data)
	}
}
