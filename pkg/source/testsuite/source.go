package testsuite

import (
	"bytes"
	"context"
	"io/fs"
	"slices"
	"testing"
	"time"

	"github.com/bornholm/solite-docs/pkg/source"
	"github.com/pkg/errors"
)

type sourceTestCase struct {
	Name string
	Run  func(ctx context.Context, src source.Source) error
}

var fixtures = map[string]string{
	"index.md":           "# Solite\n",
	"getting-started.md": "---\ntitle: Getting Started\n---\n\n# Getting Started\n",
	"cli/run.md":         "# solite run\n\n## Parameters\n",
}

var sourceTestCases = []sourceTestCase{
	{
		Name: "StatFile",
		Run:  StatFile,
	},
	{
		Name: "StatMissingFile",
		Run:  StatMissingFile,
	},
	{
		Name: "ReadFile",
		Run:  ReadFile,
	},
	{
		Name: "Walk",
		Run:  Walk,
	},
	{
		Name: "WriteExistingFile",
		Run:  WriteExistingFile,
	},
}

// TestSource runs the shared test cases against a source created from opts.
// The source must be writable: fixtures are created through it.
func TestSource(t *testing.T, sourceType source.Type, opts any) {
	t.Logf("Using source '%s'", sourceType)

	src, err := source.New(sourceType, opts)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	writable, ok := src.(source.Writable)
	if !ok {
		t.Fatalf("source '%s' is not writable", sourceType)
	}

	for name, content := range fixtures {
		if err := writable.WriteFile(ctx, name, []byte(content)); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}
	}

	for _, tc := range sourceTestCases {
		t.Run(tc.Name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()

			if err := tc.Run(ctx, src); err != nil {
				t.Errorf("%+v", errors.WithStack(err))
			}
		})
	}
}

func StatFile(ctx context.Context, src source.Source) error {
	info, err := src.Stat(ctx, "cli/run.md")
	if err != nil {
		return errors.WithStack(err)
	}

	if info.IsDir() {
		return errors.New("expected a file, got a directory")
	}

	if e, g := int64(len(fixtures["cli/run.md"])), info.Size(); e != g {
		return errors.Errorf("info.Size(): expected '%v', got '%v'", e, g)
	}

	return nil
}

func StatMissingFile(ctx context.Context, src source.Source) error {
	_, err := src.Stat(ctx, "missing/page.md")
	if !errors.Is(err, fs.ErrNotExist) {
		return errors.Errorf("expected fs.ErrNotExist, got '%v'", err)
	}

	return nil
}

func ReadFile(ctx context.Context, src source.Source) error {
	data, err := src.ReadFile(ctx, "/getting-started.md")
	if err != nil {
		return errors.WithStack(err)
	}

	if !bytes.Equal(data, []byte(fixtures["getting-started.md"])) {
		return errors.Errorf("unexpected content '%s'", data)
	}

	if _, err := src.ReadFile(ctx, "missing.md"); !errors.Is(err, fs.ErrNotExist) {
		return errors.Errorf("expected fs.ErrNotExist, got '%v'", err)
	}

	return nil
}

func Walk(ctx context.Context, src source.Source) error {
	names := make([]string, 0)

	err := src.Walk(ctx, func(name string, info fs.FileInfo) error {
		names = append(names, name)
		return nil
	})
	if err != nil {
		return errors.WithStack(err)
	}

	for name := range fixtures {
		if !slices.Contains(names, name) {
			return errors.Errorf("expected '%s' to be walked, got '%v'", name, names)
		}
	}

	return nil
}

func WriteExistingFile(ctx context.Context, src source.Source) error {
	writable := src.(source.Writable)

	err := writable.WriteFile(ctx, "index.md", []byte("overwritten"))
	if !errors.Is(err, fs.ErrExist) {
		return errors.Errorf("expected fs.ErrExist, got '%v'", err)
	}

	data, err := src.ReadFile(ctx, "index.md")
	if err != nil {
		return errors.WithStack(err)
	}

	if e, g := fixtures["index.md"], string(data); e != g {
		return errors.Errorf("index.md: expected '%v', got '%v'", e, g)
	}

	return nil
}
