package config

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestLoadFile(t *testing.T) {
	getEnv = func(key string) string {
		return map[string]string{
			"SITE_FILE": "docs/site.yml",
		}[key]
	}

	conf := NewDefaultConfig()

	if err := LoadFile("testdata/config/config.yml", conf); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := InterpolatedInt(-4), conf.Logger.Level; e != g {
		t.Errorf("conf.Logger.Level: expected '%v', got '%v'", e, g)
	}

	if e, g := InterpolatedString("docs/site.yml"), conf.Site.File; e != g {
		t.Errorf("conf.Site.File: expected '%v', got '%v'", e, g)
	}

	if e, g := "./site-docs", conf.Source.Options.Data["dir"]; e != g {
		t.Errorf("conf.Source.Options.Data[\"dir\"]: expected '%v', got '%v'", e, g)
	}

	if e, g := 5*time.Second, conf.Check.Remote.Timeout.Duration(); e != g {
		t.Errorf("conf.Check.Remote.Timeout: expected '%v', got '%v'", e, g)
	}

	if e, g := InterpolatedInt(8), conf.Check.Remote.Concurrency; e != g {
		t.Errorf("conf.Check.Remote.Concurrency: expected '%v', got '%v'", e, g)
	}

	if e, g := 1, len(conf.Check.Rules); e != g {
		t.Fatalf("len(conf.Check.Rules): expected '%v', got '%v'", e, g)
	}

	if e, g := InterpolatedString(`link == "/todo"`), conf.Check.Rules[0].When; e != g {
		t.Errorf("conf.Check.Rules[0].When: expected '%v', got '%v'", e, g)
	}
}

func TestInterpolateDefaults(t *testing.T) {
	getEnv = func(key string) string {
		return map[string]string{
			"SOLITE_DOCS_SOURCE_DIR": "/srv/docs",
		}[key]
	}

	conf := NewDefaultConfig()

	if err := Interpolate(conf); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "/srv/docs", conf.Source.Options.Data["dir"]; e != g {
		t.Errorf("conf.Source.Options.Data[\"dir\"]: expected '%v', got '%v'", e, g)
	}

	if e, g := InterpolatedString("local"), conf.Source.Type; e != g {
		t.Errorf("conf.Source.Type: expected '%v', got '%v'", e, g)
	}

	if e, g := InterpolatedString("127.0.0.1:5173"), conf.HTTP.Address; e != g {
		t.Errorf("conf.HTTP.Address: expected '%v', got '%v'", e, g)
	}

	if e, g := 24*time.Hour, conf.Check.Remote.TTL.Duration(); e != g {
		t.Errorf("conf.Check.Remote.TTL: expected '%v', got '%v'", e, g)
	}

	if e, g := 2, len(conf.Check.Rules); e != g {
		t.Errorf("len(conf.Check.Rules): expected '%v', got '%v'", e, g)
	}
}

func TestDump(t *testing.T) {
	var buff bytes.Buffer

	if err := Dump(&buff, NewDefaultConfig()); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	output := buff.String()

	for _, expected := range []string{"# Validation configuration", "# Site definition", "SOLITE_DOCS_SOURCE_DIR"} {
		if !strings.Contains(output, expected) {
			t.Errorf("dump: expected to contain '%s'", expected)
		}
	}
}
