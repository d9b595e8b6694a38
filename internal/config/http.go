package config

import "github.com/goccy/go-yaml"

type HTTP struct {
	Address   InterpolatedString `yaml:"address"`
	Pprof     InterpolatedBool   `yaml:"pprof"`
	RateLimit RateLimit          `yaml:"rateLimit"`
}

type RateLimit struct {
	Rate  InterpolatedFloat `yaml:"rate"`
	Burst InterpolatedInt   `yaml:"burst"`
}

func NewDefaultHTTPConfig() HTTP {
	return HTTP{
		Address: "${SOLITE_DOCS_HTTP_ADDRESS:-127.0.0.1:5173}",
		Pprof:   false,
		RateLimit: RateLimit{
			Rate:  20,
			Burst: 40,
		},
	}
}

func NewHTTPConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":           []*yaml.Comment{yaml.HeadComment(" Preview server configuration")},
		".address":   []*yaml.Comment{yaml.HeadComment(" Preview server's listening address")},
		".pprof":     []*yaml.Comment{yaml.HeadComment(" Expose profiling endpoints under /debug/pprof")},
		".rateLimit": []*yaml.Comment{yaml.HeadComment(" Per-client request rate (requests per second) and burst")},
	}
}
