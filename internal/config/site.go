package config

import "github.com/goccy/go-yaml"

type Site struct {
	File     InterpolatedString `yaml:"file"`
	BasePath InterpolatedString `yaml:"basePath"`
}

func NewDefaultSiteConfig() Site {
	return Site{
		File:     "${SOLITE_DOCS_SITE_FILE:-}",
		BasePath: "${SOLITE_DOCS_BASE_PATH:-/}",
	}
}

func NewSiteConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":          []*yaml.Comment{yaml.HeadComment(" Site definition")},
		".file":     []*yaml.Comment{yaml.HeadComment(" Site definition file (.yml, .yaml or .json)", " Leave empty to use the built-in solite site")},
		".basePath": []*yaml.Comment{yaml.HeadComment(" Base path the site is deployed under, stripped from internal links")},
	}
}
