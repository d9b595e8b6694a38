package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bornholm/solite-docs/pkg/source"
	"github.com/bornholm/solite-docs/pkg/source/local"
	"github.com/bornholm/solite-docs/pkg/source/s3"
	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

type Source struct {
	Type    InterpolatedString `yaml:"type"`
	Options *InterpolatedMap   `yaml:"options"`
}

func NewDefaultSourceConfig() Source {
	return Source{
		Type: InterpolatedString(fmt.Sprintf("${SOLITE_DOCS_SOURCE_TYPE:-%s}", local.Type)),
		Options: &InterpolatedMap{
			Data: map[string]any{
				"dir": "${SOLITE_DOCS_SOURCE_DIR:-./docs}",
			},
		},
	}
}

func NewSourceConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":      []*yaml.Comment{yaml.HeadComment(" Documentation source configuration")},
		".type": []*yaml.Comment{yaml.HeadComment(" Source type", fmt.Sprintf(" Available: %v", source.Registered()))},
		".options": []*yaml.Comment{
			yaml.HeadComment(" Source options"),
			getSourceOptionComment("S3 source", s3.Options{}),
		},
	}
}

func getSourceOptionComment(message string, opts any) *yaml.Comment {
	rawOpts, err := yaml.Marshal(opts)
	if err != nil {
		panic(errors.WithStack(err))
	}

	comments := []string{" " + message, " options:"}
	comments = append(comments, slices.Collect(func(yield func(string) bool) {
		for _, str := range strings.Split(strings.TrimSpace(string(rawOpts)), "\n") {
			if !yield("   " + str) {
				return
			}
		}
	})...)

	return yaml.FootComment(comments...)
}
