package config

import (
	"time"

	"github.com/goccy/go-yaml"
)

type Check struct {
	FailOnWarning InterpolatedBool `yaml:"failOnWarning"`
	Anchors       InterpolatedBool `yaml:"anchors"`
	Orphans       InterpolatedBool `yaml:"orphans"`
	Remote        RemoteCheck      `yaml:"remote"`
	Rules         []Rule           `yaml:"rules"`
}

type RemoteCheck struct {
	Enabled     InterpolatedBool      `yaml:"enabled"`
	Timeout     *InterpolatedDuration `yaml:"timeout"`
	TTL         *InterpolatedDuration `yaml:"ttl"`
	FailureTTL  *InterpolatedDuration `yaml:"failureTtl"`
	Concurrency InterpolatedInt       `yaml:"concurrency"`
	Rate        InterpolatedFloat     `yaml:"rate"`
	Burst       InterpolatedInt       `yaml:"burst"`
	UserAgent   InterpolatedString    `yaml:"userAgent"`
}

type Rule struct {
	Name     InterpolatedString `yaml:"name"`
	Severity InterpolatedString `yaml:"severity"`
	Message  InterpolatedString `yaml:"message"`
	When     InterpolatedString `yaml:"when"`
}

func NewDefaultCheckConfig() Check {
	return Check{
		FailOnWarning: false,
		Anchors:       true,
		Orphans:       true,
		Remote: RemoteCheck{
			Enabled:     false,
			Timeout:     NewInterpolatedDuration(10 * time.Second),
			TTL:         NewInterpolatedDuration(24 * time.Hour),
			FailureTTL:  NewInterpolatedDuration(5 * time.Minute),
			Concurrency: 4,
			Rate:        1,
			Burst:       2,
			UserAgent:   "${SOLITE_DOCS_USER_AGENT:-solite-docs}",
		},
		Rules: []Rule{
			{
				Name:     "external-https",
				Severity: "warning",
				Message:  "external links should use https",
				When:     `external && hasPrefix(link, "http://")`,
			},
			{
				Name:     "sidebar-absolute",
				Severity: "warning",
				Message:  "sidebar links should be absolute paths",
				When:     `kind == "sidebar" && internal && !hasPrefix(link, "/")`,
			},
		},
	}
}

func NewCheckConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":                    []*yaml.Comment{yaml.HeadComment(" Validation configuration")},
		".failOnWarning":      []*yaml.Comment{yaml.HeadComment(" Fail validation on warnings too")},
		".anchors":            []*yaml.Comment{yaml.HeadComment(" Check that link fragments match a heading of the target page")},
		".orphans":            []*yaml.Comment{yaml.HeadComment(" Warn about pages of the source that no link points to")},
		".remote":             []*yaml.Comment{yaml.HeadComment(" External URL checks")},
		".remote.ttl":         []*yaml.Comment{yaml.HeadComment(" How long a remote result is reused from the store")},
		".remote.failureTtl":  []*yaml.Comment{yaml.HeadComment(" How long an unreachable URL result is reused from the store")},
		".remote.rate":        []*yaml.Comment{yaml.HeadComment(" Requests per second allowed per host")},
		".remote.concurrency": []*yaml.Comment{yaml.HeadComment(" Maximum number of concurrent requests")},
		".rules": []*yaml.Comment{yaml.HeadComment(
			" Custom rules, reported when 'when' evaluates to true",
			" Variables: kind, section, text, link, path, fragment, internal, external, index, location",
			" See https://expr-lang.org/docs/language-definition",
		)},
	}
}
