package log

import (
	"log/slog"
	"net/url"
	"strings"
)

const redacted = "xxx"

// sensitiveParams are query parameters holding credentials, compared case-insensitively.
var sensitiveParams = []string{
	"access_token",
	"api_key",
	"apikey",
	"key",
	"password",
	"secret",
	"sig",
	"signature",
	"token",
	"x-amz-credential",
	"x-amz-security-token",
	"x-amz-signature",
}

// ScrubbedURL returns an attribute holding rawURL with its user info and
// credential query parameters redacted.
func ScrubbedURL(name string, rawURL string) slog.Attr {
	u, err := url.Parse(rawURL)
	if err != nil {
		return slog.String(name, rawURL)
	}

	if u.User != nil {
		u.User = url.User(redacted)
	}

	if u.RawQuery != "" {
		query := u.Query()
		scrubbed := false

		for key := range query {
			if !isSensitive(key) {
				continue
			}

			query[key] = []string{redacted}
			scrubbed = true
		}

		if scrubbed {
			u.RawQuery = query.Encode()
		}
	}

	return slog.String(name, u.String())
}

func isSensitive(key string) bool {
	key = strings.ToLower(key)

	for _, param := range sensitiveParams {
		if key == param {
			return true
		}
	}

	return false
}
