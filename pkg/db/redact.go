package db

import (
	"net/url"
	"strings"
)

// Redact strips credentials from a database URL for logging.
func Redact(rawURL string) string {
	idx := strings.Index(rawURL, "://")
	if idx < 0 {
		return rawURL
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.User == nil {
		return rawURL
	}
	parsed.User = url.User(parsed.User.Username())
	return parsed.String()
}
