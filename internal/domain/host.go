package domain

import (
	"net/url"
	"strings"
)

// UnknownHost is the sentinel domain for URLs that cannot be parsed.
const UnknownHost = "unknown"

// Host extracts the lowercase host name from a URL. It is total: malformed
// input yields UnknownHost, never an error. Two URLs with the same host are
// the same domain for aggregation purposes.
func Host(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return UnknownHost
	}
	host := u.Hostname()
	if host == "" {
		// Scheme-less input like "example.com/path" parses as an opaque
		// path; retry with a scheme so bare hosts still resolve.
		u, err = url.Parse("http://" + rawURL)
		if err != nil {
			return UnknownHost
		}
		host = u.Hostname()
	}
	if host == "" {
		return UnknownHost
	}
	return strings.ToLower(host)
}
