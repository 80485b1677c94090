package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
)

// AnonymizeURL replaces the path and query of a URL with a deterministic
// token derived from their hash, preserving scheme and host. The same URL
// always yields the same token; URLs that differ only in path or query yield
// different tokens under the same host. Unparseable input collapses to a
// bare token so the output never leaks the original string.
func AnonymizeURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "anonymized://" + pathToken(rawURL)
	}
	if u.Path == "" && u.RawQuery == "" {
		return u.Scheme + "://" + u.Host + "/"
	}
	return u.Scheme + "://" + u.Host + "/" + pathToken(u.Path+"?"+u.RawQuery)
}

func pathToken(s string) string {
	sum := sha256.Sum256([]byte(s))
	return "p-" + hex.EncodeToString(sum[:6])
}
