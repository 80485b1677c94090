package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBrowser(t *testing.T) {
	tests := []struct {
		key  string
		want Browser
		ok   bool
	}{
		{"chrome", BrowserChrome, true},
		{"firefox", BrowserFirefox, true},
		{"safari", BrowserSafari, true},
		{"brave", BrowserBrave, true},
		{"opera", BrowserOpera, true},
		{"edge", BrowserEdge, true},
		{"vivaldi", BrowserVivaldi, true},
		{"tor", BrowserTor, true},
		{"chromium", BrowserChromium, true},
		{"librewolf", BrowserLibreWolf, true},
		{"netscape", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := ParseBrowser(tt.key)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBrowserFamily(t *testing.T) {
	assert.Equal(t, FamilyChromium, BrowserChrome.Family())
	assert.Equal(t, FamilyChromium, BrowserBrave.Family())
	assert.Equal(t, FamilyChromium, BrowserEdge.Family())
	assert.Equal(t, FamilyChromium, BrowserVivaldi.Family())
	assert.Equal(t, FamilyChromium, BrowserOpera.Family())
	assert.Equal(t, FamilyChromium, BrowserChromium.Family())
	assert.Equal(t, FamilyFirefox, BrowserFirefox.Family())
	assert.Equal(t, FamilyFirefox, BrowserTor.Family())
	assert.Equal(t, FamilyFirefox, BrowserLibreWolf.Family())
	assert.Equal(t, FamilySafari, BrowserSafari.Family())
}

func TestKeyRoundTrip(t *testing.T) {
	for _, b := range AllBrowsers() {
		got, ok := ParseBrowser(b.Key())
		assert.True(t, ok, "browser %s", b)
		assert.Equal(t, b, got)
	}
}

func TestHost(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"plain https", "https://github.com/golang/go", "github.com"},
		{"uppercase host lowered", "https://GitHub.COM/path", "github.com"},
		{"port stripped", "http://localhost:8080/x", "localhost"},
		{"subdomain kept", "https://docs.python.org/3/", "docs.python.org"},
		{"scheme-less input", "example.com/page", "example.com"},
		{"empty string", "", UnknownHost},
		{"garbage", "::::not a url::::", UnknownHost},
		{"scheme only", "https://", UnknownHost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Host(tt.url))
		})
	}
}

func TestVisitDomain(t *testing.T) {
	v := Visit{URL: "https://news.ycombinator.com/item?id=1"}
	assert.Equal(t, "news.ycombinator.com", v.Domain())

	broken := Visit{URL: "%%%"}
	assert.Equal(t, UnknownHost, broken.Domain())
}

func TestAnonymizeURL(t *testing.T) {
	t.Run("preserves scheme and host", func(t *testing.T) {
		got := AnonymizeURL("https://github.com/user/secret-repo?tab=issues")
		assert.Contains(t, got, "https://github.com/")
		assert.NotContains(t, got, "secret-repo")
		assert.NotContains(t, got, "tab=issues")
	})

	t.Run("idempotent within a run", func(t *testing.T) {
		url := "https://example.com/private/path?q=1"
		assert.Equal(t, AnonymizeURL(url), AnonymizeURL(url))
	})

	t.Run("distinct paths get distinct tokens under the same host", func(t *testing.T) {
		a := AnonymizeURL("https://example.com/one")
		b := AnonymizeURL("https://example.com/two")
		assert.NotEqual(t, a, b)
		assert.Equal(t, "example.com", Host(a))
		assert.Equal(t, "example.com", Host(b))
	})

	t.Run("bare host keeps only the root", func(t *testing.T) {
		assert.Equal(t, "https://example.com/", AnonymizeURL("https://example.com"))
	})

	t.Run("unparseable input never leaks", func(t *testing.T) {
		got := AnonymizeURL("::::supersecret::::")
		assert.NotContains(t, got, "supersecret")
	})
}
