package timeline

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vburojevic/webtrail/internal/domain"
	"github.com/vburojevic/webtrail/internal/filter"
)

func TestSort(t *testing.T) {
	base := time.Date(2025, 6, 9, 14, 0, 0, 0, time.UTC)
	tl := New([]domain.Visit{
		{URL: "https://old.example.com", VisitedAt: base.Add(-time.Hour)},
		{URL: "https://new.example.com", VisitedAt: base.Add(time.Hour)},
		{URL: "https://mid.example.com", VisitedAt: base},
	})

	tl.Sort()

	urls := make([]string, 0, tl.Len())
	for _, v := range tl.Visits() {
		urls = append(urls, v.URL)
	}
	assert.Equal(t, []string{
		"https://new.example.com",
		"https://mid.example.com",
		"https://old.example.com",
	}, urls)
}

func TestSortDeterministicOnTies(t *testing.T) {
	at := time.Date(2025, 6, 9, 14, 0, 0, 0, time.UTC)
	build := func() *Timeline {
		return New([]domain.Visit{
			{URL: "https://b.example.com", VisitedAt: at, Browser: domain.BrowserChrome},
			{URL: "https://a.example.com", VisitedAt: at, Browser: domain.BrowserFirefox},
			{URL: "https://a.example.com", VisitedAt: at, Browser: domain.BrowserChrome},
		})
	}

	first := build()
	first.Sort()
	second := build()
	second.Sort()

	assert.Equal(t, first.Visits(), second.Visits())
	assert.Equal(t, "https://a.example.com", first.Visits()[0].URL)
	assert.Equal(t, domain.BrowserChrome, first.Visits()[0].Browser)
}

func TestSlice(t *testing.T) {
	tl := New([]domain.Visit{
		{URL: "a"}, {URL: "b"}, {URL: "c"}, {URL: "d"},
	})

	tests := []struct {
		name   string
		offset int
		limit  int
		want   []string
	}{
		{"plain limit", 0, 2, []string{"a", "b"}},
		{"offset and limit", 1, 2, []string{"b", "c"}},
		{"zero limit means all", 2, 0, []string{"c", "d"}},
		{"offset past end", 10, 5, nil},
		{"negative offset clamps", -3, 1, []string{"a"}},
		{"limit past end", 3, 100, []string{"d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tl.Slice(tt.offset, tt.limit)
			var urls []string
			for _, v := range got.Visits() {
				urls = append(urls, v.URL)
			}
			assert.Equal(t, tt.want, urls)
		})
	}
}

func TestFilter(t *testing.T) {
	tl := New([]domain.Visit{
		{URL: "https://github.com/x", Browser: domain.BrowserChrome, VisitCount: 3},
		{URL: "https://docs.python.org/3/", Browser: domain.BrowserFirefox, VisitCount: 1},
	})

	chain, err := filter.Compile(&filter.Spec{DomainAllow: []string{"github"}})
	require.NoError(t, err)

	got := tl.Filter(chain)
	require.Equal(t, 1, got.Len())
	assert.Equal(t, "https://github.com/x", got.Visits()[0].URL)
	// source timeline untouched
	assert.Equal(t, 2, tl.Len())
}

func TestAnonymize(t *testing.T) {
	tl := New([]domain.Visit{
		{URL: "https://github.com/user/secret?x=1"},
		{URL: "https://github.com/user/secret?x=1"},
		{URL: "https://github.com/other/path"},
	})

	tl.Anonymize()

	visits := tl.Visits()
	assert.Equal(t, visits[0].URL, visits[1].URL, "same URL anonymizes to the same token")
	assert.NotEqual(t, visits[0].URL, visits[2].URL, "different paths get different tokens")
	for _, v := range visits {
		assert.True(t, strings.HasPrefix(v.URL, "https://github.com/"))
		assert.NotContains(t, v.URL, "secret")
	}
}
