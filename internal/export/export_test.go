package export

import (
	"encoding/csv"
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/vburojevic/webtrail/internal/domain"
)

func sampleVisits() []domain.Visit {
	return []domain.Visit{
		{
			URL:        "https://github.com/golang/go",
			Title:      "golang/go",
			VisitedAt:  time.Date(2025, 6, 9, 14, 30, 15, 0, time.UTC),
			VisitCount: 3,
			Browser:    domain.BrowserChrome,
			Profile:    "Default",
		},
		{
			URL:        "https://docs.python.org/3/",
			Title:      "Python Docs",
			VisitedAt:  time.Date(2025, 6, 9, 14, 25, 42, 0, time.UTC),
			VisitCount: 0,
			Browser:    domain.BrowserFirefox,
		},
		{
			URL:        "https://duckduckgo.com/",
			Title:      "DuckDuckGo",
			VisitedAt:  time.Date(2025, 6, 9, 14, 20, 18, 0, time.UTC),
			VisitCount: 2,
			Browser:    domain.BrowserChrome,
		},
	}
}

func TestNewFactory(t *testing.T) {
	for _, format := range Formats() {
		s, err := New(format)
		require.NoError(t, err, "format %s", format)
		require.NotNil(t, s)
	}

	_, err := New("yaml")
	assert.Error(t, err)
}

func TestJSONSerializer(t *testing.T) {
	out, err := (&JSONSerializer{}).Serialize(sampleVisits())
	require.NoError(t, err)

	doc := gjson.ParseBytes(out)
	require.True(t, doc.IsArray())
	assert.Equal(t, int64(3), doc.Get("#").Int())
	assert.Equal(t, "Chrome", doc.Get("0.browser").String())
	assert.Equal(t, "2025-06-09T14:30:15Z", doc.Get("0.timestamp").String())
	assert.Equal(t, "github.com", doc.Get("0.domain").String())
	assert.Equal(t, int64(3), doc.Get("0.visit_count").Int())
	assert.Equal(t, "Default", doc.Get("0.profile").String())
	assert.False(t, doc.Get("1.profile").Exists(), "empty profile is omitted")
}

func TestCSVSerializer(t *testing.T) {
	out, err := (&CSVSerializer{}).Serialize(sampleVisits())
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"browser", "timestamp", "title", "url", "visit_count"}, rows[0])
	assert.Equal(t, []string{"Chrome", "2025-06-09 14:30:15", "golang/go", "https://github.com/golang/go", "3"}, rows[1])
}

func TestSplunkSerializer(t *testing.T) {
	out, err := (&SplunkSerializer{}).Serialize(sampleVisits())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], `timestamp="2025-06-09T14:30:15Z" source="webtrail" sourcetype="browser:history"`))
	assert.Contains(t, lines[0], `browser="Chrome"`)
	assert.Contains(t, lines[0], `domain="github.com"`)
	assert.Contains(t, lines[0], `visit_count=3`)

	t.Run("newlines in titles stay on one line", func(t *testing.T) {
		visits := []domain.Visit{{URL: "https://a.com", Title: "multi\nline", VisitedAt: time.Now(), Browser: domain.BrowserChrome}}
		out, err := (&SplunkSerializer{}).Serialize(visits)
		require.NoError(t, err)
		assert.Equal(t, 1, strings.Count(string(out), "\n"))
	})
}

func TestELKSerializer(t *testing.T) {
	out, err := (&ELKSerializer{}).Serialize(sampleVisits())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		doc := gjson.Parse(line)
		assert.Equal(t, "browser_history", doc.Get("event_type").String())
		assert.True(t, doc.Get("@timestamp").Exists())
	}
	assert.Equal(t, "2025-06-09T14:30:15Z", gjson.Parse(lines[0]).Get("@timestamp").String())
	assert.Equal(t, "docs.python.org", gjson.Parse(lines[1]).Get("domain").String())
}

func TestGephiSerializer(t *testing.T) {
	// Chrome: duckduckgo -> github (chronological). Firefox alone has no
	// transitions.
	out, err := (&GephiSerializer{}).Serialize(sampleVisits())
	require.NoError(t, err)

	var doc gexfDoc
	require.NoError(t, xml.Unmarshal(out, &doc))
	require.Len(t, doc.Graph.Nodes, 3)
	assert.Equal(t, "docs.python.org", doc.Graph.Nodes[0].Label)

	require.Len(t, doc.Graph.Edges, 1)
	edge := doc.Graph.Edges[0]
	var source, target string
	for _, n := range doc.Graph.Nodes {
		if n.ID == edge.Source {
			source = n.Label
		}
		if n.ID == edge.Target {
			target = n.Label
		}
	}
	assert.Equal(t, "duckduckgo.com", source)
	assert.Equal(t, "github.com", target)
	assert.Equal(t, 1, edge.Weight)
}

func TestGephiExcludesSelfTransitions(t *testing.T) {
	at := time.Date(2025, 6, 9, 12, 0, 0, 0, time.UTC)
	visits := []domain.Visit{
		{URL: "https://a.com/1", VisitedAt: at, Browser: domain.BrowserChrome},
		{URL: "https://a.com/2", VisitedAt: at.Add(time.Minute), Browser: domain.BrowserChrome},
		{URL: "https://b.com/", VisitedAt: at.Add(2 * time.Minute), Browser: domain.BrowserChrome},
		{URL: "https://a.com/3", VisitedAt: at.Add(3 * time.Minute), Browser: domain.BrowserChrome},
		{URL: "https://b.com/", VisitedAt: at.Add(4 * time.Minute), Browser: domain.BrowserChrome},
	}

	out, err := (&GephiSerializer{}).Serialize(visits)
	require.NoError(t, err)

	var doc gexfDoc
	require.NoError(t, xml.Unmarshal(out, &doc))
	require.Len(t, doc.Graph.Edges, 2)
	// a->b twice, b->a once; edges sorted by (source, target) labels
	assert.Equal(t, 2, doc.Graph.Edges[0].Weight)
	assert.Equal(t, 1, doc.Graph.Edges[1].Weight)
}

func TestGephiSeparatesBrowsers(t *testing.T) {
	at := time.Date(2025, 6, 9, 12, 0, 0, 0, time.UTC)
	// Interleaved in time but in different browsers: no cross-browser edges.
	visits := []domain.Visit{
		{URL: "https://a.com/", VisitedAt: at, Browser: domain.BrowserChrome},
		{URL: "https://b.com/", VisitedAt: at.Add(time.Minute), Browser: domain.BrowserFirefox},
	}

	out, err := (&GephiSerializer{}).Serialize(visits)
	require.NoError(t, err)

	var doc gexfDoc
	require.NoError(t, xml.Unmarshal(out, &doc))
	assert.Len(t, doc.Graph.Nodes, 2)
	assert.Empty(t, doc.Graph.Edges)
}

func TestTimelineJSSerializer(t *testing.T) {
	out, err := (&TimelineJSSerializer{}).Serialize(sampleVisits())
	require.NoError(t, err)

	doc := gjson.ParseBytes(out)
	assert.Equal(t, "Browser History Timeline", doc.Get("title.text.headline").String())
	require.Equal(t, int64(3), doc.Get("events.#").Int())

	// chronological order: oldest first
	first := doc.Get("events.0")
	assert.Equal(t, "DuckDuckGo", first.Get("text.headline").String())
	assert.Equal(t, int64(2025), first.Get("start_date.year").Int())
	assert.Equal(t, int64(6), first.Get("start_date.month").Int())
	assert.Equal(t, int64(9), first.Get("start_date.day").Int())
	assert.Equal(t, int64(14), first.Get("start_date.hour").Int())
	assert.Equal(t, int64(20), first.Get("start_date.minute").Int())
	assert.Equal(t, int64(18), first.Get("start_date.second").Int())

	last := doc.Get("events.2")
	assert.Equal(t, "golang/go", last.Get("text.headline").String())
	assert.Equal(t, "https://github.com/golang/go", last.Get("text.text").String())
}

func TestSerializersTotalOnEmptyInput(t *testing.T) {
	for _, format := range Formats() {
		t.Run(string(format), func(t *testing.T) {
			s, err := New(format)
			require.NoError(t, err)
			out, err := s.Serialize(nil)
			require.NoError(t, err, "empty input must not fail")

			switch format {
			case FormatJSON:
				doc := gjson.ParseBytes(out)
				assert.True(t, doc.IsArray())
				assert.Equal(t, int64(0), doc.Get("#").Int())
			case FormatCSV:
				rows, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
				require.NoError(t, err)
				assert.Len(t, rows, 1, "header only")
			case FormatSplunk, FormatELK:
				assert.Empty(t, out)
			case FormatGephi:
				var doc gexfDoc
				require.NoError(t, xml.Unmarshal(out, &doc))
				assert.Empty(t, doc.Graph.Nodes)
				assert.Empty(t, doc.Graph.Edges)
			case FormatTimeline:
				doc := gjson.ParseBytes(out)
				assert.Equal(t, int64(0), doc.Get("events.#").Int())
			}
		})
	}
}
