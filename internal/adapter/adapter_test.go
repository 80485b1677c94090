package adapter

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vburojevic/webtrail/internal/domain"
	"github.com/vburojevic/webtrail/internal/epoch"
)

func makeDB(t *testing.T, path string, stmts ...string) {
	t.Helper()
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err, "stmt: %s", stmt)
	}
}

func drain(t *testing.T, it *VisitIter) []domain.Visit {
	t.Helper()
	defer it.Close()
	var out []domain.Visit
	for it.Next() {
		out = append(out, it.Visit())
	}
	require.NoError(t, it.Err())
	return out
}

func chromiumFixture(t *testing.T) Source {
	t.Helper()
	path := filepath.Join(t.TempDir(), "History")
	newest := time.Date(2025, 6, 9, 14, 30, 15, 0, time.UTC)
	older := newest.Add(-time.Hour)
	makeDB(t, path,
		`CREATE TABLE urls (id INTEGER PRIMARY KEY, url TEXT, title TEXT, visit_count INTEGER, last_visit_time INTEGER)`,
		`INSERT INTO urls (url, title, visit_count, last_visit_time) VALUES
			('https://github.com/golang/go', 'golang/go', 3, `+rawChromium(newest)+`),
			('https://duckduckgo.com/', 'DuckDuckGo', 2, `+rawChromium(older)+`),
			('', 'no url', 1, `+rawChromium(older)+`),
			('https://no-time.example/', 'never visited', 1, 0)`,
	)
	return Source{Browser: domain.BrowserChrome, Profile: "Default", Path: path}
}

func rawChromium(at time.Time) string {
	return itoa(epoch.FromCanonical(at, epoch.Chromium))
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}

func TestChromiumAdapter(t *testing.T) {
	src := chromiumFixture(t)
	a := New(src, clock.NewMock(), zap.NewNop())

	it, err := a.Visits(context.Background(), Options{})
	require.NoError(t, err)
	visits := drain(t, it)

	require.Len(t, visits, 2, "rows without url or timestamp are dropped")
	assert.Equal(t, 2, it.Skipped())

	assert.Equal(t, "https://github.com/golang/go", visits[0].URL)
	assert.Equal(t, "golang/go", visits[0].Title)
	assert.Equal(t, uint(3), visits[0].VisitCount)
	assert.Equal(t, domain.BrowserChrome, visits[0].Browser)
	assert.Equal(t, "Default", visits[0].Profile)
	assert.Equal(t, time.Date(2025, 6, 9, 14, 30, 15, 0, time.UTC), visits[0].VisitedAt)
	assert.True(t, visits[0].VisitedAt.After(visits[1].VisitedAt), "newest first")
}

func TestChromiumAdapterCutoffAndLimit(t *testing.T) {
	src := chromiumFixture(t)
	a := New(src, clock.NewMock(), zap.NewNop())

	t.Run("cutoff drops older rows", func(t *testing.T) {
		cutoff := time.Date(2025, 6, 9, 14, 0, 0, 0, time.UTC)
		it, err := a.Visits(context.Background(), Options{Cutoff: cutoff})
		require.NoError(t, err)
		visits := drain(t, it)
		require.Len(t, visits, 1)
		assert.Equal(t, "https://github.com/golang/go", visits[0].URL)
	})

	t.Run("limit caps the fetch", func(t *testing.T) {
		it, err := a.Visits(context.Background(), Options{Limit: 1})
		require.NoError(t, err)
		visits := drain(t, it)
		require.Len(t, visits, 1)
		assert.Equal(t, "https://github.com/golang/go", visits[0].URL, "limit keeps the newest")
	})
}

func TestFirefoxAdapter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "places.sqlite")
	first := time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)
	second := first.Add(30 * time.Minute)
	makeDB(t, path,
		`CREATE TABLE moz_places (id INTEGER PRIMARY KEY, url TEXT, title TEXT, visit_count INTEGER)`,
		`CREATE TABLE moz_historyvisits (id INTEGER PRIMARY KEY, place_id INTEGER, visit_date INTEGER)`,
		`INSERT INTO moz_places (id, url, title, visit_count) VALUES
			(1, 'https://docs.python.org/3/', 'Python Docs', 2),
			(2, 'https://news.ycombinator.com/', NULL, 1)`,
		`INSERT INTO moz_historyvisits (place_id, visit_date) VALUES
			(1, `+itoa(epoch.FromCanonical(first, epoch.Mozilla))+`),
			(1, `+itoa(epoch.FromCanonical(second, epoch.Mozilla))+`),
			(2, `+itoa(epoch.FromCanonical(first.Add(time.Minute), epoch.Mozilla))+`)`,
	)
	src := Source{Browser: domain.BrowserFirefox, Path: path}
	a := New(src, clock.NewMock(), zap.NewNop())

	it, err := a.Visits(context.Background(), Options{})
	require.NoError(t, err)
	visits := drain(t, it)

	require.Len(t, visits, 3, "one visit per moz_historyvisits row")
	assert.Equal(t, "https://docs.python.org/3/", visits[0].URL)
	assert.Equal(t, second, visits[0].VisitedAt)
	assert.Equal(t, "", visits[1].Title, "NULL title becomes empty")
	assert.Equal(t, first, visits[2].VisitedAt)
}

func TestSafariAdapter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "History.db")
	at := time.Date(2025, 6, 9, 14, 30, 15, 0, time.UTC)
	makeDB(t, path,
		`CREATE TABLE history_items (id INTEGER PRIMARY KEY, url TEXT, visit_count INTEGER)`,
		`CREATE TABLE history_visits (id INTEGER PRIMARY KEY, history_item INTEGER, title TEXT, visit_time REAL)`,
		`INSERT INTO history_items (id, url, visit_count) VALUES (1, 'https://developer.apple.com/', 4)`,
		`INSERT INTO history_visits (history_item, title, visit_time) VALUES
			(1, 'Apple Developer', `+itoa(epoch.FromCanonical(at, epoch.Apple))+`.5)`,
	)
	src := Source{Browser: domain.BrowserSafari, Path: path}
	a := New(src, clock.NewMock(), zap.NewNop())

	it, err := a.Visits(context.Background(), Options{})
	require.NoError(t, err)
	visits := drain(t, it)

	require.Len(t, visits, 1)
	assert.Equal(t, "https://developer.apple.com/", visits[0].URL)
	assert.Equal(t, "Apple Developer", visits[0].Title)
	assert.Equal(t, uint(4), visits[0].VisitCount)
	assert.Equal(t, at.Add(500*time.Millisecond), visits[0].VisitedAt, "fractional seconds survive")
}

func TestSafariLegacyPlist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "History.plist")
	// 771172215 seconds after 2001-01-01 is 2025-06-09T14:30:15Z.
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>WebHistoryDates</key>
	<array>
		<dict>
			<key></key>
			<string>https://www.apple.com/</string>
			<key>title</key>
			<string>Apple</string>
			<key>lastVisitedDate</key>
			<string>771172215.0</string>
			<key>visitCount</key>
			<integer>7</integer>
		</dict>
		<dict>
			<key></key>
			<string></string>
			<key>lastVisitedDate</key>
			<string>not-a-number</string>
		</dict>
	</array>
</dict>
</plist>
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	src := Source{Browser: domain.BrowserSafari, Path: path}
	a := New(src, clock.NewMock(), zap.NewNop())

	it, err := a.Visits(context.Background(), Options{})
	require.NoError(t, err)
	visits := drain(t, it)

	require.Len(t, visits, 1)
	assert.Equal(t, 1, it.Skipped())
	assert.Equal(t, "https://www.apple.com/", visits[0].URL)
	assert.Equal(t, "Apple", visits[0].Title)
	assert.Equal(t, uint(7), visits[0].VisitCount)
	assert.Equal(t, time.Date(2025, 6, 9, 14, 30, 15, 0, time.UTC), visits[0].VisitedAt)
}

func TestMissingSourceYieldsEmpty(t *testing.T) {
	for _, browser := range []domain.Browser{domain.BrowserChrome, domain.BrowserFirefox, domain.BrowserSafari} {
		t.Run(browser.Key(), func(t *testing.T) {
			src := Source{Browser: browser, Path: filepath.Join(t.TempDir(), "nope", "History")}
			a := New(src, clock.NewMock(), zap.NewNop())
			it, err := a.Visits(context.Background(), Options{})
			require.NoError(t, err, "absent source is not an error")
			assert.Empty(t, drain(t, it))
		})
	}
}

func TestSchemaUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "History")
	makeDB(t, path, `CREATE TABLE something_else (id INTEGER PRIMARY KEY)`)

	src := Source{Browser: domain.BrowserChrome, Path: path}
	a := New(src, clock.NewMock(), zap.NewNop())

	_, err := a.Visits(context.Background(), Options{})
	require.ErrorIs(t, err, ErrSchemaUnsupported)
}

func TestSnapshotCleanup(t *testing.T) {
	// Fixture first: t.TempDir honors TMPDIR too, and the scratch dir must
	// hold only the snapshot.
	src := chromiumFixture(t)
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)
	a := New(src, clock.NewMock(), zap.NewNop())

	it, err := a.Visits(context.Background(), Options{})
	require.NoError(t, err)
	require.True(t, it.Next())
	require.NoError(t, it.Close())

	entries, err := os.ReadDir(tmp)
	require.NoError(t, err)
	assert.Empty(t, entries, "snapshot removed on close")
}

func TestIterSinglePass(t *testing.T) {
	src := chromiumFixture(t)
	a := New(src, clock.NewMock(), zap.NewNop())

	it, err := a.Visits(context.Background(), Options{})
	require.NoError(t, err)
	defer it.Close()

	n := 0
	for it.Next() {
		n++
	}
	require.Equal(t, 2, n)
	assert.False(t, it.Next(), "exhausted iterator stays exhausted")
}
