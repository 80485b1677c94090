package adapter

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"howett.net/plist"

	"github.com/vburojevic/webtrail/internal/domain"
	"github.com/vburojevic/webtrail/internal/epoch"
)

// SafariAdapter reads History.db: per-visit rows in history_visits joined to
// their page in history_items, with timestamps in seconds (fractional) since
// 2001-01-01. Pre-History.db installs kept a History.plist instead; those
// are decoded through the plist fallback.
type SafariAdapter struct {
	sqliteAdapter
}

// Visits implements Adapter
func (a *SafariAdapter) Visits(ctx context.Context, opts Options) (*VisitIter, error) {
	kind, err := sniffFormat(a.src.Path)
	if err != nil {
		return nil, err
	}
	if kind == formatMissing {
		return emptyIter(a.src), nil
	}
	if kind == formatPlist {
		return a.legacyVisits(opts)
	}
	return a.sqliteVisits(ctx, opts)
}

func (a *SafariAdapter) sqliteVisits(ctx context.Context, opts Options) (*VisitIter, error) {
	db, cleanup, err := a.openSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	if db == nil {
		return emptyIter(a.src), nil
	}
	release := func() {
		db.Close()
		cleanup()
	}

	hasItems, err := hasTable(ctx, db, "history_items")
	if err != nil {
		release()
		return nil, fmt.Errorf("%w: probe %s: %v", ErrSourceUnavailable, a.src.Path, err)
	}
	if !hasItems {
		release()
		return nil, fmt.Errorf("%w: %s has no history_items table", ErrSchemaUnsupported, a.src.Path)
	}
	hasVisits, err := hasTable(ctx, db, "history_visits")
	if err != nil {
		release()
		return nil, fmt.Errorf("%w: probe %s: %v", ErrSourceUnavailable, a.src.Path, err)
	}

	// Old History.db revisions carried the visit time on history_items
	// directly; newer ones split per-visit rows into history_visits.
	query := `SELECT hi.url, hv.title, hi.visit_count, hv.visit_time
		FROM history_items hi JOIN history_visits hv ON hi.id = hv.history_item`
	timeCol := "hv.visit_time"
	if !hasVisits {
		query = "SELECT url, NULL, visit_count, visit_time FROM history_items"
		timeCol = "visit_time"
	}
	var args []any
	if !opts.Cutoff.IsZero() {
		query += " WHERE " + timeCol + " > ?"
		args = append(args, epoch.FromCanonical(opts.Cutoff, epoch.Apple))
	}
	query += " ORDER BY " + timeCol + " DESC"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		release()
		return nil, fmt.Errorf("%w: query %s: %v", ErrSourceUnavailable, a.src.Path, err)
	}

	src := a.src
	scan := func(rows *sql.Rows) (domain.Visit, error) {
		var (
			url    string
			title  sql.NullString
			count  sql.NullInt64
			rawVis sql.NullFloat64
		)
		if err := rows.Scan(&url, &title, &count, &rawVis); err != nil {
			return domain.Visit{}, err
		}
		url = strings.TrimSpace(url)
		if url == "" || !rawVis.Valid || rawVis.Float64 <= 0 {
			return domain.Visit{}, errBadRow
		}
		var visits uint
		if count.Valid && count.Int64 > 0 {
			visits = uint(count.Int64)
		}
		return domain.Visit{
			URL:        url,
			Title:      strings.TrimSpace(title.String),
			VisitedAt:  epoch.ToCanonicalFloat(rawVis.Float64, epoch.Apple),
			VisitCount: visits,
			Browser:    src.Browser,
			Profile:    src.Profile,
		}, nil
	}
	return newRowIter(src, rows, scan, release), nil
}

// Legacy History.plist layout: a WebHistoryDates array where each entry
// keys the URL under the empty string and the visit time as a stringified
// Core Data timestamp.
type legacyHistory struct {
	Entries []legacyEntry `plist:"WebHistoryDates"`
}

type legacyEntry struct {
	URL       string `plist:""`
	Title     string `plist:"title"`
	LastVisit string `plist:"lastVisitedDate"`
	Count     int64  `plist:"visitCount"`
}

func (a *SafariAdapter) legacyVisits(opts Options) (*VisitIter, error) {
	raw, err := os.ReadFile(a.src.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrSourceUnavailable, a.src.Path, err)
	}
	var hist legacyHistory
	if _, err := plist.Unmarshal(raw, &hist); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrSchemaUnsupported, a.src.Path, err)
	}

	var (
		visits  []domain.Visit
		skipped int
	)
	for _, e := range hist.Entries {
		url := strings.TrimSpace(e.URL)
		seconds, perr := strconv.ParseFloat(e.LastVisit, 64)
		if url == "" || perr != nil || seconds <= 0 {
			skipped++
			continue
		}
		at := epoch.ToCanonicalFloat(seconds, epoch.Apple)
		if !opts.Cutoff.IsZero() && !at.After(opts.Cutoff) {
			continue
		}
		var count uint
		if e.Count > 0 {
			count = uint(e.Count)
		}
		visits = append(visits, domain.Visit{
			URL:        url,
			Title:      strings.TrimSpace(e.Title),
			VisitedAt:  at,
			VisitCount: count,
			Browser:    a.src.Browser,
			Profile:    a.src.Profile,
		})
	}
	sort.SliceStable(visits, func(i, j int) bool {
		return visits[i].VisitedAt.After(visits[j].VisitedAt)
	})
	if opts.Limit > 0 && len(visits) > opts.Limit {
		visits = visits[:opts.Limit]
	}
	return newSliceIter(a.src, visits, skipped), nil
}

type fileFormat int

const (
	formatMissing fileFormat = iota
	formatSQLite
	formatPlist
)

// sniffFormat decides sqlite vs plist from the file magic instead of the
// filename, so a History.db that is really a renamed plist still decodes.
func sniffFormat(path string) (fileFormat, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return formatMissing, nil
		}
		return 0, fmt.Errorf("%w: open %s: %v", ErrSourceUnavailable, path, err)
	}
	defer f.Close()

	magic := make([]byte, 8)
	n, _ := f.Read(magic)
	magic = magic[:n]
	switch {
	case bytes.HasPrefix(magic, []byte("bplist00")), bytes.HasPrefix(magic, []byte("<?xml")):
		return formatPlist, nil
	default:
		return formatSQLite, nil
	}
}
