package adapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/vburojevic/webtrail/internal/domain"
	"github.com/vburojevic/webtrail/internal/epoch"
)

// ChromiumAdapter reads the urls table shared by Chrome, Brave, Opera, Edge,
// Vivaldi and vanilla Chromium. Timestamps are microseconds since 1601-01-01.
type ChromiumAdapter struct {
	sqliteAdapter
}

// Visits implements Adapter
func (a *ChromiumAdapter) Visits(ctx context.Context, opts Options) (*VisitIter, error) {
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

	ok, err := hasTable(ctx, db, "urls")
	if err != nil {
		release()
		return nil, fmt.Errorf("%w: probe %s: %v", ErrSourceUnavailable, a.src.Path, err)
	}
	if !ok {
		release()
		return nil, fmt.Errorf("%w: %s has no urls table", ErrSchemaUnsupported, a.src.Path)
	}

	query := "SELECT url, title, visit_count, last_visit_time FROM urls"
	var args []any
	if !opts.Cutoff.IsZero() {
		query += " WHERE last_visit_time > ?"
		args = append(args, epoch.FromCanonical(opts.Cutoff, epoch.Chromium))
	}
	query += " ORDER BY last_visit_time DESC"
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
			rawVis sql.NullInt64
		)
		if err := rows.Scan(&url, &title, &count, &rawVis); err != nil {
			return domain.Visit{}, err
		}
		return buildVisit(src, url, title, count, rawVis, epoch.Chromium)
	}
	return newRowIter(src, rows, scan, release), nil
}

var errBadRow = errors.New("unusable history row")

// buildVisit validates a decoded row and converts its native timestamp.
// Rows without a URL or without a visit time carry no forensic signal and
// are dropped.
func buildVisit(src Source, url string, title sql.NullString, count, raw sql.NullInt64, kind epoch.Kind) (domain.Visit, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return domain.Visit{}, errBadRow
	}
	if !raw.Valid || raw.Int64 <= 0 {
		return domain.Visit{}, errBadRow
	}
	var visits uint
	if count.Valid && count.Int64 > 0 {
		visits = uint(count.Int64)
	}
	return domain.Visit{
		URL:        url,
		Title:      strings.TrimSpace(title.String),
		VisitedAt:  epoch.ToCanonical(raw.Int64, kind),
		VisitCount: visits,
		Browser:    src.Browser,
		Profile:    src.Profile,
	}, nil
}
