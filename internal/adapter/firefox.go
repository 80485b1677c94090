package adapter

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vburojevic/webtrail/internal/domain"
	"github.com/vburojevic/webtrail/internal/epoch"
)

// FirefoxAdapter reads places.sqlite, shared by Firefox, Tor Browser and
// LibreWolf. Every individual visit lives in moz_historyvisits, joined to
// its page row in moz_places; timestamps are microseconds since the Unix
// epoch.
type FirefoxAdapter struct {
	sqliteAdapter
}

// Visits implements Adapter
func (a *FirefoxAdapter) Visits(ctx context.Context, opts Options) (*VisitIter, error) {
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

	for _, table := range []string{"moz_places", "moz_historyvisits"} {
		ok, err := hasTable(ctx, db, table)
		if err != nil {
			release()
			return nil, fmt.Errorf("%w: probe %s: %v", ErrSourceUnavailable, a.src.Path, err)
		}
		if !ok {
			release()
			return nil, fmt.Errorf("%w: %s has no %s table", ErrSchemaUnsupported, a.src.Path, table)
		}
	}

	query := `SELECT p.url, p.title, p.visit_count, h.visit_date
		FROM moz_places p JOIN moz_historyvisits h ON p.id = h.place_id`
	var args []any
	if !opts.Cutoff.IsZero() {
		query += " WHERE h.visit_date > ?"
		args = append(args, epoch.FromCanonical(opts.Cutoff, epoch.Mozilla))
	}
	query += " ORDER BY h.visit_date DESC"
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
		return buildVisit(src, url, title, count, rawVis, epoch.Mozilla)
	}
	return newRowIter(src, rows, scan, release), nil
}
