// Package adapter extracts canonical visits from browser history databases.
//
// Each browser family (Chromium, Firefox, Safari) has one adapter that knows
// its native schema and timestamp epoch. Adapters never touch the original
// database file beyond one snapshot copy: a live browser may hold it open,
// so all reads go through a transient read-only copy that is removed on
// every exit path. Adding a browser means adding a variant here; the filter,
// aggregator and serializer layers never change.
package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/vburojevic/webtrail/internal/domain"
)

// Source identifies one history database to read. Path resolution is the
// locate package's concern; the adapter only assumes the path may or may not
// exist.
type Source struct {
	Browser domain.Browser
	Profile string
	Path    string
}

// Options bounds one extraction pass
type Options struct {
	// Cutoff drops visits older than this instant inside the source query.
	// Zero means no time bound (exhaustive mode).
	Cutoff time.Time
	// Limit caps the number of rows fetched per source. Zero means no cap.
	Limit int
}

// Adapter reads one source into a lazy visit sequence
type Adapter interface {
	// Source returns the source this adapter reads
	Source() Source
	// Visits opens the source and returns a single-pass iterator over its
	// canonical visits. A missing source yields an empty iterator, not an
	// error; see Err* sentinels for the failure taxonomy.
	Visits(ctx context.Context, opts Options) (*VisitIter, error)
}

// New returns the adapter variant for the source's browser family
func New(src Source, clk clock.Clock, logger *zap.Logger) Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clk == nil {
		clk = clock.New()
	}
	base := sqliteAdapter{src: src, clk: clk, logger: logger}
	switch src.Browser.Family() {
	case domain.FamilyFirefox:
		return &FirefoxAdapter{sqliteAdapter: base}
	case domain.FamilySafari:
		return &SafariAdapter{sqliteAdapter: base}
	default:
		return &ChromiumAdapter{sqliteAdapter: base}
	}
}

// Lock retry policy: a browser holding a write transaction surfaces as a
// busy/locked error; bounded retries with linear backoff, then give up with
// ErrSourceUnavailable.
const (
	lockRetries      = 3
	lockRetryBackoff = 150 * time.Millisecond
)

// sqliteAdapter carries the state shared by all three family variants
type sqliteAdapter struct {
	src    Source
	clk    clock.Clock
	logger *zap.Logger
}

// Source implements Adapter
func (a *sqliteAdapter) Source() Source {
	return a.src
}

// openSnapshot stats the source, copies it aside and opens the copy
// read-only. The returned cleanup removes the snapshot; it is safe to call
// more than once and must be called on every path once openSnapshot
// succeeds. A nil db with nil error means the source does not exist.
func (a *sqliteAdapter) openSnapshot(ctx context.Context) (*sql.DB, func(), error) {
	if _, err := os.Stat(a.src.Path); err != nil {
		if os.IsNotExist(err) {
			a.logger.Debug("source absent",
				zap.String("browser", string(a.src.Browser)),
				zap.String("path", a.src.Path))
			return nil, func() {}, nil
		}
		return nil, nil, fmt.Errorf("%w: stat %s: %v", ErrSourceUnavailable, a.src.Path, err)
	}

	snap, err := copySnapshot(a.src.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: snapshot: %v", ErrSourceUnavailable, err)
	}
	cleanup := func() { os.Remove(snap) }

	var db *sql.DB
	for attempt := 1; ; attempt++ {
		db, err = openReadOnly(ctx, snap)
		if err == nil {
			break
		}
		if !isLocked(err) || attempt > lockRetries {
			cleanup()
			return nil, nil, fmt.Errorf("%w: open %s: %v", ErrSourceUnavailable, a.src.Path, err)
		}
		a.logger.Debug("source locked, retrying",
			zap.String("browser", string(a.src.Browser)),
			zap.Int("attempt", attempt))
		a.clk.Sleep(time.Duration(attempt) * lockRetryBackoff)
	}

	return db, cleanup, nil
}

func openReadOnly(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro&immutable=1")
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func isLocked(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "database is busy")
}

// hasTable probes sqlite_master for a table name
func hasTable(ctx context.Context, db *sql.DB, name string) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", name,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
