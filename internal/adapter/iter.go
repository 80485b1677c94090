package adapter

import (
	"database/sql"

	"github.com/vburojevic/webtrail/internal/domain"
)

// VisitIter is a single-pass cursor over one source's canonical visits.
// It is not restartable: once exhausted or closed it stays that way, and
// closing releases the snapshot copy backing it. Rows the adapter cannot
// decode are skipped, not fatal; Skipped reports how many.
//
//	it, err := a.Visits(ctx, opts)
//	if err != nil { ... }
//	defer it.Close()
//	for it.Next() {
//	    v := it.Visit()
//	    ...
//	}
//	if err := it.Err(); err != nil { ... }
type VisitIter struct {
	src     Source
	rows    *sql.Rows
	scan    func(*sql.Rows) (domain.Visit, error)
	pending []domain.Visit
	cleanup func()
	cur     domain.Visit
	skipped int
	err     error
	closed  bool
}

func newRowIter(src Source, rows *sql.Rows, scan func(*sql.Rows) (domain.Visit, error), cleanup func()) *VisitIter {
	return &VisitIter{src: src, rows: rows, scan: scan, cleanup: cleanup}
}

func newSliceIter(src Source, visits []domain.Visit, skipped int) *VisitIter {
	return &VisitIter{src: src, pending: visits, skipped: skipped}
}

func emptyIter(src Source) *VisitIter {
	return newSliceIter(src, nil, 0)
}

// Next advances to the next visit. It returns false once the source is
// exhausted, the iterator is closed, or a fatal read error occurred; check
// Err afterwards to tell exhaustion from failure.
func (it *VisitIter) Next() bool {
	if it.closed {
		return false
	}
	if it.rows == nil {
		if len(it.pending) == 0 {
			return false
		}
		it.cur = it.pending[0]
		it.pending = it.pending[1:]
		return true
	}
	for it.rows.Next() {
		v, err := it.scan(it.rows)
		if err != nil {
			it.skipped++
			continue
		}
		it.cur = v
		return true
	}
	it.err = it.rows.Err()
	// Exhausted: release the snapshot now rather than waiting on Close.
	it.close()
	return false
}

// Visit returns the visit positioned by the last successful Next
func (it *VisitIter) Visit() domain.Visit {
	return it.cur
}

// Skipped reports how many malformed rows were dropped so far
func (it *VisitIter) Skipped() int {
	return it.skipped
}

// Err returns the first fatal error hit during iteration, if any
func (it *VisitIter) Err() error {
	return it.err
}

// Close releases the cursor and removes the snapshot copy. Safe to call
// multiple times and after exhaustion.
func (it *VisitIter) Close() error {
	it.close()
	return nil
}

func (it *VisitIter) close() {
	if it.closed {
		return
	}
	it.closed = true
	if it.rows != nil {
		it.rows.Close()
	}
	if it.cleanup != nil {
		it.cleanup()
	}
}
