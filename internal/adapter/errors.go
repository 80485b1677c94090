package adapter

import "errors"

var (
	// ErrSourceUnavailable marks a source that exists but could not be read:
	// still locked after retries, unreadable, or the snapshot copy failed.
	ErrSourceUnavailable = errors.New("history source unavailable")

	// ErrSchemaUnsupported marks a database that opened fine but does not
	// carry the tables the family adapter expects.
	ErrSchemaUnsupported = errors.New("history schema unsupported")
)
