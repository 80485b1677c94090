// Package epoch converts browser-native timestamps to canonical UTC time.
//
// Each browser family encodes visit times against its own zero point:
// Chromium counts microseconds from 1601-01-01, Mozilla counts microseconds
// from the Unix epoch, and Apple's Core Data counts (fractional) seconds
// from 2001-01-01. Conversion is a fixed linear transform per kind and is
// total: out-of-range input clamps to the representable range instead of
// failing.
package epoch

import (
	"math"
	"time"
)

// Kind selects the reference zero point and unit of a raw timestamp
type Kind int

const (
	// Chromium is microseconds since 1601-01-01T00:00:00Z
	Chromium Kind = iota
	// Mozilla is microseconds since 1970-01-01T00:00:00Z
	Mozilla
	// Apple is seconds (often fractional) since 2001-01-01T00:00:00Z
	Apple
)

const (
	// Microseconds between 1601-01-01 and 1970-01-01.
	chromiumOffsetMicros = 11644473600000000
	// Seconds between 1970-01-01 and 2001-01-01.
	appleOffsetSeconds = 978307200
)

// maxMicros bounds conversion to what time.Time can represent without
// overflowing the int64 nanosecond epoch (roughly year 2262).
const maxMicros = math.MaxInt64 / 1000

// ToCanonical maps a raw integer timestamp of the given kind to canonical
// UTC time at microsecond resolution. Values before the Unix epoch clamp to
// 1970-01-01T00:00:00Z and values past the representable range clamp to the
// ceiling; conversion never fails.
func ToCanonical(raw int64, kind Kind) time.Time {
	switch kind {
	case Chromium:
		return fromUnixMicros(raw - chromiumOffsetMicros)
	case Mozilla:
		return fromUnixMicros(raw)
	case Apple:
		return fromUnixMicros((raw + appleOffsetSeconds) * 1000000)
	default:
		return time.Time{}
	}
}

// ToCanonicalFloat handles Apple visit_time columns, which store fractional
// seconds. Other kinds truncate the fraction.
func ToCanonicalFloat(raw float64, kind Kind) time.Time {
	if kind != Apple {
		return ToCanonical(int64(raw), kind)
	}
	micros := (raw + appleOffsetSeconds) * 1e6
	if micros > maxMicros {
		micros = maxMicros
	}
	if micros < 0 {
		micros = 0
	}
	return fromUnixMicros(int64(micros))
}

// FromCanonical is the inverse transform, used to push cutoff times down
// into source-native WHERE clauses.
func FromCanonical(t time.Time, kind Kind) int64 {
	micros := t.UnixMicro()
	switch kind {
	case Chromium:
		return micros + chromiumOffsetMicros
	case Mozilla:
		return micros
	case Apple:
		return micros/1000000 - appleOffsetSeconds
	default:
		return 0
	}
}

func fromUnixMicros(micros int64) time.Time {
	if micros < 0 {
		micros = 0
	}
	if micros > maxMicros {
		micros = maxMicros
	}
	return time.UnixMicro(micros).UTC()
}
