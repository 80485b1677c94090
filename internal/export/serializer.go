// Package export renders a filtered visit set into interchange formats.
//
// Every serializer is total over any valid input including the empty set: a
// run with zero matches produces well-formed empty output (empty JSON array,
// header-only CSV, graph with no nodes), never an error.
package export

import (
	"fmt"

	"github.com/vburojevic/webtrail/internal/domain"
)

// Serializer renders visits to a byte sequence. The visit slice is expected
// to already be filtered, ordered, and (if requested) anonymized; no
// serializer transforms URLs itself.
type Serializer interface {
	Serialize(visits []domain.Visit) ([]byte, error)
}

// Format names one of the supported export formats
type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatSplunk   Format = "splunk"
	FormatELK      Format = "elk"
	FormatGephi    Format = "gephi"
	FormatTimeline Format = "timeline-json"
)

// Formats lists every supported export format
func Formats() []Format {
	return []Format{FormatJSON, FormatCSV, FormatSplunk, FormatELK, FormatGephi, FormatTimeline}
}

// New returns the serializer for a format name
func New(format Format) (Serializer, error) {
	switch format {
	case FormatJSON:
		return &JSONSerializer{}, nil
	case FormatCSV:
		return &CSVSerializer{}, nil
	case FormatSplunk:
		return &SplunkSerializer{}, nil
	case FormatELK:
		return &ELKSerializer{}, nil
	case FormatGephi:
		return &GephiSerializer{}, nil
	case FormatTimeline:
		return &TimelineJSSerializer{}, nil
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}
