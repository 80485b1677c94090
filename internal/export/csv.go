package export

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/vburojevic/webtrail/internal/domain"
)

// csvHeader fixes the tabular column order
var csvHeader = []string{"browser", "timestamp", "title", "url", "visit_count"}

// CSVSerializer renders visits as CSV with a stable column order. Empty
// input still yields the header row.
type CSVSerializer struct{}

// Serialize implements Serializer
func (s *CSVSerializer) Serialize(visits []domain.Visit) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for i := range visits {
		v := &visits[i]
		record := []string{
			string(v.Browser),
			v.VisitedAt.UTC().Format(time.DateTime),
			v.Title,
			v.URL,
			strconv.FormatUint(uint64(v.VisitCount), 10),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
