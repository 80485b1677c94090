package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/vburojevic/webtrail/internal/domain"
)

// SIEM tags identifying webtrail events in a Splunk index
const (
	splunkSource     = "webtrail"
	splunkSourcetype = "browser:history"
)

// SplunkSerializer renders one self-describing key="value" line per visit
// with a fixed field order, ready for a Splunk file monitor input.
type SplunkSerializer struct{}

// Serialize implements Serializer
func (s *SplunkSerializer) Serialize(visits []domain.Visit) ([]byte, error) {
	var buf bytes.Buffer
	for i := range visits {
		v := &visits[i]
		fmt.Fprintf(&buf,
			"timestamp=%q source=%q sourcetype=%q browser=%q domain=%q url=%q title=%q visit_count=%d\n",
			v.VisitedAt.UTC().Format(time.RFC3339),
			splunkSource,
			splunkSourcetype,
			string(v.Browser),
			v.Domain(),
			sanitizeSplunk(v.URL),
			sanitizeSplunk(v.Title),
			v.VisitCount,
		)
	}
	return buf.Bytes(), nil
}

// sanitizeSplunk keeps each event on a single line
func sanitizeSplunk(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}
