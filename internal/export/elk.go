package export

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/vburojevic/webtrail/internal/domain"
)

// elkEvent is one log-pipeline document (one JSON object per line)
type elkEvent struct {
	Timestamp  string `json:"@timestamp"`
	EventType  string `json:"event_type"`
	Browser    string `json:"browser"`
	URL        string `json:"url"`
	Title      string `json:"title"`
	Domain     string `json:"domain"`
	VisitCount uint   `json:"visit_count"`
	Profile    string `json:"profile,omitempty"`
}

const elkEventType = "browser_history"

// ELKSerializer renders visits as newline-delimited JSON documents for an
// Elasticsearch ingest pipeline.
type ELKSerializer struct{}

// Serialize implements Serializer
func (s *ELKSerializer) Serialize(visits []domain.Visit) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	for i := range visits {
		v := &visits[i]
		doc := elkEvent{
			Timestamp:  v.VisitedAt.UTC().Format(time.RFC3339),
			EventType:  elkEventType,
			Browser:    string(v.Browser),
			URL:        v.URL,
			Title:      v.Title,
			Domain:     v.Domain(),
			VisitCount: v.VisitCount,
			Profile:    v.Profile,
		}
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
