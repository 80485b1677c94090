package export

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/vburojevic/webtrail/internal/domain"
)

// jsonRecord is the structured per-visit export shape
type jsonRecord struct {
	Browser    string `json:"browser"`
	Timestamp  string `json:"timestamp"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	Domain     string `json:"domain"`
	VisitCount uint   `json:"visit_count"`
	Profile    string `json:"profile,omitempty"`
}

// JSONSerializer renders visits as an indented JSON array of records
type JSONSerializer struct{}

// Serialize implements Serializer
func (s *JSONSerializer) Serialize(visits []domain.Visit) ([]byte, error) {
	records := make([]jsonRecord, 0, len(visits))
	for i := range visits {
		v := &visits[i]
		records = append(records, jsonRecord{
			Browser:    string(v.Browser),
			Timestamp:  v.VisitedAt.UTC().Format(time.RFC3339),
			Title:      v.Title,
			URL:        v.URL,
			Domain:     v.Domain(),
			VisitCount: v.VisitCount,
			Profile:    v.Profile,
		})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
