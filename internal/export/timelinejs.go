package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/vburojevic/webtrail/internal/domain"
)

// TimelineJS JSON shapes (https://timeline.knightlab.com JSON format)
type tjsDoc struct {
	Title  tjsSlideText `json:"title"`
	Events []tjsEvent   `json:"events"`
}

type tjsSlideText struct {
	Text tjsText `json:"text"`
}

type tjsEvent struct {
	StartDate tjsDate `json:"start_date"`
	Text      tjsText `json:"text"`
}

type tjsDate struct {
	Year   int `json:"year"`
	Month  int `json:"month"`
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
	Second int `json:"second"`
}

type tjsText struct {
	Headline string `json:"headline"`
	Text     string `json:"text"`
}

// TimelineJSSerializer renders visits as a TimelineJS document: one event
// per visit with its start time, the title as headline and the URL as body,
// in chronological order.
type TimelineJSSerializer struct{}

// Serialize implements Serializer
func (s *TimelineJSSerializer) Serialize(visits []domain.Visit) ([]byte, error) {
	ordered := append([]domain.Visit(nil), visits...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].VisitedAt.Before(ordered[j].VisitedAt)
	})

	doc := tjsDoc{
		Title: tjsSlideText{Text: tjsText{
			Headline: "Browser History Timeline",
			Text:     fmt.Sprintf("%d visits", len(ordered)),
		}},
		Events: make([]tjsEvent, 0, len(ordered)),
	}
	for i := range ordered {
		v := &ordered[i]
		ts := v.VisitedAt.UTC()
		headline := v.Title
		if headline == "" {
			headline = v.Domain()
		}
		doc.Events = append(doc.Events, tjsEvent{
			StartDate: tjsDate{
				Year:   ts.Year(),
				Month:  int(ts.Month()),
				Day:    ts.Day(),
				Hour:   ts.Hour(),
				Minute: ts.Minute(),
				Second: ts.Second(),
			},
			Text: tjsText{Headline: headline, Text: v.URL},
		})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
