package export

import (
	"bytes"
	"encoding/xml"
	"sort"
	"strconv"

	"github.com/vburojevic/webtrail/internal/domain"
)

// GEXF document shape, enough of the 1.2draft schema for Gephi to load
type gexfDoc struct {
	XMLName xml.Name  `xml:"gexf"`
	XMLNS   string    `xml:"xmlns,attr"`
	Version string    `xml:"version,attr"`
	Graph   gexfGraph `xml:"graph"`
}

type gexfGraph struct {
	Mode     string     `xml:"mode,attr"`
	EdgeType string     `xml:"defaultedgetype,attr"`
	Nodes    []gexfNode `xml:"nodes>node"`
	Edges    []gexfEdge `xml:"edges>edge"`
}

type gexfNode struct {
	ID    string `xml:"id,attr"`
	Label string `xml:"label,attr"`
}

type gexfEdge struct {
	ID     string `xml:"id,attr"`
	Source string `xml:"source,attr"`
	Target string `xml:"target,attr"`
	Weight int    `xml:"weight,attr"`
}

// GephiSerializer renders the visit set as a GEXF domain-transition graph.
// Nodes are the unique domains observed; a directed edge connects two
// domains visited back-to-back in chronological order within the same
// browser, weighted by transition frequency. Self-transitions are omitted.
type GephiSerializer struct{}

// Serialize implements Serializer
func (s *GephiSerializer) Serialize(visits []domain.Visit) ([]byte, error) {
	// Unique domains, in sorted order for stable node IDs.
	domainSet := make(map[string]struct{})
	for i := range visits {
		domainSet[visits[i].Domain()] = struct{}{}
	}
	labels := make([]string, 0, len(domainSet))
	for d := range domainSet {
		labels = append(labels, d)
	}
	sort.Strings(labels)

	nodeID := make(map[string]string, len(labels))
	nodes := make([]gexfNode, 0, len(labels))
	for i, label := range labels {
		id := strconv.Itoa(i)
		nodeID[label] = id
		nodes = append(nodes, gexfNode{ID: id, Label: label})
	}

	// Transitions: chronological per-browser domain sequences.
	type hop struct{ from, to string }
	byBrowser := make(map[domain.Browser][]int)
	for i := range visits {
		byBrowser[visits[i].Browser] = append(byBrowser[visits[i].Browser], i)
	}
	weights := make(map[hop]int)
	for _, idx := range byBrowser {
		ordered := append([]int(nil), idx...)
		sort.SliceStable(ordered, func(a, b int) bool {
			return visits[ordered[a]].VisitedAt.Before(visits[ordered[b]].VisitedAt)
		})
		for i := 1; i < len(ordered); i++ {
			from := visits[ordered[i-1]].Domain()
			to := visits[ordered[i]].Domain()
			if from == to {
				continue
			}
			weights[hop{from, to}]++
		}
	}

	hops := make([]hop, 0, len(weights))
	for h := range weights {
		hops = append(hops, h)
	}
	sort.Slice(hops, func(i, j int) bool {
		if hops[i].from != hops[j].from {
			return hops[i].from < hops[j].from
		}
		return hops[i].to < hops[j].to
	})

	edges := make([]gexfEdge, 0, len(hops))
	for i, h := range hops {
		edges = append(edges, gexfEdge{
			ID:     strconv.Itoa(i),
			Source: nodeID[h.from],
			Target: nodeID[h.to],
			Weight: weights[h],
		})
	}

	doc := gexfDoc{
		XMLNS:   "http://www.gexf.net/1.2draft",
		Version: "1.2",
		Graph:   gexfGraph{Mode: "static", EdgeType: "directed", Nodes: nodes, Edges: edges},
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
