// Package report selects and formats the top-ranked nodes per metric.
package report

import (
	"sort"

	"github.com/matsen/citenet/internal/metrics"
)

// DefaultTopK is the number of entries reported per metric.
const DefaultTopK = 5

// Status values for a metric summary.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Entry is a node with its score.
type Entry struct {
	Node  string  `json:"node"`
	Score float64 `json:"score"`
}

// MetricSummary is the top-k list of one metric, or its failure.
type MetricSummary struct {
	Metric metrics.Name `json:"metric"`
	Status string       `json:"status"`
	Error  string       `json:"error,omitempty"`
	Top    []Entry      `json:"top"`
}

// Summary is the full console report of one run.
type Summary struct {
	TopK          int             `json:"top_k"`
	Records       int             `json:"records"`
	Skipped       int             `json:"skipped"`
	Nodes         int             `json:"nodes"`
	Edges         int             `json:"edges"`
	Metrics       []MetricSummary `json:"metrics"`
	MeanInDegree  float64         `json:"mean_in_degree"`
	MeanOutDegree float64         `json:"mean_out_degree"`
	TopNode       string          `json:"top_node,omitempty"` // Highest degree centrality
}

// TopK returns the k highest-scoring nodes in descending order. Ties keep
// the relative order of order (the graph's insertion order). Nodes in order
// without a score are ignored. k <= 0 yields an empty slice.
func TopK(scores metrics.Scores, order []string, k int) []Entry {
	entries := make([]Entry, 0, len(scores))
	for _, node := range order {
		if s, ok := scores[node]; ok {
			entries = append(entries, Entry{Node: node, Score: s})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	if k < 0 {
		k = 0
	}
	if k > len(entries) {
		k = len(entries)
	}
	return entries[:k]
}

// Build summarizes a metrics result with the top k entries per metric.
// records and skipped are the ingestion counts for the run.
func Build(result *metrics.Result, k, records, skipped int) Summary {
	order := result.Graph.Nodes()

	s := Summary{
		TopK:          k,
		Records:       records,
		Skipped:       skipped,
		Nodes:         result.Graph.Len(),
		Edges:         result.Graph.EdgeCount(),
		MeanInDegree:  result.Degrees.MeanIn,
		MeanOutDegree: result.Degrees.MeanOut,
	}

	for _, m := range result.Metrics {
		ms := MetricSummary{Metric: m.Name, Status: StatusOK, Top: []Entry{}}
		if m.Err != nil {
			ms.Status = StatusFailed
			ms.Error = m.Err.Error()
		} else {
			ms.Top = TopK(m.Scores, order, k)
		}
		s.Metrics = append(s.Metrics, ms)
	}

	s.TopNode = TopNode(result)
	return s
}

// TopNode returns the node with the highest degree centrality, first in
// insertion order on ties, or "" when degree centrality is unavailable.
func TopNode(result *metrics.Result) string {
	m, ok := result.Metric(metrics.MetricDegree)
	if !ok || !m.OK() {
		return ""
	}
	top := TopK(m.Scores, result.Graph.Nodes(), 1)
	if len(top) == 0 {
		return ""
	}
	return top[0].Node
}
