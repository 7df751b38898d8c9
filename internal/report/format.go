package report

import (
	"fmt"
	"strings"

	"github.com/matsen/citenet/internal/metrics"
)

// TitleMaxLen is the display width for node names in human output.
const TitleMaxLen = 70

// headings mirror the section titles of the console report.
var headings = map[metrics.Name]string{
	metrics.MetricDegree:      "Degree Centrality",
	metrics.MetricEigenvector: "Eigenvector Centrality",
	metrics.MetricBetweenness: "Betweenness Centrality",
	metrics.MetricPageRank:    "Influential Papers (PageRank)",
}

// FormatHuman renders a summary as console text.
func FormatHuman(s Summary) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Records: %d (skipped %d)  Nodes: %d  Edges: %d\n", s.Records, s.Skipped, s.Nodes, s.Edges))

	for _, m := range s.Metrics {
		sb.WriteString(fmt.Sprintf("\nTop %d %s:\n", s.TopK, heading(m.Metric)))
		if m.Status == StatusFailed {
			sb.WriteString(fmt.Sprintf("  failed: %s\n", m.Error))
			continue
		}
		if len(m.Top) == 0 {
			sb.WriteString("  (no nodes)\n")
			continue
		}
		for i, e := range m.Top {
			sb.WriteString(fmt.Sprintf("  %d. [%.4f] %s\n", i+1, e.Score, truncateString(e.Node, TitleMaxLen)))
		}
	}

	sb.WriteString(fmt.Sprintf("\nAverage In-degree: %g\n", s.MeanInDegree))
	sb.WriteString(fmt.Sprintf("Average Out-degree: %g\n", s.MeanOutDegree))
	if s.TopNode != "" {
		sb.WriteString(fmt.Sprintf("Top node: %s\n", truncateString(s.TopNode, TitleMaxLen)))
	}
	return sb.String()
}

func heading(name metrics.Name) string {
	if h, ok := headings[name]; ok {
		return h
	}
	return string(name)
}

// truncateString truncates a string to maxLen runes, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
