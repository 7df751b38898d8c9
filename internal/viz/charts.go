package viz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/matsen/citenet/internal/citegraph"
)

// DefaultBins is the number of histogram bins per degree chart.
const DefaultBins = 20

// ChartJSCDN is the Chart.js script used by the degree page.
const ChartJSCDN = "https://cdn.jsdelivr.net/npm/chart.js@4"

var compiledChartsTemplate = template.Must(template.New("charts").Parse(chartsTemplate))

// histogramSeries is a Chart.js bar dataset.
type histogramSeries struct {
	Labels []string  `json:"labels"`
	Counts []float64 `json:"counts"`
}

// rankPoint is one point of a log-log rank plot.
type rankPoint struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// degreeCharts is the data embedded in the degree page.
type degreeCharts struct {
	InHist  histogramSeries `json:"inHist"`
	OutHist histogramSeries `json:"outHist"`
	InRank  []rankPoint     `json:"inRank"`
	OutRank []rankPoint     `json:"outRank"`
}

// DegreeChartsHTML generates a page with in- and out-degree histograms and
// log-log rank plots of the degree sequences.
func DegreeChartsHTML(dist citegraph.DegreeDistribution, bins int) (string, error) {
	if bins <= 0 {
		bins = DefaultBins
	}

	charts := degreeCharts{
		InHist:  newHistogramSeries(citegraph.NewHistogram(dist.In, bins)),
		OutHist: newHistogramSeries(citegraph.NewHistogram(dist.Out, bins)),
		InRank:  rankPoints(citegraph.RankSequence(dist.In)),
		OutRank: rankPoints(citegraph.RankSequence(dist.Out)),
	}

	chartJSON, err := json.Marshal(charts)
	if err != nil {
		return "", fmt.Errorf("marshaling degree charts to JSON: %w", err)
	}

	data := chartsTemplateData{
		ScriptSrc: ChartJSCDN,
		ChartJSON: template.JS(chartJSON),
		Nodes:     len(dist.Nodes),
		MeanIn:    dist.MeanIn,
		MeanOut:   dist.MeanOut,
	}

	var buf bytes.Buffer
	if err := compiledChartsTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering degree page: %w", err)
	}
	return buf.String(), nil
}

func newHistogramSeries(h citegraph.Histogram) histogramSeries {
	s := histogramSeries{
		Labels: make([]string, len(h.Counts)),
		Counts: h.Counts,
	}
	if s.Counts == nil {
		s.Counts = []float64{}
	}
	for i := range h.Counts {
		s.Labels[i] = fmt.Sprintf("%.2f", h.Dividers[i])
	}
	return s
}

// rankPoints pairs each degree with its 1-based rank. Zero degrees have no
// place on a log axis and are dropped.
func rankPoints(ranked []int) []rankPoint {
	pts := make([]rankPoint, 0, len(ranked))
	for i, d := range ranked {
		if d > 0 {
			pts = append(pts, rankPoint{X: i + 1, Y: d})
		}
	}
	return pts
}

type chartsTemplateData struct {
	ScriptSrc string
	ChartJSON template.JS
	Nodes     int
	MeanIn    float64
	MeanOut   float64
}

const chartsTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Degree Distributions</title>
  <script src="{{.ScriptSrc}}"></script>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      margin: 0;
      padding: 16px;
      background: #f5f5f5;
    }
    .summary {
      color: #555;
      margin-bottom: 12px;
    }
    .grid {
      display: grid;
      grid-template-columns: 1fr 1fr;
      gap: 16px;
    }
    .panel {
      background: white;
      border: 1px solid #ddd;
      border-radius: 4px;
      padding: 12px;
    }
  </style>
</head>
<body>
  <h1>Degree Distributions</h1>
  <div class="summary">Nodes: {{.Nodes}} &middot; Average in-degree: {{printf "%.4f" .MeanIn}} &middot; Average out-degree: {{printf "%.4f" .MeanOut}}</div>
  <div class="grid">
    <div class="panel"><canvas id="inHist"></canvas></div>
    <div class="panel"><canvas id="outHist"></canvas></div>
    <div class="panel"><canvas id="inRank"></canvas></div>
    <div class="panel"><canvas id="outRank"></canvas></div>
  </div>
  <script>
    (function() {
      const data = {{.ChartJSON}};

      function histogram(id, series, title, xLabel, color) {
        new Chart(document.getElementById(id), {
          type: 'bar',
          data: {
            labels: series.labels,
            datasets: [{ label: 'Frequency', data: series.counts, backgroundColor: color }]
          },
          options: {
            plugins: { title: { display: true, text: title }, legend: { display: false } },
            scales: {
              x: { title: { display: true, text: xLabel } },
              y: { title: { display: true, text: 'Frequency' }, beginAtZero: true }
            }
          }
        });
      }

      function rankPlot(id, points, title, yLabel, color) {
        new Chart(document.getElementById(id), {
          type: 'line',
          data: {
            datasets: [{ label: yLabel, data: points, borderColor: color, backgroundColor: color, showLine: true }]
          },
          options: {
            parsing: false,
            plugins: { title: { display: true, text: title }, legend: { display: false } },
            scales: {
              x: { type: 'logarithmic', title: { display: true, text: 'Rank' } },
              y: { type: 'logarithmic', title: { display: true, text: yLabel } }
            }
          }
        });
      }

      histogram('inHist', data.inHist, 'In-degree Distribution', 'In-degree', 'rgba(0, 0, 255, 0.7)');
      histogram('outHist', data.outHist, 'Out-degree Distribution', 'Out-degree', 'rgba(0, 128, 0, 0.7)');
      rankPlot('inRank', data.inRank, 'Log-Log Distribution of In-degree', 'In-degree', 'blue');
      rankPlot('outRank', data.outRank, 'Log-Log Distribution of Out-degree', 'Out-degree', 'green');
    })();
  </script>
</body>
</html>`
