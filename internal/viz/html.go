package viz

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/matsen/citenet/internal/citegraph"
	"github.com/matsen/citenet/internal/metrics"
)

// compiledTemplate is parsed at init time to fail fast on template errors.
var compiledTemplate *template.Template

func init() {
	compiledTemplate = template.Must(template.New("viz").Parse(htmlTemplate))
}

// CytoscapeCDN is the Cytoscape.js script used by graph pages.
const CytoscapeCDN = "https://unpkg.com/cytoscape@3/dist/cytoscape.min.js"

// HTMLOptions configures HTML generation.
type HTMLOptions struct {
	Title  string         // Page heading
	Scores metrics.Scores // Node sizing; usually degree centrality
}

// DefaultTitle is used when HTMLOptions.Title is empty.
const DefaultTitle = "Citation Network"

// NetworkHTML generates the page for the full network using precomputed positions.
func NetworkHTML(g *citegraph.Graph, pos Positions, opts HTMLOptions) (string, error) {
	if g == nil {
		return "", fmt.Errorf("graph cannot be nil")
	}
	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}
	return GenerateHTML(NewGraphData(g, pos, opts.Scores, ""), title)
}

// EgoHTML generates the page for the ego network of center: the node and
// every node reachable from it along one out-edge, laid out with seed.
func EgoHTML(g *citegraph.Graph, center string, seed uint64, opts HTMLOptions) (string, error) {
	if g == nil {
		return "", fmt.Errorf("graph cannot be nil")
	}
	ego, err := g.Ego(center, 1)
	if err != nil {
		return "", err
	}
	title := opts.Title
	if title == "" {
		title = fmt.Sprintf("Ego-Centric Network of '%s'", center)
	}
	return GenerateHTML(NewGraphData(ego, Layout(ego, seed), opts.Scores, center), title)
}

// GenerateHTML generates a self-contained HTML page for graph.
func GenerateHTML(graph *GraphData, title string) (string, error) {
	if graph == nil {
		return "", fmt.Errorf("graph cannot be nil")
	}

	if graph.IsEmpty() {
		return generateEmptyHTML(title), nil
	}

	graphJSON, err := graph.ToCytoscapeJSON()
	if err != nil {
		return "", err
	}

	data := templateData{
		Title:     title,
		ScriptSrc: CytoscapeCDN,
		GraphJSON: template.JS(graphJSON),
	}

	var buf bytes.Buffer
	if err := compiledTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering graph page: %w", err)
	}

	return buf.String(), nil
}

// templateData holds data for the HTML template.
type templateData struct {
	Title     string
	ScriptSrc string
	GraphJSON template.JS
}

// generateEmptyHTML returns HTML for an empty graph state.
func generateEmptyHTML(title string) string {
	return `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>` + template.HTMLEscapeString(title) + ` - Empty</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      display: flex;
      justify-content: center;
      align-items: center;
      height: 100vh;
      margin: 0;
      background: #f5f5f5;
    }
    .empty-state {
      text-align: center;
      color: #666;
    }
    .empty-state h2 {
      margin-bottom: 0.5em;
      color: #333;
    }
  </style>
</head>
<body>
  <div class="empty-state">
    <h2>No graph data</h2>
    <p>No publications were found for the requested profiles.</p>
  </div>
</body>
</html>`
}

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <script src="{{.ScriptSrc}}"></script>
  <style>
    * {
      box-sizing: border-box;
    }
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      margin: 0;
      padding: 0;
      background: #f5f5f5;
    }
    h1 {
      font-size: 18px;
      margin: 0;
      padding: 10px 16px;
      background: white;
      border-bottom: 1px solid #ddd;
    }
    #cy {
      width: 100%;
      height: calc(100vh - 44px);
      background: white;
    }
    #tooltip {
      position: absolute;
      display: none;
      background: white;
      border: 1px solid #ccc;
      border-radius: 4px;
      padding: 8px 12px;
      box-shadow: 0 2px 8px rgba(0,0,0,0.15);
      max-width: 320px;
      font-size: 13px;
      z-index: 1000;
      pointer-events: none;
    }
    #tooltip .type {
      font-size: 10px;
      text-transform: uppercase;
      color: #888;
      margin-bottom: 4px;
    }
    #tooltip .label {
      font-weight: bold;
      margin-bottom: 4px;
    }
    #tooltip .detail {
      color: #555;
      margin: 2px 0;
    }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>
  <div id="cy"></div>
  <div id="tooltip"></div>
  <script>
    (function() {
      const graphData = {{.GraphJSON}};

      const cy = cytoscape({
        container: document.getElementById('cy'),
        elements: graphData,
        style: [
          // Paper nodes - red circles
          {
            selector: 'node[type="paper"]',
            style: {
              'background-color': '#D9534F',
              'label': 'data(label)',
              'color': '#333',
              'font-size': '8px',
              'text-valign': 'bottom',
              'text-margin-y': '4px',
              'width': 'mapData(score, 0, 1, 16, 48)',
              'height': 'mapData(score, 0, 1, 16, 48)'
            }
          },
          // Bucket nodes - gray squares
          {
            selector: 'node[type="bucket"]',
            style: {
              'background-color': '#7F8C8D',
              'shape': 'round-rectangle',
              'label': 'data(label)',
              'color': '#333',
              'font-size': '9px',
              'font-weight': 'bold',
              'text-valign': 'bottom',
              'text-margin-y': '4px',
              'width': 'mapData(score, 0, 1, 20, 60)',
              'height': 'mapData(score, 0, 1, 20, 60)'
            }
          },
          // Ego center - orange
          {
            selector: 'node[?center]',
            style: {
              'background-color': '#E8923A',
              'border-width': 3,
              'border-color': '#333'
            }
          },
          {
            selector: 'edge',
            style: {
              'line-color': '#333',
              'target-arrow-color': '#333',
              'target-arrow-shape': 'triangle',
              'curve-style': 'bezier',
              'width': 1
            }
          },
          {
            selector: 'node.highlighted',
            style: {
              'border-width': 3,
              'border-color': '#ff6b6b'
            }
          },
          {
            selector: 'node.dimmed',
            style: {
              'opacity': 0.3
            }
          },
          {
            selector: 'edge.dimmed',
            style: {
              'opacity': 0.2
            }
          }
        ],
        layout: {
          name: 'preset',
          fit: true,
          padding: 30
        }
      });

      const tooltip = document.getElementById('tooltip');

      function showTooltip(evt, content) {
        tooltip.innerHTML = content;
        tooltip.style.display = 'block';
        const pos = evt.renderedPosition || evt.position;
        tooltip.style.left = (pos.x + 15) + 'px';
        tooltip.style.top = (pos.y + 59) + 'px';
      }

      function hideTooltip() {
        tooltip.style.display = 'none';
      }

      function getNodeTooltip(node) {
        const data = node.data();
        let html = '<div class="type">' + data.type + '</div>';
        html += '<div class="label">' + escapeHtml(data.name) + '</div>';
        html += '<div class="detail">In-degree: ' + data.inDegree + '</div>';
        html += '<div class="detail">Out-degree: ' + data.outDegree + '</div>';
        html += '<div class="detail">Degree centrality: ' + data.score.toFixed(4) + '</div>';
        return html;
      }

      function escapeHtml(str) {
        if (!str) return '';
        return str.replace(/&/g, '&amp;')
                  .replace(/</g, '&lt;')
                  .replace(/>/g, '&gt;')
                  .replace(/"/g, '&quot;');
      }

      cy.on('mouseover', 'node', function(evt) {
        showTooltip(evt, getNodeTooltip(evt.target));
      });

      cy.on('mouseout', 'node', function() {
        hideTooltip();
      });

      cy.on('tap', 'node', function(evt) {
        const node = evt.target;
        cy.elements().removeClass('highlighted dimmed');
        const neighborhood = node.neighborhood().add(node);
        neighborhood.addClass('highlighted');
        cy.elements().not(neighborhood).addClass('dimmed');
      });

      cy.on('tap', function(evt) {
        if (evt.target === cy) {
          cy.elements().removeClass('highlighted dimmed');
        }
      });
    })();
  </script>
</body>
</html>`
