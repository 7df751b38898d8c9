package viz

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/matsen/citenet/internal/citegraph"
	"github.com/matsen/citenet/internal/metrics"
)

// Output file names written by Render.
const (
	NetworkFile = "network.html"
	EgoFile     = "ego.html"
	DegreesFile = "degrees.html"
)

// RenderOptions configures Render.
type RenderOptions struct {
	Title  string
	Seed   uint64
	Bins   int
	Scores metrics.Scores // Node sizing; usually degree centrality
}

// Render writes the network, ego network and degree pages into dir and
// returns the written paths. The ego page is skipped when center is empty.
func Render(dir string, g *citegraph.Graph, center string, opts RenderOptions) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	htmlOpts := HTMLOptions{Title: opts.Title, Scores: opts.Scores}
	var written []string
	write := func(name, content string) error {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
		written = append(written, path)
		return nil
	}

	network, err := NetworkHTML(g, Layout(g, opts.Seed), htmlOpts)
	if err != nil {
		return written, err
	}
	if err := write(NetworkFile, network); err != nil {
		return written, err
	}

	if center != "" {
		ego, err := EgoHTML(g, center, opts.Seed, HTMLOptions{Scores: opts.Scores})
		if err != nil {
			return written, err
		}
		if err := write(EgoFile, ego); err != nil {
			return written, err
		}
	}

	degrees, err := DegreeChartsHTML(g.Degrees(), opts.Bins)
	if err != nil {
		return written, err
	}
	if err := write(DegreesFile, degrees); err != nil {
		return written, err
	}

	return written, nil
}
