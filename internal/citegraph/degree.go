package citegraph

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DegreeDistribution holds per-node in/out degrees in node order and their means.
// On an empty graph both means are 0.
type DegreeDistribution struct {
	Nodes   []string `json:"nodes"`
	In      []int    `json:"in"`
	Out     []int    `json:"out"`
	MeanIn  float64  `json:"mean_in"`
	MeanOut float64  `json:"mean_out"`
}

// Degrees computes the degree distribution of g.
func (g *Graph) Degrees() DegreeDistribution {
	n := g.Len()
	d := DegreeDistribution{
		Nodes: g.Nodes(),
		In:    make([]int, n),
		Out:   make([]int, n),
	}
	for i := 0; i < n; i++ {
		d.In[i] = len(g.in[i])
		d.Out[i] = len(g.out[i])
	}
	if n > 0 {
		d.MeanIn = stat.Mean(toFloats(d.In), nil)
		d.MeanOut = stat.Mean(toFloats(d.Out), nil)
	}
	return d
}

// RankSequence returns the degrees sorted in descending order, the y values
// of a rank/degree plot.
func RankSequence(degrees []int) []int {
	out := make([]int, len(degrees))
	copy(out, degrees)
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// Histogram is an equal-width binning of integer degrees.
// Counts[i] covers [Dividers[i], Dividers[i+1]).
type Histogram struct {
	Dividers []float64 `json:"dividers"`
	Counts   []float64 `json:"counts"`
}

// NewHistogram bins values into the given number of equal-width bins over
// [min, max+1). Empty input yields an empty histogram.
func NewHistogram(values []int, bins int) Histogram {
	if len(values) == 0 {
		return Histogram{}
	}
	if bins < 1 {
		bins = 1
	}

	x := toFloats(values)
	sort.Float64s(x)

	dividers := make([]float64, bins+1)
	floats.Span(dividers, x[0], x[len(x)-1]+1)
	counts := stat.Histogram(nil, dividers, x, nil)

	return Histogram{Dividers: dividers, Counts: counts}
}

func toFloats(v []int) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}
