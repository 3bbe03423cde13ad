package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SummaryRow holds descriptive statistics of one weather group. Mean,
// Median and Std are NaN when undefined (Std needs at least two values).
type SummaryRow struct {
	Weather string `json:"weather" yaml:"weather"`
	Count   int    `json:"count" yaml:"count"`
	Mean    Stat   `json:"mean" yaml:"mean"`
	Median  Stat   `json:"median" yaml:"median"`
	Std     Stat   `json:"std" yaml:"std"`
}

// Describe computes count, mean, median and sample standard deviation,
// each rounded to 2 decimals.
func Describe(weather string, values []float64) SummaryRow {
	row := SummaryRow{Weather: weather, Count: len(values)}
	nan := Stat(math.NaN())
	row.Mean, row.Median, row.Std = nan, nan, nan
	if len(values) == 0 {
		return row
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mean, std := stat.MeanStdDev(sorted, nil)
	row.Mean = Stat(round2(mean))
	row.Median = Stat(round2(quantile(sorted, 0.5)))
	if len(values) >= 2 {
		row.Std = Stat(round2(std))
	}
	return row
}

// SummarizeGroups describes each group in order; groups[i] belongs to weathers[i].
func SummarizeGroups(weathers []string, groups [][]float64) []SummaryRow {
	out := make([]SummaryRow, len(weathers))
	for i, w := range weathers {
		out[i] = Describe(w, groups[i])
	}
	return out
}

// quantile interpolates linearly between closest ranks of sorted values.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

// Histogram bins one series of values into equal-width bins spanning the
// series' own range. Values is the unbinned pass-through for renderers.
type Histogram struct {
	Label  string    `json:"label" yaml:"label"`
	Count  int       `json:"count" yaml:"count"`
	Edges  []float64 `json:"edges,omitempty" yaml:"edges,omitempty"`
	Counts []float64 `json:"counts,omitempty" yaml:"counts,omitempty"`
	Values []float64 `json:"-" yaml:"-"`
}

// NewHistogram bins values into the given number of bins. A constant
// series is widened by 0.5 on each side. Non-finite values are skipped.
func NewHistogram(label string, values []float64, bins int) Histogram {
	sorted := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			sorted = append(sorted, v)
		}
	}
	h := Histogram{Label: label, Count: len(sorted), Values: values}
	if len(sorted) == 0 || bins <= 0 {
		return h
	}
	sort.Float64s(sorted)
	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	edges := floats.Span(make([]float64, bins+1), lo, hi)
	// stat.Histogram treats the upper divider as exclusive.
	dividers := append([]float64(nil), edges...)
	dividers[bins] = math.Nextafter(hi, math.Inf(1))
	h.Edges = edges
	h.Counts = stat.Histogram(nil, dividers, sorted, nil)
	return h
}
