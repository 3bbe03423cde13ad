package analysis

import (
	"math/rand/v2"
	"sort"
	"time"
)

// Point is one sampled observation placed for a strip plot. X is the
// weather group's index plus display jitter; it has no statistical meaning.
type Point struct {
	Weather string  `json:"weather" yaml:"weather"`
	Group   int     `json:"group" yaml:"group"`
	X       float64 `json:"x" yaml:"x"`
	Y       float64 `json:"y" yaml:"y"`
}

// Projector caps the number of points drawn per group. Sampling is seeded
// identically for every group so repeated calls select the same rows.
type Projector struct {
	Cap    int
	Seed   uint64
	Jitter float64
	rng    *rand.Rand
}

// NewProjector builds a projector. A nil jitter source is seeded from the clock.
func NewProjector(limit int, seed uint64, jitter float64, src rand.Source) *Projector {
	if src == nil {
		now := uint64(time.Now().UnixNano())
		src = rand.NewPCG(now, now>>32)
	}
	return &Projector{Cap: limit, Seed: seed, Jitter: jitter, rng: rand.New(src)}
}

// Sample returns the indices kept out of n rows, in ascending order. When
// n exceeds the cap exactly Cap indices are drawn without replacement.
func (p *Projector) Sample(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	if p.Cap <= 0 || n <= p.Cap {
		return idx
	}
	r := rand.New(rand.NewPCG(p.Seed, p.Seed))
	for i := 0; i < p.Cap; i++ {
		j := i + r.IntN(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	picked := idx[:p.Cap]
	sort.Ints(picked)
	return picked
}

// Project samples each group and positions the kept values at their
// group index. groups[i] holds the values of weathers[i].
func (p *Projector) Project(weathers []string, groups [][]float64) []Point {
	var out []Point
	for g, w := range weathers {
		vals := groups[g]
		for _, i := range p.Sample(len(vals)) {
			out = append(out, Point{Weather: w, Group: g, X: float64(g) + p.offset(), Y: vals[i]})
		}
	}
	return out
}

// offset draws uniform jitter in [-Jitter, Jitter).
func (p *Projector) offset() float64 {
	if p.Jitter == 0 {
		return 0
	}
	return (p.rng.Float64()*2 - 1) * p.Jitter
}
