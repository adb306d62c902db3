package draws

import (
	"math"

	"github.com/danielpatrickdp/mandeval/internal/model"
	"github.com/danielpatrickdp/mandeval/internal/rng"
)

// #region sampler
// Sampler turns a uniform stream into standard-normal variates.
type Sampler struct {
	src rng.Source
}

// NewSampler creates a sampler reading from src. The sampler takes ownership of
// the stream: nothing else should draw from src while the sampler is in use.
func NewSampler(src rng.Source) *Sampler {
	return &Sampler{src: src}
}

// Sample returns one standard-normal variate using the cosine branch of
// Box–Muller. Exactly two uniforms are consumed unless one of them is 0.
func (s *Sampler) Sample() float64 {
	u := 0.0
	for u == 0 {
		u = s.src.Next()
	}
	v := 0.0
	for v == 0 {
		v = s.src.Next()
	}
	return math.Sqrt(-2*math.Log(u)) * math.Cos(2*math.Pi*v)
}

// BuildPanel draws n records, filling each record's coefficients in declaration order.
func (s *Sampler) BuildPanel(n int) Panel {
	if n < 0 {
		n = 0
	}
	p := make(Panel, n)
	for i := range p {
		for _, c := range model.Coefficients() {
			p[i][c] = s.Sample()
		}
	}
	return p
}
// #endregion sampler

// #region build
// Build creates the panel for (seed, n) from a freshly seeded generator.
func Build(seed uint32, n int) Panel {
	return NewSampler(rng.New(seed)).BuildPanel(n)
}
// #endregion build
