// Package simulation implements the mock telemetry layer: bounded random walks,
// the scenario loss model and the small derived datasets the dashboard panels render.
package simulation

import (
	"math"
	"math/rand/v2"
	"sync"
)

// Source is the random source every generator draws from.
// *rand.Rand satisfies it; tests inject scripted sources.
type Source interface {
	Float64() float64
}

// NewSource returns a non-reproducible production source safe for concurrent use
func NewSource() Source {
	return &lockedSource{r: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

// Defaults for anomaly spikes
const (
	DefaultSpikeProbability = 0.15
	DefaultSpikeFactor      = 1.5
)

// Walk describes a bounded noisy series
type Walk struct {
	Count            int
	Start            float64
	Step             float64
	Min              float64
	Max              float64
	SpikeProbability float64
	SpikeFactor      float64
}

// Sample is one emitted walk value
type Sample struct {
	Value float64
	Spike bool
}

// Generate produces Count samples. The walk state is clamped to [Min,Max] on every
// step; a spike multiplies only the emitted sample, which is clamped again.
func (w Walk) Generate(rng Source) []Sample {
	if w.Count <= 0 {
		return []Sample{}
	}

	samples := make([]Sample, 0, w.Count)
	current := clamp(w.Start, w.Min, w.Max)

	for i := 0; i < w.Count; i++ {
		current = w.step(current, rng)
		value, spiked := w.spike(current, rng)
		samples = append(samples, Sample{Value: value, Spike: spiked})
	}
	return samples
}

func (w Walk) step(prev float64, rng Source) float64 {
	return clamp(prev+(rng.Float64()-0.5)*w.Step, w.Min, w.Max)
}

func (w Walk) spike(v float64, rng Source) (float64, bool) {
	if w.SpikeProbability <= 0 {
		return v, false
	}
	if rng.Float64() >= w.SpikeProbability {
		return v, false
	}
	return clamp(v*w.SpikeFactor, w.Min, w.Max), true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
