// SPDX-License-Identifier: EPL-2.0

package audio

import "sync"

// Gain is a Source stage that scales sample amplitude by a runtime-tunable
// factor. It sits between a source and a sink to apply amplification past
// the sink's native volume ceiling; at factor 1.0 it is a pass-through.
//
// The factor can be changed while another goroutine is reading; each
// ReadSamples call applies one consistent factor for the whole buffer.
type Gain struct {
	src Source

	mtx    sync.Mutex
	factor float32
}

func NewGain(src Source, factor float32) *Gain {
	if factor < 0 {
		factor = 0
	}
	return &Gain{src: src, factor: factor}
}

func (g *Gain) SampleRate() int { return g.src.SampleRate() }
func (g *Gain) Channels() int   { return g.src.Channels() }
func (g *Gain) BufSize() int    { return g.src.BufSize() }

func (g *Gain) Close() error {
	return g.src.Close()
}

// SetFactor updates the gain factor. Negative values clamp to 0.
func (g *Gain) SetFactor(factor float32) {
	if factor < 0 {
		factor = 0
	}

	g.mtx.Lock()
	g.factor = factor
	g.mtx.Unlock()
}

// Factor returns the current gain factor.
func (g *Gain) Factor() float32 {
	g.mtx.Lock()
	defer g.mtx.Unlock()

	return g.factor
}

func (g *Gain) ReadSamples(dst []float32) (int, error) {
	n, err := g.src.ReadSamples(dst)

	g.mtx.Lock()
	factor := g.factor
	g.mtx.Unlock()

	if factor != 1.0 {
		for i := 0; i < n; i++ {
			dst[i] *= factor
		}
	}

	return n, err
}
