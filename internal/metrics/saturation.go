package metrics

import (
	"github.com/chewxy/math32"

	"github.com/san-kum/attgen/internal/engine"
)

// Saturation is the fraction of ticks where at least one rotation command
// sat at its limit.
type Saturation struct {
	name      string
	saturated int
	samples   int
}

func NewSaturation() *Saturation {
	return &Saturation{
		name: "saturation",
	}
}

func (s *Saturation) Name() string {
	return s.name
}

func (s *Saturation) OnTick(_ int, _ float32, u engine.CarControls) {
	s.samples++
	for _, v := range [3]float32{u.Pitch, u.Yaw, u.Roll} {
		if math32.Abs(v) >= 1 {
			s.saturated++
			break
		}
	}
}

func (s *Saturation) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return float64(s.saturated) / float64(s.samples)
}

func (s *Saturation) Reset() {
	s.saturated = 0
	s.samples = 0
}
