package metrics

import (
	"github.com/chewxy/math32"

	"github.com/san-kum/attgen/internal/engine"
)

// ControlEffort is the mean summed magnitude of the rotation commands per
// tick.
type ControlEffort struct {
	name    string
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{
		name: "control_effort",
	}
}

func (c *ControlEffort) Name() string {
	return c.name
}

func (c *ControlEffort) OnTick(_ int, _ float32, u engine.CarControls) {
	c.sum += float64(math32.Abs(u.Pitch) + math32.Abs(u.Yaw) + math32.Abs(u.Roll))
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}
