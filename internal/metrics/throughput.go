package metrics

import "time"

// Throughput relates simulated time to wall-clock time since start.
type Throughput struct {
	start     time.Time
	simulated float64
}

func NewThroughput(start time.Time) *Throughput {
	return &Throughput{start: start}
}

// Add records simulated seconds.
func (t *Throughput) Add(seconds float64) {
	t.simulated += seconds
}

// Report is a throughput snapshot.
type Report struct {
	SimulatedDays  float64
	HoursPerSecond float64
	Wall           time.Duration
}

func (t *Throughput) Report(now time.Time) Report {
	wall := now.Sub(t.start)
	r := Report{
		SimulatedDays: t.simulated / 86400,
		Wall:          wall,
	}
	if wall > 0 {
		r.HoursPerSecond = t.simulated / 3600 / wall.Seconds()
	}
	return r
}
