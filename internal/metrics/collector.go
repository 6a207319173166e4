package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the generator's Prometheus series. A nil *Collector is
// valid and records nothing.
type Collector struct {
	gatherer prometheus.Gatherer

	SimulatedSeconds prometheus.Counter
	Records          prometheus.Counter
	Rounds           prometheus.Counter
	Dropped          *prometheus.CounterVec
	HoursPerSecond   prometheus.Gauge
}

// NewCollector registers against reg, defaulting to the global registry.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	simulated, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "attgen_simulated_seconds_total",
		Help: "Simulated seconds covered by converged scenarios.",
	}), "attgen_simulated_seconds_total")
	if err != nil {
		return nil, err
	}
	records, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "attgen_records_total",
		Help: "Records written to round files.",
	}), "attgen_records_total")
	if err != nil {
		return nil, err
	}
	rounds, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "attgen_rounds_total",
		Help: "Round files written.",
	}), "attgen_rounds_total")
	if err != nil {
		return nil, err
	}
	dropped, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "attgen_dropped_scenarios_total",
		Help: "Scenarios discarded after hitting the step cap, by worker.",
	}, []string{"worker"}), "attgen_dropped_scenarios_total")
	if err != nil {
		return nil, err
	}
	hours, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "attgen_hours_per_second",
		Help: "Simulated hours per wall-clock second since start.",
	}), "attgen_hours_per_second")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:         gatherer,
		SimulatedSeconds: simulated,
		Records:          records,
		Rounds:           rounds,
		Dropped:          dropped,
		HoursPerSecond:   hours,
	}, nil
}

func (c *Collector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func (c *Collector) ObserveBatch(worker string, simulated float64, dropped int) {
	if c == nil {
		return
	}
	c.SimulatedSeconds.Add(simulated)
	if dropped > 0 {
		c.Dropped.WithLabelValues(worker).Add(float64(dropped))
	}
}

func (c *Collector) ObserveRound(records int, r Report) {
	if c == nil {
		return
	}
	c.Rounds.Inc()
	c.Records.Add(float64(records))
	c.HoursPerSecond.Set(r.HoursPerSecond)
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
