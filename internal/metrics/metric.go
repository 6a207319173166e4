// Package metrics tracks controller effort and generator throughput.
package metrics

import "github.com/san-kum/attgen/internal/attitude"

// Metric accumulates over the ticks it observes until Reset.
type Metric interface {
	attitude.Observer
	Name() string
	Value() float64
	Reset()
}
