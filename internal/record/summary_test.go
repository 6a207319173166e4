package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))

	s := Summarize([]Record{{Time: 0.5}, {Time: 1.5}, {Time: 1}})
	assert.Equal(t, 3, s.Count)
	assert.InDelta(t, 1.0, s.Mean, 1e-9)
	assert.InDelta(t, 0.5, s.Min, 1e-9)
	assert.InDelta(t, 1.5, s.Max, 1e-9)
}

func TestHistogram(t *testing.T) {
	records := []Record{{Time: 0.1}, {Time: 0.9}, {Time: 1.2}, {Time: 2.9}, {Time: 3}, {Time: 40}}

	h := Histogram(records, 3, 3)
	assert.Equal(t, []float64{2, 1, 3}, h)

	assert.Nil(t, Histogram(records, 0, 3))
	assert.Nil(t, Histogram(records, 3, 0))
}
