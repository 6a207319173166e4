package record

import "math"

// Summary describes the convergence times in a set of records.
type Summary struct {
	Count int
	Mean  float64
	Min   float64
	Max   float64
}

func Summarize(records []Record) Summary {
	if len(records) == 0 {
		return Summary{}
	}
	s := Summary{Count: len(records), Min: math.Inf(1), Max: math.Inf(-1)}
	var sum float64
	for _, r := range records {
		t := float64(r.Time)
		sum += t
		s.Min = math.Min(s.Min, t)
		s.Max = math.Max(s.Max, t)
	}
	s.Mean = sum / float64(len(records))
	return s
}

// Histogram buckets convergence times into bins equal-width buckets over
// (0, limit]. Times above limit land in the last bucket.
func Histogram(records []Record, bins int, limit float64) []float64 {
	if bins <= 0 || limit <= 0 {
		return nil
	}
	out := make([]float64, bins)
	width := limit / float64(bins)
	for _, r := range records {
		i := int(float64(r.Time) / width)
		if i >= bins {
			i = bins - 1
		}
		if i < 0 {
			i = 0
		}
		out[i]++
	}
	return out
}
