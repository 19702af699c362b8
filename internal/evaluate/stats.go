package evaluate

import (
	"math"
	"slices"
)

// Accumulator is the running fold over evaluated errors.
type Accumulator struct {
	thresholds []float64
	counts     []int
	meters     []float64
}

// NewAccumulator returns an empty accumulator for the given thresholds (km).
func NewAccumulator(thresholdsKm []float64) *Accumulator {
	return &Accumulator{
		thresholds: slices.Clone(thresholdsKm),
		counts:     make([]int, len(thresholdsKm)),
	}
}

// Add folds one error distance, in metres.
func (a *Accumulator) Add(meters float64) {
	a.meters = append(a.meters, meters)
	km := meters / 1000
	for i, t := range a.thresholds {
		if km < t {
			a.counts[i]++
		}
	}
}

// Len returns the number of folded errors.
func (a *Accumulator) Len() int { return len(a.meters) }

// Tier is the number of errors strictly below one threshold.
type Tier struct {
	Km      float64
	Count   int
	Percent float64
}

// Summary holds the aggregate statistics of one evaluation, in kilometres.
// With no records every statistic is NaN and every percentage is zero.
type Summary struct {
	Count  int
	Tiers  []Tier
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
	Q1     float64
	Q2     float64
	Q3     float64
}

// Summarize computes the report statistics of acc.
func Summarize(acc *Accumulator) Summary {
	n := len(acc.meters)
	s := Summary{Count: n, Tiers: make([]Tier, len(acc.thresholds))}
	for i, t := range acc.thresholds {
		s.Tiers[i] = Tier{Km: t, Count: acc.counts[i]}
		if n > 0 {
			s.Tiers[i].Percent = float64(acc.counts[i]) * 100 / float64(n)
		}
	}
	if n == 0 {
		nan := math.NaN()
		s.Min, s.Max, s.Mean, s.StdDev = nan, nan, nan, nan
		s.Q1, s.Q2, s.Q3 = nan, nan, nan
		return s
	}

	sorted := slices.Clone(acc.meters)
	slices.Sort(sorted)
	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(n)
	var sq float64
	for _, v := range sorted {
		d := v - mean
		sq += d * d
	}

	s.Min = sorted[0] / 1000
	s.Max = sorted[n-1] / 1000
	s.Mean = mean / 1000
	s.StdDev = math.Sqrt(sq/float64(n)) / 1000
	s.Q1 = percentile(sorted, 25) / 1000
	s.Q2 = percentile(sorted, 50) / 1000
	s.Q3 = percentile(sorted, 75) / 1000
	return s
}

// percentile interpolates linearly between the closest ranks of sorted, with
// rank p/100*(n-1).
func percentile(sorted []float64, p float64) float64 {
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (sorted[hi]-sorted[lo])*(rank-float64(lo))
}
