package logging

// ProgressSampler gates progress notices to a fixed record-count cadence.
type ProgressSampler struct {
	every int
	count int
}

// NewProgressSampler constructs a sampler that fires once every `every`
// records. Non-positive values disable sampling.
func NewProgressSampler(every int) *ProgressSampler {
	return &ProgressSampler{every: every}
}

// Tick records one processed record and reports whether a notice is due.
func (s *ProgressSampler) Tick() bool {
	if s == nil {
		return false
	}
	s.count++
	return s.every > 0 && s.count%s.every == 0
}

// Count returns the number of records seen since the last Reset.
func (s *ProgressSampler) Count() int {
	if s == nil {
		return 0
	}
	return s.count
}

// Reset clears the counter (e.g. when a new stream starts).
func (s *ProgressSampler) Reset() {
	if s == nil {
		return
	}
	s.count = 0
}
