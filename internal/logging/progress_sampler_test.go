package logging

import "testing"

func TestProgressSamplerCadence(t *testing.T) {
	s := NewProgressSampler(3)

	var fired []int
	for i := 1; i <= 10; i++ {
		if s.Tick() {
			fired = append(fired, s.Count())
		}
	}

	want := []int{3, 6, 9}
	if len(fired) != len(want) {
		t.Fatalf("fired at %v, want %v", fired, want)
	}
	for i := range want {
		if fired[i] != want[i] {
			t.Fatalf("fired at %v, want %v", fired, want)
		}
	}
}

func TestProgressSamplerDisabled(t *testing.T) {
	s := NewProgressSampler(0)
	for i := 0; i < 10; i++ {
		if s.Tick() {
			t.Fatal("disabled sampler should never fire")
		}
	}
	if s.Count() != 10 {
		t.Fatalf("Count = %d, want 10", s.Count())
	}
}

func TestProgressSamplerReset(t *testing.T) {
	s := NewProgressSampler(2)
	s.Tick()
	s.Reset()
	if s.Tick() {
		t.Fatal("reset sampler should restart the cadence")
	}
	if !s.Tick() {
		t.Fatal("expected notice on second record after reset")
	}
}

func TestProgressSamplerNil(t *testing.T) {
	var s *ProgressSampler
	if s.Tick() {
		t.Fatal("nil sampler should never fire")
	}
	s.Reset()
	if s.Count() != 0 {
		t.Fatal("nil sampler count should be zero")
	}
}
