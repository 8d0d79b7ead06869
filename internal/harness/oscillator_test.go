package harness

import "testing"

func TestToneSourceFillMonoAmplitude(t *testing.T) {
	s := NewToneSource(100, 1000, 0.5, 1.0)
	buf := make([]float32, 1000)
	s.FillMono(buf)

	var peak float32
	for _, v := range buf {
		if v > peak {
			peak = v
		}
		if v < -peak {
			peak = -v
		}
	}
	if peak < 0.45 || peak > 0.51 {
		t.Errorf("expected peak near amplitude 0.5, got %f", peak)
	}
}

func TestToneSourceFinishesAfterDuration(t *testing.T) {
	s := NewToneSource(440, 1000, 1.0, 0.1) // 100 samples
	buf := make([]float32, 50)
	s.FillMono(buf)
	if s.Finished() {
		t.Error("should not be finished halfway through")
	}
	s.FillMono(buf)
	if !s.Finished() {
		t.Error("should be finished after totalSamples elapsed")
	}
}

func TestToneSourceProcessInterleavesStereo(t *testing.T) {
	s := NewToneSource(200, 1000, 1.0, 1.0)
	dst := make([]float32, 8) // 4 frames
	s.Process(dst)
	for i := 0; i+1 < len(dst); i += 2 {
		if dst[i] != dst[i+1] {
			t.Errorf("frame %d: L/R should match for a mono tone, got %v/%v", i/2, dst[i], dst[i+1])
		}
	}
}

func TestSweepLinearRamp(t *testing.T) {
	sw := &Sweep{From: 0, To: 1, Samples: 5}
	want := []float32{0, 0.25, 0.5, 0.75, 1}
	for i, w := range want {
		got := sw.Next()
		if d := got - w; d > 1e-6 || d < -1e-6 {
			t.Errorf("sample %d: got %v, want %v", i, got, w)
		}
	}
	if !sw.Done() {
		t.Error("expected Done() after Samples calls")
	}
}

func TestSweepSingleSampleHoldsTo(t *testing.T) {
	sw := &Sweep{From: 0, To: 9, Samples: 1}
	if v := sw.Next(); v != 9 {
		t.Errorf("single-sample sweep should jump straight to To, got %v", v)
	}
}
