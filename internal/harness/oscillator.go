package harness

import "math"

// ToneSource is a finite stereo sine-tone generator used as the demo's dry
// input signal in the absence of a real audio file. It implements
// SampleSource/FinishingSource so it can drive StreamReader directly, or
// be called sample-by-sample to fill the buffers a bw chain processes.
type ToneSource struct {
	freqHz     float64
	sampleRate float64
	amplitude  float64
	phase      float64
	sample     int64
	totalSamples int64
}

// NewToneSource builds a tone generator that runs for duration seconds at
// freqHz, sampleRate Hz, peaking at amplitude (normally in [0, 1]).
func NewToneSource(freqHz, sampleRate, amplitude, duration float64) *ToneSource {
	return &ToneSource{
		freqHz:       freqHz,
		sampleRate:   sampleRate,
		amplitude:    amplitude,
		totalSamples: int64(duration * sampleRate),
	}
}

// Process fills dst with interleaved stereo samples, advancing the
// internal phase accumulator. Samples past the configured duration are
// silence.
func (s *ToneSource) Process(dst []float32) {
	for i := 0; i+1 < len(dst); i += 2 {
		var v float32
		if s.sample < s.totalSamples {
			v = float32(s.amplitude * math.Sin(2*math.Pi*s.phase))
			s.phase += s.freqHz / s.sampleRate
			if s.phase >= 1 {
				s.phase -= math.Floor(s.phase)
			}
		}
		dst[i] = v
		dst[i+1] = v
		s.sample++
	}
}

// Finished reports whether the tone's configured duration has elapsed.
func (s *ToneSource) Finished() bool {
	return s.sample >= s.totalSamples
}

// FillMono writes n samples of the tone into buf (mono, not interleaved),
// for feeding directly into a bw.*.Process call.
func (s *ToneSource) FillMono(buf []float32) {
	for i := range buf {
		var v float32
		if s.sample < s.totalSamples {
			v = float32(s.amplitude * math.Sin(2*math.Pi*s.phase))
			s.phase += s.freqHz / s.sampleRate
			if s.phase >= 1 {
				s.phase -= math.Floor(s.phase)
			}
		}
		buf[i] = v
		s.sample++
	}
}

// Sweep linearly ramps a control parameter from From to To over Samples
// samples, then holds at To, the kind of parameter ramp oscpulse_test.go
// drives by hand for pulse width.
type Sweep struct {
	From, To float32
	Samples  int

	n int
}

// Next returns the next value in the ramp and advances it by one sample.
func (s *Sweep) Next() float32 {
	if s.Samples <= 1 {
		s.n++
		return s.To
	}
	t := float32(s.n) / float32(s.Samples-1)
	if t > 1 {
		t = 1
	}
	s.n++
	return s.From + (s.To-s.From)*t
}

// Done reports whether the ramp has reached its final value.
func (s *Sweep) Done() bool { return s.n >= s.Samples }
