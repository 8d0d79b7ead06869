package bw

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

// SVF complementarity: at all cutoffs within (20, fs/4), LP+HP summed
// equals the notch output within 1e-4 relative.
func TestSVFComplementarity(t *testing.T) {
	const fs = 48000.0
	rapid.Check(t, func(t *rapid.T) {
		fc := rapid.Float32Range(20, fs/4).Draw(t, "fc")
		q := rapid.Float32Range(0.1, 10).Draw(t, "q")

		svf := NewSVFCoeffs()
		svf.SetSampleRate(fs)
		svf.SetCutoff(fc)
		svf.SetQ(q)
		svf.ResetCoeffs()
		var svfState SVFState
		svf.ResetState(&svfState, 0)

		notch := NewNotchCoeffs()
		notch.SetSampleRate(fs)
		notch.SetCutoff(fc)
		notch.SetQ(q)
		notch.ResetCoeffs()
		var notchState NotchState
		notch.ResetState(&notchState, 0)

		svf.UpdateCoeffsCtrl()
		notch.UpdateCoeffsCtrl()
		for i := 0; i < 256; i++ {
			x := rapid.Float32Range(-1, 1).Draw(t, "x")
			svf.UpdateCoeffsAudio()
			notch.UpdateCoeffsAudio()
			lp, _, hp := svf.Process1(&svfState, x)
			n := notch.Process1(&notchState, x)
			sum := lp + hp
			tol := float32(1e-4) * (Absf(sum) + 1)
			assert.LessOrEqualf(t, float64(Absf(sum-n)), float64(tol),
				"lp+hp=%v != notch=%v at fc=%v q=%v sample %d", sum, n, fc, q, i)
		}
	})
}

// Seed test 2: SVF notch rejects its center frequency.
func TestSVFSeedNotchAt1kHz(t *testing.T) {
	const fs = 48000.0
	const f0 = 1000.0

	c := NewSVFCoeffs()
	c.SetSampleRate(fs)
	c.SetCutoff(f0)
	c.SetQ(1.0)
	c.ResetCoeffs()
	var s SVFState
	c.ResetState(&s, 0)
	c.UpdateCoeffsCtrl()

	const settle = 1024
	const n = 4096
	var sumSq float64
	for i := 0; i < settle+n; i++ {
		x := float32(math.Sin(2 * math.Pi * f0 * float64(i) / fs))
		c.UpdateCoeffsAudio()
		lp, _, hp := c.Process1(&s, x)
		if i >= settle {
			y := float64(lp + hp)
			sumSq += y * y
		}
	}
	rms := math.Sqrt(sumSq / n)
	assert.Lessf(t, rms, 0.05, "notch rejection RMS too high: %v", rms)
}
