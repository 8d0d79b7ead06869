package bw

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Seed test 5: reverb tail from an impulse.
func TestReverbSeedTail(t *testing.T) {
	const fs = 48000.0

	c := NewReverbCoeffs()
	c.SetSampleRate(fs)
	var s ReverbState
	mem := make([]float32, c.MemReq())
	c.MemSet(&s, mem)
	c.SetPredelay(0.01)
	c.SetBandwidth(8000)
	c.SetDamping(4000)
	c.SetDecay(0.7)
	c.SetWet(1.0)
	c.ResetCoeffs()
	c.ResetState(&s)

	n := int(fs) + 100
	yl := make([]float32, n)
	yr := make([]float32, n)
	c.UpdateCoeffsCtrl()
	for i := 0; i < n; i++ {
		var x float32
		if i == 0 {
			x = 1
		}
		c.UpdateCoeffsAudio()
		l, r := c.Process1(&s, x, x)
		yl[i] = l
		yr[i] = r
		assert.True(t, IsFinite(l) && IsFinite(r), "non-finite reverb output at sample %d", i)
	}

	nonZero := false
	for _, v := range yl[:int(fs)] {
		if Absf(v) > 1e-6 {
			nonZero = true
			break
		}
	}
	assert.True(t, nonZero, "expected a non-zero tail for at least 1s")

	differs := false
	for i := range yl {
		if Absf(yl[i]-yr[i]) > 1e-6 {
			differs = true
			break
		}
	}
	assert.True(t, differs, "L and R should differ (non-symmetric tap scheme)")

	// Envelope decays monotonically in log-domain after the first 100ms,
	// measured over successive 10ms windows (smooths out the reflection
	// comb structure so spot nulls don't register as "growth").
	const winMs = 480
	start := int(0.1 * fs)
	var prevEnv float64 = math.Inf(1)
	first := true
	for i := start; i+winMs <= n; i += winMs {
		var sumSq float64
		for j := i; j < i+winMs; j++ {
			sumSq += float64(yl[j]) * float64(yl[j])
		}
		env := math.Sqrt(sumSq / winMs)
		if env <= 1e-9 {
			continue
		}
		logEnv := math.Log(env)
		if !first {
			assert.LessOrEqualf(t, logEnv, prevEnv+0.2,
				"reverb tail envelope should decay, window at sample %d grew", i)
		}
		prevEnv = logEnv
		first = false
	}
}
