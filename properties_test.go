package bw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

// These tests check the universal properties every primitive in this
// package is expected to satisfy, exercised here against a representative
// cross-section (a smoothed coefficient with no state, a one-pole, a
// stateful filter, and a delay line) rather than against all thirty-odd
// primitives mechanically.

func TestFinitenessOnePole(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := NewOnePoleCoeffs()
		c.SetSampleRate(48000)
		c.SetCutoff(rapid.Float32Range(1, 20000).Draw(t, "fc"))
		c.ResetCoeffs()
		var s OnePoleState
		c.ResetState(&s, 0)
		n := rapid.IntRange(1, 1024).Draw(t, "n")
		for i := 0; i < n; i++ {
			x := rapid.Float32Range(-10, 10).Draw(t, "x")
			y := c.Process1(&s, x)
			assert.True(t, IsFinite(y), "non-finite output at sample %d for input %v", i, x)
		}
	})
}

func TestFinitenessSVF(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := NewSVFCoeffs()
		c.SetSampleRate(48000)
		c.SetCutoff(rapid.Float32Range(20, 12000).Draw(t, "fc"))
		c.SetQ(rapid.Float32Range(0.1, 20).Draw(t, "q"))
		c.ResetCoeffs()
		var s SVFState
		c.ResetState(&s, 0)
		n := rapid.IntRange(1, 1024).Draw(t, "n")
		for i := 0; i < n; i++ {
			x := rapid.Float32Range(-2, 2).Draw(t, "x")
			lp, bp, hp := c.Process1(&s, x)
			assert.True(t, IsFinite(lp) && IsFinite(bp) && IsFinite(hp),
				"non-finite output at sample %d for input %v", i, x)
		}
	})
}

func TestFinitenessDelay(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := NewDelayCoeffs(0.01)
		c.SetSampleRate(48000)
		var s DelayState
		mem := make([]float32, c.MemReq())
		c.MemSet(&s, mem)
		c.SetDelay(rapid.Float32Range(0, 0.01).Draw(t, "delay"))
		c.ResetCoeffs()
		c.ResetState(&s, 0)
		n := rapid.IntRange(1, 1024).Draw(t, "n")
		c.UpdateCoeffsCtrl()
		for i := 0; i < n; i++ {
			x := rapid.Float32Range(-10, 10).Draw(t, "x")
			c.UpdateCoeffsAudio()
			y := c.Process1(&s, x)
			assert.True(t, IsFinite(y), "non-finite output at sample %d for input %v", i, x)
		}
	})
}

func TestDefaultPassthroughRingMod(t *testing.T) {
	c := NewRingModCoeffs()
	c.SetSampleRate(48000)
	c.ResetCoeffs()
	for i := 0; i < 10; i++ {
		c.UpdateCoeffsCtrl()
		c.UpdateCoeffsAudio()
		x := float32(i) * 0.1
		y := c.Process1(x, 0.37)
		assert.InDeltaf(t, x, y, 1e-5, "amount=0 should pass the carrier through unchanged")
	}
}

func TestDefaultPassthroughCompRatioOne(t *testing.T) {
	c := NewCompCoeffs()
	c.SetSampleRate(48000)
	c.ResetCoeffs()
	var s CompState
	c.ResetState(&s, 0, 0)
	for i := 0; i < 2000; i++ {
		c.UpdateCoeffsCtrl()
		c.UpdateCoeffsAudio()
		y := c.Process1(&s, 0.5, 0.5)
		assert.InDeltaf(t, 0.5, y, 1e-5, "ratio=1, thresh=1, makeup=1 should be a pure passthrough")
	}
}

func TestResetSteadyStateOnePole(t *testing.T) {
	c := NewOnePoleCoeffs()
	c.SetSampleRate(48000)
	c.SetCutoff(500)
	c.ResetCoeffs()
	for _, x0 := range []float32{-1, 0, 0.25, 1, 3} {
		var s OnePoleState
		y0 := c.ResetState(&s, x0)
		c.UpdateCoeffsCtrl()
		c.UpdateCoeffsAudio()
		y1 := c.Process1(&s, x0)
		assert.InDeltaf(t, y0, y1, 1e-6, "first Process1 sample after ResetState(x0) should match ResetState's return for constant input")
	}
}

func TestResetSteadyStateSVF(t *testing.T) {
	c := NewSVFCoeffs()
	c.SetSampleRate(48000)
	c.SetCutoff(800)
	c.SetQ(0.5)
	c.ResetCoeffs()
	for _, x0 := range []float32{-0.5, 0, 0.5} {
		var s SVFState
		lp0, bp0, hp0 := c.ResetState(&s, x0)
		c.UpdateCoeffsCtrl()
		c.UpdateCoeffsAudio()
		lp1, bp1, hp1 := c.Process1(&s, x0)
		assert.InDeltaf(t, lp0, lp1, 1e-5, "lp steady state mismatch")
		assert.InDeltaf(t, bp0, bp1, 1e-5, "bp steady state mismatch")
		assert.InDeltaf(t, hp0, hp1, 1e-5, "hp steady state mismatch")
	}
}

func TestMultiEquivalenceOnePole(t *testing.T) {
	const n = 4
	const blocks = 64

	shared := NewOnePoleCoeffs()
	shared.SetSampleRate(48000)
	shared.SetCutoff(300)
	shared.ResetCoeffs()

	states := make([]*OnePoleState, n)
	x := make([][]float32, n)
	yMulti := make([][]float32, n)
	for ch := 0; ch < n; ch++ {
		states[ch] = &OnePoleState{}
		shared.ResetState(states[ch], 0)
		x[ch] = make([]float32, blocks)
		for i := range x[ch] {
			x[ch][i] = float32(ch+1) * 0.1 * float32(i%7)
		}
		yMulti[ch] = make([]float32, blocks)
	}
	shared.ProcessMulti(states, x, yMulti)

	for ch := 0; ch < n; ch++ {
		seq := NewOnePoleCoeffs()
		seq.SetSampleRate(48000)
		seq.SetCutoff(300)
		seq.ResetCoeffs()
		var s OnePoleState
		seq.ResetState(&s, 0)
		ySeq := make([]float32, blocks)
		seq.Process(&s, x[ch], ySeq)
		for i := range ySeq {
			assert.InDeltaf(t, ySeq[i], yMulti[ch][i], 1e-6,
				"channel %d sample %d diverged between Process and ProcessMulti", ch, i)
		}
	}
}

func TestResetEpochDetection(t *testing.T) {
	c := NewOnePoleCoeffs()
	c.SetSampleRate(48000)
	c.ResetCoeffs()
	var s OnePoleState
	c.ResetState(&s, 0)
	assert.True(t, s.epoch.matches(&c.epoch), "freshly reset state should match its coeffs' epoch")

	c.ResetCoeffs()
	assert.False(t, s.epoch.matches(&c.epoch), "state reset against a prior coeffs generation must not match after a second ResetCoeffs")
}
