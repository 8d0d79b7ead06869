package bw

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Smoother convergence: with cutoff_up = cutoff_down = fc and a step
// input from 0 to 1, the output should reach 1-e^-1 at sample
// round(fs/(2*pi*fc)), +-1.
func TestOnePoleSmootherConvergence(t *testing.T) {
	const fs = 48000.0
	const fc = 500.0

	c := NewOnePoleCoeffs()
	c.SetSampleRate(fs)
	c.SetCutoff(fc)
	c.ResetCoeffs()

	var s OnePoleState
	c.ResetState(&s, 0)

	target := float32(1 - math.Exp(-1))
	expected := int(math.Round(fs / (2 * math.Pi * fc)))

	var crossing = -1
	for i := 0; i < expected+10; i++ {
		c.UpdateCoeffsCtrl()
		c.UpdateCoeffsAudio()
		y := c.Process1(&s, 1)
		if crossing < 0 && y >= target {
			crossing = i
		}
	}
	assert.NotEqual(t, -1, crossing, "never reached 1-e^-1")
	assert.InDeltaf(t, float64(expected), float64(crossing), 1, "convergence sample off by more than 1")
}

// Seed test 1: one-pole smoother step response.
func TestOnePoleSeedStep(t *testing.T) {
	c := NewOnePoleCoeffs()
	c.SetSampleRate(48000)
	c.SetCutoff(1000)
	c.ResetCoeffs()
	var s OnePoleState
	c.ResetState(&s, 0)

	const n = 1024
	y := make([]float32, n)
	x := make([]float32, n)
	for i := range x {
		x[i] = 1
	}
	c.Process(&s, x, y)

	crossed := -1
	for i, v := range y {
		assert.True(t, v >= 0 && v <= 1, "sample %d out of [0,1]: %v", i, v)
		if i > 0 {
			assert.True(t, v >= y[i-1]-1e-7, "output decreased at sample %d", i)
		}
		if crossed < 0 && v >= 0.632 {
			crossed = i
		}
	}
	assert.True(t, crossed >= 5 && crossed <= 9, "0.632 crossing at sample %d, want [5,9]", crossed)
}
