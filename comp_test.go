package bw

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

// Compressor ratio=1: for any threshold and envelope time constants,
// |y - x*gain_makeup| < 1e-5 for all input.
func TestCompRatioOneIsPassthrough(t *testing.T) {
	const fs = 48000.0
	rapid.Check(t, func(t *rapid.T) {
		threshDB := rapid.Float32Range(-40, 20).Draw(t, "threshDB")
		attack := rapid.Float32Range(0.0001, 0.2).Draw(t, "attack")
		release := rapid.Float32Range(0.0001, 0.5).Draw(t, "release")
		makeupDB := rapid.Float32Range(-12, 12).Draw(t, "makeupDB")

		c := NewCompCoeffs()
		c.SetSampleRate(fs)
		c.SetThreshDBFS(threshDB)
		c.SetRatio(1)
		c.SetAttackTau(attack)
		c.SetReleaseTau(release)
		c.SetMakeupGainDB(makeupDB)
		c.ResetCoeffs()

		var s CompState
		c.ResetState(&s, 0, 0)
		makeup := DB2Lin(makeupDB)

		c.UpdateCoeffsCtrl()
		for i := 0; i < 512; i++ {
			x := rapid.Float32Range(-2, 2).Draw(t, "x")
			c.UpdateCoeffsAudio()
			y := c.Process1(&s, x, x)
			assert.LessOrEqualf(t, math.Abs(float64(y-x*makeup)), 1e-5,
				"ratio=1 should be a pure passthrough scaled by makeup gain, got y=%v want %v", y, x*makeup)
		}
	})
}

// Seed test 4: compressor 4:1 at -20dBFS threshold.
func TestCompSeed4to1(t *testing.T) {
	const fs = 48000.0

	c := NewCompCoeffs()
	c.SetSampleRate(fs)
	c.SetThreshDBFS(-20)
	c.SetRatio(0.25)
	c.SetAttackTau(0.01)
	c.SetReleaseTau(0.1)
	c.SetMakeupGainLin(1)
	c.ResetCoeffs()

	var s CompState
	c.ResetState(&s, 0, 0)
	c.UpdateCoeffsCtrl()

	const n = 4800
	const f0 = 1000.0
	var settledPeak float32
	for i := 0; i < n; i++ {
		x := float32(math.Sin(2 * math.Pi * f0 * float64(i) / fs))
		c.UpdateCoeffsAudio()
		y := c.Process1(&s, x, x)
		if i >= n-480 {
			if a := Absf(y); a > settledPeak {
				settledPeak = a
			}
		}
	}
	expected := float32(math.Pow(10, (-20+(0-(-20))*0.25)/20))
	assert.InEpsilonf(t, float64(expected), float64(settledPeak), 0.1,
		"expected sustained output amplitude near %v, got %v", expected, settledPeak)
}
