package bw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

// Clipper bounds: with gain=1, bias=0, for |x| <= 1 output equals x
// within 1e-4; for |x| >= 2, |y| <= 1.
func TestSaturatorClipperBounds(t *testing.T) {
	const fs = 48000.0

	c := NewSaturatorCoeffs()
	c.SetSampleRate(fs)
	c.ResetCoeffs()

	rapid.Check(t, func(t *rapid.T) {
		x := rapid.Float32Range(-4, 4).Draw(t, "x")
		// ResetState seeds the antiderivative memory at x itself, so the
		// returned value is the plain (non-interpolated) clip law rather
		// than a secant average dragged in by whatever sample preceded
		// it in a stream.
		var s SaturatorState
		y := c.ResetState(&s, x)
		if Absf(x) <= 1 {
			assert.InDeltaf(t, x, y, 1e-4, "|x|<=1 should pass through near-unchanged, x=%v y=%v", x, y)
		}
		if Absf(x) >= 2 {
			assert.LessOrEqualf(t, float64(Absf(y)), 1.0+1e-6, "|x|>=2 should be bounded to [-1,1], x=%v y=%v", x, y)
		}
	})
}
