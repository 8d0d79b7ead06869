package bw

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Delay identity: with delay = k samples (k integer), output at time n
// equals input at time n-k for n >= k.
func TestDelayIdentity(t *testing.T) {
	const fs = 48000.0
	const k = 37

	c := NewDelayCoeffs(0.01)
	c.SetSampleRate(fs)
	var s DelayState
	mem := make([]float32, c.MemReq())
	c.MemSet(&s, mem)
	c.SetDelay(float32(k) / fs)
	c.ResetCoeffs()
	c.ResetState(&s, 0)
	c.UpdateCoeffsCtrl()

	const n = 200
	x := make([]float32, n)
	for i := range x {
		x[i] = float32(i + 1)
	}
	y := make([]float32, n)
	for i := 0; i < n; i++ {
		c.UpdateCoeffsAudio()
		y[i] = c.Process1(&s, x[i])
	}
	for i := k; i < n; i++ {
		assert.InDeltaf(t, x[i-k], y[i], 1e-5, "y[%d] should equal x[%d-%d]", i, i, k)
	}
}

// Seed test 3: delay-line round trip via an impulse.
func TestDelaySeedImpulse(t *testing.T) {
	const fs = 48000.0

	c := NewDelayCoeffs(0.01)
	c.SetSampleRate(fs)
	var s DelayState
	mem := make([]float32, 481)
	c.MemSet(&s, mem)
	c.ResetCoeffs()
	c.ResetState(&s, 0)
	c.SetDelay(100.0 / fs)
	c.UpdateCoeffsCtrl()

	const n = 200
	y := make([]float32, n)
	for i := 0; i < n; i++ {
		var x float32
		if i == 0 {
			x = 1
		}
		c.UpdateCoeffsAudio()
		y[i] = c.Process1(&s, x)
	}
	for i, v := range y {
		if i == 100 {
			assert.InDeltaf(t, 1.0, v, 1e-4, "expected the impulse at sample 100")
		} else {
			assert.InDeltaf(t, 0.0, v, 1e-4, "expected silence at sample %d, got %v", i, v)
		}
	}
}
