package bw

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Seed test 6: pulse oscillator PW sweep with antialiasing.
func TestOscPulseSeedPWSweep(t *testing.T) {
	const fs = 48000.0
	const n = 48000

	pg := NewPhaseGenCoeffs()
	pg.SetSampleRate(fs)
	pg.SetFrequency(220)
	pg.ResetCoeffs()
	var pgState PhaseGenState
	pg.ResetState(&pgState, 0)

	osc := NewOscPulseCoeffs()
	osc.SetSampleRate(fs)
	osc.SetAntialiasing(true)
	osc.ResetCoeffs()

	pg.UpdateCoeffsCtrl()
	osc.UpdateCoeffsCtrl()
	for i := 0; i < n; i++ {
		pw := 0.1 + 0.8*float32(i)/float32(n-1)
		osc.SetPulseWidth(pw)

		pg.UpdateCoeffsAudio()
		osc.UpdateCoeffsAudio()

		phase, inc := pg.Process1Free(&pgState)
		y := osc.Process1Antialias(phase, inc)

		assert.GreaterOrEqualf(t, y, float32(-1.05), "sample %d below -1.05: %v", i, y)
		assert.LessOrEqualf(t, y, float32(1.05), "sample %d above 1.05: %v", i, y)
	}
}
