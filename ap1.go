package bw

// AP1Coeffs is a first-order allpass: 90 degree phase shift at cutoff,
// approaching 180 degrees above it, flat unity magnitude at every
// frequency. Built directly on an embedded LP1 rather than through
// MM1Coeffs, since its mix coefficients (-1, 2), i.e. 2*lp - x, never change.
type AP1Coeffs struct {
	epoch coeffsEpoch
	lp1   LP1Coeffs
}

// AP1State holds the embedded LP1's integrator memory.
type AP1State struct {
	epoch stateEpoch
	lp1   LP1State
}

// NewAP1Coeffs allocates and initializes an AP1Coeffs at 1kHz.
func NewAP1Coeffs() *AP1Coeffs {
	c := &AP1Coeffs{}
	c.Init()
	return c
}

// Init delegates to the embedded LP1.
func (c *AP1Coeffs) Init() {
	c.lp1.Init()
	c.epoch.init("bw.AP1Coeffs")
}

// SetSampleRate propagates fs to the embedded LP1.
func (c *AP1Coeffs) SetSampleRate(fs float32) {
	c.lp1.SetSampleRate(fs)
	c.epoch.setSampleRate()
}

// SetCutoff sets the underlying LP1's cutoff frequency in Hz.
func (c *AP1Coeffs) SetCutoff(fc float32) { c.lp1.SetCutoff(fc) }

// SetPrewarpAtCutoff forwards to the embedded LP1.
func (c *AP1Coeffs) SetPrewarpAtCutoff(v bool) { c.lp1.SetPrewarpAtCutoff(v) }

// SetPrewarpFreq forwards to the embedded LP1.
func (c *AP1Coeffs) SetPrewarpFreq(fp float32) { c.lp1.SetPrewarpFreq(fp) }

// ResetCoeffs snaps the embedded LP1 to its target.
func (c *AP1Coeffs) ResetCoeffs() {
	c.lp1.ResetCoeffs()
	c.epoch.resetCoeffs()
}

// ResetState resets the embedded LP1 state and returns the initial
// allpass output for a constant input x0 (always x0, since 2*x0-x0=x0).
func (c *AP1Coeffs) ResetState(state *AP1State, x0 float32) float32 {
	lp := c.lp1.ResetState(&state.lp1, x0)
	state.epoch.reset("bw.AP1State", &c.epoch)
	return lp + lp - x0
}

// UpdateCoeffsCtrl forwards to the embedded LP1.
func (c *AP1Coeffs) UpdateCoeffsCtrl() { c.lp1.UpdateCoeffsCtrl() }

// UpdateCoeffsAudio forwards to the embedded LP1.
func (c *AP1Coeffs) UpdateCoeffsAudio() { c.lp1.UpdateCoeffsAudio() }

// Process1 runs x through the embedded LP1 and forms 2*lp - x.
func (c *AP1Coeffs) Process1(state *AP1State, x float32) float32 {
	assertDeep(state.epoch.matches(&c.epoch), "AP1State used with a stale AP1Coeffs epoch")
	lp := c.lp1.Process1(&state.lp1, x)
	return lp + lp - x
}

// Process runs UpdateCoeffsCtrl once, then UpdateCoeffsAudio+Process1 per
// sample.
func (c *AP1Coeffs) Process(state *AP1State, x, y []float32) {
	c.UpdateCoeffsCtrl()
	for i := range x {
		c.UpdateCoeffsAudio()
		y[i] = c.Process1(state, x[i])
	}
}

// ProcessMulti shares one Coeffs across n independent filter states.
func (c *AP1Coeffs) ProcessMulti(states []*AP1State, x, y [][]float32) {
	c.UpdateCoeffsCtrl()
	if len(x) == 0 {
		return
	}
	n := len(x[0])
	for i := 0; i < n; i++ {
		c.UpdateCoeffsAudio()
		for ch, s := range states {
			y[ch][i] = c.Process1(s, x[ch][i])
		}
	}
}
