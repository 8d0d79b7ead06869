package bw

// MM1Coeffs is a first-order multimode filter: a weighted sum of the
// direct input and an LP1 tap, y = coeffX*x + coeffLP*lp1(x). Picking
// coeffX/coeffLP gives lowpass (0,1), highpass (1,-1), allpass (1,-2)
// or anything in between; hs1.go and ls1.go specialize it by
// fixing those two coefficients from a single shelf/gain parameter.
type MM1Coeffs struct {
	epoch coeffsEpoch

	lp1    LP1Coeffs
	gainX  GainCoeffs
	gainLP GainCoeffs
}

// MM1State holds the embedded LP1's integrator memory.
type MM1State struct {
	epoch stateEpoch
	lp1   LP1State
}

// NewMM1Coeffs allocates and initializes an MM1Coeffs as a transparent
// passthrough (coeffX=1, coeffLP=0).
func NewMM1Coeffs() *MM1Coeffs {
	c := &MM1Coeffs{}
	c.Init()
	return c
}

// Init sets coeffX=1, coeffLP=0 (pure passthrough) with a 1kHz lowpass.
func (c *MM1Coeffs) Init() {
	c.lp1.Init()
	c.gainX.Init()
	c.gainLP.Init()
	c.gainX.SetSmoothTau(0.005)
	c.gainLP.SetSmoothTau(0.005)
	c.gainX.SetGainLin(1)
	c.gainLP.SetGainLin(0)
	c.epoch.init("bw.MM1Coeffs")
}

// SetSampleRate propagates fs to the embedded LP1 and both gains.
func (c *MM1Coeffs) SetSampleRate(fs float32) {
	c.lp1.SetSampleRate(fs)
	c.gainX.SetSampleRate(fs)
	c.gainLP.SetSampleRate(fs)
	c.epoch.setSampleRate()
}

// SetCutoff sets the underlying LP1's cutoff frequency in Hz.
func (c *MM1Coeffs) SetCutoff(fc float32) { c.lp1.SetCutoff(fc) }

// SetPrewarpAtCutoff forwards to the embedded LP1.
func (c *MM1Coeffs) SetPrewarpAtCutoff(v bool) { c.lp1.SetPrewarpAtCutoff(v) }

// SetPrewarpFreq forwards to the embedded LP1.
func (c *MM1Coeffs) SetPrewarpFreq(fp float32) { c.lp1.SetPrewarpFreq(fp) }

// SetCoeffX sets the direct-path gain.
func (c *MM1Coeffs) SetCoeffX(value float32) { c.gainX.SetGainLin(value) }

// SetCoeffLP sets the lowpass-path gain.
func (c *MM1Coeffs) SetCoeffLP(value float32) { c.gainLP.SetGainLin(value) }

// ResetCoeffs snaps the LP1 and both gains to their targets.
func (c *MM1Coeffs) ResetCoeffs() {
	c.lp1.ResetCoeffs()
	c.gainX.ResetCoeffs()
	c.gainLP.ResetCoeffs()
	c.epoch.resetCoeffs()
}

// ResetState resets the embedded LP1 state and returns the initial
// mixed output for a constant input x0.
func (c *MM1Coeffs) ResetState(state *MM1State, x0 float32) float32 {
	lp := c.lp1.ResetState(&state.lp1, x0)
	state.epoch.reset("bw.MM1State", &c.epoch)
	return c.gainX.GetGainCur()*x0 + c.gainLP.GetGainCur()*lp
}

// UpdateCoeffsCtrl advances the LP1's and both gains' control-rate work.
func (c *MM1Coeffs) UpdateCoeffsCtrl() {
	c.lp1.UpdateCoeffsCtrl()
	c.gainX.UpdateCoeffsCtrl()
	c.gainLP.UpdateCoeffsCtrl()
}

// UpdateCoeffsAudio advances the LP1's and both gains' audio-rate work.
func (c *MM1Coeffs) UpdateCoeffsAudio() {
	c.lp1.UpdateCoeffsAudio()
	c.gainX.UpdateCoeffsAudio()
	c.gainLP.UpdateCoeffsAudio()
}

// Process1 runs x through the embedded LP1 and mixes it with the direct
// path.
func (c *MM1Coeffs) Process1(state *MM1State, x float32) float32 {
	assertDeep(state.epoch.matches(&c.epoch), "MM1State used with a stale MM1Coeffs epoch")
	lp := c.lp1.Process1(&state.lp1, x)
	return c.gainX.Process1(x) + c.gainLP.Process1(lp)
}

// Process runs UpdateCoeffsCtrl once, then UpdateCoeffsAudio+Process1 per
// sample.
func (c *MM1Coeffs) Process(state *MM1State, x, y []float32) {
	c.UpdateCoeffsCtrl()
	for i := range x {
		c.UpdateCoeffsAudio()
		y[i] = c.Process1(state, x[i])
	}
}

// ProcessMulti shares one Coeffs across n independent filter states.
func (c *MM1Coeffs) ProcessMulti(states []*MM1State, x, y [][]float32) {
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
