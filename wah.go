package bw

// WahCoeffs is a wah-wah effect: a band-pass sweep over an SVF, fixed at
// Q=9, with a single control parameter in [0, 1] mapping cubically onto
// a 400Hz-2kHz cutoff range (see SetWah).
type WahCoeffs struct {
	epoch coeffsEpoch

	svf SVFCoeffs
}

// WahState holds the SVF integrator memories.
type WahState struct {
	epoch stateEpoch
	svf   SVFState
}

// NewWahCoeffs allocates and initializes a WahCoeffs at its default
// wah position (cutoff=600Hz, which SetWah reaches at value=0.5).
func NewWahCoeffs() *WahCoeffs {
	c := &WahCoeffs{}
	c.Init()
	return c
}

// Init sets cutoff to 600Hz and Q to 9, the wah's fixed resonance.
func (c *WahCoeffs) Init() {
	c.svf.Init()
	c.svf.SetCutoff(600)
	c.svf.SetQ(9)
	c.epoch.init("bw.WahCoeffs")
}

// SetSampleRate forwards to the underlying SVF.
func (c *WahCoeffs) SetSampleRate(fs float32) {
	c.svf.SetSampleRate(fs)
	c.epoch.setSampleRate()
}

// SetWah sets the wah pedal position in [0, 1], mapping cubically onto a
// 400Hz-2kHz cutoff sweep (slow near the heel, fast near the toe).
func (c *WahCoeffs) SetWah(value float32) {
	c.svf.SetCutoff(400 + (2e3-400)*value*value*value)
}

// ResetCoeffs forwards to the underlying SVF.
func (c *WahCoeffs) ResetCoeffs() { c.svf.ResetCoeffs(); c.epoch.resetCoeffs() }

// ResetState resets the SVF for a constant input x0 and returns the
// corresponding bandpass output.
func (c *WahCoeffs) ResetState(state *WahState, x0 float32) float32 {
	_, bp, _ := c.svf.ResetState(&state.svf, x0)
	state.epoch.reset("bw.WahState", &c.epoch)
	return bp
}

// UpdateCoeffsCtrl forwards to the underlying SVF.
func (c *WahCoeffs) UpdateCoeffsCtrl() { c.svf.UpdateCoeffsCtrl() }

// UpdateCoeffsAudio forwards to the underlying SVF.
func (c *WahCoeffs) UpdateCoeffsAudio() { c.svf.UpdateCoeffsAudio() }

// Process1 filters one sample and returns the bandpass tap.
func (c *WahCoeffs) Process1(state *WahState, x float32) float32 {
	assertDeep(state.epoch.matches(&c.epoch), "WahState used with a stale WahCoeffs epoch")
	_, bp, _ := c.svf.Process1(&state.svf, x)
	return bp
}

// Process runs UpdateCoeffsCtrl once, then UpdateCoeffsAudio+Process1 per
// sample.
func (c *WahCoeffs) Process(state *WahState, x, y []float32) {
	c.UpdateCoeffsCtrl()
	for i := range x {
		c.UpdateCoeffsAudio()
		y[i] = c.Process1(state, x[i])
	}
}

// ProcessMulti shares one Coeffs across n independent wah states.
func (c *WahCoeffs) ProcessMulti(states []*WahState, x, y [][]float32) {
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
