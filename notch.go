package bw

// NotchCoeffs is a second-order notch: unity gain at DC and
// asymptotically at Nyquist, a rejection dip at cutoff whose width is
// set by Q. Built directly on SVFCoeffs's lp+hp sum.
type NotchCoeffs struct {
	epoch coeffsEpoch
	svf   SVFCoeffs
}

// NotchState holds the embedded SVF's integrator memories.
type NotchState struct {
	epoch stateEpoch
	svf   SVFState
}

// NewNotchCoeffs allocates and initializes a NotchCoeffs at 1kHz, Q=0.5.
func NewNotchCoeffs() *NotchCoeffs {
	c := &NotchCoeffs{}
	c.Init()
	return c
}

// Init delegates to the embedded SVF.
func (c *NotchCoeffs) Init() {
	c.svf.Init()
	c.epoch.init("bw.NotchCoeffs")
}

// SetSampleRate propagates fs to the embedded SVF.
func (c *NotchCoeffs) SetSampleRate(fs float32) {
	c.svf.SetSampleRate(fs)
	c.epoch.setSampleRate()
}

// SetCutoff sets the notch center frequency in Hz.
func (c *NotchCoeffs) SetCutoff(fc float32) { c.svf.SetCutoff(fc) }

// SetQ sets the notch's quality factor (higher = narrower).
func (c *NotchCoeffs) SetQ(q float32) { c.svf.SetQ(q) }

// SetPrewarpFreq forwards to the embedded SVF.
func (c *NotchCoeffs) SetPrewarpFreq(fp float32) { c.svf.SetPrewarpFreq(fp) }

// ResetCoeffs snaps the embedded SVF to its targets.
func (c *NotchCoeffs) ResetCoeffs() {
	c.svf.ResetCoeffs()
	c.epoch.resetCoeffs()
}

// ResetState resets the embedded SVF state and returns the initial
// notch output for constant input x0 (always x0, since lp+hp=x0+0).
func (c *NotchCoeffs) ResetState(state *NotchState, x0 float32) float32 {
	lp, _, hp := c.svf.ResetState(&state.svf, x0)
	state.epoch.reset("bw.NotchState", &c.epoch)
	return lp + hp
}

// UpdateCoeffsCtrl forwards to the embedded SVF.
func (c *NotchCoeffs) UpdateCoeffsCtrl() { c.svf.UpdateCoeffsCtrl() }

// UpdateCoeffsAudio forwards to the embedded SVF.
func (c *NotchCoeffs) UpdateCoeffsAudio() { c.svf.UpdateCoeffsAudio() }

// Process1 runs x through the embedded SVF and sums lp+hp.
func (c *NotchCoeffs) Process1(state *NotchState, x float32) float32 {
	assertDeep(state.epoch.matches(&c.epoch), "NotchState used with a stale NotchCoeffs epoch")
	lp, _, hp := c.svf.Process1(&state.svf, x)
	return lp + hp
}

// Process runs UpdateCoeffsCtrl once, then UpdateCoeffsAudio+Process1 per
// sample.
func (c *NotchCoeffs) Process(state *NotchState, x, y []float32) {
	c.UpdateCoeffsCtrl()
	for i := range x {
		c.UpdateCoeffsAudio()
		y[i] = c.Process1(state, x[i])
	}
}

// ProcessMulti shares one Coeffs across n independent filter states.
func (c *NotchCoeffs) ProcessMulti(states []*NotchState, x, y [][]float32) {
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
