package bw

// PeakCoeffs is a second-order peaking EQ: boosts or cuts a band around
// cutoff by peakGain while leaving DC and Nyquist untouched, built on
// SVFCoeffs's bandpass tap. The bump is formed as x + (peakGain-1)*k*bp,
// where k=1/Q is the same bandpass-to-peak scale SVFCoeffs already
// computes for its own integrator gain, so the bump's peak value tracks
// peakGain independent of Q.
type PeakCoeffs struct {
	epoch coeffsEpoch
	svf   SVFCoeffs

	smoothCoeffs OnePoleCoeffs
	smoothState  OnePoleState

	peakGain    float32
	peakGainCur float32
}

// PeakState holds the embedded SVF's integrator memories.
type PeakState struct {
	epoch stateEpoch
	svf   SVFState
}

// NewPeakCoeffs allocates and initializes a PeakCoeffs at 1kHz, Q=0.5,
// unity gain (flat).
func NewPeakCoeffs() *PeakCoeffs {
	c := &PeakCoeffs{}
	c.Init()
	return c
}

// Init sets peakGain to 1 (flat) with a 5ms default smoothing time.
func (c *PeakCoeffs) Init() {
	c.svf.Init()
	c.smoothCoeffs.Init()
	c.smoothCoeffs.SetTau(0.005)
	c.peakGain = 1
	c.epoch.init("bw.PeakCoeffs")
}

// SetSampleRate propagates fs to the embedded SVF and gain smoother.
func (c *PeakCoeffs) SetSampleRate(fs float32) {
	c.svf.SetSampleRate(fs)
	c.smoothCoeffs.SetSampleRate(fs)
	c.epoch.setSampleRate()
}

// SetCutoff sets the peak's center frequency in Hz.
func (c *PeakCoeffs) SetCutoff(fc float32) { c.svf.SetCutoff(fc) }

// SetQ sets the embedded SVF's Q, controlling peak bandwidth.
func (c *PeakCoeffs) SetQ(q float32) { c.svf.SetQ(q) }

// SetPrewarpFreq forwards to the embedded SVF.
func (c *PeakCoeffs) SetPrewarpFreq(fp float32) { c.svf.SetPrewarpFreq(fp) }

// SetPeakGainLin sets the target peak gain as a linear ratio.
func (c *PeakCoeffs) SetPeakGainLin(g float32) { c.peakGain = g }

// SetPeakGainDB sets the target peak gain in decibels.
func (c *PeakCoeffs) SetPeakGainDB(db float32) { c.peakGain = DB2Lin(db) }

// ResetCoeffs snaps the embedded SVF and gain smoother to their targets.
func (c *PeakCoeffs) ResetCoeffs() {
	c.svf.ResetCoeffs()
	c.smoothCoeffs.ResetCoeffs()
	c.peakGainCur = c.smoothCoeffs.ResetState(&c.smoothState, c.peakGain)
	c.epoch.resetCoeffs()
}

// ResetState resets the embedded SVF state and returns the initial peak
// output for constant input x0 (always x0, since the bandpass tap is 0
// at DC).
func (c *PeakCoeffs) ResetState(state *PeakState, x0 float32) float32 {
	lp, bp, hp := c.svf.ResetState(&state.svf, x0)
	_, _ = lp, hp
	state.epoch.reset("bw.PeakState", &c.epoch)
	return x0 + (c.peakGainCur-1)*c.svf.k*bp
}

// UpdateCoeffsCtrl advances the gain smoother's control-rate work and
// forwards to the embedded SVF.
func (c *PeakCoeffs) UpdateCoeffsCtrl() {
	c.smoothCoeffs.UpdateCoeffsCtrl()
	c.svf.UpdateCoeffsCtrl()
}

// UpdateCoeffsAudio advances the gain smoother and the embedded SVF.
func (c *PeakCoeffs) UpdateCoeffsAudio() {
	c.smoothCoeffs.UpdateCoeffsAudio()
	c.peakGainCur = c.smoothCoeffs.Process1(&c.smoothState, c.peakGain)
	c.svf.UpdateCoeffsAudio()
}

// Process1 runs x through the embedded SVF and forms the peak bump.
func (c *PeakCoeffs) Process1(state *PeakState, x float32) float32 {
	assertDeep(state.epoch.matches(&c.epoch), "PeakState used with a stale PeakCoeffs epoch")
	_, bp, _ := c.svf.Process1(&state.svf, x)
	return x + (c.peakGainCur-1)*c.svf.k*bp
}

// Process runs UpdateCoeffsCtrl once, then UpdateCoeffsAudio+Process1 per
// sample.
func (c *PeakCoeffs) Process(state *PeakState, x, y []float32) {
	c.UpdateCoeffsCtrl()
	for i := range x {
		c.UpdateCoeffsAudio()
		y[i] = c.Process1(state, x[i])
	}
}

// ProcessMulti shares one Coeffs across n independent filter states.
func (c *PeakCoeffs) ProcessMulti(states []*PeakState, x, y [][]float32) {
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
