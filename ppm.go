package bw

// PPMCoeffs is a digital peak programme meter: an envelope follower with a
// fixed release time constant of 0.738300619235528s (the classic PPM
// ballistic) and a configurable attack, reporting its level in dBFS with a
// -600dB floor standing in for -Inf. Setting attack to 0 gives true-peak
// metering; small nonzero attacks (up to about 6ms) give quasi-peak
// behavior.
type PPMCoeffs struct {
	epoch coeffsEpoch
	env   EnvFollowCoeffs
}

// PPMState holds the envelope follower's memory.
type PPMState struct {
	epoch stateEpoch
	env   EnvFollowState
}

const ppmReleaseTau = 0.738300619235528

// NewPPMCoeffs allocates and initializes a PPMCoeffs.
func NewPPMCoeffs() *PPMCoeffs {
	c := &PPMCoeffs{}
	c.Init()
	return c
}

// Init sets the release time constant to the standard PPM ballistic and
// attack to instantaneous (true-peak).
func (c *PPMCoeffs) Init() {
	c.env.Init()
	c.env.SetReleaseTau(ppmReleaseTau)
	c.epoch.init("bw.PPMCoeffs")
}

// SetSampleRate propagates fs to the envelope follower.
func (c *PPMCoeffs) SetSampleRate(fs float32) {
	c.env.SetSampleRate(fs)
	c.epoch.setSampleRate()
}

// SetAttackTau sets the attack time constant in seconds; 0 is instantaneous
// (true-peak), values up to about 0.006s give quasi-peak behavior.
func (c *PPMCoeffs) SetAttackTau(tau float32) { c.env.SetAttackTau(tau) }

// ResetCoeffs snaps the envelope follower to its targets.
func (c *PPMCoeffs) ResetCoeffs() {
	c.env.ResetCoeffs()
	c.epoch.resetCoeffs()
}

func ppmLin2DBFloor(yl float32) float32 {
	if yl >= 1e-30 {
		return Lin2DB(yl)
	}
	return -600
}

// ResetState seeds the envelope with |x0| and returns the corresponding
// dBFS reading.
func (c *PPMCoeffs) ResetState(state *PPMState, x0 float32) float32 {
	yl := c.env.ResetState(&state.env, x0)
	state.epoch.reset("bw.PPMState", &c.epoch)
	return ppmLin2DBFloor(yl)
}

// UpdateCoeffsCtrl forwards to the envelope follower.
func (c *PPMCoeffs) UpdateCoeffsCtrl() { c.env.UpdateCoeffsCtrl() }

// UpdateCoeffsAudio forwards to the envelope follower.
func (c *PPMCoeffs) UpdateCoeffsAudio() { c.env.UpdateCoeffsAudio() }

// Process1 follows x's rectified level and reports it in dBFS, floored at
// -600.
func (c *PPMCoeffs) Process1(state *PPMState, x float32) float32 {
	assertDeep(state.epoch.matches(&c.epoch), "PPMState used with a stale PPMCoeffs epoch")
	yl := c.env.Process1(&state.env, x)
	return ppmLin2DBFloor(yl)
}

// Process runs UpdateCoeffsCtrl once, then UpdateCoeffsAudio+Process1 per
// sample.
func (c *PPMCoeffs) Process(state *PPMState, x, y []float32) {
	c.UpdateCoeffsCtrl()
	for i := range x {
		c.UpdateCoeffsAudio()
		y[i] = c.Process1(state, x[i])
	}
}

// ProcessMulti shares one Coeffs across n independent meter states.
func (c *PPMCoeffs) ProcessMulti(states []*PPMState, x, y [][]float32) {
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
