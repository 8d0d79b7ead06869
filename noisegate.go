package bw

// NoiseGateCoeffs is a feed-forward noise gate/expander with an
// independent sidechain input: when xSC's envelope drops below thresh,
// x is attenuated (and fully silenced below -600dBFS); above thresh it
// passes untouched. ratio runs from 1 (no gating) upward, with +Inf
// giving a hard gate.
type NoiseGateCoeffs struct {
	epoch coeffsEpoch

	env EnvFollowCoeffs

	smoothCoeffs      OnePoleCoeffs
	smoothThreshState OnePoleState
	smoothRatioState  OnePoleState

	kc float32
	lt float32

	thresh float32
	ratio  float32
}

// NoiseGateState holds the sidechain envelope follower's memory.
type NoiseGateState struct {
	epoch stateEpoch
	env   EnvFollowState
}

// NewNoiseGateCoeffs allocates and initializes a NoiseGateCoeffs at
// thresh=1 (0dBFS), ratio=1 (no gating).
func NewNoiseGateCoeffs() *NoiseGateCoeffs {
	c := &NoiseGateCoeffs{}
	c.Init()
	return c
}

// Init sets thresh to 1 (0dBFS), ratio to 1 (no gating), and a 50ms
// smoothing time for thresh/ratio changes.
func (c *NoiseGateCoeffs) Init() {
	c.env.Init()
	c.smoothCoeffs.Init()
	c.smoothCoeffs.SetTau(0.05)
	c.thresh = 1
	c.ratio = 1
	c.epoch.init("bw.NoiseGateCoeffs")
}

// SetSampleRate propagates fs to the envelope follower and smoother.
func (c *NoiseGateCoeffs) SetSampleRate(fs float32) {
	c.env.SetSampleRate(fs)
	c.smoothCoeffs.SetSampleRate(fs)
	c.smoothCoeffs.ResetCoeffs()
	c.epoch.setSampleRate()
}

// SetThreshLin sets the gate threshold as a linear level, in
// [1e-20, 1e20].
func (c *NoiseGateCoeffs) SetThreshLin(v float32) { c.thresh = v }

// SetThreshDBFS sets the gate threshold in dBFS, in [-400, 400].
func (c *NoiseGateCoeffs) SetThreshDBFS(v float32) { c.thresh = DB2Lin(v) }

// SetRatio sets the expansion ratio, >= 1: 1 is no gating, +Inf is a hard
// gate.
func (c *NoiseGateCoeffs) SetRatio(v float32) { c.ratio = v }

// SetAttackTau forwards to the envelope follower.
func (c *NoiseGateCoeffs) SetAttackTau(tau float32) { c.env.SetAttackTau(tau) }

// SetReleaseTau forwards to the envelope follower.
func (c *NoiseGateCoeffs) SetReleaseTau(tau float32) { c.env.SetReleaseTau(tau) }

func (c *NoiseGateCoeffs) revRatioTarget() float32 {
	if c.ratio > 1e12 {
		return 0
	}
	return Rcp(c.ratio)
}

func (c *NoiseGateCoeffs) doUpdateCoeffsAudio() {
	c.env.UpdateCoeffsAudio()
	c.smoothCoeffs.Process1(&c.smoothThreshState, c.thresh)
	revRatio := c.smoothCoeffs.Process1(&c.smoothRatioState, c.revRatioTarget())
	if revRatio < 1e-12 {
		c.kc = float32(-inf)
	} else {
		c.kc = 1 - Rcp(revRatio)
	}
	c.lt = Log2(c.smoothThreshState.GetYZ1())
}

// ResetCoeffs snaps the envelope follower and thresh/ratio smoothers to
// their targets.
func (c *NoiseGateCoeffs) ResetCoeffs() {
	c.env.ResetCoeffs()
	c.smoothCoeffs.ResetState(&c.smoothThreshState, c.thresh)
	c.smoothCoeffs.ResetState(&c.smoothRatioState, c.revRatioTarget())
	c.doUpdateCoeffsAudio()
	c.epoch.resetCoeffs()
}

func (c *NoiseGateCoeffs) gateReduce(x, env float32) float32 {
	if env >= c.smoothThreshState.GetYZ1() {
		return x
	}
	if env < 1e-30 {
		return 0
	}
	return Pow2(c.kc*(c.lt-Log2(env))) * x
}

// ResetState resets the sidechain envelope for x0/xSC0 and returns the
// corresponding initial output.
func (c *NoiseGateCoeffs) ResetState(state *NoiseGateState, x0, xSC0 float32) float32 {
	env := c.env.ResetState(&state.env, xSC0)
	y := c.gateReduce(x0, env)
	state.epoch.reset("bw.NoiseGateState", &c.epoch)
	return y
}

// UpdateCoeffsCtrl forwards to the envelope follower.
func (c *NoiseGateCoeffs) UpdateCoeffsCtrl() { c.env.UpdateCoeffsCtrl() }

// UpdateCoeffsAudio advances the envelope follower and thresh/ratio
// smoothers by one sample and recomputes kc/lt.
func (c *NoiseGateCoeffs) UpdateCoeffsAudio() { c.doUpdateCoeffsAudio() }

// Process1 follows xSC's envelope and gates/expands x accordingly.
func (c *NoiseGateCoeffs) Process1(state *NoiseGateState, x, xSC float32) float32 {
	assertDeep(state.epoch.matches(&c.epoch), "NoiseGateState used with a stale NoiseGateCoeffs epoch")
	env := c.env.Process1(&state.env, xSC)
	return c.gateReduce(x, env)
}

// Process runs UpdateCoeffsCtrl once, then UpdateCoeffsAudio+Process1 per
// sample. If xSC is nil, x is used as its own sidechain.
func (c *NoiseGateCoeffs) Process(state *NoiseGateState, x, xSC, y []float32) {
	c.UpdateCoeffsCtrl()
	for i := range x {
		c.UpdateCoeffsAudio()
		sc := x[i]
		if xSC != nil {
			sc = xSC[i]
		}
		y[i] = c.Process1(state, x[i], sc)
	}
}

// ProcessMulti shares one Coeffs across n independent gate states. If
// xSC is nil, each channel uses its own x as sidechain.
func (c *NoiseGateCoeffs) ProcessMulti(states []*NoiseGateState, x, xSC, y [][]float32) {
	c.UpdateCoeffsCtrl()
	if len(x) == 0 {
		return
	}
	n := len(x[0])
	for i := 0; i < n; i++ {
		c.UpdateCoeffsAudio()
		for ch, s := range states {
			sc := x[ch][i]
			if xSC != nil {
				sc = xSC[ch][i]
			}
			y[ch][i] = c.Process1(s, x[ch][i], sc)
		}
	}
}
