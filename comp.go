package bw

// CompCoeffs is a feed-forward compressor/limiter with an independent
// sidechain input: the envelope of xSC drives gain reduction that is then
// applied to x. ratio runs from 1 (no compression) down to 0 (brick-wall
// limiting); thresh and makeup gain are independently smoothed.
type CompCoeffs struct {
	epoch coeffsEpoch

	env  EnvFollowCoeffs
	gain GainCoeffs

	smoothCoeffs      OnePoleCoeffs
	smoothThreshState OnePoleState
	smoothRatioState  OnePoleState

	kc float32
	lt float32

	thresh float32
	ratio  float32
}

// CompState holds the sidechain envelope follower's memory.
type CompState struct {
	epoch stateEpoch
	env   EnvFollowState
}

// NewCompCoeffs allocates and initializes a CompCoeffs at thresh=1
// (0dBFS), ratio=1 (no compression), unity makeup gain.
func NewCompCoeffs() *CompCoeffs {
	c := &CompCoeffs{}
	c.Init()
	return c
}

// Init sets thresh to 1 (0dBFS), ratio to 1 (no compression), and a 50ms
// smoothing time for thresh/ratio changes.
func (c *CompCoeffs) Init() {
	c.env.Init()
	c.gain.Init()
	c.smoothCoeffs.Init()
	c.smoothCoeffs.SetTau(0.05)
	c.thresh = 1
	c.ratio = 1
	c.epoch.init("bw.CompCoeffs")
}

// SetSampleRate propagates fs to the envelope follower, gain stage and
// thresh/ratio smoother.
func (c *CompCoeffs) SetSampleRate(fs float32) {
	c.env.SetSampleRate(fs)
	c.gain.SetSampleRate(fs)
	c.smoothCoeffs.SetSampleRate(fs)
	c.smoothCoeffs.ResetCoeffs()
	c.epoch.setSampleRate()
}

// SetThreshLin sets the compression threshold as a linear level, in
// [1e-20, 1e20].
func (c *CompCoeffs) SetThreshLin(v float32) { c.thresh = v }

// SetThreshDBFS sets the compression threshold in dBFS, in [-400, 400].
func (c *CompCoeffs) SetThreshDBFS(v float32) { c.thresh = DB2Lin(v) }

// SetRatio sets the compression ratio parameter in [0, 1]: 1 is no
// compression (1:1), 0 is brick-wall limiting.
func (c *CompCoeffs) SetRatio(v float32) { c.ratio = v }

// SetAttackTau forwards to the envelope follower.
func (c *CompCoeffs) SetAttackTau(tau float32) { c.env.SetAttackTau(tau) }

// SetReleaseTau forwards to the envelope follower.
func (c *CompCoeffs) SetReleaseTau(tau float32) { c.env.SetReleaseTau(tau) }

// SetMakeupGainLin forwards to the makeup gain stage.
func (c *CompCoeffs) SetMakeupGainLin(g float32) { c.gain.SetGainLin(g) }

// SetMakeupGainDB forwards to the makeup gain stage.
func (c *CompCoeffs) SetMakeupGainDB(db float32) { c.gain.SetGainDB(db) }

func (c *CompCoeffs) doUpdateCoeffsAudio() {
	c.env.UpdateCoeffsAudio()
	c.gain.UpdateCoeffsAudio()
	c.smoothCoeffs.Process1(&c.smoothThreshState, c.thresh)
	c.kc = 1 - c.smoothCoeffs.Process1(&c.smoothRatioState, c.ratio)
	c.lt = Log2(c.smoothThreshState.GetYZ1())
}

// ResetCoeffs snaps the envelope follower, gain stage and thresh/ratio
// smoothers to their targets.
func (c *CompCoeffs) ResetCoeffs() {
	c.env.ResetCoeffs()
	c.gain.ResetCoeffs()
	c.smoothCoeffs.ResetState(&c.smoothThreshState, c.thresh)
	c.smoothCoeffs.ResetState(&c.smoothRatioState, c.ratio)
	c.doUpdateCoeffsAudio()
	c.epoch.resetCoeffs()
}

func (c *CompCoeffs) gainReduce(x, env float32) float32 {
	if env > c.smoothThreshState.GetYZ1() {
		return Pow2(c.kc*(c.lt-Log2(env))) * x
	}
	return x
}

// ResetState resets the sidechain envelope for x0/xSC0 and returns the
// corresponding initial output.
func (c *CompCoeffs) ResetState(state *CompState, x0, xSC0 float32) float32 {
	env := c.env.ResetState(&state.env, xSC0)
	y := c.gainReduce(x0, env)
	y = c.gain.GetGainCur() * y
	state.epoch.reset("bw.CompState", &c.epoch)
	return y
}

// UpdateCoeffsCtrl forwards to the envelope follower and gain stage.
func (c *CompCoeffs) UpdateCoeffsCtrl() {
	c.env.UpdateCoeffsCtrl()
	c.gain.UpdateCoeffsCtrl()
}

// UpdateCoeffsAudio advances every sub-component by one sample and
// recomputes kc/lt.
func (c *CompCoeffs) UpdateCoeffsAudio() { c.doUpdateCoeffsAudio() }

// Process1 follows xSC's envelope, reduces x's gain if it exceeds
// thresh, then applies makeup gain.
func (c *CompCoeffs) Process1(state *CompState, x, xSC float32) float32 {
	assertDeep(state.epoch.matches(&c.epoch), "CompState used with a stale CompCoeffs epoch")
	env := c.env.Process1(&state.env, xSC)
	y := c.gainReduce(x, env)
	return c.gain.Process1(y)
}

// Process runs UpdateCoeffsCtrl once, then UpdateCoeffsAudio+Process1 per
// sample.
func (c *CompCoeffs) Process(state *CompState, x, xSC, y []float32) {
	c.UpdateCoeffsCtrl()
	for i := range x {
		c.UpdateCoeffsAudio()
		y[i] = c.Process1(state, x[i], xSC[i])
	}
}

// ProcessMulti shares one Coeffs across n independent compressor states.
func (c *CompCoeffs) ProcessMulti(states []*CompState, x, xSC, y [][]float32) {
	c.UpdateCoeffsCtrl()
	if len(x) == 0 {
		return
	}
	n := len(x[0])
	for i := 0; i < n; i++ {
		c.UpdateCoeffsAudio()
		for ch, s := range states {
			y[ch][i] = c.Process1(s, x[ch][i], xSC[ch][i])
		}
	}
}
