package bw

// EnvFollowCoeffs tracks the rectified amplitude of its input through an
// asymmetric one-pole (attack = up cutoff, release = down cutoff). Used
// by comp.go, noisegate.go and ppm.go. Unlike gain.go, the
// one-pole's history here is genuine per-voice state (the envelope
// itself), so the OnePoleState lives in EnvFollowState, not in the
// Coeffs.
type EnvFollowCoeffs struct {
	epoch coeffsEpoch
	one   OnePoleCoeffs
}

// EnvFollowState holds one voice's envelope memory.
type EnvFollowState struct {
	epoch stateEpoch
	one   OnePoleState
}

// NewEnvFollowCoeffs allocates and initializes an EnvFollowCoeffs.
func NewEnvFollowCoeffs() *EnvFollowCoeffs {
	c := &EnvFollowCoeffs{}
	c.Init()
	return c
}

// Init sets attack and release to instantaneous (0s) defaults.
func (c *EnvFollowCoeffs) Init() {
	c.one.Init()
	c.one.SetCutoff(float32(inf))
	c.epoch.init("bw.EnvFollowCoeffs")
}

// SetSampleRate propagates fs.
func (c *EnvFollowCoeffs) SetSampleRate(fs float32) {
	c.one.SetSampleRate(fs)
	c.epoch.setSampleRate()
}

// SetAttackTau sets the envelope's rise time constant in seconds.
func (c *EnvFollowCoeffs) SetAttackTau(tau float32) { c.one.SetTauUp(tau) }

// SetReleaseTau sets the envelope's fall time constant in seconds.
func (c *EnvFollowCoeffs) SetReleaseTau(tau float32) { c.one.SetTauDown(tau) }

// ResetCoeffs snaps the internal one-pole to its current cutoffs.
func (c *EnvFollowCoeffs) ResetCoeffs() {
	c.one.ResetCoeffs()
	c.epoch.resetCoeffs()
}

// ResetState seeds the envelope with |x0| and returns it.
func (c *EnvFollowCoeffs) ResetState(state *EnvFollowState, x0 float32) float32 {
	y := c.one.ResetState(&state.one, Absf(x0))
	state.epoch.reset("bw.EnvFollowState", &c.epoch)
	return y
}

// UpdateCoeffsCtrl advances the one-pole's control-rate work.
func (c *EnvFollowCoeffs) UpdateCoeffsCtrl() { c.one.UpdateCoeffsCtrl() }

// UpdateCoeffsAudio advances the one-pole's audio-rate work.
func (c *EnvFollowCoeffs) UpdateCoeffsAudio() { c.one.UpdateCoeffsAudio() }

// Process1 rectifies x and follows it with the asymmetric one-pole.
func (c *EnvFollowCoeffs) Process1(state *EnvFollowState, x float32) float32 {
	return c.one.Process1(&state.one, Absf(x))
}

// Process runs UpdateCoeffsCtrl once, then UpdateCoeffsAudio+Process1 per
// sample.
func (c *EnvFollowCoeffs) Process(state *EnvFollowState, x, y []float32) {
	c.UpdateCoeffsCtrl()
	for i := range x {
		c.UpdateCoeffsAudio()
		y[i] = c.Process1(state, x[i])
	}
}

// ProcessMulti shares one Coeffs across n independently-stated channels.
func (c *EnvFollowCoeffs) ProcessMulti(states []*EnvFollowState, x, y [][]float32) {
	c.UpdateCoeffsCtrl()
	if len(x) == 0 {
		return
	}
	n := len(x[0])
	for i := 0; i < n; i++ {
		c.UpdateCoeffsAudio()
		for ch := range states {
			y[ch][i] = c.Process1(states[ch], x[ch][i])
		}
	}
}
