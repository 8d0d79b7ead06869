package bw

// LP1Coeffs is a first-order (6dB/oct) topology-preserving lowpass: a
// single TPT integrator with a smoothed cutoff. Cheaper than routing a
// single-pole response through SVFCoeffs when only the lowpass tap is
// needed (reverb.go's bandwidth/damping filters, mm1.go's lowpass leg).
type LP1Coeffs struct {
	epoch coeffsEpoch

	fs float32
	t  float32

	smoothCoeffs OnePoleCoeffs
	smoothState  OnePoleState

	cutoff          float32
	prewarpAtCutoff bool
	prewarpFreq     float32
	a1              float32
}

// LP1State holds the single integrator memory.
type LP1State struct {
	epoch stateEpoch
	s     float32
}

// NewLP1Coeffs allocates and initializes an LP1Coeffs at 1kHz.
func NewLP1Coeffs() *LP1Coeffs {
	c := &LP1Coeffs{}
	c.Init()
	return c
}

// Init sets cutoff to 1kHz with a 5ms default smoothing time.
func (c *LP1Coeffs) Init() {
	c.smoothCoeffs.Init()
	c.smoothCoeffs.SetTau(0.005)
	c.cutoff = 1e3
	c.prewarpAtCutoff = true
	c.epoch.init("bw.LP1Coeffs")
}

// SetSampleRate propagates fs to the cutoff smoother.
func (c *LP1Coeffs) SetSampleRate(fs float32) {
	assert(IsFinite(fs) && fs > 0, "LP1Coeffs.SetSampleRate: fs=%v must be finite and positive", fs)
	c.fs = fs
	c.t = 1 / fs
	c.smoothCoeffs.SetSampleRate(fs)
	c.epoch.setSampleRate()
}

// SetCutoff sets the target cutoff frequency in Hz.
func (c *LP1Coeffs) SetCutoff(fc float32) { c.cutoff = fc }

// SetPrewarpAtCutoff selects whether the bilinear-transform prewarp
// frequency tracks the smoothed cutoff (true, the default) or the fixed
// value set with SetPrewarpFreq (false). Fixing it decouples prewarp
// from a fast-modulating cutoff.
func (c *LP1Coeffs) SetPrewarpAtCutoff(v bool) { c.prewarpAtCutoff = v }

// SetPrewarpFreq sets the fixed prewarp frequency used when
// SetPrewarpAtCutoff(false) is in effect.
func (c *LP1Coeffs) SetPrewarpFreq(fp float32) { c.prewarpFreq = fp }

func (c *LP1Coeffs) recompute(cutoffCur float32) {
	fp := c.prewarpFreq
	if c.prewarpAtCutoff {
		fp = cutoffCur
	}
	fp = Clip(fp, 1e-6, 0.5*c.fs-1e-3)
	g := Tanf(piF32 * fp * c.t)
	c.a1 = g / (1 + g)
}

// ResetCoeffs snaps the smoother to its target and computes a1.
func (c *LP1Coeffs) ResetCoeffs() {
	c.smoothCoeffs.ResetCoeffs()
	cur := c.smoothCoeffs.ResetState(&c.smoothState, c.cutoff)
	c.recompute(cur)
	c.epoch.resetCoeffs()
}

// ResetState seeds the integrator so a constant input x0 is already at
// its steady-state lowpass output, and returns that output (x0).
func (c *LP1Coeffs) ResetState(state *LP1State, x0 float32) float32 {
	assert(IsFinite(x0), "LP1Coeffs.ResetState: x0=%v not finite", x0)
	state.s = x0
	state.epoch.reset("bw.LP1State", &c.epoch)
	return x0
}

// UpdateCoeffsCtrl advances the cutoff smoother's control-rate work.
func (c *LP1Coeffs) UpdateCoeffsCtrl() { c.smoothCoeffs.UpdateCoeffsCtrl() }

// UpdateCoeffsAudio advances the cutoff smoother and recomputes a1.
func (c *LP1Coeffs) UpdateCoeffsAudio() {
	c.smoothCoeffs.UpdateCoeffsAudio()
	cur := c.smoothCoeffs.Process1(&c.smoothState, c.cutoff)
	c.recompute(cur)
}

// Process1 runs one sample through the lowpass integrator.
func (c *LP1Coeffs) Process1(state *LP1State, x float32) float32 {
	assertDeep(state.epoch.matches(&c.epoch), "LP1State used with a stale LP1Coeffs epoch")
	v := c.a1 * (x - state.s)
	lp := v + state.s
	state.s = lp + v
	return lp
}

// Process runs UpdateCoeffsCtrl once, then UpdateCoeffsAudio+Process1 per
// sample.
func (c *LP1Coeffs) Process(state *LP1State, x, y []float32) {
	c.UpdateCoeffsCtrl()
	for i := range x {
		c.UpdateCoeffsAudio()
		y[i] = c.Process1(state, x[i])
	}
}

// ProcessMulti shares one Coeffs across n independent filter states.
func (c *LP1Coeffs) ProcessMulti(states []*LP1State, x, y [][]float32) {
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
