package bw

// HP1Coeffs is a first-order (6dB/oct) topology-preserving highpass: the
// complement of the same TPT integrator LP1Coeffs uses, computed as
// x - lowpass rather than sharing an instance, so HP1 and LP1 can be
// tuned to independent cutoffs when used side by side.
type HP1Coeffs struct {
	epoch coeffsEpoch

	fs float32
	t  float32

	smoothCoeffs OnePoleCoeffs
	smoothState  OnePoleState

	cutoff float32
	a1     float32
}

// HP1State holds the single integrator memory.
type HP1State struct {
	epoch stateEpoch
	s     float32
}

// NewHP1Coeffs allocates and initializes an HP1Coeffs at 1kHz.
func NewHP1Coeffs() *HP1Coeffs {
	c := &HP1Coeffs{}
	c.Init()
	return c
}

// Init sets cutoff to 1kHz with a 5ms default smoothing time.
func (c *HP1Coeffs) Init() {
	c.smoothCoeffs.Init()
	c.smoothCoeffs.SetTau(0.005)
	c.cutoff = 1e3
	c.epoch.init("bw.HP1Coeffs")
}

// SetSampleRate propagates fs to the cutoff smoother.
func (c *HP1Coeffs) SetSampleRate(fs float32) {
	assert(IsFinite(fs) && fs > 0, "HP1Coeffs.SetSampleRate: fs=%v must be finite and positive", fs)
	c.fs = fs
	c.t = 1 / fs
	c.smoothCoeffs.SetSampleRate(fs)
	c.epoch.setSampleRate()
}

// SetCutoff sets the target cutoff frequency in Hz.
func (c *HP1Coeffs) SetCutoff(fc float32) { c.cutoff = fc }

func (c *HP1Coeffs) recompute(cutoffCur float32) {
	fc := Clip(cutoffCur, 1e-6, 0.5*c.fs-1e-3)
	g := Tanf(piF32 * fc * c.t)
	c.a1 = g / (1 + g)
}

// ResetCoeffs snaps the smoother to its target and computes a1.
func (c *HP1Coeffs) ResetCoeffs() {
	c.smoothCoeffs.ResetCoeffs()
	cur := c.smoothCoeffs.ResetState(&c.smoothState, c.cutoff)
	c.recompute(cur)
	c.epoch.resetCoeffs()
}

// ResetState seeds the integrator so a constant input x0 is already at
// its steady-state lowpass output internally, and returns the
// corresponding steady-state highpass output (always 0 for a constant
// input).
func (c *HP1Coeffs) ResetState(state *HP1State, x0 float32) float32 {
	assert(IsFinite(x0), "HP1Coeffs.ResetState: x0=%v not finite", x0)
	state.s = x0
	state.epoch.reset("bw.HP1State", &c.epoch)
	return 0
}

// UpdateCoeffsCtrl advances the cutoff smoother's control-rate work.
func (c *HP1Coeffs) UpdateCoeffsCtrl() { c.smoothCoeffs.UpdateCoeffsCtrl() }

// UpdateCoeffsAudio advances the cutoff smoother and recomputes a1.
func (c *HP1Coeffs) UpdateCoeffsAudio() {
	c.smoothCoeffs.UpdateCoeffsAudio()
	cur := c.smoothCoeffs.Process1(&c.smoothState, c.cutoff)
	c.recompute(cur)
}

// Process1 runs one sample through the integrator and returns x minus
// its lowpass component.
func (c *HP1Coeffs) Process1(state *HP1State, x float32) float32 {
	assertDeep(state.epoch.matches(&c.epoch), "HP1State used with a stale HP1Coeffs epoch")
	v := c.a1 * (x - state.s)
	lp := v + state.s
	state.s = lp + v
	return x - lp
}

// Process runs UpdateCoeffsCtrl once, then UpdateCoeffsAudio+Process1 per
// sample.
func (c *HP1Coeffs) Process(state *HP1State, x, y []float32) {
	c.UpdateCoeffsCtrl()
	for i := range x {
		c.UpdateCoeffsAudio()
		y[i] = c.Process1(state, x[i])
	}
}

// ProcessMulti shares one Coeffs across n independent filter states.
func (c *HP1Coeffs) ProcessMulti(states []*HP1State, x, y [][]float32) {
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
