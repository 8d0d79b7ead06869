package bw

// PinkFiltCoeffs approximates a pinking filter: a cascade of four fixed
// one-pole sections giving roughly 3dB/oct attenuation from about
// 0.000046 times Nyquist up to about 0.9 times Nyquist, turning white
// noise into pink noise. Unlike every other filter in this package its
// per-section gains are fixed constants rather than derived from a
// smoothed cutoff — there is nothing to tune.
type PinkFiltCoeffs struct {
	epoch coeffsEpoch

	sampleRateScaling bool
	scalingK          float32
}

// PinkFiltState holds the four cascaded section memories.
type PinkFiltState struct {
	epoch                  stateEpoch
	s1z1, s2z1, s3z1, s4z1 float32
}

// NewPinkFiltCoeffs allocates and initializes a PinkFiltCoeffs.
func NewPinkFiltCoeffs() *PinkFiltCoeffs {
	c := &PinkFiltCoeffs{}
	c.Init()
	return c
}

// Init disables sample-rate scaling by default.
func (c *PinkFiltCoeffs) Init() {
	c.sampleRateScaling = false
	c.epoch.init("bw.PinkFiltCoeffs")
}

// SetSampleRate computes the scaling factor used when sample-rate
// scaling is enabled, referenced to 44100Hz.
func (c *PinkFiltCoeffs) SetSampleRate(fs float32) {
	assert(IsFinite(fs) && fs > 0, "PinkFiltCoeffs.SetSampleRate: fs=%v must be finite and positive", fs)
	c.scalingK = 210 / Sqrtf(fs)
	c.epoch.setSampleRate()
}

// SetSampleRateScaling enables or disables output scaling that keeps
// the filter's magnitude response consistent across sample rates.
func (c *PinkFiltCoeffs) SetSampleRateScaling(v bool) { c.sampleRateScaling = v }

// GetScalingK returns the scaling factor that is or would be applied.
func (c *PinkFiltCoeffs) GetScalingK() float32 { return c.scalingK }

// ResetCoeffs is a no-op; nothing here depends on a target value.
func (c *PinkFiltCoeffs) ResetCoeffs() { c.epoch.resetCoeffs() }

// ResetState seeds all four section memories at their steady state for a
// constant input x0 (each section has unity gain at DC) and returns the
// corresponding initial output.
func (c *PinkFiltCoeffs) ResetState(state *PinkFiltState, x0 float32) float32 {
	assert(IsFinite(x0), "PinkFiltCoeffs.ResetState: x0=%v not finite", x0)
	state.s1z1 = (1 - 0.320696754235142) * x0
	state.s2z1 = (1 - 0.2870206617007935) * x0
	state.s3z1 = (1 - 0.2962862885898576) * x0
	state.s4z1 = (1 - 0.3882183163519794) * x0
	state.epoch.reset("bw.PinkFiltState", &c.epoch)
	y := x0
	if c.sampleRateScaling {
		y = c.scalingK * x0
	}
	return y
}

// UpdateCoeffsCtrl and UpdateCoeffsAudio are no-ops.
func (c *PinkFiltCoeffs) UpdateCoeffsCtrl()  {}
func (c *PinkFiltCoeffs) UpdateCoeffsAudio() {}

// Process1Unscaled runs one sample through the four-section cascade
// without the sample-rate scaling factor.
func (c *PinkFiltCoeffs) Process1Unscaled(state *PinkFiltState, x float32) float32 {
	assertDeep(state.epoch.matches(&c.epoch), "PinkFiltState used with a stale PinkFiltCoeffs epoch")
	s1 := 0.320696754235142*x + state.s1z1
	state.s1z1 = 0.999760145116749*s1 - 0.3204568993518913*x
	s2 := 0.2870206617007935*s1 + state.s2z1
	state.s2z1 = 0.9974135207366259*s2 - 0.2844341824374191*s1
	s3 := 0.2962862885898576*s2 + state.s3z1
	state.s3z1 = 0.9687905029568185*s3 - 0.265076791546676*s2
	s4 := 0.3882183163519794*s3 + state.s4z1
	state.s4z1 = 0.6573784623288251*s4 - 0.04559677868080467*s3
	return s4
}

// Process1 runs Process1Unscaled and, if sample-rate scaling is
// enabled, applies the scaling factor.
func (c *PinkFiltCoeffs) Process1(state *PinkFiltState, x float32) float32 {
	y := c.Process1Unscaled(state, x)
	if c.sampleRateScaling {
		y *= c.scalingK
	}
	return y
}

// Process runs Process1 per sample.
func (c *PinkFiltCoeffs) Process(state *PinkFiltState, x, y []float32) {
	for i := range x {
		y[i] = c.Process1(state, x[i])
	}
}

// ProcessMulti shares one Coeffs across n independent filter states.
func (c *PinkFiltCoeffs) ProcessMulti(states []*PinkFiltState, x, y [][]float32) {
	for ch, s := range states {
		c.Process(s, x[ch], y[ch])
	}
}
