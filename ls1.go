package bw

// LS1Coeffs is a first-order low shelving filter: leaves high
// frequencies untouched and scales DC by dcGain, built on MM1Coeffs
// with coeffX fixed at 1, coeffLP=dcGain-1 and the cutoff pre-scaled so
// the shelf's corner sits at the requested frequency regardless of gain.
type LS1Coeffs struct {
	epoch coeffsEpoch

	mm1 MM1Coeffs

	cutoff      float32
	prewarpK    float32
	prewarpFreq float32
	dcGain      float32
	dirty       bool
}

// LS1State holds the embedded MM1's state.
type LS1State struct {
	epoch stateEpoch
	mm1   MM1State
}

// NewLS1Coeffs allocates and initializes an LS1Coeffs at 1kHz, unity
// gain (flat).
func NewLS1Coeffs() *LS1Coeffs {
	c := &LS1Coeffs{}
	c.Init()
	return c
}

// Init sets cutoff to 1kHz and dcGain to 1 (flat response).
func (c *LS1Coeffs) Init() {
	c.mm1.Init()
	c.mm1.SetPrewarpAtCutoff(false)
	c.mm1.SetCoeffX(1)
	c.mm1.SetCoeffLP(0)
	c.cutoff = 1e3
	c.prewarpK = 1
	c.prewarpFreq = 1e3
	c.dcGain = 1
	c.epoch.init("bw.LS1Coeffs")
}

// SetSampleRate propagates fs to the embedded MM1.
func (c *LS1Coeffs) SetSampleRate(fs float32) {
	c.mm1.SetSampleRate(fs)
	c.epoch.setSampleRate()
}

// SetCutoff sets the shelf's corner frequency in Hz.
func (c *LS1Coeffs) SetCutoff(fc float32) { c.cutoff = fc; c.dirty = true }

// SetPrewarpK scales how much the prewarp frequency follows cutoff vs.
// the fixed SetPrewarpFreq value; 1 (default) tracks cutoff exactly.
func (c *LS1Coeffs) SetPrewarpK(k float32) { c.prewarpK = k }

// SetPrewarpFreq sets the fixed prewarp reference frequency used when
// SetPrewarpK is less than 1.
func (c *LS1Coeffs) SetPrewarpFreq(fp float32) { c.prewarpFreq = fp }

// SetDCGainLin sets the target DC gain as a linear ratio.
func (c *LS1Coeffs) SetDCGainLin(g float32) { c.dcGain = g; c.dirty = true }

// SetDCGainDB sets the target DC gain in decibels.
func (c *LS1Coeffs) SetDCGainDB(db float32) { c.SetDCGainLin(DB2Lin(db)) }

func (c *LS1Coeffs) updateParams() {
	c.mm1.SetPrewarpFreq(c.prewarpFreq + c.prewarpK*(c.cutoff-c.prewarpFreq))
	if c.dirty {
		c.mm1.SetCutoff(c.cutoff * Rcp(Sqrtf(c.dcGain)))
		c.mm1.SetCoeffLP(c.dcGain - 1)
		c.dirty = false
	}
}

// ResetCoeffs computes the shelf's MM1 parameters and snaps them.
func (c *LS1Coeffs) ResetCoeffs() {
	c.dirty = true
	c.updateParams()
	c.mm1.ResetCoeffs()
	c.epoch.resetCoeffs()
}

// ResetState resets the embedded MM1 state; for a constant input x0 a
// shelf's initial output is dcGain*x0 (DC response).
func (c *LS1Coeffs) ResetState(state *LS1State, x0 float32) float32 {
	c.mm1.ResetState(&state.mm1, x0)
	state.epoch.reset("bw.LS1State", &c.epoch)
	return c.dcGain * x0
}

// UpdateCoeffsCtrl recomputes the MM1 parameters if the shelf's own
// parameters changed, then forwards to the embedded MM1.
func (c *LS1Coeffs) UpdateCoeffsCtrl() {
	c.updateParams()
	c.mm1.UpdateCoeffsCtrl()
}

// UpdateCoeffsAudio forwards to the embedded MM1.
func (c *LS1Coeffs) UpdateCoeffsAudio() { c.mm1.UpdateCoeffsAudio() }

// Process1 forwards to the embedded MM1.
func (c *LS1Coeffs) Process1(state *LS1State, x float32) float32 {
	assertDeep(state.epoch.matches(&c.epoch), "LS1State used with a stale LS1Coeffs epoch")
	return c.mm1.Process1(&state.mm1, x)
}

// Process runs UpdateCoeffsCtrl once, then UpdateCoeffsAudio+Process1 per
// sample.
func (c *LS1Coeffs) Process(state *LS1State, x, y []float32) {
	c.UpdateCoeffsCtrl()
	for i := range x {
		c.UpdateCoeffsAudio()
		y[i] = c.Process1(state, x[i])
	}
}

// ProcessMulti shares one Coeffs across n independent filter states.
func (c *LS1Coeffs) ProcessMulti(states []*LS1State, x, y [][]float32) {
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
