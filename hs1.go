package bw

// HS1Coeffs is a first-order high shelving filter: leaves DC untouched
// and scales high frequencies by highGain, built on MM1Coeffs with
// coeffX=highGain, coeffLP=1-highGain and the cutoff pre-scaled so the
// shelf's corner sits at the requested frequency regardless of gain.
type HS1Coeffs struct {
	epoch coeffsEpoch

	mm1 MM1Coeffs

	cutoff      float32
	prewarpK    float32
	prewarpFreq float32
	highGain    float32
	dirty       bool
}

// HS1State holds the embedded MM1's state.
type HS1State struct {
	epoch stateEpoch
	mm1   MM1State
}

// NewHS1Coeffs allocates and initializes an HS1Coeffs at 1kHz, unity
// gain (flat).
func NewHS1Coeffs() *HS1Coeffs {
	c := &HS1Coeffs{}
	c.Init()
	return c
}

// Init sets cutoff to 1kHz and highGain to 1 (flat response).
func (c *HS1Coeffs) Init() {
	c.mm1.Init()
	c.mm1.SetPrewarpAtCutoff(false)
	c.mm1.SetCoeffX(1)
	c.mm1.SetCoeffLP(0)
	c.cutoff = 1e3
	c.prewarpK = 1
	c.prewarpFreq = 1e3
	c.highGain = 1
	c.epoch.init("bw.HS1Coeffs")
}

// SetSampleRate propagates fs to the embedded MM1.
func (c *HS1Coeffs) SetSampleRate(fs float32) {
	c.mm1.SetSampleRate(fs)
	c.epoch.setSampleRate()
}

// SetCutoff sets the shelf's corner frequency in Hz.
func (c *HS1Coeffs) SetCutoff(fc float32) { c.cutoff = fc; c.dirty = true }

// SetPrewarpK scales how much the prewarp frequency follows cutoff vs.
// the fixed SetPrewarpFreq value; 1 (default) tracks cutoff exactly.
func (c *HS1Coeffs) SetPrewarpK(k float32) { c.prewarpK = k }

// SetPrewarpFreq sets the fixed prewarp reference frequency used when
// SetPrewarpK is less than 1.
func (c *HS1Coeffs) SetPrewarpFreq(fp float32) { c.prewarpFreq = fp }

// SetHighGainLin sets the target high-frequency gain as a linear ratio.
func (c *HS1Coeffs) SetHighGainLin(g float32) { c.highGain = g; c.dirty = true }

// SetHighGainDB sets the target high-frequency gain in decibels.
func (c *HS1Coeffs) SetHighGainDB(db float32) { c.SetHighGainLin(DB2Lin(db)) }

func (c *HS1Coeffs) updateParams() {
	c.mm1.SetPrewarpFreq(c.prewarpFreq + c.prewarpK*(c.cutoff-c.prewarpFreq))
	if c.dirty {
		c.mm1.SetCutoff(c.cutoff * Sqrtf(c.highGain))
		c.mm1.SetCoeffX(c.highGain)
		c.mm1.SetCoeffLP(1 - c.highGain)
		c.dirty = false
	}
}

// ResetCoeffs computes the shelf's MM1 parameters and snaps them.
func (c *HS1Coeffs) ResetCoeffs() {
	c.dirty = true
	c.updateParams()
	c.mm1.ResetCoeffs()
	c.epoch.resetCoeffs()
}

// ResetState resets the embedded MM1 state; for a constant input x0 a
// shelf's initial output is always x0 regardless of gain (DC response).
func (c *HS1Coeffs) ResetState(state *HS1State, x0 float32) float32 {
	c.mm1.ResetState(&state.mm1, x0)
	state.epoch.reset("bw.HS1State", &c.epoch)
	return x0
}

// UpdateCoeffsCtrl recomputes the MM1 parameters if the shelf's own
// parameters changed, then forwards to the embedded MM1.
func (c *HS1Coeffs) UpdateCoeffsCtrl() {
	c.updateParams()
	c.mm1.UpdateCoeffsCtrl()
}

// UpdateCoeffsAudio forwards to the embedded MM1.
func (c *HS1Coeffs) UpdateCoeffsAudio() { c.mm1.UpdateCoeffsAudio() }

// Process1 forwards to the embedded MM1.
func (c *HS1Coeffs) Process1(state *HS1State, x float32) float32 {
	assertDeep(state.epoch.matches(&c.epoch), "HS1State used with a stale HS1Coeffs epoch")
	return c.mm1.Process1(&state.mm1, x)
}

// Process runs UpdateCoeffsCtrl once, then UpdateCoeffsAudio+Process1 per
// sample.
func (c *HS1Coeffs) Process(state *HS1State, x, y []float32) {
	c.UpdateCoeffsCtrl()
	for i := range x {
		c.UpdateCoeffsAudio()
		y[i] = c.Process1(state, x[i])
	}
}

// ProcessMulti shares one Coeffs across n independent filter states.
func (c *HS1Coeffs) ProcessMulti(states []*HS1State, x, y [][]float32) {
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
