package bw

// SRReduceCoeffs is a sample-and-hold sample-rate reducer: a phase
// accumulator advances by ratio each sample and, once it crosses 1, the
// held output is refreshed with the current input and the accumulator
// wraps. ratio=1 passes every sample through unchanged; ratio<1 holds
// each sample for roughly 1/ratio samples, reducing the effective
// sample rate to ratio*fs.
type SRReduceCoeffs struct {
	epoch coeffsEpoch
	ratio float32
}

// SRReduceState holds the phase accumulator and last held output.
type SRReduceState struct {
	epoch stateEpoch
	phase float32
	yz1   float32
}

// NewSRReduceCoeffs allocates and initializes an SRReduceCoeffs at
// ratio=1 (transparent).
func NewSRReduceCoeffs() *SRReduceCoeffs {
	c := &SRReduceCoeffs{}
	c.Init()
	return c
}

// Init sets ratio to 1.
func (c *SRReduceCoeffs) Init() {
	c.ratio = 1
	c.epoch.init("bw.SRReduceCoeffs")
}

// SetSampleRate is a no-op; the reduction ratio is sample-rate-relative
// by construction.
func (c *SRReduceCoeffs) SetSampleRate(fs float32) {
	assert(IsFinite(fs) && fs > 0, "SRReduceCoeffs.SetSampleRate: fs=%v must be finite and positive", fs)
	c.epoch.setSampleRate()
}

// SetRatio sets the reduction ratio (1 = transparent, closer to 0 = more
// reduction).
func (c *SRReduceCoeffs) SetRatio(ratio float32) { c.ratio = ratio }

// ResetCoeffs is a no-op.
func (c *SRReduceCoeffs) ResetCoeffs() { c.epoch.resetCoeffs() }

// ResetState seeds the held output with x0 and sets the accumulator so
// the very next Process1 call refreshes immediately.
func (c *SRReduceCoeffs) ResetState(state *SRReduceState, x0 float32) float32 {
	assert(IsFinite(x0), "SRReduceCoeffs.ResetState: x0=%v not finite", x0)
	state.yz1 = x0
	state.phase = 1
	state.epoch.reset("bw.SRReduceState", &c.epoch)
	return x0
}

// UpdateCoeffsCtrl and UpdateCoeffsAudio are no-ops; ratio is read
// directly by Process1.
func (c *SRReduceCoeffs) UpdateCoeffsCtrl()  {}
func (c *SRReduceCoeffs) UpdateCoeffsAudio() {}

// Process1 advances the accumulator by ratio and refreshes the held
// output once it reaches or exceeds 1.
func (c *SRReduceCoeffs) Process1(state *SRReduceState, x float32) float32 {
	assertDeep(state.epoch.matches(&c.epoch), "SRReduceState used with a stale SRReduceCoeffs epoch")
	state.phase += c.ratio
	if state.phase >= 1 {
		state.yz1 = x
		state.phase -= Floorf(state.phase)
	}
	return state.yz1
}

// Process runs Process1 per sample.
func (c *SRReduceCoeffs) Process(state *SRReduceState, x, y []float32) {
	for i := range x {
		y[i] = c.Process1(state, x[i])
	}
}

// ProcessMulti shares one Coeffs across n independent reducer states.
func (c *SRReduceCoeffs) ProcessMulti(states []*SRReduceState, x, y [][]float32) {
	for ch, s := range states {
		c.Process(s, x[ch], y[ch])
	}
}
