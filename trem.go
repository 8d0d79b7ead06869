package bw

// TremCoeffs is a tremolo with independent rate and amount: a free-running
// sine LFO (via PhaseGenCoeffs/OscSin) drives a RingModCoeffs crossfade
// between dry signal and the amplitude-modulated one.
type TremCoeffs struct {
	epoch coeffsEpoch

	phaseGen PhaseGenCoeffs
	ringMod  RingModCoeffs
}

// TremState holds the LFO phase accumulator's memory.
type TremState struct {
	epoch    stateEpoch
	phaseGen PhaseGenState
}

// NewTremCoeffs allocates and initializes a TremCoeffs at rate=1Hz,
// amount=1 (full tremolo).
func NewTremCoeffs() *TremCoeffs {
	c := &TremCoeffs{}
	c.Init()
	return c
}

// Init sets rate to 1Hz and amount to 1 (full tremolo).
func (c *TremCoeffs) Init() {
	c.phaseGen.Init()
	c.ringMod.Init()
	c.SetRate(1)
	c.SetAmount(1)
	c.epoch.init("bw.TremCoeffs")
}

// SetSampleRate propagates fs to the LFO and ring modulator.
func (c *TremCoeffs) SetSampleRate(fs float32) {
	c.phaseGen.SetSampleRate(fs)
	c.ringMod.SetSampleRate(fs)
	c.epoch.setSampleRate()
}

// SetRate sets the modulation rate in Hz.
func (c *TremCoeffs) SetRate(hz float32) { c.phaseGen.SetFrequency(hz) }

// SetAmount sets the tremolo depth in [-1, 1]: 0 is no tremolo, 1 is
// full tremolo, -1 is full tremolo with inverted polarity.
func (c *TremCoeffs) SetAmount(value float32) { c.ringMod.SetAmount(value) }

// ResetCoeffs snaps the LFO and ring modulator to their targets.
func (c *TremCoeffs) ResetCoeffs() {
	c.phaseGen.ResetCoeffs()
	c.ringMod.ResetCoeffs()
	c.epoch.resetCoeffs()
}

// ResetState seeds the LFO phase at 0 and returns the corresponding
// initial output for a constant input x0.
func (c *TremCoeffs) ResetState(state *TremState, x0 float32) float32 {
	p := c.phaseGen.ResetState(&state.phaseGen, 0)
	lfo := OscSin(p)
	y := c.ringMod.Process1(x0, 1+lfo)
	state.epoch.reset("bw.TremState", &c.epoch)
	return y
}

// UpdateCoeffsCtrl forwards to the LFO and ring modulator.
func (c *TremCoeffs) UpdateCoeffsCtrl() {
	c.phaseGen.UpdateCoeffsCtrl()
	c.ringMod.UpdateCoeffsCtrl()
}

// UpdateCoeffsAudio forwards to the LFO and ring modulator.
func (c *TremCoeffs) UpdateCoeffsAudio() {
	c.phaseGen.UpdateCoeffsAudio()
	c.ringMod.UpdateCoeffsAudio()
}

// Process1 advances the LFO by one sample and ring-modulates x with
// 1+sin(lfo).
func (c *TremCoeffs) Process1(state *TremState, x float32) float32 {
	assertDeep(state.epoch.matches(&c.epoch), "TremState used with a stale TremCoeffs epoch")
	p, _ := c.phaseGen.Process1Free(&state.phaseGen)
	lfo := OscSin(p)
	return c.ringMod.Process1(x, 1+lfo)
}

// Process runs UpdateCoeffsCtrl once, then UpdateCoeffsAudio+Process1 per
// sample.
func (c *TremCoeffs) Process(state *TremState, x, y []float32) {
	c.UpdateCoeffsCtrl()
	for i := range x {
		c.UpdateCoeffsAudio()
		y[i] = c.Process1(state, x[i])
	}
}

// ProcessMulti shares one Coeffs (and hence one LFO phase reference
// frequency) across n independent tremolo states.
func (c *TremCoeffs) ProcessMulti(states []*TremState, x, y [][]float32) {
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
