package bw

// CabCoeffs is a simple speaker-cabinet simulator: a chain of four SVFs
// (low-pass, high-pass, and two band-passes feeding independent gains)
// combined into one output. It is not a circuit model, just a filter
// stack voiced to taste.
type CabCoeffs struct {
	epoch coeffsEpoch

	lp, hp, bpl, bph SVFCoeffs
	gainBPL, gainBPH GainCoeffs
}

// CabState holds the four SVFs' integrator memories.
type CabState struct {
	epoch            stateEpoch
	lp, hp, bpl, bph SVFState
}

// NewCabCoeffs allocates and initializes a CabCoeffs at its default
// voicing (cutoffLow=0.5, cutoffHigh=0.5, tone=0.5).
func NewCabCoeffs() *CabCoeffs {
	c := &CabCoeffs{}
	c.Init()
	return c
}

// Init sets the low/high-pass corners and the two band-pass gains to
// their default voicing.
func (c *CabCoeffs) Init() {
	c.lp.Init()
	c.hp.Init()
	c.bpl.Init()
	c.bph.Init()
	c.gainBPL.Init()
	c.gainBPH.Init()

	c.lp.SetCutoff(4e3)
	c.hp.SetCutoff(100)
	c.bpl.SetCutoff(100)
	c.bph.SetCutoff(4e3)
	c.gainBPL.SetGainLin(2.25)
	c.gainBPH.SetGainLin(3.75)

	c.epoch.init("bw.CabCoeffs")
}

// SetSampleRate propagates fs to every sub-filter and gain stage.
func (c *CabCoeffs) SetSampleRate(fs float32) {
	c.lp.SetSampleRate(fs)
	c.hp.SetSampleRate(fs)
	c.bpl.SetSampleRate(fs)
	c.bph.SetSampleRate(fs)
	c.gainBPL.SetSampleRate(fs)
	c.gainBPH.SetSampleRate(fs)
	c.epoch.setSampleRate()
}

// SetCutoffLow sets the relative low-cutoff control in [0, 1]; maps onto
// the shared high-pass/low-band-pass corner in [50, 200]Hz.
func (c *CabCoeffs) SetCutoffLow(value float32) {
	f := 50 + value*(50+100*value)
	c.hp.SetCutoff(f)
	c.bpl.SetCutoff(f)
}

// SetCutoffHigh sets the relative high-cutoff control in [0, 1]; maps
// onto the shared low-pass/high-band-pass corner in [2k, 8k]Hz.
func (c *CabCoeffs) SetCutoffHigh(value float32) {
	f := 2e3 + value*(2e3+4e3*value)
	c.lp.SetCutoff(f)
	c.bph.SetCutoff(f)
}

// SetTone sets tone in [0 (dark), 1 (bright)], rebalancing the two
// band-pass gains around a 3x center.
func (c *CabCoeffs) SetTone(value float32) {
	c.gainBPL.SetGainLin(3 - 1.5*value)
	c.gainBPH.SetGainLin(3 + 1.5*value)
}

// ResetCoeffs snaps every sub-component to its target.
func (c *CabCoeffs) ResetCoeffs() {
	c.lp.ResetCoeffs()
	c.hp.ResetCoeffs()
	c.bpl.ResetCoeffs()
	c.bph.ResetCoeffs()
	c.gainBPL.ResetCoeffs()
	c.gainBPH.ResetCoeffs()
	c.epoch.resetCoeffs()
}

// ResetState seeds every sub-filter for a constant input x0 and returns
// the corresponding initial output.
func (c *CabCoeffs) ResetState(state *CabState, x0 float32) float32 {
	lp, _, _ := c.lp.ResetState(&state.lp, x0)
	_, _, hp := c.hp.ResetState(&state.hp, lp)
	_, bpl, _ := c.bpl.ResetState(&state.bpl, hp)
	_, bph, _ := c.bph.ResetState(&state.bph, hp)
	y := c.gainBPL.GetGainCur()*bpl + c.gainBPH.GetGainCur()*bph + 0.45*hp
	state.epoch.reset("bw.CabState", &c.epoch)
	return y
}

// UpdateCoeffsCtrl forwards to every sub-component.
func (c *CabCoeffs) UpdateCoeffsCtrl() {
	c.lp.UpdateCoeffsCtrl()
	c.hp.UpdateCoeffsCtrl()
	c.bpl.UpdateCoeffsCtrl()
	c.bph.UpdateCoeffsCtrl()
	c.gainBPL.UpdateCoeffsCtrl()
	c.gainBPH.UpdateCoeffsCtrl()
}

// UpdateCoeffsAudio forwards to every sub-component.
func (c *CabCoeffs) UpdateCoeffsAudio() {
	c.lp.UpdateCoeffsAudio()
	c.hp.UpdateCoeffsAudio()
	c.bpl.UpdateCoeffsAudio()
	c.bph.UpdateCoeffsAudio()
	c.gainBPL.UpdateCoeffsAudio()
	c.gainBPH.UpdateCoeffsAudio()
}

// Process1 runs one sample through low-pass -> high-pass -> the two
// band-passes, recombining their gained outputs with the high-pass tap.
func (c *CabCoeffs) Process1(state *CabState, x float32) float32 {
	assertDeep(state.epoch.matches(&c.epoch), "CabState used with a stale CabCoeffs epoch")
	lp, _, _ := c.lp.Process1(&state.lp, x)
	_, _, hp := c.hp.Process1(&state.hp, lp)
	_, bpl, _ := c.bpl.Process1(&state.bpl, hp)
	_, bph, _ := c.bph.Process1(&state.bph, hp)
	return c.gainBPL.Process1(bpl) + c.gainBPH.Process1(bph) + 0.45*hp
}

// Process runs UpdateCoeffsCtrl once, then UpdateCoeffsAudio+Process1 per
// sample.
func (c *CabCoeffs) Process(state *CabState, x, y []float32) {
	c.UpdateCoeffsCtrl()
	for i := range x {
		c.UpdateCoeffsAudio()
		y[i] = c.Process1(state, x[i])
	}
}

// ProcessMulti shares one Coeffs across n independent cab states.
func (c *CabCoeffs) ProcessMulti(states []*CabState, x, y [][]float32) {
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
