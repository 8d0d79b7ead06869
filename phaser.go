package bw

// PhaserCoeffs is a 4-stage phaser: four cascaded first-order allpasses
// sharing one cutoff, swept by a sinusoidal LFO in octaves around a
// center frequency, with the dry signal added back to the fourth
// stage's output. The LFO phase lives in Coeffs (not State) since one
// sweep drives every channel identically.
type PhaserCoeffs struct {
	epoch coeffsEpoch

	phaseGen      PhaseGenCoeffs
	phaseGenState PhaseGenState
	ap1           AP1Coeffs

	center float32
	amount float32
}

// PhaserState holds the four cascaded allpass stages' memories.
type PhaserState struct {
	epoch stateEpoch
	ap1   [4]AP1State
}

// NewPhaserCoeffs allocates and initializes a PhaserCoeffs at
// center=1kHz, amount=1 octave.
func NewPhaserCoeffs() *PhaserCoeffs {
	c := &PhaserCoeffs{}
	c.Init()
	return c
}

// Init sets center to 1kHz and amount to 1 octave.
func (c *PhaserCoeffs) Init() {
	c.phaseGen.Init()
	c.ap1.Init()
	c.center = 1e3
	c.amount = 1
	c.epoch.init("bw.PhaserCoeffs")
}

// SetSampleRate propagates fs to the LFO and allpass stage.
func (c *PhaserCoeffs) SetSampleRate(fs float32) {
	c.phaseGen.SetSampleRate(fs)
	c.ap1.SetSampleRate(fs)
	c.epoch.setSampleRate()
}

// SetRate sets the LFO sweep rate in Hz.
func (c *PhaserCoeffs) SetRate(hz float32) { c.phaseGen.SetFrequency(hz) }

// SetCenter sets the center frequency in Hz, in [1e-6, 1e12]. center *
// 2^amount must stay in that same range by the time coefficients are
// used.
func (c *PhaserCoeffs) SetCenter(hz float32) { c.center = hz }

// SetAmount sets the LFO sweep depth in octaves (must be >= 0).
func (c *PhaserCoeffs) SetAmount(octaves float32) { c.amount = octaves }

// ResetCoeffs resets the LFO phase to 0, snaps the allpass to center,
// and resets it.
func (c *PhaserCoeffs) ResetCoeffs() {
	c.phaseGen.ResetCoeffs()
	c.phaseGen.ResetState(&c.phaseGenState, 0)
	c.ap1.SetCutoff(c.center)
	c.ap1.ResetCoeffs()
	c.epoch.resetCoeffs()
}

// ResetState cascades all four allpass stages for a constant input x0
// and returns x0 plus the fourth stage's output.
func (c *PhaserCoeffs) ResetState(state *PhaserState, x0 float32) float32 {
	y := c.ap1.ResetState(&state.ap1[0], x0)
	y = c.ap1.ResetState(&state.ap1[1], y)
	y = c.ap1.ResetState(&state.ap1[2], y)
	y = x0 + c.ap1.ResetState(&state.ap1[3], y)
	state.epoch.reset("bw.PhaserState", &c.epoch)
	return y
}

// UpdateCoeffsCtrl forwards to the LFO.
func (c *PhaserCoeffs) UpdateCoeffsCtrl() { c.phaseGen.UpdateCoeffsCtrl() }

// UpdateCoeffsAudio advances the LFO phase, derives the swept cutoff
// (center * 2^(amount*sin(phase))) and updates the shared allpass
// coefficient from it.
func (c *PhaserCoeffs) UpdateCoeffsAudio() {
	c.phaseGen.UpdateCoeffsAudio()
	p, _ := c.phaseGen.Process1Free(&c.phaseGenState)
	m := c.amount * OscSin(p)
	c.ap1.SetCutoff(c.center * Pow2(m))
	c.ap1.UpdateCoeffsCtrl()
	c.ap1.UpdateCoeffsAudio()
}

// Process1 cascades x through all four allpass stages and adds the dry
// signal back to the fourth stage's output.
func (c *PhaserCoeffs) Process1(state *PhaserState, x float32) float32 {
	assertDeep(state.epoch.matches(&c.epoch), "PhaserState used with a stale PhaserCoeffs epoch")
	y := c.ap1.Process1(&state.ap1[0], x)
	y = c.ap1.Process1(&state.ap1[1], y)
	y = c.ap1.Process1(&state.ap1[2], y)
	return x + c.ap1.Process1(&state.ap1[3], y)
}

// Process runs UpdateCoeffsCtrl once, then UpdateCoeffsAudio+Process1 per
// sample.
func (c *PhaserCoeffs) Process(state *PhaserState, x, y []float32) {
	c.UpdateCoeffsCtrl()
	for i := range x {
		c.UpdateCoeffsAudio()
		y[i] = c.Process1(state, x[i])
	}
}

// ProcessMulti shares one Coeffs (and hence one LFO sweep) across n
// independent phaser states.
func (c *PhaserCoeffs) ProcessMulti(states []*PhaserState, x, y [][]float32) {
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
