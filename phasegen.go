package bw

// PhaseGenCoeffs maintains a free-running phase accumulator with a
// click-free frequency change. It is the modulation source for
// reverb.go's tank allpasses, trem.go and phaser.go's LFOs, and
// oscpulse.go's antialiasing residuals.
type PhaseGenCoeffs struct {
	epoch coeffsEpoch

	fs float32

	smoothCoeffs    OnePoleCoeffs
	smoothFreqState OnePoleState

	freq   float32
	incCur float32
}

// PhaseGenState holds one accumulator's phase and last sync sample.
type PhaseGenState struct {
	epoch    stateEpoch
	phase    float32
	lastSync float32
}

// NewPhaseGenCoeffs allocates and initializes a PhaseGenCoeffs.
func NewPhaseGenCoeffs() *PhaseGenCoeffs {
	c := &PhaseGenCoeffs{}
	c.Init()
	return c
}

// Init sets frequency to 0 Hz and a 5ms default smoothing time.
func (c *PhaseGenCoeffs) Init() {
	c.smoothCoeffs.Init()
	c.smoothCoeffs.SetTau(0.005)
	c.freq = 0
	c.epoch.init("bw.PhaseGenCoeffs")
}

// SetSampleRate propagates fs to the frequency smoother.
func (c *PhaseGenCoeffs) SetSampleRate(fs float32) {
	assert(IsFinite(fs) && fs > 0, "PhaseGenCoeffs.SetSampleRate: fs=%v must be finite and positive", fs)
	c.fs = fs
	c.smoothCoeffs.SetSampleRate(fs)
	c.epoch.setSampleRate()
}

// ResetCoeffs snaps the frequency smoother to the current target.
func (c *PhaseGenCoeffs) ResetCoeffs() {
	c.smoothCoeffs.ResetCoeffs()
	c.smoothCoeffs.ResetState(&c.smoothFreqState, c.freq)
	c.epoch.resetCoeffs()
}

// ResetState seeds state's phase (taken modulo 1) and clears sync memory.
func (c *PhaseGenCoeffs) ResetState(state *PhaseGenState, phase0 float32) float32 {
	_, f := IntFrac(phase0)
	state.phase = f
	state.lastSync = 0
	state.epoch.reset("bw.PhaseGenState", &c.epoch)
	return state.phase
}

// UpdateCoeffsCtrl advances the frequency smoother's control-rate work.
func (c *PhaseGenCoeffs) UpdateCoeffsCtrl() { c.smoothCoeffs.UpdateCoeffsCtrl() }

// UpdateCoeffsAudio advances the frequency smoother by one sample and
// recomputes the per-sample phase increment.
func (c *PhaseGenCoeffs) UpdateCoeffsAudio() {
	c.smoothCoeffs.UpdateCoeffsAudio()
	freq := c.smoothCoeffs.Process1(&c.smoothFreqState, c.freq)
	c.incCur = freq / c.fs
}

// Process1 advances state by one sample and returns the phase *before*
// the increment, together with the increment itself (needed by
// oscpulse.go's antialiasing). A rising edge on sync (sync > 0 after
// sync <= 0) resets phase to 0 for that sample.
func (c *PhaseGenCoeffs) Process1(state *PhaseGenState, sync float32) (phase, inc float32) {
	assertDeep(state.epoch.matches(&c.epoch), "PhaseGenState used with a stale PhaseGenCoeffs epoch")
	if sync > 0 && state.lastSync <= 0 {
		state.phase = 0
	}
	state.lastSync = sync
	phase = state.phase
	inc = c.incCur
	state.phase += inc
	for state.phase >= 1 {
		state.phase -= 1
	}
	for state.phase < 0 {
		state.phase += 1
	}
	return phase, inc
}

// Process1Free is Process1 with no sync input, for the common free-running
// case (reverb.go's tank modulator, trem.go, phaser.go).
func (c *PhaseGenCoeffs) Process1Free(state *PhaseGenState) (phase, inc float32) {
	return c.Process1(state, 0)
}

// SetFrequency sets the oscillation frequency in Hz.
func (c *PhaseGenCoeffs) SetFrequency(hz float32) { c.freq = hz }
