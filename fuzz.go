package bw

// FuzzCoeffs is a fuzz effect loosely modeled on a classic "smiling"
// fuzz pedal: an input highpass strips DC, a single shared SVF lowpass
// is cascaded twice (taking its lowpass tap both times) for a steep
// 2-pole tone-shaping roll-off, a peaking filter forms the fuzz control,
// an (uncompensated, slightly biased) saturator does the clipping, an
// output highpass removes the resulting DC offset, and an output gain
// scales the result.
type FuzzCoeffs struct {
	epoch coeffsEpoch

	hp1In  HP1Coeffs
	lp2    SVFCoeffs
	peak   PeakCoeffs
	satur  SaturatorCoeffs
	hp1Out HP1Coeffs
	gain   GainCoeffs
}

// FuzzState holds every sub-component's per-voice memory, including the
// two independent integrator states for the cascaded lowpass.
type FuzzState struct {
	epoch  stateEpoch
	hp1In  HP1State
	lp2a   SVFState
	lp2b   SVFState
	peak   PeakState
	satur  SaturatorState
	hp1Out HP1State
}

// NewFuzzCoeffs allocates and initializes a FuzzCoeffs at its default
// voicing (fuzz=0, volume=1).
func NewFuzzCoeffs() *FuzzCoeffs {
	c := &FuzzCoeffs{}
	c.Init()
	return c
}

// Init sets the fixed highpass/lowpass corners, the peak filter's
// bandwidth, the saturator's bias, and the default fuzz/volume voicing.
func (c *FuzzCoeffs) Init() {
	c.hp1In.Init()
	c.lp2.Init()
	c.peak.Init()
	c.satur.Init()
	c.hp1Out.Init()
	c.gain.Init()

	c.hp1In.SetCutoff(4)
	c.lp2.SetCutoff(7e3)
	c.peak.SetCutoff(500)
	c.peak.SetQ(6.6)
	c.satur.SetBias(0.145)
	c.hp1Out.SetCutoff(30)

	c.epoch.init("bw.FuzzCoeffs")
}

// SetSampleRate propagates fs to every sub-component and resets the ones
// whose coefficients only depend on fixed corners.
func (c *FuzzCoeffs) SetSampleRate(fs float32) {
	c.hp1In.SetSampleRate(fs)
	c.lp2.SetSampleRate(fs)
	c.peak.SetSampleRate(fs)
	c.satur.SetSampleRate(fs)
	c.hp1Out.SetSampleRate(fs)
	c.gain.SetSampleRate(fs)
	c.hp1In.ResetCoeffs()
	c.lp2.ResetCoeffs()
	c.satur.ResetCoeffs()
	c.hp1Out.ResetCoeffs()
	c.epoch.setSampleRate()
}

// SetFuzz sets the fuzz amount in [0 (low), 1 (high)]; maps onto the
// peaking filter's gain in [0, 30]dB.
func (c *FuzzCoeffs) SetFuzz(value float32) { c.peak.SetPeakGainDB(30 * value) }

// SetVolume sets the output volume in [0 (silent), 1 (max)]; cubically
// maps onto the output gain.
func (c *FuzzCoeffs) SetVolume(value float32) { c.gain.SetGainLin(value * value * value) }

// ResetCoeffs snaps the fuzz/volume-dependent sub-components to their
// targets.
func (c *FuzzCoeffs) ResetCoeffs() {
	c.peak.ResetCoeffs()
	c.gain.ResetCoeffs()
	c.epoch.resetCoeffs()
}

// ResetState seeds every sub-component in cascade for a constant input
// x0 and returns the corresponding initial output.
func (c *FuzzCoeffs) ResetState(state *FuzzState, x0 float32) float32 {
	y := c.hp1In.ResetState(&state.hp1In, x0)
	lp, _, _ := c.lp2.ResetState(&state.lp2a, y)
	lp, _, _ = c.lp2.ResetState(&state.lp2b, lp)
	y = c.peak.ResetState(&state.peak, lp)
	y = c.satur.ResetState(&state.satur, y)
	y = c.hp1Out.ResetState(&state.hp1Out, y)
	y = c.gain.GetGainCur() * y
	state.epoch.reset("bw.FuzzState", &c.epoch)
	return y
}

// UpdateCoeffsCtrl forwards to the fuzz/volume-dependent sub-components.
func (c *FuzzCoeffs) UpdateCoeffsCtrl() {
	c.peak.UpdateCoeffsCtrl()
	c.gain.UpdateCoeffsCtrl()
}

// UpdateCoeffsAudio forwards to the fuzz/volume-dependent sub-components.
func (c *FuzzCoeffs) UpdateCoeffsAudio() {
	c.peak.UpdateCoeffsAudio()
	c.gain.UpdateCoeffsAudio()
}

// Process1 runs one sample through the input highpass, the twice-cascaded
// lowpass, the peak, the clip, the output highpass and the volume gain.
func (c *FuzzCoeffs) Process1(state *FuzzState, x float32) float32 {
	assertDeep(state.epoch.matches(&c.epoch), "FuzzState used with a stale FuzzCoeffs epoch")
	y := c.hp1In.Process1(&state.hp1In, x)
	lp, _, _ := c.lp2.Process1(&state.lp2a, y)
	lp, _, _ = c.lp2.Process1(&state.lp2b, lp)
	y = c.peak.Process1(&state.peak, lp)
	y = c.satur.Process1(&state.satur, y)
	y = c.hp1Out.Process1(&state.hp1Out, y)
	return c.gain.Process1(y)
}

// Process runs UpdateCoeffsCtrl once, then UpdateCoeffsAudio+Process1 per
// sample.
func (c *FuzzCoeffs) Process(state *FuzzState, x, y []float32) {
	c.UpdateCoeffsCtrl()
	for i := range x {
		c.UpdateCoeffsAudio()
		y[i] = c.Process1(state, x[i])
	}
}

// ProcessMulti shares one Coeffs across n independent fuzz states.
func (c *FuzzCoeffs) ProcessMulti(states []*FuzzState, x, y [][]float32) {
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
