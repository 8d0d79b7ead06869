package bw

// DriveCoeffs is an overdrive effect loosely modeled on a classic green
// "screaming" overdrive pedal: a fixed 16Hz highpass bleeds off DC and
// subsonic content, the resulting signal is brightened by a shelving
// stage, pushed through a swept-gain peaking filter that forms the
// drive control, clipped by a compensated saturator (with the highpass
// tap added back in afterward to preserve low end through the clip),
// shaped by a tone lowpass, and scaled by an output gain.
type DriveCoeffs struct {
	epoch coeffsEpoch

	hp2   SVFCoeffs
	hs1   HS1Coeffs
	peak  PeakCoeffs
	satur SaturatorCoeffs
	lp1   LP1Coeffs
	gain  GainCoeffs
}

// DriveState holds every sub-component's per-voice memory.
type DriveState struct {
	epoch stateEpoch
	hp2   SVFState
	hs1   HS1State
	peak  PeakState
	satur SaturatorState
	lp1   LP1State
}

// NewDriveCoeffs allocates and initializes a DriveCoeffs at its default
// voicing (drive=0, tone=0.5, volume=1).
func NewDriveCoeffs() *DriveCoeffs {
	c := &DriveCoeffs{}
	c.Init()
	return c
}

// Init sets the fixed highpass/shelf corners, the peak filter's
// bandwidth, the saturator's gain/compensation, and the default
// drive/tone/volume voicing.
func (c *DriveCoeffs) Init() {
	c.hp2.Init()
	c.hs1.Init()
	c.peak.Init()
	c.satur.Init()
	c.lp1.Init()
	c.gain.Init()

	c.hp2.SetCutoff(16)
	c.hs1.SetCutoff(200)
	c.hs1.SetHighGainDB(20)
	c.peak.SetPeakGainDB(0)
	c.peak.SetCutoff(500)
	c.peak.SetQ(9.5)
	c.satur.SetGain(1.5)
	c.satur.SetGainCompensation(true)
	c.lp1.SetCutoff(400 + (5e3-400)*0.125)

	c.epoch.init("bw.DriveCoeffs")
}

// SetSampleRate propagates fs to every sub-component and resets the ones
// whose coefficients only depend on fixed corners.
func (c *DriveCoeffs) SetSampleRate(fs float32) {
	c.hp2.SetSampleRate(fs)
	c.hs1.SetSampleRate(fs)
	c.peak.SetSampleRate(fs)
	c.satur.SetSampleRate(fs)
	c.lp1.SetSampleRate(fs)
	c.gain.SetSampleRate(fs)
	c.hp2.ResetCoeffs()
	c.hs1.ResetCoeffs()
	c.satur.ResetCoeffs()
	c.epoch.setSampleRate()
}

// SetDrive sets the overdrive amount in [0 (low), 1 (high)]; maps onto
// the peaking filter's gain in [0, 20]dB.
func (c *DriveCoeffs) SetDrive(value float32) { c.peak.SetPeakGainDB(20 * value) }

// SetTone sets the tone in [0 (dark), 1 (bright)]; cubically maps onto
// the output lowpass cutoff in [400, 5000]Hz.
func (c *DriveCoeffs) SetTone(value float32) {
	c.lp1.SetCutoff(400 + (5e3-400)*value*value*value)
}

// SetVolume sets the output volume in [0 (silent), 1 (max)]; cubically
// maps onto the output gain.
func (c *DriveCoeffs) SetVolume(value float32) { c.gain.SetGainLin(value * value * value) }

// ResetCoeffs snaps the drive/tone/volume-dependent sub-components to
// their targets.
func (c *DriveCoeffs) ResetCoeffs() {
	c.peak.ResetCoeffs()
	c.lp1.ResetCoeffs()
	c.gain.ResetCoeffs()
	c.epoch.resetCoeffs()
}

// ResetState seeds every sub-component in cascade for a constant input
// x0 (attenuated by 0.316 going into the highpass, matching the pedal's
// input pad) and returns the corresponding initial output.
func (c *DriveCoeffs) ResetState(state *DriveState, x0 float32) float32 {
	_, _, hp := c.hp2.ResetState(&state.hp2, 0.316*x0)
	y := c.hs1.ResetState(&state.hs1, hp)
	y = c.peak.ResetState(&state.peak, y)
	y = hp + c.satur.ResetState(&state.satur, y-hp)
	y = c.lp1.ResetState(&state.lp1, y)
	y = c.gain.GetGainCur() * y
	state.epoch.reset("bw.DriveState", &c.epoch)
	return y
}

// UpdateCoeffsCtrl forwards to the drive/tone/volume-dependent
// sub-components.
func (c *DriveCoeffs) UpdateCoeffsCtrl() {
	c.peak.UpdateCoeffsCtrl()
	c.lp1.UpdateCoeffsCtrl()
	c.gain.UpdateCoeffsCtrl()
}

// UpdateCoeffsAudio forwards to the drive/tone/volume-dependent
// sub-components.
func (c *DriveCoeffs) UpdateCoeffsAudio() {
	c.peak.UpdateCoeffsAudio()
	c.lp1.UpdateCoeffsAudio()
	c.gain.UpdateCoeffsAudio()
}

// Process1 runs one sample through the highpass, shelf, peak, clip,
// tone and volume cascade, adding the highpass tap back in around the
// saturator so the clip only acts on the signal above 16Hz.
func (c *DriveCoeffs) Process1(state *DriveState, x float32) float32 {
	assertDeep(state.epoch.matches(&c.epoch), "DriveState used with a stale DriveCoeffs epoch")
	_, _, hp := c.hp2.Process1(&state.hp2, 0.316*x)
	y := c.hs1.Process1(&state.hs1, hp)
	y = c.peak.Process1(&state.peak, y)
	y = hp + c.satur.Process1(&state.satur, y-hp)
	y = c.lp1.Process1(&state.lp1, y)
	return c.gain.Process1(y)
}

// Process runs UpdateCoeffsCtrl once, then UpdateCoeffsAudio+Process1 per
// sample.
func (c *DriveCoeffs) Process(state *DriveState, x, y []float32) {
	c.UpdateCoeffsCtrl()
	for i := range x {
		c.UpdateCoeffsAudio()
		y[i] = c.Process1(state, x[i])
	}
}

// ProcessMulti shares one Coeffs across n independent drive states.
func (c *DriveCoeffs) ProcessMulti(states []*DriveState, x, y [][]float32) {
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
