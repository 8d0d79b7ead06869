package bw

// GainCoeffs is a smoothed linear gain stage. It has no per-voice State:
// multiplying by a shared smoothed factor needs no history, so every
// channel in a ProcessMulti call simply reads the same coefficient
// trajectory. Used internally by mm1.go (dry/lowpass mix), reverb.go
// (decay/tank feedback) and comp.go (makeup gain).
type GainCoeffs struct {
	epoch coeffsEpoch

	smoothCoeffs OnePoleCoeffs
	smoothState  OnePoleState

	gain    float32
	gainCur float32
}

// NewGainCoeffs allocates and initializes a GainCoeffs at unity gain.
func NewGainCoeffs() *GainCoeffs {
	c := &GainCoeffs{}
	c.Init()
	return c
}

// Init sets gain to 1 (unity) with a 5ms default smoothing time.
func (c *GainCoeffs) Init() {
	c.smoothCoeffs.Init()
	c.smoothCoeffs.SetTau(0.005)
	c.gain = 1
	c.epoch.init("bw.GainCoeffs")
}

// SetSampleRate propagates fs to the smoother.
func (c *GainCoeffs) SetSampleRate(fs float32) {
	c.smoothCoeffs.SetSampleRate(fs)
	c.epoch.setSampleRate()
}

// SetSmoothTau overrides the default 5ms gain-change smoothing time.
func (c *GainCoeffs) SetSmoothTau(tau float32) { c.smoothCoeffs.SetTau(tau) }

// SetGainLin sets the target gain as a linear ratio.
func (c *GainCoeffs) SetGainLin(g float32) { c.gain = g }

// SetGainDB sets the target gain in decibels.
func (c *GainCoeffs) SetGainDB(db float32) { c.gain = DB2Lin(db) }

// GetGain returns the raw (unsmoothed) target gain.
func (c *GainCoeffs) GetGain() float32 { return c.gain }

// ResetCoeffs snaps the smoother to the current target.
func (c *GainCoeffs) ResetCoeffs() {
	c.smoothCoeffs.ResetCoeffs()
	c.gainCur = c.smoothCoeffs.ResetState(&c.smoothState, c.gain)
	c.epoch.resetCoeffs()
}

// UpdateCoeffsCtrl advances the smoother's control-rate work.
func (c *GainCoeffs) UpdateCoeffsCtrl() { c.smoothCoeffs.UpdateCoeffsCtrl() }

// UpdateCoeffsAudio advances the smoothed gain by one sample.
func (c *GainCoeffs) UpdateCoeffsAudio() {
	c.smoothCoeffs.UpdateCoeffsAudio()
	c.gainCur = c.smoothCoeffs.Process1(&c.smoothState, c.gain)
}

// GetGainCur returns the current smoothed linear gain.
func (c *GainCoeffs) GetGainCur() float32 { return c.gainCur }

// Process1 multiplies x by the current smoothed gain.
func (c *GainCoeffs) Process1(x float32) float32 { return c.gainCur * x }

// Process runs UpdateCoeffsCtrl once, then UpdateCoeffsAudio+Process1 per
// sample.
func (c *GainCoeffs) Process(x, y []float32) {
	c.UpdateCoeffsCtrl()
	for i := range x {
		c.UpdateCoeffsAudio()
		y[i] = c.Process1(x[i])
	}
}

// ProcessMulti applies the one shared gain trajectory to n channels.
func (c *GainCoeffs) ProcessMulti(x, y [][]float32) {
	c.UpdateCoeffsCtrl()
	if len(x) == 0 {
		return
	}
	n := len(x[0])
	for i := 0; i < n; i++ {
		c.UpdateCoeffsAudio()
		for ch := range x {
			y[ch][i] = c.Process1(x[ch][i])
		}
	}
}
