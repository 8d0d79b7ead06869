package bw

// DryWetCoeffs crossfades between a dry and a wet signal through a
// smoothed wet mix in [0, 1]: 0 is fully dry, 1 is fully wet. Like
// gain.go and ringmod.go, it has no per-voice State: the smoothed
// coefficient alone carries everything needed to process a sample.
type DryWetCoeffs struct {
	epoch coeffsEpoch

	smoothCoeffs OnePoleCoeffs
	smoothState  OnePoleState

	wet    float32
	wetCur float32
}

// NewDryWetCoeffs allocates and initializes a DryWetCoeffs at wet=0.5.
func NewDryWetCoeffs() *DryWetCoeffs {
	c := &DryWetCoeffs{}
	c.Init()
	return c
}

// Init sets wet to 0.5 with a 5ms default smoothing time.
func (c *DryWetCoeffs) Init() {
	c.smoothCoeffs.Init()
	c.smoothCoeffs.SetTau(0.005)
	c.wet = 0.5
	c.epoch.init("bw.DryWetCoeffs")
}

// SetSampleRate propagates fs to the wet-mix smoother.
func (c *DryWetCoeffs) SetSampleRate(fs float32) {
	c.smoothCoeffs.SetSampleRate(fs)
	c.epoch.setSampleRate()
}

// SetSmoothTau overrides the default 5ms wet-mix-change smoothing time.
func (c *DryWetCoeffs) SetSmoothTau(tau float32) { c.smoothCoeffs.SetTau(tau) }

// SetWet sets the target wet mix, clamped to [0, 1].
func (c *DryWetCoeffs) SetWet(value float32) { c.wet = Clip(value, 0, 1) }

// ResetCoeffs snaps the smoother to its target.
func (c *DryWetCoeffs) ResetCoeffs() {
	c.smoothCoeffs.ResetCoeffs()
	c.wetCur = c.smoothCoeffs.ResetState(&c.smoothState, c.wet)
	c.epoch.resetCoeffs()
}

// UpdateCoeffsCtrl advances the smoother's control-rate work.
func (c *DryWetCoeffs) UpdateCoeffsCtrl() { c.smoothCoeffs.UpdateCoeffsCtrl() }

// UpdateCoeffsAudio advances the smoothed wet mix by one sample.
func (c *DryWetCoeffs) UpdateCoeffsAudio() {
	c.smoothCoeffs.UpdateCoeffsAudio()
	c.wetCur = c.smoothCoeffs.Process1(&c.smoothState, c.wet)
}

// Process1 linearly crossfades dry and wet by the current smoothed wet
// mix.
func (c *DryWetCoeffs) Process1(dry, wet float32) float32 {
	return dry + c.wetCur*(wet-dry)
}

// Process runs UpdateCoeffsCtrl once, then UpdateCoeffsAudio+Process1 per
// sample.
func (c *DryWetCoeffs) Process(dry, wet, y []float32) {
	c.UpdateCoeffsCtrl()
	for i := range dry {
		c.UpdateCoeffsAudio()
		y[i] = c.Process1(dry[i], wet[i])
	}
}

// ProcessMulti applies the one shared wet-mix trajectory to n channel
// pairs.
func (c *DryWetCoeffs) ProcessMulti(dry, wet, y [][]float32) {
	c.UpdateCoeffsCtrl()
	if len(dry) == 0 {
		return
	}
	n := len(dry[0])
	for i := 0; i < n; i++ {
		c.UpdateCoeffsAudio()
		for ch := range dry {
			y[ch][i] = c.Process1(dry[ch][i], wet[ch][i])
		}
	}
}
