package bw

// RingModCoeffs crossfades between passing its first input straight
// through (amount=0) and full bipolar ring modulation of the two inputs
// (amount=+-1), through a smoothed amount. It has no per-voice State:
// like gain.go, the smoothed coefficient alone carries everything
// needed to process a sample.
type RingModCoeffs struct {
	epoch coeffsEpoch

	smoothCoeffs OnePoleCoeffs
	smoothState  OnePoleState

	amount    float32
	amountCur float32
}

// NewRingModCoeffs allocates and initializes a RingModCoeffs at
// amount=0 (transparent).
func NewRingModCoeffs() *RingModCoeffs {
	c := &RingModCoeffs{}
	c.Init()
	return c
}

// Init sets amount to 0 with a 5ms default smoothing time.
func (c *RingModCoeffs) Init() {
	c.smoothCoeffs.Init()
	c.smoothCoeffs.SetTau(0.005)
	c.amount = 0
	c.epoch.init("bw.RingModCoeffs")
}

// SetSampleRate propagates fs to the amount smoother.
func (c *RingModCoeffs) SetSampleRate(fs float32) {
	c.smoothCoeffs.SetSampleRate(fs)
	c.epoch.setSampleRate()
}

// SetAmount sets the target modulation amount, clamped to [-1, 1].
func (c *RingModCoeffs) SetAmount(amount float32) { c.amount = Clip(amount, -1, 1) }

// ResetCoeffs snaps the smoother to its target.
func (c *RingModCoeffs) ResetCoeffs() {
	c.smoothCoeffs.ResetCoeffs()
	c.amountCur = c.smoothCoeffs.ResetState(&c.smoothState, c.amount)
	c.epoch.resetCoeffs()
}

// UpdateCoeffsCtrl advances the smoother's control-rate work.
func (c *RingModCoeffs) UpdateCoeffsCtrl() { c.smoothCoeffs.UpdateCoeffsCtrl() }

// UpdateCoeffsAudio advances the smoothed amount by one sample.
func (c *RingModCoeffs) UpdateCoeffsAudio() {
	c.smoothCoeffs.UpdateCoeffsAudio()
	c.amountCur = c.smoothCoeffs.Process1(&c.smoothState, c.amount)
}

// Process1 combines carrier x1 and modulator x2: y = x1*((1-|amount|) +
// amount*x2). At amount=0, y==x1 (the carrier passes through
// unchanged); at amount=+-1, y is full bipolar ring modulation of the
// two inputs.
func (c *RingModCoeffs) Process1(x1, x2 float32) float32 {
	return x1 * (1 - Absf(c.amountCur) + c.amountCur*x2)
}

// Process runs UpdateCoeffsCtrl once, then UpdateCoeffsAudio+Process1 per
// sample.
func (c *RingModCoeffs) Process(x1, x2, y []float32) {
	c.UpdateCoeffsCtrl()
	for i := range x1 {
		c.UpdateCoeffsAudio()
		y[i] = c.Process1(x1[i], x2[i])
	}
}

// ProcessMulti applies the one shared amount trajectory to n channel
// pairs.
func (c *RingModCoeffs) ProcessMulti(x1, x2, y [][]float32) {
	c.UpdateCoeffsCtrl()
	if len(x1) == 0 {
		return
	}
	n := len(x1[0])
	for i := 0; i < n; i++ {
		c.UpdateCoeffsAudio()
		for ch := range x1 {
			y[ch][i] = c.Process1(x1[ch][i], x2[ch][i])
		}
	}
}
