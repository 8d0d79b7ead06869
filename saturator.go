package bw

// SaturatorCoeffs is an antialiased hard clipper with parametric bias and
// gain (with optional compensation) and output bias removal:
//
//	y(n) = clip(gain*x(n) + bias, -1, 1) - clip(bias, -1, 1)
//
// Antialiasing follows the antiderivative method: rather than clipping the
// raw sample, it interpolates the antiderivative F of the clip nonlinearity
// between consecutive samples, which suppresses the harmonics a naive
// sample-by-sample clip would fold back into the passband.
type SaturatorCoeffs struct {
	epoch coeffsEpoch

	smoothBiasCoeffs OnePoleCoeffs
	smoothBiasState  OnePoleState
	smoothGainCoeffs OnePoleCoeffs
	smoothGainState  OnePoleState

	biasDC  float32
	invGain float32

	bias             float32
	gain             float32
	gainCompensation bool
}

// SaturatorState holds the antiderivative interpolation memory.
type SaturatorState struct {
	epoch stateEpoch
	xZ1   float32
	fZ1   float32
}

// NewSaturatorCoeffs allocates and initializes a SaturatorCoeffs with
// bias=0, gain=1, gain compensation off.
func NewSaturatorCoeffs() *SaturatorCoeffs {
	c := &SaturatorCoeffs{}
	c.Init()
	return c
}

// Init sets bias to 0, gain to 1, gain compensation off, and a 5ms
// smoothing time with a sticky threshold to avoid endless micro-updates.
func (c *SaturatorCoeffs) Init() {
	c.smoothBiasCoeffs.Init()
	c.smoothBiasCoeffs.SetTau(0.005)
	c.smoothBiasCoeffs.SetStickyThresh(1e-3)
	c.smoothBiasCoeffs.SetStickyMode(StickyAbs)
	c.smoothGainCoeffs.Init()
	c.smoothGainCoeffs.SetTau(0.005)
	c.smoothGainCoeffs.SetStickyThresh(1e-3)
	c.smoothGainCoeffs.SetStickyMode(StickyRel)
	c.bias = 0
	c.gain = 1
	c.gainCompensation = false
	c.epoch.init("bw.SaturatorCoeffs")
}

// SetSampleRate propagates fs to both smoothers.
func (c *SaturatorCoeffs) SetSampleRate(fs float32) {
	c.smoothBiasCoeffs.SetSampleRate(fs)
	c.smoothBiasCoeffs.ResetCoeffs()
	c.smoothGainCoeffs.SetSampleRate(fs)
	c.smoothGainCoeffs.ResetCoeffs()
	c.epoch.setSampleRate()
}

// SetBias sets the input bias added before clipping, in [-1e12, 1e12].
func (c *SaturatorCoeffs) SetBias(v float32) { c.bias = v }

// SetGain sets the pre-clip gain, in [1e-12, 1e12].
func (c *SaturatorCoeffs) SetGain(v float32) { c.gain = v }

// SetGainCompensation sets whether the output is divided back by gain.
func (c *SaturatorCoeffs) SetGainCompensation(v bool) { c.gainCompensation = v }

func (c *SaturatorCoeffs) doUpdateCoeffs(force bool) {
	biasCur := c.smoothBiasState.GetYZ1()
	if force || c.bias != biasCur {
		biasCur = c.smoothBiasCoeffs.Process1(&c.smoothBiasState, c.bias)
		c.biasDC = Clip(biasCur, -1, 1)
	}
	gainCur := c.smoothGainState.GetYZ1()
	if force || c.gain != gainCur {
		gainCur = c.smoothGainCoeffs.Process1(&c.smoothGainState, c.gain)
		c.invGain = Rcp(gainCur)
	}
}

// ResetCoeffs snaps the bias/gain smoothers to their targets and
// recomputes biasDC/invGain.
func (c *SaturatorCoeffs) ResetCoeffs() {
	c.smoothBiasCoeffs.ResetCoeffs()
	c.smoothGainCoeffs.ResetCoeffs()
	c.smoothBiasCoeffs.ResetState(&c.smoothBiasState, c.bias)
	c.smoothGainCoeffs.ResetState(&c.smoothGainState, c.gain)
	c.doUpdateCoeffs(true)
	c.epoch.resetCoeffs()
}

// ResetState resets the interpolation memory for constant input x0 and
// returns the corresponding initial output.
func (c *SaturatorCoeffs) ResetState(state *SaturatorState, x0 float32) float32 {
	x := c.smoothGainState.GetYZ1()*x0 + c.smoothBiasState.GetYZ1()
	a := Absf(x)
	f := a
	if a > 1 {
		f = a - 0.5
	} else {
		f = 0.5 * a * a
	}
	yb := Clip(x, -1, 1)
	y := yb - c.biasDC
	if c.gainCompensation {
		y *= c.invGain
	}
	state.xZ1 = x
	state.fZ1 = f
	state.epoch.reset("bw.SaturatorState", &c.epoch)
	return y
}

// UpdateCoeffsCtrl is a no-op: saturation coefficients only settle at
// audio rate.
func (c *SaturatorCoeffs) UpdateCoeffsCtrl() {}

// UpdateCoeffsAudio advances the bias/gain smoothers by one sample.
func (c *SaturatorCoeffs) UpdateCoeffsAudio() { c.doUpdateCoeffs(false) }

// Process1 clips x with antiderivative antialiasing, optionally dividing
// the output by gain if gain compensation is enabled.
func (c *SaturatorCoeffs) Process1(state *SaturatorState, x float32) float32 {
	assertDeep(state.epoch.matches(&c.epoch), "SaturatorState used with a stale SaturatorCoeffs epoch")
	xg := c.smoothGainState.GetYZ1()*x + c.smoothBiasState.GetYZ1()
	a := Absf(xg)
	var f float32
	if a > 1 {
		f = a - 0.5
	} else {
		f = 0.5 * a * a
	}
	d := xg - state.xZ1
	var yb float32
	if d*d < 1e-6 {
		yb = Clip(0.5*(xg+state.xZ1), -1, 1)
	} else {
		yb = (f - state.fZ1) * Rcp(d)
	}
	y := yb - c.biasDC
	state.xZ1 = xg
	state.fZ1 = f
	if c.gainCompensation {
		y *= c.invGain
	}
	return y
}

// Process runs UpdateCoeffsCtrl once, then UpdateCoeffsAudio+Process1 per
// sample.
func (c *SaturatorCoeffs) Process(state *SaturatorState, x, y []float32) {
	c.UpdateCoeffsCtrl()
	for i := range x {
		c.UpdateCoeffsAudio()
		y[i] = c.Process1(state, x[i])
	}
}

// ProcessMulti shares one Coeffs across n independent filter states.
func (c *SaturatorCoeffs) ProcessMulti(states []*SaturatorState, x, y [][]float32) {
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
