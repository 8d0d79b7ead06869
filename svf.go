package bw

// SVFCoeffs is a topology-preserving (zero-delay-feedback) state-variable
// filter producing lowpass, bandpass and highpass outputs from a single
// two-integrator pass. peak.go, notch.go, wah.go, cab.go, drive.go and
// fuzz.go all build their responses by recombining these three taps
// rather than deriving their own biquad coefficients.
type SVFCoeffs struct {
	epoch coeffsEpoch

	fs float32
	t  float32 // 1/fs

	smoothCutoffCoeffs OnePoleCoeffs
	smoothCutoffState  OnePoleState
	smoothQCoeffs      OnePoleCoeffs
	smoothQState       OnePoleState

	cutoff      float32
	q           float32
	prewarpFreq float32 // 0 means "track the smoothed cutoff"
	prewarpK    float32 // additional prewarp scale, default 1

	g, k, a1 float32
}

// SVFState holds the two integrator memories.
type SVFState struct {
	epoch  stateEpoch
	s1, s2 float32
}

// NewSVFCoeffs allocates and initializes an SVFCoeffs at 1kHz, Q=0.5.
func NewSVFCoeffs() *SVFCoeffs {
	c := &SVFCoeffs{}
	c.Init()
	return c
}

// Init sets cutoff to 1kHz, Q to 0.5 (critically damped: two coincident real poles)
// and a 5ms default smoothing time for both.
func (c *SVFCoeffs) Init() {
	c.smoothCutoffCoeffs.Init()
	c.smoothCutoffCoeffs.SetTau(0.005)
	c.smoothQCoeffs.Init()
	c.smoothQCoeffs.SetTau(0.005)
	c.cutoff = 1e3
	c.q = 0.5
	c.prewarpFreq = 0
	c.prewarpK = 1
	c.epoch.init("bw.SVFCoeffs")
}

// SetSampleRate propagates fs to both smoothers.
func (c *SVFCoeffs) SetSampleRate(fs float32) {
	assert(IsFinite(fs) && fs > 0, "SVFCoeffs.SetSampleRate: fs=%v must be finite and positive", fs)
	c.fs = fs
	c.t = 1 / fs
	c.smoothCutoffCoeffs.SetSampleRate(fs)
	c.smoothQCoeffs.SetSampleRate(fs)
	c.epoch.setSampleRate()
}

// SetCutoff sets the target cutoff frequency in Hz.
func (c *SVFCoeffs) SetCutoff(fc float32) { c.cutoff = fc }

// SetQ sets the target quality factor (must stay positive).
func (c *SVFCoeffs) SetQ(q float32) { c.q = q }

// SetPrewarpFreq overrides the frequency used for the tan() prewarp; 0
// (the default) tracks the smoothed cutoff sample-by-sample, which is
// what most callers want. Fixing it decouples prewarp from a
// fast-modulating cutoff.
func (c *SVFCoeffs) SetPrewarpFreq(fp float32) { c.prewarpFreq = fp }

// SetPrewarpK scales the prewarp frequency before the tan(); default 1.
func (c *SVFCoeffs) SetPrewarpK(k float32) { c.prewarpK = k }

// ResetCoeffs snaps both smoothers to their targets and computes the
// initial g/k/a1.
func (c *SVFCoeffs) ResetCoeffs() {
	c.smoothCutoffCoeffs.ResetCoeffs()
	c.smoothQCoeffs.ResetCoeffs()
	cutoffCur := c.smoothCutoffCoeffs.ResetState(&c.smoothCutoffState, c.cutoff)
	qCur := c.smoothQCoeffs.ResetState(&c.smoothQState, c.q)
	c.recompute(cutoffCur, qCur)
	c.epoch.resetCoeffs()
}

// ResetState seeds the integrators so a constant input x0 is already at
// steady state, and returns the corresponding (lp, bp, hp) outputs:
// (x0, 0, 0).
func (c *SVFCoeffs) ResetState(state *SVFState, x0 float32) (lp, bp, hp float32) {
	assert(IsFinite(x0), "SVFCoeffs.ResetState: x0=%v not finite", x0)
	state.s1 = 0
	state.s2 = x0
	state.epoch.reset("bw.SVFState", &c.epoch)
	return x0, 0, 0
}

func (c *SVFCoeffs) recompute(cutoffCur, qCur float32) {
	fp := c.prewarpFreq
	if fp == 0 {
		fp = cutoffCur
	}
	fp *= c.prewarpK
	nyquistGuard := 0.5*c.fs - 1e-3
	fp = Clip(fp, 1e-6, nyquistGuard)
	g := Tanf(piF32 * fp * c.t)
	k := Rcp(qCur)
	c.g = g
	c.k = k
	c.a1 = Rcp(1 + g*(g+k))
}

// UpdateCoeffsCtrl forwards to both smoothers' UpdateCoeffsCtrl; g, k
// and a1 depend on the smoothed cutoff/Q and are only recomputed at
// audio rate.
func (c *SVFCoeffs) UpdateCoeffsCtrl() {
	c.smoothCutoffCoeffs.UpdateCoeffsCtrl()
	c.smoothQCoeffs.UpdateCoeffsCtrl()
}

// UpdateCoeffsAudio advances both smoothers by one sample and recomputes
// g, k and a1 from the freshly-smoothed cutoff/Q.
func (c *SVFCoeffs) UpdateCoeffsAudio() {
	c.smoothCutoffCoeffs.UpdateCoeffsAudio()
	c.smoothQCoeffs.UpdateCoeffsAudio()
	cutoffCur := c.smoothCutoffCoeffs.Process1(&c.smoothCutoffState, c.cutoff)
	qCur := c.smoothQCoeffs.Process1(&c.smoothQState, c.q)
	c.recompute(cutoffCur, qCur)
}

// Process1 runs one sample through the two-integrator TPT ladder,
// returning lowpass, bandpass and highpass outputs.
func (c *SVFCoeffs) Process1(state *SVFState, x float32) (lp, bp, hp float32) {
	assertDeep(state.epoch.matches(&c.epoch), "SVFState used with a stale SVFCoeffs epoch")
	hp = c.a1 * (x - (c.g+c.k)*state.s1 - state.s2)
	v1 := c.g * hp
	bp = v1 + state.s1
	state.s1 = bp + v1
	v2 := c.g * bp
	lp = v2 + state.s2
	state.s2 = lp + v2
	return lp, bp, hp
}

// Process runs UpdateCoeffsCtrl once, then UpdateCoeffsAudio+Process1 per
// sample, writing all three outputs. Any of yLP, yBP, yHP may be nil to
// skip that tap.
func (c *SVFCoeffs) Process(state *SVFState, x, yLP, yBP, yHP []float32) {
	c.UpdateCoeffsCtrl()
	for i := range x {
		c.UpdateCoeffsAudio()
		lp, bp, hp := c.Process1(state, x[i])
		if yLP != nil {
			yLP[i] = lp
		}
		if yBP != nil {
			yBP[i] = bp
		}
		if yHP != nil {
			yHP[i] = hp
		}
	}
}

// ProcessMulti shares one Coeffs across n independent filter states.
func (c *SVFCoeffs) ProcessMulti(states []*SVFState, x, yLP, yBP, yHP [][]float32) {
	c.UpdateCoeffsCtrl()
	if len(x) == 0 {
		return
	}
	n := len(x[0])
	for i := 0; i < n; i++ {
		c.UpdateCoeffsAudio()
		for ch, s := range states {
			lp, bp, hp := c.Process1(s, x[ch][i])
			if yLP != nil {
				yLP[ch][i] = lp
			}
			if yBP != nil {
				yBP[ch][i] = bp
			}
			if yHP != nil {
				yHP[ch][i] = hp
			}
		}
	}
}
