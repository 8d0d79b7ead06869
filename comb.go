package bw

// CombCoeffs is a feedforward/feedback comb filter: a delay line tapped
// twice (one feedforward, one feedback), with independently smoothed
// delay times and three gain stages (blend, feedforward, feedback).
// Unlike the classic Schroeder comb, the feedback path is added rather
// than subtracted.
type CombCoeffs struct {
	epoch coeffsEpoch

	delay              DelayCoeffs
	blend, ff, fb      GainCoeffs
	smoothCoeffs       OnePoleCoeffs
	smoothDelayFFState OnePoleState
	smoothDelayFBState OnePoleState

	fs float32

	delayFF float32
	delayFB float32

	dffi int
	dfff float32
	dfbi int
	dfbf float32
}

// CombState holds the shared delay line's memory.
type CombState struct {
	epoch stateEpoch
	delay DelayState
}

// NewCombCoeffs allocates and initializes a CombCoeffs with the given
// maximum delay (seconds) for both taps.
func NewCombCoeffs(maxDelay float32) *CombCoeffs {
	c := &CombCoeffs{}
	c.Init(maxDelay)
	return c
}

// Init sets both delay times to 0, both ff/fb gains to 0 (blend at unity,
// GainCoeffs.Init's default), and a 50ms sticky-absolute smoother for the
// delay times.
func (c *CombCoeffs) Init(maxDelay float32) {
	c.delay.Init(maxDelay)
	c.blend.Init()
	c.ff.Init()
	c.fb.Init()
	c.ff.SetGainLin(0)
	c.fb.SetGainLin(0)

	c.smoothCoeffs.Init()
	c.smoothCoeffs.SetTau(0.05)
	c.smoothCoeffs.SetStickyThresh(1e-6)
	c.smoothCoeffs.SetStickyMode(StickyAbs)

	c.epoch.init("bw.CombCoeffs")
}

// MemReq returns the number of float32s the caller must allocate and
// bind via MemSet before ResetState.
func (c *CombCoeffs) MemReq() int { return c.delay.MemReq() }

// MemSet binds mem as this voice's delay-line backing buffer.
func (c *CombCoeffs) MemSet(state *CombState, mem []float32) { c.delay.MemSet(&state.delay, mem) }

// SetSampleRate propagates fs to every sub-component and records it for
// the delay-time-to-samples conversion.
func (c *CombCoeffs) SetSampleRate(fs float32) {
	c.delay.SetSampleRate(fs)
	c.blend.SetSampleRate(fs)
	c.ff.SetSampleRate(fs)
	c.fb.SetSampleRate(fs)
	c.smoothCoeffs.SetSampleRate(fs)
	c.fs = fs
	c.epoch.setSampleRate()
}

// SetDelayFF sets the feedforward tap delay in seconds, in
// [0, maxDelay].
func (c *CombCoeffs) SetDelayFF(value float32) { c.delayFF = value }

// SetDelayFB sets the feedback tap delay in seconds, in [0, maxDelay].
func (c *CombCoeffs) SetDelayFB(value float32) { c.delayFB = value }

// SetCoeffBlend sets the blend (dry) gain, normally in [-1, 1].
func (c *CombCoeffs) SetCoeffBlend(value float32) { c.blend.SetGainLin(value) }

// SetCoeffFF sets the feedforward gain, normally in [-1, 1].
func (c *CombCoeffs) SetCoeffFF(value float32) { c.ff.SetGainLin(value) }

// SetCoeffFB sets the feedback gain, in (-1, 1) for stability (|1| is
// allowed only as the ResetState steady-state special case).
func (c *CombCoeffs) SetCoeffFB(value float32) { c.fb.SetGainLin(value) }

func (c *CombCoeffs) doUpdateCoeffs(force bool) {
	ffCur := c.smoothDelayFFState.GetYZ1()
	if force || ffCur != c.delayFF {
		d := c.smoothCoeffs.Process1(&c.smoothDelayFFState, c.delayFF)
		s := Max(c.fs*d, 0)
		i, f := IntFrac(s)
		c.dffi = int(i)
		c.dfff = f
		if c.dffi >= c.delay.GetLength() {
			c.dffi = c.delay.GetLength() - 1
			c.dfff = 0
		}
	}
	fbCur := c.smoothDelayFBState.GetYZ1()
	if force || fbCur != c.delayFB {
		d := c.smoothCoeffs.Process1(&c.smoothDelayFBState, c.delayFB)
		s := Max(c.fs*d, 1) - 1
		i, f := IntFrac(s)
		c.dfbi = int(i)
		c.dfbf = f
		if c.dfbi >= c.delay.GetLength() {
			c.dfbi = c.delay.GetLength() - 1
			c.dfbf = 0
		}
	}
}

// ResetCoeffs forces the delay-time smoothers and splits to their
// targets, and resets the gain stages.
func (c *CombCoeffs) ResetCoeffs() {
	c.delay.ResetCoeffs()
	c.blend.ResetCoeffs()
	c.ff.ResetCoeffs()
	c.fb.ResetCoeffs()
	c.smoothCoeffs.ResetCoeffs()
	c.smoothCoeffs.ResetState(&c.smoothDelayFFState, c.delayFF)
	c.smoothCoeffs.ResetState(&c.smoothDelayFBState, c.delayFB)
	c.doUpdateCoeffs(true)
	c.epoch.resetCoeffs()
}

// ResetState seeds the delay line with the steady-state value for a
// constant input x0 and returns the corresponding initial output. When
// the feedback gain is exactly +-1, the steady state is undefined for
// nonzero x0 (it would diverge), so the line is seeded to 0 and x0 must
// be 0.
func (c *CombCoeffs) ResetState(state *CombState, x0 float32) float32 {
	fb := c.fb.GetGainCur()
	var y float32
	if fb == -1 || fb == 1 {
		assert(x0 == 0, "CombCoeffs.ResetState: x0=%v must be 0 when fb=%v", x0, fb)
		c.delay.ResetState(&state.delay, 0)
		y = 0
	} else {
		v := x0 / (1 - fb)
		c.delay.ResetState(&state.delay, v)
		y = (c.ff.GetGainCur() + c.blend.GetGainCur()) * v
	}
	state.epoch.reset("bw.CombState", &c.epoch)
	return y
}

// UpdateCoeffsCtrl forwards to every sub-component and recomputes the
// delay-time splits if their targets changed.
func (c *CombCoeffs) UpdateCoeffsCtrl() {
	c.blend.UpdateCoeffsCtrl()
	c.ff.UpdateCoeffsCtrl()
	c.fb.UpdateCoeffsCtrl()
	c.smoothCoeffs.UpdateCoeffsCtrl()
	c.doUpdateCoeffs(false)
}

// UpdateCoeffsAudio forwards to the gain stages.
func (c *CombCoeffs) UpdateCoeffsAudio() {
	c.blend.UpdateCoeffsAudio()
	c.ff.UpdateCoeffsAudio()
	c.fb.UpdateCoeffsAudio()
}

// Process1 reads the feedback tap, writes x plus its gained feedback
// into the line, then reads the feedforward tap and combines it with
// the blended input.
func (c *CombCoeffs) Process1(state *CombState, x float32) float32 {
	assertDeep(state.epoch.matches(&c.epoch), "CombState used with a stale CombCoeffs epoch")
	fbTap := c.delay.Read(&state.delay, c.dfbi, c.dfbf)
	v := x + c.fb.Process1(fbTap)
	c.delay.Write(&state.delay, v)
	ffTap := c.delay.Read(&state.delay, c.dffi, c.dfff)
	return c.blend.Process1(v) + c.ff.Process1(ffTap)
}

// Process runs UpdateCoeffsCtrl once, then UpdateCoeffsAudio+Process1 per
// sample.
func (c *CombCoeffs) Process(state *CombState, x, y []float32) {
	c.UpdateCoeffsCtrl()
	for i := range x {
		c.UpdateCoeffsAudio()
		y[i] = c.Process1(state, x[i])
	}
}

// ProcessMulti shares one Coeffs across n independent comb states.
func (c *CombCoeffs) ProcessMulti(states []*CombState, x, y [][]float32) {
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
