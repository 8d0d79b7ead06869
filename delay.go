package bw

// DelayCoeffs is a fixed-maximum-length delay line. Backing storage is
// caller-owned: request the size with MemReq and bind a slice of at
// least that length with MemSet before ResetState.
type DelayCoeffs struct {
	epoch coeffsEpoch

	fs        float32
	maxDelay  float32
	len       int
	delay     float32
	delayDiff bool

	di int
	df float32
}

// DelayState holds one voice's circular buffer and write index.
type DelayState struct {
	epoch stateEpoch
	buf   []float32
	idx   int
}

// NewDelayCoeffs allocates and initializes a DelayCoeffs with the given
// maximum delay in seconds.
func NewDelayCoeffs(maxDelay float32) *DelayCoeffs {
	c := &DelayCoeffs{}
	c.Init(maxDelay)
	return c
}

// Init sets the maximum delay (seconds) and zero current delay.
func (c *DelayCoeffs) Init(maxDelay float32) {
	assert(IsFinite(maxDelay) && maxDelay >= 0, "DelayCoeffs.Init: maxDelay=%v must be finite and >= 0", maxDelay)
	c.maxDelay = maxDelay
	c.delay = 0
	c.epoch.init("bw.DelayCoeffs")
}

// SetSampleRate computes the backing-buffer length in samples.
func (c *DelayCoeffs) SetSampleRate(fs float32) {
	assert(IsFinite(fs) && fs > 0, "DelayCoeffs.SetSampleRate: fs=%v must be finite and positive", fs)
	c.fs = fs
	c.len = int(Ceilf(c.fs*c.maxDelay)) + 1
	c.epoch.setSampleRate()
}

// MemReq returns the number of float32s the caller must allocate and bind
// via MemSet before ResetState.
func (c *DelayCoeffs) MemReq() int { return c.len }

// MemSet binds mem (len(mem) >= MemReq()) as this voice's backing buffer.
func (c *DelayCoeffs) MemSet(state *DelayState, mem []float32) {
	assert(len(mem) >= c.len, "DelayCoeffs.MemSet: mem has %d samples, need %d", len(mem), c.len)
	state.buf = mem[:c.len]
}

func (c *DelayCoeffs) updateCtrl() {
	if c.delayDiff {
		i, f := IntFrac(c.fs * c.delay)
		c.di = int(i)
		c.df = f
		c.delayDiff = false
	}
}

// ResetCoeffs forces the delay/fraction split to be recomputed.
func (c *DelayCoeffs) ResetCoeffs() {
	c.delayDiff = true
	c.updateCtrl()
	c.epoch.resetCoeffs()
}

// ResetState fills the backing buffer with x0 and returns it as the
// initial output.
func (c *DelayCoeffs) ResetState(state *DelayState, x0 float32) float32 {
	assert(IsFinite(x0), "DelayCoeffs.ResetState: x0=%v not finite", x0)
	FillBuf(state.buf, x0)
	state.idx = 0
	state.epoch.reset("bw.DelayState", &c.epoch)
	return x0
}

// ResetStateMulti resets n states to their respective x0 values,
// optionally collecting the initial outputs in y0.
func (c *DelayCoeffs) ResetStateMulti(states []*DelayState, x0, y0 []float32) {
	for i, s := range states {
		v := c.ResetState(s, x0[i])
		if y0 != nil {
			y0[i] = v
		}
	}
}

// Read returns the interpolated sample di.df samples behind the last
// write, without writing. di and df must satisfy 0 <= di+df <= len.
func (c *DelayCoeffs) Read(state *DelayState, di int, df float32) float32 {
	assertDeep(state.epoch.matches(&c.epoch), "DelayState used with a stale DelayCoeffs epoch")
	assert(df >= 0 && df < 1, "DelayCoeffs.Read: df=%v must be in [0,1)", df)
	n := state.idx - di
	if state.idx < di {
		n += c.len
	}
	p := n - 1
	if n == 0 {
		p = c.len - 1
	}
	return state.buf[n] + df*(state.buf[p]-state.buf[n])
}

// Write advances the write index and stores x.
func (c *DelayCoeffs) Write(state *DelayState, x float32) {
	assert(IsFinite(x), "DelayCoeffs.Write: x=%v not finite", x)
	state.idx++
	if state.idx == c.len {
		state.idx = 0
	}
	state.buf[state.idx] = x
}

// UpdateCoeffsCtrl recomputes the integer/fractional delay split if the
// requested delay changed.
func (c *DelayCoeffs) UpdateCoeffsCtrl() { c.updateCtrl() }

// UpdateCoeffsAudio is a no-op; the delay line has no per-sample-varying
// coefficient beyond di/df, which are control-rate.
func (c *DelayCoeffs) UpdateCoeffsAudio() {}

// Process1 writes x then reads back at the configured delay — in that
// order, so a feedback topology (comb.go, reverb.go) that wants
// read-before-write must call Read/Write directly instead.
func (c *DelayCoeffs) Process1(state *DelayState, x float32) float32 {
	c.Write(state, x)
	return c.Read(state, c.di, c.df)
}

// Process runs UpdateCoeffsCtrl once, then Process1 per sample.
func (c *DelayCoeffs) Process(state *DelayState, x, y []float32) {
	c.UpdateCoeffsCtrl()
	for i := range x {
		y[i] = c.Process1(state, x[i])
	}
}

// ProcessMulti shares one Coeffs across n independent delay lines.
func (c *DelayCoeffs) ProcessMulti(states []*DelayState, x, y [][]float32) {
	c.UpdateCoeffsCtrl()
	if len(x) == 0 {
		return
	}
	n := len(x[0])
	for i := 0; i < n; i++ {
		for ch := range states {
			y[ch][i] = c.Process1(states[ch], x[ch][i])
		}
	}
}

// SetDelay sets the requested delay in seconds; the integer/fraction
// split is recomputed lazily on the next UpdateCoeffsCtrl.
func (c *DelayCoeffs) SetDelay(delay float32) {
	if c.delay != delay {
		c.delay = delay
		c.delayDiff = true
	}
}

// GetLength returns the backing-buffer length in samples.
func (c *DelayCoeffs) GetLength() int { return c.len }
