package bw

// OnePoleStickyMode selects how a OnePoleCoeffs snaps residual drift to
// zero once the smoother's output gets close enough to its target.
type OnePoleStickyMode int

const (
	// StickyNone disables the sticky threshold.
	StickyNone OnePoleStickyMode = iota
	// StickyAbs snaps when (y-x)^2 <= thresh^2.
	StickyAbs
	// StickyRel snaps when (y-x)^2 <= thresh^2 * x^2.
	StickyRel
)

const (
	onePoleDirtyCutoffUp = 1 << iota
	onePoleDirtyCutoffDown
	onePoleDirtyStickyThresh
)

// OnePoleCoeffs is an asymmetric one-pole smoother with independent
// attack/release time constants and an optional sticky snap-to-target
// threshold. Nearly every other primitive in this package threads a
// user-visible parameter through one of these on its way to a derived
// coefficient. One instance is shared by every OnePoleState that must
// move in lock-step.
type OnePoleCoeffs struct {
	epoch coeffsEpoch

	// sample-rate-derived
	ttm2pi float32 // -2*pi/fs

	// parameters
	cutoffUp     float32
	cutoffDown   float32
	stickyThresh float32
	stickyMode   OnePoleStickyMode
	initVal      float32

	// derived, dirty-bit gated
	dirty int
	aU    float32
	aD    float32
	st2   float32
}

// OnePoleState holds one voice's smoothed output.
type OnePoleState struct {
	epoch stateEpoch
	yZ1   float32
}

// NewOnePoleCoeffs allocates and initializes a OnePoleCoeffs.
func NewOnePoleCoeffs() *OnePoleCoeffs {
	c := &OnePoleCoeffs{}
	c.Init()
	return c
}

// Init sets c to its documented defaults: infinite cutoffs (instantaneous
// follow), no sticky threshold.
func (c *OnePoleCoeffs) Init() {
	c.cutoffUp = float32(inf)
	c.cutoffDown = float32(inf)
	c.stickyThresh = 0
	c.stickyMode = StickyNone
	c.initVal = 0
	c.epoch.init("bw.OnePoleCoeffs")
}

// SetSampleRate propagates fs; the per-sample poles are recomputed lazily
// on the next UpdateCoeffsCtrl.
func (c *OnePoleCoeffs) SetSampleRate(fs float32) {
	assert(IsFinite(fs) && fs > 0, "OnePoleCoeffs.SetSampleRate: fs=%v must be finite and positive", fs)
	c.ttm2pi = -twoPiF32 / fs
	c.dirty = onePoleDirtyCutoffUp | onePoleDirtyCutoffDown | onePoleDirtyStickyThresh
	c.epoch.setSampleRate()
}

// ResetCoeffs forces the dirty derived coefficients to be recomputed and
// bumps the reset epoch.
func (c *OnePoleCoeffs) ResetCoeffs() {
	c.dirty = onePoleDirtyCutoffUp | onePoleDirtyCutoffDown | onePoleDirtyStickyThresh
	c.updateDirty()
	c.epoch.resetCoeffs()
}

// ResetState seeds state to x0 and returns that same value as the
// steady-state output.
func (c *OnePoleCoeffs) ResetState(state *OnePoleState, x0 float32) float32 {
	assert(IsFinite(x0), "OnePoleCoeffs.ResetState: x0=%v not finite", x0)
	state.yZ1 = x0
	state.epoch.reset("bw.OnePoleState", &c.epoch)
	return x0
}

func (c *OnePoleCoeffs) updateDirty() {
	if c.dirty&onePoleDirtyCutoffUp != 0 {
		c.aU = Expf(c.ttm2pi * c.cutoffUp)
		c.dirty &^= onePoleDirtyCutoffUp
	}
	if c.dirty&onePoleDirtyCutoffDown != 0 {
		c.aD = Expf(c.ttm2pi * c.cutoffDown)
		c.dirty &^= onePoleDirtyCutoffDown
	}
	if c.dirty&onePoleDirtyStickyThresh != 0 {
		c.st2 = c.stickyThresh * c.stickyThresh
		c.dirty &^= onePoleDirtyStickyThresh
	}
}

// UpdateCoeffsCtrl recomputes any dirty derived coefficient. Called once
// per block, before the per-sample loop.
func (c *OnePoleCoeffs) UpdateCoeffsCtrl() { c.updateDirty() }

// UpdateCoeffsAudio is a no-op for the one-pole smoother: none of its
// coefficients vary within a block, only its output does.
func (c *OnePoleCoeffs) UpdateCoeffsAudio() {}

// Process1 advances state by one sample toward target x.
func (c *OnePoleCoeffs) Process1(state *OnePoleState, x float32) float32 {
	assertDeep(state.epoch.matches(&c.epoch), "OnePoleState used with a stale OnePoleCoeffs epoch")
	var a float32
	if x >= state.yZ1 {
		a = c.aU
	} else {
		a = c.aD
	}
	y := x + a*(state.yZ1-x)
	if c.st2 != 0 && c.stickyMode != StickyNone {
		d := y - x
		var snap bool
		if c.stickyMode == StickyAbs {
			snap = d*d <= c.st2
		} else {
			snap = d*d <= c.st2*x*x
		}
		if snap {
			y = x
		}
	}
	state.yZ1 = y
	return y
}

// Process runs UpdateCoeffsCtrl once, then UpdateCoeffsAudio+Process1 per
// sample.
func (c *OnePoleCoeffs) Process(state *OnePoleState, x, y []float32) {
	c.UpdateCoeffsCtrl()
	for i := range x {
		c.UpdateCoeffsAudio()
		y[i] = c.Process1(state, x[i])
	}
}

// ProcessMulti shares one Coeffs across n independently-stated channels,
// sample-outer / channel-inner so every channel observes the same
// coefficient trajectory.
func (c *OnePoleCoeffs) ProcessMulti(states []*OnePoleState, x, y [][]float32) {
	c.UpdateCoeffsCtrl()
	if len(x) == 0 {
		return
	}
	n := len(x[0])
	for i := 0; i < n; i++ {
		c.UpdateCoeffsAudio()
		for ch := range states {
			y[ch][i] = c.Process1(states[ch], x[ch][i])
		}
	}
}

// GetYZ1 returns the state's current output without advancing it — used
// by primitives (comp.go, noisegate.go, comb.go, saturator.go, oscpulse.go) that thread a smoothed
// parameter through without an explicit per-sample input signal.
func (s *OnePoleState) GetYZ1() float32 { return s.yZ1 }

// SetInitVal stores a default steady-state seed value. No operation in
// this package reads it: ResetState always seeds from its explicit x0.
func (c *OnePoleCoeffs) SetInitVal(v float32) { c.initVal = v }

// SetCutoff sets both the up and down cutoffs to the same value.
func (c *OnePoleCoeffs) SetCutoff(fc float32) {
	c.SetCutoffUp(fc)
	c.SetCutoffDown(fc)
}

// SetCutoffUp sets the up-direction cutoff in Hz; Inf means instantaneous.
func (c *OnePoleCoeffs) SetCutoffUp(fc float32) {
	if c.cutoffUp != fc {
		c.cutoffUp = fc
		c.dirty |= onePoleDirtyCutoffUp
	}
}

// SetCutoffDown sets the down-direction cutoff in Hz.
func (c *OnePoleCoeffs) SetCutoffDown(fc float32) {
	if c.cutoffDown != fc {
		c.cutoffDown = fc
		c.dirty |= onePoleDirtyCutoffDown
	}
}

// SetTau sets both time constants from a tau in seconds; tau < 1ns is
// treated as instantaneous, matching bw_one_pole_set_tau_up/down.
func (c *OnePoleCoeffs) SetTau(tau float32) {
	c.SetTauUp(tau)
	c.SetTauDown(tau)
}

func tauToCutoff(tau float32) float32 {
	if tau < 1e-9 {
		return float32(inf)
	}
	return 0.1591549430918953 * Rcp(tau)
}

// SetTauUp sets the up-direction time constant in seconds.
func (c *OnePoleCoeffs) SetTauUp(tau float32) { c.SetCutoffUp(tauToCutoff(tau)) }

// SetTauDown sets the down-direction time constant in seconds.
func (c *OnePoleCoeffs) SetTauDown(tau float32) { c.SetCutoffDown(tauToCutoff(tau)) }

// SetStickyThresh sets the sticky-mode deadband.
func (c *OnePoleCoeffs) SetStickyThresh(v float32) {
	if c.stickyThresh != v {
		c.stickyThresh = v
		c.dirty |= onePoleDirtyStickyThresh
	}
}

// SetStickyMode selects StickyNone/StickyAbs/StickyRel.
func (c *OnePoleCoeffs) SetStickyMode(m OnePoleStickyMode) { c.stickyMode = m }

// CoeffsIsValid is a conservative validity check (no false negatives).
func (c *OnePoleCoeffs) CoeffsIsValid() bool {
	return IsFinite(c.cutoffUp) || c.cutoffUp == float32(inf)
}

// StateIsValid is a conservative validity check (no false negatives).
func (s *OnePoleState) StateIsValid() bool { return IsFinite(s.yZ1) }
