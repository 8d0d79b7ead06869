package bw

// OscPulseCoeffs generates a pulse (variable duty-cycle square) wave from
// an externally driven [0,1) phase signal — typically PhaseGenCoeffs's
// output — with optional PolyBLEP antialiasing at both edges of the pulse.
type OscPulseCoeffs struct {
	epoch coeffsEpoch

	smoothCoeffs OnePoleCoeffs
	smoothState  OnePoleState

	antialiasing bool
	pulseWidth   float32
}

// NewOscPulseCoeffs allocates and initializes an OscPulseCoeffs with 50%
// duty cycle and antialiasing off.
func NewOscPulseCoeffs() *OscPulseCoeffs {
	c := &OscPulseCoeffs{}
	c.Init()
	return c
}

// Init sets pulseWidth to 0.5 and antialiasing off, with a 5ms smoothing
// time for pulse-width changes.
func (c *OscPulseCoeffs) Init() {
	c.smoothCoeffs.Init()
	c.smoothCoeffs.SetTau(0.005)
	c.antialiasing = false
	c.pulseWidth = 0.5
	c.epoch.init("bw.OscPulseCoeffs")
}

// SetSampleRate propagates fs to the pulse-width smoother.
func (c *OscPulseCoeffs) SetSampleRate(fs float32) {
	c.smoothCoeffs.SetSampleRate(fs)
	c.smoothCoeffs.ResetCoeffs()
	c.epoch.setSampleRate()
}

// SetAntialiasing turns PolyBLEP edge antialiasing on or off.
func (c *OscPulseCoeffs) SetAntialiasing(v bool) { c.antialiasing = v }

// SetPulseWidth sets the duty cycle in [0, 1] (0.5 = square wave).
func (c *OscPulseCoeffs) SetPulseWidth(v float32) { c.pulseWidth = v }

// ResetCoeffs snaps the pulse-width smoother to its target.
func (c *OscPulseCoeffs) ResetCoeffs() {
	c.smoothCoeffs.ResetState(&c.smoothState, c.pulseWidth)
	c.epoch.resetCoeffs()
}

// UpdateCoeffsCtrl is a no-op: pulse width only settles at audio rate.
func (c *OscPulseCoeffs) UpdateCoeffsCtrl() {}

// UpdateCoeffsAudio advances the pulse-width smoother by one sample.
func (c *OscPulseCoeffs) UpdateCoeffsAudio() {
	c.smoothCoeffs.Process1(&c.smoothState, c.pulseWidth)
}

// Process1 generates one non-antialiased sample from phase x in [0, 1).
func (c *OscPulseCoeffs) Process1(x float32) float32 {
	pw := c.smoothState.GetYZ1()
	return Signf(pw - x)
}

// oscPulseBLEPDiff evaluates the one-sided fourth-order B-spline PolyBLEP
// residual for x in [0, 2).
func oscPulseBLEPDiff(x float32) float32 {
	if x < 1 {
		return x*((0.25*x-0.6666666666666666)*x*x+1.333333333333333) - 1
	}
	return x*(x*((0.6666666666666666-0.08333333333333333*x)*x-2)+2.666666666666667) - 1.333333333333333
}

// Process1Antialias generates one antialiased sample from phase x in
// [0, 1) and the corresponding per-sample phase increment xInc in
// [-0.5, 0.5], smoothing both the rising and duty-cycle edges with a
// PolyBLEP residual.
func (c *OscPulseCoeffs) Process1Antialias(x, xInc float32) float32 {
	pw := c.smoothState.GetYZ1()
	pwMPhase := pw - x
	v := Copysignf(1, pwMPhase)
	aInc := Absf(xInc)
	if aInc > 1e-6 {
		phaseInc2 := aInc + aInc
		phaseIncRcp := Rcp(aInc)
		phase2 := 0.5*v + 0.5 - pwMPhase
		s1MPhase := 1 - x
		s1MPhase2 := 1 - phase2
		if s1MPhase < phaseInc2 {
			v -= oscPulseBLEPDiff(s1MPhase * phaseIncRcp)
		}
		if s1MPhase2 < phaseInc2 {
			v += oscPulseBLEPDiff(s1MPhase2 * phaseIncRcp)
		}
		if x < phaseInc2 {
			v += oscPulseBLEPDiff(x * phaseIncRcp)
		}
		if phase2 < phaseInc2 {
			v -= oscPulseBLEPDiff(phase2 * phaseIncRcp)
		}
	}
	return v
}

// Process runs UpdateCoeffsCtrl once, then UpdateCoeffsAudio+Process1 (or
// Process1Antialias, if enabled) per sample. xInc is ignored unless
// antialiasing is on.
func (c *OscPulseCoeffs) Process(x, xInc, y []float32) {
	c.UpdateCoeffsCtrl()
	if c.antialiasing {
		for i := range x {
			c.UpdateCoeffsAudio()
			y[i] = c.Process1Antialias(x[i], xInc[i])
		}
	} else {
		for i := range x {
			c.UpdateCoeffsAudio()
			y[i] = c.Process1(x[i])
		}
	}
}

// ProcessMulti shares one Coeffs (and hence one pulse-width smoother)
// across n independent phase/output channel pairs.
func (c *OscPulseCoeffs) ProcessMulti(x, xInc, y [][]float32) {
	c.UpdateCoeffsCtrl()
	if len(x) == 0 {
		return
	}
	n := len(x[0])
	if c.antialiasing {
		for i := 0; i < n; i++ {
			c.UpdateCoeffsAudio()
			for ch := range x {
				y[ch][i] = c.Process1Antialias(x[ch][i], xInc[ch][i])
			}
		}
	} else {
		for i := 0; i < n; i++ {
			c.UpdateCoeffsAudio()
			for ch := range x {
				y[ch][i] = c.Process1(x[ch][i])
			}
		}
	}
}
