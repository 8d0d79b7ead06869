package bw

// reverbFs is the reference sample rate (Hz) the reverb tank's delay
// lengths were tuned against; every fixed tap below is expressed as a
// fraction of this constant, then rescaled to the actual sample rate in
// SetSampleRate.
const reverbFs = 29761.0

// delayLen rescales a tank tap length, expressed as a sample count at
// the reverbFs reference rate, to the nearest sample count at fs.
func delayLen(fs, referenceSamples float32) int {
	return int(Roundf(fs * referenceSamples / reverbFs))
}

// ReverbCoeffs is a stereo reverb built on J. Dattorro's tank topology
// ("Effect Design, Part 1: Reverberator and Other Filters", J. Audio
// Eng. Soc., vol. 45, no. 9, 1997): a smoothed predelay and a bandwidth
// lowpass feed four cascaded allpass diffusers, which split into two
// mirrored decay loops. Each loop alternates a modulated allpass (its
// delay time swept by a shared sine LFO, for chorus-like smearing), a
// damping lowpass, a decay gain and a second, unmodulated allpass,
// feeding the other loop's input (the second loop's allpass reads a
// delay buffer that is never written; see Process1). The stereo outputs are fixed linear
// combinations of taps read from around the loops.
type ReverbCoeffs struct {
	epoch coeffsEpoch

	predelay  DelayCoeffs
	bandwidth LP1Coeffs

	delayID1, delayID2, delayID3, delayID4 DelayCoeffs
	delayDD1, delayDD2, delayDD3, delayDD4 DelayCoeffs
	delayD1, delayD2, delayD3, delayD4     DelayCoeffs

	decay GainCoeffs

	phaseGen      PhaseGenCoeffs
	phaseGenState PhaseGenState

	damping LP1Coeffs
	dryWet  DryWetCoeffs

	smoothCoeffs        OnePoleCoeffs
	smoothPredelayState OnePoleState

	fs, t float32

	id1, id2, id3, id4 int
	dd2, dd4           int
	d1, d2, d3, d4     int

	dl1, dl2, dl3, dl4, dl5, dl6, dl7 int
	dr1, dr2, dr3, dr4, dr5, dr6, dr7 int

	s     float32
	diff2 float32

	predelayTime float32
}

// ReverbState holds every delay line's backing buffer and write index,
// plus the bandwidth/damping lowpasses' memories.
type ReverbState struct {
	epoch stateEpoch

	predelay  DelayState
	bandwidth LP1State

	delayID1, delayID2, delayID3, delayID4 DelayState
	delayDD1, delayDD2, delayDD3, delayDD4 DelayState
	delayD1, delayD2, delayD3, delayD4     DelayState

	damping1, damping2 LP1State
}

// NewReverbCoeffs allocates and initializes a ReverbCoeffs at its
// default voicing (predelay=0, bandwidth=20kHz, damping=20kHz,
// decay=0.5, wet=0.5).
func NewReverbCoeffs() *ReverbCoeffs {
	c := &ReverbCoeffs{}
	c.Init()
	return c
}

// Init sizes every delay line to its fixed tank length (scaled by
// reverbFs once a sample rate is known), sets the default bandwidth,
// damping, decay and wet voicing, and a 50ms sticky-absolute smoother
// for predelay changes.
func (c *ReverbCoeffs) Init() {
	c.predelay.Init(0.1)
	c.bandwidth.Init()
	c.delayID1.Init(142.0 / reverbFs)
	c.delayID2.Init(107.0 / reverbFs)
	c.delayID3.Init(379.0 / reverbFs)
	c.delayID4.Init(277.0 / reverbFs)
	c.delayDD1.Init((672.0 + 8.0) / reverbFs)
	c.delayDD2.Init(1800.0 / reverbFs)
	c.delayDD3.Init((908.0 + 8.0) / reverbFs)
	c.delayDD4.Init(2656.0 / reverbFs)
	c.delayD1.Init(4453.0 / reverbFs)
	c.delayD2.Init(3720.0 / reverbFs)
	c.delayD3.Init(4217.0 / reverbFs)
	c.delayD4.Init(3163.0 / reverbFs)
	c.decay.Init()
	c.phaseGen.Init()
	c.damping.Init()
	c.dryWet.Init()
	c.smoothCoeffs.Init()

	c.bandwidth.SetCutoff(20e3)
	c.damping.SetCutoff(20e3)
	c.decay.SetGainLin(0.5)
	c.dryWet.SetWet(0.5)
	c.phaseGen.SetFrequency(1)
	c.smoothCoeffs.SetTau(0.05)
	c.smoothCoeffs.SetStickyThresh(1e-6)
	c.smoothCoeffs.SetStickyMode(StickyAbs)

	c.predelayTime = 0
	c.epoch.init("bw.ReverbCoeffs")
}

// MemReq returns the number of float32s the caller must allocate and
// bind via MemSet before ResetState.
func (c *ReverbCoeffs) MemReq() int {
	return c.predelay.MemReq() +
		c.delayID1.MemReq() + c.delayID2.MemReq() + c.delayID3.MemReq() + c.delayID4.MemReq() +
		c.delayDD1.MemReq() + c.delayDD2.MemReq() + c.delayDD3.MemReq() + c.delayDD4.MemReq() +
		c.delayD1.MemReq() + c.delayD2.MemReq() + c.delayD3.MemReq() + c.delayD4.MemReq()
}

// MemSet binds mem (len(mem) >= MemReq()) as this voice's backing
// buffers, slicing it across every delay line in turn.
func (c *ReverbCoeffs) MemSet(state *ReverbState, mem []float32) {
	bind := func(d *DelayCoeffs, s *DelayState) {
		n := d.MemReq()
		d.MemSet(s, mem[:n])
		mem = mem[n:]
	}
	bind(&c.predelay, &state.predelay)
	bind(&c.delayID1, &state.delayID1)
	bind(&c.delayID2, &state.delayID2)
	bind(&c.delayID3, &state.delayID3)
	bind(&c.delayID4, &state.delayID4)
	bind(&c.delayDD1, &state.delayDD1)
	bind(&c.delayDD2, &state.delayDD2)
	bind(&c.delayDD3, &state.delayDD3)
	bind(&c.delayDD4, &state.delayDD4)
	bind(&c.delayD1, &state.delayD1)
	bind(&c.delayD2, &state.delayD2)
	bind(&c.delayD3, &state.delayD3)
	bind(&c.delayD4, &state.delayD4)
}

// SetSampleRate propagates fs to every sub-component and rescales every
// fixed tank tap (those not swept by the modulation LFO) from reverbFs
// to fs.
func (c *ReverbCoeffs) SetSampleRate(fs float32) {
	c.predelay.SetSampleRate(fs)
	c.bandwidth.SetSampleRate(fs)
	c.delayID1.SetSampleRate(fs)
	c.delayID2.SetSampleRate(fs)
	c.delayID3.SetSampleRate(fs)
	c.delayID4.SetSampleRate(fs)
	c.delayDD1.SetSampleRate(fs)
	c.delayDD2.SetSampleRate(fs)
	c.delayDD3.SetSampleRate(fs)
	c.delayDD4.SetSampleRate(fs)
	c.delayD1.SetSampleRate(fs)
	c.delayD2.SetSampleRate(fs)
	c.delayD3.SetSampleRate(fs)
	c.delayD4.SetSampleRate(fs)
	c.decay.SetSampleRate(fs)
	c.phaseGen.SetSampleRate(fs)
	c.damping.SetSampleRate(fs)
	c.dryWet.SetSampleRate(fs)
	c.smoothCoeffs.SetSampleRate(fs)
	c.smoothCoeffs.ResetCoeffs()

	c.fs = fs
	c.t = 1 / fs
	c.id1 = delayLen(fs, 142.0)
	c.id2 = delayLen(fs, 107.0)
	c.id3 = delayLen(fs, 379.0)
	c.id4 = delayLen(fs, 277.0)
	c.dd2 = delayLen(fs, 1800.0)
	c.dd4 = delayLen(fs, 2656.0)
	c.d1 = delayLen(fs, 4453.0)
	c.d2 = delayLen(fs, 3720.0)
	c.d3 = delayLen(fs, 4217.0)
	c.d4 = delayLen(fs, 3163.0)
	c.dl1 = delayLen(fs, 266.0)
	c.dl2 = delayLen(fs, 2974.0)
	c.dl3 = delayLen(fs, 1913.0)
	c.dl4 = delayLen(fs, 1996.0)
	c.dl5 = delayLen(fs, 1990.0)
	c.dl6 = delayLen(fs, 187.0)
	c.dl7 = delayLen(fs, 1066.0)
	c.dr1 = delayLen(fs, 353.0)
	c.dr2 = delayLen(fs, 3627.0)
	c.dr3 = delayLen(fs, 1228.0)
	c.dr4 = delayLen(fs, 2673.0)
	c.dr5 = delayLen(fs, 2111.0)
	c.dr6 = delayLen(fs, 335.0)
	c.dr7 = delayLen(fs, 121.0)
	c.epoch.setSampleRate()
}

// SetPredelay sets the predelay time in seconds, in [0, 0.1], rounded to
// the nearest sample.
func (c *ReverbCoeffs) SetPredelay(value float32) { c.predelayTime = c.t * Roundf(c.fs*value) }

// SetBandwidth sets the input high-frequency attenuation cutoff in Hz.
func (c *ReverbCoeffs) SetBandwidth(value float32) { c.bandwidth.SetCutoff(value) }

// SetDamping sets the tank's high-frequency damping cutoff in Hz.
func (c *ReverbCoeffs) SetDamping(value float32) { c.damping.SetCutoff(value) }

// SetDecay sets the tank's decay rate, in [0, 1).
func (c *ReverbCoeffs) SetDecay(value float32) { c.decay.SetGainLin(value) }

// SetWet sets the output wet mix, in [0, 1].
func (c *ReverbCoeffs) SetWet(value float32) { c.dryWet.SetWet(value) }

// ResetCoeffs snaps every sub-component to its target and re-rounds the
// predelay to a whole number of samples.
func (c *ReverbCoeffs) ResetCoeffs() {
	c.predelay.ResetCoeffs()
	c.bandwidth.ResetCoeffs()
	c.delayID1.ResetCoeffs()
	c.delayID2.ResetCoeffs()
	c.delayID3.ResetCoeffs()
	c.delayID4.ResetCoeffs()
	c.delayDD1.ResetCoeffs()
	c.delayDD2.ResetCoeffs()
	c.delayDD3.ResetCoeffs()
	c.delayDD4.ResetCoeffs()
	c.delayD1.ResetCoeffs()
	c.delayD2.ResetCoeffs()
	c.delayD3.ResetCoeffs()
	c.delayD4.ResetCoeffs()
	c.decay.ResetCoeffs()
	c.phaseGen.ResetCoeffs()
	c.phaseGen.ResetState(&c.phaseGenState, 0)
	c.damping.ResetCoeffs()
	c.dryWet.ResetCoeffs()
	c.SetPredelay(c.predelayTime)
	c.smoothCoeffs.ResetState(&c.smoothPredelayState, c.predelayTime)
	c.epoch.resetCoeffs()
}

// ResetState silences every delay line and lowpass.
func (c *ReverbCoeffs) ResetState(state *ReverbState) {
	c.predelay.ResetState(&state.predelay, 0)
	c.bandwidth.ResetState(&state.bandwidth, 0)
	c.delayID1.ResetState(&state.delayID1, 0)
	c.delayID2.ResetState(&state.delayID2, 0)
	c.delayID3.ResetState(&state.delayID3, 0)
	c.delayID4.ResetState(&state.delayID4, 0)
	c.delayDD1.ResetState(&state.delayDD1, 0)
	c.delayDD2.ResetState(&state.delayDD2, 0)
	c.delayDD3.ResetState(&state.delayDD3, 0)
	c.delayDD4.ResetState(&state.delayDD4, 0)
	c.delayD1.ResetState(&state.delayD1, 0)
	c.delayD2.ResetState(&state.delayD2, 0)
	c.delayD3.ResetState(&state.delayD3, 0)
	c.delayD4.ResetState(&state.delayD4, 0)
	c.damping.ResetState(&state.damping1, 0)
	c.damping.ResetState(&state.damping2, 0)
	state.epoch.reset("bw.ReverbState", &c.epoch)
}

// UpdateCoeffsCtrl forwards to every control-rate sub-component.
func (c *ReverbCoeffs) UpdateCoeffsCtrl() {
	c.bandwidth.UpdateCoeffsCtrl()
	c.decay.UpdateCoeffsCtrl()
	c.phaseGen.UpdateCoeffsCtrl()
	c.dryWet.UpdateCoeffsCtrl()
	c.damping.UpdateCoeffsCtrl()
}

// UpdateCoeffsAudio re-smooths the predelay time, advances the
// modulation LFO (deriving the excursion amount s applied to the two
// modulated allpasses) and recomputes the cross-coupling coefficient
// diff2 from the current decay.
func (c *ReverbCoeffs) UpdateCoeffsAudio() {
	c.predelay.UpdateCoeffsAudio()
	c.bandwidth.UpdateCoeffsAudio()
	pd := c.smoothCoeffs.Process1(&c.smoothPredelayState, c.predelayTime)
	c.predelay.SetDelay(pd)
	c.predelay.UpdateCoeffsCtrl()
	c.predelay.UpdateCoeffsAudio()
	c.decay.UpdateCoeffsAudio()
	c.phaseGen.UpdateCoeffsAudio()
	p, _ := c.phaseGen.Process1Free(&c.phaseGenState)
	c.s = (8.0 / reverbFs) * OscSin(p)
	c.damping.UpdateCoeffsAudio()
	c.diff2 = Clip(c.decay.GetGain()+0.15, 0.25, 0.5)
	c.dryWet.UpdateCoeffsAudio()
}

// Process1 runs one stereo sample through the predelay, bandwidth
// filter, four-stage allpass diffuser, the two mirrored modulated-
// allpass/damping/decay/allpass decay loops, the fixed stereo output
// taps and the output wet mix.
func (c *ReverbCoeffs) Process1(state *ReverbState, xl, xr float32) (yl, yr float32) {
	assertDeep(state.epoch.matches(&c.epoch), "ReverbState used with a stale ReverbCoeffs epoch")

	in := 0.5 * (xl + xr)
	pd := c.predelay.Process1(&state.predelay, in)
	bwv := c.bandwidth.Process1(&state.bandwidth, pd)

	n14 := c.delayID1.Read(&state.delayID1, c.id1, 0)
	n13 := bwv - 0.75*n14
	id1 := n14 + 0.75*n13
	c.delayID1.Write(&state.delayID1, n13)
	n20 := c.delayID2.Read(&state.delayID2, c.id2, 0)
	n19 := id1 - 0.75*n20
	id2 := n20 + 0.75*n19
	c.delayID2.Write(&state.delayID2, n19)
	n16 := c.delayID3.Read(&state.delayID3, c.id3, 0)
	n15 := id2 - 0.625*n16
	id3 := n16 + 0.625*n15
	c.delayID3.Write(&state.delayID3, n15)
	n22 := c.delayID4.Read(&state.delayID4, c.id4, 0)
	n21 := id3 - 0.625*n22
	id4 := n22 + 0.625*n21
	c.delayID4.Write(&state.delayID4, n21)

	n39 := c.delayD2.Read(&state.delayD2, c.d2, 0)
	n63 := c.delayD4.Read(&state.delayD4, c.d4, 0)
	s1 := id4 + c.decay.Process1(n63)
	s2 := id4 + c.decay.Process1(n39)

	dd1iF, dd1f := IntFrac(c.fs * (672.0/reverbFs + c.s))
	dd3iF, dd3f := IntFrac(c.fs * (908.0/reverbFs + c.s))
	dd1i, dd3i := int(dd1iF), int(dd3iF)

	n24 := c.delayDD1.Read(&state.delayDD1, dd1i, dd1f)
	n23 := s1 + 0.7*n24
	dd1 := n24 - 0.7*n23
	c.delayDD1.Write(&state.delayDD1, n23)
	n48 := c.delayDD3.Read(&state.delayDD3, dd3i, dd3f)
	n46 := s2 + 0.7*n48
	dd3 := n48 - 0.7*n46
	c.delayDD3.Write(&state.delayDD3, n46)

	n30 := c.delayD1.Read(&state.delayD1, c.d1, 0)
	c.delayD1.Write(&state.delayD1, dd1)
	n54 := c.delayD3.Read(&state.delayD3, c.d3, 0)
	c.delayD3.Write(&state.delayD3, dd3)

	damp1 := c.damping.Process1(&state.damping1, n30)
	damp2 := c.damping.Process1(&state.damping2, n54)
	decay1 := c.decay.Process1(damp1)
	decay2 := c.decay.Process1(damp2)

	n33 := c.delayDD2.Read(&state.delayDD2, c.dd2, 0)
	n31 := decay1 - c.diff2*n33
	dd2 := n33 + c.diff2*n31
	c.delayDD2.Write(&state.delayDD2, n31)
	n59 := c.delayDD4.Read(&state.delayDD4, c.dd4, 0)
	n55 := decay2 - c.diff2*n59
	dd4 := n59 + c.diff2*n55
	// Both decay-loop feedback writes land on delayDD2; delayDD4's own
	// buffer is only ever read from, never written.
	c.delayDD2.Write(&state.delayDD2, n55)
	c.delayD2.Write(&state.delayD2, dd2)
	c.delayD4.Write(&state.delayD4, dd4)

	yl = 0.6 * (c.delayD3.Read(&state.delayD3, c.dl1, 0) +
		c.delayD3.Read(&state.delayD3, c.dl2, 0) -
		c.delayDD4.Read(&state.delayDD4, c.dl3, 0) +
		c.delayD4.Read(&state.delayD4, c.dl4, 0) -
		c.delayD1.Read(&state.delayD1, c.dl5, 0) -
		c.delayDD2.Read(&state.delayDD2, c.dl6, 0) -
		c.delayD2.Read(&state.delayD2, c.dl7, 0))
	yr = 0.6 * (c.delayD1.Read(&state.delayD1, c.dr1, 0) +
		c.delayD1.Read(&state.delayD1, c.dr2, 0) -
		c.delayDD2.Read(&state.delayDD2, c.dr3, 0) +
		c.delayD2.Read(&state.delayD2, c.dr4, 0) -
		c.delayD3.Read(&state.delayD3, c.dr5, 0) -
		c.delayDD4.Read(&state.delayDD4, c.dr6, 0) -
		c.delayD4.Read(&state.delayD4, c.dr7, 0))

	yl = c.dryWet.Process1(xl, yl)
	yr = c.dryWet.Process1(xr, yr)
	return yl, yr
}

// Process runs UpdateCoeffsCtrl once, then UpdateCoeffsAudio+Process1 per
// sample pair.
func (c *ReverbCoeffs) Process(state *ReverbState, xl, xr, yl, yr []float32) {
	c.UpdateCoeffsCtrl()
	for i := range xl {
		c.UpdateCoeffsAudio()
		yl[i], yr[i] = c.Process1(state, xl[i], xr[i])
	}
}

// ProcessMulti shares one Coeffs (and hence one modulation LFO sweep)
// across n independent stereo reverb states.
func (c *ReverbCoeffs) ProcessMulti(states []*ReverbState, xl, xr, yl, yr [][]float32) {
	c.UpdateCoeffsCtrl()
	if len(xl) == 0 {
		return
	}
	n := len(xl[0])
	for i := 0; i < n; i++ {
		c.UpdateCoeffsAudio()
		for ch, s := range states {
			yl[ch][i], yr[ch][i] = c.Process1(s, xl[ch][i], xr[ch][i])
		}
	}
}
