package main

import (
	bw "github.com/brickworks-dsp/bw"
)

// Chain is the demo's gain -> SVF -> compressor -> reverb signal path,
// processing a mono dry tone into a stereo wet signal.
type Chain struct {
	gain *bw.GainCoeffs
	svf  *bw.SVFCoeffs
	comp *bw.CompCoeffs
	rev  *bw.ReverbCoeffs

	svfState  bw.SVFState
	compState bw.CompState
	revState  bw.ReverbState

	revMem []float32
}

// NewChain builds and voices the chain from cfg at the given sample rate.
func NewChain(cfg Config, fs float32) *Chain {
	c := &Chain{
		gain: bw.NewGainCoeffs(),
		svf:  bw.NewSVFCoeffs(),
		comp: bw.NewCompCoeffs(),
		rev:  bw.NewReverbCoeffs(),
	}

	c.gain.SetSampleRate(fs)
	c.gain.SetGainDB(cfg.Gain.GainDB)

	c.svf.SetSampleRate(fs)
	c.svf.SetCutoff(cfg.Filter.CutoffHz)
	c.svf.SetQ(cfg.Filter.Q)

	c.comp.SetSampleRate(fs)
	c.comp.SetThreshDBFS(cfg.Compressor.ThreshDBFS)
	c.comp.SetRatio(cfg.Compressor.Ratio)
	c.comp.SetAttackTau(cfg.Compressor.AttackMs / 1000)
	c.comp.SetReleaseTau(cfg.Compressor.ReleaseMs / 1000)
	c.comp.SetMakeupGainDB(cfg.Compressor.MakeupDB)

	c.rev.SetSampleRate(fs)
	c.revMem = make([]float32, c.rev.MemReq())
	c.rev.MemSet(&c.revState, c.revMem)
	c.rev.SetPredelay(cfg.Reverb.PredelayMs / 1000)
	c.rev.SetBandwidth(cfg.Reverb.BandwidthHz)
	c.rev.SetDamping(cfg.Reverb.DampingHz)
	c.rev.SetDecay(cfg.Reverb.Decay)
	c.rev.SetWet(cfg.Reverb.Wet)

	c.gain.ResetCoeffs()
	c.svf.ResetCoeffs()
	c.svf.ResetState(&c.svfState, 0)
	c.comp.ResetCoeffs()
	c.comp.ResetState(&c.compState, 0, 0)
	c.rev.ResetCoeffs()
	c.rev.ResetState(&c.revState)

	c.gain.UpdateCoeffsCtrl()
	c.svf.UpdateCoeffsCtrl()
	c.comp.UpdateCoeffsCtrl()
	c.rev.UpdateCoeffsCtrl()

	return c
}

// Process1 runs one mono dry sample through the chain and returns a
// stereo wet pair.
func (c *Chain) Process1(x float32) (l, r float32) {
	c.gain.UpdateCoeffsAudio()
	y := c.gain.Process1(x)

	c.svf.UpdateCoeffsAudio()
	lp, _, _ := c.svf.Process1(&c.svfState, y)

	c.comp.UpdateCoeffsAudio()
	y = c.comp.Process1(&c.compState, lp, lp)

	c.rev.UpdateCoeffsAudio()
	return c.rev.Process1(&c.revState, y, y)
}

// Process fills yl/yr with the chain's response to dry (all equal length).
func (c *Chain) Process(dry, yl, yr []float32) {
	for i := range dry {
		yl[i], yr[i] = c.Process1(dry[i])
	}
}
