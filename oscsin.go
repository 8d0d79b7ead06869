package bw

// OscSin is a cheap sine approximation taking a phase in [0,1), meant to
// be driven by a PhaseGenCoeffs/PhaseGenState pair. Unlike every other
// primitive in this package it carries no Coeffs/State of its own — it
// is a pure function — so it is exposed directly as a package-level
// function rather than a Coeffs/State pair.
func OscSin(phase float32) float32 { return Sin2Pi(phase) }
