package bw

// This file holds the shared pieces of the three-level debug harness
// (no-debug / debug / deep-debug). assert and assertDeep are swapped for
// panicking or no-op implementations by the bwassert / bwassertdeep build
// tags in debug_assert.go and debug_assertdeep.go; every primitive calls
// them instead of hand-rolling its own checks.
//
// Go has no conditional struct layout, so the resetID/coeffsResetID
// epoch fields and the deep-debug hash tag are always present on every
// Coeffs/State — only whether a mismatch panics is gated by build tag.
// This costs a few extra words per primitive and makes the epoch check
// (stateEpoch.matches) work identically in every build.

// hashSDBM is the classic SDBM string hash, used here to seed resetID so
// that a zero-value Coeffs (never Init'd) has an obviously-wrong epoch.
func hashSDBM(s string) uint32 {
	var h uint32
	for i := 0; i < len(s); i++ {
		h = uint32(s[i]) + (h << 6) + (h << 16) - h
	}
	return h
}

// lifecyclePhase tracks where a Coeffs sits in its Init -> SetSampleRate
// -> ResetCoeffs lifecycle.
type lifecyclePhase int

const (
	phaseInvalid lifecyclePhase = iota
	phaseInit
	phaseSampleRateSet
	phaseCoeffsReset
)

// coeffsEpoch is embedded (by value) in every XxxCoeffs struct in this
// package. resetID increments on every ResetCoeffs, and a State's copy
// of it is compared on every Process1/Process call under assertDeep, so
// that a State reset against a stale Coeffs generation is caught instead
// of silently producing garbage.
type coeffsEpoch struct {
	tag     uint32
	phase   lifecyclePhase
	resetID uint32
}

func (e *coeffsEpoch) init(name string) {
	e.tag = hashSDBM(name)
	e.phase = phaseInit
	e.resetID = e.tag + 1
}

func (e *coeffsEpoch) setSampleRate() { e.phase = phaseSampleRateSet }

func (e *coeffsEpoch) resetCoeffs() {
	e.phase = phaseCoeffsReset
	e.resetID++
}

// stateEpoch is embedded in every XxxState struct; coeffsResetID is set
// on ResetState and compared against the owning Coeffs' resetID.
type stateEpoch struct {
	tag           uint32
	coeffsResetID uint32
	bound         bool
}

func (s *stateEpoch) reset(name string, e *coeffsEpoch) {
	s.tag = hashSDBM(name)
	s.coeffsResetID = e.resetID
	s.bound = true
}

// matches reports whether state was last reset against coeffs' current
// epoch.
func (s *stateEpoch) matches(e *coeffsEpoch) bool {
	return s.bound && s.coeffsResetID == e.resetID
}
