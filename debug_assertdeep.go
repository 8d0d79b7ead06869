//go:build bwassertdeep

package bw

import "fmt"

// assertDeep is the "deep debug" tier: cross-checks between a Coeffs and
// its States (reset-epoch matching, recursive Coeffs/State validity)
// that are too expensive to leave on even in a debug (non-deep) build.
// Only active under -tags bwassertdeep.
func assertDeep(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("bw: deep contract violation: "+format, args...))
	}
}
