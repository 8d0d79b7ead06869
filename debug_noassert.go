//go:build !bwassert && !bwassertdeep

package bw

// assert is a no-op in release builds (no bwassert/bwassertdeep tag).
func assert(cond bool, format string, args ...any) {}
