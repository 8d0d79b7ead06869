//go:build !bwassertdeep

package bw

// assertDeep is a no-op unless built with -tags bwassertdeep.
func assertDeep(cond bool, format string, args ...any) {}
