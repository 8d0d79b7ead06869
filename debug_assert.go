//go:build bwassert || bwassertdeep

package bw

import "fmt"

// assert enforces programming-error contracts: null state, out-of-range
// parameters, calling an operation before its phase, aliased buffers.
// Built only under -tags bwassert or bwassertdeep; release builds (no
// tag) compile it away entirely via debug_noassert.go.
func assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("bw: contract violation: "+format, args...))
	}
}
