package bw

// FillBuf fills buf with value v, the Go analogue of bw_buf_fill. Used by
// delay-bearing primitives to seed their backing storage on ResetState.
func FillBuf(buf []float32, v float32) {
	for i := range buf {
		buf[i] = v
	}
}

// ScaleBuf multiplies every sample of buf by gain in place.
func ScaleBuf(buf []float32, gain float32) {
	for i := range buf {
		buf[i] *= gain
	}
}

// MixBuf adds src into dst in place (dst[i] += src[i]).
func MixBuf(dst, src []float32) {
	for i := range dst {
		dst[i] += src[i]
	}
}

// HasOnlyFinite reports whether every sample in buf is finite.
func HasOnlyFinite(buf []float32) bool {
	for _, v := range buf {
		if !IsFinite(v) {
			return false
		}
	}
	return true
}
