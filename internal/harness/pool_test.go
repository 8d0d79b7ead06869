package harness

import "testing"

func TestBufferPoolGetIsZeroed(t *testing.T) {
	p := NewBufferPool(64)
	buf := p.Get()
	if len(buf) != 64 {
		t.Fatalf("expected length 64, got %d", len(buf))
	}
	for i := range buf {
		buf[i] = float32(i + 1)
	}
	p.Put(buf)

	buf2 := p.Get()
	for i, v := range buf2 {
		if v != 0 {
			t.Fatalf("buffer not zeroed at index %d: %v", i, v)
		}
	}
}

func TestBufferPoolRejectsWrongSize(t *testing.T) {
	p := NewBufferPool(32)
	wrong := make([]float32, 16)
	p.Put(wrong) // should be silently dropped, not panic
	buf := p.Get()
	if len(buf) != 32 {
		t.Fatalf("expected length 32, got %d", len(buf))
	}
}
