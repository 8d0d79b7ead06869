package harness

import "sync"

// BufferPool hands out reusable []float32 block buffers of a fixed size,
// so cmd/bwdemo's render loop doesn't allocate a new scratch buffer per
// block.
type BufferPool struct {
	blockSize int
	pool      sync.Pool
}

// NewBufferPool builds a pool of buffers of the given block size.
func NewBufferPool(blockSize int) *BufferPool {
	p := &BufferPool{blockSize: blockSize}
	p.pool.New = func() any {
		return make([]float32, p.blockSize)
	}
	return p
}

// Get returns a zeroed buffer of the pool's block size.
func (p *BufferPool) Get() []float32 {
	buf := p.pool.Get().([]float32)
	for i := range buf {
		buf[i] = 0
	}
	return buf
}

// Put returns buf to the pool for reuse.
func (p *BufferPool) Put(buf []float32) {
	if cap(buf) != p.blockSize {
		return
	}
	p.pool.Put(buf[:p.blockSize])
}
