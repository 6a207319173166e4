package record

import "sync"

// BufferPool recycles encode buffers between rounds.
type BufferPool struct {
	pool sync.Pool
}

func NewBufferPool(capacity int) *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() any {
				b := make([]byte, 0, capacity)
				return &b
			},
		},
	}
}

func (p *BufferPool) Get() *[]byte {
	b := p.pool.Get().(*[]byte)
	*b = (*b)[:0]
	return b
}

func (p *BufferPool) Put(b *[]byte) {
	if b == nil {
		return
	}
	p.pool.Put(b)
}
