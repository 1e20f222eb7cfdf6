// Package pool provides a pooled scratch byte buffer used by writer while
// concatenating payload chunks in WriteConcatVectors (and so for
// packed-list payloads), so a sequence of such writes does not allocate
// a fresh slice per call.
package pool

import "sync"

// ScratchDefaultSize is the initial capacity of a freshly allocated buffer.
const ScratchDefaultSize = 4096

// MaxRetainedSize is the largest buffer capacity the pool will retain;
// bigger buffers are discarded on Put to avoid pinning a one-off large
// allocation in the pool indefinitely.
const MaxRetainedSize = 1024 * 1024

// ByteBuffer is a growable byte slice wrapper meant to be reused via Pool.
type ByteBuffer struct {
	B []byte
}

// Reset empties the buffer while retaining its backing array.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Grow ensures the buffer can append n more bytes without reallocating.
func (bb *ByteBuffer) Grow(n int) {
	if cap(bb.B)-len(bb.B) >= n {
		return
	}

	newBuf := make([]byte, len(bb.B), 2*(len(bb.B)+n))
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends data to the buffer, growing it as needed.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.Grow(len(data))
	bb.B = append(bb.B, data...)

	return len(data), nil
}

// Pool is a sync.Pool of ByteBuffers.
type Pool struct {
	pool sync.Pool
}

// NewPool creates a Pool whose buffers start at defaultSize capacity.
func NewPool(defaultSize int) *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any {
				return &ByteBuffer{B: make([]byte, 0, defaultSize)}
			},
		},
	}
}

// Get retrieves an empty ByteBuffer from the pool.
func (p *Pool) Get() *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)

	return bb
}

// Put returns bb to the pool for reuse, discarding it instead if it grew
// past MaxRetainedSize.
func (p *Pool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if cap(bb.B) > MaxRetainedSize {
		return
	}

	bb.Reset()
	p.pool.Put(bb)
}

var scratchPool = NewPool(ScratchDefaultSize)

// GetScratch retrieves a ByteBuffer from the package-wide scratch pool.
func GetScratch() *ByteBuffer {
	return scratchPool.Get()
}

// PutScratch returns a ByteBuffer to the package-wide scratch pool.
func PutScratch(bb *ByteBuffer) {
	scratchPool.Put(bb)
}
